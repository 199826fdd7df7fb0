// Package handlers contains the lifecycle shell shared by every proxy event
// handler. A Lifecycle turns an API Gateway proxy event into a Request and
// a Response, applies CORS headers and authorization, and delegates to a
// Processor. The sub-packages contain concrete processors and the HTTP
// handlers used to run them locally.
package handlers
