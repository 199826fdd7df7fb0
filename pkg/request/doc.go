// Package request normalizes an API Gateway proxy event into a Request with
// case-insensitive access to headers, query string parameters and path
// parameters, and content-type aware body parsing.
package request
