// Package response accumulates the status, headers, cookies and body of a
// proxy response and guarantees it is sent at most once.
package response
