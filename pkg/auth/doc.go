// Package auth contains Authorizer implementations for handlers.Lifecycle.
package auth
