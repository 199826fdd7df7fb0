// Package domain is a container of all of the domain types and interfaces
// that are used across multiple packages within the module.
//
// This package is also the container for all domain errors leveraged by the
// handlers. Each error here represents a condition that must be communicated
// to a client as a normal HTTP response rather than escalated to the Lambda
// platform as a failed invocation.
//
// Generally speaking, this package contains no executable code. All elements are
// expected to be either pure data containers that have no associated methods or
// interface definitions that have no corresponding implementations in this package.
// The exceptions are the domain error types, which must define an Error() method,
// and the context helpers for the authenticated user. Because these provide
// executable code they also have corresponding tests.
package domain
