// Package handlerfetcher contains implementations of the domain.HandlerFetcher
// interface that are responsible for managing the loading of handlers. Each
// implementation in this package represents a different loading strategy or
// a decorator over one.
package handlerfetcher
