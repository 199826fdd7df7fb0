// Package rest maps HTTP verbs onto resource operations. A request is for a
// single resource when the identifier path parameter is present and
// non-empty, otherwise it is for the collection.
package rest
