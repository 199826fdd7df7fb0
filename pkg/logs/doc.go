// Package logs contains the structured log events emitted by the handlers.
// Each event is a struct rendered by logevent; the message field carries a
// stable identifier that operators can search for.
package logs
