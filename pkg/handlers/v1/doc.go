// Package v1 contains all http.Handlers used to service the version 1.X.X API of
// a locally running lambdakit HTTP runtime. This version scheme is used internally
// to track and manage changes of the runtime's public facing HTTP API and does not
// strictly relate to versions of the AWS Lambda APIs that it emulates.
package v1
