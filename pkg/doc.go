// Package lambdakit runs API Gateway style handlers either as native AWS
// Lambda functions or behind a local HTTP runtime that emulates both the
// Lambda Invoke API and an API Gateway proxy integration.
package lambdakit
