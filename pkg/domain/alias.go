package domain

import (
	"github.com/asecurityteam/runhttp"
	"github.com/aws/aws-lambda-go/lambda"
)

// Logging and metrics go through runhttp so that handlers, the lifecycle and
// the local runtime all read the same logevent logger and xstats client from
// the request context. Packages refer to these names rather than importing
// either library.
type (
	// Logger writes the structured events defined in pkg/logs.
	Logger = runhttp.Logger
	// LogFn returns the Logger bound to a context.
	LogFn = runhttp.LogFn
	// Stat records counters and timings for a request or a batch.
	Stat = runhttp.Stat
	// StatFn returns the Stat bound to a context.
	StatFn = runhttp.StatFn
)

// Handler is a deployable function as seen by the Lambda runtime and by the
// local HTTP runtime. Every lambdakit entry point is wrapped with
// lambda.NewHandler before it is registered.
type Handler = lambda.Handler
