package lambdakit

import (
	"context"
	"fmt"
	"strings"

	"github.com/asecurityteam/lambdakit/pkg/domain"
	"github.com/asecurityteam/lambdakit/pkg/handlerfetcher"
	"github.com/asecurityteam/settings/v2"
	"github.com/aws/aws-lambda-go/lambda"
	"github.com/rs/xstats"
)

const (
	// BuildModeHTTP is the standard mode of running an HTTP server
	// that emulates the Lambda Invoke API and API Gateway.
	BuildModeHTTP = "http"
	// BuildModeLambda runs the official lambda server using the lambda
	// SDK. Using this mode requires the TargetFunction value to be set.
	BuildModeLambda = "lambda"
)

var (
	// BuildMode determines the behavior of the Start method. The
	// suggested way to set it is through build variables by adding
	// `-ldflags "-X github.com/asecurityteam/lambdakit/pkg.BuildMode=<value>"`
	// to `go build` or `go run` commands. It may also be set in code before
	// calling Start, for example from an environment variable.
	//
	// Alternatively, StartMode may be used to pass the mode in directly.
	BuildMode = BuildModeHTTP
	// TargetFunction is used when building in lambda mode to select a
	// single function to run. This value can be set in all the same ways as
	// the BuildMode value.
	TargetFunction = ""

	startHandler = lambda.StartHandlerWithContext
)

// Start is a replacement for the lambda.Start method. By default, this
// method will start the local HTTP runtime and will invoke functions
// loaded using the given HandlerFetcher.
func Start(ctx context.Context, s settings.Source, f domain.HandlerFetcher) error {
	return StartMode(ctx, s, f, BuildMode, TargetFunction)
}

// StartMode works just like Start but allows for explicit passing of the build
// mode and target function.
func StartMode(ctx context.Context, s settings.Source, f domain.HandlerFetcher, mode string, target string) error {
	switch {
	case strings.EqualFold(mode, BuildModeHTTP):
		return StartHTTP(ctx, s, f)
	case strings.EqualFold(mode, BuildModeLambda):
		return StartLambda(ctx, s, f, target)
	default:
		return fmt.Errorf("unknown build mode %s", mode)
	}
}

// StartHTTP runs the local HTTP runtime.
func StartHTTP(ctx context.Context, s settings.Source, f domain.HandlerFetcher) error {
	rt, err := NewHTTP(ctx, s, f)
	if err != nil {
		return err
	}
	return rt.Run()
}

// StartLambda runs the target function with the lambda SDK. Each invocation
// receives a logger built from settings and the stat client carried by ctx,
// if any.
func StartLambda(ctx context.Context, s settings.Source, f domain.HandlerFetcher, target string) error {
	if target == "" {
		return fmt.Errorf("lambda build mode requires a target function")
	}
	logging := new(handlerfetcher.Logging)
	err := settings.NewComponent(
		ctx,
		&settings.PrefixSource{Source: s, Prefix: []string{EnvPrefix}},
		&LoggerComponent{Fetcher: f},
		logging,
	)
	if err != nil {
		return err
	}
	f = &handlerfetcher.Stat{
		Stat:    xstats.FromContext(ctx),
		Fetcher: logging,
	}
	h, err := f.FetchHandler(ctx, target)
	if err != nil {
		return err
	}
	startHandler(ctx, h)
	return nil
}
