package handlers

import (
	"context"
	"fmt"
	"strconv"
	"time"

	"github.com/asecurityteam/lambdakit/pkg/domain"
	"github.com/asecurityteam/lambdakit/pkg/logs"
	"github.com/asecurityteam/lambdakit/pkg/request"
	"github.com/asecurityteam/lambdakit/pkg/response"
	"github.com/asecurityteam/logevent/v2"
	"github.com/asecurityteam/runhttp"
	"github.com/aws/aws-lambda-go/events"
	"github.com/aws/aws-lambda-go/lambda"
	"github.com/aws/aws-lambda-go/lambdacontext"
	"github.com/rs/xstats"
)

const statHandlerDuration = "handler.duration"

// Lifecycle adapts a Processor to the API Gateway proxy contract.
//
// Each invocation builds a Request and a Response, applies the CORS policy
// and the Authorizer when configured, and runs the Processor. Any error or
// panic is passed once to Response.Fail. Client facing errors become normal
// responses while every other error is returned to the platform.
type Lifecycle struct {
	Processor  Processor
	CORS       CORSPolicy
	Authorizer Authorizer

	// Logger and Stat, when set, are injected into the context of each
	// invocation. Otherwise whatever is already on the context is used.
	Logger domain.Logger
	Stat   domain.Stat

	// LogFn and StatFn extract the logger and stat client from the
	// context. They default to the runhttp extractors.
	LogFn  domain.LogFn
	StatFn domain.StatFn
}

// Lambda returns the Lifecycle as a lambda.Handler.
func (h *Lifecycle) Lambda() domain.Handler {
	return lambda.NewHandler(h.Handle)
}

// Handle runs a single invocation.
func (h *Lifecycle) Handle(ctx context.Context, event events.APIGatewayProxyRequest) (events.APIGatewayProxyResponse, error) {
	start := time.Now()
	ctx = h.inject(ctx, event)
	logger := h.logFn()(ctx)
	stat := h.statFn()(ctx)

	req := request.New(event)
	resp := response.New()
	if err := h.run(ctx, req, resp); err != nil {
		logFailure(logger, err)
		if errFail := resp.Fail(err); errFail != nil {
			logger.Error(logs.UnhandledError{Reason: fmt.Sprintf("%s after response was sent: %s", errFail, err)})
		}
	}
	if !resp.Sent() {
		_ = resp.Send()
	}
	out, err := resp.Result()
	status := out.StatusCode
	if err != nil {
		status = 500
	}
	stat.Timing(statHandlerDuration, time.Since(start), "status:"+strconv.Itoa(status))
	return out, err
}

func (h *Lifecycle) run(ctx context.Context, req *request.Request, resp *response.Response) (err error) {
	defer func() {
		if r := recover(); r != nil {
			err = fmt.Errorf("panic: %v", r)
		}
	}()
	var mws []Middleware
	if h.CORS != nil {
		mws = append(mws, CORS(h.CORS))
	}
	if h.Authorizer != nil {
		mws = append(mws, Authorize(h.Authorizer, h.logFn()))
	}
	return Chain(h.Processor, mws...).Process(ctx, req, resp)
}

// inject places a request scoped logger and stat client on the context.
func (h *Lifecycle) inject(ctx context.Context, event events.APIGatewayProxyRequest) context.Context {
	if h.Logger != nil {
		ctx = logevent.NewContext(ctx, h.Logger)
	}
	if h.Stat != nil {
		ctx = xstats.NewContext(ctx, h.Stat)
	}
	logger := h.logFn()(ctx).Copy()
	if lc, ok := lambdacontext.FromContext(ctx); ok {
		logger.SetField("aws_request_id", lc.AwsRequestID)
	}
	if event.RequestContext.RequestID != "" {
		logger.SetField("request_id", event.RequestContext.RequestID)
	}
	return logevent.NewContext(ctx, logger)
}

func (h *Lifecycle) logFn() domain.LogFn {
	if h.LogFn == nil {
		return runhttp.LoggerFromContext
	}
	return h.LogFn
}

func (h *Lifecycle) statFn() domain.StatFn {
	if h.StatFn == nil {
		return runhttp.StatFromContext
	}
	return h.StatFn
}

func logFailure(logger domain.Logger, err error) {
	if e, ok := domain.AsPassthrough(err); ok {
		logger.Info(logs.ClientError{Kind: string(e.Kind), Status: e.Status, Reason: err.Error()})
		return
	}
	logger.Error(logs.UnhandledError{Reason: err.Error()})
}
