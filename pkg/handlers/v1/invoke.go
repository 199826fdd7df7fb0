package v1

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"strings"

	"github.com/asecurityteam/lambdakit/pkg/domain"
	"github.com/asecurityteam/lambdakit/pkg/logs"
)

const (
	// FunctionParameter is the URL parameter holding the function name.
	FunctionParameter = "function"

	headerInvocationType  = "X-Amz-Invocation-Type"
	headerExecutedVersion = "X-Amz-Executed-Version"
	headerFunctionError   = "X-Amz-Function-Error"

	modeRequestResponse = "RequestResponse"
	modeEvent           = "Event"
	modeDryRun          = "DryRun"

	functionErrorHandled   = "Handled"
	functionErrorUnhandled = "Unhandled"

	latestVersion   = "latest"
	statInvokeError = "invoke.error"
)

// detachedContext outlives the request that started an Event invocation.
// Cancellation and deadlines come from the embedded context while values,
// such as the logger and stat client, are still read from the request.
type detachedContext struct {
	context.Context
	values context.Context
}

func detach(ctx context.Context) context.Context {
	return &detachedContext{Context: context.Background(), values: ctx}
}

func (c *detachedContext) Value(key interface{}) interface{} {
	return c.values.Value(key)
}

// invocationFailure is the error document the Lambda Invoke API returns.
type invocationFailure struct {
	Message    string   `json:"errorMessage"`
	Type       string   `json:"errorType"`
	StackTrace []string `json:"stackTrace"`
}

var noStackTrace = []string{}

// Invoke serves the Lambda Invoke API for the registered functions so that
// SDK clients, including the queue processor's LambdaAPI, can target a
// local runtime by overriding the Lambda endpoint.
// https://docs.aws.amazon.com/lambda/latest/dg/API_Invoke.html
//
// LogType "Tail" is accepted but no log output is returned, and the
// Qualifier is ignored: the executed version is always "latest".
type Invoke struct {
	LogFn      domain.LogFn
	StatFn     domain.StatFn
	URLParamFn domain.URLParamFn
	Fetcher    domain.HandlerFetcher
}

func (h *Invoke) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	name := h.URLParamFn(ctx, FunctionParameter)
	fn, err := h.Fetcher.FetchHandler(ctx, name)
	if err != nil {
		status := failureStatus(err)
		if status >= http.StatusInternalServerError {
			h.failed(ctx, name, err)
		}
		writeFailure(w, status, failureOf(err))
		return
	}
	payload, err := io.ReadAll(r.Body)
	if err != nil {
		writeFailure(w, http.StatusBadRequest, failureOf(err))
		return
	}

	mode := r.Header.Get(headerInvocationType)
	if mode == "" {
		mode = modeRequestResponse
	}
	w.Header().Set(headerExecutedVersion, latestVersion)
	switch mode {
	case modeDryRun:
		w.WriteHeader(http.StatusNoContent)
	case modeEvent:
		h.invokeAsync(detach(ctx), name, fn, payload)
		w.WriteHeader(http.StatusAccepted)
	case modeRequestResponse:
		h.invokeSync(ctx, w, name, fn, payload)
	default:
		writeFailure(w, http.StatusBadRequest, invocationFailure{
			Message:    fmt.Sprintf("InvocationType %s not valid", mode),
			Type:       "InvalidParameterValueException",
			StackTrace: noStackTrace,
		})
	}
}

func (h *Invoke) invokeAsync(ctx context.Context, name string, fn domain.Handler, payload []byte) {
	go func() {
		if _, err := fn.Invoke(ctx, payload); err != nil {
			h.failed(ctx, name, err)
		}
	}()
}

// invokeSync writes the function output as is. A failed invocation is
// reported with the X-Amz-Function-Error header: Handled for client errors
// and Unhandled for everything the function could not deal with.
func (h *Invoke) invokeSync(ctx context.Context, w http.ResponseWriter, name string, fn domain.Handler, payload []byte) {
	out, err := fn.Invoke(ctx, payload)
	if err == nil {
		w.WriteHeader(http.StatusOK)
		if len(out) > 0 {
			_, _ = w.Write(out)
		}
		return
	}
	h.failed(ctx, name, err)
	status := failureStatus(err)
	kind := functionErrorHandled
	if status >= http.StatusInternalServerError {
		kind = functionErrorUnhandled
	}
	w.Header().Set(headerFunctionError, kind)
	writeFailure(w, status, failureOf(err))
}

func (h *Invoke) failed(ctx context.Context, name string, err error) {
	h.LogFn(ctx).Error(logs.InvocationFailed{FunctionName: name, Reason: err.Error()})
	h.StatFn(ctx).Count(statInvokeError, 1, "function:"+name)
}

func writeFailure(w http.ResponseWriter, status int, body invocationFailure) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(body)
}

// failureStatus is the HTTP status reported for an invocation error.
// Payloads that fail to decode are the caller's fault.
func failureStatus(err error) int {
	if err == nil {
		return http.StatusOK
	}
	if e, ok := domain.AsPassthrough(err); ok {
		return e.Status
	}
	var (
		syntax    *json.SyntaxError
		mismatch  *json.UnmarshalTypeError
		badTarget *json.InvalidUnmarshalError
	)
	if errors.As(err, &syntax) || errors.As(err, &mismatch) || errors.As(err, &badTarget) {
		return http.StatusBadRequest
	}
	return http.StatusInternalServerError
}

// failureOf names the error after its domain kind or, for other errors,
// after its Go type without package or pointer.
func failureOf(err error) invocationFailure {
	kind := fmt.Sprintf("%T", err)
	if e, ok := domain.AsPassthrough(err); ok {
		kind = string(e.Kind)
	}
	return invocationFailure{
		Message:    err.Error(),
		Type:       kind[strings.LastIndex(kind, ".")+1:],
		StackTrace: noStackTrace,
	}
}
