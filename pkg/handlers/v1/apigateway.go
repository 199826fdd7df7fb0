package v1

import (
	"context"
	"encoding/base64"
	"encoding/json"
	"errors"
	"io"
	"net"
	"net/http"
	"strings"
	"unicode/utf8"

	"github.com/asecurityteam/lambdakit/pkg/domain"
	"github.com/asecurityteam/lambdakit/pkg/logs"
	"github.com/aws/aws-lambda-go/events"
	"github.com/google/uuid"
)

const (
	// WildcardParameter is the URL parameter holding everything after the
	// function name.
	WildcardParameter = "*"
	// DefaultStage is reported in the request context when none is set.
	DefaultStage = "local"

	statGatewayError = "gateway.error"
)

var errMissingStatus = errors.New("function response has no status code")

// gatewayError matches the body API Gateway sends when an integration
// fails.
type gatewayError struct {
	Message string `json:"message"`
}

// APIGateway emulates an API Gateway proxy integration in front of the
// registered functions. Each HTTP request is converted to an
// events.APIGatewayProxyRequest, the function named by the first path
// segment is invoked with it, and the events.APIGatewayProxyResponse it
// returns is written back.
//
// The remainder of the path is exposed as the "proxy" path parameter and,
// when it is a single segment, also as the "id" path parameter.
type APIGateway struct {
	LogFn      domain.LogFn
	StatFn     domain.StatFn
	URLParamFn domain.URLParamFn
	Fetcher    domain.HandlerFetcher
	// Stage is reported in the request context. The default is "local".
	Stage string
}

func (h *APIGateway) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	fnName := h.URLParamFn(ctx, FunctionParameter)
	fn, err := h.Fetcher.FetchHandler(ctx, fnName)
	if err != nil {
		status := failureStatus(err)
		if status == http.StatusNotFound {
			writeGatewayError(w, status, "Not Found")
			return
		}
		h.failed(ctx, fnName, err)
		writeGatewayError(w, http.StatusInternalServerError, "Internal server error")
		return
	}
	body, err := io.ReadAll(r.Body)
	if err != nil {
		writeGatewayError(w, http.StatusBadRequest, "Bad Request")
		return
	}
	event := h.newProxyRequest(r, body, pathParameters(h.URLParamFn(ctx, WildcardParameter)))
	payload, err := json.Marshal(event)
	if err != nil {
		h.failed(ctx, fnName, err)
		writeGatewayError(w, http.StatusInternalServerError, "Internal server error")
		return
	}
	out, err := fn.Invoke(ctx, payload)
	if err != nil {
		h.failed(ctx, fnName, err)
		writeGatewayError(w, http.StatusBadGateway, "Internal server error")
		return
	}
	var resp events.APIGatewayProxyResponse
	if err := json.Unmarshal(out, &resp); err != nil || resp.StatusCode == 0 {
		if err == nil {
			err = errMissingStatus
		}
		h.failed(ctx, fnName, err)
		writeGatewayError(w, http.StatusBadGateway, "Internal server error")
		return
	}
	writeProxyResponse(w, resp)
}

func (h *APIGateway) failed(ctx context.Context, fnName string, err error) {
	h.LogFn(ctx).Error(logs.InvocationFailed{FunctionName: fnName, Reason: err.Error()})
	h.StatFn(ctx).Count(statGatewayError, 1, "function:"+fnName)
}

func (h *APIGateway) stage() string {
	if h.Stage == "" {
		return DefaultStage
	}
	return h.Stage
}

func (h *APIGateway) newProxyRequest(r *http.Request, body []byte, params map[string]string) events.APIGatewayProxyRequest {
	headers := make(map[string]string, len(r.Header)+1)
	multiHeaders := make(map[string][]string, len(r.Header)+1)
	for k, v := range r.Header {
		headers[k] = v[len(v)-1]
		multiHeaders[k] = v
	}
	if r.Host != "" {
		headers["Host"] = r.Host
		multiHeaders["Host"] = []string{r.Host}
	}
	query := r.URL.Query()
	queryParams := make(map[string]string, len(query))
	for k, v := range query {
		queryParams[k] = v[len(v)-1]
	}
	sourceIP, _, errSplit := net.SplitHostPort(r.RemoteAddr)
	if errSplit != nil {
		sourceIP = r.RemoteAddr
	}
	event := events.APIGatewayProxyRequest{
		Resource:                        "/{function}/{proxy+}",
		Path:                            r.URL.Path,
		HTTPMethod:                      r.Method,
		Headers:                         headers,
		MultiValueHeaders:               multiHeaders,
		QueryStringParameters:           queryParams,
		MultiValueQueryStringParameters: query,
		PathParameters:                  params,
		RequestContext: events.APIGatewayProxyRequestContext{
			RequestID:  uuid.NewString(),
			Stage:      h.stage(),
			HTTPMethod: r.Method,
			Path:       r.URL.Path,
			Identity: events.APIGatewayRequestIdentity{
				SourceIP:  sourceIP,
				UserAgent: r.UserAgent(),
			},
		},
	}
	if len(body) > 0 {
		if utf8.Valid(body) {
			event.Body = string(body)
		} else {
			event.Body = base64.StdEncoding.EncodeToString(body)
			event.IsBase64Encoded = true
		}
	}
	return event
}

func pathParameters(rest string) map[string]string {
	rest = strings.Trim(rest, "/")
	if rest == "" {
		return nil
	}
	params := map[string]string{"proxy": rest}
	if !strings.Contains(rest, "/") {
		params["id"] = rest
	}
	return params
}

func writeProxyResponse(w http.ResponseWriter, resp events.APIGatewayProxyResponse) {
	for k, v := range resp.Headers {
		w.Header().Set(k, v)
	}
	for k, vs := range resp.MultiValueHeaders {
		w.Header().Del(k)
		for _, v := range vs {
			w.Header().Add(k, v)
		}
	}
	body := []byte(resp.Body)
	if resp.IsBase64Encoded {
		decoded, err := base64.StdEncoding.DecodeString(resp.Body)
		if err != nil {
			writeGatewayError(w, http.StatusBadGateway, "Internal server error")
			return
		}
		body = decoded
	}
	w.WriteHeader(resp.StatusCode)
	_, _ = w.Write(body)
}

func writeGatewayError(w http.ResponseWriter, status int, message string) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(gatewayError{Message: message})
}
