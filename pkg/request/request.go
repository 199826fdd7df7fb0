package request

import (
	"encoding/base64"
	"encoding/json"
	"mime"
	"net/url"
	"strconv"
	"strings"

	"github.com/asecurityteam/lambdakit/pkg/document"
	"github.com/asecurityteam/lambdakit/pkg/domain"
	"github.com/aws/aws-lambda-go/events"
	"github.com/mohae/deepcopy"
)

const (
	headerContentType = "content-type"
	headerOrigin      = "origin"
	mimeJSON          = "application/json"
)

// Request is a read-only view of a single inbound proxy event.
type Request struct {
	method      string
	path        string
	headers     map[string]string
	query       map[string]string
	pathParams  map[string]string
	stageVars   map[string]string
	body        string
	bodyEncoded bool
	original    events.APIGatewayProxyRequest
}

// New builds a Request from the event. Header, query string and path
// parameter names are folded to lower case once here. Stage variables keep
// their case.
func New(event events.APIGatewayProxyRequest) *Request {
	return &Request{
		method:      strings.ToUpper(event.HTTPMethod),
		path:        event.Path,
		headers:     fold(event.Headers),
		query:       fold(event.QueryStringParameters),
		pathParams:  fold(event.PathParameters),
		stageVars:   copyMap(event.StageVariables),
		body:        event.Body,
		bodyEncoded: event.IsBase64Encoded,
		original:    deepcopy.Copy(event).(events.APIGatewayProxyRequest),
	}
}

func fold(m map[string]string) map[string]string {
	out := make(map[string]string, len(m))
	for k, v := range m {
		out[strings.ToLower(k)] = v
	}
	return out
}

func copyMap(m map[string]string) map[string]string {
	out := make(map[string]string, len(m))
	for k, v := range m {
		out[k] = v
	}
	return out
}

func lookup(m map[string]string, key string, fallback string) string {
	if v, ok := m[strings.ToLower(key)]; ok {
		return v
	}
	return fallback
}

// Header returns the named header or fallback when absent.
func (r *Request) Header(key string, fallback string) string {
	return lookup(r.headers, key, fallback)
}

// QueryStringParameter returns the named query string parameter or fallback
// when absent.
func (r *Request) QueryStringParameter(key string, fallback string) string {
	return lookup(r.query, key, fallback)
}

// PathParameter returns the named path parameter or fallback when absent.
func (r *Request) PathParameter(key string, fallback string) string {
	return lookup(r.pathParams, key, fallback)
}

// StageVariable returns the named stage variable or fallback when absent.
// Stage variable names are case sensitive.
func (r *Request) StageVariable(key string, fallback string) string {
	if v, ok := r.stageVars[key]; ok {
		return v
	}
	return fallback
}

// QueryStringParameters returns a copy of all query string parameters keyed
// by their lower case names.
func (r *Request) QueryStringParameters() map[string]string {
	return copyMap(r.query)
}

// Headers returns a copy of all headers keyed by their lower case names.
func (r *Request) Headers() map[string]string {
	return copyMap(r.headers)
}

// Method is the upper case HTTP verb.
func (r *Request) Method() string {
	return r.method
}

// Path is the request path as received by the gateway.
func (r *Request) Path() string {
	return r.path
}

// Event returns an unmodified copy of the original event.
func (r *Request) Event() events.APIGatewayProxyRequest {
	return deepcopy.Copy(r.original).(events.APIGatewayProxyRequest)
}

// RequestID is the gateway assigned identifier of the request.
func (r *Request) RequestID() string {
	return r.original.RequestContext.RequestID
}

// ContentType is the media type of the body without parameters.
func (r *Request) ContentType() string {
	raw := r.Header(headerContentType, "")
	if raw == "" {
		return ""
	}
	mediaType, _, err := mime.ParseMediaType(raw)
	if err != nil {
		return strings.ToLower(strings.TrimSpace(strings.Split(raw, ";")[0]))
	}
	return mediaType
}

// Origin is the value of the Origin header.
func (r *Request) Origin() string {
	return r.Header(headerOrigin, "")
}

// OriginDomain is the host portion of the Origin header.
func (r *Request) OriginDomain() string {
	u, err := url.Parse(r.Origin())
	if err != nil {
		return ""
	}
	return u.Hostname()
}

// OriginProtocol is the scheme of the Origin header.
func (r *Request) OriginProtocol() string {
	u, err := url.Parse(r.Origin())
	if err != nil {
		return ""
	}
	return u.Scheme
}

// Body returns the raw body, decoding it first when the gateway marked it
// as base64 encoded.
func (r *Request) Body() string {
	if !r.bodyEncoded {
		return r.body
	}
	b, err := base64.StdEncoding.DecodeString(r.body)
	if err != nil {
		return r.body
	}
	return string(b)
}

// BodyAsJSON parses the body as a JSON object. An absent body, a body that
// is not JSON, or JSON that is not an object fail with a BadRequest error.
func (r *Request) BodyAsJSON() (document.Document, error) {
	body := r.Body()
	if strings.TrimSpace(body) == "" {
		return nil, domain.NewBadRequest("request body is required", nil)
	}
	var v interface{}
	if err := json.Unmarshal([]byte(body), &v); err != nil {
		return nil, domain.NewBadRequest("request body is not valid JSON", err)
	}
	obj, ok := v.(map[string]interface{})
	if !ok {
		return nil, domain.NewBadRequest("request body must be a JSON object", nil)
	}
	return document.Document(obj), nil
}

// ParsedBody decodes the body according to its content type. JSON media
// types yield a document.Document. Anything else yields the raw string.
// A non-empty mimeType overrides the Content-Type header.
func (r *Request) ParsedBody(mimeType string) (interface{}, error) {
	if mimeType == "" {
		mimeType = r.ContentType()
	}
	if isJSON(mimeType) {
		return r.BodyAsJSON()
	}
	return r.Body(), nil
}

func isJSON(mimeType string) bool {
	mimeType = strings.ToLower(mimeType)
	return mimeType == mimeJSON || strings.HasSuffix(mimeType, "+json")
}

// ValidateQueryString checks the query string parameters against schema.
// A value is checked as an integer only when its field rule is numeric so
// that min and max compare values there and lengths everywhere else.
func (r *Request) ValidateQueryString(schema Schema) error {
	data := make(map[string]interface{}, len(r.query))
	for k, v := range r.query {
		if schema.numeric(k) {
			if n, err := strconv.Atoi(v); err == nil {
				data[k] = n
				continue
			}
		}
		data[k] = v
	}
	if violations := schema.Violations(data); len(violations) > 0 {
		return domain.NewValidation("invalid query string", violations)
	}
	return nil
}
