package response

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"reflect"
	"strconv"
	"strings"
	"unicode/utf8"

	"github.com/asecurityteam/lambdakit/pkg/domain"
	"github.com/aws/aws-lambda-go/events"
)

// ErrAlreadySent is returned when a response is sent or failed a second time.
var ErrAlreadySent = errors.New("response already sent")

const (
	headerCacheControl = "cache-control"
	headerContentType  = "content-type"
	headerLocation     = "location"
	headerSetCookie    = "set-cookie"
)

// Response accumulates a proxy response. It is not safe for concurrent use.
type Response struct {
	statusCode int
	headers    map[string]string
	multi      map[string][]string
	cookies    []*http.Cookie
	body       *string
	sent       bool
	escalated  error
}

// New returns an unsent Response with a 200 status.
func New() *Response {
	return &Response{
		statusCode: http.StatusOK,
		headers:    make(map[string]string),
	}
}

// SetStatusCode replaces the status code.
func (r *Response) SetStatusCode(code int) *Response {
	r.statusCode = code
	return r
}

// StatusCode returns the current status code.
func (r *Response) StatusCode() int {
	return r.statusCode
}

// AddHeader sets a header. Names are stored in lower case so that a later
// write with different casing replaces the earlier one.
func (r *Response) AddHeader(key string, value string) *Response {
	r.headers[strings.ToLower(key)] = value
	return r
}

// AddHeaders sets every header in the map.
func (r *Response) AddHeaders(headers map[string]string) *Response {
	for k, v := range headers {
		r.AddHeader(k, v)
	}
	return r
}

// AddMultiValueHeader appends values to a header that is sent once per
// value, such as Set-Cookie from an upstream service.
func (r *Response) AddMultiValueHeader(key string, values ...string) *Response {
	if len(values) == 0 {
		return r
	}
	if r.multi == nil {
		r.multi = make(map[string][]string)
	}
	key = strings.ToLower(key)
	r.multi[key] = append(r.multi[key], values...)
	return r
}

// RemoveHeader deletes a header if present.
func (r *Response) RemoveHeader(key string) *Response {
	key = strings.ToLower(key)
	delete(r.headers, key)
	delete(r.multi, key)
	return r
}

// Header returns the current value of a header. For a multi value header
// that is the last value added.
func (r *Response) Header(key string) string {
	key = strings.ToLower(key)
	if v, ok := r.headers[key]; ok {
		return v
	}
	if values := r.multi[key]; len(values) > 0 {
		return values[len(values)-1]
	}
	return ""
}

// SetMaxAge sets the Cache-Control header. Zero or negative values disable
// caching.
func (r *Response) SetMaxAge(seconds int) *Response {
	if seconds <= 0 {
		return r.AddHeader(headerCacheControl, "no-cache")
	}
	return r.AddHeader(headerCacheControl, "max-age="+strconv.Itoa(seconds))
}

// SetBody replaces the body. Strings are sent unchanged, byte slices must
// be valid UTF-8, and maps, slices, structs and pointers are encoded as
// JSON. A nil value clears the body, including a nil map, slice or pointer.
func (r *Response) SetBody(v interface{}) error {
	if v == nil {
		r.body = nil
		return nil
	}
	var s string
	switch b := v.(type) {
	case string:
		s = b
	case []byte:
		if !utf8.Valid(b) {
			return errors.New("response body is not valid UTF-8")
		}
		s = string(b)
	case json.RawMessage:
		s = string(b)
	default:
		rv := reflect.ValueOf(v)
		switch rv.Kind() {
		case reflect.Map, reflect.Slice, reflect.Ptr:
			if rv.IsNil() {
				r.body = nil
				return nil
			}
		}
		switch rv.Kind() {
		case reflect.Map, reflect.Slice, reflect.Array, reflect.Struct, reflect.Ptr:
			encoded, err := json.Marshal(v)
			if err != nil {
				return err
			}
			s = string(encoded)
			if r.Header(headerContentType) == "" {
				r.AddHeader(headerContentType, "application/json")
			}
		default:
			s = fmt.Sprint(v)
		}
	}
	r.body = &s
	return nil
}

// Body returns the current body.
func (r *Response) Body() string {
	if r.body == nil {
		return ""
	}
	return *r.body
}

// Sent reports whether Send, Redirect or Fail already completed.
func (r *Response) Sent() bool {
	return r.sent
}

// Send marks the response complete. Sending twice is an error and leaves
// the first result in place.
func (r *Response) Send() error {
	if r.sent {
		return ErrAlreadySent
	}
	r.sent = true
	return nil
}

// Redirect sends a 302 pointing at location.
func (r *Response) Redirect(location string) error {
	if r.sent {
		return ErrAlreadySent
	}
	r.SetStatusCode(http.StatusFound)
	r.AddHeader(headerLocation, location)
	return r.Send()
}

// Fail completes the response with an error. Client facing domain errors
// are rendered as a normal response with their status and a JSON body.
// Every other error is escalated: Result returns it in place of a response
// so that the platform records the invocation as failed.
func (r *Response) Fail(err error) error {
	if r.sent {
		return ErrAlreadySent
	}
	if err == nil {
		err = errors.New("response failed without a cause")
	}
	if e, ok := domain.AsPassthrough(err); ok {
		r.SetStatusCode(e.Status)
		if bodyErr := r.SetBody(e.Body()); bodyErr != nil {
			r.escalated = bodyErr
			r.sent = true
			return nil
		}
		return r.Send()
	}
	r.escalated = err
	r.sent = true
	return nil
}

// Escalated returns the error recorded by Fail when it was not client facing.
func (r *Response) Escalated() error {
	return r.escalated
}

// Result renders the accumulated response. When the response was failed
// with an escalated error that error is returned instead.
func (r *Response) Result() (events.APIGatewayProxyResponse, error) {
	if r.escalated != nil {
		return events.APIGatewayProxyResponse{}, r.escalated
	}
	out := events.APIGatewayProxyResponse{
		StatusCode: r.statusCode,
		Headers:    make(map[string]string, len(r.headers)),
		Body:       r.Body(),
	}
	for k, v := range r.headers {
		out.Headers[k] = v
	}
	multi := make(map[string][]string, len(r.multi)+1)
	for k, values := range r.multi {
		multi[k] = append([]string(nil), values...)
	}
	for _, c := range r.cookies {
		multi[headerSetCookie] = append(multi[headerSetCookie], c.String())
	}
	for k, values := range multi {
		if _, ok := out.Headers[k]; !ok {
			out.Headers[k] = values[len(values)-1]
		}
	}
	if len(multi) > 0 {
		out.MultiValueHeaders = multi
	}
	return out, nil
}
