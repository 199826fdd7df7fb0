// Package proxy forwards proxy events to a remote HTTP service.
package proxy

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/asecurityteam/lambdakit/pkg/domain"
	"github.com/asecurityteam/lambdakit/pkg/logs"
	"github.com/asecurityteam/lambdakit/pkg/request"
	"github.com/asecurityteam/lambdakit/pkg/response"
	"github.com/asecurityteam/runhttp"
)

// PathParameter is the greedy path parameter holding the path relative to
// the proxied resource.
const PathParameter = "proxy"

// hopHeaders are never forwarded in either direction.
var hopHeaders = map[string]bool{
	"connection":          true,
	"host":                true,
	"keep-alive":          true,
	"proxy-authenticate":  true,
	"proxy-authorization": true,
	"te":                  true,
	"trailer":             true,
	"transfer-encoding":   true,
	"upgrade":             true,
	"content-length":      true,
}

// Proxy is a handlers.Processor that replays each request against Target
// and mirrors the upstream response. Failures to reach the upstream are
// reported as BadGateway.
type Proxy struct {
	Target *url.URL
	Client *http.Client
	LogFn  domain.LogFn
}

// Process implements handlers.Processor.
func (p *Proxy) Process(ctx context.Context, req *request.Request, resp *response.Response) error {
	upstream, err := p.newRequest(ctx, req)
	if err != nil {
		return err
	}
	res, err := p.Client.Do(upstream)
	if err != nil {
		p.logFn()(ctx).Warn(logs.UpstreamFailed{Target: p.Target.String(), Reason: err.Error()})
		return domain.NewBadGateway("upstream request failed", err)
	}
	defer res.Body.Close()
	body, err := io.ReadAll(res.Body)
	if err != nil {
		p.logFn()(ctx).Warn(logs.UpstreamFailed{Target: p.Target.String(), Reason: err.Error()})
		return domain.NewBadGateway("upstream response could not be read", err)
	}

	resp.SetStatusCode(res.StatusCode)
	for name, values := range res.Header {
		if hopHeaders[strings.ToLower(name)] || len(values) == 0 {
			continue
		}
		if len(values) > 1 {
			resp.AddMultiValueHeader(name, values...)
			continue
		}
		resp.AddHeader(name, values[0])
	}
	if len(body) > 0 {
		if err := resp.SetBody(string(body)); err != nil {
			return err
		}
	}
	return resp.Send()
}

func (p *Proxy) newRequest(ctx context.Context, req *request.Request) (*http.Request, error) {
	relative := req.PathParameter(PathParameter, strings.TrimPrefix(req.Path(), "/"))
	u := *p.Target
	u.Path = strings.TrimSuffix(u.Path, "/") + "/" + strings.TrimPrefix(relative, "/")
	u.RawQuery = upstreamQuery(req).Encode()

	var body io.Reader = http.NoBody
	if b := req.Body(); b != "" {
		body = strings.NewReader(b)
	}
	method := req.Method()
	if method == "" {
		method = http.MethodGet
	}
	upstream, err := http.NewRequestWithContext(ctx, method, u.String(), body)
	if err != nil {
		return nil, fmt.Errorf("proxy: build request: %w", err)
	}
	for k, v := range req.Headers() {
		if hopHeaders[k] {
			continue
		}
		upstream.Header.Set(k, v)
	}
	return upstream, nil
}

// upstreamQuery forwards the query string with the caller's casing and
// every repeated value.
func upstreamQuery(req *request.Request) url.Values {
	event := req.Event()
	query := url.Values{}
	for k, values := range event.MultiValueQueryStringParameters {
		for _, v := range values {
			query.Add(k, v)
		}
	}
	for k, v := range event.QueryStringParameters {
		if _, ok := query[k]; !ok {
			query.Set(k, v)
		}
	}
	return query
}

func (p *Proxy) logFn() domain.LogFn {
	if p.LogFn == nil {
		return runhttp.LoggerFromContext
	}
	return p.LogFn
}

// Config is the settings driven part of a Proxy.
type Config struct {
	Target  string        `description:"Base URL of the proxied service."`
	Timeout time.Duration `description:"Upper bound on each upstream request."`
}

// Name of the configuration root.
func (*Config) Name() string {
	return "proxy"
}

// Component builds a Proxy from settings.
type Component struct {
	// Transport is used by every Proxy built. The default is
	// http.DefaultTransport.
	Transport http.RoundTripper
}

// NewComponent populates the default values.
func NewComponent() *Component {
	return &Component{Transport: http.DefaultTransport}
}

// Settings generates a config populated with the defaults.
func (*Component) Settings() *Config {
	return &Config{Timeout: 10 * time.Second}
}

// New constructs a Proxy from the given config.
func (c *Component) New(_ context.Context, conf *Config) (*Proxy, error) {
	target, err := url.Parse(conf.Target)
	if err != nil {
		return nil, fmt.Errorf("proxy: invalid target %q: %w", conf.Target, err)
	}
	if target.Scheme == "" || target.Host == "" {
		return nil, fmt.Errorf("proxy: target %q must be an absolute URL", conf.Target)
	}
	return &Proxy{
		Target: target,
		Client: &http.Client{Transport: c.Transport, Timeout: conf.Timeout},
	}, nil
}
