package handlers

import (
	"context"
	"strings"

	"github.com/asecurityteam/lambdakit/pkg/request"
)

const wildcardOrigin = "*"

var (
	defaultAllowMethods = []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"}
	defaultAllowHeaders = []string{"authorization", "content-type"}
)

// AllowOrigins is a static CORSPolicy. A request Origin that matches one of
// Origins is echoed back. Otherwise a wildcard entry allows any origin.
// Requests from other origins receive no CORS headers.
type AllowOrigins struct {
	Origins          []string
	AllowCredentials bool
	AllowMethods     []string
	AllowHeaders     []string
}

// Headers implements CORSPolicy.
func (a AllowOrigins) Headers(req *request.Request) map[string]string {
	allowed := a.allowedOrigin(req.Origin())
	if allowed == "" {
		return map[string]string{}
	}
	methods := a.AllowMethods
	if len(methods) == 0 {
		methods = defaultAllowMethods
	}
	headers := a.AllowHeaders
	if len(headers) == 0 {
		headers = defaultAllowHeaders
	}
	out := map[string]string{
		"access-control-allow-origin":  allowed,
		"access-control-allow-methods": strings.Join(methods, ","),
		"access-control-allow-headers": strings.Join(headers, ","),
	}
	if allowed != wildcardOrigin {
		out["vary"] = "origin"
		if a.AllowCredentials {
			out["access-control-allow-credentials"] = "true"
		}
	}
	return out
}

func (a AllowOrigins) allowedOrigin(origin string) string {
	wildcard := false
	for _, o := range a.Origins {
		if o == wildcardOrigin {
			wildcard = true
			continue
		}
		if origin != "" && strings.EqualFold(o, origin) {
			return origin
		}
	}
	if wildcard {
		return wildcardOrigin
	}
	return ""
}

// CORSConfig is the settings driven part of an AllowOrigins policy.
type CORSConfig struct {
	Origins          []string `description:"Origins allowed to call the handler. Use * to allow any origin."`
	AllowCredentials bool     `description:"Allow credentialed requests from matching origins."`
	AllowMethods     []string `description:"Methods advertised to browsers."`
	AllowHeaders     []string `description:"Request headers advertised to browsers."`
}

// Name of the configuration root.
func (*CORSConfig) Name() string {
	return "cors"
}

// CORSComponent builds an AllowOrigins policy from settings.
type CORSComponent struct{}

// Settings generates a config populated with the defaults.
func (*CORSComponent) Settings() *CORSConfig {
	return &CORSConfig{
		AllowMethods: append([]string(nil), defaultAllowMethods...),
		AllowHeaders: append([]string(nil), defaultAllowHeaders...),
	}
}

// New constructs the policy.
func (*CORSComponent) New(_ context.Context, conf *CORSConfig) (*AllowOrigins, error) {
	return &AllowOrigins{
		Origins:          conf.Origins,
		AllowCredentials: conf.AllowCredentials,
		AllowMethods:     conf.AllowMethods,
		AllowHeaders:     conf.AllowHeaders,
	}, nil
}
