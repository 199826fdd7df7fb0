package lambdakit

import (
	"context"

	"github.com/asecurityteam/lambdakit/pkg/domain"
	"github.com/asecurityteam/lambdakit/pkg/handlerfetcher"
	"github.com/asecurityteam/runhttp"
	"github.com/asecurityteam/settings/v2"
)

// EnvPrefix is prepended to every setting read by the runtime.
const EnvPrefix = "LAMBDAKIT"

// NewStatic generates a runtime bound to the given handler mapping.
func NewStatic(ctx context.Context, s settings.Source, handlers map[string]domain.Handler) (*runhttp.Runtime, error) {
	return NewHTTP(ctx, s, &handlerfetcher.Static{Handlers: handlers})
}

// NewHTTP generates a runtime that serves every handler the fetcher
// resolves.
func NewHTTP(ctx context.Context, s settings.Source, f domain.HandlerFetcher) (*runhttp.Runtime, error) {
	conf := &RouterConfig{
		HandlerFetcher: f,
	}
	router := NewRouter(conf)
	rtC := &runhttp.Component{Handler: router}
	rt := new(runhttp.Runtime)
	err := settings.NewComponent(
		ctx,
		&settings.PrefixSource{Source: s, Prefix: []string{EnvPrefix}},
		rtC,
		rt,
	)
	return rt, err
}
