package handlerfetcher

import (
	"context"

	"github.com/asecurityteam/lambdakit/pkg/domain"
	"github.com/asecurityteam/logevent/v2"
	"github.com/rs/xstats"
)

type loggingHandler struct {
	domain.Handler
	Logger domain.Logger
	Name   string
}

func (h *loggingHandler) Invoke(ctx context.Context, b []byte) ([]byte, error) {
	logger := h.Logger.Copy()
	logger.SetField("function_name", h.Name)
	return h.Handler.Invoke(logevent.NewContext(ctx, logger), b)
}

// Logging wraps each fetched Handler in a decorator that injects a copy of
// Logger, tagged with the function name, into every invocation.
type Logging struct {
	Logger  domain.Logger
	Fetcher domain.HandlerFetcher
}

// FetchHandler calls the underlying HandlerFetcher and adds log injection.
func (f *Logging) FetchHandler(ctx context.Context, name string) (domain.Handler, error) {
	h, err := f.Fetcher.FetchHandler(ctx, name)
	if err != nil {
		return nil, err
	}
	return &loggingHandler{Handler: h, Logger: f.Logger, Name: name}, nil
}

type statHandler struct {
	domain.Handler
	Stat domain.Stat
}

func (h *statHandler) Invoke(ctx context.Context, b []byte) ([]byte, error) {
	return h.Handler.Invoke(xstats.NewContext(ctx, h.Stat), b)
}

// Stat wraps each fetched Handler in a decorator that injects Stat into
// every invocation.
type Stat struct {
	Stat    domain.Stat
	Fetcher domain.HandlerFetcher
}

// FetchHandler calls the underlying HandlerFetcher and adds stat client
// injection.
func (f *Stat) FetchHandler(ctx context.Context, name string) (domain.Handler, error) {
	h, err := f.Fetcher.FetchHandler(ctx, name)
	if err != nil {
		return nil, err
	}
	return &statHandler{Handler: h, Stat: f.Stat}, nil
}
