package lambdakit

import (
	"context"
	"os"

	"github.com/asecurityteam/lambdakit/pkg/domain"
	"github.com/asecurityteam/lambdakit/pkg/handlerfetcher"
	"github.com/asecurityteam/logevent/v2"
)

// LoggerConfig configures the logger used outside of the HTTP runtime.
type LoggerConfig struct {
	Level string `description:"The minimum level of logs to emit. One of DEBUG, INFO, WARN, ERROR."`
}

// Name of the configuration root.
func (*LoggerConfig) Name() string {
	return "logger"
}

// LoggerComponent decorates a HandlerFetcher so that every invocation gets
// a logger writing to stdout, where the Lambda platform collects it.
type LoggerComponent struct {
	Fetcher domain.HandlerFetcher
}

// Settings generates a config populated with the defaults.
func (*LoggerComponent) Settings() *LoggerConfig {
	return &LoggerConfig{Level: "INFO"}
}

// New constructs the decorated fetcher.
func (c *LoggerComponent) New(_ context.Context, conf *LoggerConfig) (*handlerfetcher.Logging, error) {
	return &handlerfetcher.Logging{
		Logger:  logevent.New(logevent.Config{Level: conf.Level, Output: os.Stdout}),
		Fetcher: c.Fetcher,
	}, nil
}
