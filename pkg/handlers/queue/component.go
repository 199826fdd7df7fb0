package queue

import (
	"context"
	"fmt"
	"time"

	"github.com/asecurityteam/lambdakit/pkg/domain"
)

// ProcessQueueConfig is the settings driven part of a ProcessQueue.
type ProcessQueueConfig struct {
	QueueURL          string        `description:"URL of the queue to drain."`
	FunctionName      string        `description:"Function invoked for every message. Empty routes by message attribute."`
	FunctionPrefix    string        `description:"Prefix added to every resolved function name."`
	RoutingAttribute  string        `description:"Message attribute naming the function for a message."`
	MaxMessages       int           `description:"Messages read per batch. Zero uses the queue default."`
	VisibilityTimeout int           `description:"Seconds a received message stays hidden. Zero uses the queue default."`
	InvocationTimeout time.Duration `description:"Upper bound on each invocation. Zero leaves invocations unbounded."`
	Quiet             bool          `description:"Disable batch logging."`
}

// Name of the configuration root.
func (*ProcessQueueConfig) Name() string {
	return "processqueue"
}

// ProcessQueueComponent builds a ProcessQueue from settings.
type ProcessQueueComponent struct {
	Queue  domain.SQSAPI
	Lambda domain.LambdaAPI
}

// NewProcessQueueComponent populates the default values.
func NewProcessQueueComponent(queue domain.SQSAPI, fn domain.LambdaAPI) *ProcessQueueComponent {
	return &ProcessQueueComponent{Queue: queue, Lambda: fn}
}

// Settings generates a config populated with the defaults.
func (*ProcessQueueComponent) Settings() *ProcessQueueConfig {
	return &ProcessQueueConfig{
		RoutingAttribute: DefaultRoutingAttribute,
	}
}

// New constructs a ProcessQueue from the given config.
func (c *ProcessQueueComponent) New(_ context.Context, conf *ProcessQueueConfig) (*ProcessQueue, error) {
	if conf.QueueURL == "" {
		return nil, fmt.Errorf("processqueue: queue url is required")
	}
	if conf.MaxMessages < 0 || conf.MaxMessages > 10 {
		return nil, fmt.Errorf("processqueue: max messages must be between 0 and 10, got %d", conf.MaxMessages)
	}
	if conf.VisibilityTimeout < 0 {
		return nil, fmt.Errorf("processqueue: visibility timeout must not be negative")
	}
	return &ProcessQueue{
		Queue:             c.Queue,
		Lambda:            c.Lambda,
		QueueURL:          conf.QueueURL,
		FunctionName:      conf.FunctionName,
		FunctionPrefix:    conf.FunctionPrefix,
		RoutingAttribute:  conf.RoutingAttribute,
		MaxMessages:       int32(conf.MaxMessages),
		VisibilityTimeout: int32(conf.VisibilityTimeout),
		InvocationTimeout: conf.InvocationTimeout,
		Quiet:             conf.Quiet,
	}, nil
}

// EnqueueConfig is the settings driven part of an Enqueue.
type EnqueueConfig struct {
	QueueURL         string `description:"URL of the queue receiving events."`
	FunctionName     string `description:"Function that should process the queued events."`
	RoutingAttribute string `description:"Message attribute naming the function."`
	TopicARN         string `description:"Optional topic notified of every queued event."`
}

// Name of the configuration root.
func (*EnqueueConfig) Name() string {
	return "enqueue"
}

// EnqueueComponent builds an Enqueue from settings.
type EnqueueComponent struct {
	Queue    domain.SQSAPI
	Notifier domain.SNSAPI
}

// NewEnqueueComponent populates the default values.
func NewEnqueueComponent(queue domain.SQSAPI, notifier domain.SNSAPI) *EnqueueComponent {
	return &EnqueueComponent{Queue: queue, Notifier: notifier}
}

// Settings generates a config populated with the defaults.
func (*EnqueueComponent) Settings() *EnqueueConfig {
	return &EnqueueConfig{
		RoutingAttribute: DefaultRoutingAttribute,
	}
}

// New constructs an Enqueue from the given config.
func (c *EnqueueComponent) New(_ context.Context, conf *EnqueueConfig) (*Enqueue, error) {
	if conf.QueueURL == "" {
		return nil, fmt.Errorf("enqueue: queue url is required")
	}
	if conf.TopicARN != "" && c.Notifier == nil {
		return nil, fmt.Errorf("enqueue: topic %s configured without a notification client", conf.TopicARN)
	}
	return &Enqueue{
		Queue:            c.Queue,
		Notifier:         c.Notifier,
		QueueURL:         conf.QueueURL,
		FunctionName:     conf.FunctionName,
		RoutingAttribute: conf.RoutingAttribute,
		TopicARN:         conf.TopicARN,
	}, nil
}
