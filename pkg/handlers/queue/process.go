package queue

import (
	"context"
	"fmt"
	"time"

	"github.com/asecurityteam/lambdakit/pkg/domain"
	"github.com/asecurityteam/lambdakit/pkg/logs"
	"github.com/asecurityteam/lambdakit/pkg/request"
	"github.com/asecurityteam/lambdakit/pkg/response"
	"github.com/asecurityteam/runhttp"
	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/service/lambda"
	lambdatypes "github.com/aws/aws-sdk-go-v2/service/lambda/types"
	"github.com/aws/aws-sdk-go-v2/service/sqs"
	"github.com/aws/aws-sdk-go-v2/service/sqs/types"
	"github.com/sourcegraph/conc/iter"
)

const (
	// DefaultRoutingAttribute is the message attribute naming the function
	// that processes a message.
	DefaultRoutingAttribute = "functionName"

	statMessageSuccess      = "queue.message.success"
	statMessageError        = "queue.message.error"
	statMessageCleanupError = "queue.message.cleanup_error"
)

// Report is the body of a ProcessQueue response.
type Report struct {
	ErrorCount   int `json:"errorCount"`
	SuccessCount int `json:"successCount"`
}

// Ledger holds the outcome of every message in a batch keyed by message id.
// A message appears in exactly one of the two maps.
type Ledger struct {
	// Successes holds the invocation payload of each processed message.
	Successes map[string][]byte
	// Errors holds the failure of each unprocessed message.
	Errors map[string]error
}

// Report summarizes the ledger.
func (l Ledger) Report() Report {
	return Report{ErrorCount: len(l.Errors), SuccessCount: len(l.Successes)}
}

type outcome struct {
	messageID    string
	functionName string
	payload      []byte
	err          error
}

// ProcessQueue is a handlers.Processor that drains one batch of messages
// per invocation by invoking a Lambda function for each.
type ProcessQueue struct {
	Queue  domain.SQSAPI
	Lambda domain.LambdaAPI

	QueueURL string
	// FunctionName is invoked for every message. When empty, each message
	// must name its function in the routing attribute.
	FunctionName string
	// FunctionPrefix is prepended to every resolved function name.
	FunctionPrefix   string
	RoutingAttribute string
	// MaxMessages and VisibilityTimeout use the queue defaults when zero.
	MaxMessages       int32
	VisibilityTimeout int32
	// InvocationTimeout bounds each invocation when positive.
	InvocationTimeout time.Duration
	// Quiet disables the per batch log output.
	Quiet bool

	LogFn  domain.LogFn
	StatFn domain.StatFn
}

// Process implements handlers.Processor.
func (h *ProcessQueue) Process(ctx context.Context, _ *request.Request, resp *response.Response) error {
	messages, err := h.ReadMessages(ctx)
	if err != nil {
		return err
	}
	ledger := h.ProcessMessages(ctx, messages)
	h.log(ctx, ledger)
	resp.SetStatusCode(200)
	if err := resp.SetBody(ledger.Report()); err != nil {
		return err
	}
	return resp.Send()
}

// ReadMessages receives a single batch from the queue.
func (h *ProcessQueue) ReadMessages(ctx context.Context) ([]types.Message, error) {
	input := &sqs.ReceiveMessageInput{
		QueueUrl:            aws.String(h.QueueURL),
		MaxNumberOfMessages: h.MaxMessages,
		VisibilityTimeout:   h.VisibilityTimeout,
	}
	if h.FunctionName == "" {
		input.MessageAttributeNames = []string{h.routingAttribute()}
	}
	out, err := h.Queue.ReceiveMessage(ctx, input)
	if err != nil {
		return nil, fmt.Errorf("queue: receive from %s: %w", h.QueueURL, err)
	}
	return out.Messages, nil
}

// ProcessMessages invokes a function for every message concurrently and
// waits for all of them. Messages are deleted from the queue only when
// their invocation succeeds.
func (h *ProcessQueue) ProcessMessages(ctx context.Context, messages []types.Message) Ledger {
	mapper := iter.Mapper[types.Message, outcome]{MaxGoroutines: len(messages)}
	outcomes := mapper.Map(messages, func(m *types.Message) outcome {
		return h.processMessage(ctx, m)
	})
	ledger := Ledger{
		Successes: make(map[string][]byte, len(outcomes)),
		Errors:    make(map[string]error),
	}
	stat := h.statFn()(ctx)
	logger := h.logFn()(ctx)
	for _, o := range outcomes {
		if o.err != nil {
			ledger.Errors[o.messageID] = o.err
			stat.Count(statMessageError, 1)
			if !h.Quiet {
				logger.Error(logs.MessageFailed{
					MessageID:    o.messageID,
					FunctionName: o.functionName,
					Reason:       o.err.Error(),
				})
			}
			continue
		}
		ledger.Successes[o.messageID] = o.payload
		stat.Count(statMessageSuccess, 1)
	}
	return ledger
}

func (h *ProcessQueue) processMessage(ctx context.Context, m *types.Message) outcome {
	o := outcome{messageID: aws.ToString(m.MessageId)}
	o.functionName = h.functionName(m)
	if o.functionName == "" {
		o.err = ErrUndeterminableFunction
		return o
	}
	invokeCtx := ctx
	if h.InvocationTimeout > 0 {
		var cancel context.CancelFunc
		invokeCtx, cancel = context.WithTimeout(ctx, h.InvocationTimeout)
		defer cancel()
	}
	out, err := h.Lambda.Invoke(invokeCtx, &lambda.InvokeInput{
		FunctionName:   aws.String(o.functionName),
		InvocationType: lambdatypes.InvocationTypeRequestResponse,
		Payload:        []byte(aws.ToString(m.Body)),
	})
	if err != nil {
		o.err = fmt.Errorf("invoke %s: %w", o.functionName, err)
		return o
	}
	if err := Classify(o.functionName, out); err != nil {
		o.err = err
		return o
	}
	o.payload = out.Payload
	h.cleanup(ctx, m)
	return o
}

// cleanup deletes a processed message. A failure is logged and counted but
// does not change the outcome of the message.
func (h *ProcessQueue) cleanup(ctx context.Context, m *types.Message) {
	_, err := h.Queue.DeleteMessage(ctx, &sqs.DeleteMessageInput{
		QueueUrl:      aws.String(h.QueueURL),
		ReceiptHandle: m.ReceiptHandle,
	})
	if err != nil {
		h.logFn()(ctx).Warn(logs.MessageCleanupFailed{
			MessageID: aws.ToString(m.MessageId),
			Reason:    err.Error(),
		})
		h.statFn()(ctx).Count(statMessageCleanupError, 1)
	}
}

// functionName resolves the function for a message. The routing attribute
// of the message wins over the configured FunctionName.
func (h *ProcessQueue) functionName(m *types.Message) string {
	name := h.FunctionName
	if attr, ok := m.MessageAttributes[h.routingAttribute()]; ok && aws.ToString(attr.StringValue) != "" {
		name = aws.ToString(attr.StringValue)
	}
	if name == "" {
		return ""
	}
	return h.FunctionPrefix + name
}

// log reports the batch totals. Failed messages are logged individually
// as they are collected.
func (h *ProcessQueue) log(ctx context.Context, ledger Ledger) {
	if h.Quiet {
		return
	}
	report := ledger.Report()
	h.logFn()(ctx).Info(logs.BatchCompleted{SuccessCount: report.SuccessCount, ErrorCount: report.ErrorCount})
}

func (h *ProcessQueue) routingAttribute() string {
	if h.RoutingAttribute == "" {
		return DefaultRoutingAttribute
	}
	return h.RoutingAttribute
}

func (h *ProcessQueue) logFn() domain.LogFn {
	if h.LogFn == nil {
		return runhttp.LoggerFromContext
	}
	return h.LogFn
}

func (h *ProcessQueue) statFn() domain.StatFn {
	if h.StatFn == nil {
		return runhttp.StatFromContext
	}
	return h.StatFn
}
