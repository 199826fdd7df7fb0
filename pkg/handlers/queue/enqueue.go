package queue

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/asecurityteam/lambdakit/pkg/domain"
	"github.com/asecurityteam/lambdakit/pkg/logs"
	"github.com/asecurityteam/lambdakit/pkg/request"
	"github.com/asecurityteam/lambdakit/pkg/response"
	"github.com/asecurityteam/runhttp"
	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/service/sns"
	"github.com/aws/aws-sdk-go-v2/service/sqs"
	"github.com/aws/aws-sdk-go-v2/service/sqs/types"
)

// Notification is published to the companion topic after a message is
// queued.
type Notification struct {
	QueueURL  string `json:"queueUrl"`
	MessageID string `json:"messageId"`
}

// Receipt is the body of an Enqueue response.
type Receipt struct {
	MessageID string `json:"messageId"`
}

// Enqueue is a handlers.Processor that sends the inbound event to a queue
// for later processing by ProcessQueue.
type Enqueue struct {
	Queue    domain.SQSAPI
	Notifier domain.SNSAPI

	QueueURL string
	// FunctionName, when set, is written to the routing attribute of the
	// message.
	FunctionName     string
	RoutingAttribute string
	// TopicARN, when set, receives a Notification for every queued
	// message. Publish failures are logged and otherwise ignored.
	TopicARN string

	LogFn domain.LogFn
}

// Process implements handlers.Processor.
func (h *Enqueue) Process(ctx context.Context, req *request.Request, resp *response.Response) error {
	body, err := json.Marshal(req.Event())
	if err != nil {
		return fmt.Errorf("queue: encode event: %w", err)
	}
	input := &sqs.SendMessageInput{
		QueueUrl:    aws.String(h.QueueURL),
		MessageBody: aws.String(string(body)),
	}
	if h.FunctionName != "" {
		input.MessageAttributes = map[string]types.MessageAttributeValue{
			h.routingAttribute(): {
				DataType:    aws.String("String"),
				StringValue: aws.String(h.FunctionName),
			},
		}
	}
	out, err := h.Queue.SendMessage(ctx, input)
	if err != nil {
		return fmt.Errorf("queue: send to %s: %w", h.QueueURL, err)
	}
	messageID := aws.ToString(out.MessageId)
	h.notify(ctx, messageID)

	if err := resp.SetBody(Receipt{MessageID: messageID}); err != nil {
		return err
	}
	return resp.Send()
}

func (h *Enqueue) notify(ctx context.Context, messageID string) {
	if h.TopicARN == "" || h.Notifier == nil {
		return
	}
	message, err := json.Marshal(Notification{QueueURL: h.QueueURL, MessageID: messageID})
	if err == nil {
		_, err = h.Notifier.Publish(ctx, &sns.PublishInput{
			TopicArn: aws.String(h.TopicARN),
			Message:  aws.String(string(message)),
		})
	}
	if err != nil {
		h.logFn()(ctx).Warn(logs.NotificationFailed{Topic: h.TopicARN, Reason: err.Error()})
	}
}

func (h *Enqueue) routingAttribute() string {
	if h.RoutingAttribute == "" {
		return DefaultRoutingAttribute
	}
	return h.RoutingAttribute
}

func (h *Enqueue) logFn() domain.LogFn {
	if h.LogFn == nil {
		return runhttp.LoggerFromContext
	}
	return h.LogFn
}
