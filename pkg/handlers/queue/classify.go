package queue

import (
	"encoding/json"
	"errors"
	"fmt"
	"strconv"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/service/lambda"
)

// ErrUndeterminableFunction is recorded for messages that name no function
// when the processor has no function configured.
var ErrUndeterminableFunction = errors.New("unable to determine the function for message")

// statusFields are the payload fields checked, in order, for an HTTP style
// status code.
var statusFields = []string{"statusCode", "StatusCode", "status"}

// InvocationError describes an invocation classified as a failure.
type InvocationError struct {
	FunctionName  string
	StatusCode    int
	FunctionError string
	Payload       string
}

func (e *InvocationError) Error() string {
	if e.FunctionError != "" {
		return fmt.Sprintf("function %s failed with %s error (%d): %s", e.FunctionName, e.FunctionError, e.StatusCode, e.Payload)
	}
	return fmt.Sprintf("function %s failed with status %d: %s", e.FunctionName, e.StatusCode, e.Payload)
}

// Classify returns an error when an invocation failed. A platform status of
// 400 or more, or a function error marker, is a failure. Otherwise a JSON
// object payload whose status field is 400 or more is a failure. Anything
// else is a success.
func Classify(functionName string, out *lambda.InvokeOutput) error {
	if out == nil {
		return &InvocationError{FunctionName: functionName}
	}
	if out.StatusCode >= 400 || aws.ToString(out.FunctionError) != "" {
		return &InvocationError{
			FunctionName:  functionName,
			StatusCode:    int(out.StatusCode),
			FunctionError: aws.ToString(out.FunctionError),
			Payload:       string(out.Payload),
		}
	}
	if status, ok := payloadStatus(out.Payload); ok && status >= 400 {
		return &InvocationError{
			FunctionName: functionName,
			StatusCode:   status,
			Payload:      string(out.Payload),
		}
	}
	return nil
}

func payloadStatus(payload []byte) (int, bool) {
	if len(payload) == 0 {
		return 0, false
	}
	var obj map[string]interface{}
	if err := json.Unmarshal(payload, &obj); err != nil {
		return 0, false
	}
	for _, field := range statusFields {
		switch v := obj[field].(type) {
		case float64:
			return int(v), true
		case string:
			if n, err := strconv.Atoi(v); err == nil {
				return n, true
			}
		}
	}
	return 0, false
}
