package logs

// UnhandledError is logged when a handler fails with an error that is not
// client facing and the invocation is escalated to the platform.
type UnhandledError struct {
	Reason  string `logevent:"reason"`
	Message string `logevent:"message,default=unhandled-error"`
}

// ClientError is logged when a handler fails with a client facing error.
type ClientError struct {
	Kind    string `logevent:"kind"`
	Status  int    `logevent:"status"`
	Reason  string `logevent:"reason"`
	Message string `logevent:"message,default=client-error"`
}

// AuthorizationFailed is logged when the authorization step rejects a caller.
type AuthorizationFailed struct {
	Reason  string `logevent:"reason"`
	Message string `logevent:"message,default=authorization-failed"`
}

// MessageFailed is logged for each queue message that could not be processed.
type MessageFailed struct {
	MessageID    string `logevent:"message_id"`
	FunctionName string `logevent:"function_name"`
	Reason       string `logevent:"reason"`
	Message      string `logevent:"message,default=queue-message-failed"`
}

// MessageCleanupFailed is logged when a processed message could not be
// removed from the queue.
type MessageCleanupFailed struct {
	MessageID string `logevent:"message_id"`
	Reason    string `logevent:"reason"`
	Message   string `logevent:"message,default=queue-message-cleanup-failed"`
}

// BatchCompleted is logged after each fan-out batch.
type BatchCompleted struct {
	SuccessCount int    `logevent:"success_count"`
	ErrorCount   int    `logevent:"error_count"`
	Message      string `logevent:"message,default=queue-batch-completed"`
}

// NotificationFailed is logged when a companion notification could not be
// published. The failure never fails the request that triggered it.
type NotificationFailed struct {
	Topic   string `logevent:"topic"`
	Reason  string `logevent:"reason"`
	Message string `logevent:"message,default=notification-failed"`
}

// UpstreamFailed is logged when a proxied request could not be completed.
type UpstreamFailed struct {
	Target  string `logevent:"target"`
	Reason  string `logevent:"reason"`
	Message string `logevent:"message,default=upstream-failed"`
}

// InvocationFailed is logged when a locally hosted function fails with an
// error instead of a response.
type InvocationFailed struct {
	FunctionName string `logevent:"function_name"`
	Reason       string `logevent:"reason"`
	Message      string `logevent:"message,default=invocation-failed"`
}
