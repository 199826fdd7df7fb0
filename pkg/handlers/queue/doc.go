// Package queue contains the producer and consumer sides of asynchronous
// event processing.
//
// Enqueue sends the inbound event to an SQS queue. ProcessQueue reads a
// batch from the queue and invokes one Lambda function per message. Every
// message is processed independently: a failed message is reported and
// left on the queue for redelivery while successful messages are deleted.
// The batch itself always completes with a 200 response carrying the
// number of successes and failures.
package queue
