// Package dynamo implements a RESTful collection stored in a DynamoDB table.
//
// Search and Retrieve read from the table, Create and Update write with an
// existence precondition, and Delete removes by key. Every item returned to
// a client has its blacklisted fields removed and passes through the Format
// hook. Client supplied items additionally lose their read-only fields
// before they are written.
package dynamo
