package dynamo

import (
	"context"

	"github.com/asecurityteam/lambdakit/pkg/document"
	"github.com/asecurityteam/lambdakit/pkg/domain"
	"github.com/asecurityteam/lambdakit/pkg/handlers/rest"
	"github.com/asecurityteam/lambdakit/pkg/request"
	"github.com/asecurityteam/lambdakit/pkg/response"
	"github.com/aws/aws-sdk-go-v2/feature/dynamodb/attributevalue"
	"github.com/aws/aws-sdk-go-v2/service/dynamodb/types"
	"github.com/google/uuid"
)

// Hooks are the override points of a Handler. Every hook is optional.
type Hooks struct {
	// SearchParameters supplies the key condition, filter, placeholders and
	// pagination cursor of a search. The default searches without any of
	// them.
	SearchParameters func(ctx context.Context, req *request.Request) (SearchParameters, error)
	// Key resolves the key of the addressed item. The default uses the
	// identifier path parameter as the value of the key attribute.
	Key func(ctx context.Context, req *request.Request) (document.Document, error)
	// NewKey generates the key of a created item. The default is a random
	// UUID.
	NewKey func(ctx context.Context, req *request.Request) (document.Document, error)
	// BeforeCreate may augment an item before it is written.
	BeforeCreate func(ctx context.Context, req *request.Request, item document.Document) (document.Document, error)
	// BeforeUpdate combines the stored merge fields with the update. The
	// default deep merges old into item with values from item winning.
	BeforeUpdate func(ctx context.Context, req *request.Request, old document.Document, item document.Document) (document.Document, error)
	// Format may augment an item after redaction and before it is returned.
	Format func(ctx context.Context, req *request.Request, item document.Document) (document.Document, error)
}

// Handler is a rest.Resource over a single table. It is also a
// handlers.Processor that dispatches through rest.Dispatcher.
type Handler struct {
	Client            domain.DynamoDBAPI
	TableName         string
	IndexName         string
	DefaultLimit      int
	DefaultFields     []string
	BlacklistedFields []string
	ReadOnlyFields    []string
	MergeFields       []string
	Strategy          Strategy
	IDParameter       string
	KeyAttribute      string
	// QuerySchema validates search query strings. The default is
	// request.DefaultQuerySchema.
	QuerySchema request.Schema
	// ItemSchema validates items before they are written. The default
	// requires the key attribute to be a UUID.
	ItemSchema request.Schema
	Hooks      Hooks
}

var _ rest.Resource = (*Handler)(nil)

// Process implements handlers.Processor.
func (h *Handler) Process(ctx context.Context, req *request.Request, resp *response.Response) error {
	d := &rest.Dispatcher{Resource: h, IDParameter: h.idParameter()}
	return d.Process(ctx, req, resp)
}

func (h *Handler) idParameter() string {
	if h.IDParameter == "" {
		return rest.DefaultIDParameter
	}
	return h.IDParameter
}

func (h *Handler) keyAttribute() string {
	if h.KeyAttribute == "" {
		return "id"
	}
	return h.KeyAttribute
}

func (h *Handler) querySchema() request.Schema {
	if h.QuerySchema == nil {
		return request.DefaultQuerySchema
	}
	return h.QuerySchema
}

func (h *Handler) itemSchema() request.Schema {
	if h.ItemSchema == nil {
		return request.Schema{h.keyAttribute(): "required,uuid4"}
	}
	return h.ItemSchema
}

func (h *Handler) key(ctx context.Context, req *request.Request) (document.Document, error) {
	if h.Hooks.Key != nil {
		return h.Hooks.Key(ctx, req)
	}
	return document.Document{h.keyAttribute(): req.PathParameter(h.idParameter(), "")}, nil
}

func (h *Handler) newKey(ctx context.Context, req *request.Request) (document.Document, error) {
	if h.Hooks.NewKey != nil {
		return h.Hooks.NewKey(ctx, req)
	}
	return document.Document{h.keyAttribute(): uuid.NewString()}, nil
}

// ScrubForRead removes the blacklisted fields from item.
func (h *Handler) ScrubForRead(item document.Document) document.Document {
	return document.Redact(item, h.BlacklistedFields...)
}

// ScrubForWrite removes the blacklisted and read-only fields from item.
func (h *Handler) ScrubForWrite(item document.Document) document.Document {
	paths := make([]string, 0, len(h.BlacklistedFields)+len(h.ReadOnlyFields))
	paths = append(paths, h.BlacklistedFields...)
	paths = append(paths, h.ReadOnlyFields...)
	return document.Redact(item, paths...)
}

// format prepares an item for a client.
func (h *Handler) format(ctx context.Context, req *request.Request, item document.Document) (document.Document, error) {
	item = h.ScrubForRead(item)
	if h.Hooks.Format != nil {
		return h.Hooks.Format(ctx, req, item)
	}
	return item, nil
}

// Document attribute conversions.

func toItem(d document.Document) (map[string]types.AttributeValue, error) {
	return attributevalue.MarshalMap(map[string]interface{}(d))
}

func fromItem(item map[string]types.AttributeValue) (document.Document, error) {
	out := make(map[string]interface{}, len(item))
	if err := attributevalue.UnmarshalMap(item, &out); err != nil {
		return nil, err
	}
	return document.Document(out), nil
}
