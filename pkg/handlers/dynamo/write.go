package dynamo

import (
	"context"
	"errors"
	"fmt"
	"net/http"

	"github.com/asecurityteam/lambdakit/pkg/document"
	"github.com/asecurityteam/lambdakit/pkg/domain"
	"github.com/asecurityteam/lambdakit/pkg/request"
	"github.com/asecurityteam/lambdakit/pkg/response"
	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/feature/dynamodb/expression"
	"github.com/aws/aws-sdk-go-v2/service/dynamodb"
	"github.com/aws/aws-sdk-go-v2/service/dynamodb/types"
)

// Create implements rest.Resource.
func (h *Handler) Create(ctx context.Context, req *request.Request, resp *response.Response) error {
	body, err := req.BodyAsJSON()
	if err != nil {
		return err
	}
	key, err := h.newKey(ctx, req)
	if err != nil {
		return err
	}
	item := withKey(h.ScrubForWrite(body), key)
	if err := h.itemSchema().Validate(item); err != nil {
		return err
	}
	if h.Hooks.BeforeCreate != nil {
		if item, err = h.Hooks.BeforeCreate(ctx, req, item); err != nil {
			return err
		}
	}
	cond := expression.AttributeNotExists(expression.Name(h.keyAttribute()))
	if err := h.put(ctx, item, cond); err != nil {
		return err
	}
	return h.respond(ctx, req, resp, http.StatusCreated, item)
}

// Update implements rest.Resource. A missing item is reported as not found
// both when fetching the merge fields and when the write precondition
// fails.
func (h *Handler) Update(ctx context.Context, req *request.Request, resp *response.Response) error {
	key, err := h.key(ctx, req)
	if err != nil {
		return err
	}
	body, err := req.BodyAsJSON()
	if err != nil {
		return err
	}
	item := withKey(h.ScrubForWrite(body), key)
	if err := h.itemSchema().Validate(item); err != nil {
		return err
	}
	old := document.Document{}
	if len(h.MergeFields) > 0 {
		if old, err = h.get(ctx, key, h.MergeFields); err != nil {
			return err
		}
		if old == nil {
			return domain.NewNotFound(req.PathParameter(h.idParameter(), ""))
		}
	}
	if h.Hooks.BeforeUpdate != nil {
		item, err = h.Hooks.BeforeUpdate(ctx, req, old, item)
	} else {
		item, err = document.Merge(old, item)
	}
	if err != nil {
		return err
	}
	cond := expression.AttributeExists(expression.Name(h.keyAttribute()))
	err = h.put(ctx, item, cond)
	var conditionFailed *types.ConditionalCheckFailedException
	if errors.As(err, &conditionFailed) {
		return domain.NewNotFound(req.PathParameter(h.idParameter(), ""))
	}
	if err != nil {
		return err
	}
	return h.respond(ctx, req, resp, http.StatusOK, item)
}

// Delete implements rest.Resource.
func (h *Handler) Delete(ctx context.Context, req *request.Request, resp *response.Response) error {
	key, err := h.key(ctx, req)
	if err != nil {
		return err
	}
	av, err := toItem(key)
	if err != nil {
		return fmt.Errorf("dynamo: encode key: %w", err)
	}
	_, err = h.Client.DeleteItem(ctx, &dynamodb.DeleteItemInput{
		TableName: aws.String(h.TableName),
		Key:       av,
	})
	if err != nil {
		return fmt.Errorf("dynamo: delete item from %s: %w", h.TableName, err)
	}
	resp.SetStatusCode(http.StatusNoContent)
	if err := resp.SetBody(nil); err != nil {
		return err
	}
	return resp.Send()
}

func (h *Handler) put(ctx context.Context, item document.Document, cond expression.ConditionBuilder) error {
	expr, err := expression.NewBuilder().WithCondition(cond).Build()
	if err != nil {
		return fmt.Errorf("dynamo: build condition: %w", err)
	}
	av, err := toItem(item)
	if err != nil {
		return fmt.Errorf("dynamo: encode item: %w", err)
	}
	input := &dynamodb.PutItemInput{
		TableName:           aws.String(h.TableName),
		Item:                av,
		ConditionExpression: expr.Condition(),
	}
	if names := expr.Names(); len(names) > 0 {
		input.ExpressionAttributeNames = names
	}
	if values := expr.Values(); len(values) > 0 {
		input.ExpressionAttributeValues = values
	}
	if _, err := h.Client.PutItem(ctx, input); err != nil {
		return fmt.Errorf("dynamo: put item to %s: %w", h.TableName, err)
	}
	return nil
}

func (h *Handler) respond(ctx context.Context, req *request.Request, resp *response.Response, status int, item document.Document) error {
	formatted, err := h.format(ctx, req, item)
	if err != nil {
		return err
	}
	resp.SetStatusCode(status)
	if err := resp.SetBody(formatted); err != nil {
		return err
	}
	return resp.Send()
}

// withKey sets every key attribute on item, replacing client values.
func withKey(item document.Document, key document.Document) document.Document {
	for k, v := range key {
		item[k] = v
	}
	return item
}
