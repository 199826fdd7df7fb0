package dynamo

import (
	"context"
	"fmt"
	"strconv"
	"strings"

	"github.com/asecurityteam/lambdakit/pkg/document"
	"github.com/asecurityteam/lambdakit/pkg/domain"
	"github.com/asecurityteam/lambdakit/pkg/request"
	"github.com/asecurityteam/lambdakit/pkg/response"
	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/feature/dynamodb/expression"
	"github.com/aws/aws-sdk-go-v2/service/dynamodb"
	"github.com/aws/aws-sdk-go-v2/service/dynamodb/types"
)

// SearchParameters narrow a search. Placeholder names used in the
// expressions must not start with #f, which is reserved for projections.
type SearchParameters struct {
	// IndexName overrides the configured index when set.
	IndexName         string
	KeyCondition      string
	Filter            string
	Names             map[string]string
	Values            map[string]types.AttributeValue
	ExclusiveStartKey map[string]types.AttributeValue
}

// SearchParametersFromExpression copies the key condition, filter and
// placeholders of an expression built with the expression package.
func SearchParametersFromExpression(expr expression.Expression) SearchParameters {
	return SearchParameters{
		KeyCondition: aws.ToString(expr.KeyCondition()),
		Filter:       aws.ToString(expr.Filter()),
		Names:        expr.Names(),
		Values:       expr.Values(),
	}
}

// SearchResult is the body of a search response.
type SearchResult struct {
	Items            []document.Document `json:"Items"`
	LastEvaluatedKey document.Document   `json:"LastEvaluatedKey,omitempty"`
}

// projection describes which attributes a read returns.
type projection struct {
	Select     types.Select
	Expression string
	Names      map[string]string
}

// newProjection derives a projection from a field list. An empty list
// returns the natively projected attributes, the AllFields sentinel returns
// every attribute, and anything else returns exactly the listed fields.
func newProjection(fields []string) projection {
	if len(fields) == 0 {
		return projection{Select: types.SelectAllProjectedAttributes}
	}
	for _, f := range fields {
		if f == AllFields {
			return projection{Select: types.SelectAllAttributes}
		}
	}
	names := make(map[string]string)
	placeholders := make(map[string]string)
	parts := make([]string, 0, len(fields))
	for _, f := range fields {
		segments := strings.Split(f, ".")
		for x, segment := range segments {
			p, ok := placeholders[segment]
			if !ok {
				p = "#f" + strconv.Itoa(len(placeholders))
				placeholders[segment] = p
				names[p] = segment
			}
			segments[x] = p
		}
		parts = append(parts, strings.Join(segments, "."))
	}
	return projection{
		Select:     types.SelectSpecificAttributes,
		Expression: strings.Join(parts, ", "),
		Names:      names,
	}
}

// Search implements rest.Resource.
func (h *Handler) Search(ctx context.Context, req *request.Request, resp *response.Response) error {
	if err := req.ValidateQueryString(h.querySchema()); err != nil {
		return err
	}
	params := SearchParameters{}
	if h.Hooks.SearchParameters != nil {
		var err error
		if params, err = h.Hooks.SearchParameters(ctx, req); err != nil {
			return err
		}
	}
	items, lastKey, err := h.search(ctx, h.limit(req), params)
	if err != nil {
		return err
	}
	result := SearchResult{Items: make([]document.Document, 0, len(items))}
	for _, item := range items {
		doc, err := fromItem(item)
		if err != nil {
			return fmt.Errorf("dynamo: decode item: %w", err)
		}
		formatted, err := h.format(ctx, req, doc)
		if err != nil {
			return err
		}
		result.Items = append(result.Items, formatted)
	}
	if len(lastKey) > 0 {
		if result.LastEvaluatedKey, err = fromItem(lastKey); err != nil {
			return fmt.Errorf("dynamo: decode last evaluated key: %w", err)
		}
	}
	if err := resp.SetBody(result); err != nil {
		return err
	}
	return resp.Send()
}

// limit is the page size of a search. Values that do not parse or are not
// positive fall back to the default so a page is never unbounded.
func (h *Handler) limit(req *request.Request) int {
	if raw := req.QueryStringParameter("limit", ""); raw != "" {
		if n, err := strconv.Atoi(raw); err == nil && n > 0 {
			return n
		}
	}
	return h.DefaultLimit
}

func (h *Handler) search(ctx context.Context, limit int, params SearchParameters) ([]map[string]types.AttributeValue, map[string]types.AttributeValue, error) {
	proj := newProjection(h.DefaultFields)
	names := mergeNames(params.Names, proj.Names)
	indexName := params.IndexName
	if indexName == "" {
		indexName = h.IndexName
	}

	if h.Strategy == StrategyScan {
		input := &dynamodb.ScanInput{
			TableName:         aws.String(h.TableName),
			Select:            proj.Select,
			ExclusiveStartKey: params.ExclusiveStartKey,
		}
		if filter := foldKeyCondition(params.KeyCondition, params.Filter); filter != "" {
			input.FilterExpression = aws.String(filter)
		}
		if proj.Expression != "" {
			input.ProjectionExpression = aws.String(proj.Expression)
		}
		if indexName != "" {
			input.IndexName = aws.String(indexName)
		}
		if limit > 0 {
			input.Limit = aws.Int32(int32(limit))
		}
		if len(names) > 0 {
			input.ExpressionAttributeNames = names
		}
		if len(params.Values) > 0 {
			input.ExpressionAttributeValues = params.Values
		}
		out, err := h.Client.Scan(ctx, input)
		if err != nil {
			return nil, nil, fmt.Errorf("dynamo: scan %s: %w", h.TableName, err)
		}
		return out.Items, out.LastEvaluatedKey, nil
	}

	input := &dynamodb.QueryInput{
		TableName:         aws.String(h.TableName),
		Select:            proj.Select,
		ExclusiveStartKey: params.ExclusiveStartKey,
	}
	if params.KeyCondition != "" {
		input.KeyConditionExpression = aws.String(params.KeyCondition)
	}
	if params.Filter != "" {
		input.FilterExpression = aws.String(params.Filter)
	}
	if proj.Expression != "" {
		input.ProjectionExpression = aws.String(proj.Expression)
	}
	if indexName != "" {
		input.IndexName = aws.String(indexName)
	}
	if limit > 0 {
		input.Limit = aws.Int32(int32(limit))
	}
	if len(names) > 0 {
		input.ExpressionAttributeNames = names
	}
	if len(params.Values) > 0 {
		input.ExpressionAttributeValues = params.Values
	}
	out, err := h.Client.Query(ctx, input)
	if err != nil {
		return nil, nil, fmt.Errorf("dynamo: query %s: %w", h.TableName, err)
	}
	return out.Items, out.LastEvaluatedKey, nil
}

// foldKeyCondition combines a key condition with a filter for scans, which
// have no key condition of their own.
func foldKeyCondition(keyCondition string, filter string) string {
	switch {
	case keyCondition == "":
		return filter
	case filter == "":
		return keyCondition
	default:
		return "(" + keyCondition + ") AND (" + filter + ")"
	}
}

func mergeNames(sets ...map[string]string) map[string]string {
	out := make(map[string]string)
	for _, set := range sets {
		for k, v := range set {
			out[k] = v
		}
	}
	return out
}

// Retrieve implements rest.Resource.
func (h *Handler) Retrieve(ctx context.Context, req *request.Request, resp *response.Response) error {
	key, err := h.key(ctx, req)
	if err != nil {
		return err
	}
	item, err := h.get(ctx, key, h.DefaultFields)
	if err != nil {
		return err
	}
	if item == nil {
		return domain.NewNotFound(req.PathParameter(h.idParameter(), ""))
	}
	formatted, err := h.format(ctx, req, item)
	if err != nil {
		return err
	}
	if err := resp.SetBody(formatted); err != nil {
		return err
	}
	return resp.Send()
}

// get fetches a single item. A missing item is returned as nil without an
// error.
func (h *Handler) get(ctx context.Context, key document.Document, fields []string) (document.Document, error) {
	av, err := toItem(key)
	if err != nil {
		return nil, fmt.Errorf("dynamo: encode key: %w", err)
	}
	input := &dynamodb.GetItemInput{
		TableName: aws.String(h.TableName),
		Key:       av,
	}
	if proj := newProjection(fields); proj.Expression != "" {
		input.ProjectionExpression = aws.String(proj.Expression)
		input.ExpressionAttributeNames = proj.Names
	}
	out, err := h.Client.GetItem(ctx, input)
	if err != nil {
		return nil, fmt.Errorf("dynamo: get item from %s: %w", h.TableName, err)
	}
	if len(out.Item) == 0 {
		return nil, nil
	}
	doc, err := fromItem(out.Item)
	if err != nil {
		return nil, fmt.Errorf("dynamo: decode item: %w", err)
	}
	return doc, nil
}
