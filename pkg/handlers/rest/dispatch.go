package rest

import (
	"context"
	"net/http"

	"github.com/asecurityteam/lambdakit/pkg/domain"
	"github.com/asecurityteam/lambdakit/pkg/request"
	"github.com/asecurityteam/lambdakit/pkg/response"
)

// DefaultIDParameter is the path parameter naming a single resource.
const DefaultIDParameter = "id"

// Resource implements the operations of a RESTful collection.
type Resource interface {
	Search(ctx context.Context, req *request.Request, resp *response.Response) error
	Retrieve(ctx context.Context, req *request.Request, resp *response.Response) error
	Create(ctx context.Context, req *request.Request, resp *response.Response) error
	Update(ctx context.Context, req *request.Request, resp *response.Response) error
	Delete(ctx context.Context, req *request.Request, resp *response.Response) error
}

// Dispatcher is a handlers.Processor that routes each request to one
// Resource operation.
//
//	verb      single     collection
//	GET       Retrieve   Search
//	POST      405        Create
//	PUT       Update     405
//	DELETE    Delete     405
//	OPTIONS   200        200
type Dispatcher struct {
	Resource Resource
	// IDParameter overrides DefaultIDParameter.
	IDParameter string
	// IsSingle overrides the single resource detection.
	IsSingle func(req *request.Request) bool
}

// Process implements handlers.Processor.
func (d *Dispatcher) Process(ctx context.Context, req *request.Request, resp *response.Response) error {
	single := d.isSingle(req)
	switch req.Method() {
	case http.MethodOptions:
		return resp.Send()
	case http.MethodGet:
		if single {
			return d.Resource.Retrieve(ctx, req, resp)
		}
		return d.Resource.Search(ctx, req, resp)
	case http.MethodPost:
		if !single {
			return d.Resource.Create(ctx, req, resp)
		}
	case http.MethodPut:
		if single {
			return d.Resource.Update(ctx, req, resp)
		}
	case http.MethodDelete:
		if single {
			return d.Resource.Delete(ctx, req, resp)
		}
	}
	return domain.NewMethodNotAllowed(req.Method())
}

func (d *Dispatcher) isSingle(req *request.Request) bool {
	if d.IsSingle != nil {
		return d.IsSingle(req)
	}
	return req.PathParameter(d.idParameter(), "") != ""
}

func (d *Dispatcher) idParameter() string {
	if d.IDParameter == "" {
		return DefaultIDParameter
	}
	return d.IDParameter
}
