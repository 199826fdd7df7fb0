package main

// This example wires every handler type into a single binary that runs
// either as a native Lambda function or as a local HTTP runtime:
//
//	items         CRUD resource over a DynamoDB table, optionally behind JWT auth
//	enqueue       accepts any request and queues it for later processing
//	processqueue  drains the queue and fans messages out to functions
//	proxy         forwards requests to a remote HTTP service
//
// Each handler reads its settings from the environment under its own
// prefix, for example LAMBDAKIT_ITEMS_DYNAMO_TABLENAME. Run with -h to
// list them. When running locally, processqueue may target the local
// runtime by setting AWS_ENDPOINT_URL_LAMBDA to its address.

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"os"
	"strings"
	"time"

	lambdakit "github.com/asecurityteam/lambdakit/pkg"
	"github.com/asecurityteam/lambdakit/pkg/auth"
	"github.com/asecurityteam/lambdakit/pkg/document"
	"github.com/asecurityteam/lambdakit/pkg/domain"
	"github.com/asecurityteam/lambdakit/pkg/handlerfetcher"
	"github.com/asecurityteam/lambdakit/pkg/handlers"
	"github.com/asecurityteam/lambdakit/pkg/handlers/dynamo"
	"github.com/asecurityteam/lambdakit/pkg/handlers/proxy"
	"github.com/asecurityteam/lambdakit/pkg/handlers/queue"
	"github.com/asecurityteam/lambdakit/pkg/request"
	"github.com/asecurityteam/settings/v2"
	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/feature/dynamodb/expression"
	"github.com/aws/aws-sdk-go-v2/service/dynamodb"
	awslambda "github.com/aws/aws-sdk-go-v2/service/lambda"
	"github.com/aws/aws-sdk-go-v2/service/sns"
	"github.com/aws/aws-sdk-go-v2/service/sqs"
)

type builder func(ctx context.Context, s settings.Source, cfg aws.Config) (handlers.Processor, error)

var builders = map[string]builder{
	"items":        newItems,
	"enqueue":      newEnqueue,
	"processqueue": newProcessQueue,
	"proxy":        newProxy,
}

// itemSchema validates every written item.
var itemSchema = request.Schema{
	"id":   "required,uuid4",
	"name": "required,min=1,max=128",
	"tags": "omitempty,max=16",
}

func itemQuerySchema() request.Schema {
	s := request.Schema{"name": "omitempty,max=128"}
	for k, v := range request.DefaultQuerySchema {
		s[k] = v
	}
	return s
}

func newItems(ctx context.Context, s settings.Source, cfg aws.Config) (handlers.Processor, error) {
	c := dynamo.NewComponent(dynamodb.NewFromConfig(cfg))
	c.ItemSchema = itemSchema
	c.QuerySchema = itemQuerySchema()
	c.Hooks = dynamo.Hooks{
		SearchParameters: func(_ context.Context, req *request.Request) (dynamo.SearchParameters, error) {
			name := req.QueryStringParameter("name", "")
			if name == "" {
				return dynamo.SearchParameters{}, nil
			}
			expr, err := expression.NewBuilder().
				WithFilter(expression.Name("name").Equal(expression.Value(name))).
				Build()
			if err != nil {
				return dynamo.SearchParameters{}, err
			}
			return dynamo.SearchParametersFromExpression(expr), nil
		},
		BeforeCreate: func(ctx context.Context, _ *request.Request, item document.Document) (document.Document, error) {
			item["createdAt"] = time.Now().UTC().Format(time.RFC3339)
			item["createdBy"] = domain.UserFromContext(ctx).ID
			return item, nil
		},
	}
	h := new(dynamo.Handler)
	if err := settings.NewComponent(ctx, s, c, h); err != nil {
		return nil, err
	}
	return h, nil
}

func newEnqueue(ctx context.Context, s settings.Source, cfg aws.Config) (handlers.Processor, error) {
	c := queue.NewEnqueueComponent(sqs.NewFromConfig(cfg), sns.NewFromConfig(cfg))
	h := new(queue.Enqueue)
	if err := settings.NewComponent(ctx, s, c, h); err != nil {
		return nil, err
	}
	return h, nil
}

func newProcessQueue(ctx context.Context, s settings.Source, cfg aws.Config) (handlers.Processor, error) {
	c := queue.NewProcessQueueComponent(sqs.NewFromConfig(cfg), awslambda.NewFromConfig(cfg))
	h := new(queue.ProcessQueue)
	if err := settings.NewComponent(ctx, s, c, h); err != nil {
		return nil, err
	}
	return h, nil
}

func newProxy(ctx context.Context, s settings.Source, _ aws.Config) (handlers.Processor, error) {
	h := new(proxy.Proxy)
	if err := settings.NewComponent(ctx, s, proxy.NewComponent(), h); err != nil {
		return nil, err
	}
	return h, nil
}

// newLifecycle builds the named handler and wraps it with the CORS policy
// and, when a secret is configured, the JWT authorizer.
func newLifecycle(ctx context.Context, source settings.Source, cfg aws.Config, name string) (domain.Handler, error) {
	s := &settings.PrefixSource{Source: source, Prefix: []string{lambdakit.EnvPrefix, name}}
	p, err := builders[name](ctx, s, cfg)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", name, err)
	}
	cors := new(handlers.AllowOrigins)
	if err := settings.NewComponent(ctx, s, &handlers.CORSComponent{}, cors); err != nil {
		return nil, fmt.Errorf("%s: %w", name, err)
	}
	lc := &handlers.Lifecycle{Processor: p, CORS: cors}
	jwt := new(auth.JWT)
	err = settings.NewComponent(ctx, s, auth.NewComponent(), jwt)
	switch {
	case err == nil:
		lc.Authorizer = jwt
	case errors.Is(err, auth.ErrMissingSecret):
	default:
		return nil, fmt.Errorf("%s: %w", name, err)
	}
	return lc.Lambda(), nil
}

func newFetcher(ctx context.Context, source settings.Source, cfg aws.Config, names ...string) (*handlerfetcher.Static, error) {
	fetcher := &handlerfetcher.Static{Handlers: make(map[string]domain.Handler, len(names))}
	for _, name := range names {
		if _, ok := builders[name]; !ok {
			return nil, domain.NewNotFound(name)
		}
		h, err := newLifecycle(ctx, source, cfg, name)
		if err != nil {
			return nil, err
		}
		fetcher.Handlers[name] = h
	}
	return fetcher, nil
}

func help() string {
	return lambdakit.HelpStatic(
		dynamo.NewComponent(nil),
		queue.NewEnqueueComponent(nil, nil),
		queue.NewProcessQueueComponent(nil, nil),
		proxy.NewComponent(),
		auth.NewComponent(),
		&handlers.CORSComponent{},
	)
}

func main() {
	// Handle the -h flag and print settings.
	fs := flag.NewFlagSet("", flag.ContinueOnError)
	fs.Usage = func() {}
	err := fs.Parse(os.Args[1:])
	if err == flag.ErrHelp {
		fmt.Println(help())
		return
	}

	ctx := context.Background()
	source, err := settings.NewEnvSource(os.Environ())
	if err != nil {
		panic(err.Error())
	}
	cfg, err := config.LoadDefaultConfig(ctx)
	if err != nil {
		panic(err.Error())
	}

	// Lambda builds only construct the function they run.
	names := []string{lambdakit.TargetFunction}
	if strings.EqualFold(lambdakit.BuildMode, lambdakit.BuildModeHTTP) {
		names = []string{"items", "enqueue", "processqueue", "proxy"}
	}
	fetcher, err := newFetcher(ctx, source, cfg, names...)
	if err != nil {
		panic(err.Error())
	}
	if err := lambdakit.Start(ctx, source, fetcher); err != nil {
		panic(err.Error())
	}
}
