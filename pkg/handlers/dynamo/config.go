package dynamo

import (
	"context"
	"fmt"

	"github.com/asecurityteam/lambdakit/pkg/domain"
	"github.com/asecurityteam/lambdakit/pkg/request"
)

// Strategy selects the DynamoDB read operation used for searches.
type Strategy string

const (
	// StrategyQuery searches with Query. This is the default.
	StrategyQuery Strategy = "query"
	// StrategyScan searches with Scan. Any key condition is folded into the
	// filter expression.
	StrategyScan Strategy = "scan"
)

// AllFields in DefaultFields returns every attribute of an item.
const AllFields = "*"

// Config is the settings driven part of a Handler.
type Config struct {
	TableName         string   `description:"Name of the DynamoDB table."`
	IndexName         string   `description:"Optional secondary index used for searches."`
	DefaultLimit      int      `description:"Page size used when the limit query parameter is absent."`
	DefaultFields     []string `description:"Fields returned by reads. Empty returns all projected attributes and * returns all attributes."`
	BlacklistedFields []string `description:"Dot separated field paths never returned to clients."`
	ReadOnlyFields    []string `description:"Dot separated field paths that clients may not write."`
	MergeFields       []string `description:"Fields of the stored item merged into an update."`
	Strategy          string   `description:"Search strategy. One of query or scan."`
	IDParameter       string   `description:"Path parameter holding the item identifier."`
	KeyAttribute      string   `description:"Name of the partition key attribute."`
}

// Name of the configuration root.
func (*Config) Name() string {
	return "dynamo"
}

// Component builds a Handler from settings. Fields of the Component carry
// the parts of a Handler that cannot be expressed as settings and are
// copied onto every Handler it builds.
type Component struct {
	Client      domain.DynamoDBAPI
	QuerySchema request.Schema
	ItemSchema  request.Schema
	Hooks       Hooks
}

// NewComponent populates the default values.
func NewComponent(client domain.DynamoDBAPI) *Component {
	return &Component{Client: client}
}

// Settings generates a config populated with the defaults.
func (*Component) Settings() *Config {
	return &Config{
		DefaultLimit: 20,
		Strategy:     string(StrategyQuery),
		IDParameter:  "id",
		KeyAttribute: "id",
	}
}

// New constructs a Handler from the given config.
func (c *Component) New(_ context.Context, conf *Config) (*Handler, error) {
	if conf.TableName == "" {
		return nil, fmt.Errorf("dynamo: table name is required")
	}
	strategy := Strategy(conf.Strategy)
	switch strategy {
	case "":
		strategy = StrategyQuery
	case StrategyQuery, StrategyScan:
	default:
		return nil, fmt.Errorf("dynamo: unknown search strategy %q", conf.Strategy)
	}
	if conf.DefaultLimit < 0 {
		return nil, fmt.Errorf("dynamo: default limit must not be negative")
	}
	return &Handler{
		Client:            c.Client,
		TableName:         conf.TableName,
		IndexName:         conf.IndexName,
		DefaultLimit:      conf.DefaultLimit,
		DefaultFields:     conf.DefaultFields,
		BlacklistedFields: conf.BlacklistedFields,
		ReadOnlyFields:    conf.ReadOnlyFields,
		MergeFields:       conf.MergeFields,
		Strategy:          strategy,
		IDParameter:       conf.IDParameter,
		KeyAttribute:      conf.KeyAttribute,
		QuerySchema:       c.QuerySchema,
		ItemSchema:        c.ItemSchema,
		Hooks:             c.Hooks,
	}, nil
}
