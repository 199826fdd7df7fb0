package handlerfetcher

import (
	"context"
	"sort"

	"github.com/asecurityteam/lambdakit/pkg/domain"
)

// Static is an implementation of the HandlerFetcher that maintains a static
// mapping of names to Handler instances. All handlers are compiled into the
// same binary and share the runtime's resources.
//
// Additions and removals of Handlers require a new build and a redeploy.
type Static struct {
	// Handlers is the underlying static map of function names to executable
	// functions. The keys of the map will be used as the name of the Handler.
	Handlers map[string]domain.Handler
}

// FetchHandler resolves the name using the internal mapping.
func (f *Static) FetchHandler(ctx context.Context, name string) (domain.Handler, error) {
	h, ok := f.Handlers[name]
	if !ok {
		return nil, domain.NewNotFound(name)
	}
	return h, nil
}

// Names lists the registered handler names in sorted order.
func (f *Static) Names() []string {
	names := make([]string, 0, len(f.Handlers))
	for name := range f.Handlers {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}
