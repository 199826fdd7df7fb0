package document

import (
	"strings"

	"dario.cat/mergo"
	"github.com/mohae/deepcopy"
)

// Document is a JSON object. Nested objects decode as map[string]interface{}.
type Document map[string]interface{}

// Copy returns a deep copy of d. A nil Document copies to an empty one.
func Copy(d Document) Document {
	if d == nil {
		return Document{}
	}
	return deepcopy.Copy(d).(Document)
}

// Redact returns a copy of d with every dot separated path removed. Paths
// whose intermediate segments are absent, or are not objects, are ignored.
func Redact(d Document, paths ...string) Document {
	out := Copy(d)
	for _, p := range paths {
		if p == "" {
			continue
		}
		remove(out, strings.Split(p, "."))
	}
	return out
}

func remove(node map[string]interface{}, segments []string) {
	if len(segments) == 1 {
		delete(node, segments[0])
		return
	}
	child, ok := asObject(node[segments[0]])
	if !ok {
		return
	}
	remove(child, segments[1:])
}

func asObject(v interface{}) (map[string]interface{}, bool) {
	switch o := v.(type) {
	case map[string]interface{}:
		return o, true
	case Document:
		return o, true
	default:
		return nil, false
	}
}

// Merge deep merges update over base and returns the result without
// modifying either argument. Keys present in update always win, including
// zero values. Keys only present in base are kept. Nested objects are
// merged recursively.
func Merge(base Document, update Document) (Document, error) {
	out := Copy(base)
	if err := mergo.Merge(&out, Copy(update), mergo.WithOverride); err != nil {
		return nil, err
	}
	return out, nil
}

// Get resolves a dot separated path.
func Get(d Document, path string) (interface{}, bool) {
	var node map[string]interface{} = d
	segments := strings.Split(path, ".")
	for i, s := range segments {
		v, ok := node[s]
		if !ok {
			return nil, false
		}
		if i == len(segments)-1 {
			return v, true
		}
		if node, ok = asObject(v); !ok {
			return nil, false
		}
	}
	return nil, false
}
