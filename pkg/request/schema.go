package request

import (
	"sort"
	"strings"

	"github.com/asecurityteam/lambdakit/pkg/domain"
	"github.com/go-playground/validator/v10"
)

var validate = validator.New()

// Schema maps field names to validator rules. A rule is either a tag string
// such as "required,uuid4" or a nested Schema for object valued fields.
// Fields without a rule are not checked.
type Schema map[string]interface{}

// DefaultQuerySchema allows an optional integer limit between 0 and 150.
var DefaultQuerySchema = Schema{
	"limit": "omitempty,number,min=0,max=150",
}

// Violations returns every rule broken by data, ordered by field name.
func (s Schema) Violations(data map[string]interface{}) []domain.Violation {
	errs := validate.ValidateMap(data, s.rules())
	violations := flatten("", errs)
	sort.Slice(violations, func(i, j int) bool {
		return violations[i].Field < violations[j].Field
	})
	return violations
}

// Validate fails with a Validation error when data breaks any rule.
func (s Schema) Validate(data map[string]interface{}) error {
	if violations := s.Violations(data); len(violations) > 0 {
		return domain.NewValidation("invalid payload", violations)
	}
	return nil
}

// numeric reports whether the rule for field compares numbers.
func (s Schema) numeric(field string) bool {
	rule, ok := s[field].(string)
	if !ok {
		return false
	}
	for _, tag := range strings.Split(rule, ",") {
		switch strings.TrimSpace(tag) {
		case "number", "numeric":
			return true
		}
	}
	return false
}

func (s Schema) rules() map[string]interface{} {
	out := make(map[string]interface{}, len(s))
	for k, v := range s {
		if nested, ok := v.(Schema); ok {
			out[k] = nested.rules()
			continue
		}
		out[k] = v
	}
	return out
}

func flatten(prefix string, errs map[string]interface{}) []domain.Violation {
	var out []domain.Violation
	for field, e := range errs {
		name := prefix + field
		switch v := e.(type) {
		case validator.ValidationErrors:
			for _, fe := range v {
				out = append(out, domain.Violation{
					Field: name,
					Rule:  fe.Tag(),
					Param: fe.Param(),
					Value: fe.Value(),
				})
			}
		case map[string]interface{}:
			out = append(out, flatten(name+".", v)...)
		case error:
			out = append(out, domain.Violation{Field: name, Rule: "object"})
		}
	}
	return out
}
