package form

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/go-playground/validator/v10"
)

var validate = validator.New()

// Rules is the declarative constraint set for one field.
type Rules struct {
	Required  bool
	MinLength int
	Min       float64 // numeric minimum; the value must parse as a number
	Numeric   bool
	Email     bool
	URL       bool
}

// Check evaluates a field value against the rules. It feeds the value through
// go-playground/validator for the shape constraints and handles the numeric
// minimum by parsing first, since the raw field value is always text.
func (r Rules) Check(value string) bool {
	if strings.TrimSpace(value) == "" {
		return !r.Required
	}
	if r.Email {
		if err := validate.Var(value, "email"); err != nil {
			return false
		}
	}
	if r.URL {
		if err := validate.Var(value, "url"); err != nil {
			return false
		}
	}
	if r.MinLength > 0 {
		if err := validate.Var(value, fmt.Sprintf("min=%d", r.MinLength)); err != nil {
			return false
		}
	}
	if r.Numeric || r.Min > 0 {
		f, err := strconv.ParseFloat(value, 64)
		if err != nil {
			return false
		}
		if r.Min > 0 {
			if err := validate.Var(f, fmt.Sprintf("gte=%v", r.Min)); err != nil {
				return false
			}
		}
	}
	return true
}

// ProductRules holds the constraint set for the product form fields.
var ProductRules = map[string]Rules{
	FieldTitle:       {Required: true},
	FieldImageURL:    {Required: true, URL: true},
	FieldPrice:       {Required: true, Numeric: true, Min: 0.1},
	FieldDescription: {Required: true, MinLength: 5},
}

// AuthRules holds the constraint set for the login form fields.
var AuthRules = map[string]Rules{
	FieldEmail:    {Required: true, Email: true},
	FieldPassword: {Required: true, MinLength: 5},
}

// ChangeField runs the field-level validator for the given rule set and
// reduces the resulting FieldChanged event into the state. Fields without a
// rule are accepted as valid.
func ChangeField(s State, rules map[string]Rules, field, value string) State {
	valid := true
	if r, ok := rules[field]; ok {
		valid = r.Check(value)
	}
	return Reduce(s, FieldChanged{Field: field, Value: value, Valid: valid})
}
