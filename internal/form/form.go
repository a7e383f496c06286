package form

import "shop_client/internal/domain"

// Field identifiers shared by the product and auth forms.
const (
	FieldTitle       = "title"
	FieldImageURL    = "imageUrl"
	FieldPrice       = "price"
	FieldDescription = "description"
	FieldEmail       = "email"
	FieldPassword    = "password"
)

// State tracks per-field text values and per-field validity for one form.
// Valid is always the logical AND over every entry in Validities.
type State struct {
	Values     map[string]string
	Validities map[string]bool
	Valid      bool
}

// Event is the closed set of form transitions. Anything the reducer does not
// recognize is an identity transition.
type Event interface {
	isFormEvent()
}

// FieldChanged replaces one field's value and validity. The validity is
// computed by the field-level validator before the event is dispatched; the
// reducer only aggregates.
type FieldChanged struct {
	Field string
	Value string
	Valid bool
}

func (FieldChanged) isFormEvent() {}

// Reduce produces the next form state for an event. It never mutates its
// input; maps are copied before the changed field is written.
func Reduce(s State, ev Event) State {
	switch e := ev.(type) {
	case FieldChanged:
		values := make(map[string]string, len(s.Values)+1)
		for k, v := range s.Values {
			values[k] = v
		}
		validities := make(map[string]bool, len(s.Validities)+1)
		for k, v := range s.Validities {
			validities[k] = v
		}
		values[e.Field] = e.Value
		validities[e.Field] = e.Valid

		valid := true
		for _, ok := range validities {
			valid = valid && ok
		}
		return State{Values: values, Validities: validities, Valid: valid}
	default:
		return s
	}
}

// NewCreateProductForm returns the initial state for creating a product:
// empty values, every required field invalid.
func NewCreateProductForm() State {
	return State{
		Values: map[string]string{
			FieldTitle:       "",
			FieldImageURL:    "",
			FieldPrice:       "",
			FieldDescription: "",
		},
		Validities: map[string]bool{
			FieldTitle:       false,
			FieldImageURL:    false,
			FieldPrice:       false,
			FieldDescription: false,
		},
		Valid: false,
	}
}

// NewEditProductForm returns the initial state for editing an existing
// product. Pre-populated fields start out valid. The price field is absent:
// price is immutable after creation and the edit form never shows it.
func NewEditProductForm(p domain.Product) State {
	return State{
		Values: map[string]string{
			FieldTitle:       p.Title,
			FieldImageURL:    p.ImageURL,
			FieldDescription: p.Description,
		},
		Validities: map[string]bool{
			FieldTitle:       true,
			FieldImageURL:    true,
			FieldDescription: true,
		},
		Valid: true,
	}
}

// NewAuthForm returns the initial state for the login form. The login screen
// performs no real request; only the form itself is modeled.
func NewAuthForm() State {
	return State{
		Values: map[string]string{
			FieldEmail:    "",
			FieldPassword: "",
		},
		Validities: map[string]bool{
			FieldEmail:    false,
			FieldPassword: false,
		},
		Valid: false,
	}
}
