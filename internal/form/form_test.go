package form

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"shop_client/internal/domain"
)

type unknownEvent struct{}

func (unknownEvent) isFormEvent() {}

func TestReduceRecomputesOverallValidity(t *testing.T) {
	state := NewCreateProductForm()
	require.False(t, state.Valid)

	state = Reduce(state, FieldChanged{Field: FieldTitle, Value: "Chair", Valid: true})
	state = Reduce(state, FieldChanged{Field: FieldImageURL, Value: "http://example.com/chair.png", Valid: true})
	state = Reduce(state, FieldChanged{Field: FieldPrice, Value: "29.99", Valid: true})
	assert.False(t, state.Valid, "description still invalid")

	state = Reduce(state, FieldChanged{Field: FieldDescription, Value: "A wooden chair", Valid: true})
	assert.True(t, state.Valid)

	state = Reduce(state, FieldChanged{Field: FieldTitle, Value: "", Valid: false})
	assert.False(t, state.Valid, "validity must never be stale")
}

func TestReduceFinalValidityMatchesLastEventPerField(t *testing.T) {
	events := []Event{
		FieldChanged{Field: FieldTitle, Value: "a", Valid: false},
		FieldChanged{Field: FieldDescription, Value: "short", Valid: true},
		FieldChanged{Field: FieldTitle, Value: "Chair", Valid: true},
		FieldChanged{Field: FieldPrice, Value: "5", Valid: true},
		FieldChanged{Field: FieldImageURL, Value: "http://example.com/x.png", Valid: true},
	}

	state := NewCreateProductForm()
	for _, ev := range events {
		state = Reduce(state, ev)
	}

	// The overall validity equals the AND over the validity recorded by the
	// last event touching each field.
	expected := true
	last := map[string]bool{}
	for _, ev := range events {
		e := ev.(FieldChanged)
		last[e.Field] = e.Valid
	}
	for field, valid := range state.Validities {
		if v, touched := last[field]; touched {
			assert.Equal(t, v, valid, "field %s", field)
		}
		expected = expected && valid
	}
	assert.Equal(t, expected, state.Valid)
}

func TestReduceIsIdempotent(t *testing.T) {
	ev := FieldChanged{Field: FieldTitle, Value: "Chair", Valid: true}

	once := Reduce(NewCreateProductForm(), ev)
	twice := Reduce(once, ev)

	assert.Equal(t, once, twice)
}

func TestReduceIgnoresUnknownEvents(t *testing.T) {
	state := NewCreateProductForm()
	next := Reduce(state, unknownEvent{})
	assert.Equal(t, state, next)
}

func TestReduceDoesNotMutateInput(t *testing.T) {
	state := NewCreateProductForm()
	_ = Reduce(state, FieldChanged{Field: FieldTitle, Value: "Chair", Valid: true})

	assert.Equal(t, "", state.Values[FieldTitle])
	assert.False(t, state.Validities[FieldTitle])
}

func TestNewEditProductFormStartsValid(t *testing.T) {
	state := NewEditProductForm(domain.Product{
		ID:          "p1",
		Title:       "Chair",
		Description: "A wooden chair",
		ImageURL:    "http://example.com/chair.png",
		Price:       29.99,
	})

	assert.True(t, state.Valid)
	assert.Equal(t, "Chair", state.Values[FieldTitle])
	_, hasPrice := state.Values[FieldPrice]
	assert.False(t, hasPrice, "price is immutable and absent from the edit form")
}

func TestProductRules(t *testing.T) {
	tests := []struct {
		name  string
		field string
		value string
		want  bool
	}{
		{"empty title", FieldTitle, "", false},
		{"whitespace title", FieldTitle, "   ", false},
		{"valid title", FieldTitle, "Chair", true},
		{"short description", FieldDescription, "abcd", false},
		{"valid description", FieldDescription, "abcde", true},
		{"non-numeric price", FieldPrice, "cheap", false},
		{"price below minimum", FieldPrice, "0.05", false},
		{"price at minimum", FieldPrice, "0.1", true},
		{"valid price", FieldPrice, "29.99", true},
		{"bad image url", FieldImageURL, "not-a-url", false},
		{"valid image url", FieldImageURL, "http://example.com/chair.png", true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, ProductRules[tt.field].Check(tt.value))
		})
	}
}

func TestAuthRules(t *testing.T) {
	assert.False(t, AuthRules[FieldEmail].Check("not-an-email"))
	assert.True(t, AuthRules[FieldEmail].Check("user@example.com"))
	assert.False(t, AuthRules[FieldPassword].Check("abcd"))
	assert.True(t, AuthRules[FieldPassword].Check("abcde"))
}

func TestChangeFieldRunsValidator(t *testing.T) {
	state := NewCreateProductForm()

	state = ChangeField(state, ProductRules, FieldTitle, "")
	assert.False(t, state.Validities[FieldTitle])

	state = ChangeField(state, ProductRules, FieldTitle, "Chair")
	assert.True(t, state.Validities[FieldTitle])
}
