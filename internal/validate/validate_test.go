package validate

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	pkgerrors "github.com/staysuite/staysuite-backend/pkg/errors"
)

type sample struct {
	Name     string `json:"name" validate:"required"`
	Email    string `json:"email" validate:"omitempty,email"`
	Quantity int    `json:"quantity" validate:"gte=0"`
}

func TestStructAcceptsValidInput(t *testing.T) {
	require.NoError(t, Struct(sample{Name: "Towels", Email: "ops@staysuite.io", Quantity: 4}))
}

func TestStructReportsFieldsByJSONName(t *testing.T) {
	err := Struct(sample{Email: "nope", Quantity: -1})
	require.Error(t, err)

	typed := pkgerrors.As(err)
	require.NotNil(t, typed)
	assert.Equal(t, pkgerrors.CodeValidation, typed.Code())

	details, ok := typed.Details().(map[string]string)
	require.True(t, ok)
	assert.Equal(t, "is required", details["name"])
	assert.Equal(t, "must be a valid email", details["email"])
	assert.Equal(t, "must be at least 0", details["quantity"])
}
