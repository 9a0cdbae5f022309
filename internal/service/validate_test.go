package service

import (
	"testing"

	"github.com/go-playground/validator/v10"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestValidateStructCleanForm(t *testing.T) {
	v := validator.New()
	fe := validateStruct(v, LoginForm{Email: "ana@funval.org", Password: "secret"})
	assert.True(t, fe.Valid())
}

func TestValidateStructFieldMessages(t *testing.T) {
	v := validator.New()
	fe := validateStruct(v, LoginForm{Email: "not-an-email"})
	require.False(t, fe.Valid())
	assert.Equal(t, "must be a valid email address", fe.Get("Email"))
	assert.Equal(t, "this field is required", fe.Get("Password"))
	assert.Empty(t, fe.Get("Unknown"))
}

func TestValidateStructNumericBounds(t *testing.T) {
	v := validator.New()
	fe := validateStruct(v, SubmitServiceForm{AmountReported: -1, Description: "d", CategoryID: 1})
	require.False(t, fe.Valid())
	assert.Equal(t, "must be greater than 0", fe.Get("AmountReported"))
}

func TestValidateStructOneOf(t *testing.T) {
	v := validator.New()
	fe := validateStruct(v, ReviewForm{Decision: "maybe", Comment: "ok"})
	require.False(t, fe.Valid())
	assert.Equal(t, "has an unsupported value", fe.Get("Decision"))
}
