package types

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type sample struct {
	Phone string `json:"phone" validate:"required,phone"`
	Email string `json:"email" validate:"required,email"`
}

func TestValidationMessages(t *testing.T) {
	err := Validator().Struct(&sample{Phone: "123", Email: ""})
	require.Error(t, err)

	msgs := ValidationMessages(err)
	assert.Equal(t, "phone must be a valid phone number", msgs["phone"])
	assert.Equal(t, "email is required", msgs["email"])
}

func TestValidator_AcceptsValidPhone(t *testing.T) {
	err := Validator().Struct(&sample{Phone: "+8801712345678", Email: "a@b.co"})
	assert.NoError(t, err)
}

func TestValidationMessages_NonValidatorError(t *testing.T) {
	assert.Nil(t, ValidationMessages(assert.AnError))
}

func TestValidator_RejectsBlankText(t *testing.T) {
	type form struct {
		District string `json:"district" validate:"required,notblank"`
	}

	err := Validator().Struct(&form{District: " \t "})
	require.Error(t, err)
	assert.Equal(t, "district is required", ValidationMessages(err)["district"])

	assert.NoError(t, Validator().Struct(&form{District: "Dhaka"}))
}
