package validator_test

import (
	"errors"
	"testing"

	govalidator "github.com/go-playground/validator/v10"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/tuanvumaihuynh/product-admin/pkg/validator"
)

type color string

func (c color) Validate() error {
	if c == "RED" || c == "BLUE" {
		return nil
	}
	return errors.New("unknown color")
}

type form struct {
	Name  string `validate:"notblank"`
	Color color  `validate:"enum"`
}

func TestDefaultValidator(t *testing.T) {
	v, err := validator.NewDefaultValidator()
	require.NoError(t, err)

	t.Run("Should accept a valid struct", func(t *testing.T) {
		assert.NoError(t, v.Validate(form{Name: "Board", Color: "RED"}))
	})

	t.Run("Should reject blank names and unknown enums", func(t *testing.T) {
		err := v.Validate(form{Name: "   ", Color: "GREEN"})
		require.Error(t, err)
		assert.True(t, validator.IsValidationError(err))

		var ve govalidator.ValidationErrors
		require.True(t, errors.As(err, &ve))
		require.Len(t, ve, 2)

		assert.Equal(t, "Name", ve[0].Field())
		assert.Equal(t, "field is required", validator.ValidationErrorMessage(ve[0]))
		assert.Equal(t, "Color", ve[1].Field())
		assert.Equal(t, "invalid enum value: GREEN", validator.ValidationErrorMessage(ve[1]))
	})
}
