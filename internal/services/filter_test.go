package services

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"imovia/internal/models"
)

func TestParsePropertyFilter(t *testing.T) {
	t.Run("all empty means no constraints", func(t *testing.T) {
		f, err := ParsePropertyFilter("", "", "", "", "")
		require.NoError(t, err)
		assert.Empty(t, f.predicates())
	})

	t.Run("full filter parses every field", func(t *testing.T) {
		f, err := ParsePropertyFilter("house", "lisbon", "100000", "500000", "available")
		require.NoError(t, err)
		require.NotNil(t, f.Type)
		assert.Equal(t, models.PropertyTypeHouse, *f.Type)
		assert.Equal(t, "lisbon", f.Location)
		require.NotNil(t, f.MinPrice)
		assert.Equal(t, 100000.0, *f.MinPrice)
		require.NotNil(t, f.MaxPrice)
		assert.Equal(t, 500000.0, *f.MaxPrice)
		require.NotNil(t, f.Status)
		assert.Equal(t, models.PropertyStatusAvailable, *f.Status)
		assert.Len(t, f.predicates(), 5)
	})

	t.Run("unknown type is a validation error", func(t *testing.T) {
		_, err := ParsePropertyFilter("villa", "", "", "", "")
		ve, ok := AsValidationError(err)
		require.True(t, ok)
		assert.Equal(t, "type", ve.Field)
	})

	t.Run("unknown status is a validation error", func(t *testing.T) {
		_, err := ParsePropertyFilter("", "", "", "", "pending")
		ve, ok := AsValidationError(err)
		require.True(t, ok)
		assert.Equal(t, "status", ve.Field)
	})

	t.Run("non-numeric price is a validation error", func(t *testing.T) {
		_, err := ParsePropertyFilter("", "", "cheap", "", "")
		ve, ok := AsValidationError(err)
		require.True(t, ok)
		assert.Equal(t, "minPrice", ve.Field)
	})

	t.Run("negative price bound is a validation error", func(t *testing.T) {
		_, err := ParsePropertyFilter("", "", "", "-10", "")
		ve, ok := AsValidationError(err)
		require.True(t, ok)
		assert.Equal(t, "maxPrice", ve.Field)
	})
}

func TestParseFormFields(t *testing.T) {
	t.Run("empty decimal yields nil", func(t *testing.T) {
		v, err := ParseDecimalField("price", "")
		require.NoError(t, err)
		assert.Nil(t, v)
	})

	t.Run("decimal parses", func(t *testing.T) {
		v, err := ParseDecimalField("area", "120.5")
		require.NoError(t, err)
		require.NotNil(t, v)
		assert.Equal(t, 120.5, *v)
	})

	t.Run("count rejects fractions", func(t *testing.T) {
		_, err := ParseCountField("bedrooms", "2.5")
		ve, ok := AsValidationError(err)
		require.True(t, ok)
		assert.Equal(t, "bedrooms", ve.Field)
	})

	t.Run("count rejects negatives", func(t *testing.T) {
		_, err := ParseCountField("bathrooms", "-1")
		ve, ok := AsValidationError(err)
		require.True(t, ok)
		assert.Equal(t, "bathrooms", ve.Field)
	})
}
