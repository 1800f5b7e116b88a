package services

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/datatypes"

	"imovia/internal/models"
)

func seedProperty(t *testing.T, svc *PropertyService, p models.Property) models.Property {
	t.Helper()
	require.NoError(t, svc.Create(context.Background(), &p))
	return p
}

func strPtr(s string) *string     { return &s }
func floatPtr(f float64) *float64 { return &f }
func intPtr(n int) *int           { return &n }

func TestPropertyService_ListFilters(t *testing.T) {
	db := newTestDB(t)
	svc := NewPropertyService(db)
	ctx := context.Background()

	base := time.Now().Add(-time.Hour)
	fixtures := []models.Property{
		{Title: "Beach apartment", Type: models.PropertyTypeApartment, Description: "Sea view", Location: "Lisbon", Price: 450000},
		{Title: "Country farm", Type: models.PropertyTypeFarm, Description: "Olive trees", Location: "Alentejo", Price: 980000},
		{Title: "Downtown house", Type: models.PropertyTypeHouse, Description: "Garden", Location: "Lisbon", Price: 1200000, Status: models.PropertyStatusSold},
		{Title: "River apartment", Type: models.PropertyTypeApartment, Description: "Small", Location: "Porto", Price: 220000},
	}
	for i := range fixtures {
		fixtures[i].CreatedAt = base.Add(time.Duration(i) * time.Minute)
		seedProperty(t, svc, fixtures[i])
	}

	t.Run("no filter returns everything newest first", func(t *testing.T) {
		got, err := svc.List(ctx, PropertyFilter{})
		require.NoError(t, err)
		require.Len(t, got, 4)
		assert.Equal(t, "River apartment", got[0].Title)
		assert.Equal(t, "Beach apartment", got[3].Title)
	})

	t.Run("type filter", func(t *testing.T) {
		typ := models.PropertyTypeApartment
		got, err := svc.List(ctx, PropertyFilter{Type: &typ})
		require.NoError(t, err)
		require.Len(t, got, 2)
		for _, p := range got {
			assert.Equal(t, models.PropertyTypeApartment, p.Type)
		}
	})

	t.Run("location substring is case-insensitive", func(t *testing.T) {
		got, err := svc.List(ctx, PropertyFilter{Location: "LISB"})
		require.NoError(t, err)
		assert.Len(t, got, 2)
	})

	t.Run("filters combine with AND", func(t *testing.T) {
		typ := models.PropertyTypeApartment
		got, err := svc.List(ctx, PropertyFilter{
			Type:     &typ,
			Location: "lisbon",
			MaxPrice: floatPtr(1000000),
		})
		require.NoError(t, err)
		require.Len(t, got, 1)
		assert.Equal(t, "Beach apartment", got[0].Title)
	})

	t.Run("price bounds are inclusive", func(t *testing.T) {
		got, err := svc.List(ctx, PropertyFilter{
			MinPrice: floatPtr(450000),
			MaxPrice: floatPtr(980000),
		})
		require.NoError(t, err)
		assert.Len(t, got, 2)
	})

	t.Run("status filter", func(t *testing.T) {
		status := models.PropertyStatusSold
		got, err := svc.List(ctx, PropertyFilter{Status: &status})
		require.NoError(t, err)
		require.Len(t, got, 1)
		assert.Equal(t, "Downtown house", got[0].Title)
	})

	t.Run("no match yields empty slice, not error", func(t *testing.T) {
		got, err := svc.List(ctx, PropertyFilter{Location: "Madrid"})
		require.NoError(t, err)
		assert.Empty(t, got)
	})
}

func TestPropertyService_CreateDefaultsAndValidation(t *testing.T) {
	db := newTestDB(t)
	svc := NewPropertyService(db)
	ctx := context.Background()

	t.Run("status defaults to available", func(t *testing.T) {
		p := seedProperty(t, svc, models.Property{
			Title: "No status", Type: models.PropertyTypeHouse, Description: "x", Location: "Faro", Price: 100,
		})
		assert.Equal(t, models.PropertyStatusAvailable, p.Status)
		assert.NotEmpty(t, p.ID)
	})

	t.Run("negative price rejected", func(t *testing.T) {
		err := svc.Create(ctx, &models.Property{
			Title: "Bad", Type: models.PropertyTypeHouse, Description: "x", Location: "Faro", Price: -1,
		})
		ve, ok := AsValidationError(err)
		require.True(t, ok)
		assert.Equal(t, "price", ve.Field)
	})

	t.Run("unknown type rejected", func(t *testing.T) {
		err := svc.Create(ctx, &models.Property{
			Title: "Bad", Type: "castle", Description: "x", Location: "Faro", Price: 1,
		})
		ve, ok := AsValidationError(err)
		require.True(t, ok)
		assert.Equal(t, "type", ve.Field)
	})

	t.Run("gallery cap enforced", func(t *testing.T) {
		images := make([]string, models.MaxPropertyImages+1)
		for i := range images {
			images[i] = "/uploads/x.jpg"
		}
		err := svc.Create(ctx, &models.Property{
			Title: "Bad", Type: models.PropertyTypeHouse, Description: "x", Location: "Faro", Price: 1,
			Images: datatypes.NewJSONSlice(images),
		})
		ve, ok := AsValidationError(err)
		require.True(t, ok)
		assert.Equal(t, "images", ve.Field)
	})

	t.Run("negative bedroom count rejected", func(t *testing.T) {
		err := svc.Create(ctx, &models.Property{
			Title: "Bad", Type: models.PropertyTypeHouse, Description: "x", Location: "Faro", Price: 1,
			Bedrooms: intPtr(-2),
		})
		ve, ok := AsValidationError(err)
		require.True(t, ok)
		assert.Equal(t, "bedrooms", ve.Field)
	})
}

func TestPropertyService_Update(t *testing.T) {
	db := newTestDB(t)
	svc := NewPropertyService(db)
	ctx := context.Background()

	p := seedProperty(t, svc, models.Property{
		Title: "Original", Type: models.PropertyTypeApartment, Description: "x", Location: "Lisbon", Price: 300000,
		Images: datatypes.NewJSONSlice([]string{"/uploads/a.jpg", "/uploads/b.jpg"}),
	})

	t.Run("partial update leaves other fields alone", func(t *testing.T) {
		got, err := svc.Update(ctx, p.ID, PropertyUpdate{Price: floatPtr(280000)})
		require.NoError(t, err)
		assert.Equal(t, 280000.0, got.Price)
		assert.Equal(t, "Original", got.Title)
		assert.Len(t, got.Images, 2)
	})

	t.Run("nil images keeps current gallery", func(t *testing.T) {
		got, err := svc.Update(ctx, p.ID, PropertyUpdate{Title: strPtr("Renamed")})
		require.NoError(t, err)
		assert.Equal(t, []string{"/uploads/a.jpg", "/uploads/b.jpg"}, []string(got.Images))
	})

	t.Run("explicit image list replaces gallery", func(t *testing.T) {
		got, err := svc.Update(ctx, p.ID, PropertyUpdate{Images: &[]string{"/uploads/a.jpg"}})
		require.NoError(t, err)
		assert.Equal(t, []string{"/uploads/a.jpg"}, []string(got.Images))
	})

	t.Run("empty image list clears gallery", func(t *testing.T) {
		got, err := svc.Update(ctx, p.ID, PropertyUpdate{Images: &[]string{}})
		require.NoError(t, err)
		assert.Empty(t, got.Images)
	})

	t.Run("status transition to sold", func(t *testing.T) {
		sold := models.PropertyStatusSold
		got, err := svc.Update(ctx, p.ID, PropertyUpdate{Status: &sold})
		require.NoError(t, err)
		assert.Equal(t, models.PropertyStatusSold, got.Status)
	})

	t.Run("update of missing property is NotFound", func(t *testing.T) {
		_, err := svc.Update(ctx, "019b2f1e-0000-0000-0000-000000000000", PropertyUpdate{})
		assert.ErrorIs(t, err, ErrPropertyNotFound)
	})

	t.Run("invalid value rejected without saving", func(t *testing.T) {
		_, err := svc.Update(ctx, p.ID, PropertyUpdate{Price: floatPtr(-5)})
		_, ok := AsValidationError(err)
		require.True(t, ok)

		got, err := svc.Get(ctx, p.ID)
		require.NoError(t, err)
		assert.Equal(t, 280000.0, got.Price)
	})
}

func TestPropertyService_GetAndDelete(t *testing.T) {
	db := newTestDB(t)
	svc := NewPropertyService(db)
	ctx := context.Background()

	p := seedProperty(t, svc, models.Property{
		Title: "Ephemeral", Type: models.PropertyTypeFarm, Description: "x", Location: "Beja", Price: 50000,
	})

	got, err := svc.Get(ctx, p.ID)
	require.NoError(t, err)
	assert.Equal(t, "Ephemeral", got.Title)

	require.NoError(t, svc.Delete(ctx, p.ID))

	_, err = svc.Get(ctx, p.ID)
	assert.ErrorIs(t, err, ErrPropertyNotFound)

	assert.ErrorIs(t, svc.Delete(ctx, p.ID), ErrPropertyNotFound)
}
