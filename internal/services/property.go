package services

import (
	"context"
	"errors"

	"gorm.io/datatypes"
	"gorm.io/gorm"

	"imovia/internal/events"
	"imovia/internal/models"
	"imovia/internal/utils/logger"
)

// PropertyService owns the property catalogue: the public listing query
// and the admin-side mutations.
type PropertyService struct {
	db  *gorm.DB
	log *logger.Logger
}

func NewPropertyService(db *gorm.DB) *PropertyService {
	return &PropertyService{db: db, log: logger.New("property_service")}
}

// List returns all properties matching the filter, newest first. All
// supplied conditions combine with AND; an empty filter returns the
// whole catalogue.
func (s *PropertyService) List(ctx context.Context, filter PropertyFilter) ([]models.Property, error) {
	query := s.db.WithContext(ctx).Model(&models.Property{})
	for _, p := range filter.predicates() {
		query = query.Where(p.expr, p.args...)
	}

	var properties []models.Property
	if err := query.Order("created_at DESC").Find(&properties).Error; err != nil {
		return nil, err
	}
	return properties, nil
}

func (s *PropertyService) Get(ctx context.Context, id string) (*models.Property, error) {
	var property models.Property
	if err := s.db.WithContext(ctx).First(&property, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrPropertyNotFound
		}
		return nil, err
	}
	return &property, nil
}

func (s *PropertyService) Create(ctx context.Context, property *models.Property) error {
	if err := validateProperty(property); err != nil {
		return err
	}
	if property.Status == "" {
		property.Status = models.PropertyStatusAvailable
	}

	if err := s.db.WithContext(ctx).Create(property).Error; err != nil {
		return err
	}

	events.Emit(events.PropertyCreated, property)
	return nil
}

// PropertyUpdate is a partial update. Nil members leave the stored
// value untouched. Images follows the retention policy: nil keeps the
// current gallery, an empty slice clears it.
type PropertyUpdate struct {
	Title         *string
	Type          *models.PropertyType
	Description   *string
	Location      *string
	Price         *float64
	Status        *models.PropertyStatus
	Images        *[]string
	Bedrooms      *int
	Bathrooms     *int
	ParkingSpaces *int
	Area          *float64
}

func (s *PropertyService) Update(ctx context.Context, id string, upd PropertyUpdate) (*models.Property, error) {
	property, err := s.Get(ctx, id)
	if err != nil {
		return nil, err
	}

	if upd.Title != nil {
		property.Title = *upd.Title
	}
	if upd.Type != nil {
		property.Type = *upd.Type
	}
	if upd.Description != nil {
		property.Description = *upd.Description
	}
	if upd.Location != nil {
		property.Location = *upd.Location
	}
	if upd.Price != nil {
		property.Price = *upd.Price
	}
	if upd.Status != nil {
		property.Status = *upd.Status
	}
	if upd.Images != nil {
		property.Images = datatypes.NewJSONSlice(*upd.Images)
	}
	if upd.Bedrooms != nil {
		property.Bedrooms = upd.Bedrooms
	}
	if upd.Bathrooms != nil {
		property.Bathrooms = upd.Bathrooms
	}
	if upd.ParkingSpaces != nil {
		property.ParkingSpaces = upd.ParkingSpaces
	}
	if upd.Area != nil {
		property.Area = upd.Area
	}

	if err := validateProperty(property); err != nil {
		return nil, err
	}

	if err := s.db.WithContext(ctx).Save(property).Error; err != nil {
		return nil, err
	}

	events.Emit(events.PropertyUpdated, property)
	return property, nil
}

// Delete removes the property. Its favorites go with it via the
// database-level cascade; the deleted entity is emitted so subscribers
// (listing cache, image cleanup task) can react.
func (s *PropertyService) Delete(ctx context.Context, id string) error {
	property, err := s.Get(ctx, id)
	if err != nil {
		return err
	}

	if err := s.db.WithContext(ctx).Delete(&models.Property{}, "id = ?", id).Error; err != nil {
		return err
	}

	events.Emit(events.PropertyDeleted, property)
	return nil
}

func validateProperty(p *models.Property) error {
	if p.Price < 0 {
		return invalidField("price", "must not be negative")
	}
	if len(p.Images) > models.MaxPropertyImages {
		return invalidField("images", "at most %d images allowed", models.MaxPropertyImages)
	}
	if p.Type != "" && !models.IsValidPropertyType(p.Type) {
		return invalidField("type", "must be one of apartment, house, farm")
	}
	if p.Status != "" && !models.IsValidPropertyStatus(p.Status) {
		return invalidField("status", "must be one of available, sold")
	}
	for _, count := range []struct {
		field string
		value *int
	}{
		{"bedrooms", p.Bedrooms},
		{"bathrooms", p.Bathrooms},
		{"parkingSpaces", p.ParkingSpaces},
	} {
		if count.value != nil && *count.value < 0 {
			return invalidField(count.field, "must not be negative")
		}
	}
	if p.Area != nil && *p.Area < 0 {
		return invalidField("area", "must not be negative")
	}
	return nil
}
