package models

import (
	"gorm.io/datatypes"
)

// MaxPropertyImages caps the image gallery per listing.
const MaxPropertyImages = 12

type Property struct {
	Base
	Title         string                      `gorm:"not null" json:"title" validate:"required,min=2"`
	Type          PropertyType                `gorm:"type:varchar(50);not null" json:"type" validate:"required,property_type"`
	Description   string                      `gorm:"not null" json:"description" validate:"required"`
	Location      string                      `gorm:"not null" json:"location" validate:"required"`
	Price         float64                     `gorm:"type:decimal(12,2);not null" json:"price" validate:"gte=0"`
	Status        PropertyStatus              `gorm:"type:varchar(20);not null;default:'available'" json:"status" validate:"omitempty,property_status"`
	Images        datatypes.JSONSlice[string] `json:"images" validate:"max=12"`
	Bedrooms      *int                        `json:"bedrooms,omitempty" validate:"omitempty,gte=0"`
	Bathrooms     *int                        `json:"bathrooms,omitempty" validate:"omitempty,gte=0"`
	ParkingSpaces *int                        `gorm:"column:parking_spaces" json:"parkingSpaces,omitempty" validate:"omitempty,gte=0"`
	Area          *float64                    `gorm:"type:decimal(8,2)" json:"area,omitempty" validate:"omitempty,gte=0"`

	Favorites []Favorite `gorm:"foreignKey:PropertyID;constraint:OnDelete:CASCADE" json:"-"`
}

type Favorite struct {
	Base
	PropertyID string    `gorm:"type:uuid;not null;uniqueIndex:idx_favorites_property_session" json:"propertyId" validate:"required,uuid"`
	Property   *Property `json:"property,omitempty"`
	SessionID  string    `gorm:"not null;uniqueIndex:idx_favorites_property_session;index" json:"sessionId" validate:"required"`
}
