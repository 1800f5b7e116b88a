package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// Base contains common columns for all tables
type Base struct {
	ID        string    `gorm:"type:uuid;primary_key" json:"id"`
	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`
}

// BeforeCreate will set a UUID rather than numeric ID
func (base *Base) BeforeCreate(tx *gorm.DB) error {
	if base.ID == "" {
		base.ID = uuid.New().String()
	}
	return nil
}

type PropertyType string

const (
	PropertyTypeApartment PropertyType = "apartment"
	PropertyTypeHouse     PropertyType = "house"
	PropertyTypeFarm      PropertyType = "farm"
)

type PropertyStatus string

const (
	PropertyStatusAvailable PropertyStatus = "available"
	PropertyStatusSold      PropertyStatus = "sold"
)

type AdminRole string

const (
	AdminRoleSuperAdmin AdminRole = "super_admin"
	AdminRoleAdmin      AdminRole = "admin"
	AdminRoleEditor     AdminRole = "editor"
	AdminRoleViewer     AdminRole = "viewer"
)

// IsValidPropertyType checks if a given type is valid
func IsValidPropertyType(t PropertyType) bool {
	switch t {
	case PropertyTypeApartment, PropertyTypeHouse, PropertyTypeFarm:
		return true
	default:
		return false
	}
}

// IsValidPropertyStatus checks if a given status is valid
func IsValidPropertyStatus(s PropertyStatus) bool {
	switch s {
	case PropertyStatusAvailable, PropertyStatusSold:
		return true
	default:
		return false
	}
}

// IsValidAdminRole checks if a given role is valid
func IsValidAdminRole(role AdminRole) bool {
	switch role {
	case AdminRoleSuperAdmin, AdminRoleAdmin, AdminRoleEditor, AdminRoleViewer:
		return true
	default:
		return false
	}
}
