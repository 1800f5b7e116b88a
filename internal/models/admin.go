package models

import (
	"time"

	"gorm.io/datatypes"
)

type Admin struct {
	Base
	Name        string                      `gorm:"not null" json:"name" validate:"required,min=2"`
	Email       string                      `gorm:"uniqueIndex;not null" json:"email" validate:"required,email"`
	Password    string                      `gorm:"not null" json:"-"`
	Role        AdminRole                   `gorm:"type:varchar(20);not null;default:'admin'" json:"role" validate:"omitempty,admin_role"`
	Permissions datatypes.JSONSlice[string] `json:"permissions"`
	IsActive    bool                        `gorm:"not null;default:true" json:"isActive"`
	CreatedByID *string                     `gorm:"type:uuid" json:"createdBy,omitempty"`
	CreatedBy   *Admin                      `gorm:"foreignKey:CreatedByID" json:"-"`

	Sessions []AdminSession `gorm:"foreignKey:AdminID;constraint:OnDelete:CASCADE" json:"-"`
}

// AdminSession is a login audit record. One row per successful login.
type AdminSession struct {
	Base
	AdminID   string    `gorm:"type:uuid;not null;index" json:"adminId"`
	Admin     *Admin    `json:"admin,omitempty"`
	Token     string    `gorm:"not null" json:"-"`
	IPAddress string    `json:"ipAddress"`
	UserAgent string    `json:"userAgent"`
	ExpiresAt time.Time `json:"expiresAt"`
}
