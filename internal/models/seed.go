package models

import (
	"fmt"

	"golang.org/x/crypto/bcrypt"
	"gorm.io/datatypes"

	"imovia/internal/config"
	console "imovia/internal/utils/logger"

	"gorm.io/gorm"
)

var log = console.New("SEEDER")

// Role-based permission mappings. Capability strings checked by the
// auth gate in addition to the route policy table.
var rolePermissions = map[AdminRole][]string{
	AdminRoleSuperAdmin: {"*:*"},
	AdminRoleAdmin:      {"properties:read", "properties:write"},
	AdminRoleEditor:     {"properties:read", "properties:write"},
	AdminRoleViewer:     {"properties:read"},
}

// DefaultPermissions returns the capability set granted to a role.
func DefaultPermissions(role AdminRole) []string {
	perms := rolePermissions[role]
	out := make([]string, len(perms))
	copy(out, perms)
	return out
}

// SeedSuperAdmin creates the bootstrap super admin account from the
// environment. It is a no-op when a super admin already exists or when
// the seed config is absent.
func SeedSuperAdmin(db *gorm.DB, cfg *config.Config) error {
	var count int64
	if err := db.Model(&Admin{}).Where("role = ?", AdminRoleSuperAdmin).Count(&count).Error; err != nil {
		return fmt.Errorf("failed to count super admins: %w", err)
	}
	if count > 0 {
		return nil
	}

	if cfg.Seed.SuperAdminEmail == "" || cfg.Seed.SuperAdminPassword == "" {
		log.Warn("No super admin configured and none exists; back office will be unreachable")
		return nil
	}

	hashedPassword, err := bcrypt.GenerateFromPassword([]byte(cfg.Seed.SuperAdminPassword), bcrypt.DefaultCost)
	if err != nil {
		return fmt.Errorf("failed to hash password: %w", err)
	}

	name := cfg.Seed.SuperAdminName
	if name == "" {
		name = "Super Admin"
	}

	admin := Admin{
		Name:        name,
		Email:       cfg.Seed.SuperAdminEmail,
		Password:    string(hashedPassword),
		Role:        AdminRoleSuperAdmin,
		Permissions: datatypes.NewJSONSlice(DefaultPermissions(AdminRoleSuperAdmin)),
		IsActive:    true,
	}

	if err := db.Create(&admin).Error; err != nil {
		return fmt.Errorf("failed to create super admin: %w", err)
	}

	log.Success("Seeded super admin %s", admin.Email)
	return nil
}
