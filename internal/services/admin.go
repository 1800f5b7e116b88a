package services

import (
	"context"
	"errors"

	"golang.org/x/crypto/bcrypt"
	"gorm.io/datatypes"
	"gorm.io/gorm"

	"imovia/internal/events"
	"imovia/internal/models"
	"imovia/internal/utils/logger"
)

// AdminService owns back-office accounts. Role gating for these
// operations happens at the auth gate; the service only enforces the
// invariants that hold regardless of caller (unique email, no
// self-deletion).
type AdminService struct {
	db  *gorm.DB
	log *logger.Logger
}

func NewAdminService(db *gorm.DB) *AdminService {
	return &AdminService{db: db, log: logger.New("admin_service")}
}

type CreateAdminInput struct {
	Name        string
	Email       string
	Password    string
	Role        models.AdminRole
	Permissions []string
}

func (s *AdminService) Create(ctx context.Context, input CreateAdminInput, createdByID string) (*models.Admin, error) {
	if len(input.Password) < 8 {
		return nil, invalidField("password", "must be at least 8 characters")
	}

	role := input.Role
	if role == "" {
		role = models.AdminRoleAdmin
	}
	if !models.IsValidAdminRole(role) {
		return nil, invalidField("role", "must be one of admin, super_admin, editor, viewer")
	}

	var count int64
	if err := s.db.WithContext(ctx).Model(&models.Admin{}).Where("email = ?", input.Email).Count(&count).Error; err != nil {
		return nil, err
	}
	if count > 0 {
		return nil, ErrEmailTaken
	}

	hashedPassword, err := bcrypt.GenerateFromPassword([]byte(input.Password), bcrypt.DefaultCost)
	if err != nil {
		return nil, err
	}

	permissions := input.Permissions
	if len(permissions) == 0 {
		permissions = models.DefaultPermissions(role)
	}

	admin := models.Admin{
		Name:        input.Name,
		Email:       input.Email,
		Password:    string(hashedPassword),
		Role:        role,
		Permissions: datatypes.NewJSONSlice(permissions),
		IsActive:    true,
	}
	if createdByID != "" {
		admin.CreatedByID = &createdByID
	}

	if err := s.db.WithContext(ctx).Create(&admin).Error; err != nil {
		return nil, err
	}

	events.Emit(events.AdminCreated, &admin)
	return &admin, nil
}

// UpdateAdminInput is a partial update. A nil Password preserves the
// existing hash; a present one is re-hashed before storage.
type UpdateAdminInput struct {
	Name        *string
	Email       *string
	Password    *string
	Role        *models.AdminRole
	Permissions *[]string
}

func (s *AdminService) Update(ctx context.Context, id string, input UpdateAdminInput) (*models.Admin, error) {
	admin, err := s.Get(ctx, id)
	if err != nil {
		return nil, err
	}

	if input.Name != nil {
		admin.Name = *input.Name
	}
	if input.Email != nil && *input.Email != admin.Email {
		var count int64
		if err := s.db.WithContext(ctx).Model(&models.Admin{}).Where("email = ? AND id <> ?", *input.Email, id).Count(&count).Error; err != nil {
			return nil, err
		}
		if count > 0 {
			return nil, ErrEmailTaken
		}
		admin.Email = *input.Email
	}
	if input.Password != nil {
		if len(*input.Password) < 8 {
			return nil, invalidField("password", "must be at least 8 characters")
		}
		hashedPassword, err := bcrypt.GenerateFromPassword([]byte(*input.Password), bcrypt.DefaultCost)
		if err != nil {
			return nil, err
		}
		admin.Password = string(hashedPassword)
	}
	if input.Role != nil {
		if !models.IsValidAdminRole(*input.Role) {
			return nil, invalidField("role", "must be one of admin, super_admin, editor, viewer")
		}
		admin.Role = *input.Role
	}
	if input.Permissions != nil {
		admin.Permissions = datatypes.NewJSONSlice(*input.Permissions)
	}

	if err := s.db.WithContext(ctx).Save(admin).Error; err != nil {
		return nil, err
	}
	return admin, nil
}

func (s *AdminService) ToggleStatus(ctx context.Context, id string, active bool) (*models.Admin, error) {
	admin, err := s.Get(ctx, id)
	if err != nil {
		return nil, err
	}

	admin.IsActive = active
	if err := s.db.WithContext(ctx).Model(admin).Update("is_active", active).Error; err != nil {
		return nil, err
	}
	return admin, nil
}

// Delete removes an admin account. An admin can never delete their own
// account, whatever their role.
func (s *AdminService) Delete(ctx context.Context, id, actorID string) error {
	if id == actorID {
		return ErrSelfDelete
	}

	admin, err := s.Get(ctx, id)
	if err != nil {
		return err
	}

	return s.db.WithContext(ctx).Delete(admin).Error
}

func (s *AdminService) Get(ctx context.Context, id string) (*models.Admin, error) {
	var admin models.Admin
	if err := s.db.WithContext(ctx).First(&admin, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrAdminNotFound
		}
		return nil, err
	}
	return &admin, nil
}

func (s *AdminService) List(ctx context.Context) ([]models.Admin, error) {
	var admins []models.Admin
	if err := s.db.WithContext(ctx).Order("created_at DESC").Find(&admins).Error; err != nil {
		return nil, err
	}
	return admins, nil
}

// Authenticate verifies credentials for login. Disabled accounts are
// rejected even with a correct password.
func (s *AdminService) Authenticate(ctx context.Context, email, password string) (*models.Admin, error) {
	var admin models.Admin
	if err := s.db.WithContext(ctx).First(&admin, "email = ?", email).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrInvalidCredentials
		}
		return nil, err
	}

	if !admin.IsActive {
		return nil, ErrAccountDisabled
	}

	if err := bcrypt.CompareHashAndPassword([]byte(admin.Password), []byte(password)); err != nil {
		return nil, ErrInvalidCredentials
	}

	return &admin, nil
}

// RecordLogin stores the login audit row for a successful login.
func (s *AdminService) RecordLogin(ctx context.Context, session *models.AdminSession) error {
	return s.db.WithContext(ctx).Create(session).Error
}
