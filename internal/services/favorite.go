package services

import (
	"context"
	"errors"

	"gorm.io/gorm"

	"imovia/internal/models"
	"imovia/internal/utils/logger"
)

// FavoriteService manages anonymous session-scoped bookmarks. The
// session id is an opaque string presented by the caller; the service
// trusts it as-is, there is no ownership check beyond the string match.
type FavoriteService struct {
	db  *gorm.DB
	log *logger.Logger
}

func NewFavoriteService(db *gorm.DB) *FavoriteService {
	return &FavoriteService{db: db, log: logger.New("favorite_service")}
}

// List returns the session's favorites joined with their current
// property data, newest first.
func (s *FavoriteService) List(ctx context.Context, sessionID string) ([]models.Favorite, error) {
	var favorites []models.Favorite
	err := s.db.WithContext(ctx).
		Preload("Property").
		Where("session_id = ?", sessionID).
		Order("created_at DESC").
		Find(&favorites).Error
	if err != nil {
		return nil, err
	}
	return favorites, nil
}

// Add bookmarks a property for the session. Adding is idempotent: a
// duplicate add returns the existing row, the unique index on
// (property_id, session_id) guarantees at most one under concurrency.
func (s *FavoriteService) Add(ctx context.Context, sessionID, propertyID string) (*models.Favorite, error) {
	var property models.Property
	if err := s.db.WithContext(ctx).Select("id").First(&property, "id = ?", propertyID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrPropertyNotFound
		}
		return nil, err
	}

	favorite := models.Favorite{PropertyID: propertyID, SessionID: sessionID}
	err := s.db.WithContext(ctx).
		Where("property_id = ? AND session_id = ?", propertyID, sessionID).
		FirstOrCreate(&favorite).Error
	if err != nil {
		return nil, err
	}
	return &favorite, nil
}

// Remove deletes the bookmark. Removing a favorite that does not exist
// is a no-op, not an error.
func (s *FavoriteService) Remove(ctx context.Context, sessionID, propertyID string) error {
	return s.db.WithContext(ctx).
		Where("property_id = ? AND session_id = ?", propertyID, sessionID).
		Delete(&models.Favorite{}).Error
}

// IsFavorite reports whether the session has bookmarked the property.
func (s *FavoriteService) IsFavorite(ctx context.Context, sessionID, propertyID string) (bool, error) {
	var count int64
	err := s.db.WithContext(ctx).
		Model(&models.Favorite{}).
		Where("property_id = ? AND session_id = ?", propertyID, sessionID).
		Count(&count).Error
	if err != nil {
		return false, err
	}
	return count > 0, nil
}
