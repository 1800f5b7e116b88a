package tasks

import (
	"context"
	"encoding/json"
	"fmt"

	"gorm.io/gorm"

	"imovia/internal/models"
	"imovia/internal/storage"
	"imovia/internal/utils/logger"

	"github.com/hibiken/asynq"
)

// TaskHandler processes background tasks against storage and the db.
type TaskHandler struct {
	db  *gorm.DB
	log *logger.Logger
}

// NewTaskHandler creates a new TaskHandler
func NewTaskHandler(db *gorm.DB) *TaskHandler {
	return &TaskHandler{
		db:  db,
		log: logger.New("task_handler"),
	}
}

// HandleImageCleanup removes the files a deleted property left behind.
func (h *TaskHandler) HandleImageCleanup(ctx context.Context, t *asynq.Task) error {
	var payload ImageCleanupPayload
	if err := json.Unmarshal(t.Payload(), &payload); err != nil {
		return fmt.Errorf("failed to unmarshal image cleanup payload: %w", err)
	}

	store := storage.Get()
	if store == nil {
		return fmt.Errorf("no image store registered")
	}

	for _, path := range payload.Images {
		if err := store.Remove(ctx, path); err != nil {
			return h.log.Error("Failed to remove image %s", err, path)
		}
	}

	h.log.Success("Cleaned up %d images for property %s", len(payload.Images), payload.PropertyID)
	return nil
}

// HandleImageSweep deletes stored files no property references. Covers
// uploads orphaned by crashed requests or lost cleanup tasks.
func (h *TaskHandler) HandleImageSweep(ctx context.Context, t *asynq.Task) error {
	store := storage.Get()
	if store == nil {
		return fmt.Errorf("no image store registered")
	}

	stored, err := store.List(ctx)
	if err != nil {
		return fmt.Errorf("failed to list stored images: %w", err)
	}

	var properties []models.Property
	if err := h.db.WithContext(ctx).Select("images").Find(&properties).Error; err != nil {
		return fmt.Errorf("failed to load property images: %w", err)
	}

	referenced := make(map[string]bool)
	for _, property := range properties {
		for _, img := range property.Images {
			referenced[img] = true
		}
	}

	removed := 0
	for _, path := range stored {
		if referenced[path] {
			continue
		}
		if err := store.Remove(ctx, path); err != nil {
			h.log.Warn("Failed to sweep orphaned image %s: %v", path, err)
			continue
		}
		removed++
	}

	h.log.Info("Image sweep removed %d orphaned files (%d stored, %d referenced)", removed, len(stored), len(referenced))
	return nil
}
