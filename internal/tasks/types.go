package tasks

import "time"

// Task Types
const (
	TaskTypeImageCleanup = "images:cleanup"
	TaskTypeImageSweep   = "images:sweep"
)

// Task Queues
const (
	QueueCritical = "critical"
	QueueDefault  = "default"
	QueueLow      = "low" // background cleanup work
)

// Task Timeouts
const (
	TimeoutShort  = 1 * time.Minute
	TimeoutMedium = 5 * time.Minute
)

// Task Retry Settings
const (
	RetryDefault = 3
)

// ImageCleanupPayload names the files a deleted property leaves behind.
type ImageCleanupPayload struct {
	PropertyID string   `json:"propertyId"`
	Images     []string `json:"images"`
}
