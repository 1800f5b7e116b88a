package tasks

import (
	"encoding/json"

	"imovia/internal/events"
	"imovia/internal/models"
	"imovia/internal/utils/logger"

	"github.com/hibiken/asynq"
)

// TaskClient enqueues background work. The request path never waits on
// it: a failed enqueue is logged, not surfaced to the caller.
type TaskClient struct {
	client *asynq.Client
	log    *logger.Logger
}

// NewTaskClient creates a new TaskClient with the given Redis configuration
func NewTaskClient(redisAddr, username, password string, db int) *TaskClient {
	redisOpt := asynq.RedisClientOpt{
		Addr:     redisAddr,
		Username: username,
		Password: password,
		DB:       db,
	}

	return &TaskClient{
		client: asynq.NewClient(redisOpt),
		log:    logger.New("TASKS"),
	}
}

// EnqueueImageCleanup schedules removal of a deleted property's images
// from storage.
func (c *TaskClient) EnqueueImageCleanup(property *models.Property) {
	if len(property.Images) == 0 {
		return
	}

	payload, err := json.Marshal(ImageCleanupPayload{
		PropertyID: property.ID,
		Images:     property.Images,
	})
	if err != nil {
		_ = c.log.Error("Failed to marshal image cleanup payload", err)
		return
	}

	task := asynq.NewTask(TaskTypeImageCleanup, payload,
		asynq.Queue(QueueLow),
		asynq.MaxRetry(RetryDefault),
		asynq.Timeout(TimeoutShort),
	)

	if _, err := c.client.Enqueue(task); err != nil {
		_ = c.log.Error("Failed to enqueue image cleanup for property %s", err, property.ID)
		return
	}

	c.log.Info("Enqueued image cleanup for property %s (%d files)", property.ID, len(property.Images))
}

// SubscribeEvents enqueues cleanup work whenever a property is deleted.
func (c *TaskClient) SubscribeEvents() {
	events.On(events.PropertyDeleted, func(data interface{}) {
		property, ok := data.(*models.Property)
		if !ok {
			return
		}
		c.EnqueueImageCleanup(property)
	})
}

// Close closes the underlying asynq client
func (c *TaskClient) Close() error {
	return c.client.Close()
}
