package tasks

import (
	"context"
	"fmt"

	"imovia/internal/utils/logger"

	"github.com/hibiken/asynq"
)

// Server handles task processing
type Server struct {
	server  *asynq.Server
	handler *TaskHandler
	log     *logger.Logger
}

// NewServer creates a new task processing server
func NewServer(redisAddr, username, password string, db, concurrency int, handler *TaskHandler, log *logger.Logger) *Server {
	server := asynq.NewServer(
		asynq.RedisClientOpt{
			Addr:     redisAddr,
			Username: username,
			Password: password,
			DB:       db,
		},
		asynq.Config{
			Concurrency: concurrency,
			Queues: map[string]int{
				QueueCritical: 6,
				QueueDefault:  3,
				QueueLow:      1,
			},
			StrictPriority: true,
		},
	)

	return &Server{
		server:  server,
		handler: handler,
		log:     log,
	}
}

// Start starts the task processing server
func (s *Server) Start(ctx context.Context) error {
	mux := asynq.NewServeMux()

	mux.HandleFunc(TaskTypeImageCleanup, s.handler.HandleImageCleanup)
	mux.HandleFunc(TaskTypeImageSweep, s.handler.HandleImageSweep)

	s.log.Info("starting task processing server")

	if err := s.server.Start(mux); err != nil {
		return fmt.Errorf("failed to start task server: %w", err)
	}

	return nil
}

// Stop stops the task processing server
func (s *Server) Stop() {
	s.server.Stop()
	s.log.Info("task processing server stopped")
}

// Shutdown gracefully shuts down the task processing server
func (s *Server) Shutdown() {
	s.log.Info("shutting down task processing server")
	s.server.Shutdown()
}
