package cron

import (
	"context"
	"fmt"

	"asst/config"
	"asst/services/notification"
	"asst/services/tasks"
	"asst/utils"

	"github.com/hibiken/asynq"
	"go.uber.org/zap"
)

// QueueRedisOpt returns the asynq connection for the task queue DB.
func QueueRedisOpt() asynq.RedisClientOpt {
	return asynq.RedisClientOpt{
		Addr:     config.AppConfig.RedisAddr,
		Password: config.AppConfig.RedisPassword,
		DB:       config.AppConfig.RedisQueueDB,
	}
}

// NewEmailMux routes booking email tasks to mailer.
func NewEmailMux(mailer notification.Mailer) *asynq.ServeMux {
	mux := asynq.NewServeMux()
	mux.HandleFunc(tasks.TypeBookingEmail, handleBookingEmailTask(mailer))
	return mux
}

// EmailWorker runs the asynq server that delivers queued emails.
type EmailWorker struct {
	srv *asynq.Server
	mux *asynq.ServeMux
}

// NewEmailWorker builds the worker with ten concurrent deliveries.
func NewEmailWorker(mailer notification.Mailer) *EmailWorker {
	logger := utils.GetLogger().Sugar().Named("email-worker")
	srv := asynq.NewServer(
		QueueRedisOpt(),
		asynq.Config{
			Concurrency: 10,
			Queues: map[string]int{
				"default": 1,
			},
			Logger: logger,
			ErrorHandler: asynq.ErrorHandlerFunc(func(ctx context.Context, task *asynq.Task, err error) {
				retried, _ := asynq.GetRetryCount(ctx)
				maxRetry, _ := asynq.GetMaxRetry(ctx)
				utils.GetLogger().Error("Email task failed",
					zap.String("type", task.Type()),
					zap.Int("retry", retried),
					zap.Int("maxRetry", maxRetry),
					zap.Error(err))
			}),
		},
	)
	return &EmailWorker{srv: srv, mux: NewEmailMux(mailer)}
}

// Start begins processing in the background.
func (w *EmailWorker) Start() error {
	if err := w.srv.Start(w.mux); err != nil {
		return fmt.Errorf("failed to start email worker: %w", err)
	}
	utils.GetLogger().Info("Email worker started")
	return nil
}

// Shutdown waits for in-flight deliveries and stops the server.
func (w *EmailWorker) Shutdown() {
	w.srv.Shutdown()
}

func handleBookingEmailTask(mailer notification.Mailer) asynq.HandlerFunc {
	return func(ctx context.Context, task *asynq.Task) error {
		p, err := tasks.ParseEmailPayload(task)
		if err != nil {
			utils.GetLogger().Error("Dropping malformed email task", zap.Error(err))
			return fmt.Errorf("%w: %v", asynq.SkipRetry, err)
		}

		logger := utils.GetLogger().With(zap.String("bookingID", p.BookingID), zap.String("kind", p.Kind))
		err = mailer.Send(ctx, notification.Message{
			From:    p.From,
			To:      p.To,
			Subject: p.Subject,
			Body:    p.Body,
		})
		if err != nil {
			logger.Warn("Failed to send booking email", zap.Error(err))
			return err
		}
		logger.Info("Booking email sent")
		return nil
	}
}
