package workers

import (
	"context"
	"encoding/json"
	"time"

	"github.com/Kerubo0/Rafiki/config"
	"github.com/Kerubo0/Rafiki/models"
	"github.com/Kerubo0/Rafiki/services/notification"
	"github.com/Kerubo0/Rafiki/services/tasks"
	"github.com/Kerubo0/Rafiki/utils"

	"github.com/hibiken/asynq"
	"go.uber.org/zap"
)

// StartReminderWorker runs the async reminder worker in the background.
// It drains the queue of scheduled appointment reminders and sends each
// as an SMS.
func StartReminderWorker(sender notification.SMSSender) {
	redisOpts := asynq.RedisClientOpt{
		Addr:     config.AppConfig.RedisAddr,
		Password: config.AppConfig.RedisPassword,
		DB:       config.AppConfig.RedisQueueDB,
	}

	srv := asynq.NewServer(
		redisOpts,
		asynq.Config{
			Concurrency: 10,
			Queues: map[string]int{
				"default": 1,
			},
		},
	)

	mux := asynq.NewServeMux()
	mux.HandleFunc(tasks.TypeSendReminder, handleReminderTask(sender))

	go func() {
		logger := utils.GetLogger()
		logger.Info("starting reminder worker")
		const maxAttempts = 5

		for attempts := 1; attempts <= maxAttempts; attempts++ {
			err := srv.Run(mux)
			if err == nil {
				return
			}
			logger.Error("reminder worker failed to start",
				zap.Int("attempt", attempts), zap.Int("maxAttempts", maxAttempts), zap.Error(err))
			if attempts == maxAttempts {
				logger.Warn("reminder worker giving up; reminders will not be sent")
				return
			}
			time.Sleep(time.Duration(attempts*2) * time.Second)
		}
	}()
}

func handleReminderTask(sender notification.SMSSender) asynq.HandlerFunc {
	return func(ctx context.Context, task *asynq.Task) error {
		var p models.ReminderPayload
		if err := json.Unmarshal(task.Payload(), &p); err != nil {
			utils.GetLogger().Error("invalid reminder payload", zap.Error(err))
			return err
		}

		msg := notification.ReminderMessage(p.ServiceType, p.Date, p.TimeSlot)
		if err := sender.SendSMS(ctx, p.PhoneNumber, msg); err != nil {
			utils.GetLogger().Warn("reminder SMS failed",
				zap.String("bookingId", p.BookingID), zap.Error(err))
			return err
		}

		utils.GetLogger().Info("reminder sent",
			zap.String("bookingId", p.BookingID), zap.String("date", p.Date))
		return nil
	}
}
