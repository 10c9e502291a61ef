package tasks

import (
	"encoding/json"
	"time"

	"github.com/Kerubo0/Rafiki/models"

	"github.com/hibiken/asynq"
)

const TypeSendReminder = "reminder:send"

// NewReminderTask wraps a reminder payload as an asynq task scheduled for
// fireAt.
func NewReminderTask(payload models.ReminderPayload, fireAt time.Time) (*asynq.Task, []asynq.Option, error) {
	b, err := json.Marshal(payload)
	if err != nil {
		return nil, nil, err
	}
	task := asynq.NewTask(TypeSendReminder, b)
	opts := []asynq.Option{asynq.ProcessAt(fireAt)}

	return task, opts, nil
}

// Scheduler enqueues appointment reminders. Nil-able: without Redis the
// booking flow simply skips reminders.
type Scheduler interface {
	ScheduleReminder(payload models.ReminderPayload, fireAt time.Time) error
}

// AsynqScheduler enqueues reminders onto the Redis-backed queue.
type AsynqScheduler struct {
	client *asynq.Client
}

// NewAsynqScheduler builds a scheduler over the given Redis connection.
func NewAsynqScheduler(redisOpt asynq.RedisClientOpt) *AsynqScheduler {
	return &AsynqScheduler{client: asynq.NewClient(redisOpt)}
}

func (s *AsynqScheduler) ScheduleReminder(payload models.ReminderPayload, fireAt time.Time) error {
	task, opts, err := NewReminderTask(payload, fireAt)
	if err != nil {
		return err
	}
	_, err = s.client.Enqueue(task, opts...)
	return err
}
