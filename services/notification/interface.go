package notification

import "context"

// SMSSender delivers text messages to citizens. Booking confirmation,
// reminder and cancellation texts all go through this.
type SMSSender interface {
	SendSMS(ctx context.Context, phoneNumber, message string) error
}
