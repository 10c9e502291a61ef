package booking

import (
	"context"
	"errors"
	"fmt"
	"testing"
	"time"

	bookingRepo "github.com/Kerubo0/Rafiki/database/repository/booking"
	"github.com/Kerubo0/Rafiki/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type recordingSender struct {
	messages []string
	phones   []string
	fail     bool
}

func (r *recordingSender) SendSMS(ctx context.Context, phoneNumber, message string) error {
	if r.fail {
		return errors.New("gateway down")
	}
	r.phones = append(r.phones, phoneNumber)
	r.messages = append(r.messages, message)
	return nil
}

type recordingScheduler struct {
	payloads []models.ReminderPayload
	fireAts  []time.Time
}

func (r *recordingScheduler) ScheduleReminder(payload models.ReminderPayload, fireAt time.Time) error {
	r.payloads = append(r.payloads, payload)
	r.fireAts = append(r.fireAts, fireAt)
	return nil
}

func newTestService() (*DefaultBookingService, *recordingSender, *recordingScheduler) {
	sms := &recordingSender{}
	sched := &recordingScheduler{}
	svc := &DefaultBookingService{
		Repo:      bookingRepo.NewMemoryBookingRepo(),
		SMS:       sms,
		Reminders: sched,
	}
	return svc, sms, sched
}

func validRequest() CreateBookingRequest {
	date := time.Now().AddDate(0, 0, 7).Format("2006-01-02")
	return CreateBookingRequest{
		ServiceType:     models.ServicePassport,
		UserName:        "John Mwangi",
		PhoneNumber:     "+254712345678",
		TimeSlot:        models.SlotMorning,
		AppointmentDate: date,
		SendSMS:         true,
	}
}

func TestCreateBooking(t *testing.T) {
	svc, sms, sched := newTestService()

	result := svc.Create(context.Background(), validRequest())
	require.True(t, result.Success, result.Error)
	require.NotNil(t, result.Booking)

	assert.Len(t, result.Booking.ID, 8)
	assert.Equal(t, models.BookingConfirmed, result.Booking.Status)
	assert.Contains(t, result.Message, result.Booking.ID)
	assert.True(t, result.SMSSent)
	require.Len(t, sms.messages, 1)
	assert.Contains(t, sms.messages[0], result.Booking.ID)
	assert.Equal(t, "+254712345678", sms.phones[0])

	require.Len(t, sched.payloads, 1)
	assert.Equal(t, result.Booking.ID, sched.payloads[0].BookingID)
	assert.Equal(t, 18, sched.fireAts[0].Hour())
}

func TestCreateBookingValidation(t *testing.T) {
	svc, _, _ := newTestService()
	ctx := context.Background()

	tests := []struct {
		name   string
		mutate func(*CreateBookingRequest)
	}{
		{"unknown service", func(r *CreateBookingRequest) { r.ServiceType = "land_title" }},
		{"unknown slot", func(r *CreateBookingRequest) { r.TimeSlot = "09:00-10:00" }},
		{"bad date format", func(r *CreateBookingRequest) { r.AppointmentDate = "07/01/2026" }},
		{"past date", func(r *CreateBookingRequest) { r.AppointmentDate = "2020-01-01" }},
		{"too far ahead", func(r *CreateBookingRequest) {
			r.AppointmentDate = time.Now().AddDate(0, 0, 120).Format("2006-01-02")
		}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req := validRequest()
			tt.mutate(&req)
			result := svc.Create(ctx, req)
			assert.False(t, result.Success)
			assert.NotEmpty(t, result.Error)
		})
	}
}

func TestCreateBookingRejectsDuplicate(t *testing.T) {
	svc, _, _ := newTestService()
	ctx := context.Background()

	first := svc.Create(ctx, validRequest())
	require.True(t, first.Success)

	second := svc.Create(ctx, validRequest())
	assert.False(t, second.Success)
	require.NotNil(t, second.Booking)
	assert.Equal(t, first.Booking.ID, second.Booking.ID)
}

func TestCreateBookingSurvivesSMSFailure(t *testing.T) {
	svc, sms, _ := newTestService()
	sms.fail = true

	result := svc.Create(context.Background(), validRequest())
	require.True(t, result.Success)
	assert.False(t, result.SMSSent)
}

func TestCancelBooking(t *testing.T) {
	svc, sms, _ := newTestService()
	ctx := context.Background()

	created := svc.Create(ctx, validRequest())
	require.True(t, created.Success)
	smsCount := len(sms.messages)

	result := svc.Cancel(ctx, created.Booking.ID, true)
	require.True(t, result.Success)
	assert.Equal(t, models.BookingCancelled, result.Booking.Status)
	assert.Len(t, sms.messages, smsCount+1)

	again := svc.Cancel(ctx, created.Booking.ID, false)
	assert.False(t, again.Success)

	missing := svc.Cancel(ctx, "ZZZZZZZZ", false)
	assert.False(t, missing.Success)
}

func TestUpdateBooking(t *testing.T) {
	svc, _, _ := newTestService()
	ctx := context.Background()

	created := svc.Create(ctx, validRequest())
	require.True(t, created.Success)

	notes := "wheelchair access needed"
	result := svc.Update(ctx, created.Booking.ID, UpdateBookingRequest{
		TimeSlot:        models.SlotAfternoon,
		AdditionalNotes: &notes,
	})
	require.True(t, result.Success)
	assert.Equal(t, models.SlotAfternoon, result.Booking.TimeSlot)
	assert.Equal(t, notes, result.Booking.AdditionalNotes)

	bad := svc.Update(ctx, created.Booking.ID, UpdateBookingRequest{AppointmentDate: "2020-01-01"})
	assert.False(t, bad.Success)

	cancelled := svc.Cancel(ctx, created.Booking.ID, false)
	require.True(t, cancelled.Success)
	afterCancel := svc.Update(ctx, created.Booking.ID, UpdateBookingRequest{TimeSlot: models.SlotMorning})
	assert.False(t, afterCancel.Success)
}

func TestListByPhoneStatusFilter(t *testing.T) {
	svc, _, _ := newTestService()
	ctx := context.Background()

	first := svc.Create(ctx, validRequest())
	require.True(t, first.Success)

	second := validRequest()
	second.TimeSlot = models.SlotAfternoon
	created := svc.Create(ctx, second)
	require.True(t, created.Success)
	require.True(t, svc.Cancel(ctx, created.Booking.ID, false).Success)

	all, err := svc.ListByPhone(ctx, "+254712345678", "")
	require.NoError(t, err)
	assert.Len(t, all, 2)

	confirmed, err := svc.ListByPhone(ctx, "+254712345678", models.BookingConfirmed)
	require.NoError(t, err)
	require.Len(t, confirmed, 1)
	assert.Equal(t, first.Booking.ID, confirmed[0].ID)
}

func TestAvailableDatesSkipsWeekends(t *testing.T) {
	svc, _, _ := newTestService()

	days := svc.AvailableDates(models.ServicePassport, 14)
	require.NotEmpty(t, days)
	for _, day := range days {
		assert.NotEqual(t, time.Saturday.String(), day.DayName)
		assert.NotEqual(t, time.Sunday.String(), day.DayName)
		assert.True(t, day.Morning)
		assert.True(t, day.Afternoon)
	}
}

func TestNextBusinessDay(t *testing.T) {
	// 2026-08-21 is a Friday; the next business day is Monday the 24th.
	friday := time.Date(2026, 8, 21, 15, 0, 0, 0, time.UTC)
	assert.Equal(t, "2026-08-24", NextBusinessDay(friday).Format("2006-01-02"))

	wednesday := time.Date(2026, 8, 19, 9, 0, 0, 0, time.UTC)
	assert.Equal(t, "2026-08-20", NextBusinessDay(wednesday).Format("2006-01-02"))
}

func TestServiceDirectory(t *testing.T) {
	svc, _, _ := newTestService()

	info, ok := svc.ServiceInfo(models.ServicePassport)
	require.True(t, ok)
	assert.NotEmpty(t, info.Name)

	_, ok = svc.ServiceInfo("land_title")
	assert.False(t, ok)

	services := svc.AllServices()
	assert.Len(t, services, len(models.ServiceTypes))
}

func TestCreateBookingMessageFormat(t *testing.T) {
	svc, _, _ := newTestService()

	req := validRequest()
	result := svc.Create(context.Background(), req)
	require.True(t, result.Success)

	date, err := time.Parse("2006-01-02", req.AppointmentDate)
	require.NoError(t, err)
	expected := fmt.Sprintf("Your appointment for Passport Application has been booked for %s during %s. Booking ID: %s",
		date.Format("January 02, 2006"), models.SlotMorning, result.Booking.ID)
	assert.Equal(t, expected, result.Message)
}
