package bookingRepo

import (
	"context"
	"sort"
	"sync"
	"time"

	"github.com/Kerubo0/Rafiki/models"
)

// memoryBookingRepo keeps bookings in process memory. It backs the server
// when Mongo is not configured, and tests.
type memoryBookingRepo struct {
	mu       sync.RWMutex
	bookings map[string]models.Booking
	byPhone  map[string][]string
}

// NewMemoryBookingRepo returns an in-memory Repository.
func NewMemoryBookingRepo() Repository {
	return &memoryBookingRepo{
		bookings: make(map[string]models.Booking),
		byPhone:  make(map[string][]string),
	}
}

func (r *memoryBookingRepo) Create(ctx context.Context, booking *models.Booking) error {
	booking.CreatedAt = time.Now().UTC()
	booking.UpdatedAt = booking.CreatedAt

	r.mu.Lock()
	defer r.mu.Unlock()
	r.bookings[booking.ID] = *booking
	r.byPhone[booking.PhoneNumber] = append(r.byPhone[booking.PhoneNumber], booking.ID)
	return nil
}

func (r *memoryBookingRepo) GetByID(ctx context.Context, id string) (*models.Booking, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	booking, ok := r.bookings[id]
	if !ok {
		return nil, ErrNotFound
	}
	return &booking, nil
}

func (r *memoryBookingRepo) FindActive(ctx context.Context, phone, serviceType, date string, slot models.TimeSlot) (*models.Booking, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	for _, id := range r.byPhone[phone] {
		booking, ok := r.bookings[id]
		if !ok {
			continue
		}
		if booking.Status != models.BookingCancelled &&
			booking.ServiceType == serviceType &&
			booking.AppointmentDate == date &&
			booking.TimeSlot == slot {
			match := booking
			return &match, nil
		}
	}
	return nil, ErrNotFound
}

func (r *memoryBookingRepo) ListByPhone(ctx context.Context, phone string) ([]models.Booking, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	var bookings []models.Booking
	for _, id := range r.byPhone[phone] {
		if booking, ok := r.bookings[id]; ok {
			bookings = append(bookings, booking)
		}
	}
	sort.Slice(bookings, func(i, j int) bool {
		return bookings[i].AppointmentDate > bookings[j].AppointmentDate
	})
	return bookings, nil
}

func (r *memoryBookingRepo) Update(ctx context.Context, booking *models.Booking) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, ok := r.bookings[booking.ID]; !ok {
		return ErrNotFound
	}
	booking.UpdatedAt = time.Now().UTC()
	r.bookings[booking.ID] = *booking
	return nil
}
