package bookingRepo

import (
	"context"
	"time"

	"github.com/Kerubo0/Rafiki/models"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

// Create inserts a new booking.
func (r *mongoBookingRepo) Create(ctx context.Context, booking *models.Booking) error {
	booking.CreatedAt = time.Now().UTC()
	booking.UpdatedAt = booking.CreatedAt

	_, err := r.coll.InsertOne(ctx, booking)
	return err
}

// GetByID returns a booking by its ID.
func (r *mongoBookingRepo) GetByID(ctx context.Context, id string) (*models.Booking, error) {
	var booking models.Booking
	err := r.coll.FindOne(ctx, bson.M{"id": id}).Decode(&booking)
	if err == mongo.ErrNoDocuments {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, err
	}
	return &booking, nil
}

// FindActive returns a non-cancelled booking for the same phone, service,
// date and slot.
func (r *mongoBookingRepo) FindActive(ctx context.Context, phone, serviceType, date string, slot models.TimeSlot) (*models.Booking, error) {
	filter := bson.M{
		"phone_number":     phone,
		"service_type":     serviceType,
		"appointment_date": date,
		"time_slot":        slot,
		"status":           bson.M{"$ne": models.BookingCancelled},
	}
	var booking models.Booking
	err := r.coll.FindOne(ctx, filter).Decode(&booking)
	if err == mongo.ErrNoDocuments {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, err
	}
	return &booking, nil
}

// ListByPhone fetches all bookings for a phone number, most recent
// appointment first.
func (r *mongoBookingRepo) ListByPhone(ctx context.Context, phone string) ([]models.Booking, error) {
	opts := options.Find().SetSort(bson.D{{Key: "appointment_date", Value: -1}})
	cursor, err := r.coll.Find(ctx, bson.M{"phone_number": phone}, opts)
	if err != nil {
		return nil, err
	}
	defer cursor.Close(ctx)

	var bookings []models.Booking
	if err := cursor.All(ctx, &bookings); err != nil {
		return nil, err
	}
	return bookings, nil
}

// Update replaces a stored booking.
func (r *mongoBookingRepo) Update(ctx context.Context, booking *models.Booking) error {
	booking.UpdatedAt = time.Now().UTC()

	res, err := r.coll.ReplaceOne(ctx, bson.M{"id": booking.ID}, booking)
	if err != nil {
		return err
	}
	if res.MatchedCount == 0 {
		return ErrNotFound
	}
	return nil
}
