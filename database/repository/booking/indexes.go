package bookingRepo

import (
	"context"
	"fmt"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

// EnsureIndexes creates the necessary indexes on the bookings collection.
func (r *mongoBookingRepo) EnsureIndexes() error {
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	indexModels := []mongo.IndexModel{
		{
			Keys:    bson.D{{Key: "id", Value: 1}},
			Options: options.Index().SetUnique(true).SetName("unique_id"),
		},
		// Primary lookup pattern: a citizen's bookings by phone.
		{
			Keys:    bson.D{{Key: "phone_number", Value: 1}, {Key: "appointment_date", Value: -1}},
			Options: options.Index().SetName("phone_date_idx"),
		},
		// Duplicate probe on create.
		{
			Keys: bson.D{
				{Key: "phone_number", Value: 1},
				{Key: "service_type", Value: 1},
				{Key: "appointment_date", Value: 1},
				{Key: "time_slot", Value: 1},
			},
			Options: options.Index().SetName("duplicate_probe_idx"),
		},
	}

	_, err := r.coll.Indexes().CreateMany(ctx, indexModels)
	if err != nil {
		return fmt.Errorf("failed to create booking indexes: %w", err)
	}
	return nil
}
