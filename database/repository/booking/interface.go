package bookingRepo

import (
	"context"
	"errors"

	"github.com/Kerubo0/Rafiki/config"
	"github.com/Kerubo0/Rafiki/database"
	"github.com/Kerubo0/Rafiki/models"
	"github.com/Kerubo0/Rafiki/utils"

	"go.mongodb.org/mongo-driver/mongo"
	"go.uber.org/zap"
)

// ErrNotFound is returned when no booking matches the query.
var ErrNotFound = errors.New("booking not found")

// Repository persists appointment bookings.
type Repository interface {
	Create(ctx context.Context, booking *models.Booking) error
	GetByID(ctx context.Context, id string) (*models.Booking, error)
	// FindActive returns a non-cancelled booking with the same phone,
	// service, date and slot, or ErrNotFound.
	FindActive(ctx context.Context, phone, serviceType, date string, slot models.TimeSlot) (*models.Booking, error)
	ListByPhone(ctx context.Context, phone string) ([]models.Booking, error)
	Update(ctx context.Context, booking *models.Booking) error
}

type mongoBookingRepo struct {
	coll *mongo.Collection
}

// NewMongoBookingRepo returns a Repository backed by MongoDB.
func NewMongoBookingRepo() Repository {
	db := database.MongoClient.Database(config.AppConfig.DatabaseName)
	repo := &mongoBookingRepo{
		coll: db.Collection("bookings"),
	}
	if err := repo.EnsureIndexes(); err != nil {
		utils.GetLogger().Warn("failed to ensure booking indexes", zap.Error(err))
	}
	return repo
}
