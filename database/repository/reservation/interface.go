package reservationRepo

import (
	"context"

	"roomie/database"
	"roomie/models"

	"go.mongodb.org/mongo-driver/mongo"
)

// ReservationRepository is the durable keyed store for reservations. All
// operations are atomic with respect to a single record.
type ReservationRepository interface {
	// Upsert inserts or fully overwrites the record at its booking number.
	// Returns ErrInvalidKey when the booking number is empty.
	Upsert(ctx context.Context, record models.ReservationRecord) error
	// Lookup returns the record only when both booking number and stored
	// full name match exactly; ErrNotFound otherwise. The double-key match
	// is the sole ownership check for a reservation.
	Lookup(ctx context.Context, bookingNumber, fullName string) (*models.ReservationRecord, error)
	// Delete removes the record; deleting an absent key is not an error.
	Delete(ctx context.Context, bookingNumber string) error
}

type mongoReservationRepo struct {
	coll *mongo.Collection
}

// NewMongoReservationRepo returns a ReservationRepository backed by MongoDB.
func NewMongoReservationRepo() ReservationRepository {
	db := database.MongoClient.Database("roomie")
	return &mongoReservationRepo{
		coll: db.Collection("reservations"),
	}
}
