package reservationRepo

import (
	"context"
	"errors"
	"fmt"

	"roomie/models"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

// Upsert inserts or fully replaces the reservation keyed by booking number.
func (r *mongoReservationRepo) Upsert(ctx context.Context, record models.ReservationRecord) error {
	if record.BookingNumber == "" {
		return ErrInvalidKey
	}

	filter := bson.M{"booking_number": record.BookingNumber}
	opts := options.Replace().SetUpsert(true)
	if _, err := r.coll.ReplaceOne(ctx, filter, record, opts); err != nil {
		return fmt.Errorf("failed to upsert reservation %q: %w", record.BookingNumber, err)
	}
	return nil
}

// Lookup fetches the reservation matching both booking number and full name.
func (r *mongoReservationRepo) Lookup(ctx context.Context, bookingNumber, fullName string) (*models.ReservationRecord, error) {
	var record models.ReservationRecord
	filter := bson.M{"booking_number": bookingNumber, "full_name": fullName}
	err := r.coll.FindOne(ctx, filter).Decode(&record)
	if errors.Is(err, mongo.ErrNoDocuments) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("failed to look up reservation %q: %w", bookingNumber, err)
	}
	return &record, nil
}

// Delete removes the reservation; absent keys are a no-op.
func (r *mongoReservationRepo) Delete(ctx context.Context, bookingNumber string) error {
	if _, err := r.coll.DeleteOne(ctx, bson.M{"booking_number": bookingNumber}); err != nil {
		return fmt.Errorf("failed to delete reservation %q: %w", bookingNumber, err)
	}
	return nil
}
