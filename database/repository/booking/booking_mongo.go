package bookingRepo

import (
	"context"
	"fmt"
	"time"

	"medibook/database"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
)

// MongoBookingRepo implements BookingRepository across the doctors and
// appointments collections.
type MongoBookingRepo struct {
	doctorColl *mongo.Collection
	apptColl   *mongo.Collection
}

// NewMongoBookingRepo creates a new instance of BookingRepository using MongoDB.
func NewMongoBookingRepo() BookingRepository {
	return &MongoBookingRepo{
		doctorColl: database.Collection("doctors"),
		apptColl:   database.Collection("appointments"),
	}
}

// VerifyReserved reports whether the slot label is present in the doctor's
// booked set. Used for the post-reservation integrity check.
func (repo *MongoBookingRepo) VerifyReserved(ctx context.Context, doctorID, dayKey, timeLabel string) (bool, error) {
	ctx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	filter := bson.M{
		"id":                    doctorID,
		"slotsBooked." + dayKey: timeLabel,
	}
	n, err := repo.doctorColl.CountDocuments(ctx, filter)
	if err != nil {
		return false, fmt.Errorf("failed to verify reservation for doctor %s: %w", doctorID, err)
	}
	return n > 0, nil
}
