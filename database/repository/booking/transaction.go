package bookingRepo

import (
	"context"
	"fmt"
	"time"

	"medibook/models"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
)

func (repo *MongoBookingRepo) withTransaction(ctx context.Context, txnFn func(sc mongo.SessionContext) error) error {
	client := repo.doctorColl.Database().Client()
	sess, err := client.StartSession()
	if err != nil {
		return fmt.Errorf("could not start mongo session: %w", err)
	}
	defer sess.EndSession(ctx)

	return mongo.WithSession(ctx, sess, func(sc mongo.SessionContext) error {
		if err := sc.StartTransaction(); err != nil {
			return err
		}
		if err := txnFn(sc); err != nil {
			_ = sc.AbortTransaction(sc)
			return err
		}
		return sc.CommitTransaction(sc)
	})
}

// Reserve atomically appends the slot label to the doctor's booked set and
// inserts the appointment record. The doctor update is conditional: it
// matches only while the doctor accepts bookings and the label is absent,
// so of N racing requests exactly one commits and the rest get
// ErrSlotUnavailable.
func (repo *MongoBookingRepo) Reserve(ctx context.Context, appt *models.Appointment) error {
	slotField := "slotsBooked." + appt.SlotDate

	txnFn := func(sc mongo.SessionContext) error {
		if _, err := repo.apptColl.InsertOne(sc, appt); err != nil {
			return fmt.Errorf("insert appointment failed: %w", err)
		}

		filter := bson.M{
			"id":        appt.DoctorID,
			"available": true,
			slotField:   bson.M{"$ne": appt.SlotTime},
		}
		update := bson.M{
			"$addToSet": bson.M{slotField: appt.SlotTime},
			"$set":      bson.M{"updatedAt": time.Now()},
		}

		res, err := repo.doctorColl.UpdateOne(sc, filter, update)
		if err != nil {
			return fmt.Errorf("reserve slot update failed: %w", err)
		}
		if res.MatchedCount == 0 {
			return ErrSlotUnavailable
		}
		return nil
	}

	if err := repo.withTransaction(ctx, txnFn); err != nil {
		if err == ErrSlotUnavailable {
			return err
		}
		return fmt.Errorf("booking transaction failed: %w", err)
	}
	return nil
}

// Cancel atomically flips the appointment to cancelled and removes the slot
// label from the doctor's booked set. The status flip is guarded so that
// cancelled and completed stay terminal; a no-op match aborts with
// ErrAlreadyFinal.
func (repo *MongoBookingRepo) Cancel(ctx context.Context, appt *models.Appointment) error {
	slotField := "slotsBooked." + appt.SlotDate

	txnFn := func(sc mongo.SessionContext) error {
		filter := bson.M{"id": appt.ID, "cancelled": false, "isCompleted": false}
		update := bson.M{"$set": bson.M{"cancelled": true, "updatedAt": time.Now()}}

		res, err := repo.apptColl.UpdateOne(sc, filter, update)
		if err != nil {
			return fmt.Errorf("cancel appointment update failed: %w", err)
		}
		if res.MatchedCount == 0 {
			return ErrAlreadyFinal
		}

		docFilter := bson.M{"id": appt.DoctorID}
		docUpdate := bson.M{
			"$pull": bson.M{slotField: appt.SlotTime},
			"$set":  bson.M{"updatedAt": time.Now()},
		}
		if _, err := repo.doctorColl.UpdateOne(sc, docFilter, docUpdate); err != nil {
			return fmt.Errorf("release slot update failed: %w", err)
		}
		return nil
	}

	if err := repo.withTransaction(ctx, txnFn); err != nil {
		if err == ErrAlreadyFinal {
			return err
		}
		return fmt.Errorf("cancel transaction failed: %w", err)
	}
	return nil
}
