package bookingRepo

import (
	"context"
	"fmt"
	"time"

	"consultify/models"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo/options"
)

func (r *MongoBookingRepo) ListByAdvisorAndDate(ctx context.Context, advisorID, date string) ([]models.Booking, error) {
	filter := bson.M{"advisor_id": advisorID, "scheduled_date": date}
	return r.list(ctx, filter, options.Find().SetSort(bson.D{{Key: "scheduled_time", Value: 1}}))
}

func (r *MongoBookingRepo) ListByClient(ctx context.Context, clientID string) ([]models.Booking, error) {
	filter := bson.M{"client_id": clientID}
	return r.list(ctx, filter, options.Find().SetSort(bson.D{{Key: "created_at", Value: -1}}))
}

func (r *MongoBookingRepo) ListByAdvisor(ctx context.Context, advisorID string) ([]models.Booking, error) {
	filter := bson.M{"advisor_id": advisorID}
	return r.list(ctx, filter, options.Find().SetSort(bson.D{{Key: "created_at", Value: -1}}))
}

func (r *MongoBookingRepo) ListAll(ctx context.Context, date string) ([]models.Booking, error) {
	filter := bson.M{}
	if date != "" {
		filter["scheduled_date"] = date
	}
	return r.list(ctx, filter, options.Find().SetSort(bson.D{
		{Key: "scheduled_date", Value: 1},
		{Key: "scheduled_time", Value: 1},
	}))
}

func (r *MongoBookingRepo) ListLiveByDate(ctx context.Context, date, fromTime, toTime string) ([]models.Booking, error) {
	filter := bson.M{
		"scheduled_date": date,
		"scheduled_time": bson.M{"$gte": fromTime, "$lt": toTime},
		"status":         bson.M{"$in": []models.BookingStatus{models.StatusPending, models.StatusConfirmed}},
	}
	return r.list(ctx, filter, options.Find().SetSort(bson.D{{Key: "scheduled_time", Value: 1}}))
}

func (r *MongoBookingRepo) list(ctx context.Context, filter bson.M, opts *options.FindOptions) ([]models.Booking, error) {
	ctx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	cursor, err := r.coll.Find(ctx, filter, opts)
	if err != nil {
		return nil, fmt.Errorf("failed to query bookings: %w", err)
	}
	defer cursor.Close(ctx)

	var bookings []models.Booking
	if err := cursor.All(ctx, &bookings); err != nil {
		return nil, fmt.Errorf("failed to decode bookings: %w", err)
	}
	return bookings, nil
}
