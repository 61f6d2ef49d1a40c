package bookingRepo

import (
	"context"
	"errors"
	"fmt"
	"time"

	"slotbook/models"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

// MongoBookingRepo implements BookingRepository using MongoDB.
type MongoBookingRepo struct {
	coll *mongo.Collection
}

// NewMongoBookingRepo creates a booking repository on the "bookings" collection of db.
func NewMongoBookingRepo(db *mongo.Database) *MongoBookingRepo {
	return &MongoBookingRepo{coll: db.Collection("bookings")}
}

func wrapWriteErr(op string, id primitive.ObjectID, err error) error {
	if mongo.IsDuplicateKeyError(err) {
		return ErrDuplicate
	}
	return fmt.Errorf("error %s booking %s: %w", op, id.Hex(), err)
}

// Create inserts a new booking document.
func (r *MongoBookingRepo) Create(ctx context.Context, booking *models.Booking) error {
	ctx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	if booking.ID.IsZero() {
		booking.ID = primitive.NewObjectID()
	}
	if _, err := r.coll.InsertOne(ctx, booking); err != nil {
		return wrapWriteErr("creating", booking.ID, err)
	}
	return nil
}

// Update replaces the stored booking with the given one, provided nobody
// changed its status since it was read.
func (r *MongoBookingRepo) Update(ctx context.Context, booking *models.Booking, expected models.BookingStatus) error {
	ctx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	res, err := r.coll.ReplaceOne(ctx, statusGuardFilter(booking.ID, expected), booking)
	if err != nil {
		return wrapWriteErr("updating", booking.ID, err)
	}
	if res.MatchedCount > 0 {
		return nil
	}
	n, err := r.coll.CountDocuments(ctx, bson.M{"_id": booking.ID})
	if err != nil {
		return fmt.Errorf("error checking booking %s: %w", booking.ID.Hex(), err)
	}
	if n == 0 {
		return ErrNotFound
	}
	return ErrStale
}

// NormalizeProviderIDs converts legacy hex-string providerId values to
// ObjectIDs so the active-slot index compares every row in one form.
func (r *MongoBookingRepo) NormalizeProviderIDs(ctx context.Context) (int64, error) {
	ctx, cancel := context.WithTimeout(ctx, 30*time.Second)
	defer cancel()

	res, err := r.coll.UpdateMany(ctx, legacyProviderIDFilter(), normalizeProviderIDPipeline())
	if err != nil {
		if mongo.IsDuplicateKeyError(err) {
			return 0, fmt.Errorf("legacy booking collides with an existing slot: %w", ErrDuplicate)
		}
		return 0, fmt.Errorf("error normalizing booking provider ids: %w", err)
	}
	return res.ModifiedCount, nil
}

// Delete removes a booking. Used only to compensate a create whose follow-up failed.
func (r *MongoBookingRepo) Delete(ctx context.Context, id primitive.ObjectID) error {
	ctx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	if _, err := r.coll.DeleteOne(ctx, bson.M{"_id": id}); err != nil {
		return fmt.Errorf("error deleting booking %s: %w", id.Hex(), err)
	}
	return nil
}

func (r *MongoBookingRepo) findOne(ctx context.Context, filter bson.M) (*models.Booking, error) {
	ctx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	var booking models.Booking
	if err := r.coll.FindOne(ctx, filter).Decode(&booking); err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("error fetching booking: %w", err)
	}
	return &booking, nil
}

func (r *MongoBookingRepo) GetByID(ctx context.Context, id primitive.ObjectID) (*models.Booking, error) {
	return r.findOne(ctx, bson.M{"_id": id})
}

func (r *MongoBookingRepo) GetByCancellationToken(ctx context.Context, token string) (*models.Booking, error) {
	if token == "" {
		return nil, ErrNotFound
	}
	return r.findOne(ctx, bson.M{"cancellationToken": token})
}

func (r *MongoBookingRepo) find(ctx context.Context, filter bson.M) ([]models.Booking, error) {
	ctx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	opts := options.Find().SetSort(bson.D{{Key: "date", Value: 1}, {Key: "startTime", Value: 1}})
	cursor, err := r.coll.Find(ctx, filter, opts)
	if err != nil {
		return nil, fmt.Errorf("error fetching bookings: %w", err)
	}
	defer cursor.Close(ctx)

	bookings := []models.Booking{}
	for cursor.Next(ctx) {
		var b models.Booking
		if err := cursor.Decode(&b); err != nil {
			return nil, fmt.Errorf("error decoding booking: %w", err)
		}
		bookings = append(bookings, b)
	}
	if err := cursor.Err(); err != nil {
		return nil, fmt.Errorf("cursor error: %w", err)
	}
	return bookings, nil
}

func (r *MongoBookingRepo) ListByProviderAndDate(ctx context.Context, providerID models.ProviderID, date string) ([]models.Booking, error) {
	return r.find(ctx, activeOnDateFilter(providerID, date))
}

func (r *MongoBookingRepo) ListByProviderRange(ctx context.Context, providerID models.ProviderID, from, to string, includeCancelled bool) ([]models.Booking, error) {
	return r.find(ctx, rangeFilter(providerID, from, to, includeCancelled))
}
