package providerRepo

import (
	"context"
	"errors"
	"fmt"
	"time"

	"slotbook/models"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
)

// MongoProviderRepo implements ProviderRepository using MongoDB.
type MongoProviderRepo struct {
	coll *mongo.Collection
}

// NewMongoProviderRepo creates a provider repository on the "providers" collection of db.
func NewMongoProviderRepo(db *mongo.Database) *MongoProviderRepo {
	return &MongoProviderRepo{coll: db.Collection("providers")}
}

// idFilter matches the provider whether _id was written natively or as hex.
func idFilter(id models.ProviderID) bson.M {
	return bson.M{"_id": bson.M{"$in": id.StoredForms()}}
}

func (r *MongoProviderRepo) GetByID(ctx context.Context, id models.ProviderID) (*models.Provider, error) {
	ctx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	var provider models.Provider
	if err := r.coll.FindOne(ctx, idFilter(id)).Decode(&provider); err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("failed to fetch provider with id %s: %w", id, err)
	}
	for i := range provider.BlockedRanges {
		provider.BlockedRanges[i] = provider.BlockedRanges[i].Normalize()
	}
	return &provider, nil
}

func (r *MongoProviderRepo) Create(ctx context.Context, provider *models.Provider) error {
	ctx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	now := time.Now().UTC()
	if provider.ID.IsZero() {
		provider.ID = models.NewProviderID()
	}
	provider.CreatedAt = now
	provider.UpdatedAt = now
	if _, err := r.coll.InsertOne(ctx, provider); err != nil {
		if mongo.IsDuplicateKeyError(err) {
			return ErrEmailTaken
		}
		return fmt.Errorf("failed to create provider: %w", err)
	}
	return nil
}

func (r *MongoProviderRepo) update(ctx context.Context, id models.ProviderID, update bson.M) error {
	ctx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	if set, ok := update["$set"].(bson.M); ok {
		set["updatedAt"] = time.Now().UTC()
	} else {
		update["$set"] = bson.M{"updatedAt": time.Now().UTC()}
	}
	res, err := r.coll.UpdateOne(ctx, idFilter(id), update)
	if err != nil {
		return fmt.Errorf("failed to update provider %s: %w", id, err)
	}
	if res.MatchedCount == 0 {
		return ErrNotFound
	}
	return nil
}

func (r *MongoProviderRepo) ReplaceWeeklyAvailability(ctx context.Context, id models.ProviderID, entries []models.WeeklyAvailabilityEntry) error {
	if entries == nil {
		entries = []models.WeeklyAvailabilityEntry{}
	}
	return r.update(ctx, id, bson.M{"$set": bson.M{"weeklyAvailability": entries}})
}

func (r *MongoProviderRepo) AddBlockedRange(ctx context.Context, id models.ProviderID, br models.BlockedRange) error {
	return r.update(ctx, id, bson.M{"$push": bson.M{"blockedRanges": br}})
}

// blockedRangeFilter matches the provider only while it still holds rangeID.
func blockedRangeFilter(id models.ProviderID, rangeID string) bson.M {
	filter := idFilter(id)
	filter["blockedRanges.id"] = rangeID
	return filter
}

func (r *MongoProviderRepo) RemoveBlockedRange(ctx context.Context, id models.ProviderID, rangeID string) error {
	ctx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	update := bson.M{
		"$pull": bson.M{"blockedRanges": bson.M{"id": rangeID}},
		"$set":  bson.M{"updatedAt": time.Now().UTC()},
	}
	res, err := r.coll.UpdateOne(ctx, blockedRangeFilter(id, rangeID), update)
	if err != nil {
		return fmt.Errorf("failed to remove blocked range %s from provider %s: %w", rangeID, id, err)
	}
	if res.ModifiedCount > 0 {
		return nil
	}
	n, err := r.coll.CountDocuments(ctx, idFilter(id))
	if err != nil {
		return fmt.Errorf("failed to check provider %s: %w", id, err)
	}
	if n == 0 {
		return ErrNotFound
	}
	return ErrBlockedRangeNotFound
}

func (r *MongoProviderRepo) ReplaceOfferings(ctx context.Context, id models.ProviderID, offerings []models.Offering) error {
	if offerings == nil {
		offerings = []models.Offering{}
	}
	return r.update(ctx, id, bson.M{"$set": bson.M{"offerings": offerings}})
}
