package bookingRepo

import (
	"slotbook/models"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
)

// occupyingStatuses are the statuses that hold a slot.
var occupyingStatuses = bson.A{
	models.StatusConfirmed,
	models.StatusCompleted,
	models.StatusNoShow,
}

func providerClause(providerID models.ProviderID) bson.M {
	return bson.M{"$in": providerID.StoredForms()}
}

// activeOnDateFilter matches non-cancelled bookings for a provider on a date,
// whether providerId was stored as an ObjectID or as its hex string.
func activeOnDateFilter(providerID models.ProviderID, date string) bson.M {
	return bson.M{
		"providerId": providerClause(providerID),
		"date":       date,
		"status":     bson.M{"$ne": models.StatusCancelled},
	}
}

func rangeFilter(providerID models.ProviderID, from, to string, includeCancelled bool) bson.M {
	filter := bson.M{
		"providerId": providerClause(providerID),
		"date":       bson.M{"$gte": from, "$lte": to},
	}
	if !includeCancelled {
		filter["status"] = bson.M{"$ne": models.StatusCancelled}
	}
	return filter
}

// statusGuardFilter matches the booking only while it still has the expected status.
func statusGuardFilter(id primitive.ObjectID, expected models.BookingStatus) bson.M {
	return bson.M{"_id": id, "status": expected}
}

// legacyProviderIDFilter matches bookings whose providerId was written as a 24-hex string.
func legacyProviderIDFilter() bson.M {
	return bson.M{"providerId": bson.M{"$type": "string", "$regex": "^[0-9a-fA-F]{24}$"}}
}

func normalizeProviderIDPipeline() mongo.Pipeline {
	return mongo.Pipeline{
		{{Key: "$set", Value: bson.M{"providerId": bson.M{"$toObjectId": "$providerId"}}}},
	}
}
