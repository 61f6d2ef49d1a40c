package bookingRepo

import (
	"testing"

	"slotbook/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

func TestActiveOnDateFilterCoversBothStoredForms(t *testing.T) {
	id, err := models.ParseProviderID("64b7f0c2a1b2c3d4e5f60718")
	require.NoError(t, err)

	filter := activeOnDateFilter(id, "2026-10-19")

	in := filter["providerId"].(bson.M)["$in"].(bson.A)
	require.Len(t, in, 2)
	assert.Equal(t, id.ObjectID(), in[0])
	assert.Equal(t, "64b7f0c2a1b2c3d4e5f60718", in[1])
	assert.Equal(t, "2026-10-19", filter["date"])
	assert.Equal(t, bson.M{"$ne": models.StatusCancelled}, filter["status"])
}

func TestRangeFilter(t *testing.T) {
	id := models.NewProviderID()

	active := rangeFilter(id, "2026-10-19", "2026-10-25", false)
	assert.Equal(t, bson.M{"$gte": "2026-10-19", "$lte": "2026-10-25"}, active["date"])
	assert.Contains(t, active, "status")

	all := rangeFilter(id, "2026-10-19", "2026-10-25", true)
	assert.NotContains(t, all, "status")
}

func TestStatusGuardFilter(t *testing.T) {
	id := primitive.NewObjectID()

	filter := statusGuardFilter(id, models.StatusConfirmed)

	assert.Equal(t, bson.M{"_id": id, "status": models.StatusConfirmed}, filter)
}

func TestLegacyProviderIDNormalization(t *testing.T) {
	filter := legacyProviderIDFilter()
	clause := filter["providerId"].(bson.M)
	assert.Equal(t, "string", clause["$type"])
	assert.Equal(t, "^[0-9a-fA-F]{24}$", clause["$regex"])

	pipeline := normalizeProviderIDPipeline()
	require.Len(t, pipeline, 1)
	require.Len(t, pipeline[0], 1)
	assert.Equal(t, "$set", pipeline[0][0].Key)
	assert.Equal(t, bson.M{"providerId": bson.M{"$toObjectId": "$providerId"}}, pipeline[0][0].Value)
}
