package geo

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewPointFeatureAxisOrder(t *testing.T) {
	feature := NewPointFeature(Position{Longitude: 9.18, Latitude: 45.46}, map[string]interface{}{
		"name": "pasture-gate",
	})

	assert.Equal(t, "Feature", feature.Type)
	assert.Equal(t, "Point", feature.Geometry.Type)
	// GeoJSON positions are [longitude, latitude]
	assert.Equal(t, []float64{9.18, 45.46}, feature.Geometry.Coordinates)
	assert.Equal(t, "pasture-gate", feature.Properties["name"])
}

func TestNewFeatureCollectionNeverNil(t *testing.T) {
	collection := NewFeatureCollection(nil)

	assert.Equal(t, "FeatureCollection", collection.Type)
	require.NotNil(t, collection.Features)
	assert.Empty(t, collection.Features)
}

func TestNewRouteFeatureCollection(t *testing.T) {
	positions := []Position{
		{Longitude: 9.1, Latitude: 45.1},
		{Longitude: 9.2, Latitude: 45.2},
		{Longitude: 9.3, Latitude: 45.3},
	}

	route := NewRouteFeatureCollection(positions, map[string]interface{}{"collar_id": int64(3)})

	require.Len(t, route.Features, 1)
	feature := route.Features[0]
	assert.Equal(t, "LineString", feature.Geometry.Type)
	coords, ok := feature.Geometry.Coordinates.([][]float64)
	require.True(t, ok)
	require.Len(t, coords, 3)
	assert.Equal(t, []float64{9.1, 45.1}, coords[0])
	assert.Equal(t, []float64{9.3, 45.3}, coords[2])
}
