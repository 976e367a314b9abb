// FilePath: internal/geo/geojson.go
package geo

// GeoJSON response shapes for collar tracks and station locations.
// Coordinate order is always [longitude, latitude] (x, y), matching the
// geometry columns written with ST_MakePoint(lon, lat).

// Geometry is a GeoJSON geometry object
type Geometry struct {
	Type        string      `json:"type"`
	Coordinates interface{} `json:"coordinates"`
}

// Feature is a GeoJSON feature object
type Feature struct {
	Type       string                 `json:"type"`
	Geometry   Geometry               `json:"geometry"`
	Properties map[string]interface{} `json:"properties"`
}

// FeatureCollection is a GeoJSON feature collection
type FeatureCollection struct {
	Type     string    `json:"type"`
	Features []Feature `json:"features"`
}

// Position is a single lon/lat coordinate pair
type Position struct {
	Longitude float64
	Latitude  float64
}

// NewPointFeature builds a Point feature at the given position
func NewPointFeature(pos Position, properties map[string]interface{}) Feature {
	return Feature{
		Type: "Feature",
		Geometry: Geometry{
			Type:        "Point",
			Coordinates: []float64{pos.Longitude, pos.Latitude},
		},
		Properties: properties,
	}
}

// NewFeatureCollection wraps features in a FeatureCollection. Features is
// never nil so an empty result still serializes as an empty array.
func NewFeatureCollection(features []Feature) FeatureCollection {
	if features == nil {
		features = []Feature{}
	}
	return FeatureCollection{
		Type:     "FeatureCollection",
		Features: features,
	}
}

// NewRouteFeatureCollection builds a single LineString feature from a
// time-ordered sequence of positions.
func NewRouteFeatureCollection(positions []Position, properties map[string]interface{}) FeatureCollection {
	coordinates := make([][]float64, 0, len(positions))
	for _, pos := range positions {
		coordinates = append(coordinates, []float64{pos.Longitude, pos.Latitude})
	}

	route := Feature{
		Type: "Feature",
		Geometry: Geometry{
			Type:        "LineString",
			Coordinates: coordinates,
		},
		Properties: properties,
	}
	return NewFeatureCollection([]Feature{route})
}
