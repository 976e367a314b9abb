// FilePath: internal/models/models.station.go
package models

import "time"

// Station is a fixed weather/air-quality sensor location, optionally
// shared across ranches via station_ranches. The location is stored as
// geometry(Point, 4326); latitude/longitude are projected in SQL via
// ST_Y/ST_X so the Go side never parses geometry blobs.
type Station struct {
	ID        int64     `json:"id" db:"id"`
	Name      string    `json:"name" db:"name"`
	Latitude  float64   `json:"latitude" db:"latitude"`
	Longitude float64   `json:"longitude" db:"longitude"`
	CreatedAt time.Time `json:"created_at" db:"created_at"`
	UpdatedAt time.Time `json:"updated_at" db:"updated_at"`
}

// StationRanch links a station to a ranch it serves
type StationRanch struct {
	StationID int64 `json:"station_id" db:"station_id"`
	RanchID   int64 `json:"ranch_id" db:"ranch_id"`
}

// StationInfo is the scoped listing row returned by GET /station
type StationInfo struct {
	StationID   int64  `json:"station_id" db:"station_id"`
	StationName string `json:"station_name" db:"station_name"`
}

// StationReading is one timestamped weather/air-quality measurement
type StationReading struct {
	ID             int64     `json:"id" db:"id"`
	StationID      int64     `json:"station_id" db:"station_id"`
	Temperature    float64   `json:"temperature" db:"temperature"`
	Humidity       float64   `json:"humidity" db:"humidity"`
	Precipitation  float64   `json:"precipitation" db:"precipitation"`
	Pressure       float64   `json:"pressure" db:"pressure"`
	WindSpeed      float64   `json:"wind_speed" db:"wind_speed"`
	WindDirection  float64   `json:"wind_direction" db:"wind_direction"`
	SolarRadiation float64   `json:"solar_radiation" db:"solar_radiation"`
	PM1            float64   `json:"pm1" db:"pm1"`
	PM25           float64   `json:"pm2_5" db:"pm2_5"`
	PM10           float64   `json:"pm10" db:"pm10"`
	CO2            float64   `json:"co2" db:"co2"`
	AQI            *float64  `json:"aqi,omitempty" db:"aqi"`
	Timestamp      time.Time `json:"timestamp" db:"timestamp"`
	CreatedAt      time.Time `json:"created_at" db:"created_at"`
}
