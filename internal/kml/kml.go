// FilePath: internal/kml/kml.go
package kml

import (
	"encoding/xml"
	"io"
	"strconv"
	"strings"
	"time"

	"github.com/projectwellness/wellness-hub/internal/errors"
)

// Placemark is one parsed track point: a coordinate triple plus the
// recording timestamp.
type Placemark struct {
	Longitude float64
	Latitude  float64
	Altitude  float64
	Timestamp time.Time
}

// placemarkXML mirrors the KML Placemark sub-elements we care about
type placemarkXML struct {
	Point struct {
		Coordinates string `xml:"coordinates"`
	} `xml:"Point"`
	TimeStamp struct {
		When string `xml:"when"`
	} `xml:"TimeStamp"`
}

// Parse reads a KML document and extracts every Placemark carrying both a
// Point coordinate triple and a TimeStamp. Placemarks missing either, or
// with unparseable values, are skipped and counted; the rest of the batch
// is unaffected. A document that is not well-formed XML is an error.
func Parse(r io.Reader) ([]Placemark, int, error) {
	decoder := xml.NewDecoder(r)

	var placemarks []Placemark
	skipped := 0
	sawRoot := false

	for {
		token, err := decoder.Token()
		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, 0, errors.NewValidationError("malformed KML document", err)
		}

		start, ok := token.(xml.StartElement)
		if !ok {
			continue
		}
		sawRoot = true

		if start.Name.Local != "Placemark" {
			continue
		}

		var raw placemarkXML
		if err := decoder.DecodeElement(&raw, &start); err != nil {
			return nil, 0, errors.NewValidationError("malformed KML placemark", err)
		}

		placemark, ok := parsePlacemark(raw)
		if !ok {
			skipped++
			continue
		}
		placemarks = append(placemarks, placemark)
	}

	if !sawRoot {
		return nil, 0, errors.NewValidationError("empty KML document", nil)
	}
	return placemarks, skipped, nil
}

// parsePlacemark converts the raw sub-elements into a Placemark. KML
// coordinates are ordered longitude,latitude[,altitude].
func parsePlacemark(raw placemarkXML) (Placemark, bool) {
	coords := strings.TrimSpace(raw.Point.Coordinates)
	when := strings.TrimSpace(raw.TimeStamp.When)
	if coords == "" || when == "" {
		return Placemark{}, false
	}

	parts := strings.Split(coords, ",")
	if len(parts) < 2 {
		return Placemark{}, false
	}

	values := make([]float64, 0, 3)
	for _, part := range parts[:min(len(parts), 3)] {
		v, err := strconv.ParseFloat(strings.TrimSpace(part), 64)
		if err != nil {
			return Placemark{}, false
		}
		values = append(values, v)
	}

	timestamp, err := time.Parse(time.RFC3339, when)
	if err != nil {
		return Placemark{}, false
	}

	placemark := Placemark{
		Longitude: values[0],
		Latitude:  values[1],
		Timestamp: timestamp,
	}
	if len(values) == 3 {
		placemark.Altitude = values[2]
	}
	return placemark, true
}

func min(a, b int) int {
	if a < b {
		return a
	}
	return b
}
