package kml

import (
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const trackDocument = `<?xml version="1.0" encoding="UTF-8"?>
<kml xmlns="http://www.opengis.net/kml/2.2">
  <Document>
    <Folder>
      <Placemark>
        <TimeStamp><when>2024-05-01T06:00:00Z</when></TimeStamp>
        <Point><coordinates>9.10,45.10,320.5</coordinates></Point>
      </Placemark>
      <Placemark>
        <TimeStamp><when>2024-05-01T06:05:00Z</when></TimeStamp>
        <Point><coordinates>9.11,45.11</coordinates></Point>
      </Placemark>
      <Placemark>
        <Point><coordinates>9.12,45.12,321.0</coordinates></Point>
      </Placemark>
      <Placemark>
        <TimeStamp><when>2024-05-01T06:10:00Z</when></TimeStamp>
        <Point><coordinates>9.13,45.13,322.0</coordinates></Point>
      </Placemark>
    </Folder>
  </Document>
</kml>`

func TestParseSkipsPlacemarksWithoutTimestamp(t *testing.T) {
	placemarks, skipped, err := Parse(strings.NewReader(trackDocument))
	require.NoError(t, err)

	assert.Equal(t, 1, skipped)
	require.Len(t, placemarks, 3)

	first := placemarks[0]
	assert.Equal(t, 9.10, first.Longitude)
	assert.Equal(t, 45.10, first.Latitude)
	assert.Equal(t, 320.5, first.Altitude)
	assert.Equal(t, time.Date(2024, 5, 1, 6, 0, 0, 0, time.UTC), first.Timestamp)

	// Missing altitude defaults to zero
	assert.Equal(t, 0.0, placemarks[1].Altitude)
}

func TestParseSkipsUnparseableValues(t *testing.T) {
	doc := `<kml>
  <Placemark>
    <TimeStamp><when>not-a-time</when></TimeStamp>
    <Point><coordinates>9.1,45.1</coordinates></Point>
  </Placemark>
  <Placemark>
    <TimeStamp><when>2024-05-01T06:00:00Z</when></TimeStamp>
    <Point><coordinates>east,north</coordinates></Point>
  </Placemark>
  <Placemark>
    <TimeStamp><when>2024-05-01T06:00:00Z</when></TimeStamp>
    <Point><coordinates>9.1</coordinates></Point>
  </Placemark>
</kml>`

	placemarks, skipped, err := Parse(strings.NewReader(doc))
	require.NoError(t, err)
	assert.Empty(t, placemarks)
	assert.Equal(t, 3, skipped)
}

func TestParseRejectsNonXML(t *testing.T) {
	_, _, err := Parse(strings.NewReader("this is not xml at all"))
	assert.Error(t, err)
}

func TestParseRejectsEmptyDocument(t *testing.T) {
	_, _, err := Parse(strings.NewReader(""))
	assert.Error(t, err)
}
