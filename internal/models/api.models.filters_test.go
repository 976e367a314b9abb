package models

import (
	"net/url"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseRangeFilterDefaults(t *testing.T) {
	filter, err := ParseRangeFilter(url.Values{})
	require.NoError(t, err)

	assert.Nil(t, filter.Limit)
	assert.Nil(t, filter.StartDate)
	assert.Nil(t, filter.EndDate)
	assert.Equal(t, DefaultListLimit, filter.EffectiveLimit())
}

func TestParseRangeFilterExplicitZeroLimit(t *testing.T) {
	filter, err := ParseRangeFilter(url.Values{"limit": {"0"}})
	require.NoError(t, err)

	require.NotNil(t, filter.Limit)
	assert.Equal(t, 0, filter.EffectiveLimit())
}

func TestParseRangeFilterNegativeLimit(t *testing.T) {
	_, err := ParseRangeFilter(url.Values{"limit": {"-1"}})
	assert.Error(t, err)
}

func TestParseRangeFilterDateFormats(t *testing.T) {
	filter, err := ParseRangeFilter(url.Values{
		"start_date": {"2024-05-01"},
		"end_date":   {"2024-05-31T23:59:59Z"},
	})
	require.NoError(t, err)

	require.NotNil(t, filter.StartDate)
	require.NotNil(t, filter.EndDate)
	assert.Equal(t, time.Date(2024, 5, 1, 0, 0, 0, 0, time.UTC), *filter.StartDate)
	assert.Equal(t, time.Date(2024, 5, 31, 23, 59, 59, 0, time.UTC), *filter.EndDate)
}

func TestParseRangeFilterIgnoresUnknownKeys(t *testing.T) {
	filter, err := ParseRangeFilter(url.Values{
		"limit":     {"10"},
		"collar_id": {"3"},
	})
	require.NoError(t, err)
	assert.Equal(t, 10, filter.EffectiveLimit())
}
