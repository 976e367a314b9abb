// FilePath: internal/models/api.models.filters.go
package models

import (
	"net/url"
	"reflect"
	"time"

	"github.com/gorilla/schema"
	"github.com/projectwellness/wellness-hub/internal/errors"
)

// DefaultListLimit caps list endpoints when no limit parameter is given
const DefaultListLimit = 50

// RangeFilter holds the common list-endpoint query parameters. A nil Limit
// means "use the default"; an explicit limit=0 requests zero rows. Date
// bounds are inclusive on both ends.
type RangeFilter struct {
	Limit     *int       `schema:"limit"`
	StartDate *time.Time `schema:"start_date"`
	EndDate   *time.Time `schema:"end_date"`
}

var queryDecoder = newQueryDecoder()

func newQueryDecoder() *schema.Decoder {
	d := schema.NewDecoder()
	d.IgnoreUnknownKeys(true)
	d.RegisterConverter(time.Time{}, convertTime)
	return d
}

// convertTime accepts plain dates (YYYY-MM-DD) or RFC3339 timestamps
func convertTime(value string) reflect.Value {
	for _, layout := range []string{"2006-01-02", time.RFC3339} {
		if t, err := time.Parse(layout, value); err == nil {
			return reflect.ValueOf(t)
		}
	}
	return reflect.Value{}
}

// ParseRangeFilter decodes and validates list query parameters
func ParseRangeFilter(values url.Values) (RangeFilter, error) {
	var filter RangeFilter
	if err := queryDecoder.Decode(&filter, values); err != nil {
		return filter, errors.NewValidationError("invalid query parameters", err)
	}
	if filter.Limit != nil && *filter.Limit < 0 {
		return filter, errors.NewValidationError("limit must be greater than or equal to 0", nil)
	}
	return filter, nil
}

// EffectiveLimit resolves the limit to apply to the query
func (f RangeFilter) EffectiveLimit() int {
	if f.Limit == nil {
		return DefaultListLimit
	}
	return *f.Limit
}
