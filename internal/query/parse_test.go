package query

import (
	"math"
	"net/url"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func mustValues(t *testing.T, raw string) url.Values {
	t.Helper()
	v, err := url.ParseQuery(raw)
	require.NoError(t, err)
	return v
}

func TestParseDefaults(t *testing.T) {
	spec := Parse(url.Values{}, Options{})

	assert.Equal(t, Default(), spec)
	assert.Equal(t, 1, spec.Pagination.Page)
	assert.Equal(t, 10, spec.Pagination.Limit)
	assert.Equal(t, SortByDate, spec.Sort.Field)
	assert.Equal(t, Desc, spec.Sort.Order)
	assert.Empty(t, spec.Search)
	assert.True(t, spec.Filters.Empty())
	assert.Nil(t, spec.DateRange.Start)
	assert.Nil(t, spec.DateRange.End)
}

func TestParsePagination(t *testing.T) {
	tests := []struct {
		name      string
		query     string
		wantPage  int
		wantLimit int
	}{
		{"explicit", "page=3&limit=25", 3, 25},
		{"unparsable", "page=abc&limit=1.5", 1, 10},
		{"empty", "page=&limit=", 1, 10},
		{"zero clamped", "page=0&limit=0", 1, 1},
		{"negative clamped", "page=-4&limit=-10", 1, 1},
		{"padded", "page=%202%20&limit=5", 2, 5},
		{"large limit passes", "limit=100000", 1, 100000},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			spec := Parse(mustValues(t, tt.query), Options{})
			assert.Equal(t, tt.wantPage, spec.Pagination.Page)
			assert.Equal(t, tt.wantLimit, spec.Pagination.Limit)
		})
	}
}

func TestParseMaxLimit(t *testing.T) {
	spec := Parse(mustValues(t, "limit=500"), Options{MaxLimit: 100})
	assert.Equal(t, 100, spec.Pagination.Limit)

	spec = Parse(mustValues(t, "limit=50"), Options{MaxLimit: 100})
	assert.Equal(t, 50, spec.Pagination.Limit)
}

func TestPaginationOffset(t *testing.T) {
	assert.Equal(t, 0, Pagination{Page: 1, Limit: 10}.Offset())
	assert.Equal(t, 20, Pagination{Page: 3, Limit: 10}.Offset())
	assert.Equal(t, 4, Pagination{Page: 5, Limit: 1}.Offset())
	assert.Equal(t, math.MaxInt, Pagination{Page: math.MaxInt, Limit: 1000}.Offset())
}

func TestParseSearch(t *testing.T) {
	assert.Equal(t, "john", Parse(mustValues(t, "search=%20john%20"), Options{}).Search)
	assert.Empty(t, Parse(mustValues(t, "search=%20%20"), Options{}).Search)
}

func TestParseFilters(t *testing.T) {
	spec := Parse(mustValues(t,
		"regions=North,%20South,,&gender=Female&categories=Clothing&tags=Discounted&payment_methods=UPI,Cash"), Options{})

	assert.Equal(t, []string{"North", "South"}, spec.Filters.Regions)
	assert.Equal(t, []string{"Female"}, spec.Filters.Genders)
	assert.Equal(t, []string{"Clothing"}, spec.Filters.Categories)
	assert.Equal(t, []string{"Discounted"}, spec.Filters.Tags)
	assert.Equal(t, []string{"UPI", "Cash"}, spec.Filters.PaymentMethods)
	assert.False(t, spec.Filters.Empty())
}

func TestParseFiltersOnlySeparators(t *testing.T) {
	spec := Parse(mustValues(t, "regions=,%20,&tags="), Options{})
	assert.Empty(t, spec.Filters.Regions)
	assert.Empty(t, spec.Filters.Tags)
	assert.True(t, spec.Filters.Empty())
}

func TestParseRepeatedKeysMerge(t *testing.T) {
	spec := Parse(mustValues(t, "tags=Discounted&tags=Loyal%20Customer,Bulk%20Order"), Options{})
	assert.Equal(t, []string{"Discounted", "Loyal Customer", "Bulk Order"}, spec.Filters.Tags)
}

func TestParseGenderAlias(t *testing.T) {
	tests := []struct {
		name  string
		query string
		want  []string
	}{
		{"gender", "gender=Male", []string{"Male"}},
		{"genders alias", "genders=Male,Female", []string{"Male", "Female"}},
		{"gender wins", "gender=Other&genders=Male", []string{"Other"}},
		{"blank gender falls back", "gender=&genders=Female", []string{"Female"}},
		{"neither", "", nil},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			spec := Parse(mustValues(t, tt.query), Options{})
			assert.Equal(t, tt.want, spec.Filters.Genders)
		})
	}
}

func TestParseDateRange(t *testing.T) {
	jan1 := time.Date(2023, 1, 1, 0, 0, 0, 0, time.UTC)
	jan31 := time.Date(2023, 1, 31, 0, 0, 0, 0, time.UTC)

	spec := Parse(mustValues(t, "start_date=2023-01-01&end_date=2023-01-31"), Options{})
	require.NotNil(t, spec.DateRange.Start)
	require.NotNil(t, spec.DateRange.End)
	assert.True(t, jan1.Equal(*spec.DateRange.Start))
	assert.True(t, jan31.Equal(*spec.DateRange.End))

	spec = Parse(mustValues(t, "start_date=2023-01-01"), Options{})
	assert.NotNil(t, spec.DateRange.Start)
	assert.Nil(t, spec.DateRange.End)

	spec = Parse(mustValues(t, "start_date=01/02/2023&end_date=2023-13-45"), Options{})
	assert.Nil(t, spec.DateRange.Start)
	assert.Nil(t, spec.DateRange.End)
}

func TestParseSort(t *testing.T) {
	tests := []struct {
		query     string
		wantField SortField
		wantOrder SortOrder
	}{
		{"sort_field=final_amount&sort_order=asc", SortByFinalAmount, Asc},
		{"sort_field=quantity&sort_order=desc", SortByQuantity, Desc},
		{"sort_field=customer_name", SortByCustomerName, Desc},
		{"sort_field=foo&sort_order=sideways", SortByDate, Desc},
		{"sort_field=date&sort_order=ASC", SortByDate, Desc},
	}

	for _, tt := range tests {
		t.Run(tt.query, func(t *testing.T) {
			spec := Parse(mustValues(t, tt.query), Options{})
			assert.Equal(t, tt.wantField, spec.Sort.Field)
			assert.Equal(t, tt.wantOrder, spec.Sort.Order)
		})
	}
}

func TestParseUnknownSortFieldEqualsDate(t *testing.T) {
	foo := Parse(mustValues(t, "sort_field=foo&page=2"), Options{})
	date := Parse(mustValues(t, "sort_field=date&page=2"), Options{})
	assert.Equal(t, date, foo)
}
