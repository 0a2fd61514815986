package query

import (
	"net/url"
	"strconv"
	"strings"
	"time"
)

const DateLayout = "2006-01-02"

// Recognized parameter names.
const (
	ParamPage           = "page"
	ParamLimit          = "limit"
	ParamSearch         = "search"
	ParamRegions        = "regions"
	ParamGender         = "gender"
	ParamGenders        = "genders"
	ParamCategories     = "categories"
	ParamTags           = "tags"
	ParamPaymentMethods = "payment_methods"
	ParamStartDate      = "start_date"
	ParamEndDate        = "end_date"
	ParamSortField      = "sort_field"
	ParamSortOrder      = "sort_order"
)

type Options struct {
	// MaxLimit caps the page size when positive.
	MaxLimit int
}

// Parse turns raw query parameters into a Spec. It never fails: every
// malformed or missing value falls back to its default or to "no filter".
func Parse(values url.Values, opts Options) Spec {
	spec := Default()

	if page, ok := ParsePositiveInt(first(values, ParamPage)); ok {
		spec.Pagination.Page = page
	}
	if limit, ok := ParsePositiveInt(first(values, ParamLimit)); ok {
		spec.Pagination.Limit = limit
	}
	if opts.MaxLimit > 0 && spec.Pagination.Limit > opts.MaxLimit {
		spec.Pagination.Limit = opts.MaxLimit
	}

	spec.Search = strings.TrimSpace(first(values, ParamSearch))

	spec.Filters = Filters{
		Regions:        SplitList(values[ParamRegions]...),
		Genders:        SplitList(genderValues(values)...),
		Categories:     SplitList(values[ParamCategories]...),
		Tags:           SplitList(values[ParamTags]...),
		PaymentMethods: SplitList(values[ParamPaymentMethods]...),
	}

	if start, ok := ParseDate(first(values, ParamStartDate)); ok {
		spec.DateRange.Start = &start
	}
	if end, ok := ParseDate(first(values, ParamEndDate)); ok {
		spec.DateRange.End = &end
	}

	spec.Sort = Sort{
		Field: ParseSortField(first(values, ParamSortField)),
		Order: ParseSortOrder(first(values, ParamSortOrder)),
	}

	return spec
}

// ParsePositiveInt parses a decimal integer. Unparsable input reports false;
// zero and negative values are clamped to 1.
func ParsePositiveInt(raw string) (int, bool) {
	n, err := strconv.Atoi(strings.TrimSpace(raw))
	if err != nil {
		return 0, false
	}
	if n < 1 {
		n = 1
	}
	return n, true
}

// ParseDate parses a YYYY-MM-DD date as UTC midnight.
func ParseDate(raw string) (time.Time, bool) {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return time.Time{}, false
	}
	t, err := time.ParseInLocation(DateLayout, raw, time.UTC)
	if err != nil {
		return time.Time{}, false
	}
	return t, true
}

func ParseSortField(raw string) SortField {
	if f, ok := sortFields[raw]; ok {
		return f
	}
	return SortByDate
}

func ParseSortOrder(raw string) SortOrder {
	if raw == string(Asc) {
		return Asc
	}
	return Desc
}

// SplitList splits every raw value on commas, trims the tokens and drops the
// empty ones. Repeated keys (tags=a&tags=b) are merged in order.
func SplitList(raws ...string) []string {
	var out []string
	for _, raw := range raws {
		for _, tok := range strings.Split(raw, ",") {
			if tok = strings.TrimSpace(tok); tok != "" {
				out = append(out, tok)
			}
		}
	}
	return out
}

// genderValues reads "gender", falling back to the "genders" alias when
// "gender" is absent or blank.
func genderValues(values url.Values) []string {
	for _, key := range []string{ParamGender, ParamGenders} {
		vs := values[key]
		if strings.TrimSpace(strings.Join(vs, "")) != "" {
			return vs
		}
	}
	return nil
}

func first(values url.Values, key string) string {
	if vs := values[key]; len(vs) > 0 {
		return vs[0]
	}
	return ""
}
