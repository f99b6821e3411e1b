package fred

// ─── Series ───────────────────────────────────────────────────────────────────

const (
	PathSeries             = "series"
	PathSeriesObservations = "series/observations"
	PathSeriesRelease      = "series/release"
	PathSeriesCategories   = "series/categories"
	PathSeriesVintageDates = "series/vintagedates"
	PathSeriesUpdates      = "series/updates"
	PathSeriesSearch       = "series/search"
	PathSeriesTags         = "series/tags"
)

// SeriesRequest fetches metadata for one economic data series.
type SeriesRequest struct{ Request }

// WithID replaces the series id.
func (r *SeriesRequest) WithID(id string) *SeriesRequest {
	r.set(ParamSeriesID, id)
	return r
}

// WithRealtimeStart sets the start of the real-time period (YYYY-MM-DD).
func (r *SeriesRequest) WithRealtimeStart(date string) *SeriesRequest {
	r.set(ParamRealtimeStart, date)
	return r
}

// WithRealtimeEnd sets the end of the real-time period (YYYY-MM-DD).
func (r *SeriesRequest) WithRealtimeEnd(date string) *SeriesRequest {
	r.set(ParamRealtimeEnd, date)
	return r
}

// ─── Observations ─────────────────────────────────────────────────────────────

// SeriesObservationsRequest fetches the observations (data values) of a series.
type SeriesObservationsRequest struct{ Request }

// WithID replaces the series id.
func (r *SeriesObservationsRequest) WithID(id string) *SeriesObservationsRequest {
	r.set(ParamSeriesID, id)
	return r
}

// WithRealtimeStart sets the start of the real-time period (YYYY-MM-DD).
func (r *SeriesObservationsRequest) WithRealtimeStart(date string) *SeriesObservationsRequest {
	r.set(ParamRealtimeStart, date)
	return r
}

// WithRealtimeEnd sets the end of the real-time period (YYYY-MM-DD).
func (r *SeriesObservationsRequest) WithRealtimeEnd(date string) *SeriesObservationsRequest {
	r.set(ParamRealtimeEnd, date)
	return r
}

// WithLimit caps the number of results returned.
func (r *SeriesObservationsRequest) WithLimit(limit string) *SeriesObservationsRequest {
	r.set(ParamLimit, limit)
	return r
}

// WithOffset skips the first offset results.
func (r *SeriesObservationsRequest) WithOffset(offset string) *SeriesObservationsRequest {
	r.set(ParamOffset, offset)
	return r
}

// WithSort sets sort_order (asc|desc).
func (r *SeriesObservationsRequest) WithSort(order string) *SeriesObservationsRequest {
	r.set(ParamSortOrder, order)
	return r
}

// WithOrderBy sets the attribute results are ordered by.
func (r *SeriesObservationsRequest) WithOrderBy(field string) *SeriesObservationsRequest {
	r.set(ParamOrderBy, field)
	return r
}

// WithStart sets observation_start (YYYY-MM-DD).
func (r *SeriesObservationsRequest) WithStart(date string) *SeriesObservationsRequest {
	r.set(ParamObservationStart, date)
	return r
}

// WithEnd sets observation_end (YYYY-MM-DD).
func (r *SeriesObservationsRequest) WithEnd(date string) *SeriesObservationsRequest {
	r.set(ParamObservationEnd, date)
	return r
}

// WithUnits sets the data value transformation (lin|chg|ch1|pch|pc1|pca|cch|cca|log).
func (r *SeriesObservationsRequest) WithUnits(units string) *SeriesObservationsRequest {
	r.set(ParamUnits, units)
	return r
}

// WithFrequency sets a lower frequency to aggregate values to (d|w|bw|m|q|sa|a ...).
func (r *SeriesObservationsRequest) WithFrequency(freq string) *SeriesObservationsRequest {
	r.set(ParamFrequency, freq)
	return r
}

// WithAggregation sets aggregation_method (avg|sum|eop).
func (r *SeriesObservationsRequest) WithAggregation(method string) *SeriesObservationsRequest {
	r.set(ParamAggregationMethod, method)
	return r
}

// WithOutputType selects the vintage layout, 1 to 4.
func (r *SeriesObservationsRequest) WithOutputType(outputType string) *SeriesObservationsRequest {
	r.set(ParamOutputType, outputType)
	return r
}

// WithFileType asks for a specific download format. An API configured with
// a file type overrides it.
func (r *SeriesObservationsRequest) WithFileType(fileType string) *SeriesObservationsRequest {
	r.set(ParamFileType, fileType)
	return r
}

// WithVintageDates sets a comma separated list of vintage dates.
func (r *SeriesObservationsRequest) WithVintageDates(dates string) *SeriesObservationsRequest {
	r.set(ParamVintageDates, dates)
	return r
}

// ─── Release / categories of a series ─────────────────────────────────────────

// SeriesReleaseRequest fetches the release a series belongs to.
type SeriesReleaseRequest struct{ Request }

// WithID replaces the series id.
func (r *SeriesReleaseRequest) WithID(id string) *SeriesReleaseRequest {
	r.set(ParamSeriesID, id)
	return r
}

// WithRealtimeStart sets the start of the real-time period (YYYY-MM-DD).
func (r *SeriesReleaseRequest) WithRealtimeStart(date string) *SeriesReleaseRequest {
	r.set(ParamRealtimeStart, date)
	return r
}

// WithRealtimeEnd sets the end of the real-time period (YYYY-MM-DD).
func (r *SeriesReleaseRequest) WithRealtimeEnd(date string) *SeriesReleaseRequest {
	r.set(ParamRealtimeEnd, date)
	return r
}

// SeriesCategoriesRequest fetches the categories a series belongs to.
type SeriesCategoriesRequest struct{ Request }

// WithID replaces the series id.
func (r *SeriesCategoriesRequest) WithID(id string) *SeriesCategoriesRequest {
	r.set(ParamSeriesID, id)
	return r
}

// WithRealtimeStart sets the start of the real-time period (YYYY-MM-DD).
func (r *SeriesCategoriesRequest) WithRealtimeStart(date string) *SeriesCategoriesRequest {
	r.set(ParamRealtimeStart, date)
	return r
}

// WithRealtimeEnd sets the end of the real-time period (YYYY-MM-DD).
func (r *SeriesCategoriesRequest) WithRealtimeEnd(date string) *SeriesCategoriesRequest {
	r.set(ParamRealtimeEnd, date)
	return r
}

// ─── Vintage dates ────────────────────────────────────────────────────────────

// SeriesVintageDatesRequest fetches the dates a series' data was revised.
type SeriesVintageDatesRequest struct{ Request }

// WithID replaces the series id.
func (r *SeriesVintageDatesRequest) WithID(id string) *SeriesVintageDatesRequest {
	r.set(ParamSeriesID, id)
	return r
}

// WithRealtimeStart sets the start of the real-time period (YYYY-MM-DD).
func (r *SeriesVintageDatesRequest) WithRealtimeStart(date string) *SeriesVintageDatesRequest {
	r.set(ParamRealtimeStart, date)
	return r
}

// WithRealtimeEnd sets the end of the real-time period (YYYY-MM-DD).
func (r *SeriesVintageDatesRequest) WithRealtimeEnd(date string) *SeriesVintageDatesRequest {
	r.set(ParamRealtimeEnd, date)
	return r
}

// WithLimit caps the number of results returned.
func (r *SeriesVintageDatesRequest) WithLimit(limit string) *SeriesVintageDatesRequest {
	r.set(ParamLimit, limit)
	return r
}

// WithOffset skips the first offset results.
func (r *SeriesVintageDatesRequest) WithOffset(offset string) *SeriesVintageDatesRequest {
	r.set(ParamOffset, offset)
	return r
}

// WithSort sets the sort order, asc or desc.
func (r *SeriesVintageDatesRequest) WithSort(order string) *SeriesVintageDatesRequest {
	r.set(ParamSortOrder, order)
	return r
}

// ─── Updates ──────────────────────────────────────────────────────────────────

// SeriesUpdatesRequest lists recently updated series.
type SeriesUpdatesRequest struct{ Request }

// WithRealtimeStart sets the start of the real-time period (YYYY-MM-DD).
func (r *SeriesUpdatesRequest) WithRealtimeStart(date string) *SeriesUpdatesRequest {
	r.set(ParamRealtimeStart, date)
	return r
}

// WithRealtimeEnd sets the end of the real-time period (YYYY-MM-DD).
func (r *SeriesUpdatesRequest) WithRealtimeEnd(date string) *SeriesUpdatesRequest {
	r.set(ParamRealtimeEnd, date)
	return r
}

// WithLimit caps the number of results returned.
func (r *SeriesUpdatesRequest) WithLimit(limit string) *SeriesUpdatesRequest {
	r.set(ParamLimit, limit)
	return r
}

// WithOffset skips the first offset results.
func (r *SeriesUpdatesRequest) WithOffset(offset string) *SeriesUpdatesRequest {
	r.set(ParamOffset, offset)
	return r
}

// WithFilter sets filter_value (macro|regional|all).
func (r *SeriesUpdatesRequest) WithFilter(value string) *SeriesUpdatesRequest {
	r.set(ParamFilterValue, value)
	return r
}

// ─── Search ───────────────────────────────────────────────────────────────────

// SeriesSearchRequest runs a full text search over series.
type SeriesSearchRequest struct{ Request }

// WithSearch sets the words to match (search_text).
func (r *SeriesSearchRequest) WithSearch(text string) *SeriesSearchRequest {
	r.set(ParamSearchText, text)
	return r
}

// WithSearchType sets search_type (full_text|series_id).
func (r *SeriesSearchRequest) WithSearchType(searchType string) *SeriesSearchRequest {
	r.set(ParamSearchType, searchType)
	return r
}

// WithRealtimeStart sets the start of the real-time period (YYYY-MM-DD).
func (r *SeriesSearchRequest) WithRealtimeStart(date string) *SeriesSearchRequest {
	r.set(ParamRealtimeStart, date)
	return r
}

// WithRealtimeEnd sets the end of the real-time period (YYYY-MM-DD).
func (r *SeriesSearchRequest) WithRealtimeEnd(date string) *SeriesSearchRequest {
	r.set(ParamRealtimeEnd, date)
	return r
}

// WithLimit caps the number of results returned.
func (r *SeriesSearchRequest) WithLimit(limit string) *SeriesSearchRequest {
	r.set(ParamLimit, limit)
	return r
}

// WithOffset skips the first offset results.
func (r *SeriesSearchRequest) WithOffset(offset string) *SeriesSearchRequest {
	r.set(ParamOffset, offset)
	return r
}

// WithSort sets the sort order, asc or desc.
func (r *SeriesSearchRequest) WithSort(order string) *SeriesSearchRequest {
	r.set(ParamSortOrder, order)
	return r
}

// WithOrderBy sets the attribute results are ordered by.
func (r *SeriesSearchRequest) WithOrderBy(field string) *SeriesSearchRequest {
	r.set(ParamOrderBy, field)
	return r
}

// WithFilter sets filter_value, applied to the variable chosen by WithFilterOn.
func (r *SeriesSearchRequest) WithFilter(value string) *SeriesSearchRequest {
	r.set(ParamFilterValue, value)
	return r
}

// WithFilterOn sets filter_variable (frequency|units|seasonal_adjustment).
func (r *SeriesSearchRequest) WithFilterOn(variable string) *SeriesSearchRequest {
	r.set(ParamFilterVariable, variable)
	return r
}

// WithTagNames restricts results to series carrying all of the
// semicolon separated tags.
func (r *SeriesSearchRequest) WithTagNames(tags string) *SeriesSearchRequest {
	r.set(ParamTagNames, tags)
	return r
}

// WithExcludeTagNames excludes series carrying any of tags (semicolon separated).
func (r *SeriesSearchRequest) WithExcludeTagNames(tags string) *SeriesSearchRequest {
	r.set(ParamExcludeTagNames, tags)
	return r
}

// ─── Tags of a series ─────────────────────────────────────────────────────────

// SeriesTagsRequest fetches the tags attached to a series.
type SeriesTagsRequest struct{ Request }

// WithID replaces the series id.
func (r *SeriesTagsRequest) WithID(id string) *SeriesTagsRequest {
	r.set(ParamSeriesID, id)
	return r
}

// WithRealtimeStart sets the start of the real-time period (YYYY-MM-DD).
func (r *SeriesTagsRequest) WithRealtimeStart(date string) *SeriesTagsRequest {
	r.set(ParamRealtimeStart, date)
	return r
}

// WithRealtimeEnd sets the end of the real-time period (YYYY-MM-DD).
func (r *SeriesTagsRequest) WithRealtimeEnd(date string) *SeriesTagsRequest {
	r.set(ParamRealtimeEnd, date)
	return r
}

// WithLimit caps the number of results returned.
func (r *SeriesTagsRequest) WithLimit(limit string) *SeriesTagsRequest {
	r.set(ParamLimit, limit)
	return r
}

// WithOffset skips the first offset results.
func (r *SeriesTagsRequest) WithOffset(offset string) *SeriesTagsRequest {
	r.set(ParamOffset, offset)
	return r
}

// WithSort sets the sort order, asc or desc.
func (r *SeriesTagsRequest) WithSort(order string) *SeriesTagsRequest {
	r.set(ParamSortOrder, order)
	return r
}

// WithOrderBy sets the attribute results are ordered by.
func (r *SeriesTagsRequest) WithOrderBy(field string) *SeriesTagsRequest {
	r.set(ParamOrderBy, field)
	return r
}
