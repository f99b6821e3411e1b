package fred

// ─── Releases ─────────────────────────────────────────────────────────────────

const (
	PathRelease        = "release"
	PathReleaseSeries  = "release/series"
	PathReleaseSources = "release/sources"
	PathReleaseDates   = "release/dates"
	PathReleases       = "releases"
	PathReleasesDates  = "releases/dates"
)

// ReleaseRequest fetches one release of economic data.
type ReleaseRequest struct{ Request }

// WithID replaces the release id.
func (r *ReleaseRequest) WithID(id string) *ReleaseRequest {
	r.set(ParamReleaseID, id)
	return r
}

// WithRealtimeStart sets the start of the real-time period (YYYY-MM-DD).
func (r *ReleaseRequest) WithRealtimeStart(date string) *ReleaseRequest {
	r.set(ParamRealtimeStart, date)
	return r
}

// WithRealtimeEnd sets the end of the real-time period (YYYY-MM-DD).
func (r *ReleaseRequest) WithRealtimeEnd(date string) *ReleaseRequest {
	r.set(ParamRealtimeEnd, date)
	return r
}

// ReleaseSeriesRequest lists the series of a release.
type ReleaseSeriesRequest struct{ Request }

// WithID replaces the release id.
func (r *ReleaseSeriesRequest) WithID(id string) *ReleaseSeriesRequest {
	r.set(ParamReleaseID, id)
	return r
}

// WithRealtimeStart sets the start of the real-time period (YYYY-MM-DD).
func (r *ReleaseSeriesRequest) WithRealtimeStart(date string) *ReleaseSeriesRequest {
	r.set(ParamRealtimeStart, date)
	return r
}

// WithRealtimeEnd sets the end of the real-time period (YYYY-MM-DD).
func (r *ReleaseSeriesRequest) WithRealtimeEnd(date string) *ReleaseSeriesRequest {
	r.set(ParamRealtimeEnd, date)
	return r
}

// WithLimit caps the number of results returned.
func (r *ReleaseSeriesRequest) WithLimit(limit string) *ReleaseSeriesRequest {
	r.set(ParamLimit, limit)
	return r
}

// WithOffset skips the first offset results.
func (r *ReleaseSeriesRequest) WithOffset(offset string) *ReleaseSeriesRequest {
	r.set(ParamOffset, offset)
	return r
}

// WithSort sets the sort order, asc or desc.
func (r *ReleaseSeriesRequest) WithSort(order string) *ReleaseSeriesRequest {
	r.set(ParamSortOrder, order)
	return r
}

// WithOrderBy sets the attribute results are ordered by.
func (r *ReleaseSeriesRequest) WithOrderBy(field string) *ReleaseSeriesRequest {
	r.set(ParamOrderBy, field)
	return r
}

// WithFilter keeps only results whose filter variable equals value.
func (r *ReleaseSeriesRequest) WithFilter(value string) *ReleaseSeriesRequest {
	r.set(ParamFilterValue, value)
	return r
}

// WithFilterOn names the attribute WithFilter matches against.
func (r *ReleaseSeriesRequest) WithFilterOn(variable string) *ReleaseSeriesRequest {
	r.set(ParamFilterVariable, variable)
	return r
}

// ReleaseSourcesRequest lists the sources of a release.
type ReleaseSourcesRequest struct{ Request }

// WithID replaces the release id.
func (r *ReleaseSourcesRequest) WithID(id string) *ReleaseSourcesRequest {
	r.set(ParamReleaseID, id)
	return r
}

// WithRealtimeStart sets the start of the real-time period (YYYY-MM-DD).
func (r *ReleaseSourcesRequest) WithRealtimeStart(date string) *ReleaseSourcesRequest {
	r.set(ParamRealtimeStart, date)
	return r
}

// WithRealtimeEnd sets the end of the real-time period (YYYY-MM-DD).
func (r *ReleaseSourcesRequest) WithRealtimeEnd(date string) *ReleaseSourcesRequest {
	r.set(ParamRealtimeEnd, date)
	return r
}

// ReleaseDatesRequest lists the release dates of one release.
type ReleaseDatesRequest struct{ Request }

// WithID replaces the release id.
func (r *ReleaseDatesRequest) WithID(id string) *ReleaseDatesRequest {
	r.set(ParamReleaseID, id)
	return r
}

// WithRealtimeStart sets the start of the real-time period (YYYY-MM-DD).
func (r *ReleaseDatesRequest) WithRealtimeStart(date string) *ReleaseDatesRequest {
	r.set(ParamRealtimeStart, date)
	return r
}

// WithRealtimeEnd sets the end of the real-time period (YYYY-MM-DD).
func (r *ReleaseDatesRequest) WithRealtimeEnd(date string) *ReleaseDatesRequest {
	r.set(ParamRealtimeEnd, date)
	return r
}

// WithLimit caps the number of results returned.
func (r *ReleaseDatesRequest) WithLimit(limit string) *ReleaseDatesRequest {
	r.set(ParamLimit, limit)
	return r
}

// WithOffset skips the first offset results.
func (r *ReleaseDatesRequest) WithOffset(offset string) *ReleaseDatesRequest {
	r.set(ParamOffset, offset)
	return r
}

// WithSort sets the sort order, asc or desc.
func (r *ReleaseDatesRequest) WithSort(order string) *ReleaseDatesRequest {
	r.set(ParamSortOrder, order)
	return r
}

// WithIncludeNoData sets include_release_dates_with_no_data (true|false).
func (r *ReleaseDatesRequest) WithIncludeNoData(include string) *ReleaseDatesRequest {
	r.set(ParamIncludeNoData, include)
	return r
}

// ReleasesRequest lists all releases.
type ReleasesRequest struct{ Request }

// WithRealtimeStart sets the start of the real-time period (YYYY-MM-DD).
func (r *ReleasesRequest) WithRealtimeStart(date string) *ReleasesRequest {
	r.set(ParamRealtimeStart, date)
	return r
}

// WithRealtimeEnd sets the end of the real-time period (YYYY-MM-DD).
func (r *ReleasesRequest) WithRealtimeEnd(date string) *ReleasesRequest {
	r.set(ParamRealtimeEnd, date)
	return r
}

// WithLimit caps the number of results returned.
func (r *ReleasesRequest) WithLimit(limit string) *ReleasesRequest {
	r.set(ParamLimit, limit)
	return r
}

// WithOffset skips the first offset results.
func (r *ReleasesRequest) WithOffset(offset string) *ReleasesRequest {
	r.set(ParamOffset, offset)
	return r
}

// WithSort sets the sort order, asc or desc.
func (r *ReleasesRequest) WithSort(order string) *ReleasesRequest {
	r.set(ParamSortOrder, order)
	return r
}

// WithOrderBy sets the attribute results are ordered by.
func (r *ReleasesRequest) WithOrderBy(field string) *ReleasesRequest {
	r.set(ParamOrderBy, field)
	return r
}

// ReleasesDatesRequest lists release dates across all releases.
type ReleasesDatesRequest struct{ Request }

// WithRealtimeStart sets the start of the real-time period (YYYY-MM-DD).
func (r *ReleasesDatesRequest) WithRealtimeStart(date string) *ReleasesDatesRequest {
	r.set(ParamRealtimeStart, date)
	return r
}

// WithRealtimeEnd sets the end of the real-time period (YYYY-MM-DD).
func (r *ReleasesDatesRequest) WithRealtimeEnd(date string) *ReleasesDatesRequest {
	r.set(ParamRealtimeEnd, date)
	return r
}

// WithLimit caps the number of results returned.
func (r *ReleasesDatesRequest) WithLimit(limit string) *ReleasesDatesRequest {
	r.set(ParamLimit, limit)
	return r
}

// WithOffset skips the first offset results.
func (r *ReleasesDatesRequest) WithOffset(offset string) *ReleasesDatesRequest {
	r.set(ParamOffset, offset)
	return r
}

// WithSort sets the sort order, asc or desc.
func (r *ReleasesDatesRequest) WithSort(order string) *ReleasesDatesRequest {
	r.set(ParamSortOrder, order)
	return r
}

// WithOrderBy sets the attribute results are ordered by.
func (r *ReleasesDatesRequest) WithOrderBy(field string) *ReleasesDatesRequest {
	r.set(ParamOrderBy, field)
	return r
}

// WithIncludeNoData includes release dates with no data yet: "true" or "false".
func (r *ReleasesDatesRequest) WithIncludeNoData(include string) *ReleasesDatesRequest {
	r.set(ParamIncludeNoData, include)
	return r
}
