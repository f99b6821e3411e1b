package fred

// ─── Sources ──────────────────────────────────────────────────────────────────

const (
	PathSource         = "source"
	PathSourceReleases = "source/releases"
	PathSources        = "sources"
)

// SourceRequest fetches one source of economic data.
type SourceRequest struct{ Request }

// WithID replaces the source id.
func (r *SourceRequest) WithID(id string) *SourceRequest {
	r.set(ParamSourceID, id)
	return r
}

// WithRealtimeStart sets the start of the real-time period (YYYY-MM-DD).
func (r *SourceRequest) WithRealtimeStart(date string) *SourceRequest {
	r.set(ParamRealtimeStart, date)
	return r
}

// WithRealtimeEnd sets the end of the real-time period (YYYY-MM-DD).
func (r *SourceRequest) WithRealtimeEnd(date string) *SourceRequest {
	r.set(ParamRealtimeEnd, date)
	return r
}

// SourceReleasesRequest lists the releases published by a source.
type SourceReleasesRequest struct{ Request }

// WithID replaces the source id.
func (r *SourceReleasesRequest) WithID(id string) *SourceReleasesRequest {
	r.set(ParamSourceID, id)
	return r
}

// WithRealtimeStart sets the start of the real-time period (YYYY-MM-DD).
func (r *SourceReleasesRequest) WithRealtimeStart(date string) *SourceReleasesRequest {
	r.set(ParamRealtimeStart, date)
	return r
}

// WithRealtimeEnd sets the end of the real-time period (YYYY-MM-DD).
func (r *SourceReleasesRequest) WithRealtimeEnd(date string) *SourceReleasesRequest {
	r.set(ParamRealtimeEnd, date)
	return r
}

// WithLimit caps the number of results returned.
func (r *SourceReleasesRequest) WithLimit(limit string) *SourceReleasesRequest {
	r.set(ParamLimit, limit)
	return r
}

// WithOffset skips the first offset results.
func (r *SourceReleasesRequest) WithOffset(offset string) *SourceReleasesRequest {
	r.set(ParamOffset, offset)
	return r
}

// WithSort sets the sort order, asc or desc.
func (r *SourceReleasesRequest) WithSort(order string) *SourceReleasesRequest {
	r.set(ParamSortOrder, order)
	return r
}

// WithOrderBy sets the attribute results are ordered by.
func (r *SourceReleasesRequest) WithOrderBy(field string) *SourceReleasesRequest {
	r.set(ParamOrderBy, field)
	return r
}

// SourcesRequest lists all sources.
type SourcesRequest struct{ Request }

// WithRealtimeStart sets the start of the real-time period (YYYY-MM-DD).
func (r *SourcesRequest) WithRealtimeStart(date string) *SourcesRequest {
	r.set(ParamRealtimeStart, date)
	return r
}

// WithRealtimeEnd sets the end of the real-time period (YYYY-MM-DD).
func (r *SourcesRequest) WithRealtimeEnd(date string) *SourcesRequest {
	r.set(ParamRealtimeEnd, date)
	return r
}

// WithLimit caps the number of results returned.
func (r *SourcesRequest) WithLimit(limit string) *SourcesRequest {
	r.set(ParamLimit, limit)
	return r
}

// WithOffset skips the first offset results.
func (r *SourcesRequest) WithOffset(offset string) *SourcesRequest {
	r.set(ParamOffset, offset)
	return r
}

// WithSort sets the sort order, asc or desc.
func (r *SourcesRequest) WithSort(order string) *SourcesRequest {
	r.set(ParamSortOrder, order)
	return r
}

// WithOrderBy sets the attribute results are ordered by.
func (r *SourcesRequest) WithOrderBy(field string) *SourcesRequest {
	r.set(ParamOrderBy, field)
	return r
}
