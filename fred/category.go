package fred

// ─── Categories ───────────────────────────────────────────────────────────────

const (
	PathCategory         = "category"
	PathCategoryChildren = "category/children"
	PathCategoryRelated  = "category/related"
	PathCategorySeries   = "category/series"
)

// CategoryRequest fetches one category. The root category has id 0.
type CategoryRequest struct{ Request }

// WithID replaces the category id.
func (r *CategoryRequest) WithID(id string) *CategoryRequest {
	r.set(ParamCategoryID, id)
	return r
}

// WithRealtimeStart sets the start of the real-time period (YYYY-MM-DD).
func (r *CategoryRequest) WithRealtimeStart(date string) *CategoryRequest {
	r.set(ParamRealtimeStart, date)
	return r
}

// WithRealtimeEnd sets the end of the real-time period (YYYY-MM-DD).
func (r *CategoryRequest) WithRealtimeEnd(date string) *CategoryRequest {
	r.set(ParamRealtimeEnd, date)
	return r
}

// CategoryChildrenRequest lists the child categories of a category.
type CategoryChildrenRequest struct{ Request }

// WithID replaces the category id.
func (r *CategoryChildrenRequest) WithID(id string) *CategoryChildrenRequest {
	r.set(ParamCategoryID, id)
	return r
}

// WithRealtimeStart sets the start of the real-time period (YYYY-MM-DD).
func (r *CategoryChildrenRequest) WithRealtimeStart(date string) *CategoryChildrenRequest {
	r.set(ParamRealtimeStart, date)
	return r
}

// WithRealtimeEnd sets the end of the real-time period (YYYY-MM-DD).
func (r *CategoryChildrenRequest) WithRealtimeEnd(date string) *CategoryChildrenRequest {
	r.set(ParamRealtimeEnd, date)
	return r
}

// CategoryRelatedRequest lists the categories related to a category.
type CategoryRelatedRequest struct{ Request }

// WithID replaces the category id.
func (r *CategoryRelatedRequest) WithID(id string) *CategoryRelatedRequest {
	r.set(ParamCategoryID, id)
	return r
}

// WithRealtimeStart sets the start of the real-time period (YYYY-MM-DD).
func (r *CategoryRelatedRequest) WithRealtimeStart(date string) *CategoryRelatedRequest {
	r.set(ParamRealtimeStart, date)
	return r
}

// WithRealtimeEnd sets the end of the real-time period (YYYY-MM-DD).
func (r *CategoryRelatedRequest) WithRealtimeEnd(date string) *CategoryRelatedRequest {
	r.set(ParamRealtimeEnd, date)
	return r
}

// CategorySeriesRequest lists the series in a category.
type CategorySeriesRequest struct{ Request }

// WithID replaces the category id.
func (r *CategorySeriesRequest) WithID(id string) *CategorySeriesRequest {
	r.set(ParamCategoryID, id)
	return r
}

// WithRealtimeStart sets the start of the real-time period (YYYY-MM-DD).
func (r *CategorySeriesRequest) WithRealtimeStart(date string) *CategorySeriesRequest {
	r.set(ParamRealtimeStart, date)
	return r
}

// WithRealtimeEnd sets the end of the real-time period (YYYY-MM-DD).
func (r *CategorySeriesRequest) WithRealtimeEnd(date string) *CategorySeriesRequest {
	r.set(ParamRealtimeEnd, date)
	return r
}

// WithLimit caps the number of results returned.
func (r *CategorySeriesRequest) WithLimit(limit string) *CategorySeriesRequest {
	r.set(ParamLimit, limit)
	return r
}

// WithOffset skips the first offset results.
func (r *CategorySeriesRequest) WithOffset(offset string) *CategorySeriesRequest {
	r.set(ParamOffset, offset)
	return r
}

// WithSort sets the sort order, asc or desc.
func (r *CategorySeriesRequest) WithSort(order string) *CategorySeriesRequest {
	r.set(ParamSortOrder, order)
	return r
}

// WithOrderBy sets the attribute results are ordered by.
func (r *CategorySeriesRequest) WithOrderBy(field string) *CategorySeriesRequest {
	r.set(ParamOrderBy, field)
	return r
}

// WithFilter keeps only results whose filter variable equals value.
func (r *CategorySeriesRequest) WithFilter(value string) *CategorySeriesRequest {
	r.set(ParamFilterValue, value)
	return r
}

// WithFilterOn names the attribute WithFilter matches against.
func (r *CategorySeriesRequest) WithFilterOn(variable string) *CategorySeriesRequest {
	r.set(ParamFilterVariable, variable)
	return r
}
