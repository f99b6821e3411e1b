package fred

// ─── Tags ─────────────────────────────────────────────────────────────────────

const (
	PathTags        = "tags"
	PathRelatedTags = "related_tags"
	PathTagsSeries  = "tags/series"
)

// TagsRequest lists or searches FRED tags.
type TagsRequest struct{ Request }

// WithRealtimeStart sets the start of the real-time period (YYYY-MM-DD).
func (r *TagsRequest) WithRealtimeStart(date string) *TagsRequest {
	r.set(ParamRealtimeStart, date)
	return r
}

// WithRealtimeEnd sets the end of the real-time period (YYYY-MM-DD).
func (r *TagsRequest) WithRealtimeEnd(date string) *TagsRequest {
	r.set(ParamRealtimeEnd, date)
	return r
}

// WithLimit caps the number of results returned.
func (r *TagsRequest) WithLimit(limit string) *TagsRequest {
	r.set(ParamLimit, limit)
	return r
}

// WithOffset skips the first offset results.
func (r *TagsRequest) WithOffset(offset string) *TagsRequest {
	r.set(ParamOffset, offset)
	return r
}

// WithSort sets the sort order, asc or desc.
func (r *TagsRequest) WithSort(order string) *TagsRequest {
	r.set(ParamSortOrder, order)
	return r
}

// WithOrderBy sets order_by (series_count|popularity|created|name|group_id).
func (r *TagsRequest) WithOrderBy(field string) *TagsRequest {
	r.set(ParamOrderBy, field)
	return r
}

// WithSearch sets the words to search for.
func (r *TagsRequest) WithSearch(text string) *TagsRequest {
	r.set(ParamSearchText, text)
	return r
}

// WithTagNames restricts results to tags (semicolon separated).
func (r *TagsRequest) WithTagNames(tags string) *TagsRequest {
	r.set(ParamTagNames, tags)
	return r
}

// WithTagGroupID sets tag_group_id (freq|gen|geo|geot|rls|seas|src).
func (r *TagsRequest) WithTagGroupID(group string) *TagsRequest {
	r.set(ParamTagGroupID, group)
	return r
}

// RelatedTagsRequest lists tags related to a set of tags.
type RelatedTagsRequest struct{ Request }

// WithTagNames sets the semicolon separated tags to relate to.
func (r *RelatedTagsRequest) WithTagNames(tags string) *RelatedTagsRequest {
	r.set(ParamTagNames, tags)
	return r
}

// WithRealtimeStart sets the start of the real-time period (YYYY-MM-DD).
func (r *RelatedTagsRequest) WithRealtimeStart(date string) *RelatedTagsRequest {
	r.set(ParamRealtimeStart, date)
	return r
}

// WithRealtimeEnd sets the end of the real-time period (YYYY-MM-DD).
func (r *RelatedTagsRequest) WithRealtimeEnd(date string) *RelatedTagsRequest {
	r.set(ParamRealtimeEnd, date)
	return r
}

// WithLimit caps the number of results returned.
func (r *RelatedTagsRequest) WithLimit(limit string) *RelatedTagsRequest {
	r.set(ParamLimit, limit)
	return r
}

// WithOffset skips the first offset results.
func (r *RelatedTagsRequest) WithOffset(offset string) *RelatedTagsRequest {
	r.set(ParamOffset, offset)
	return r
}

// WithSort sets the sort order, asc or desc.
func (r *RelatedTagsRequest) WithSort(order string) *RelatedTagsRequest {
	r.set(ParamSortOrder, order)
	return r
}

// WithOrderBy sets the attribute results are ordered by.
func (r *RelatedTagsRequest) WithOrderBy(field string) *RelatedTagsRequest {
	r.set(ParamOrderBy, field)
	return r
}

// WithSearch sets the words to search for.
func (r *RelatedTagsRequest) WithSearch(text string) *RelatedTagsRequest {
	r.set(ParamSearchText, text)
	return r
}

// WithTagGroupID restricts tags to one group: freq, gen, geo, geot, rls, seas or src.
func (r *RelatedTagsRequest) WithTagGroupID(group string) *RelatedTagsRequest {
	r.set(ParamTagGroupID, group)
	return r
}

// TagsSeriesRequest lists the series matching all of a set of tags.
type TagsSeriesRequest struct{ Request }

// WithTagNames restricts results to tags (semicolon separated).
func (r *TagsSeriesRequest) WithTagNames(tags string) *TagsSeriesRequest {
	r.set(ParamTagNames, tags)
	return r
}

// WithExcludeTagNames excludes series carrying any of tags (semicolon separated).
func (r *TagsSeriesRequest) WithExcludeTagNames(tags string) *TagsSeriesRequest {
	r.set(ParamExcludeTagNames, tags)
	return r
}

// WithRealtimeStart sets the start of the real-time period (YYYY-MM-DD).
func (r *TagsSeriesRequest) WithRealtimeStart(date string) *TagsSeriesRequest {
	r.set(ParamRealtimeStart, date)
	return r
}

// WithRealtimeEnd sets the end of the real-time period (YYYY-MM-DD).
func (r *TagsSeriesRequest) WithRealtimeEnd(date string) *TagsSeriesRequest {
	r.set(ParamRealtimeEnd, date)
	return r
}

// WithLimit caps the number of results returned.
func (r *TagsSeriesRequest) WithLimit(limit string) *TagsSeriesRequest {
	r.set(ParamLimit, limit)
	return r
}

// WithOffset skips the first offset results.
func (r *TagsSeriesRequest) WithOffset(offset string) *TagsSeriesRequest {
	r.set(ParamOffset, offset)
	return r
}

// WithSort sets the sort order, asc or desc.
func (r *TagsSeriesRequest) WithSort(order string) *TagsSeriesRequest {
	r.set(ParamSortOrder, order)
	return r
}

// WithOrderBy sets the attribute results are ordered by.
func (r *TagsSeriesRequest) WithOrderBy(field string) *TagsSeriesRequest {
	r.set(ParamOrderBy, field)
	return r
}
