package fred

// Parameter names shared by the FRED resources.
const (
	ParamAPIKey          = "api_key"
	ParamFileType        = "file_type"
	ParamRealtimeStart   = "realtime_start"
	ParamRealtimeEnd     = "realtime_end"
	ParamLimit           = "limit"
	ParamOffset          = "offset"
	ParamSortOrder       = "sort_order"
	ParamOrderBy         = "order_by"
	ParamFilterVariable  = "filter_variable"
	ParamFilterValue     = "filter_value"
	ParamSeriesID        = "series_id"
	ParamReleaseID       = "release_id"
	ParamSourceID        = "source_id"
	ParamCategoryID      = "category_id"
	ParamSearchText      = "search_text"
	ParamSearchType      = "search_type"
	ParamTagNames        = "tag_names"
	ParamExcludeTagNames = "exclude_tag_names"
	ParamTagGroupID      = "tag_group_id"
	ParamIncludeNoData   = "include_release_dates_with_no_data"

	ParamObservationStart  = "observation_start"
	ParamObservationEnd    = "observation_end"
	ParamUnits             = "units"
	ParamFrequency         = "frequency"
	ParamAggregationMethod = "aggregation_method"
	ParamOutputType        = "output_type"
	ParamVintageDates      = "vintage_dates"
)

// APIRequest is anything the API facade can send: a resource path and the
// parameters to send with it. Params must return a copy.
type APIRequest interface {
	Path() string
	Params() Params
}

// Request is the base of every typed request. It carries the resource path
// and the parameters set so far. Typed requests embed it and only expose
// the builder methods their resource accepts.
type Request struct {
	path   string
	params Params
}

// NewRequest returns a request for an arbitrary resource path. Prefer the
// typed constructors such as Series or CategoryChildren.
func NewRequest(path string) *Request {
	return &Request{path: path}
}

// Path returns the resource path relative to the API base URI.
func (r *Request) Path() string { return r.path }

// Params returns a copy of the parameters set on the request.
func (r *Request) Params() Params { return r.params.Clone() }

// Param returns the value of key, or "".
func (r *Request) Param(key string) string { return r.params.Get(key) }

// Has reports whether key has been set.
func (r *Request) Has(key string) bool { return r.params.Has(key) }

// With sets a raw parameter. It is the escape hatch for parameters the
// typed builders do not cover; the FRED API ignores unknown ones.
func (r *Request) With(key, value string) *Request {
	r.set(key, value)
	return r
}

// String formats the request as "path?key=value|...".
func (r *Request) String() string {
	return r.path + "?" + r.params.String()
}

// set stores key=value unless either is empty. Every builder goes through it.
func (r *Request) set(key, value string) {
	if key == "" || value == "" {
		return
	}
	r.params.With(key, value)
}
