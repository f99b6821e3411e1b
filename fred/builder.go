package fred

import "strings"

// ─── Request constructors ─────────────────────────────────────────────────────
//
// One constructor per FRED resource. An empty id stores nothing; the API
// then answers with an error document, which Get reports as a domain error.

// Series fetches the metadata of series id.
func Series(id string) *SeriesRequest {
	return (&SeriesRequest{Request{path: PathSeries}}).WithID(id)
}

// SeriesObservations fetches the observations of series id.
func SeriesObservations(id string) *SeriesObservationsRequest {
	return (&SeriesObservationsRequest{Request{path: PathSeriesObservations}}).WithID(id)
}

// SeriesRelease fetches the release series id belongs to.
func SeriesRelease(id string) *SeriesReleaseRequest {
	return (&SeriesReleaseRequest{Request{path: PathSeriesRelease}}).WithID(id)
}

// SeriesCategories lists the categories of series id.
func SeriesCategories(id string) *SeriesCategoriesRequest {
	return (&SeriesCategoriesRequest{Request{path: PathSeriesCategories}}).WithID(id)
}

// SeriesVintageDates lists the dates on which series id was revised.
func SeriesVintageDates(id string) *SeriesVintageDatesRequest {
	return (&SeriesVintageDatesRequest{Request{path: PathSeriesVintageDates}}).WithID(id)
}

// SeriesUpdates lists series sorted by last update.
func SeriesUpdates() *SeriesUpdatesRequest {
	return &SeriesUpdatesRequest{Request{path: PathSeriesUpdates}}
}

// SeriesSearch searches series for text, stored as search_text.
func SeriesSearch(text string) *SeriesSearchRequest {
	return (&SeriesSearchRequest{Request{path: PathSeriesSearch}}).WithSearch(text)
}

// SeriesTags lists the tags of series id.
func SeriesTags(id string) *SeriesTagsRequest {
	return (&SeriesTagsRequest{Request{path: PathSeriesTags}}).WithID(id)
}

// Release fetches release id.
func Release(id string) *ReleaseRequest {
	return (&ReleaseRequest{Request{path: PathRelease}}).WithID(id)
}

// ReleaseSeries lists the series of release id.
func ReleaseSeries(id string) *ReleaseSeriesRequest {
	return (&ReleaseSeriesRequest{Request{path: PathReleaseSeries}}).WithID(id)
}

// ReleaseSources lists the sources of release id.
func ReleaseSources(id string) *ReleaseSourcesRequest {
	return (&ReleaseSourcesRequest{Request{path: PathReleaseSources}}).WithID(id)
}

// ReleaseDates lists the publication dates of release id.
func ReleaseDates(id string) *ReleaseDatesRequest {
	return (&ReleaseDatesRequest{Request{path: PathReleaseDates}}).WithID(id)
}

// Releases lists all releases.
func Releases() *ReleasesRequest {
	return &ReleasesRequest{Request{path: PathReleases}}
}

// ReleasesDates lists publication dates across all releases.
func ReleasesDates() *ReleasesDatesRequest {
	return &ReleasesDatesRequest{Request{path: PathReleasesDates}}
}

// Source fetches source id.
func Source(id string) *SourceRequest {
	return (&SourceRequest{Request{path: PathSource}}).WithID(id)
}

// SourceReleases lists the releases of source id.
func SourceReleases(id string) *SourceReleasesRequest {
	return (&SourceReleasesRequest{Request{path: PathSourceReleases}}).WithID(id)
}

// Sources lists all sources.
func Sources() *SourcesRequest {
	return &SourcesRequest{Request{path: PathSources}}
}

// Category fetches category id. The root category is "0".
func Category(id string) *CategoryRequest {
	return (&CategoryRequest{Request{path: PathCategory}}).WithID(id)
}

// CategoryChildren lists the child categories of id.
func CategoryChildren(id string) *CategoryChildrenRequest {
	return (&CategoryChildrenRequest{Request{path: PathCategoryChildren}}).WithID(id)
}

// CategoryRelated lists the categories related to id.
func CategoryRelated(id string) *CategoryRelatedRequest {
	return (&CategoryRelatedRequest{Request{path: PathCategoryRelated}}).WithID(id)
}

// CategorySeries lists the series in category id.
func CategorySeries(id string) *CategorySeriesRequest {
	return (&CategorySeriesRequest{Request{path: PathCategorySeries}}).WithID(id)
}

// Tags lists FRED tags.
func Tags() *TagsRequest {
	return &TagsRequest{Request{path: PathTags}}
}

// RelatedTags lists tags related to tagNames (semicolon separated).
func RelatedTags(tagNames string) *RelatedTagsRequest {
	return (&RelatedTagsRequest{Request{path: PathRelatedTags}}).WithTagNames(tagNames)
}

// TagsSeries lists series carrying all of tagNames (semicolon separated).
func TagsSeries(tagNames string) *TagsSeriesRequest {
	return (&TagsSeriesRequest{Request{path: PathTagsSeries}}).WithTagNames(tagNames)
}

// ─── Resource table ───────────────────────────────────────────────────────────

// Resource describes a FRED endpoint for callers that pick the resource at
// run time, such as a command line front end.
type Resource struct {
	Path    string
	IDParam string // "" when the resource takes no id
}

var resources = []Resource{
	{PathSeries, ParamSeriesID},
	{PathSeriesObservations, ParamSeriesID},
	{PathSeriesRelease, ParamSeriesID},
	{PathSeriesCategories, ParamSeriesID},
	{PathSeriesVintageDates, ParamSeriesID},
	{PathSeriesUpdates, ""},
	{PathSeriesSearch, ParamSearchText},
	{PathSeriesTags, ParamSeriesID},
	{PathRelease, ParamReleaseID},
	{PathReleaseSeries, ParamReleaseID},
	{PathReleaseSources, ParamReleaseID},
	{PathReleaseDates, ParamReleaseID},
	{PathReleases, ""},
	{PathReleasesDates, ""},
	{PathSource, ParamSourceID},
	{PathSourceReleases, ParamSourceID},
	{PathSources, ""},
	{PathCategory, ParamCategoryID},
	{PathCategoryChildren, ParamCategoryID},
	{PathCategoryRelated, ParamCategoryID},
	{PathCategorySeries, ParamCategoryID},
	{PathTags, ""},
	{PathRelatedTags, ParamTagNames},
	{PathTagsSeries, ParamTagNames},
}

// Resources returns every known resource in documentation order.
func Resources() []Resource {
	out := make([]Resource, len(resources))
	copy(out, resources)
	return out
}

// LookupResource finds a resource by path. Surrounding slashes and case
// are ignored.
func LookupResource(path string) (Resource, bool) {
	path = strings.ToLower(strings.Trim(path, "/"))
	for _, r := range resources {
		if r.Path == path {
			return r, true
		}
	}
	return Resource{}, false
}

// New returns an untyped request for the resource with id stored under its
// id parameter. Resources without an id ignore it.
func (r Resource) New(id string) *Request {
	req := NewRequest(r.Path)
	if r.IDParam != "" {
		req.set(r.IDParam, id)
	}
	return req
}
