package catalog

import (
	"testing"

	"github.com/filoflix/web-ui/models"
	"github.com/stretchr/testify/assert"
)

func strPtr(s string) *string {
	return &s
}

func fixture() []*models.Content {
	return []*models.Content{
		{Title: "Night Shift", Type: models.ContentTypeMovie, Genre: strPtr("Horror"), AgeRating: strPtr("R")},
		{Title: "Sunny Days", Type: models.ContentTypeSeries, Genre: strPtr("Comedy"), AgeRating: strPtr("PG")},
		{Title: "Deep Space", Type: models.ContentTypeTrailer, Genre: strPtr("Sci-Fi"), Description: strPtr("A night among stars")},
		{Title: "Gangland", Type: models.ContentTypeMovie, Genre: strPtr("Crime"), AgeRating: strPtr("18+")},
		{Title: "Late Show", Type: models.ContentTypeSeries, AgeRating: strPtr("NC-17")},
		{Title: "Family Trip", Type: models.ContentTypeMovie},
	}
}

func titles(items []*models.Content) []string {
	res := make([]string, 0, len(items))
	for _, it := range items {
		res = append(res, it.Title)
	}
	return res
}

func TestFilter_EmptyQueryAppliesBlocklist(t *testing.T) {
	for _, q := range []string{"", "   "} {
		res := Filter(fixture(), FilterOptions{SearchQuery: q})
		assert.Equal(t, []string{"Sunny Days", "Deep Space", "Family Trip"}, titles(res))
		for _, it := range res {
			assert.False(t, IsAdultRating(it.AgeRating), it.Title)
		}
	}
}

func TestFilter_SearchBypassesBlocklist(t *testing.T) {
	res := Filter(fixture(), FilterOptions{SearchQuery: "NIGHT"})
	assert.Equal(t, []string{"Night Shift", "Deep Space"}, titles(res))

	res = Filter(fixture(), FilterOptions{SearchQuery: "crime"})
	assert.Equal(t, []string{"Gangland"}, titles(res))

	res = Filter(fixture(), FilterOptions{SearchQuery: "late"})
	assert.Equal(t, []string{"Late Show"}, titles(res))
}

func TestFilter_SearchNeverExcludesOnRatingAlone(t *testing.T) {
	items := fixture()
	for _, it := range items {
		res := Filter(items, FilterOptions{SearchQuery: it.Title})
		assert.Contains(t, titles(res), it.Title)
	}
}

func TestFilter_ByType(t *testing.T) {
	res := Filter(fixture(), FilterOptions{Type: "movie"})
	assert.Equal(t, []string{"Family Trip"}, titles(res))

	res = Filter(fixture(), FilterOptions{Type: "series", SearchQuery: "s"})
	assert.Equal(t, []string{"Sunny Days", "Late Show"}, titles(res))

	res = Filter(fixture(), FilterOptions{Type: TypeAll})
	assert.Len(t, res, 3)
}

func TestGroupByType(t *testing.T) {
	rows := GroupByType(fixture())
	assert.Len(t, rows.Movies, 3)
	assert.Len(t, rows.Series, 2)
	assert.Len(t, rows.Trailers, 1)
	assert.False(t, rows.Empty())
	assert.True(t, GroupByType(nil).Empty())
	assert.Equal(t, rows.Series, rows.ByType(models.ContentTypeSeries))
	assert.Nil(t, rows.ByType("documentary"))
}

func TestTypeFromPath(t *testing.T) {
	assert.Equal(t, "movie", TypeFromPath("/movies"))
	assert.Equal(t, "series", TypeFromPath("/series/"))
	assert.Equal(t, "trailer", TypeFromPath("/trailers"))
	assert.Equal(t, "", TypeFromPath("/content"))
}

func TestFilterByCategory(t *testing.T) {
	res := FilterByCategory(fixture(), "Sci-Fi")
	assert.Equal(t, []string{"Deep Space"}, titles(res))

	res = FilterByCategory(fixture(), "trip")
	assert.Equal(t, []string{"Family Trip"}, titles(res))

	assert.Len(t, FilterByCategory(fixture(), TypeAll), 6)
}

func TestCountByCategory(t *testing.T) {
	counts := CountByCategory(fixture())
	assert.Equal(t, 6, counts[TypeAll])
	assert.Equal(t, 1, counts["horror"])
	assert.Equal(t, 1, counts["comedy"])
	assert.Equal(t, 0, counts["romance"])
}

func TestPickHero(t *testing.T) {
	assert.Nil(t, PickHero(nil, nil))
	assert.Nil(t, PickHero([]*models.Content{{Type: models.ContentTypeMovie}}, nil))

	items := append(fixture(), &models.Content{Title: "Second Trailer", Type: models.ContentTypeTrailer})
	assert.Equal(t, "Deep Space", PickHero(items, nil).Title)
	assert.Equal(t, "Second Trailer", PickHero(items, func(n int) int {
		assert.Equal(t, 2, n)
		return 1
	}).Title)
	assert.Equal(t, "Deep Space", PickHero(items, func(n int) int { return 9 }).Title)
}
