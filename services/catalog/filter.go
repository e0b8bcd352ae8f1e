package catalog

import (
	"strings"

	"github.com/filoflix/web-ui/models"
)

// AdultRatings are excluded from default browsing.
var AdultRatings = []string{"R", "NC-17", "18+"}

const TypeAll = "all"

type FilterOptions struct {
	SearchQuery string
	Type        string
}

func IsAdultRating(rating *string) bool {
	if rating == nil {
		return false
	}
	for _, r := range AdultRatings {
		if *rating == r {
			return true
		}
	}
	return false
}

// Filter narrows items down by type and search text, keeping store order.
//
// A non-empty search query matches title, genre or description and does not apply the
// adult rating blocklist: any search text shows rated items too. Without a query the
// blocklist is applied.
func Filter(items []*models.Content, opts FilterOptions) []*models.Content {
	q := strings.ToLower(strings.TrimSpace(opts.SearchQuery))
	t := strings.TrimSpace(opts.Type)
	res := make([]*models.Content, 0, len(items))
	for _, item := range items {
		if t != "" && t != TypeAll && string(item.Type) != t {
			continue
		}
		if q != "" {
			if !matchesQuery(item, q) {
				continue
			}
		} else if IsAdultRating(item.AgeRating) {
			continue
		}
		res = append(res, item)
	}
	return res
}

func matchesQuery(item *models.Content, q string) bool {
	return containsFold(&item.Title, q) ||
		containsFold(item.Genre, q) ||
		containsFold(item.Description, q)
}

// containsFold expects q to be lower-cased already.
func containsFold(s *string, q string) bool {
	if s == nil {
		return false
	}
	return strings.Contains(strings.ToLower(*s), q)
}

type Rows struct {
	Movies   []*models.Content
	Series   []*models.Content
	Trailers []*models.Content
}

func (r *Rows) Empty() bool {
	return len(r.Movies) == 0 && len(r.Series) == 0 && len(r.Trailers) == 0
}

func (r *Rows) ByType(t models.ContentType) []*models.Content {
	switch t {
	case models.ContentTypeMovie:
		return r.Movies
	case models.ContentTypeSeries:
		return r.Series
	case models.ContentTypeTrailer:
		return r.Trailers
	}
	return nil
}

func GroupByType(items []*models.Content) *Rows {
	rows := &Rows{}
	for _, item := range items {
		switch item.Type {
		case models.ContentTypeMovie:
			rows.Movies = append(rows.Movies, item)
		case models.ContentTypeSeries:
			rows.Series = append(rows.Series, item)
		case models.ContentTypeTrailer:
			rows.Trailers = append(rows.Trailers, item)
		}
	}
	return rows
}

// TypeFromPath maps listing routes to a content type.
func TypeFromPath(path string) string {
	switch strings.TrimSuffix(path, "/") {
	case "/movies":
		return string(models.ContentTypeMovie)
	case "/series":
		return string(models.ContentTypeSeries)
	case "/trailers":
		return string(models.ContentTypeTrailer)
	}
	return ""
}

// PickHero chooses the featured item among the trailers of items. pick receives the
// number of trailers and returns an index; nil picks the first.
func PickHero(items []*models.Content, pick func(n int) int) *models.Content {
	var trailers []*models.Content
	for _, item := range items {
		if item.Type == models.ContentTypeTrailer {
			trailers = append(trailers, item)
		}
	}
	if len(trailers) == 0 {
		return nil
	}
	if pick == nil {
		return trailers[0]
	}
	i := pick(len(trailers))
	if i < 0 || i >= len(trailers) {
		i = 0
	}
	return trailers[i]
}
