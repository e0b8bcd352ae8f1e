package catalog

import (
	"strings"

	"github.com/filoflix/web-ui/models"
)

type Category struct {
	Key         string
	Name        string
	Icon        string
	Description string
}

var Categories = []Category{
	{Key: TypeAll, Name: "All", Icon: "⭐", Description: "All content"},
	{Key: "action", Name: "Action", Icon: "🔥", Description: "High-octane thrills"},
	{Key: "comedy", Name: "Comedy", Icon: "😂", Description: "Laugh-out-loud moments"},
	{Key: "drama", Name: "Drama", Icon: "🎭", Description: "Emotional storytelling"},
	{Key: "horror", Name: "Horror", Icon: "👻", Description: "Spine-chilling scares"},
	{Key: "sci-fi", Name: "Sci-Fi", Icon: "🚀", Description: "Future possibilities"},
	{Key: "romance", Name: "Romance", Icon: "💕", Description: "Love stories"},
	{Key: "thriller", Name: "Thriller", Icon: "⚡", Description: "Edge-of-seat suspense"},
	{Key: "animation", Name: "Animation", Icon: "🎨", Description: "Animated adventures"},
	{Key: "documentary", Name: "Documentary", Icon: "📽️", Description: "Real-world stories"},
	{Key: "fantasy", Name: "Fantasy", Icon: "🧙", Description: "Magical worlds"},
	{Key: "crime", Name: "Crime", Icon: "🕵️", Description: "Criminal underworld"},
}

func inCategory(item *models.Content, key string) bool {
	return containsFold(item.Category, key) ||
		containsFold(item.Genre, key) ||
		containsFold(&item.Title, key)
}

// FilterByCategory keeps items whose category, genre or title mentions key.
func FilterByCategory(items []*models.Content, key string) []*models.Content {
	key = strings.ToLower(strings.TrimSpace(key))
	if key == "" || key == TypeAll {
		return items
	}
	res := make([]*models.Content, 0, len(items))
	for _, item := range items {
		if inCategory(item, key) {
			res = append(res, item)
		}
	}
	return res
}

func CountByCategory(items []*models.Content) map[string]int {
	counts := make(map[string]int, len(Categories))
	for _, c := range Categories {
		if c.Key == TypeAll {
			counts[c.Key] = len(items)
			continue
		}
		for _, item := range items {
			if inCategory(item, c.Key) {
				counts[c.Key]++
			}
		}
	}
	return counts
}
