package content

import (
	"net/http"
	"strings"

	"github.com/filoflix/web-ui/models"
	"github.com/filoflix/web-ui/services/catalog"
	"github.com/filoflix/web-ui/services/template"
	"github.com/filoflix/web-ui/services/web"
	"github.com/gin-gonic/gin"
)

type ListData struct {
	Type  string
	Title string
	Items []*models.Content
}

type CategoryItem struct {
	catalog.Category
	Count  int
	Active bool
}

type CategoriesData struct {
	Categories []CategoryItem
	Current    *catalog.Category
	Items      []*models.Content
}

type Handler struct {
	tb      template.Builder[*web.Context]
	catalog *catalog.Catalog
}

func RegisterHandler(r *gin.Engine, tm *template.Manager[*web.Context], cat *catalog.Catalog) {
	h := &Handler{
		tb:      tm.MustRegisterViews("content/*").WithLayout("main"),
		catalog: cat,
	}
	r.GET("/movies", h.list)
	r.GET("/series", h.list)
	r.GET("/trailers", h.list)
	r.GET("/content", h.list)
	r.GET("/categories", h.categories)
}

func listTitle(t string) string {
	switch t {
	case string(models.ContentTypeMovie):
		return "Movies"
	case string(models.ContentTypeSeries):
		return "TV Series"
	case string(models.ContentTypeTrailer):
		return "Trailers"
	}
	return "All Content"
}

func (s *Handler) list(c *gin.Context) {
	t := catalog.TypeFromPath(c.Request.URL.Path)
	if t == "" {
		t = strings.ToLower(strings.TrimSpace(c.Query("type")))
	}
	d := &ListData{
		Type:  t,
		Title: listTitle(t),
	}
	items, err := s.catalog.List(c.Request.Context())
	if err != nil {
		s.tb.Build("content/list").HTML(http.StatusInternalServerError, web.NewContext(c).WithData(d).WithErr(err))
		return
	}
	d.Items = catalog.Filter(items, catalog.FilterOptions{
		SearchQuery: c.Query("q"),
		Type:        t,
	})
	s.tb.Build("content/list").HTML(http.StatusOK, web.NewContext(c).WithData(d))
}

func (s *Handler) categories(c *gin.Context) {
	key := strings.ToLower(strings.TrimSpace(c.Query("category")))
	if key == "" {
		key = catalog.TypeAll
	}
	d := &CategoriesData{}
	items, err := s.catalog.List(c.Request.Context())
	if err != nil {
		s.tb.Build("content/categories").HTML(http.StatusInternalServerError, web.NewContext(c).WithData(d).WithErr(err))
		return
	}
	visible := catalog.Filter(items, catalog.FilterOptions{SearchQuery: c.Query("q")})
	counts := catalog.CountByCategory(visible)
	for i := range catalog.Categories {
		cat := catalog.Categories[i]
		active := cat.Key == key
		if active {
			d.Current = &catalog.Categories[i]
		}
		d.Categories = append(d.Categories, CategoryItem{
			Category: cat,
			Count:    counts[cat.Key],
			Active:   active,
		})
	}
	d.Items = catalog.FilterByCategory(visible, key)
	s.tb.Build("content/categories").HTML(http.StatusOK, web.NewContext(c).WithData(d))
}
