package index

import (
	"math/rand/v2"
	"net/http"

	"github.com/filoflix/web-ui/models"
	"github.com/filoflix/web-ui/services/catalog"
	"github.com/filoflix/web-ui/services/template"
	"github.com/filoflix/web-ui/services/web"
	"github.com/gin-gonic/gin"
	log "github.com/sirupsen/logrus"
)

type Data struct {
	Hero      *models.Content
	Rows      *catalog.Rows
	NoResults bool
}

type Handler struct {
	tb      template.Builder[*web.Context]
	catalog *catalog.Catalog
}

func RegisterHandler(r *gin.Engine, tm *template.Manager[*web.Context], cat *catalog.Catalog) {
	h := &Handler{
		tb:      tm.MustRegisterViews("index").WithLayout("main"),
		catalog: cat,
	}
	r.GET("/", h.index)
}

func (s *Handler) index(c *gin.Context) {
	q := c.Query("q")
	items, err := s.catalog.List(c.Request.Context())
	if err != nil {
		log.WithError(err).Error("failed to load home page content")
		s.tb.Build("index").HTML(http.StatusInternalServerError, web.NewContext(c).WithData(&Data{
			Rows: &catalog.Rows{},
		}).WithErr(err))
		return
	}
	filtered := catalog.Filter(items, catalog.FilterOptions{SearchQuery: q})
	rows := catalog.GroupByType(filtered)
	s.tb.Build("index").HTML(http.StatusOK, web.NewContext(c).WithData(&Data{
		Hero:      catalog.PickHero(filtered, rand.IntN),
		Rows:      rows,
		NoResults: q != "" && len(filtered) == 0,
	}))
}
