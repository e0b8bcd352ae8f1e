package api

import (
	"net/http"
	"strings"

	"github.com/filoflix/web-ui/models"
	"github.com/filoflix/web-ui/services/catalog"
	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	log "github.com/sirupsen/logrus"
)

type Handler struct {
	catalog *catalog.Catalog
}

type ContentResponse struct {
	Items []*models.Content `json:"items"`
	Total int               `json:"total"`
}

type ErrorResponse struct {
	Error string `json:"error"`
}

func RegisterHandler(r *gin.Engine, cat *catalog.Catalog) {
	h := &Handler{
		catalog: cat,
	}
	gr := r.Group("/api")
	gr.Use(cors.New(cors.Config{
		AllowOrigins: []string{"*"},
		AllowMethods: []string{http.MethodGet, http.MethodOptions},
	}))
	gr.GET("/content", h.content)
}

// content serves the catalog with the same filters as the listing pages, plus an
// optional category.
func (s *Handler) content(c *gin.Context) {
	items, err := s.catalog.List(c.Request.Context())
	if err != nil {
		log.WithError(err).Error("failed to list content")
		c.JSON(http.StatusInternalServerError, &ErrorResponse{Error: "failed to load content"})
		return
	}
	res := catalog.Filter(items, catalog.FilterOptions{
		SearchQuery: c.Query("q"),
		Type:        strings.ToLower(strings.TrimSpace(c.Query("type"))),
	})
	if cat := c.Query("category"); cat != "" {
		res = catalog.FilterByCategory(res, cat)
	}
	c.JSON(http.StatusOK, &ContentResponse{
		Items: res,
		Total: len(res),
	})
}
