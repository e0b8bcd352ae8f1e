package search

import (
	"net/http"
	"strings"

	"github.com/filoflix/web-ui/models"
	"github.com/filoflix/web-ui/services/omdb"
	"github.com/filoflix/web-ui/services/template"
	"github.com/filoflix/web-ui/services/web"
	"github.com/gin-gonic/gin"
)

type Data struct {
	Enabled bool
	Type    string
	Items   []*models.Content
}

type Handler struct {
	tb   template.Builder[*web.Context]
	omdb *omdb.Api
}

// RegisterHandler registers external search. A nil api renders the page with search
// disabled.
func RegisterHandler(r *gin.Engine, tm *template.Manager[*web.Context], api *omdb.Api) {
	h := &Handler{
		tb:   tm.MustRegisterViews("search/*").WithLayout("main"),
		omdb: api,
	}
	r.GET("/search/external", h.external)
}

func (s *Handler) external(c *gin.Context) {
	t := strings.ToLower(strings.TrimSpace(c.Query("type")))
	d := &Data{
		Enabled: s.omdb != nil,
		Type:    t,
	}
	items, err := s.omdb.SearchContent(c.Request.Context(), c.Query("q"), omdb.TypeFromContentType(t))
	if err != nil {
		s.tb.Build("search/external").HTML(http.StatusBadGateway, web.NewContext(c).WithData(d).WithErr(err))
		return
	}
	d.Items = items
	s.tb.Build("search/external").HTML(http.StatusOK, web.NewContext(c).WithData(d))
}
