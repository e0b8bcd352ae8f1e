package play

import (
	"net/http"
	"regexp"
	"strconv"

	"github.com/filoflix/web-ui/models"
	"github.com/filoflix/web-ui/services/catalog"
	"github.com/filoflix/web-ui/services/embed"
	"github.com/filoflix/web-ui/services/template"
	"github.com/filoflix/web-ui/services/web"
	"github.com/gin-gonic/gin"
	uuid "github.com/satori/go.uuid"
)

var imdbIDRegexp = regexp.MustCompile(`^tt\d+$`)

type Data struct {
	Item        *models.Content
	Resolution  *embed.Resolution
	Player      *embed.PlayerView
	DownloadURL string
}

type Handler struct {
	tb       template.Builder[*web.Context]
	catalog  *catalog.Catalog
	resolver *embed.Resolver
	player   *embed.PlayerConfig
}

func RegisterHandler(r *gin.Engine, tm *template.Manager[*web.Context], cat *catalog.Catalog, res *embed.Resolver, pc *embed.PlayerConfig) {
	h := &Handler{
		tb:       tm.MustRegisterViews("play").WithLayout("main"),
		catalog:  cat,
		resolver: res,
		player:   pc,
	}
	r.GET("/play/:id", h.play)
	r.GET("/info/:imdb", h.info)
}

func (s *Handler) play(c *gin.Context) {
	empty := &Data{
		Resolution: &embed.Resolution{Kind: embed.KindEmpty},
		Player:     s.player.View(),
	}
	id, err := uuid.FromString(c.Param("id"))
	if err != nil {
		s.tb.Build("play").HTML(http.StatusNotFound, web.NewContext(c).WithData(empty))
		return
	}
	item, err := s.catalog.Get(c.Request.Context(), id)
	if err != nil {
		s.tb.Build("play").HTML(http.StatusInternalServerError, web.NewContext(c).WithData(empty).WithErr(err))
		return
	}
	if item == nil {
		s.tb.Build("play").HTML(http.StatusNotFound, web.NewContext(c).WithData(empty))
		return
	}
	episode, _ := strconv.Atoi(c.Query("episode"))
	res := s.resolver.Resolve(item, episode)
	s.tb.Build("play").HTML(http.StatusOK, web.NewContext(c).WithData(&Data{
		Item:        item,
		Resolution:  res,
		Player:      s.player.View(),
		DownloadURL: embed.DownloadURL(item, res.Episode),
	}))
}

// info sends external search results to their IMDb page.
func (s *Handler) info(c *gin.Context) {
	id := c.Param("imdb")
	if !imdbIDRegexp.MatchString(id) {
		c.Status(http.StatusNotFound)
		return
	}
	c.Redirect(http.StatusFound, "https://www.imdb.com/title/"+id+"/")
}
