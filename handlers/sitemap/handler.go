package sitemap

import (
	"encoding/xml"
	"net/http"
	"strings"
	"time"

	"github.com/filoflix/web-ui/handlers/common"
	"github.com/filoflix/web-ui/services/catalog"
	svc "github.com/filoflix/web-ui/services/common"
	"github.com/gin-gonic/gin"
	log "github.com/sirupsen/logrus"
	"github.com/urfave/cli"
)

const dateLayout = "2006-01-02"

type URL struct {
	Loc        string `xml:"loc"`
	LastMod    string `xml:"lastmod"`
	ChangeFreq string `xml:"changefreq"`
	Priority   string `xml:"priority"`
}

type URLSet struct {
	XMLName xml.Name `xml:"urlset"`
	Xmlns   string   `xml:"xmlns,attr"`
	URLs    []URL    `xml:"url"`
}

type Handler struct {
	baseURL string
	catalog *catalog.Catalog
}

func RegisterHandler(c *cli.Context, r *gin.Engine, cat *catalog.Catalog) {
	h := &Handler{
		baseURL: strings.TrimSuffix(c.String(svc.DomainFlag), "/"),
		catalog: cat,
	}
	r.GET("/sitemap.xml", h.sitemap)
}

// sitemap lists the browse pages and a play page per item. Adult rated items stay out,
// same as default browsing.
func (h *Handler) sitemap(c *gin.Context) {
	now := time.Now().Format(dateLayout)

	var urls []URL
	for _, n := range common.NewNavHelper().MakeNav("") {
		priority := "0.8"
		if n.TargetURL == "/" {
			priority = "1.0"
		}
		urls = append(urls, URL{
			Loc:        h.baseURL + n.TargetURL,
			LastMod:    now,
			ChangeFreq: "daily",
			Priority:   priority,
		})
	}

	items, err := h.catalog.List(c.Request.Context())
	if err != nil {
		log.WithError(err).Warn("failed to list content for sitemap")
	}
	for _, item := range catalog.Filter(items, catalog.FilterOptions{}) {
		mod := item.UpdatedAt
		if mod.IsZero() {
			mod = item.CreatedAt
		}
		lastMod := now
		if !mod.IsZero() {
			lastMod = mod.Format(dateLayout)
		}
		urls = append(urls, URL{
			Loc:        h.baseURL + "/play/" + item.ID.String(),
			LastMod:    lastMod,
			ChangeFreq: "weekly",
			Priority:   "0.6",
		})
	}

	urlSet := URLSet{
		Xmlns: "http://www.sitemaps.org/schemas/sitemap/0.9",
		URLs:  urls,
	}

	c.Header("Content-Type", "application/xml")
	c.XML(http.StatusOK, urlSet)
}
