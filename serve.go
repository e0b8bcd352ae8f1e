package main

import (
	"net/http"

	wa "github.com/filoflix/web-ui/handlers/admin"
	"github.com/filoflix/web-ui/handlers/api"
	hc "github.com/filoflix/web-ui/handlers/common"
	"github.com/filoflix/web-ui/handlers/content"
	wi "github.com/filoflix/web-ui/handlers/index"
	"github.com/filoflix/web-ui/handlers/metrics"
	"github.com/filoflix/web-ui/handlers/play"
	"github.com/filoflix/web-ui/handlers/search"
	sess "github.com/filoflix/web-ui/handlers/session"
	"github.com/filoflix/web-ui/handlers/sitemap"
	sta "github.com/filoflix/web-ui/handlers/static"
	"github.com/filoflix/web-ui/handlers/suggest"
	"github.com/filoflix/web-ui/services/admin"
	"github.com/filoflix/web-ui/services/catalog"
	"github.com/filoflix/web-ui/services/common"
	"github.com/filoflix/web-ui/services/embed"
	"github.com/filoflix/web-ui/services/migration"
	"github.com/filoflix/web-ui/services/settings"
	"github.com/filoflix/web-ui/services/suggestion"
	"github.com/filoflix/web-ui/services/template"
	w "github.com/filoflix/web-ui/services/web"

	"github.com/gin-contrib/multitemplate"
	"github.com/gin-gonic/gin"
	log "github.com/sirupsen/logrus"
	"github.com/urfave/cli"
	cs "github.com/webtor-io/common-services"
)

func makeServeCMD() cli.Command {
	serveCMD := cli.Command{
		Name:    "serve",
		Aliases: []string{"s"},
		Usage:   "Serves web server",
		Action:  serve,
	}
	configureServe(&serveCMD)
	return serveCMD
}

func configureServe(c *cli.Command) {
	c.Flags = cs.RegisterPGFlags(c.Flags)
	c.Flags = cs.RegisterProbeFlags(c.Flags)
	c.Flags = cs.RegisterRedisClientFlags(c.Flags)
	c.Flags = migration.RegisterFlags(c.Flags)
	c.Flags = w.RegisterFlags(c.Flags)
	c.Flags = common.RegisterFlags(c.Flags)
	c.Flags = sess.RegisterFlags(c.Flags)
	c.Flags = sta.RegisterFlags(c.Flags)
	c.Flags = admin.RegisterFlags(c.Flags)
	c.Flags = embed.RegisterFlags(c.Flags)
	c.Flags = suggestion.RegisterFlags(c.Flags)
	c.Flags = configureExternalSearch(c.Flags)
}

func serve(c *cli.Context) error {
	// Setting HTTP Client
	cl := http.DefaultClient

	// Setting DB
	pg := cs.NewPG(c)
	defer pg.Close()

	// Setting Migrations
	err := pgMigrate(c, pg)
	if err != nil {
		return err
	}

	// Setting template renderer
	re := multitemplate.NewRenderer()

	// Setting TemplateManager
	tm := template.NewManager[*w.Context](re).
		WithHelper(w.NewHelper(c)).
		WithHelper(hc.NewNavHelper())

	var servers []cs.Servable
	// Setting Probe
	probe := cs.NewProbe(c)
	if probe != nil {
		servers = append(servers, probe)
		defer probe.Close()
	}

	// Setting Gin
	r := gin.Default()
	r.RedirectTrailingSlash = false
	r.HTMLRender = re

	// Setting Web
	web, err := w.New(c, r)
	if err != nil {
		return err
	}
	servers = append(servers, web)
	defer web.Close()

	// Setting Redis
	redis := cs.NewRedisClient(c)
	defer redis.Close()

	// Setting Catalog
	cat := catalog.New(pg)

	// Setting Settings
	store := settings.NewPGStore(pg)
	st := settings.New(store)

	// Setting Suggestions
	sg := suggestion.NewFromCLI(c, store, redis.Get())

	// Setting Admin Gate
	gate := admin.New(c)

	// Setting Session
	err = sess.RegisterHandler(c, r, gate, st, []string{
		"/api/",
		"/metrics",
	})
	if err != nil {
		return err
	}

	// Setting Static
	err = sta.RegisterHandler(c, r)
	if err != nil {
		return err
	}

	// Setting Sitemap
	sitemap.RegisterHandler(c, r, cat)

	// Setting Metrics
	metrics.RegisterHandler(r)

	// Setting IndexHandler
	wi.RegisterHandler(r, tm, cat)

	// Setting ContentHandler
	content.RegisterHandler(r, tm, cat)

	// Setting PlayHandler
	play.RegisterHandler(r, tm, cat, embed.NewResolver(c), embed.NewPlayerConfig(c))

	// Setting SearchHandler
	search.RegisterHandler(r, tm, makeExternalSearch(c, cl))

	// Setting SuggestHandler
	suggest.RegisterHandler(r, sg)

	// Setting ApiHandler
	api.RegisterHandler(r, cat)

	// Setting AdminHandler
	wa.RegisterHandler(r, tm, gate, cat, st, sg)

	// Render templates
	err = tm.Init()
	if err != nil {
		return err
	}

	// Setting Serve
	serve := cs.NewServe(servers...)

	// And SERVE!
	err = serve.Serve()
	if err != nil {
		log.WithError(err).Error("got server error")
	}
	return err
}
