package main

import (
	"net/http"

	"github.com/filoflix/web-ui/services/omdb"
	log "github.com/sirupsen/logrus"
	"github.com/urfave/cli"
)

func configureExternalSearch(f []cli.Flag) []cli.Flag {
	return omdb.RegisterFlags(f)
}

// makeExternalSearch returns nil when no OMDB key is configured.
func makeExternalSearch(c *cli.Context, cl *http.Client) *omdb.Api {
	api := omdb.New(c, cl)
	if api == nil {
		log.Info("omdb key not set, external search disabled")
	}
	return api
}
