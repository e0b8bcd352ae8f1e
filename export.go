package main

import (
	"context"
	"encoding/json"
	"os"

	"github.com/filoflix/web-ui/models"
	"github.com/filoflix/web-ui/services/catalog"
	"github.com/pkg/errors"
	log "github.com/sirupsen/logrus"
	"github.com/urfave/cli"
	cs "github.com/webtor-io/common-services"
)

const exportTypeFlag = "type"

func makeExportCMD() cli.Command {
	exportCMD := cli.Command{
		Name:    "export",
		Aliases: []string{"e"},
		Usage:   "Dumps the catalog as JSON to stdout",
		Action:  export,
	}
	configureExport(&exportCMD)
	return exportCMD
}

func configureExport(c *cli.Command) {
	c.Flags = cs.RegisterPGFlags(c.Flags)
	c.Flags = append(c.Flags, cli.StringFlag{
		Name:  exportTypeFlag,
		Usage: "export only movie, series or trailer",
	})
}

func export(c *cli.Context) error {
	pg := cs.NewPG(c)
	defer pg.Close()
	if pg.Get() == nil {
		return errors.New("db not configured")
	}

	items, err := catalog.New(pg).List(context.Background())
	if err != nil {
		return err
	}
	if t := c.String(exportTypeFlag); t != "" {
		items = catalog.GroupByType(items).ByType(models.ContentType(t))
	}
	log.Infof("exporting %d items", len(items))
	enc := json.NewEncoder(os.Stdout)
	enc.SetIndent("", "  ")
	return enc.Encode(items)
}
