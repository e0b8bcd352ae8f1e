package main

import (
	"github.com/urfave/cli"
)

func configure(app *cli.App) {
	serveCMD := makeServeCMD()
	migrationCMD := makePGMigrationCMD()
	exportCMD := makeExportCMD()
	app.Commands = []cli.Command{serveCMD, migrationCMD, exportCMD}
}
