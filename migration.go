package main

import (
	m "github.com/filoflix/web-ui/migrations"
	"github.com/filoflix/web-ui/services/migration"
	"github.com/urfave/cli"
	cs "github.com/webtor-io/common-services"
)

func makePGMigrationCMD() cli.Command {
	migrateCmd := cli.Command{
		Name:    "migrate",
		Aliases: []string{"m"},
		Usage:   "Migrates database",
	}
	configurePGMigration(&migrateCmd)
	return migrateCmd
}

func configurePGMigration(c *cli.Command) {
	for _, a := range []struct {
		name  string
		alias string
		usage string
	}{
		{"up", "u", "Runs all available migrations"},
		{"down", "d", "Reverts last migration"},
		{"reset", "r", "Reverts all migrations"},
		{"version", "v", "Prints current db version"},
	} {
		cmd := a.name
		c.Subcommands = append(c.Subcommands, cli.Command{
			Name:    a.name,
			Usage:   a.usage,
			Aliases: []string{a.alias},
			Flags:   configureMigrationFlags(nil),
			Action: func(c *cli.Context) error {
				db := cs.NewPG(c)
				defer db.Close()
				return pgMigrate(c, db, cmd)
			},
		})
	}
}

func configureMigrationFlags(f []cli.Flag) []cli.Flag {
	f = cs.RegisterPGFlags(f)
	f = migration.RegisterFlags(f)
	return f
}

func pgMigrate(c *cli.Context, db *cs.PG, a ...string) error {
	return migration.New(c, db, m.NormalizeEpisodeEmbedCode).Run(a...)
}
