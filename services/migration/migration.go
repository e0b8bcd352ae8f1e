package migration

import (
	"github.com/go-pg/migrations/v8"
	"github.com/pkg/errors"
	log "github.com/sirupsen/logrus"
	"github.com/urfave/cli"
	cs "github.com/webtor-io/common-services"
)

const dirFlag = "migrations-dir"

func RegisterFlags(f []cli.Flag) []cli.Flag {
	return append(f,
		cli.StringFlag{
			Name:   dirFlag,
			Usage:  "directory with sql migrations",
			Value:  "migrations",
			EnvVar: "MIGRATIONS_DIR",
		},
	)
}

// Register adds Go migrations to a collection.
type Register func(col *migrations.Collection)

type PGMigration struct {
	db  *cs.PG
	col *migrations.Collection
	dir string
}

func New(c *cli.Context, db *cs.PG, regs ...Register) *PGMigration {
	return NewWithDir(db, c.String(dirFlag), regs...)
}

func NewWithDir(db *cs.PG, dir string, regs ...Register) *PGMigration {
	col := migrations.NewCollection()
	for _, r := range regs {
		r(col)
	}
	return &PGMigration{
		db:  db,
		col: col,
		dir: dir,
	}
}

// Run applies a go-pg/migrations command (up, down, reset, version). With no
// arguments it migrates up.
func (s *PGMigration) Run(a ...string) error {
	db := s.db.Get()
	if db == nil {
		log.Info("db not initialized, skipping migration")
		return nil
	}
	if err := s.col.DiscoverSQLMigrations(s.dir); err != nil {
		return errors.Wrapf(err, "failed to discover migrations in %v", s.dir)
	}
	_, _, err := s.col.Run(db, "init")
	if err != nil {
		return errors.Wrap(err, "failed to init migrations table")
	}
	oldVersion, newVersion, err := s.col.Run(db, a...)
	if err != nil {
		return errors.Wrapf(err, "failed to migrate from %v to %v", oldVersion, newVersion)
	}
	if newVersion != oldVersion {
		log.Infof("db migrated from version %d to %d", oldVersion, newVersion)
	} else {
		log.Infof("db version is %d", oldVersion)
	}
	return nil
}
