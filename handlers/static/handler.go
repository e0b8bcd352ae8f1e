package static

import (
	"os"

	"github.com/gin-gonic/gin"
	"github.com/pkg/errors"
	"github.com/urfave/cli"
)

const assetsPathFlag = "assets-path"

func RegisterFlags(f []cli.Flag) []cli.Flag {
	return append(f,
		cli.StringFlag{
			Name:   assetsPathFlag,
			Usage:  "assets path",
			Value:  "./assets",
			EnvVar: "ASSETS_PATH",
		},
	)
}

func RegisterHandler(c *cli.Context, r *gin.Engine) error {
	path := c.String(assetsPathFlag)
	if _, err := os.Stat(path); err != nil {
		return errors.Wrapf(err, "failed to find assets at %v", path)
	}
	r.Static("/assets", path)
	return nil
}
