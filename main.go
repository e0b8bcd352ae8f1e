package main

import (
	"io"
	"os"

	"github.com/filoflix/web-ui/services/common"
	"github.com/joho/godotenv"
	log "github.com/sirupsen/logrus"
	"github.com/urfave/cli"
	"gopkg.in/natefinch/lumberjack.v2"
)

func main() {
	if err := godotenv.Load(); err != nil && !os.IsNotExist(err) {
		log.WithError(err).Warn("failed to load .env")
	}
	app := cli.NewApp()
	app.Name = "filoflix-web-ui"
	app.Usage = "runs filoflix web ui"
	app.Version = "0.0.1"
	app.Flags = common.RegisterLogFlags([]cli.Flag{})
	app.Before = configureLog
	configure(app)
	err := app.Run(os.Args)
	if err != nil {
		log.WithError(err).Fatal("failed to serve application")
	}
}

func configureLog(c *cli.Context) error {
	log.SetFormatter(&log.TextFormatter{FullTimestamp: true})
	p := c.GlobalString(common.LogFileFlag)
	if p == "" {
		return nil
	}
	log.SetOutput(io.MultiWriter(os.Stderr, &lumberjack.Logger{
		Filename:   p,
		MaxSize:    100,
		MaxBackups: 3,
		MaxAge:     7,
	}))
	return nil
}
