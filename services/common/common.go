package common

import (
	"net/url"
	"strings"

	"github.com/urfave/cli"
)

var (
	DomainFlag        = "domain"
	SessionSecretFlag = "secret"
	LogFileFlag       = "log-file"
)

func RegisterFlags(f []cli.Flag) []cli.Flag {
	f = append(f,
		cli.StringFlag{
			Name:   DomainFlag,
			Usage:  "domain",
			Value:  "http://localhost:8080",
			EnvVar: "DOMAIN",
		},
		cli.StringFlag{
			Name:   SessionSecretFlag,
			Usage:  "session secret",
			Value:  "secret123",
			EnvVar: "SESSION_SECRET",
		},
	)

	return f
}

// RegisterLogFlags is shared by every command, so it lives on the app itself.
func RegisterLogFlags(f []cli.Flag) []cli.Flag {
	return append(f,
		cli.StringFlag{
			Name:   LogFileFlag,
			Usage:  "also write logs to this file, rotated",
			EnvVar: "LOG_FILE",
		},
	)
}

// SafeRedirect returns path when it is a local absolute path and fallback otherwise.
func SafeRedirect(path, fallback string) string {
	path = strings.TrimSpace(path)
	if !strings.HasPrefix(path, "/") || strings.HasPrefix(path, "//") || strings.HasPrefix(path, "/\\") {
		return fallback
	}
	u, err := url.Parse(path)
	if err != nil || u.Host != "" || u.Scheme != "" {
		return fallback
	}
	return path
}
