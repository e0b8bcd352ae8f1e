package session

import (
	"net/http"
	"strings"

	"github.com/filoflix/web-ui/services/admin"
	"github.com/filoflix/web-ui/services/common"
	"github.com/filoflix/web-ui/services/settings"
	"github.com/filoflix/web-ui/services/web"
	"github.com/gin-contrib/sessions"
	"github.com/gin-contrib/sessions/cookie"
	"github.com/gin-gonic/gin"
	log "github.com/sirupsen/logrus"
	"github.com/urfave/cli"
	csrf "github.com/utrack/gin-csrf"
)

const (
	sessionName       = "filoflix"
	splashShownKey    = "splash_shown"
	sessionSecureFlag = "session-secure"
	csrfEnabledKey    = "session.csrf"
)

func RegisterFlags(f []cli.Flag) []cli.Flag {
	return append(f,
		cli.BoolFlag{
			Name:   sessionSecureFlag,
			Usage:  "send session cookie over https only",
			EnvVar: "SESSION_SECURE",
		},
	)
}

type Handler struct {
	gate     *admin.Gate
	settings *settings.Settings
	skip     []string
}

// RegisterHandler installs the cookie session, CSRF protection and the middleware that
// exposes session state to views. CSRF is not enforced under the skip prefixes.
func RegisterHandler(c *cli.Context, r *gin.Engine, gate *admin.Gate, st *settings.Settings, skip []string) error {
	secret := c.String(common.SessionSecretFlag)
	store := cookie.NewStore([]byte(secret))
	store.Options(sessions.Options{
		Path:     "/",
		MaxAge:   86400 * 30,
		HttpOnly: true,
		Secure:   c.Bool(sessionSecureFlag),
		SameSite: http.SameSiteLaxMode,
	})
	h := &Handler{
		gate:     gate,
		settings: st,
		skip:     skip,
	}
	r.Use(sessions.Sessions(sessionName, store))
	r.Use(h.csrf(secret))
	r.Use(h.state)
	r.GET("/splash/done", h.splashDone)
	return nil
}

func (s *Handler) skipped(path string) bool {
	for _, p := range s.skip {
		if strings.HasPrefix(path, p) {
			return true
		}
	}
	return false
}

func (s *Handler) csrf(secret string) gin.HandlerFunc {
	mw := csrf.Middleware(csrf.Options{
		Secret: secret,
		ErrorFunc: func(c *gin.Context) {
			log.WithField("path", c.Request.URL.Path).Warn("csrf token mismatch")
			c.String(http.StatusBadRequest, "CSRF token mismatch")
			c.Abort()
		},
	})
	return func(c *gin.Context) {
		if s.skipped(c.Request.URL.Path) {
			c.Next()
			return
		}
		c.Set(csrfEnabledKey, true)
		mw(c)
	}
}

func (s *Handler) state(c *gin.Context) {
	sess := sessions.Default(c)
	if c.GetBool(csrfEnabledKey) {
		c.Set(web.CSRFContextKey, csrf.GetToken(c))
	}
	if s.gate != nil {
		c.Set(web.AdminContextKey, s.gate.IsAdmin(sess))
	}
	shown, _ := sess.Get(splashShownKey).(bool)
	c.Set(web.SplashContextKey, !shown)
	if s.settings != nil && c.Request.Method == http.MethodGet {
		sl, err := s.settings.SocialLinks(c.Request.Context())
		if err != nil {
			log.WithError(err).Warn("failed to load social links")
		} else {
			c.Set(web.SocialLinksContextKey, sl)
		}
	}
	c.Next()
}

func (s *Handler) splashDone(c *gin.Context) {
	sess := sessions.Default(c)
	sess.Set(splashShownKey, true)
	if err := sess.Save(); err != nil {
		log.WithError(err).Warn("failed to save session")
	}
	c.Redirect(http.StatusFound, common.SafeRedirect(c.Query("return-url"), "/"))
}
