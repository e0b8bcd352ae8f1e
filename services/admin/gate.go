package admin

import (
	"crypto/subtle"
	"net/http"
	"strings"

	"github.com/gin-contrib/sessions"
	"github.com/gin-gonic/gin"
	log "github.com/sirupsen/logrus"
	"github.com/urfave/cli"
)

const (
	emailFlag    = "admin-email"
	passwordFlag = "admin-password"
)

const (
	sessionKey = "admin"
	LoginPath  = "/admin/login"
)

func RegisterFlags(f []cli.Flag) []cli.Flag {
	return append(f,
		cli.StringFlag{
			Name:   emailFlag,
			Usage:  "admin login email",
			EnvVar: "ADMIN_EMAIL",
		},
		cli.StringFlag{
			Name:   passwordFlag,
			Usage:  "admin login password",
			EnvVar: "ADMIN_PASSWORD",
		},
	)
}

// Session is the subset of sessions.Session the gate touches.
type Session interface {
	Get(key interface{}) interface{}
	Set(key interface{}, val interface{})
	Delete(key interface{})
	Save() error
}

// Gate hides the admin pages behind a shared credential pair kept in config. The flag
// it stores lives in a signed cookie session; it is a UI affordance, not access control
// for the data itself.
type Gate struct {
	email    string
	password string
}

func New(c *cli.Context) *Gate {
	return NewWithCredentials(c.String(emailFlag), c.String(passwordFlag))
}

func NewWithCredentials(email, password string) *Gate {
	g := &Gate{
		email:    strings.TrimSpace(email),
		password: password,
	}
	if !g.Enabled() {
		log.Warn("admin credentials not set, admin login disabled")
	}
	return g
}

func (s *Gate) Enabled() bool {
	return s.email != "" && s.password != ""
}

// check requires both values to match exactly as posted.
func (s *Gate) check(email, password string) bool {
	if !s.Enabled() {
		return false
	}
	e := subtle.ConstantTimeCompare([]byte(email), []byte(s.email))
	p := subtle.ConstantTimeCompare([]byte(password), []byte(s.password))
	return e&p == 1
}

// Login sets the admin flag on success. A failed attempt leaves the session untouched.
func (s *Gate) Login(sess Session, email, password string) (bool, error) {
	if !s.check(email, password) {
		return false, nil
	}
	sess.Set(sessionKey, true)
	if err := sess.Save(); err != nil {
		return false, err
	}
	return true, nil
}

func (s *Gate) Logout(sess Session) error {
	sess.Delete(sessionKey)
	return sess.Save()
}

func (s *Gate) IsAdmin(sess Session) bool {
	v, ok := sess.Get(sessionKey).(bool)
	return ok && v
}

func (s *Gate) IsAuthenticated(c *gin.Context) bool {
	return s.IsAdmin(sessions.Default(c))
}

// Require redirects to the login page unless the session carries the admin flag.
func (s *Gate) Require() gin.HandlerFunc {
	return func(c *gin.Context) {
		if !s.IsAuthenticated(c) {
			c.Redirect(http.StatusFound, LoginPath)
			c.Abort()
			return
		}
		c.Next()
	}
}
