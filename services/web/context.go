package web

import (
	"net/http"
	"net/url"

	"github.com/filoflix/web-ui/services/common"
	"github.com/filoflix/web-ui/services/settings"
	"github.com/gin-contrib/sessions"
	"github.com/gin-gonic/gin"
	log "github.com/sirupsen/logrus"
)

// Keys under which request-scoped state is put on the gin context by middleware.
const (
	CSRFContextKey        = "web.csrf"
	AdminContextKey       = "web.admin"
	SplashContextKey      = "web.splash"
	SocialLinksContextKey = "web.social"
)

const (
	flashSuccess = "success"
	flashError   = "error"
)

type Flash struct {
	Success []string
	Error   []string
}

func (f *Flash) Empty() bool {
	return len(f.Success) == 0 && len(f.Error) == 0
}

type Context struct {
	Data       any
	Err        error
	Flash      *Flash
	CSRF       string
	Admin      bool
	ShowSplash bool
	Social     *settings.SocialLinks
	Path       string
	Query      string

	c *gin.Context
}

func NewContext(c *gin.Context) *Context {
	ctx := &Context{
		Flash:  &Flash{},
		Social: &settings.SocialLinks{},
		Path:   c.Request.URL.Path,
		Query:  c.Query("q"),
		c:      c,
	}
	ctx.CSRF = c.GetString(CSRFContextKey)
	ctx.Admin = c.GetBool(AdminContextKey)
	ctx.ShowSplash = c.GetBool(SplashContextKey)
	if sl, ok := c.Get(SocialLinksContextKey); ok {
		if v, ok := sl.(*settings.SocialLinks); ok && v != nil {
			ctx.Social = v
		}
	}
	if _, ok := c.Get(sessions.DefaultKey); ok {
		ctx.Flash = popFlash(sessions.Default(c))
	}
	return ctx
}

func popFlash(s sessions.Session) *Flash {
	f := &Flash{}
	for _, v := range s.Flashes(flashSuccess) {
		if str, ok := v.(string); ok {
			f.Success = append(f.Success, str)
		}
	}
	for _, v := range s.Flashes(flashError) {
		if str, ok := v.(string); ok {
			f.Error = append(f.Error, str)
		}
	}
	if !f.Empty() {
		if err := s.Save(); err != nil {
			log.WithError(err).Warn("failed to save session")
		}
	}
	return f
}

func (s *Context) WithData(obj any) *Context {
	return &Context{
		Data:       obj,
		Err:        s.Err,
		Flash:      s.Flash,
		CSRF:       s.CSRF,
		Admin:      s.Admin,
		ShowSplash: s.ShowSplash,
		Social:     s.Social,
		Path:       s.Path,
		Query:      s.Query,
		c:          s.c,
	}
}

func (s *Context) WithErr(err error) *Context {
	nc := s.WithData(s.Data)
	nc.Err = err
	return nc
}

func (s *Context) GetGinContext() *gin.Context {
	return s.c
}

func addFlash(c *gin.Context, kind string, msg string) {
	if _, ok := c.Get(sessions.DefaultKey); !ok {
		return
	}
	s := sessions.Default(c)
	s.AddFlash(msg, kind)
	if err := s.Save(); err != nil {
		log.WithError(err).Warn("failed to save session")
	}
}

// ReturnURL picks where to send the user back: the posted return-url, then the referer
// path, then fallback. Only local paths are accepted.
func ReturnURL(c *gin.Context, fallback string) string {
	if ru := c.PostForm("return-url"); ru != "" {
		return common.SafeRedirect(ru, fallback)
	}
	if ref := c.GetHeader("Referer"); ref != "" {
		if u, err := url.Parse(ref); err == nil {
			return common.SafeRedirect(u.RequestURI(), fallback)
		}
	}
	return fallback
}

func RedirectWithError(c *gin.Context, err error) {
	log.WithError(err).WithField("path", c.Request.URL.Path).Error("request failed")
	addFlash(c, flashError, err.Error())
	c.Redirect(http.StatusFound, ReturnURL(c, "/"))
}

func RedirectWithErrorTo(c *gin.Context, err error, to string) {
	log.WithError(err).WithField("path", c.Request.URL.Path).Error("request failed")
	addFlash(c, flashError, err.Error())
	c.Redirect(http.StatusFound, to)
}

func RedirectWithSuccessAndMessage(c *gin.Context, msg string) {
	addFlash(c, flashSuccess, msg)
	c.Redirect(http.StatusFound, ReturnURL(c, "/"))
}

func RedirectWithSuccessAndMessageTo(c *gin.Context, msg string, to string) {
	addFlash(c, flashSuccess, msg)
	c.Redirect(http.StatusFound, to)
}
