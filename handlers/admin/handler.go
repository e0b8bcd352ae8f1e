package admin

import (
	"net/http"
	"strconv"
	"strings"

	"github.com/filoflix/web-ui/models"
	"github.com/filoflix/web-ui/services/admin"
	"github.com/filoflix/web-ui/services/catalog"
	"github.com/filoflix/web-ui/services/episodes"
	"github.com/filoflix/web-ui/services/settings"
	"github.com/filoflix/web-ui/services/suggestion"
	"github.com/filoflix/web-ui/services/template"
	"github.com/filoflix/web-ui/services/web"
	"github.com/gin-contrib/sessions"
	"github.com/gin-gonic/gin"
	"github.com/pkg/errors"
	uuid "github.com/satori/go.uuid"
	log "github.com/sirupsen/logrus"
)

const dashboardPath = "/admin/dashboard"

type LoginData struct {
	Enabled bool
	Email   string
}

type DashboardData struct {
	Items       []*models.Content
	Rows        *catalog.Rows
	Suggestions []*suggestion.Suggestion
	Social      *settings.SocialLinks
}

type FormData struct {
	ID         string
	Form       *ContentForm
	Episodes   []models.Episode
	Types      []models.ContentType
	AgeRatings []AgeRating
}

func (s *FormData) IsEdit() bool {
	return s.ID != ""
}

func (s *FormData) Action() string {
	if s.IsEdit() {
		return "/admin/content/" + s.ID
	}
	return "/admin/content"
}

type Handler struct {
	tb          template.Builder[*web.Context]
	gate        *admin.Gate
	catalog     *catalog.Catalog
	settings    *settings.Settings
	suggestions *suggestion.Service
}

func RegisterHandler(r *gin.Engine, tm *template.Manager[*web.Context], gate *admin.Gate, cat *catalog.Catalog, st *settings.Settings, sg *suggestion.Service) {
	h := &Handler{
		tb:          tm.MustRegisterViews("admin/*").WithLayout("main"),
		gate:        gate,
		catalog:     cat,
		settings:    st,
		suggestions: sg,
	}
	r.GET("/admin", func(c *gin.Context) {
		c.Redirect(http.StatusFound, dashboardPath)
	})
	r.GET(admin.LoginPath, h.loginForm)
	r.POST(admin.LoginPath, h.login)
	r.POST("/admin/logout", h.logout)

	gr := r.Group("/admin")
	gr.Use(gate.Require())
	gr.GET("/dashboard", h.dashboard)
	gr.GET("/content/new", h.newForm)
	gr.GET("/content/:id/edit", h.editForm)
	gr.POST("/content", h.create)
	gr.POST("/content/:id", h.update)
	gr.POST("/content/:id/delete", h.delete)
	gr.POST("/episodes", h.episodes)
	gr.POST("/social", h.social)
}

func (s *Handler) loginForm(c *gin.Context) {
	if s.gate.IsAuthenticated(c) {
		c.Redirect(http.StatusFound, dashboardPath)
		return
	}
	s.tb.Build("admin/login").HTML(http.StatusOK, web.NewContext(c).WithData(&LoginData{
		Enabled: s.gate.Enabled(),
	}))
}

func (s *Handler) login(c *gin.Context) {
	email := c.PostForm("email")
	ok, err := s.gate.Login(sessions.Default(c), email, c.PostForm("password"))
	if err != nil {
		log.WithError(err).Error("failed to save admin session")
	}
	if !ok || err != nil {
		log.WithField("email", email).Warn("admin login failed")
		s.tb.Build("admin/login").HTML(http.StatusUnauthorized, web.NewContext(c).WithData(&LoginData{
			Enabled: s.gate.Enabled(),
			Email:   email,
		}).WithErr(errors.New("Invalid email or password")))
		return
	}
	log.WithField("email", email).Info("admin logged in")
	c.Redirect(http.StatusFound, dashboardPath)
}

func (s *Handler) logout(c *gin.Context) {
	if err := s.gate.Logout(sessions.Default(c)); err != nil {
		log.WithError(err).Warn("failed to save session")
	}
	c.Redirect(http.StatusFound, admin.LoginPath)
}

func (s *Handler) dashboard(c *gin.Context) {
	ctx := c.Request.Context()
	d := &DashboardData{
		Rows:   &catalog.Rows{},
		Social: &settings.SocialLinks{},
	}
	items, err := s.catalog.List(ctx)
	if err != nil {
		s.tb.Build("admin/dashboard").HTML(http.StatusInternalServerError, web.NewContext(c).WithData(d).WithErr(err))
		return
	}
	d.Items = items
	d.Rows = catalog.GroupByType(items)
	if sl, err := s.settings.SocialLinks(ctx); err != nil {
		log.WithError(err).Warn("failed to load social links")
	} else {
		d.Social = sl
	}
	if sg, err := s.suggestions.List(ctx); err != nil {
		log.WithError(err).Warn("failed to load suggestions")
	} else {
		d.Suggestions = sg
	}
	s.tb.Build("admin/dashboard").HTML(http.StatusOK, web.NewContext(c).WithData(d))
}

func (s *Handler) renderForm(c *gin.Context, code int, id string, f *ContentForm, ed *episodes.Editor, err error) {
	ctx := web.NewContext(c).WithData(&FormData{
		ID:         id,
		Form:       f,
		Episodes:   ed.Episodes(),
		Types:      models.ContentTypes,
		AgeRatings: AgeRatings,
	})
	if err != nil {
		ctx = ctx.WithErr(err)
	}
	s.tb.Build("admin/form").HTML(code, ctx)
}

func (s *Handler) newForm(c *gin.Context) {
	s.renderForm(c, http.StatusOK, "", &ContentForm{Type: models.ContentTypeMovie.String()}, episodes.New(nil), nil)
}

func (s *Handler) getItem(c *gin.Context) (*models.Content, error) {
	id, err := uuid.FromString(c.Param("id"))
	if err != nil {
		return nil, errors.Wrap(err, "invalid content id")
	}
	item, err := s.catalog.Get(c.Request.Context(), id)
	if err != nil {
		return nil, err
	}
	if item == nil {
		return nil, errors.Errorf("content %v not found", id)
	}
	return item, nil
}

func (s *Handler) editForm(c *gin.Context) {
	item, err := s.getItem(c)
	if err != nil {
		web.RedirectWithErrorTo(c, err, dashboardPath)
		return
	}
	f, ed := FormFromContent(item)
	s.renderForm(c, http.StatusOK, item.ID.String(), f, ed, nil)
}

func bindForm(c *gin.Context) (*ContentForm, *episodes.Editor, error) {
	var f ContentForm
	if err := c.ShouldBind(&f); err != nil {
		return nil, nil, err
	}
	var ef episodes.Form
	if err := c.ShouldBind(&ef); err != nil {
		return nil, nil, err
	}
	return &f, episodes.FromForm(&ef), nil
}

func (s *Handler) create(c *gin.Context) {
	f, ed, err := bindForm(c)
	if err != nil {
		web.RedirectWithErrorTo(c, err, dashboardPath)
		return
	}
	item := &models.Content{}
	if err := f.Apply(item, ed); err != nil {
		s.renderForm(c, http.StatusUnprocessableEntity, "", f, ed, err)
		return
	}
	if err := s.catalog.Create(c.Request.Context(), item); err != nil {
		log.WithError(err).Error("failed to create content")
		s.renderForm(c, http.StatusInternalServerError, "", f, ed, errors.New("Failed to create content."))
		return
	}
	web.RedirectWithSuccessAndMessageTo(c, "Content created successfully!", dashboardPath)
}

func (s *Handler) update(c *gin.Context) {
	item, err := s.getItem(c)
	if err != nil {
		web.RedirectWithErrorTo(c, err, dashboardPath)
		return
	}
	f, ed, err := bindForm(c)
	if err != nil {
		web.RedirectWithErrorTo(c, err, dashboardPath)
		return
	}
	id := item.ID.String()
	if err := f.Apply(item, ed); err != nil {
		s.renderForm(c, http.StatusUnprocessableEntity, id, f, ed, err)
		return
	}
	if err := s.catalog.Update(c.Request.Context(), item); err != nil {
		log.WithError(err).Error("failed to update content")
		s.renderForm(c, http.StatusInternalServerError, id, f, ed, errors.New("Failed to update content."))
		return
	}
	web.RedirectWithSuccessAndMessageTo(c, "Content updated successfully!", dashboardPath)
}

func (s *Handler) delete(c *gin.Context) {
	id, err := uuid.FromString(c.Param("id"))
	if err != nil {
		web.RedirectWithErrorTo(c, errors.Wrap(err, "invalid content id"), dashboardPath)
		return
	}
	if err := s.catalog.Delete(c.Request.Context(), id); err != nil {
		web.RedirectWithErrorTo(c, errors.New("Failed to delete content."), dashboardPath)
		return
	}
	web.RedirectWithSuccessAndMessageTo(c, "Content deleted successfully!", dashboardPath)
}

// episodes applies an add or remove action to the posted episode list and renders the
// form again without saving.
func (s *Handler) episodes(c *gin.Context) {
	f, ed, err := bindForm(c)
	if err != nil {
		web.RedirectWithErrorTo(c, err, dashboardPath)
		return
	}
	id := ""
	if u, perr := uuid.FromString(c.PostForm("id")); perr == nil {
		id = u.String()
	}
	action := c.PostForm("episode_action")
	switch {
	case action == "add":
		ed.Add()
	case strings.HasPrefix(action, "remove:"):
		i, perr := strconv.Atoi(strings.TrimPrefix(action, "remove:"))
		if perr == nil {
			err = ed.Remove(i)
		} else {
			err = errors.Wrap(perr, "invalid episode index")
		}
	default:
		err = errors.Errorf("unknown episode action %q", action)
	}
	s.renderForm(c, http.StatusOK, id, f, ed, err)
}

func (s *Handler) social(c *gin.Context) {
	var sl settings.SocialLinks
	if err := c.ShouldBind(&sl); err != nil {
		web.RedirectWithErrorTo(c, err, dashboardPath)
		return
	}
	if err := s.settings.SaveSocialLinks(c.Request.Context(), &sl); err != nil {
		log.WithError(err).Error("failed to save social links")
		web.RedirectWithErrorTo(c, errors.New("Failed to save social media links."), dashboardPath)
		return
	}
	web.RedirectWithSuccessAndMessageTo(c, "Social media links saved successfully!", dashboardPath)
}
