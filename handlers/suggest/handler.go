package suggest

import (
	"github.com/filoflix/web-ui/services/suggestion"
	"github.com/filoflix/web-ui/services/web"
	"github.com/gin-gonic/gin"
)

type Form struct {
	Name       string `form:"name"`
	Suggestion string `form:"suggestion"`
}

type Handler struct {
	sg *suggestion.Service
}

func RegisterHandler(r *gin.Engine, sg *suggestion.Service) {
	h := &Handler{
		sg: sg,
	}
	r.POST("/suggest", h.post)
}

func (s *Handler) post(c *gin.Context) {
	var f Form
	if err := c.ShouldBind(&f); err != nil {
		web.RedirectWithError(c, err)
		return
	}
	_, err := s.sg.Submit(c.Request.Context(), c.ClientIP(), f.Name, f.Suggestion)
	if err != nil {
		web.RedirectWithError(c, err)
		return
	}
	web.RedirectWithSuccessAndMessage(c, "Thanks for your suggestion!")
}
