package web

import (
	"encoding/json"
	"html/template"
	"strconv"
	"strings"
	"time"

	"github.com/dustin/go-humanize"
	"github.com/filoflix/web-ui/services/common"
	"github.com/urfave/cli"
	"golang.org/x/text/cases"
	"golang.org/x/text/language"
)

type Helper struct {
	domain string
}

func NewHelper(c *cli.Context) *Helper {
	return &Helper{
		domain: strings.TrimSuffix(c.String(common.DomainFlag), "/"),
	}
}

func (s *Helper) Domain() string {
	return s.domain
}

// Title upper-cases words. A Caser is stateful, so one is made per call.
func (s *Helper) Title(str string) string {
	return cases.Title(language.English).String(str)
}

func (s *Helper) Deref(str *string) string {
	if str == nil {
		return ""
	}
	return *str
}

func (s *Helper) Ago(t time.Time) string {
	if t.IsZero() {
		return ""
	}
	return humanize.Time(t)
}

func (s *Helper) Count(n int) string {
	return humanize.Comma(int64(n))
}

func (s *Helper) Rating(r *float64) string {
	if r == nil {
		return ""
	}
	return strconv.FormatFloat(*r, 'f', 1, 64)
}

func (s *Helper) Year(y *int) string {
	if y == nil {
		return ""
	}
	return strconv.Itoa(*y)
}

// Json encodes v for use inside a script tag.
func (s *Helper) Json(v any) (template.JS, error) {
	b, err := json.Marshal(v)
	if err != nil {
		return "", err
	}
	return template.JS(b), nil
}

func (s *Helper) Truncate(str string, n int) string {
	r := []rune(str)
	if len(r) <= n {
		return str
	}
	return strings.TrimSpace(string(r[:n])) + "…"
}
