package template

import (
	"bytes"
	"html/template"
	"path/filepath"
	"reflect"
	"strings"
	"sync"
	"unicode"

	"github.com/gin-contrib/multitemplate"
	"github.com/gin-gonic/gin"
	"github.com/pkg/errors"
	log "github.com/sirupsen/logrus"
	"github.com/yargevad/filepathx"
)

const DefaultBaseDir = "templates"

type Context interface {
	GetGinContext() *gin.Context
}

type Builder[T Context] interface {
	Build(name string) *Template[T]
}

type Manager[T Context] struct {
	re      multitemplate.Renderer
	baseDir string
	funcs   template.FuncMap
	views   []*Views[T]
	tpls    map[string]*template.Template
	mux     sync.RWMutex
}

func NewManager[T Context](re multitemplate.Renderer) *Manager[T] {
	return &Manager[T]{
		re:      re,
		baseDir: DefaultBaseDir,
		funcs:   template.FuncMap{},
		tpls:    map[string]*template.Template{},
	}
}

func (s *Manager[T]) WithBaseDir(dir string) *Manager[T] {
	s.baseDir = dir
	return s
}

// WithHelper exposes every exported method of h to templates under its lower-camel name.
func (s *Manager[T]) WithHelper(h any) *Manager[T] {
	v := reflect.ValueOf(h)
	t := v.Type()
	for i := 0; i < t.NumMethod(); i++ {
		s.funcs[lowerFirst(t.Method(i).Name)] = v.Method(i).Interface()
	}
	return s
}

func (s *Manager[T]) WithFuncs(f template.FuncMap) *Manager[T] {
	for k, v := range f {
		s.funcs[k] = v
	}
	return s
}

func lowerFirst(s string) string {
	r := []rune(s)
	r[0] = unicode.ToLower(r[0])
	return string(r)
}

// MustRegisterViews registers views matched by pattern under <base>/views. Pattern is a
// glob without extension, "**" matches nested directories.
func (s *Manager[T]) MustRegisterViews(pattern string) *Views[T] {
	if strings.TrimSpace(pattern) == "" {
		panic("empty view pattern")
	}
	v := &Views[T]{m: s, pattern: pattern}
	s.views = append(s.views, v)
	return v
}

func (s *Manager[T]) Build(name string) *Template[T] {
	return &Template[T]{m: s, name: name}
}

func (s *Manager[T]) partials() ([]string, error) {
	return filepathx.Glob(filepath.Join(s.baseDir, "partials", "**", "*.html"))
}

// Init parses all registered views. It must run after every handler has registered its
// views and before serving.
func (s *Manager[T]) Init() error {
	partials, err := s.partials()
	if err != nil {
		return errors.Wrap(err, "failed to glob partials")
	}
	viewsDir := filepath.Join(s.baseDir, "views")
	s.mux.Lock()
	defer s.mux.Unlock()
	for _, v := range s.views {
		files, err := filepathx.Glob(filepath.Join(viewsDir, v.pattern+".html"))
		if err != nil {
			return errors.Wrapf(err, "failed to glob views %v", v.pattern)
		}
		for _, f := range files {
			rel, err := filepath.Rel(viewsDir, f)
			if err != nil {
				return err
			}
			name := strings.TrimSuffix(filepath.ToSlash(rel), ".html")
			key := v.key(name)
			if _, ok := s.tpls[key]; ok {
				continue
			}
			var set []string
			if v.layout != "" {
				set = append(set, filepath.Join(s.baseDir, "layouts", v.layout+".html"))
			}
			set = append(set, f)
			set = append(set, partials...)
			t, err := s.parse(key, set)
			if err != nil {
				return errors.Wrapf(err, "failed to parse view %v", key)
			}
			s.tpls[key] = t
			log.WithField("view", key).Debug("view registered")
		}
	}
	return nil
}

func (s *Manager[T]) parse(key string, files []string) (t *template.Template, err error) {
	defer func() {
		if r := recover(); r != nil {
			err = errors.Errorf("%v", r)
		}
	}()
	return s.re.AddFromFilesFuncs(key, s.funcs, files...), nil
}

func (s *Manager[T]) get(key string) (*template.Template, bool) {
	s.mux.RLock()
	defer s.mux.RUnlock()
	t, ok := s.tpls[key]
	return t, ok
}

type Views[T Context] struct {
	m       *Manager[T]
	pattern string
	layout  string
}

func (s *Views[T]) WithLayout(name string) *Views[T] {
	s.layout = name
	return s
}

func (s *Views[T]) key(name string) string {
	if s.layout == "" {
		return name
	}
	return s.layout + ":" + name
}

func (s *Views[T]) Build(name string) *Template[T] {
	return &Template[T]{m: s.m, name: s.key(name)}
}

type Template[T Context] struct {
	m    *Manager[T]
	name string
}

func (s *Template[T]) Name() string {
	return s.name
}

func (s *Template[T]) HTML(code int, c T) {
	c.GetGinContext().HTML(code, s.name, c)
}

func (s *Template[T]) ToString(c T) (string, error) {
	t, ok := s.m.get(s.name)
	if !ok {
		return "", errors.Errorf("view %v not registered", s.name)
	}
	var b bytes.Buffer
	if err := t.Execute(&b, c); err != nil {
		return "", err
	}
	return b.String(), nil
}
