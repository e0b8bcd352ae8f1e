package sitemap

import (
	"context"
	"encoding/xml"
	"flag"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/filoflix/web-ui/models"
	"github.com/filoflix/web-ui/services/catalog"
	svc "github.com/filoflix/web-ui/services/common"
	"github.com/gin-gonic/gin"
	uuid "github.com/satori/go.uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/urfave/cli"
)

type memStore struct {
	items []*models.Content
}

func (s *memStore) List(_ context.Context) ([]*models.Content, error) {
	return s.items, nil
}

func (s *memStore) Get(_ context.Context, _ uuid.UUID) (*models.Content, error) {
	return nil, nil
}

func (s *memStore) Create(_ context.Context, _ *models.Content) error {
	return nil
}

func (s *memStore) Update(_ context.Context, _ *models.Content) error {
	return nil
}

func (s *memStore) Delete(_ context.Context, _ uuid.UUID) error {
	return nil
}

func TestSitemap(t *testing.T) {
	gin.SetMode(gin.TestMode)
	set := flag.NewFlagSet("test", flag.ContinueOnError)
	set.String(svc.DomainFlag, "https://filoflix.example/", "")

	adult := "18+"
	visible := &models.Content{
		ID:        uuid.NewV4(),
		Title:     "Night Run",
		Type:      models.ContentTypeMovie,
		UpdatedAt: time.Date(2024, 3, 1, 10, 0, 0, 0, time.UTC),
	}
	hidden := &models.Content{ID: uuid.NewV4(), Title: "Late", Type: models.ContentTypeMovie, AgeRating: &adult}

	r := gin.New()
	RegisterHandler(cli.NewContext(nil, set, nil), r, catalog.NewWithStore(&memStore{items: []*models.Content{visible, hidden}}))

	w := httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/sitemap.xml", nil))
	require.Equal(t, http.StatusOK, w.Code)

	var us URLSet
	require.NoError(t, xml.Unmarshal(w.Body.Bytes(), &us))
	locs := map[string]string{}
	for _, u := range us.URLs {
		locs[u.Loc] = u.LastMod
	}
	assert.Contains(t, locs, "https://filoflix.example/")
	assert.Contains(t, locs, "https://filoflix.example/movies")
	assert.Equal(t, "2024-03-01", locs["https://filoflix.example/play/"+visible.ID.String()])
	assert.NotContains(t, locs, "https://filoflix.example/play/"+hidden.ID.String())
}
