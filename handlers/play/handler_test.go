package play

import (
	"context"
	"flag"
	"net/http"
	"net/http/httptest"
	"testing"

	hc "github.com/filoflix/web-ui/handlers/common"
	"github.com/filoflix/web-ui/models"
	"github.com/filoflix/web-ui/services/catalog"
	"github.com/filoflix/web-ui/services/common"
	"github.com/filoflix/web-ui/services/embed"
	"github.com/filoflix/web-ui/services/template"
	"github.com/filoflix/web-ui/services/web"
	"github.com/gin-contrib/multitemplate"
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

func (s *memStore) Get(_ context.Context, id uuid.UUID) (*models.Content, error) {
	for _, it := range s.items {
		if it.ID == id {
			return it, nil
		}
	}
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

func setup(t *testing.T, items ...*models.Content) *gin.Engine {
	return setupWithPlayer(t, embed.DefaultPlayerConfig(), items...)
}

func setupWithPlayer(t *testing.T, pc *embed.PlayerConfig, items ...*models.Content) *gin.Engine {
	gin.SetMode(gin.TestMode)
	set := flag.NewFlagSet("test", flag.ContinueOnError)
	set.String(common.DomainFlag, "http://localhost:8080", "")
	c := cli.NewContext(nil, set, nil)

	re := multitemplate.NewRenderer()
	tm := template.NewManager[*web.Context](re).
		WithBaseDir("../../templates").
		WithHelper(web.NewHelper(c)).
		WithHelper(hc.NewNavHelper())
	r := gin.New()
	r.HTMLRender = re
	RegisterHandler(r, tm,
		catalog.NewWithStore(&memStore{items: items}),
		embed.NewResolverWithBlocklist(embed.DefaultBlockedDomains),
		pc,
	)
	require.NoError(t, tm.Init())
	return r
}

func get(r *gin.Engine, target string) *httptest.ResponseRecorder {
	w := httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, target, nil))
	return w
}

func TestPlay_Movie(t *testing.T) {
	download := "https://example.com/night-run.mp4"
	item := &models.Content{
		ID:          uuid.NewV4(),
		Title:       "Night Run",
		Type:        models.ContentTypeMovie,
		VideoURL:    "https://www.youtube.com/watch?v=XYZ123",
		DownloadURL: &download,
	}
	r := setup(t, item)
	w := get(r, "/play/"+item.ID.String())
	assert.Equal(t, http.StatusOK, w.Code)
	body := w.Body.String()
	assert.Contains(t, body, `src="https://www.youtube.com/embed/XYZ123"`)
	assert.Contains(t, body, `data-kind="renderable"`)
	assert.Contains(t, body, "window.playerConfig")
	assert.Contains(t, body, download)
}

func TestPlay_SeriesEpisodes(t *testing.T) {
	item := &models.Content{
		ID:       uuid.NewV4(),
		Title:    "Deep Space",
		Type:     models.ContentTypeSeries,
		VideoURL: `[{"episode_number":1,"title":"Pilot","embed_code":"https://youtu.be/AAA"},{"episode_number":2,"title":"Two","embed_code":"https://youtu.be/BBB"}]`,
	}
	r := setup(t, item)

	w := get(r, "/play/"+item.ID.String())
	assert.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), `data-kind="episodes"`)
	assert.Contains(t, w.Body.String(), "?episode=2")

	w = get(r, "/play/"+item.ID.String()+"?episode=2")
	assert.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), "https://www.youtube.com/embed/BBB")
	assert.Contains(t, w.Body.String(), "Episode 2")
}

func TestPlay_PlayerControls(t *testing.T) {
	item := &models.Content{
		ID:       uuid.NewV4(),
		Title:    "Night Run",
		Type:     models.ContentTypeMovie,
		VideoURL: "https://www.youtube.com/watch?v=XYZ123",
	}
	r := setup(t, item)
	body := get(r, "/play/"+item.ID.String()).Body.String()
	assert.Contains(t, body, `id="player-loading"`)
	assert.Contains(t, body, `class="player-error hidden" id="player-error"`)
	assert.Contains(t, body, `class="btn" id="player-retry"`)
	assert.Contains(t, body, `id="player-close"`)
	assert.Contains(t, body, `"loadTimeoutMs":800`)
	assert.Contains(t, body, `"maxRetries":3`)
	assert.Contains(t, body, `"retryDelaysMs":[1000,2000,4000]`)
	assert.Contains(t, body, `"cacheBustParam":"_retry"`)
	assert.Contains(t, body, `src="/assets/player.js"`)
}

func TestPlay_RetryHiddenWithoutRetries(t *testing.T) {
	item := &models.Content{
		ID:       uuid.NewV4(),
		Title:    "Night Run",
		Type:     models.ContentTypeMovie,
		VideoURL: "https://www.youtube.com/watch?v=XYZ123",
	}
	pc := embed.DefaultPlayerConfig()
	pc.MaxRetries = 0
	r := setupWithPlayer(t, pc, item)
	body := get(r, "/play/"+item.ID.String()).Body.String()
	assert.Contains(t, body, `class="btn hidden" id="player-retry"`)
	assert.Contains(t, body, `"maxRetries":0`)
	assert.Contains(t, body, `id="player-close"`)
}

func TestPlay_NoPlayerControlsWhenBlocked(t *testing.T) {
	item := &models.Content{
		ID:       uuid.NewV4(),
		Title:    "Bad",
		Type:     models.ContentTypeMovie,
		VideoURL: "https://www.pornhub.com/view_video.php?viewkey=1",
	}
	body := get(setup(t, item), "/play/"+item.ID.String()).Body.String()
	assert.NotContains(t, body, `id="player-retry"`)
	assert.NotContains(t, body, `id="player-loading"`)
	assert.NotContains(t, body, "window.playerConfig")
	assert.Contains(t, body, `id="player-close"`)
}

func TestPlay_Blocked(t *testing.T) {
	item := &models.Content{
		ID:       uuid.NewV4(),
		Title:    "Bad",
		Type:     models.ContentTypeMovie,
		VideoURL: "https://www.pornhub.com/view_video.php?viewkey=1",
	}
	r := setup(t, item)
	w := get(r, "/play/"+item.ID.String())
	assert.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), `data-kind="blocked"`)
	assert.NotContains(t, w.Body.String(), "<iframe")
}

func TestPlay_NotFound(t *testing.T) {
	r := setup(t)
	w := get(r, "/play/"+uuid.NewV4().String())
	assert.Equal(t, http.StatusNotFound, w.Code)
	assert.Contains(t, w.Body.String(), "Content not found.")

	w = get(r, "/play/not-a-uuid")
	assert.Equal(t, http.StatusNotFound, w.Code)
}

func TestInfo(t *testing.T) {
	r := setup(t)
	w := get(r, "/info/tt0133093")
	assert.Equal(t, http.StatusFound, w.Code)
	assert.Equal(t, "https://www.imdb.com/title/tt0133093/", w.Header().Get("Location"))

	w = get(r, "/info/javascript:alert(1)")
	assert.Equal(t, http.StatusNotFound, w.Code)
}
