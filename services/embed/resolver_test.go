package embed

import (
	"strings"
	"testing"
	"time"

	"github.com/filoflix/web-ui/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func strPtr(s string) *string {
	return &s
}

func newTestResolver() *Resolver {
	return NewResolverWithBlocklist(DefaultBlockedDomains)
}

func TestClassify(t *testing.T) {
	tests := []struct {
		in   string
		want Variant
	}{
		{"", VariantNone},
		{"   ", VariantNone},
		{`<iframe src="https://a.com/x"></iframe>`, VariantIframeHTML},
		{`<IFRAME SRC="https://a.com/x"></IFRAME>`, VariantIframeHTML},
		{"https://example.com/video.mp4", VariantDirectURL},
		{"http://example.com/video.mp4", VariantDirectURL},
		{"<video src='x.mp4'></video>", VariantOpaque},
		{"some-id-123", VariantOpaque},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, Classify(tt.in), tt.in)
	}
}

func TestResolve_Empty(t *testing.T) {
	r := newTestResolver()
	assert.Equal(t, KindEmpty, r.Resolve(nil, 0).Kind)
	assert.Equal(t, KindEmpty, r.Resolve(&models.Content{Type: models.ContentTypeMovie}, 0).Kind)
	assert.Equal(t, KindEmpty, r.Resolve(&models.Content{Type: models.ContentTypeMovie, VideoURL: "  "}, 0).Kind)
	assert.Equal(t, KindEmpty, r.ResolveDefault(&models.Content{Type: models.ContentTypeSeries}).Kind)
}

func TestResolve_ExternalItemsAreNotPlayable(t *testing.T) {
	r := newTestResolver()
	item := &models.Content{Type: models.ContentTypeMovie, VideoURL: "https://a.com/x", Source: models.ContentSourceOMDB}
	assert.Equal(t, KindEmpty, r.Resolve(item, 0).Kind)
}

func TestResolve_YoutubeWatchURL(t *testing.T) {
	r := newTestResolver()
	res := r.Resolve(&models.Content{Type: models.ContentTypeTrailer, VideoURL: "https://www.youtube.com/watch?v=XYZ123"}, 0)
	require.Equal(t, KindRenderable, res.Kind)
	assert.Equal(t, VariantDirectURL, res.Variant)
	assert.Equal(t, "https://www.youtube.com/embed/XYZ123", res.Src)
	assert.Contains(t, string(res.HTML), `src="https://www.youtube.com/embed/XYZ123"`)
	assert.Contains(t, string(res.HTML), `id="video-iframe"`)
}

func TestResolve_YoutubeShortURL(t *testing.T) {
	r := newTestResolver()
	res := r.ResolveReference("https://youtu.be/abcDEF?t=10")
	require.Equal(t, KindRenderable, res.Kind)
	assert.Equal(t, "https://www.youtube.com/embed/abcDEF", res.Src)
}

func TestResolve_MegaFileURL(t *testing.T) {
	r := newTestResolver()
	res := r.ResolveReference("https://mega.nz/file/abc#key")
	require.Equal(t, KindRenderable, res.Kind)
	assert.Equal(t, "https://mega.nz/embed/abc#key", res.Src)

	res = r.ResolveReference("https://mega.nz/embed/abc#key")
	assert.Equal(t, "https://mega.nz/embed/abc#key", res.Src)
}

func TestResolve_GenericURLIsWrapped(t *testing.T) {
	r := newTestResolver()
	res := r.ResolveReference("https://player.example.com/v/1?a=1&b=2")
	require.Equal(t, KindRenderable, res.Kind)
	assert.Equal(t, "https://player.example.com/v/1?a=1&b=2", res.Src)
	assert.Contains(t, string(res.HTML), `src="https://player.example.com/v/1?a=1&amp;b=2"`)
	assert.Contains(t, string(res.HTML), "allowfullscreen")
}

func TestResolve_MegaIframeIsNormalized(t *testing.T) {
	r := newTestResolver()
	in := `<iframe width="640" height="360" frameborder="0" sandbox="allow-scripts" src="https://mega.nz/file/abc#key"></iframe>`
	res := r.ResolveReference(in)
	require.Equal(t, KindRenderable, res.Kind)
	assert.Equal(t, VariantIframeHTML, res.Variant)
	html := string(res.HTML)
	assert.Contains(t, html, "https://mega.nz/embed/abc#key")
	assert.NotContains(t, html, "/file/")
	assert.NotContains(t, html, "sandbox")
	assert.NotContains(t, html, "frameborder")
	assert.Contains(t, html, `width="100%"`)
	assert.Contains(t, html, `height="100%"`)
	assert.Contains(t, html, `id="video-iframe"`)
	assert.Contains(t, html, "allowfullscreen")
	assert.Contains(t, html, "background: black;")
	assert.Equal(t, "https://mega.nz/embed/abc#key", res.Src)
}

func TestResolve_OpaquePassthrough(t *testing.T) {
	r := newTestResolver()
	in := `<video src='https://cdn.example.com/a.mp4' controls></video>`
	res := r.ResolveReference(in)
	require.Equal(t, KindRenderable, res.Kind)
	assert.Equal(t, VariantOpaque, res.Variant)
	assert.Equal(t, in, string(res.HTML))
	assert.Equal(t, "https://cdn.example.com/a.mp4", res.Src)

	res = r.ResolveReference("abc123")
	require.Equal(t, KindRenderable, res.Kind)
	assert.Equal(t, "abc123", string(res.HTML))
}

func TestResolve_Blocked(t *testing.T) {
	r := newTestResolver()
	for _, in := range []string{
		"https://pornhub.com/view/1",
		"https://www.xvideos.com/v/1",
		`<iframe src="https://embed.redtube.com/?id=1"></iframe>`,
		`<object data="xnxx.com/v/1"></object>`,
		`<iframe src="https://ok.example/e"></iframe><iframe src="https://www.pornhub.com/embed/x"></iframe>`,
	} {
		res := r.ResolveReference(in)
		assert.Equal(t, KindBlocked, res.Kind, in)
		assert.Empty(t, res.HTML, in)
	}
}

func TestResolve_BlocklistMatchesHostNotSubstring(t *testing.T) {
	r := newTestResolver()
	res := r.ResolveReference("https://notpornhub.com.example.org/v/1")
	assert.Equal(t, KindRenderable, res.Kind)
}

func TestResolve_MultipleFramesAllAllowed(t *testing.T) {
	r := newTestResolver()
	res := r.ResolveReference(`<iframe src="https://a.example/e"></iframe><iframe src="https://b.example/e"></iframe>`)
	assert.Equal(t, KindRenderable, res.Kind)
	assert.Equal(t, "https://a.example/e", res.Src)
	assert.Contains(t, string(res.HTML), "https://b.example/e")
}

func TestResolve_CustomBlocklist(t *testing.T) {
	r := NewResolverWithBlocklist([]string{" Example.COM ", ""})
	assert.Equal(t, KindBlocked, r.ResolveReference("https://cdn.example.com/a").Kind)
	assert.Equal(t, KindRenderable, r.ResolveReference("https://pornhub.com/a").Kind)
}

func seriesItem(raw string) *models.Content {
	return &models.Content{Type: models.ContentTypeSeries, VideoURL: raw}
}

func TestResolve_SeriesEpisodes(t *testing.T) {
	r := newTestResolver()
	item := seriesItem(`[{"episode_number":1,"title":"Pilot","embed_code":"https://youtu.be/AAA"},{"episode_number":2,"title":"Two","video_url":"https://youtu.be/BBB"}]`)

	res := r.Resolve(item, 0)
	assert.Equal(t, KindEpisodePicker, res.Kind)
	assert.Len(t, res.Episodes, 2)
	assert.Empty(t, res.HTML)

	res = r.Resolve(item, 2)
	require.Equal(t, KindRenderable, res.Kind)
	assert.Equal(t, "https://www.youtube.com/embed/BBB", res.Src)
	require.NotNil(t, res.Episode)
	assert.Equal(t, "Two", res.Episode.Title)
	assert.Len(t, res.Episodes, 2)

	res = r.Resolve(item, 7)
	assert.Equal(t, KindEmpty, res.Kind)

	res = r.ResolveDefault(item)
	require.Equal(t, KindRenderable, res.Kind)
	assert.Equal(t, 1, res.Episode.EpisodeNumber)
	assert.Equal(t, "https://www.youtube.com/embed/AAA", res.Src)
}

func TestResolve_SeriesWithEmptyEpisodeReference(t *testing.T) {
	r := newTestResolver()
	item := seriesItem(`[{"episode_number":1,"title":"Pilot","embed_code":""}]`)
	res := r.Resolve(item, 1)
	assert.Equal(t, KindEmpty, res.Kind)
}

func TestResolve_SeriesFallsBackToWholeField(t *testing.T) {
	r := newTestResolver()
	for _, raw := range []string{"[]", "[not json", "https://youtu.be/CCC"} {
		res := r.Resolve(seriesItem(raw), 0)
		assert.NotEqual(t, KindEpisodePicker, res.Kind, raw)
	}
	res := r.Resolve(seriesItem("https://youtu.be/CCC"), 0)
	assert.Equal(t, KindRenderable, res.Kind)
	assert.Equal(t, "https://www.youtube.com/embed/CCC", res.Src)
}

func TestResolve_MovieWithArrayIsNotEpisodic(t *testing.T) {
	r := newTestResolver()
	item := &models.Content{Type: models.ContentTypeMovie, VideoURL: `[{"episode_number":1,"embed_code":"x"}]`}
	res := r.Resolve(item, 0)
	assert.NotEqual(t, KindEpisodePicker, res.Kind)
	assert.Equal(t, VariantOpaque, res.Variant)
}

func TestPlayerConfig_RetryDelay(t *testing.T) {
	c := DefaultPlayerConfig()
	assert.Equal(t, time.Duration(0), c.RetryDelay(0))
	assert.Equal(t, time.Second, c.RetryDelay(1))
	assert.Equal(t, 2*time.Second, c.RetryDelay(2))
	assert.Equal(t, 4*time.Second, c.RetryDelay(3))
	assert.Equal(t, 5*time.Second, c.RetryDelay(4))
	assert.Equal(t, 5*time.Second, c.RetryDelay(40))
}

func TestPlayerConfig_CanRetry(t *testing.T) {
	c := DefaultPlayerConfig()
	assert.True(t, c.CanRetry(0))
	assert.True(t, c.CanRetry(2))
	assert.False(t, c.CanRetry(3))
}

func TestPlayerConfig_CacheBust(t *testing.T) {
	c := DefaultPlayerConfig()
	assert.Equal(t, "https://a.com/v?_retry=1", c.CacheBust("https://a.com/v", 1))
	out := c.CacheBust("https://a.com/v?x=1", 2)
	assert.True(t, strings.Contains(out, "x=1"), out)
	assert.True(t, strings.Contains(out, "_retry=2"), out)
	assert.Equal(t, "https://a.com/v?_retry=3", c.CacheBust("https://a.com/v?_retry=2", 3))
	assert.Equal(t, "not a url", c.CacheBust("not a url", 1))
}

func TestPlayerConfig_View(t *testing.T) {
	v := DefaultPlayerConfig().View()
	assert.Equal(t, int64(800), v.LoadTimeoutMs)
	assert.Equal(t, []int64{1000, 2000, 4000}, v.RetryDelaysMs)
	assert.Equal(t, PlayerElementID, v.PlayerElementID)
}

func TestDownloadURL(t *testing.T) {
	item := &models.Content{VideoURL: "https://a.com/embed", DownloadURL: strPtr("https://a.com/item.mp4")}
	assert.Equal(t, "https://a.com/item.mp4", DownloadURL(item, nil))
	assert.Equal(t, "https://a.com/item.mp4", DownloadURL(item, &models.Episode{EmbedCode: "https://a.com/e1"}))
	assert.Equal(t, "https://a.com/ep.mp4", DownloadURL(item, &models.Episode{DownloadURL: "https://a.com/ep.mp4"}))
	assert.Equal(t, "", DownloadURL(&models.Content{VideoURL: "https://a.com/embed"}, &models.Episode{EmbedCode: "x"}))
}
