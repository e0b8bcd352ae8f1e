package embed

import (
	"fmt"
	"html"
	"net/url"
	"regexp"
	"strings"

	"github.com/PuerkitoBio/goquery"
)

// Variant is the shape of a single playable reference.
type Variant int

const (
	VariantNone Variant = iota
	VariantIframeHTML
	VariantDirectURL
	VariantOpaque
)

func (v Variant) String() string {
	switch v {
	case VariantIframeHTML:
		return "iframe"
	case VariantDirectURL:
		return "url"
	case VariantOpaque:
		return "opaque"
	}
	return "none"
}

const (
	PlayerElementID = "video-iframe"
	iframeStyle     = "width: 100%; height: 100%; border: none; background: black;"
	iframeAllow     = "accelerometer; autoplay; clipboard-write; encrypted-media; gyroscope; picture-in-picture; fullscreen"
)

var (
	youtubeIDRegexp = regexp.MustCompile(`(?:youtube\.com/watch\?v=|youtu\.be/)([^&\n?#]+)`)
	srcAttrRegexp   = regexp.MustCompile(`src=["']([^"']+)["']`)
)

// Classify is the single parse step deciding how a reference is rendered.
func Classify(s string) Variant {
	s = strings.TrimSpace(s)
	switch {
	case s == "":
		return VariantNone
	case strings.Contains(strings.ToLower(s), "<iframe"):
		return VariantIframeHTML
	case strings.HasPrefix(s, "http"):
		return VariantDirectURL
	default:
		return VariantOpaque
	}
}

func hostOf(s string) string {
	u, err := url.Parse(strings.TrimSpace(s))
	if err != nil {
		return ""
	}
	return strings.ToLower(u.Hostname())
}

func hostIs(host, domain string) bool {
	return host == domain || strings.HasSuffix(host, "."+domain)
}

// YoutubeID extracts the video id from watch and short links.
func YoutubeID(s string) (string, bool) {
	host := hostOf(s)
	if !hostIs(host, "youtube.com") && !hostIs(host, "youtu.be") {
		return "", false
	}
	m := youtubeIDRegexp.FindStringSubmatch(s)
	if m == nil || m[1] == "" {
		return "", false
	}
	return m[1], true
}

func YoutubeEmbedURL(id string) string {
	return "https://www.youtube.com/embed/" + id
}

// MegaEmbedURL turns Mega.nz file links into embed links. Links that are already embed
// links, or are not Mega.nz links at all, are returned unchanged.
func MegaEmbedURL(s string) string {
	if !hostIs(hostOf(s), "mega.nz") {
		return s
	}
	switch {
	case strings.Contains(s, "mega.nz/file/"):
		return strings.Replace(s, "mega.nz/file/", "mega.nz/embed/", 1)
	case strings.Contains(s, "mega.nz/#!"):
		return strings.Replace(s, "mega.nz/#!", "mega.nz/embed#!", 1)
	}
	return s
}

// ExtractSrc returns the first src="..." attribute value found in s.
func ExtractSrc(s string) (string, bool) {
	m := srcAttrRegexp.FindStringSubmatch(s)
	if m == nil {
		return "", false
	}
	return m[1], true
}

func wrapURL(src string) string {
	return fmt.Sprintf(`<iframe id="%s" src="%s" width="100%%" height="100%%" style="%s" allow="%s" allowfullscreen></iframe>`,
		PlayerElementID, html.EscapeString(src), iframeStyle, iframeAllow)
}

// resolveURL handles the DirectURL variant and returns the embed src.
func resolveURL(s string) string {
	if id, ok := YoutubeID(s); ok {
		return YoutubeEmbedURL(id)
	}
	return MegaEmbedURL(s)
}

// normalizeIframe rewrites iframe markup so it fills the player: no sandbox or
// frameborder, full size, black borderless style, fullscreen allowed and a stable id on
// the first frame. It returns the rewritten markup and the src of every frame, first
// frame first.
func normalizeIframe(s string) (string, []string, error) {
	doc, err := goquery.NewDocumentFromReader(strings.NewReader(s))
	if err != nil {
		return "", nil, err
	}
	frames := doc.Find("iframe")
	if frames.Length() == 0 {
		if src, ok := ExtractSrc(s); ok {
			return s, []string{src}, nil
		}
		return s, nil, nil
	}
	var srcs []string
	frames.Each(func(i int, f *goquery.Selection) {
		f.RemoveAttr("sandbox")
		f.RemoveAttr("frameborder")
		f.SetAttr("width", "100%")
		f.SetAttr("height", "100%")
		f.SetAttr("style", iframeStyle)
		if _, ok := f.Attr("allowfullscreen"); !ok {
			f.SetAttr("allowfullscreen", "")
		}
		if src, ok := f.Attr("src"); ok {
			src = MegaEmbedURL(strings.TrimSpace(src))
			f.SetAttr("src", src)
			srcs = append(srcs, src)
		}
		if i == 0 {
			f.SetAttr("id", PlayerElementID)
		}
	})
	out, err := doc.Find("body").Html()
	if err != nil {
		return "", nil, err
	}
	return strings.TrimSpace(out), srcs, nil
}
