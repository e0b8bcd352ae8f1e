package embed

import (
	"html/template"
	"strings"

	"github.com/filoflix/web-ui/models"
	log "github.com/sirupsen/logrus"
	"github.com/urfave/cli"
)

const blockedDomainsFlag = "embed-blocked-domains"

var DefaultBlockedDomains = []string{"pornhub.com", "xvideos.com", "xnxx.com", "redtube.com"}

func RegisterFlags(f []cli.Flag) []cli.Flag {
	f = append(f,
		cli.StringSliceFlag{
			Name:   blockedDomainsFlag,
			Usage:  "domains that are never embedded into the player",
			EnvVar: "EMBED_BLOCKED_DOMAINS",
		},
	)
	return registerPlayerFlags(f)
}

// Kind is the terminal state of a resolution.
type Kind int

const (
	KindEmpty Kind = iota
	KindBlocked
	KindRenderable
	KindEpisodePicker
)

func (k Kind) String() string {
	switch k {
	case KindBlocked:
		return "blocked"
	case KindRenderable:
		return "renderable"
	case KindEpisodePicker:
		return "episodes"
	}
	return "empty"
}

type Resolution struct {
	Kind    Kind
	Variant Variant
	// HTML is ready-to-render player markup, set for KindRenderable only.
	HTML template.HTML
	// Src is the embed target when it could be determined.
	Src      string
	Episodes []models.Episode
	Episode  *models.Episode
}

func (r *Resolution) Playable() bool {
	return r.Kind == KindRenderable
}

type Resolver struct {
	blocked []string
}

func NewResolver(c *cli.Context) *Resolver {
	domains := c.StringSlice(blockedDomainsFlag)
	if len(domains) == 0 {
		domains = DefaultBlockedDomains
	}
	return NewResolverWithBlocklist(domains)
}

func NewResolverWithBlocklist(domains []string) *Resolver {
	var blocked []string
	for _, d := range domains {
		d = strings.ToLower(strings.TrimSpace(d))
		if d != "" {
			blocked = append(blocked, d)
		}
	}
	return &Resolver{blocked: blocked}
}

// Resolve turns a stored item into something the player can render. episode selects a
// series episode by number; zero means no choice was made yet, in which case an
// episodic series yields KindEpisodePicker. Resolve never fails: every miss degrades to
// the next fallback, ending in empty, blocked or an as-is passthrough.
func (s *Resolver) Resolve(item *models.Content, episode int) *Resolution {
	r := s.resolve(item, episode, false)
	observe(r)
	return r
}

// ResolveDefault is Resolve that plays the first episode instead of asking.
func (s *Resolver) ResolveDefault(item *models.Content) *Resolution {
	r := s.resolve(item, 0, true)
	observe(r)
	return r
}

func (s *Resolver) resolve(item *models.Content, episode int, firstByDefault bool) *Resolution {
	if item == nil || !item.HasVideo() {
		return &Resolution{Kind: KindEmpty}
	}
	vs := item.VideoSource()
	if !vs.Episodic() {
		return s.ResolveReference(vs.Reference)
	}
	var ep *models.Episode
	switch {
	case episode > 0:
		ep = models.FindEpisode(vs.Episodes, episode)
		if ep == nil {
			log.WithField("id", item.ID).WithField("episode", episode).Warn("episode not found")
			return &Resolution{Kind: KindEmpty, Episodes: vs.Episodes}
		}
	case firstByDefault:
		ep = &vs.Episodes[0]
	default:
		return &Resolution{Kind: KindEpisodePicker, Episodes: vs.Episodes}
	}
	r := s.ResolveReference(ep.PlayableReference())
	r.Episodes = vs.Episodes
	r.Episode = ep
	return r
}

// ResolveReference resolves a single playable reference.
func (s *Resolver) ResolveReference(ref string) *Resolution {
	ref = strings.TrimSpace(ref)
	v := Classify(ref)
	r := &Resolution{Variant: v}
	var srcs []string
	switch v {
	case VariantNone:
		r.Kind = KindEmpty
		return r
	case VariantIframeHTML:
		out, frames, err := normalizeIframe(ref)
		if err != nil {
			log.WithError(err).Warn("failed to parse iframe markup, rendering as-is")
			out = ref
			frames = nil
			if src, ok := ExtractSrc(ref); ok {
				frames = []string{src}
			}
		}
		r.HTML = template.HTML(out)
		if len(frames) > 0 {
			r.Src = frames[0]
		}
		srcs = frames
	case VariantDirectURL:
		r.Src = resolveURL(ref)
		r.HTML = template.HTML(wrapURL(r.Src))
	case VariantOpaque:
		if src, ok := ExtractSrc(ref); ok {
			r.Src = src
		}
		r.HTML = template.HTML(ref)
	}
	if len(srcs) == 0 && r.Src != "" {
		srcs = []string{r.Src}
	}
	if s.isBlocked(ref, srcs) {
		log.WithField("src", r.Src).Info("blocked embed source")
		return &Resolution{Kind: KindBlocked, Variant: v}
	}
	r.Kind = KindRenderable
	return r
}

// isBlocked matches the host of every src against the blocklist. The raw reference is
// searched for blocked domains only when no src has a host.
func (s *Resolver) isBlocked(raw string, srcs []string) bool {
	hosts := 0
	for _, src := range srcs {
		host := hostOf(src)
		if host == "" {
			continue
		}
		hosts++
		for _, d := range s.blocked {
			if hostIs(host, d) {
				return true
			}
		}
	}
	if hosts > 0 {
		return false
	}
	lower := strings.ToLower(raw)
	for _, d := range s.blocked {
		if strings.Contains(lower, d) {
			return true
		}
	}
	return false
}
