package embed

import (
	"net/url"
	"strconv"
	"strings"
	"time"

	"github.com/filoflix/web-ui/models"
	"github.com/urfave/cli"
)

const (
	playerLoadTimeoutFlag    = "player-load-timeout"
	playerMaxRetriesFlag     = "player-max-retries"
	playerRetryBaseDelayFlag = "player-retry-base-delay"
	playerRetryMaxDelayFlag  = "player-retry-max-delay"
)

const cacheBustParam = "_retry"

func registerPlayerFlags(f []cli.Flag) []cli.Flag {
	return append(f,
		cli.DurationFlag{
			Name:   playerLoadTimeoutFlag,
			Usage:  "time after which the player loading overlay is hidden",
			Value:  800 * time.Millisecond,
			EnvVar: "PLAYER_LOAD_TIMEOUT",
		},
		cli.IntFlag{
			Name:   playerMaxRetriesFlag,
			Usage:  "max manual retries per playback",
			Value:  3,
			EnvVar: "PLAYER_MAX_RETRIES",
		},
		cli.DurationFlag{
			Name:   playerRetryBaseDelayFlag,
			Usage:  "first retry delay, doubled on every next attempt",
			Value:  time.Second,
			EnvVar: "PLAYER_RETRY_BASE_DELAY",
		},
		cli.DurationFlag{
			Name:   playerRetryMaxDelayFlag,
			Usage:  "retry delay cap",
			Value:  5 * time.Second,
			EnvVar: "PLAYER_RETRY_MAX_DELAY",
		},
	)
}

// PlayerConfig parameterizes the client-side player. The loading overlay is cleared
// after LoadTimeout whether or not the frame reports a load event.
type PlayerConfig struct {
	LoadTimeout    time.Duration
	MaxRetries     int
	RetryBaseDelay time.Duration
	RetryMaxDelay  time.Duration
}

func DefaultPlayerConfig() *PlayerConfig {
	return &PlayerConfig{
		LoadTimeout:    800 * time.Millisecond,
		MaxRetries:     3,
		RetryBaseDelay: time.Second,
		RetryMaxDelay:  5 * time.Second,
	}
}

func NewPlayerConfig(c *cli.Context) *PlayerConfig {
	d := DefaultPlayerConfig()
	if v := c.Duration(playerLoadTimeoutFlag); v > 0 {
		d.LoadTimeout = v
	}
	if v := c.Int(playerMaxRetriesFlag); v >= 0 {
		d.MaxRetries = v
	}
	if v := c.Duration(playerRetryBaseDelayFlag); v > 0 {
		d.RetryBaseDelay = v
	}
	if v := c.Duration(playerRetryMaxDelayFlag); v > 0 {
		d.RetryMaxDelay = v
	}
	return d
}

// RetryDelay returns the wait before the given 1-based retry attempt.
func (s *PlayerConfig) RetryDelay(attempt int) time.Duration {
	if attempt < 1 {
		return 0
	}
	d := s.RetryBaseDelay
	for i := 1; i < attempt; i++ {
		d *= 2
		if d >= s.RetryMaxDelay {
			return s.RetryMaxDelay
		}
	}
	if d > s.RetryMaxDelay {
		return s.RetryMaxDelay
	}
	return d
}

func (s *PlayerConfig) CanRetry(attempt int) bool {
	return attempt < s.MaxRetries
}

// CacheBust marks src with the attempt number so the embed host can't serve a cached
// failure. Query values already present in src are kept.
func (s *PlayerConfig) CacheBust(src string, attempt int) string {
	u, err := url.Parse(src)
	if err != nil || u.Host == "" {
		return src
	}
	q := u.Query()
	q.Set(cacheBustParam, strconv.Itoa(attempt))
	u.RawQuery = q.Encode()
	return u.String()
}

// DownloadURL never falls back to the embed reference.
func DownloadURL(item *models.Content, ep *models.Episode) string {
	if ep != nil && strings.TrimSpace(ep.DownloadURL) != "" {
		return strings.TrimSpace(ep.DownloadURL)
	}
	if item != nil && item.DownloadURL != nil {
		return strings.TrimSpace(*item.DownloadURL)
	}
	return ""
}

// PlayerView is what the player template consumes.
type PlayerView struct {
	LoadTimeoutMs   int64   `json:"loadTimeoutMs"`
	MaxRetries      int     `json:"maxRetries"`
	RetryDelaysMs   []int64 `json:"retryDelaysMs"`
	CacheBustParam  string  `json:"cacheBustParam"`
	PlayerElementID string  `json:"playerElementId"`
}

func (s *PlayerConfig) View() *PlayerView {
	delays := make([]int64, 0, s.MaxRetries)
	for i := 1; i <= s.MaxRetries; i++ {
		delays = append(delays, s.RetryDelay(i).Milliseconds())
	}
	return &PlayerView{
		LoadTimeoutMs:   s.LoadTimeout.Milliseconds(),
		MaxRetries:      s.MaxRetries,
		RetryDelaysMs:   delays,
		CacheBustParam:  cacheBustParam,
		PlayerElementID: PlayerElementID,
	}
}
