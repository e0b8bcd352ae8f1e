package suggestion

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"
	"time"

	"github.com/filoflix/web-ui/services/settings"
	"github.com/google/uuid"
	"github.com/pkg/errors"
	"github.com/redis/go-redis/v9"
	log "github.com/sirupsen/logrus"
	"github.com/urfave/cli"
)

const throttleFlag = "suggestion-throttle"

const (
	KeyPrefix     = "suggestion_"
	AnonymousName = "Anonymous"
	maxTextLength = 2000
)

var (
	ErrEmpty     = errors.New("suggestion is empty")
	ErrThrottled = errors.New("too many suggestions, try again later")
)

func RegisterFlags(f []cli.Flag) []cli.Flag {
	return append(f,
		cli.DurationFlag{
			Name:   throttleFlag,
			Usage:  "min interval between suggestions from one client",
			Value:  time.Minute,
			EnvVar: "SUGGESTION_THROTTLE",
		},
	)
}

type Suggestion struct {
	Key       string    `json:"-"`
	Name      string    `json:"name"`
	Text      string    `json:"suggestion"`
	Timestamp time.Time `json:"timestamp"`
}

// Throttle reports whether a client may submit now.
type Throttle interface {
	Allow(ctx context.Context, client string) (bool, error)
}

type redisThrottle struct {
	cl  redis.UniversalClient
	ttl time.Duration
}

func NewRedisThrottle(cl redis.UniversalClient, ttl time.Duration) Throttle {
	return &redisThrottle{cl: cl, ttl: ttl}
}

func (s *redisThrottle) Allow(ctx context.Context, client string) (bool, error) {
	return s.cl.SetNX(ctx, "filoflix:suggestion:"+client, 1, s.ttl).Result()
}

type Service struct {
	store    settings.Store
	throttle Throttle
	now      func() time.Time
}

// New builds the service. A nil throttle accepts every submission.
func New(store settings.Store, throttle Throttle) *Service {
	return &Service{
		store:    store,
		throttle: throttle,
		now:      time.Now,
	}
}

func NewFromCLI(c *cli.Context, store settings.Store, cl redis.UniversalClient) *Service {
	var th Throttle
	if cl != nil && c.Duration(throttleFlag) > 0 {
		th = NewRedisThrottle(cl, c.Duration(throttleFlag))
	}
	return New(store, th)
}

func makeKey(t time.Time) string {
	id := strings.ReplaceAll(uuid.NewString(), "-", "")
	return fmt.Sprintf("%v%d_%v", KeyPrefix, t.UnixMilli(), id[:8])
}

// Submit stores a suggestion under a fresh unique key. Throttle failures are logged and
// do not block the submission.
func (s *Service) Submit(ctx context.Context, client, name, text string) (*Suggestion, error) {
	text = strings.TrimSpace(text)
	if text == "" {
		return nil, ErrEmpty
	}
	if r := []rune(text); len(r) > maxTextLength {
		text = string(r[:maxTextLength])
	}
	name = strings.TrimSpace(name)
	if name == "" {
		name = AnonymousName
	}
	if s.throttle != nil && client != "" {
		ok, err := s.throttle.Allow(ctx, client)
		if err != nil {
			log.WithError(err).Warn("failed to check suggestion throttle")
		} else if !ok {
			return nil, ErrThrottled
		}
	}
	now := s.now().UTC()
	sg := &Suggestion{
		Key:       makeKey(now),
		Name:      name,
		Text:      text,
		Timestamp: now,
	}
	b, err := json.Marshal(sg)
	if err != nil {
		return nil, errors.Wrap(err, "failed to marshal suggestion")
	}
	if err := s.store.Insert(ctx, sg.Key, string(b)); err != nil {
		return nil, errors.Wrap(err, "failed to store suggestion")
	}
	log.WithField("key", sg.Key).Info("suggestion received")
	return sg, nil
}

// List returns stored suggestions, newest first. Rows that don't decode are skipped.
func (s *Service) List(ctx context.Context) ([]*Suggestion, error) {
	rows, err := s.store.ListByPrefix(ctx, KeyPrefix)
	if err != nil {
		return nil, errors.Wrap(err, "failed to list suggestions")
	}
	res := make([]*Suggestion, 0, len(rows))
	for _, r := range rows {
		sg := &Suggestion{}
		if err := json.Unmarshal([]byte(r.StringValue()), sg); err != nil {
			log.WithError(err).WithField("key", r.SettingKey).Warn("failed to decode suggestion")
			continue
		}
		sg.Key = r.SettingKey
		res = append(res, sg)
	}
	return res, nil
}
