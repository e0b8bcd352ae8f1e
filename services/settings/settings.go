package settings

import (
	"context"
	"fmt"
	"strings"
	"sync/atomic"
	"time"

	"github.com/filoflix/web-ui/models"
	"github.com/pkg/errors"
	log "github.com/sirupsen/logrus"
	cs "github.com/webtor-io/common-services"
	"github.com/webtor-io/lazymap"
)

var ErrNoDB = errors.New("db not initialized")

// Store is the key/value table behind site settings and suggestions.
type Store interface {
	Get(ctx context.Context, keys []string) ([]*models.AdminSetting, error)
	ListByPrefix(ctx context.Context, prefix string) ([]*models.AdminSetting, error)
	Upsert(ctx context.Context, key, value string) error
	Insert(ctx context.Context, key, value string) error
}

type pgStore struct {
	pg *cs.PG
}

func NewPGStore(pg *cs.PG) Store {
	return &pgStore{pg: pg}
}

func (s *pgStore) Get(ctx context.Context, keys []string) ([]*models.AdminSetting, error) {
	db := s.pg.Get()
	if db == nil {
		return nil, ErrNoDB
	}
	return models.GetAdminSettings(ctx, db, keys)
}

func (s *pgStore) ListByPrefix(ctx context.Context, prefix string) ([]*models.AdminSetting, error) {
	db := s.pg.Get()
	if db == nil {
		return nil, ErrNoDB
	}
	return models.GetAdminSettingsByPrefix(ctx, db, prefix)
}

func (s *pgStore) Upsert(ctx context.Context, key, value string) error {
	db := s.pg.Get()
	if db == nil {
		return ErrNoDB
	}
	return models.UpsertAdminSetting(ctx, db, key, value)
}

func (s *pgStore) Insert(ctx context.Context, key, value string) error {
	db := s.pg.Get()
	if db == nil {
		return ErrNoDB
	}
	return models.InsertAdminSetting(ctx, db, key, value)
}

const (
	KeyFacebook  = "facebook_url"
	KeyInstagram = "instagram_url"
	KeyYoutube   = "youtube_url"
	KeyX         = "x_url"
)

var socialKeys = []string{KeyFacebook, KeyInstagram, KeyYoutube, KeyX}

type SocialLinks struct {
	Facebook  string `form:"facebook_url" json:"facebook_url"`
	Instagram string `form:"instagram_url" json:"instagram_url"`
	Youtube   string `form:"youtube_url" json:"youtube_url"`
	X         string `form:"x_url" json:"x_url"`
}

func (s *SocialLinks) Empty() bool {
	return s.Facebook == "" && s.Instagram == "" && s.Youtube == "" && s.X == ""
}

func (s *SocialLinks) values() map[string]string {
	return map[string]string{
		KeyFacebook:  s.Facebook,
		KeyInstagram: s.Instagram,
		KeyYoutube:   s.Youtube,
		KeyX:         s.X,
	}
}

type Settings struct {
	store Store
	links lazymap.LazyMap[*SocialLinks]
	gen   atomic.Int64
}

func New(store Store) *Settings {
	return &Settings{
		store: store,
		links: lazymap.New[*SocialLinks](&lazymap.Config{
			Expire:      time.Minute,
			ErrorExpire: 10 * time.Second,
		}),
	}
}

// SocialLinks returns the footer links. Unset keys are empty strings.
func (s *Settings) SocialLinks(ctx context.Context) (*SocialLinks, error) {
	key := fmt.Sprintf("social:%d", s.gen.Load())
	return s.links.Get(key, func() (*SocialLinks, error) {
		return s.socialLinks(ctx)
	})
}

func (s *Settings) socialLinks(ctx context.Context) (*SocialLinks, error) {
	rows, err := s.store.Get(ctx, socialKeys)
	if err != nil {
		return nil, errors.Wrap(err, "failed to get social links")
	}
	sl := &SocialLinks{}
	for _, r := range rows {
		v := r.StringValue()
		switch r.SettingKey {
		case KeyFacebook:
			sl.Facebook = v
		case KeyInstagram:
			sl.Instagram = v
		case KeyYoutube:
			sl.Youtube = v
		case KeyX:
			sl.X = v
		}
	}
	return sl, nil
}

// SaveSocialLinks writes every key. Keys written before a failure stay written and are
// visible on the next read.
func (s *Settings) SaveSocialLinks(ctx context.Context, sl *SocialLinks) error {
	defer s.gen.Add(1)
	for _, k := range socialKeys {
		v := strings.TrimSpace(sl.values()[k])
		if err := s.store.Upsert(ctx, k, v); err != nil {
			return errors.Wrapf(err, "failed to save %v", k)
		}
	}
	log.Info("social links updated")
	return nil
}
