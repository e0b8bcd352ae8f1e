package catalog

import (
	"context"
	"fmt"
	"sync/atomic"
	"time"

	"github.com/filoflix/web-ui/models"
	"github.com/pkg/errors"
	uuid "github.com/satori/go.uuid"
	log "github.com/sirupsen/logrus"
	cs "github.com/webtor-io/common-services"
	"github.com/webtor-io/lazymap"
)

type Store interface {
	List(ctx context.Context) ([]*models.Content, error)
	Get(ctx context.Context, id uuid.UUID) (*models.Content, error)
	Create(ctx context.Context, item *models.Content) error
	Update(ctx context.Context, item *models.Content) error
	Delete(ctx context.Context, id uuid.UUID) error
}

type pgStore struct {
	pg *cs.PG
}

var ErrNoDB = errors.New("db not initialized")

func (s *pgStore) List(ctx context.Context) ([]*models.Content, error) {
	db := s.pg.Get()
	if db == nil {
		return nil, ErrNoDB
	}
	return models.GetContentList(ctx, db)
}

func (s *pgStore) Get(ctx context.Context, id uuid.UUID) (*models.Content, error) {
	db := s.pg.Get()
	if db == nil {
		return nil, ErrNoDB
	}
	return models.GetContentByID(ctx, db, id)
}

func (s *pgStore) Create(ctx context.Context, item *models.Content) error {
	db := s.pg.Get()
	if db == nil {
		return ErrNoDB
	}
	return models.CreateContent(ctx, db, item)
}

func (s *pgStore) Update(ctx context.Context, item *models.Content) error {
	db := s.pg.Get()
	if db == nil {
		return ErrNoDB
	}
	return models.UpdateContent(ctx, db, item)
}

func (s *pgStore) Delete(ctx context.Context, id uuid.UUID) error {
	db := s.pg.Get()
	if db == nil {
		return ErrNoDB
	}
	return models.DeleteContent(ctx, db, id)
}

// Catalog is the write-through view of the content table. Listing is memoized for a
// short time and every write moves the cache to a fresh generation.
type Catalog struct {
	store Store
	lists lazymap.LazyMap[[]*models.Content]
	gen   atomic.Int64
}

func New(pg *cs.PG) *Catalog {
	return NewWithStore(&pgStore{pg: pg})
}

func NewWithStore(store Store) *Catalog {
	return &Catalog{
		store: store,
		lists: lazymap.New[[]*models.Content](&lazymap.Config{
			Expire:      30 * time.Second,
			ErrorExpire: time.Second,
		}),
	}
}

func (s *Catalog) List(ctx context.Context) ([]*models.Content, error) {
	key := fmt.Sprintf("list:%d", s.gen.Load())
	items, err := s.lists.Get(key, func() ([]*models.Content, error) {
		return s.store.List(ctx)
	})
	if err != nil {
		return nil, errors.Wrap(err, "failed to list content")
	}
	return items, nil
}

// Get returns nil when no item has the id.
func (s *Catalog) Get(ctx context.Context, id uuid.UUID) (*models.Content, error) {
	item, err := s.store.Get(ctx, id)
	if err != nil {
		return nil, errors.Wrapf(err, "failed to get content %v", id)
	}
	return item, nil
}

func (s *Catalog) Create(ctx context.Context, item *models.Content) error {
	if err := item.Validate(); err != nil {
		return err
	}
	if err := s.store.Create(ctx, item); err != nil {
		return errors.Wrap(err, "failed to create content")
	}
	s.invalidate()
	log.WithField("id", item.ID).WithField("title", item.Title).Info("content created")
	return nil
}

func (s *Catalog) Update(ctx context.Context, item *models.Content) error {
	if err := item.Validate(); err != nil {
		return err
	}
	if err := s.store.Update(ctx, item); err != nil {
		return errors.Wrapf(err, "failed to update content %v", item.ID)
	}
	s.invalidate()
	log.WithField("id", item.ID).Info("content updated")
	return nil
}

func (s *Catalog) Delete(ctx context.Context, id uuid.UUID) error {
	if err := s.store.Delete(ctx, id); err != nil {
		return errors.Wrapf(err, "failed to delete content %v", id)
	}
	s.invalidate()
	log.WithField("id", id).Info("content deleted")
	return nil
}

func (s *Catalog) invalidate() {
	s.gen.Add(1)
}
