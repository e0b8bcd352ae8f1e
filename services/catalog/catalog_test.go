package catalog

import (
	"context"
	"errors"
	"testing"

	"github.com/filoflix/web-ui/models"
	uuid "github.com/satori/go.uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type mockStore struct {
	items     []*models.Content
	listCalls int
	listErr   error
	writeErr  error
	created   *models.Content
	updated   *models.Content
	deleted   uuid.UUID
}

func (m *mockStore) List(_ context.Context) ([]*models.Content, error) {
	m.listCalls++
	return m.items, m.listErr
}

func (m *mockStore) Get(_ context.Context, id uuid.UUID) (*models.Content, error) {
	for _, it := range m.items {
		if it.ID == id {
			return it, nil
		}
	}
	return nil, nil
}

func (m *mockStore) Create(_ context.Context, item *models.Content) error {
	if m.writeErr != nil {
		return m.writeErr
	}
	item.ID = uuid.NewV4()
	m.created = item
	m.items = append([]*models.Content{item}, m.items...)
	return nil
}

func (m *mockStore) Update(_ context.Context, item *models.Content) error {
	m.updated = item
	return m.writeErr
}

func (m *mockStore) Delete(_ context.Context, id uuid.UUID) error {
	m.deleted = id
	return m.writeErr
}

func TestCatalog_ListIsMemoized(t *testing.T) {
	store := &mockStore{items: []*models.Content{{Title: "A", Type: models.ContentTypeMovie}}}
	c := NewWithStore(store)
	ctx := context.Background()

	_, err := c.List(ctx)
	require.NoError(t, err)
	items, err := c.List(ctx)
	require.NoError(t, err)
	assert.Len(t, items, 1)
	assert.Equal(t, 1, store.listCalls)
}

func TestCatalog_WriteInvalidatesList(t *testing.T) {
	store := &mockStore{}
	c := NewWithStore(store)
	ctx := context.Background()

	items, err := c.List(ctx)
	require.NoError(t, err)
	assert.Empty(t, items)

	err = c.Create(ctx, &models.Content{Title: "New", Type: models.ContentTypeSeries})
	require.NoError(t, err)
	require.NotNil(t, store.created)
	assert.NotEqual(t, uuid.Nil, store.created.ID)

	items, err = c.List(ctx)
	require.NoError(t, err)
	assert.Len(t, items, 1)
	assert.Equal(t, 2, store.listCalls)
}

func TestCatalog_CreateValidates(t *testing.T) {
	store := &mockStore{}
	c := NewWithStore(store)

	err := c.Create(context.Background(), &models.Content{Title: "", Type: models.ContentTypeMovie})
	assert.Error(t, err)
	assert.Nil(t, store.created)
}

func TestCatalog_StoreErrorsAreWrapped(t *testing.T) {
	store := &mockStore{listErr: errors.New("connection refused"), writeErr: errors.New("boom")}
	c := NewWithStore(store)
	ctx := context.Background()

	_, err := c.List(ctx)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "failed to list content")
	assert.Contains(t, err.Error(), "connection refused")

	id := uuid.NewV4()
	err = c.Delete(ctx, id)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "failed to delete content")

	err = c.Update(ctx, &models.Content{ID: id, Title: "x", Type: models.ContentTypeMovie})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "boom")
}

func TestCatalog_Delete(t *testing.T) {
	store := &mockStore{}
	c := NewWithStore(store)
	id := uuid.NewV4()
	require.NoError(t, c.Delete(context.Background(), id))
	assert.Equal(t, id, store.deleted)
}
