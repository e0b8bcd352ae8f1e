package models

import (
	"context"
	"strings"
	"time"

	"github.com/go-pg/pg/v10"
	"github.com/pkg/errors"
	uuid "github.com/satori/go.uuid"
)

type ContentType string

const (
	ContentTypeMovie   ContentType = "movie"
	ContentTypeSeries  ContentType = "series"
	ContentTypeTrailer ContentType = "trailer"
)

var ContentTypes = []ContentType{ContentTypeMovie, ContentTypeSeries, ContentTypeTrailer}

func (t ContentType) String() string {
	return string(t)
}

func (t ContentType) Valid() bool {
	for _, ct := range ContentTypes {
		if ct == t {
			return true
		}
	}
	return false
}

// ContentSourceOMDB marks items built from external lookup results. Such items are
// informational only and have no playable reference.
const ContentSourceOMDB = "omdb"

type Content struct {
	tableName struct{} `pg:"content"`

	ID          uuid.UUID   `pg:"content_id,pk,type:uuid,default:uuid_generate_v4()" json:"id"`
	Title       string      `pg:"title,notnull" json:"title"`
	Type        ContentType `pg:"type,notnull" json:"type"`
	Thumbnail   *string     `pg:"thumbnail" json:"thumbnail"`
	VideoURL    string      `pg:"video_url,notnull,use_zero" json:"video_url"`
	Rating      *float64    `pg:"rating" json:"rating"`
	Year        *int        `pg:"year" json:"year"`
	Genre       *string     `pg:"genre" json:"genre"`
	Description *string     `pg:"description" json:"description"`
	DownloadURL *string     `pg:"download_url" json:"download_url"`
	Subtitle    *string     `pg:"subtitle" json:"subtitle"`
	Category    *string     `pg:"category" json:"category"`
	AgeRating   *string     `pg:"age_rating" json:"age_rating"`
	ImdbID      *string     `pg:"imdb_id" json:"imdb_id"`
	CreatedAt   time.Time   `pg:"created_at,default:now()" json:"created_at"`
	UpdatedAt   time.Time   `pg:"updated_at,default:now()" json:"updated_at"`

	Source string `pg:"-" json:"source,omitempty"`
}

func (c *Content) IsExternal() bool {
	return c.Source == ContentSourceOMDB
}

// HasVideo reports whether the item carries any playable reference at all.
func (c *Content) HasVideo() bool {
	return !c.IsExternal() && strings.TrimSpace(c.VideoURL) != ""
}

// MatchPercent is the rating shown as "% match" on cards.
func (c *Content) MatchPercent() int {
	if c.Rating == nil {
		return 0
	}
	return int(*c.Rating * 10)
}

func (c *Content) Validate() error {
	if strings.TrimSpace(c.Title) == "" {
		return errors.New("title is required")
	}
	if !c.Type.Valid() {
		return errors.Errorf("unknown content type %q", c.Type)
	}
	return nil
}

// GetContentList returns the whole catalog, newest first.
func GetContentList(ctx context.Context, db *pg.DB) ([]*Content, error) {
	var items []*Content
	err := db.Model(&items).
		Context(ctx).
		Order("created_at DESC").
		Select()
	if err != nil {
		return nil, err
	}
	return items, nil
}

func GetContentByID(ctx context.Context, db *pg.DB, id uuid.UUID) (*Content, error) {
	item := &Content{}
	err := db.Model(item).
		Context(ctx).
		Where("content_id = ?", id).
		Select()
	if errors.Is(err, pg.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return item, nil
}

// CreateContent inserts a new row; the id is assigned by the database.
func CreateContent(ctx context.Context, db *pg.DB, item *Content) error {
	item.ID = uuid.Nil
	_, err := db.Model(item).
		Context(ctx).
		Returning("*").
		Insert()
	return err
}

// UpdateContent overwrites the whole row.
func UpdateContent(ctx context.Context, db *pg.DB, item *Content) error {
	item.UpdatedAt = time.Now()
	res, err := db.Model(item).
		Context(ctx).
		ExcludeColumn("created_at").
		WherePK().
		Update()
	if err != nil {
		return err
	}
	if res.RowsAffected() == 0 {
		return pg.ErrNoRows
	}
	return nil
}

func DeleteContent(ctx context.Context, db *pg.DB, id uuid.UUID) error {
	_, err := db.Model(&Content{}).
		Context(ctx).
		Where("content_id = ?", id).
		Delete()
	return err
}
