package episodes

import (
	"strconv"
	"strings"

	"github.com/filoflix/web-ui/models"
	"github.com/pkg/errors"
)

type Field string

const (
	FieldEpisodeNumber Field = "episode_number"
	FieldTitle         Field = "title"
	FieldEmbedCode     Field = "embed_code"
	FieldDownloadURL   Field = "download_url"
	FieldDescription   Field = "description"
	FieldThumbnailURL  Field = "thumbnail_url"
	FieldDuration      Field = "duration"
)

var ErrIndexOutOfRange = errors.New("episode index out of range")

// Editor holds the in-progress episode list of a series form. Episode numbers are kept
// contiguous from 1 by Add and Remove; Update may set any number explicitly.
type Editor struct {
	episodes []models.Episode
}

func New(eps []models.Episode) *Editor {
	cp := make([]models.Episode, len(eps))
	copy(cp, eps)
	return &Editor{episodes: cp}
}

// FromVideoURL starts an editor from a stored series column. Anything that is not an
// episode array starts an empty list.
func FromVideoURL(raw string) *Editor {
	eps, _ := models.ParseEpisodes(raw)
	return New(eps)
}

// Add appends a blank episode numbered after the current count and returns its index.
func (s *Editor) Add() int {
	s.episodes = append(s.episodes, models.Episode{
		EpisodeNumber: len(s.episodes) + 1,
	})
	return len(s.episodes) - 1
}

func (s *Editor) Update(index int, field Field, value string) error {
	if index < 0 || index >= len(s.episodes) {
		return ErrIndexOutOfRange
	}
	ep := &s.episodes[index]
	switch field {
	case FieldEpisodeNumber:
		ep.EpisodeNumber = coerceNumber(value)
	case FieldTitle:
		ep.Title = value
	case FieldEmbedCode:
		ep.EmbedCode = value
	case FieldDownloadURL:
		ep.DownloadURL = value
	case FieldDescription:
		ep.Description = value
	case FieldThumbnailURL:
		ep.ThumbnailURL = value
	case FieldDuration:
		ep.Duration = value
	default:
		return errors.Errorf("unknown episode field %q", field)
	}
	return nil
}

// coerceNumber turns form input into a number; non-numeric input becomes 0.
func coerceNumber(v string) int {
	f, err := strconv.ParseFloat(strings.TrimSpace(v), 64)
	if err != nil {
		return 0
	}
	return int(f)
}

// Remove deletes the episode at index and renumbers the rest 1..N.
func (s *Editor) Remove(index int) error {
	if index < 0 || index >= len(s.episodes) {
		return ErrIndexOutOfRange
	}
	s.episodes = append(s.episodes[:index], s.episodes[index+1:]...)
	for i := range s.episodes {
		s.episodes[i].EpisodeNumber = i + 1
	}
	return nil
}

func (s *Editor) Episodes() []models.Episode {
	return s.episodes
}

func (s *Editor) Len() int {
	return len(s.episodes)
}

func (s *Editor) Serialize() (string, error) {
	return models.MarshalEpisodes(s.episodes)
}

// Form is the posted episode editor: parallel arrays, one value per episode row.
type Form struct {
	EpisodeNumber []string `form:"episode_number[]"`
	Title         []string `form:"episode_title[]"`
	EmbedCode     []string `form:"episode_embed_code[]"`
	DownloadURL   []string `form:"episode_download_url[]"`
	Description   []string `form:"episode_description[]"`
	ThumbnailURL  []string `form:"episode_thumbnail_url[]"`
	Duration      []string `form:"episode_duration[]"`
}

// FromForm rebuilds the editor from a posted form. The row count is taken from the
// longest array; missing cells are empty.
func FromForm(f *Form) *Editor {
	n := 0
	for _, a := range f.columns() {
		if len(a.values) > n {
			n = len(a.values)
		}
	}
	e := &Editor{episodes: make([]models.Episode, 0, n)}
	for i := 0; i < n; i++ {
		idx := e.Add()
		for _, a := range f.columns() {
			if i < len(a.values) {
				_ = e.Update(idx, a.field, a.values[i])
			}
		}
	}
	return e
}

type column struct {
	field  Field
	values []string
}

func (f *Form) columns() []column {
	return []column{
		{FieldEpisodeNumber, f.EpisodeNumber},
		{FieldTitle, f.Title},
		{FieldEmbedCode, f.EmbedCode},
		{FieldDownloadURL, f.DownloadURL},
		{FieldDescription, f.Description},
		{FieldThumbnailURL, f.ThumbnailURL},
		{FieldDuration, f.Duration},
	}
}
