package admin

import (
	"strconv"
	"strings"

	"github.com/filoflix/web-ui/models"
	"github.com/filoflix/web-ui/services/episodes"
	"github.com/pkg/errors"
)

type AgeRating struct {
	Value string
	Title string
}

var AgeRatings = []AgeRating{
	{"G", "G - General Audiences"},
	{"PG", "PG - Parental Guidance"},
	{"PG-13", "PG-13 - Parents Strongly Cautioned"},
	{"R", "R - Restricted"},
	{"NC-17", "NC-17 - Adults Only"},
	{"18+", "18+ - Adults Only"},
}

// ContentForm mirrors the content editor fields as posted.
type ContentForm struct {
	Title       string `form:"title"`
	Subtitle    string `form:"subtitle"`
	Type        string `form:"type"`
	Thumbnail   string `form:"thumbnail"`
	VideoURL    string `form:"video_url"`
	DownloadURL string `form:"download_url"`
	Rating      string `form:"rating"`
	Year        string `form:"year"`
	Genre       string `form:"genre"`
	Category    string `form:"category"`
	AgeRating   string `form:"age_rating"`
	Description string `form:"description"`
	ImdbID      string `form:"imdb_id"`
}

func optional(s string) *string {
	s = strings.TrimSpace(s)
	if s == "" {
		return nil
	}
	return &s
}

func deref(s *string) string {
	if s == nil {
		return ""
	}
	return *s
}

// FormFromContent fills the editor from a stored item. For episodic series the
// video_url box stays empty and the episodes go to the episode editor instead.
func FormFromContent(item *models.Content) (*ContentForm, *episodes.Editor) {
	f := &ContentForm{
		Title:       item.Title,
		Subtitle:    deref(item.Subtitle),
		Type:        item.Type.String(),
		Thumbnail:   deref(item.Thumbnail),
		VideoURL:    item.VideoURL,
		DownloadURL: deref(item.DownloadURL),
		Genre:       deref(item.Genre),
		Category:    deref(item.Category),
		AgeRating:   deref(item.AgeRating),
		Description: deref(item.Description),
		ImdbID:      deref(item.ImdbID),
	}
	if item.Rating != nil {
		f.Rating = strconv.FormatFloat(*item.Rating, 'f', -1, 64)
	}
	if item.Year != nil {
		f.Year = strconv.Itoa(*item.Year)
	}
	ed := episodes.New(nil)
	if vs := item.VideoSource(); vs.Episodic() {
		ed = episodes.New(vs.Episodes)
		f.VideoURL = ""
	}
	return f, ed
}

// Apply copies the form onto item. Episodes replace video_url for series that have at
// least one; otherwise the posted video_url is stored as-is.
func (f *ContentForm) Apply(item *models.Content, ed *episodes.Editor) error {
	item.Title = strings.TrimSpace(f.Title)
	item.Type = models.ContentType(strings.TrimSpace(f.Type))
	item.Subtitle = optional(f.Subtitle)
	item.Thumbnail = optional(f.Thumbnail)
	item.DownloadURL = optional(f.DownloadURL)
	item.Genre = optional(f.Genre)
	item.Category = optional(f.Category)
	item.AgeRating = optional(f.AgeRating)
	item.Description = optional(f.Description)
	item.ImdbID = optional(f.ImdbID)
	item.VideoURL = strings.TrimSpace(f.VideoURL)

	item.Rating = nil
	if r := strings.TrimSpace(f.Rating); r != "" {
		v, err := strconv.ParseFloat(r, 64)
		if err != nil || v < 0 || v > 10 {
			return errors.Errorf("rating must be a number between 0 and 10, got %q", r)
		}
		item.Rating = &v
	}
	item.Year = nil
	if y := strings.TrimSpace(f.Year); y != "" {
		v, err := strconv.Atoi(y)
		if err != nil || v < 1800 || v > 3000 {
			return errors.Errorf("invalid year %q", y)
		}
		item.Year = &v
	}
	if item.Type == models.ContentTypeSeries && ed != nil && ed.Len() > 0 {
		raw, err := ed.Serialize()
		if err != nil {
			return err
		}
		item.VideoURL = raw
	}
	return item.Validate()
}
