package models

import (
	"encoding/json"
	"strconv"
	"strings"

	"github.com/pkg/errors"
)

// Episode is one element of the episode array stored in a series' video_url column.
type Episode struct {
	EpisodeNumber int    `json:"episode_number"`
	Title         string `json:"title"`
	EmbedCode     string `json:"embed_code"`
	DownloadURL   string `json:"download_url,omitempty"`
	Description   string `json:"description,omitempty"`
	ThumbnailURL  string `json:"thumbnail_url,omitempty"`
	Duration      string `json:"duration,omitempty"`

	// LegacyVideoURL is the pre-embed_code name of the playable reference.
	// It is only read, never written back.
	LegacyVideoURL string `json:"-"`
}

type episodeJSON struct {
	EpisodeNumber json.RawMessage `json:"episode_number"`
	Title         string          `json:"title"`
	EmbedCode     string          `json:"embed_code"`
	VideoURL      string          `json:"video_url"`
	DownloadURL   *string         `json:"download_url"`
	Description   *string         `json:"description"`
	ThumbnailURL  *string         `json:"thumbnail_url"`
	Duration      *string         `json:"duration"`
}

func (e *Episode) UnmarshalJSON(data []byte) error {
	var raw episodeJSON
	if err := json.Unmarshal(data, &raw); err != nil {
		return err
	}
	n, err := parseEpisodeNumber(raw.EpisodeNumber)
	if err != nil {
		return err
	}
	*e = Episode{
		EpisodeNumber:  n,
		Title:          raw.Title,
		EmbedCode:      raw.EmbedCode,
		LegacyVideoURL: raw.VideoURL,
		DownloadURL:    deref(raw.DownloadURL),
		Description:    deref(raw.Description),
		ThumbnailURL:   deref(raw.ThumbnailURL),
		Duration:       deref(raw.Duration),
	}
	return nil
}

// parseEpisodeNumber accepts numbers as well as numeric strings, older rows carry both.
func parseEpisodeNumber(raw json.RawMessage) (int, error) {
	s := strings.TrimSpace(string(raw))
	if s == "" || s == "null" {
		return 0, nil
	}
	if strings.HasPrefix(s, `"`) {
		var str string
		if err := json.Unmarshal(raw, &str); err != nil {
			return 0, err
		}
		s = strings.TrimSpace(str)
		if s == "" {
			return 0, nil
		}
	}
	f, err := strconv.ParseFloat(s, 64)
	if err != nil {
		return 0, errors.Wrapf(err, "invalid episode_number %s", string(raw))
	}
	return int(f), nil
}

func deref(s *string) string {
	if s == nil {
		return ""
	}
	return *s
}

// PlayableReference returns embed_code, falling back to the legacy video_url field.
func (e *Episode) PlayableReference() string {
	if strings.TrimSpace(e.EmbedCode) != "" {
		return e.EmbedCode
	}
	return e.LegacyVideoURL
}

// ParseEpisodes decodes a serialized episode array. ok is false when raw is not a JSON
// array of episode objects.
func ParseEpisodes(raw string) (episodes []Episode, ok bool) {
	raw = strings.TrimSpace(raw)
	if !strings.HasPrefix(raw, "[") {
		return nil, false
	}
	if err := json.Unmarshal([]byte(raw), &episodes); err != nil {
		return nil, false
	}
	for i := range episodes {
		if episodes[i].EmbedCode == "" {
			episodes[i].EmbedCode = episodes[i].LegacyVideoURL
		}
	}
	return episodes, true
}

func MarshalEpisodes(episodes []Episode) (string, error) {
	if episodes == nil {
		episodes = []Episode{}
	}
	b, err := json.Marshal(episodes)
	if err != nil {
		return "", errors.Wrap(err, "failed to marshal episodes")
	}
	return string(b), nil
}

// FindEpisode returns the episode with the given number or nil.
func FindEpisode(episodes []Episode, number int) *Episode {
	for i := range episodes {
		if episodes[i].EpisodeNumber == number {
			return &episodes[i]
		}
	}
	return nil
}
