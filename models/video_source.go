package models

import "strings"

// VideoSource is the decoded form of the overloaded video_url column: either an
// ordered episode set or a single playable reference.
type VideoSource struct {
	Episodes  []Episode
	Reference string
}

func (v *VideoSource) Episodic() bool {
	return len(v.Episodes) > 0
}

func (v *VideoSource) Empty() bool {
	return !v.Episodic() && strings.TrimSpace(v.Reference) == ""
}

// ParseVideoSource decodes raw according to the content type. Only series may be
// episodic; a series whose column is not a non-empty JSON array is treated as a single
// reference.
func ParseVideoSource(t ContentType, raw string) *VideoSource {
	if t == ContentTypeSeries {
		if eps, ok := ParseEpisodes(raw); ok && len(eps) > 0 {
			return &VideoSource{Episodes: eps}
		}
	}
	return &VideoSource{Reference: strings.TrimSpace(raw)}
}

func (c *Content) VideoSource() *VideoSource {
	return ParseVideoSource(c.Type, c.VideoURL)
}
