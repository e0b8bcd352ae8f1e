package common

import "strings"

type NavItem struct {
	Title     string
	TargetURL string
	Active    bool
}

type Nav []NavItem

var baseNav = Nav{
	{"Home", "/", false},
	{"Movies", "/movies", false},
	{"TV Series", "/series", false},
	{"Trailers", "/trailers", false},
	{"Categories", "/categories", false},
}

type NavHelper struct{}

func NewNavHelper() *NavHelper {
	return &NavHelper{}
}

// MakeNav marks the item matching path as active. Home matches only the root.
func (s *NavHelper) MakeNav(path string) Nav {
	n := make(Nav, 0, len(baseNav))
	for _, item := range baseNav {
		ni := item
		if item.TargetURL == "/" {
			ni.Active = path == "/"
		} else {
			ni.Active = strings.HasPrefix(path, item.TargetURL)
		}
		n = append(n, ni)
	}
	return n
}
