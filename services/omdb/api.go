package omdb

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"regexp"
	"strconv"
	"strings"
	"time"

	"github.com/avast/retry-go/v4"
	"github.com/filoflix/web-ui/models"
	"github.com/pkg/errors"
	log "github.com/sirupsen/logrus"
	"github.com/urfave/cli"
	"github.com/webtor-io/lazymap"
)

const (
	omdbApiKeyFlag    = "omdb-api-key"
	omdbApiSecureFlag = "omdb-api-secure"
	omdbApiHostFlag   = "omdb-api-host"
	omdbApiPortFlag   = "omdb-api-port"
)

func RegisterFlags(f []cli.Flag) []cli.Flag {
	return append(f,
		cli.StringFlag{
			Name:   omdbApiHostFlag,
			Usage:  "omdb api host",
			EnvVar: "OMDB_API_HOST",
			Value:  "www.omdbapi.com",
		},
		cli.IntFlag{
			Name:   omdbApiPortFlag,
			Usage:  "omdb api port",
			EnvVar: "OMDB_API_PORT",
			Value:  443,
		},
		cli.BoolTFlag{
			Name:   omdbApiSecureFlag,
			Usage:  "omdb api secure (https)",
			EnvVar: "OMDB_API_SECURE",
		},
		cli.StringFlag{
			Name:   omdbApiKeyFlag,
			Usage:  "omdb api key, external search is disabled without it",
			EnvVar: "OMDB_API_KEY",
		},
	)
}

type OmdbType string

const (
	OmdbTypeAny     OmdbType = ""
	OmdbTypeMovie   OmdbType = "movie"
	OmdbTypeSeries  OmdbType = "series"
	OmdbTypeEpisode OmdbType = "episode"
)

func (t OmdbType) String() string {
	return string(t)
}

// TypeFromContentType maps a catalog type onto the closest OMDB one. Trailers have no
// OMDB equivalent and search everything.
func TypeFromContentType(t string) OmdbType {
	switch t {
	case models.ContentTypeMovie.String():
		return OmdbTypeMovie
	case models.ContentTypeSeries.String():
		return OmdbTypeSeries
	}
	return OmdbTypeAny
}

type SearchResult struct {
	Title  string   `json:"Title"`
	Year   string   `json:"Year"`
	ImdbID string   `json:"imdbID"`
	Type   OmdbType `json:"Type"`
	Poster string   `json:"Poster"`
}

type searchResponse struct {
	Search   []SearchResult `json:"Search"`
	Response string         `json:"Response"`
	Error    string         `json:"Error"`
}

var startYearRegexp = regexp.MustCompile(`^\d{4}`)

// Content maps a result onto a catalog item marked as external.
func (r *SearchResult) Content() *models.Content {
	c := &models.Content{
		Title:  r.Title,
		Source: models.ContentSourceOMDB,
	}
	switch r.Type {
	case OmdbTypeSeries, OmdbTypeEpisode:
		c.Type = models.ContentTypeSeries
	default:
		c.Type = models.ContentTypeMovie
	}
	if p := strings.TrimSpace(r.Poster); p != "" && p != "N/A" {
		c.Thumbnail = &p
	}
	if r.ImdbID != "" {
		id := r.ImdbID
		c.ImdbID = &id
	}
	if m := startYearRegexp.FindString(r.Year); m != "" {
		if y, err := strconv.Atoi(m); err == nil {
			c.Year = &y
		}
	}
	return c
}

type Api struct {
	url            string
	cl             *http.Client
	prepareRequest func(r *http.Request) (*http.Request, error)
	cache          lazymap.LazyMap[[]SearchResult]
	attempts       uint
	delay          time.Duration
}

// New returns nil when no api key is configured.
func New(c *cli.Context, cl *http.Client) *Api {
	host := c.String(omdbApiHostFlag)
	port := c.Int(omdbApiPortFlag)
	secure := c.BoolT(omdbApiSecureFlag)
	key := c.String(omdbApiKeyFlag)
	if key == "" {
		return nil
	}
	protocol := "http"
	if secure {
		protocol = "https"
	}
	u := fmt.Sprintf("%v://%v:%v", protocol, host, port)
	log.Infof("omdb api endpoint %v", u)
	return NewWithURL(u, key, cl)
}

func NewWithURL(u, key string, cl *http.Client) *Api {
	return &Api{
		url: strings.TrimSuffix(u, "/"),
		cl:  cl,
		prepareRequest: func(r *http.Request) (*http.Request, error) {
			q := r.URL.Query()
			q.Set("apikey", key)
			r.URL.RawQuery = q.Encode()
			return r, nil
		},
		cache: lazymap.New[[]SearchResult](&lazymap.Config{
			Expire:      10 * time.Minute,
			ErrorExpire: 10 * time.Second,
		}),
		attempts: 3,
		delay:    200 * time.Millisecond,
	}
}

// Search runs a title search. A nil Api means search is disabled and returns nothing.
func (api *Api) Search(ctx context.Context, query string, omdbType OmdbType) ([]SearchResult, error) {
	if api == nil {
		return nil, nil
	}
	query = strings.TrimSpace(strings.ToLower(query))
	if query == "" {
		return nil, nil
	}
	key := fmt.Sprintf("%v|%v", omdbType, query)
	return api.cache.Get(key, func() ([]SearchResult, error) {
		return retry.DoWithData(
			func() ([]SearchResult, error) {
				return api.search(ctx, query, omdbType)
			},
			retry.Context(ctx),
			retry.Attempts(api.attempts),
			retry.Delay(api.delay),
			retry.LastErrorOnly(true),
		)
	})
}

// SearchContent is Search with results mapped to external catalog items.
func (api *Api) SearchContent(ctx context.Context, query string, omdbType OmdbType) ([]*models.Content, error) {
	results, err := api.Search(ctx, query, omdbType)
	if err != nil {
		return nil, err
	}
	items := make([]*models.Content, 0, len(results))
	for i := range results {
		items = append(items, results[i].Content())
	}
	return items, nil
}

func (api *Api) search(ctx context.Context, query string, omdbType OmdbType) ([]SearchResult, error) {
	req, err := http.NewRequestWithContext(ctx, "GET", api.url+"/", nil)
	if err != nil {
		return nil, retry.Unrecoverable(errors.Wrap(err, "create request"))
	}

	q := req.URL.Query()
	q.Set("s", query)
	if omdbType != OmdbTypeAny {
		q.Set("type", omdbType.String())
	}
	req.URL.RawQuery = q.Encode()

	req, err = api.prepareRequest(req)
	if err != nil {
		return nil, retry.Unrecoverable(errors.Wrap(err, "prepare request"))
	}

	resp, err := api.cl.Do(req)
	if err != nil {
		return nil, errors.Wrap(err, "request failed")
	}
	defer func(Body io.ReadCloser) {
		_ = Body.Close()
	}(resp.Body)

	if resp.StatusCode >= 500 {
		return nil, errors.Errorf("omdb responded with status %v", resp.StatusCode)
	}
	if resp.StatusCode != http.StatusOK {
		return nil, retry.Unrecoverable(errors.Errorf("omdb responded with status %v", resp.StatusCode))
	}

	var sr searchResponse
	if err := json.NewDecoder(resp.Body).Decode(&sr); err != nil {
		return nil, retry.Unrecoverable(errors.Wrap(err, "decode response"))
	}
	if sr.Response != "True" {
		// "Movie not found!" and "Too many results." are both plain misses
		log.WithField("query", query).WithField("error", sr.Error).Debug("omdb search returned no results")
		return []SearchResult{}, nil
	}
	return sr.Search, nil
}
