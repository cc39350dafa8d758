package services

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log"
	"net/http"
	"net/url"
	"strconv"
	"sync"
	"time"

	"github.com/patrickmn/go-cache"

	"mars-gallery/pkg/config"
	"mars-gallery/pkg/models"
	"mars-gallery/pkg/rovers"
)

// DateLayout is the earth date format used by the photo API
const DateLayout = "2006-01-02"

// ErrInvalidDate is returned when an earth date is not in YYYY-MM-DD form
var ErrInvalidDate = errors.New("invalid earth date")

// APIError is returned when the photo API answers with a non-200 status
type APIError struct {
	StatusCode int
	Body       string
}

func (e *APIError) Error() string {
	return fmt.Sprintf("NASA API error (status %d): %s", e.StatusCode, e.Body)
}

// ManifestFetcher loads mission manifests
type ManifestFetcher interface {
	FetchManifest(ctx context.Context, r rovers.Rover) (models.Manifest, error)
}

// PhotoFetcher loads rover photos
type PhotoFetcher interface {
	FetchPhotos(ctx context.Context, r rovers.Rover, q PhotoQuery) ([]models.Photo, error)
}

// Client is everything the pages need from the photo API
type Client interface {
	ManifestFetcher
	PhotoFetcher
}

// PhotoQuery selects photos for one day. Sol is used only when EarthDate is empty.
type PhotoQuery struct {
	EarthDate string
	Sol       int
	Page      int
	Cameras   []rovers.Camera
}

// Service talks to the Mars rover photo API and caches its responses
type Service struct {
	config        *config.Config
	client        *http.Client
	responseCache *cache.Cache
	mu            sync.RWMutex
}

var (
	// defaultService is the singleton instance of Service
	defaultService *Service
	once           sync.Once
)

// NewService creates a service for the configured API
func NewService(cfg *config.Config) *Service {
	ttl := cfg.CacheTTL
	if ttl <= 0 {
		ttl = 10 * time.Minute
	}
	return &Service{
		config:        cfg,
		client:        &http.Client{Timeout: cfg.RequestTimeout},
		responseCache: cache.New(ttl, 2*ttl),
	}
}

// InitService initializes the shared service with the given configuration
func InitService(cfg *config.Config) {
	once.Do(func() {
		defaultService = NewService(cfg)
	})
}

// Default returns the service created by InitService
func Default() *Service {
	return defaultService
}

// GetManifest fetches a manifest through the shared service
func GetManifest(ctx context.Context, r rovers.Rover) (models.Manifest, error) {
	return defaultService.FetchManifest(ctx, r)
}

// GetPhotos fetches photos through the shared service
func GetPhotos(ctx context.Context, r rovers.Rover, q PhotoQuery) ([]models.Photo, error) {
	return defaultService.FetchPhotos(ctx, r, q)
}

type manifestResponse struct {
	PhotoManifest models.Manifest `json:"photo_manifest"`
}

type photosResponse struct {
	Photos []struct {
		ID     int `json:"id"`
		Sol    int `json:"sol"`
		Camera struct {
			Name     string `json:"name"`
			FullName string `json:"full_name"`
		} `json:"camera"`
		ImgSrc    string `json:"img_src"`
		EarthDate string `json:"earth_date"`
	} `json:"photos"`
}

// FetchManifest returns the mission manifest for r
func (s *Service) FetchManifest(ctx context.Context, r rovers.Rover) (models.Manifest, error) {
	if !r.Valid() {
		return models.Manifest{}, fmt.Errorf("%w: %d", rovers.ErrUnknownRover, int(r))
	}

	var resp manifestResponse
	if err := s.get(ctx, "/manifests/"+r.Slug(), nil, &resp); err != nil {
		return models.Manifest{}, fmt.Errorf("fetch %s manifest: %w", r, err)
	}
	return resp.PhotoManifest, nil
}

// FetchPhotos returns r's photos for the queried day, restricted to q.Cameras
// when any are given. API order is kept.
func (s *Service) FetchPhotos(ctx context.Context, r rovers.Rover, q PhotoQuery) ([]models.Photo, error) {
	if !r.Valid() {
		return nil, fmt.Errorf("%w: %d", rovers.ErrUnknownRover, int(r))
	}

	params := url.Values{}
	if q.EarthDate != "" {
		if _, err := time.Parse(DateLayout, q.EarthDate); err != nil {
			return nil, fmt.Errorf("%w: %q", ErrInvalidDate, q.EarthDate)
		}
		params.Set("earth_date", q.EarthDate)
	} else {
		params.Set("sol", strconv.Itoa(q.Sol))
	}
	if q.Page > 0 {
		params.Set("page", strconv.Itoa(q.Page))
	}

	var resp photosResponse
	if err := s.get(ctx, "/rovers/"+r.Slug()+"/photos", params, &resp); err != nil {
		return nil, fmt.Errorf("fetch %s photos: %w", r, err)
	}

	photos := make([]models.Photo, 0, len(resp.Photos))
	for _, p := range resp.Photos {
		photos = append(photos, models.Photo{
			ID:         p.ID,
			ImgSrc:     p.ImgSrc,
			Camera:     p.Camera.Name,
			CameraName: p.Camera.FullName,
			EarthDate:  p.EarthDate,
			Sol:        p.Sol,
		})
	}
	return FilterByCamera(photos, q.Cameras), nil
}

// FilterByCamera keeps photos taken by one of cameras. No cameras means no filter.
func FilterByCamera(photos []models.Photo, cameras []rovers.Camera) []models.Photo {
	if len(cameras) == 0 {
		return photos
	}

	wanted := make(map[rovers.Camera]bool, len(cameras))
	for _, c := range cameras {
		wanted[c] = true
	}

	out := make([]models.Photo, 0, len(photos))
	for _, p := range photos {
		if c, ok := p.CameraID(); ok && wanted[c] {
			out = append(out, p)
		}
	}
	return out
}

// get issues a GET against the API and decodes the JSON body into v.
// Bodies are cached by path and query, without the API key.
func (s *Service) get(ctx context.Context, path string, params url.Values, v any) error {
	key := path
	if len(params) > 0 {
		key += "?" + params.Encode()
	}

	s.mu.RLock()
	if cached, found := s.responseCache.Get(key); found {
		s.mu.RUnlock()
		log.Printf("Using cached response for %s", key)
		return json.Unmarshal(cached.([]byte), v)
	}
	s.mu.RUnlock()

	query := url.Values{}
	for k, vs := range params {
		query[k] = vs
	}
	query.Set("api_key", s.config.APIKey)
	endpoint := fmt.Sprintf("%s%s?%s", s.config.APIBaseURL, path, query.Encode())

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, endpoint, nil)
	if err != nil {
		return err
	}
	req.Header.Set("Accept", "application/json")

	log.Printf("Requesting %s", key)
	resp, err := s.client.Do(req)
	if err != nil {
		return err
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return fmt.Errorf("read response: %w", err)
	}
	if resp.StatusCode != http.StatusOK {
		return &APIError{StatusCode: resp.StatusCode, Body: string(body)}
	}

	if err := json.Unmarshal(body, v); err != nil {
		return fmt.Errorf("decode response: %w", err)
	}

	s.mu.Lock()
	s.responseCache.Set(key, body, cache.DefaultExpiration)
	s.mu.Unlock()

	return nil
}
