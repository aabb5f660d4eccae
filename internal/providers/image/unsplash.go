package image

import (
	"context"
	"fmt"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/sandevgo/skycast/internal/core"
	"github.com/sandevgo/skycast/pkg/retry"
)

// searchTerms are tried in order until one resolves. More specific
// framings first: skylines photograph better than generic city shots.
var searchTerms = []string{
	"%s city skyline",
	"%s cityscape",
	"%s landmarks",
	"%s architecture",
	"%s downtown",
}

// fallbackImages is a curated pool used when the search endpoint is
// unreachable. Cities are spread across it by a deterministic hash so
// the same city always gets the same image.
var fallbackImages = []string{
	"https://images.unsplash.com/photo-1449824913935-59a10b8d2000?w=800&q=80",
	"https://images.unsplash.com/photo-1477414348463-c0eb7f1359b6?w=800&q=80",
	"https://images.unsplash.com/photo-1534088568595-a066f410bcda?w=800&q=80",
	"https://images.unsplash.com/photo-1515694346937-94d85e41e6f0?w=800&q=80",
	"https://images.unsplash.com/photo-1513635269975-59663e0ac1ad?w=800&q=80",
	"https://images.unsplash.com/photo-1587330979470-3016b6702d89?w=800&q=80",
	"https://images.unsplash.com/photo-1539037116277-4db20889f2d4?w=800&q=80",
	"https://images.unsplash.com/photo-1496442226666-8d4d0e62e6e9?w=800&q=80",
	"https://images.unsplash.com/photo-1540959733332-eab4deabeeaf?w=800&q=80",
	"https://images.unsplash.com/photo-1512453979798-5ea266f8880c?w=800&q=80",
	"https://images.unsplash.com/photo-1506905925346-21bda4d32df4?w=800&q=80",
	"https://images.unsplash.com/photo-1534351590666-13e3e96b5017?w=800&q=80",
	"https://images.unsplash.com/photo-1483729558449-99ef09a8c325?w=800&q=80",
	"https://images.unsplash.com/photo-1552832230-c0197dd311b5?w=800&q=80",
	"https://images.unsplash.com/photo-1541432901042-2d8bd64b4a9b?w=800&q=80",
	"https://images.unsplash.com/photo-1508009603885-50cf7c579365?w=800&q=80",
}

// Unsplash resolves a background image URL for a city. It implements
// core.ImageProvider.
type Unsplash struct {
	client  *http.Client
	baseURL string
	retrier *retry.Retrier
}

func NewUnsplash(client *http.Client, baseURL string) *Unsplash {
	if client == nil {
		client = &http.Client{Timeout: 10 * time.Second}
	}
	if baseURL == "" {
		baseURL = "https://source.unsplash.com"
	}

	cfg := retry.NewDefaultConfig()
	cfg.MaxRetries = 2
	cfg.InitialDelay = 200 * time.Millisecond

	return &Unsplash{
		client:  client,
		baseURL: baseURL,
		retrier: retry.NewRetrier(cfg),
	}
}

// Resolve probes the search terms with HEAD requests and returns the
// first URL that answers. On total failure it falls back to the curated
// pool; Resolve never returns an error a caller has to handle specially.
func (u *Unsplash) Resolve(ctx context.Context, city string) (core.LocationImage, error) {
	for _, term := range searchTerms {
		query := url.QueryEscape(fmt.Sprintf(term, city))
		imageURL := fmt.Sprintf("%s/800x600/?%s", u.baseURL, query)

		if err := u.retrier.Do(ctx, func() error {
			return u.probe(ctx, imageURL)
		}); err != nil {
			continue
		}

		return core.LocationImage{
			URL:         imageURL,
			Description: fmt.Sprintf("Beautiful view of %s", city),
		}, nil
	}

	return fallbackImage(city), nil
}

func (u *Unsplash) probe(ctx context.Context, imageURL string) error {
	req, err := http.NewRequestWithContext(ctx, http.MethodHead, imageURL, nil)
	if err != nil {
		return err
	}

	resp, err := u.client.Do(req)
	if err != nil {
		return err
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode >= 400 {
		return fmt.Errorf("http %d", resp.StatusCode)
	}
	return nil
}

// fallbackImage picks deterministically from the pool using a
// position-weighted character hash of the city name.
func fallbackImage(city string) core.LocationImage {
	hash := 0
	for i, r := range strings.ToLower(strings.TrimSpace(city)) {
		hash += int(r) * (i + 1)
	}
	idx := hash % len(fallbackImages)
	if idx < 0 {
		idx += len(fallbackImages)
	}

	return core.LocationImage{
		URL:         fallbackImages[idx],
		Description: fmt.Sprintf("Scenic cityscape representing %s", city),
	}
}
