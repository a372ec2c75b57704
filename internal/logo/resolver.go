package logo

import (
	"context"
	"encoding/base64"
	"fmt"
	"net/http"
	"strings"
	"time"

	"github.com/hashicorp/go-retryablehttp"
	gocache "github.com/patrickmn/go-cache"

	"github.com/factuurlijk/factuurlijk/internal/logger"
	"github.com/factuurlijk/factuurlijk/internal/s3"
)

const (
	cacheExpiry     = 15 * time.Minute
	cacheCleanup    = 30 * time.Minute
	probeTimeout    = 5 * time.Second
	maxProbeRetries = 2
)

// Resolver turns a profile's logo reference into a URL a document can embed.
// The reference is either a data URL (used as-is), a public http(s) URL
// (probed before use), or an object id in the logo bucket (downloaded and
// inlined as a data URL).
//
// Resolution degrades gracefully: any failure yields an empty URL and the
// document renders the company name as text instead.
type Resolver interface {
	Resolve(ctx context.Context, logoRef string) string
}

type resolver struct {
	blobStore s3.Service
	client    *http.Client
	cache     *gocache.Cache
	logger    *logger.Logger
}

func NewResolver(blobStore s3.Service, log *logger.Logger) Resolver {
	rc := retryablehttp.NewClient()
	rc.RetryMax = maxProbeRetries
	rc.HTTPClient.Timeout = probeTimeout
	rc.Logger = nil

	return &resolver{
		blobStore: blobStore,
		client:    rc.StandardClient(),
		cache:     gocache.New(cacheExpiry, cacheCleanup),
		logger:    log,
	}
}

func (r *resolver) Resolve(ctx context.Context, logoRef string) string {
	if logoRef == "" {
		return ""
	}

	if strings.HasPrefix(logoRef, "data:") {
		return logoRef
	}

	if cached, found := r.cache.Get(logoRef); found {
		return cached.(string)
	}

	var resolved string
	if strings.HasPrefix(logoRef, "http://") || strings.HasPrefix(logoRef, "https://") {
		resolved = r.probePublicURL(ctx, logoRef)
	} else {
		resolved = r.downloadFromBlobStore(ctx, logoRef)
	}

	if resolved != "" {
		r.cache.Set(logoRef, resolved, gocache.DefaultExpiration)
	}
	return resolved
}

// downloadFromBlobStore fetches the stored logo and inlines it as a data URL
// so the snapshot pipeline needs no network access of its own.
func (r *resolver) downloadFromBlobStore(ctx context.Context, objectID string) string {
	if r.blobStore == nil {
		return ""
	}

	data, err := r.blobStore.GetObject(ctx, objectID, s3.ObjectTypeLogo)
	if err != nil {
		r.logger.Warnw("failed to download logo, rendering without it",
			"object_id", objectID, "error", err)
		return ""
	}

	contentType := http.DetectContentType(data)
	return fmt.Sprintf("data:%s;base64,%s", contentType, base64.StdEncoding.EncodeToString(data))
}

// probePublicURL checks that a public logo URL actually responds before a
// document embeds it. A dead URL would otherwise fail the whole snapshot.
func (r *resolver) probePublicURL(ctx context.Context, url string) string {
	req, err := http.NewRequestWithContext(ctx, http.MethodHead, url, nil)
	if err != nil {
		return ""
	}

	resp, err := r.client.Do(req)
	if err != nil {
		r.logger.Warnw("logo url unreachable, rendering without it",
			"url", url, "error", err)
		return ""
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		r.logger.Warnw("logo url returned non-200, rendering without it",
			"url", url, "status", resp.StatusCode)
		return ""
	}

	return url
}
