package relay

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"github.com/supchaser/postergen/internal/app"
	"github.com/supchaser/postergen/internal/app/models"
	"github.com/supchaser/postergen/internal/metrics"
	"github.com/supchaser/postergen/internal/utils/errs"
	"github.com/supchaser/postergen/internal/utils/logger"
	"go.uber.org/zap"
)

const (
	acceptImages       = "image/jpeg, image/png, image/webp, image/*"
	defaultContentType = "image/jpeg"
	maxImageBytes      = 32 << 20
)

// Relay forwards artifact bytes from hosts that the browser cannot read
// directly.
type Relay struct {
	client     *http.Client
	forceHTTPS bool
	maxBytes   int64
}

// FileExt picks a file extension for a relayed content type.
func FileExt(contentType string) string {
	switch {
	case strings.HasPrefix(contentType, "image/png"):
		return ".png"
	case strings.HasPrefix(contentType, "image/webp"):
		return ".webp"
	default:
		return ".jpg"
	}
}

func New(client *http.Client, forceHTTPS bool) *Relay {
	if client == nil {
		client = &http.Client{Timeout: 60 * time.Second}
	}
	return &Relay{client: client, forceHTTPS: forceHTTPS, maxBytes: maxImageBytes}
}

func (r *Relay) Fetch(ctx context.Context, imageURL string) (*models.Image, error) {
	const funcName = "Relay.Fetch"

	imageURL = strings.TrimSpace(imageURL)
	if imageURL == "" {
		return nil, errs.ErrImageURLRequired
	}
	if r.forceHTTPS && strings.HasPrefix(imageURL, "http://") {
		imageURL = "https://" + strings.TrimPrefix(imageURL, "http://")
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, imageURL, nil)
	if err != nil {
		metrics.RelayRequestsTotal.WithLabelValues("error").Inc()
		return nil, fmt.Errorf("creating request: %w", err)
	}
	req.Header.Set("Accept", acceptImages)

	resp, err := r.client.Do(req)
	if err != nil {
		metrics.RelayRequestsTotal.WithLabelValues("error").Inc()
		logger.Warn("image fetch failed",
			zap.String("function", funcName),
			zap.String("url", imageURL),
			zap.Error(err),
		)
		return nil, fmt.Errorf("fetching image: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		metrics.RelayRequestsTotal.WithLabelValues("error").Inc()
		return nil, fmt.Errorf("fetching image: status %d %s", resp.StatusCode, http.StatusText(resp.StatusCode))
	}

	data, err := io.ReadAll(io.LimitReader(resp.Body, r.maxBytes+1))
	if err != nil {
		metrics.RelayRequestsTotal.WithLabelValues("error").Inc()
		return nil, fmt.Errorf("reading image: %w", err)
	}
	if int64(len(data)) > r.maxBytes {
		metrics.RelayRequestsTotal.WithLabelValues("error").Inc()
		logger.Warn("image exceeds relay limit",
			zap.String("function", funcName),
			zap.String("url", imageURL),
			zap.Int64("limit", r.maxBytes),
		)
		return nil, fmt.Errorf("%w: limit is %d bytes", errs.ErrImageTooLarge, r.maxBytes)
	}

	contentType := resp.Header.Get("Content-Type")
	if contentType == "" {
		contentType = defaultContentType
	}

	metrics.RelayRequestsTotal.WithLabelValues("ok").Inc()
	logger.Debug("image relayed",
		zap.String("function", funcName),
		zap.String("url", imageURL),
		zap.String("content_type", contentType),
		zap.Int("bytes", len(data)),
	)

	return &models.Image{Data: data, ContentType: contentType}, nil
}

var _ app.ImageRelay = (*Relay)(nil)
