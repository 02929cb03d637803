package tracker

import (
	"context"
	"fmt"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"sync"
	"time"

	"github.com/supchaser/postergen/internal/app/models"
	"github.com/supchaser/postergen/internal/metrics"
	"github.com/supchaser/postergen/internal/utils/errs"
	"github.com/supchaser/postergen/internal/utils/logger"
	"go.uber.org/zap"
)

const cacheBustParam = "t"

// Prober checks whether an artifact URL can be loaded.
type Prober interface {
	Probe(ctx context.Context, url string) error
}

type entry struct {
	state    models.LoadState
	selected bool
}

// Tracker keeps the load state and download selection of each artifact.
// URLs are independent of each other; the order in which they were first
// observed is kept for listing.
type Tracker struct {
	prober Prober
	now    func() time.Time

	mu      sync.Mutex
	entries map[string]*entry
	order   []string
}

func New(prober Prober, now func() time.Time) *Tracker {
	if now == nil {
		now = time.Now
	}
	return &Tracker{
		prober:  prober,
		now:     now,
		entries: make(map[string]*entry),
	}
}

// Observe registers URLs in the Loading state. Known URLs are left alone.
func (t *Tracker) Observe(urls ...string) {
	t.mu.Lock()
	defer t.mu.Unlock()

	for _, u := range urls {
		t.observeLocked(u)
	}
}

func (t *Tracker) observeLocked(u string) *entry {
	e, ok := t.entries[u]
	if !ok {
		e = &entry{state: models.LoadLoading}
		t.entries[u] = e
		t.order = append(t.order, u)
	}
	return e
}

// State returns the load state of url and whether it is known.
func (t *Tracker) State(u string) (models.LoadState, bool) {
	t.mu.Lock()
	defer t.mu.Unlock()

	e, ok := t.entries[u]
	if !ok {
		return "", false
	}
	return e.state, true
}

// MarkLoaded moves url from Loading to Loaded. An unseen url starts in
// Loading first. Failed artifacts must go through Retry.
func (t *Tracker) MarkLoaded(u string) error {
	t.mu.Lock()
	defer t.mu.Unlock()

	e := t.observeLocked(u)
	switch e.state {
	case models.LoadLoaded:
		return nil
	case models.LoadLoading:
		t.transitionLocked(u, e, models.LoadLoaded)
		return nil
	default:
		return fmt.Errorf("%w: %s -> %s", errs.ErrInvalidTransition, e.state, models.LoadLoaded)
	}
}

// MarkFailed moves url from Loading to Failed and drops it from the
// selection.
func (t *Tracker) MarkFailed(u string) error {
	t.mu.Lock()
	defer t.mu.Unlock()

	e := t.observeLocked(u)
	switch e.state {
	case models.LoadFailed:
		return nil
	case models.LoadLoading:
		t.transitionLocked(u, e, models.LoadFailed)
		e.selected = false
		return nil
	default:
		return fmt.Errorf("%w: %s -> %s", errs.ErrInvalidTransition, e.state, models.LoadFailed)
	}
}

func (t *Tracker) transitionLocked(u string, e *entry, to models.LoadState) {
	logger.Debug("artifact state changed",
		zap.String("function", "Tracker.transition"),
		zap.String("url", u),
		zap.String("from", string(e.state)),
		zap.String("to", string(to)),
	)
	e.state = to
	metrics.ArtifactTransitionsTotal.WithLabelValues(string(to)).Inc()
}

// Retry moves a Failed url back to Loading and probes a cache-busted
// variant of it. The probe outcome settles the state unless something
// else settled it first. The returned state is the one after the probe.
func (t *Tracker) Retry(ctx context.Context, u string) (models.LoadState, error) {
	const funcName = "Tracker.Retry"

	t.mu.Lock()
	e, ok := t.entries[u]
	if !ok {
		t.mu.Unlock()
		return "", errs.ErrArtifactNotFound
	}
	if e.state != models.LoadFailed {
		state := e.state
		t.mu.Unlock()
		return state, fmt.Errorf("%w: %s -> %s", errs.ErrInvalidTransition, state, models.LoadLoading)
	}
	t.transitionLocked(u, e, models.LoadLoading)
	t.mu.Unlock()

	probeURL := CacheBust(u, t.now())
	err := t.prober.Probe(ctx, probeURL)

	if err != nil {
		logger.Warn("artifact retry failed",
			zap.String("function", funcName),
			zap.String("url", probeURL),
			zap.Error(err),
		)
	}

	t.mu.Lock()
	defer t.mu.Unlock()

	e, ok = t.entries[u]
	if !ok {
		return "", errs.ErrArtifactNotFound
	}
	if e.state == models.LoadLoading {
		if err != nil {
			t.transitionLocked(u, e, models.LoadFailed)
			e.selected = false
		} else {
			t.transitionLocked(u, e, models.LoadLoaded)
		}
	}
	return e.state, nil
}

// ToggleSelection flips the download selection of url and returns the
// new value. Failed artifacts cannot be selected.
func (t *Tracker) ToggleSelection(u string) (bool, error) {
	t.mu.Lock()
	defer t.mu.Unlock()

	e, ok := t.entries[u]
	if !ok {
		return false, errs.ErrArtifactNotFound
	}
	if e.state == models.LoadFailed {
		return e.selected, errs.ErrArtifactFailed
	}
	e.selected = !e.selected
	return e.selected, nil
}

// Selected returns the selected URLs in observation order.
func (t *Tracker) Selected() []string {
	t.mu.Lock()
	defer t.mu.Unlock()

	var out []string
	for _, u := range t.order {
		if e := t.entries[u]; e.selected && e.state != models.LoadFailed {
			out = append(out, u)
		}
	}
	return out
}

// Views returns the state of every known URL in observation order.
func (t *Tracker) Views() []models.ArtifactView {
	t.mu.Lock()
	defer t.mu.Unlock()

	views := make([]models.ArtifactView, 0, len(t.order))
	for _, u := range t.order {
		e := t.entries[u]
		views = append(views, models.ArtifactView{URL: u, State: e.state, Selected: e.selected})
	}
	return views
}

// Reset forgets every URL.
func (t *Tracker) Reset() {
	t.mu.Lock()
	defer t.mu.Unlock()

	t.entries = make(map[string]*entry)
	t.order = nil
}

// CacheBust returns u with a time-based query parameter so that caches
// along the way treat it as a fresh request.
func CacheBust(u string, now time.Time) string {
	stamp := strconv.FormatInt(now.UnixMilli(), 10)

	parsed, err := url.Parse(u)
	if err != nil {
		sep := "?"
		if strings.Contains(u, "?") {
			sep = "&"
		}
		return u + sep + cacheBustParam + "=" + stamp
	}

	q := parsed.Query()
	q.Set(cacheBustParam, stamp)
	parsed.RawQuery = q.Encode()
	return parsed.String()
}

// HTTPProber probes with a GET and accepts any 2xx answer.
type HTTPProber struct {
	client *http.Client
}

func NewHTTPProber(client *http.Client) *HTTPProber {
	if client == nil {
		client = &http.Client{Timeout: 30 * time.Second}
	}
	return &HTTPProber{client: client}
}

func (p *HTTPProber) Probe(ctx context.Context, u string) error {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, u, nil)
	if err != nil {
		return fmt.Errorf("%w: %v", errs.ErrArtifactLoad, err)
	}

	resp, err := p.client.Do(req)
	if err != nil {
		return fmt.Errorf("%w: %v", errs.ErrArtifactLoad, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return fmt.Errorf("%w: status %d", errs.ErrArtifactLoad, resp.StatusCode)
	}
	return nil
}
