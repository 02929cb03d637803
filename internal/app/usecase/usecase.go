package usecase

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"time"

	"github.com/supchaser/postergen/internal/app"
	"github.com/supchaser/postergen/internal/app/models"
	"github.com/supchaser/postergen/internal/app/poller"
	"github.com/supchaser/postergen/internal/app/tracker"
	"github.com/supchaser/postergen/internal/metrics"
	"github.com/supchaser/postergen/internal/utils/errs"
	"github.com/supchaser/postergen/internal/utils/logger"
	"github.com/supchaser/postergen/internal/utils/validate"
	"go.uber.org/zap"
)

var outcomeStates = map[poller.State]models.GenerationState{
	poller.StateSucceeded:  models.GenerationSucceeded,
	poller.StateFailed:     models.GenerationFailed,
	poller.StateTimedOut:   models.GenerationTimedOut,
	poller.StateFatalError: models.GenerationFatal,
}

type GenerationUsecase struct {
	repository app.GenerationRepository
	creds      app.CredentialStore
	client     app.TaskClient
	relay      app.ImageRelay
	poller     *poller.Poller
	tracker    *tracker.Tracker
	now        func() time.Time

	mu      sync.Mutex
	handles map[string]*poller.Handle
}

func CreateGenerationUsecase(
	repository app.GenerationRepository,
	creds app.CredentialStore,
	client app.TaskClient,
	relay app.ImageRelay,
	p *poller.Poller,
	tr *tracker.Tracker,
) *GenerationUsecase {
	return &GenerationUsecase{
		repository: repository,
		creds:      creds,
		client:     client,
		relay:      relay,
		poller:     p,
		tracker:    tr,
		now:        time.Now,
		handles:    make(map[string]*poller.Handle),
	}
}

func (u *GenerationUsecase) SetCredential(ctx context.Context, secret string) {
	const funcName = "GenerationUsecase.SetCredential"
	logger.Info("updating api key",
		zap.String("function", funcName),
		zap.Bool("empty", secret == ""),
	)

	u.creds.Set(ctx, secret)
}

func (u *GenerationUsecase) CredentialConfigured(ctx context.Context) bool {
	return u.creds.Get(ctx) != ""
}

// Submit validates req, creates the remote task and starts polling it in
// the background. The returned record is in the polling state; its
// terminal state is written by the poller.
func (u *GenerationUsecase) Submit(ctx context.Context, req models.GenerationRequest) (*models.Generation, error) {
	const funcName = "GenerationUsecase.Submit"
	logger.Debug("submitting generation",
		zap.String("function", funcName),
		zap.String("title", req.Title),
	)

	if err := validate.NormalizeGenerationRequest(&req); err != nil {
		metrics.GenerationsSubmittedTotal.WithLabelValues("invalid").Inc()
		logger.Warn("invalid generation request",
			zap.String("function", funcName),
			zap.Error(err),
		)
		return nil, err
	}

	if !u.CredentialConfigured(ctx) {
		metrics.GenerationsSubmittedTotal.WithLabelValues("no_credential").Inc()
		logger.Warn("api key is not configured",
			zap.String("function", funcName),
		)
		return nil, errs.ErrPrecondition
	}

	generation, err := u.repository.CreateGeneration(ctx, req.AspectRatio)
	if err != nil {
		metrics.GenerationsSubmittedTotal.WithLabelValues("rejected").Inc()
		logger.Error("failed to create generation",
			zap.String("function", funcName),
			zap.Error(err),
		)
		return nil, err
	}

	task, err := u.client.Submit(ctx, req)
	if err != nil {
		metrics.GenerationsSubmittedTotal.WithLabelValues("error").Inc()
		logger.Error("failed to submit task",
			zap.String("function", funcName),
			zap.String("generation_id", generation.ID),
			zap.Error(err),
		)
		if _, cerr := u.repository.CompleteGeneration(ctx, generation.ID, models.GenerationFatal, nil, err.Error()); cerr != nil {
			logger.Error("failed to record submit failure",
				zap.String("function", funcName),
				zap.String("generation_id", generation.ID),
				zap.Error(cerr),
			)
		}
		u.notify(ctx, generation.ID, models.NotificationError, failureMessage(err))
		return nil, err
	}

	generation, err = u.repository.AttachTask(ctx, generation.ID, task.ID)
	if err != nil {
		logger.Error("failed to attach task",
			zap.String("function", funcName),
			zap.String("task_id", task.ID),
			zap.Error(err),
		)
		return nil, err
	}

	metrics.GenerationsSubmittedTotal.WithLabelValues("accepted").Inc()

	id, ratio, started := generation.ID, generation.AspectRatio, generation.CreatedAt
	u.mu.Lock()
	u.handles[id] = u.poller.Start(context.Background(), task.ID, func(out poller.Outcome) {
		u.finish(id, ratio, started, out)
	})
	u.mu.Unlock()

	logger.Info("generation submitted",
		zap.String("function", funcName),
		zap.String("generation_id", id),
		zap.String("task_id", task.ID),
	)

	return generation, nil
}

// finish records a terminal poller outcome: the generation state, the
// gallery for successes and exactly one notification.
func (u *GenerationUsecase) finish(id string, ratio models.AspectRatio, started time.Time, out poller.Outcome) {
	const funcName = "GenerationUsecase.finish"
	ctx := context.Background()

	u.mu.Lock()
	delete(u.handles, id)
	u.mu.Unlock()

	state, ok := outcomeStates[out.State]
	if !ok {
		state = models.GenerationFatal
	}

	var result *models.TaskResult
	if out.Result != nil {
		r := *out.Result
		r.AspectRatio = ratio
		result = &r
	}

	errMsg := ""
	if out.Err != nil {
		errMsg = out.Err.Error()
	}

	if _, err := u.repository.CompleteGeneration(ctx, id, state, result, errMsg); err != nil {
		logger.Warn("generation already finished",
			zap.String("function", funcName),
			zap.String("generation_id", id),
			zap.Error(err),
		)
		return
	}

	metrics.GenerationOutcomesTotal.WithLabelValues(string(state)).Inc()
	metrics.GenerationLatencySeconds.WithLabelValues(string(state)).Observe(u.now().Sub(started).Seconds())

	if state != models.GenerationSucceeded {
		u.notify(ctx, id, models.NotificationError, failureMessage(out.Err))
		return
	}

	if _, err := u.repository.MergeGallery(ctx, result.ArtifactURLs); err != nil {
		logger.Error("failed to merge gallery",
			zap.String("function", funcName),
			zap.String("generation_id", id),
			zap.Error(err),
		)
	}
	u.tracker.Observe(result.ArtifactURLs...)
	u.notify(ctx, id, models.NotificationSuccess, fmt.Sprintf("Generated %d poster(s)", len(result.ArtifactURLs)))

	logger.Info("generation succeeded",
		zap.String("function", funcName),
		zap.String("generation_id", id),
		zap.String("task_id", out.TaskID),
		zap.Int("artifacts", len(result.ArtifactURLs)),
		zap.Int("fetches", out.Fetches),
	)
}

func failureMessage(err error) string {
	switch {
	case err == nil:
		return "generation failed"
	case errors.Is(err, errs.ErrPrecondition):
		return "API key is not set. Configure it before generating posters."
	default:
		return err.Error()
	}
}

func (u *GenerationUsecase) notify(ctx context.Context, id string, level models.NotificationLevel, msg string) {
	err := u.repository.AddNotification(ctx, models.Notification{
		GenerationID: id,
		Level:        level,
		Message:      msg,
		CreatedAt:    u.now(),
	})
	if err != nil {
		logger.Error("failed to add notification",
			zap.String("function", "GenerationUsecase.notify"),
			zap.String("generation_id", id),
			zap.Error(err),
		)
	}
}

func (u *GenerationUsecase) GetGeneration(ctx context.Context, id string) (*models.Generation, error) {
	const funcName = "GenerationUsecase.GetGeneration"
	logger.Debug("getting generation",
		zap.String("function", funcName),
		zap.String("generation_id", id),
	)

	generation, err := u.repository.GetGeneration(ctx, id)
	if err != nil {
		logger.Error("failed to get generation",
			zap.String("function", funcName),
			zap.String("generation_id", id),
			zap.Error(err),
		)
		return nil, err
	}

	return generation, nil
}

func (u *GenerationUsecase) GetAllGenerations(ctx context.Context) ([]*models.Generation, error) {
	const funcName = "GenerationUsecase.GetAllGenerations"

	generations, err := u.repository.GetAllGenerations(ctx)
	if err != nil {
		logger.Error("failed to get all generations",
			zap.String("function", funcName),
			zap.Error(err),
		)
		return nil, err
	}

	return generations, nil
}

// CancelGeneration stops polling and marks the generation cancelled.
// Cancellation is not reported as a notification.
func (u *GenerationUsecase) CancelGeneration(ctx context.Context, id string) (*models.Generation, error) {
	const funcName = "GenerationUsecase.CancelGeneration"

	u.mu.Lock()
	h := u.handles[id]
	delete(u.handles, id)
	u.mu.Unlock()

	if h != nil {
		h.Cancel()
	}

	generation, err := u.repository.CompleteGeneration(ctx, id, models.GenerationCancelled, nil, "cancelled")
	if err != nil {
		logger.Warn("failed to cancel generation",
			zap.String("function", funcName),
			zap.String("generation_id", id),
			zap.Error(err),
		)
		return nil, err
	}

	metrics.GenerationOutcomesTotal.WithLabelValues(string(models.GenerationCancelled)).Inc()
	logger.Info("generation cancelled",
		zap.String("function", funcName),
		zap.String("generation_id", id),
	)

	return generation, nil
}

// Shutdown cancels every poller that is still running.
func (u *GenerationUsecase) Shutdown() {
	u.mu.Lock()
	handles := u.handles
	u.handles = make(map[string]*poller.Handle)
	u.mu.Unlock()

	for _, h := range handles {
		h.Cancel()
	}

	logger.Info("pollers stopped",
		zap.String("function", "GenerationUsecase.Shutdown"),
		zap.Int("count", len(handles)),
	)
}

func (u *GenerationUsecase) GetGallery(ctx context.Context) ([]models.ArtifactView, error) {
	g, err := u.repository.GetGallery(ctx)
	if err != nil {
		return nil, err
	}

	known := make(map[string]models.ArtifactView)
	for _, v := range u.tracker.Views() {
		known[v.URL] = v
	}

	views := make([]models.ArtifactView, 0, len(g.URLs))
	for _, url := range g.URLs {
		v, ok := known[url]
		if !ok {
			v = models.ArtifactView{URL: url, State: models.LoadLoading}
		}
		views = append(views, v)
	}

	return views, nil
}

// ResetSession starts a new session: the gallery, artifact states and
// selection are cleared. Running generations are left alone.
func (u *GenerationUsecase) ResetSession(ctx context.Context) error {
	if err := u.repository.ResetGallery(ctx); err != nil {
		return err
	}
	u.tracker.Reset()

	logger.Info("session reset",
		zap.String("function", "GenerationUsecase.ResetSession"),
	)
	return nil
}

func (u *GenerationUsecase) inGallery(ctx context.Context, url string) error {
	g, err := u.repository.GetGallery(ctx)
	if err != nil {
		return err
	}
	for _, known := range g.URLs {
		if known == url {
			return nil
		}
	}
	return errs.ErrArtifactNotFound
}

func (u *GenerationUsecase) MarkArtifact(ctx context.Context, url string, state models.LoadState) (models.LoadState, error) {
	const funcName = "GenerationUsecase.MarkArtifact"

	if err := u.inGallery(ctx, url); err != nil {
		return "", err
	}

	var err error
	switch state {
	case models.LoadLoaded:
		err = u.tracker.MarkLoaded(url)
	case models.LoadFailed:
		err = u.tracker.MarkFailed(url)
	default:
		err = fmt.Errorf("%w: cannot set %q directly", errs.ErrInvalidTransition, state)
	}
	if err != nil {
		logger.Warn("artifact state rejected",
			zap.String("function", funcName),
			zap.String("url", url),
			zap.String("state", string(state)),
			zap.Error(err),
		)
		return "", err
	}

	current, _ := u.tracker.State(url)
	return current, nil
}

func (u *GenerationUsecase) RetryArtifact(ctx context.Context, url string) (models.LoadState, error) {
	if err := u.inGallery(ctx, url); err != nil {
		return "", err
	}
	return u.tracker.Retry(ctx, url)
}

func (u *GenerationUsecase) ToggleSelection(ctx context.Context, url string) (bool, error) {
	if err := u.inGallery(ctx, url); err != nil {
		return false, err
	}
	return u.tracker.ToggleSelection(url)
}

func (u *GenerationUsecase) Notifications(ctx context.Context) ([]models.Notification, error) {
	return u.repository.DrainNotifications(ctx)
}

func (u *GenerationUsecase) ProxyImage(ctx context.Context, imageURL string) (*models.Image, error) {
	const funcName = "GenerationUsecase.ProxyImage"

	img, err := u.relay.Fetch(ctx, imageURL)
	if err != nil {
		logger.Error("failed to proxy image",
			zap.String("function", funcName),
			zap.String("url", imageURL),
			zap.Error(err),
		)
		return nil, err
	}

	return img, nil
}

func (u *GenerationUsecase) GetMaxGenerations() int {
	return u.repository.GetMaxGenerations()
}

func (u *GenerationUsecase) GetActiveGenerationsCount() int {
	return u.repository.GetActiveGenerationsCount()
}

var _ app.GenerationUsecase = (*GenerationUsecase)(nil)
