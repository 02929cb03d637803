package repository

import (
	"context"
	"fmt"
	"sort"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/supchaser/postergen/internal/app"
	"github.com/supchaser/postergen/internal/app/gallery"
	"github.com/supchaser/postergen/internal/app/models"
	"github.com/supchaser/postergen/internal/utils/errs"
	"github.com/supchaser/postergen/internal/utils/logger"
	"go.uber.org/zap"
)

// GenerationRepository keeps the session state in memory: generation
// records, the accumulated gallery and pending notifications.
type GenerationRepository struct {
	generations       map[string]*models.Generation
	gallery           models.Gallery
	notifications     []models.Notification
	activeGenerations int
	maxGenerations    int
	now               func() time.Time
	mu                sync.Mutex
}

func CreateGenerationRepository(maxGenerations int) *GenerationRepository {
	return &GenerationRepository{
		generations:    make(map[string]*models.Generation),
		maxGenerations: maxGenerations,
		now:            time.Now,
	}
}

func copyGeneration(g *models.Generation) *models.Generation {
	c := *g
	if g.Result != nil {
		r := *g.Result
		c.Result = &r
	}
	return &c
}

func (r *GenerationRepository) CreateGeneration(ctx context.Context, ratio models.AspectRatio) (*models.Generation, error) {
	const funcName = "GenerationRepository.CreateGeneration"
	logger.Debug("attempting to create generation",
		zap.String("function", funcName),
		zap.String("aspect_ratio", string(ratio)),
	)

	r.mu.Lock()
	defer r.mu.Unlock()

	if r.activeGenerations >= r.maxGenerations {
		logger.Warn("maximum active generations limit reached",
			zap.String("function", funcName),
			zap.Int("active_generations", r.activeGenerations),
			zap.Int("max_generations", r.maxGenerations),
		)
		return nil, fmt.Errorf("%w: current %d, max %d", errs.ErrMaxGenerationsReached, r.activeGenerations, r.maxGenerations)
	}

	now := r.now()
	generation := &models.Generation{
		ID:          uuid.NewString(),
		AspectRatio: ratio,
		State:       models.GenerationSubmitted,
		CreatedAt:   now,
		UpdatedAt:   now,
	}

	r.generations[generation.ID] = generation
	r.activeGenerations++

	logger.Info("generation created",
		zap.String("function", funcName),
		zap.String("generation_id", generation.ID),
		zap.Int("active_generations", r.activeGenerations),
	)

	return copyGeneration(generation), nil
}

func (r *GenerationRepository) AttachTask(ctx context.Context, id string, taskID string) (*models.Generation, error) {
	const funcName = "GenerationRepository.AttachTask"

	r.mu.Lock()
	defer r.mu.Unlock()

	generation, exists := r.generations[id]
	if !exists {
		logger.Warn("generation not found when attaching task",
			zap.String("function", funcName),
			zap.String("generation_id", id),
		)
		return nil, errs.ErrGenerationNotFound
	}
	if !generation.State.IsActive() {
		return nil, fmt.Errorf("%w: state %s", errs.ErrGenerationFinished, generation.State)
	}

	generation.TaskID = taskID
	generation.State = models.GenerationPolling
	generation.UpdatedAt = r.now()

	logger.Info("task attached to generation",
		zap.String("function", funcName),
		zap.String("generation_id", id),
		zap.String("task_id", taskID),
	)

	return copyGeneration(generation), nil
}

// CompleteGeneration moves an active generation to a terminal state and
// releases its slot. A generation is completed at most once.
func (r *GenerationRepository) CompleteGeneration(ctx context.Context, id string, state models.GenerationState, result *models.TaskResult, errMsg string) (*models.Generation, error) {
	const funcName = "GenerationRepository.CompleteGeneration"
	logger.Debug("attempting to complete generation",
		zap.String("function", funcName),
		zap.String("generation_id", id),
		zap.String("new_state", string(state)),
	)

	r.mu.Lock()
	defer r.mu.Unlock()

	generation, exists := r.generations[id]
	if !exists {
		logger.Warn("generation not found when completing",
			zap.String("function", funcName),
			zap.String("generation_id", id),
		)
		return nil, errs.ErrGenerationNotFound
	}

	oldState := generation.State
	if !oldState.IsActive() {
		return nil, fmt.Errorf("%w: state %s", errs.ErrGenerationFinished, oldState)
	}
	if state.IsActive() {
		return nil, fmt.Errorf("%w: %s is not terminal", errs.ErrUnexpectedStatus, state)
	}

	generation.State = state
	generation.Error = errMsg
	if result != nil {
		res := *result
		generation.Result = &res
	}
	generation.UpdatedAt = r.now()
	r.activeGenerations--

	logger.Info("generation completed",
		zap.String("function", funcName),
		zap.String("generation_id", id),
		zap.String("old_state", string(oldState)),
		zap.String("new_state", string(state)),
		zap.Int("remaining_active_generations", r.activeGenerations),
	)

	return copyGeneration(generation), nil
}

func (r *GenerationRepository) GetGeneration(ctx context.Context, id string) (*models.Generation, error) {
	const funcName = "GenerationRepository.GetGeneration"

	r.mu.Lock()
	defer r.mu.Unlock()

	generation, exists := r.generations[id]
	if !exists {
		logger.Warn("generation not found",
			zap.String("function", funcName),
			zap.String("generation_id", id),
		)
		return nil, errs.ErrGenerationNotFound
	}

	return copyGeneration(generation), nil
}

func (r *GenerationRepository) GetAllGenerations(ctx context.Context) ([]*models.Generation, error) {
	const funcName = "GenerationRepository.GetAllGenerations"

	r.mu.Lock()
	defer r.mu.Unlock()

	generations := make([]*models.Generation, 0, len(r.generations))
	for _, g := range r.generations {
		generations = append(generations, copyGeneration(g))
	}
	sort.SliceStable(generations, func(i, j int) bool {
		return generations[i].CreatedAt.Before(generations[j].CreatedAt)
	})

	logger.Debug("retrieved all generations",
		zap.String("function", funcName),
		zap.Int("count", len(generations)),
	)

	return generations, nil
}

func (r *GenerationRepository) MergeGallery(ctx context.Context, urls []string) (models.Gallery, error) {
	const funcName = "GenerationRepository.MergeGallery"

	r.mu.Lock()
	defer r.mu.Unlock()

	before := len(r.gallery.URLs)
	r.gallery = gallery.Merge(r.gallery, urls)

	logger.Info("gallery merged",
		zap.String("function", funcName),
		zap.Int("incoming", len(urls)),
		zap.Int("added", len(r.gallery.URLs)-before),
		zap.Int("total", len(r.gallery.URLs)),
	)

	return models.Gallery{URLs: append([]string(nil), r.gallery.URLs...)}, nil
}

func (r *GenerationRepository) GetGallery(ctx context.Context) (models.Gallery, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	return models.Gallery{URLs: append([]string(nil), r.gallery.URLs...)}, nil
}

func (r *GenerationRepository) ResetGallery(ctx context.Context) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	r.gallery = models.Gallery{}

	logger.Info("gallery cleared",
		zap.String("function", "GenerationRepository.ResetGallery"),
	)

	return nil
}

func (r *GenerationRepository) AddNotification(ctx context.Context, n models.Notification) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if n.CreatedAt.IsZero() {
		n.CreatedAt = r.now()
	}
	r.notifications = append(r.notifications, n)

	return nil
}

// DrainNotifications returns the pending notifications in arrival order
// and forgets them.
func (r *GenerationRepository) DrainNotifications(ctx context.Context) ([]models.Notification, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	out := r.notifications
	r.notifications = nil
	if out == nil {
		out = []models.Notification{}
	}

	return out, nil
}

func (r *GenerationRepository) GetMaxGenerations() int {
	return r.maxGenerations
}

func (r *GenerationRepository) GetActiveGenerationsCount() int {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.activeGenerations
}

var _ app.GenerationRepository = (*GenerationRepository)(nil)
