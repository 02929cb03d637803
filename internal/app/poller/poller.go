package poller

import (
	"context"
	"fmt"
	"math/rand"
	"sync"
	"time"

	"github.com/supchaser/postergen/internal/app/models"
	"github.com/supchaser/postergen/internal/backoff"
	"github.com/supchaser/postergen/internal/metrics"
	"github.com/supchaser/postergen/internal/utils/errs"
	"github.com/supchaser/postergen/internal/utils/logger"
	"go.uber.org/zap"
)

const (
	DefaultInterval         = 3000 * time.Millisecond
	DefaultMaxAttempts      = 30
	DefaultMaxFetchFailures = 3

	failedFallbackMessage = "task execution failed"
)

type State string

const (
	StatePolling    State = "polling"
	StateSucceeded  State = "succeeded"
	StateFailed     State = "failed"
	StateTimedOut   State = "timed_out"
	StateFatalError State = "fatal_error"
)

// Fetcher reads one snapshot of a remote task.
type Fetcher interface {
	FetchResult(ctx context.Context, taskID string) (*models.TaskResult, error)
}

// Policy holds the retry budgets. Pending statuses are re-polled every
// Interval and count against MaxAttempts; fetch errors count against
// MaxFetchFailures and are delayed according to RetryPolicy.
type Policy struct {
	Interval         time.Duration
	MaxAttempts      int
	MaxFetchFailures int
	RetryPolicy      string
	MaxRetryInterval time.Duration
}

func DefaultPolicy() Policy {
	return Policy{
		Interval:         DefaultInterval,
		MaxAttempts:      DefaultMaxAttempts,
		MaxFetchFailures: DefaultMaxFetchFailures,
		RetryPolicy:      backoff.PolicyFixed,
		MaxRetryInterval: DefaultInterval,
	}
}

func (p Policy) withDefaults() Policy {
	d := DefaultPolicy()
	if p.Interval <= 0 {
		p.Interval = d.Interval
	}
	if p.MaxAttempts <= 0 {
		p.MaxAttempts = d.MaxAttempts
	}
	if p.MaxFetchFailures < 0 {
		p.MaxFetchFailures = d.MaxFetchFailures
	}
	if !backoff.Valid(p.RetryPolicy) {
		p.RetryPolicy = d.RetryPolicy
	}
	if p.MaxRetryInterval < p.Interval {
		p.MaxRetryInterval = p.Interval
	}
	return p
}

// Outcome is delivered exactly once per handle unless the handle is cancelled.
type Outcome struct {
	TaskID   string
	State    State
	Result   *models.TaskResult
	Err      error
	Attempts int
	Fetches  int
}

type Poller struct {
	fetcher   Fetcher
	scheduler Scheduler
	policy    Policy
}

func New(fetcher Fetcher, scheduler Scheduler, policy Policy) *Poller {
	if scheduler == nil {
		scheduler = RealScheduler
	}
	return &Poller{
		fetcher:   fetcher,
		scheduler: scheduler,
		policy:    policy.withDefaults(),
	}
}

func (p *Poller) Policy() Policy {
	return p.policy
}

// Handle tracks one polling task. At most one tick is scheduled or in
// flight at any time.
type Handle struct {
	p      *Poller
	ctx    context.Context
	cancel context.CancelFunc
	taskID string
	done   func(Outcome)
	rng    *rand.Rand

	mu       sync.Mutex
	state    State
	stopped  bool
	timer    Timer
	attempts int
	failures int
	fetches  int
	detach   func() bool
}

// Start schedules the first fetch immediately and returns the handle.
// done runs once with the terminal outcome. Cancelling ctx behaves like
// Handle.Cancel.
func (p *Poller) Start(ctx context.Context, taskID string, done func(Outcome)) *Handle {
	const funcName = "Poller.Start"

	hctx, cancel := context.WithCancel(ctx)
	h := &Handle{
		p:      p,
		ctx:    hctx,
		cancel: cancel,
		taskID: taskID,
		done:   done,
		rng:    rand.New(rand.NewSource(time.Now().UnixNano())),
		state:  StatePolling,
	}

	h.mu.Lock()
	h.timer = p.scheduler.AfterFunc(0, h.tick)
	h.detach = context.AfterFunc(ctx, h.Cancel)
	h.mu.Unlock()

	logger.Debug("polling started",
		zap.String("function", funcName),
		zap.String("task_id", taskID),
		zap.Duration("interval", p.policy.Interval),
		zap.Int("max_attempts", p.policy.MaxAttempts),
	)

	return h
}

// Cancel stops the pending tick. A fetch already in flight is aborted
// through its context and its completion is discarded. Safe to call
// more than once.
func (h *Handle) Cancel() {
	h.mu.Lock()
	if h.stopped {
		h.mu.Unlock()
		return
	}
	h.stopped = true
	if h.timer != nil {
		h.timer.Stop()
		h.timer = nil
	}
	detach := h.detach
	h.mu.Unlock()

	if detach != nil {
		detach()
	}
	h.cancel()

	logger.Debug("polling cancelled",
		zap.String("function", "Handle.Cancel"),
		zap.String("task_id", h.taskID),
	)
}

func (h *Handle) TaskID() string {
	return h.taskID
}

// State returns the current poller state.
func (h *Handle) State() State {
	h.mu.Lock()
	defer h.mu.Unlock()
	return h.state
}

// Stopped reports whether the handle reached a terminal state or was cancelled.
func (h *Handle) Stopped() bool {
	h.mu.Lock()
	defer h.mu.Unlock()
	return h.stopped
}

func (h *Handle) tick() {
	const funcName = "Handle.tick"

	h.mu.Lock()
	if h.stopped {
		h.mu.Unlock()
		return
	}
	h.timer = nil
	h.fetches++
	h.mu.Unlock()

	result, err := h.p.fetcher.FetchResult(h.ctx, h.taskID)

	h.mu.Lock()
	if h.stopped {
		h.mu.Unlock()
		return
	}
	next, outcome := h.evaluate(result, err)
	if outcome != nil {
		h.stopped = true
		h.state = outcome.State
		outcome.Attempts = h.attempts
		outcome.Fetches = h.fetches
	} else {
		h.timer = h.p.scheduler.AfterFunc(next, h.tick)
	}
	detach := h.detach
	h.mu.Unlock()

	if outcome == nil {
		return
	}

	if detach != nil {
		detach()
	}
	h.cancel()

	logger.Info("polling finished",
		zap.String("function", funcName),
		zap.String("task_id", h.taskID),
		zap.String("state", string(outcome.State)),
		zap.Int("attempts", outcome.Attempts),
		zap.Int("fetches", outcome.Fetches),
		zap.Error(outcome.Err),
	)

	if h.done != nil {
		h.done(*outcome)
	}
}

// evaluate decides the next step for one settled fetch. It returns either
// the delay before the next tick or a terminal outcome. Caller holds h.mu.
func (h *Handle) evaluate(result *models.TaskResult, err error) (time.Duration, *Outcome) {
	const funcName = "Handle.evaluate"
	policy := h.p.policy

	if err != nil {
		metrics.PollFetchesTotal.WithLabelValues("error").Inc()

		if errs.IsPermanent(err) {
			return 0, h.fatal(err)
		}

		h.failures++
		if h.failures > policy.MaxFetchFailures {
			return 0, h.fatal(fmt.Errorf("fetch failed %d times: %w", h.failures, err))
		}

		delay := backoff.Compute(policy.RetryPolicy, policy.Interval, policy.MaxRetryInterval, h.failures-1, h.rng)
		logger.Warn("fetch failed, retrying",
			zap.String("function", funcName),
			zap.String("task_id", h.taskID),
			zap.Int("failures", h.failures),
			zap.Duration("delay", delay),
			zap.Error(err),
		)
		return delay, nil
	}

	if result == nil {
		return 0, h.fatal(errs.ErrMalformedResponse)
	}

	metrics.PollFetchesTotal.WithLabelValues("ok").Inc()
	h.failures = 0

	switch {
	case result.Status == models.StatusSucceeded:
		if len(result.ArtifactURLs) == 0 {
			return 0, h.fatal(errs.ErrNoArtifacts)
		}
		return 0, &Outcome{TaskID: h.taskID, State: StateSucceeded, Result: result}

	case result.Status == models.StatusFailed:
		msg := result.Message
		if msg == "" {
			msg = failedFallbackMessage
		}
		return 0, &Outcome{
			TaskID: h.taskID,
			State:  StateFailed,
			Result: result,
			Err:    fmt.Errorf("%w: %s", errs.ErrTaskFailed, msg),
		}

	case result.Status.IsInProgress():
		h.attempts++
		if h.attempts >= policy.MaxAttempts {
			return 0, &Outcome{
				TaskID: h.taskID,
				State:  StateTimedOut,
				Result: result,
				Err:    fmt.Errorf("%w after %d attempts", errs.ErrTimedOut, h.attempts),
			}
		}
		return policy.Interval, nil

	default:
		return 0, h.fatal(fmt.Errorf("%w: %q", errs.ErrUnexpectedStatus, result.Status))
	}
}

func (h *Handle) fatal(err error) *Outcome {
	return &Outcome{TaskID: h.taskID, State: StateFatalError, Err: err}
}
