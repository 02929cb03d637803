package client

import (
	"context"
	"fmt"
	"math/rand"
	"time"

	"github.com/supchaser/postergen/internal/app"
	"github.com/supchaser/postergen/internal/app/models"
	"github.com/supchaser/postergen/internal/utils/errs"
)

const offlineTimeLayout = "2006-01-02 15:04:05.000"

// OfflineClient fabricates tasks locally. Every task succeeds on the first
// fetch with the configured artifacts, which is enough to exercise the UI
// without spending generation credits.
type OfflineClient struct {
	creds     Credentials
	artifacts []string
	now       func() time.Time
}

func NewOfflineClient(creds Credentials, artifacts []string, now func() time.Time) *OfflineClient {
	if now == nil {
		now = time.Now
	}
	return &OfflineClient{creds: creds, artifacts: artifacts, now: now}
}

func (c *OfflineClient) Submit(ctx context.Context, req models.GenerationRequest) (*models.Task, error) {
	if c.creds.Get(ctx) == "" {
		return nil, errs.ErrPrecondition
	}
	if _, ok := req.AspectRatio.Remote(); !ok {
		return nil, errs.ErrInvalidAspectRatio
	}

	id := fmt.Sprintf("mock-%d-%07x", c.now().UnixMilli(), rand.Int31n(1<<28))
	return &models.Task{ID: id, Status: models.StatusPending}, nil
}

func (c *OfflineClient) FetchResult(ctx context.Context, taskID string) (*models.TaskResult, error) {
	if c.creds.Get(ctx) == "" {
		return nil, errs.ErrPrecondition
	}

	ts := c.now().Format(offlineTimeLayout)
	urls := append([]string(nil), c.artifacts...)

	return &models.TaskResult{
		TaskID:              taskID,
		Status:              models.StatusSucceeded,
		ArtifactURLs:        urls,
		BackgroundURLs:      urls,
		AuxiliaryParameters: []string{"mock-aux-param"},
		SubmitTime:          ts,
		ScheduledTime:       ts,
		EndTime:             ts,
	}, nil
}

var _ app.TaskClient = (*OfflineClient)(nil)
