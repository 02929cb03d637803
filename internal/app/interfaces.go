package app

import (
	"context"

	"github.com/supchaser/postergen/internal/app/models"
)

//go:generate mockgen -source=interfaces.go -destination=mocks/mock.go

type CredentialStore interface {
	Get(ctx context.Context) string
	Set(ctx context.Context, secret string)
}

type TaskClient interface {
	Submit(ctx context.Context, req models.GenerationRequest) (*models.Task, error)
	FetchResult(ctx context.Context, taskID string) (*models.TaskResult, error)
}

type ImageRelay interface {
	Fetch(ctx context.Context, imageURL string) (*models.Image, error)
}

type GenerationRepository interface {
	CreateGeneration(ctx context.Context, ratio models.AspectRatio) (*models.Generation, error)
	AttachTask(ctx context.Context, id string, taskID string) (*models.Generation, error)
	CompleteGeneration(ctx context.Context, id string, state models.GenerationState, result *models.TaskResult, errMsg string) (*models.Generation, error)
	GetGeneration(ctx context.Context, id string) (*models.Generation, error)
	GetAllGenerations(ctx context.Context) ([]*models.Generation, error)
	MergeGallery(ctx context.Context, urls []string) (models.Gallery, error)
	GetGallery(ctx context.Context) (models.Gallery, error)
	ResetGallery(ctx context.Context) error
	AddNotification(ctx context.Context, n models.Notification) error
	DrainNotifications(ctx context.Context) ([]models.Notification, error)
	GetMaxGenerations() int
	GetActiveGenerationsCount() int
}

type GenerationUsecase interface {
	SetCredential(ctx context.Context, secret string)
	CredentialConfigured(ctx context.Context) bool
	Submit(ctx context.Context, req models.GenerationRequest) (*models.Generation, error)
	GetGeneration(ctx context.Context, id string) (*models.Generation, error)
	GetAllGenerations(ctx context.Context) ([]*models.Generation, error)
	CancelGeneration(ctx context.Context, id string) (*models.Generation, error)
	GetGallery(ctx context.Context) ([]models.ArtifactView, error)
	ResetSession(ctx context.Context) error
	MarkArtifact(ctx context.Context, url string, state models.LoadState) (models.LoadState, error)
	RetryArtifact(ctx context.Context, url string) (models.LoadState, error)
	ToggleSelection(ctx context.Context, url string) (bool, error)
	BuildArchive(ctx context.Context) (*models.Archive, error)
	Notifications(ctx context.Context) ([]models.Notification, error)
	ProxyImage(ctx context.Context, imageURL string) (*models.Image, error)
	GetMaxGenerations() int
	GetActiveGenerationsCount() int
}
