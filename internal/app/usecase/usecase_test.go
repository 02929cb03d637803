package usecase

import (
	"archive/zip"
	"bytes"
	"context"
	"errors"
	"sort"
	"sync"
	"testing"
	"time"

	"github.com/golang/mock/gomock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	mock_app "github.com/supchaser/postergen/internal/app/mocks"
	"github.com/supchaser/postergen/internal/app/models"
	"github.com/supchaser/postergen/internal/app/poller"
	"github.com/supchaser/postergen/internal/app/repository"
	"github.com/supchaser/postergen/internal/app/tracker"
	"github.com/supchaser/postergen/internal/utils/errs"
	"github.com/supchaser/postergen/internal/utils/logger"
)

func TestMain(m *testing.M) {
	logger.InitTestLogger()
	m.Run()
}

// manualScheduler queues callbacks until run is called.
type manualScheduler struct {
	mu    sync.Mutex
	queue []*manualTimer
}

type manualTimer struct {
	at      time.Duration
	f       func()
	stopped bool
}

func (t *manualTimer) Stop() bool {
	was := !t.stopped
	t.stopped = true
	return was
}

func (s *manualScheduler) AfterFunc(d time.Duration, f func()) poller.Timer {
	s.mu.Lock()
	defer s.mu.Unlock()
	t := &manualTimer{at: d, f: f}
	s.queue = append(s.queue, t)
	return t
}

func (s *manualScheduler) run() {
	for {
		s.mu.Lock()
		if len(s.queue) == 0 {
			s.mu.Unlock()
			return
		}
		sort.SliceStable(s.queue, func(i, j int) bool { return s.queue[i].at < s.queue[j].at })
		t := s.queue[0]
		s.queue = s.queue[1:]
		s.mu.Unlock()

		if !t.stopped {
			t.f()
		}
	}
}

type okProber struct{}

func (okProber) Probe(ctx context.Context, url string) error { return nil }

type fixture struct {
	ctrl   *gomock.Controller
	repo   *repository.GenerationRepository
	creds  *mock_app.MockCredentialStore
	client *mock_app.MockTaskClient
	relay  *mock_app.MockImageRelay
	sched  *manualScheduler
	uc     *GenerationUsecase
}

func newFixture(t *testing.T) *fixture {
	ctrl := gomock.NewController(t)
	f := &fixture{
		ctrl:   ctrl,
		repo:   repository.CreateGenerationRepository(5),
		creds:  mock_app.NewMockCredentialStore(ctrl),
		client: mock_app.NewMockTaskClient(ctrl),
		relay:  mock_app.NewMockImageRelay(ctrl),
		sched:  &manualScheduler{},
	}
	p := poller.New(f.client, f.sched, poller.DefaultPolicy())
	f.uc = CreateGenerationUsecase(f.repo, f.creds, f.client, f.relay, p, tracker.New(okProber{}, nil))
	return f
}

func validRequest() models.GenerationRequest {
	return models.GenerationRequest{Title: "春节快乐", AspectRatio: models.AspectLandscape}
}

func TestSubmit_Success(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()

	f.creds.EXPECT().Get(gomock.Any()).Return("sk").AnyTimes()
	f.client.EXPECT().Submit(gomock.Any(), gomock.Any()).
		DoAndReturn(func(ctx context.Context, req models.GenerationRequest) (*models.Task, error) {
			assert.Equal(t, models.ModeGenerate, req.Mode)
			return &models.Task{ID: "task-1", Status: models.StatusPending}, nil
		})
	gomock.InOrder(
		f.client.EXPECT().FetchResult(gomock.Any(), "task-1").
			Return(&models.TaskResult{TaskID: "task-1", Status: models.StatusRunning}, nil),
		f.client.EXPECT().FetchResult(gomock.Any(), "task-1").
			Return(&models.TaskResult{TaskID: "task-1", Status: models.StatusSucceeded, ArtifactURLs: []string{"u1", "u2"}}, nil),
	)

	generation, err := f.uc.Submit(ctx, validRequest())
	require.NoError(t, err)
	assert.Equal(t, models.GenerationPolling, generation.State)
	assert.Equal(t, "task-1", generation.TaskID)

	f.sched.run()

	stored, err := f.uc.GetGeneration(ctx, generation.ID)
	require.NoError(t, err)
	assert.Equal(t, models.GenerationSucceeded, stored.State)
	assert.Equal(t, models.AspectLandscape, stored.Result.AspectRatio)
	assert.Equal(t, 0, f.uc.GetActiveGenerationsCount())

	views, err := f.uc.GetGallery(ctx)
	require.NoError(t, err)
	require.Len(t, views, 2)
	assert.Equal(t, models.ArtifactView{URL: "u1", State: models.LoadLoading}, views[0])

	notes, err := f.uc.Notifications(ctx)
	require.NoError(t, err)
	require.Len(t, notes, 1)
	assert.Equal(t, models.NotificationSuccess, notes[0].Level)
	assert.Equal(t, generation.ID, notes[0].GenerationID)
}

func TestSubmit_AccumulatesAcrossGenerations(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()

	f.creds.EXPECT().Get(gomock.Any()).Return("sk").AnyTimes()
	f.client.EXPECT().Submit(gomock.Any(), gomock.Any()).Return(&models.Task{ID: "a"}, nil)
	f.client.EXPECT().Submit(gomock.Any(), gomock.Any()).Return(&models.Task{ID: "b"}, nil)
	f.client.EXPECT().FetchResult(gomock.Any(), "a").
		Return(&models.TaskResult{Status: models.StatusSucceeded, ArtifactURLs: []string{"u1", "u2"}}, nil)
	f.client.EXPECT().FetchResult(gomock.Any(), "b").
		Return(&models.TaskResult{Status: models.StatusSucceeded, ArtifactURLs: []string{"u2", "u3"}}, nil)

	_, err := f.uc.Submit(ctx, validRequest())
	require.NoError(t, err)
	_, err = f.uc.Submit(ctx, validRequest())
	require.NoError(t, err)
	f.sched.run()

	views, err := f.uc.GetGallery(ctx)
	require.NoError(t, err)
	var urls []string
	for _, v := range views {
		urls = append(urls, v.URL)
	}
	assert.Equal(t, []string{"u1", "u2", "u3"}, urls)

	notes, err := f.uc.Notifications(ctx)
	require.NoError(t, err)
	assert.Len(t, notes, 2)
}

func TestSubmit_TerminalFailures(t *testing.T) {
	tests := []struct {
		name      string
		fetch     func(c *mock_app.MockTaskClient)
		wantState models.GenerationState
		wantMsg   string
	}{
		{
			name: "RemoteFailed",
			fetch: func(c *mock_app.MockTaskClient) {
				c.EXPECT().FetchResult(gomock.Any(), "task-1").
					Return(&models.TaskResult{Status: models.StatusFailed, Message: "content rejected"}, nil)
			},
			wantState: models.GenerationFailed,
			wantMsg:   "content rejected",
		},
		{
			name: "EmptyArtifacts",
			fetch: func(c *mock_app.MockTaskClient) {
				c.EXPECT().FetchResult(gomock.Any(), "task-1").
					Return(&models.TaskResult{Status: models.StatusSucceeded}, nil)
			},
			wantState: models.GenerationFatal,
			wantMsg:   errs.ErrNoArtifacts.Error(),
		},
		{
			name: "TransientBudgetExceeded",
			fetch: func(c *mock_app.MockTaskClient) {
				c.EXPECT().FetchResult(gomock.Any(), "task-1").
					Return(nil, &errs.RemoteServiceError{StatusCode: 500}).Times(4)
			},
			wantState: models.GenerationFatal,
			wantMsg:   "status 500",
		},
		{
			name: "TimedOut",
			fetch: func(c *mock_app.MockTaskClient) {
				c.EXPECT().FetchResult(gomock.Any(), "task-1").
					Return(&models.TaskResult{Status: models.StatusRunning}, nil).Times(30)
			},
			wantState: models.GenerationTimedOut,
			wantMsg:   "timed out",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			f := newFixture(t)
			ctx := context.Background()

			f.creds.EXPECT().Get(gomock.Any()).Return("sk").AnyTimes()
			f.client.EXPECT().Submit(gomock.Any(), gomock.Any()).Return(&models.Task{ID: "task-1"}, nil)
			tt.fetch(f.client)

			generation, err := f.uc.Submit(ctx, validRequest())
			require.NoError(t, err)
			f.sched.run()

			stored, err := f.uc.GetGeneration(ctx, generation.ID)
			require.NoError(t, err)
			assert.Equal(t, tt.wantState, stored.State)
			assert.Contains(t, stored.Error, tt.wantMsg)

			notes, err := f.uc.Notifications(ctx)
			require.NoError(t, err)
			require.Len(t, notes, 1)
			assert.Equal(t, models.NotificationError, notes[0].Level)
			assert.Contains(t, notes[0].Message, tt.wantMsg)

			views, err := f.uc.GetGallery(ctx)
			require.NoError(t, err)
			assert.Empty(t, views)
		})
	}
}

func TestSubmit_Rejections(t *testing.T) {
	t.Run("Invalid", func(t *testing.T) {
		f := newFixture(t)

		_, err := f.uc.Submit(context.Background(), models.GenerationRequest{})

		assert.ErrorIs(t, err, errs.ErrTitleRequired)
	})

	t.Run("NoCredential", func(t *testing.T) {
		f := newFixture(t)
		f.creds.EXPECT().Get(gomock.Any()).Return("")

		_, err := f.uc.Submit(context.Background(), validRequest())

		assert.ErrorIs(t, err, errs.ErrPrecondition)
		all, _ := f.uc.GetAllGenerations(context.Background())
		assert.Empty(t, all)
	})

	t.Run("RemoteSubmitError", func(t *testing.T) {
		f := newFixture(t)
		ctx := context.Background()
		f.creds.EXPECT().Get(gomock.Any()).Return("sk")
		f.client.EXPECT().Submit(gomock.Any(), gomock.Any()).
			Return(nil, &errs.RemoteServiceError{StatusCode: 401, Message: "Invalid API-key provided."})

		_, err := f.uc.Submit(ctx, validRequest())

		var rse *errs.RemoteServiceError
		require.True(t, errors.As(err, &rse))
		all, _ := f.uc.GetAllGenerations(ctx)
		require.Len(t, all, 1)
		assert.Equal(t, models.GenerationFatal, all[0].State)
		assert.Equal(t, 0, f.uc.GetActiveGenerationsCount())

		notes, _ := f.uc.Notifications(ctx)
		require.Len(t, notes, 1)
		assert.Contains(t, notes[0].Message, "Invalid API-key")
	})
}

func TestSubmit_MaxGenerationsReached(t *testing.T) {
	ctrl := gomock.NewController(t)
	mockRepo := mock_app.NewMockGenerationRepository(ctrl)
	creds := mock_app.NewMockCredentialStore(ctrl)
	client := mock_app.NewMockTaskClient(ctrl)

	creds.EXPECT().Get(gomock.Any()).Return("sk")
	mockRepo.EXPECT().CreateGeneration(gomock.Any(), models.AspectLandscape).
		Return(nil, errs.ErrMaxGenerationsReached)

	uc := CreateGenerationUsecase(mockRepo, creds, client, nil, poller.New(client, &manualScheduler{}, poller.DefaultPolicy()), tracker.New(okProber{}, nil))
	generation, err := uc.Submit(context.Background(), validRequest())

	assert.Nil(t, generation)
	assert.ErrorIs(t, err, errs.ErrMaxGenerationsReached)
}

func TestCancelGeneration(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()

	f.creds.EXPECT().Get(gomock.Any()).Return("sk").AnyTimes()
	f.client.EXPECT().Submit(gomock.Any(), gomock.Any()).Return(&models.Task{ID: "task-1"}, nil)

	generation, err := f.uc.Submit(ctx, validRequest())
	require.NoError(t, err)

	cancelled, err := f.uc.CancelGeneration(ctx, generation.ID)
	require.NoError(t, err)
	assert.Equal(t, models.GenerationCancelled, cancelled.State)

	f.sched.run()

	notes, err := f.uc.Notifications(ctx)
	require.NoError(t, err)
	assert.Empty(t, notes)

	_, err = f.uc.CancelGeneration(ctx, generation.ID)
	assert.ErrorIs(t, err, errs.ErrGenerationFinished)

	_, err = f.uc.CancelGeneration(ctx, "missing")
	assert.ErrorIs(t, err, errs.ErrGenerationNotFound)
}

func TestShutdownStopsPolling(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()

	f.creds.EXPECT().Get(gomock.Any()).Return("sk").AnyTimes()
	f.client.EXPECT().Submit(gomock.Any(), gomock.Any()).Return(&models.Task{ID: "task-1"}, nil)

	_, err := f.uc.Submit(ctx, validRequest())
	require.NoError(t, err)

	f.uc.Shutdown()
	f.sched.run()

	notes, _ := f.uc.Notifications(ctx)
	assert.Empty(t, notes)
}

func seedGallery(t *testing.T, f *fixture, urls ...string) {
	t.Helper()
	_, err := f.repo.MergeGallery(context.Background(), urls)
	require.NoError(t, err)
	f.uc.tracker.Observe(urls...)
}

func TestArtifactLifecycle(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	seedGallery(t, f, "u1", "u2")

	state, err := f.uc.MarkArtifact(ctx, "u1", models.LoadFailed)
	require.NoError(t, err)
	assert.Equal(t, models.LoadFailed, state)

	_, err = f.uc.ToggleSelection(ctx, "u1")
	assert.ErrorIs(t, err, errs.ErrArtifactFailed)

	state, err = f.uc.RetryArtifact(ctx, "u1")
	require.NoError(t, err)
	assert.Equal(t, models.LoadLoaded, state)

	selected, err := f.uc.ToggleSelection(ctx, "u1")
	require.NoError(t, err)
	assert.True(t, selected)

	_, err = f.uc.MarkArtifact(ctx, "u2", models.LoadLoading)
	assert.ErrorIs(t, err, errs.ErrInvalidTransition)

	_, err = f.uc.MarkArtifact(ctx, "elsewhere", models.LoadLoaded)
	assert.ErrorIs(t, err, errs.ErrArtifactNotFound)

	require.NoError(t, f.uc.ResetSession(ctx))
	views, err := f.uc.GetGallery(ctx)
	require.NoError(t, err)
	assert.Empty(t, views)
}

func TestBuildArchive(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	f.uc.now = func() time.Time { return time.UnixMilli(1700000000000) }
	seedGallery(t, f, "u1", "u2", "u3")

	_, err := f.uc.BuildArchive(ctx)
	assert.ErrorIs(t, err, errs.ErrEmptySelection)

	for _, u := range []string{"u1", "u2", "u3"} {
		_, err := f.uc.ToggleSelection(ctx, u)
		require.NoError(t, err)
	}

	f.relay.EXPECT().Fetch(gomock.Any(), "u1").Return(&models.Image{Data: []byte("one"), ContentType: "image/png"}, nil)
	f.relay.EXPECT().Fetch(gomock.Any(), "u2").Return(nil, errors.New("boom"))
	f.relay.EXPECT().Fetch(gomock.Any(), "u3").Return(&models.Image{Data: []byte("three"), ContentType: "image/jpeg"}, nil)

	archive, err := f.uc.BuildArchive(ctx)
	require.NoError(t, err)
	assert.Equal(t, "posters-1700000000000.zip", archive.Name)
	assert.Equal(t, 2, archive.FileCount)

	zr, err := zip.NewReader(bytes.NewReader(archive.Data), int64(len(archive.Data)))
	require.NoError(t, err)
	var names []string
	for _, file := range zr.File {
		names = append(names, file.Name)
	}
	assert.Equal(t, []string{"poster-1-1700000000000.png", "poster-3-1700000000000.jpg"}, names)
}

func TestBuildArchive_NothingDownloaded(t *testing.T) {
	f := newFixture(t)
	seedGallery(t, f, "u1")
	_, err := f.uc.ToggleSelection(context.Background(), "u1")
	require.NoError(t, err)

	f.relay.EXPECT().Fetch(gomock.Any(), "u1").Return(nil, errors.New("boom"))

	_, err = f.uc.BuildArchive(context.Background())
	assert.ErrorIs(t, err, errs.ErrArtifactLoad)
}

func TestCredential(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()

	f.creds.EXPECT().Set(gomock.Any(), "sk-new")
	f.creds.EXPECT().Get(gomock.Any()).Return("sk-new")

	f.uc.SetCredential(ctx, "sk-new")
	assert.True(t, f.uc.CredentialConfigured(ctx))
}

func TestProxyImage(t *testing.T) {
	f := newFixture(t)

	f.relay.EXPECT().Fetch(gomock.Any(), "https://cdn/x.png").Return(&models.Image{Data: []byte("x"), ContentType: "image/png"}, nil)
	f.relay.EXPECT().Fetch(gomock.Any(), "https://cdn/bad.png").Return(nil, errors.New("status 404"))

	img, err := f.uc.ProxyImage(context.Background(), "https://cdn/x.png")
	require.NoError(t, err)
	assert.Equal(t, "image/png", img.ContentType)

	_, err = f.uc.ProxyImage(context.Background(), "https://cdn/bad.png")
	assert.Error(t, err)
}

func TestLimits(t *testing.T) {
	f := newFixture(t)

	assert.Equal(t, 5, f.uc.GetMaxGenerations())
	assert.Equal(t, 0, f.uc.GetActiveGenerationsCount())
}
