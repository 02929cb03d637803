package delivery

import (
	"bytes"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/golang/mock/gomock"
	"github.com/gorilla/mux"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	mock_app "github.com/supchaser/postergen/internal/app/mocks"
	"github.com/supchaser/postergen/internal/app/models"
	"github.com/supchaser/postergen/internal/utils/errs"
	"github.com/supchaser/postergen/internal/utils/logger"
)

func TestMain(m *testing.M) {
	logger.InitTestLogger()
	m.Run()
}

func jsonBody(t *testing.T, v any) *bytes.Reader {
	t.Helper()
	if s, ok := v.(string); ok {
		return bytes.NewReader([]byte(s))
	}
	data, err := json.Marshal(v)
	require.NoError(t, err)
	return bytes.NewReader(data)
}

func TestGenerationDelivery_CreateGeneration(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	mockUsecase := mock_app.NewMockGenerationUsecase(ctrl)
	generationDelivery := CreateGenerationDelivery(mockUsecase)

	validRequest := models.GenerationRequest{
		Title:       "Spring Sale",
		AspectRatio: models.AspectPortrait,
		Mode:        models.ModeGenerate,
		Count:       1,
	}

	tests := []struct {
		name             string
		requestBody      any
		mockSetup        func()
		expectedStatus   int
		validateResponse func(t *testing.T, w *httptest.ResponseRecorder)
	}{
		{
			name:        "Success",
			requestBody: validRequest,
			mockSetup: func() {
				mockUsecase.EXPECT().
					Submit(gomock.Any(), validRequest).
					Return(&models.Generation{
						ID:          "gen-1",
						TaskID:      "task-1",
						AspectRatio: models.AspectPortrait,
						State:       models.GenerationPolling,
						CreatedAt:   time.Now(),
					}, nil)
			},
			expectedStatus: http.StatusAccepted,
			validateResponse: func(t *testing.T, w *httptest.ResponseRecorder) {
				var generation models.Generation
				err := json.Unmarshal(w.Body.Bytes(), &generation)
				assert.NoError(t, err)
				assert.Equal(t, "gen-1", generation.ID)
				assert.Equal(t, "task-1", generation.TaskID)
				assert.Equal(t, models.GenerationPolling, generation.State)
				assert.Equal(t, "/api/v1/generations/gen-1", w.Header().Get("Location"))
			},
		},
		{
			name:        "MaxGenerationsReached",
			requestBody: validRequest,
			mockSetup: func() {
				mockUsecase.EXPECT().
					Submit(gomock.Any(), gomock.Any()).
					Return(nil, errs.ErrMaxGenerationsReached)
				mockUsecase.EXPECT().
					GetMaxGenerations().
					Return(3)
				mockUsecase.EXPECT().
					GetActiveGenerationsCount().
					Return(3)
			},
			expectedStatus: http.StatusTooManyRequests,
			validateResponse: func(t *testing.T, w *httptest.ResponseRecorder) {
				var response map[string]interface{}
				err := json.Unmarshal(w.Body.Bytes(), &response)
				assert.NoError(t, err)
				assert.Equal(t, errs.ErrMaxGenerationsReached.Error(), response["error"])
				assert.Equal(t, float64(3), response["max_generations"])
				assert.Equal(t, float64(3), response["active_now"])
				assert.Contains(t, response["suggestion"], "Try again later")
			},
		},
		{
			name:        "NoCredential",
			requestBody: validRequest,
			mockSetup: func() {
				mockUsecase.EXPECT().
					Submit(gomock.Any(), gomock.Any()).
					Return(nil, errs.ErrPrecondition)
			},
			expectedStatus:   http.StatusPreconditionFailed,
			validateResponse: func(t *testing.T, w *httptest.ResponseRecorder) {},
		},
		{
			name:        "ValidationError",
			requestBody: models.GenerationRequest{AspectRatio: models.AspectPortrait},
			mockSetup: func() {
				mockUsecase.EXPECT().
					Submit(gomock.Any(), gomock.Any()).
					Return(nil, errs.ErrTitleRequired)
			},
			expectedStatus: http.StatusBadRequest,
			validateResponse: func(t *testing.T, w *httptest.ResponseRecorder) {
				assert.Contains(t, w.Body.String(), errs.ErrTitleRequired.Error())
			},
		},
		{
			name:             "InvalidJSON",
			requestBody:      "{invalid json}",
			mockSetup:        func() {},
			expectedStatus:   http.StatusBadRequest,
			validateResponse: func(t *testing.T, w *httptest.ResponseRecorder) {},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			tt.mockSetup()

			req := httptest.NewRequest("POST", "/api/v1/generations", jsonBody(t, tt.requestBody))
			w := httptest.NewRecorder()

			generationDelivery.CreateGeneration(w, req)

			assert.Equal(t, tt.expectedStatus, w.Code)
			tt.validateResponse(t, w)
		})
	}
}

func TestGenerationDelivery_GetGeneration(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	mockUsecase := mock_app.NewMockGenerationUsecase(ctrl)
	generationDelivery := CreateGenerationDelivery(mockUsecase)

	tests := []struct {
		name           string
		generationID   string
		mockSetup      func()
		expectedStatus int
	}{
		{
			name:         "Success",
			generationID: "gen-1",
			mockSetup: func() {
				mockUsecase.EXPECT().
					GetGeneration(gomock.Any(), "gen-1").
					Return(&models.Generation{ID: "gen-1", State: models.GenerationSucceeded}, nil)
			},
			expectedStatus: http.StatusOK,
		},
		{
			name:         "GenerationNotFound",
			generationID: "missing",
			mockSetup: func() {
				mockUsecase.EXPECT().
					GetGeneration(gomock.Any(), "missing").
					Return(nil, errs.ErrGenerationNotFound)
			},
			expectedStatus: http.StatusNotFound,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			tt.mockSetup()

			req := httptest.NewRequest("GET", "/api/v1/generations/"+tt.generationID, nil)
			w := httptest.NewRecorder()

			vars := map[string]string{
				"id": tt.generationID,
			}
			req = mux.SetURLVars(req, vars)

			generationDelivery.GetGeneration(w, req)

			assert.Equal(t, tt.expectedStatus, w.Code)
		})
	}
}

func TestGenerationDelivery_CancelGeneration(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	mockUsecase := mock_app.NewMockGenerationUsecase(ctrl)
	generationDelivery := CreateGenerationDelivery(mockUsecase)

	tests := []struct {
		name           string
		mockSetup      func()
		expectedStatus int
		expectedState  models.GenerationState
	}{
		{
			name: "Success",
			mockSetup: func() {
				mockUsecase.EXPECT().
					CancelGeneration(gomock.Any(), "gen-1").
					Return(&models.Generation{ID: "gen-1", State: models.GenerationCancelled}, nil)
			},
			expectedStatus: http.StatusOK,
			expectedState:  models.GenerationCancelled,
		},
		{
			name: "AlreadyFinished",
			mockSetup: func() {
				mockUsecase.EXPECT().
					CancelGeneration(gomock.Any(), "gen-1").
					Return(nil, errs.ErrGenerationFinished)
			},
			expectedStatus: http.StatusConflict,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			tt.mockSetup()

			req := httptest.NewRequest("DELETE", "/api/v1/generations/gen-1", nil)
			req = mux.SetURLVars(req, map[string]string{"id": "gen-1"})
			w := httptest.NewRecorder()

			generationDelivery.CancelGeneration(w, req)

			assert.Equal(t, tt.expectedStatus, w.Code)
			if tt.expectedState != "" {
				var generation models.Generation
				require.NoError(t, json.Unmarshal(w.Body.Bytes(), &generation))
				assert.Equal(t, tt.expectedState, generation.State)
			}
		})
	}
}

func TestGenerationDelivery_GetAllGenerations(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	mockUsecase := mock_app.NewMockGenerationUsecase(ctrl)
	generationDelivery := CreateGenerationDelivery(mockUsecase)

	t.Run("Empty", func(t *testing.T) {
		mockUsecase.EXPECT().
			GetAllGenerations(gomock.Any()).
			Return([]*models.Generation{}, nil)

		req := httptest.NewRequest("GET", "/api/v1/generations", nil)
		w := httptest.NewRecorder()

		generationDelivery.GetAllGenerations(w, req)

		assert.Equal(t, http.StatusOK, w.Code)
		var response map[string]interface{}
		require.NoError(t, json.Unmarshal(w.Body.Bytes(), &response))
		assert.Equal(t, "No generations found", response["message"])
		assert.Equal(t, float64(0), response["count"])
	})

	t.Run("WithGenerations", func(t *testing.T) {
		mockUsecase.EXPECT().
			GetAllGenerations(gomock.Any()).
			Return([]*models.Generation{
				{
					ID:    "gen-1",
					State: models.GenerationSucceeded,
					Result: &models.TaskResult{
						Status:       models.StatusSucceeded,
						ArtifactURLs: []string{"https://cdn/a.png", "https://cdn/b.png"},
					},
				},
				{ID: "gen-2", State: models.GenerationPolling},
			}, nil)
		mockUsecase.EXPECT().
			GetActiveGenerationsCount().
			Return(1)

		req := httptest.NewRequest("GET", "/api/v1/generations", nil)
		w := httptest.NewRecorder()

		generationDelivery.GetAllGenerations(w, req)

		assert.Equal(t, http.StatusOK, w.Code)
		var response struct {
			Count       int                         `json:"count"`
			ActiveNow   int                         `json:"active_now"`
			Generations []models.GenerationResponse `json:"generations"`
		}
		require.NoError(t, json.Unmarshal(w.Body.Bytes(), &response))
		assert.Equal(t, 2, response.Count)
		assert.Equal(t, 1, response.ActiveNow)
		require.Len(t, response.Generations, 2)
		assert.Equal(t, 2, response.Generations[0].Artifacts)
		assert.Equal(t, 0, response.Generations[1].Artifacts)
	})
}

func TestGenerationDelivery_Credential(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	mockUsecase := mock_app.NewMockGenerationUsecase(ctrl)
	generationDelivery := CreateGenerationDelivery(mockUsecase)

	t.Run("Set", func(t *testing.T) {
		gomock.InOrder(
			mockUsecase.EXPECT().SetCredential(gomock.Any(), "sk-123"),
			mockUsecase.EXPECT().CredentialConfigured(gomock.Any()).Return(true),
		)

		req := httptest.NewRequest("PUT", "/api/v1/credential", jsonBody(t, map[string]string{"apiKey": "  sk-123 "}))
		w := httptest.NewRecorder()

		generationDelivery.SetCredential(w, req)

		assert.Equal(t, http.StatusOK, w.Code)
		assert.JSONEq(t, `{"configured":true}`, w.Body.String())
	})

	t.Run("SetInvalidJSON", func(t *testing.T) {
		req := httptest.NewRequest("PUT", "/api/v1/credential", jsonBody(t, "not json"))
		w := httptest.NewRecorder()

		generationDelivery.SetCredential(w, req)

		assert.Equal(t, http.StatusBadRequest, w.Code)
	})

	t.Run("Get", func(t *testing.T) {
		mockUsecase.EXPECT().CredentialConfigured(gomock.Any()).Return(false)

		req := httptest.NewRequest("GET", "/api/v1/credential", nil)
		w := httptest.NewRecorder()

		generationDelivery.GetCredential(w, req)

		assert.Equal(t, http.StatusOK, w.Code)
		assert.JSONEq(t, `{"configured":false}`, w.Body.String())
	})
}

func TestGenerationDelivery_Gallery(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	mockUsecase := mock_app.NewMockGenerationUsecase(ctrl)
	generationDelivery := CreateGenerationDelivery(mockUsecase)

	t.Run("Get", func(t *testing.T) {
		mockUsecase.EXPECT().
			GetGallery(gomock.Any()).
			Return([]models.ArtifactView{
				{URL: "https://cdn/a.png", State: models.LoadLoaded, Selected: true},
				{URL: "https://cdn/b.png", State: models.LoadFailed},
			}, nil)

		req := httptest.NewRequest("GET", "/api/v1/gallery", nil)
		w := httptest.NewRecorder()

		generationDelivery.GetGallery(w, req)

		assert.Equal(t, http.StatusOK, w.Code)
		var response struct {
			Count     int                   `json:"count"`
			Artifacts []models.ArtifactView `json:"artifacts"`
		}
		require.NoError(t, json.Unmarshal(w.Body.Bytes(), &response))
		assert.Equal(t, 2, response.Count)
		assert.Equal(t, "https://cdn/a.png", response.Artifacts[0].URL)
		assert.True(t, response.Artifacts[0].Selected)
		assert.Equal(t, models.LoadFailed, response.Artifacts[1].State)
	})

	t.Run("Reset", func(t *testing.T) {
		mockUsecase.EXPECT().ResetSession(gomock.Any()).Return(nil)

		req := httptest.NewRequest("DELETE", "/api/v1/gallery", nil)
		w := httptest.NewRecorder()

		generationDelivery.ResetSession(w, req)

		assert.Equal(t, http.StatusNoContent, w.Code)
		assert.Empty(t, w.Body.String())
	})
}

func TestGenerationDelivery_MarkArtifact(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	mockUsecase := mock_app.NewMockGenerationUsecase(ctrl)
	generationDelivery := CreateGenerationDelivery(mockUsecase)

	tests := []struct {
		name           string
		requestBody    any
		mockSetup      func()
		expectedStatus int
	}{
		{
			name:        "Loaded",
			requestBody: models.ArtifactRequest{URL: "https://cdn/a.png", State: models.LoadLoaded},
			mockSetup: func() {
				mockUsecase.EXPECT().
					MarkArtifact(gomock.Any(), "https://cdn/a.png", models.LoadLoaded).
					Return(models.LoadLoaded, nil)
			},
			expectedStatus: http.StatusOK,
		},
		{
			name:        "UnknownArtifact",
			requestBody: models.ArtifactRequest{URL: "https://cdn/x.png", State: models.LoadFailed},
			mockSetup: func() {
				mockUsecase.EXPECT().
					MarkArtifact(gomock.Any(), "https://cdn/x.png", models.LoadFailed).
					Return(models.LoadState(""), errs.ErrArtifactNotFound)
			},
			expectedStatus: http.StatusNotFound,
		},
		{
			name:        "InvalidTransition",
			requestBody: models.ArtifactRequest{URL: "https://cdn/a.png", State: models.LoadLoading},
			mockSetup: func() {
				mockUsecase.EXPECT().
					MarkArtifact(gomock.Any(), "https://cdn/a.png", models.LoadLoading).
					Return(models.LoadState(""), errs.ErrInvalidTransition)
			},
			expectedStatus: http.StatusConflict,
		},
		{
			name:           "MissingURL",
			requestBody:    models.ArtifactRequest{URL: "   ", State: models.LoadLoaded},
			mockSetup:      func() {},
			expectedStatus: http.StatusBadRequest,
		},
		{
			name:           "InvalidJSON",
			requestBody:    "{",
			mockSetup:      func() {},
			expectedStatus: http.StatusBadRequest,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			tt.mockSetup()

			req := httptest.NewRequest("POST", "/api/v1/artifacts/state", jsonBody(t, tt.requestBody))
			w := httptest.NewRecorder()

			generationDelivery.MarkArtifact(w, req)

			assert.Equal(t, tt.expectedStatus, w.Code)
		})
	}
}

func TestGenerationDelivery_MarkArtifacts(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	mockUsecase := mock_app.NewMockGenerationUsecase(ctrl)
	generationDelivery := CreateGenerationDelivery(mockUsecase)

	t.Run("KeepsRequestOrder", func(t *testing.T) {
		mockUsecase.EXPECT().
			MarkArtifact(gomock.Any(), "https://cdn/a.png", models.LoadLoaded).
			Return(models.LoadLoaded, nil)
		mockUsecase.EXPECT().
			MarkArtifact(gomock.Any(), "https://cdn/b.png", models.LoadFailed).
			Return(models.LoadFailed, nil)

		body := models.ArtifactBatchRequest{Artifacts: []models.ArtifactRequest{
			{URL: "https://cdn/a.png", State: models.LoadLoaded},
			{URL: " https://cdn/b.png ", State: models.LoadFailed},
		}}
		req := httptest.NewRequest("POST", "/api/v1/artifacts/state/batch", jsonBody(t, body))
		w := httptest.NewRecorder()

		generationDelivery.MarkArtifacts(w, req)

		assert.Equal(t, http.StatusOK, w.Code)
		var response struct {
			Count     int                     `json:"count"`
			Failed    int                     `json:"failed"`
			Artifacts []models.ArtifactResult `json:"artifacts"`
		}
		require.NoError(t, json.Unmarshal(w.Body.Bytes(), &response))
		assert.Equal(t, 2, response.Count)
		assert.Equal(t, 0, response.Failed)
		assert.Equal(t, []models.ArtifactResult{
			{URL: "https://cdn/a.png", State: models.LoadLoaded},
			{URL: "https://cdn/b.png", State: models.LoadFailed},
		}, response.Artifacts)
	})

	t.Run("ReportsEachItem", func(t *testing.T) {
		mockUsecase.EXPECT().
			MarkArtifact(gomock.Any(), "https://cdn/a.png", models.LoadLoaded).
			Return(models.LoadLoaded, nil)
		mockUsecase.EXPECT().
			MarkArtifact(gomock.Any(), "https://cdn/x.png", models.LoadLoaded).
			Return(models.LoadState(""), errs.ErrArtifactNotFound)
		mockUsecase.EXPECT().
			MarkArtifact(gomock.Any(), "https://cdn/c.png", models.LoadFailed).
			Return(models.LoadFailed, nil)

		body := models.ArtifactBatchRequest{Artifacts: []models.ArtifactRequest{
			{URL: "https://cdn/a.png", State: models.LoadLoaded},
			{URL: "https://cdn/x.png", State: models.LoadLoaded},
			{URL: "https://cdn/c.png", State: models.LoadFailed},
		}}
		req := httptest.NewRequest("POST", "/api/v1/artifacts/state/batch", jsonBody(t, body))
		w := httptest.NewRecorder()

		generationDelivery.MarkArtifacts(w, req)

		assert.Equal(t, http.StatusMultiStatus, w.Code)
		var response struct {
			Count     int                     `json:"count"`
			Failed    int                     `json:"failed"`
			Artifacts []models.ArtifactResult `json:"artifacts"`
		}
		require.NoError(t, json.Unmarshal(w.Body.Bytes(), &response))
		assert.Equal(t, 3, response.Count)
		assert.Equal(t, 1, response.Failed)
		require.Len(t, response.Artifacts, 3)
		assert.Equal(t, models.ArtifactResult{URL: "https://cdn/a.png", State: models.LoadLoaded}, response.Artifacts[0])
		assert.Equal(t, "https://cdn/x.png", response.Artifacts[1].URL)
		assert.Empty(t, response.Artifacts[1].State)
		assert.Equal(t, errs.ErrArtifactNotFound.Error(), response.Artifacts[1].Error)
		assert.Equal(t, models.ArtifactResult{URL: "https://cdn/c.png", State: models.LoadFailed}, response.Artifacts[2])
	})

	t.Run("Rejected", func(t *testing.T) {
		tooMany := models.ArtifactBatchRequest{}
		for i := 0; i <= maxBatchArtifacts; i++ {
			tooMany.Artifacts = append(tooMany.Artifacts, models.ArtifactRequest{URL: "https://cdn/a.png"})
		}

		loadingState := models.ArtifactBatchRequest{Artifacts: []models.ArtifactRequest{
			{URL: "https://cdn/a.png", State: models.LoadLoaded},
			{URL: "https://cdn/b.png", State: models.LoadLoading},
		}}
		missingURL := models.ArtifactBatchRequest{Artifacts: []models.ArtifactRequest{{URL: "", State: models.LoadLoaded}}}

		for name, body := range map[string]any{
			"Empty":        models.ArtifactBatchRequest{},
			"TooMany":      tooMany,
			"MissingURL":   missingURL,
			"InvalidJSON":  "[",
			"LoadingState": loadingState,
			"MissingState": models.ArtifactBatchRequest{Artifacts: []models.ArtifactRequest{{URL: "https://cdn/a.png"}}},
		} {
			req := httptest.NewRequest("POST", "/api/v1/artifacts/state/batch", jsonBody(t, body))
			w := httptest.NewRecorder()

			generationDelivery.MarkArtifacts(w, req)

			assert.Equal(t, http.StatusBadRequest, w.Code, name)
		}
	})
}

func TestGenerationDelivery_RetryArtifact(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	mockUsecase := mock_app.NewMockGenerationUsecase(ctrl)
	generationDelivery := CreateGenerationDelivery(mockUsecase)

	tests := []struct {
		name           string
		mockSetup      func()
		expectedStatus int
		expectedState  models.LoadState
	}{
		{
			name: "Recovered",
			mockSetup: func() {
				mockUsecase.EXPECT().
					RetryArtifact(gomock.Any(), "https://cdn/a.png").
					Return(models.LoadLoaded, nil)
			},
			expectedStatus: http.StatusOK,
			expectedState:  models.LoadLoaded,
		},
		{
			name: "NotFailed",
			mockSetup: func() {
				mockUsecase.EXPECT().
					RetryArtifact(gomock.Any(), "https://cdn/a.png").
					Return(models.LoadState(""), errs.ErrInvalidTransition)
			},
			expectedStatus: http.StatusConflict,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			tt.mockSetup()

			body := models.ArtifactRequest{URL: "https://cdn/a.png"}
			req := httptest.NewRequest("POST", "/api/v1/artifacts/retry", jsonBody(t, body))
			w := httptest.NewRecorder()

			generationDelivery.RetryArtifact(w, req)

			assert.Equal(t, tt.expectedStatus, w.Code)
			if tt.expectedState != "" {
				var response models.ArtifactRequest
				require.NoError(t, json.Unmarshal(w.Body.Bytes(), &response))
				assert.Equal(t, tt.expectedState, response.State)
			}
		})
	}
}

func TestGenerationDelivery_ToggleSelection(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	mockUsecase := mock_app.NewMockGenerationUsecase(ctrl)
	generationDelivery := CreateGenerationDelivery(mockUsecase)

	tests := []struct {
		name           string
		mockSetup      func()
		expectedStatus int
	}{
		{
			name: "Selected",
			mockSetup: func() {
				mockUsecase.EXPECT().
					ToggleSelection(gomock.Any(), "https://cdn/a.png").
					Return(true, nil)
			},
			expectedStatus: http.StatusOK,
		},
		{
			name: "FailedArtifact",
			mockSetup: func() {
				mockUsecase.EXPECT().
					ToggleSelection(gomock.Any(), "https://cdn/a.png").
					Return(false, errs.ErrArtifactFailed)
			},
			expectedStatus: http.StatusConflict,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			tt.mockSetup()

			body := models.ArtifactRequest{URL: "https://cdn/a.png"}
			req := httptest.NewRequest("POST", "/api/v1/artifacts/select", jsonBody(t, body))
			w := httptest.NewRecorder()

			generationDelivery.ToggleSelection(w, req)

			assert.Equal(t, tt.expectedStatus, w.Code)
		})
	}
}

func TestGenerationDelivery_DownloadArchive(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	mockUsecase := mock_app.NewMockGenerationUsecase(ctrl)
	generationDelivery := CreateGenerationDelivery(mockUsecase)

	tests := []struct {
		name           string
		mockSetup      func()
		expectedStatus int
		expectedType   string
	}{
		{
			name: "Success",
			mockSetup: func() {
				mockUsecase.EXPECT().
					BuildArchive(gomock.Any()).
					Return(&models.Archive{Name: "posters-1.zip", Data: []byte("PK"), FileCount: 1}, nil)
			},
			expectedStatus: http.StatusOK,
			expectedType:   "application/zip",
		},
		{
			name: "EmptySelection",
			mockSetup: func() {
				mockUsecase.EXPECT().
					BuildArchive(gomock.Any()).
					Return(nil, errs.ErrEmptySelection)
			},
			expectedStatus: http.StatusBadRequest,
			expectedType:   "application/json",
		},
		{
			name: "NothingLoaded",
			mockSetup: func() {
				mockUsecase.EXPECT().
					BuildArchive(gomock.Any()).
					Return(nil, errs.ErrArtifactLoad)
			},
			expectedStatus: http.StatusBadGateway,
			expectedType:   "application/json",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			tt.mockSetup()

			req := httptest.NewRequest("GET", "/api/v1/gallery/archive", nil)
			w := httptest.NewRecorder()

			generationDelivery.DownloadArchive(w, req)

			assert.Equal(t, tt.expectedStatus, w.Code)
			assert.Equal(t, tt.expectedType, w.Header().Get("Content-Type"))
			if tt.expectedStatus == http.StatusOK {
				assert.Equal(t, "attachment; filename=posters-1.zip", w.Header().Get("Content-Disposition"))
				assert.Equal(t, "PK", w.Body.String())
			}
		})
	}
}

func TestGenerationDelivery_GetNotifications(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	mockUsecase := mock_app.NewMockGenerationUsecase(ctrl)
	generationDelivery := CreateGenerationDelivery(mockUsecase)

	mockUsecase.EXPECT().
		Notifications(gomock.Any()).
		Return([]models.Notification{
			{GenerationID: "gen-1", Level: models.NotificationSuccess, Message: "2 posters generated"},
		}, nil)

	req := httptest.NewRequest("GET", "/api/v1/notifications", nil)
	w := httptest.NewRecorder()

	generationDelivery.GetNotifications(w, req)

	assert.Equal(t, http.StatusOK, w.Code)
	var response struct {
		Count         int                   `json:"count"`
		Notifications []models.Notification `json:"notifications"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &response))
	assert.Equal(t, 1, response.Count)
	assert.Equal(t, models.NotificationSuccess, response.Notifications[0].Level)
}

func TestGenerationDelivery_ProxyImage(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	mockUsecase := mock_app.NewMockGenerationUsecase(ctrl)
	generationDelivery := CreateGenerationDelivery(mockUsecase)

	tests := []struct {
		name             string
		requestBody      any
		mockSetup        func()
		expectedStatus   int
		validateResponse func(t *testing.T, w *httptest.ResponseRecorder)
	}{
		{
			name:        "Success",
			requestBody: models.ImageRequest{ImageURL: "https://cdn/a.png"},
			mockSetup: func() {
				mockUsecase.EXPECT().
					ProxyImage(gomock.Any(), "https://cdn/a.png").
					Return(&models.Image{Data: []byte("png-bytes"), ContentType: "image/png"}, nil)
			},
			expectedStatus: http.StatusOK,
			validateResponse: func(t *testing.T, w *httptest.ResponseRecorder) {
				assert.Equal(t, "image/png", w.Header().Get("Content-Type"))
				assert.Equal(t, "attachment", w.Header().Get("Content-Disposition"))
				assert.Equal(t, "no-cache", w.Header().Get("Cache-Control"))
				assert.Equal(t, "png-bytes", w.Body.String())
			},
		},
		{
			name:           "MissingURL",
			requestBody:    models.ImageRequest{},
			mockSetup:      func() {},
			expectedStatus: http.StatusBadRequest,
			validateResponse: func(t *testing.T, w *httptest.ResponseRecorder) {
				assert.JSONEq(t, `{"error":"No image URL provided"}`, w.Body.String())
			},
		},
		{
			name:        "UpstreamFailure",
			requestBody: models.ImageRequest{ImageURL: "https://cdn/a.png"},
			mockSetup: func() {
				mockUsecase.EXPECT().
					ProxyImage(gomock.Any(), "https://cdn/a.png").
					Return(nil, errors.New("upstream returned 404"))
			},
			expectedStatus: http.StatusInternalServerError,
			validateResponse: func(t *testing.T, w *httptest.ResponseRecorder) {
				assert.JSONEq(t,
					`{"error":"Failed to proxy image","details":"upstream returned 404"}`,
					w.Body.String(),
				)
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			tt.mockSetup()

			req := httptest.NewRequest("POST", "/api/v1/images/proxy", jsonBody(t, tt.requestBody))
			w := httptest.NewRecorder()

			generationDelivery.ProxyImage(w, req)

			assert.Equal(t, tt.expectedStatus, w.Code)
			tt.validateResponse(t, w)
		})
	}
}

func TestGenerationDelivery_RegisterRoutes(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	mockUsecase := mock_app.NewMockGenerationUsecase(ctrl)
	generationDelivery := CreateGenerationDelivery(mockUsecase)

	router := mux.NewRouter()
	generationDelivery.RegisterRoutes(router)

	mockUsecase.EXPECT().
		GetGeneration(gomock.Any(), "0b5c").
		Return(&models.Generation{ID: "0b5c"}, nil)

	req := httptest.NewRequest("GET", "/api/v1/generations/0b5c", nil)
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)
	assert.Equal(t, http.StatusOK, w.Code)

	tests := []struct {
		method, path   string
		expectedStatus int
	}{
		{"PATCH", "/api/v1/generations/0b5c", http.StatusMethodNotAllowed},
		{"PUT", "/api/v1/generations", http.StatusMethodNotAllowed},
		{"PUT", "/api/v1/gallery", http.StatusMethodNotAllowed},
		{"GET", "/api/v1/artifacts/state/batch", http.StatusMethodNotAllowed},
		{"GET", "/api/v1/unknown", http.StatusNotFound},
	}

	for _, tt := range tests {
		t.Run(tt.method+" "+tt.path, func(t *testing.T) {
			req := httptest.NewRequest(tt.method, tt.path, nil)
			w := httptest.NewRecorder()
			router.ServeHTTP(w, req)
			assert.Equal(t, tt.expectedStatus, w.Code)
		})
	}
}
