package delivery

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"strings"

	"github.com/gorilla/mux"
	"github.com/supchaser/postergen/internal/app"
	"github.com/supchaser/postergen/internal/app/models"
	"github.com/supchaser/postergen/internal/utils/errs"
	"github.com/supchaser/postergen/internal/utils/logger"
	"github.com/supchaser/postergen/internal/utils/responses"
	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"
)

const maxBatchArtifacts = 64

type GenerationDelivery struct {
	generationUsecase app.GenerationUsecase
}

func CreateGenerationDelivery(generationUsecase app.GenerationUsecase) *GenerationDelivery {
	return &GenerationDelivery{
		generationUsecase: generationUsecase,
	}
}

const apiPrefix = "/api/v1"

// RegisterRoutes mounts the API under /api/v1. Routes sit directly on the
// given router so a method mismatch answers 405.
func (d *GenerationDelivery) RegisterRoutes(router *mux.Router) {
	router.HandleFunc(apiPrefix+"/credential", d.SetCredential).Methods("PUT")
	router.HandleFunc(apiPrefix+"/credential", d.GetCredential).Methods("GET")

	router.HandleFunc(apiPrefix+"/generations", d.CreateGeneration).Methods("POST")
	router.HandleFunc(apiPrefix+"/generations", d.GetAllGenerations).Methods("GET")
	router.HandleFunc(apiPrefix+"/generations/{id}", d.GetGeneration).Methods("GET")
	router.HandleFunc(apiPrefix+"/generations/{id}", d.CancelGeneration).Methods("DELETE")

	router.HandleFunc(apiPrefix+"/gallery", d.GetGallery).Methods("GET")
	router.HandleFunc(apiPrefix+"/gallery", d.ResetSession).Methods("DELETE")
	router.HandleFunc(apiPrefix+"/gallery/archive", d.DownloadArchive).Methods("GET")

	router.HandleFunc(apiPrefix+"/artifacts/state", d.MarkArtifact).Methods("POST")
	router.HandleFunc(apiPrefix+"/artifacts/state/batch", d.MarkArtifacts).Methods("POST")
	router.HandleFunc(apiPrefix+"/artifacts/retry", d.RetryArtifact).Methods("POST")
	router.HandleFunc(apiPrefix+"/artifacts/select", d.ToggleSelection).Methods("POST")

	router.HandleFunc(apiPrefix+"/notifications", d.GetNotifications).Methods("GET")
	router.HandleFunc(apiPrefix+"/images/proxy", d.ProxyImage).Methods("POST")
}

func (d *GenerationDelivery) SetCredential(w http.ResponseWriter, r *http.Request) {
	const funcName = "GenerationDelivery.SetCredential"
	logger.Debug("setting api key", zap.String("function", funcName))

	req := models.CredentialRequest{}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		responses.DoBadResponseAndLog(w, http.StatusBadRequest, "invalid request body")
		return
	}

	d.generationUsecase.SetCredential(r.Context(), strings.TrimSpace(req.APIKey))

	responses.DoJSONResponse(w, map[string]bool{
		"configured": d.generationUsecase.CredentialConfigured(r.Context()),
	}, http.StatusOK)
}

func (d *GenerationDelivery) GetCredential(w http.ResponseWriter, r *http.Request) {
	responses.DoJSONResponse(w, map[string]bool{
		"configured": d.generationUsecase.CredentialConfigured(r.Context()),
	}, http.StatusOK)
}

func toResponse(g *models.Generation) models.GenerationResponse {
	resp := models.GenerationResponse{
		ID:          g.ID,
		TaskID:      g.TaskID,
		State:       g.State,
		AspectRatio: g.AspectRatio,
		CreatedAt:   g.CreatedAt,
	}
	if g.Result != nil {
		resp.Artifacts = len(g.Result.ArtifactURLs)
	}
	return resp
}

func (d *GenerationDelivery) CreateGeneration(w http.ResponseWriter, r *http.Request) {
	const funcName = "GenerationDelivery.CreateGeneration"
	logger.Debug("creating new generation", zap.String("function", funcName))

	req := models.GenerationRequest{}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		responses.DoBadResponseAndLog(w, http.StatusBadRequest, "invalid request body")
		return
	}

	generation, err := d.generationUsecase.Submit(r.Context(), req)
	if err != nil {
		if errors.Is(err, errs.ErrMaxGenerationsReached) {
			responses.DoJSONResponse(w, map[string]any{
				"error":           err.Error(),
				"max_generations": d.generationUsecase.GetMaxGenerations(),
				"active_now":      d.generationUsecase.GetActiveGenerationsCount(),
				"suggestion":      "Try again later or wait for current generations to complete",
			}, http.StatusTooManyRequests)
			return
		}
		responses.ResponseErrorAndLog(w, err, funcName)
		return
	}

	w.Header().Set("Location", apiPrefix+"/generations/"+generation.ID)
	responses.DoJSONResponse(w, generation, http.StatusAccepted)
}

func (d *GenerationDelivery) GetGeneration(w http.ResponseWriter, r *http.Request) {
	const funcName = "GenerationDelivery.GetGeneration"

	id := mux.Vars(r)["id"]
	generation, err := d.generationUsecase.GetGeneration(r.Context(), id)
	if err != nil {
		responses.ResponseErrorAndLog(w, err, funcName)
		return
	}

	responses.DoJSONResponse(w, generation, http.StatusOK)
}

func (d *GenerationDelivery) CancelGeneration(w http.ResponseWriter, r *http.Request) {
	const funcName = "GenerationDelivery.CancelGeneration"

	id := mux.Vars(r)["id"]
	generation, err := d.generationUsecase.CancelGeneration(r.Context(), id)
	if err != nil {
		responses.ResponseErrorAndLog(w, err, funcName)
		return
	}

	responses.DoJSONResponse(w, generation, http.StatusOK)
}

func (d *GenerationDelivery) GetAllGenerations(w http.ResponseWriter, r *http.Request) {
	const funcName = "GenerationDelivery.GetAllGenerations"
	logger.Debug("getting all generations", zap.String("function", funcName))

	generations, err := d.generationUsecase.GetAllGenerations(r.Context())
	if err != nil {
		responses.ResponseErrorAndLog(w, err, funcName)
		return
	}

	if len(generations) == 0 {
		responses.DoJSONResponse(w, map[string]any{
			"message":     "No generations found",
			"suggestion":  "Create a new generation with POST /api/v1/generations",
			"count":       0,
			"generations": []any{},
		}, http.StatusOK)
		return
	}

	response := make([]models.GenerationResponse, 0, len(generations))
	for _, g := range generations {
		response = append(response, toResponse(g))
	}

	responses.DoJSONResponse(w, map[string]any{
		"count":       len(response),
		"active_now":  d.generationUsecase.GetActiveGenerationsCount(),
		"generations": response,
	}, http.StatusOK)
}

func (d *GenerationDelivery) GetGallery(w http.ResponseWriter, r *http.Request) {
	const funcName = "GenerationDelivery.GetGallery"

	views, err := d.generationUsecase.GetGallery(r.Context())
	if err != nil {
		responses.ResponseErrorAndLog(w, err, funcName)
		return
	}

	responses.DoJSONResponse(w, map[string]any{
		"count":     len(views),
		"artifacts": views,
	}, http.StatusOK)
}

func (d *GenerationDelivery) ResetSession(w http.ResponseWriter, r *http.Request) {
	const funcName = "GenerationDelivery.ResetSession"

	if err := d.generationUsecase.ResetSession(r.Context()); err != nil {
		responses.ResponseErrorAndLog(w, err, funcName)
		return
	}

	w.WriteHeader(http.StatusNoContent)
}

func decodeArtifactRequest(w http.ResponseWriter, r *http.Request) (models.ArtifactRequest, bool) {
	req := models.ArtifactRequest{}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		responses.DoBadResponseAndLog(w, http.StatusBadRequest, "invalid request body")
		return req, false
	}
	req.URL = strings.TrimSpace(req.URL)
	if req.URL == "" {
		responses.DoBadResponseAndLog(w, http.StatusBadRequest, "url is required")
		return req, false
	}
	return req, true
}

func (d *GenerationDelivery) MarkArtifact(w http.ResponseWriter, r *http.Request) {
	const funcName = "GenerationDelivery.MarkArtifact"

	req, ok := decodeArtifactRequest(w, r)
	if !ok {
		return
	}

	state, err := d.generationUsecase.MarkArtifact(r.Context(), req.URL, req.State)
	if err != nil {
		responses.ResponseErrorAndLog(w, err, funcName)
		return
	}

	responses.DoJSONResponse(w, models.ArtifactRequest{URL: req.URL, State: state}, http.StatusOK)
}

// MarkArtifacts applies several load reports at once. Every item is
// attempted and reported in request order; 207 means some were rejected.
func (d *GenerationDelivery) MarkArtifacts(w http.ResponseWriter, r *http.Request) {
	const funcName = "GenerationDelivery.MarkArtifacts"

	req := models.ArtifactBatchRequest{}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		responses.DoBadResponseAndLog(w, http.StatusBadRequest, "invalid request body")
		return
	}
	if len(req.Artifacts) == 0 {
		responses.DoBadResponseAndLog(w, http.StatusBadRequest, "artifacts are required")
		return
	}
	if len(req.Artifacts) > maxBatchArtifacts {
		responses.DoBadResponseAndLog(w, http.StatusBadRequest,
			fmt.Sprintf("at most %d artifacts per request", maxBatchArtifacts))
		return
	}

	for i := range req.Artifacts {
		req.Artifacts[i].URL = strings.TrimSpace(req.Artifacts[i].URL)
		if req.Artifacts[i].URL == "" {
			responses.DoBadResponseAndLog(w, http.StatusBadRequest, "url is required")
			return
		}
		if s := req.Artifacts[i].State; s != models.LoadLoaded && s != models.LoadFailed {
			responses.DoBadResponseAndLog(w, http.StatusBadRequest,
				fmt.Sprintf("state must be %q or %q", models.LoadLoaded, models.LoadFailed))
			return
		}
	}

	results := make([]models.ArtifactResult, len(req.Artifacts))
	var g errgroup.Group
	for i, item := range req.Artifacts {
		g.Go(func() error {
			state, err := d.generationUsecase.MarkArtifact(r.Context(), item.URL, item.State)
			if err != nil {
				logger.Warn("artifact state not applied",
					zap.String("function", funcName),
					zap.String("url", item.URL),
					zap.Error(err),
				)
				results[i] = models.ArtifactResult{URL: item.URL, Error: err.Error()}
				return nil
			}
			results[i] = models.ArtifactResult{URL: item.URL, State: state}
			return nil
		})
	}
	_ = g.Wait()

	failed := 0
	for _, res := range results {
		if res.Error != "" {
			failed++
		}
	}

	logger.Debug("artifact states updated",
		zap.String("function", funcName),
		zap.Int("count", len(results)),
		zap.Int("failed", failed),
	)

	status := http.StatusOK
	if failed > 0 {
		status = http.StatusMultiStatus
	}
	responses.DoJSONResponse(w, map[string]any{
		"count":     len(results),
		"failed":    failed,
		"artifacts": results,
	}, status)
}

func (d *GenerationDelivery) RetryArtifact(w http.ResponseWriter, r *http.Request) {
	const funcName = "GenerationDelivery.RetryArtifact"

	req, ok := decodeArtifactRequest(w, r)
	if !ok {
		return
	}

	state, err := d.generationUsecase.RetryArtifact(r.Context(), req.URL)
	if err != nil {
		responses.ResponseErrorAndLog(w, err, funcName)
		return
	}

	responses.DoJSONResponse(w, models.ArtifactRequest{URL: req.URL, State: state}, http.StatusOK)
}

func (d *GenerationDelivery) ToggleSelection(w http.ResponseWriter, r *http.Request) {
	const funcName = "GenerationDelivery.ToggleSelection"

	req, ok := decodeArtifactRequest(w, r)
	if !ok {
		return
	}

	selected, err := d.generationUsecase.ToggleSelection(r.Context(), req.URL)
	if err != nil {
		responses.ResponseErrorAndLog(w, err, funcName)
		return
	}

	responses.DoJSONResponse(w, map[string]any{
		"url":      req.URL,
		"selected": selected,
	}, http.StatusOK)
}

func (d *GenerationDelivery) DownloadArchive(w http.ResponseWriter, r *http.Request) {
	const funcName = "GenerationDelivery.DownloadArchive"
	logger.Debug("downloading archive", zap.String("function", funcName))

	archive, err := d.generationUsecase.BuildArchive(r.Context())
	if err != nil {
		responses.ResponseErrorAndLog(w, err, funcName)
		return
	}

	responses.DoBinaryResponse(w, archive.Data, "application/zip", map[string]string{
		"Content-Disposition": fmt.Sprintf("attachment; filename=%s", archive.Name),
	})

	logger.Info("archive downloaded successfully",
		zap.String("function", funcName),
		zap.String("name", archive.Name),
		zap.Int("files", archive.FileCount),
	)
}

func (d *GenerationDelivery) GetNotifications(w http.ResponseWriter, r *http.Request) {
	const funcName = "GenerationDelivery.GetNotifications"

	notifications, err := d.generationUsecase.Notifications(r.Context())
	if err != nil {
		responses.ResponseErrorAndLog(w, err, funcName)
		return
	}

	responses.DoJSONResponse(w, map[string]any{
		"count":         len(notifications),
		"notifications": notifications,
	}, http.StatusOK)
}

// ProxyImage relays artifact bytes. Its error bodies use the
// {error, details} shape that browser clients of the relay expect.
func (d *GenerationDelivery) ProxyImage(w http.ResponseWriter, r *http.Request) {
	const funcName = "GenerationDelivery.ProxyImage"

	req := models.ImageRequest{}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil || strings.TrimSpace(req.ImageURL) == "" {
		responses.DoJSONResponse(w, responses.ErrorResponse{Error: "No image URL provided"}, http.StatusBadRequest)
		return
	}

	img, err := d.generationUsecase.ProxyImage(r.Context(), req.ImageURL)
	if err != nil {
		logger.Warn("image proxy failed",
			zap.String("function", funcName),
			zap.String("url", req.ImageURL),
			zap.Error(err),
		)
		responses.DoJSONResponse(w, responses.ErrorResponse{
			Error:   "Failed to proxy image",
			Details: err.Error(),
		}, http.StatusInternalServerError)
		return
	}

	responses.DoBinaryResponse(w, img.Data, img.ContentType, map[string]string{
		"Content-Disposition": "attachment",
		"Cache-Control":       "no-cache",
	})
}
