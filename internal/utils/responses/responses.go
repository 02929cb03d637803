package responses

import (
	"encoding/json"
	"errors"
	"net/http"
	"strconv"

	"github.com/supchaser/postergen/internal/utils/errs"
	"github.com/supchaser/postergen/internal/utils/logger"
	"go.uber.org/zap"
)

type BadResponse struct {
	Status int    `json:"status"`
	Text   string `json:"text"`
}

// ErrorResponse is the body returned by the image relay on failure.
type ErrorResponse struct {
	Error   string `json:"error"`
	Details string `json:"details,omitempty"`
}

func DoBadResponseAndLog(w http.ResponseWriter, statusCode int, message string) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(statusCode)

	response := BadResponse{
		Status: statusCode,
		Text:   message,
	}

	jsonResponse, err := json.Marshal(response)
	if err != nil {
		http.Error(w, "internal error", http.StatusInternalServerError)
		return
	}
	_, err = w.Write(jsonResponse)
	if err != nil {
		logger.Error("failed to write response",
			zap.String("function", "DoBadResponseAndLog"),
			zap.Error(err),
		)
		return
	}

	logger.Warn("Bad response",
		zap.Int("status", statusCode),
		zap.String("message", message),
	)
}

func DoJSONResponse(w http.ResponseWriter, responseData interface{}, successStatusCode int) {
	body, err := json.Marshal(responseData)
	if err != nil {
		DoBadResponseAndLog(w, http.StatusInternalServerError, "internal error")
		logger.Error("failed to marshal response",
			zap.String("function", "DoJSONResponse"),
			zap.Error(err),
		)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	w.Header().Set("Content-Length", strconv.Itoa(len(body)))
	w.WriteHeader(successStatusCode)

	if _, err := w.Write(body); err != nil {
		logger.Error("failed to write response",
			zap.String("function", "DoJSONResponse"),
			zap.Error(err),
		)
	}
}

// DoBinaryResponse writes raw bytes with the given headers.
func DoBinaryResponse(w http.ResponseWriter, data []byte, contentType string, headers map[string]string) {
	w.Header().Set("Content-Type", contentType)
	w.Header().Set("Content-Length", strconv.Itoa(len(data)))
	for k, v := range headers {
		w.Header().Set(k, v)
	}
	w.WriteHeader(http.StatusOK)

	if _, err := w.Write(data); err != nil {
		logger.Error("failed to write response",
			zap.String("function", "DoBinaryResponse"),
			zap.Error(err),
		)
	}
}

func ResponseErrorAndLog(w http.ResponseWriter, err error, funcName string) {
	var remote *errs.RemoteServiceError

	switch {
	case errors.Is(err, errs.ErrPrecondition):
		DoBadResponseAndLog(w, http.StatusPreconditionFailed, "api key is not set")
		logger.Warn(funcName,
			zap.String("error", err.Error()),
		)

	case errs.IsValidation(err):
		DoBadResponseAndLog(w, http.StatusBadRequest, err.Error())
		logger.Warn(funcName,
			zap.String("error", err.Error()),
		)

	case errors.Is(err, errs.ErrGenerationNotFound):
		DoBadResponseAndLog(w, http.StatusNotFound, "generation not found")
		logger.Warn(funcName,
			zap.String("error", err.Error()),
		)

	case errors.Is(err, errs.ErrArtifactNotFound):
		DoBadResponseAndLog(w, http.StatusNotFound, "artifact not found")
		logger.Warn(funcName,
			zap.String("error", err.Error()),
		)

	case errors.Is(err, errs.ErrMaxGenerationsReached):
		DoBadResponseAndLog(w, http.StatusTooManyRequests, "server is busy")
		logger.Warn(funcName,
			zap.String("error", err.Error()),
		)

	case errors.Is(err, errs.ErrGenerationFinished),
		errors.Is(err, errs.ErrInvalidTransition),
		errors.Is(err, errs.ErrArtifactFailed):
		DoBadResponseAndLog(w, http.StatusConflict, err.Error())
		logger.Warn(funcName,
			zap.String("error", err.Error()),
		)

	case errors.As(err, &remote):
		DoBadResponseAndLog(w, http.StatusBadGateway, err.Error())
		logger.Error(funcName,
			zap.String("error", err.Error()),
			zap.Int("remote_status", remote.StatusCode),
		)

	case errors.Is(err, errs.ErrMalformedResponse),
		errors.Is(err, errs.ErrArtifactLoad),
		errors.Is(err, errs.ErrImageTooLarge):
		DoBadResponseAndLog(w, http.StatusBadGateway, err.Error())
		logger.Error(funcName,
			zap.String("error", err.Error()),
		)

	default:
		DoBadResponseAndLog(w, http.StatusInternalServerError, "internal error")
		logger.Error(funcName,
			zap.String("error", err.Error()),
		)
	}
}
