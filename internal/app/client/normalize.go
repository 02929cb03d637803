package client

import (
	"encoding/json"
	"fmt"

	"github.com/supchaser/postergen/internal/app/models"
	"github.com/supchaser/postergen/internal/utils/errs"
)

// taskPayload is the task object as the service returns it, either under
// "output" or directly at the response root.
type taskPayload struct {
	TaskID              string   `json:"task_id"`
	TaskStatus          string   `json:"task_status"`
	RenderURLs          []string `json:"render_urls"`
	BgURLs              []string `json:"bg_urls"`
	AuxiliaryParameters []string `json:"auxiliary_parameters"`
	SubmitTime          string   `json:"submit_time"`
	ScheduledTime       string   `json:"scheduled_time"`
	EndTime             string   `json:"end_time"`
	Code                string   `json:"code"`
	Message             string   `json:"message"`
}

type envelope struct {
	taskPayload
	Output    *taskPayload `json:"output"`
	RequestID string       `json:"request_id"`
}

func hasTaskID(p *taskPayload) bool     { return p.TaskID != "" }
func hasTaskStatus(p *taskPayload) bool { return p.TaskStatus != "" }

// extractPayload picks the task object out of a response body. The nested
// "output" object takes precedence; the root is the fallback. usable decides
// whether a candidate carries the fields the caller needs.
func extractPayload(body []byte, usable func(*taskPayload) bool) (*taskPayload, error) {
	var env envelope
	if err := json.Unmarshal(body, &env); err != nil {
		return nil, fmt.Errorf("%w: %v", errs.ErrMalformedResponse, err)
	}

	if env.Output != nil && usable(env.Output) {
		return env.Output, nil
	}
	if usable(&env.taskPayload) {
		return &env.taskPayload, nil
	}

	return nil, errs.ErrMalformedResponse
}

func parseTask(body []byte) (*models.Task, error) {
	p, err := extractPayload(body, hasTaskID)
	if err != nil {
		return nil, fmt.Errorf("%w: missing task id", err)
	}

	status := models.TaskStatus(p.TaskStatus)
	if status == "" {
		status = models.StatusPending
	}

	return &models.Task{ID: p.TaskID, Status: status}, nil
}

func parseTaskResult(body []byte) (*models.TaskResult, error) {
	p, err := extractPayload(body, hasTaskStatus)
	if err != nil {
		return nil, fmt.Errorf("%w: missing task status", err)
	}

	return &models.TaskResult{
		TaskID:              p.TaskID,
		Status:              models.TaskStatus(p.TaskStatus),
		ArtifactURLs:        p.RenderURLs,
		BackgroundURLs:      p.BgURLs,
		AuxiliaryParameters: p.AuxiliaryParameters,
		Code:                p.Code,
		Message:             p.Message,
		SubmitTime:          p.SubmitTime,
		ScheduledTime:       p.ScheduledTime,
		EndTime:             p.EndTime,
	}, nil
}

// remoteMessage pulls "message" out of an error body when it is JSON.
func remoteMessage(body []byte) string {
	var e struct {
		Code    string `json:"code"`
		Message string `json:"message"`
	}
	if err := json.Unmarshal(body, &e); err != nil {
		return ""
	}
	return e.Message
}
