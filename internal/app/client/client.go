package client

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/supchaser/postergen/internal/app"
	"github.com/supchaser/postergen/internal/app/models"
	"github.com/supchaser/postergen/internal/utils/errs"
	"github.com/supchaser/postergen/internal/utils/logger"
	"go.uber.org/zap"
)

const (
	DefaultBaseURL = "https://dashscope.aliyuncs.com"
	PosterModel    = "wanx-poster-generation-v1"

	submitPath = "/api/v1/services/aigc/text2image/image-synthesis"
	taskPath   = "/api/v1/tasks/"
)

// Credentials supplies the bearer secret for each call.
type Credentials interface {
	Get(ctx context.Context) string
}

// DashScopeClient talks to the poster generation service over HTTP.
type DashScopeClient struct {
	baseURL    string
	creds      Credentials
	httpClient *http.Client
}

// NewDashScopeClient builds a client. An empty baseURL selects the public
// endpoint; a nil httpClient gets a 60 second timeout.
func NewDashScopeClient(baseURL string, creds Credentials, httpClient *http.Client) *DashScopeClient {
	if baseURL == "" {
		baseURL = DefaultBaseURL
	}
	if httpClient == nil {
		httpClient = &http.Client{Timeout: 60 * time.Second}
	}
	return &DashScopeClient{
		baseURL:    strings.TrimRight(baseURL, "/"),
		creds:      creds,
		httpClient: httpClient,
	}
}

type posterInput struct {
	Title               string   `json:"title"`
	SubTitle            string   `json:"sub_title,omitempty"`
	BodyText            string   `json:"body_text,omitempty"`
	PromptTextZH        string   `json:"prompt_text_zh,omitempty"`
	PromptTextEN        string   `json:"prompt_text_en,omitempty"`
	WHRatios            string   `json:"wh_ratios"`
	LoraName            string   `json:"lora_name,omitempty"`
	LoraWeight          *float64 `json:"lora_weight,omitempty"`
	CtrlRatio           *float64 `json:"ctrl_ratio,omitempty"`
	CtrlStep            *float64 `json:"ctrl_step,omitempty"`
	GenerateMode        string   `json:"generate_mode"`
	GenerateNum         int      `json:"generate_num,omitempty"`
	AuxiliaryParameters string   `json:"auxiliary_parameters,omitempty"`
}

type submitBody struct {
	Model      string      `json:"model"`
	Input      posterInput `json:"input"`
	Parameters struct{}    `json:"parameters"`
}

func buildSubmitBody(req models.GenerationRequest) (submitBody, error) {
	ratio, ok := req.AspectRatio.Remote()
	if !ok {
		return submitBody{}, errs.ErrInvalidAspectRatio
	}

	return submitBody{
		Model: PosterModel,
		Input: posterInput{
			Title:               req.Title,
			SubTitle:            req.SubTitle,
			BodyText:            req.BodyText,
			PromptTextZH:        req.PromptZH,
			PromptTextEN:        req.PromptEN,
			WHRatios:            ratio,
			LoraName:            req.Style,
			LoraWeight:          req.StyleWeight,
			CtrlRatio:           req.CtrlRatio,
			CtrlStep:            req.CtrlStep,
			GenerateMode:        string(req.Mode),
			GenerateNum:         req.Count,
			AuxiliaryParameters: req.AuxiliaryParameters,
		},
	}, nil
}

// Submit creates an asynchronous poster generation task.
func (c *DashScopeClient) Submit(ctx context.Context, req models.GenerationRequest) (*models.Task, error) {
	const funcName = "DashScopeClient.Submit"

	apiKey := c.creds.Get(ctx)
	if apiKey == "" {
		return nil, errs.ErrPrecondition
	}

	body, err := buildSubmitBody(req)
	if err != nil {
		return nil, err
	}
	payload, err := json.Marshal(body)
	if err != nil {
		return nil, fmt.Errorf("encoding request body: %w", err)
	}

	httpReq, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+submitPath, bytes.NewReader(payload))
	if err != nil {
		return nil, fmt.Errorf("creating request: %w", err)
	}
	httpReq.Header.Set("Content-Type", "application/json")
	httpReq.Header.Set("X-DashScope-Async", "enable")

	respBody, err := c.do(httpReq, apiKey)
	if err != nil {
		logger.Warn("submit failed",
			zap.String("function", funcName),
			zap.Error(err),
		)
		return nil, err
	}

	task, err := parseTask(respBody)
	if err != nil {
		logger.Warn("submit response has no task id",
			zap.String("function", funcName),
			zap.ByteString("body", respBody),
		)
		return nil, err
	}

	logger.Info("poster task submitted",
		zap.String("function", funcName),
		zap.String("task_id", task.ID),
		zap.String("status", string(task.Status)),
	)

	return task, nil
}

// FetchResult reads the current state of a task.
func (c *DashScopeClient) FetchResult(ctx context.Context, taskID string) (*models.TaskResult, error) {
	const funcName = "DashScopeClient.FetchResult"

	apiKey := c.creds.Get(ctx)
	if apiKey == "" {
		return nil, errs.ErrPrecondition
	}

	httpReq, err := http.NewRequestWithContext(ctx, http.MethodGet, c.baseURL+taskPath+url.PathEscape(taskID), nil)
	if err != nil {
		return nil, fmt.Errorf("creating request: %w", err)
	}

	respBody, err := c.do(httpReq, apiKey)
	if err != nil {
		return nil, err
	}

	result, err := parseTaskResult(respBody)
	if err != nil {
		logger.Warn("task response has no status",
			zap.String("function", funcName),
			zap.String("task_id", taskID),
			zap.ByteString("body", respBody),
		)
		return nil, err
	}
	if result.TaskID == "" {
		result.TaskID = taskID
	}

	logger.Debug("task result fetched",
		zap.String("function", funcName),
		zap.String("task_id", taskID),
		zap.String("status", string(result.Status)),
		zap.Int("artifacts", len(result.ArtifactURLs)),
	)

	return result, nil
}

func (c *DashScopeClient) do(req *http.Request, apiKey string) ([]byte, error) {
	req.Header.Set("Accept", "application/json")
	req.Header.Set("Authorization", "Bearer "+apiKey)

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("executing request: %w", err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("reading response: %w", err)
	}
	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return nil, &errs.RemoteServiceError{
			StatusCode: resp.StatusCode,
			Body:       string(body),
			Message:    remoteMessage(body),
		}
	}

	return body, nil
}

var _ app.TaskClient = (*DashScopeClient)(nil)
