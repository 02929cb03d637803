package models

import "time"

type TaskStatus string

const (
	StatusPending   TaskStatus = "PENDING"
	StatusRunning   TaskStatus = "RUNNING"
	StatusSuspended TaskStatus = "SUSPENDED"
	StatusSucceeded TaskStatus = "SUCCEEDED"
	StatusFailed    TaskStatus = "FAILED"
)

func (s TaskStatus) IsTerminal() bool {
	return s == StatusSucceeded || s == StatusFailed
}

func (s TaskStatus) IsInProgress() bool {
	return s == StatusPending || s == StatusRunning || s == StatusSuspended
}

type AspectRatio string

const (
	AspectLandscape AspectRatio = "16:9"
	AspectPortrait  AspectRatio = "9:16"
)

var remoteAspectRatios = map[AspectRatio]string{
	AspectLandscape: "横版",
	AspectPortrait:  "竖版",
}

// Remote returns the vocabulary the generation service expects for wh_ratios.
func (a AspectRatio) Remote() (string, bool) {
	v, ok := remoteAspectRatios[a]
	return v, ok
}

type GenerateMode string

const (
	ModeGenerate GenerateMode = "generate"
	ModeSR       GenerateMode = "sr"
	ModeHRF      GenerateMode = "hrf"
)

const StyleNone = "none"

// Styles is the fixed LoRA catalog accepted by the poster model.
var Styles = []string{
	"2D插画1",
	"2D插画2",
	"浩瀚星云",
	"浓郁色彩",
	"光线粒子",
	"透明玻璃",
	"剪纸工艺",
	"折纸工艺",
	"中国水墨",
	"中国刺绣",
	"真实场景",
	"2D卡通",
	"儿童水彩",
	"赛博背景",
	"浅蓝抽象",
	"深蓝抽象",
	"抽象点线",
	"童话油画",
}

// GenerationRequest holds the user-supplied poster parameters. Optional
// numeric fields are pointers so that "unset" is distinguishable from zero.
type GenerationRequest struct {
	Title               string       `json:"title"`
	SubTitle            string       `json:"sub_title,omitempty"`
	BodyText            string       `json:"body_text,omitempty"`
	PromptZH            string       `json:"prompt_text_zh,omitempty"`
	PromptEN            string       `json:"prompt_text_en,omitempty"`
	AspectRatio         AspectRatio  `json:"wh_ratios"`
	Style               string       `json:"lora_name,omitempty"`
	StyleWeight         *float64     `json:"lora_weight,omitempty"`
	CtrlRatio           *float64     `json:"ctrl_ratio,omitempty"`
	CtrlStep            *float64     `json:"ctrl_step,omitempty"`
	Mode                GenerateMode `json:"generate_mode"`
	Count               int          `json:"generate_num,omitempty"`
	AuxiliaryParameters string       `json:"auxiliary_parameters,omitempty"`
}

type Task struct {
	ID     string     `json:"task_id"`
	Status TaskStatus `json:"task_status"`
}

// TaskResult is one snapshot of a remote task. AspectRatio is filled in
// locally because the service does not echo it back.
type TaskResult struct {
	TaskID              string      `json:"task_id"`
	Status              TaskStatus  `json:"task_status"`
	ArtifactURLs        []string    `json:"render_urls,omitempty"`
	BackgroundURLs      []string    `json:"bg_urls,omitempty"`
	AuxiliaryParameters []string    `json:"auxiliary_parameters,omitempty"`
	Code                string      `json:"code,omitempty"`
	Message             string      `json:"message,omitempty"`
	SubmitTime          string      `json:"submit_time,omitempty"`
	ScheduledTime       string      `json:"scheduled_time,omitempty"`
	EndTime             string      `json:"end_time,omitempty"`
	AspectRatio         AspectRatio `json:"aspect_ratio,omitempty"`
}

type GenerationState string

const (
	GenerationSubmitted GenerationState = "submitted"
	GenerationPolling   GenerationState = "polling"
	GenerationSucceeded GenerationState = "succeeded"
	GenerationFailed    GenerationState = "failed"
	GenerationTimedOut  GenerationState = "timed_out"
	GenerationFatal     GenerationState = "fatal_error"
	GenerationCancelled GenerationState = "cancelled"
)

func (s GenerationState) IsActive() bool {
	return s == GenerationSubmitted || s == GenerationPolling
}

// Generation is the local record of one submission and its polling outcome.
type Generation struct {
	ID          string          `json:"id"`
	TaskID      string          `json:"task_id,omitempty"`
	AspectRatio AspectRatio     `json:"aspect_ratio"`
	State       GenerationState `json:"state"`
	Result      *TaskResult     `json:"result,omitempty"`
	Error       string          `json:"error,omitempty"`
	CreatedAt   time.Time       `json:"created_at"`
	UpdatedAt   time.Time       `json:"updated_at"`
}

type Gallery struct {
	URLs []string `json:"urls"`
}

type LoadState string

const (
	LoadLoading LoadState = "loading"
	LoadLoaded  LoadState = "loaded"
	LoadFailed  LoadState = "failed"
)

type ArtifactView struct {
	URL      string    `json:"url"`
	State    LoadState `json:"state"`
	Selected bool      `json:"selected"`
}

type NotificationLevel string

const (
	NotificationSuccess NotificationLevel = "success"
	NotificationError   NotificationLevel = "error"
)

type Notification struct {
	GenerationID string            `json:"generation_id"`
	Level        NotificationLevel `json:"level"`
	Message      string            `json:"message"`
	CreatedAt    time.Time         `json:"created_at"`
}

type Image struct {
	Data        []byte
	ContentType string
}

type Archive struct {
	Name      string
	Data      []byte
	FileCount int
}

type ImageRequest struct {
	ImageURL string `json:"imageUrl"`
}

type CredentialRequest struct {
	APIKey string `json:"apiKey"`
}

type ArtifactRequest struct {
	URL   string    `json:"url"`
	State LoadState `json:"state,omitempty"`
}

type ArtifactBatchRequest struct {
	Artifacts []ArtifactRequest `json:"artifacts"`
}

// ArtifactResult is one entry of a batch state update. Error is set when
// that item was not applied.
type ArtifactResult struct {
	URL   string    `json:"url"`
	State LoadState `json:"state,omitempty"`
	Error string    `json:"error,omitempty"`
}

type GenerationResponse struct {
	ID          string          `json:"id"`
	TaskID      string          `json:"task_id,omitempty"`
	State       GenerationState `json:"state"`
	AspectRatio AspectRatio     `json:"aspect_ratio"`
	CreatedAt   time.Time       `json:"created_at"`
	Artifacts   int             `json:"artifacts"`
}
