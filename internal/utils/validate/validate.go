package validate

import (
	"math"
	"strings"
	"unicode/utf8"

	"github.com/supchaser/postergen/internal/app/models"
	"github.com/supchaser/postergen/internal/utils/errs"
)

const (
	maxTitleLength = 30
	minImageCount  = 1
	maxImageCount  = 4

	minWeight   = 0.0
	maxWeight   = 1.0
	minCtrlStep = 0.1
)

var allowedModes = map[models.GenerateMode]bool{
	models.ModeGenerate: true,
	models.ModeSR:       true,
	models.ModeHRF:      true,
}

var allowedStyles = func() map[string]bool {
	m := make(map[string]bool, len(models.Styles))
	for _, s := range models.Styles {
		m[s] = true
	}
	return m
}()

// NormalizeGenerationRequest validates req and rewrites it into the form sent
// to the generation service: trimmed text, defaults applied, "none" style
// dropped and weights clamped to their ranges. NaN weights are rejected.
func NormalizeGenerationRequest(req *models.GenerationRequest) error {
	req.Title = strings.TrimSpace(req.Title)
	req.SubTitle = strings.TrimSpace(req.SubTitle)
	req.BodyText = strings.TrimSpace(req.BodyText)
	req.PromptZH = strings.TrimSpace(req.PromptZH)
	req.PromptEN = strings.TrimSpace(req.PromptEN)

	if err := ValidateTitle(req.Title); err != nil {
		return err
	}

	if req.AspectRatio == "" {
		req.AspectRatio = models.AspectPortrait
	}
	if err := ValidateAspectRatio(req.AspectRatio); err != nil {
		return err
	}

	if req.Mode == "" {
		req.Mode = models.ModeGenerate
	}
	if !allowedModes[req.Mode] {
		return errs.ErrInvalidMode
	}

	style, err := NormalizeStyle(req.Style)
	if err != nil {
		return err
	}
	req.Style = style

	if req.Count != 0 && (req.Count < minImageCount || req.Count > maxImageCount) {
		return errs.ErrInvalidImageCount
	}

	for _, w := range []*float64{req.StyleWeight, req.CtrlRatio, req.CtrlStep} {
		if w != nil && math.IsNaN(*w) {
			return errs.ErrInvalidWeight
		}
	}

	req.StyleWeight = clampPtr(req.StyleWeight, minWeight, maxWeight)
	req.CtrlRatio = clampPtr(req.CtrlRatio, minWeight, maxWeight)
	req.CtrlStep = clampPtr(req.CtrlStep, minCtrlStep, maxWeight)

	return nil
}

func ValidateTitle(title string) error {
	if title == "" {
		return errs.ErrTitleRequired
	}
	if utf8.RuneCountInString(title) > maxTitleLength {
		return errs.ErrTitleTooLong
	}

	return nil
}

func ValidateAspectRatio(ratio models.AspectRatio) error {
	if _, ok := ratio.Remote(); !ok {
		return errs.ErrInvalidAspectRatio
	}

	return nil
}

// NormalizeStyle maps the "none" sentinel and the empty string to an absent
// style and rejects anything outside the catalog.
func NormalizeStyle(style string) (string, error) {
	style = strings.TrimSpace(style)
	if style == "" || style == models.StyleNone {
		return "", nil
	}
	if !allowedStyles[style] {
		return "", errs.ErrInvalidStyle
	}

	return style, nil
}

func Clamp(v, lo, hi float64) float64 {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}

func clampPtr(v *float64, lo, hi float64) *float64 {
	if v == nil {
		return nil
	}
	c := Clamp(*v, lo, hi)
	return &c
}
