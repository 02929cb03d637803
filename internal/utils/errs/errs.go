package errs

import (
	"errors"
	"fmt"
)

var (
	ErrPrecondition      = errors.New("api key is not set")
	ErrMalformedResponse = errors.New("malformed response from remote service")
	ErrTaskFailed        = errors.New("task failed")
	ErrTimedOut          = errors.New("task polling timed out")
	ErrNoArtifacts       = errors.New("no artifacts returned")
	ErrUnexpectedStatus  = errors.New("unexpected task status")
	ErrArtifactLoad      = errors.New("artifact failed to load")
	ErrImageTooLarge     = errors.New("image is too large to relay")

	ErrGenerationNotFound    = errors.New("generation not found")
	ErrGenerationFinished    = errors.New("generation already finished")
	ErrMaxGenerationsReached = errors.New("server is busy (max active generations limit)")

	ErrArtifactNotFound  = errors.New("artifact not found")
	ErrArtifactFailed    = errors.New("artifact is in failed state")
	ErrInvalidTransition = errors.New("invalid artifact state transition")
	ErrEmptySelection    = errors.New("no artifacts selected")

	ErrTitleRequired      = errors.New("title is required")
	ErrTitleTooLong       = errors.New("title exceeds 30 characters")
	ErrInvalidAspectRatio = errors.New("invalid aspect ratio (allowed: 16:9, 9:16)")
	ErrInvalidStyle       = errors.New("unknown style")
	ErrInvalidMode        = errors.New("invalid generate mode (allowed: generate, sr, hrf)")
	ErrInvalidImageCount  = errors.New("image count must be between 1 and 4")
	ErrImageURLRequired   = errors.New("no image URL provided")
	ErrInvalidWeight      = errors.New("weights must be numbers")
)

// RemoteServiceError is returned for every non-success response of the
// generation service.
type RemoteServiceError struct {
	StatusCode int
	Body       string
	Message    string
}

func (e *RemoteServiceError) Error() string {
	if e.Message != "" {
		return fmt.Sprintf("remote service returned status %d: %s", e.StatusCode, e.Message)
	}
	return fmt.Sprintf("remote service returned status %d", e.StatusCode)
}

// IsValidation reports whether err was produced by request validation.
func IsValidation(err error) bool {
	for _, target := range []error{
		ErrTitleRequired,
		ErrTitleTooLong,
		ErrInvalidAspectRatio,
		ErrInvalidStyle,
		ErrInvalidMode,
		ErrInvalidImageCount,
		ErrImageURLRequired,
		ErrEmptySelection,
		ErrInvalidWeight,
	} {
		if errors.Is(err, target) {
			return true
		}
	}
	return false
}

// IsPermanent reports whether err must never be retried by the poller.
func IsPermanent(err error) bool {
	return errors.Is(err, ErrPrecondition) || errors.Is(err, ErrMalformedResponse)
}
