package translation

import (
	"errors"
	"fmt"
)

// ErrFormalityUnsupported signals that the backend rejected the formality
// parameter for the requested language pair. The DeepL client retries once
// without the hint when it sees this; it never reaches callers.
var ErrFormalityUnsupported = errors.New("formality not supported for language pair")

// ProviderError wraps a translation backend failure with the upstream cause.
type ProviderError struct {
	Provider string
	Message  string
	Cause    error
}

func (e *ProviderError) Error() string {
	if e.Cause != nil {
		return fmt.Sprintf("%s: %s: %v", e.Provider, e.Message, e.Cause)
	}
	return fmt.Sprintf("%s: %s", e.Provider, e.Message)
}

func (e *ProviderError) Unwrap() error {
	return e.Cause
}
