package errors

import (
	"errors"
	"fmt"
	"time"
)

// ErrorKind represents the kind of error
type ErrorKind string

const (
	// KindSession represents browser session acquisition errors
	KindSession ErrorKind = "session"
	// KindNavigation represents page navigation errors
	KindNavigation ErrorKind = "navigation"
	// KindSection represents section extraction errors
	KindSection ErrorKind = "section"
	// KindExtraction represents a failure of a required section
	KindExtraction ErrorKind = "extraction"
	// KindCache represents cache-related errors
	KindCache ErrorKind = "cache"
	// KindDocument represents document generation and merge errors
	KindDocument ErrorKind = "document"
	// KindValidation represents validation errors
	KindValidation ErrorKind = "validation"
	// KindConfiguration represents configuration errors
	KindConfiguration ErrorKind = "configuration"
)

// ScrapeError represents a scraper-specific error
type ScrapeError struct {
	Kind    ErrorKind
	Section string
	Message string
	Err     error
	Time    time.Time
}

// Error implements the error interface
func (e *ScrapeError) Error() string {
	if e.Section != "" {
		if e.Err != nil {
			return fmt.Sprintf("[%s] %s: %s - %v", e.Kind, e.Section, e.Message, e.Err)
		}
		return fmt.Sprintf("[%s] %s: %s", e.Kind, e.Section, e.Message)
	}
	if e.Err != nil {
		return fmt.Sprintf("[%s] %s - %v", e.Kind, e.Message, e.Err)
	}
	return fmt.Sprintf("[%s] %s", e.Kind, e.Message)
}

// Unwrap returns the underlying error
func (e *ScrapeError) Unwrap() error {
	return e.Err
}

// IsFatal returns true if the error aborts the whole extraction run.
// Section, cache and document errors are recoverable: the affected field
// is left absent, the lookup is treated as a miss or the write is dropped.
func (e *ScrapeError) IsFatal() bool {
	switch e.Kind {
	case KindSession:
		return true
	case KindNavigation:
		return true
	case KindExtraction:
		return true
	case KindConfiguration:
		return true
	default:
		return false
	}
}

// Kind returns the kind of err if it is a ScrapeError, or an empty kind
func Kind(err error) ErrorKind {
	var se *ScrapeError
	if errors.As(err, &se) {
		return se.Kind
	}
	return ""
}

// New creates a new ScrapeError
func New(kind ErrorKind, section, message string, err error) *ScrapeError {
	return &ScrapeError{
		Kind:    kind,
		Section: section,
		Message: message,
		Err:     err,
		Time:    time.Now(),
	}
}

// NewSession creates a new session error
func NewSession(message string, err error) *ScrapeError {
	return New(KindSession, "", message, err)
}

// NewNavigation creates a new navigation error
func NewNavigation(address, message string, err error) *ScrapeError {
	return New(KindNavigation, address, message, err)
}

// NewSection creates a new section extraction error
func NewSection(section, message string, err error) *ScrapeError {
	return New(KindSection, section, message, err)
}

// NewExtraction creates a new required-section failure
func NewExtraction(section, message string, err error) *ScrapeError {
	return New(KindExtraction, section, message, err)
}

// NewCache creates a new cache error
func NewCache(message string, err error) *ScrapeError {
	return New(KindCache, "", message, err)
}

// NewDocument creates a new document error
func NewDocument(message string, err error) *ScrapeError {
	return New(KindDocument, "", message, err)
}

// NewValidation creates a new validation error
func NewValidation(message string) *ScrapeError {
	return New(KindValidation, "", message, nil)
}

// NewConfiguration creates a new configuration error
func NewConfiguration(message string, err error) *ScrapeError {
	return New(KindConfiguration, "", message, err)
}
