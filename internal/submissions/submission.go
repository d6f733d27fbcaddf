package submissions

import (
	"errors"
	"fmt"
	"net/url"
	"strings"
	"time"
)

var (
	ErrInvalidSubmission   = errors.New("invalid submission")
	ErrDuplicateSubmission = errors.New("project already submitted")
)

const (
	StatusPending = "pending"

	maxURLLen  = 2048
	maxNameLen = 200
)

// Submission is a visitor-suggested project page waiting for review.
type Submission struct {
	ID              string    `json:"id"`
	URL             string    `json:"url"`
	ContributorName string    `json:"contributor_name,omitempty"`
	Status          string    `json:"status"`
	CreatedAt       time.Time `json:"created_at"`
}

// Normalize trims the input and checks that raw is an absolute http(s) URL.
func Normalize(raw, contributor string) (string, string, error) {
	raw = strings.TrimSpace(raw)
	contributor = strings.TrimSpace(contributor)

	if raw == "" {
		return "", "", fmt.Errorf("%w: url is required", ErrInvalidSubmission)
	}
	if len(raw) > maxURLLen {
		return "", "", fmt.Errorf("%w: url is too long", ErrInvalidSubmission)
	}
	u, err := url.Parse(raw)
	if err != nil || u.Host == "" || (u.Scheme != "http" && u.Scheme != "https") {
		return "", "", fmt.Errorf("%w: url must be an absolute http(s) address", ErrInvalidSubmission)
	}
	if len(contributor) > maxNameLen {
		return "", "", fmt.Errorf("%w: contributor name is too long", ErrInvalidSubmission)
	}
	return u.String(), contributor, nil
}
