package usecase

import (
	"errors"
	"fmt"
	"net/http"
)

var (
	ErrInvalidInput          = errors.New("invalid input")
	ErrNotFound              = errors.New("resource not found")
	ErrUnauthorized          = errors.New("unauthorized")
	ErrDependencyUnavailable = errors.New("dependency unavailable")
	ErrNotConnected          = errors.New("league not connected")
	ErrNoData                = errors.New("no player data available")
)

type UpstreamKind string

const (
	UpstreamNotFound     UpstreamKind = "not_found"
	UpstreamUnauthorized UpstreamKind = "unauthorized"
	UpstreamServer       UpstreamKind = "server"
	UpstreamOther        UpstreamKind = "other"
)

// UpstreamError is a failed call to the fantasy data provider. Status is 0 for
// transport failures and 504 for timeouts.
type UpstreamError struct {
	Status  int
	Path    string
	Body    string
	Timeout bool
	Err     error
}

func (e *UpstreamError) Error() string {
	switch {
	case e.Timeout:
		return fmt.Sprintf("upstream timeout path=%s", e.Path)
	case e.Status == 0:
		return fmt.Sprintf("upstream request failed path=%s: %v", e.Path, e.Err)
	case e.Body != "":
		return fmt.Sprintf("upstream status=%d path=%s body=%s", e.Status, e.Path, e.Body)
	default:
		return fmt.Sprintf("upstream status=%d path=%s", e.Status, e.Path)
	}
}

// Unwrap exposes the underlying cause and the matching sentinel so callers can
// use errors.Is(err, ErrNotFound) and friends.
func (e *UpstreamError) Unwrap() []error {
	out := make([]error, 0, 2)
	switch e.Kind() {
	case UpstreamNotFound:
		out = append(out, ErrNotFound)
	case UpstreamUnauthorized:
		out = append(out, ErrUnauthorized)
	case UpstreamServer:
		out = append(out, ErrDependencyUnavailable)
	default:
		if e.Status == 0 {
			out = append(out, ErrDependencyUnavailable)
		}
	}
	if e.Err != nil {
		out = append(out, e.Err)
	}
	return out
}

func (e *UpstreamError) Kind() UpstreamKind {
	switch {
	case e.Status == http.StatusNotFound:
		return UpstreamNotFound
	case e.Status == http.StatusUnauthorized, e.Status == http.StatusForbidden:
		return UpstreamUnauthorized
	case e.Timeout, e.Status >= 500:
		return UpstreamServer
	default:
		return UpstreamOther
	}
}

const (
	MessageLeagueNotFound   = "League not found. Check the league ID and season."
	MessageAccessDenied     = "Access denied. Check your espn_s2 and SWID credentials for private leagues."
	MessageUpstreamTrouble  = "ESPN is having trouble right now. Please try again later."
	MessageConnectionFailed = "Failed to connect to league."
)

// ConnectFailureMessage turns a connect error into the message shown to the user.
func ConnectFailureMessage(err error) string {
	var upstream *UpstreamError
	if !errors.As(err, &upstream) {
		if errors.Is(err, ErrDependencyUnavailable) {
			return MessageUpstreamTrouble
		}
		return MessageConnectionFailed
	}

	switch upstream.Kind() {
	case UpstreamNotFound:
		return MessageLeagueNotFound
	case UpstreamUnauthorized:
		return MessageAccessDenied
	case UpstreamServer:
		return MessageUpstreamTrouble
	default:
		return MessageConnectionFailed
	}
}
