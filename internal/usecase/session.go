package usecase

import (
	"fmt"
	"sync/atomic"

	"github.com/riskibarqy/draft-assistant-api/internal/domain/league"
)

// Session holds the active league connection. The zero value is disconnected.
type Session struct {
	current atomic.Pointer[league.Context]
}

func NewSession() *Session {
	return &Session{}
}

func (s *Session) Current() (league.Context, bool) {
	lc := s.current.Load()
	if lc == nil {
		return league.Context{}, false
	}
	return *lc, true
}

// Replace swaps in a new league context. There is no disconnect; a later
// connect simply overwrites the previous one.
func (s *Session) Replace(lc league.Context) {
	s.current.Store(&lc)
}

func (s *Session) Require() (league.Context, error) {
	lc, ok := s.Current()
	if !ok {
		return league.Context{}, fmt.Errorf("%w: connect to a league first", ErrNotConnected)
	}
	return lc, nil
}
