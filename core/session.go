package core

// Terminal is the session outcome, Playing until one of the one-way terminal states is reached
type Terminal uint8

const (
	TerminalPlaying Terminal = iota
	TerminalWon
	TerminalLost
)

func (t Terminal) String() string {
	switch t {
	case TerminalWon:
		return "won"
	case TerminalLost:
		return "lost"
	default:
		return "playing"
	}
}

// Session is the scoring and outcome state of a single play session
// Score and zone are written by interaction, countdown and terminal by the loop evaluator
type Session struct {
	Score     int
	Countdown int
	Zone      Zone
	Finished  bool // finish region reached
	Terminal  Terminal
}

// NewSession starts a session in the surface zone
func NewSession(countdown, score int) Session {
	return Session{
		Score:     score,
		Countdown: countdown,
		Zone:      ZoneSurface,
		Terminal:  TerminalPlaying,
	}
}

// Over reports a terminal outcome
func (s *Session) Over() bool {
	return s.Terminal != TerminalPlaying
}

// EnterZone switches to z, returns false if already there
// The switch only ever moves deeper: leaving the cave is not possible
func (s *Session) EnterZone(z Zone) bool {
	if z <= s.Zone {
		return false
	}
	s.Zone = z
	return true
}

// Evaluate derives the terminal state, first transition wins and sticks
func (s *Session) Evaluate() (Terminal, bool) {
	if s.Over() {
		return s.Terminal, false
	}
	switch {
	case s.Finished:
		s.Terminal = TerminalWon
	case s.Score < 0 || s.Countdown < 0:
		s.Terminal = TerminalLost
	default:
		return TerminalPlaying, false
	}
	return s.Terminal, true
}
