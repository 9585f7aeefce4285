package domain

import "time"

// Session is an authenticated caller. Handlers build it from verified
// token claims; services take it as an explicit argument.
type Session struct {
	ID           string
	AccountID    string
	Kind         AccountKind
	Handle       string // seekers only
	Organization string // employers only
	Scopes       []string
	AMR          []string
	IssuedAt     time.Time
	ExpiresAt    time.Time
}

func (s Session) IsEmployer() bool { return s.Kind == KindEmployer }
func (s Session) IsSeeker() bool   { return s.Kind == KindSeeker }

// IssuedSession is a Session plus its signed bearer token.
type IssuedSession struct {
	Session
	Token string
}
