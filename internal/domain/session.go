package domain

import "time"

// Credentials is the authentication material issued by the remote
// login endpoint for one account.
type Credentials struct {
	MemberID   string
	SessionKey string `json:"-"`
}

func (c Credentials) Valid() bool {
	return c.MemberID != "" && c.SessionKey != ""
}

// Session is the cached authentication state for one account. A nil
// Credentials pointer means the account holds no usable token.
// AuthPending is true only while a login call is in flight, which
// guarantees at most one concurrent login per account.
type Session struct {
	Credentials       *Credentials
	AuthPending       bool
	LastAttemptAt     time.Time
	LastAttemptFailed bool
}

func (s Session) Authenticated() bool {
	return s.Credentials != nil && s.Credentials.Valid()
}
