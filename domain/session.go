package domain

// Session is the client's cached view of the authenticated user and their
// tokens. It is a value snapshot: the session store hands out copies, so
// readers never observe a half-applied transition.
//
// Authenticated is a cached derivation, true iff both User and AccessToken
// are present. It is never set independently; every transition recomputes
// it via Recompute before the snapshot becomes visible.
type Session struct {
	User          *User  `json:"user,omitempty"`
	AccessToken   string `json:"access_token,omitempty"`
	RefreshToken  string `json:"refresh_token,omitempty"`
	Authenticated bool   `json:"is_authenticated"`
}

// Recompute refreshes the cached Authenticated flag from field presence.
func (s *Session) Recompute() {
	s.Authenticated = s.User != nil && s.AccessToken != ""
}

// Empty reports whether the session holds no identity and no tokens.
func (s Session) Empty() bool {
	return s.User == nil && s.AccessToken == "" && s.RefreshToken == ""
}
