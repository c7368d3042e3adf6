// Package session keeps per-client login state and one-shot flash messages
// in a signed cookie. The server holds no session store.
package session

// Flash categories.
const (
	Success = "success"
	Danger  = "danger"
	Warning = "warning"
)

// Anonymous is what CurrentUser reports for a client that is not logged in.
const Anonymous = "anonymous"

type Flash struct {
	Category string `json:"c"`
	Message  string `json:"m"`
}

// Session is the decoded state of one client. A username is only ever held
// while authenticated.
type Session struct {
	authenticated bool
	username      string
	flashes       []Flash
	dirty         bool
}

func (s *Session) Authenticated() bool { return s.authenticated }

// Username returns the logged-in username or "" for anonymous clients.
func (s *Session) Username() string { return s.username }

// CurrentUser returns the username, or Anonymous.
func (s *Session) CurrentUser() string {
	if !s.authenticated {
		return Anonymous
	}
	return s.username
}

func (s *Session) Login(username string) {
	s.authenticated = true
	s.username = username
	s.dirty = true
}

// Logout drops everything, pending flashes included.
func (s *Session) Logout() {
	*s = Session{dirty: true}
}

func (s *Session) AddFlash(category, message string) {
	s.flashes = append(s.flashes, Flash{Category: category, Message: message})
	s.dirty = true
}

// Flashes returns pending flash messages and forgets them.
func (s *Session) Flashes() []Flash {
	if len(s.flashes) == 0 {
		return nil
	}
	out := s.flashes
	s.flashes = nil
	s.dirty = true
	return out
}

func (s *Session) empty() bool {
	return !s.authenticated && len(s.flashes) == 0
}
