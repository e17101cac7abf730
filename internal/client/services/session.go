package services

import (
	"context"
	"errors"
	"time"

	"github.com/dmitrijs2005/storefront/internal/client/models"
	"github.com/dmitrijs2005/storefront/internal/client/persistence"
	"github.com/dmitrijs2005/storefront/internal/common"
	"github.com/dmitrijs2005/storefront/internal/logging"
)

// Authenticator is the part of the user directory the session needs.
type Authenticator interface {
	Authenticate(ctx context.Context, email string, password []byte) (models.User, bool)
	Get(id string) (models.User, bool)
	RecordLogin(ctx context.Context, id string, at time.Time) error
}

// SessionManager tracks who is signed in. It starts anonymous. Persisting the
// session is optional and only happens for remembered logins.
type SessionManager struct {
	gw      *persistence.Gateway
	users   Authenticator
	log     logging.Logger
	now     func() time.Time
	current *models.Session
}

func NewSessionManager(gw *persistence.Gateway, users Authenticator, log logging.Logger) *SessionManager {
	if log == nil {
		log = logging.Nop()
	}
	return &SessionManager{
		gw:    gw,
		users: users,
		log:   log.With("component", "session"),
		now:   time.Now,
	}
}

// SetClock replaces the time source used for last-login stamps.
func (s *SessionManager) SetClock(now func() time.Time) {
	s.now = now
}

// Login signs the user in. With remember set the session is persisted;
// without it any previously remembered session is forgotten. On failure the
// current state is left untouched.
func (s *SessionManager) Login(ctx context.Context, email string, password []byte, remember bool) (models.Session, error) {
	u, ok := s.users.Authenticate(ctx, email, password)
	if !ok {
		s.log.Info(ctx, "login rejected")
		return models.Session{}, common.ErrorInvalidCredentials
	}

	sess := models.NewSession(u)
	if remember {
		if err := s.gw.Save(ctx, persistence.KeyCurrentUser, sess); err != nil {
			return models.Session{}, err
		}
	} else if err := s.gw.Remove(ctx, persistence.KeyCurrentUser); err != nil {
		s.log.Warn(ctx, "failed to forget remembered session", "error", err)
	}
	s.current = &sess

	if err := s.users.RecordLogin(ctx, u.ID, s.now()); err != nil {
		s.log.Warn(ctx, "failed to record last login", "id", u.ID, "error", err)
	}
	s.log.Info(ctx, "logged in", "id", u.ID, "remember", remember)
	return sess, nil
}

// Logout always leaves the manager anonymous. The returned error only
// reports a failure to remove the persisted session.
func (s *SessionManager) Logout(ctx context.Context) error {
	wasIn := s.current != nil
	s.current = nil
	if err := s.gw.Remove(ctx, persistence.KeyCurrentUser); err != nil {
		return err
	}
	if wasIn {
		s.log.Info(ctx, "logged out")
	}
	return nil
}

// Resume restores a persisted session without checking credentials. A session
// that names a missing or inactive user is dropped and the manager stays
// anonymous.
func (s *SessionManager) Resume(ctx context.Context) (models.Session, bool) {
	stored := persistence.Load(ctx, s.gw, persistence.KeyCurrentUser, (*models.Session)(nil), validSession)
	if stored == nil {
		return models.Session{}, false
	}

	u, ok := s.users.Get(stored.UserID)
	if !ok || !u.IsActive {
		s.log.Info(ctx, "dropping stale session", "id", stored.UserID)
		if err := s.gw.Remove(ctx, persistence.KeyCurrentUser); err != nil {
			s.log.Warn(ctx, "failed to remove stale session", "error", err)
		}
		return models.Session{}, false
	}

	s.current = stored
	return *stored, true
}

func validSession(sess *models.Session) error {
	if sess == nil || sess.UserID == "" {
		return errors.New("session without user id")
	}
	return nil
}

// Current returns the signed-in session, if any. A session whose user has
// since been deleted or deactivated counts as signed out.
func (s *SessionManager) Current() (models.Session, bool) {
	if s.current == nil {
		return models.Session{}, false
	}
	if u, ok := s.users.Get(s.current.UserID); !ok || !u.IsActive {
		return models.Session{}, false
	}
	return *s.current, true
}

// Stale reports whether a session is held for a user that is now missing or
// inactive. Logout clears it.
func (s *SessionManager) Stale() bool {
	if s.current == nil {
		return false
	}
	_, ok := s.Current()
	return !ok
}
