package store

import (
	"context"
	"encoding/json"
	"errors"
	"sync"
	"time"

	"github.com/golang-jwt/jwt/v5"

	"github.com/unioncup/contestdesk/internal/client/models"
	"github.com/unioncup/contestdesk/internal/client/prefs"
	"github.com/unioncup/contestdesk/internal/logging"
)

// sessionTTL is how long a login stays valid without re-authenticating.
const sessionTTL = 24 * time.Hour

// Roles issued by the server. The client never derives a role from the
// username; it trusts what login (or the saved session's JWT claims) says.
const (
	RoleAdmin = "admin"
	RoleJudge = "judge"
)

// rolePermissions maps a server-issued role to the actions the UI offers.
var rolePermissions = map[string][]string{
	RoleAdmin: {
		"participants:manage", "groups:manage", "judges:manage",
		"scores:view", "scores:manage", "checkin:operate",
		"statistics:view", "reports:export",
	},
	RoleJudge: {
		"scores:submit", "scores:view-own", "statistics:view",
	},
}

// authAPI is the slice of the judges API the auth store needs.
type authAPI interface {
	Login(ctx context.Context, req models.LoginRequest) (*models.LoginResponse, error)
	Logout(ctx context.Context) error
	Current(ctx context.Context) (*models.Judge, error)
}

// savedUser is the shape persisted under the currentUser preference key.
type savedUser struct {
	Judge models.Judge `json:"judge"`
	Role  string       `json:"role"`
}

// AuthStore owns the session: current judge, bearer token, role and login
// time. It implements api.TokenSource, so the HTTP client always sees the
// live token.
type AuthStore struct {
	mu       sync.Mutex
	api      authAPI
	prefs    prefs.Repository
	notifier Notifier
	log      logging.Logger

	judge        *models.Judge
	token        string
	role         string
	loginTime    time.Time
	lastActivity time.Time
	logoutTimer  *time.Timer

	now func() time.Time
}

func NewAuthStore(repo prefs.Repository, notifier Notifier, log logging.Logger) *AuthStore {
	return &AuthStore{
		prefs:    repo,
		notifier: notifier,
		log:      log,
		now:      time.Now,
	}
}

// SetAPI binds the judges API after the HTTP client exists. The client needs
// this store as its TokenSource, so the two cannot be built in one step.
func (s *AuthStore) SetAPI(api authAPI) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.api = api
}

// Token implements api.TokenSource.
func (s *AuthStore) Token() string {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.token
}

// Login authenticates and, on success, caches the session and persists it so
// a restart can restore it.
func (s *AuthStore) Login(ctx context.Context, username, password string) error {
	s.mu.Lock()
	api := s.api
	s.mu.Unlock()

	resp, err := api.Login(ctx, models.LoginRequest{Username: username, Password: password})
	if err != nil {
		s.log.Warn(ctx, "login failed", "username", username, "error", err)
		s.notifier.AddNotification(NotificationError, "Login failed", "Check your username and password")
		return err
	}

	s.mu.Lock()
	s.token = resp.Token
	judge := resp.Judge
	s.judge = &judge
	s.role = resp.Role
	s.loginTime = s.now()
	s.lastActivity = s.loginTime
	s.resetLogoutTimerLocked(sessionTTL)
	s.mu.Unlock()

	s.persistSession(ctx)
	s.notifier.AddNotification(NotificationSuccess, "Logged in", "Welcome, "+judge.Name)
	return nil
}

// Logout ends the session. The server call is best effort: local state and
// persisted session are cleared even when it fails.
func (s *AuthStore) Logout(ctx context.Context) error {
	s.mu.Lock()
	api := s.api
	s.mu.Unlock()

	var err error
	if api != nil {
		if err = api.Logout(ctx); err != nil {
			s.log.Warn(ctx, "server logout failed", "error", err)
		}
	}

	s.mu.Lock()
	s.judge = nil
	s.token = ""
	s.role = ""
	s.loginTime = time.Time{}
	s.lastActivity = time.Time{}
	if s.logoutTimer != nil {
		s.logoutTimer.Stop()
		s.logoutTimer = nil
	}
	s.mu.Unlock()

	s.clearSession(ctx)
	return err
}

// Restore loads a persisted session. The saved role is cross-checked against
// the token's JWT claims, the 24h window is enforced, and the session is
// confirmed against the server; any failure ends in a clean logged-out state.
func (s *AuthStore) Restore(ctx context.Context) error {
	token, err := s.prefs.Get(ctx, prefs.KeyToken)
	if err != nil {
		if !errors.Is(err, prefs.ErrNotFound) {
			s.log.Warn(ctx, "read saved session", "error", err)
		}
		return nil
	}

	var saved savedUser
	if raw, err := s.prefs.Get(ctx, prefs.KeyCurrentUser); err == nil {
		if err := json.Unmarshal([]byte(raw), &saved); err != nil {
			s.log.Warn(ctx, "decode saved user", "error", err)
		}
	}

	var loginTime time.Time
	if raw, err := s.prefs.Get(ctx, prefs.KeyLoginTime); err == nil {
		if t, err := time.Parse(time.RFC3339Nano, raw); err == nil {
			loginTime = t
		}
	}

	role := saved.Role
	if claimed := roleFromToken(token); claimed != "" {
		role = claimed
	}

	s.mu.Lock()
	s.token = token
	s.judge = &saved.Judge
	s.role = role
	s.loginTime = loginTime
	s.lastActivity = s.now()
	s.mu.Unlock()

	if !s.IsSessionValid() {
		s.log.Info(ctx, "saved session expired")
		return s.Logout(ctx)
	}

	if err := s.RefreshUser(ctx); err != nil {
		return err
	}

	s.mu.Lock()
	s.resetLogoutTimerLocked(sessionTTL - s.now().Sub(s.loginTime))
	s.mu.Unlock()
	return nil
}

// RefreshUser re-reads the current judge from the server. A failure means
// the token no longer works, so the session is torn down.
func (s *AuthStore) RefreshUser(ctx context.Context) error {
	s.mu.Lock()
	api := s.api
	s.mu.Unlock()

	judge, err := api.Current(ctx)
	if err != nil {
		s.log.Warn(ctx, "refresh current user failed", "error", err)
		s.Logout(ctx)
		return err
	}

	s.mu.Lock()
	s.judge = judge
	s.mu.Unlock()
	s.persistSession(ctx)
	return nil
}

// IsSessionValid reports whether the login is still inside the 24h window.
// Exactly 24h counts as expired.
func (s *AuthStore) IsSessionValid() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.token == "" || s.loginTime.IsZero() {
		return false
	}
	return s.now().Sub(s.loginTime) < sessionTTL
}

func (s *AuthStore) IsAuthenticated() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.token != "" && s.judge != nil
}

func (s *AuthStore) CurrentJudge() *models.Judge {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.judge == nil {
		return nil
	}
	judge := *s.judge
	return &judge
}

func (s *AuthStore) Role() string {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.role
}

func (s *AuthStore) IsAdmin() bool {
	return s.Role() == RoleAdmin
}

// Permissions returns the action set granted by the current role.
func (s *AuthStore) Permissions() []string {
	s.mu.Lock()
	defer s.mu.Unlock()
	perms := rolePermissions[s.role]
	out := make([]string, len(perms))
	copy(out, perms)
	return out
}

func (s *AuthStore) HasPermission(perm string) bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	for _, p := range rolePermissions[s.role] {
		if p == perm {
			return true
		}
	}
	return false
}

// Touch records user activity. Activity does not extend the session; the
// timestamp exists for display and future idle handling.
func (s *AuthStore) Touch() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.lastActivity = s.now()
}

func (s *AuthStore) LastActivity() time.Time {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.lastActivity
}

// resetLogoutTimerLocked (re)arms the auto-logout. Only login, logout and
// restore touch the timer; activity never does.
func (s *AuthStore) resetLogoutTimerLocked(d time.Duration) {
	if s.logoutTimer != nil {
		s.logoutTimer.Stop()
	}
	if d <= 0 {
		d = time.Millisecond
	}
	s.logoutTimer = time.AfterFunc(d, func() {
		s.notifier.AddNotification(NotificationWarning, "Session expired", "Please log in again")
		s.Logout(context.Background())
	})
}

func (s *AuthStore) persistSession(ctx context.Context) {
	s.mu.Lock()
	token := s.token
	loginTime := s.loginTime
	var saved savedUser
	if s.judge != nil {
		saved = savedUser{Judge: *s.judge, Role: s.role}
	}
	s.mu.Unlock()

	data, err := json.Marshal(saved)
	if err != nil {
		s.log.Warn(ctx, "encode saved user", "error", err)
		return
	}
	err = s.prefs.SetMany(ctx, map[string]string{
		prefs.KeyToken:       token,
		prefs.KeyCurrentUser: string(data),
		prefs.KeyLoginTime:   loginTime.Format(time.RFC3339Nano),
	})
	if err != nil {
		s.log.Warn(ctx, "persist session", "error", err)
	}
}

func (s *AuthStore) clearSession(ctx context.Context) {
	err := s.prefs.DeleteMany(ctx, prefs.KeyToken, prefs.KeyCurrentUser, prefs.KeyLoginTime)
	if err != nil {
		s.log.Warn(ctx, "clear saved session", "error", err)
	}
}

// roleFromToken pulls the role claim out of a saved JWT without verifying
// the signature; the server re-validates the token on the next request
// anyway, this only seeds local display state.
func roleFromToken(token string) string {
	parser := jwt.NewParser()
	claims := jwt.MapClaims{}
	if _, _, err := parser.ParseUnverified(token, claims); err != nil {
		return ""
	}
	if role, ok := claims["role"].(string); ok {
		return role
	}
	return ""
}
