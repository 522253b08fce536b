// package auth owns the login session: the user record, the session state
// machine, and the operations that move between them.
package auth

import (
	"context"
	"errors"
	"fmt"
	"sync"

	"github.com/charmbracelet/log"
	"github.com/heilocal/heilocal/internal/api"
	"github.com/heilocal/heilocal/internal/models"
	"github.com/heilocal/heilocal/internal/session"
	"github.com/heilocal/heilocal/internal/shared"
)

// State is the session state machine. Unknown holds only until the first
// restoration attempt resolves; callers must treat it as "loading" and
// suspend route decisions until then.
type State int

const (
	StateUnknown State = iota
	StateAuthenticated
	StateAnonymous
)

func (s State) String() string {
	switch s {
	case StateAuthenticated:
		return "authenticated"
	case StateAnonymous:
		return "anonymous"
	default:
		return "unknown"
	}
}

// Manager is the auth session manager. It owns the user record; the token
// pair is owned by the injected [session.Store] and only ever mutated
// through it.
type Manager struct {
	client  *api.Client
	session session.Store
	logger  *log.Logger

	mu    sync.Mutex
	user  *models.User
	state State
}

// NewManager creates a Manager bound to the given API client. The manager
// subscribes to the client's session-expired hook so an irrecoverable
// refresh failure anywhere in the pipeline drops the user record too.
func NewManager(client *api.Client, logger *log.Logger) *Manager {
	if logger == nil {
		logger = shared.NewLogger(nil)
	}

	m := &Manager{
		client:  client,
		session: client.Session(),
		logger:  logger,
		state:   StateUnknown,
	}
	client.OnSessionExpired(m.handleSessionExpired)

	return m
}

// loginRequest mirrors POST /auth/login.
type loginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

// googleLoginRequest mirrors POST /auth/google.
type googleLoginRequest struct {
	Credential string `json:"credential"`
}

// loginResponse is shared by both login endpoints.
type loginResponse struct {
	AccessToken  string      `json:"accessToken"`
	RefreshToken string      `json:"refreshToken"`
	User         models.User `json:"user"`
}

// registerRequest mirrors POST /auth/register.
type registerRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
	Name     string `json:"name"`
}

// Login authenticates with email and password. On success both tokens and
// the user record are stored.
func (m *Manager) Login(ctx context.Context, email, password string) (*models.User, error) {
	var resp loginResponse
	err := m.client.Post(ctx, "/auth/login", loginRequest{Email: email, Password: password}, &resp)
	if err != nil {
		if errors.Is(err, shared.ErrUnauthorized) || errors.Is(err, shared.ErrValidation) {
			return nil, fmt.Errorf("%w: %v", shared.ErrInvalidCredentials, err)
		}
		return nil, fmt.Errorf("login request failed: %w", err)
	}

	return m.establish(resp)
}

// LoginWithGoogle authenticates with a Google OAuth credential obtained
// from the provider's consent flow.
func (m *Manager) LoginWithGoogle(ctx context.Context, credential string) (*models.User, error) {
	var resp loginResponse
	err := m.client.Post(ctx, "/auth/google", googleLoginRequest{Credential: credential}, &resp)
	if err != nil {
		if errors.Is(err, shared.ErrUnauthorized) || errors.Is(err, shared.ErrValidation) {
			return nil, fmt.Errorf("%w: %v", shared.ErrOAuthRejected, err)
		}
		return nil, fmt.Errorf("google login request failed: %w", err)
	}

	return m.establish(resp)
}

// Register creates a new account. The backend does not log the user in;
// callers follow up with Login.
func (m *Manager) Register(ctx context.Context, email, password, name string) error {
	err := m.client.Post(ctx, "/auth/register", registerRequest{Email: email, Password: password, Name: name}, nil)
	if err != nil {
		return fmt.Errorf("register request failed: %w", err)
	}
	return nil
}

func (m *Manager) establish(resp loginResponse) (*models.User, error) {
	if err := m.session.SetTokens(resp.AccessToken, resp.RefreshToken); err != nil {
		return nil, fmt.Errorf("failed to store tokens: %w", err)
	}

	m.mu.Lock()
	m.user = &resp.User
	m.state = StateAuthenticated
	m.mu.Unlock()

	m.logger.Info("logged in", "user", resp.User.Email)
	return &resp.User, nil
}

// Logout invalidates the session. The remote call is best-effort: whatever
// it returns, local state is cleared and the call never fails visibly.
// Calling it twice is harmless.
func (m *Manager) Logout(ctx context.Context) {
	if err := m.client.Post(ctx, "/auth/logout", nil, nil); err != nil {
		m.logger.Warn("remote logout failed, clearing local session anyway", "error", err)
	}

	if err := m.session.Clear(); err != nil {
		m.logger.Error("failed to clear session", "error", err)
	}

	m.mu.Lock()
	m.user = nil
	m.state = StateAnonymous
	m.mu.Unlock()
}

// Restore resolves the initial session state. With a persisted access
// token it fetches the current user; any failure clears the tokens and
// resolves to anonymous rather than raising.
func (m *Manager) Restore(ctx context.Context) *models.User {
	if m.session.AccessToken() == "" {
		m.setAnonymous()
		return nil
	}

	var user models.User
	if err := m.client.Get(ctx, "/auth/me", &user); err != nil {
		m.logger.Warn("session restore failed", "error", err)
		if clearErr := m.session.Clear(); clearErr != nil {
			m.logger.Error("failed to clear session", "error", clearErr)
		}
		m.setAnonymous()
		return nil
	}

	m.mu.Lock()
	m.user = &user
	m.state = StateAuthenticated
	m.mu.Unlock()

	return &user
}

// CurrentUser returns the user record, or nil when not authenticated.
func (m *Manager) CurrentUser() *models.User {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.user
}

// IsAuthenticated reports whether a user record is present.
func (m *Manager) IsAuthenticated() bool {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.user != nil
}

// State returns the current session state.
func (m *Manager) State() State {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.state
}

func (m *Manager) setAnonymous() {
	m.mu.Lock()
	m.user = nil
	m.state = StateAnonymous
	m.mu.Unlock()
}

// handleSessionExpired runs when the request pipeline gives up on a
// session. Tokens are already cleared by the pipeline; drop the user.
func (m *Manager) handleSessionExpired() {
	m.logger.Info("session expired, returning to login")
	m.setAnonymous()
}
