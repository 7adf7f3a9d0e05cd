package auth

import (
	"errors"
	"fmt"
	"sync"
)

// SessionState etapa del ciclo de vida de la sesión.
type SessionState string

const (
	StateAnonymous      SessionState = "anonymous"
	StateAuthenticating SessionState = "authenticating"
	StateAuthenticated  SessionState = "authenticated"
	StateFailed         SessionState = "failed"
)

// ErrInvalidSessionTransition transición no permitida en el ciclo de vida.
var ErrInvalidSessionTransition = errors.New("transição de sessão inválida")

// Session sesión explícita de un operador. Se pasa a quien la necesite; no hay estado global.
//
//	anonymous -> authenticating -> authenticated
//	                           \-> failed -> authenticating
type Session struct {
	mu      sync.RWMutex
	state   SessionState
	email   string
	role    string
	token   string
	failure error
}

// NewSession crea una sesión anónima.
func NewSession() *Session {
	return &Session{state: StateAnonymous}
}

// NewAuthenticatedSession crea una sesión ya autenticada a partir de un token validado.
func NewAuthenticatedSession(email, role, token string) *Session {
	s := NewSession()
	_ = s.Begin(email)
	_ = s.Succeed(role, token)
	return s
}

// Begin inicia la autenticación. Válido desde anonymous o failed.
func (s *Session) Begin(email string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.state != StateAnonymous && s.state != StateFailed {
		return fmt.Errorf("%w: %s -> %s", ErrInvalidSessionTransition, s.state, StateAuthenticating)
	}
	s.state = StateAuthenticating
	s.email = email
	s.failure = nil
	return nil
}

// Succeed completa la autenticación.
func (s *Session) Succeed(role, token string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.state != StateAuthenticating {
		return fmt.Errorf("%w: %s -> %s", ErrInvalidSessionTransition, s.state, StateAuthenticated)
	}
	s.state = StateAuthenticated
	s.role = role
	s.token = token
	return nil
}

// Fail marca la autenticación como fallida.
func (s *Session) Fail(cause error) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.state != StateAuthenticating {
		return fmt.Errorf("%w: %s -> %s", ErrInvalidSessionTransition, s.state, StateFailed)
	}
	s.state = StateFailed
	s.failure = cause
	s.role = ""
	s.token = ""
	return nil
}

func (s *Session) State() SessionState {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.state
}

// Authenticated indica si la sesión completó la autenticación.
func (s *Session) Authenticated() bool {
	return s != nil && s.State() == StateAuthenticated
}

// Email del operador; vacío en sesiones anónimas.
func (s *Session) Email() string {
	if s == nil {
		return ""
	}
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.email
}

func (s *Session) Role() string {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.role
}

func (s *Session) Token() string {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.token
}

// Err causa de la última falla de autenticación.
func (s *Session) Err() error {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.failure
}
