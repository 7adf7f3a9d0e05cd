package auth_test

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"

	"github.com/jhoicas/parcerias-admin/internal/application/auth"
	"github.com/jhoicas/parcerias-admin/internal/application/dto"
	"github.com/jhoicas/parcerias-admin/internal/domain"
	pkgjwt "github.com/jhoicas/parcerias-admin/pkg/jwt"
)

const secret = "test-secret"

func newUseCase(t *testing.T) *auth.AuthUseCase {
	t.Helper()
	hash, err := bcrypt.GenerateFromPassword([]byte("s3nha"), bcrypt.MinCost)
	require.NoError(t, err)
	return auth.NewAuthUseCase(
		auth.AdminCredentials{Email: "ops@parcerias.org", PasswordHash: string(hash)},
		auth.JWTConfig{Secret: secret, ExpMinutes: 30, Issuer: "parcerias-admin"},
	)
}

// ─── Login ────────────────────────────────────────────────────────────────────

func TestLogin_Exitoso(t *testing.T) {
	uc := newUseCase(t)
	session := auth.NewSession()

	out, err := uc.Login(session, dto.LoginRequest{Email: "OPS@parcerias.org", Password: "s3nha"})
	require.NoError(t, err)
	assert.Equal(t, "ops@parcerias.org", out.Email)
	assert.Equal(t, auth.RoleAdmin, out.Role)
	assert.Equal(t, 1800, out.ExpiresIn)

	claims, err := pkgjwt.Parse(secret, out.Token)
	require.NoError(t, err)
	assert.Equal(t, auth.RoleAdmin, claims.Role)

	assert.Equal(t, auth.StateAuthenticated, session.State())
	assert.Equal(t, out.Token, session.Token())
}

func TestLogin_PasswordIncorrecto(t *testing.T) {
	uc := newUseCase(t)
	session := auth.NewSession()

	_, err := uc.Login(session, dto.LoginRequest{Email: "ops@parcerias.org", Password: "errada"})
	assert.ErrorIs(t, err, domain.ErrUnauthorized)
	assert.Equal(t, auth.StateFailed, session.State())
	assert.ErrorIs(t, session.Err(), domain.ErrUnauthorized)
	assert.Empty(t, session.Token())
}

func TestLogin_EmailDesconocido(t *testing.T) {
	uc := newUseCase(t)
	_, err := uc.Login(auth.NewSession(), dto.LoginRequest{Email: "otro@parcerias.org", Password: "s3nha"})
	assert.ErrorIs(t, err, domain.ErrUnauthorized)
}

func TestLogin_SinAdminConfigurado(t *testing.T) {
	uc := auth.NewAuthUseCase(auth.AdminCredentials{}, auth.JWTConfig{Secret: secret})
	_, err := uc.Login(auth.NewSession(), dto.LoginRequest{Email: "ops@parcerias.org", Password: "x"})
	assert.ErrorIs(t, err, domain.ErrUnauthorized)
}

func TestLogin_ReintentoTrasFalla(t *testing.T) {
	uc := newUseCase(t)
	session := auth.NewSession()

	_, err := uc.Login(session, dto.LoginRequest{Email: "ops@parcerias.org", Password: "errada"})
	require.Error(t, err)

	_, err = uc.Login(session, dto.LoginRequest{Email: "ops@parcerias.org", Password: "s3nha"})
	require.NoError(t, err)
	assert.True(t, session.Authenticated())
}

func TestLogin_SesionYaAutenticada(t *testing.T) {
	uc := newUseCase(t)
	session := auth.NewAuthenticatedSession("ops@parcerias.org", auth.RoleAdmin, "tok")

	_, err := uc.Login(session, dto.LoginRequest{Email: "ops@parcerias.org", Password: "s3nha"})
	assert.ErrorIs(t, err, auth.ErrInvalidSessionTransition)
}

// ─── Session ──────────────────────────────────────────────────────────────────

func TestSession_Transiciones(t *testing.T) {
	s := auth.NewSession()
	assert.Equal(t, auth.StateAnonymous, s.State())
	assert.False(t, s.Authenticated())

	assert.ErrorIs(t, s.Succeed("admin", "tok"), auth.ErrInvalidSessionTransition)
	assert.ErrorIs(t, s.Fail(errors.New("x")), auth.ErrInvalidSessionTransition)

	require.NoError(t, s.Begin("ops@parcerias.org"))
	assert.Equal(t, auth.StateAuthenticating, s.State())
	assert.ErrorIs(t, s.Begin("ops@parcerias.org"), auth.ErrInvalidSessionTransition)

	require.NoError(t, s.Succeed("admin", "tok"))
	assert.True(t, s.Authenticated())
	assert.Equal(t, "ops@parcerias.org", s.Email())
	assert.Equal(t, "admin", s.Role())
}

func TestSession_NilEsAnonima(t *testing.T) {
	var s *auth.Session
	assert.False(t, s.Authenticated())
	assert.Empty(t, s.Email())
}
