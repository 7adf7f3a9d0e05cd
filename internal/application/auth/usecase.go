package auth

import (
	"strings"

	"golang.org/x/crypto/bcrypt"

	"github.com/jhoicas/parcerias-admin/internal/application/dto"
	"github.com/jhoicas/parcerias-admin/internal/domain"
	"github.com/jhoicas/parcerias-admin/pkg/jwt"
)

// RoleAdmin rol del operador del painel.
const RoleAdmin = "admin"

// JWTConfig configuración para generación de tokens.
type JWTConfig struct {
	Secret     string
	ExpMinutes int
	Issuer     string
}

// AdminCredentials operador configurado. PasswordHash es bcrypt.
type AdminCredentials struct {
	Email        string
	PasswordHash string
}

// AuthUseCase autentica al operador del painel y emite su JWT.
type AuthUseCase struct {
	admin  AdminCredentials
	jwtCfg JWTConfig
}

// NewAuthUseCase construye el caso de uso de auth.
func NewAuthUseCase(admin AdminCredentials, jwtCfg JWTConfig) *AuthUseCase {
	return &AuthUseCase{admin: admin, jwtCfg: jwtCfg}
}

// Login verifica email/password y lleva la sesión a authenticated o failed.
func (uc *AuthUseCase) Login(session *Session, in dto.LoginRequest) (*dto.LoginResponse, error) {
	if err := session.Begin(in.Email); err != nil {
		return nil, err
	}
	if uc.admin.Email == "" || uc.admin.PasswordHash == "" || !strings.EqualFold(in.Email, uc.admin.Email) {
		_ = session.Fail(domain.ErrUnauthorized)
		return nil, domain.ErrUnauthorized
	}
	if err := bcrypt.CompareHashAndPassword([]byte(uc.admin.PasswordHash), []byte(in.Password)); err != nil {
		_ = session.Fail(domain.ErrUnauthorized)
		return nil, domain.ErrUnauthorized
	}
	token, err := jwt.Generate(uc.jwtCfg.Secret, uc.admin.Email, RoleAdmin, uc.jwtCfg.Issuer, uc.jwtCfg.ExpMinutes)
	if err != nil {
		_ = session.Fail(err)
		return nil, err
	}
	if err := session.Succeed(RoleAdmin, token); err != nil {
		return nil, err
	}
	return &dto.LoginResponse{
		Token:     token,
		Email:     uc.admin.Email,
		Role:      RoleAdmin,
		ExpiresIn: uc.jwtCfg.ExpMinutes * 60,
	}, nil
}
