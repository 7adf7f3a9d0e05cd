package dto

// LoginRequest credenciales del operador.
type LoginRequest struct {
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required"`
}

// LoginResponse token JWT emitido para el operador.
type LoginResponse struct {
	Token     string `json:"token"`
	Email     string `json:"email"`
	Role      string `json:"role"`
	ExpiresIn int    `json:"expires_in"` // segundos
}
