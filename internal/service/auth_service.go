package service

import (
	"context"
	"errors"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"
	"github.com/rs/zerolog/log"

	"github.com/regutech/plataforma/internal/auth"
	"github.com/regutech/plataforma/internal/repo"
)

var (
	// ErrCredencialesInvalidas indica fallo de autenticación (e-mail
	// desconocido o contraseña incorrecta, sin distinguirlos).
	ErrCredencialesInvalidas = errors.New("Credenciales incorrectas.")
	// ErrCuentaInactiva indica cuenta desactivada.
	ErrCuentaInactiva = errors.New("La cuenta está desactivada.")
	// ErrPasswordActual indica que la contraseña actual no coincide.
	ErrPasswordActual = errors.New("La contraseña actual es incorrecta.")
	// ErrTokenReset indica token de reseteo inválido, expirado o ya usado.
	ErrTokenReset = errors.New("Token inválido o expirado.")
)

// MensajeForgotPassword es la respuesta genérica anti-enumeración: idéntica
// exista o no el e-mail.
const MensajeForgotPassword = "Si tu correo está registrado, recibirás un enlace."

type authRepository interface {
	GetUsuarioByEmail(ctx context.Context, email string) (repo.Usuario, error)
	GetUsuarioByID(ctx context.Context, id uuid.UUID) (repo.Usuario, error)
	UpdateNombre(ctx context.Context, id uuid.UUID, nombre string) (repo.Usuario, error)
	UpdatePassword(ctx context.Context, id uuid.UUID, hash string) error
}

type redisCommander interface {
	SetNX(ctx context.Context, key string, value any, expiration time.Duration) *redis.BoolCmd
}

// AuthService concentra autenticación, perfil y reseteo de contraseña.
type AuthService struct {
	repo     authRepository
	redis    redisCommander
	tokens   *auth.TokenManager
	resetTTL time.Duration
}

// NewAuthService crea el servicio.
func NewAuthService(r *repo.Queries, redisClient *redis.Client, tokens *auth.TokenManager, resetTTL time.Duration) *AuthService {
	return &AuthService{repo: r, redis: redisClient, tokens: tokens, resetTTL: resetTTL}
}

// Tokens expone el gestor de tokens (útil en middlewares).
func (s *AuthService) Tokens() *auth.TokenManager {
	return s.tokens
}

// LoginResult representa el resultado de un inicio de sesión.
type LoginResult struct {
	Token string
	Rol   auth.Rol
}

// Login autentica por e-mail y contraseña y emite un token de sesión.
func (s *AuthService) Login(ctx context.Context, email, password string) (*LoginResult, error) {
	usuario, err := s.repo.GetUsuarioByEmail(ctx, email)
	if err != nil {
		if errors.Is(err, repo.ErrNotFound) {
			log.Warn().Msg("login: usuario no encontrado")
			return nil, ErrCredencialesInvalidas
		}
		return nil, err
	}

	ok, err := auth.VerificarPassword(password, usuario.PasswordHash)
	if err != nil {
		log.Warn().Err(err).Msg("login: verificación de contraseña falló")
		return nil, ErrCredencialesInvalidas
	}
	if !ok {
		log.Warn().Msg("login: contraseña incorrecta")
		return nil, ErrCredencialesInvalidas
	}

	if !usuario.Activo {
		return nil, ErrCuentaInactiva
	}

	token, err := s.tokens.GenerarSesion(usuario.ID, auth.Rol(usuario.Rol), usuario.ClienteID)
	if err != nil {
		return nil, err
	}

	return &LoginResult{Token: token, Rol: auth.Rol(usuario.Rol)}, nil
}

// ForgotPassword emite un token de reseteo si el e-mail existe. El envío de
// correo se simula por log; la respuesta al caller es siempre la misma.
func (s *AuthService) ForgotPassword(ctx context.Context, email string) error {
	usuario, err := s.repo.GetUsuarioByEmail(ctx, email)
	if err != nil {
		if errors.Is(err, repo.ErrNotFound) {
			return nil
		}
		return err
	}

	token, _, err := s.tokens.GenerarReset(usuario.ID)
	if err != nil {
		return err
	}

	// Simulación de envío de e-mail
	log.Info().
		Str("email", usuario.Email).
		Str("reset_token", token).
		Msg("simulación de recupero de contraseña")

	return nil
}

// ResetPassword cambia la contraseña a partir de un token de reseteo. El
// token es de un solo uso: el jti se marca consumido en Redis y un segundo
// intento con el mismo token falla.
func (s *AuthService) ResetPassword(ctx context.Context, rawToken, newPassword string) error {
	usuarioID, jti, err := s.tokens.ParsearReset(rawToken)
	if err != nil {
		return ErrTokenReset
	}

	ok, err := s.redis.SetNX(ctx, resetRedisKey(jti), "usado", s.resetTTL).Result()
	if err != nil {
		return err
	}
	if !ok {
		return ErrTokenReset
	}

	hash, err := auth.HashPassword(newPassword)
	if err != nil {
		return err
	}

	return s.repo.UpdatePassword(ctx, usuarioID, hash)
}

// GetPerfil devuelve el perfil del usuario autenticado.
func (s *AuthService) GetPerfil(ctx context.Context, id uuid.UUID) (repo.Usuario, error) {
	return s.repo.GetUsuarioByID(ctx, id)
}

// UpdateNombre cambia el nombre del propio usuario.
func (s *AuthService) UpdateNombre(ctx context.Context, id uuid.UUID, nombre string) (repo.Usuario, error) {
	return s.repo.UpdateNombre(ctx, id, strings.TrimSpace(nombre))
}

// ChangePassword valida la contraseña actual y guarda la nueva.
func (s *AuthService) ChangePassword(ctx context.Context, id uuid.UUID, oldPassword, newPassword string) error {
	usuario, err := s.repo.GetUsuarioByID(ctx, id)
	if err != nil {
		return err
	}

	ok, err := auth.VerificarPassword(oldPassword, usuario.PasswordHash)
	if err != nil || !ok {
		return ErrPasswordActual
	}

	hash, err := auth.HashPassword(newPassword)
	if err != nil {
		return err
	}

	return s.repo.UpdatePassword(ctx, id, hash)
}

func resetRedisKey(jti string) string {
	return "reset:" + jti
}
