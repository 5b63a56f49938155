package auth

import (
	"errors"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
)

// Tipos de token emitidos por la plataforma. El tipo viaja dentro de los
// claims: un token de reseteo nunca puede usarse como sesión ni al revés.
const (
	TipoSesion = "session"
	TipoReset  = "reset"
)

var (
	// ErrTokenInvalido cubre firma inválida, expiración y tipo incorrecto.
	ErrTokenInvalido = errors.New("token inválido o expirado")
)

// Claims representa la carga de un JWT de la plataforma.
type Claims struct {
	Rol       string     `json:"rol,omitempty"`
	ClienteID *uuid.UUID `json:"id_cliente,omitempty"`
	Tipo      string     `json:"tipo"`
	jwt.RegisteredClaims
}

// TokenManager encapsula emisión y validación de tokens.
type TokenManager struct {
	secret    []byte
	sesionTTL time.Duration
	resetTTL  time.Duration
}

// NewTokenManager crea el gestor con secreto y TTLs configurados.
func NewTokenManager(secret string, sesionTTL, resetTTL time.Duration) *TokenManager {
	return &TokenManager{secret: []byte(secret), sesionTTL: sesionTTL, resetTTL: resetTTL}
}

// GenerarSesion emite un JWT HS256 de sesión con identidad completa.
func (m *TokenManager) GenerarSesion(usuarioID uuid.UUID, rol Rol, clienteID *uuid.UUID) (string, error) {
	now := time.Now().UTC()

	claims := Claims{
		Rol:       string(rol),
		ClienteID: clienteID,
		Tipo:      TipoSesion,
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   usuarioID.String(),
			ExpiresAt: jwt.NewNumericDate(now.Add(m.sesionTTL)),
			IssuedAt:  jwt.NewNumericDate(now),
			ID:        uuid.NewString(),
		},
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return token.SignedString(m.secret)
}

// GenerarReset emite un token de reseteo de contraseña de vida corta.
// Devuelve también el jti para controlar que sea de un solo uso.
func (m *TokenManager) GenerarReset(usuarioID uuid.UUID) (string, string, error) {
	now := time.Now().UTC()
	jti := uuid.NewString()

	claims := Claims{
		Tipo: TipoReset,
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   usuarioID.String(),
			ExpiresAt: jwt.NewNumericDate(now.Add(m.resetTTL)),
			IssuedAt:  jwt.NewNumericDate(now),
			ID:        jti,
		},
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	signed, err := token.SignedString(m.secret)
	if err != nil {
		return "", "", err
	}
	return signed, jti, nil
}

// ParsearSesion valida firma, expiración y tipo de un token de sesión.
func (m *TokenManager) ParsearSesion(tokenString string) (Identity, error) {
	claims, err := m.parsear(tokenString)
	if err != nil {
		return Identity{}, err
	}
	if claims.Tipo != TipoSesion {
		return Identity{}, ErrTokenInvalido
	}

	usuarioID, err := uuid.Parse(claims.Subject)
	if err != nil {
		return Identity{}, ErrTokenInvalido
	}

	rol := Rol(claims.Rol)
	if !rol.Valido() {
		return Identity{}, ErrTokenInvalido
	}

	return Identity{UsuarioID: usuarioID, Rol: rol, ClienteID: claims.ClienteID}, nil
}

// ParsearReset valida un token de reseteo y devuelve el sujeto y el jti.
func (m *TokenManager) ParsearReset(tokenString string) (uuid.UUID, string, error) {
	claims, err := m.parsear(tokenString)
	if err != nil {
		return uuid.Nil, "", err
	}
	if claims.Tipo != TipoReset {
		return uuid.Nil, "", ErrTokenInvalido
	}

	usuarioID, err := uuid.Parse(claims.Subject)
	if err != nil {
		return uuid.Nil, "", ErrTokenInvalido
	}

	return usuarioID, claims.ID, nil
}

func (m *TokenManager) parsear(tokenString string) (*Claims, error) {
	parser := jwt.NewParser(jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}))

	token, err := parser.ParseWithClaims(tokenString, &Claims{}, func(token *jwt.Token) (interface{}, error) {
		return m.secret, nil
	})
	if err != nil {
		return nil, ErrTokenInvalido
	}

	claims, ok := token.Claims.(*Claims)
	if !ok || !token.Valid {
		return nil, ErrTokenInvalido
	}

	return claims, nil
}
