package auth

import (
	"github.com/alexedwards/argon2id"
)

var params = &argon2id.Params{
	Memory:      64 * 1024, // 64 MB
	Iterations:  3,
	Parallelism: 1,
	SaltLength:  16,
	KeyLength:   32,
}

// HashPassword genera un hash Argon2id (los parámetros viajan dentro del hash).
func HashPassword(password string) (string, error) {
	return argon2id.CreateHash(password, params)
}

// VerificarPassword compara la contraseña con el hash en tiempo constante.
func VerificarPassword(password, encodedHash string) (bool, error) {
	return argon2id.ComparePasswordAndHash(password, encodedHash)
}
