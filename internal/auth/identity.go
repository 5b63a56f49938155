package auth

import "github.com/google/uuid"

// Rol es el conjunto cerrado de roles de la plataforma.
type Rol string

const (
	RolSuperAdmin    Rol = "SuperAdmin"
	RolAdministrador Rol = "Administrador"
	RolColaborador   Rol = "Colaborador"
)

// Valido indica si el valor corresponde a un rol conocido.
func (r Rol) Valido() bool {
	switch r {
	case RolSuperAdmin, RolAdministrador, RolColaborador:
		return true
	}
	return false
}

// Identity representa al solicitante autenticado de una petición.
// ClienteID es nil únicamente para SuperAdmin (sin tenant propio).
type Identity struct {
	UsuarioID uuid.UUID
	Rol       Rol
	ClienteID *uuid.UUID
}

// EsSuperAdmin indica acceso de plataforma sin filtro de tenant.
func (i Identity) EsSuperAdmin() bool {
	return i.Rol == RolSuperAdmin
}

// EsAdministrador indica administrador del cliente propio.
func (i Identity) EsAdministrador() bool {
	return i.Rol == RolAdministrador
}
