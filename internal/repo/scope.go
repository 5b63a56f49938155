package repo

import (
	"github.com/google/uuid"

	"github.com/regutech/plataforma/internal/auth"
)

// Scope limita las consultas al cliente del solicitante. ClienteID nil
// significa acceso de plataforma sin filtro (SuperAdmin).
type Scope struct {
	ClienteID *uuid.UUID
}

// ScopeFor es el único punto donde el rol decide el filtro de tenant.
// Un no-SuperAdmin sin cliente asignado recibe un filtro que no coincide
// con ninguna fila, nunca un acceso sin filtro.
func ScopeFor(ident auth.Identity) Scope {
	if ident.EsSuperAdmin() {
		return Scope{}
	}
	if ident.ClienteID == nil {
		vacio := uuid.Nil
		return Scope{ClienteID: &vacio}
	}
	return Scope{ClienteID: ident.ClienteID}
}

// SinFiltro indica si el scope accede a todos los clientes.
func (s Scope) SinFiltro() bool {
	return s.ClienteID == nil
}
