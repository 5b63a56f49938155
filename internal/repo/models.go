package repo

import (
	"time"

	"github.com/google/uuid"
)

// Cliente representa una organización (tenant) de la plataforma.
type Cliente struct {
	ID            uuid.UUID `json:"id_cliente"`
	Nombre        string    `json:"nombre"`
	FechaCreacion time.Time `json:"fecha_creacion"`
}

// Usuario representa una cuenta de la plataforma. ClienteID es nil
// solamente para SuperAdmin.
type Usuario struct {
	ID             uuid.UUID  `json:"id_usuario"`
	ClienteID      *uuid.UUID `json:"id_cliente,omitempty"`
	NombreCompleto string     `json:"nombre_completo"`
	Email          string     `json:"email"`
	PasswordHash   string     `json:"-"`
	Rol            string     `json:"rol"`
	Activo         bool       `json:"activo"`
	FechaCreacion  time.Time  `json:"fecha_creacion"`
}

// UsuarioConCliente agrega el nombre del cliente para listados globales.
type UsuarioConCliente struct {
	Usuario
	NombreCliente string `json:"nombre_cliente"`
}
