package politica

import (
	"time"

	"github.com/google/uuid"
)

// Politica es una política de compliance publicada por la plataforma.
type Politica struct {
	ID               uuid.UUID `json:"id_politica"`
	Nombre           string    `json:"nombre"`
	Contenido        string    `json:"contenido"`
	Version          string    `json:"version"`
	FechaPublicacion time.Time `json:"fecha_publicacion"`
}

// Confirmacion registra que un usuario leyó una política. La existencia
// de la fila es el hecho: no hay columna de estado.
type Confirmacion struct {
	ID                uuid.UUID `json:"id_confirmacion"`
	UsuarioID         uuid.UUID `json:"id_usuario"`
	PoliticaID        uuid.UUID `json:"id_politica"`
	FechaConfirmacion time.Time `json:"fecha_confirmacion"`
}

// EstadoLectura anota cada política con la lectura del usuario.
type EstadoLectura struct {
	ID      uuid.UUID `json:"id_politica"`
	Nombre  string    `json:"nombre"`
	Version string    `json:"version"`
	Leida   bool      `json:"leida"`
}
