package checklist

import (
	"time"

	"github.com/google/uuid"
)

// Checklist es una plantilla de autoevaluación gestionada por la
// plataforma y compartida entre todos los clientes.
type Checklist struct {
	ID            uuid.UUID  `json:"id_checklist"`
	Nombre        string     `json:"nombre"`
	Descripcion   string     `json:"descripcion"`
	Version       string     `json:"version"`
	FechaCreacion time.Time  `json:"fecha_creacion"`
	Preguntas     []Pregunta `json:"preguntas,omitempty"`
}

// Pregunta es un punto de control dentro de una plantilla.
type Pregunta struct {
	ID            uuid.UUID `json:"id_pregunta"`
	ChecklistID   uuid.UUID `json:"id_checklist"`
	TextoPregunta string    `json:"texto_pregunta"`
	Obligatoria   bool      `json:"obligatoria"`
	Orden         int       `json:"orden"`
}

// RespuestaItem es una respuesta individual enviada por el usuario.
type RespuestaItem struct {
	PreguntaID         uuid.UUID `json:"id_pregunta"`
	OpcionSeleccionada string    `json:"opcion_seleccionada"`
	Observaciones      string    `json:"observaciones"`
}

// Progreso resume el avance de un usuario sobre una plantilla.
type Progreso struct {
	ID              uuid.UUID `json:"id_checklist"`
	Nombre          string    `json:"nombre"`
	TotalPreguntas  int       `json:"total_preguntas"`
	TotalRespuestas int       `json:"total_respuestas"`
	Porcentaje      int       `json:"porcentaje"`
	Estado          string    `json:"estado"`
}

// OpcionValida acepta las opciones de respuesta del formulario.
func OpcionValida(opcion string) bool {
	switch opcion {
	case "Cumple", "No Cumple", "Cumple Parcialmente", "N/A":
		return true
	}
	return false
}
