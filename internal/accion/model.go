package accion

import (
	"time"

	"github.com/google/uuid"
)

// PlanAccion es un plan de acción de mejora. Puede nacer de un hallazgo
// de auditoría o registrarse suelto.
type PlanAccion struct {
	ID                   uuid.UUID  `json:"id_plan_accion"`
	CreadorID            uuid.UUID  `json:"id_usuario_creador"`
	HallazgoID           *uuid.UUID `json:"id_hallazgo,omitempty"`
	AreaAfectada         string     `json:"area_afectada"`
	AccionPropuesta      string     `json:"accion_propuesta"`
	ResponsableAsignado  string     `json:"responsable_asignado"`
	FechaLimite          time.Time  `json:"fecha_limite"`
	DescripcionDetallada string     `json:"descripcion_detallada"`
	Estado               string     `json:"estado"`
	FechaCreacion        time.Time  `json:"fecha_creacion"`
}

// EstadoPendiente es el estado inicial de todo plan de acción.
const EstadoPendiente = "Pendiente"
