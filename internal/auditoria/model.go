package auditoria

import (
	"time"

	"github.com/google/uuid"
)

// PlanAuditoria es un plan de auditoría interno de un cliente. Pertenece al
// tenant de su usuario creador; no lleva columna de cliente propia.
type PlanAuditoria struct {
	ID                   uuid.UUID `json:"id_plan_auditoria"`
	CreadorID            uuid.UUID `json:"id_usuario_creador"`
	FechaPlanificada     time.Time `json:"fecha_planificada"`
	AreaAuditar          string    `json:"area_auditar"`
	ResponsableAuditoria string    `json:"responsable_auditoria"`
	Objetivo             string    `json:"objetivo"`
	Estado               string    `json:"estado"`
	NombreCliente        string    `json:"nombre_cliente,omitempty"`
}

// Hallazgo es un resultado registrado durante una auditoría. Hereda el
// tenant de su plan padre.
type Hallazgo struct {
	ID            uuid.UUID `json:"id_hallazgo"`
	PlanID        uuid.UUID `json:"id_plan_auditoria"`
	Tipo          string    `json:"tipo"`
	Descripcion   string    `json:"descripcion"`
	FechaRegistro time.Time `json:"fecha_registro"`
}

// EstadoPlanificado es el estado inicial de todo plan nuevo.
const EstadoPlanificado = "Planificado"
