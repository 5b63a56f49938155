package riesgo

import (
	"time"

	"github.com/google/uuid"
)

// RiesgoOportunidad es una entrada del registro de riesgos de un cliente.
// Igual que los planes de auditoría, pertenece al tenant de su creador.
type RiesgoOportunidad struct {
	ID                  uuid.UUID `json:"id_riesgo_oportunidad"`
	CreadorID           uuid.UUID `json:"id_usuario_creador"`
	Descripcion         string    `json:"descripcion"`
	Tipo                string    `json:"tipo"`
	Probabilidad        string    `json:"probabilidad"`
	Impacto             string    `json:"impacto"`
	FechaIdentificacion time.Time `json:"fecha_identificacion"`
	Estado              string    `json:"estado"`
	NombreCliente       string    `json:"nombre_cliente,omitempty"`
}

// EstadoAbierto es el estado inicial de todo riesgo nuevo.
const EstadoAbierto = "Abierto"

// TipoValido acepta los dos tipos del registro.
func TipoValido(tipo string) bool {
	return tipo == "Riesgo" || tipo == "Oportunidad"
}

// NivelValido acepta la escala cualitativa de probabilidad e impacto.
func NivelValido(nivel string) bool {
	switch nivel {
	case "Baja", "Media", "Alta":
		return true
	}
	return false
}
