package accion

import (
	"context"
	"errors"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/regutech/plataforma/internal/auth"
)

// ErrDatosInvalidos indica campos obligatorios ausentes.
var ErrDatosInvalidos = errors.New("Por favor complete todos los campos obligatorios.")

// Repository define la persistencia que necesita el servicio.
type Repository interface {
	Create(ctx context.Context, p PlanAccion) (PlanAccion, error)
}

// Service aplica la validación de planes de acción.
type Service struct {
	repo Repository
}

func NewService(r Repository) *Service {
	return &Service{repo: r}
}

// Crear registra un plan de acción a nombre del solicitante. Área, acción
// propuesta, responsable y fecha límite son obligatorios; el hallazgo de
// origen es opcional.
func (s *Service) Crear(ctx context.Context, ident auth.Identity, hallazgoID *uuid.UUID, area, accion, responsable string, fechaLimite time.Time, descripcion string) (PlanAccion, error) {
	area = strings.TrimSpace(area)
	accion = strings.TrimSpace(accion)
	responsable = strings.TrimSpace(responsable)
	if area == "" || accion == "" || responsable == "" || fechaLimite.IsZero() {
		return PlanAccion{}, ErrDatosInvalidos
	}

	return s.repo.Create(ctx, PlanAccion{
		CreadorID:            ident.UsuarioID,
		HallazgoID:           hallazgoID,
		AreaAfectada:         area,
		AccionPropuesta:      accion,
		ResponsableAsignado:  responsable,
		FechaLimite:          fechaLimite,
		DescripcionDetallada: strings.TrimSpace(descripcion),
	})
}
