package auditoria

import (
	"context"
	"errors"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/regutech/plataforma/internal/auth"
	"github.com/regutech/plataforma/internal/repo"
)

var (
	// ErrAccesoDenegado indica un rol sin permiso sobre la operación.
	ErrAccesoDenegado = errors.New("Acceso denegado.")
	// ErrDatosInvalidos indica campos obligatorios ausentes.
	ErrDatosInvalidos = errors.New("Por favor complete todos los campos obligatorios.")
)

// Repository define el acceso a datos que necesita el servicio.
type Repository interface {
	List(ctx context.Context, scope repo.Scope) ([]PlanAuditoria, error)
	GetByID(ctx context.Context, scope repo.Scope, id uuid.UUID) (PlanAuditoria, error)
	Create(ctx context.Context, creadorID uuid.UUID, fecha time.Time, area, responsable, objetivo string) (PlanAuditoria, error)
	CreateHallazgo(ctx context.Context, planID uuid.UUID, tipo, descripcion string) (Hallazgo, error)
	GetHallazgoByID(ctx context.Context, scope repo.Scope, id uuid.UUID) (Hallazgo, error)
}

// Service aplica las reglas de rol y tenant sobre planes y hallazgos.
type Service struct {
	repo Repository
}

func NewService(r Repository) *Service {
	return &Service{repo: r}
}

// List devuelve los planes visibles para la identidad. Colaborador no
// participa de la gestión de auditorías.
func (s *Service) List(ctx context.Context, ident auth.Identity) ([]PlanAuditoria, error) {
	if !ident.EsSuperAdmin() && !ident.EsAdministrador() {
		return nil, ErrAccesoDenegado
	}
	return s.repo.List(ctx, repo.ScopeFor(ident))
}

// Get recupera un plan dentro del tenant del solicitante.
func (s *Service) Get(ctx context.Context, ident auth.Identity, id uuid.UUID) (PlanAuditoria, error) {
	if !ident.EsSuperAdmin() && !ident.EsAdministrador() {
		return PlanAuditoria{}, ErrAccesoDenegado
	}
	return s.repo.GetByID(ctx, repo.ScopeFor(ident), id)
}

// Crear registra un plan nuevo a nombre del solicitante.
func (s *Service) Crear(ctx context.Context, ident auth.Identity, fecha time.Time, area, responsable, objetivo string) (PlanAuditoria, error) {
	area = strings.TrimSpace(area)
	responsable = strings.TrimSpace(responsable)
	if fecha.IsZero() || area == "" || responsable == "" {
		return PlanAuditoria{}, ErrDatosInvalidos
	}
	return s.repo.Create(ctx, ident.UsuarioID, fecha, area, responsable, strings.TrimSpace(objetivo))
}

// CrearHallazgo registra un hallazgo sobre un plan del propio tenant. El
// plan padre se verifica primero con el scope del solicitante: un plan de
// otro cliente se comporta como inexistente.
func (s *Service) CrearHallazgo(ctx context.Context, ident auth.Identity, planID uuid.UUID, tipo, descripcion string) (Hallazgo, error) {
	tipo = strings.TrimSpace(tipo)
	descripcion = strings.TrimSpace(descripcion)
	if tipo == "" || descripcion == "" {
		return Hallazgo{}, ErrDatosInvalidos
	}

	if _, err := s.repo.GetByID(ctx, repo.ScopeFor(ident), planID); err != nil {
		return Hallazgo{}, err
	}

	return s.repo.CreateHallazgo(ctx, planID, tipo, descripcion)
}

// GetHallazgo recupera un hallazgo heredando el filtro del plan padre.
func (s *Service) GetHallazgo(ctx context.Context, ident auth.Identity, id uuid.UUID) (Hallazgo, error) {
	if !ident.EsSuperAdmin() && !ident.EsAdministrador() {
		return Hallazgo{}, ErrAccesoDenegado
	}
	return s.repo.GetHallazgoByID(ctx, repo.ScopeFor(ident), id)
}
