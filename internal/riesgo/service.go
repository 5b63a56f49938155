package riesgo

import (
	"context"
	"errors"
	"strings"

	"github.com/google/uuid"

	"github.com/regutech/plataforma/internal/auth"
	"github.com/regutech/plataforma/internal/repo"
)

var (
	// ErrAccesoDenegado indica un rol sin permiso sobre la operación.
	ErrAccesoDenegado = errors.New("Acceso denegado.")
	// ErrDatosInvalidos indica campos faltantes o valores fuera de escala.
	ErrDatosInvalidos = errors.New("Datos de riesgo inválidos.")
)

// Repository define el acceso a datos del registro de riesgos.
type Repository interface {
	List(ctx context.Context, scope repo.Scope) ([]RiesgoOportunidad, error)
	GetByID(ctx context.Context, scope repo.Scope, id uuid.UUID) (RiesgoOportunidad, error)
	Create(ctx context.Context, creadorID uuid.UUID, descripcion, tipo, probabilidad, impacto string) (RiesgoOportunidad, error)
	Update(ctx context.Context, scope repo.Scope, id uuid.UUID, descripcion, tipo, probabilidad, impacto string) (RiesgoOportunidad, error)
}

// Service aplica las reglas de rol y tenant del registro de riesgos.
type Service struct {
	repo Repository
}

func NewService(r Repository) *Service {
	return &Service{repo: r}
}

// List devuelve los riesgos visibles para la identidad.
func (s *Service) List(ctx context.Context, ident auth.Identity) ([]RiesgoOportunidad, error) {
	if !ident.EsSuperAdmin() && !ident.EsAdministrador() {
		return nil, ErrAccesoDenegado
	}
	return s.repo.List(ctx, repo.ScopeFor(ident))
}

// Get recupera un riesgo dentro del tenant del solicitante.
func (s *Service) Get(ctx context.Context, ident auth.Identity, id uuid.UUID) (RiesgoOportunidad, error) {
	if !ident.EsSuperAdmin() && !ident.EsAdministrador() {
		return RiesgoOportunidad{}, ErrAccesoDenegado
	}
	return s.repo.GetByID(ctx, repo.ScopeFor(ident), id)
}

// Crear registra un riesgo u oportunidad a nombre del solicitante.
func (s *Service) Crear(ctx context.Context, ident auth.Identity, descripcion, tipo, probabilidad, impacto string) (RiesgoOportunidad, error) {
	descripcion = strings.TrimSpace(descripcion)
	if descripcion == "" || !TipoValido(tipo) || !NivelValido(probabilidad) || !NivelValido(impacto) {
		return RiesgoOportunidad{}, ErrDatosInvalidos
	}
	return s.repo.Create(ctx, ident.UsuarioID, descripcion, tipo, probabilidad, impacto)
}

// Actualizar modifica un riesgo del propio tenant. Solo Administrador:
// el filtro de tenant es siempre efectivo. La propiedad se re-verifica
// en la misma sentencia de mutación; un riesgo de otro cliente se
// reporta como no encontrado.
func (s *Service) Actualizar(ctx context.Context, ident auth.Identity, id uuid.UUID, descripcion, tipo, probabilidad, impacto string) (RiesgoOportunidad, error) {
	if !ident.EsAdministrador() {
		return RiesgoOportunidad{}, ErrAccesoDenegado
	}

	descripcion = strings.TrimSpace(descripcion)
	if descripcion == "" || !TipoValido(tipo) || !NivelValido(probabilidad) || !NivelValido(impacto) {
		return RiesgoOportunidad{}, ErrDatosInvalidos
	}
	return s.repo.Update(ctx, repo.ScopeFor(ident), id, descripcion, tipo, probabilidad, impacto)
}
