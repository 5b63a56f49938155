package politica

import (
	"context"
	"errors"
	"strings"

	"github.com/google/uuid"
)

var (
	// ErrYaConfirmada indica una confirmación de lectura duplicada.
	ErrYaConfirmada = errors.New("Esta política ya fue confirmada.")
	// ErrDatosInvalidos indica metadatos de política incompletos.
	ErrDatosInvalidos = errors.New("El nombre es obligatorio.")
)

// Repository define el acceso a datos de políticas y confirmaciones.
type Repository interface {
	ListPendientes(ctx context.Context, usuarioID uuid.UUID) ([]Politica, error)
	ListEstados(ctx context.Context, usuarioID uuid.UUID) ([]EstadoLectura, error)
	GetByID(ctx context.Context, id uuid.UUID) (Politica, error)
	ExisteConfirmacion(ctx context.Context, usuarioID, politicaID uuid.UUID) (bool, error)
	CreateConfirmacion(ctx context.Context, usuarioID, politicaID uuid.UUID) (Confirmacion, error)
	ListAll(ctx context.Context) ([]Politica, error)
	Create(ctx context.Context, nombre, contenido, version string) (Politica, error)
	Update(ctx context.Context, id uuid.UUID, nombre, contenido, version string) (Politica, error)
}

// Service implementa la lectura de políticas y su gestión de backoffice.
type Service struct {
	repo Repository
}

func NewService(r Repository) *Service {
	return &Service{repo: r}
}

// ListPendientes devuelve las políticas sin confirmar por el usuario.
func (s *Service) ListPendientes(ctx context.Context, usuarioID uuid.UUID) ([]Politica, error) {
	return s.repo.ListPendientes(ctx, usuarioID)
}

// ListEstados devuelve todas las políticas con su marca de lectura.
func (s *Service) ListEstados(ctx context.Context, usuarioID uuid.UUID) ([]EstadoLectura, error) {
	return s.repo.ListEstados(ctx, usuarioID)
}

// Get recupera una política para leerla.
func (s *Service) Get(ctx context.Context, id uuid.UUID) (Politica, error) {
	return s.repo.GetByID(ctx, id)
}

// Confirmar registra la lectura de una política. Confirmar dos veces la
// misma política es un error del cliente.
func (s *Service) Confirmar(ctx context.Context, usuarioID, politicaID uuid.UUID) (Confirmacion, error) {
	if _, err := s.repo.GetByID(ctx, politicaID); err != nil {
		return Confirmacion{}, err
	}

	existe, err := s.repo.ExisteConfirmacion(ctx, usuarioID, politicaID)
	if err != nil {
		return Confirmacion{}, err
	}
	if existe {
		return Confirmacion{}, ErrYaConfirmada
	}

	return s.repo.CreateConfirmacion(ctx, usuarioID, politicaID)
}

// ListAll devuelve todas las políticas (backoffice).
func (s *Service) ListAll(ctx context.Context) ([]Politica, error) {
	return s.repo.ListAll(ctx)
}

// Crear publica una política nueva.
func (s *Service) Crear(ctx context.Context, nombre, contenido, version string) (Politica, error) {
	if strings.TrimSpace(nombre) == "" {
		return Politica{}, ErrDatosInvalidos
	}
	return s.repo.Create(ctx, nombre, contenido, version)
}

// Actualizar modifica una política publicada.
func (s *Service) Actualizar(ctx context.Context, id uuid.UUID, nombre, contenido, version string) (Politica, error) {
	if strings.TrimSpace(nombre) == "" {
		return Politica{}, ErrDatosInvalidos
	}
	return s.repo.Update(ctx, id, nombre, contenido, version)
}
