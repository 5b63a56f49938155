package checklist

import (
	"context"
	"errors"
	"strings"

	"github.com/google/uuid"
)

var (
	// ErrRespuestasInvalidas indica un lote de respuestas vacío o con
	// opciones fuera del formulario.
	ErrRespuestasInvalidas = errors.New("Formato de respuestas inválido.")
	// ErrDatosInvalidos indica metadatos de plantilla incompletos.
	ErrDatosInvalidos = errors.New("El nombre es obligatorio.")
)

// Repository define el acceso a datos de plantillas y respuestas.
type Repository interface {
	ListPendientes(ctx context.Context, usuarioID uuid.UUID) ([]Checklist, error)
	ListConteos(ctx context.Context, usuarioID uuid.UUID) ([]Progreso, error)
	GetByID(ctx context.Context, id uuid.UUID) (Checklist, error)
	GuardarRespuestas(ctx context.Context, usuarioID, checklistID uuid.UUID, respuestas []RespuestaItem) error
	ListAll(ctx context.Context) ([]Checklist, error)
	Create(ctx context.Context, nombre, descripcion, version string) (Checklist, error)
	Update(ctx context.Context, id uuid.UUID, nombre, descripcion, version string) (Checklist, error)
	CreatePregunta(ctx context.Context, checklistID uuid.UUID, texto string, obligatoria bool, orden int) (Pregunta, error)
	DeletePregunta(ctx context.Context, id uuid.UUID) error
}

// Service implementa la autoevaluación por checklist y la gestión de
// plantillas del backoffice.
type Service struct {
	repo Repository
}

func NewService(r Repository) *Service {
	return &Service{repo: r}
}

// ListPendientes devuelve las plantillas sin responder por el usuario.
func (s *Service) ListPendientes(ctx context.Context, usuarioID uuid.UUID) ([]Checklist, error) {
	return s.repo.ListPendientes(ctx, usuarioID)
}

// ListProgreso devuelve todas las plantillas con el avance del usuario.
func (s *Service) ListProgreso(ctx context.Context, usuarioID uuid.UUID) ([]Progreso, error) {
	progresos, err := s.repo.ListConteos(ctx, usuarioID)
	if err != nil {
		return nil, err
	}

	for i := range progresos {
		progresos[i].Porcentaje, progresos[i].Estado = CalcularProgreso(progresos[i].TotalPreguntas, progresos[i].TotalRespuestas)
	}
	return progresos, nil
}

// Get recupera una plantilla con sus preguntas ordenadas.
func (s *Service) Get(ctx context.Context, id uuid.UUID) (Checklist, error) {
	return s.repo.GetByID(ctx, id)
}

// Responder guarda el lote de respuestas del usuario. El lote no puede
// estar vacío y cada opción debe pertenecer al formulario; la inserción
// completa es atómica.
func (s *Service) Responder(ctx context.Context, usuarioID, checklistID uuid.UUID, respuestas []RespuestaItem) error {
	if len(respuestas) == 0 {
		return ErrRespuestasInvalidas
	}
	for _, resp := range respuestas {
		if resp.PreguntaID == uuid.Nil || !OpcionValida(resp.OpcionSeleccionada) {
			return ErrRespuestasInvalidas
		}
	}
	return s.repo.GuardarRespuestas(ctx, usuarioID, checklistID, respuestas)
}

// ListAll devuelve todas las plantillas (backoffice).
func (s *Service) ListAll(ctx context.Context) ([]Checklist, error) {
	return s.repo.ListAll(ctx)
}

// Crear registra una plantilla nueva.
func (s *Service) Crear(ctx context.Context, nombre, descripcion, version string) (Checklist, error) {
	if strings.TrimSpace(nombre) == "" {
		return Checklist{}, ErrDatosInvalidos
	}
	return s.repo.Create(ctx, nombre, descripcion, version)
}

// Actualizar modifica los metadatos de una plantilla.
func (s *Service) Actualizar(ctx context.Context, id uuid.UUID, nombre, descripcion, version string) (Checklist, error) {
	if strings.TrimSpace(nombre) == "" {
		return Checklist{}, ErrDatosInvalidos
	}
	return s.repo.Update(ctx, id, nombre, descripcion, version)
}

// CrearPregunta añade un punto de control a una plantilla existente.
func (s *Service) CrearPregunta(ctx context.Context, checklistID uuid.UUID, texto string, obligatoria bool, orden int) (Pregunta, error) {
	if strings.TrimSpace(texto) == "" {
		return Pregunta{}, ErrDatosInvalidos
	}
	if _, err := s.repo.GetByID(ctx, checklistID); err != nil {
		return Pregunta{}, err
	}
	return s.repo.CreatePregunta(ctx, checklistID, texto, obligatoria, orden)
}

// EliminarPregunta borra un punto de control.
func (s *Service) EliminarPregunta(ctx context.Context, id uuid.UUID) error {
	return s.repo.DeletePregunta(ctx, id)
}
