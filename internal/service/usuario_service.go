package service

import (
	"context"
	"errors"

	"github.com/google/uuid"

	"github.com/regutech/plataforma/internal/auth"
	"github.com/regutech/plataforma/internal/repo"
)

var (
	// ErrAutoEliminacion impide que una cuenta se borre a sí misma.
	ErrAutoEliminacion = errors.New("No puede eliminar su propia cuenta.")
	// ErrRolInvalido indica un rol fuera del conjunto cerrado.
	ErrRolInvalido = errors.New("Rol inválido.")
)

type usuarioAdminRepository interface {
	GetUsuarioByID(ctx context.Context, id uuid.UUID) (repo.Usuario, error)
	ListUsuariosByCliente(ctx context.Context, clienteID uuid.UUID) ([]repo.Usuario, error)
	ListUsuarios(ctx context.Context) ([]repo.UsuarioConCliente, error)
	UpdateUsuarioAdmin(ctx context.Context, id uuid.UUID, nombre, rol string, activo bool) (repo.Usuario, error)
	DeleteUsuario(ctx context.Context, id uuid.UUID) error
}

// UsuarioService implementa la administración de cuentas del backoffice.
type UsuarioService struct {
	repo usuarioAdminRepository
}

// NewUsuarioService crea el servicio.
func NewUsuarioService(r *repo.Queries) *UsuarioService {
	return &UsuarioService{repo: r}
}

// ListByCliente lista los usuarios de un cliente (sin cuentas SuperAdmin).
func (s *UsuarioService) ListByCliente(ctx context.Context, clienteID uuid.UUID) ([]repo.Usuario, error) {
	return s.repo.ListUsuariosByCliente(ctx, clienteID)
}

// List devuelve todos los usuarios de tenant agrupados por cliente.
func (s *UsuarioService) List(ctx context.Context) ([]repo.UsuarioConCliente, error) {
	return s.repo.ListUsuarios(ctx)
}

// Get devuelve una cuenta por ID.
func (s *UsuarioService) Get(ctx context.Context, id uuid.UUID) (repo.Usuario, error) {
	return s.repo.GetUsuarioByID(ctx, id)
}

// Update modifica nombre, rol y estado. El e-mail es inmutable.
func (s *UsuarioService) Update(ctx context.Context, id uuid.UUID, nombre string, rol auth.Rol, activo bool) (repo.Usuario, error) {
	if !rol.Valido() {
		return repo.Usuario{}, ErrRolInvalido
	}
	return s.repo.UpdateUsuarioAdmin(ctx, id, nombre, string(rol), activo)
}

// Delete elimina una cuenta. El caller no puede borrarse a sí mismo.
func (s *UsuarioService) Delete(ctx context.Context, caller, id uuid.UUID) error {
	if caller == id {
		return ErrAutoEliminacion
	}
	return s.repo.DeleteUsuario(ctx, id)
}
