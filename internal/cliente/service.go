package cliente

import (
	"context"
	"errors"
	"net/mail"
	"strings"

	"github.com/google/uuid"

	"github.com/regutech/plataforma/internal/auth"
	"github.com/regutech/plataforma/internal/repo"
)

// ErrDatosInvalidos indica datos de alta incompletos o mal formados.
var ErrDatosInvalidos = errors.New("Datos de alta inválidos.")

// Repository define el acceso a datos de clientes.
type Repository interface {
	List(ctx context.Context) ([]repo.Cliente, error)
	GetByID(ctx context.Context, id uuid.UUID) (repo.Cliente, error)
	Stats(ctx context.Context) (Stats, error)
	CreateConAdmin(ctx context.Context, nombreCliente, nombreUsuario, email, passwordHash string) (repo.Cliente, repo.Usuario, error)
}

// Service implementa el alta de tenants y las consultas de backoffice.
type Service struct {
	repo Repository
}

func NewService(r Repository) *Service {
	return &Service{repo: r}
}

// List devuelve todos los clientes.
func (s *Service) List(ctx context.Context) ([]repo.Cliente, error) {
	return s.repo.List(ctx)
}

// Get recupera un cliente.
func (s *Service) Get(ctx context.Context, id uuid.UUID) (repo.Cliente, error) {
	return s.repo.GetByID(ctx, id)
}

// Stats devuelve los contadores globales de la plataforma.
func (s *Service) Stats(ctx context.Context) (Stats, error) {
	return s.repo.Stats(ctx)
}

// Bootstrap da de alta un cliente nuevo junto con su primer
// Administrador, de forma atómica.
func (s *Service) Bootstrap(ctx context.Context, nombreCliente, nombreUsuario, email, password string) (repo.Cliente, repo.Usuario, error) {
	nombreCliente = strings.TrimSpace(nombreCliente)
	nombreUsuario = strings.TrimSpace(nombreUsuario)
	email = strings.ToLower(strings.TrimSpace(email))

	if nombreCliente == "" || nombreUsuario == "" || password == "" {
		return repo.Cliente{}, repo.Usuario{}, ErrDatosInvalidos
	}
	if _, err := mail.ParseAddress(email); err != nil {
		return repo.Cliente{}, repo.Usuario{}, ErrDatosInvalidos
	}

	hash, err := auth.HashPassword(password)
	if err != nil {
		return repo.Cliente{}, repo.Usuario{}, err
	}

	return s.repo.CreateConAdmin(ctx, nombreCliente, nombreUsuario, email, hash)
}
