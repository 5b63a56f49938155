package cliente

import (
	"context"
	"testing"

	"github.com/google/uuid"

	"github.com/regutech/plataforma/internal/repo"
)

type stubRepo struct {
	ultimoHash string
}

func (s *stubRepo) List(ctx context.Context) ([]repo.Cliente, error) {
	return nil, nil
}

func (s *stubRepo) GetByID(ctx context.Context, id uuid.UUID) (repo.Cliente, error) {
	return repo.Cliente{}, repo.ErrNotFound
}

func (s *stubRepo) Stats(ctx context.Context) (Stats, error) {
	return Stats{}, nil
}

func (s *stubRepo) CreateConAdmin(ctx context.Context, nombreCliente, nombreUsuario, email, passwordHash string) (repo.Cliente, repo.Usuario, error) {
	s.ultimoHash = passwordHash
	clienteID := uuid.New()
	return repo.Cliente{ID: clienteID, Nombre: nombreCliente},
		repo.Usuario{ID: uuid.New(), ClienteID: &clienteID, NombreCompleto: nombreUsuario, Email: email, Rol: "Administrador", Activo: true},
		nil
}

func TestBootstrap(t *testing.T) {
	stub := &stubRepo{}
	svc := NewService(stub)

	casos := []struct {
		nombre         string
		cliente        string
		usuario        string
		email          string
		password       string
		esperaInvalido bool
	}{
		{"cliente vacío", "", "Ana", "ana@acme.test", "secreta123", true},
		{"email mal formado", "Acme", "Ana", "no-es-email", "secreta123", true},
		{"password vacía", "Acme", "Ana", "ana@acme.test", "", true},
		{"alta válida", "Acme", "Ana", "ana@acme.test", "secreta123", false},
	}

	for _, tc := range casos {
		t.Run(tc.nombre, func(t *testing.T) {
			_, usuario, err := svc.Bootstrap(context.Background(), tc.cliente, tc.usuario, tc.email, tc.password)
			if tc.esperaInvalido {
				if err != ErrDatosInvalidos {
					t.Fatalf("err = %v, esperaba ErrDatosInvalidos", err)
				}
				return
			}
			if err != nil {
				t.Fatalf("err = %v", err)
			}
			if usuario.Rol != "Administrador" {
				t.Fatalf("rol = %q, esperaba Administrador", usuario.Rol)
			}
			if stub.ultimoHash == tc.password || stub.ultimoHash == "" {
				t.Fatal("la contraseña debía persistirse como hash")
			}
		})
	}
}

func TestBootstrapNormalizaEmail(t *testing.T) {
	stub := &stubRepo{}
	svc := NewService(stub)

	_, usuario, err := svc.Bootstrap(context.Background(), "Acme", "Ana", "  ANA@Acme.Test ", "secreta123")
	if err != nil {
		t.Fatalf("err = %v", err)
	}
	if usuario.Email != "ana@acme.test" {
		t.Fatalf("email = %q, esperaba normalizado", usuario.Email)
	}
}
