package politica

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"

	"github.com/regutech/plataforma/internal/auth"
	"github.com/regutech/plataforma/internal/http/middleware"
	"github.com/regutech/plataforma/internal/repo"
)

type confirmKey struct {
	usuario  uuid.UUID
	politica uuid.UUID
}

type stubRepo struct {
	politicas      map[uuid.UUID]Politica
	confirmaciones map[confirmKey]Confirmacion
}

func newStubRepo() *stubRepo {
	return &stubRepo{
		politicas:      make(map[uuid.UUID]Politica),
		confirmaciones: make(map[confirmKey]Confirmacion),
	}
}

func (s *stubRepo) ListPendientes(ctx context.Context, usuarioID uuid.UUID) ([]Politica, error) {
	var out []Politica
	for id, p := range s.politicas {
		if _, ok := s.confirmaciones[confirmKey{usuarioID, id}]; !ok {
			out = append(out, p)
		}
	}
	return out, nil
}

func (s *stubRepo) ListEstados(ctx context.Context, usuarioID uuid.UUID) ([]EstadoLectura, error) {
	var out []EstadoLectura
	for id, p := range s.politicas {
		_, leida := s.confirmaciones[confirmKey{usuarioID, id}]
		out = append(out, EstadoLectura{ID: id, Nombre: p.Nombre, Version: p.Version, Leida: leida})
	}
	return out, nil
}

func (s *stubRepo) GetByID(ctx context.Context, id uuid.UUID) (Politica, error) {
	p, ok := s.politicas[id]
	if !ok {
		return Politica{}, repo.ErrNotFound
	}
	return p, nil
}

func (s *stubRepo) ExisteConfirmacion(ctx context.Context, usuarioID, politicaID uuid.UUID) (bool, error) {
	_, ok := s.confirmaciones[confirmKey{usuarioID, politicaID}]
	return ok, nil
}

func (s *stubRepo) CreateConfirmacion(ctx context.Context, usuarioID, politicaID uuid.UUID) (Confirmacion, error) {
	c := Confirmacion{ID: uuid.New(), UsuarioID: usuarioID, PoliticaID: politicaID, FechaConfirmacion: time.Now()}
	s.confirmaciones[confirmKey{usuarioID, politicaID}] = c
	return c, nil
}

func (s *stubRepo) ListAll(ctx context.Context) ([]Politica, error) {
	var out []Politica
	for _, p := range s.politicas {
		out = append(out, p)
	}
	return out, nil
}

func (s *stubRepo) Create(ctx context.Context, nombre, contenido, version string) (Politica, error) {
	p := Politica{ID: uuid.New(), Nombre: nombre, Contenido: contenido, Version: version, FechaPublicacion: time.Now()}
	s.politicas[p.ID] = p
	return p, nil
}

func (s *stubRepo) Update(ctx context.Context, id uuid.UUID, nombre, contenido, version string) (Politica, error) {
	p, ok := s.politicas[id]
	if !ok {
		return Politica{}, repo.ErrNotFound
	}
	p.Nombre, p.Contenido, p.Version = nombre, contenido, version
	s.politicas[id] = p
	return p, nil
}

func doRequest(t *testing.T, router chi.Router, ident auth.Identity, method, path string) *httptest.ResponseRecorder {
	t.Helper()

	req := httptest.NewRequest(method, path, nil)
	req = req.WithContext(context.WithValue(req.Context(), middleware.ContextKeyIdentity, ident))
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)
	return rec
}

func TestConfirmarLectura(t *testing.T) {
	clienteID := uuid.New()
	colaborador := auth.Identity{UsuarioID: uuid.New(), Rol: auth.RolColaborador, ClienteID: &clienteID}

	stub := newStubRepo()
	politica, _ := stub.Create(context.Background(), "Uso aceptable", "Contenido", "1.0")

	router := chi.NewRouter()
	Mount(router, NewHandler(NewService(stub)))

	rec := doRequest(t, router, colaborador, http.MethodPost, "/policies/"+politica.ID.String()+"/confirm")
	if rec.Code != http.StatusCreated {
		t.Fatalf("status = %d, esperaba 201", rec.Code)
	}

	// La confirmación duplicada es un error del cliente, no un conflicto
	// silencioso.
	rec = doRequest(t, router, colaborador, http.MethodPost, "/policies/"+politica.ID.String()+"/confirm")
	if rec.Code != http.StatusBadRequest {
		t.Fatalf("status = %d, esperaba 400 en duplicado", rec.Code)
	}

	rec = doRequest(t, router, colaborador, http.MethodPost, "/policies/"+uuid.NewString()+"/confirm")
	if rec.Code != http.StatusNotFound {
		t.Fatalf("status = %d, esperaba 404 para política inexistente", rec.Code)
	}
}

func TestPendientesYEstados(t *testing.T) {
	clienteID := uuid.New()
	colaborador := auth.Identity{UsuarioID: uuid.New(), Rol: auth.RolColaborador, ClienteID: &clienteID}

	stub := newStubRepo()
	leida, _ := stub.Create(context.Background(), "Confidencialidad", "c", "1.0")
	stub.Create(context.Background(), "Escritorio limpio", "c", "1.0")
	stub.CreateConfirmacion(context.Background(), colaborador.UsuarioID, leida.ID)

	router := chi.NewRouter()
	Mount(router, NewHandler(NewService(stub)))

	rec := doRequest(t, router, colaborador, http.MethodGet, "/policies")
	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d, esperaba 200", rec.Code)
	}
	var pendientes []Politica
	if err := json.NewDecoder(rec.Body).Decode(&pendientes); err != nil {
		t.Fatalf("decodificando: %v", err)
	}
	if len(pendientes) != 1 || pendientes[0].Nombre != "Escritorio limpio" {
		t.Fatalf("pendientes = %+v, esperaba solo la no leída", pendientes)
	}

	rec = doRequest(t, router, colaborador, http.MethodGet, "/policies/status")
	var estados []EstadoLectura
	if err := json.NewDecoder(rec.Body).Decode(&estados); err != nil {
		t.Fatalf("decodificando: %v", err)
	}
	if len(estados) != 2 {
		t.Fatalf("estados = %d, esperaba 2", len(estados))
	}
	for _, e := range estados {
		if e.ID == leida.ID && !e.Leida {
			t.Error("la política confirmada debía figurar leída")
		}
		if e.ID != leida.ID && e.Leida {
			t.Error("la política sin confirmar figuraba leída")
		}
	}
}
