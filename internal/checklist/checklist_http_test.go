package checklist

import (
	"bytes"
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

type stubRepo struct {
	checklists map[uuid.UUID]Checklist
	guardadas  map[uuid.UUID][]RespuestaItem // por usuario
	conteos    []Progreso
}

func newStubRepo() *stubRepo {
	return &stubRepo{
		checklists: make(map[uuid.UUID]Checklist),
		guardadas:  make(map[uuid.UUID][]RespuestaItem),
	}
}

func (s *stubRepo) ListPendientes(ctx context.Context, usuarioID uuid.UUID) ([]Checklist, error) {
	var out []Checklist
	for _, ch := range s.checklists {
		out = append(out, ch)
	}
	return out, nil
}

func (s *stubRepo) ListConteos(ctx context.Context, usuarioID uuid.UUID) ([]Progreso, error) {
	return s.conteos, nil
}

func (s *stubRepo) GetByID(ctx context.Context, id uuid.UUID) (Checklist, error) {
	ch, ok := s.checklists[id]
	if !ok {
		return Checklist{}, repo.ErrNotFound
	}
	return ch, nil
}

func (s *stubRepo) GuardarRespuestas(ctx context.Context, usuarioID, checklistID uuid.UUID, respuestas []RespuestaItem) error {
	s.guardadas[usuarioID] = append(s.guardadas[usuarioID], respuestas...)
	return nil
}

func (s *stubRepo) ListAll(ctx context.Context) ([]Checklist, error) {
	return s.ListPendientes(ctx, uuid.Nil)
}

func (s *stubRepo) Create(ctx context.Context, nombre, descripcion, version string) (Checklist, error) {
	ch := Checklist{ID: uuid.New(), Nombre: nombre, Descripcion: descripcion, Version: version, FechaCreacion: time.Now()}
	s.checklists[ch.ID] = ch
	return ch, nil
}

func (s *stubRepo) Update(ctx context.Context, id uuid.UUID, nombre, descripcion, version string) (Checklist, error) {
	ch, ok := s.checklists[id]
	if !ok {
		return Checklist{}, repo.ErrNotFound
	}
	ch.Nombre, ch.Descripcion, ch.Version = nombre, descripcion, version
	s.checklists[id] = ch
	return ch, nil
}

func (s *stubRepo) CreatePregunta(ctx context.Context, checklistID uuid.UUID, texto string, obligatoria bool, orden int) (Pregunta, error) {
	return Pregunta{ID: uuid.New(), ChecklistID: checklistID, TextoPregunta: texto, Obligatoria: obligatoria, Orden: orden}, nil
}

func (s *stubRepo) DeletePregunta(ctx context.Context, id uuid.UUID) error {
	return nil
}

func doRequest(t *testing.T, router chi.Router, ident auth.Identity, method, path string, body any) *httptest.ResponseRecorder {
	t.Helper()

	var buf bytes.Buffer
	if body != nil {
		if err := json.NewEncoder(&buf).Encode(body); err != nil {
			t.Fatalf("codificando body: %v", err)
		}
	}

	req := httptest.NewRequest(method, path, &buf)
	req = req.WithContext(context.WithValue(req.Context(), middleware.ContextKeyIdentity, ident))
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)
	return rec
}

func TestResponder(t *testing.T) {
	clienteID := uuid.New()
	colaborador := auth.Identity{UsuarioID: uuid.New(), Rol: auth.RolColaborador, ClienteID: &clienteID}

	stub := newStubRepo()
	ch, _ := stub.Create(context.Background(), "ISO 27001", "", "1.0")

	router := chi.NewRouter()
	Mount(router, NewHandler(NewService(stub)))

	t.Run("lote vacío rechazado", func(t *testing.T) {
		rec := doRequest(t, router, colaborador, http.MethodPost, "/checklists/"+ch.ID.String()+"/responder", map[string]any{
			"respuestas": []RespuestaItem{},
		})
		if rec.Code != http.StatusBadRequest {
			t.Fatalf("status = %d, esperaba 400", rec.Code)
		}
		if len(stub.guardadas[colaborador.UsuarioID]) != 0 {
			t.Fatal("no debía guardar nada")
		}
	})

	t.Run("opción fuera del formulario rechazada", func(t *testing.T) {
		rec := doRequest(t, router, colaborador, http.MethodPost, "/checklists/"+ch.ID.String()+"/responder", map[string]any{
			"respuestas": []RespuestaItem{{PreguntaID: uuid.New(), OpcionSeleccionada: "Tal vez"}},
		})
		if rec.Code != http.StatusBadRequest {
			t.Fatalf("status = %d, esperaba 400", rec.Code)
		}
	})

	t.Run("lote válido guardado", func(t *testing.T) {
		rec := doRequest(t, router, colaborador, http.MethodPost, "/checklists/"+ch.ID.String()+"/responder", map[string]any{
			"respuestas": []RespuestaItem{
				{PreguntaID: uuid.New(), OpcionSeleccionada: "Cumple"},
				{PreguntaID: uuid.New(), OpcionSeleccionada: "N/A", Observaciones: "No aplica al área"},
			},
		})
		if rec.Code != http.StatusCreated {
			t.Fatalf("status = %d, esperaba 201", rec.Code)
		}
		if len(stub.guardadas[colaborador.UsuarioID]) != 2 {
			t.Fatalf("guardadas = %d, esperaba 2", len(stub.guardadas[colaborador.UsuarioID]))
		}
	})
}

func TestStatusDerivaEstados(t *testing.T) {
	clienteID := uuid.New()
	colaborador := auth.Identity{UsuarioID: uuid.New(), Rol: auth.RolColaborador, ClienteID: &clienteID}

	stub := newStubRepo()
	stub.conteos = []Progreso{
		{ID: uuid.New(), Nombre: "Vacío", TotalPreguntas: 0, TotalRespuestas: 0},
		{ID: uuid.New(), Nombre: "Pendiente", TotalPreguntas: 4, TotalRespuestas: 0},
		{ID: uuid.New(), Nombre: "En curso", TotalPreguntas: 4, TotalRespuestas: 3},
		{ID: uuid.New(), Nombre: "Listo", TotalPreguntas: 4, TotalRespuestas: 4},
	}

	router := chi.NewRouter()
	Mount(router, NewHandler(NewService(stub)))

	rec := doRequest(t, router, colaborador, http.MethodGet, "/checklists/status", nil)
	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d, esperaba 200", rec.Code)
	}

	var progresos []Progreso
	if err := json.NewDecoder(rec.Body).Decode(&progresos); err != nil {
		t.Fatalf("decodificando: %v", err)
	}

	esperados := map[string]struct {
		porcentaje int
		estado     string
	}{
		"Vacío":     {0, EstadoVacio},
		"Pendiente": {0, EstadoPendiente},
		"En curso":  {75, EstadoEnProgreso},
		"Listo":     {100, EstadoCompletado},
	}
	for _, p := range progresos {
		want := esperados[p.Nombre]
		if p.Porcentaje != want.porcentaje || p.Estado != want.estado {
			t.Errorf("%s: (%d, %s), esperaba (%d, %s)", p.Nombre, p.Porcentaje, p.Estado, want.porcentaje, want.estado)
		}
	}
}

func TestGetInexistente(t *testing.T) {
	clienteID := uuid.New()
	colaborador := auth.Identity{UsuarioID: uuid.New(), Rol: auth.RolColaborador, ClienteID: &clienteID}

	router := chi.NewRouter()
	Mount(router, NewHandler(NewService(newStubRepo())))

	rec := doRequest(t, router, colaborador, http.MethodGet, "/checklists/"+uuid.NewString(), nil)
	if rec.Code != http.StatusNotFound {
		t.Fatalf("status = %d, esperaba 404", rec.Code)
	}
}
