package auditoria

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
	planes   map[uuid.UUID]PlanAuditoria
	clientes map[uuid.UUID]uuid.UUID // plan -> cliente dueño
}

func newStubRepo() *stubRepo {
	return &stubRepo{
		planes:   make(map[uuid.UUID]PlanAuditoria),
		clientes: make(map[uuid.UUID]uuid.UUID),
	}
}

func (s *stubRepo) addPlan(clienteID uuid.UUID) PlanAuditoria {
	p := PlanAuditoria{
		ID:                   uuid.New(),
		CreadorID:            uuid.New(),
		FechaPlanificada:     time.Now(),
		AreaAuditar:          "Compras",
		ResponsableAuditoria: "Auditor",
		Estado:               EstadoPlanificado,
	}
	s.planes[p.ID] = p
	s.clientes[p.ID] = clienteID
	return p
}

func (s *stubRepo) visible(scope repo.Scope, planID uuid.UUID) bool {
	if scope.SinFiltro() {
		return true
	}
	return s.clientes[planID] == *scope.ClienteID
}

func (s *stubRepo) List(ctx context.Context, scope repo.Scope) ([]PlanAuditoria, error) {
	var out []PlanAuditoria
	for id, p := range s.planes {
		if s.visible(scope, id) {
			out = append(out, p)
		}
	}
	return out, nil
}

func (s *stubRepo) GetByID(ctx context.Context, scope repo.Scope, id uuid.UUID) (PlanAuditoria, error) {
	p, ok := s.planes[id]
	if !ok || !s.visible(scope, id) {
		return PlanAuditoria{}, repo.ErrNotFound
	}
	return p, nil
}

func (s *stubRepo) Create(ctx context.Context, creadorID uuid.UUID, fecha time.Time, area, responsable, objetivo string) (PlanAuditoria, error) {
	p := PlanAuditoria{ID: uuid.New(), CreadorID: creadorID, FechaPlanificada: fecha, AreaAuditar: area, ResponsableAuditoria: responsable, Objetivo: objetivo, Estado: EstadoPlanificado}
	s.planes[p.ID] = p
	return p, nil
}

func (s *stubRepo) CreateHallazgo(ctx context.Context, planID uuid.UUID, tipo, descripcion string) (Hallazgo, error) {
	return Hallazgo{ID: uuid.New(), PlanID: planID, Tipo: tipo, Descripcion: descripcion, FechaRegistro: time.Now()}, nil
}

func (s *stubRepo) GetHallazgoByID(ctx context.Context, scope repo.Scope, id uuid.UUID) (Hallazgo, error) {
	return Hallazgo{}, repo.ErrNotFound
}

func newRouter(h *Handler) chi.Router {
	r := chi.NewRouter()
	Mount(r, h)
	return r
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

func identidad(rol auth.Rol, clienteID *uuid.UUID) auth.Identity {
	return auth.Identity{UsuarioID: uuid.New(), Rol: rol, ClienteID: clienteID}
}

func TestListPorRol(t *testing.T) {
	clienteA := uuid.New()
	clienteB := uuid.New()

	stub := newStubRepo()
	stub.addPlan(clienteA)
	stub.addPlan(clienteB)

	router := newRouter(NewHandler(NewService(stub)))

	t.Run("colaborador recibe 403", func(t *testing.T) {
		rec := doRequest(t, router, identidad(auth.RolColaborador, &clienteA), http.MethodGet, "/auditorias", nil)
		if rec.Code != http.StatusForbidden {
			t.Fatalf("status = %d, esperaba 403", rec.Code)
		}
	})

	t.Run("administrador ve solo su cliente", func(t *testing.T) {
		rec := doRequest(t, router, identidad(auth.RolAdministrador, &clienteA), http.MethodGet, "/auditorias", nil)
		if rec.Code != http.StatusOK {
			t.Fatalf("status = %d, esperaba 200", rec.Code)
		}
		var planes []PlanAuditoria
		if err := json.NewDecoder(rec.Body).Decode(&planes); err != nil {
			t.Fatalf("decodificando: %v", err)
		}
		if len(planes) != 1 {
			t.Fatalf("planes = %d, esperaba 1", len(planes))
		}
	})

	t.Run("superadmin ve todo", func(t *testing.T) {
		rec := doRequest(t, router, identidad(auth.RolSuperAdmin, nil), http.MethodGet, "/auditorias", nil)
		if rec.Code != http.StatusOK {
			t.Fatalf("status = %d, esperaba 200", rec.Code)
		}
		var planes []PlanAuditoria
		if err := json.NewDecoder(rec.Body).Decode(&planes); err != nil {
			t.Fatalf("decodificando: %v", err)
		}
		if len(planes) != 2 {
			t.Fatalf("planes = %d, esperaba 2", len(planes))
		}
	})
}

func TestGetCrossTenantDevuelve404(t *testing.T) {
	clienteA := uuid.New()
	clienteB := uuid.New()

	stub := newStubRepo()
	plan := stub.addPlan(clienteA)

	router := newRouter(NewHandler(NewService(stub)))

	rec := doRequest(t, router, identidad(auth.RolAdministrador, &clienteB), http.MethodGet, "/auditorias/"+plan.ID.String(), nil)
	if rec.Code != http.StatusNotFound {
		t.Fatalf("status = %d, esperaba 404", rec.Code)
	}

	rec = doRequest(t, router, identidad(auth.RolAdministrador, &clienteA), http.MethodGet, "/auditorias/"+plan.ID.String(), nil)
	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d, esperaba 200 para el dueño", rec.Code)
	}

	rec = doRequest(t, router, identidad(auth.RolSuperAdmin, nil), http.MethodGet, "/auditorias/"+plan.ID.String(), nil)
	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d, esperaba 200 para superadmin", rec.Code)
	}
}

func TestCrearHallazgoVerificaPlanPadre(t *testing.T) {
	clienteA := uuid.New()
	clienteB := uuid.New()

	stub := newStubRepo()
	plan := stub.addPlan(clienteA)

	router := newRouter(NewHandler(NewService(stub)))
	payload := map[string]string{"tipo": "No Conformidad", "descripcion": "Falta registro"}

	rec := doRequest(t, router, identidad(auth.RolAdministrador, &clienteB), http.MethodPost, "/auditorias/"+plan.ID.String()+"/hallazgos", payload)
	if rec.Code != http.StatusNotFound {
		t.Fatalf("status = %d, esperaba 404 para plan ajeno", rec.Code)
	}

	rec = doRequest(t, router, identidad(auth.RolAdministrador, &clienteA), http.MethodPost, "/auditorias/"+plan.ID.String()+"/hallazgos", payload)
	if rec.Code != http.StatusCreated {
		t.Fatalf("status = %d, esperaba 201 para el dueño", rec.Code)
	}
}

func TestCrearPlanValidaObligatorios(t *testing.T) {
	clienteA := uuid.New()
	stub := newStubRepo()
	router := newRouter(NewHandler(NewService(stub)))

	rec := doRequest(t, router, identidad(auth.RolAdministrador, &clienteA), http.MethodPost, "/auditorias", map[string]string{
		"fecha_planificada": "2026-09-15",
		"area_auditar":      "",
		"responsable_auditoria": "Auditor",
	})
	if rec.Code != http.StatusBadRequest {
		t.Fatalf("status = %d, esperaba 400", rec.Code)
	}

	rec = doRequest(t, router, identidad(auth.RolAdministrador, &clienteA), http.MethodPost, "/auditorias", map[string]string{
		"fecha_planificada":     "2026-09-15",
		"area_auditar":          "Compras",
		"responsable_auditoria": "Auditor",
	})
	if rec.Code != http.StatusCreated {
		t.Fatalf("status = %d, esperaba 201", rec.Code)
	}
}
