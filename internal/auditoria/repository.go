package auditoria

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/regutech/plataforma/internal/repo"
)

// PgRepository implementa el acceso a planes de auditoría y hallazgos.
// El filtro de tenant siempre pasa por el usuario creador del plan.
type PgRepository struct {
	pool *pgxpool.Pool
}

func NewPgRepository(pool *pgxpool.Pool) *PgRepository {
	return &PgRepository{pool: pool}
}

// List devuelve los planes visibles para el scope. Sin filtro agrega el
// nombre del cliente y ordena por cliente; con filtro ordena por fecha.
func (r *PgRepository) List(ctx context.Context, scope repo.Scope) ([]PlanAuditoria, error) {
	if scope.SinFiltro() {
		const query = `
            SELECT p.id_plan_auditoria, p.id_usuario_creador, p.fecha_planificada,
                   p.area_auditar, p.responsable_auditoria, p.objetivo, p.estado,
                   c.nombre AS nombre_cliente
            FROM plan_auditoria p
            JOIN usuario u ON p.id_usuario_creador = u.id_usuario
            JOIN cliente c ON u.id_cliente = c.id_cliente
            ORDER BY c.nombre, p.fecha_planificada DESC`

		rows, err := r.pool.Query(ctx, query)
		if err != nil {
			return nil, err
		}
		defer rows.Close()
		return scanPlanes(rows, true)
	}

	const query = `
        SELECT p.id_plan_auditoria, p.id_usuario_creador, p.fecha_planificada,
               p.area_auditar, p.responsable_auditoria, p.objetivo, p.estado
        FROM plan_auditoria p
        JOIN usuario u ON p.id_usuario_creador = u.id_usuario
        WHERE u.id_cliente = $1
        ORDER BY p.fecha_planificada DESC`

	rows, err := r.pool.Query(ctx, query, *scope.ClienteID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	return scanPlanes(rows, false)
}

// GetByID recupera un plan dentro del scope. Una fila de otro cliente
// devuelve ErrNotFound, igual que una fila inexistente.
func (r *PgRepository) GetByID(ctx context.Context, scope repo.Scope, id uuid.UUID) (PlanAuditoria, error) {
	var row pgx.Row
	if scope.SinFiltro() {
		const query = `
            SELECT id_plan_auditoria, id_usuario_creador, fecha_planificada,
                   area_auditar, responsable_auditoria, objetivo, estado
            FROM plan_auditoria WHERE id_plan_auditoria = $1`
		row = r.pool.QueryRow(ctx, query, id)
	} else {
		const query = `
            SELECT p.id_plan_auditoria, p.id_usuario_creador, p.fecha_planificada,
                   p.area_auditar, p.responsable_auditoria, p.objetivo, p.estado
            FROM plan_auditoria p
            JOIN usuario u ON p.id_usuario_creador = u.id_usuario
            WHERE p.id_plan_auditoria = $1 AND u.id_cliente = $2`
		row = r.pool.QueryRow(ctx, query, id, *scope.ClienteID)
	}

	var p PlanAuditoria
	if err := row.Scan(&p.ID, &p.CreadorID, &p.FechaPlanificada, &p.AreaAuditar, &p.ResponsableAuditoria, &p.Objetivo, &p.Estado); err != nil {
		if err == pgx.ErrNoRows {
			return PlanAuditoria{}, repo.ErrNotFound
		}
		return PlanAuditoria{}, err
	}
	return p, nil
}

// Create inserta un plan nuevo en estado Planificado.
func (r *PgRepository) Create(ctx context.Context, creadorID uuid.UUID, fecha time.Time, area, responsable, objetivo string) (PlanAuditoria, error) {
	const query = `
        INSERT INTO plan_auditoria
            (id_plan_auditoria, id_usuario_creador, fecha_planificada, area_auditar, responsable_auditoria, objetivo, estado)
        VALUES ($1, $2, $3, $4, $5, $6, $7)
        RETURNING id_plan_auditoria, id_usuario_creador, fecha_planificada, area_auditar, responsable_auditoria, objetivo, estado`

	row := r.pool.QueryRow(ctx, query, uuid.New(), creadorID, fecha, area, responsable, objetivo, EstadoPlanificado)

	var p PlanAuditoria
	if err := row.Scan(&p.ID, &p.CreadorID, &p.FechaPlanificada, &p.AreaAuditar, &p.ResponsableAuditoria, &p.Objetivo, &p.Estado); err != nil {
		return PlanAuditoria{}, err
	}
	return p, nil
}

// CreateHallazgo registra un hallazgo sobre un plan. El caller verifica
// antes que el plan pertenece a su tenant.
func (r *PgRepository) CreateHallazgo(ctx context.Context, planID uuid.UUID, tipo, descripcion string) (Hallazgo, error) {
	const query = `
        INSERT INTO hallazgo (id_hallazgo, id_plan_auditoria, tipo, descripcion, fecha_registro)
        VALUES ($1, $2, $3, $4, $5)
        RETURNING id_hallazgo, id_plan_auditoria, tipo, descripcion, fecha_registro`

	row := r.pool.QueryRow(ctx, query, uuid.New(), planID, tipo, descripcion, time.Now().UTC())

	var h Hallazgo
	if err := row.Scan(&h.ID, &h.PlanID, &h.Tipo, &h.Descripcion, &h.FechaRegistro); err != nil {
		return Hallazgo{}, err
	}
	return h, nil
}

// GetHallazgoByID recupera un hallazgo dentro del scope, heredando el
// filtro de tenant del plan padre.
func (r *PgRepository) GetHallazgoByID(ctx context.Context, scope repo.Scope, id uuid.UUID) (Hallazgo, error) {
	var row pgx.Row
	if scope.SinFiltro() {
		const query = `
            SELECT id_hallazgo, id_plan_auditoria, tipo, descripcion, fecha_registro
            FROM hallazgo WHERE id_hallazgo = $1`
		row = r.pool.QueryRow(ctx, query, id)
	} else {
		const query = `
            SELECT h.id_hallazgo, h.id_plan_auditoria, h.tipo, h.descripcion, h.fecha_registro
            FROM hallazgo h
            JOIN plan_auditoria p ON h.id_plan_auditoria = p.id_plan_auditoria
            JOIN usuario u ON p.id_usuario_creador = u.id_usuario
            WHERE h.id_hallazgo = $1 AND u.id_cliente = $2`
		row = r.pool.QueryRow(ctx, query, id, *scope.ClienteID)
	}

	var h Hallazgo
	if err := row.Scan(&h.ID, &h.PlanID, &h.Tipo, &h.Descripcion, &h.FechaRegistro); err != nil {
		if err == pgx.ErrNoRows {
			return Hallazgo{}, repo.ErrNotFound
		}
		return Hallazgo{}, err
	}
	return h, nil
}

func scanPlanes(rows pgx.Rows, conCliente bool) ([]PlanAuditoria, error) {
	var planes []PlanAuditoria
	for rows.Next() {
		var p PlanAuditoria
		var err error
		if conCliente {
			err = rows.Scan(&p.ID, &p.CreadorID, &p.FechaPlanificada, &p.AreaAuditar, &p.ResponsableAuditoria, &p.Objetivo, &p.Estado, &p.NombreCliente)
		} else {
			err = rows.Scan(&p.ID, &p.CreadorID, &p.FechaPlanificada, &p.AreaAuditar, &p.ResponsableAuditoria, &p.Objetivo, &p.Estado)
		}
		if err != nil {
			return nil, err
		}
		planes = append(planes, p)
	}
	return planes, rows.Err()
}
