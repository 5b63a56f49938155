package accion

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgxpool"
)

const columnas = `id_plan_accion, id_usuario_creador, id_hallazgo, area_afectada, accion_propuesta, responsable_asignado, fecha_limite, descripcion_detallada, estado, fecha_creacion`

// PgRepository implementa la persistencia de planes de acción.
type PgRepository struct {
	pool *pgxpool.Pool
}

func NewPgRepository(pool *pgxpool.Pool) *PgRepository {
	return &PgRepository{pool: pool}
}

// Create inserta un plan de acción nuevo en estado Pendiente.
func (r *PgRepository) Create(ctx context.Context, p PlanAccion) (PlanAccion, error) {
	const query = `
        INSERT INTO plan_accion_mejora (` + columnas + `)
        VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10)
        RETURNING ` + columnas

	row := r.pool.QueryRow(ctx, query,
		uuid.New(), p.CreadorID, p.HallazgoID, p.AreaAfectada, p.AccionPropuesta,
		p.ResponsableAsignado, p.FechaLimite, p.DescripcionDetallada, EstadoPendiente, time.Now().UTC())

	var out PlanAccion
	if err := row.Scan(&out.ID, &out.CreadorID, &out.HallazgoID, &out.AreaAfectada, &out.AccionPropuesta,
		&out.ResponsableAsignado, &out.FechaLimite, &out.DescripcionDetallada, &out.Estado, &out.FechaCreacion); err != nil {
		return PlanAccion{}, err
	}
	return out, nil
}
