package riesgo

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/regutech/plataforma/internal/repo"
)

const columnas = `id_riesgo_oportunidad, id_usuario_creador, descripcion, tipo, probabilidad, impacto, fecha_identificacion, estado`

// PgRepository implementa el registro de riesgos sobre Postgres.
type PgRepository struct {
	pool *pgxpool.Pool
}

func NewPgRepository(pool *pgxpool.Pool) *PgRepository {
	return &PgRepository{pool: pool}
}

// List devuelve los riesgos visibles para el scope.
func (r *PgRepository) List(ctx context.Context, scope repo.Scope) ([]RiesgoOportunidad, error) {
	if scope.SinFiltro() {
		const query = `
            SELECT r.id_riesgo_oportunidad, r.id_usuario_creador, r.descripcion, r.tipo,
                   r.probabilidad, r.impacto, r.fecha_identificacion, r.estado,
                   c.nombre AS nombre_cliente
            FROM riesgo_oportunidad r
            JOIN usuario u ON r.id_usuario_creador = u.id_usuario
            JOIN cliente c ON u.id_cliente = c.id_cliente
            ORDER BY c.nombre, r.fecha_identificacion DESC`

		rows, err := r.pool.Query(ctx, query)
		if err != nil {
			return nil, err
		}
		defer rows.Close()
		return scanRiesgos(rows, true)
	}

	const query = `
        SELECT r.` + columnas + `
        FROM riesgo_oportunidad r
        JOIN usuario u ON r.id_usuario_creador = u.id_usuario
        WHERE u.id_cliente = $1
        ORDER BY r.fecha_identificacion DESC`

	rows, err := r.pool.Query(ctx, query, *scope.ClienteID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	return scanRiesgos(rows, false)
}

// GetByID recupera un riesgo dentro del scope.
func (r *PgRepository) GetByID(ctx context.Context, scope repo.Scope, id uuid.UUID) (RiesgoOportunidad, error) {
	var row pgx.Row
	if scope.SinFiltro() {
		const query = `SELECT ` + columnas + ` FROM riesgo_oportunidad WHERE id_riesgo_oportunidad = $1`
		row = r.pool.QueryRow(ctx, query, id)
	} else {
		const query = `
            SELECT r.` + columnas + `
            FROM riesgo_oportunidad r
            JOIN usuario u ON r.id_usuario_creador = u.id_usuario
            WHERE r.id_riesgo_oportunidad = $1 AND u.id_cliente = $2`
		row = r.pool.QueryRow(ctx, query, id, *scope.ClienteID)
	}
	return scanRiesgo(row)
}

// Create inserta un riesgo nuevo en estado Abierto.
func (r *PgRepository) Create(ctx context.Context, creadorID uuid.UUID, descripcion, tipo, probabilidad, impacto string) (RiesgoOportunidad, error) {
	const query = `
        INSERT INTO riesgo_oportunidad (` + columnas + `)
        VALUES ($1, $2, $3, $4, $5, $6, $7, $8)
        RETURNING ` + columnas

	row := r.pool.QueryRow(ctx, query, uuid.New(), creadorID, descripcion, tipo, probabilidad, impacto, time.Now().UTC(), EstadoAbierto)
	return scanRiesgo(row)
}

// Update modifica un riesgo dentro del scope. La verificación de tenant y
// la mutación son una sola sentencia: un riesgo ajeno deja cero filas
// afectadas y se reporta como no encontrado. Siempre corre con filtro:
// la operación es exclusiva de Administrador.
func (r *PgRepository) Update(ctx context.Context, scope repo.Scope, id uuid.UUID, descripcion, tipo, probabilidad, impacto string) (RiesgoOportunidad, error) {
	const query = `
        UPDATE riesgo_oportunidad r
        SET descripcion = $2, tipo = $3, probabilidad = $4, impacto = $5
        FROM usuario u
        WHERE r.id_riesgo_oportunidad = $1
          AND r.id_usuario_creador = u.id_usuario
          AND u.id_cliente = $6
        RETURNING r.` + columnas

	row := r.pool.QueryRow(ctx, query, id, descripcion, tipo, probabilidad, impacto, *scope.ClienteID)
	return scanRiesgo(row)
}

func scanRiesgo(row pgx.Row) (RiesgoOportunidad, error) {
	var ro RiesgoOportunidad
	if err := row.Scan(&ro.ID, &ro.CreadorID, &ro.Descripcion, &ro.Tipo, &ro.Probabilidad, &ro.Impacto, &ro.FechaIdentificacion, &ro.Estado); err != nil {
		if err == pgx.ErrNoRows {
			return RiesgoOportunidad{}, repo.ErrNotFound
		}
		return RiesgoOportunidad{}, err
	}
	return ro, nil
}

func scanRiesgos(rows pgx.Rows, conCliente bool) ([]RiesgoOportunidad, error) {
	var riesgos []RiesgoOportunidad
	for rows.Next() {
		var ro RiesgoOportunidad
		var err error
		if conCliente {
			err = rows.Scan(&ro.ID, &ro.CreadorID, &ro.Descripcion, &ro.Tipo, &ro.Probabilidad, &ro.Impacto, &ro.FechaIdentificacion, &ro.Estado, &ro.NombreCliente)
		} else {
			err = rows.Scan(&ro.ID, &ro.CreadorID, &ro.Descripcion, &ro.Tipo, &ro.Probabilidad, &ro.Impacto, &ro.FechaIdentificacion, &ro.Estado)
		}
		if err != nil {
			return nil, err
		}
		riesgos = append(riesgos, ro)
	}
	return riesgos, rows.Err()
}
