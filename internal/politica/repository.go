package politica

import (
	"context"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/regutech/plataforma/internal/repo"
)

const columnas = `id_politica, nombre, contenido, version, fecha_publicacion`

// PgRepository implementa políticas y confirmaciones de lectura.
type PgRepository struct {
	pool *pgxpool.Pool
}

func NewPgRepository(pool *pgxpool.Pool) *PgRepository {
	return &PgRepository{pool: pool}
}

// ListPendientes devuelve las políticas que el usuario no confirmó.
func (r *PgRepository) ListPendientes(ctx context.Context, usuarioID uuid.UUID) ([]Politica, error) {
	const query = `
        SELECT p.` + columnas + `
        FROM politica_compliance p
        LEFT JOIN confirmacion_lectura c
            ON p.id_politica = c.id_politica AND c.id_usuario = $1
        WHERE c.id_confirmacion IS NULL
        ORDER BY p.nombre`

	rows, err := r.pool.Query(ctx, query, usuarioID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	return scanPoliticas(rows)
}

// ListEstados devuelve todas las políticas anotadas con la lectura del
// usuario.
func (r *PgRepository) ListEstados(ctx context.Context, usuarioID uuid.UUID) ([]EstadoLectura, error) {
	const query = `
        SELECT p.id_politica, p.nombre, p.version,
               c.id_confirmacion IS NOT NULL AS leida
        FROM politica_compliance p
        LEFT JOIN confirmacion_lectura c
            ON p.id_politica = c.id_politica AND c.id_usuario = $1
        ORDER BY p.nombre`

	rows, err := r.pool.Query(ctx, query, usuarioID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var estados []EstadoLectura
	for rows.Next() {
		var e EstadoLectura
		if err := rows.Scan(&e.ID, &e.Nombre, &e.Version, &e.Leida); err != nil {
			return nil, err
		}
		estados = append(estados, e)
	}
	return estados, rows.Err()
}

// GetByID recupera una política por ID.
func (r *PgRepository) GetByID(ctx context.Context, id uuid.UUID) (Politica, error) {
	const query = `SELECT ` + columnas + ` FROM politica_compliance WHERE id_politica = $1`
	return scanPolitica(r.pool.QueryRow(ctx, query, id))
}

// ExisteConfirmacion indica si el usuario ya confirmó la política.
func (r *PgRepository) ExisteConfirmacion(ctx context.Context, usuarioID, politicaID uuid.UUID) (bool, error) {
	const query = `
        SELECT EXISTS (
            SELECT 1 FROM confirmacion_lectura
            WHERE id_usuario = $1 AND id_politica = $2
        )`

	var existe bool
	if err := r.pool.QueryRow(ctx, query, usuarioID, politicaID).Scan(&existe); err != nil {
		return false, err
	}
	return existe, nil
}

// CreateConfirmacion registra la lectura.
func (r *PgRepository) CreateConfirmacion(ctx context.Context, usuarioID, politicaID uuid.UUID) (Confirmacion, error) {
	const query = `
        INSERT INTO confirmacion_lectura (id_confirmacion, id_usuario, id_politica, fecha_confirmacion)
        VALUES ($1, $2, $3, $4)
        RETURNING id_confirmacion, id_usuario, id_politica, fecha_confirmacion`

	row := r.pool.QueryRow(ctx, query, uuid.New(), usuarioID, politicaID, time.Now().UTC())

	var c Confirmacion
	if err := row.Scan(&c.ID, &c.UsuarioID, &c.PoliticaID, &c.FechaConfirmacion); err != nil {
		return Confirmacion{}, err
	}
	return c, nil
}

// ListAll devuelve todas las políticas (backoffice).
func (r *PgRepository) ListAll(ctx context.Context) ([]Politica, error) {
	const query = `SELECT ` + columnas + ` FROM politica_compliance ORDER BY nombre`

	rows, err := r.pool.Query(ctx, query)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	return scanPoliticas(rows)
}

// Create publica una política nueva.
func (r *PgRepository) Create(ctx context.Context, nombre, contenido, version string) (Politica, error) {
	const query = `
        INSERT INTO politica_compliance (` + columnas + `)
        VALUES ($1, $2, $3, $4, $5)
        RETURNING ` + columnas

	return scanPolitica(r.pool.QueryRow(ctx, query, uuid.New(), strings.TrimSpace(nombre), contenido, version, time.Now().UTC()))
}

// Update modifica una política publicada.
func (r *PgRepository) Update(ctx context.Context, id uuid.UUID, nombre, contenido, version string) (Politica, error) {
	const query = `
        UPDATE politica_compliance
        SET nombre = $2, contenido = $3, version = $4
        WHERE id_politica = $1
        RETURNING ` + columnas

	return scanPolitica(r.pool.QueryRow(ctx, query, id, strings.TrimSpace(nombre), contenido, version))
}

func scanPolitica(row pgx.Row) (Politica, error) {
	var p Politica
	if err := row.Scan(&p.ID, &p.Nombre, &p.Contenido, &p.Version, &p.FechaPublicacion); err != nil {
		if err == pgx.ErrNoRows {
			return Politica{}, repo.ErrNotFound
		}
		return Politica{}, err
	}
	return p, nil
}

func scanPoliticas(rows pgx.Rows) ([]Politica, error) {
	var politicas []Politica
	for rows.Next() {
		var p Politica
		if err := rows.Scan(&p.ID, &p.Nombre, &p.Contenido, &p.Version, &p.FechaPublicacion); err != nil {
			return nil, err
		}
		politicas = append(politicas, p)
	}
	return politicas, rows.Err()
}
