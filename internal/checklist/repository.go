package checklist

import (
	"context"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/regutech/plataforma/internal/db"
	"github.com/regutech/plataforma/internal/repo"
)

const columnas = `id_checklist, nombre, descripcion, version, fecha_creacion`

// PgRepository implementa las plantillas de checklist sobre Postgres.
type PgRepository struct {
	pool *pgxpool.Pool
	tx   db.Beginner
}

func NewPgRepository(pool *pgxpool.Pool) *PgRepository {
	return &PgRepository{pool: pool, tx: pool}
}

// ListPendientes devuelve las plantillas que el usuario todavía no
// respondió, vía anti-join sobre sus propias respuestas.
func (r *PgRepository) ListPendientes(ctx context.Context, usuarioID uuid.UUID) ([]Checklist, error) {
	const query = `
        SELECT ch.` + columnas + `
        FROM checklist ch
        WHERE NOT EXISTS (
            SELECT 1 FROM respuesta_checklist rc
            WHERE rc.id_checklist = ch.id_checklist AND rc.id_usuario = $1
        )
        ORDER BY ch.nombre`

	rows, err := r.pool.Query(ctx, query, usuarioID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	return scanChecklists(rows)
}

// ListConteos devuelve, por plantilla, el total de preguntas y cuántas
// respondió este usuario.
func (r *PgRepository) ListConteos(ctx context.Context, usuarioID uuid.UUID) ([]Progreso, error) {
	const query = `
        WITH total_preguntas AS (
            SELECT id_checklist, COUNT(id_pregunta) AS total
            FROM pregunta_checklist
            GROUP BY id_checklist
        ),
        total_respuestas AS (
            SELECT id_checklist, COUNT(id_respuesta) AS total
            FROM respuesta_checklist
            WHERE id_usuario = $1
            GROUP BY id_checklist
        )
        SELECT c.id_checklist, c.nombre,
               COALESCE(tp.total, 0) AS total_preguntas,
               COALESCE(tr.total, 0) AS total_respuestas
        FROM checklist c
        LEFT JOIN total_preguntas tp ON c.id_checklist = tp.id_checklist
        LEFT JOIN total_respuestas tr ON c.id_checklist = tr.id_checklist
        ORDER BY c.nombre`

	rows, err := r.pool.Query(ctx, query, usuarioID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var progresos []Progreso
	for rows.Next() {
		var p Progreso
		if err := rows.Scan(&p.ID, &p.Nombre, &p.TotalPreguntas, &p.TotalRespuestas); err != nil {
			return nil, err
		}
		progresos = append(progresos, p)
	}
	return progresos, rows.Err()
}

// GetByID recupera una plantilla con sus preguntas ordenadas.
func (r *PgRepository) GetByID(ctx context.Context, id uuid.UUID) (Checklist, error) {
	const query = `SELECT ` + columnas + ` FROM checklist WHERE id_checklist = $1`

	var ch Checklist
	if err := r.pool.QueryRow(ctx, query, id).Scan(&ch.ID, &ch.Nombre, &ch.Descripcion, &ch.Version, &ch.FechaCreacion); err != nil {
		if err == pgx.ErrNoRows {
			return Checklist{}, repo.ErrNotFound
		}
		return Checklist{}, err
	}

	const preguntasQuery = `
        SELECT id_pregunta, id_checklist, texto_pregunta, obligatoria, orden
        FROM pregunta_checklist
        WHERE id_checklist = $1
        ORDER BY orden`

	rows, err := r.pool.Query(ctx, preguntasQuery, id)
	if err != nil {
		return Checklist{}, err
	}
	defer rows.Close()

	for rows.Next() {
		var p Pregunta
		if err := rows.Scan(&p.ID, &p.ChecklistID, &p.TextoPregunta, &p.Obligatoria, &p.Orden); err != nil {
			return Checklist{}, err
		}
		ch.Preguntas = append(ch.Preguntas, p)
	}
	return ch, rows.Err()
}

// GuardarRespuestas inserta el lote de respuestas en una transacción:
// o entran todas o no entra ninguna.
func (r *PgRepository) GuardarRespuestas(ctx context.Context, usuarioID, checklistID uuid.UUID, respuestas []RespuestaItem) error {
	return db.WithTx(ctx, r.tx, func(ctx context.Context, tx pgx.Tx) error {
		const query = `
            INSERT INTO respuesta_checklist
                (id_respuesta, id_usuario, id_pregunta, id_checklist, opcion_seleccionada, observaciones, fecha_respuesta)
            VALUES ($1, $2, $3, $4, $5, $6, $7)`

		ahora := time.Now().UTC()
		for _, resp := range respuestas {
			if _, err := tx.Exec(ctx, query, uuid.New(), usuarioID, resp.PreguntaID, checklistID, resp.OpcionSeleccionada, resp.Observaciones, ahora); err != nil {
				return err
			}
		}
		return nil
	})
}

// ListAll devuelve todas las plantillas de la plataforma (backoffice).
func (r *PgRepository) ListAll(ctx context.Context) ([]Checklist, error) {
	const query = `SELECT ` + columnas + ` FROM checklist ORDER BY nombre`

	rows, err := r.pool.Query(ctx, query)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	return scanChecklists(rows)
}

// Create inserta una plantilla nueva.
func (r *PgRepository) Create(ctx context.Context, nombre, descripcion, version string) (Checklist, error) {
	const query = `
        INSERT INTO checklist (` + columnas + `)
        VALUES ($1, $2, $3, $4, $5)
        RETURNING ` + columnas

	row := r.pool.QueryRow(ctx, query, uuid.New(), strings.TrimSpace(nombre), descripcion, version, time.Now().UTC())

	var ch Checklist
	if err := row.Scan(&ch.ID, &ch.Nombre, &ch.Descripcion, &ch.Version, &ch.FechaCreacion); err != nil {
		return Checklist{}, err
	}
	return ch, nil
}

// Update modifica los metadatos de una plantilla.
func (r *PgRepository) Update(ctx context.Context, id uuid.UUID, nombre, descripcion, version string) (Checklist, error) {
	const query = `
        UPDATE checklist
        SET nombre = $2, descripcion = $3, version = $4
        WHERE id_checklist = $1
        RETURNING ` + columnas

	row := r.pool.QueryRow(ctx, query, id, strings.TrimSpace(nombre), descripcion, version)

	var ch Checklist
	if err := row.Scan(&ch.ID, &ch.Nombre, &ch.Descripcion, &ch.Version, &ch.FechaCreacion); err != nil {
		if err == pgx.ErrNoRows {
			return Checklist{}, repo.ErrNotFound
		}
		return Checklist{}, err
	}
	return ch, nil
}

// CreatePregunta añade un punto de control a una plantilla.
func (r *PgRepository) CreatePregunta(ctx context.Context, checklistID uuid.UUID, texto string, obligatoria bool, orden int) (Pregunta, error) {
	const query = `
        INSERT INTO pregunta_checklist (id_pregunta, id_checklist, texto_pregunta, obligatoria, orden)
        VALUES ($1, $2, $3, $4, $5)
        RETURNING id_pregunta, id_checklist, texto_pregunta, obligatoria, orden`

	row := r.pool.QueryRow(ctx, query, uuid.New(), checklistID, strings.TrimSpace(texto), obligatoria, orden)

	var p Pregunta
	if err := row.Scan(&p.ID, &p.ChecklistID, &p.TextoPregunta, &p.Obligatoria, &p.Orden); err != nil {
		return Pregunta{}, err
	}
	return p, nil
}

// DeletePregunta elimina un punto de control.
func (r *PgRepository) DeletePregunta(ctx context.Context, id uuid.UUID) error {
	const query = `DELETE FROM pregunta_checklist WHERE id_pregunta = $1`

	tag, err := r.pool.Exec(ctx, query, id)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return repo.ErrNotFound
	}
	return nil
}

func scanChecklists(rows pgx.Rows) ([]Checklist, error) {
	var checklists []Checklist
	for rows.Next() {
		var ch Checklist
		if err := rows.Scan(&ch.ID, &ch.Nombre, &ch.Descripcion, &ch.Version, &ch.FechaCreacion); err != nil {
			return nil, err
		}
		checklists = append(checklists, ch)
	}
	return checklists, rows.Err()
}
