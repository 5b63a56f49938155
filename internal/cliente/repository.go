// Package cliente gestiona los tenants de la plataforma y su alta
// transaccional junto al primer administrador.
package cliente

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/regutech/plataforma/internal/db"
	"github.com/regutech/plataforma/internal/repo"
)

// Stats resume la actividad global de la plataforma.
type Stats struct {
	TotalClientes  int `json:"total_clientes"`
	TotalUsuarios  int `json:"total_usuarios"`
	TotalHallazgos int `json:"total_hallazgos"`
}

// PgRepository implementa el acceso a clientes sobre Postgres.
type PgRepository struct {
	pool *pgxpool.Pool
	tx   db.Beginner
}

func NewPgRepository(pool *pgxpool.Pool) *PgRepository {
	return &PgRepository{pool: pool, tx: pool}
}

// List devuelve todos los clientes ordenados por nombre.
func (r *PgRepository) List(ctx context.Context) ([]repo.Cliente, error) {
	const query = `SELECT id_cliente, nombre, fecha_creacion FROM cliente ORDER BY nombre`

	rows, err := r.pool.Query(ctx, query)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var clientes []repo.Cliente
	for rows.Next() {
		var c repo.Cliente
		if err := rows.Scan(&c.ID, &c.Nombre, &c.FechaCreacion); err != nil {
			return nil, err
		}
		clientes = append(clientes, c)
	}
	return clientes, rows.Err()
}

// GetByID recupera un cliente.
func (r *PgRepository) GetByID(ctx context.Context, id uuid.UUID) (repo.Cliente, error) {
	const query = `SELECT id_cliente, nombre, fecha_creacion FROM cliente WHERE id_cliente = $1`

	var c repo.Cliente
	if err := r.pool.QueryRow(ctx, query, id).Scan(&c.ID, &c.Nombre, &c.FechaCreacion); err != nil {
		if err == pgx.ErrNoRows {
			return repo.Cliente{}, repo.ErrNotFound
		}
		return repo.Cliente{}, err
	}
	return c, nil
}

// Stats cuenta clientes, usuarios de tenant y hallazgos de toda la
// plataforma.
func (r *PgRepository) Stats(ctx context.Context) (Stats, error) {
	const query = `
        SELECT
            (SELECT COUNT(*) FROM cliente),
            (SELECT COUNT(*) FROM usuario WHERE rol <> 'SuperAdmin'),
            (SELECT COUNT(*) FROM hallazgo)`

	var s Stats
	if err := r.pool.QueryRow(ctx, query).Scan(&s.TotalClientes, &s.TotalUsuarios, &s.TotalHallazgos); err != nil {
		return Stats{}, err
	}
	return s, nil
}

// CreateConAdmin da de alta un cliente y su primer Administrador en una
// transacción: si falla la cuenta, el cliente no queda huérfano.
func (r *PgRepository) CreateConAdmin(ctx context.Context, nombreCliente, nombreUsuario, email, passwordHash string) (repo.Cliente, repo.Usuario, error) {
	var cliente repo.Cliente
	var usuario repo.Usuario

	err := db.WithTx(ctx, r.tx, func(ctx context.Context, tx pgx.Tx) error {
		const insertCliente = `
            INSERT INTO cliente (id_cliente, nombre, fecha_creacion)
            VALUES ($1, $2, $3)
            RETURNING id_cliente, nombre, fecha_creacion`

		if err := tx.QueryRow(ctx, insertCliente, uuid.New(), nombreCliente, time.Now().UTC()).
			Scan(&cliente.ID, &cliente.Nombre, &cliente.FechaCreacion); err != nil {
			return err
		}

		const insertUsuario = `
            INSERT INTO usuario (id_usuario, id_cliente, nombre_completo, email, password_hash, rol, activo, fecha_creacion)
            VALUES ($1, $2, $3, $4, $5, $6, $7, $8)
            RETURNING id_usuario, id_cliente, nombre_completo, email, password_hash, rol, activo, fecha_creacion`

		return tx.QueryRow(ctx, insertUsuario, uuid.New(), cliente.ID, nombreUsuario, email, passwordHash, "Administrador", true, time.Now().UTC()).
			Scan(&usuario.ID, &usuario.ClienteID, &usuario.NombreCompleto, &usuario.Email, &usuario.PasswordHash, &usuario.Rol, &usuario.Activo, &usuario.FechaCreacion)
	})
	if err != nil {
		return repo.Cliente{}, repo.Usuario{}, err
	}
	return cliente, usuario, nil
}
