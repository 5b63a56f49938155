package repo

import (
	"context"
	"strings"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

const columnasUsuario = `id_usuario, id_cliente, nombre_completo, email, password_hash, rol, activo, fecha_creacion`

// Queries concentra el acceso a usuarios y clientes compartido entre servicios.
type Queries struct {
	pool *pgxpool.Pool
}

func New(pool *pgxpool.Pool) *Queries {
	return &Queries{pool: pool}
}

// GetUsuarioByEmail recupera un usuario por e-mail normalizado.
func (q *Queries) GetUsuarioByEmail(ctx context.Context, email string) (Usuario, error) {
	const query = `SELECT ` + columnasUsuario + ` FROM usuario WHERE email = $1`

	row := q.pool.QueryRow(ctx, query, strings.ToLower(strings.TrimSpace(email)))
	return scanUsuario(row)
}

// GetUsuarioByID recupera un usuario por ID.
func (q *Queries) GetUsuarioByID(ctx context.Context, id uuid.UUID) (Usuario, error) {
	const query = `SELECT ` + columnasUsuario + ` FROM usuario WHERE id_usuario = $1`

	row := q.pool.QueryRow(ctx, query, id)
	return scanUsuario(row)
}

// UpdateNombre cambia el nombre del propio usuario (perfil).
func (q *Queries) UpdateNombre(ctx context.Context, id uuid.UUID, nombre string) (Usuario, error) {
	const query = `
        UPDATE usuario SET nombre_completo = $2
        WHERE id_usuario = $1
        RETURNING ` + columnasUsuario

	row := q.pool.QueryRow(ctx, query, id, strings.TrimSpace(nombre))
	return scanUsuario(row)
}

// UpdatePassword reemplaza el hash de contraseña.
func (q *Queries) UpdatePassword(ctx context.Context, id uuid.UUID, hash string) error {
	const query = `UPDATE usuario SET password_hash = $2 WHERE id_usuario = $1`

	tag, err := q.pool.Exec(ctx, query, id, hash)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return ErrNotFound
	}
	return nil
}

// UpdateUsuarioAdmin modifica nombre, rol y estado de una cuenta.
// El e-mail no se toca.
func (q *Queries) UpdateUsuarioAdmin(ctx context.Context, id uuid.UUID, nombre, rol string, activo bool) (Usuario, error) {
	const query = `
        UPDATE usuario
        SET nombre_completo = $2, rol = $3, activo = $4
        WHERE id_usuario = $1
        RETURNING ` + columnasUsuario

	row := q.pool.QueryRow(ctx, query, id, strings.TrimSpace(nombre), rol, activo)
	return scanUsuario(row)
}

// DeleteUsuario elimina definitivamente una cuenta.
func (q *Queries) DeleteUsuario(ctx context.Context, id uuid.UUID) error {
	const query = `DELETE FROM usuario WHERE id_usuario = $1`

	tag, err := q.pool.Exec(ctx, query, id)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return ErrNotFound
	}
	return nil
}

// ListUsuariosByCliente devuelve los usuarios de un cliente. Las cuentas
// SuperAdmin no pertenecen a ningún tenant y quedan fuera del listado.
func (q *Queries) ListUsuariosByCliente(ctx context.Context, clienteID uuid.UUID) ([]Usuario, error) {
	const query = `
        SELECT ` + columnasUsuario + `
        FROM usuario
        WHERE id_cliente = $1 AND rol <> 'SuperAdmin'
        ORDER BY nombre_completo`

	rows, err := q.pool.Query(ctx, query, clienteID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var usuarios []Usuario
	for rows.Next() {
		u, err := scanUsuario(rows)
		if err != nil {
			return nil, err
		}
		usuarios = append(usuarios, u)
	}
	return usuarios, rows.Err()
}

// ListUsuarios devuelve todos los usuarios de tenant con el nombre de su
// cliente, ordenados por cliente.
func (q *Queries) ListUsuarios(ctx context.Context) ([]UsuarioConCliente, error) {
	const query = `
        SELECT u.id_usuario, u.id_cliente, u.nombre_completo, u.email, u.password_hash, u.rol, u.activo, u.fecha_creacion, c.nombre
        FROM usuario u
        JOIN cliente c ON u.id_cliente = c.id_cliente
        WHERE u.rol <> 'SuperAdmin'
        ORDER BY c.nombre, u.nombre_completo`

	rows, err := q.pool.Query(ctx, query)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var usuarios []UsuarioConCliente
	for rows.Next() {
		var u UsuarioConCliente
		if err := rows.Scan(&u.ID, &u.ClienteID, &u.NombreCompleto, &u.Email, &u.PasswordHash, &u.Rol, &u.Activo, &u.FechaCreacion, &u.NombreCliente); err != nil {
			return nil, err
		}
		usuarios = append(usuarios, u)
	}
	return usuarios, rows.Err()
}

func scanUsuario(row pgx.Row) (Usuario, error) {
	var u Usuario
	if err := row.Scan(&u.ID, &u.ClienteID, &u.NombreCompleto, &u.Email, &u.PasswordHash, &u.Rol, &u.Activo, &u.FechaCreacion); err != nil {
		if err == pgx.ErrNoRows {
			return Usuario{}, ErrNotFound
		}
		return Usuario{}, err
	}
	return u, nil
}
