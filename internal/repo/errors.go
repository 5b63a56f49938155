package repo

import "errors"

var (
	// ErrNotFound se devuelve cuando no existe el registro o pertenece a
	// otro cliente: ambas situaciones son indistinguibles para el caller.
	ErrNotFound = errors.New("registro no encontrado")
)
