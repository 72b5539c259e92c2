package domain

import "errors"

// Common domain errors
var (
	ErrNotFound           = errors.New("resource not found")
	ErrInvalidInput       = errors.New("invalid input")
	ErrUnauthorized       = errors.New("unauthorized")
	ErrForbidden          = errors.New("forbidden")
	ErrInternalServer     = errors.New("internal server error")
	ErrDuplicateEntry     = errors.New("duplicate entry")
	ErrInvalidCredentials = errors.New("invalid credentials")
	ErrTokenExpired       = errors.New("token expired")
	ErrTokenInvalid       = errors.New("token invalid")
)

// User errors
var (
	ErrUserNotFound      = errors.New("user not found")
	ErrUserAlreadyExists = errors.New("user already exists")
	ErrInvalidPassword   = errors.New("invalid password")
	ErrUserNotActive     = errors.New("user account is not active")
	ErrInvalidRole       = errors.New("invalid role")
	ErrInvalidEstado     = errors.New("invalid account status")
)

// Mesa lifecycle errors
var (
	ErrMesaNotFound = errors.New("mesa not found")
	ErrMesaCerrada  = errors.New("mesa is closed")
	ErrMesaHasVotes = errors.New("mesa has recorded votes")
	ErrNoPermiso    = errors.New("no permiso for this mesa")
)

// Vote registration errors
var (
	ErrProyectoNotFound = errors.New("proyecto not found in periodo")
	ErrNegativeTotal    = errors.New("desired total must be non-negative")
	ErrInvalidTipoVoto  = errors.New("invalid tipo de voto")
)

// Catalog errors
var (
	ErrSedeNotFound        = errors.New("sede not found")
	ErrSedeHasVotes        = errors.New("sede has mesas with recorded votes")
	ErrSectorNotFound      = errors.New("sector not found")
	ErrSectorInUse         = errors.New("sector is referenced by proyectos")
	ErrTipoNotFound        = errors.New("tipo de proyecto not found")
	ErrTipoInUse           = errors.New("tipo de proyecto is referenced by proyectos")
	ErrProyectoHasVotes    = errors.New("proyecto has recorded votes")
	ErrDuplicateIDProyecto = errors.New("id_proyecto already exists in periodo")
	ErrDuplicateRut        = errors.New("rut already registered in periodo")
	ErrDuplicatePermiso    = errors.New("permiso already exists")
	ErrPermisoNotFound     = errors.New("permiso not found")
	ErrVotanteNotFound     = errors.New("votante not found")
)
