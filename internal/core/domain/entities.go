package domain

import (
	"strings"
	"time"
)

// Role represents user role in the system
type Role string

const (
	RoleAdministrador Role = "Administrador"
	RoleDigitador     Role = "Digitador"
	RoleEncargado     Role = "Encargado de Local"
	RoleMinistroDeFe  Role = "Ministro de Fe"
)

// ParseRole maps a stored role string to a Role. Anything unknown
// comes back invalid and carries no capabilities.
func ParseRole(s string) (Role, bool) {
	switch Role(s) {
	case RoleAdministrador, RoleDigitador, RoleEncargado, RoleMinistroDeFe:
		return Role(s), true
	}
	return Role(""), false
}

// IsValid reports whether the role is one of the four known roles.
func (r Role) IsValid() bool {
	_, ok := ParseRole(string(r))
	return ok
}

// CanManageUsers reports whether the role may administer accounts,
// catalogs (sedes, proyectos, sectores, tipos) and permisos.
func (r Role) CanManageUsers() bool {
	return r == RoleAdministrador
}

// CanRegisterVotes reports whether the role may submit vote totals for a mesa.
func (r Role) CanRegisterVotes() bool {
	return r == RoleAdministrador || r == RoleEncargado
}

// CanRegisterVotantes reports whether the role may register voters on a mesa.
func (r Role) CanRegisterVotantes() bool {
	return r == RoleAdministrador || r == RoleEncargado || r == RoleDigitador
}

// CanChangeMesaState reports whether the role may open/close a mesa.
func (r Role) CanChangeMesaState() bool {
	return r == RoleAdministrador || r == RoleEncargado
}

// ScopedByPermiso reports whether the role only sees mesas it holds a
// permiso for. Administrador is the only unscoped role; an invalid role
// is scoped (and holds no permisos, so it sees nothing).
func (r Role) ScopedByPermiso() bool {
	return r != RoleAdministrador
}

// EstadoUsuario represents an account lifecycle status
type EstadoUsuario string

const (
	EstadoActiva      EstadoUsuario = "Activa"
	EstadoDesactivada EstadoUsuario = "Desactivada"
	EstadoSuspendida  EstadoUsuario = "Suspendida"
)

// IsValid reports whether the status is a known account status.
func (e EstadoUsuario) IsValid() bool {
	return e == EstadoActiva || e == EstadoDesactivada || e == EstadoSuspendida
}

// Mesa state display labels. Persistence stores the boolean estado_mesa;
// responses speak Abierta/Cerrada.
const (
	EstadoAbierta = "Abierta"
	EstadoCerrada = "Cerrada"
)

// TipoVoto represents the kind of a single ballot row
type TipoVoto string

const (
	VotoNormal TipoVoto = "Normal"
	VotoBlanco TipoVoto = "Blanco"
	VotoNulo   TipoVoto = "Nulo"
)

// IsValid reports whether the ballot type is known.
func (t TipoVoto) IsValid() bool {
	return t == VotoNormal || t == VotoBlanco || t == VotoNulo
}

// Bucket keys used by the vote registration payload for non-project ballots.
const (
	BucketBlanco = "Blanco"
	BucketNulo   = "Nulo"
)

// Categoria is the statistical grouping derived from a tipo_proyecto name.
// The name itself stays free text; the category kind is computed once here
// instead of scattering substring matches through the aggregation queries.
type Categoria int

const (
	CategoriaOtra Categoria = iota
	CategoriaComunal
	CategoriaInfantil
	CategoriaJuvenil
	CategoriaSectorial
)

// CategoriaFromNombre derives the category kind from a free-text
// tipo_proyecto name (case-insensitive substring match).
func CategoriaFromNombre(nombre string) Categoria {
	n := strings.ToLower(nombre)
	switch {
	case strings.Contains(n, "comunal"):
		return CategoriaComunal
	case strings.Contains(n, "infantil"):
		return CategoriaInfantil
	case strings.Contains(n, "juvenil"):
		return CategoriaJuvenil
	case strings.Contains(n, "sectorial"):
		return CategoriaSectorial
	}
	return CategoriaOtra
}

// String returns the display label of the category.
func (c Categoria) String() string {
	switch c {
	case CategoriaComunal:
		return "Comunal"
	case CategoriaInfantil:
		return "Infantil"
	case CategoriaJuvenil:
		return "Juvenil"
	case CategoriaSectorial:
		return "Sectorial"
	}
	return "Otra"
}

// User represents a staff account in the domain layer
type User struct {
	ID        uint
	Usuario   string
	Nombre    string
	Email     string
	Password  string // Hashed
	Rol       Role
	Estado    EstadoUsuario
	CreatedAt time.Time
	UpdatedAt time.Time
}

// RefreshToken represents a refresh token in the domain
type RefreshToken struct {
	ID        uint
	UserID    uint
	TokenHash string
	ExpiresAt time.Time
	CreatedAt time.Time
	RevokedAt *time.Time
}

// TokenPair represents access and refresh tokens
type TokenPair struct {
	AccessToken  string
	RefreshToken string
}
