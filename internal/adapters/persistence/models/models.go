package models

import (
	"time"

	"muni-votaciones/internal/core/domain"

	"gorm.io/gorm"
)

// ============================================================
// Auth & User Tables
// ============================================================

// User represents the usuarios table
type User struct {
	ID        uint           `gorm:"primaryKey" json:"id"`
	Usuario   string         `gorm:"uniqueIndex;size:50;not null" json:"usuario"`
	Nombre    string         `gorm:"size:100;not null" json:"nombre"`
	Email     string         `gorm:"uniqueIndex;size:100;not null" json:"email"`
	Password  string         `gorm:"size:255;not null" json:"-"`
	Rol       string         `gorm:"size:30;default:'Digitador'" json:"rol"`
	Estado    string         `gorm:"size:20;default:'Activa'" json:"estado"`
	CreatedAt time.Time      `gorm:"autoCreateTime" json:"created_at"`
	UpdatedAt time.Time      `gorm:"autoUpdateTime" json:"updated_at"`
	DeletedAt gorm.DeletedAt `gorm:"index" json:"-"`
}

func (User) TableName() string {
	return "usuarios"
}

// Role returns the typed role of the account.
func (u *User) Role() domain.Role {
	r, _ := domain.ParseRole(u.Rol)
	return r
}

// UserResponse DTO
type UserResponse struct {
	ID        uint      `json:"id"`
	Usuario   string    `json:"usuario"`
	Nombre    string    `json:"nombre"`
	Email     string    `json:"email"`
	Rol       string    `json:"rol"`
	Estado    string    `json:"estado"`
	CreatedAt time.Time `json:"created_at"`
}

func (u *User) ToResponse() *UserResponse {
	return &UserResponse{
		ID:        u.ID,
		Usuario:   u.Usuario,
		Nombre:    u.Nombre,
		Email:     u.Email,
		Rol:       u.Rol,
		Estado:    u.Estado,
		CreatedAt: u.CreatedAt,
	}
}

// RefreshToken represents the refresh_tokens table
type RefreshToken struct {
	ID        uint       `gorm:"primaryKey" json:"id"`
	UserID    uint       `gorm:"index;not null" json:"user_id"`
	TokenHash string     `gorm:"size:255;not null;index" json:"-"`
	ExpiresAt time.Time  `gorm:"not null" json:"expires_at"`
	CreatedAt time.Time  `gorm:"autoCreateTime" json:"created_at"`
	RevokedAt *time.Time `gorm:"index" json:"revoked_at"`
	User      User       `gorm:"foreignKey:UserID" json:"-"`
}

func (RefreshToken) TableName() string {
	return "refresh_tokens"
}

func (rt *RefreshToken) IsRevoked() bool {
	return rt.RevokedAt != nil
}

func (rt *RefreshToken) IsExpired() bool {
	return time.Now().After(rt.ExpiresAt)
}

// ============================================================
// Voting Tables
// ============================================================

// Sede represents the sedes table (polling place)
type Sede struct {
	ID        uint      `gorm:"primaryKey" json:"id"`
	Nombre    string    `gorm:"size:100;not null" json:"nombre"`
	Direccion string    `gorm:"size:200" json:"direccion"`
	CreatedAt time.Time `gorm:"autoCreateTime" json:"created_at"`
	UpdatedAt time.Time `gorm:"autoUpdateTime" json:"updated_at"`
}

func (Sede) TableName() string {
	return "sedes"
}

// Mesa represents the mesas table (voting table). EstadoMesa true = Abierta.
type Mesa struct {
	ID         uint      `gorm:"primaryKey" json:"id"`
	Nombre     string    `gorm:"size:100;not null" json:"nombre"`
	SedeID     uint      `gorm:"index;not null" json:"sede_id"`
	Periodo    int       `gorm:"index;not null" json:"periodo"`
	EstadoMesa bool      `gorm:"default:true" json:"estado_mesa"`
	CreatedAt  time.Time `gorm:"autoCreateTime" json:"created_at"`
	UpdatedAt  time.Time `gorm:"autoUpdateTime" json:"updated_at"`
	Sede       Sede      `gorm:"foreignKey:SedeID" json:"-"`
}

func (Mesa) TableName() string {
	return "mesas"
}

// MesaResponse DTO with live counters
type MesaResponse struct {
	ID            uint   `json:"id"`
	Nombre        string `json:"nombre"`
	SedeID        uint   `json:"sede_id"`
	SedeNombre    string `json:"sede_nombre,omitempty"`
	Periodo       int    `json:"periodo"`
	EstadoMesa    bool   `json:"estado_mesa"`
	VotosCount    int64  `json:"votos_count"`
	VotantesCount int64  `json:"votantes_count"`
}

// TipoProyecto represents the tipo_proyectos table
type TipoProyecto struct {
	ID        uint      `gorm:"primaryKey" json:"id"`
	Nombre    string    `gorm:"size:100;not null" json:"nombre"`
	CreatedAt time.Time `gorm:"autoCreateTime" json:"created_at"`
	UpdatedAt time.Time `gorm:"autoUpdateTime" json:"updated_at"`
}

func (TipoProyecto) TableName() string {
	return "tipo_proyectos"
}

// Categoria returns the statistical grouping derived from the free-text name.
func (t *TipoProyecto) Categoria() domain.Categoria {
	return domain.CategoriaFromNombre(t.Nombre)
}

// Sector represents the sectores table
type Sector struct {
	ID        uint      `gorm:"primaryKey" json:"id"`
	Nombre    string    `gorm:"size:100;not null" json:"nombre"`
	CreatedAt time.Time `gorm:"autoCreateTime" json:"created_at"`
	UpdatedAt time.Time `gorm:"autoUpdateTime" json:"updated_at"`
}

func (Sector) TableName() string {
	return "sectores"
}

// Proyecto represents the proyectos table. IDProyecto is the public
// project code, unique within a periodo.
type Proyecto struct {
	ID             uint         `gorm:"primaryKey" json:"id"`
	IDProyecto     string       `gorm:"size:30;not null;uniqueIndex:uq_proyecto_periodo" json:"id_proyecto"`
	Periodo        int          `gorm:"not null;uniqueIndex:uq_proyecto_periodo;index" json:"periodo"`
	Nombre         string       `gorm:"size:200;not null" json:"nombre"`
	TipoProyectoID uint         `gorm:"index;not null" json:"tipo_proyecto_id"`
	SectorID       *uint        `gorm:"index" json:"sector_id"`
	CreatedAt      time.Time    `gorm:"autoCreateTime" json:"created_at"`
	UpdatedAt      time.Time    `gorm:"autoUpdateTime" json:"updated_at"`
	TipoProyecto   TipoProyecto `gorm:"foreignKey:TipoProyectoID" json:"-"`
	Sector         *Sector      `gorm:"foreignKey:SectorID" json:"-"`
}

func (Proyecto) TableName() string {
	return "proyectos"
}

// Permiso represents the permisos table: (periodo, sede, mesa, usuario)
// grant. The natural key is unique.
type Permiso struct {
	ID        uint      `gorm:"primaryKey" json:"id"`
	Periodo   int       `gorm:"not null;uniqueIndex:uq_permiso" json:"periodo"`
	SedeID    uint      `gorm:"not null;uniqueIndex:uq_permiso" json:"sede_id"`
	MesaID    uint      `gorm:"not null;uniqueIndex:uq_permiso;index" json:"mesa_id"`
	UserID    uint      `gorm:"column:id_usuario;not null;uniqueIndex:uq_permiso;index" json:"id_usuario"`
	CreatedAt time.Time `gorm:"autoCreateTime" json:"created_at"`
	Mesa      Mesa      `gorm:"foreignKey:MesaID" json:"-"`
	User      User      `gorm:"foreignKey:UserID" json:"-"`
}

func (Permiso) TableName() string {
	return "permisos"
}

// Votante represents the votantes table (headcount record, not a ballot).
// Rut is unique within a periodo.
type Votante struct {
	ID              uint      `gorm:"primaryKey" json:"id"`
	MesaID          uint      `gorm:"index;not null" json:"mesa_id"`
	Periodo         int       `gorm:"not null;uniqueIndex:uq_votante_rut;index" json:"periodo"`
	Rut             string    `gorm:"size:20;not null;uniqueIndex:uq_votante_rut" json:"rut"`
	Nombre          string    `gorm:"size:150;not null" json:"nombre"`
	Direccion       string    `gorm:"size:200" json:"direccion"`
	FechaNacimiento *time.Time `json:"fecha_nacimiento"`
	CreatedAt       time.Time `gorm:"autoCreateTime" json:"created_at"`
	Mesa            Mesa      `gorm:"foreignKey:MesaID" json:"-"`
}

func (Votante) TableName() string {
	return "votantes"
}

// Voto represents one physical ballot row. ProyectoID is set only for
// tipo_voto = Normal.
type Voto struct {
	ID         uint      `gorm:"primaryKey" json:"id"`
	Periodo    int       `gorm:"index;not null" json:"periodo"`
	MesaID     uint      `gorm:"index;not null" json:"mesa_id"`
	TipoVoto   string    `gorm:"size:10;not null" json:"tipo_voto"`
	ProyectoID *uint     `gorm:"index" json:"proyecto_id"`
	CreatedAt  time.Time `gorm:"autoCreateTime" json:"created_at"`
	Mesa       Mesa      `gorm:"foreignKey:MesaID" json:"-"`
	Proyecto   *Proyecto `gorm:"foreignKey:ProyectoID" json:"-"`
}

func (Voto) TableName() string {
	return "votos"
}

// AutoMigrate runs auto migration for all tables
func AutoMigrate(db *gorm.DB) error {
	return db.AutoMigrate(
		&User{},
		&RefreshToken{},
		&Sede{},
		&Mesa{},
		&TipoProyecto{},
		&Sector{},
		&Proyecto{},
		&Permiso{},
		&Votante{},
		&Voto{},
	)
}
