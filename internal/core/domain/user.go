package domain

import "time"

// User models an operator of the monitoring system. Every user belongs to an
// organisational area and holds exactly one role.
type User struct {
	ID           int64     `json:"id_usuario"`
	DocumentNo   string    `json:"nro_documento,omitempty"`
	Name         string    `json:"nombre"`
	Username     string    `json:"username"`
	PasswordHash string    `json:"-"`
	AreaID       *int64    `json:"id_area,omitempty"`
	AreaName     string    `json:"area,omitempty"`
	RoleID       *int64    `json:"id_rol,omitempty"`
	RoleName     string    `json:"rol,omitempty"`
	Status       Status    `json:"estado"`
	CreatedAt    time.Time `json:"fecha_creacion"`
}

// Claims is the identity carried by an access token.
type Claims struct {
	UserID   int64  `json:"id_usuario"`
	Username string `json:"username"`
	Name     string `json:"nombre"`
	AreaID   int64  `json:"id_area"`
	RoleID   int64  `json:"id_rol"`
	RoleName string `json:"rol"`
}
