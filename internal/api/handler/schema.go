package handler

import "github.com/mmaya/sms-monitoreo/internal/core/domain"

// errorResponse is the envelope returned on all 4xx/5xx responses.
type errorResponse struct {
	Error string `json:"error"`
}

type messageResponse struct {
	Message string `json:"message"`
}

// --- auth ---

type loginRequest struct {
	Username string `json:"username" validate:"required,max=100"`
	Password string `json:"password" validate:"required,max=200"`
}

type loginResponse struct {
	Message string       `json:"message"`
	Token   string       `json:"token"`
	User    *domain.User `json:"user"`
}

type verifyTokenResponse struct {
	Valid bool           `json:"valid"`
	User  *domain.Claims `json:"user"`
}

// --- menu & roles ---

type accessStateRequest struct {
	State string `json:"state" validate:"required"`
}

type menuItemRequest struct {
	Label      string  `json:"label"       validate:"required,max=100"`
	Kind       string  `json:"kind"        validate:"required"`
	Icon       string  `json:"icon"        validate:"max=100"`
	LinkTarget *string `json:"link_target" validate:"omitempty,max=200"`
	ParentID   *int64  `json:"parent_id"   validate:"omitempty,gt=0"`
	Status     string  `json:"status"`
}

type roleRequest struct {
	Name   string `json:"rol"    validate:"required,max=100"`
	Status string `json:"estado"`
}

// --- catalogs ---

type catalogEntryRequest struct {
	Code   string `json:"codigo" validate:"max=50"`
	Name   string `json:"nombre" validate:"required,max=300"`
	Status string `json:"estado"`
}

type areaRequest struct {
	EntityID int64  `json:"id_entidad" validate:"required,gt=0"`
	Name     string `json:"nombre"     validate:"required,max=200"`
	Status   string `json:"estado"`
}

// --- indicators ---

type indicatorRequest struct {
	EntityID    *int64 `json:"id_entidad"          validate:"omitempty,gt=0"`
	AreaID      *int64 `json:"id_area"             validate:"omitempty,gt=0"`
	SectorID    *int64 `json:"id_sector"           validate:"omitempty,gt=0"`
	PillarID    *int64 `json:"id_pilar"            validate:"omitempty,gt=0"`
	AxisID      *int64 `json:"id_eje"              validate:"omitempty,gt=0"`
	GoalCode    string `json:"codi_meta"`
	ResultCode  string `json:"codi_resultado"`
	ActionCode  string `json:"codi_accion"`
	Code        string `json:"codi"`
	Description string `json:"indicador_resultado" validate:"required"`
	Formula     string `json:"formula_indicador"`
	BaseYear    *int   `json:"anio_base"           validate:"omitempty,gte=1900,lte=2100"`
	Baseline    string `json:"linea_base"`
	TargetYear  *int   `json:"anio_logro"          validate:"omitempty,gte=1900,lte=2100"`
	Target      string `json:"logro"`
	Status      string `json:"estado"`
}

func (r indicatorRequest) toDomain() domain.Indicator {
	return domain.Indicator{
		EntityID:    r.EntityID,
		AreaID:      r.AreaID,
		SectorID:    r.SectorID,
		PillarID:    r.PillarID,
		AxisID:      r.AxisID,
		GoalCode:    r.GoalCode,
		ResultCode:  r.ResultCode,
		ActionCode:  r.ActionCode,
		Code:        r.Code,
		Description: r.Description,
		Formula:     r.Formula,
		BaseYear:    r.BaseYear,
		Baseline:    r.Baseline,
		TargetYear:  r.TargetYear,
		Target:      r.Target,
		Status:      domain.Status(r.Status),
	}
}

// --- users ---

type createUserRequest struct {
	DocumentNo string `json:"nro_documento" validate:"max=30"`
	Name       string `json:"nombre"        validate:"required,max=200"`
	Username   string `json:"username"      validate:"required,max=100"`
	Password   string `json:"password"      validate:"required,min=6,max=200"`
	AreaID     *int64 `json:"id_area"       validate:"omitempty,gt=0"`
	RoleID     *int64 `json:"id_rol"        validate:"omitempty,gt=0"`
	Status     string `json:"estado"`
}

type updateUserRequest struct {
	DocumentNo string `json:"nro_documento" validate:"max=30"`
	Name       string `json:"nombre"        validate:"required,max=200"`
	Username   string `json:"username"      validate:"required,max=100"`
	Password   string `json:"password"      validate:"omitempty,min=6,max=200"`
	AreaID     *int64 `json:"id_area"       validate:"omitempty,gt=0"`
	RoleID     *int64 `json:"id_rol"        validate:"omitempty,gt=0"`
	Status     string `json:"estado"`
}

type changePasswordRequest struct {
	Password string `json:"password" validate:"required,min=6,max=200"`
}

// --- attachments ---

type uploadForm struct {
	IndicatorID int64  `form:"id_indicador" validate:"required,gt=0"`
	Year        int    `form:"gestion"      validate:"required,gt=0"`
	Description string `form:"descripcion"  validate:"max=500"`
}
