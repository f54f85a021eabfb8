package domain

// Indicator is a row of the parameter matrix: one measurable result linked to
// the planning hierarchy (sector, pillar, axis, goal, result, action).
type Indicator struct {
	ID          int64  `json:"id_indicador"        bson:"_id"`
	EntityID    *int64 `json:"id_entidad"          bson:"entity_id,omitempty"`
	AreaID      *int64 `json:"id_area"             bson:"area_id,omitempty"`
	SectorID    *int64 `json:"id_sector"           bson:"sector_id,omitempty"`
	PillarID    *int64 `json:"id_pilar"            bson:"pillar_id,omitempty"`
	AxisID      *int64 `json:"id_eje"              bson:"axis_id,omitempty"`
	GoalCode    string `json:"codi_meta"           bson:"goal_code,omitempty"`
	ResultCode  string `json:"codi_resultado"      bson:"result_code,omitempty"`
	ActionCode  string `json:"codi_accion"         bson:"action_code,omitempty"`
	Code        string `json:"codi"                bson:"code,omitempty"`
	Description string `json:"indicador_resultado" bson:"description,omitempty"`
	Formula     string `json:"formula_indicador"   bson:"formula,omitempty"`
	BaseYear    *int   `json:"anio_base"           bson:"base_year,omitempty"`
	Baseline    string `json:"linea_base"          bson:"baseline,omitempty"`
	TargetYear  *int   `json:"anio_logro"          bson:"target_year,omitempty"`
	Target      string `json:"logro"               bson:"target,omitempty"`
	Status      Status `json:"estado"              bson:"status"`
}
