package domain

// Dashboard aggregates the figures shown on the home charts.
type Dashboard struct {
	Year               int           `json:"gestion"`
	Indicators         int           `json:"indicadores"`
	ActiveIndicators   int           `json:"indicadores_activos"`
	IndicatorsBySector []SectorCount `json:"indicadores_por_sector"`
	TrackingRecords    int           `json:"rendiciones"`
	ProgrammedTotal    float64       `json:"programado_total"`
	ExecutedTotal      float64       `json:"ejecutado_total"`
	ExecutionRatio     float64       `json:"avance"`
	ExecutedByMonth    [12]float64   `json:"ejecutado_por_mes"`
}

// SectorCount is the number of indicators attached to one sector.
type SectorCount struct {
	SectorID int64  `json:"id_sector"`
	Sector   string `json:"sector"`
	Count    int    `json:"total"`
}
