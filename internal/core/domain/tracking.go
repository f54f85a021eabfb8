package domain

import (
	"encoding/json"
	"fmt"
	"time"
)

// MonthKeys are the month suffixes used by the tracking grid columns.
var MonthKeys = [12]string{"ene", "feb", "mar", "abr", "may", "jun", "jul", "ago", "sep", "oct", "nov", "dic"}

var monthLabels = [12]string{
	"Enero", "Febrero", "Marzo", "Abril", "Mayo", "Junio",
	"Julio", "Agosto", "Septiembre", "Octubre", "Noviembre", "Diciembre",
}

// Metric is one of the values recorded for every month.
type Metric string

const (
	MetricExecuted    Metric = "ejecutado"
	MetricExecutedPct Metric = "proc_ejecutado"
	MetricAccumulated Metric = "acumulado"
)

var metrics = [3]Metric{MetricExecuted, MetricExecutedPct, MetricAccumulated}

var metricLabels = map[Metric]string{
	MetricExecuted:    "Ejecutado",
	MetricExecutedPct: "% Ejecutado",
	MetricAccumulated: "Acumulado",
}

// Column describes one cell of the monthly tracking grid.
type Column struct {
	Key    string `json:"key"`
	Label  string `json:"label"`
	Month  int    `json:"month"`
	Metric Metric `json:"metric"`
}

// TrackingColumns returns the grid columns, month by month, three metrics per
// month.
func TrackingColumns() []Column {
	cols := make([]Column, 0, len(MonthKeys)*len(metrics))
	for i, m := range MonthKeys {
		for _, metric := range metrics {
			cols = append(cols, Column{
				Key:    columnKey(metric, m),
				Label:  metricLabels[metric] + " " + monthLabels[i],
				Month:  i + 1,
				Metric: metric,
			})
		}
	}
	return cols
}

// ParseColumn resolves a flat column key such as "ejecutado_mar" into its
// month index (0-based) and metric.
func ParseColumn(key string) (int, Metric, bool) {
	for i, m := range MonthKeys {
		for _, metric := range metrics {
			if key == columnKey(metric, m) {
				return i, metric, true
			}
		}
	}
	return 0, "", false
}

func columnKey(metric Metric, month string) string {
	return string(metric) + "_" + month
}

// MonthlyValue holds the figures recorded for one month.
type MonthlyValue struct {
	Executed          *float64 `bson:"executed,omitempty"`
	ExecutedPct       *float64 `bson:"executed_pct,omitempty"`
	Accumulated       *float64 `bson:"accumulated,omitempty"`
	AccumulatedManual bool     `bson:"accumulated_manual,omitempty"`
}

// TrackingRecord is the yearly accountability record (rendición) of an
// indicator.
type TrackingRecord struct {
	ID            int64            `bson:"_id"`
	IndicatorID   int64            `bson:"indicator_id"`
	Year          int              `bson:"year"`
	Programmed    *float64         `bson:"programmed,omitempty"`
	Months        [12]MonthlyValue `bson:"months"`
	Qualitative   string           `bson:"qualitative,omitempty"`
	Modifications string           `bson:"modifications,omitempty"`
	UpdatedAt     time.Time        `bson:"updated_at"`
	// Version counts stored writes. A save only lands on the version it read.
	Version int64 `bson:"version"`
}

// TrackingPatch carries the fields of a save request. A nil value under a
// present key clears the stored value.
type TrackingPatch struct {
	IndicatorID   int64
	Year          int
	SetProgrammed bool
	Programmed    *float64
	Values        map[string]*float64
	Qualitative   *string
	Modifications *string
}

// Apply merges the patch into the record and recomputes derived accumulated
// values. Unknown column keys are rejected.
func (r *TrackingRecord) Apply(p TrackingPatch) error {
	for key := range p.Values {
		if _, _, ok := ParseColumn(key); !ok {
			return fmt.Errorf("%w: unknown column %q", ErrInvalidInput, key)
		}
	}

	if p.SetProgrammed {
		r.Programmed = p.Programmed
	}
	for key, v := range p.Values {
		month, metric, _ := ParseColumn(key)
		mv := &r.Months[month]
		switch metric {
		case MetricExecuted:
			mv.Executed = v
		case MetricExecutedPct:
			mv.ExecutedPct = v
		case MetricAccumulated:
			mv.Accumulated = v
			mv.AccumulatedManual = v != nil
		}
	}
	if p.Qualitative != nil {
		r.Qualitative = *p.Qualitative
	}
	if p.Modifications != nil {
		r.Modifications = *p.Modifications
	}

	r.deriveAccumulated()
	return nil
}

// deriveAccumulated fills the accumulated value of every month that has an
// executed figure and no manually entered accumulated value with the running
// sum of executed values.
func (r *TrackingRecord) deriveAccumulated() {
	var sum float64
	for i := range r.Months {
		mv := &r.Months[i]
		if mv.Executed != nil {
			sum += *mv.Executed
		}
		if mv.AccumulatedManual {
			continue
		}
		if mv.Executed == nil {
			mv.Accumulated = nil
			continue
		}
		total := sum
		mv.Accumulated = &total
	}
}

// ExecutedTotal returns the sum of executed values over the year.
func (r *TrackingRecord) ExecutedTotal() float64 {
	var sum float64
	for _, mv := range r.Months {
		if mv.Executed != nil {
			sum += *mv.Executed
		}
	}
	return sum
}

// MarshalJSON renders the record in the flat column layout used by the
// tracking grid.
func (r TrackingRecord) MarshalJSON() ([]byte, error) {
	out := map[string]any{
		"id_rendicion":            r.ID,
		"id_indicador":            r.IndicatorID,
		"gestion":                 r.Year,
		"programado":              r.Programmed,
		"descripcion_cualitativa": r.Qualitative,
		"modificaciones":          r.Modifications,
	}
	if !r.UpdatedAt.IsZero() {
		out["fecha_actualizacion"] = r.UpdatedAt.UTC()
	}
	for i, m := range MonthKeys {
		mv := r.Months[i]
		out[columnKey(MetricExecuted, m)] = mv.Executed
		out[columnKey(MetricExecutedPct, m)] = mv.ExecutedPct
		out[columnKey(MetricAccumulated, m)] = mv.Accumulated
	}
	return json.Marshal(out)
}
