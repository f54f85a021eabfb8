package domain

import (
	"encoding/json"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestTrackingColumns(t *testing.T) {
	cols := TrackingColumns()

	require.Len(t, cols, 36)
	assert.Equal(t, Column{Key: "ejecutado_ene", Label: "Ejecutado Enero", Month: 1, Metric: MetricExecuted}, cols[0])
	assert.Equal(t, "proc_ejecutado_ene", cols[1].Key)
	assert.Equal(t, "acumulado_ene", cols[2].Key)
	assert.Equal(t, "acumulado_dic", cols[35].Key)
	assert.Equal(t, 12, cols[35].Month)

	seen := make(map[string]bool)
	for _, c := range cols {
		assert.False(t, seen[c.Key], "duplicate column %s", c.Key)
		seen[c.Key] = true
		month, metric, ok := ParseColumn(c.Key)
		require.True(t, ok)
		assert.Equal(t, c.Month-1, month)
		assert.Equal(t, c.Metric, metric)
	}
}

func TestParseColumn_Unknown(t *testing.T) {
	_, _, ok := ParseColumn("ejecutado_xyz")
	assert.False(t, ok)
	_, _, ok = ParseColumn("id_indicador")
	assert.False(t, ok)
}

func TestTrackingRecord_ApplyDerivesAccumulated(t *testing.T) {
	var rec TrackingRecord
	err := rec.Apply(TrackingPatch{
		SetProgrammed: true,
		Programmed:    ptr(100.0),
		Values: map[string]*float64{
			"ejecutado_ene": ptr(10.0),
			"ejecutado_feb": ptr(15.0),
			"ejecutado_abr": ptr(5.0),
		},
	})
	require.NoError(t, err)

	assert.Equal(t, 100.0, *rec.Programmed)
	assert.Equal(t, 10.0, *rec.Months[0].Accumulated)
	assert.Equal(t, 25.0, *rec.Months[1].Accumulated)
	assert.Nil(t, rec.Months[2].Accumulated)
	assert.Equal(t, 30.0, *rec.Months[3].Accumulated)
	assert.Equal(t, 30.0, rec.ExecutedTotal())
}

func TestTrackingRecord_ManualAccumulatedKept(t *testing.T) {
	var rec TrackingRecord
	require.NoError(t, rec.Apply(TrackingPatch{Values: map[string]*float64{
		"ejecutado_ene": ptr(10.0),
		"acumulado_ene": ptr(12.0),
	}}))
	assert.Equal(t, 12.0, *rec.Months[0].Accumulated)

	require.NoError(t, rec.Apply(TrackingPatch{Values: map[string]*float64{"ejecutado_ene": ptr(20.0)}}))
	assert.Equal(t, 12.0, *rec.Months[0].Accumulated)

	// Clearing the manual value hands the month back to derivation.
	require.NoError(t, rec.Apply(TrackingPatch{Values: map[string]*float64{"acumulado_ene": nil}}))
	assert.Equal(t, 20.0, *rec.Months[0].Accumulated)
}

func TestTrackingRecord_ApplyRejectsUnknownColumn(t *testing.T) {
	var rec TrackingRecord
	err := rec.Apply(TrackingPatch{Values: map[string]*float64{
		"ejecutado_ene":        ptr(1.0),
		"estado; DROP TABLE x": ptr(1.0),
	}})

	assert.True(t, errors.Is(err, ErrInvalidInput))
	assert.Nil(t, rec.Months[0].Executed)
}

func TestTrackingRecord_MarshalJSONFlat(t *testing.T) {
	rec := TrackingRecord{ID: 3, IndicatorID: 7, Year: 2025, Qualitative: "ok"}
	require.NoError(t, rec.Apply(TrackingPatch{Values: map[string]*float64{"ejecutado_mar": ptr(4.5)}}))

	raw, err := json.Marshal(rec)
	require.NoError(t, err)

	var got map[string]any
	require.NoError(t, json.Unmarshal(raw, &got))
	assert.EqualValues(t, 7, got["id_indicador"])
	assert.EqualValues(t, 2025, got["gestion"])
	assert.EqualValues(t, 4.5, got["ejecutado_mar"])
	assert.EqualValues(t, 4.5, got["acumulado_mar"])
	assert.Nil(t, got["ejecutado_ene"])
	assert.Equal(t, "ok", got["descripcion_cualitativa"])
}
