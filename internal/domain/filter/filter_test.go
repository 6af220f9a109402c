package filter

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type row struct {
	ts, category, company, status string
}

func (r row) FilterTimestamp() string { return r.ts }
func (r row) FilterCategory() string  { return r.category }
func (r row) FilterCompany() string   { return r.company }
func (r row) FilterStatus() string    { return r.status }

var loc = time.FixedZone("ECT", -5*3600)

// now fijo: viernes 15 de marzo de 2024, 18:00 hora local.
var now = time.Date(2024, time.March, 15, 18, 0, 0, 0, loc)

func sample() []row {
	return []row{
		{"2024-03-15T10:00:00", "1", "Acme", "pendiente"},
		{"2024-03-14T09:00:00", "2", "Acme", "aprobada"},
		{"2024-03-02 08:00:00", "1", "Beta", "rechazado"},
		{"2024-01-20", "3", "Beta", "pendiente"},
		{"2023-12-31T23:00:00", "1", "Gamma", "aprobado"},
		{"", "2", "Gamma", "pendiente"},
	}
}

func TestApply_SinFiltrosDevuelveLaMismaSlice(t *testing.T) {
	items := sample()
	out := Apply(items, Config{Date: DateAll, Category: All, Company: All, Status: All}, now)
	require.Len(t, out, len(items))
	assert.True(t, &out[0] == &items[0], "no debe copiar la lista")

	out = Apply(items, Config{}, now)
	assert.True(t, &out[0] == &items[0], "la configuración vacía equivale a all")
}

func TestApply_FiltrosDeFecha(t *testing.T) {
	items := sample()
	cases := []struct {
		date DateFilter
		want int
	}{
		{DateToday, 1},
		{DateWeek, 2},
		{DateMonth, 3},
		{DateYear, 4},
	}
	for _, tc := range cases {
		t.Run(string(tc.date), func(t *testing.T) {
			assert.Len(t, Apply(items, Config{Date: tc.date}, now), tc.want)
		})
	}
}

func TestApply_FechaPersonalizadaIgnoraHora(t *testing.T) {
	items := []row{{ts: "2024-03-15T10:00:00"}, {ts: "2024-03-15T23:59:59"}}

	out := Apply(items, Config{Date: DateCustom, CustomDate: "2024-03-15"}, now)
	assert.Len(t, out, 2)

	out = Apply(items, Config{Date: DateCustom, CustomDate: "2024-03-16"}, now)
	assert.Empty(t, out)
}

func TestApply_FechaConZonaSeConvierteALocal(t *testing.T) {
	// 2024-03-16T02:00Z es 2024-03-15 21:00 en ECT.
	items := []row{{ts: "2024-03-16T02:00:00Z"}}
	assert.Len(t, Apply(items, Config{Date: DateCustom, CustomDate: "2024-03-15"}, now), 1)
	assert.Len(t, Apply(items, Config{Date: DateToday}, now), 1)
}

func TestApply_FechaPersonalizadaInvalidaNoRestringe(t *testing.T) {
	items := sample()
	out := Apply(items, Config{Date: DateCustom, CustomDate: ""}, now)
	assert.Len(t, out, len(items))
}

func TestApply_ComposicionAND(t *testing.T) {
	items := sample()
	both := Apply(items, Config{Date: DateToday, Status: "pendiente"}, now)
	require.Len(t, both, 1)
	assert.Equal(t, "Acme", both[0].company)

	onlyStatus := Apply(items, Config{Date: DateAll, Status: "pendiente"}, now)
	onlyDate := Apply(items, Config{Date: DateToday, Status: All}, now)
	assert.GreaterOrEqual(t, len(onlyStatus), len(both), "relajar un filtro nunca reduce el resultado")
	assert.GreaterOrEqual(t, len(onlyDate), len(both))

	none := Apply(items, Config{Category: "1", Company: "Beta", Status: "pendiente"}, now)
	assert.Empty(t, none)
}

func TestApply_EmpresaYCategoria(t *testing.T) {
	items := sample()
	assert.Len(t, Apply(items, Config{Company: "Gamma"}, now), 2)
	assert.Len(t, Apply(items, Config{Category: "1"}, now), 3)
}

func TestCompute_EstadisticasIndependientesDelFiltro(t *testing.T) {
	items := sample()
	base := Derive(items, Config{}, now).Statistics
	assert.Equal(t, Statistics{Total: 6, Filtered: 6, Pending: 3, Approved: 2, Rejected: 1}, base)

	for _, cfg := range []Config{
		{Date: DateToday},
		{Status: "aprobada"},
		{Company: "Beta", Date: DateYear},
	} {
		got := Derive(items, cfg, now)
		assert.Equal(t, base.Total, got.Statistics.Total)
		assert.Equal(t, base.Pending, got.Statistics.Pending)
		assert.Equal(t, base.Approved, got.Statistics.Approved)
		assert.Equal(t, base.Rejected, got.Statistics.Rejected)
		assert.Equal(t, len(got.Items), got.Statistics.Filtered)
	}
}

func TestParseTimestamp(t *testing.T) {
	for _, raw := range []string{
		"2024-03-15T10:00:00",
		"2024-03-15T10:00:00.123456",
		"2024-03-15T10:00:00-05:00",
		"2024-03-15 10:00:00",
		"2024-03-15 10:00:00.5-05",
		"2024-03-15",
	} {
		ts, ok := ParseTimestamp(raw, loc)
		if assert.True(t, ok, raw) {
			assert.Equal(t, 15, ts.Day(), raw)
		}
	}
	_, ok := ParseTimestamp("15/03/2024", loc)
	assert.False(t, ok)
}
