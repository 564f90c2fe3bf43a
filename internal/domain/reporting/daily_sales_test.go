package reporting_test

import (
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/gestion-comercial-api/internal/domain/entity"
	"github.com/jhoicas/gestion-comercial-api/internal/domain/reporting"
)

func sale(date time.Time, total int64, status string) *entity.Sale {
	return &entity.Sale{Date: date, TotalAmount: decimal.NewFromInt(total), Status: status}
}

func TestDailyWindow_IncluyeHoy(t *testing.T) {
	now := time.Date(2026, 10, 19, 15, 30, 0, 0, time.UTC)

	start := reporting.DailyWindow(now, 7, time.UTC)

	assert.Equal(t, time.Date(2026, 10, 13, 0, 0, 0, 0, time.UTC), start)
	assert.Equal(t, start, reporting.DailyWindow(now, 0, time.UTC), "days <= 0 usa el valor por defecto")
}

func TestBucketDaily_SieteEntradasOrdenadas(t *testing.T) {
	now := time.Date(2026, 10, 19, 15, 30, 0, 0, time.UTC)

	days := reporting.BucketDaily(nil, now, 7, time.UTC)

	require.Len(t, days, 7)
	for i, d := range days {
		assert.True(t, d.Revenue.IsZero())
		assert.Equal(t, 0, d.Count)
		if i > 0 {
			assert.True(t, d.Date.After(days[i-1].Date), "orden cronológico ascendente")
		}
	}
	assert.Equal(t, time.Date(2026, 10, 19, 0, 0, 0, 0, time.UTC), days[6].Date)
}

func TestBucketDaily_AgrupaSoloCompletadasDentroDeLaVentana(t *testing.T) {
	now := time.Date(2026, 10, 19, 15, 30, 0, 0, time.UTC)
	sales := []*entity.Sale{
		sale(time.Date(2026, 10, 19, 9, 0, 0, 0, time.UTC), 100, entity.SaleStatusCompleted),
		sale(time.Date(2026, 10, 19, 10, 0, 0, 0, time.UTC), 50, entity.SaleStatusCompleted),
		sale(time.Date(2026, 10, 13, 0, 0, 0, 0, time.UTC), 30, entity.SaleStatusCompleted),
		sale(time.Date(2026, 10, 12, 23, 59, 0, 0, time.UTC), 999, entity.SaleStatusCompleted), // fuera de la ventana
		sale(time.Date(2026, 10, 19, 16, 0, 0, 0, time.UTC), 999, entity.SaleStatusCompleted),  // futuro
		sale(time.Date(2026, 10, 18, 9, 0, 0, 0, time.UTC), 999, entity.SaleStatusPending),
		sale(time.Date(2026, 10, 18, 9, 0, 0, 0, time.UTC), 999, entity.SaleStatusCancelled),
	}

	days := reporting.BucketDaily(sales, now, 7, time.UTC)

	require.Len(t, days, 7)
	assert.True(t, decimal.NewFromInt(30).Equal(days[0].Revenue))
	assert.Equal(t, 1, days[0].Count)
	assert.True(t, decimal.NewFromInt(150).Equal(days[6].Revenue))
	assert.Equal(t, 2, days[6].Count)
	assert.True(t, days[5].Revenue.IsZero())

	revenue, count := reporting.SumTotals(days)
	assert.True(t, decimal.NewFromInt(180).Equal(revenue))
	assert.Equal(t, 3, count)
}

func TestBucketDaily_RespetaZonaHoraria(t *testing.T) {
	bogota := time.FixedZone("COT", -5*60*60)
	now := time.Date(2026, 10, 19, 12, 0, 0, 0, bogota)
	// 02:00 UTC del 19 son las 21:00 del 18 en Bogotá
	s := sale(time.Date(2026, 10, 19, 2, 0, 0, 0, time.UTC), 10, entity.SaleStatusCompleted)

	days := reporting.BucketDaily([]*entity.Sale{s}, now, 2, bogota)

	require.Len(t, days, 2)
	assert.Equal(t, 1, days[0].Count)
	assert.Equal(t, 0, days[1].Count)
}
