// Package reporting contiene cálculos puros sobre ventas (sin acceso a datos).
package reporting

import (
	"time"

	"github.com/shopspring/decimal"

	"github.com/jhoicas/gestion-comercial-api/internal/domain/entity"
)

// DefaultDailyDays tamaño de la ventana de ventas diarias si no se indica otro.
const DefaultDailyDays = 7

// DayTotal ingreso y número de ventas completadas de un día calendario.
type DayTotal struct {
	Date    time.Time // 00:00 del día en la zona del reporte
	Revenue decimal.Decimal
	Count   int
}

// StartOfDay trunca t a las 00:00 del mismo día en loc.
func StartOfDay(t time.Time, loc *time.Location) time.Time {
	t = t.In(loc)
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, loc)
}

// DailyWindow devuelve el inicio del primer día de la ventana de `days` días calendario
// que termina hoy (hoy incluido). days <= 0 usa DefaultDailyDays.
func DailyWindow(now time.Time, days int, loc *time.Location) time.Time {
	if days <= 0 {
		days = DefaultDailyDays
	}
	return StartOfDay(now, loc).AddDate(0, 0, -(days - 1))
}

// BucketDaily agrupa por día las ventas completadas con fecha en [DailyWindow, now].
// Devuelve exactamente `days` entradas en orden cronológico ascendente; los días sin
// ventas quedan en cero. Las ventas fuera de la ventana o no completadas se ignoran.
func BucketDaily(sales []*entity.Sale, now time.Time, days int, loc *time.Location) []DayTotal {
	if days <= 0 {
		days = DefaultDailyDays
	}
	if loc == nil {
		loc = time.UTC
	}
	start := DailyWindow(now, days, loc)

	totals := make([]DayTotal, days)
	index := make(map[int64]int, days)
	for i := 0; i < days; i++ {
		day := start.AddDate(0, 0, i)
		totals[i] = DayTotal{Date: day, Revenue: decimal.Zero}
		index[day.Unix()] = i
	}

	for _, s := range sales {
		if s == nil || !s.IsCompleted() {
			continue
		}
		if s.Date.Before(start) || s.Date.After(now) {
			continue
		}
		i, ok := index[StartOfDay(s.Date, loc).Unix()]
		if !ok {
			continue
		}
		totals[i].Revenue = totals[i].Revenue.Add(s.TotalAmount)
		totals[i].Count++
	}
	return totals
}

// SumTotals suma ingresos y conteos de una serie diaria.
func SumTotals(days []DayTotal) (decimal.Decimal, int) {
	revenue := decimal.Zero
	count := 0
	for _, d := range days {
		revenue = revenue.Add(d.Revenue)
		count += d.Count
	}
	return revenue, count
}
