package forecast

import (
	"time"

	"github.com/rickar/cal/v2"
	"github.com/rickar/cal/v2/us"
)

// USHolidays returns the federal holidays that show up as reporting artifacts
// in US case counts.
func USHolidays() []*cal.Holiday {
	return []*cal.Holiday{
		us.NewYear,
		us.MemorialDay,
		us.IndependenceDay,
		us.LaborDay,
		us.ThanksgivingDay,
		us.ChristmasDay,
	}
}

// holidayIndicator marks every time point within window of an observed
// holiday date with 1.0, covering each year spanned by t.
func holidayIndicator(hol *cal.Holiday, t []time.Time, window time.Duration) []float64 {
	data := make([]float64, len(t))
	if len(t) == 0 {
		return data
	}

	startYear := t[0].Year()
	endYear := t[len(t)-1].Year()
	observedDates := make([]time.Time, 0, endYear-startYear+1)
	for year := startYear; year <= endYear; year++ {
		_, observed := hol.Calc(year)
		observedDates = append(observedDates, observed)
	}

	for i, tPnt := range t {
		for _, observed := range observedDates {
			diff := tPnt.Sub(observed)
			if diff < 0 {
				diff = -diff
			}
			if diff <= window {
				data[i] = 1.0
				break
			}
		}
	}
	return data
}
