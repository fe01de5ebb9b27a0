package forecast

import (
	"fmt"
	"math"
	"strings"
	"time"

	"github.com/rickar/cal/v2"
	"gonum.org/v1/gonum/mat"
)

const labelTrend = "trend"

// featureColumn is one labeled regressor column of the design matrix.
type featureColumn struct {
	label string
	data  []float64
}

// buildFeatures generates the candidate regressor columns for the given time
// points. The training range fixes the trend scaling and which seasonal
// periods apply, so the same labels come back for any prediction time slice.
func (o *Options) buildFeatures(t []time.Time, trainStart, trainEnd time.Time) []featureColumn {
	cols := make([]featureColumn, 0, 1+2*len(o.SeasonalityConfigs)+len(o.Holidays))

	span := trainEnd.Sub(trainStart)
	trend := make([]float64, len(t))
	for i, tPnt := range t {
		trend[i] = float64(tPnt.Unix()-trainStart.Unix()) / span.Seconds()
	}
	cols = append(cols, featureColumn{label: labelTrend, data: trend})

	for _, seasCfg := range o.SeasonalityConfigs {
		// skip seasonal components longer than the observed range
		if seasCfg.Orders <= 0 || seasCfg.Period <= 0 || seasCfg.Period > span {
			continue
		}
		periodSec := seasCfg.Period.Seconds()
		for order := 1; order <= seasCfg.Orders; order++ {
			sinFeat := make([]float64, len(t))
			cosFeat := make([]float64, len(t))
			for i, tPnt := range t {
				rad := 2.0 * math.Pi * float64(order) * float64(tPnt.Unix()) / periodSec
				sinFeat[i] = math.Sin(rad)
				cosFeat[i] = math.Cos(rad)
			}
			cols = append(cols,
				featureColumn{label: fmt.Sprintf("%s_%dsin", seasCfg.Name, order), data: sinFeat},
				featureColumn{label: fmt.Sprintf("%s_%dcos", seasCfg.Name, order), data: cosFeat},
			)
		}
	}

	for _, hol := range o.Holidays {
		cols = append(cols, featureColumn{
			label: holidayLabel(hol),
			data:  holidayIndicator(hol, t, o.HolidayWindow),
		})
	}

	return cols
}

func holidayLabel(hol *cal.Holiday) string {
	return "hol_" + strings.ReplaceAll(strings.ToLower(hol.Name), " ", "_")
}

// pruneConstant removes zero-variance columns, e.g. a holiday indicator that
// never fires inside the training range. A constant regressor duplicates the
// intercept and makes the QR factorization singular.
func pruneConstant(cols []featureColumn) []featureColumn {
	kept := make([]featureColumn, 0, len(cols))
	for _, col := range cols {
		constant := true
		for i := 1; i < len(col.data); i++ {
			if col.data[i] != col.data[0] {
				constant = false
				break
			}
		}
		if !constant {
			kept = append(kept, col)
		}
	}
	return kept
}

// filterByLabel keeps the columns whose labels were retained at fit time, in
// fit order.
func filterByLabel(cols []featureColumn, labels []string) []featureColumn {
	byLabel := make(map[string]featureColumn, len(cols))
	for _, col := range cols {
		byLabel[col.label] = col
	}
	kept := make([]featureColumn, 0, len(labels))
	for _, label := range labels {
		if col, exists := byLabel[label]; exists {
			kept = append(kept, col)
		}
	}
	return kept
}

// designMatrix assembles columns into an m x (n+1) matrix with a leading
// intercept column of ones.
func designMatrix(cols []featureColumn, m int) *mat.Dense {
	n := len(cols) + 1
	x := mat.NewDense(m, n, nil)
	for i := 0; i < m; i++ {
		x.Set(i, 0, 1.0)
	}
	for j, col := range cols {
		x.SetCol(j+1, col.data)
	}
	return x
}
