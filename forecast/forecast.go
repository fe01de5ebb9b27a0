// Package forecast fits an additive model to a daily univariate series and
// generates predictions with uncertainty intervals. The model decomposes the
// series into an intercept, a linear trend, Fourier seasonal components, and
// optional holiday indicator regressors, fit with ordinary least squares.
package forecast

import (
	"errors"
	"fmt"
	"math"
	"time"

	"github.com/andersy005/covidtrend/timedataset"
	"gonum.org/v1/gonum/floats"
	"gonum.org/v1/gonum/stat"
)

var (
	ErrInsufficientTrainingData = errors.New("need at least two distinct observation dates")
	ErrUntrainedForecast        = errors.New("forecast has not been trained yet")
)

// Forecast represents a single additive model of a univariate time series.
type Forecast struct {
	opt *Options

	trainingData *timedataset.TimeDataset
	trainStart   time.Time
	trainEnd     time.Time

	labels      []string
	model       olsRegression
	residual    []float64
	residualStd float64
	trained     bool
}

// New creates a forecast instance with the given options, falling back to the
// defaults when nil.
func New(opt *Options) *Forecast {
	if opt == nil {
		opt = NewDefaultOptions()
	}
	return &Forecast{opt: opt}
}

// Fit trains the model on the input series. The time points must be strictly
// increasing and at least two observations are required.
func (f *Forecast) Fit(t []time.Time, y []float64) error {
	td, err := timedataset.NewUnivariateDataset(t, y)
	if err != nil {
		return fmt.Errorf("unable to create training dataset, %w", err)
	}
	if len(td.T) < 2 {
		return ErrInsufficientTrainingData
	}

	f.trainingData = td.Copy()
	f.trainStart = td.T[0]
	f.trainEnd = td.T[len(td.T)-1]

	cols := pruneConstant(f.opt.buildFeatures(td.T, f.trainStart, f.trainEnd))
	// drop trailing regressors when the design is underdetermined
	for len(cols)+1 > len(td.T) {
		cols = cols[:len(cols)-1]
	}
	f.labels = make([]string, 0, len(cols))
	for _, col := range cols {
		f.labels = append(f.labels, col.label)
	}

	x := designMatrix(cols, len(td.T))
	if err := f.model.fit(x, td.Y); err != nil {
		return fmt.Errorf("unable to fit series, %w", err)
	}
	f.trained = true

	predicted, err := f.Predict(td.T)
	if err != nil {
		f.trained = false
		return fmt.Errorf("unable to get predicted values from training set, %w", err)
	}
	f.residual = make([]float64, len(td.Y))
	copy(f.residual, td.Y)
	floats.Sub(f.residual, predicted)
	f.residualStd = stat.StdDev(f.residual, nil)
	if math.IsNaN(f.residualStd) {
		f.residualStd = 0
	}

	return nil
}

// Predict generates a point estimate for every input time point.
func (f *Forecast) Predict(t []time.Time) ([]float64, error) {
	if !f.trained {
		return nil, ErrUntrainedForecast
	}
	cols := filterByLabel(f.opt.buildFeatures(t, f.trainStart, f.trainEnd), f.labels)
	x := designMatrix(cols, len(t))
	return f.model.predict(x)
}

// PredictInterval generates a point estimate with lower and upper bounds for
// every input time point. The interval half-width is the z-scaled training
// residual standard deviation, widened for time points past the training
// range so uncertainty grows with forecast distance. The lower bound is
// clamped at zero, counts cannot go negative, unless the point estimate
// itself sits below zero.
func (f *Forecast) PredictInterval(t []time.Time) (*Results, error) {
	predicted, err := f.Predict(t)
	if err != nil {
		return nil, err
	}

	r := &Results{
		T:        t,
		Forecast: predicted,
		Lower:    make([]float64, len(predicted)),
		Upper:    make([]float64, len(predicted)),
	}
	for i, tPnt := range t {
		width := f.opt.IntervalZscore * f.residualStd * f.intervalGrowth(tPnt)
		lower := predicted[i] - width
		if lower < 0 {
			lower = math.Min(predicted[i], 0)
		}
		r.Lower[i] = lower
		r.Upper[i] = predicted[i] + width
	}
	return r, nil
}

func (f *Forecast) intervalGrowth(tPnt time.Time) float64 {
	if !tPnt.After(f.trainEnd) {
		return 1.0
	}
	growthDays := f.opt.IntervalGrowthDays
	if growthDays <= 0 {
		growthDays = 30
	}
	daysPast := tPnt.Sub(f.trainEnd).Hours() / 24.0
	return math.Sqrt(1.0 + daysPast/growthDays)
}

// Residuals returns the difference between the training data and the fit.
func (f *Forecast) Residuals() []float64 {
	res := make([]float64, len(f.residual))
	copy(res, f.residual)
	return res
}

// TrainingData returns the series used to fit the current model.
func (f *Forecast) TrainingData() *timedataset.TimeDataset {
	return f.trainingData
}

// FeatureLabels returns the regressor labels retained by the fit.
func (f *Forecast) FeatureLabels() []string {
	labels := make([]string, len(f.labels))
	copy(labels, f.labels)
	return labels
}
