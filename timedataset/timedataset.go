// Package timedataset holds a univariate time series used for model training.
package timedataset

import (
	"errors"
	"fmt"
	"time"
)

var (
	ErrNoTrainingData     = errors.New("no training data")
	ErrNonMonotonic       = errors.New("time feature is not strictly increasing")
	ErrDatasetLenMismatch = errors.New("time feature has a different length than observations")
)

// TimeDataset represents a time series storing a slice of time points and values.
// Both must be of the same length and the time points strictly increasing.
type TimeDataset struct {
	T []time.Time
	Y []float64
}

// NewUnivariateDataset returns an instance of a TimeDataset given a time and value slice.
func NewUnivariateDataset(t []time.Time, y []float64) (*TimeDataset, error) {
	if len(y) == 0 {
		return nil, ErrNoTrainingData
	}
	if len(t) != len(y) {
		return nil, fmt.Errorf(
			"time feature has length of %d, but values has a length of %d, %w",
			len(t), len(y), ErrDatasetLenMismatch,
		)
	}

	var lastT time.Time
	for i := 0; i < len(t); i++ {
		currT := t[i]
		if currT.Before(lastT) || currT.Equal(lastT) {
			return nil, fmt.Errorf("non-monotonic at %d, %w", i, ErrNonMonotonic)
		}
		lastT = currT
	}

	tSeries := make([]time.Time, len(t))
	ySeries := make([]float64, len(t))
	copy(tSeries, t)
	copy(ySeries, y)
	td := &TimeDataset{
		T: tSeries,
		Y: ySeries,
	}

	return td, nil
}

// Copy returns a deep copy of the dataset.
func (td *TimeDataset) Copy() *TimeDataset {
	tSeries := make([]time.Time, len(td.T))
	ySeries := make([]float64, len(td.T))
	copy(tSeries, td.T)
	copy(ySeries, td.Y)
	return &TimeDataset{
		T: tSeries,
		Y: ySeries,
	}
}

// Span returns the time covered between the first and last observation.
func (td *TimeDataset) Span() time.Duration {
	if len(td.T) == 0 {
		return 0
	}
	return td.T[len(td.T)-1].Sub(td.T[0])
}

// Horizon returns the observed time points followed by days additional
// consecutive daily time points immediately after the last observation.
func (td *TimeDataset) Horizon(days int) []time.Time {
	t := make([]time.Time, 0, len(td.T)+days)
	t = append(t, td.T...)
	if len(td.T) == 0 || days <= 0 {
		return t
	}
	lastTime := td.T[len(td.T)-1]
	for i := 1; i <= days; i++ {
		t = append(t, lastTime.AddDate(0, 0, i))
	}
	return t
}
