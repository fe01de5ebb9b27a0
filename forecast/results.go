package forecast

import "time"

// Results holds a prediction per time point along with its uncertainty
// interval bounds.
type Results struct {
	T        []time.Time `json:"time"`
	Forecast []float64   `json:"forecast"`
	Lower    []float64   `json:"lower"`
	Upper    []float64   `json:"upper"`
}
