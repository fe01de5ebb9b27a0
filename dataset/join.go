package dataset

import "time"

// Observation is one row of the unified long table. Deaths is nil when the
// deaths table has no row for the (region, date) key, which is distinct from
// a reported zero.
type Observation struct {
	Province  string    `json:"province,omitempty"`
	Country   string    `json:"country"`
	Date      time.Time `json:"date"`
	Confirmed int64     `json:"confirmed"`
	Deaths    *int64    `json:"deaths"`
}

type joinKey struct {
	province string
	country  string
	date     time.Time
}

// LeftJoin combines the confirmed and deaths long tables keyed on
// (province, country, date) with confirmed as the driving side. Rows present
// only in deaths are dropped. Duplicate keys are not deduplicated: the result
// has one row per matching key pair.
func LeftJoin(confirmed, deaths []MetricRow) []Observation {
	deathsByKey := make(map[joinKey][]int64, len(deaths))
	for _, row := range deaths {
		key := joinKey{row.Province, row.Country, row.Date}
		deathsByKey[key] = append(deathsByKey[key], row.Value)
	}

	obs := make([]Observation, 0, len(confirmed))
	for _, row := range confirmed {
		key := joinKey{row.Province, row.Country, row.Date}
		matches := deathsByKey[key]
		if len(matches) == 0 {
			obs = append(obs, Observation{
				Province:  row.Province,
				Country:   row.Country,
				Date:      row.Date,
				Confirmed: row.Value,
			})
			continue
		}
		for _, val := range matches {
			d := val
			obs = append(obs, Observation{
				Province:  row.Province,
				Country:   row.Country,
				Date:      row.Date,
				Confirmed: row.Value,
				Deaths:    &d,
			})
		}
	}
	return obs
}
