package covidtrend

import (
	"fmt"
	"os"

	"github.com/goccy/go-json"
)

// ExportJSON writes the report's tables as an indented JSON document. The
// raw observation table is left out; it is available through the SQLite
// artifact when one is requested.
func (r *Report) ExportJSON(path string) error {
	data, err := json.MarshalIndent(r, "", "  ")
	if err != nil {
		return fmt.Errorf("unable to marshal report, %w", err)
	}
	return os.WriteFile(path, data, 0o644)
}
