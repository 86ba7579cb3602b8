package output

import (
	"encoding/json"

	"github.com/rpgo/savings-projector/internal/domain"
)

// JSONFormatter renders the full comparison, projections included, as indented JSON.
type JSONFormatter struct{}

func (j JSONFormatter) Name() string { return "json" }

func (j JSONFormatter) Format(results *domain.ScenarioComparison) ([]byte, error) {
	return json.MarshalIndent(results, "", "  ")
}
