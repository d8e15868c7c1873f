package output

import (
	"encoding/json"

	"github.com/rgehrsitz/tedori/internal/domain"
)

// JSONFormatter emits the whole report, every result field included.
type JSONFormatter struct {
	Pretty bool
}

func (j JSONFormatter) Name() string { return "json" }

func (j JSONFormatter) Format(report *domain.Report) ([]byte, error) {
	if j.Pretty {
		return json.MarshalIndent(report, "", "  ")
	}
	return json.Marshal(report)
}
