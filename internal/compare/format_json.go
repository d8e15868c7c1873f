package compare

import (
	"encoding/json"
)

// JSONFormatter formats a comparison report as JSON
type JSONFormatter struct {
	Pretty bool
}

// Format generates JSON output for the report
func (jf *JSONFormatter) Format(report *ComparisonReport) (string, error) {
	var data []byte
	var err error

	if jf.Pretty {
		data, err = json.MarshalIndent(report, "", "  ")
	} else {
		data, err = json.Marshal(report)
	}

	if err != nil {
		return "", err
	}

	return string(data), nil
}
