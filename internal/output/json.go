package output

import (
	"encoding/json"
	"fmt"
	"os"

	"github.com/dotcommander/agentlens/internal/recommend"
	"github.com/dotcommander/agentlens/internal/report"
)

// JSONFormatter formats an audit report as JSON.
type JSONFormatter struct {
	indent     bool
	outputFile string
}

// NewJSONFormatter creates a new JSONFormatter.
func NewJSONFormatter(indent bool, outputFile string) *JSONFormatter {
	return &JSONFormatter{
		indent:     indent,
		outputFile: outputFile,
	}
}

// jsonReport is the complete JSON document.
type jsonReport struct {
	Tool            string                     `json:"tool"`
	Version         string                     `json:"version"`
	Result          report.ScoreResult         `json:"result"`
	Recommendations []recommend.Recommendation `json:"recommendations"`
}

// Format writes the report to the output file, or stdout when none is set.
func (f *JSONFormatter) Format(r Report) error {
	doc := jsonReport{
		Tool:            "agentlens",
		Version:         "1.0.0",
		Result:          r.Result,
		Recommendations: r.Recommendations,
	}

	var jsonBytes []byte
	var err error
	if f.indent {
		jsonBytes, err = json.MarshalIndent(doc, "", "  ")
	} else {
		jsonBytes, err = json.Marshal(doc)
	}
	if err != nil {
		return fmt.Errorf("error marshaling JSON: %w", err)
	}

	if f.outputFile != "" {
		if err := os.WriteFile(f.outputFile, jsonBytes, 0o644); err != nil {
			return fmt.Errorf("error writing to file %s: %w", f.outputFile, err)
		}
		return nil
	}
	fmt.Println(string(jsonBytes))
	return nil
}
