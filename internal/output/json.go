package output

import (
	"encoding/json"

	"github.com/searchlens/searchlens/internal/core"
)

// JSONFormatter renders records as JSON.
type JSONFormatter struct {
	Indent bool
}

// FormatInvestigation renders an investigation as JSON.
func (f *JSONFormatter) FormatInvestigation(inv *core.Investigation) (string, error) {
	if inv == nil {
		return "", nil
	}

	var (
		data []byte
		err  error
	)

	if f.Indent {
		data, err = json.MarshalIndent(inv, "", "  ")
	} else {
		data, err = json.Marshal(inv)
	}
	if err != nil {
		return "", err
	}

	return string(data), nil
}
