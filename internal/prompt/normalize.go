package prompt

import (
	"fmt"

	"github.com/abhisek/fhirtestgen/internal/table"
)

// normalize turns in into template data. Required parameters that are
// absent are left out of the map so the template reports them.
func normalize(in Input) (map[string]any, error) {
	data := make(map[string]any, 8)
	if in.Layout != "" {
		data["Layout"] = in.Layout
	}
	if in.Resource != "" {
		data["Resource"] = in.Resource
	}

	if in.Mapping != nil {
		mapping, err := in.Mapping.Normalize().EncodeInstances()
		if err != nil {
			return nil, fmt.Errorf("encode mapping: %w", err)
		}
		data["Mapping"] = mapping
	}

	testCases, err := in.TestCases.Normalize().EncodeRecords()
	if err != nil {
		return nil, fmt.Errorf("encode test cases: %w", err)
	}
	data["TestCases"] = testCases

	samples, err := in.InputSamples.Normalize().EncodeRecords()
	if err != nil {
		return nil, fmt.Errorf("encode input samples: %w", err)
	}
	data["InputSamples"] = samples

	changeLog, err := renderChangeLog(in.ChangeLog)
	if err != nil {
		return nil, err
	}
	data["ChangeLog"] = changeLog

	return data, nil
}

func renderChangeLog(v any) (string, error) {
	if s, ok := v.(string); ok {
		return s, nil
	}
	out, err := table.EncodeValue(table.NormalizeValue(v))
	if err != nil {
		return "", fmt.Errorf("encode change log: %w", err)
	}
	return out, nil
}
