// Package report provides reporting functionality for RSV.
package report

import (
	"encoding/json"
	"io"
	"time"

	"github.com/kapil1024/Redfish-Service-Validator/internal/schema"
)

// JSONReporter implements schema.Reporter for JSON output.
type JSONReporter struct{}

type jsonCase struct {
	Path  string `json:"path"`
	Type  string `json:"type"`
	Error string `json:"error,omitempty"`
}

type jsonTypeResults struct {
	Passed []jsonCase `json:"passed"`
	Failed []jsonCase `json:"failed"`
}

type jsonOutput struct {
	StartTime string `json:"startTime"`
	EndTime   string `json:"endTime"`
	Duration  string `json:"duration"`
	Stats     struct {
		TotalPassed int `json:"totalPassed"`
		TotalFailed int `json:"totalFailed"`
	} `json:"stats"`
	Results map[string]jsonTypeResults `json:"results"`
	Links   []string                   `json:"links,omitempty"`
}

func (jr *JSONReporter) Write(w io.Writer, r *schema.ValidationReport) error {
	out := jsonOutput{
		StartTime: r.StartTime.Format(time.RFC3339),
		EndTime:   r.EndTime.Format(time.RFC3339),
		Duration:  r.EndTime.Sub(r.StartTime).String(),
		Results:   make(map[string]jsonTypeResults),
		Links:     r.Links(),
	}

	for tn, cases := range r.PassedCases {
		key := displayName(tn)
		res := out.Results[key]
		for _, c := range cases {
			res.Passed = append(res.Passed, jsonCase{
				Path: c.Path,
				Type: string(c.TypeName),
			})
		}
		out.Results[key] = res
		out.Stats.TotalPassed += len(cases)
	}

	for tn, cases := range r.FailedCases {
		key := displayName(tn)
		res := out.Results[key]
		for _, c := range cases {
			errMsg := ""
			if c.Err != nil {
				errMsg = c.Err.Error()
			}
			res.Failed = append(res.Failed, jsonCase{
				Path:  c.Path,
				Type:  string(c.TypeName),
				Error: errMsg,
			})
		}
		out.Results[key] = res
		out.Stats.TotalFailed += len(cases)
	}

	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(out)
}
