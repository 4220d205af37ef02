package diagfmt

import (
	"encoding/json"
	"fmt"
	"io"
	"slices"

	"sizebudget/internal/diag"
)

const (
	sarifVersion = "2.1.0"
	sarifSchema  = "https://json.schemastore.org/sarif-2.1.0.json"
)

type sarifLog struct {
	Schema  string     `json:"$schema"`
	Version string     `json:"version"`
	Runs    []sarifRun `json:"runs"`
}

type sarifRun struct {
	Tool        sarifTool         `json:"tool"`
	Invocations []sarifInvocation `json:"invocations"`
	Results     []sarifResult     `json:"results"`
}

type sarifTool struct {
	Driver sarifDriver `json:"driver"`
}

type sarifDriver struct {
	Name           string      `json:"name"`
	Version        string      `json:"version,omitempty"`
	InformationURI string      `json:"informationUri,omitempty"`
	Rules          []sarifRule `json:"rules"`
}

type sarifRule struct {
	ID               string       `json:"id"`
	Name             string       `json:"name"`
	ShortDescription sarifMessage `json:"shortDescription"`
}

type sarifMessage struct {
	Text string `json:"text"`
}

type sarifInvocation struct {
	Arguments                  []string            `json:"arguments,omitempty"`
	ExecutionSuccessful        bool                `json:"executionSuccessful"`
	ToolExecutionNotifications []sarifNotification `json:"toolExecutionNotifications,omitempty"`
}

type sarifNotification struct {
	Level     string          `json:"level"`
	Message   sarifMessage    `json:"message"`
	Locations []sarifLocation `json:"locations,omitempty"`
}

type sarifResult struct {
	RuleID     string            `json:"ruleId"`
	Level      string            `json:"level"`
	Message    sarifMessage      `json:"message"`
	Locations  []sarifLocation   `json:"locations,omitempty"`
	Properties map[string]string `json:"properties,omitempty"`
}

type sarifLocation struct {
	PhysicalLocation sarifPhysicalLocation `json:"physicalLocation"`
}

type sarifPhysicalLocation struct {
	ArtifactLocation sarifArtifactLocation `json:"artifactLocation"`
}

type sarifArtifactLocation struct {
	URI string `json:"uri"`
}

// Sarif форматирует диагностики в SARIF формат (v2.1.0). Каждая диагностика
// становится result с местоположением манифеста; фатальные ошибки
// манифестов попадают в toolExecutionNotifications.
func Sarif(w io.Writer, reports []Report, meta SarifRunMeta) error {
	run := sarifRun{
		Tool: sarifTool{Driver: sarifDriver{
			Name:           meta.ToolName,
			Version:        meta.ToolVersion,
			InformationURI: meta.InformationURI,
		}},
		Results: []sarifResult{},
	}
	inv := sarifInvocation{Arguments: meta.InvocationArgs, ExecutionSuccessful: true}

	var codes []diag.Code
	for _, r := range reports {
		var locs []sarifLocation
		if r.Path != "" {
			uri := formatPath(r.Path, meta.PathMode, meta.BaseDir)
			locs = []sarifLocation{{PhysicalLocation: sarifPhysicalLocation{ArtifactLocation: sarifArtifactLocation{URI: uri}}}}
		}
		items, omitted := r.limited(meta.Max)
		for _, d := range items {
			if !slices.Contains(codes, d.Code) {
				codes = append(codes, d.Code)
			}
			run.Results = append(run.Results, sarifResult{
				RuleID:     d.Code.ID(),
				Level:      d.Severity.Label(),
				Message:    sarifMessage{Text: d.Message},
				Locations:  locs,
				Properties: map[string]string{"label": d.Label},
			})
		}
		if omitted > 0 {
			inv.ToolExecutionNotifications = append(inv.ToolExecutionNotifications, sarifNotification{
				Level:     "note",
				Message:   sarifMessage{Text: fmt.Sprintf("%d more diagnostics not shown", omitted)},
				Locations: locs,
			})
		}
		for _, line := range errorText(r.Err) {
			inv.ExecutionSuccessful = false
			inv.ToolExecutionNotifications = append(inv.ToolExecutionNotifications, sarifNotification{
				Level:     "error",
				Message:   sarifMessage{Text: line},
				Locations: locs,
			})
		}
	}

	slices.Sort(codes)
	run.Tool.Driver.Rules = make([]sarifRule, 0, len(codes))
	for _, c := range codes {
		run.Tool.Driver.Rules = append(run.Tool.Driver.Rules, sarifRule{
			ID:               c.ID(),
			Name:             c.Title(),
			ShortDescription: sarifMessage{Text: c.Title()},
		})
	}
	run.Invocations = []sarifInvocation{inv}

	encoder := json.NewEncoder(w)
	encoder.SetIndent("", "  ")
	return encoder.Encode(sarifLog{Schema: sarifSchema, Version: sarifVersion, Runs: []sarifRun{run}})
}
