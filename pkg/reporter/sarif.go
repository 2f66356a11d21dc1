package reporter

import (
	"bufio"
	"context"
	"encoding/json"
	"fmt"
	"path/filepath"

	"github.com/yaklabco/jslex/pkg/analysis"
)

// SARIF version used by this reporter.
const sarifVersion = "2.1.0"

// SARIF schema URI.
const sarifSchemaURI = "https://raw.githubusercontent.com/oasis-tcs/sarif-spec/master/Schemata/sarif-schema-2.1.0.json"

// Rule identifiers reported in SARIF output.
const (
	RuleLexError  = "lex-error"
	RuleFileError = "file-error"
)

const (
	toolName           = "jslex"
	toolInformationURI = "https://github.com/yaklabco/jslex"
)

// SARIFOutput represents the root SARIF document.
type SARIFOutput struct {
	Schema  string     `json:"$schema"`
	Version string     `json:"version"`
	Runs    []SARIFRun `json:"runs"`
}

// SARIFRun represents a single analysis run.
type SARIFRun struct {
	Tool    SARIFTool     `json:"tool"`
	Results []SARIFResult `json:"results"`
}

// SARIFTool describes the analysis tool.
type SARIFTool struct {
	Driver SARIFDriver `json:"driver"`
}

// SARIFDriver contains tool metadata and rules.
type SARIFDriver struct {
	Name           string      `json:"name"`
	Version        string      `json:"version"`
	InformationURI string      `json:"informationUri"`
	Rules          []SARIFRule `json:"rules"`
}

// SARIFRule describes a reporting rule.
type SARIFRule struct {
	ID               string               `json:"id"`
	Name             string               `json:"name,omitempty"`
	ShortDescription SARIFMultiformatText `json:"shortDescription"`
	DefaultConfig    *SARIFRuleConfig     `json:"defaultConfiguration,omitempty"`
}

// SARIFMultiformatText contains text in multiple formats.
type SARIFMultiformatText struct {
	Text string `json:"text"`
}

// SARIFRuleConfig contains rule configuration.
type SARIFRuleConfig struct {
	Level string `json:"level"`
}

// SARIFResult represents a single result.
type SARIFResult struct {
	RuleID    string          `json:"ruleId"`
	Level     string          `json:"level"`
	Message   SARIFMessage    `json:"message"`
	Locations []SARIFLocation `json:"locations"`
}

// SARIFMessage contains the message text.
type SARIFMessage struct {
	Text string `json:"text"`
}

// SARIFLocation describes a code location.
type SARIFLocation struct {
	PhysicalLocation SARIFPhysicalLocation `json:"physicalLocation"`
}

// SARIFPhysicalLocation contains file path and region.
type SARIFPhysicalLocation struct {
	ArtifactLocation SARIFArtifactLocation `json:"artifactLocation"`
	Region           *SARIFRegion          `json:"region,omitempty"`
}

// SARIFArtifactLocation contains the file URI.
type SARIFArtifactLocation struct {
	URI string `json:"uri"`
}

// SARIFRegion describes the affected text region.
type SARIFRegion struct {
	StartLine   int           `json:"startLine"`
	StartColumn int           `json:"startColumn,omitempty"`
	EndLine     int           `json:"endLine,omitempty"`
	EndColumn   int           `json:"endColumn,omitempty"`
	Snippet     *SARIFMessage `json:"snippet,omitempty"`
}

// SARIFRenderer formats lex errors and file errors as SARIF.
type SARIFRenderer struct {
	opts Options
}

// NewSARIFRenderer creates a new SARIF renderer.
func NewSARIFRenderer(opts Options) *SARIFRenderer {
	return &SARIFRenderer{opts: opts}
}

// Render implements Renderer.
func (r *SARIFRenderer) Render(_ context.Context, report *analysis.Report) (err error) {
	bw := bufio.NewWriterSize(r.opts.Writer, bufWriterSize)
	defer func() {
		if flushErr := bw.Flush(); err == nil && flushErr != nil {
			err = fmt.Errorf("flush output: %w", flushErr)
		}
	}()

	encoder := json.NewEncoder(bw)
	if !r.opts.Compact {
		encoder.SetIndent("", "  ")
	}

	if err := encoder.Encode(r.buildOutput(report)); err != nil {
		return fmt.Errorf("encode SARIF: %w", err)
	}
	return nil
}

func (r *SARIFRenderer) buildOutput(report *analysis.Report) *SARIFOutput {
	version := r.opts.ToolVersion
	if version == "" {
		version = "dev"
	}

	run := SARIFRun{
		Tool: SARIFTool{
			Driver: SARIFDriver{
				Name:           toolName,
				Version:        version,
				InformationURI: toolInformationURI,
				Rules: []SARIFRule{
					{
						ID:               RuleLexError,
						Name:             "LexError",
						ShortDescription: SARIFMultiformatText{Text: "No token matches the input at this position"},
						DefaultConfig:    &SARIFRuleConfig{Level: "error"},
					},
					{
						ID:               RuleFileError,
						Name:             "FileError",
						ShortDescription: SARIFMultiformatText{Text: "The file could not be read or scanned"},
						DefaultConfig:    &SARIFRuleConfig{Level: "error"},
					},
				},
			},
		},
		Results: make([]SARIFResult, 0, len(report.LexErrors)+len(report.FileErrors)),
	}

	for _, lexErr := range report.LexErrors {
		region := &SARIFRegion{
			StartLine:   lexErr.Line,
			StartColumn: lexErr.Column,
		}
		if lexErr.ReachLine > lexErr.Line || (lexErr.ReachLine == lexErr.Line && lexErr.ReachColumn > lexErr.Column) {
			region.EndLine = lexErr.ReachLine
			region.EndColumn = lexErr.ReachColumn
		}
		if lexErr.Preview != "" {
			region.Snippet = &SARIFMessage{Text: lexErr.Preview}
		}

		run.Results = append(run.Results, SARIFResult{
			RuleID:  RuleLexError,
			Level:   "error",
			Message: SARIFMessage{Text: lexErr.Message},
			Locations: []SARIFLocation{{
				PhysicalLocation: SARIFPhysicalLocation{
					ArtifactLocation: SARIFArtifactLocation{URI: artifactURI(lexErr.FilePath)},
					Region:           region,
				},
			}},
		})
	}

	for _, fileErr := range report.FileErrors {
		run.Results = append(run.Results, SARIFResult{
			RuleID:  RuleFileError,
			Level:   "error",
			Message: SARIFMessage{Text: fileErr.Message},
			Locations: []SARIFLocation{{
				PhysicalLocation: SARIFPhysicalLocation{
					ArtifactLocation: SARIFArtifactLocation{URI: artifactURI(fileErr.FilePath)},
				},
			}},
		})
	}

	return &SARIFOutput{
		Schema:  sarifSchemaURI,
		Version: sarifVersion,
		Runs:    []SARIFRun{run},
	}
}

// artifactURI converts a file path to the forward-slash form SARIF expects.
func artifactURI(path string) string {
	return filepath.ToSlash(path)
}
