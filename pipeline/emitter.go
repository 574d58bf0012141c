package pipeline

import (
	"encoding/json"
	"fmt"
	"io"
	"time"

	"github.com/pterm/pterm"
)

// Emitter is pluggable batch progress reporting. Implementations include:
//   - CLIEmitter: pretty-printed terminal output using pterm
//   - JSONEmitter: line-delimited JSON events for machine consumers
type Emitter interface {
	// EmitFile reports one finished file.
	EmitFile(res FileResult)
	// EmitError reports a failed file.
	EmitError(path string, err error)
	// EmitSummary reports the batch outcome after all files were attempted.
	EmitSummary(sum Summary)
}

// NopEmitter discards all events. Used when a command renders its own
// output, e.g. the stats table.
type NopEmitter struct{}

func (NopEmitter) EmitFile(FileResult)     {}
func (NopEmitter) EmitError(string, error) {}
func (NopEmitter) EmitSummary(Summary)     {}

// CLIEmitter outputs pretty-printed progress to the terminal.
type CLIEmitter struct {
	verbosity int
}

// NewCLIEmitter creates a terminal progress emitter.
func NewCLIEmitter(verbosity int) *CLIEmitter {
	return &CLIEmitter{verbosity: verbosity}
}

func (e *CLIEmitter) EmitFile(res FileResult) {
	status := pterm.Gray("unchanged")
	if res.Changed {
		status = pterm.Green("formatted")
	}
	pterm.Printf("%s  %s (%s rules", status, res.Path, pterm.Green(fmt.Sprintf("%d", res.Total)))
	if res.Removed > 0 {
		pterm.Printf(", %s redundant removed", pterm.Yellow(fmt.Sprintf("%d", res.Removed)))
	}
	if res.Invalid > 0 {
		pterm.Printf(", %s invalid skipped", pterm.Red(fmt.Sprintf("%d", res.Invalid)))
	}
	pterm.Println(")")
}

func (e *CLIEmitter) EmitError(path string, err error) {
	pterm.Error.Printf("%s: %v\n", path, err)
}

func (e *CLIEmitter) EmitSummary(sum Summary) {
	if sum.Failed > 0 {
		pterm.Error.Printf("%d of %d files failed\n", sum.Failed, len(sum.Files))
		return
	}
	if sum.NotCanonical > 0 {
		pterm.Warning.Printf("%d of %d files are not canonical\n", sum.NotCanonical, len(sum.Files))
		return
	}
	pterm.Success.Printf("%d files, %d rules\n", len(sum.Files), sum.Rules)
	if e.verbosity >= 1 {
		for _, res := range sum.Files {
			pterm.Printf("  %s: %d rules\n", res.Path, res.Total)
		}
	}
}

// progressEvent is one line of JSONEmitter output.
type progressEvent struct {
	Type      string                 `json:"type"` // "file", "error", "summary"
	Timestamp time.Time              `json:"timestamp"`
	Data      map[string]interface{} `json:"data"`
}

// JSONEmitter outputs structured JSON events, one per line, for machine
// consumers such as CI wrappers.
type JSONEmitter struct {
	encoder *json.Encoder
}

// NewJSONEmitter creates a JSON progress emitter writing to w.
func NewJSONEmitter(w io.Writer) *JSONEmitter {
	return &JSONEmitter{encoder: json.NewEncoder(w)}
}

func (e *JSONEmitter) EmitFile(res FileResult) {
	e.encoder.Encode(progressEvent{
		Type:      "file",
		Timestamp: time.Now(),
		Data: map[string]interface{}{
			"path":    res.Path,
			"total":   res.Total,
			"stats":   res.Stats,
			"removed": res.Removed,
			"invalid": res.Invalid,
			"changed": res.Changed,
		},
	})
}

func (e *JSONEmitter) EmitError(path string, err error) {
	e.encoder.Encode(progressEvent{
		Type:      "error",
		Timestamp: time.Now(),
		Data: map[string]interface{}{
			"path":  path,
			"error": err.Error(),
		},
	})
}

func (e *JSONEmitter) EmitSummary(sum Summary) {
	e.encoder.Encode(progressEvent{
		Type:      "summary",
		Timestamp: time.Now(),
		Data: map[string]interface{}{
			"files":         len(sum.Files),
			"rules":         sum.Rules,
			"failed":        sum.Failed,
			"not_canonical": sum.NotCanonical,
		},
	})
}
