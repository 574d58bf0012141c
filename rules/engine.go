package rules

import (
	"strings"
	"time"
	"unicode/utf8"

	"github.com/rulefmt/rulefmt/errors"
)

// Options configures one Engine. Meta feeds the header generator; Dedupe
// toggles the redundancy filter (on by default in the CLI, the
// pass-through variant exists for legacy lists); JSONVersion is the
// artifact format version (default 1); Now supplies the header timestamp
// and defaults to time.Now.
type Options struct {
	Meta        Meta
	Dedupe      bool
	JSONVersion int
	Now         func() time.Time
}

// InvalidLine records one input line rejected by classification.
type InvalidLine struct {
	Number int    // 1-based line number in the input
	Text   string // trimmed line content
}

// Result is the full output of one processing run.
type Result struct {
	ListText string         // canonical text artifact
	JSONText string         // canonical JSON artifact
	Stats    map[string]int // kind name -> count over the final set
	Total    int
	Invalid  []InvalidLine // skipped lines, in input order
	Comments []string      // retained pass-through comments
	Removed  int           // rules dropped by the redundancy filter
}

// Engine is the rule normalization engine. It owns no cross-invocation
// state: independent Process calls are safe to run concurrently from the
// caller's side.
type Engine struct {
	opts Options
}

// New builds an Engine, filling option defaults.
func New(opts Options) *Engine {
	if opts.JSONVersion == 0 {
		opts.JSONVersion = 1
	}
	if opts.Now == nil {
		opts.Now = time.Now
	}
	return &Engine{opts: opts}
}

// Process normalizes raw list content into both artifacts plus stats and
// diagnostics. Malformed rule lines never fail the run; they are skipped
// and reported in Result.Invalid. The only error case is input that is not
// valid UTF-8.
func (e *Engine) Process(rawText string) (Result, error) {
	if !utf8.ValidString(rawText) {
		return Result{}, errors.New("input is not valid UTF-8")
	}

	body := stripMetadataBlock(rawText)

	set := NewSet()
	var res Result
	for i, raw := range strings.Split(body, "\n") {
		line := Classify(raw)
		switch line.Class {
		case LineBlank:
		case LineComment:
			res.Comments = append(res.Comments, line.Comment)
		case LineRule:
			set.Add(line.Rule)
			if line.Comment != "" {
				res.Comments = append(res.Comments, line.Comment)
			}
		case LineInvalid:
			res.Invalid = append(res.Invalid, InvalidLine{
				Number: i + 1,
				Text:   strings.TrimSpace(raw),
			})
		}
	}

	if e.opts.Dedupe {
		res.Removed = Filter(set)
	}

	header := Header(e.opts.Meta, set, e.opts.Now())
	res.ListText = RenderList(header, set, res.Comments)

	jsonText, err := RenderJSON(set, e.opts.JSONVersion)
	if err != nil {
		return Result{}, err
	}
	res.JSONText = jsonText
	res.Stats = set.Stats()
	res.Total = set.Total()
	return res, nil
}

// stripMetadataBlock drops a leading generated header: if the content
// starts with a `# NAME:` line, that line and every immediately following
// comment line are removed. The engine regenerates the block and never
// trusts old counts.
func stripMetadataBlock(content string) string {
	if !strings.HasPrefix(content, "# NAME:") {
		return content
	}
	lines := strings.Split(content, "\n")
	i := 1
	for i < len(lines) && strings.HasPrefix(lines[i], "#") {
		i++
	}
	return strings.Join(lines[i:], "\n")
}
