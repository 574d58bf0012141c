package pipeline

import (
	"context"
	"os"
	"path/filepath"
	"sort"
	"strings"
	"sync"
	"time"

	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"

	"github.com/rulefmt/rulefmt/config"
	"github.com/rulefmt/rulefmt/errors"
	"github.com/rulefmt/rulefmt/logger"
	"github.com/rulefmt/rulefmt/rules"
)

// FileResult is the per-file outcome of a batch run.
type FileResult struct {
	Path    string
	Stats   map[string]int
	Total   int
	Removed int
	Invalid int
	// Changed reports that the canonical output differs from what is on
	// disk. In check mode this marks the file as not canonical.
	Changed bool
}

// Summary aggregates a batch.
type Summary struct {
	Files        []FileResult
	Rules        int
	Failed       int
	NotCanonical int
}

// FormatOptions are the per-invocation write switches of format mode.
type FormatOptions struct {
	ListOnly bool
	JSONOnly bool
	DryRun   bool
}

// Runner discovers rule-list files, invokes the engine per file, writes
// artifacts, and aggregates a batch summary. Files are processed in
// parallel up to batch.workers; each engine invocation is independent, so
// the parallelism needs no coordination beyond result collection.
type Runner struct {
	cfg     *config.Config
	emitter Emitter
	writer  *Writer
	log     *zap.SugaredLogger

	manifestMu sync.Mutex
	manifests  map[string]Manifest
}

// NewRunner builds a runner. marks may be nil outside watch mode.
func NewRunner(cfg *config.Config, emitter Emitter, marks *WriteMarks) *Runner {
	return &Runner{
		cfg:       cfg,
		emitter:   emitter,
		writer:    &Writer{Backups: cfg.Output.Backups, Marks: marks},
		log:       logger.Named("pipeline"),
		manifests: make(map[string]Manifest),
	}
}

// Format normalizes all discovered lists and writes both artifacts.
func (r *Runner) Format(ctx context.Context, paths []string, opts FormatOptions) (Summary, error) {
	return r.run(ctx, paths, func(path string) (FileResult, error) {
		return r.formatFile(path, opts)
	})
}

// Check verifies that all discovered lists and their JSON siblings are
// canonical without writing anything. A non-empty set of offending files
// is reported through errors.ErrNotCanonical.
func (r *Runner) Check(ctx context.Context, paths []string) (Summary, error) {
	sum, err := r.run(ctx, paths, r.checkFile)
	if err != nil {
		return sum, err
	}
	if sum.NotCanonical > 0 {
		var offending []string
		for _, res := range sum.Files {
			if res.Changed {
				offending = append(offending, res.Path)
			}
		}
		return sum, errors.Wrap(errors.ErrNotCanonical, strings.Join(offending, ", "))
	}
	return sum, nil
}

// Stats processes all discovered lists in memory only.
func (r *Runner) Stats(ctx context.Context, paths []string) (Summary, error) {
	return r.run(ctx, paths, r.statFile)
}

// Watch re-formats lists as they change until ctx is canceled. An initial
// format pass runs first so watch mode always starts from canonical state.
func (r *Runner) Watch(ctx context.Context, paths []string, opts FormatOptions) error {
	if _, err := r.Format(ctx, paths, opts); err != nil {
		return err
	}

	files, err := Discover(paths)
	if err != nil {
		return err
	}
	dirs := make(map[string]struct{})
	for _, f := range files {
		dirs[filepath.Dir(f)] = struct{}{}
	}

	if r.writer.Marks == nil {
		r.writer.Marks = NewWriteMarks(10 * time.Second)
	}
	watcher, err := NewListWatcher(mapKeys(dirs), r.debounce(), r.writer.Marks, func(path string) {
		res, err := r.formatFile(path, opts)
		if err != nil {
			r.emitter.EmitError(path, err)
			return
		}
		r.emitter.EmitFile(res)
	})
	if err != nil {
		return err
	}
	watcher.Start()
	defer watcher.Stop()

	r.log.Infow("watching for list changes", "dirs", len(dirs))
	<-ctx.Done()
	return nil
}

func (r *Runner) run(ctx context.Context, paths []string, fn func(path string) (FileResult, error)) (Summary, error) {
	files, err := Discover(paths)
	if err != nil {
		return Summary{}, err
	}

	g, ctx := errgroup.WithContext(ctx)
	g.SetLimit(r.cfg.Batch.Workers)

	var mu sync.Mutex
	var sum Summary
	for _, path := range files {
		g.Go(func() error {
			if err := ctx.Err(); err != nil {
				return err
			}
			res, err := fn(path)

			mu.Lock()
			defer mu.Unlock()
			if err != nil {
				sum.Failed++
				r.emitter.EmitError(path, err)
				if r.cfg.Batch.FailFast {
					return err
				}
				return nil
			}
			sum.Files = append(sum.Files, res)
			sum.Rules += res.Total
			if res.Changed {
				sum.NotCanonical++
			}
			r.emitter.EmitFile(res)
			return nil
		})
	}
	werr := g.Wait()

	sort.Slice(sum.Files, func(i, j int) bool { return sum.Files[i].Path < sum.Files[j].Path })
	r.emitter.EmitSummary(sum)

	if werr != nil {
		return sum, werr
	}
	if sum.Failed > 0 {
		return sum, errors.Newf("%d of %d files failed", sum.Failed, len(files))
	}
	return sum, nil
}

// process runs the engine over one list file, returning the raw on-disk
// content alongside the result for change detection.
func (r *Runner) process(path string) (rules.Result, string, error) {
	raw, err := os.ReadFile(path)
	if err != nil {
		return rules.Result{}, "", errors.Wrapf(err, "reading %s", path)
	}

	meta, err := r.metaFor(path)
	if err != nil {
		return rules.Result{}, "", err
	}
	eng := rules.New(rules.Options{
		Meta:        meta,
		Dedupe:      r.cfg.Format.Dedupe,
		JSONVersion: r.cfg.Format.JSONVersion,
	})
	res, err := eng.Process(string(raw))
	if err != nil {
		return rules.Result{}, "", errors.Wrapf(err, "processing %s", path)
	}

	for _, inv := range res.Invalid {
		r.log.Warnw("skipping unparsable line",
			"file", path,
			"line", inv.Number,
			"text", inv.Text)
	}
	return res, string(raw), nil
}

func (r *Runner) formatFile(path string, opts FormatOptions) (FileResult, error) {
	res, raw, err := r.process(path)
	if err != nil {
		return FileResult{}, err
	}

	out := fileResult(path, res)
	// Timestamp-only differences do not count as changes; an already
	// canonical list is left untouched instead of churning its UPDATED
	// line on every run.
	out.Changed = stripTimestamp(res.ListText) != stripTimestamp(raw)
	if opts.DryRun {
		return out, nil
	}

	if !opts.JSONOnly && out.Changed {
		if err := r.writer.Write(path, []byte(res.ListText)); err != nil {
			return FileResult{}, err
		}
	}
	if !opts.ListOnly {
		target := jsonPath(path, r.cfg.Output.JSONDir)
		if existing, err := os.ReadFile(target); err != nil || string(existing) != res.JSONText {
			if err := os.MkdirAll(filepath.Dir(target), 0755); err != nil {
				return FileResult{}, errors.Wrapf(err, "creating output directory for %s", target)
			}
			if err := r.writer.Write(target, []byte(res.JSONText)); err != nil {
				return FileResult{}, err
			}
		}
	}
	return out, nil
}

func (r *Runner) checkFile(path string) (FileResult, error) {
	res, raw, err := r.process(path)
	if err != nil {
		return FileResult{}, err
	}

	out := fileResult(path, res)
	canonical := stripTimestamp(res.ListText) == stripTimestamp(raw)

	existing, err := os.ReadFile(jsonPath(path, r.cfg.Output.JSONDir))
	switch {
	case err != nil:
		canonical = false
	case string(existing) != res.JSONText:
		canonical = false
	case rules.ValidateJSON(string(existing)) != nil:
		canonical = false
	}

	out.Changed = !canonical
	return out, nil
}

func (r *Runner) statFile(path string) (FileResult, error) {
	res, _, err := r.process(path)
	if err != nil {
		return FileResult{}, err
	}
	return fileResult(path, res), nil
}

func (r *Runner) metaFor(path string) (rules.Meta, error) {
	dir := filepath.Dir(path)

	r.manifestMu.Lock()
	defer r.manifestMu.Unlock()
	m, ok := r.manifests[dir]
	if !ok {
		var err error
		m, err = LoadManifest(dir)
		if err != nil {
			return rules.Meta{}, err
		}
		r.manifests[dir] = m
	}
	return m.MetaFor(path, r.cfg.Banner), nil
}

func (r *Runner) debounce() time.Duration {
	return time.Duration(r.cfg.Watch.DebounceMs) * time.Millisecond
}

func fileResult(path string, res rules.Result) FileResult {
	return FileResult{
		Path:    path,
		Stats:   res.Stats,
		Total:   res.Total,
		Removed: res.Removed,
		Invalid: len(res.Invalid),
	}
}

// stripTimestamp removes the UPDATED header line so canonical-form
// comparison ignores generation time.
func stripTimestamp(text string) string {
	lines := strings.Split(text, "\n")
	kept := lines[:0]
	for _, l := range lines {
		if strings.HasPrefix(l, "# UPDATED:") {
			continue
		}
		kept = append(kept, l)
	}
	return strings.Join(kept, "\n")
}

func mapKeys(m map[string]struct{}) []string {
	out := make([]string, 0, len(m))
	for k := range m {
		out = append(out, k)
	}
	sort.Strings(out)
	return out
}
