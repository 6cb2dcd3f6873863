// Package batch processes markdown files in bulk with a pool of workers,
// skipping files whose cached fingerprint still matches.
package batch

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"
	"sync"
	"time"

	"github.com/google/uuid"

	markdata "github.com/gerunddev/markdata"
	"github.com/gerunddev/markdata/element"
	"github.com/gerunddev/markdata/internal/config"
	"github.com/gerunddev/markdata/internal/logger"
	"github.com/gerunddev/markdata/internal/state"
	"github.com/gerunddev/markdata/render"
)

// Runner drives batch jobs
type Runner struct {
	config *config.Config
	state  *state.State
	log    *logger.Logger

	// Force processes every file even when the cache says it is unchanged
	Force bool
}

// NewRunner creates a new runner instance
func NewRunner(cfg *config.Config, st *state.State) *Runner {
	return &Runner{
		config: cfg,
		state:  st,
		log:    logger.Discard(),
	}
}

// SetLogger replaces the runner's logger
func (r *Runner) SetLogger(l *logger.Logger) {
	r.log = l
}

// Job describes what a run does to each file: how a parsed document is
// serialized and which extension the output carries.
type Job struct {
	Name      string // tags the run in logs and state
	Ext       string // output extension without the dot
	Serialize func(doc *markdata.Document) (string, error)
}

// ConvertJob serializes whole documents as json, yaml or markdown
func ConvertJob(format string, cfg *config.Config) (Job, error) {
	if !ValidFormat(format) {
		return Job{}, fmt.Errorf("unknown output format %q: must be one of: json, yaml, md", format)
	}
	return Job{
		Name: "convert/" + format,
		Ext:  format,
		Serialize: func(doc *markdata.Document) (string, error) {
			return Serialize(doc, format, cfg)
		},
	}, nil
}

// InfoJob emits per-kind document statistics as JSON
func InfoJob(indent int) Job {
	return Job{
		Name: "info",
		Ext:  "info.json",
		Serialize: func(doc *markdata.Document) (string, error) {
			out, err := doc.StatsJSON(indent)
			return terminated(out), err
		},
	}
}

// ExtractJob emits the elements matching the given filter tags
func ExtractJob(to string, indent int, tags []string) (Job, error) {
	if to != "json" && to != "yaml" {
		return Job{}, fmt.Errorf("unknown extract format %q: must be json or yaml", to)
	}
	if len(tags) == 0 {
		return Job{}, fmt.Errorf("extract needs at least one element kind")
	}
	return Job{
		Name: "extract/" + to,
		Ext:  "blocks." + to,
		Serialize: func(doc *markdata.Document) (string, error) {
			blocks := doc.BuildingBlocks(tags...)
			var (
				out string
				err error
			)
			if to == "yaml" {
				out, err = element.FlatYAML(blocks)
			} else {
				out, err = element.FlatJSON(blocks, indent)
			}
			return terminated(out), err
		},
	}, nil
}

// MdJob re-renders documents as normalized markdown
func MdJob(opts render.Options) Job {
	return Job{
		Name: "md",
		Ext:  "md",
		Serialize: func(doc *markdata.Document) (string, error) {
			return terminated(doc.ToMarkdown(opts)), nil
		},
	}
}

// FileResult is the outcome for one source file
type FileResult struct {
	Source   string
	Output   string
	Elements int
	Skipped  bool
	Err      error
}

// Result aggregates one batch run
type Result struct {
	RunID     string
	Files     []FileResult
	Converted int
	Skipped   int
	Failed    int
	StartTime time.Time
	EndTime   time.Time
}

// Run applies the job to every file. State is read before dispatch and
// written after collection, so workers never touch the cache map.
// Canceling the context stops dispatch; in-flight files finish.
func (r *Runner) Run(ctx context.Context, files []string, job Job) (*Result, error) {
	if job.Serialize == nil {
		return nil, fmt.Errorf("batch job %q has no serializer", job.Name)
	}

	result := &Result{
		RunID:     uuid.New().String()[:8],
		StartTime: time.Now(),
	}
	r.log.ConfigLoaded(r.config.SourceDir, r.config.Format, r.config.Workers)
	r.log.BatchStarted(result.RunID, len(files), job.Name)

	// Decide up front which files the cache lets us skip
	var queue []string
	for _, src := range files {
		if !r.Force {
			changed, err := r.state.HasChanged(src)
			if err == nil && !changed {
				result.Files = append(result.Files, FileResult{Source: src, Skipped: true})
				result.Skipped++
				r.log.Skipped(src, "unchanged since last run")
				continue
			}
		}
		queue = append(queue, src)
	}

	workers := r.config.Workers
	if workers < 1 {
		workers = 1
	}

	jobs := make(chan string)
	results := make(chan FileResult)

	var wg sync.WaitGroup
	for i := 0; i < workers; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for src := range jobs {
				results <- r.processFile(src, job)
			}
		}()
	}

	go func() {
		defer close(jobs)
		for _, src := range queue {
			// Checked first so a canceled context never dispatches
			// another file even when a worker is ready to receive.
			if ctx.Err() != nil {
				return
			}
			select {
			case <-ctx.Done():
				return
			case jobs <- src:
			}
		}
	}()

	go func() {
		wg.Wait()
		close(results)
	}()

	for res := range results {
		result.Files = append(result.Files, res)
		if res.Err != nil {
			result.Failed++
			r.log.FileError(res.Source, res.Err)
			continue
		}

		result.Converted++
		r.log.FileConverted(res.Source, res.Output, job.Name)
		if err := r.state.Update(res.Source, res.Output, job.Name, result.RunID); err != nil {
			r.log.StateError("update", err)
		}
	}

	sort.Slice(result.Files, func(i, j int) bool {
		return result.Files[i].Source < result.Files[j].Source
	})

	result.EndTime = time.Now()
	r.log.BatchCompleted(result.RunID, result.Converted, result.Skipped, result.Failed,
		result.EndTime.Sub(result.StartTime))
	return result, nil
}

// processFile parses one source file and writes the serialized output
func (r *Runner) processFile(src string, job Job) FileResult {
	res := FileResult{Source: src}

	start := time.Now()
	doc, err := markdata.ParseFile(src)
	if err != nil {
		res.Err = err
		return res
	}
	res.Elements = len(doc.Elements())
	r.log.FileParsed(src, res.Elements, time.Since(start))

	out, err := job.Serialize(doc)
	if err != nil {
		res.Err = err
		return res
	}

	res.Output = OutputPath(src, r.config.OutputDir, job.Ext)
	if err := os.MkdirAll(filepath.Dir(res.Output), 0755); err != nil {
		res.Err = err
		return res
	}
	if err := os.WriteFile(res.Output, []byte(out), 0644); err != nil {
		res.Err = err
		return res
	}

	return res
}

// ValidFormat reports whether format names a supported serialization
func ValidFormat(format string) bool {
	switch format {
	case "json", "yaml", "md":
		return true
	}
	return false
}

// Serialize renders a document in the given format, newline terminated
func Serialize(doc *markdata.Document, format string, cfg *config.Config) (string, error) {
	var (
		out string
		err error
	)

	switch format {
	case "json":
		out, err = doc.ToJSON(cfg.Indent)
	case "yaml":
		out, err = doc.ToYAML()
	case "md":
		out = doc.ToMarkdown(render.Options{Spacer: cfg.Spacer})
	default:
		return "", fmt.Errorf("unknown output format %q", format)
	}
	if err != nil {
		return "", err
	}
	return terminated(out), nil
}

func terminated(out string) string {
	if out != "" && !strings.HasSuffix(out, "\n") {
		out += "\n"
	}
	return out
}

// OutputPath picks the destination for one file. An empty outDir writes
// alongside the source; a destination that would overwrite the source
// gets an .out suffix instead.
func OutputPath(src, outDir, ext string) string {
	suffix := "." + ext
	stem := strings.TrimSuffix(filepath.Base(src), filepath.Ext(src))

	dir := outDir
	if dir == "" {
		dir = filepath.Dir(src)
	}

	out := filepath.Join(dir, stem+suffix)
	if out == src {
		out = filepath.Join(dir, stem+".out"+suffix)
	}
	return out
}

// String returns a human-readable summary of the batch result
func (r *Result) String() string {
	duration := r.EndTime.Sub(r.StartTime)
	return fmt.Sprintf(
		"Batch %s complete: %d converted, %d skipped, %d failed (took %v)",
		r.RunID,
		r.Converted,
		r.Skipped,
		r.Failed,
		duration.Round(time.Millisecond),
	)
}
