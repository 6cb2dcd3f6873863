package commands

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/log"

	"github.com/gerunddev/markdata/element"
	"github.com/gerunddev/markdata/internal/batch"
	"github.com/gerunddev/markdata/internal/config"
	"github.com/gerunddev/markdata/internal/logger"
	"github.com/gerunddev/markdata/internal/mdfile"
	"github.com/gerunddev/markdata/internal/state"
	"github.com/gerunddev/markdata/internal/styles"
	"github.com/gerunddev/markdata/internal/tui"
	"github.com/gerunddev/markdata/render"
)

// batchValueFlags is the union of value-taking flags across subcommands
var batchValueFlags = []string{
	"--format", "--to", "--indent", "--spacer",
	"--include", "--exclude", "-e", "--element",
	"--output-dir", "--workers",
}

// Batch runs a subcommand over every matching markdown file
func Batch(args []string) {
	titleStyle := styles.TitleStyle
	errorStyle := styles.ErrorStyle
	dimStyle := styles.DimStyle

	if len(args) < 1 {
		fmt.Println(errorStyle.Render("✗ Usage: markdata batch convert|info|extract|md [PATTERN...] [flags] [--output-dir D] [--workers N] [--force] [--verbose] [--quiet]"))
		os.Exit(1)
	}
	sub, rest := args[0], args[1:]

	cfg, err := config.Load()
	if err != nil {
		fmt.Println(errorStyle.Render("✗ Error loading config: " + err.Error()))
		os.Exit(1)
	}
	if dir := flagValue(rest, "--output-dir"); dir != "" {
		cfg.OutputDir = dir
	}
	if workers := intFlag(rest, 0, "--workers"); workers > 0 {
		cfg.Workers = workers
	}

	job, err := batchJob(sub, rest, cfg)
	if err != nil {
		fmt.Println(errorStyle.Render("✗ " + err.Error()))
		os.Exit(1)
	}

	files, err := resolveFiles(positionals(rest, batchValueFlags...), cfg)
	if err != nil {
		fmt.Println(errorStyle.Render("✗ " + err.Error()))
		fmt.Println(dimStyle.Render("  Run 'markdata config init' or pass a file pattern"))
		os.Exit(1)
	}
	if len(files) == 0 {
		fmt.Println(dimStyle.Render("No markdown files found"))
		return
	}

	st, err := state.Load(config.StateFilePath())
	if err != nil {
		fmt.Println(errorStyle.Render("✗ Error loading state: " + err.Error()))
		os.Exit(1)
	}

	runner := batch.NewRunner(cfg, st)
	runner.Force = hasFlag(rest, "--force", "-f")

	quiet := hasFlag(rest, "--quiet")
	verbose := hasFlag(rest, "--verbose") && !quiet

	if verbose {
		if f, ferr := os.OpenFile(cfg.LogFile, os.O_CREATE|os.O_APPEND|os.O_WRONLY, 0644); ferr == nil {
			defer f.Close()
			l := logger.NewMultiLogger(os.Stderr, f)
			l.SetLevel(log.DebugLevel)
			runner.SetLogger(l)
		} else {
			runner.SetLogger(logger.NewWithLevel(os.Stderr, log.DebugLevel))
		}
	} else if cfg.LogFile != "" {
		if l, cleanup, lerr := logger.NewFileLogger(cfg.LogFile); lerr == nil {
			defer cleanup()
			runner.SetLogger(l)
		}
	}

	if quiet {
		result, err := runner.Run(context.Background(), files, job)
		if err != nil {
			fmt.Fprintln(os.Stderr, "markdata batch: "+err.Error())
			os.Exit(1)
		}
		st.Prune()
		if err := st.Save(config.StateFilePath()); err != nil {
			fmt.Fprintln(os.Stderr, "markdata batch: saving state: "+err.Error())
			os.Exit(1)
		}
		fmt.Println(result.String())
		if result.Failed > 0 {
			os.Exit(1)
		}
		return
	}

	fmt.Println(titleStyle.Render("Markdata Batch"))
	fmt.Println(dimStyle.Render(fmt.Sprintf("%s over %d file(s), %d worker(s)", job.Name, len(files), cfg.Workers)))
	fmt.Println()

	m := tui.InitConvertModel()
	p := tea.NewProgram(m, tea.WithInput(os.Stdin))

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	done := make(chan struct{})
	var result *batch.Result
	go func() {
		defer close(done)
		p.Send(tui.StatusMsg(fmt.Sprintf("Processing %d file(s)...", len(files))))

		var runErr error
		result, runErr = runner.Run(ctx, files, job)

		var tuiResult *tui.ConvertResult
		if result != nil {
			var errs []error
			for _, fr := range result.Files {
				if fr.Err != nil {
					errs = append(errs, fmt.Errorf("%s: %w", fr.Source, fr.Err))
				}
			}
			tuiResult = &tui.ConvertResult{
				Converted: result.Converted,
				Skipped:   result.Skipped,
				Failed:    result.Failed,
				Errors:    errs,
				Duration:  result.EndTime.Sub(result.StartTime),
				Success:   runErr == nil && result.Failed == 0,
			}
		}
		p.Send(tui.ConvertMsg{Result: tuiResult, Err: runErr})
	}()

	if _, err := p.Run(); err != nil {
		fmt.Println(errorStyle.Render("✗ Error: " + err.Error()))
		os.Exit(1)
	}

	// An early quit stops dispatch; wait for in-flight files before
	// persisting what finished
	cancel()
	<-done

	st.Prune()
	if err := st.Save(config.StateFilePath()); err != nil {
		fmt.Println(errorStyle.Render("✗ Error saving state: " + err.Error()))
		os.Exit(1)
	}
	if result != nil && result.Failed > 0 {
		os.Exit(1)
	}
}

// batchJob builds the per-subcommand job from the remaining args
func batchJob(sub string, rest []string, cfg *config.Config) (batch.Job, error) {
	switch sub {
	case "convert":
		format := flagValue(rest, "--format")
		if format == "" {
			format = cfg.Format
		}
		return batch.ConvertJob(format, cfg)

	case "info":
		return batch.InfoJob(intFlag(rest, cfg.Indent, "--indent")), nil

	case "extract":
		kinds := flagValues(rest, "-e", "--element")
		for i, kind := range kinds {
			kinds[i] = strings.ToLower(strings.TrimSpace(kind))
			if !element.KnownTag(kinds[i]) {
				return batch.Job{}, fmt.Errorf("unknown element kind %q", kind)
			}
		}
		to := flagValue(rest, "--to")
		if to == "" {
			to = "json"
		}
		return batch.ExtractJob(to, intFlag(rest, cfg.Indent, "--indent"), kinds)

	case "md":
		return batch.MdJob(render.Options{
			Include: splitList(flagValue(rest, "--include")),
			Exclude: splitList(flagValue(rest, "--exclude")),
			Spacer:  intFlag(rest, cfg.Spacer, "--spacer"),
		}), nil
	}
	return batch.Job{}, fmt.Errorf("unknown batch subcommand %q: must be convert, info, extract or md", sub)
}

// resolveFiles expands patterns into markdown files. Directories are
// walked, globs matched; no patterns means the configured source dir.
func resolveFiles(patterns []string, cfg *config.Config) ([]string, error) {
	if len(patterns) == 0 {
		return mdfile.Discover(cfg.SourceDir, cfg.ExcludePatterns)
	}

	seen := make(map[string]bool)
	var files []string
	add := func(path string) {
		if !seen[path] {
			seen[path] = true
			files = append(files, path)
		}
	}

	for _, pattern := range patterns {
		if info, err := os.Stat(pattern); err == nil && info.IsDir() {
			found, err := mdfile.Discover(pattern, cfg.ExcludePatterns)
			if err != nil {
				return nil, err
			}
			for _, f := range found {
				add(f)
			}
			continue
		}

		matched, err := filepath.Glob(pattern)
		if err != nil {
			return nil, fmt.Errorf("bad pattern %q: %w", pattern, err)
		}
		for _, f := range matched {
			if mdfile.IsMarkdown(f) {
				add(f)
			}
		}
	}

	sort.Strings(files)
	return files, nil
}
