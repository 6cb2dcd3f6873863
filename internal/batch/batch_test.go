package batch

import (
	"context"
	"os"
	"path/filepath"
	"strings"
	"testing"

	markdata "github.com/gerunddev/markdata"
	"github.com/gerunddev/markdata/internal/config"
	"github.com/gerunddev/markdata/internal/state"
	"github.com/gerunddev/markdata/render"
)

func testConfig(outDir string) *config.Config {
	return &config.Config{
		SourceDir: "/unused",
		OutputDir: outDir,
		LogFile:   "/tmp/markdata-test.log",
		Format:    "json",
		Indent:    0,
		Spacer:    1,
		Workers:   2,
	}
}

func writeSource(t *testing.T, dir, name, content string) string {
	t.Helper()
	path := filepath.Join(dir, name)
	if err := os.WriteFile(path, []byte(content), 0644); err != nil {
		t.Fatalf("Failed to create test file: %v", err)
	}
	return path
}

func mustConvertJob(t *testing.T, format string, cfg *config.Config) Job {
	t.Helper()
	job, err := ConvertJob(format, cfg)
	if err != nil {
		t.Fatalf("ConvertJob failed: %v", err)
	}
	return job
}

func TestRunConvertsFiles(t *testing.T) {
	tmpDir := t.TempDir()
	outDir := filepath.Join(tmpDir, "out")

	a := writeSource(t, tmpDir, "a.md", "# A\n\ntext\n")
	b := writeSource(t, tmpDir, "b.md", "# B\n\nmore\n")

	cfg := testConfig(outDir)
	runner := NewRunner(cfg, state.NewState())
	result, err := runner.Run(context.Background(), []string{a, b}, mustConvertJob(t, "json", cfg))
	if err != nil {
		t.Fatalf("Run failed: %v", err)
	}

	if result.Converted != 2 || result.Skipped != 0 || result.Failed != 0 {
		t.Fatalf("got converted=%d skipped=%d failed=%d, want 2/0/0",
			result.Converted, result.Skipped, result.Failed)
	}
	if result.RunID == "" {
		t.Error("RunID should be set")
	}

	data, err := os.ReadFile(filepath.Join(outDir, "a.json"))
	if err != nil {
		t.Fatalf("Output file missing: %v", err)
	}
	if got, want := string(data), `{"A":{"paragraph_1":"text"}}`+"\n"; got != want {
		t.Errorf("output: got %s, want %s", got, want)
	}
}

func TestRunSkipsUnchanged(t *testing.T) {
	tmpDir := t.TempDir()
	src := writeSource(t, tmpDir, "a.md", "# A\n\ntext\n")

	cfg := testConfig(filepath.Join(tmpDir, "out"))
	runner := NewRunner(cfg, state.NewState())
	job := mustConvertJob(t, "json", cfg)

	if _, err := runner.Run(context.Background(), []string{src}, job); err != nil {
		t.Fatalf("First run failed: %v", err)
	}

	result, err := runner.Run(context.Background(), []string{src}, job)
	if err != nil {
		t.Fatalf("Second run failed: %v", err)
	}
	if result.Skipped != 1 || result.Converted != 0 {
		t.Errorf("got converted=%d skipped=%d, want 0/1", result.Converted, result.Skipped)
	}
}

func TestRunForceReconverts(t *testing.T) {
	tmpDir := t.TempDir()
	src := writeSource(t, tmpDir, "a.md", "# A\n\ntext\n")

	cfg := testConfig(filepath.Join(tmpDir, "out"))
	runner := NewRunner(cfg, state.NewState())
	job := mustConvertJob(t, "json", cfg)

	if _, err := runner.Run(context.Background(), []string{src}, job); err != nil {
		t.Fatalf("First run failed: %v", err)
	}

	runner.Force = true
	result, err := runner.Run(context.Background(), []string{src}, job)
	if err != nil {
		t.Fatalf("Forced run failed: %v", err)
	}
	if result.Converted != 1 || result.Skipped != 0 {
		t.Errorf("got converted=%d skipped=%d, want 1/0", result.Converted, result.Skipped)
	}
}

func TestRunRecordsFailures(t *testing.T) {
	tmpDir := t.TempDir()
	src := writeSource(t, tmpDir, "a.md", "# A\n")
	missing := filepath.Join(tmpDir, "missing.md")

	cfg := testConfig(filepath.Join(tmpDir, "out"))
	runner := NewRunner(cfg, state.NewState())
	result, err := runner.Run(context.Background(), []string{src, missing}, mustConvertJob(t, "json", cfg))
	if err != nil {
		t.Fatalf("Run failed: %v", err)
	}

	if result.Converted != 1 || result.Failed != 1 {
		t.Fatalf("got converted=%d failed=%d, want 1/1", result.Converted, result.Failed)
	}
	for _, fr := range result.Files {
		if fr.Source == missing && fr.Err == nil {
			t.Error("missing file should carry an error")
		}
	}
}

func TestRunCanceledContextStopsDispatch(t *testing.T) {
	tmpDir := t.TempDir()
	var files []string
	for _, name := range []string{"a.md", "b.md", "c.md"} {
		files = append(files, writeSource(t, tmpDir, name, "# T\n"))
	}

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	cfg := testConfig(filepath.Join(tmpDir, "out"))
	runner := NewRunner(cfg, state.NewState())
	result, err := runner.Run(ctx, files, mustConvertJob(t, "json", cfg))
	if err != nil {
		t.Fatalf("Run failed: %v", err)
	}
	if result.Converted != 0 || result.Failed != 0 {
		t.Errorf("got converted=%d failed=%d, want nothing dispatched", result.Converted, result.Failed)
	}
}

func TestConvertJobRejectsUnknownFormat(t *testing.T) {
	if _, err := ConvertJob("xml", testConfig("")); err == nil {
		t.Error("expected error for unknown format")
	}
}

func TestRunRejectsEmptyJob(t *testing.T) {
	runner := NewRunner(testConfig(""), state.NewState())
	if _, err := runner.Run(context.Background(), nil, Job{Name: "empty"}); err == nil {
		t.Error("expected error for job without serializer")
	}
}

func TestInfoJob(t *testing.T) {
	doc := markdata.New("# A\n\ntext\n")
	job := InfoJob(0)

	if job.Ext != "info.json" {
		t.Errorf("Ext: got %s, want info.json", job.Ext)
	}
	out, err := job.Serialize(doc)
	if err != nil {
		t.Fatalf("Serialize failed: %v", err)
	}
	if !strings.Contains(out, `"header"`) || !strings.Contains(out, `"count":1`) {
		t.Errorf("info output missing header stats: %s", out)
	}
	if !strings.HasSuffix(out, "\n") {
		t.Error("info output should be newline terminated")
	}
}

func TestExtractJob(t *testing.T) {
	doc := markdata.New("# A\n\ntext\n\n- one\n")

	job, err := ExtractJob("json", 0, []string{"list"})
	if err != nil {
		t.Fatalf("ExtractJob failed: %v", err)
	}
	if job.Ext != "blocks.json" {
		t.Errorf("Ext: got %s, want blocks.json", job.Ext)
	}

	out, err := job.Serialize(doc)
	if err != nil {
		t.Fatalf("Serialize failed: %v", err)
	}
	want := `[{"list":{"type":"ul","items":[{"content":"one","items":[],"task":null}]},"start_line":5,"end_line":5}]` + "\n"
	if out != want {
		t.Errorf("got %s, want %s", out, want)
	}
}

func TestExtractJobValidation(t *testing.T) {
	if _, err := ExtractJob("md", 0, []string{"list"}); err == nil {
		t.Error("expected error for unsupported extract format")
	}
	if _, err := ExtractJob("json", 0, nil); err == nil {
		t.Error("expected error for empty kind list")
	}
}

func TestMdJob(t *testing.T) {
	doc := markdata.New("# A\ntext\n")
	job := MdJob(render.Options{Spacer: 1})

	out, err := job.Serialize(doc)
	if err != nil {
		t.Fatalf("Serialize failed: %v", err)
	}
	if out != "# A\n\ntext\n" {
		t.Errorf("got %q", out)
	}
}

func TestSerializeFormats(t *testing.T) {
	doc := markdata.New("# A\n\ntext\n")
	cfg := testConfig("")

	tests := []struct {
		format string
		want   string
	}{
		{"json", `{"A":{"paragraph_1":"text"}}` + "\n"},
		{"yaml", "A:\n    paragraph_1: text\n"},
		{"md", "# A\n\ntext\n"},
	}

	for _, tt := range tests {
		t.Run(tt.format, func(t *testing.T) {
			got, err := Serialize(doc, tt.format, cfg)
			if err != nil {
				t.Fatalf("Serialize failed: %v", err)
			}
			if got != tt.want {
				t.Errorf("got %q, want %q", got, tt.want)
			}
		})
	}

	if _, err := Serialize(doc, "xml", cfg); err == nil {
		t.Error("expected error for unknown format")
	}
}

func TestOutputPath(t *testing.T) {
	tests := []struct {
		name   string
		src    string
		outDir string
		ext    string
		want   string
	}{
		{
			name:   "explicit output dir",
			src:    "/notes/a.md",
			outDir: "/out",
			ext:    "json",
			want:   "/out/a.json",
		},
		{
			name:   "alongside source",
			src:    "/notes/a.md",
			outDir: "",
			ext:    "yaml",
			want:   "/notes/a.yaml",
		},
		{
			name:   "markdown avoids overwriting source",
			src:    "/notes/a.md",
			outDir: "",
			ext:    "md",
			want:   "/notes/a.out.md",
		},
		{
			name:   "compound extension",
			src:    "/notes/a.md",
			outDir: "",
			ext:    "info.json",
			want:   "/notes/a.info.json",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := OutputPath(tt.src, tt.outDir, tt.ext); got != tt.want {
				t.Errorf("got %s, want %s", got, tt.want)
			}
		})
	}
}

func TestResultString(t *testing.T) {
	result := &Result{RunID: "abc12345", Converted: 3, Skipped: 1, Failed: 1}
	s := result.String()
	for _, want := range []string{"abc12345", "3 converted", "1 skipped", "1 failed"} {
		if !strings.Contains(s, want) {
			t.Errorf("summary missing %q: %s", want, s)
		}
	}
}
