package logging_test

import (
	"context"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"podforge/internal/logging"
	"podforge/internal/services"
)

func TestNewWritesToFile(t *testing.T) {
	dir := t.TempDir()
	logPath := filepath.Join(dir, "out.log")

	logger, err := logging.New(logging.Options{
		Level:       "info",
		Format:      "console",
		OutputPaths: []string{logPath},
	})
	if err != nil {
		t.Fatalf("New returned error: %v", err)
	}

	logger.Info("synthesis complete", logging.Int("clips", 3))

	data, err := os.ReadFile(logPath)
	if err != nil {
		t.Fatalf("read log file: %v", err)
	}
	content := string(data)
	if !strings.Contains(content, "synthesis complete") {
		t.Fatalf("expected message in log output, got %q", content)
	}
	if !strings.Contains(content, "clips=3") {
		t.Fatalf("expected attribute in log output, got %q", content)
	}
}

func TestNewRejectsUnknownFormat(t *testing.T) {
	if _, err := logging.New(logging.Options{Format: "xml"}); err == nil {
		t.Fatal("expected error for unsupported format")
	}
}

func TestNewJSONFormat(t *testing.T) {
	dir := t.TempDir()
	logPath := filepath.Join(dir, "out.json")

	logger, err := logging.New(logging.Options{Level: "debug", Format: "json", OutputPaths: []string{logPath}})
	if err != nil {
		t.Fatalf("New returned error: %v", err)
	}
	logger.Debug("probe", logging.String("path", "x.wav"))

	data, err := os.ReadFile(logPath)
	if err != nil {
		t.Fatalf("read log file: %v", err)
	}
	content := string(data)
	for _, want := range []string{`"level":"debug"`, `"msg":"probe"`, `"path":"x.wav"`} {
		if !strings.Contains(content, want) {
			t.Fatalf("expected %s in JSON output, got %q", want, content)
		}
	}
}

func TestWithContextCarriesStageAndLine(t *testing.T) {
	dir := t.TempDir()
	logPath := filepath.Join(dir, "out.log")

	base, err := logging.New(logging.Options{Format: "console", OutputPaths: []string{logPath}})
	if err != nil {
		t.Fatalf("New returned error: %v", err)
	}

	ctx := logging.WithStage(context.Background(), "render")
	ctx = services.WithLine(ctx, 2, "SAM")
	logging.WithContext(ctx, base).Info("line synthesized")

	data, err := os.ReadFile(logPath)
	if err != nil {
		t.Fatalf("read log file: %v", err)
	}
	content := string(data)
	for _, want := range []string{"stage=render", "line_index=2", "speaker=SAM"} {
		if !strings.Contains(content, want) {
			t.Fatalf("expected %s in output, got %q", want, content)
		}
	}
}

func TestComponentLoggerPrefixesMessages(t *testing.T) {
	dir := t.TempDir()
	logPath := filepath.Join(dir, "out.log")

	base, err := logging.New(logging.Options{Format: "console", OutputPaths: []string{logPath}})
	if err != nil {
		t.Fatalf("New returned error: %v", err)
	}
	logging.NewComponentLogger(base, "combiner").Info("segments found")

	data, err := os.ReadFile(logPath)
	if err != nil {
		t.Fatalf("read log file: %v", err)
	}
	if !strings.Contains(string(data), "combiner: segments found") {
		t.Fatalf("expected component prefix, got %q", string(data))
	}
}
