package testsupport

import (
	"encoding/json"
	"os"
	"path/filepath"
	"testing"
)

// ScriptEntry mirrors the on-disk dialogue script shape for test fixtures.
type ScriptEntry struct {
	Speaker string `json:"speaker"`
	Line    string `json:"line"`
}

// WriteScript marshals the entries to a JSON script file at path.
func WriteScript(t testing.TB, path string, entries []ScriptEntry) {
	t.Helper()

	data, err := json.MarshalIndent(entries, "", "  ")
	if err != nil {
		t.Fatalf("marshal script: %v", err)
	}
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		t.Fatalf("mkdir for %s: %v", path, err)
	}
	if err := os.WriteFile(path, data, 0o644); err != nil {
		t.Fatalf("write %s: %v", path, err)
	}
}

// WriteSegments creates placeholder audio files under dir with the given
// names, for exercising the combiner without real audio.
func WriteSegments(t testing.TB, dir string, names ...string) {
	t.Helper()

	if err := os.MkdirAll(dir, 0o755); err != nil {
		t.Fatalf("mkdir %s: %v", dir, err)
	}
	for _, name := range names {
		if err := os.WriteFile(filepath.Join(dir, name), []byte{0x42}, 0o644); err != nil {
			t.Fatalf("write %s: %v", name, err)
		}
	}
}
