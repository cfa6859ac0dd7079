package ffmpeg

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/google/uuid"

	"podforge/internal/services"
)

// writeConcatList renders an ffconcat demuxer list file for the given inputs
// and returns its path together with a cleanup func that removes it.
func writeConcatList(files []string, workDir string) (string, func(), error) {
	workDir = strings.TrimSpace(workDir)
	if workDir == "" {
		workDir = os.TempDir()
	}

	var builder strings.Builder
	for _, file := range files {
		abs, err := filepath.Abs(file)
		if err != nil {
			return "", nil, services.Wrap(services.ErrValidation, "media", "concat", fmt.Sprintf("resolve path %q", file), err)
		}
		builder.WriteString("file '")
		builder.WriteString(escapeConcatPath(abs))
		builder.WriteString("'\n")
	}

	listPath := filepath.Join(workDir, "concat_"+uuid.NewString()+".txt")
	if err := os.WriteFile(listPath, []byte(builder.String()), 0o644); err != nil {
		return "", nil, services.Wrap(services.ErrExternalTool, "media", "concat", "write list file", err)
	}
	cleanup := func() { _ = os.Remove(listPath) }
	return listPath, cleanup, nil
}

// escapeConcatPath escapes single quotes for the concat demuxer's quoted
// string syntax: ' closes the string, \' emits the quote, ' reopens it.
func escapeConcatPath(path string) string {
	return strings.ReplaceAll(path, "'", `'\''`)
}
