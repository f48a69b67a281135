package compose

import (
	"os"
	"path/filepath"
	"strings"

	"github.com/moby/sys/atomicwriter"
	"golang.org/x/xerrors"
)

// TempDocumentSuffix marks a compose document written by dcv. Only files with
// this suffix are ever overwritten or removed.
const TempDocumentSuffix = "_tmp_docker_compose_vis.yml"

// ErrNotTempDocument is returned when asked to write or remove a path that
// does not carry TempDocumentSuffix.
var ErrNotTempDocument = xerrors.New("not a temporary compose document")

// TempDocumentPath returns the temporary document location inside dir. The
// document lives next to the real compose file so relative build contexts
// and env files keep resolving.
func TempDocumentPath(dir string) string {
	return filepath.Join(dir, TempDocumentSuffix)
}

// WriteTempDocument writes the stack to path.
func WriteTempDocument(path string, stack *StackDefinition) error {
	if !IsTempDocument(path) {
		return xerrors.Errorf("refusing to write %s: %w", path, ErrNotTempDocument)
	}
	data, err := stack.Marshal()
	if err != nil {
		return xerrors.Errorf("encode temporary compose document: %w", err)
	}
	if err := atomicwriter.WriteFile(path, data, 0o644); err != nil {
		return xerrors.Errorf("write temporary compose document: %w", err)
	}
	return nil
}

// RemoveTempDocument deletes a document written by WriteTempDocument.
func RemoveTempDocument(path string) error {
	if !IsTempDocument(path) {
		return xerrors.Errorf("refusing to remove %s: %w", path, ErrNotTempDocument)
	}
	return os.Remove(path)
}

// IsTempDocument reports whether path carries the temporary document marker.
func IsTempDocument(path string) bool {
	return strings.HasSuffix(path, TempDocumentSuffix)
}
