package mdpage

import (
	"errors"
	"fmt"
	"io/fs"
	"path/filepath"

	"github.com/spf13/afero"

	"github.com/alnah/go-mdpage/internal/fileutil"
)

// MaterializeAssets copies the image root into outDir so that references
// rewritten under the copy policy resolve. A file root is copied to
// outDir/<base>; a directory is mirrored to outDir/<base>/ recursively.
// Symbolic links are skipped. Returns the number of files copied.
//
// Returns ErrInvalidImagePath if imageRoot does not exist and
// ErrInvalidOutputDir if outDir lies inside imageRoot.
func MaterializeAssets(imageRoot, outDir string) (int, error) {
	return materialize(afero.NewOsFs(), imageRoot, outDir)
}

func materialize(fsys afero.Fs, imageRoot, outDir string) (int, error) {
	if imageRoot == "" {
		return 0, fmt.Errorf("%w: empty path", ErrInvalidImagePath)
	}
	if _, err := fsys.Stat(imageRoot); err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return 0, fmt.Errorf("%w: %s", ErrInvalidImagePath, imageRoot)
		}
		return 0, fmt.Errorf("%w: %v", ErrInvalidImagePath, err)
	}
	// The mirror would include its own destination.
	if fileutil.IsWithin(outDir, imageRoot) {
		return 0, fmt.Errorf("%w: image root %s contains %s", ErrInvalidOutputDir, imageRoot, outDir)
	}

	dst := filepath.Join(outDir, filepath.Base(filepath.Clean(imageRoot)))
	n, err := fileutil.CopyTree(fsys, imageRoot, dst)
	if err != nil {
		return n, fmt.Errorf("%w: %v", ErrWriteOutput, err)
	}
	return n, nil
}
