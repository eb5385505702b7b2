package pipeline

import (
	"os"
	"path/filepath"
	"strings"

	"github.com/AnyUserName/trc/internal/codec"
)

// Source represents a discovered job file.
type Source struct {
	// AbsPath is the path to the file on disk.
	AbsPath string
	// RelPath is the path relative to the input directory.
	RelPath string
	// Key is the asset key (relpath without extension).
	Key string
	// Format is the document format (json, yaml).
	Format string
}

// ScanJobs walks the input directory and returns every file the registry
// can decode. Hidden directories are skipped.
func ScanJobs(inputDir string, registry *codec.Registry) ([]Source, error) {
	var sources []Source

	err := filepath.Walk(inputDir, func(path string, info os.FileInfo, err error) error {
		if err != nil {
			return err
		}
		if info.IsDir() {
			// Skip hidden directories.
			if strings.HasPrefix(info.Name(), ".") && info.Name() != "." && path != inputDir {
				return filepath.SkipDir
			}
			return nil
		}

		dec := registry.ForPath(path)
		if dec == nil {
			return nil
		}

		relPath, err := filepath.Rel(inputDir, path)
		if err != nil {
			return err
		}

		// Key: relative path without extension, using forward slashes.
		key := strings.TrimSuffix(relPath, filepath.Ext(relPath))
		key = filepath.ToSlash(key)

		sources = append(sources, Source{
			AbsPath: path,
			RelPath: filepath.ToSlash(relPath),
			Key:     key,
			Format:  dec.Format(),
		})

		return nil
	})

	return sources, err
}
