package catalog

import (
	"io/fs"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"github.com/rs/zerolog"
)

// Discover walks baseDir recursively and returns every *.json file,
// sorted by full path. Subtrees rooted at _MACOSX directories and
// .DS_Store entries are skipped. A missing base directory is reported
// and yields an empty list; callers treat it the same as "no files".
// Symlinks are not followed (filepath.WalkDir does not descend into
// them), so cyclic links cannot loop the walk.
func Discover(log zerolog.Logger, baseDir string) []string {
	if _, err := os.Stat(baseDir); err != nil {
		log.Warn().Str("dir", baseDir).Msg("directory does not exist")
		return nil
	}

	var files []string
	_ = filepath.WalkDir(baseDir, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			log.Warn().Err(err).Str("path", path).Msg("skipping unreadable path")
			return nil
		}
		if d.IsDir() {
			if d.Name() == "_MACOSX" || d.Name() == ".DS_Store" {
				return filepath.SkipDir
			}
			return nil
		}
		if d.Name() == ".DS_Store" {
			return nil
		}
		if strings.HasSuffix(d.Name(), ".json") {
			files = append(files, path)
		}
		return nil
	})
	sort.Strings(files)
	return files
}
