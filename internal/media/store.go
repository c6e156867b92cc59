package media

import (
	"context"
	"os"
	"path/filepath"
	"strings"

	"github.com/pkg/errors"
	"github.com/rs/zerolog"
)

// Store manages files under the media root.
type Store struct {
	root   string
	logger *zerolog.Logger
}

func NewStore(root string, logger *zerolog.Logger) *Store {
	return &Store{root: root, logger: logger}
}

// resolve returns the on-disk path, or false when path escapes the root.
func (s *Store) resolve(path string) (string, bool) {
	if path == "" || isAbsolute(path) || filepath.IsAbs(path) {
		return "", false
	}
	root := filepath.Clean(s.root)
	full := filepath.Join(root, filepath.FromSlash(path))
	rel, err := filepath.Rel(root, full)
	if err != nil || rel == "." || rel == ".." || strings.HasPrefix(rel, ".."+string(filepath.Separator)) {
		return "", false
	}
	return full, true
}

// Remove deletes the given stored paths and returns how many were removed.
// Missing files and unsafe paths are skipped.
func (s *Store) Remove(ctx context.Context, paths []string) (int, error) {
	removed := 0
	for _, p := range paths {
		if err := ctx.Err(); err != nil {
			return removed, err
		}

		full, ok := s.resolve(p)
		if !ok {
			s.logger.Warn().Str("path", p).Msg("skipping media path outside root")
			continue
		}

		if err := os.Remove(full); err != nil {
			if os.IsNotExist(err) {
				continue
			}
			return removed, errors.Wrapf(err, "removing %s", p)
		}
		removed++
	}
	return removed, nil
}
