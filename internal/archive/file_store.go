package archive

import (
	"context"
	"fmt"
	"io"
	"os"
	"path/filepath"

	"github.com/rs/zerolog"
)

// fileStore implements Store on the local file system.
type fileStore struct {
	baseDir string
	logger  zerolog.Logger
}

// NewFileStore creates a store that writes objects beneath baseDir.
func NewFileStore(baseDir string, logger zerolog.Logger) Store {
	return &fileStore{
		baseDir: baseDir,
		logger:  logger.With().Str("component", "file-archive-store").Logger(),
	}
}

// Put writes body to baseDir/key. The object appears atomically: it is
// written to a temporary file in the same directory and then renamed.
func (s *fileStore) Put(ctx context.Context, key string, body io.Reader) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	path := filepath.Join(s.baseDir, filepath.FromSlash(key))
	s.logger.Info().Str("file", path).Msg("writing archive file")

	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		s.logger.Error().Err(err).Str("file", path).Msg("failed to create archive directory")
		return fmt.Errorf("failed to create archive directory for %s: %w", path, err)
	}

	tmp, err := os.CreateTemp(filepath.Dir(path), ".archive-*")
	if err != nil {
		return fmt.Errorf("failed to create temporary file for %s: %w", path, err)
	}
	defer os.Remove(tmp.Name())

	written, err := io.Copy(tmp, body)
	if err != nil {
		tmp.Close()
		s.logger.Error().Err(err).Str("file", path).Msg("failed to write archive file")
		return fmt.Errorf("failed to write archive file %s: %w", path, err)
	}
	if err := tmp.Close(); err != nil {
		return fmt.Errorf("failed to close archive file %s: %w", path, err)
	}
	if err := os.Rename(tmp.Name(), path); err != nil {
		return fmt.Errorf("failed to move archive file into place %s: %w", path, err)
	}

	s.logger.Info().
		Str("file", path).
		Int64("bytes", written).
		Msg("archive file written")

	return nil
}
