package archive

import (
	"bytes"
	"context"
	"fmt"
	"io"

	"github.com/rs/zerolog"
)

// fallbackStore writes to S3 first and falls back to the local file system.
type fallbackStore struct {
	s3Store   Store
	fileStore Store
	s3Prefix  string
	s3Enabled bool
	logger    zerolog.Logger
}

// NewFallbackStore creates a store that tries S3 first, then the local file system.
// If s3Store is nil, it will only use the file store.
func NewFallbackStore(s3Store, fileStore Store, s3Prefix string, s3Enabled bool, logger zerolog.Logger) Store {
	return &fallbackStore{
		s3Store:   s3Store,
		fileStore: fileStore,
		s3Prefix:  s3Prefix,
		s3Enabled: s3Enabled,
		logger:    logger.With().Str("component", "fallback-store").Logger(),
	}
}

// Put stores body under s3Prefix+key in S3, or under key locally.
func (s *fallbackStore) Put(ctx context.Context, key string, body io.Reader) error {
	// The body may need to be sent twice.
	data, err := io.ReadAll(body)
	if err != nil {
		return fmt.Errorf("failed to read archive body: %w", err)
	}

	if s.s3Enabled && s.s3Store != nil {
		s3Key := s.s3Prefix + key

		s.logger.Info().
			Str("s3_key", s3Key).
			Str("local_fallback", key).
			Msg("attempting to store in S3")

		err := s.s3Store.Put(ctx, s3Key, bytes.NewReader(data))
		if err == nil {
			return nil
		}

		s.logger.Warn().
			Err(err).
			Str("s3_key", s3Key).
			Msg("failed to store in S3, falling back to local file system")
	} else {
		s.logger.Debug().
			Bool("s3_enabled", s.s3Enabled).
			Bool("has_s3_store", s.s3Store != nil).
			Msg("S3 disabled or not configured, using local file system")
	}

	return s.fileStore.Put(ctx, key, bytes.NewReader(data))
}
