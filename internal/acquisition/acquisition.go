// Package acquisition obtains the raw survey export as a local file. The
// strategy is an explicit two-branch decision with no hidden state: if the
// cache directory already holds a tabular export it is used as-is, otherwise
// the export is downloaded from the remote object store and cached. Writes
// are atomic (temp name + rename) so a failed download never satisfies the
// cache-detection check on a later run.
package acquisition

import (
	"context"
	"log/slog"
	"os"
	"path/filepath"
	"time"

	"github.com/gofrs/flock"

	"salarydash/internal/errors"
	"salarydash/internal/files"
)

const (
	// CacheFileName is the fixed name a downloaded export is cached under.
	CacheFileName = "survey_results.csv"

	// lockFileName guards the download against concurrent processes. The
	// leading dot and non-export extension keep it out of cache detection.
	lockFileName = ".survey_results.lock"

	// downloadSuffix marks an in-flight download. Never matches the export
	// extensions, so a partial file is invisible to cache detection.
	downloadSuffix = ".download"

	lockRetryDelay = 100 * time.Millisecond
)

// Fetcher downloads the remote survey export into the given destination path.
type Fetcher interface {
	Fetch(ctx context.Context, dest string) error
}

// Service implements the check-local-then-fetch-remote acquisition strategy.
type Service struct {
	fetcher Fetcher
	logger  *slog.Logger
}

// NewService creates a new acquisition service. fetcher may be nil when the
// deployment is cache-only; the remote branch then fails as DataUnavailable.
func NewService(fetcher Fetcher, logger *slog.Logger) *Service {
	if logger == nil {
		logger = slog.Default()
	}
	return &Service{fetcher: fetcher, logger: logger}
}

// ObtainRawFile returns the path of a raw survey export inside cacheDir.
// A cached export wins unconditionally, with no network access and no
// freshness check; otherwise a single download attempt is made. Failure to
// obtain a file either way is a DataUnavailable error.
func (s *Service) ObtainRawFile(ctx context.Context, cacheDir string) (string, error) {
	if err := os.MkdirAll(cacheDir, 0755); err != nil {
		return "", errors.NewStorageError("failed to create cache directory", err).
			WithContext("cache_dir", cacheDir)
	}

	if path, ok, err := s.findCached(cacheDir); err != nil {
		return "", err
	} else if ok {
		s.logger.InfoContext(ctx, "using cached survey export",
			slog.String("path", path))
		return path, nil
	}

	if s.fetcher == nil {
		return "", errors.NewDataUnavailableError("no cached export and no remote fetcher configured", nil).
			WithContext("cache_dir", cacheDir)
	}

	// Serialize the download across processes sharing the cache dir. The
	// loser re-checks the cache and usually finds the winner's file.
	lock := flock.New(filepath.Join(cacheDir, lockFileName))
	locked, err := lock.TryLockContext(ctx, lockRetryDelay)
	if err != nil || !locked {
		return "", errors.NewDataUnavailableError("failed to acquire cache lock", err).
			WithContext("cache_dir", cacheDir)
	}
	defer lock.Unlock()

	if path, ok, err := s.findCached(cacheDir); err != nil {
		return "", err
	} else if ok {
		s.logger.InfoContext(ctx, "survey export cached by concurrent download",
			slog.String("path", path))
		return path, nil
	}

	finalPath := filepath.Join(cacheDir, CacheFileName)
	tempPath := finalPath + downloadSuffix

	s.logger.InfoContext(ctx, "fetching survey export from remote store",
		slog.String("dest", finalPath))

	if err := s.fetcher.Fetch(ctx, tempPath); err != nil {
		os.Remove(tempPath)
		return "", errors.NewDataUnavailableError("failed to download survey export", err)
	}

	if err := os.Rename(tempPath, finalPath); err != nil {
		os.Remove(tempPath)
		return "", errors.NewDataUnavailableError("failed to move downloaded export into place", err)
	}

	s.logger.InfoContext(ctx, "survey export downloaded",
		slog.String("path", finalPath))

	return finalPath, nil
}

// findCached returns the lexically-first export in cacheDir, if any.
func (s *Service) findCached(cacheDir string) (string, bool, error) {
	exports, err := files.NewDiscovery(cacheDir).FindExportFiles(".")
	if err != nil {
		return "", false, errors.NewStorageError("failed to scan cache directory", err).
			WithContext("cache_dir", cacheDir)
	}
	if len(exports) == 0 {
		return "", false, nil
	}
	return exports[0].Path, true, nil
}
