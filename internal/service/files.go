package service

import (
	"context"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"time"

	"github.com/gofrs/flock"
	"github.com/google/uuid"
	"golang.org/x/sync/errgroup"

	"config-splitter/internal/gen"
	"config-splitter/internal/logging"
)

const (
	filePerm        = 0o644
	backupTimestamp = "20060102-150405"
	lockRetryDelay  = 50 * time.Millisecond
)

// ErrLocked is returned when another process holds the output lock.
var ErrLocked = errors.New("output file is locked by another process")

// readInputs resolves every input to its content, reading paths in
// parallel. Order is preserved; unreadable files are reported in errs and
// left out of the result.
func readInputs(ctx context.Context, files []FileInput) ([]gen.Input, []string) {
	inputs := make([]*gen.Input, len(files))
	failures := make([]error, len(files))

	eg, egCtx := errgroup.WithContext(ctx)
	eg.SetLimit(maxConcurrentReads)

	for i, f := range files {
		name := f.Name
		if name == "" && f.Path != "" {
			name = filepath.Base(f.Path)
		}

		if f.Content != "" || f.Path == "" {
			inputs[i] = &gen.Input{Name: name, Content: f.Content}
			continue
		}

		eg.Go(func() error {
			if err := egCtx.Err(); err != nil {
				failures[i] = err
				return nil
			}

			data, err := os.ReadFile(f.Path)
			if err != nil {
				failures[i] = err
				return nil
			}

			inputs[i] = &gen.Input{Name: name, Content: string(data)}

			return nil
		})
	}

	_ = eg.Wait()

	var (
		out  []gen.Input
		errs []string
	)

	for i, in := range inputs {
		if failures[i] != nil {
			errs = append(errs, fmt.Sprintf("%s: %v", files[i].Path, failures[i]))
			continue
		}

		out = append(out, *in)
	}

	return out, errs
}

// backupPath returns the timestamped backup name for path.
func backupPath(path string, now time.Time) string {
	return path + ".backup-" + now.Format(backupTimestamp)
}

// backup copies an existing file to its timestamped backup name. A missing
// file needs no backup and yields an empty path.
func backup(path string, now time.Time) (string, error) {
	data, err := os.ReadFile(path)
	if errors.Is(err, fs.ErrNotExist) {
		return "", nil
	}

	if err != nil {
		return "", err
	}

	dst := backupPath(path, now)
	if err := os.WriteFile(dst, data, filePerm); err != nil {
		return "", err
	}

	return dst, nil
}

// writeLocked replaces path with content while holding path.lock. The
// content goes to a temporary file in the same directory first so readers
// never observe a partial write.
func writeLocked(ctx context.Context, path, content string) error {
	logger := logging.FromContext(ctx)

	lock := flock.New(path + ".lock")

	locked, err := lock.TryLockContext(ctx, lockRetryDelay)
	if err != nil {
		return fmt.Errorf("lock %s: %w", path, err)
	}

	if !locked {
		return ErrLocked
	}

	defer func() {
		if err := lock.Unlock(); err != nil {
			logger.Warn().Err(err).Str("path", path).Msg("failed to release lock")
		}
	}()

	tmp := filepath.Join(filepath.Dir(path), "."+filepath.Base(path)+"."+uuid.NewString()+".tmp")

	if err := os.WriteFile(tmp, []byte(content), filePerm); err != nil {
		return fmt.Errorf("write %s: %w", tmp, err)
	}

	if err := os.Rename(tmp, path); err != nil {
		_ = os.Remove(tmp)
		return fmt.Errorf("rename %s: %w", tmp, err)
	}

	logger.Debug().Str("path", path).Int("bytes", len(content)).Msg("wrote merged file")

	return nil
}
