package backup

import (
	"context"
	"fmt"
	"path"
	"time"

	"github.com/sirupsen/logrus"
)

// Uploader stores a single snapshot file under a key and returns its location.
type Uploader interface {
	Upload(ctx context.Context, localPath, bucket, key string) (string, error)
}

// Config controls the periodic snapshot loop.
type Config struct {
	DatabasePath string
	Bucket       string
	KeyPrefix    string
	Interval     time.Duration
	Logger       *logrus.Logger
}

// Runner periodically uploads the sqlite database file to object storage.
// SQLite keeps the whole store in one file, so a plain copy of that file is a
// consistent-enough snapshot for a single-writer deployment.
type Runner struct {
	cfg      Config
	uploader Uploader
	done     chan struct{}
}

func NewRunner(cfg Config, uploader Uploader) *Runner {
	if cfg.Interval <= 0 {
		cfg.Interval = time.Hour
	}
	return &Runner{
		cfg:      cfg,
		uploader: uploader,
		done:     make(chan struct{}),
	}
}

// Start launches the snapshot loop. It returns immediately; the loop stops
// when ctx is cancelled.
func (r *Runner) Start(ctx context.Context) {
	go func() {
		defer close(r.done)

		ticker := time.NewTicker(r.cfg.Interval)
		defer ticker.Stop()

		for {
			select {
			case <-ctx.Done():
				return
			case <-ticker.C:
				if err := r.snapshot(ctx); err != nil {
					r.cfg.Logger.Warnf("backup snapshot: %v", err)
				}
			}
		}
	}()
}

// Wait blocks until the loop has exited.
func (r *Runner) Wait() {
	<-r.done
}

func (r *Runner) snapshot(ctx context.Context) error {
	uploadCtx, cancel := context.WithTimeout(ctx, 5*time.Minute)
	defer cancel()

	key := snapshotKey(r.cfg.KeyPrefix, time.Now().UTC())
	location, err := r.uploader.Upload(uploadCtx, r.cfg.DatabasePath, r.cfg.Bucket, key)
	if err != nil {
		return fmt.Errorf("upload snapshot: %w", err)
	}

	r.cfg.Logger.Infof("database snapshot uploaded to %s", location)
	return nil
}

func snapshotKey(prefix string, now time.Time) string {
	name := fmt.Sprintf("taskboard-%s.db", now.Format("20060102T150405Z"))
	if prefix == "" {
		return name
	}
	return path.Join(prefix, name)
}
