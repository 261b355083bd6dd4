package cleanup

import (
	"context"
	"os"
	"path/filepath"
	"strings"
	"time"

	"go.uber.org/zap"
)

// Service removes conversion scratch directories left behind by a crashed process
type Service struct {
	tempDir         string
	prefix          string
	maxAge          time.Duration
	cleanupInterval time.Duration
	log             *zap.SugaredLogger
	cancel          context.CancelFunc
	done            chan struct{}
}

// NewService creates a new cleanup service for entries in tempDir starting with prefix
func NewService(tempDir, prefix string, maxAge, cleanupInterval time.Duration, log *zap.SugaredLogger) *Service {
	if log == nil {
		log = zap.NewNop().Sugar()
	}
	return &Service{
		tempDir:         tempDir,
		prefix:          prefix,
		maxAge:          maxAge,
		cleanupInterval: cleanupInterval,
		log:             log,
	}
}

// Start runs one sweep immediately, then sweeps every interval until ctx is done or Stop is called
func (s *Service) Start(ctx context.Context) {
	ctx, cancel := context.WithCancel(ctx)
	s.cancel = cancel
	s.done = make(chan struct{})

	// Run initial cleanup
	s.Sweep()

	if s.cleanupInterval <= 0 {
		s.log.Warnw("Periodic cleanup disabled", "interval", s.cleanupInterval)
		close(s.done)
		return
	}

	ticker := time.NewTicker(s.cleanupInterval)

	// Run periodic cleanup
	go func() {
		defer close(s.done)
		defer ticker.Stop()
		for {
			select {
			case <-ticker.C:
				s.Sweep()
			case <-ctx.Done():
				s.log.Info("Cleanup service stopped")
				return
			}
		}
	}()

	s.log.Infow("Cleanup service started", "dir", s.tempDir, "interval", s.cleanupInterval, "max_age", s.maxAge)
}

// Stop stops the cleanup service and waits for the sweeper to exit
func (s *Service) Stop() {
	if s.cancel != nil {
		s.cancel()
		<-s.done
	}
}

// Sweep removes stale entries and returns how many were removed
func (s *Service) Sweep() int {
	entries, err := os.ReadDir(s.tempDir)
	if err != nil {
		if !os.IsNotExist(err) {
			s.log.Errorw("Cleanup read error", "dir", s.tempDir, "error", err)
		}
		return 0
	}

	removed := 0
	for _, entry := range entries {
		// Only touch our own scratch entries
		if !strings.HasPrefix(entry.Name(), s.prefix) {
			continue
		}

		info, err := entry.Info()
		if err != nil {
			continue // Entry vanished mid-sweep
		}
		if time.Since(info.ModTime()) <= s.maxAge {
			continue
		}

		path := filepath.Join(s.tempDir, entry.Name())
		s.log.Debugw("Removing stale temp entry", "path", path)
		if err := os.RemoveAll(path); err != nil {
			s.log.Warnw("Failed to remove temp entry", "path", path, "error", err)
			continue
		}
		removed++
	}

	if removed > 0 {
		s.log.Infow("Removed stale temp entries", "count", removed)
	}
	return removed
}
