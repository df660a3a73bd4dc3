package watchers

import (
	"context"
	"path/filepath"
	"sort"
	"strings"
	"sync"
	"time"

	"cdr.dev/slog/v3"
	"github.com/fsnotify/fsnotify"
	"golang.org/x/xerrors"
)

const BatchDelay = 80 * time.Millisecond

// WatchSVG watches dir for created or rewritten .svg files and calls onBatch
// with their base names once the directory has been quiet for delay.
// onBatch runs on the watching goroutine, so batches never overlap.
// WatchSVG returns when ctx is done.
func WatchSVG(ctx context.Context, dir string, delay time.Duration, logger slog.Logger, onBatch func(context.Context, []string)) error {
	watcher, err := fsnotify.NewWatcher()
	if err != nil {
		return xerrors.Errorf("create watcher: %w", err)
	}
	defer watcher.Close()

	if err := watcher.Add(dir); err != nil {
		return xerrors.Errorf("watch %s: %w", dir, err)
	}

	b := newBatcher(delay)
	defer b.stop()

	logger.Info(ctx, "watching for svg changes", slog.F("dir", dir))
	for {
		select {
		case <-ctx.Done():
			return nil
		case event, ok := <-watcher.Events:
			if !ok {
				return nil
			}
			if isSVGWrite(event) {
				b.add(filepath.Base(event.Name))
			}
		case names := <-b.ready:
			logger.Debug(ctx, "svg batch ready", slog.F("files", names))
			onBatch(ctx, names)
		case err, ok := <-watcher.Errors:
			if !ok {
				return nil
			}
			logger.Warn(ctx, "watcher error", slog.Error(err))
		}
	}
}

func isSVGWrite(event fsnotify.Event) bool {
	if !strings.HasSuffix(event.Name, ".svg") {
		return false
	}
	return event.Op&fsnotify.Write == fsnotify.Write || event.Op&fsnotify.Create == fsnotify.Create
}

// batcher coalesces names until no new name arrived for delay, then hands
// the sorted set over on ready.
type batcher struct {
	mu      sync.Mutex
	delay   time.Duration
	pending map[string]struct{}
	timer   *time.Timer
	ready   chan []string
	done    chan struct{}
}

func newBatcher(delay time.Duration) *batcher {
	return &batcher{
		delay:   delay,
		pending: map[string]struct{}{},
		ready:   make(chan []string),
		done:    make(chan struct{}),
	}
}

func (b *batcher) add(name string) {
	b.mu.Lock()
	defer b.mu.Unlock()

	b.pending[name] = struct{}{}
	if b.timer == nil {
		b.timer = time.AfterFunc(b.delay, b.flush)
	} else {
		b.timer.Reset(b.delay)
	}
}

// flush runs on the timer goroutine with no lock held.
func (b *batcher) flush() {
	b.mu.Lock()
	names := make([]string, 0, len(b.pending))
	for name := range b.pending {
		names = append(names, name)
	}
	b.pending = map[string]struct{}{}
	b.timer = nil
	b.mu.Unlock()

	if len(names) == 0 {
		return
	}
	sort.Strings(names)

	select {
	case b.ready <- names:
	case <-b.done:
	}
}

func (b *batcher) stop() {
	b.mu.Lock()
	defer b.mu.Unlock()

	if b.timer != nil {
		b.timer.Stop()
		b.timer = nil
	}
	close(b.done)
}
