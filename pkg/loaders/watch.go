package loaders

import (
	"fmt"
	"path/filepath"

	"github.com/df07/go-whitted-raytracer/pkg/core"
	"github.com/fsnotify/fsnotify"
)

// FileWatcher reports changes to a single file
type FileWatcher struct {
	watcher *fsnotify.Watcher
	path    string
	changes chan struct{}
	done    chan struct{}
	logger  core.Logger
}

// WatchFile starts watching path. The parent directory is watched so that
// editors that replace the file on save are still noticed.
func WatchFile(path string, logger core.Logger) (*FileWatcher, error) {
	if logger == nil {
		logger = core.NopLogger{}
	}

	absPath, err := filepath.Abs(path)
	if err != nil {
		return nil, fmt.Errorf("failed to resolve %s: %w", path, err)
	}

	watcher, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, fmt.Errorf("failed to create watcher: %w", err)
	}
	if err := watcher.Add(filepath.Dir(absPath)); err != nil {
		watcher.Close()
		return nil, fmt.Errorf("failed to watch %s: %w", path, err)
	}

	fw := &FileWatcher{
		watcher: watcher,
		path:    absPath,
		changes: make(chan struct{}, 1),
		done:    make(chan struct{}),
		logger:  logger,
	}
	go fw.run()
	return fw, nil
}

// Changes delivers a signal after the file is written, created or renamed.
// Bursts of events collapse into a single pending signal.
func (fw *FileWatcher) Changes() <-chan struct{} {
	return fw.changes
}

// Close stops watching
func (fw *FileWatcher) Close() error {
	close(fw.done)
	return fw.watcher.Close()
}

func (fw *FileWatcher) run() {
	for {
		select {
		case <-fw.done:
			return
		case event, ok := <-fw.watcher.Events:
			if !ok {
				return
			}
			if filepath.Clean(event.Name) != fw.path {
				continue
			}
			if event.Op&(fsnotify.Write|fsnotify.Create|fsnotify.Rename) == 0 {
				continue
			}
			fw.logger.Debugf("Scene file changed: %s", event)
			select {
			case fw.changes <- struct{}{}:
			default:
			}
		case err, ok := <-fw.watcher.Errors:
			if !ok {
				return
			}
			fw.logger.Warningf("File watcher error: %v", err)
		}
	}
}
