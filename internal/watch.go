package internal

import (
	"os"
	"path/filepath"

	"github.com/fsnotify/fsnotify"
)

// Watcher wraps fsnotify with image file filtering. It reports newly created
// files under a source root so the organize pipeline can pick them up as they
// arrive; events for directories and non-image files are dropped.
type Watcher struct {
	watcher    *fsnotify.Watcher
	classifier *Classifier
	events     chan string
	errors     chan error
	done       chan bool
}

// NewWatcher watches root and all its subdirectories for created image files.
func NewWatcher(root string, classifier *Classifier) (*Watcher, error) {
	fsWatcher, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, err
	}

	w := &Watcher{
		watcher:    fsWatcher,
		classifier: classifier,
		events:     make(chan string, 100),
		errors:     make(chan error, 10),
		done:       make(chan bool, 1),
	}

	if err := w.addRecursive(root); err != nil {
		fsWatcher.Close()
		return nil, err
	}

	go w.processEvents()

	return w, nil
}

// addRecursive adds a directory and all its subdirectories to the watcher
func (w *Watcher) addRecursive(root string) error {
	return filepath.Walk(root, func(path string, info os.FileInfo, err error) error {
		if err != nil {
			return err
		}
		if info.IsDir() {
			return w.watcher.Add(path)
		}
		return nil
	})
}

// processEvents filters raw fsnotify events down to created image files.
// Newly created directories are added to the watch set so files dropped into
// them are seen too.
func (w *Watcher) processEvents() {
	for {
		select {
		case event, ok := <-w.watcher.Events:
			if !ok {
				return
			}
			if event.Op&fsnotify.Create != fsnotify.Create {
				continue
			}

			if info, err := os.Stat(event.Name); err == nil && info.IsDir() {
				w.watcher.Add(event.Name)
				continue
			}

			if !w.classifier.IsOrganizable(event.Name) {
				continue
			}

			select {
			case w.events <- event.Name:
			default:
				// Event channel is full, drop event
			}

		case err, ok := <-w.watcher.Errors:
			if !ok {
				return
			}
			select {
			case w.errors <- err:
			default:
				// Error channel is full, drop error
			}

		case <-w.done:
			return
		}
	}
}

// Events returns the channel of created image file paths
func (w *Watcher) Events() <-chan string {
	return w.events
}

// Errors returns the channel of watcher errors
func (w *Watcher) Errors() <-chan error {
	return w.errors
}

// Close stops the watcher and cleans up resources
func (w *Watcher) Close() error {
	close(w.done)
	return w.watcher.Close()
}
