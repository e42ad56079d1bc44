package adapters

import (
	"io/fs"
	"os"
	"path/filepath"
	"sync"

	"github.com/ZanzyTHEbar/errbuilder-go"
	"github.com/fsnotify/fsnotify"
	"github.com/rs/zerolog/log"

	"ros2ws/internal/ports"
	"ros2ws/internal/types"
)

// ManifestWatcher reports changes to package.xml files under <root>/src.
// fsnotify is not recursive, so every directory is registered up front and
// newly created directories are added as they appear.
type ManifestWatcher struct {
	fsw    *fsnotify.Watcher
	events chan string
	done   chan struct{}
	once   sync.Once
	wg     sync.WaitGroup
}

func NewManifestWatcher(root string) (*ManifestWatcher, error) {
	if root == "" {
		return nil, errbuilder.New().
			WithCode(errbuilder.CodeInvalidArgument).
			WithMsg("workspace root is empty")
	}
	srcPath := filepath.Join(root, sourceDir)
	if info, err := os.Stat(srcPath); err != nil || !info.IsDir() {
		return nil, errbuilder.New().
			WithCode(errbuilder.CodeNotFound).
			WithMsg("workspace src directory not found: " + srcPath)
	}
	fsw, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, errbuilder.New().
			WithCode(errbuilder.CodeInternal).
			WithMsg("failed to create file watcher").
			WithCause(err)
	}
	w := &ManifestWatcher{
		fsw:    fsw,
		events: make(chan string, 16),
		done:   make(chan struct{}),
	}
	if err := w.addTree(srcPath); err != nil {
		_ = fsw.Close()
		return nil, err
	}
	w.wg.Add(1)
	go w.loop()
	return w, nil
}

// Events delivers the path of every changed manifest. The channel is
// closed by Close.
func (w *ManifestWatcher) Events() <-chan string {
	return w.events
}

// Close releases the watch. It is safe to call more than once.
func (w *ManifestWatcher) Close() error {
	var err error
	w.once.Do(func() {
		close(w.done)
		err = w.fsw.Close()
		w.wg.Wait()
		close(w.events)
	})
	return err
}

func (w *ManifestWatcher) addTree(dir string) error {
	err := filepath.WalkDir(dir, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if d.IsDir() {
			return w.fsw.Add(path)
		}
		return nil
	})
	if err != nil {
		return errbuilder.New().
			WithCode(errbuilder.CodeInternal).
			WithMsg("failed to watch workspace").
			WithCause(err)
	}
	return nil
}

func (w *ManifestWatcher) loop() {
	defer w.wg.Done()
	for {
		select {
		case <-w.done:
			return
		case evt, ok := <-w.fsw.Events:
			if !ok {
				return
			}
			w.handle(evt)
		case err, ok := <-w.fsw.Errors:
			if !ok {
				return
			}
			log.Warn().Err(err).Msg("file watcher error")
		}
	}
}

func (w *ManifestWatcher) handle(evt fsnotify.Event) {
	if evt.Has(fsnotify.Create) {
		if info, err := os.Stat(evt.Name); err == nil && info.IsDir() {
			if err := w.addTree(evt.Name); err != nil {
				log.Warn().Err(err).Str("path", evt.Name).Msg("failed to watch new directory")
			}
			return
		}
	}
	if filepath.Base(evt.Name) != types.ManifestFileName {
		return
	}
	if evt.Has(fsnotify.Chmod) && !evt.Has(fsnotify.Write) {
		return
	}
	select {
	case w.events <- evt.Name:
	case <-w.done:
	}
}

var _ ports.WatcherPort = (*ManifestWatcher)(nil)
