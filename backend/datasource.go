package backend

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log"
	"os"
	"path/filepath"
	"sync"
	"time"

	"gioui.org/x/explorer"
	"github.com/fsnotify/fsnotify"
	"github.com/google/uuid"
)

// Session is one published state of the loaded dataset. Data is already
// filtered and is never modified once published. Revision increases with
// every publish.
type Session struct {
	ID       string
	Revision uint64
	Source   string
	Data     *Dataset
	Filters  FilterSelection
	Err      error
}

type RWBox[T any] struct {
	t    T
	lock sync.RWMutex
}

func (r *RWBox[T]) Read(f func(*T)) {
	r.lock.RLock()
	defer r.lock.RUnlock()
	f(&r.t)
}

func (r *RWBox[T]) Write(f func(*T)) {
	r.lock.Lock()
	defer r.lock.Unlock()
	f(&r.t)
}

// source remembers where the raw dataset came from so it can be reloaded.
type source struct {
	manifestPath string
	epochsPath   string
	raw          *Dataset
	filters      FilterSelection
	sessionID    string
}

// Datasource loads datasets, watches their files for changes, and publishes
// a new Session to every subscriber whenever the data or the filter selection
// changes.
type Datasource struct {
	appCtx  context.Context
	filter  ChunkFilter
	watcher *fsnotify.Watcher
	source  RWBox[source]
	current RWBox[Session]

	subsLock sync.Mutex
	subs     map[chan Session]struct{}

	settleLock sync.Mutex
	settle     *time.Timer
}

// settleDelay is how long a reload that held back an unterminated line waits
// for another write before reading the file as complete.
const settleDelay = 500 * time.Millisecond

// NewDatasource creates a datasource whose file watching lasts as long as
// appCtx. A nil filter selects TagFilter.
func NewDatasource(appCtx context.Context, filter ChunkFilter) (*Datasource, error) {
	watcher, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, fmt.Errorf("failed creating file watcher: %w", err)
	}
	if filter == nil {
		filter = TagFilter{}
	}
	d := &Datasource{
		appCtx:  appCtx,
		filter:  filter,
		watcher: watcher,
		subs:    map[chan Session]struct{}{},
	}
	go d.watch()
	return d, nil
}

// Sessions streams the current session followed by every later one. Slow
// readers only ever see the newest session. The channel is closed when ctx
// is done. Its signature matches a skel stream provider.
func (d *Datasource) Sessions(ctx context.Context) <-chan Session {
	out := make(chan Session, 1)
	d.subsLock.Lock()
	d.current.Read(func(s *Session) {
		if s.ID != "" {
			out <- *s
		}
	})
	d.subs[out] = struct{}{}
	d.subsLock.Unlock()
	go func() {
		<-ctx.Done()
		d.subsLock.Lock()
		delete(d.subs, out)
		d.subsLock.Unlock()
		close(out)
	}()
	return out
}

// Current returns the most recently published session.
func (d *Datasource) Current() Session {
	var s Session
	d.current.Read(func(c *Session) { s = *c })
	return s
}

func (d *Datasource) publish(s Session) {
	d.subsLock.Lock()
	defer d.subsLock.Unlock()
	d.current.Write(func(c *Session) {
		s.Revision = c.Revision + 1
		*c = s
	})
	for sub := range d.subs {
		select {
		case sub <- s:
		default:
			// Replace the unread session with the newer one.
			select {
			case <-sub:
			default:
			}
			sub <- s
		}
	}
}

// publishRaw filters raw with the current selection and publishes it. A new
// session ID is issued when fresh is set.
func (d *Datasource) publishRaw(fresh bool, loadErr error) Session {
	var session Session
	d.source.Write(func(src *source) {
		if fresh || src.sessionID == "" {
			src.sessionID = uuid.NewString()
		}
		session = Session{
			ID:      src.sessionID,
			Source:  src.manifestPath,
			Filters: src.filters,
			Err:     loadErr,
		}
		if src.raw != nil {
			session.Data = ApplyFilters(src.raw, d.filter, src.filters)
		}
	})
	d.publish(session)
	return session
}

// publishErr republishes the current session with loadErr attached. The
// session ID and data are kept, so whatever is on screen stays there.
func (d *Datasource) publishErr(loadErr error) {
	var session Session
	d.source.Write(func(src *source) {
		if src.sessionID == "" {
			src.sessionID = uuid.NewString()
		}
		d.current.Read(func(c *Session) { session = *c })
		session.ID = src.sessionID
		session.Filters = src.filters
		session.Err = loadErr
	})
	d.publish(session)
}

// UseDataset publishes an in-memory dataset as a new session.
func (d *Datasource) UseDataset(name string, ds *Dataset) {
	d.stopSettle()
	d.unwatchAll()
	d.source.Write(func(src *source) {
		src.manifestPath = name
		src.epochsPath = ""
		src.raw = ds
	})
	d.publishRaw(true, nil)
}

// Load reads a manifest and an optional epochs CSV from disk, publishes them
// as a new session, and reloads whenever either file is written.
func (d *Datasource) Load(manifestPath, epochsPath string) error {
	ds, _, err := loadFiles(manifestPath, epochsPath, false)
	if err != nil {
		log.Printf("failed loading %q: %v", manifestPath, err)
		d.publishErr(err)
		return err
	}
	d.stopSettle()
	d.unwatchAll()
	d.source.Write(func(src *source) {
		src.manifestPath = manifestPath
		src.epochsPath = epochsPath
		src.raw = ds
	})
	for _, path := range []string{manifestPath, epochsPath} {
		if path == "" {
			continue
		}
		if err := d.watcher.Add(path); err != nil {
			log.Printf("failed watching %q: %v", path, err)
		}
	}
	d.publishRaw(true, nil)
	return nil
}

// LoadFromFile asks the user to choose a manifest and loads it. Files the
// platform exposes by path are also watched for changes.
func (d *Datasource) LoadFromFile(expl *explorer.Explorer) error {
	file, err := expl.ChooseFile(".yaml", ".yml", ".json")
	if err != nil {
		return err
	}
	if f, ok := file.(interface{ Name() string }); ok {
		name := f.Name()
		file.Close()
		return d.Load(name, SiblingEpochs(name))
	}
	return d.LoadStream("chosen file", file)
}

// LoadStream decodes a manifest from rc and publishes it. rc is closed.
func (d *Datasource) LoadStream(name string, rc io.ReadCloser) error {
	defer rc.Close()
	ds, err := DecodeManifest(rc)
	if err != nil {
		log.Printf("failed loading %q: %v", name, err)
		d.publishErr(err)
		return err
	}
	d.UseDataset(name, ds)
	return nil
}

// SetFilters changes the filter selection and re-emits the current session
// with freshly identified chunks.
func (d *Datasource) SetFilters(sel FilterSelection) {
	d.source.Write(func(src *source) {
		src.filters = sel
	})
	d.publishRaw(false, nil)
}

// Close stops watching files.
func (d *Datasource) Close() error {
	d.stopSettle()
	return d.watcher.Close()
}

func (d *Datasource) stopSettle() {
	d.settleLock.Lock()
	defer d.settleLock.Unlock()
	if d.settle != nil {
		d.settle.Stop()
		d.settle = nil
	}
}

func (d *Datasource) unwatchAll() {
	for _, path := range d.watcher.WatchList() {
		if err := d.watcher.Remove(path); err != nil {
			log.Printf("failed unwatching %q: %v", path, err)
		}
	}
}

func (d *Datasource) watch() {
	defer d.watcher.Close()
	for {
		select {
		case <-d.appCtx.Done():
			return
		case err, ok := <-d.watcher.Errors:
			if !ok {
				return
			}
			log.Printf("file watcher: %v", err)
		case ev, ok := <-d.watcher.Events:
			if !ok {
				return
			}
			if !ev.Has(fsnotify.Write) {
				continue
			}
			d.reload(ev.Name)
		}
	}
}

func (d *Datasource) reload(changed string) {
	var manifestPath, epochsPath string
	d.source.Read(func(src *source) {
		manifestPath, epochsPath = src.manifestPath, src.epochsPath
	})
	if changed != manifestPath && changed != epochsPath {
		return
	}
	d.stopSettle()
	ds, held, err := loadFiles(manifestPath, epochsPath, true)
	if err != nil {
		// Keep showing the last good data; the file may be mid-write.
		log.Printf("failed reloading %q: %v", changed, err)
		return
	}
	d.replaceRaw(manifestPath, epochsPath, ds)
	if !held {
		return
	}
	d.settleLock.Lock()
	defer d.settleLock.Unlock()
	d.settle = time.AfterFunc(settleDelay, func() {
		d.settled(manifestPath, epochsPath)
	})
}

// settled rereads files whose last write ended without a newline, treating
// them as complete now that no further write has arrived.
func (d *Datasource) settled(manifestPath, epochsPath string) {
	ds, _, err := loadFiles(manifestPath, epochsPath, false)
	if err != nil {
		log.Printf("failed reloading %q: %v", epochsPath, err)
		return
	}
	d.replaceRaw(manifestPath, epochsPath, ds)
}

// replaceRaw publishes ds under the current session if the same files are
// still loaded.
func (d *Datasource) replaceRaw(manifestPath, epochsPath string, ds *Dataset) {
	replaced := false
	d.source.Write(func(src *source) {
		if src.manifestPath != manifestPath || src.epochsPath != epochsPath {
			return
		}
		src.raw = ds
		replaced = true
	})
	if replaced {
		d.publishRaw(false, nil)
	}
}

// loadFiles reads a manifest and its optional epochs CSV. When growing is
// set the CSV may still be being written: an unterminated final line is left
// out and held reports it.
func loadFiles(manifestPath, epochsPath string, growing bool) (ds *Dataset, held bool, err error) {
	f, err := os.Open(manifestPath)
	if err != nil {
		return nil, false, fmt.Errorf("failed opening manifest: %w", err)
	}
	defer f.Close()
	ds, err = DecodeManifest(f)
	if err != nil {
		return nil, false, err
	}
	if epochsPath == "" {
		return ds, false, nil
	}
	ef, err := os.Open(epochsPath)
	if errors.Is(err, os.ErrNotExist) {
		return ds, false, nil
	} else if err != nil {
		return nil, false, fmt.Errorf("failed opening epochs: %w", err)
	}
	defer ef.Close()
	var epochs []Epoch
	if growing {
		epochs, held, err = ReadGrowingEpochs(ef)
	} else {
		epochs, err = ReadEpochs(ef)
	}
	if err != nil {
		return nil, false, err
	}
	ds.Epochs = append(ds.Epochs, epochs...)
	return ds, held, nil
}

// SiblingEpochs returns the conventional epochs file beside a manifest:
// data.yaml pairs with data.epochs.csv.
func SiblingEpochs(manifestPath string) string {
	ext := filepath.Ext(manifestPath)
	return manifestPath[:len(manifestPath)-len(ext)] + ".epochs.csv"
}
