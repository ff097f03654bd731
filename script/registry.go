package script

import (
	"fmt"
	"path/filepath"

	"github.com/charmbracelet/log"
	"github.com/milk9111/objects2d/object"
)

// Registry creates tengo scripts from files and recompiles every live
// instance when its file changes on disk.
type Registry struct {
	dir       string
	logger    *log.Logger
	instances map[string][]*Tengo
	watcher   *Watcher
}

// NewRegistry loads scripts from dir/scripts, falling back to the embedded
// copies. An empty dir uses only the embedded scripts and cannot be watched.
func NewRegistry(dir string, logger *log.Logger) *Registry {
	if logger == nil {
		logger = log.Default().WithPrefix("script")
	}
	return &Registry{
		dir:       dir,
		logger:    logger,
		instances: map[string][]*Tengo{},
	}
}

// New is an object.ScriptFunc loading p.Name through the registry when
// p.Source is empty. Instances created from a name are hot reloaded.
func (r *Registry) New(_ *object.Object, p TengoParams) (object.Script, error) {
	if len(p.Source) != 0 || p.Name == "" {
		return CompileTengo(p)
	}

	src, err := Load(r.dir, p.Name)
	if err != nil {
		return nil, fmt.Errorf("load %s: %w", p.Name, err)
	}
	p.Source = src
	t, err := CompileTengo(p)
	if err != nil {
		return nil, err
	}

	key := cleanScriptPath(p.Name)
	r.instances[key] = append(r.instances[key], t)
	t.release = r.forget
	return t, nil
}

// Live returns the number of tracked instances of the named script.
func (r *Registry) Live(name string) int {
	return len(r.instances[cleanScriptPath(name)])
}

func (r *Registry) forget(t *Tengo) {
	key := cleanScriptPath(t.name)
	list := r.instances[key]
	for i, inst := range list {
		if inst == t {
			r.instances[key] = append(list[:i], list[i+1:]...)
			break
		}
	}
	if len(r.instances[key]) == 0 {
		delete(r.instances, key)
	}
}

// Reload recompiles every live instance of the named script from its current
// source. Instances that fail to compile keep running the previous program.
func (r *Registry) Reload(name string) error {
	key := cleanScriptPath(name)
	list := r.instances[key]
	if len(list) == 0 {
		return nil
	}

	src, err := Load(r.dir, key)
	if err != nil {
		return fmt.Errorf("reload %s: %w", key, err)
	}
	for _, t := range list {
		if err := t.Reload(src); err != nil {
			return fmt.Errorf("reload %s: %w", key, err)
		}
	}
	r.logger.Debug("script reloaded", "name", key, "instances", len(list))
	return nil
}

// Watch starts watching dir/scripts for changes.
func (r *Registry) Watch() error {
	if r.dir == "" {
		return ErrNoWatcher
	}
	if r.watcher != nil {
		return nil
	}
	w, err := NewWatcher(filepath.Join(r.dir, "scripts"))
	if err != nil {
		return fmt.Errorf("watch scripts: %w", err)
	}
	r.watcher = w
	return nil
}

// Apply reloads every script changed since the last call. It never blocks and
// must run on the frame thread, between updates.
func (r *Registry) Apply() int {
	if r.watcher == nil {
		return 0
	}

	reloaded := 0
	for {
		select {
		case path, ok := <-r.watcher.Events:
			if !ok {
				return reloaded
			}
			name := filepath.Base(path)
			if r.Live(name) == 0 {
				continue
			}
			if err := r.Reload(name); err != nil {
				r.logger.Warn("script reload failed", "name", name, "err", err)
				continue
			}
			reloaded++
		case err, ok := <-r.watcher.Errors:
			if !ok {
				return reloaded
			}
			r.logger.Warn("script watcher error", "err", err)
		default:
			return reloaded
		}
	}
}

func (r *Registry) Close() error {
	if r.watcher == nil {
		return nil
	}
	err := r.watcher.Close()
	r.watcher = nil
	return err
}
