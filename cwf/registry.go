package cwf

import (
	"os"
	"path/filepath"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/coastwatch-go/cwf/internal/log"
)

// DefaultCapacity is the number of datasets a Registry allows open at
// once unless configured otherwise.
const DefaultCapacity = 100

// Registry bounds the set of concurrently open datasets and supplies
// scratch space for uncompressed working copies. The zero value is not
// usable; call NewRegistry. Package-level Create and Open share one
// default registry.
type Registry struct {
	capacity int
	tmpDir   string

	slots chan struct{}
}

// RegistryOption configures a Registry.
type RegistryOption func(*Registry)

// WithCapacity sets the maximum number of concurrently open datasets.
func WithCapacity(n int) RegistryOption {
	return func(r *Registry) {
		if n > 0 {
			r.capacity = n
		}
	}
}

// WithTempDir sets the directory for uncompressed working copies. The
// default is the system temp directory.
func WithTempDir(dir string) RegistryOption {
	return func(r *Registry) { r.tmpDir = dir }
}

// NewRegistry returns a registry with the given options applied.
func NewRegistry(opts ...RegistryOption) *Registry {
	r := &Registry{capacity: DefaultCapacity}
	for _, opt := range opts {
		opt(r)
	}
	r.slots = make(chan struct{}, r.capacity)
	return r
}

func (r *Registry) acquire() error {
	select {
	case r.slots <- struct{}{}:
		return nil
	default:
		return codeErr(ErrMaxFiles)
	}
}

func (r *Registry) release() {
	<-r.slots
}

// tempPath returns a fresh scratch file name for a working copy.
func (r *Registry) tempPath() string {
	dir := r.tmpDir
	if dir == "" {
		dir = os.TempDir()
	}
	return filepath.Join(dir, "cwf-"+uuid.NewString()+".tmp")
}

var defaultRegistry = NewRegistry()

// Create creates a dataset in the default registry.
func Create(path string, mode CreateMode) (*File, error) {
	return defaultRegistry.Create(path, mode)
}

// Open opens a dataset in the default registry.
func Open(path string, mode AccessMode) (*File, error) {
	return defaultRegistry.Open(path, mode)
}

// SetLogger installs a logger for library debug events. The library is
// silent by default; passing nil restores that.
func SetLogger(l *zap.Logger) { log.SetLogger(l) }
