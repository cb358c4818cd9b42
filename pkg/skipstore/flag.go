package skipstore

import (
	"sync"

	"github.com/denizgursoy/cukestatus/pkg/logging"
)

// Flag is the in-run skip signal backed by a Store. It is safe for
// concurrent use.
type Flag struct {
	store  Store
	logger logging.Logger

	mu        sync.Mutex
	skipped   bool
	persisted bool
}

// NewFlag creates the signal for a run. It starts active when force is set
// or when the store holds true; a stored true is consumed and reset to
// false. Store errors are logged and treated as false.
func NewFlag(store Store, force bool, logger logging.Logger) *Flag {
	if logger == nil {
		logger = logging.Noop()
	}
	f := &Flag{store: store, logger: logger, skipped: force}

	if store == nil {
		return f
	}

	stored, err := store.Load()
	if err != nil {
		logger.Warn("could not load skip flag", "error", err)
		return f
	}
	if stored {
		f.skipped = true
		if err := store.Save(false); err != nil {
			logger.Warn("could not reset skip flag", "error", err)
		}
		logger.Info("skip flag was set by the previous run, running dry")
	}
	return f
}

// Skipped reports whether remaining scenarios are skipped.
func (f *Flag) Skipped() bool {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.skipped
}

// MarkSkip activates the signal and persists it once per run.
func (f *Flag) MarkSkip() {
	f.mu.Lock()
	defer f.mu.Unlock()

	f.skipped = true
	if f.persisted || f.store == nil {
		return
	}
	if err := f.store.Save(true); err != nil {
		f.logger.Warn("could not persist skip flag", "error", err)
		return
	}
	f.persisted = true
}
