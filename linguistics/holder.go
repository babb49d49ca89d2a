package linguistics

import (
	"errors"
	"fmt"
	"sync"
	"sync/atomic"

	"japaneselinguistics/config"
)

// ErrUnavailable is returned by Reload when the new configuration cannot be
// built. The previous linguistics stays in place.
var ErrUnavailable = errors.New("linguistics unavailable")

// Holder publishes the current Linguistics to concurrent readers and swaps it
// on reload.
type Holder struct {
	cur  atomic.Pointer[Linguistics]
	mu   sync.Mutex
	opts []Option
}

// NewHolder starts out with l. opts are used for every reload.
func NewHolder(l *Linguistics, opts ...Option) *Holder {
	h := &Holder{opts: opts}
	h.cur.Store(l)
	return h
}

func (h *Holder) Get() *Linguistics { return h.cur.Load() }

// Reload rebuilds from cfg unless its settings fingerprint matches the current
// one. It reports whether a new Linguistics was installed.
func (h *Holder) Reload(cfg config.Config) (bool, error) {
	h.mu.Lock()
	defer h.mu.Unlock()

	o := buildOptions(h.opts)
	if err := cfg.Validate(); err != nil {
		return false, fmt.Errorf("%w: %w", ErrUnavailable, err)
	}
	s, warnings, err := SettingsFromConfig(cfg, o.fsys)
	if err != nil {
		return false, fmt.Errorf("%w: %w", ErrUnavailable, err)
	}
	if cur := h.cur.Load(); cur != nil && cur.fingerprint == s.Fingerprint() {
		o.logger.Debug("linguistics settings unchanged", "fingerprint", cur.fingerprint)
		return false, nil
	}

	l, err := build(s, warnings, o)
	if err != nil {
		return false, fmt.Errorf("%w: %w", ErrUnavailable, err)
	}
	h.cur.Store(l)
	o.logger.Info("linguistics reloaded", "fingerprint", l.fingerprint, "mode", s.Mode.String())
	return true, nil
}
