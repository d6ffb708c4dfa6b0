package plugin

import (
	"context"
	"fmt"
	"log/slog"
	"sync"
	"time"
)

// Registry manages all registered plugins and provides efficient dispatch.
// Interfaces are cached at registration time so emission is a slice walk.
type Registry struct {
	mu      sync.RWMutex
	plugins []Plugin
	logger  *slog.Logger

	// Type-cached plugin lists for efficient dispatch
	onScheduleGenerated []OnScheduleGenerated
	onInvoiceSkipped    []OnInvoiceSkipped
	onLineSkipped       []OnLineSkipped
	onExtractCompleted  []OnExtractCompleted
	onExtractFailed     []OnExtractFailed
	onSinkWrite         []OnSinkWrite
}

// NewRegistry creates a new plugin registry.
func NewRegistry() *Registry {
	return &Registry{logger: slog.Default()}
}

// WithLogger sets the logger for the registry.
func (r *Registry) WithLogger(logger *slog.Logger) *Registry {
	r.logger = logger
	return r
}

// Register adds a plugin to the registry and caches its interfaces.
func (r *Registry) Register(p Plugin) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	// Check for duplicate
	for _, existing := range r.plugins {
		if existing.Name() == p.Name() {
			return fmt.Errorf("plugin: duplicate registration: %s", p.Name())
		}
	}

	r.plugins = append(r.plugins, p)

	// Type-switch to cache interfaces
	if v, ok := p.(OnScheduleGenerated); ok {
		r.onScheduleGenerated = append(r.onScheduleGenerated, v)
	}
	if v, ok := p.(OnInvoiceSkipped); ok {
		r.onInvoiceSkipped = append(r.onInvoiceSkipped, v)
	}
	if v, ok := p.(OnLineSkipped); ok {
		r.onLineSkipped = append(r.onLineSkipped, v)
	}
	if v, ok := p.(OnExtractCompleted); ok {
		r.onExtractCompleted = append(r.onExtractCompleted, v)
	}
	if v, ok := p.(OnExtractFailed); ok {
		r.onExtractFailed = append(r.onExtractFailed, v)
	}
	if v, ok := p.(OnSinkWrite); ok {
		r.onSinkWrite = append(r.onSinkWrite, v)
	}

	r.logger.Info("plugin registered", "name", p.Name())

	return nil
}

// Get returns a plugin by name.
func (r *Registry) Get(name string) Plugin {
	r.mu.RLock()
	defer r.mu.RUnlock()

	for _, p := range r.plugins {
		if p.Name() == name {
			return p
		}
	}
	return nil
}

// List returns all registered plugins.
func (r *Registry) List() []Plugin {
	r.mu.RLock()
	defer r.mu.RUnlock()

	result := make([]Plugin, len(r.plugins))
	copy(result, r.plugins)
	return result
}

// Count returns the number of registered plugins.
func (r *Registry) Count() int {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return len(r.plugins)
}

// ──────────────────────────────────────────────────
// Event emission methods
// ──────────────────────────────────────────────────

// EmitScheduleGenerated emits a schedule generated event.
func (r *Registry) EmitScheduleGenerated(ctx context.Context, invoiceID string, entries int) {
	r.mu.RLock()
	plugins := r.onScheduleGenerated
	r.mu.RUnlock()

	for _, p := range plugins {
		if err := r.callWithTimeout(ctx, p.Name(), func() error {
			return p.OnScheduleGenerated(ctx, invoiceID, entries)
		}); err != nil {
			r.logger.Warn("plugin OnScheduleGenerated failed",
				"plugin", p.Name(),
				"error", err,
			)
		}
	}
}

// EmitInvoiceSkipped emits an invoice skipped event.
func (r *Registry) EmitInvoiceSkipped(ctx context.Context, invoiceID, reason string) {
	r.mu.RLock()
	plugins := r.onInvoiceSkipped
	r.mu.RUnlock()

	for _, p := range plugins {
		if err := r.callWithTimeout(ctx, p.Name(), func() error {
			return p.OnInvoiceSkipped(ctx, invoiceID, reason)
		}); err != nil {
			r.logger.Warn("plugin OnInvoiceSkipped failed",
				"plugin", p.Name(),
				"error", err,
			)
		}
	}
}

// EmitLineSkipped emits a line skipped event.
func (r *Registry) EmitLineSkipped(ctx context.Context, invoiceID, lineID string) {
	r.mu.RLock()
	plugins := r.onLineSkipped
	r.mu.RUnlock()

	for _, p := range plugins {
		if err := r.callWithTimeout(ctx, p.Name(), func() error {
			return p.OnLineSkipped(ctx, invoiceID, lineID)
		}); err != nil {
			r.logger.Warn("plugin OnLineSkipped failed",
				"plugin", p.Name(),
				"error", err,
			)
		}
	}
}

// EmitExtractCompleted emits an extraction completed event.
func (r *Registry) EmitExtractCompleted(ctx context.Context, resource string, records int, elapsed time.Duration) {
	r.mu.RLock()
	plugins := r.onExtractCompleted
	r.mu.RUnlock()

	for _, p := range plugins {
		if err := r.callWithTimeout(ctx, p.Name(), func() error {
			return p.OnExtractCompleted(ctx, resource, records, elapsed)
		}); err != nil {
			r.logger.Warn("plugin OnExtractCompleted failed",
				"plugin", p.Name(),
				"error", err,
			)
		}
	}
}

// EmitExtractFailed emits an extraction failed event.
func (r *Registry) EmitExtractFailed(ctx context.Context, resource string, extractErr error) {
	r.mu.RLock()
	plugins := r.onExtractFailed
	r.mu.RUnlock()

	for _, p := range plugins {
		if err := r.callWithTimeout(ctx, p.Name(), func() error {
			return p.OnExtractFailed(ctx, resource, extractErr)
		}); err != nil {
			r.logger.Warn("plugin OnExtractFailed failed",
				"plugin", p.Name(),
				"error", err,
			)
		}
	}
}

// EmitSinkWrite emits a sink write event.
func (r *Registry) EmitSinkWrite(ctx context.Context, name string, records int) {
	r.mu.RLock()
	plugins := r.onSinkWrite
	r.mu.RUnlock()

	for _, p := range plugins {
		if err := r.callWithTimeout(ctx, p.Name(), func() error {
			return p.OnSinkWrite(ctx, name, records)
		}); err != nil {
			r.logger.Warn("plugin OnSinkWrite failed",
				"plugin", p.Name(),
				"error", err,
			)
		}
	}
}

// callWithTimeout calls a plugin function with a timeout.
// Plugins should never block the scheduling pipeline.
func (r *Registry) callWithTimeout(ctx context.Context, pluginName string, fn func() error) error {
	done := make(chan error, 1)

	go func() {
		done <- fn()
	}()

	select {
	case err := <-done:
		return err
	case <-time.After(5 * time.Second):
		return fmt.Errorf("plugin timeout: %s", pluginName)
	case <-ctx.Done():
		return ctx.Err()
	}
}
