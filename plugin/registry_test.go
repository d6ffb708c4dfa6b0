package plugin

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"
)

// recordingPlugin implements every hook and counts invocations.
type recordingPlugin struct {
	name string
	err  error

	mu    sync.Mutex
	calls map[string]int
}

func newRecordingPlugin(name string) *recordingPlugin {
	return &recordingPlugin{name: name, calls: make(map[string]int)}
}

func (p *recordingPlugin) bump(hook string) error {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.calls[hook]++
	return p.err
}

func (p *recordingPlugin) count(hook string) int {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.calls[hook]
}

func (p *recordingPlugin) Name() string { return p.name }

func (p *recordingPlugin) OnScheduleGenerated(context.Context, string, int) error {
	return p.bump("schedule_generated")
}

func (p *recordingPlugin) OnInvoiceSkipped(context.Context, string, string) error {
	return p.bump("invoice_skipped")
}

func (p *recordingPlugin) OnLineSkipped(context.Context, string, string) error {
	return p.bump("line_skipped")
}

func (p *recordingPlugin) OnExtractCompleted(context.Context, string, int, time.Duration) error {
	return p.bump("extract_completed")
}

func (p *recordingPlugin) OnExtractFailed(context.Context, string, error) error {
	return p.bump("extract_failed")
}

func (p *recordingPlugin) OnSinkWrite(context.Context, string, int) error {
	return p.bump("sink_write")
}

func TestRegisterAndDispatch(t *testing.T) {
	r := NewRegistry()
	p := newRecordingPlugin("rec")

	if err := r.Register(p); err != nil {
		t.Fatalf("Register() error = %v", err)
	}
	if r.Count() != 1 {
		t.Fatalf("Count() = %d, want 1", r.Count())
	}
	if got := r.Get("rec"); got != p {
		t.Error("Get() did not return the registered plugin")
	}

	ctx := context.Background()
	r.EmitScheduleGenerated(ctx, "in_1", 10)
	r.EmitScheduleGenerated(ctx, "in_2", 5)
	r.EmitInvoiceSkipped(ctx, "in_3", "draft")
	r.EmitExtractCompleted(ctx, "invoices", 100, time.Second)
	r.EmitSinkWrite(ctx, "invoices/invoices_20250301_000000.json", 100)

	if got := p.count("schedule_generated"); got != 2 {
		t.Errorf("schedule_generated calls = %d, want 2", got)
	}
	if got := p.count("invoice_skipped"); got != 1 {
		t.Errorf("invoice_skipped calls = %d, want 1", got)
	}
	if got := p.count("extract_completed"); got != 1 {
		t.Errorf("extract_completed calls = %d, want 1", got)
	}
	if got := p.count("sink_write"); got != 1 {
		t.Errorf("sink_write calls = %d, want 1", got)
	}
	if got := p.count("extract_failed"); got != 0 {
		t.Errorf("extract_failed calls = %d, want 0", got)
	}
}

func TestRegisterDuplicate(t *testing.T) {
	r := NewRegistry()
	if err := r.Register(newRecordingPlugin("dup")); err != nil {
		t.Fatalf("Register() error = %v", err)
	}
	if err := r.Register(newRecordingPlugin("dup")); err == nil {
		t.Error("expected error registering duplicate name")
	}
}

func TestEmitSwallowsPluginErrors(t *testing.T) {
	r := NewRegistry()
	p := newRecordingPlugin("faulty")
	p.err = errors.New("plugin broken")
	if err := r.Register(p); err != nil {
		t.Fatalf("Register() error = %v", err)
	}

	// A failing plugin must not panic or block the emitter.
	r.EmitScheduleGenerated(context.Background(), "in_1", 1)

	if got := p.count("schedule_generated"); got != 1 {
		t.Errorf("schedule_generated calls = %d, want 1", got)
	}
}

// bareNamed implements only the base interface; it must be registrable
// and simply receive no hook dispatches.
type bareNamed struct{}

func (bareNamed) Name() string { return "bare" }

func TestRegisterHookless(t *testing.T) {
	r := NewRegistry()
	if err := r.Register(bareNamed{}); err != nil {
		t.Fatalf("Register() error = %v", err)
	}
	r.EmitScheduleGenerated(context.Background(), "in_1", 1)
	if len(r.List()) != 1 {
		t.Errorf("List() = %d plugins, want 1", len(r.List()))
	}
}
