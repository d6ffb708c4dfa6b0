package memory

import (
	"context"
	"encoding/json"
	"errors"
	"sync"
	"testing"
	"time"

	"github.com/xraph/revrec/store"
)

func TestPutAndGet(t *testing.T) {
	s := New()
	at := time.Date(2025, time.March, 1, 12, 30, 45, 0, time.UTC)
	obj := store.NewObject("invoices", at, []map[string]string{{"id": "in_1"}})

	if err := s.Put(context.Background(), obj); err != nil {
		t.Fatalf("Put() error = %v", err)
	}

	wantName := "invoices/invoices_20250301_123045.json"
	data, err := s.Get(wantName)
	if err != nil {
		t.Fatalf("Get(%s) error = %v", wantName, err)
	}

	var got []map[string]string
	if err := json.Unmarshal(data, &got); err != nil {
		t.Fatalf("stored payload is not valid JSON: %v", err)
	}
	if len(got) != 1 || got[0]["id"] != "in_1" {
		t.Errorf("payload = %v, want one record with id in_1", got)
	}
}

func TestGetMissing(t *testing.T) {
	s := New()
	if _, err := s.Get("nope"); !errors.Is(err, store.ErrNotFound) {
		t.Errorf("Get() error = %v, want ErrNotFound", err)
	}
}

func TestPutAfterClose(t *testing.T) {
	s := New()
	if err := s.Close(); err != nil {
		t.Fatalf("Close() error = %v", err)
	}

	obj := store.NewObject("invoices", time.Now(), nil)
	if err := s.Put(context.Background(), obj); !errors.Is(err, store.ErrClosed) {
		t.Errorf("Put() after Close error = %v, want ErrClosed", err)
	}
}

func TestConcurrentPuts(t *testing.T) {
	s := New()
	base := time.Date(2025, time.March, 1, 0, 0, 0, 0, time.UTC)

	var wg sync.WaitGroup
	for i := 0; i < 20; i++ {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			obj := store.NewObject("customers", base.Add(time.Duration(i)*time.Second), i)
			if err := s.Put(context.Background(), obj); err != nil {
				t.Errorf("Put() error = %v", err)
			}
		}(i)
	}
	wg.Wait()

	if s.Len() != 20 {
		t.Errorf("Len() = %d, want 20", s.Len())
	}
}
