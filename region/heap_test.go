package region

import (
	"testing"

	wasmarena "github.com/wippyai/wasm-arena"
)

func TestNewHeap(t *testing.T) {
	h := NewHeap()
	if h.Size() != 0 || h.Pages() != 0 {
		t.Errorf("size = %d pages = %d", h.Size(), h.Pages())
	}
	if h.MaxPages() != DefaultMaxPages {
		t.Errorf("max pages = %d", h.MaxPages())
	}
}

func TestNewHeapWithConfig(t *testing.T) {
	tests := []struct {
		name        string
		cfg         HeapConfig
		wantPages   uint32
		wantMaxPage uint32
	}{
		{"defaults", HeapConfig{}, 0, DefaultMaxPages},
		{"initial", HeapConfig{InitialPages: 2, MaxPages: 8}, 2, 8},
		{"initial above max", HeapConfig{InitialPages: 10, MaxPages: 3}, 3, 3},
		{"max clamped", HeapConfig{MaxPages: wasmarena.MaxPages}, 0, wasmarena.MaxPages - 1},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			h := NewHeapWithConfig(&tt.cfg)
			if h.Pages() != tt.wantPages {
				t.Errorf("pages = %d, want %d", h.Pages(), tt.wantPages)
			}
			if h.MaxPages() != tt.wantMaxPage {
				t.Errorf("max pages = %d, want %d", h.MaxPages(), tt.wantMaxPage)
			}
		})
	}
}

func TestHeap_Grow(t *testing.T) {
	h := NewHeapWithConfig(&HeapConfig{InitialPages: 1, MaxPages: 3})

	raw, _ := h.Read(10, 1)
	raw[0] = 42

	prev, ok := h.Grow(0)
	if !ok || prev != 1 || h.Grows() != 0 {
		t.Errorf("Grow(0) = %d, %v, grows %d", prev, ok, h.Grows())
	}

	prev, ok = h.Grow(2)
	if !ok || prev != 1 {
		t.Fatalf("Grow(2) = %d, %v", prev, ok)
	}
	if h.Size() != 3*wasmarena.PageSize || h.Grows() != 1 {
		t.Errorf("size %d grows %d", h.Size(), h.Grows())
	}
	if got, _ := h.Read(10, 1); got[0] != 42 {
		t.Error("contents not carried over")
	}

	raw[0] = 7
	if got, _ := h.Read(10, 1); got[0] != 42 {
		t.Error("old slice still aliases storage")
	}

	if _, ok := h.Grow(1); ok {
		t.Error("grew past max pages")
	}
	if h.Pages() != 3 {
		t.Errorf("refused growth changed pages to %d", h.Pages())
	}
}

func TestHeap_Read(t *testing.T) {
	h := NewHeapWithConfig(&HeapConfig{InitialPages: 1})

	tests := []struct {
		offset, count uint32
		ok            bool
	}{
		{0, 0, true},
		{0, wasmarena.PageSize, true},
		{wasmarena.PageSize, 0, true},
		{wasmarena.PageSize - 1, 2, false},
		{wasmarena.PageSize + 1, 0, false},
		{1, 0xFFFFFFFF, false},
	}
	for _, tt := range tests {
		got, ok := h.Read(tt.offset, tt.count)
		if ok != tt.ok {
			t.Errorf("Read(%d, %d) ok = %v, want %v", tt.offset, tt.count, ok, tt.ok)
		}
		if ok && uint32(len(got)) != tt.count {
			t.Errorf("Read(%d, %d) len = %d", tt.offset, tt.count, len(got))
		}
		if ok && cap(got) != len(got) {
			t.Errorf("Read(%d, %d) cap = %d", tt.offset, tt.count, cap(got))
		}
	}
}
