package main

import (
	"context"
	"strings"
	"testing"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/wippyai/wasm-arena/arena"
	"github.com/wippyai/wasm-arena/guest"
	"github.com/wippyai/wasm-arena/region"
)

func TestFormatValues(t *testing.T) {
	h := region.NewHeapWithConfig(&region.HeapConfig{InitialPages: 0, MaxPages: 4})
	a := arena.New(h)

	small, _ := arena.Request[int16](a, 3)
	big, _ := a.U8(20)
	if _, err := a.Reserve(); err != nil {
		t.Fatal(err)
	}
	_, _ = small.CopyFrom([]int16{-1, 0, 7})
	_ = big.Fill(5)

	got, err := formatValues(h, small.Descriptor(), 16)
	if err != nil || got != "[-1 0 7]" {
		t.Errorf("small = %q, %v", got, err)
	}

	got, err = formatValues(h, big.Descriptor(), 4)
	if err != nil || got != "[5 5 5 5 … +16]" {
		t.Errorf("big = %q, %v", got, err)
	}

	if _, err := formatValues(h, arena.Descriptor{Elem: arena.ElemType{Name: "bool", Width: 1}}, 4); err == nil {
		t.Error("expected error for unknown element type")
	}
}

func TestFormatDescriptor(t *testing.T) {
	row := formatDescriptor(1, arena.Descriptor{Elem: arena.U32, Offset: 6, Count: 2, ByteLength: 8})
	for _, want := range []string{"u32", "x2", "offset=6", "bytes=8", "aligned=no"} {
		if !strings.Contains(row, want) {
			t.Errorf("row %q missing %q", row, want)
		}
	}
}

func TestInteractiveModel_Reserve(t *testing.T) {
	m := newInteractiveModel(guest.Probe(nil), "probe module", nil)
	m.Update(m.open())
	if m.session == nil {
		t.Fatalf("session not opened: %v", m.err)
	}
	defer m.session.Close(context.Background())

	m.input.SetValue("u32x4,u8x10")
	m.Update(tea.KeyMsg{Type: tea.KeyEnter})
	if len(m.gens) != 1 {
		t.Fatalf("generations = %d, status %q", len(m.gens), m.status)
	}
	if descs := m.descriptors(); len(descs) != 2 || descs[1].Offset != 16 {
		t.Errorf("descriptors = %+v", descs)
	}

	m.input.SetValue("i32")
	m.Update(tea.KeyMsg{Type: tea.KeyEnter})
	if len(m.gens) != 1 || !strings.Contains(m.status, "not_found") {
		t.Errorf("bad layout: gens %d status %q", len(m.gens), m.status)
	}
	if m.session.Arena().Pending() != 0 {
		t.Error("failed layout left pending bytes")
	}

	m.Update(tea.KeyMsg{Type: tea.KeyTab})
	m.Update(tea.KeyMsg{Type: tea.KeyDown})
	if m.selected != 1 {
		t.Errorf("selected = %d", m.selected)
	}
	if view := m.View(); !strings.Contains(view, "u8 x10 @ 16") {
		t.Errorf("view missing selected preview:\n%s", view)
	}
}
