package region

import (
	"context"
	"errors"
	"testing"

	"github.com/tetratelabs/wazero"
	"github.com/tetratelabs/wazero/api"

	wasmarena "github.com/wippyai/wasm-arena"
	wasmerrors "github.com/wippyai/wasm-arena/errors"
	"github.com/wippyai/wasm-arena/guest"
)

func instantiate(t *testing.T, wasm []byte) api.Module {
	t.Helper()
	ctx := context.Background()
	rt := wazero.NewRuntime(ctx)
	t.Cleanup(func() { _ = rt.Close(ctx) })

	mod, err := rt.Instantiate(ctx, wasm)
	if err != nil {
		t.Fatalf("failed to instantiate: %v", err)
	}
	return mod
}

func TestFromMemory_Nil(t *testing.T) {
	if r := FromMemory(nil); r != nil {
		t.Error("expected nil for nil memory")
	}
}

func TestFromModule(t *testing.T) {
	mod := instantiate(t, guest.Probe(&guest.ProbeConfig{InitialPages: 1}))

	for _, name := range []string{"", DefaultMemoryName} {
		r, err := FromModule(mod, name)
		if err != nil {
			t.Fatalf("FromModule(%q): %v", name, err)
		}
		if r.Size() != wasmarena.PageSize {
			t.Errorf("FromModule(%q) size = %d", name, r.Size())
		}
	}

	_, err := FromModule(mod, "heap")
	if !errors.Is(err, &wasmerrors.Error{Phase: wasmerrors.PhaseLoad, Kind: wasmerrors.KindNotFound}) {
		t.Errorf("missing memory: got %v", err)
	}

	_, err = FromModule(nil, "")
	if !errors.Is(err, &wasmerrors.Error{Phase: wasmerrors.PhaseLoad, Kind: wasmerrors.KindNotInitialized}) {
		t.Errorf("nil module: got %v", err)
	}
}

func TestFromModule_NoMemory(t *testing.T) {
	mod := instantiate(t, (&guest.Module{}).Encode())

	for _, name := range []string{"", DefaultMemoryName} {
		r, err := FromModule(mod, name)
		if !errors.Is(err, &wasmerrors.Error{Phase: wasmerrors.PhaseLoad, Kind: wasmerrors.KindNotFound}) {
			t.Errorf("FromModule(%q): got %v", name, err)
		}
		if r != nil {
			t.Errorf("FromModule(%q) returned region %T", name, r)
		}
	}

	if r := FromMemory(mod.Memory()); r != nil {
		t.Errorf("FromMemory of a memoryless module = %T, want nil", r)
	}
}

func TestFromModule_SoleExportedMemory(t *testing.T) {
	m := &guest.Module{Memory: &guest.Memory{Name: "heap", Min: 2}}
	mod := instantiate(t, m.Encode())

	r, err := FromModule(mod, "")
	if err != nil {
		t.Fatal(err)
	}
	if r.Size() != 2*wasmarena.PageSize {
		t.Errorf("size = %d", r.Size())
	}

	if _, err := FromModule(mod, DefaultMemoryName); !errors.Is(err, &wasmerrors.Error{Phase: wasmerrors.PhaseLoad, Kind: wasmerrors.KindNotFound}) {
		t.Errorf("default name on a module exporting heap: got %v", err)
	}
}

func TestFromModule_UnexportedMemory(t *testing.T) {
	mod := instantiate(t, (&guest.Module{Memory: &guest.Memory{Min: 1}}).Encode())
	if _, err := FromModule(mod, ""); !errors.Is(err, &wasmerrors.Error{Phase: wasmerrors.PhaseLoad, Kind: wasmerrors.KindNotFound}) {
		t.Errorf("got %v", err)
	}
}

func TestWazeroMemory_Region(t *testing.T) {
	mod := instantiate(t, guest.Probe(&guest.ProbeConfig{InitialPages: 1, MaxPages: 2}))
	r := FromMemory(mod.Memory())

	raw, ok := r.Read(0, 4)
	if !ok {
		t.Fatal("read failed")
	}
	copy(raw, []byte{1, 2, 3, 4})

	prev, ok := r.Grow(1)
	if !ok || prev != 1 {
		t.Fatalf("Grow(1) = %d, %v", prev, ok)
	}
	if r.Size() != 2*wasmarena.PageSize {
		t.Errorf("size = %d", r.Size())
	}
	if got, _ := r.Read(0, 4); got[3] != 4 {
		t.Errorf("contents after growth = %v", got)
	}

	if _, ok := r.Grow(1); ok {
		t.Error("grew past module max")
	}
	if _, ok := r.Read(r.Size()-1, 2); ok {
		t.Error("read past end succeeded")
	}
}
