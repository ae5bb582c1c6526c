package region

import (
	"reflect"

	"github.com/tetratelabs/wazero/api"

	wasmarena "github.com/wippyai/wasm-arena"
	"github.com/wippyai/wasm-arena/errors"
)

// DefaultMemoryName is the conventional export name of a guest memory.
const DefaultMemoryName = "memory"

// FromMemory returns a wazero memory as a Region, or nil when mem is nil.
// wazero hands out typed-nil memories for modules without one.
func FromMemory(mem api.Memory) wasmarena.Region {
	if isNilMemory(mem) {
		return nil
	}
	return mem
}

// FromModule resolves a guest memory by export name. An empty name picks
// DefaultMemoryName, or the module's only exported memory.
func FromModule(mod api.Module, name string) (wasmarena.Region, error) {
	if mod == nil {
		return nil, errors.NotInitialized(errors.PhaseLoad, "module")
	}

	if name == "" {
		name = exportedMemoryName(mod)
	}
	if name == "" {
		return nil, errors.NotFound(errors.PhaseLoad, "memory", DefaultMemoryName)
	}

	r := FromMemory(mod.ExportedMemory(name))
	if r == nil {
		return nil, errors.NotFound(errors.PhaseLoad, "memory", name)
	}
	return r, nil
}

func exportedMemoryName(mod api.Module) string {
	defs := mod.ExportedMemoryDefinitions()
	if _, ok := defs[DefaultMemoryName]; ok {
		return DefaultMemoryName
	}
	if len(defs) != 1 {
		return ""
	}
	for n := range defs {
		return n
	}
	return ""
}

func isNilMemory(mem api.Memory) bool {
	if mem == nil {
		return true
	}
	v := reflect.ValueOf(mem)
	return v.Kind() == reflect.Pointer && v.IsNil()
}
