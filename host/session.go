package host

import (
	"context"
	"sort"

	"github.com/tetratelabs/wazero"
	"github.com/tetratelabs/wazero/api"
	"go.uber.org/zap"

	wasmarena "github.com/wippyai/wasm-arena"
	"github.com/wippyai/wasm-arena/arena"
	"github.com/wippyai/wasm-arena/errors"
	"github.com/wippyai/wasm-arena/region"
)

// Config holds configuration for session creation
type Config struct {
	// MemoryLimitPages sets the maximum memory per instance in pages (64KB each).
	// 0 or anything above wasmarena.MaxPages-1 means wasmarena.MaxPages-1,
	// the largest memory whose size fits a Region. Modules declaring a
	// larger maximum fail to compile.
	MemoryLimitPages uint32

	// MemoryName is the exported memory to stage into. Empty means "memory",
	// or the module's only exported memory.
	MemoryName string

	// Logger overrides the package logger for the session and its allocator.
	Logger *zap.Logger
}

// Session owns a wazero runtime, one instantiated guest, and an allocator
// over the guest's memory.
type Session struct {
	runtime  wazero.Runtime
	compiled wazero.CompiledModule
	module   api.Module
	region   wasmarena.Region
	arena    *arena.Allocator
	log      *zap.Logger
}

// Open compiles and instantiates wasm and binds an allocator to its memory.
func Open(ctx context.Context, wasm []byte) (*Session, error) {
	return OpenWithConfig(ctx, wasm, nil)
}

// OpenWithConfig opens a session with custom configuration.
func OpenWithConfig(ctx context.Context, wasm []byte, cfg *Config) (*Session, error) {
	runtimeCfg := wazero.NewRuntimeConfig().WithMemoryLimitPages(memoryLimit(cfg))
	memName := ""
	log := Logger()

	if cfg != nil {
		memName = cfg.MemoryName
		if cfg.Logger != nil {
			log = cfg.Logger
		}
	}

	rt := wazero.NewRuntimeWithConfig(ctx, runtimeCfg)

	compiled, err := rt.CompileModule(ctx, wasm)
	if err != nil {
		_ = rt.Close(ctx)
		return nil, errors.Load("compile module", err)
	}

	mod, err := rt.InstantiateModule(ctx, compiled, wazero.NewModuleConfig())
	if err != nil {
		_ = rt.Close(ctx)
		return nil, errors.Instantiation(err)
	}

	r, err := region.FromModule(mod, memName)
	if err != nil {
		_ = rt.Close(ctx)
		return nil, err
	}

	log.Debug("session opened",
		zap.String("memory", memName),
		zap.Uint32("size", r.Size()))

	return &Session{
		runtime:  rt,
		compiled: compiled,
		module:   mod,
		region:   r,
		arena:    arena.NewWithConfig(r, &arena.Config{Logger: log}),
		log:      log,
	}, nil
}

func memoryLimit(cfg *Config) uint32 {
	limit := uint32(wasmarena.MaxSize / wasmarena.PageSize)
	if cfg != nil && cfg.MemoryLimitPages > 0 && cfg.MemoryLimitPages < limit {
		limit = cfg.MemoryLimitPages
	}
	return limit
}

// Arena returns the allocator bound to the guest memory.
func (s *Session) Arena() *arena.Allocator {
	return s.arena
}

// Region returns the guest memory.
func (s *Session) Region() wasmarena.Region {
	return s.region
}

// Exports returns the sorted names of the guest's exported functions.
func (s *Session) Exports() []string {
	defs := s.compiled.ExportedFunctions()
	names := make([]string, 0, len(defs))
	for name := range defs {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// Call invokes an exported function with raw wasm values.
// Growth done by the guest is picked up by views on their next access.
func (s *Session) Call(ctx context.Context, name string, params ...uint64) ([]uint64, error) {
	if s.module == nil {
		return nil, errors.NotInitialized(errors.PhaseCall, "module")
	}
	fn := s.module.ExportedFunction(name)
	if fn == nil {
		return nil, errors.NotFound(errors.PhaseCall, "function", name)
	}

	before := s.region.Size()
	results, err := fn.Call(ctx, params...)
	if err != nil {
		return nil, errors.CallFailed(name, err)
	}
	if after := s.region.Size(); after != before {
		s.log.Debug("guest grew memory",
			zap.String("func", name),
			zap.Uint32("before", before),
			zap.Uint32("after", after))
	}
	return results, nil
}

// Close releases the runtime and the guest instance.
func (s *Session) Close(ctx context.Context) error {
	return s.runtime.Close(ctx)
}
