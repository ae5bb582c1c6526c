package main

import (
	"context"
	"flag"
	"fmt"
	"os"
	"strings"

	"go.uber.org/zap"
	"golang.org/x/term"

	wasmarena "github.com/wippyai/wasm-arena"
	"github.com/wippyai/wasm-arena/arena"
	"github.com/wippyai/wasm-arena/guest"
	"github.com/wippyai/wasm-arena/host"
	"github.com/wippyai/wasm-arena/stage"
)

func main() {
	var (
		wasmFile    = flag.String("wasm", "", "Path to guest wasm module, e.g. a QOI decoder (default: built-in probe module with decode_stub)")
		memName     = flag.String("memory", "", "Exported memory to stage into (default: memory)")
		memLimit    = flag.Uint("mem-limit", 0, "Memory limit in pages (0 = runtime default)")
		layout      = flag.String("layout", "", "Layout to reserve, e.g. u32x4,u8x10")
		input       = flag.String("input", "", "File to stage and pass to -func")
		funcName    = flag.String("func", guest.ExportDecodeStub, "Decoder export called with (data, len, widthPtr, heightPtr)")
		freeName    = flag.String("free", "", "Export called with the decoder's result pointer afterwards")
		verbose     = flag.Bool("v", false, "Verbose logging")
		interactive = flag.Bool("i", false, "Interactive mode with TUI")
	)
	flag.Parse()

	if *verbose {
		log, err := zap.NewDevelopment()
		if err != nil {
			fmt.Fprintf(os.Stderr, "Error: %v\n", err)
			os.Exit(1)
		}
		defer func() { _ = log.Sync() }()
		arena.SetLogger(log)
		host.SetLogger(log)
	}

	wasm, err := loadWasm(*wasmFile)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}

	cfg := &host.Config{
		MemoryLimitPages: uint32(*memLimit),
		MemoryName:       *memName,
	}

	if *interactive {
		if !term.IsTerminal(int(os.Stdout.Fd())) {
			fmt.Fprintln(os.Stderr, "Error: interactive mode needs a terminal")
			os.Exit(1)
		}
		if err := runInteractive(wasm, describe(*wasmFile), cfg); err != nil {
			fmt.Fprintf(os.Stderr, "Error: %v\n", err)
			os.Exit(1)
		}
		return
	}

	if err := run(wasm, cfg, *layout, *input, *funcName, *freeName); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

func loadWasm(path string) ([]byte, error) {
	if path == "" {
		return guest.Probe(nil), nil
	}
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read file: %w", err)
	}
	return data, nil
}

func describe(path string) string {
	if path == "" {
		return "probe module"
	}
	return path
}

func run(wasm []byte, cfg *host.Config, layout, input, funcName, freeName string) error {
	ctx := context.Background()

	s, err := host.OpenWithConfig(ctx, wasm, cfg)
	if err != nil {
		return fmt.Errorf("open session: %w", err)
	}
	defer s.Close(ctx)

	fmt.Printf("Memory: %d bytes (%d pages)\n", s.Region().Size(), s.Region().Size()/wasmarena.PageSize)
	fmt.Printf("Exports: %s\n", strings.Join(s.Exports(), ", "))

	if layout != "" {
		if err := reserveLayout(s, layout); err != nil {
			return err
		}
	}

	if input != "" {
		if err := decodeFile(ctx, s, input, funcName, freeName); err != nil {
			return err
		}
	}

	return nil
}

func reserveLayout(s *host.Session, layout string) error {
	slots, err := arena.ParseLayout(layout)
	if err != nil {
		return fmt.Errorf("layout: %w", err)
	}

	a := s.Arena()
	descs, err := a.RequestLayout(slots)
	if err != nil {
		a.Reset()
		return fmt.Errorf("request: %w", err)
	}
	res, err := a.Reserve()
	if err != nil {
		a.Reset()
		return fmt.Errorf("reserve: %w", err)
	}

	fmt.Printf("\nReserved %d pages at offset %d (%d bytes)\n", res.Pages, res.Offset, res.Bytes)
	for i, d := range descs {
		fmt.Println(formatDescriptor(i, d))
	}
	fmt.Printf("Memory: %d bytes\n", s.Region().Size())
	return nil
}

func decodeFile(ctx context.Context, s *host.Session, path, funcName, freeName string) error {
	data, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("read input: %w", err)
	}

	fmt.Printf("\nCalling %s with %d bytes...\n", funcName, len(data))
	res, err := stage.Decode(ctx, s, data, stage.Config{Func: funcName, FreeFunc: freeName})
	if err != nil {
		return fmt.Errorf("decode: %w", err)
	}

	for i, d := range res.Layout {
		fmt.Println(formatDescriptor(i, d))
	}
	fmt.Printf("Result: %dx%d, %d pixel bytes at %d\n", res.Width, res.Height, len(res.Pixels), res.Ptr)
	return nil
}
