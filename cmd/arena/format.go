package main

import (
	"fmt"
	"strings"

	wasmarena "github.com/wippyai/wasm-arena"
	"github.com/wippyai/wasm-arena/arena"
)

// formatValues renders up to limit elements of d as a bracketed list.
func formatValues(r wasmarena.Region, d arena.Descriptor, limit int) (string, error) {
	switch d.Elem {
	case arena.U8:
		return render[uint8](r, d, limit)
	case arena.U16:
		return render[uint16](r, d, limit)
	case arena.U32:
		return render[uint32](r, d, limit)
	case arena.U64:
		return render[uint64](r, d, limit)
	case arena.S8:
		return render[int8](r, d, limit)
	case arena.S16:
		return render[int16](r, d, limit)
	case arena.S32:
		return render[int32](r, d, limit)
	case arena.S64:
		return render[int64](r, d, limit)
	case arena.F32:
		return render[float32](r, d, limit)
	case arena.F64:
		return render[float64](r, d, limit)
	default:
		return "", fmt.Errorf("no renderer for element type %s", d.Elem)
	}
}

func render[T arena.Element](r wasmarena.Region, d arena.Descriptor, limit int) (string, error) {
	v, err := arena.NewView[T](r, d)
	if err != nil {
		return "", err
	}
	vals, err := v.Values()
	if err != nil {
		return "", err
	}

	parts := make([]string, 0, min(len(vals), limit)+1)
	for i, x := range vals {
		if i == limit {
			parts = append(parts, fmt.Sprintf("… +%d", len(vals)-limit))
			break
		}
		parts = append(parts, fmt.Sprint(x))
	}
	return "[" + strings.Join(parts, " ") + "]", nil
}

// formatDescriptor renders one layout row.
func formatDescriptor(i int, d arena.Descriptor) string {
	aligned := "yes"
	if !d.Aligned() {
		aligned = "no"
	}
	return fmt.Sprintf("%3d  %-4s x%-6d offset=%-10d bytes=%-8d aligned=%s",
		i, d.Elem, d.Count, d.Offset, d.ByteLength, aligned)
}
