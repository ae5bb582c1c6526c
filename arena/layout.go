package arena

import (
	"strconv"
	"strings"

	wasmarena "github.com/wippyai/wasm-arena"
	"github.com/wippyai/wasm-arena/errors"
)

// Slot is one entry of a layout: count elements of Elem.
type Slot struct {
	Elem  ElemType
	Count int
}

// ParseLayout parses a comma-separated list of "name[xcount]" slots, e.g.
// "u32x4,u8x10". Names are WIT primitive names; count defaults to 1.
func ParseLayout(s string) ([]Slot, error) {
	s = strings.TrimSpace(s)
	if s == "" {
		return nil, errors.InvalidInput(errors.PhaseParse, "empty layout")
	}

	parts := strings.Split(s, ",")
	slots := make([]Slot, 0, len(parts))
	for i, part := range parts {
		part = strings.TrimSpace(part)
		name, countStr, hasCount := strings.Cut(part, "x")

		elem, ok := LookupElem(name)
		if !ok {
			return nil, errors.New(errors.PhaseParse, errors.KindNotFound).
				Path("layout", strconv.Itoa(i)).
				Detail("unknown element type %q", name).
				Build()
		}

		count := 1
		if hasCount {
			n, err := strconv.Atoi(countStr)
			if err != nil {
				return nil, errors.New(errors.PhaseParse, errors.KindInvalidData).
					Path("layout", strconv.Itoa(i)).
					Elem(elem.Name).
					Detail("invalid count %q", countStr).
					Cause(err).
					Build()
			}
			if n < 0 || uint64(n) > wasmarena.MaxSize/uint64(elem.Width) {
				return nil, errors.New(errors.PhaseParse, errors.KindInvalidData).
					Path("layout", strconv.Itoa(i)).
					Elem(elem.Name).
					Value(n).
					Detail("count %d out of range", n).
					Build()
			}
			count = n
		}
		slots = append(slots, Slot{Elem: elem, Count: count})
	}
	return slots, nil
}

// RequestLayout requests every slot in order. If any slot fails the
// generation is left with the slots requested before it.
func (a *Allocator) RequestLayout(slots []Slot) ([]Descriptor, error) {
	descs := make([]Descriptor, 0, len(slots))
	for i, s := range slots {
		d, err := a.Request(s.Elem, s.Count)
		if err != nil {
			var e *errors.Error
			if errors.As(err, &e) {
				scoped := *e
				scoped.Path = []string{"layout", strconv.Itoa(i)}
				return descs, &scoped
			}
			return descs, err
		}
		descs = append(descs, d)
	}
	return descs, nil
}
