//go:build integration

package harness

import (
	"fmt"

	"github.com/wordgrain/wgtools/parser"
)

// InjectProblems applies p to a parsed WordGrain document in place.
func InjectProblems(data any, p Problems) error {
	doc, ok := data.(*parser.Object)
	if !ok {
		return fmt.Errorf("harness: document is %T, not an object", data)
	}

	if len(p.RemoveMeta) > 0 || len(p.SetMeta) > 0 {
		meta, err := objectField(doc, "meta")
		if err != nil {
			return err
		}
		for _, name := range p.RemoveMeta {
			meta.Delete(name)
		}
		for name, v := range p.SetMeta {
			n, err := parser.Normalize(v)
			if err != nil {
				return fmt.Errorf("harness: meta.%s: %w", name, err)
			}
			meta.Set(name, n)
		}
	}

	if len(p.SetGrain) == 0 && len(p.MoveGrain) == 0 {
		return nil
	}
	grains, err := grainsOf(doc)
	if err != nil {
		return err
	}
	for _, e := range p.SetGrain {
		g, err := grainAt(grains, e.Index)
		if err != nil {
			return err
		}
		if e.Delete {
			g.Delete(e.Field)
			continue
		}
		n, err := parser.Normalize(e.Value)
		if err != nil {
			return fmt.Errorf("harness: grains[%d].%s: %w", e.Index, e.Field, err)
		}
		g.Set(e.Field, n)
	}
	for _, m := range p.MoveGrain {
		if m.From < 0 || m.From >= len(grains) || m.To < 0 || m.To >= len(grains) {
			return fmt.Errorf("harness: cannot move grain %d to %d in %d grains", m.From, m.To, len(grains))
		}
		g := grains[m.From]
		grains = append(grains[:m.From], grains[m.From+1:]...)
		grains = append(grains[:m.To], append([]any{g}, grains[m.To:]...)...)
	}
	doc.Set("grains", grains)
	return nil
}

func objectField(obj *parser.Object, name string) (*parser.Object, error) {
	v, ok := obj.Get(name)
	if !ok {
		return nil, fmt.Errorf("harness: document has no %s", name)
	}
	child, ok := v.(*parser.Object)
	if !ok {
		return nil, fmt.Errorf("harness: %s is %T, not an object", name, v)
	}
	return child, nil
}

func grainsOf(doc *parser.Object) ([]any, error) {
	v, ok := doc.Get("grains")
	if !ok {
		return nil, fmt.Errorf("harness: document has no grains")
	}
	grains, ok := v.([]any)
	if !ok {
		return nil, fmt.Errorf("harness: grains is %T, not an array", v)
	}
	return grains, nil
}

func grainAt(grains []any, i int) (*parser.Object, error) {
	if i < 0 || i >= len(grains) {
		return nil, fmt.Errorf("harness: grain index %d out of range (%d grains)", i, len(grains))
	}
	g, ok := grains[i].(*parser.Object)
	if !ok {
		return nil, fmt.Errorf("harness: grains[%d] is %T, not an object", i, grains[i])
	}
	return g, nil
}
