package perch

import (
	"fmt"
	"sync"

	exprlang "github.com/expr-lang/expr"
	exprvm "github.com/expr-lang/expr/vm"
)

// offset moves the popper away from the reference along the main axis by
// the "offset" setting and along the cross axis by the "skid" setting.
// Either may be a number or an expression over reference and popper, such
// as "reference.width / 2" or "-popper.height".
func offset(data *Data, m *Modifier) (*Data, error) {
	distance, err := length(m.Settings["offset"], data)
	if err != nil {
		return nil, fmt.Errorf("offset: %w", err)
	}
	skid, err := length(m.Settings["skid"], data)
	if err != nil {
		return nil, fmt.Errorf("skid: %w", err)
	}

	pop := &data.Offsets.Popper
	switch data.Placement.Side() {
	case Top:
		pop.Y -= distance
		pop.X += skid
	case Bottom:
		pop.Y += distance
		pop.X += skid
	case Left:
		pop.X -= distance
		pop.Y += skid
	case Right:
		pop.X += distance
		pop.Y += skid
	}
	return data, nil
}

// programs caches compiled length expressions by source.
var programs sync.Map

// length resolves a numeric or expression setting to a distance.
func length(v any, data *Data) (float64, error) {
	if v == nil {
		return 0, nil
	}
	if f, ok := toFloat(v); ok {
		return f, nil
	}
	src, ok := v.(string)
	if !ok {
		return 0, fmt.Errorf("unsupported length %T", v)
	}

	program, err := compileLength(src)
	if err != nil {
		return 0, err
	}
	out, err := exprlang.Run(program, lengthEnv(data))
	if err != nil {
		return 0, fmt.Errorf("evaluate %q: %w", src, err)
	}
	f, ok := toFloat(out)
	if !ok {
		return 0, fmt.Errorf("expression %q returned %T, want number", src, out)
	}
	return f, nil
}

func compileLength(src string) (*exprvm.Program, error) {
	if cached, ok := programs.Load(src); ok {
		return cached.(*exprvm.Program), nil
	}
	program, err := exprlang.Compile(src, exprlang.Env(lengthEnv(nil)))
	if err != nil {
		return nil, fmt.Errorf("compile %q: %w", src, err)
	}
	programs.Store(src, program)
	return program, nil
}

// lengthEnv exposes the boxes of the pass to expressions.
func lengthEnv(data *Data) map[string]any {
	var ref, pop Rect
	if data != nil {
		ref = data.Offsets.Reference
		pop = data.Offsets.Popper
	}
	return map[string]any{
		"reference": boxEnv(ref),
		"popper":    boxEnv(pop),
	}
}

func boxEnv(r Rect) map[string]any {
	return map[string]any{
		"x":      r.X,
		"y":      r.Y,
		"width":  r.Width,
		"height": r.Height,
	}
}
