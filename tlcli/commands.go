package main

import (
	"errors"
	"fmt"
	"strconv"
	"strings"

	"github.com/npillmayer/textlayout/layout"
	"github.com/npillmayer/textlayout/script"
	"github.com/npillmayer/textlayout/tabs"
	"github.com/pterm/pterm"
)

var errNoText = errors.New("no text set")

func textOp(intp *Intp, op *Op) (error, bool) {
	intp.text = strings.ReplaceAll(op.arg, `\n`, "\n")
	intp.text = strings.ReplaceAll(intp.text, `\t`, "\t")
	intp.layout.SetContent(intp.text, intp.font)
	cmplx, ideo := script.Scan(intp.layout.Text())
	tracer().Infof("text has %d code points, complex=%v, ideographic=%v",
		intp.layout.CharCount(), cmplx, ideo)
	return nil, false
}

func fontOp(intp *Intp, op *Op) (error, bool) {
	if op.noArg() {
		if intp.font != nil {
			printMetrics(intp.font)
		}
		return nil, false
	}
	name, sz, _ := strings.Cut(op.arg, " ")
	size := float32(16)
	if intp.font != nil {
		size = intp.font.Size()
	}
	if sz != "" {
		s, err := strconv.ParseFloat(strings.TrimSpace(sz), 32)
		if err != nil {
			return fmt.Errorf("font size not numeric: %v", sz), false
		}
		size = float32(s)
	}
	return intp.loadFont(name, size), false
}

func numArg(op *Op) (float32, error) {
	arg, ok := op.hasArg()
	if !ok {
		return 0, fmt.Errorf("%s needs a numeric argument", opNames[op.code])
	}
	x, err := strconv.ParseFloat(arg, 32)
	if err != nil {
		return 0, fmt.Errorf("argument of %s not numeric: %v", opNames[op.code], arg)
	}
	return float32(x), nil
}

func numArgs(op *Op, n int) ([]float32, error) {
	fields := strings.Fields(op.arg)
	if len(fields) < n {
		return nil, fmt.Errorf("%s needs %d numeric arguments", opNames[op.code], n)
	}
	args := make([]float32, len(fields))
	for i, f := range fields {
		x, err := strconv.ParseFloat(f, 32)
		if err != nil {
			return nil, fmt.Errorf("argument of %s not numeric: %v", opNames[op.code], f)
		}
		args[i] = float32(x)
	}
	return args, nil
}

func wrapOp(intp *Intp, op *Op) (error, bool) {
	w, err := numArg(op)
	if err != nil {
		return err, false
	}
	if !intp.layout.SetWrapWidth(w) {
		tracer().Infof("wrap width unchanged, no new layout necessary")
	}
	return nil, false
}

func alignOp(intp *Intp, op *Op) (error, bool) {
	a, err := layout.ParseAlignment(op.arg)
	if err != nil {
		return err, false
	}
	intp.layout.SetAlignment(a)
	return nil, false
}

func dirOp(intp *Intp, op *Op) (error, bool) {
	d, err := layout.ParseDirection(op.arg)
	if err != nil {
		return err, false
	}
	intp.layout.SetDirection(d)
	return nil, false
}

func spacingOp(intp *Intp, op *Op) (error, bool) {
	s, err := numArg(op)
	if err != nil {
		return err, false
	}
	intp.layout.SetLineSpacing(s)
	return nil, false
}

// tabsOp sets either a tab size ("tabs 4") or a list of tab stops followed
// by the default interval ("tabs 30 70 100 / 50").
func tabsOp(intp *Intp, op *Op) (error, bool) {
	stops, def, hasStops := strings.Cut(op.arg, "/")
	if !hasStops {
		n, err := strconv.Atoi(strings.TrimSpace(op.arg))
		if err != nil {
			return fmt.Errorf("tab size not numeric: %v", op.arg), false
		}
		intp.layout.SetTabPolicy(nil)
		intp.layout.SetTabSize(n)
		return nil, false
	}
	d, err := numArg(&Op{code: op.code, arg: strings.TrimSpace(def)})
	if err != nil {
		return err, false
	}
	positions, err := numArgs(&Op{code: op.code, arg: stops}, 0)
	if err != nil {
		return err, false
	}
	intp.layout.SetTabPolicy(tabs.NewStops(d, positions...))
	return nil, false
}

func (intp *Intp) checkText() error {
	if intp.font == nil || intp.layout.CharCount() == 0 {
		return errNoText
	}
	return nil
}

func linesOp(intp *Intp, op *Op) (error, bool) {
	if err := intp.checkText(); err != nil {
		return err, false
	}
	printLines(intp.layout)
	return nil, false
}

func runsOp(intp *Intp, op *Op) (error, bool) {
	if err := intp.checkText(); err != nil {
		return err, false
	}
	printRuns(intp.layout, op.arg == "names")
	return nil, false
}

// caretOp expects an offset and optionally "trailing".
func caretOp(intp *Intp, op *Op) (error, bool) {
	if err := intp.checkText(); err != nil {
		return err, false
	}
	arg, edge, _ := strings.Cut(op.arg, " ")
	offset, err := strconv.Atoi(arg)
	if err != nil {
		return fmt.Errorf("caret offset not numeric: %v", arg), false
	}
	leading := strings.TrimSpace(edge) != "trailing"
	printPath("caret", intp.layout.CaretShape(offset, leading, 0, 0))
	return nil, false
}

func hitOp(intp *Intp, op *Op) (error, bool) {
	if err := intp.checkText(); err != nil {
		return err, false
	}
	xy, err := numArgs(op, 2)
	if err != nil {
		return err, false
	}
	hit := intp.layout.HitInfo(xy[0], xy[1])
	edge := "trailing"
	if hit.Leading {
		edge = "leading"
	}
	pterm.Printf("hit at (%.2f,%.2f): code point %d, %s edge, insertion index %d\n",
		xy[0], xy[1], hit.CharIndex, edge, hit.InsertionIndex())
	return nil, false
}

// rangeOp expects start and end offsets and optionally "underline" or
// "strikethrough".
func rangeOp(intp *Intp, op *Op) (error, bool) {
	if err := intp.checkText(); err != nil {
		return err, false
	}
	fields := strings.Fields(op.arg)
	if len(fields) < 2 {
		return errors.New("range needs start and end offsets"), false
	}
	start, err1 := strconv.Atoi(fields[0])
	end, err2 := strconv.Atoi(fields[1])
	if err1 != nil || err2 != nil {
		return fmt.Errorf("range offsets not numeric: %v", fields[:2]), false
	}
	typ := layout.RangeText
	if len(fields) > 2 {
		switch fields[2] {
		case "underline":
			typ = layout.RangeUnderline
		case "strikethrough":
			typ = layout.RangeStrikethrough
		}
	}
	printPath("range", intp.layout.Range(start, end, typ, 0, 0))
	return nil, false
}

func boundsOp(intp *Intp, op *Op) (error, bool) {
	if err := intp.checkText(); err != nil {
		return err, false
	}
	l := intp.layout
	data := [][]string{
		{"Bounds", "Rectangle", "Width", "Height"},
	}
	for _, b := range []struct {
		name string
		r    layout.Rect
	}{
		{"logical", l.Bounds()},
		{"with bearings", l.BoundsOf(nil)},
		{"visual", l.VisualBounds(0)},
		{"visual+decoration", l.VisualBounds(layout.RangeUnderline | layout.RangeStrikethrough)},
	} {
		data = append(data, []string{b.name, b.r.String(),
			fmt.Sprintf("%.2f", b.r.Width()), fmt.Sprintf("%.2f", b.r.Height())})
	}
	pterm.DefaultTable.WithHasHeader().WithData(data).Render()
	return nil, false
}
