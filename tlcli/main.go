package main

import (
	"errors"
	"flag"
	"fmt"
	"os"
	"strings"

	"github.com/chzyer/readline"
	"github.com/npillmayer/schuko/schukonf/testconfig"
	"github.com/npillmayer/schuko/tracing"
	"github.com/npillmayer/schuko/tracing/gologadapter"
	"github.com/npillmayer/schuko/tracing/trace2go"
	"github.com/npillmayer/textlayout"
	"github.com/npillmayer/textlayout/fontres"
	"github.com/npillmayer/textlayout/layout"
	"github.com/pterm/pterm"
)

// tracer traces with key 'textlayout.cli'
func tracer() tracing.Trace {
	return tracing.Select("textlayout.cli")
}

func main() {
	initDisplay()

	// set up logging
	tracing.RegisterTraceAdapter("go", gologadapter.GetAdapter(), false)
	conf := testconfig.Conf{
		"tracing.adapter":         "go",
		"trace.textlayout.cli":    "Info",
		"trace.textlayout.layout": "Error",
		"trace.textlayout.fonts":  "Error",
	}
	if err := trace2go.ConfigureRoot(conf, "trace", trace2go.ReplaceTracers(true)); err != nil {
		fmt.Printf("error configuring tracing")
		os.Exit(1)
	}
	tracing.SetTraceSelector(trace2go.Selector())

	// command line flags
	tlevel := flag.String("trace", "Info", "Trace level [Debug|Info|Error]")
	fontname := flag.String("font", "goregular", "Font to load (file path, goregular or gomono)")
	size := flag.Float64("size", 16, "Font size")
	flag.Parse()
	tracer().SetTraceLevel(tracing.LevelError)           // will set the correct level later
	pterm.Info.Println("Welcome to the text layout CLI") // colored welcome message
	//
	// set up REPL
	repl, err := readline.New("tl > ")
	if err != nil {
		tracer().Errorf(err.Error())
		os.Exit(3)
	}
	intp := newIntp(repl)
	//
	// load font to use
	if err := intp.loadFont(*fontname, float32(*size)); err != nil { // font name provided by flag
		tracer().Errorf(err.Error())
		os.Exit(4)
	}
	//
	// start receiving commands
	pterm.Info.Println("Quit with <ctrl>D") // inform user how to stop the CLI
	level, ok := traceLevels[*tlevel]
	if !ok {
		tracer().Errorf("Invalid trace level: %s", *tlevel)
		os.Exit(5)
	}
	tracer().SetTraceLevel(level)
	if level == tracing.LevelDebug {
		tracing.Select("textlayout.layout").SetTraceLevel(level)
		tracing.Select("textlayout.fonts").SetTraceLevel(level)
	}
	tracer().Infof("Trace level is %s", *tlevel)
	intp.REPL() // go into interactive mode
}

var traceLevels = map[string]tracing.TraceLevel{
	"Debug": tracing.LevelDebug,
	"Info":  tracing.LevelInfo,
	"Error": tracing.LevelError,
}

// We use pterm for moderately fancy output.
func initDisplay() {
	pterm.EnableDebugMessages()
	pterm.Info.Prefix = pterm.Prefix{
		Text:  " !  ",
		Style: pterm.NewStyle(pterm.BgCyan, pterm.FgBlack),
	}
	pterm.Error.Prefix = pterm.Prefix{
		Text:  " Error",
		Style: pterm.NewStyle(pterm.BgRed, pterm.FgBlack),
	}
}

// Intp is our interpreter object
type Intp struct {
	font   fontres.Font
	layout *layout.Layout
	text   string
	repl   *readline.Instance
}

func newIntp(repl *readline.Instance) *Intp {
	return &Intp{repl: repl, layout: layout.New()}
}

func (intp *Intp) String() string {
	if intp == nil || intp.font == nil {
		return "()"
	}
	l := intp.layout
	return fmt.Sprintf("( font=%s wrap=%g align=%s dir=%s chars=%d )", intp.font.Key(),
		l.WrapWidth(), l.Alignment(), l.Direction(), l.CharCount())
}

// REPL starts interactive mode.
func (intp *Intp) REPL() {
	for {
		pterm.Println(intp.String())
		line, err := intp.repl.Readline()
		if err != nil { // io.EOF
			break
		}
		if line = strings.TrimSpace(line); line == "" {
			continue
		}
		cmd, err := parseCommand(line)
		if err != nil {
			tracer().Errorf(err.Error())
			continue
		}
		err, quit := intp.execute(cmd)
		if err != nil {
			tracer().Errorf(err.Error())
			continue
		}
		if quit {
			break
		}
	}
	pterm.Info.Println("Good bye!")
}

type Op struct {
	code int
	arg  string
}

type Command struct {
	count int
	op    [32]Op
}

const NOOP = -1
const (
	// op-code QUIT will not have arguments
	QUIT int = iota
	// op-codes below may have arguments
	HELP
	TEXT
	FONT
	WRAP
	ALIGN
	DIR
	SPACING
	TABS
	LINES
	RUNS
	CARET
	HIT
	RANGE
	BOUNDS
)

var opMap = map[string]int{
	"quit":    QUIT,
	"help":    HELP,
	"text":    TEXT,
	"font":    FONT,
	"wrap":    WRAP,
	"align":   ALIGN,
	"dir":     DIR,
	"spacing": SPACING,
	"tabs":    TABS,
	"lines":   LINES,
	"runs":    RUNS,
	"caret":   CARET,
	"hit":     HIT,
	"range":   RANGE,
	"bounds":  BOUNDS,
}

var opNames = []string{
	"quit",
	"help",
	"text",
	"font",
	"wrap",
	"align",
	"dir",
	"spacing",
	"tabs",
	"lines",
	"runs",
	"caret",
	"hit",
	"range",
	"bounds",
}

var errTooManySteps = errors.New("too many commands in one line")

// parseCommand splits a line into steps separated by ';'. Each step is an
// op-code followed by its argument, e.g. "text Hello World; wrap 100; lines".
func parseCommand(line string) (*Command, error) {
	cmd := &Command{}
	for i := range cmd.op {
		cmd.op[i].code = NOOP
	}
	steps := strings.Split(line, ";")
	if len(steps) > len(cmd.op) {
		return nil, errTooManySteps
	}
	for _, step := range steps {
		step = strings.TrimSpace(step)
		if step == "" {
			continue
		}
		name, arg, _ := strings.Cut(step, " ")
		code, ok := opMap[strings.ToLower(name)]
		if !ok {
			code, arg = HELP, ""
		}
		cmd.op[cmd.count] = Op{code: code, arg: strings.TrimSpace(arg)}
		cmd.count++
		if code == QUIT {
			break
		}
		tracer().Debugf("parsed command: %s %q", opNames[code], arg)
	}
	return cmd, nil
}

var commandFn map[int]func(*Intp, *Op) (error, bool)

func init() {
	commandFn = map[int]func(*Intp, *Op) (error, bool){
		QUIT:    quitOp,
		HELP:    helpOp,
		TEXT:    textOp,
		FONT:    fontOp,
		WRAP:    wrapOp,
		ALIGN:   alignOp,
		DIR:     dirOp,
		SPACING: spacingOp,
		TABS:    tabsOp,
		LINES:   linesOp,
		RUNS:    runsOp,
		CARET:   caretOp,
		HIT:     hitOp,
		RANGE:   rangeOp,
		BOUNDS:  boundsOp,
	}
}

func (intp *Intp) execute(cmd *Command) (err error, stop bool) {
	tracer().Debugf("cmd = %v", cmd.op[:cmd.count])
	for _, c := range cmd.op {
		if c.code == NOOP {
			break
		}
		f, ok := commandFn[c.code]
		if !ok {
			pterm.Error.Printf("unknown command code: %d\n", c.code)
			return nil, false
		}
		err, stop = f(intp, &c)
		if err != nil {
			pterm.Error.Println(err)
			return
		}
		if stop {
			return
		}
	}
	return
}

func quitOp(intp *Intp, op *Op) (error, bool) {
	pterm.Println("Goodbye!")
	return nil, true
}

// --- Font Loading -----------------------------------------------------

func (intp *Intp) loadFont(fontname string, size float32) (err error) {
	f, err := textlayout.LoadFont(fontname, size)
	if err != nil {
		tracer().Errorf("cannot load font %s: %s", fontname, err)
		return err
	}
	intp.font = f
	intp.layout.SetContent(intp.text, f)
	tracer().Infof("loaded font = %s", f.Key())
	return nil
}

// ----------------------------------------------------------------------

func (op *Op) noArg() bool {
	return op.arg == ""
}

func (op *Op) hasArg() (string, bool) {
	if op.arg == "" {
		return "", false
	}
	return op.arg, true
}
