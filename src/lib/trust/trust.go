package trust

import (
	"fmt"
	"io"
)

type MaskLevel int

const (
	Nothing   MaskLevel = 0x0
	ErrorMask MaskLevel = 0x1
	WarnMask  MaskLevel = 0x2
	InfoMask  MaskLevel = 0x4
	DebugMask MaskLevel = 0x8
	StatsMask MaskLevel = 0x10
	fatalMask MaskLevel = 0x80
)

var level = fatalMask | StatsMask | ErrorMask | WarnMask | InfoMask | DebugMask

// nothing is printed until somebody supplies a place to print it; on the
// board the UART is also the echo stream
var output io.Writer = io.Discard

var color = false

// on bare metal there is nobody to exit to
var exit = func(code int) {
	for {
	}
}

// SetOutput directs log lines to w and returns the previous writer.
func SetOutput(w io.Writer) io.Writer {
	prev := output
	if w == nil {
		w = io.Discard
	}
	output = w
	return prev
}

// SetExit replaces what Fatalf does after printing.
func SetExit(fn func(code int)) {
	exit = fn
}

// SetColor turns ANSI colored prefixes on or off.  Only useful when the
// output is a terminal (or a colorable writer on windows).
func SetColor(on bool) {
	color = on
}

// SetLevel lets you set an error mask directly. A level brings every more
// severe level with it, so DebugMask gets you debug, info, warn and error;
// StatsMask gets you everything. It returns the previous mask.
func SetLevel(mask MaskLevel) MaskLevel {
	if mask&0x1f == 0 {
		fmt.Fprintf(output, " WARN: trust.SetLevel is turning off log messages\n")
	}
	result := Nothing
	switch {
	case mask&StatsMask > 0:
		result |= StatsMask
		fallthrough
	case mask&DebugMask > 0:
		result |= DebugMask
		fallthrough
	case mask&InfoMask > 0:
		result |= InfoMask
		fallthrough
	case mask&WarnMask > 0:
		result |= WarnMask
		fallthrough
	case mask&ErrorMask > 0:
		result |= ErrorMask
	}
	r := level & 0x1f
	level = result | fatalMask
	return r
}

func Level() MaskLevel {
	return level
}

func LevelToString() string {
	result := ""
	for _, l := range []struct {
		mask MaskLevel
		name string
	}{{ErrorMask, "error"}, {WarnMask, "warn"}, {InfoMask, "info"}, {DebugMask, "debug"}, {StatsMask, "stats"}} {
		if level&l.mask == 0 {
			continue
		}
		if result != "" {
			result += " "
		}
		result += l.name
	}
	return result
}

func prefix(l MaskLevel) (string, string) {
	switch {
	case l&fatalMask > 0:
		return "FATAL:", "\x1b[1;31m"
	case l&ErrorMask > 0:
		return "ERROR:", "\x1b[31m"
	case l&WarnMask > 0:
		return " WARN:", "\x1b[33m"
	case l&InfoMask > 0:
		return " INFO:", "\x1b[32m"
	case l&DebugMask > 0:
		return "DEBUG:", "\x1b[36m"
	}
	return "", ""
}

func logf(l MaskLevel, format string, params ...interface{}) {
	if level&l == 0 {
		return
	}
	p, esc := prefix(l)
	if l&StatsMask > 0 {
		p = fmt.Sprintf("STATS[%s]:", params[0])
		params = params[1:]
		esc = "\x1b[35m"
	}
	if color {
		p = esc + p + "\x1b[0m"
	}
	if len(format) == 0 {
		format = "\n"
	} else if format[len(format)-1] != '\n' {
		format += "\n"
	}
	fmt.Fprint(output, p)
	fmt.Fprintf(output, format, params...)
}

//Fatalf prints the given log message (format + params) and then
//exits with the exitCode provided.  Fatalf is not maskable.
func Fatalf(exitCode int, format string, params ...interface{}) {
	logf(fatalMask, format, params...)
	exit(exitCode)
}

//Errorf prints the given log message (format + params) using the ErrorMask level.
func Errorf(format string, params ...interface{}) {
	logf(ErrorMask, format, params...)
}

//Warnf prints the given log message (format + params) using the WarnMask level.
func Warnf(format string, params ...interface{}) {
	logf(WarnMask, format, params...)
}

//Infof prints the given log message (format + params) using the InfoMask level.
func Infof(format string, params ...interface{}) {
	logf(InfoMask, format, params...)
}

//Debugf prints the given log message (format + params) using the DebugMask level.
func Debugf(format string, params ...interface{}) {
	logf(DebugMask, format, params...)
}

//Statsf prints the given log message (format + params) using the StatsMask level and
//takes an extra parameter that will be visible in the log message as the category
//of stats that is reported.
func Statsf(category string, format string, params ...interface{}) {
	logf(StatsMask, format, append([]interface{}{category}, params...)...)
}
