package out

import (
	"fmt"

	"github.com/fatih/color"
)

var bold *color.Color
var cyan *color.Color
var magenta *color.Color
var yellow *color.Color
var red *color.Color

func init() {
	bold = color.New(color.Bold)
	cyan = color.New(color.FgCyan)
	magenta = color.New(color.FgMagenta)
	yellow = color.New(color.FgYellow)
	red = color.New(color.FgRed)
}

// Normf prints a normal message.
func Normf(format string, v ...interface{}) {
	fmt.Printf(format, v...)
}

// Boldf prints a bold message.
func Boldf(format string, v ...interface{}) {
	bold.PrintfFunc()(format, v...)
}

// Examf prints an example message.
func Examf(format string, v ...interface{}) {
	cyan.PrintfFunc()(format, v...)
}

// Valuf prints a value.
func Valuf(format string, v ...interface{}) {
	cyan.Add(color.Bold).PrintfFunc()(format, v...)
}

// Statf prints a status message.
func Statf(format string, v ...interface{}) {
	magenta.PrintfFunc()(format, v...)
}

// Warnf prints a warning message.
func Warnf(format string, v ...interface{}) {
	yellow.PrintfFunc()(format, v...)
}

// Errof prints an error message.
func Errof(format string, v ...interface{}) {
	red.PrintfFunc()(format, v...)
}
