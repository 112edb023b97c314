package output

import (
	"fmt"
	"io"
	"os"

	"github.com/fatih/color"
)

var (
	successColor = color.New(color.FgGreen, color.Bold)
	warningColor = color.New(color.FgYellow, color.Bold)
	errorColor   = color.New(color.FgRed, color.Bold)
	infoColor    = color.New(color.FgCyan)
	mutedColor   = color.New(color.FgHiBlack)
	headerColor  = color.New(color.FgMagenta, color.Bold)
)

// Out is where every helper writes; tests swap it.
var Out io.Writer = os.Stdout

func Success(format string, args ...interface{}) {
	successColor.Fprint(Out, "✓ ")
	fmt.Fprintf(Out, format+"\n", args...)
}

func Warning(format string, args ...interface{}) {
	warningColor.Fprint(Out, "⚠ ")
	fmt.Fprintf(Out, format+"\n", args...)
}

func Error(format string, args ...interface{}) {
	errorColor.Fprint(Out, "✗ ")
	fmt.Fprintf(Out, format+"\n", args...)
}

func Info(format string, args ...interface{}) {
	infoColor.Fprint(Out, "ℹ ")
	fmt.Fprintf(Out, format+"\n", args...)
}

func Muted(format string, args ...interface{}) {
	mutedColor.Fprintf(Out, format+"\n", args...)
}

func Section(title string) {
	fmt.Fprintln(Out)
	headerColor.Fprintln(Out, title)
}

// StockLabel colours a stock count: red when sold out, yellow when low.
func StockLabel(stock int) string {
	switch {
	case stock <= 0:
		return errorColor.Sprint("agotado")
	case stock <= 3:
		return warningColor.Sprintf("%d", stock)
	default:
		return successColor.Sprintf("%d", stock)
	}
}
