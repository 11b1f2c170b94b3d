package cli

import (
	"fmt"
	"io"

	"github.com/viant/sfreport/progress"
)

func printOK(out io.Writer, format string, args ...any) {
	printTagged(out, "[OK]", format, args...)
}

func printWarn(out io.Writer, format string, args ...any) {
	printTagged(out, "[WARN]", format, args...)
}

func printError(out io.Writer, format string, args ...any) {
	printTagged(out, "[ERROR]", format, args...)
}

func printTagged(out io.Writer, tag, format string, args ...any) {
	fmt.Fprintf(out, "%s %s\n", tag, fmt.Sprintf(format, args...))
}

// progressPrinter renders the export progress callback.
func progressPrinter(out io.Writer) progress.Callback {
	return func(completed, total int) {
		fmt.Fprintf(out, "%d/%d reports (%d%%)\n", completed, total, progress.Percent(completed, total))
	}
}
