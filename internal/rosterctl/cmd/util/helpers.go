package util

import (
	"errors"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/fatih/color"
	"github.com/kiosk404/roster/internal/rosterd/service/agents/domain/validation"
	"github.com/kiosk404/roster/pkg/logger"
)

const (
	// DefaultErrorExitCode defines the default exit code.
	DefaultErrorExitCode = 1
)

var fatalErrHandler = fatal

// BehaviorOnFatal allows you to override the default behavior when a fatal
// error occurs, which is to call os.Exit(code). You can pass 'panic' as a
// function here if you prefer the panic() over os.Exit(1).
func BehaviorOnFatal(f func(string, int)) {
	fatalErrHandler = f
}

// DefaultBehaviorOnFatal allows you to undo any previous override. Useful in
// tests.
func DefaultBehaviorOnFatal() {
	fatalErrHandler = fatal
}

// fatal prints the message (if provided) and then exits.
func fatal(msg string, code int) {
	logger.FlushLog()
	if len(msg) > 0 {
		// add newline if needed
		if !strings.HasSuffix(msg, "\n") {
			msg += "\n"
		}
		fmt.Fprint(os.Stderr, msg)
	}
	os.Exit(code)
}

// CheckErr prints a user friendly error to STDERR and exits with a non-zero
// exit code. Field validation errors are listed one per line.
func CheckErr(err error) {
	if err == nil {
		return
	}
	fatalErrHandler(ErrorMessage(err), DefaultErrorExitCode)
}

// ErrorMessage renders err for a terminal.
func ErrorMessage(err error) string {
	var verrs validation.Errors
	if errors.As(err, &verrs) {
		var b strings.Builder
		b.WriteString("error: the agent is not valid:\n")
		PrintFieldErrors(&b, verrs)
		return b.String()
	}
	return "error: " + err.Error()
}

// PrintFieldErrors writes one line per field error, in form order.
func PrintFieldErrors(w io.Writer, verrs validation.Errors) {
	field := color.New(color.FgRed, color.Bold).SprintFunc()
	for _, fe := range verrs {
		fmt.Fprintf(w, "  %s: %s\n", field(fe.Field), fe.Message)
	}
}

// UsageErrorf returns an error pointing the user at the command help.
func UsageErrorf(cmdPath string, format string, args ...interface{}) error {
	msg := fmt.Sprintf(format, args...)
	return fmt.Errorf("%s\nSee '%s -h' for help and examples", msg, cmdPath)
}
