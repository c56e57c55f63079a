// internal/cmdutil/log.go
package cmdutil

import (
	"fmt"
	"io"
)

func Warnf(dst io.Writer, quiet bool, format string, a ...any) {
	if quiet {
		return
	}
	_, _ = fmt.Fprintf(dst, "WARN: "+format+"\n", a...)
}

func Infof(dst io.Writer, quiet bool, format string, a ...any) {
	if quiet {
		return
	}
	_, _ = fmt.Fprintf(dst, format+"\n", a...)
}

// Logf binds Infof to dst for library code that takes a printf-style logger.
func Logf(dst io.Writer, quiet bool) func(string, ...any) {
	return func(format string, a ...any) { Infof(dst, quiet, format, a...) }
}
