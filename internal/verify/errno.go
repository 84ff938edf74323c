package verify

import (
	"errors"
	"fmt"
	"syscall"
)

// Describe renders a per-file failure the way it is shown in the history,
// e.g. "IOError: ENOENT: no such file or directory".
func Describe(err error) string {
	if err == nil {
		return ""
	}
	var errno syscall.Errno
	if errors.As(err, &errno) {
		return fmt.Sprintf("IOError: %s: %s", errnoName(errno), errno.Error())
	}
	return "IOError: " + err.Error()
}
