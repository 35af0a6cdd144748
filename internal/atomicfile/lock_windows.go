//go:build windows

package atomicfile

import (
	"errors"
	"os"

	"golang.org/x/sys/windows"
)

// Requesting write access makes Windows report a sharing violation
// against programs that opened the file deny-write.
const probeFlag = os.O_RDWR

// tryLock is a no-op: an exclusive holder already fails the open in Probe
// with a sharing violation.
func tryLock(*os.File) error { return nil }

func isLockErr(err error) bool {
	return errors.Is(err, windows.ERROR_SHARING_VIOLATION) ||
		errors.Is(err, windows.ERROR_LOCK_VIOLATION)
}

func syncDir(string) error { return nil }
