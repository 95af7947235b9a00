//go:build unix

package walk

import (
	"os"
	"syscall"
)

// deviceID extracts the device id from a stat result. ok is false when the
// info did not come from the operating system (in-memory filesystems).
func deviceID(info os.FileInfo) (uint64, bool) {
	st, ok := info.Sys().(*syscall.Stat_t)
	if !ok || st == nil {
		return 0, false
	}
	return uint64(st.Dev), true
}
