//go:build !unix

package walk

import (
	"os"
)

// deviceID is unavailable on this platform; same-filesystem checks are
// no-ops.
func deviceID(_ os.FileInfo) (uint64, bool) {
	return 0, false
}
