package ntru

import (
	"fmt"
	"io"
	"os"
	"sync/atomic"
)

var debugOn atomic.Bool

func init() {
	debugOn.Store(os.Getenv("NTRU_DEBUG") == "1")
}

// SetDebug switches stage tracing on stderr (also enabled by NTRU_DEBUG=1).
func SetDebug(on bool) { debugOn.Store(on) }

func dbg(w io.Writer, f string, a ...any) {
	if debugOn.Load() {
		fmt.Fprintf(w, f, a...)
	}
}
