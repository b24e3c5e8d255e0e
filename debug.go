package sylva

import (
	"fmt"
	"os"
	"time"
)

// debugEnabled gates the extra paint timing output and tree sanity checks.
// Off in release use; flip with SetDebug.
var debugEnabled bool

// SetDebug toggles debug mode for the whole package: paint timing on stderr,
// disposed-node panics in tree mutation, and tree-depth warnings.
func SetDebug(enabled bool) {
	debugEnabled = enabled
}

// debugLogPaint prints a single paint pass timing line to stderr.
func debugLogPaint(name string, d time.Duration) {
	label := name
	if label == "" {
		label = "(unnamed)"
	}
	_, _ = fmt.Fprintf(os.Stderr, "[sylva] paint %q: %v\n", label, d)
}

// debugCheckDisposed panics with a descriptive message when a disposed node
// is used in a tree operation. In release mode callers skip this entirely.
func debugCheckDisposed(n *Node, op string) {
	if n.disposed {
		panic(fmt.Sprintf("sylva debug: %s on disposed node %q (ID was %d)", op, n.Name, n.ID))
	}
}

// debugCheckTreeDepth warns on stderr if tree depth exceeds the threshold.
const debugMaxTreeDepth = 32

func debugCheckTreeDepth(n *Node) {
	depth := 0
	for p := n; p != nil; p = p.Parent {
		depth++
	}
	if depth > debugMaxTreeDepth {
		_, _ = fmt.Fprintf(os.Stderr, "[sylva] warning: tree depth %d exceeds %d (node %q)\n",
			depth, debugMaxTreeDepth, n.Name)
	}
}
