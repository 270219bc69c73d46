// farm generates a master key file and derives an index-chained sequence of
// wallet keys from it.
//
// Usage:
//
//	farm generate [--output master.key] [--encrypt]
//	farm show [keyfile] [--index N] [--count C] [--derive D] [--length L]
//	farm mnemonic encode|decode|check ...
//	farm seed <words...>
package main

import (
	"fmt"
	"os"
)

func main() {
	if err := newRootCmd().Execute(); err != nil {
		fatal("%v", err)
	}
}

// ── Error helper ────────────────────────────────────────────────────────

func fatal(format string, args ...interface{}) {
	fmt.Fprintf(os.Stderr, "Error: "+format+"\n", args...)
	os.Exit(1)
}
