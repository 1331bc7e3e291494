// Package main provides the lvpack CLI: solve, batch-solve, generate and
// inspect 0/1 knapsack instances.
package main

import (
	"fmt"
	"os"
)

func main() {
	if err := newRootCmd().Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}
