// Command ls-zodiac is a terminal zodiac wheel that animates between the
// true-sky and traditional sign boundaries.
package main

import (
	"fmt"
	"os"
)

func main() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}
