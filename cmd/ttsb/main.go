package main

import (
	"fmt"
	"os"
)

var version = "dev"

func main() {
	rootCmd := browseCmd()
	rootCmd.Version = version

	rootCmd.AddCommand(previewCmd())
	rootCmd.AddCommand(playCmd())
	rootCmd.AddCommand(doctorCmd())
	rootCmd.AddCommand(marksCmd())

	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}
