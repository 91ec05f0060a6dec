package main

import (
	"github.com/spf13/cobra"
)

var rootCmd = &cobra.Command{
	Use:     "fileserv",
	Short:   "A minimal HTTP/1.1 file-management server on raw TCP",
	Version: version,
}

// overridden via -ldflags "-X main.version=..."
var version = "dev"

func init() {
	rootCmd.SetVersionTemplate("fileserv {{.Version}}\n")
	rootCmd.AddCommand(serveCmd)
}
