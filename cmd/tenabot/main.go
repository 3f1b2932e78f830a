// Package main provides the entry point for the Tenabot resume service.
package main

import (
	"fmt"
	"os"

	"github.com/joho/godotenv"
	"github.com/spf13/cobra"
)

var rootCmd = &cobra.Command{
	Use:   "tenabot",
	Short: "Tenabot resume processing service",
	Long:  "Tenabot turns uploaded resumes into structured profiles and professionally formatted documents, delivered back to users over Telegram.",
}

func main() {
	// Load .env file if it exists
	_ = godotenv.Load()

	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}
