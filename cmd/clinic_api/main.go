// Package main provides the entry point for the clinic jobs API server.
package main

import (
	"fmt"
	"os"

	"github.com/joho/godotenv"
	"github.com/spf13/cobra"
)

var rootCmd = &cobra.Command{
	Use:   "clinic_api",
	Short: "Clinic jobs API server",
	Long:  "Backend API for clinics posting jobs and reviewing applicants, including the job-application aggregation endpoints.",
}

func main() {
	// Load .env file if it exists
	_ = godotenv.Load()

	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}
