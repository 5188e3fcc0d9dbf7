package main

import (
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/aws/smithy-go"
	"github.com/briandowns/spinner"
	"github.com/spf13/cobra"

	"github.com/rvelez/iamscan/internal/models"
	"github.com/rvelez/iamscan/internal/version"
	"github.com/rvelez/iamscan/pkg/aws"
	"github.com/rvelez/iamscan/pkg/formatter"
	"github.com/rvelez/iamscan/pkg/scanner"
)

var (
	profiles    []string
	outputDir   string
	showVersion bool
)

func main() {
	rootCmd := &cobra.Command{
		Use:   "iamscan",
		Short: "CLI tool to audit IAM users and access keys across AWS profiles",
		Long: `iamscan scans every locally configured AWS profile and produces a
consolidated CSV report of IAM users, their console access, MFA
enrollment, and the status and last usage of their access keys.`,
		Run: func(cmd *cobra.Command, args []string) {
			// If version flag is set, print version info and exit
			if showVersion {
				fmt.Printf("iamscan version %s\n", version.Get())
				return
			}

			runScan()
		},
	}

	// Version flag
	rootCmd.Flags().BoolVarP(&showVersion, "version", "v", false, "Show version information")

	// Profile flags (long and short forms)
	rootCmd.Flags().StringSliceVarP(&profiles, "profiles", "p", nil,
		"AWS profiles to scan (comma separated, default: all configured profiles)")

	// Output directory flag
	rootCmd.Flags().StringVarP(&outputDir, "output", "o", ".",
		"Directory to write the CSV report to")

	if err := rootCmd.Execute(); err != nil {
		fmt.Println(err)
		os.Exit(1)
	}
}

// runScan drives a full scan of the selected profiles and writes the report.
func runScan() {
	fmt.Println("Starting IAM credential scan ...")
	scanStartTime := time.Now()

	if len(profiles) == 0 {
		profiles = aws.ListProfiles()
	}

	// Start the spinner
	s := spinner.New(spinner.CharSets[9], 200*time.Millisecond)
	s.Suffix = " Scanning IAM users and access keys ..."
	s.Start()

	sc := scanner.New(func(ctx context.Context, profile string) (scanner.AccountScanner, error) {
		client, err := aws.NewIAMClient(ctx, profile)
		if err != nil {
			return nil, err
		}
		return client, nil
	})
	results := sc.Run(context.Background(), profiles)

	// Calculate scan duration
	scanDuration := time.Since(scanStartTime)

	allRows := scanner.Combine(results)

	// Set completion message with scan time and row count
	s.FinalMSG = fmt.Sprintf("✓ [%d rows collected] IAM credentials analyzed - Completed in %.2f seconds\n",
		len(allRows), scanDuration.Seconds())
	s.Stop()

	// Report failed profiles; they contribute zero rows
	for _, result := range results {
		if result.Err != nil {
			printAccountError(result)
		}
	}

	if len(allRows) == 0 {
		fmt.Println("[?] No data found.")
		return
	}

	formatter.SortReportRows(allRows)
	formatter.PrintReportTable(os.Stdout, allRows)

	filename := filepath.Join(outputDir, formatter.ReportFilename(time.Now()))
	if err := writeReport(filename, allRows); err != nil {
		fmt.Printf("Error writing report: %v\n", err)
		os.Exit(1)
	}

	formatter.PrintReportSummary(os.Stdout, len(allRows), filename)
}

// printAccountError logs one profile's failure, including the AWS error code
// when the cause is an API error.
func printAccountError(result models.AccountResult) {
	var apiErr smithy.APIError
	if errors.As(result.Err, &apiErr) {
		fmt.Printf("[!] Error in profile %s: %s: %s\n",
			result.Label(), apiErr.ErrorCode(), apiErr.ErrorMessage())
		return
	}
	fmt.Printf("[!] Error in profile %s: %v\n", result.Label(), result.Err)
}

func writeReport(filename string, rows []models.ReportRow) error {
	f, err := os.Create(filename)
	if err != nil {
		return err
	}
	defer f.Close()

	return formatter.WriteReportCSV(f, rows)
}
