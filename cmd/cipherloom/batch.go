package main

import (
	"encoding/json"
	"fmt"
	"os"

	"github.com/spf13/cobra"
	"gopkg.in/yaml.v3"

	"github.com/cipherloom-go/internal/encryption"
)

// batchFile is the layout of a batch job file:
//
//	jobs:
//	  - id: greeting
//	    cipher: vigenere
//	    message: Hello World
//	    params: {key: KEY}
type batchFile struct {
	Jobs []encryption.Job `yaml:"jobs"`
}

var batchCmd = &cobra.Command{
	Use:   "batch <file>",
	Short: "Run the jobs listed in a YAML file",
	Long: `Runs every job of a YAML (or JSON) job file concurrently and prints one
result per job, in file order. A failing job does not stop the others;
the command exits non-zero if any job failed.`,
	Args: cobra.ExactArgs(1),
	RunE: runBatch,
}

func init() {
	batchCmd.Flags().IntP("concurrency", "j", 4, "Number of jobs run at once")
	batchCmd.Flags().StringP("output", "o", "yaml", "Output format (yaml, json)")
	rootCmd.AddCommand(batchCmd)
}

func runBatch(cmd *cobra.Command, args []string) error {
	data, err := os.ReadFile(args[0])
	if err != nil {
		return fmt.Errorf("failed to read job file: %w", err)
	}

	// YAML is a superset of JSON, so one decoder serves both
	var file batchFile
	if err := yaml.Unmarshal(data, &file); err != nil {
		return fmt.Errorf("failed to parse job file: %w", err)
	}

	cfg, err := loadConfig(cmd)
	if err != nil {
		return err
	}

	concurrency, _ := cmd.Flags().GetInt("concurrency")
	results, err := encryption.RunBatch(cmd.Context(), baseParams(cfg), file.Jobs, concurrency)
	if err != nil {
		return err
	}

	if err := writeResults(cmd, results); err != nil {
		return err
	}

	failed := 0
	for _, r := range results {
		if r.Err != nil {
			failed++
		}
	}
	if failed > 0 {
		return fmt.Errorf("%d of %d jobs failed", failed, len(results))
	}
	return nil
}

func writeResults(cmd *cobra.Command, results []encryption.JobResult) error {
	format, _ := cmd.Flags().GetString("output")
	out := cmd.OutOrStdout()

	switch format {
	case "json":
		enc := json.NewEncoder(out)
		enc.SetIndent("", "  ")
		return enc.Encode(map[string]interface{}{"results": results})
	case "yaml", "":
		enc := yaml.NewEncoder(out)
		defer enc.Close()
		return enc.Encode(map[string]interface{}{"results": results})
	default:
		return fmt.Errorf("unknown output format: %s", format)
	}
}
