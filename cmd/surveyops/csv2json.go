package main

import (
	"encoding/csv"
	"encoding/json"
	"fmt"
	"os"
	"strings"

	"github.com/spf13/cobra"

	"github.com/JustUsingaWebsite/survey-powerops/internal/types"
)

var (
	csv2jsonPath     string
	csv2jsonNoHeader bool
)

var csv2jsonCmd = &cobra.Command{
	Use:   "csv2json",
	Short: "Convert a CSV file to a TableData JSON file for building requests",
	RunE: func(cmd *cobra.Command, args []string) error {
		if csv2jsonPath == "" {
			return fmt.Errorf("please provide a CSV file using --csv <filename>")
		}
		jsonPath := strings.TrimSuffix(csv2jsonPath, ".csv") + ".json"
		if err := csvToJSON(csv2jsonPath, jsonPath, !csv2jsonNoHeader); err != nil {
			return fmt.Errorf("converting %s: %w", csv2jsonPath, err)
		}
		fmt.Printf("Converted %s to %s\n", csv2jsonPath, jsonPath)
		return nil
	},
}

func init() {
	csv2jsonCmd.Flags().StringVar(&csv2jsonPath, "csv", "", "CSV file to convert")
	csv2jsonCmd.Flags().BoolVar(&csv2jsonNoHeader, "no-header", false, "treat the first CSV row as data, not a header")
	rootCmd.AddCommand(csv2jsonCmd)
}

func csvToJSON(csvPath, jsonPath string, hasHeader bool) error {
	f, err := os.Open(csvPath)
	if err != nil {
		return fmt.Errorf("failed to open CSV: %w", err)
	}
	defer f.Close()

	r := csv.NewReader(f)
	rows, err := r.ReadAll()
	if err != nil {
		return fmt.Errorf("failed to read CSV: %w", err)
	}
	if len(rows) == 0 {
		return fmt.Errorf("CSV is empty")
	}

	table := types.TableData{HasHeader: hasHeader, Rows: rows}
	if hasHeader {
		table.Header = rows[0]
		table.Rows = rows[1:]
	}

	out, err := os.Create(jsonPath)
	if err != nil {
		return fmt.Errorf("failed to create JSON: %w", err)
	}
	defer out.Close()

	enc := json.NewEncoder(out)
	enc.SetIndent("", "  ")
	return enc.Encode(table)
}
