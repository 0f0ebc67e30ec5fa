package main

import (
	"encoding/csv"
	"encoding/json"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/JustUsingaWebsite/survey-powerops/internal/surveyops"
	"github.com/JustUsingaWebsite/survey-powerops/internal/types"
)

var (
	sampleSizeReqPath string
	sampleSizeCSVOut  string
)

var sampleSizeCmd = &cobra.Command{
	Use:   "samplesize",
	Short: "Compute minimum sample sizes per stratum from a JSON request file",
	RunE: func(cmd *cobra.Command, args []string) error {
		data, err := os.ReadFile(sampleSizeReqPath)
		if err != nil {
			return fmt.Errorf("read request: %w", err)
		}
		req, err := surveyops.DecodeSampleSizeRequest(data)
		if err != nil {
			return fmt.Errorf("decode request: %w", err)
		}

		res, cerr := surveyops.ComputeSampleSize(req)
		// the response carries the validation error too, so print it either way
		out, err := json.MarshalIndent(res, "", "  ")
		if err != nil {
			return fmt.Errorf("marshal response: %w", err)
		}
		fmt.Println(string(out))
		if cerr != nil {
			return cerr
		}

		if sampleSizeCSVOut != "" {
			if err := writeTableCSV(sampleSizeCSVOut, res.Result); err != nil {
				return fmt.Errorf("write result CSV: %w", err)
			}
			fmt.Printf("Wrote result table to %s\n", sampleSizeCSVOut)
		}
		return nil
	},
}

func init() {
	sampleSizeCmd.Flags().StringVar(&sampleSizeReqPath, "req", "", "JSON request file")
	sampleSizeCmd.Flags().StringVar(&sampleSizeCSVOut, "csv", "", "write the result table to this CSV file")
	_ = sampleSizeCmd.MarkFlagRequired("req")
	rootCmd.AddCommand(sampleSizeCmd)
}

func writeTableCSV(path string, tbl types.TableData) error {
	f, err := os.Create(path)
	if err != nil {
		return err
	}
	defer f.Close()

	w := csv.NewWriter(f)
	if tbl.HasHeader {
		if err := w.Write(tbl.Header); err != nil {
			return err
		}
	}
	if err := w.WriteAll(tbl.Rows); err != nil {
		return err
	}
	w.Flush()
	return w.Error()
}
