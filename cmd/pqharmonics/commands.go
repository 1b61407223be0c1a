package main

import (
	"bytes"
	"fmt"
	"sort"

	"github.com/spf13/cobra"

	"github.com/ukaji3/pqharmonics-go/pkg/pqharmonics"
	"github.com/ukaji3/pqharmonics-go/pkg/pqharmonics/models"
	"github.com/ukaji3/pqharmonics-go/pkg/pqharmonics/output"
)

func extractCmd() *cobra.Command {
	var outputPath string
	cmd := &cobra.Command{
		Use:   "extract <report.pdf>",
		Short: "Extract tables, missing harmonics, violations and summaries as JSON",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			opts, err := loadOptions()
			if err != nil {
				return err
			}
			report, err := pqharmonics.Process(cmd.Context(), args[0], opts)
			if err != nil {
				return fmt.Errorf("extraction failed: %w", err)
			}
			data, err := output.ToJSON(report, pretty)
			if err != nil {
				return fmt.Errorf("serialization failed: %w", err)
			}
			return writeOutput(cmd, outputPath, data)
		},
	}
	cmd.Flags().StringVarP(&outputPath, "output", "o", "", "Output file path (default: stdout)")
	return cmd
}

func violationsCmd() *cobra.Command {
	var outputPath string
	cmd := &cobra.Command{
		Use:   "violations <report.pdf>",
		Short: "List limit violations as CSV",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			opts, err := loadOptions()
			if err != nil {
				return err
			}
			report, err := pqharmonics.Process(cmd.Context(), args[0], opts)
			if err != nil {
				return fmt.Errorf("extraction failed: %w", err)
			}
			var buf bytes.Buffer
			if err := output.WriteViolationsCSV(&buf, report.Violations); err != nil {
				return fmt.Errorf("serialization failed: %w", err)
			}
			return writeOutput(cmd, outputPath, bytes.TrimSuffix(buf.Bytes(), []byte("\n")))
		},
	}
	cmd.Flags().StringVarP(&outputPath, "output", "o", "", "Output file path (default: stdout)")
	return cmd
}

func exportCmd() *cobra.Command {
	var outputPath string
	cmd := &cobra.Command{
		Use:   "export <report.pdf>",
		Short: "Export a highlighted workbook",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			opts, err := loadOptions()
			if err != nil {
				return err
			}
			report, err := pqharmonics.Process(cmd.Context(), args[0], opts)
			if err != nil {
				return fmt.Errorf("extraction failed: %w", err)
			}

			wb, err := output.NewWorkbook(opts.ConfigOrDefault())
			if err != nil {
				return err
			}
			defer wb.Close()
			if err := wb.AddReport(report); err != nil {
				return fmt.Errorf("failed to render workbook: %w", err)
			}
			if err := wb.SaveAs(outputPath); err != nil {
				return fmt.Errorf("failed to write workbook: %w", err)
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Wrote %d sheets to %s\n", len(wb.Sheets()), outputPath)
			return nil
		},
	}
	cmd.Flags().StringVarP(&outputPath, "output", "o", "", "Output workbook path")
	_ = cmd.MarkFlagRequired("output")
	return cmd
}

func bulkCmd() *cobra.Command {
	var outputPath string
	cmd := &cobra.Command{
		Use:   "bulk <report.pdf>...",
		Short: "Export several reports into one workbook",
		Long: `Process reports concurrently and export them into one workbook. Sheet
names carry a prefix derived from each filename; every sheet starts with
a banner naming its source document. The sheet to document lookup is
printed on completion.`,
		Args: cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			opts, err := loadOptions()
			if err != nil {
				return err
			}
			opts.Workers, _ = cmd.Flags().GetInt("workers")
			opts.DocumentTimeout, _ = cmd.Flags().GetDuration("timeout")

			batch := pqharmonics.ProcessBatch(cmd.Context(), args, opts)
			for _, r := range batch.Failed() {
				fmt.Fprintf(cmd.ErrOrStderr(), "skipped %s: %v\n", r.Path, r.Err)
			}
			reports := batch.Reports()
			if len(reports) == 0 {
				return fmt.Errorf("no documents processed")
			}

			wb, err := output.NewWorkbook(opts.ConfigOrDefault())
			if err != nil {
				return err
			}
			defer wb.Close()
			for _, report := range reports {
				if err := wb.AddBulkReport(report); err != nil {
					return fmt.Errorf("failed to render %s: %w", report.Document, err)
				}
			}
			if err := wb.SetRunID(batch.RunID); err != nil {
				return err
			}
			if err := wb.SaveAs(outputPath); err != nil {
				return fmt.Errorf("failed to write workbook: %w", err)
			}

			out := cmd.OutOrStdout()
			fmt.Fprintf(out, "Run %s: wrote %d sheets to %s\n", batch.RunID, len(wb.Sheets()), outputPath)
			sources := wb.Sources()
			sheets := make([]string, 0, len(sources))
			for name := range sources {
				sheets = append(sheets, name)
			}
			sort.Strings(sheets)
			for _, name := range sheets {
				fmt.Fprintf(out, "  %s\t%s\n", name, sources[name])
			}
			return nil
		},
	}
	cmd.Flags().StringVarP(&outputPath, "output", "o", "", "Output workbook path")
	cmd.Flags().Int("workers", envInt(envWorkers, pqharmonics.DefaultWorkers), "Documents processed concurrently")
	cmd.Flags().Duration("timeout", envDuration(envDocTimeout, pqharmonics.DefaultDocumentTimeout), "Processing budget per document")
	_ = cmd.MarkFlagRequired("output")
	return cmd
}

func inspectCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "inspect <workbook.xlsx|->",
		Short: "Read back an exported workbook as JSON",
		Long:  "Read back an exported workbook as JSON. Use - to read the workbook from stdin.",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			var idx *models.WorkbookIndex
			var err error
			if args[0] == "-" {
				idx, err = output.ReadWorkbookFrom(cmd.InOrStdin(), "stdin")
			} else {
				idx, err = output.ReadWorkbook(args[0])
			}
			if err != nil {
				return fmt.Errorf("failed to read workbook: %w", err)
			}
			data, err := output.ToJSON(idx, pretty)
			if err != nil {
				return fmt.Errorf("serialization failed: %w", err)
			}
			return writeOutput(cmd, "", data)
		},
	}
}
