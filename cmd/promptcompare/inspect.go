package main

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"

	"github.com/JonMunkholm/PromptCompare/internal/config"
	"github.com/JonMunkholm/PromptCompare/internal/core"
	"github.com/JonMunkholm/PromptCompare/internal/logging"
	"github.com/goccy/go-yaml"
	"github.com/spf13/cobra"
)

type inspectOptions struct {
	format    string
	delimiter string
	sheet     string
	logLevel  string
}

// inspectReport is what inspect prints for a loaded file.
type inspectReport struct {
	File    string                    `json:"file" yaml:"file"`
	Format  string                    `json:"format" yaml:"format"`
	Headers []string                  `json:"headers" yaml:"headers"`
	Roles   core.ColumnRoleAssignment `json:"roles" yaml:"roles"`
	Records []inspectRecord           `json:"records" yaml:"records"`
}

type inspectRecord struct {
	core.PromptRecord `yaml:",inline"`
	DisplayLabel      string `json:"display_label" yaml:"display_label"`
}

func newInspectCmd() *cobra.Command {
	opts := &inspectOptions{}
	cmd := &cobra.Command{
		Use:   "inspect FILE",
		Short: "Load a CSV or XLSX file and print its prompt records",
		Long: `inspect runs a file through the same pipeline as an upload and prints
the headers, the columns chosen for before, after and label, and every record.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return inspect(cmd.Context(), cmd.OutOrStdout(), args[0], opts)
		},
	}

	cmd.Flags().StringVarP(&opts.format, "format", "f", "json", "Output format: json or yaml")
	cmd.Flags().StringVarP(&opts.delimiter, "delimiter", "d", "", "CSV delimiter (comma, semicolon, tab, pipe or one character); detected when empty")
	cmd.Flags().StringVar(&opts.sheet, "sheet", "", "XLSX worksheet to read (default: first sheet)")
	cmd.Flags().StringVar(&opts.logLevel, "log-level", "warn", "Log level written to stderr")
	return cmd
}

func inspect(ctx context.Context, out io.Writer, path string, opts *inspectOptions) error {
	logging.SetupWriter(os.Stderr, opts.logLevel, "text")

	if opts.format != "json" && opts.format != "yaml" {
		return fmt.Errorf("invalid format: %s (must be json or yaml)", opts.format)
	}
	delim, err := config.ParseDelimiter(opts.delimiter)
	if err != nil {
		return fmt.Errorf("invalid delimiter: %w", err)
	}

	f, err := os.Open(path)
	if err != nil {
		return err
	}
	defer f.Close()

	info, err := f.Stat()
	if err != nil {
		return err
	}

	ing := core.NewIngester(core.IngestOptions{Delimiter: delim, Sheet: opts.sheet})
	res, err := ing.Ingest(ctx, core.Source{
		Name:    filepath.Base(path),
		Size:    info.Size(),
		Content: f,
	})
	if errors.Is(err, core.ErrEmptyInput) {
		_, err = fmt.Fprintln(out, "no records")
		return err
	}
	if err != nil {
		return fmt.Errorf("%s: %w", core.FormatUserError(err), err)
	}

	report := inspectReport{
		File:    res.FileName,
		Format:  res.Format,
		Headers: res.Headers,
		Roles:   res.Roles,
		Records: make([]inspectRecord, len(res.Records)),
	}
	for i, rec := range res.Records {
		report.Records[i] = inspectRecord{PromptRecord: rec, DisplayLabel: rec.DisplayLabel()}
	}

	return writeReport(out, opts.format, report)
}

func writeReport(out io.Writer, format string, report inspectReport) error {
	var (
		data []byte
		err  error
	)
	switch format {
	case "yaml":
		data, err = yaml.Marshal(report)
	default:
		data, err = json.MarshalIndent(report, "", "  ")
		data = append(data, '\n')
	}
	if err != nil {
		return fmt.Errorf("encode %s: %w", format, err)
	}
	_, err = out.Write(data)
	return err
}
