package core

import (
	"context"
	"errors"
	"fmt"
	"mime"
	"path/filepath"
	"strings"
	"time"

	"github.com/JonMunkholm/PromptCompare/internal/logging"
	"github.com/google/uuid"
)

// DefaultMaxFileSize is the payload limit used when none is configured (100MB).
const DefaultMaxFileSize int64 = 100 * 1024 * 1024

// IngestOptions configures an Ingester.
type IngestOptions struct {
	Delimiter   rune   // 0 detects the delimiter per payload
	Sheet       string // XLSX worksheet; empty selects the first sheet
	MaxFileSize int64  // 0 uses DefaultMaxFileSize
}

// Ingester runs the parse -> resolve -> build pipeline.
// It holds no per-payload state and may be shared across goroutines.
type Ingester struct {
	opts IngestOptions
}

// NewIngester creates an Ingester with the given options.
func NewIngester(opts IngestOptions) *Ingester {
	if opts.MaxFileSize <= 0 {
		opts.MaxFileSize = DefaultMaxFileSize
	}
	return &Ingester{opts: opts}
}

// DetectFormat decides how a payload is parsed from its name and MIME type.
// Names ending in .csv or a text/csv type select CSV; .xlsx selects XLSX.
func DetectFormat(name, contentType string) (string, error) {
	ext := strings.ToLower(filepath.Ext(name))
	switch ext {
	case ".xlsx":
		return FormatXLSX, nil
	case ".csv":
		return FormatCSV, nil
	}

	if contentType != "" {
		if mt, _, err := mime.ParseMediaType(contentType); err == nil && mt == "text/csv" {
			return FormatCSV, nil
		}
	}

	return "", fmt.Errorf("%w: %q", ErrUnsupportedFormat, name)
}

// Ingest parses src and builds its records.
//
// Ingestion is all-or-nothing: on any error no result is returned and the
// caller's session must be left as it is. errors.Is(err, ErrEmptyInput)
// marks a payload with nothing to load, which callers treat as a no-op.
func (ing *Ingester) Ingest(ctx context.Context, src Source) (*IngestResult, error) {
	start := time.Now()
	id := uuid.NewString()
	logger := logging.WithFields(ctx, "ingest_id", id, "file", src.Name)

	if err := ctx.Err(); err != nil {
		return nil, fmt.Errorf("ingest cancelled: %w", err)
	}

	format, err := DetectFormat(src.Name, src.ContentType)
	if err != nil {
		logger.Warn("ingest rejected", "error", err)
		return nil, err
	}

	if src.Size > ing.opts.MaxFileSize {
		return nil, fmt.Errorf("%w: %d bytes exceeds %d", ErrFileTooLarge, src.Size, ing.opts.MaxFileSize)
	}

	table, err := ing.parse(format, src)
	if err != nil {
		if errors.Is(err, ErrEmptyInput) {
			logger.Info("ingest skipped", "reason", err.Error())
		} else {
			logger.Warn("ingest failed", "format", format, "error", err)
		}
		return nil, err
	}

	if err := ctx.Err(); err != nil {
		return nil, fmt.Errorf("ingest cancelled: %w", err)
	}

	roles := ResolveRoles(table.Headers)
	records := BuildRecords(table, roles)

	res := &IngestResult{
		ID:       id,
		FileName: src.Name,
		Format:   format,
		Headers:  table.Headers,
		Roles:    roles,
		Records:  records,
		Duration: time.Since(start),
	}

	logger.Info("ingest complete",
		"format", format,
		"rows", len(records),
		"before_key", roles.BeforeKey,
		"after_key", roles.AfterKey,
		"label_key", roles.LabelKey,
		"duration_ms", res.Duration.Milliseconds(),
	)

	return res, nil
}

func (ing *Ingester) parse(format string, src Source) (*RawTable, error) {
	if src.Content == nil {
		return nil, &EmptyInputError{}
	}

	switch format {
	case FormatXLSX:
		// Workbooks are zip archives; only the size limit applies.
		return ParseXLSX(NewLimitReader(src.Content, ing.opts.MaxFileSize), ing.opts.Sheet)
	default:
		return ParseCSV(WrapForIngest(src.Content, ing.opts.MaxFileSize), ParseOptions{
			Delimiter: ing.opts.Delimiter,
		})
	}
}
