// Package core provides the ingestion pipeline and session state for prompt
// comparison.
//
// This package contains all domain logic independent of any UI or transport
// layer. It can be used by web handlers, the CLI, or tests without
// modification.
//
// # Architecture
//
// Data flows through four components, leaves first:
//
//   - TableParser: raw delimited text (or an XLSX workbook) becomes a
//     [RawTable] of verbatim headers and header-aligned rows.
//   - ColumnRoleResolver: [ResolveRoles] infers which headers supply the
//     "before", "after" and optional "label" text.
//   - RecordBuilder: [BuildRecords] projects every row into a [PromptRecord].
//   - ComparisonSession: [Session] holds the records plus the selected index
//     and view mode, mutated only by Load, Select, SetViewMode and Reset.
//
// [Ingester] chains the first three:
//
//	ing := core.NewIngester(core.IngestOptions{})
//	res, err := ing.Ingest(ctx, core.Source{Name: "prompts.csv", Content: f})
//	switch {
//	case errors.Is(err, core.ErrEmptyInput):
//	    // no-op, keep the current session
//	case err != nil:
//	    // *ParseError or ErrUnsupportedFormat, keep the current session
//	default:
//	    session.Load(res.Records)
//	}
//
// # Column Roles
//
// Headers are matched after trimming and lower-casing. Each header is tested
// against the before, after and label predicates in that order and takes at
// most one role. A later match for the same role overwrites an earlier one.
// Unmatched before/after roles fall back to header 0 and header 1.
//
// # Error Handling
//
// Technical errors are mapped to user-friendly messages using [MapError].
// Each error category has a unique code for support reference:
//
//   - FILE001-FILE006: File errors (size, parse, encoding, empty, format)
//   - SES001-SES002: Session errors (selection, view mode)
//   - UPL002-UPL005: Upload errors (busy, cancelled, timeout)
//   - RATE001, AUTH001: Throttling and API key errors raised by the web layer
package core
