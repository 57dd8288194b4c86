package core

// BuildRecords projects every table row into a PromptRecord using the
// resolved roles. IDs follow row order starting at 0. A missing before or
// after cell becomes the empty string; the label is set only when a label
// column was resolved.
func BuildRecords(t *RawTable, roles ColumnRoleAssignment) []PromptRecord {
	records := make([]PromptRecord, 0, t.RowCount())

	for i := range t.Rows {
		rec := PromptRecord{ID: i}

		if roles.HasBefore {
			rec.Before, _ = t.Value(i, roles.BeforeKey)
		}
		if roles.HasAfter {
			rec.After, _ = t.Value(i, roles.AfterKey)
		}
		if roles.HasLabel {
			if label, ok := t.Value(i, roles.LabelKey); ok {
				rec.Label, rec.HasLabel = label, true
			}
		}

		records = append(records, rec)
	}

	return records
}
