package store

import "context"

// CorruptTemplateDays overwrites a template's custom_days column verbatim.
func (s *SQLiteStore) CorruptTemplateDays(ctx context.Context, id, raw string) error {
	_, err := s.db.ExecContext(ctx, "UPDATE templates SET custom_days = ? WHERE id = ?", raw, id)
	return err
}
