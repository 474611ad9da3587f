package repository

import "gorm.io/gorm"

// monthExpr returns the dialect-specific SQL for truncating a timestamp to
// a YYYY-MM month bucket. Tests run on SQLite, production on PostgreSQL.
func monthExpr(db *gorm.DB) string {
	if db.Dialector.Name() == "sqlite" {
		return "strftime('%Y-%m', created_at)"
	}
	return "to_char(created_at, 'YYYY-MM')"
}
