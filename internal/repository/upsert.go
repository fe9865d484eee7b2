package repository

import (
	"gorm.io/gorm/clause"
)

// onConflict builds the clause for a conflict-key upsert: rows whose values
// match an existing row on the given natural-key columns replace that row's
// non-key fields, all other rows are inserted. Applying the same batch twice
// therefore lands on the same final state as applying it once.
func onConflict(cols ...string) clause.OnConflict {
	columns := make([]clause.Column, len(cols))
	for i, c := range cols {
		columns[i] = clause.Column{Name: c}
	}
	return clause.OnConflict{Columns: columns, UpdateAll: true}
}
