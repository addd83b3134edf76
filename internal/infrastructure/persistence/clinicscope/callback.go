package clinicscope

import (
	"strings"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"github.com/clinisupply/backend/internal/domain/isolation"
)

// clinicOwnedTables lists the tables the automatic filter applies to.
// users and clinics also carry a clinic_id column, but they are read
// during principal resolution, before any access context exists, and
// must never be filtered here.
var clinicOwnedTables = []string{
	"inventory_items",
	"inventory_movements",
	"orders",
	"transactions",
	"invoices",
	"accounts_payable",
	"accounts_receivable",
	"appointments",
}

// ClinicCallback installs GORM callback hooks that rewrite queries,
// updates and deletes on clinic-owned tables with a clinic_id condition
// taken from the access context. Only tables in the allowlist are
// touched, so shared and identity tables never gain a spurious filter.
type ClinicCallback struct {
	clinicColumn string
	required     bool
	tables       map[string]bool
}

// NewClinicCallback creates a callback handler for the given column and
// tables. An empty table list falls back to the clinic-owned resource
// tables.
func NewClinicCallback(clinicColumn string, required bool, tables ...string) *ClinicCallback {
	if clinicColumn == "" {
		clinicColumn = "clinic_id"
	}
	if len(tables) == 0 {
		tables = clinicOwnedTables
	}
	set := make(map[string]bool, len(tables))
	for _, t := range tables {
		set[t] = true
	}
	return &ClinicCallback{
		clinicColumn: clinicColumn,
		required:     required,
		tables:       set,
	}
}

// RegisterCallbacks hooks the handler into a GORM instance.
// Create is not hooked: clinic_id is force-assigned by the write policy
// before the row reaches the database.
func (cc *ClinicCallback) RegisterCallbacks(db *gorm.DB) {
	_ = db.Callback().Query().Before("gorm:query").Register("clinicscope:before_query", cc.beforeQuery)
	_ = db.Callback().Update().Before("gorm:update").Register("clinicscope:before_update", cc.beforeUpdate)
	_ = db.Callback().Delete().Before("gorm:delete").Register("clinicscope:before_delete", cc.beforeDelete)
	_ = db.Callback().Row().Before("gorm:row").Register("clinicscope:before_row", cc.beforeQuery)
}

func (cc *ClinicCallback) beforeQuery(db *gorm.DB) {
	cc.addClinicFilter(db)
}

func (cc *ClinicCallback) beforeUpdate(db *gorm.DB) {
	cc.addClinicFilter(db)
}

func (cc *ClinicCallback) beforeDelete(db *gorm.DB) {
	cc.addClinicFilter(db)
}

func (cc *ClinicCallback) addClinicFilter(db *gorm.DB) {
	if db.Statement.Context == nil {
		return
	}
	if db.Statement.Unscoped {
		return
	}
	if !cc.modelIsClinicOwned(db) {
		return
	}
	if cc.hasClinicCondition(db) {
		return
	}

	actx, ok := isolation.FromContext(db.Statement.Context)
	if !ok {
		if cc.required {
			_ = db.AddError(ErrClinicRequired)
		}
		return
	}
	if actx.IsAdmin() {
		return
	}

	clinicID, resolved := actx.Clinic()
	if !resolved {
		if cc.required {
			_ = db.AddError(ErrClinicRequired)
		}
		return
	}

	db.Statement.AddClause(clause.Where{
		Exprs: []clause.Expression{
			clause.Eq{
				Column: clause.Column{Table: clause.CurrentTable, Name: cc.clinicColumn},
				Value:  clinicID.String(),
			},
		},
	})
}

// modelIsClinicOwned reports whether the statement targets an allowlisted
// table whose model carries the clinic column. Raw statements without a
// parsed schema are skipped.
func (cc *ClinicCallback) modelIsClinicOwned(db *gorm.DB) bool {
	if db.Statement.Schema == nil {
		return false
	}
	if !cc.tables[db.Statement.Table] {
		return false
	}
	return db.Statement.Schema.LookUpField(cc.clinicColumn) != nil
}

func (cc *ClinicCallback) hasClinicCondition(db *gorm.DB) bool {
	if whereClause, ok := db.Statement.Clauses["WHERE"]; ok {
		if where, ok := whereClause.Expression.(clause.Where); ok {
			for _, expr := range where.Exprs {
				if cc.exprContainsClinic(expr) {
					return true
				}
			}
		}
	}

	// scopes applied via Where("clinic_id = ?") land in the built SQL
	sql := db.Statement.SQL.String()
	return sql != "" && strings.Contains(sql, cc.clinicColumn)
}

func (cc *ClinicCallback) exprContainsClinic(expr clause.Expression) bool {
	switch e := expr.(type) {
	case clause.Eq:
		if col, ok := e.Column.(clause.Column); ok {
			return col.Name == cc.clinicColumn
		}
	case clause.IN:
		if col, ok := e.Column.(clause.Column); ok {
			return col.Name == cc.clinicColumn
		}
	case clause.Expr:
		return strings.Contains(e.SQL, cc.clinicColumn)
	case clause.AndConditions:
		for _, cond := range e.Exprs {
			if cc.exprContainsClinic(cond) {
				return true
			}
		}
	case clause.OrConditions:
		for _, cond := range e.Exprs {
			if cc.exprContainsClinic(cond) {
				return true
			}
		}
	}
	return false
}

// EnableAutoClinicFilter registers clinic filtering callbacks on a GORM
// instance, covering the clinic-owned resource tables unless an explicit
// table list is given. Call once at startup.
func EnableAutoClinicFilter(db *gorm.DB, required bool, tables ...string) {
	NewClinicCallback("clinic_id", required, tables...).RegisterCallbacks(db)
}

// DisableAutoClinicFilter removes the callbacks. Intended for tests.
func DisableAutoClinicFilter(db *gorm.DB) {
	_ = db.Callback().Query().Remove("clinicscope:before_query")
	_ = db.Callback().Update().Remove("clinicscope:before_update")
	_ = db.Callback().Delete().Remove("clinicscope:before_delete")
	_ = db.Callback().Row().Remove("clinicscope:before_row")
}
