package importer

import (
	_ "embed"
	"fmt"
	"sync"

	"cuelang.org/go/cue"
	"cuelang.org/go/cue/cuecontext"
)

//go:embed schema.cue
var schemaCUE string

var (
	schemaOnce sync.Once
	schemaVal  cue.Value
)

// rowSchema compiles the embedded CUE schema once and returns the #Row
// definition.
func rowSchema() cue.Value {
	schemaOnce.Do(func() {
		ctx := cuecontext.New()
		v := ctx.CompileString(schemaCUE)
		schemaVal = v.LookupPath(cue.ParsePath("#Row"))
	})
	return schemaVal
}

// RowError is a validation failure for one import row.
type RowError struct {
	// Row is the 1-based row number in the input file.
	Row     int
	Field   string
	Message string
}

// Error implements the error interface.
func (e *RowError) Error() string {
	if e.Field != "" {
		return fmt.Sprintf("row %d: %s: %s", e.Row, e.Field, e.Message)
	}
	return fmt.Sprintf("row %d: %s", e.Row, e.Message)
}

// validateRow unifies a decoded row with the schema. Unification failures
// (unknown fields via close(), malformed amounts, bad currency codes)
// surface as RowErrors.
func validateRow(rowNum int, row Row) error {
	schema := rowSchema()
	if err := schema.Err(); err != nil {
		return fmt.Errorf("row schema: %w", err)
	}

	v := schema.Context().Encode(row)
	if err := v.Err(); err != nil {
		return &RowError{Row: rowNum, Message: err.Error()}
	}

	unified := schema.Unify(v)
	if err := unified.Validate(cue.Concrete(false)); err != nil {
		return &RowError{Row: rowNum, Message: err.Error()}
	}
	return nil
}
