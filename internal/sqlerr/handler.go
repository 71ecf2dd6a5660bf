package sqlerr

import (
	"database/sql"
	"errors"
	"fmt"
	"strings"

	"golang.org/x/text/cases"
	"golang.org/x/text/language"

	"github.com/deppfellow/menu-service/internal/errs"
)

// TablePrefix marks the table name inside a wrapped error message.
// Repositories wrap errors as "table:<name>: ..." so HandleError can name
// the missing entity.
const TablePrefix = "table:"

// HandleError converts a low-level database error into an application-level error.
//
// Output:
//   - *errs.HTTPError: returned unchanged
//   - sql.ErrNoRows: 404, naming the entity when the table is known
//   - anything else: a generic 500
//
// Constraint violations are not surfaced to the client; their
// classification is only logged by the caller (see Classify).
func HandleError(err error) error {
	var httpErr *errs.HTTPError
	if errors.As(err, &httpErr) {
		return err
	}

	if errors.Is(err, sql.ErrNoRows) {
		if table := tableFromMessage(err.Error()); table != "" {
			return errs.NewNotFoundError(fmt.Sprintf("%s not found", getEntityName(table)), true, nil)
		}
		return errs.NewNotFoundError("Resource not found", false, nil)
	}

	return errs.NewInternalServerError()
}

// tableFromMessage extracts <name> from "... table:<name>: ...".
func tableFromMessage(msg string) string {
	_, rest, found := strings.Cut(msg, TablePrefix)
	if !found {
		return ""
	}
	table, _, _ := strings.Cut(rest, ":")
	return strings.TrimSpace(table)
}

// getEntityName singularizes a table name and title-cases it.
//
//	"categories" -> "Category", "items" -> "Item"
func getEntityName(tableName string) string {
	entity := strings.ToLower(tableName)

	switch {
	case strings.HasSuffix(entity, "ies"):
		entity = strings.TrimSuffix(entity, "ies") + "y"
	case strings.HasSuffix(entity, "s") && len(entity) > 1:
		entity = strings.TrimSuffix(entity, "s")
	}

	return humanizeText(entity)
}

// humanizeText converts snake_case into Title Case.
func humanizeText(text string) string {
	if text == "" {
		return ""
	}
	return cases.Title(language.English).String(strings.ReplaceAll(text, "_", " "))
}
