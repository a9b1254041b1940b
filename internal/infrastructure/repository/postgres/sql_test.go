package postgres

import (
	"database/sql"
	"fmt"
	"testing"

	"github.com/lib/pq"
)

func TestViolatedConstraint(t *testing.T) {
	t.Run("unique violation reports constraint", func(t *testing.T) {
		err := fmt.Errorf("insert player: %w", &pq.Error{Code: pgUniqueViolation, Constraint: constraintPlayerName})
		got, ok := violatedConstraint(err)
		if !ok || got != constraintPlayerName {
			t.Fatalf("expected %s, got %q ok=%v", constraintPlayerName, got, ok)
		}
	})

	t.Run("other pq errors are ignored", func(t *testing.T) {
		if _, ok := violatedConstraint(&pq.Error{Code: pgForeignKeyViolation}); ok {
			t.Fatalf("expected foreign key violation not to match")
		}
	})

	t.Run("plain errors are ignored", func(t *testing.T) {
		if _, ok := violatedConstraint(sql.ErrConnDone); ok {
			t.Fatalf("expected plain error not to match")
		}
	})
}

func TestIsForeignKeyViolation(t *testing.T) {
	err := fmt.Errorf("delete player: %w", &pq.Error{Code: pgForeignKeyViolation})
	if !isForeignKeyViolation(err) {
		t.Fatalf("expected wrapped foreign key violation to match")
	}
	if isForeignKeyViolation(&pq.Error{Code: pgUniqueViolation}) {
		t.Fatalf("did not expect unique violation to match")
	}
}

func TestIsNotFound(t *testing.T) {
	if !isNotFound(fmt.Errorf("get league: %w", sql.ErrNoRows)) {
		t.Fatalf("expected wrapped ErrNoRows to match")
	}
}

func TestNullString(t *testing.T) {
	if nullString("").Valid {
		t.Fatalf("expected empty string to be null")
	}
	if got := nullString("https://img"); !got.Valid || got.String != "https://img" {
		t.Fatalf("unexpected null string: %+v", got)
	}
}
