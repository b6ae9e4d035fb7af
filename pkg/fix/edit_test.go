package fix_test

import (
	"testing"

	"github.com/yaklabco/marklint/pkg/fix"
)

func TestEditConstructors(t *testing.T) {
	t.Parallel()

	t.Run("replace", func(t *testing.T) {
		t.Parallel()

		e := fix.Replace(3, 7, "new")
		if e.StartOffset != 3 || e.EndOffset != 7 || e.NewText != "new" {
			t.Errorf("Replace() = %+v", e)
		}
		if e.IsInsert() || e.IsDelete() {
			t.Error("replacement should be neither insert nor delete")
		}
	})

	t.Run("insert", func(t *testing.T) {
		t.Parallel()

		e := fix.Insert(5, "text")
		if e.StartOffset != 5 || e.EndOffset != 5 || e.NewText != "text" {
			t.Errorf("Insert() = %+v", e)
		}
		if !e.IsInsert() {
			t.Error("IsInsert() = false")
		}
	})

	t.Run("delete", func(t *testing.T) {
		t.Parallel()

		e := fix.Delete(2, 9)
		if e.StartOffset != 2 || e.EndOffset != 9 || e.NewText != "" {
			t.Errorf("Delete() = %+v", e)
		}
		if !e.IsDelete() {
			t.Error("IsDelete() = false")
		}
	})
}
