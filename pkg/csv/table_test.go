package csv_test

import (
	"reflect"
	"testing"

	"github.com/shapestone/shape-csvtable/pkg/csv"
)

func TestTable_Accessors(t *testing.T) {
	table, err := csv.ParseString("a,b,c\n1,2,3\n4,5,6")
	if err != nil {
		t.Fatalf("ParseString() error = %v", err)
	}

	if table.Len() != 3 {
		t.Errorf("Len() = %d, want 3", table.Len())
	}
	if table.Width() != 3 {
		t.Errorf("Width() = %d, want 3", table.Width())
	}

	row, ok := table.Row(1)
	if !ok || !reflect.DeepEqual(row, csv.Row{"1", "2", "3"}) {
		t.Errorf("Row(1) = %q, %v, want [1 2 3], true", row, ok)
	}
	if _, ok := table.Row(3); ok {
		t.Error("Row(3) ok = true, want false")
	}
	if _, ok := table.Row(-1); ok {
		t.Error("Row(-1) ok = true, want false")
	}

	col, ok := table.Column(2)
	if !ok || !reflect.DeepEqual(col, []string{"c", "3", "6"}) {
		t.Errorf("Column(2) = %q, %v, want [c 3 6], true", col, ok)
	}
	if _, ok := table.Column(3); ok {
		t.Error("Column(3) ok = true, want false")
	}

	if len(table.Rows()) != 3 {
		t.Errorf("Rows() len = %d, want 3", len(table.Rows()))
	}
}

func TestTable_RecordsIsACopy(t *testing.T) {
	table, err := csv.ParseString("a,b")
	if err != nil {
		t.Fatalf("ParseString() error = %v", err)
	}

	records := table.Records()
	records[0][0] = "changed"

	row, _ := table.Row(0)
	if row[0] != "a" {
		t.Errorf("table changed through Records(): row 0 = %q", row)
	}
}

func TestTable_Empty(t *testing.T) {
	table, err := csv.ParseString("")
	if err != nil {
		t.Fatalf("ParseString() error = %v", err)
	}
	if table.Len() != 0 || table.Width() != 0 {
		t.Errorf("empty table = %dx%d, want 0x0", table.Len(), table.Width())
	}
	if got := table.Records(); len(got) != 0 {
		t.Errorf("Records() = %q, want empty", got)
	}
	if _, ok := table.Column(0); ok {
		t.Error("Column(0) ok = true on empty table, want false")
	}
}
