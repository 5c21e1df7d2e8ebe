package csv_test

import (
	"errors"
	"strings"
	"testing"

	"github.com/shapestone/shape-csvtable/pkg/csv"
)

func TestValidateDocument(t *testing.T) {
	doc := csv.NewDocument(mustParse(t, "name,age,role\n"+
		"alice,30,admin\n"+
		",x,guest\n"+
		"bob,2.5,root"), true)

	schema := csv.NewSchema().
		AddRequiredColumn("name", csv.TypeString).
		AddColumn(csv.ColumnDefinition{Name: "age", Type: csv.TypeInt}).
		AddColumn(csv.ColumnDefinition{Name: "role", AllowedValues: []string{"admin", "guest"}})

	result := csv.ValidateDocument(doc, schema)
	if result.Valid {
		t.Fatal("ValidateDocument() Valid = true, want false")
	}

	want := []csv.ValidationError{
		{Record: 1, Column: "name", Value: "", Message: "required field is empty"},
		{Record: 1, Column: "age", Value: "x", Message: "expected int"},
		{Record: 2, Column: "age", Value: "2.5", Message: "expected int"},
		{Record: 2, Column: "role", Value: "root", Message: "value not in allowed set: [admin guest]"},
	}
	if len(result.Errors) != len(want) {
		t.Fatalf("ValidateDocument() errors = %v, want %d errors", result.Errors, len(want))
	}
	for i := range want {
		if result.Errors[i] != want[i] {
			t.Errorf("error %d = %+v, want %+v", i, result.Errors[i], want[i])
		}
	}
	if result.Err() == nil {
		t.Error("Err() = nil, want error")
	}
}

func TestValidateDocument_Header(t *testing.T) {
	doc := csv.NewDocument(mustParse(t, "name,extra\na,b"), true)
	schema := csv.NewSchema().
		AddRequiredColumn("name", csv.TypeString).
		AddRequiredColumn("email", csv.TypeString)

	result := csv.ValidateDocument(doc, schema)
	msg := result.Error()
	for _, part := range []string{`column "email": column not found in header`, `column "extra": unexpected column not in schema`} {
		if !strings.Contains(msg, part) {
			t.Errorf("Error() = %q, want it to contain %q", msg, part)
		}
	}

	schema.AllowExtraColumns = true
	schema.AllowMissingColumns = true
	if err := csv.ValidateDocument(doc, schema).Err(); err != nil {
		t.Errorf("ValidateDocument() with relaxed schema error = %v", err)
	}
}

func TestValidateDocument_NoHeader(t *testing.T) {
	doc := csv.NewDocument(mustParse(t, "a,b"), false)
	if result := csv.ValidateDocument(doc, csv.NewSchema()); result.Valid {
		t.Error("ValidateDocument() without headers Valid = true, want false")
	}
}

func TestValidateDocument_CustomValidator(t *testing.T) {
	doc := csv.NewDocument(mustParse(t, "email\nbob\nbob@example.com"), true)
	schema := csv.NewSchema().AddColumn(csv.ColumnDefinition{
		Name: "email",
		Validator: func(v string) error {
			if !strings.Contains(v, "@") {
				return errors.New("not an email address")
			}
			return nil
		},
		MaxLength: 64,
	})

	result := csv.ValidateDocument(doc, schema)
	if len(result.Errors) != 1 || result.Errors[0].Record != 0 {
		t.Errorf("ValidateDocument() errors = %+v, want one error on record 0", result.Errors)
	}
}

func TestInferSchema(t *testing.T) {
	doc := csv.NewDocument(mustParse(t, "id,score\n1,2.5\n2,3"), true)

	schema := csv.InferSchema(doc, nil)
	if len(schema.Columns) != 2 || schema.Columns[0].Type != csv.TypeInt || schema.Columns[1].Type != csv.TypeFloat {
		t.Fatalf("InferSchema() = %+v", schema.Columns)
	}
	if err := csv.ValidateDocument(doc, schema).Err(); err != nil {
		t.Errorf("document does not validate against its own schema: %v", err)
	}
}
