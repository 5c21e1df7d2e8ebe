package csv

import (
	"fmt"

	"github.com/shapestone/shape-core/pkg/ast"

	"github.com/shapestone/shape-csvtable/internal/fastparser"
)

// ParseAST parses data into Shape's unified AST:
//   - *ast.ArrayDataNode for the table (array of rows)
//   - *ast.ArrayDataNode for each row (array of fields)
//   - *ast.LiteralNode with a string value for each field
//
// Field nodes carry their source position (byte offset, 1-based line and
// column); row nodes carry the position of their first field.
func ParseAST(data []byte) (ast.SchemaNode, error) {
	var (
		rows    []ast.SchemaNode
		fields  []ast.SchemaNode
		rowPos  ast.Position
		curLine = -1
	)

	flush := func() {
		if curLine >= 0 {
			rows = append(rows, ast.NewArrayDataNode(fields, rowPos))
		}
	}

	_, err := fastparser.ParseWithHook(data, func(f fastparser.Field) {
		pos := ast.NewPosition(f.Offset, f.Pos.Line+1, f.Pos.Column+1)
		if f.Pos.Line != curLine {
			flush()
			curLine = f.Pos.Line
			rowPos = pos
			fields = make([]ast.SchemaNode, 0, len(fields))
		}
		fields = append(fields, ast.NewLiteralNode(f.Value, pos))
	})
	if err != nil {
		return nil, err
	}
	flush()

	if rows == nil {
		rows = []ast.SchemaNode{}
	}
	return ast.NewArrayDataNode(rows, ast.ZeroPosition()), nil
}

// ToAST converts the table to an AST without source positions.
func (t *Table) ToAST() *ast.ArrayDataNode {
	rows := make([]ast.SchemaNode, len(t.rows))
	for i, row := range t.rows {
		fields := make([]ast.SchemaNode, len(row))
		for j, f := range row {
			fields[j] = ast.NewLiteralNode(f, ast.ZeroPosition())
		}
		rows[i] = ast.NewArrayDataNode(fields, ast.ZeroPosition())
	}
	return ast.NewArrayDataNode(rows, ast.ZeroPosition())
}

// NodeToTable converts an AST produced by ParseAST or ToAST back into a Table.
//
// The node must be an array of arrays of string literals, and every row must
// have as many fields as the first; a mismatch is reported as a *ParseError
// of kind KindInvalidRowLength.
func NodeToTable(node ast.SchemaNode) (*Table, error) {
	arrayNode, ok := node.(*ast.ArrayDataNode)
	if !ok {
		return nil, fmt.Errorf("expected *ast.ArrayDataNode, got %T", node)
	}

	elements := arrayNode.Elements()
	records := make([][]string, 0, len(elements))
	for i, elem := range elements {
		rowNode, ok := elem.(*ast.ArrayDataNode)
		if !ok {
			return nil, fmt.Errorf("row %d: expected *ast.ArrayDataNode, got %T", i, elem)
		}

		row := make([]string, 0, rowNode.Len())
		for j, fieldNode := range rowNode.Elements() {
			lit, ok := fieldNode.(*ast.LiteralNode)
			if !ok {
				return nil, fmt.Errorf("row %d field %d: expected *ast.LiteralNode, got %T", i, j, fieldNode)
			}
			value, ok := lit.Value().(string)
			if !ok {
				return nil, fmt.Errorf("row %d field %d: expected string value, got %T", i, j, lit.Value())
			}
			row = append(row, value)
		}

		if i > 0 && len(row) != len(records[0]) {
			return nil, &ParseError{
				Kind:           KindInvalidRowLength,
				Pos:            Position{Line: i},
				ExpectedFields: len(records[0]),
				GotFields:      len(row),
			}
		}
		records = append(records, row)
	}

	return newTable(records), nil
}

// NodeToRecords converts an AST node to [][]string, returning an empty
// slice when the node does not have the table shape.
//
// Example:
//
//	node, _ := csv.ParseAST([]byte("name,age\nAlice,30\n"))
//	records := csv.NodeToRecords(node)
//	// records is [][]string{{"name","age"}, {"Alice","30"}}
func NodeToRecords(node ast.SchemaNode) [][]string {
	table, err := NodeToTable(node)
	if err != nil {
		return [][]string{}
	}
	return table.Records()
}
