/**
 * Copyright 2024 The NullDB Authors. All rights reserved.
 *
 * Licensed under the Apache License, Version 2.0 (the "License");
 * you may not use this file except in compliance with the License.
 * You may obtain a copy of the License at
 *
 *      https://www.apache.org/licenses/LICENSE-2.0
 *
 * Unless required by applicable law or agreed to in writing, software
 * distributed under the License is distributed on an "AS IS" BASIS,
 * WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
 * See the License for the specific language governing permissions and
 * limitations under the License.
 */

package frontend

import (
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestCreateTableBasic(t *testing.T) {
	cmd := "CREATE TABLE Students(ROLL_NO int PRIMARY KEY UNIQUE NOT NULL, NAME varchar INDEX, SUBJECT varchar, AGE double, RICH bool);"
	expectedSpecs := []*ColumnSpec{
		{
			Name:       "ROLL_NO",
			Type:       FieldTypeInteger,
			Nullable:   false,
			PrimaryKey: true,
			Unique:     true,
			Index:      false,
			References: "",
		},
		{
			Name:       "NAME",
			Type:       FieldTypeString,
			Nullable:   true,
			PrimaryKey: false,
			Unique:     false,
			Index:      true,
			References: "",
		},
		{
			Name:       "SUBJECT",
			Type:       FieldTypeString,
			Nullable:   true,
			PrimaryKey: false,
			Unique:     false,
			Index:      false,
			References: "",
		},
		{
			Name:       "AGE",
			Type:       FieldTypeFloat,
			Nullable:   true,
			PrimaryKey: false,
			Unique:     false,
			Index:      false,
			References: "",
		},
		{
			Name:       "RICH",
			Type:       FieldTypeBoolean,
			Nullable:   true,
			PrimaryKey: false,
			Unique:     false,
			Index:      false,
			References: "",
		},
	}

	p := NewParser("testParser", cmd)
	stmt, err := p.Parse()
	assert.Nil(t, err, "Unexpected error in parsing create table DDL")

	assert.IsType(t, &CreateTableStatement{}, stmt, "Unexpected type of statement. Expected a &CreateTableStatement")
	ctStmt := stmt.(*CreateTableStatement)

	assert.Equal(t, "Students", ctStmt.Spec.TableName, fmt.Sprintf("Wrong table name. Expected Students, Found %s", ctStmt.Spec.TableName))
	assert.Equal(t, len(expectedSpecs), len(ctStmt.Spec.Columns), "Unexpected length of columns")

	for i := range expectedSpecs {
		assert.Equal(t, expectedSpecs[i], ctStmt.Spec.Columns[i], "Wrong column spec")
	}
}

func TestCreateTableBasicWithValueDefaults(t *testing.T) {
	cmd := "CREATE TABLE Students(ROLL_NO int PRIMARY KEY, AGE double DEFAULT 10.1, RICH bool DEFAULT false);"
	expectedSpecs := []*ColumnSpec{
		{
			Name:       "ROLL_NO",
			Type:       FieldTypeInteger,
			Nullable:   false,
			PrimaryKey: true,
		},
		{
			Name:     "AGE",
			Type:     FieldTypeFloat,
			Nullable: true,
			Default:  &ValueExpression{Val: &Value{Typ: FieldTypeFloat, Val: float64(10.1)}},
		},
		{
			Name:     "RICH",
			Type:     FieldTypeBoolean,
			Nullable: true,
			Default:  &ValueExpression{Val: &Value{Typ: FieldTypeBoolean, Val: false}},
		},
	}

	p := NewParser("testParser", cmd)
	stmt, err := p.Parse()
	assert.Nil(t, err, "Unexpected error in parsing create table DDL")

	assert.IsType(t, &CreateTableStatement{}, stmt, "Unexpected type of statement. Expected a &CreateTableStatement")
	ctStmt := stmt.(*CreateTableStatement)

	assert.Equal(t, "Students", ctStmt.Spec.TableName, fmt.Sprintf("Wrong table name. Expected Students, Found %s", ctStmt.Spec.TableName))
	assert.Equal(t, len(expectedSpecs), len(ctStmt.Spec.Columns), "Unexpected length of columns")

	for i := range expectedSpecs {
		assert.Equal(t, expectedSpecs[i], ctStmt.Spec.Columns[i], "Wrong column spec")
	}
}

// Incorrect statements
func TestCreateTableIncorrect(t *testing.T) {
	cmds := []string{
		"CREATE TABLE Students(ROLL_NO int PRIMARY Random KEY UNIQUE, NAME bool, SUBJECT varchar);",
		"CREATE TABLE Students ROLL_NO int PRIMARY Random KEY UNIQUE, NAME bool, SUBJECT varchar);",
		"CREATE TABLE Students(ROLL_NO int PRIMARY Random KEY UNIQUE, NAME bool, SUBJECT varchar)",
	}

	for i := 0; i < len(cmds); i++ {
		p := NewParser("testParser", cmds[i])
		_, err := p.Parse()
		assert.NotNil(t, err, "Unexpected success in parsing create table DDL")
	}
}

func TestDropTableCorrect(t *testing.T) {
	cmd := "DROP TABLE Students;"

	p := NewParser("testParser", cmd)
	stmt, err := p.Parse()
	assert.Nil(t, err, "Unexpected error in parsing drop table DDL")

	assert.IsType(t, &DropTableStatement{}, stmt, "Unexpected type of statement. Expected a &DropTableStatement")
	dtStmt := stmt.(*DropTableStatement)

	assert.Equal(t, "Students", dtStmt.TableName, fmt.Sprintf("Wrong table name. Expected Students, Found %s", dtStmt.TableName))
}

func TestTruncateTableCorrect(t *testing.T) {
	cmd := "TRUNCATE TABLE Students;"

	p := NewParser("testParser", cmd)
	stmt, err := p.Parse()
	assert.Nil(t, err, "Unexpected error in parsing truncate table DDL")

	assert.IsType(t, &TruncateTableStatement{}, stmt, "Unexpected type of statement. Expected a &TruncateTableStatement")
	ttStmt := stmt.(*TruncateTableStatement)

	assert.Equal(t, "Students", ttStmt.TableName, fmt.Sprintf("Wrong table name. Expected Students, Found %s", ttStmt.TableName))
}

func TestSelectWithWherePredicate(t *testing.T) {
	cmd := "SELECT NAME, AGE FROM Students WHERE AGE > 18 AND NAME IS NOT NULL;"

	p := NewParser("testParser", cmd)
	stmt, err := p.Parse()
	assert.Nil(t, err, "Unexpected error in parsing select query")

	assert.IsType(t, &SelectStatement{}, stmt, "Unexpected type of statement. Expected a &SelectStatement")
	sStmt := stmt.(*SelectStatement)

	assert.Equal(t, "Students", sStmt.From.Name, "Wrong table name")
	assert.Equal(t, 2, len(sStmt.Selections), "Unexpected number of selections")

	expectedWhere := &BinaryOpExpression{
		Op: OperatorAnd,
		L: &BinaryOpExpression{
			Op: OperatorGreaterThan,
			L:  &IdentifierExpression{Identifier: "AGE"},
			R:  &ValueExpression{Val: &Value{Typ: FieldTypeInteger, Val: int64(18)}},
		},
		R: &IsNullExpression{
			Exp:    &IdentifierExpression{Identifier: "NAME"},
			Negate: true,
		},
	}

	assert.Equal(t, expectedWhere, sStmt.Where, "Wrong where predicate")
}

func TestSelectAllWithNullComparison(t *testing.T) {
	cmd := "SELECT * FROM Students WHERE SUBJECT = NULL;"

	p := NewParser("testParser", cmd)
	stmt, err := p.Parse()
	assert.Nil(t, err, "Unexpected error in parsing select query")

	sStmt := stmt.(*SelectStatement)
	assert.Equal(t, 1, len(sStmt.Selections), "Unexpected number of selections")
	assert.IsType(t, &SelectAllExpression{}, sStmt.Selections[0].Expr, "Expected a select all expression")

	expectedWhere := &BinaryOpExpression{
		Op: OperatorEqual,
		L:  &IdentifierExpression{Identifier: "SUBJECT"},
		R:  &ValueExpression{Val: &Value{Typ: FieldTypeNull}},
	}

	assert.Equal(t, expectedWhere, sStmt.Where, "Wrong where predicate")
}

func TestSelectOperatorPrecedence(t *testing.T) {
	// AND binds the comparisons, OR is applied last
	cmd := "SELECT * FROM s WHERE a > 1 AND b < 2 OR c = 3;"

	p := NewParser("testParser", cmd)
	stmt, err := p.Parse()
	assert.Nil(t, err, "Unexpected error in parsing select query")

	sStmt := stmt.(*SelectStatement)
	where, ok := sStmt.Where.(*BinaryOpExpression)
	assert.True(t, ok, "Expected a binary op expression at the top")
	assert.Equal(t, OperatorOr, where.Op, "Expected OR at the top of the tree")

	left, ok := where.L.(*BinaryOpExpression)
	assert.True(t, ok, "Expected a binary op expression on the left")
	assert.Equal(t, OperatorAnd, left.Op, "Expected AND below OR")
}

func TestInsertMultipleRows(t *testing.T) {
	cmd := "INSERT INTO Students(ROLL_NO, NAME) VALUES (1, 'Alice'), (2, NULL);"

	p := NewParser("testParser", cmd)
	stmt, err := p.Parse()
	assert.Nil(t, err, "Unexpected error in parsing insert statement")

	assert.IsType(t, &InsertStatement{}, stmt, "Unexpected type of statement. Expected a &InsertStatement")
	iStmt := stmt.(*InsertStatement)

	assert.Equal(t, "Students", iStmt.Table.Name, "Wrong table name")
	assert.Equal(t, []string{"ROLL_NO", "NAME"}, iStmt.Columns, "Wrong column list")
	assert.Equal(t, 2, len(iStmt.Values), "Unexpected number of rows")

	expectedFirst := []Expression{
		&ValueExpression{Val: &Value{Typ: FieldTypeInteger, Val: int64(1)}},
		&ValueExpression{Val: &Value{Typ: FieldTypeString, Val: "Alice"}},
	}
	expectedSecond := []Expression{
		&ValueExpression{Val: &Value{Typ: FieldTypeInteger, Val: int64(2)}},
		&ValueExpression{Val: &Value{Typ: FieldTypeNull}},
	}

	assert.Equal(t, expectedFirst, iStmt.Values[0], "Wrong first row")
	assert.Equal(t, expectedSecond, iStmt.Values[1], "Wrong second row")
}

func TestUpdateWithPredicate(t *testing.T) {
	cmd := "UPDATE Students SET NAME = 'Bob' WHERE ROLL_NO = 1;"

	p := NewParser("testParser", cmd)
	stmt, err := p.Parse()
	assert.Nil(t, err, "Unexpected error in parsing update statement")

	uStmt := stmt.(*UpdateStatement)
	assert.Equal(t, "Students", uStmt.Table.Name, "Wrong table name")
	assert.Equal(t, 1, len(uStmt.Values), "Unexpected number of assignments")

	expectedAssignment := &BinaryOpExpression{
		Op: OperatorEqual,
		L:  &IdentifierExpression{Identifier: "NAME"},
		R:  &ValueExpression{Val: &Value{Typ: FieldTypeString, Val: "Bob"}},
	}
	assert.Equal(t, expectedAssignment, uStmt.Values[0], "Wrong assignment")

	expectedWhere := &BinaryOpExpression{
		Op: OperatorEqual,
		L:  &IdentifierExpression{Identifier: "ROLL_NO"},
		R:  &ValueExpression{Val: &Value{Typ: FieldTypeInteger, Val: int64(1)}},
	}
	assert.Equal(t, expectedWhere, uStmt.Predicate, "Wrong predicate")
}

func TestDeleteWithNullTest(t *testing.T) {
	cmd := "DELETE FROM Students WHERE NAME IS NULL;"

	p := NewParser("testParser", cmd)
	stmt, err := p.Parse()
	assert.Nil(t, err, "Unexpected error in parsing delete statement")

	dStmt := stmt.(*DeleteStatement)
	assert.Equal(t, "Students", dStmt.Table.Name, "Wrong table name")

	expectedWhere := &IsNullExpression{
		Exp:    &IdentifierExpression{Identifier: "NAME"},
		Negate: false,
	}
	assert.Equal(t, expectedWhere, dStmt.Predicate, "Wrong predicate")
}

func TestParseScript(t *testing.T) {
	script := `
		-- lesson 1: schema design
		CREATE TABLE Students(ROLL_NO int, NAME varchar);
		INSERT INTO Students VALUES (1, 'Alice');
		SELECT * FROM Students;
	`

	p := NewParser("testParser", script)
	stmts, err := p.ParseScript()
	assert.Nil(t, err, "Unexpected error in parsing script")
	assert.Equal(t, 3, len(stmts), "Unexpected number of statements")

	assert.IsType(t, &CreateTableStatement{}, stmts[0], "Expected a create table statement first")
	assert.IsType(t, &InsertStatement{}, stmts[1], "Expected an insert statement second")
	assert.IsType(t, &SelectStatement{}, stmts[2], "Expected a select statement last")
}

func TestParseIncorrectStatements(t *testing.T) {
	cmds := []string{
		"DROP RANDOM Students;",
		"DROP TABLE Students",
		"SELECT FROM Students;",
		"INSERT INTO Students VALUES 1, 2;",
		"DELETE Students WHERE NAME IS NULL;",
		"SELECT * FROM Students WHERE NAME IS;",
	}

	for i := 0; i < len(cmds); i++ {
		p := NewParser("testParser", cmds[i])
		_, err := p.Parse()
		assert.NotNil(t, err, fmt.Sprintf("Unexpected success in parsing statement %d", i))
	}
}
