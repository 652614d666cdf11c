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

package nulldb

import (
	"fmt"

	"github.com/nulldb/nulldb/pkg/common"
	"github.com/nulldb/nulldb/pkg/frontend"
)

// Validator validates the parsed AST for inconsistencies
type validator interface {
	validate() error
}

var _ validator = (*emptyValidator)(nil)
var _ validator = (*createTableValidator)(nil)
var _ validator = (*insertStatementValidator)(nil)
var _ validator = (*updateStatementValidator)(nil)

// newValidator creates a new validator for the parsed statement
func newValidator(ast frontend.Statement) validator {
	switch st := ast.(type) {
	case *frontend.CreateTableStatement:
		return &createTableValidator{ast: st}
	case *frontend.InsertStatement:
		return &insertStatementValidator{ast: st}
	case *frontend.UpdateStatement:
		return &updateStatementValidator{ast: st}
	default:
		return &emptyValidator{ast: ast}
	}
}

// emptyValidator is a trivial validator that doesn't validate anything
// useful for statements such as drop/truncate/select/delete where the parser
// already guarantees the required shape.
type emptyValidator struct {
	ast frontend.Statement
}

func (ev *emptyValidator) validate() error {
	return nil
}

// createTableValidator validates a create table statement
type createTableValidator struct {
	ast *frontend.CreateTableStatement
}

// validates the create table statement
func (ctv *createTableValidator) validate() error {
	seen := make(map[string]bool)
	primaryKeys := 0

	for _, cs := range ctv.ast.Spec.Columns {
		if seen[cs.Name] {
			return common.NewValidationError(fmt.Sprintf("duplicate column %q in create table", cs.Name))
		}
		seen[cs.Name] = true

		if cs.PrimaryKey {
			primaryKeys++
			if cs.Nullable {
				return common.NewValidationError(fmt.Sprintf("primary key column %q must be NOT NULL", cs.Name))
			}
		}
	}

	if primaryKeys > 1 {
		return common.NewValidationError("at most one primary key column is allowed")
	}

	return nil
}

// insertStatementValidator validates an insert statement
type insertStatementValidator struct {
	ast *frontend.InsertStatement
}

func (isv *insertStatementValidator) validate() error {
	seen := make(map[string]bool)
	for _, col := range isv.ast.Columns {
		if seen[col] {
			return common.NewValidationError(fmt.Sprintf("duplicate column %q in insert", col))
		}
		seen[col] = true
	}

	for _, row := range isv.ast.Values {
		if len(isv.ast.Columns) != 0 && len(row) != len(isv.ast.Columns) {
			return common.NewValidationError(fmt.Sprintf("expected %d values per row in insert, found %d", len(isv.ast.Columns), len(row)))
		}
	}

	return nil
}

// updateStatementValidator validates an update statement
type updateStatementValidator struct {
	ast *frontend.UpdateStatement
}

func (usv *updateStatementValidator) validate() error {
	for _, val := range usv.ast.Values {
		boe, ok := val.(*frontend.BinaryOpExpression)
		if !ok || boe.Op != frontend.OperatorEqual {
			return common.NewValidationError("expected column = expression in update set clause")
		}

		if _, ok := boe.L.(*frontend.IdentifierExpression); !ok {
			return common.NewValidationError("expected a column name on the left of an update assignment")
		}
	}

	return nil
}
