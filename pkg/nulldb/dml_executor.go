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
	log "github.com/sirupsen/logrus"
)

// InsertExecutor is the executor for the insert query
type InsertExecutor struct {
	catalog *Catalog
	plan    *InsertPlanNode
}

var _ Executor = (*InsertExecutor)(nil)

// Execute executes the insert statement
func (ex *InsertExecutor) Execute() Result {
	log.WithFields(log.Fields{"table": ex.plan.TableName}).Debug("nulldb::dml_executor::InsertExecutor.Execute; start;")
	res := &InsertResult{}

	spec, err := ex.catalog.TableSpec(ex.plan.TableName)
	if err != nil {
		res.Err = err
		return res
	}

	columns := ex.plan.Columns
	if len(columns) == 0 {
		// no explicit column list, use the spec order
		for _, cs := range spec.Columns {
			columns = append(columns, cs.Name)
		}
	}

	for _, exprs := range ex.plan.Rows {
		if len(exprs) != len(columns) {
			res.Err = common.NewValidationError(fmt.Sprintf("expected %d values per row in insert, found %d", len(columns), len(exprs)))
			return res
		}

		row := Row{}
		for i, col := range columns {
			if spec.Column(col) == nil {
				res.Err = common.NewValidationError(fmt.Sprintf("unknown column %q in insert", col))
				return res
			}

			v, err := newValueEvaluator(exprs[i], nil).evaluate()
			if err != nil {
				res.Err = err
				return res
			}

			row[col] = v
		}

		// unmentioned columns get their default, or NULL
		for _, cs := range spec.Columns {
			if _, ok := row[cs.Name]; ok {
				continue
			}

			if cs.Default != nil {
				v, err := newValueEvaluator(cs.Default, nil).evaluate()
				if err != nil {
					res.Err = err
					return res
				}
				row[cs.Name] = v
			} else {
				row[cs.Name] = frontend.NullValue
			}
		}

		if res.Err = ex.catalog.InsertRow(ex.plan.TableName, row); res.Err != nil {
			return res
		}
		res.Inserted++
	}

	return res
}

// SelectExecutor is the executor for the select query
type SelectExecutor struct {
	catalog *Catalog
	plan    *SelectPlanNode
}

var _ Executor = (*SelectExecutor)(nil)

// Execute executes the select statement.
// The WHERE predicate follows the filtering contract: a row is returned iff
// the predicate evaluates to True.
func (ex *SelectExecutor) Execute() Result {
	log.WithFields(log.Fields{"table": ex.plan.TableName}).Debug("nulldb::dml_executor::SelectExecutor.Execute; start;")
	res := &SelectResult{}

	spec, err := ex.catalog.TableSpec(ex.plan.TableName)
	if err != nil {
		res.Err = err
		return res
	}

	rows, err := ex.catalog.Scan(ex.plan.TableName)
	if err != nil {
		res.Err = err
		return res
	}

	filtered, err := FilterRows(ex.plan.Predicate, rows)
	if err != nil {
		res.Err = err
		return res
	}

	// projection: output name and the source column it reads from
	var outNames, srcCols []string
	for _, si := range ex.plan.Selections {
		switch e := si.Expr.(type) {
		case *frontend.SelectAllExpression:
			for _, cs := range spec.Columns {
				outNames = append(outNames, cs.Name)
				srcCols = append(srcCols, cs.Name)
			}

		case *frontend.IdentifierExpression:
			if spec.Column(e.Identifier) == nil {
				res.Err = common.NewUnboundVariableError(e.Identifier)
				return res
			}

			name := e.Identifier
			if si.OutputName != "" {
				name = si.OutputName
			}
			outNames = append(outNames, name)
			srcCols = append(srcCols, e.Identifier)

		default:
			res.Err = common.NewValidationError("expected a column name or '*' in selection item")
			return res
		}
	}

	res.Columns = outNames
	for _, row := range filtered {
		out := Row{}
		for i := range outNames {
			out[outNames[i]] = row[srcCols[i]]
		}
		res.Rows = append(res.Rows, out)
	}

	return res
}

// UpdateExecutor is the executor for the update query
type UpdateExecutor struct {
	catalog *Catalog
	plan    *UpdatePlanNode
}

var _ Executor = (*UpdateExecutor)(nil)

// Execute executes the update statement.
// Only rows whose predicate evaluates to True are updated; rows evaluating to
// Unknown are left alone, same as the select filtering contract.
func (ex *UpdateExecutor) Execute() Result {
	log.WithFields(log.Fields{"table": ex.plan.TableName}).Debug("nulldb::dml_executor::UpdateExecutor.Execute; start;")
	res := &UpdateResult{}

	spec, err := ex.catalog.TableSpec(ex.plan.TableName)
	if err != nil {
		res.Err = err
		return res
	}

	rows, err := ex.catalog.Scan(ex.plan.TableName)
	if err != nil {
		res.Err = err
		return res
	}

	newRows := make([]Row, 0, len(rows))
	for _, row := range rows {
		match := True
		if ex.plan.Predicate != nil {
			match, err = Evaluate(ex.plan.Predicate, row)
			if err != nil {
				res.Err = err
				return res
			}
		}

		if match != True {
			newRows = append(newRows, row)
			continue
		}

		nr := Row{}
		for k, v := range row {
			nr[k] = v
		}

		for _, as := range ex.plan.Assignments {
			cs := spec.Column(as.Column)
			if cs == nil {
				res.Err = common.NewValidationError(fmt.Sprintf("unknown column %q in update", as.Column))
				return res
			}

			// assignments see the pre-update row
			v, err := newValueEvaluator(as.Expr, row).evaluate()
			if err != nil {
				res.Err = err
				return res
			}

			if v.IsNull() && !cs.Nullable {
				res.Err = common.NewValidationError(fmt.Sprintf("cannot set non nullable column %q to NULL", cs.Name))
				return res
			}
			if !v.IsNull() && v.Typ != cs.Type {
				res.Err = common.NewTypeMismatchError(fmt.Sprintf("type mismatch: column %q expects %s found %s", cs.Name, cs.Type, v.Typ))
				return res
			}

			nr[as.Column] = v
		}

		newRows = append(newRows, nr)
		res.Updated++
	}

	res.Err = ex.catalog.ReplaceRows(ex.plan.TableName, newRows)
	return res
}

// DeleteExecutor is the executor for the delete query
type DeleteExecutor struct {
	catalog *Catalog
	plan    *DeletePlanNode
}

var _ Executor = (*DeleteExecutor)(nil)

// Execute executes the delete statement.
// A row is deleted iff the predicate evaluates to True; Unknown keeps the row.
func (ex *DeleteExecutor) Execute() Result {
	log.WithFields(log.Fields{"table": ex.plan.TableName}).Debug("nulldb::dml_executor::DeleteExecutor.Execute; start;")
	res := &DeleteResult{}

	rows, err := ex.catalog.Scan(ex.plan.TableName)
	if err != nil {
		res.Err = err
		return res
	}

	newRows := make([]Row, 0, len(rows))
	for _, row := range rows {
		match := True
		if ex.plan.Predicate != nil {
			match, err = Evaluate(ex.plan.Predicate, row)
			if err != nil {
				res.Err = err
				return res
			}
		}

		if match == True {
			res.Deleted++
			continue
		}

		newRows = append(newRows, row)
	}

	res.Err = ex.catalog.ReplaceRows(ex.plan.TableName, newRows)
	return res
}
