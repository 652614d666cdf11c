package nulldb

import (
	"fmt"

	"github.com/nulldb/nulldb/pkg/frontend"
)

// PlanNode is a single executable node of a query plan
type PlanNode interface{}

// CreateTablePlanNode is the plan for a create table query
type CreateTablePlanNode struct {
	Schema *frontend.TableSpec
}

// DropTablePlanNode is the plan for a drop table query
type DropTablePlanNode struct {
	TableName string
}

// TruncateTablePlanNode is the plan for a truncate table query
type TruncateTablePlanNode struct {
	TableName string
}

// InsertPlanNode is the plan for an insert query
type InsertPlanNode struct {
	TableName string
	Columns   []string
	Rows      [][]frontend.Expression
}

// SelectPlanNode is the plan for a select query
type SelectPlanNode struct {
	TableName  string
	Selections []*frontend.SelectionItem
	Predicate  frontend.Expression
}

// Assignment is a single column = expression pair of an update
type Assignment struct {
	Column string
	Expr   frontend.Expression
}

// UpdatePlanNode is the plan for an update query
type UpdatePlanNode struct {
	TableName   string
	Assignments []*Assignment
	Predicate   frontend.Expression
}

// DeletePlanNode is the plan for a delete query
type DeletePlanNode struct {
	TableName string
	Predicate frontend.Expression
}

// planner derives the execution plan of a sql query
type planner struct {
	stmt frontend.Statement

	res PlanNode
	err error // errors encountered during the process
}

// plan the execution
func (p *planner) plan() *planner {
	switch st := p.stmt.(type) {
	case *frontend.CreateTableStatement:
		p.res = &CreateTablePlanNode{
			Schema: st.Spec,
		}

	case *frontend.DropTableStatement:
		p.res = &DropTablePlanNode{
			TableName: st.TableName,
		}

	case *frontend.TruncateTableStatement:
		p.res = &TruncateTablePlanNode{
			TableName: st.TableName,
		}

	case *frontend.InsertStatement:
		p.res = &InsertPlanNode{
			TableName: st.Table.Name,
			Columns:   st.Columns,
			Rows:      st.Values,
		}

	case *frontend.SelectStatement:
		p.res = &SelectPlanNode{
			TableName:  st.From.Name,
			Selections: st.Selections,
			Predicate:  st.Where,
		}

	case *frontend.UpdateStatement:
		node := &UpdatePlanNode{
			TableName: st.Table.Name,
			Predicate: st.Predicate,
		}

		// the validator guarantees each value is column = expression
		for _, val := range st.Values {
			boe, ok := val.(*frontend.BinaryOpExpression)
			if !ok || boe.Op != frontend.OperatorEqual {
				p.err = fmt.Errorf("nulldb::planner::plan: expected assignment in update values")
				return p
			}

			ie, ok := boe.L.(*frontend.IdentifierExpression)
			if !ok {
				p.err = fmt.Errorf("nulldb::planner::plan: expected column name on the left of an assignment")
				return p
			}

			node.Assignments = append(node.Assignments, &Assignment{Column: ie.Identifier, Expr: boe.R})
		}

		p.res = node

	case *frontend.DeleteStatement:
		p.res = &DeletePlanNode{
			TableName: st.Table.Name,
			Predicate: st.Predicate,
		}

	default:
		p.err = fmt.Errorf("nulldb::planner::plan: unexpected statement type")
	}

	return p
}

// optimize optimizes the plan
func (p *planner) optimize() *planner {
	return p
}

// get returns the final plan
func (p *planner) get() (PlanNode, error) {
	return p.res, p.err
}

// newPlanner creates a new planner for the given statement
func newPlanner(stmt frontend.Statement) *planner {
	return &planner{
		stmt: stmt,
	}
}
