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

// Row maps column names to their nullable values. It doubles as the
// evaluation environment of a predicate.
type Row map[string]*frontend.Value

// predicateEvaluator evaluates a boolean expression over a row to one of the
// three truth values. This is what backs the WHERE clause.
//
// Eg: predicate in WHERE clause of select/update/delete
// Non Eg: VALUES in insert statement (see valueEvaluator)
type predicateEvaluator struct {
	expr frontend.Expression
	env  Row
	err  error
}

func newPredicateEvaluator(expr frontend.Expression, env Row) *predicateEvaluator {
	return &predicateEvaluator{
		expr: expr,
		env:  env,
	}
}

// evaluate the predicate to its tri-state result.
// Pure function of (expr, env); the environment is never mutated.
func (pe *predicateEvaluator) evaluate() (TriState, error) {
	res := pe.evaluateExpression(pe.expr)
	if pe.err != nil {
		return False, pe.err
	}

	return res, nil
}

//
// Internal methods
//

// evaluateExpression evaluates the expression in a boolean context.
func (pe *predicateEvaluator) evaluateExpression(expr frontend.Expression) TriState {
	if pe.err != nil {
		return False
	}

	switch e := expr.(type) {
	case *frontend.GroupingExpression:
		return pe.evaluateExpression(e.InExp)

	case *frontend.ValueExpression:
		return pe.valueAsTruth(e.Val)

	case *frontend.IdentifierExpression:
		return pe.valueAsTruth(pe.resolveIdentifier(e))

	case *frontend.IsNullExpression:
		return pe.evaluateNullTest(e)

	case *frontend.UnaryOpExpression:
		if e.Op == frontend.OperatorNot {
			// fixed point for Unknown, handled by TriState.Not
			return pe.evaluateExpression(e.Exp).Not()
		}

		pe.err = common.NewTypeMismatchError(fmt.Sprintf("invalid type: unary operator '%s' doesn't produce a boolean", e.Op))
		return False

	case *frontend.BinaryOpExpression:
		return pe.evaluateBinaryOpExpression(e)

	case *frontend.SelectAllExpression:
		pe.err = common.NewTypeMismatchError("invalid expression type: '*' cannot appear in a predicate")
		return False
	}

	panic("programming error: unexhaustive switch case in evaluateExpression")
}

func (pe *predicateEvaluator) evaluateBinaryOpExpression(expr *frontend.BinaryOpExpression) TriState {
	switch expr.Op {
	case frontend.OperatorAnd:
		a := pe.evaluateExpression(expr.L)
		if pe.err != nil {
			return False
		}
		// short-circuit: False dominates AND regardless of the right side
		if a == False {
			return False
		}

		return a.And(pe.evaluateExpression(expr.R))

	case frontend.OperatorOr:
		a := pe.evaluateExpression(expr.L)
		if pe.err != nil {
			return False
		}
		// short-circuit: True dominates OR regardless of the right side
		if a == True {
			return True
		}

		return a.Or(pe.evaluateExpression(expr.R))

	case frontend.OperatorEqual, frontend.OperatorNotEqual, frontend.OperatorGreaterThan,
		frontend.OperatorGreaterThanEqualTo, frontend.OperatorLessThan, frontend.OperatorLessThanEqualTo:
		lv := pe.resolveValue(expr.L)
		rv := pe.resolveValue(expr.R)
		if pe.err != nil {
			return False
		}

		return pe.evaluateComparison(expr.Op, lv, rv)
	}

	pe.err = common.NewTypeMismatchError(fmt.Sprintf("invalid type: binary operator '%s' doesn't produce a boolean", expr.Op))
	return False
}

// evaluateComparison compares two resolved values.
// A comparison with a NULL operand is Unknown, not False. In particular
// NULL = NULL is Unknown.
func (pe *predicateEvaluator) evaluateComparison(op frontend.Operator, lv, rv *frontend.Value) TriState {
	if lv.IsNull() || rv.IsNull() {
		return Unknown
	}

	if lv.Typ != rv.Typ {
		pe.err = common.NewTypeMismatchError(fmt.Sprintf("type mismatch: cannot compare %s with %s", lv.Typ, rv.Typ))
		return False
	}

	switch op {
	case frontend.OperatorEqual:
		return FromBool(lv.Val == rv.Val)

	case frontend.OperatorNotEqual:
		return FromBool(lv.Val != rv.Val)
	}

	// ordered comparisons
	if _, ok := frontend.OperatorComparisonOperandTypes[lv.Typ]; !ok {
		pe.err = common.NewTypeMismatchError(fmt.Sprintf("invalid type: binary operator '%s' cannot be used with operand of type %s", op, lv.Typ))
		return False
	}

	var lt, eq bool
	switch lv.Typ {
	case frontend.FieldTypeInteger:
		lt = lv.GetAsInt() < rv.GetAsInt()
		eq = lv.GetAsInt() == rv.GetAsInt()

	case frontend.FieldTypeFloat:
		lt = lv.GetAsFloat() < rv.GetAsFloat()
		eq = lv.GetAsFloat() == rv.GetAsFloat()

	case frontend.FieldTypeString:
		lt = lv.GetAsString() < rv.GetAsString()
		eq = lv.GetAsString() == rv.GetAsString()
	}

	switch op {
	case frontend.OperatorLessThan:
		return FromBool(lt)

	case frontend.OperatorLessThanEqualTo:
		return FromBool(lt || eq)

	case frontend.OperatorGreaterThan:
		return FromBool(!lt && !eq)

	case frontend.OperatorGreaterThanEqualTo:
		return FromBool(!lt)
	}

	panic("programming error: unexpected operator in evaluateComparison")
}

// evaluateNullTest evaluates IS NULL / IS NOT NULL.
// Always True or False, never Unknown.
func (pe *predicateEvaluator) evaluateNullTest(expr *frontend.IsNullExpression) TriState {
	v := pe.resolveValue(expr.Exp)
	if pe.err != nil {
		return False
	}

	if expr.Negate {
		return FromBool(!v.IsNull())
	}

	return FromBool(v.IsNull())
}

// valueAsTruth interprets a resolved value in a boolean context.
// NULL is Unknown.
func (pe *predicateEvaluator) valueAsTruth(v *frontend.Value) TriState {
	if pe.err != nil {
		return False
	}

	if v.IsNull() {
		return Unknown
	}

	if v.Typ != frontend.FieldTypeBoolean {
		pe.err = common.NewTypeMismatchError(fmt.Sprintf("type mismatch: expected boolean found %s", v.Typ))
		return False
	}

	return FromBool(v.GetAsBoolean())
}

// resolveIdentifier looks up a column name in the environment.
func (pe *predicateEvaluator) resolveIdentifier(expr *frontend.IdentifierExpression) *frontend.Value {
	if pe.err != nil {
		return frontend.NullValue
	}

	v, ok := pe.env[expr.Identifier]
	if !ok {
		pe.err = common.NewUnboundVariableError(expr.Identifier)
		return frontend.NullValue
	}

	return v
}

// resolveValue evaluates the expression in a value context.
// A nested boolean expression resolves to a boolean value, with Unknown
// mapping back to NULL.
func (pe *predicateEvaluator) resolveValue(expr frontend.Expression) *frontend.Value {
	if pe.err != nil {
		return frontend.NullValue
	}

	switch e := expr.(type) {
	case *frontend.ValueExpression:
		return e.Val

	case *frontend.IdentifierExpression:
		return pe.resolveIdentifier(e)

	case *frontend.GroupingExpression:
		return pe.resolveValue(e.InExp)

	case *frontend.UnaryOpExpression:
		return pe.resolveUnaryOpValue(e)

	case *frontend.BinaryOpExpression:
		switch e.Op {
		case frontend.OperatorAnd, frontend.OperatorOr:
			return triStateToValue(pe.evaluateExpression(e))
		}
		return pe.resolveBinaryOpValue(e)

	case *frontend.IsNullExpression:
		return triStateToValue(pe.evaluateNullTest(e))

	case *frontend.SelectAllExpression:
		pe.err = common.NewTypeMismatchError("invalid expression type: '*' doesn't emit a value")
		return frontend.NullValue
	}

	panic("programming error: unexhaustive switch case in resolveValue")
}

func (pe *predicateEvaluator) resolveUnaryOpValue(expr *frontend.UnaryOpExpression) *frontend.Value {
	v := pe.resolveValue(expr.Exp)
	if pe.err != nil {
		return frontend.NullValue
	}

	switch expr.Op {
	case frontend.OperatorNot:
		return triStateToValue(pe.valueAsTruth(v).Not())

	case frontend.OperatorMinus:
		if v.IsNull() {
			return frontend.NullValue
		}

		switch v.Typ {
		case frontend.FieldTypeInteger:
			return &frontend.Value{Typ: frontend.FieldTypeInteger, Val: -v.GetAsInt()}

		case frontend.FieldTypeFloat:
			return &frontend.Value{Typ: frontend.FieldTypeFloat, Val: -v.GetAsFloat()}
		}

		pe.err = common.NewTypeMismatchError(fmt.Sprintf("invalid type: unary operator '-' cannot be used with operand of type %s", v.Typ))
		return frontend.NullValue
	}

	pe.err = common.NewTypeMismatchError(fmt.Sprintf("invalid type: unexpected unary operator '%s' in value context", expr.Op))
	return frontend.NullValue
}

// resolveBinaryOpValue evaluates arithmetic and comparison operators in a
// value context. NULL operands propagate to a NULL result.
func (pe *predicateEvaluator) resolveBinaryOpValue(expr *frontend.BinaryOpExpression) *frontend.Value {
	lv := pe.resolveValue(expr.L)
	rv := pe.resolveValue(expr.R)
	if pe.err != nil {
		return frontend.NullValue
	}

	switch expr.Op {
	case frontend.OperatorEqual, frontend.OperatorNotEqual, frontend.OperatorGreaterThan,
		frontend.OperatorGreaterThanEqualTo, frontend.OperatorLessThan, frontend.OperatorLessThanEqualTo:
		return triStateToValue(pe.evaluateComparison(expr.Op, lv, rv))
	}

	// arithmetic: null propagation before any type check
	if lv.IsNull() || rv.IsNull() {
		return frontend.NullValue
	}

	operandTypes, ok := arithmeticOperandTypes[expr.Op]
	if !ok {
		pe.err = common.NewTypeMismatchError(fmt.Sprintf("invalid type: unexpected binary operator '%s' in value context", expr.Op))
		return frontend.NullValue
	}

	if _, ok := operandTypes[lv.Typ]; !ok {
		pe.err = common.NewTypeMismatchError(fmt.Sprintf("invalid type: binary operator '%s' cannot be used with operand of type %s", expr.Op, lv.Typ))
		return frontend.NullValue
	}
	if lv.Typ != rv.Typ {
		pe.err = common.NewTypeMismatchError(fmt.Sprintf("type mismatch: expected %s found %s", lv.Typ, rv.Typ))
		return frontend.NullValue
	}

	switch expr.Op {
	case frontend.OperatorPlus:
		switch lv.Typ {
		case frontend.FieldTypeInteger:
			return &frontend.Value{Typ: frontend.FieldTypeInteger, Val: lv.GetAsInt() + rv.GetAsInt()}
		case frontend.FieldTypeFloat:
			return &frontend.Value{Typ: frontend.FieldTypeFloat, Val: lv.GetAsFloat() + rv.GetAsFloat()}
		default:
			return &frontend.Value{Typ: frontend.FieldTypeString, Val: lv.GetAsString() + rv.GetAsString()}
		}

	case frontend.OperatorMinus:
		if lv.Typ == frontend.FieldTypeFloat {
			return &frontend.Value{Typ: frontend.FieldTypeFloat, Val: lv.GetAsFloat() - rv.GetAsFloat()}
		}
		return &frontend.Value{Typ: frontend.FieldTypeInteger, Val: lv.GetAsInt() - rv.GetAsInt()}

	case frontend.OperatorAsterisk:
		if lv.Typ == frontend.FieldTypeFloat {
			return &frontend.Value{Typ: frontend.FieldTypeFloat, Val: lv.GetAsFloat() * rv.GetAsFloat()}
		}
		return &frontend.Value{Typ: frontend.FieldTypeInteger, Val: lv.GetAsInt() * rv.GetAsInt()}

	case frontend.OperatorSlash:
		if lv.Typ == frontend.FieldTypeFloat {
			if rv.GetAsFloat() == 0 {
				pe.err = fmt.Errorf("invalid divisor in division operation: cannot divide by zero")
				return frontend.NullValue
			}
			return &frontend.Value{Typ: frontend.FieldTypeFloat, Val: lv.GetAsFloat() / rv.GetAsFloat()}
		}
		if rv.GetAsInt() == 0 {
			pe.err = fmt.Errorf("invalid divisor in division operation: cannot divide by zero")
			return frontend.NullValue
		}
		return &frontend.Value{Typ: frontend.FieldTypeInteger, Val: lv.GetAsInt() / rv.GetAsInt()}

	case frontend.OperatorPercent:
		if rv.GetAsInt() == 0 {
			pe.err = fmt.Errorf("invalid divisor in modulo operation: cannot modulo by zero")
			return frontend.NullValue
		}
		return &frontend.Value{Typ: frontend.FieldTypeInteger, Val: lv.GetAsInt() % rv.GetAsInt()}
	}

	panic("programming error: unexhaustive switch case in resolveBinaryOpValue")
}

//
// Utilities
//

var arithmeticOperandTypes = map[frontend.Operator]map[frontend.FieldType]bool{
	frontend.OperatorPlus:     frontend.OperatorPlusOperandTypes,
	frontend.OperatorMinus:    frontend.OperatorMinusOperandTypes,
	frontend.OperatorAsterisk: frontend.OperatorAsteriskOperandTypes,
	frontend.OperatorSlash:    frontend.OperatorSlashOperandTypes,
	frontend.OperatorPercent:  frontend.OperatorPercentOperandTypes,
}

// valueEvaluator evaluates expressions which are expected to return a value.
//
// Eg: VALUES in insert statement, DEFAULT in a column spec
// Non Eg: predicate in WHERE clause
type valueEvaluator struct {
	inner *predicateEvaluator
}

func newValueEvaluator(expr frontend.Expression, env Row) *valueEvaluator {
	return &valueEvaluator{
		inner: newPredicateEvaluator(expr, env),
	}
}

// evaluate the expression to a single nullable value
func (ve *valueEvaluator) evaluate() (*frontend.Value, error) {
	v := ve.inner.resolveValue(ve.inner.expr)
	if ve.inner.err != nil {
		return nil, ve.inner.err
	}

	return v, nil
}

// triStateToValue lowers a tri-state back into a nullable boolean value.
func triStateToValue(t TriState) *frontend.Value {
	switch t {
	case True:
		return &frontend.Value{Typ: frontend.FieldTypeBoolean, Val: true}

	case False:
		return &frontend.Value{Typ: frontend.FieldTypeBoolean, Val: false}
	}

	return frontend.NullValue
}
