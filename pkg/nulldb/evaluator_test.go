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
	"testing"

	"github.com/nulldb/nulldb/pkg/common"
	"github.com/nulldb/nulldb/pkg/frontend"
	"github.com/stretchr/testify/assert"
)

//
// Expression builders for tests
//

func intVal(v int64) frontend.Expression {
	return &frontend.ValueExpression{Val: &frontend.Value{Typ: frontend.FieldTypeInteger, Val: v}}
}

func strVal(v string) frontend.Expression {
	return &frontend.ValueExpression{Val: &frontend.Value{Typ: frontend.FieldTypeString, Val: v}}
}

func boolVal(v bool) frontend.Expression {
	return &frontend.ValueExpression{Val: &frontend.Value{Typ: frontend.FieldTypeBoolean, Val: v}}
}

func nullVal() frontend.Expression {
	return &frontend.ValueExpression{Val: &frontend.Value{Typ: frontend.FieldTypeNull}}
}

func ident(name string) frontend.Expression {
	return &frontend.IdentifierExpression{Identifier: name}
}

func binOp(op frontend.Operator, l, r frontend.Expression) frontend.Expression {
	return &frontend.BinaryOpExpression{Op: op, L: l, R: r}
}

func not(e frontend.Expression) frontend.Expression {
	return &frontend.UnaryOpExpression{Op: frontend.OperatorNot, Exp: e}
}

func isNull(e frontend.Expression) frontend.Expression {
	return &frontend.IsNullExpression{Exp: e}
}

func isNotNull(e frontend.Expression) frontend.Expression {
	return &frontend.IsNullExpression{Exp: e, Negate: true}
}

// unknown is a predicate that evaluates to Unknown: NULL = NULL
func unknown() frontend.Expression {
	return binOp(frontend.OperatorEqual, nullVal(), nullVal())
}

func mustEvaluate(t *testing.T, expr frontend.Expression, env Row) TriState {
	res, err := Evaluate(expr, env)
	assert.Nil(t, err, "Unexpected error in evaluating expression")
	return res
}

//
// Literal and comparison tests
//

func TestEvaluateLiterals(t *testing.T) {
	assert.Equal(t, True, mustEvaluate(t, boolVal(true), nil))
	assert.Equal(t, False, mustEvaluate(t, boolVal(false), nil))

	// a bare NULL in a boolean context is Unknown
	assert.Equal(t, Unknown, mustEvaluate(t, nullVal(), nil))
}

func TestEvaluateComparisons(t *testing.T) {
	in := []frontend.Expression{
		binOp(frontend.OperatorEqual, intVal(1), intVal(1)),
		binOp(frontend.OperatorNotEqual, intVal(1), intVal(2)),
		binOp(frontend.OperatorGreaterThan, intVal(2), intVal(1)),
		binOp(frontend.OperatorGreaterThanEqualTo, intVal(2), intVal(2)),
		binOp(frontend.OperatorLessThan, strVal("Alice"), strVal("Bob")),
		binOp(frontend.OperatorLessThanEqualTo, intVal(3), intVal(2)),
		binOp(frontend.OperatorEqual, strVal("Hello"), strVal("World")),
	}
	expectedOut := []TriState{
		True,
		True,
		True,
		True,
		True,
		False,
		False,
	}

	for i := range in {
		assert.Equal(t, expectedOut[i], mustEvaluate(t, in[i], nil), fmt.Sprintf("Wrong result for comparison %d", i))
	}
}

// A comparison with a NULL operand is Unknown, not False.
// In particular NULL = NULL is not true.
func TestComparisonWithNullIsUnknown(t *testing.T) {
	assert.Equal(t, Unknown, mustEvaluate(t, binOp(frontend.OperatorEqual, nullVal(), nullVal()), nil))
	assert.Equal(t, Unknown, mustEvaluate(t, binOp(frontend.OperatorNotEqual, nullVal(), nullVal()), nil))
	assert.Equal(t, Unknown, mustEvaluate(t, binOp(frontend.OperatorGreaterThan, intVal(5), nullVal()), nil))

	// a null column compared with itself is still Unknown
	env := Row{"x": frontend.NullValue}
	assert.Equal(t, Unknown, mustEvaluate(t, binOp(frontend.OperatorEqual, ident("x"), ident("x")), env))
}

func TestNullTestNeverUnknown(t *testing.T) {
	env := Row{
		"salary": frontend.NullValue,
		"name":   {Typ: frontend.FieldTypeString, Val: "Alice"},
	}

	assert.Equal(t, True, mustEvaluate(t, isNull(ident("salary")), env))
	assert.Equal(t, False, mustEvaluate(t, isNotNull(ident("salary")), env))
	assert.Equal(t, False, mustEvaluate(t, isNull(ident("name")), env))
	assert.Equal(t, True, mustEvaluate(t, isNotNull(ident("name")), env))
}

//
// Logical operator tests
//

func TestFalseDominatesAnd(t *testing.T) {
	others := []frontend.Expression{boolVal(true), boolVal(false), unknown(), nullVal()}

	for i, x := range others {
		e := binOp(frontend.OperatorAnd, boolVal(false), x)
		assert.Equal(t, False, mustEvaluate(t, e, nil), fmt.Sprintf("FALSE AND x must be FALSE for case %d", i))
	}

	// the right side isn't evaluated at all once the left is FALSE
	e := binOp(frontend.OperatorAnd, boolVal(false), ident("no_such_column"))
	assert.Equal(t, False, mustEvaluate(t, e, nil), "FALSE AND x must short-circuit")
}

func TestTrueDominatesOr(t *testing.T) {
	others := []frontend.Expression{boolVal(true), boolVal(false), unknown(), nullVal()}

	for i, x := range others {
		e := binOp(frontend.OperatorOr, boolVal(true), x)
		assert.Equal(t, True, mustEvaluate(t, e, nil), fmt.Sprintf("TRUE OR x must be TRUE for case %d", i))
	}

	// the right side isn't evaluated at all once the left is TRUE
	e := binOp(frontend.OperatorOr, boolVal(true), ident("no_such_column"))
	assert.Equal(t, True, mustEvaluate(t, e, nil), "TRUE OR x must short-circuit")
}

func TestUnknownCombinations(t *testing.T) {
	assert.Equal(t, Unknown, mustEvaluate(t, binOp(frontend.OperatorAnd, unknown(), unknown()), nil))
	assert.Equal(t, Unknown, mustEvaluate(t, binOp(frontend.OperatorAnd, boolVal(true), unknown()), nil))
	assert.Equal(t, False, mustEvaluate(t, binOp(frontend.OperatorAnd, unknown(), boolVal(false)), nil))
	assert.Equal(t, Unknown, mustEvaluate(t, binOp(frontend.OperatorOr, unknown(), unknown()), nil))
	assert.Equal(t, True, mustEvaluate(t, binOp(frontend.OperatorOr, unknown(), boolVal(true)), nil))
	assert.Equal(t, Unknown, mustEvaluate(t, binOp(frontend.OperatorOr, boolVal(false), unknown()), nil))
}

func TestNotUnknownIsUnknown(t *testing.T) {
	assert.Equal(t, Unknown, mustEvaluate(t, not(unknown()), nil))
}

func TestDoubleNegationOnExpressions(t *testing.T) {
	exprs := []frontend.Expression{boolVal(true), boolVal(false), unknown()}

	for i, e := range exprs {
		assert.Equal(t, mustEvaluate(t, e, nil), mustEvaluate(t, not(not(e)), nil), fmt.Sprintf("Double negation changed the result for case %d", i))
	}
}

//
// Environment and error tests
//

func TestEvaluateWithEnvironment(t *testing.T) {
	env := Row{
		"salary": {Typ: frontend.FieldTypeInteger, Val: int64(90000)},
		"name":   {Typ: frontend.FieldTypeString, Val: "Alice"},
	}

	e := binOp(frontend.OperatorAnd,
		binOp(frontend.OperatorGreaterThan, ident("salary"), intVal(60000)),
		binOp(frontend.OperatorEqual, ident("name"), strVal("Alice")),
	)
	assert.Equal(t, True, mustEvaluate(t, e, env))
}

func TestUnboundVariable(t *testing.T) {
	e := binOp(frontend.OperatorGreaterThan, ident("salary"), intVal(60000))

	_, err := Evaluate(e, Row{})
	assert.NotNil(t, err, "Expected an error for the unbound variable")
	assert.IsType(t, common.UnboundVariableError{}, err, "Expected an UnboundVariableError")
}

func TestTypeMismatch(t *testing.T) {
	in := []frontend.Expression{
		binOp(frontend.OperatorGreaterThan, strVal("abc"), intVal(5)),
		binOp(frontend.OperatorEqual, boolVal(true), intVal(1)),
		binOp(frontend.OperatorGreaterThan, boolVal(true), boolVal(false)),
	}

	for i, e := range in {
		_, err := Evaluate(e, nil)
		assert.NotNil(t, err, fmt.Sprintf("Expected an error for case %d", i))
		assert.IsType(t, common.TypeMismatchError{}, err, fmt.Sprintf("Expected a TypeMismatchError for case %d", i))
	}
}

// NULL propagates through arithmetic before the comparison happens
func TestArithmeticNullPropagation(t *testing.T) {
	env := Row{"salary": frontend.NullValue}

	e := binOp(frontend.OperatorGreaterThan,
		binOp(frontend.OperatorPlus, ident("salary"), intVal(1000)),
		intVal(60000),
	)
	assert.Equal(t, Unknown, mustEvaluate(t, e, env))
}

func TestArithmeticInComparison(t *testing.T) {
	env := Row{"salary": {Typ: frontend.FieldTypeInteger, Val: int64(50000)}}

	e := binOp(frontend.OperatorGreaterThan,
		binOp(frontend.OperatorAsterisk, ident("salary"), intVal(2)),
		intVal(60000),
	)
	assert.Equal(t, True, mustEvaluate(t, e, env))
}
