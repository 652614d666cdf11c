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

var (
	_ Expression = (*BinaryOpExpression)(nil)
	_ Expression = (*GroupingExpression)(nil)
	_ Expression = (*ValueExpression)(nil)
	_ Expression = (*UnaryOpExpression)(nil)
	_ Expression = (*IdentifierExpression)(nil)
	_ Expression = (*IsNullExpression)(nil)
	_ Expression = (*SelectAllExpression)(nil)
)

// ExpressionNode implements the Expression interface
type ExpressionNode struct{}

func (e *ExpressionNode) expression() {}

// BinaryOpExpression represents a binary operation
type BinaryOpExpression struct {
	ExpressionNode

	Op Operator

	L, R Expression
}

// GroupingExpression represents a parenthesized expression
type GroupingExpression struct {
	ExpressionNode

	InExp Expression
}

// UnaryOpExpression represents a unary operation
type UnaryOpExpression struct {
	ExpressionNode

	Op Operator

	Exp Expression
}

// ValueExpression represents a simple value
type ValueExpression struct {
	ExpressionNode

	Val *Value
}

// IdentifierExpression represents a simple identifier
type IdentifierExpression struct {
	ExpressionNode

	Identifier string
}

// IsNullExpression represents an IS NULL / IS NOT NULL test.
// Unlike comparisons it always evaluates to true/false, never to unknown.
type IsNullExpression struct {
	ExpressionNode

	Exp    Expression
	Negate bool // IS NOT NULL
}

// SelectAllExpression represents selection of all of the columns in the query
type SelectAllExpression struct {
	ExpressionNode
}
