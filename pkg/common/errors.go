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

package common

import (
	"fmt"
)

// UnboundVariableError is returned when a column name referenced in an
// expression is missing from the evaluation environment.
type UnboundVariableError struct {
	Name string
}

func (uv UnboundVariableError) Error() string {
	return fmt.Sprintf("unbound variable: no value for %q in the environment", uv.Name)
}

// NewUnboundVariableError creates a new instance of UnboundVariableError for the given name.
func NewUnboundVariableError(name string) UnboundVariableError {
	return UnboundVariableError{
		Name: name,
	}
}

// TypeMismatchError is returned when an operator is applied to operands of
// incompatible types. No implicit conversion is attempted.
type TypeMismatchError struct {
	Message string
}

func (tm TypeMismatchError) Error() string {
	return tm.Message
}

// NewTypeMismatchError creates a new instance of TypeMismatchError with the given message.
func NewTypeMismatchError(message string) TypeMismatchError {
	return TypeMismatchError{
		Message: message,
	}
}

// TableNotFoundError is returned when the referenced table doesn't exist in the catalog.
type TableNotFoundError struct {
	TableName string
}

func (tnf TableNotFoundError) Error() string {
	return fmt.Sprintf("table %q not found", tnf.TableName)
}

// NewTableNotFoundError creates a new instance of TableNotFoundError for the given table.
func NewTableNotFoundError(tableName string) TableNotFoundError {
	return TableNotFoundError{
		TableName: tableName,
	}
}

// DuplicateTableError is returned when creating a table which already exists.
type DuplicateTableError struct {
	TableName string
}

func (dt DuplicateTableError) Error() string {
	return fmt.Sprintf("table %q already exists", dt.TableName)
}

// NewDuplicateTableError creates a new instance of DuplicateTableError for the given table.
func NewDuplicateTableError(tableName string) DuplicateTableError {
	return DuplicateTableError{
		TableName: tableName,
	}
}

// ValidationError is returned when a parsed statement fails semantic validation.
type ValidationError struct {
	Message string
}

func (ve ValidationError) Error() string {
	return ve.Message
}

// NewValidationError creates a new instance of ValidationError with the given message.
func NewValidationError(message string) ValidationError {
	return ValidationError{
		Message: message,
	}
}
