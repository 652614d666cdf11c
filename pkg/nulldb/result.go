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

// Result denotes the result of the execution of a query plan
type Result interface {
	HasError() bool

	GetError() error
}

// CreateTableResult is the result of the create table operation
type CreateTableResult struct {
	Err error
}

func (ctr *CreateTableResult) HasError() bool {
	return ctr.Err != nil
}

func (ctr *CreateTableResult) GetError() error {
	return ctr.Err
}

var _ Result = (*CreateTableResult)(nil)

// DropTableResult is the result of the drop table operation
type DropTableResult struct {
	Err error
}

func (dtr *DropTableResult) HasError() bool {
	return dtr.Err != nil
}

func (dtr *DropTableResult) GetError() error {
	return dtr.Err
}

var _ Result = (*DropTableResult)(nil)

// TruncateTableResult is the result of the truncate table operation
type TruncateTableResult struct {
	Err error
}

func (ttr *TruncateTableResult) HasError() bool {
	return ttr.Err != nil
}

func (ttr *TruncateTableResult) GetError() error {
	return ttr.Err
}

var _ Result = (*TruncateTableResult)(nil)

// InsertResult is the result of the insert operation
type InsertResult struct {
	Inserted int
	Err      error
}

func (ir *InsertResult) HasError() bool {
	return ir.Err != nil
}

func (ir *InsertResult) GetError() error {
	return ir.Err
}

var _ Result = (*InsertResult)(nil)

// SelectResult is the result of the select operation.
// Columns carries the output order since rows are maps.
type SelectResult struct {
	Columns []string
	Rows    []Row
	Err     error
}

func (sr *SelectResult) HasError() bool {
	return sr.Err != nil
}

func (sr *SelectResult) GetError() error {
	return sr.Err
}

var _ Result = (*SelectResult)(nil)

// UpdateResult is the result of the update operation
type UpdateResult struct {
	Updated int
	Err     error
}

func (ur *UpdateResult) HasError() bool {
	return ur.Err != nil
}

func (ur *UpdateResult) GetError() error {
	return ur.Err
}

var _ Result = (*UpdateResult)(nil)

// DeleteResult is the result of the delete operation
type DeleteResult struct {
	Deleted int
	Err     error
}

func (dr *DeleteResult) HasError() bool {
	return dr.Err != nil
}

func (dr *DeleteResult) GetError() error {
	return dr.Err
}

var _ Result = (*DeleteResult)(nil)
