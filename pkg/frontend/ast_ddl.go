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
	_ Statement = (*CreateTableStatement)(nil)
	_ Statement = (*DropTableStatement)(nil)
	_ Statement = (*TruncateTableStatement)(nil)
)

// CreateTableStatement is for the CREATE TABLE statement.
type CreateTableStatement struct {
	Spec *TableSpec
}

func (cts *CreateTableStatement) statement() {}

type DropTableStatement struct {
	TableName string
}

func (dts *DropTableStatement) statement() {}

type TruncateTableStatement struct {
	TableName string
}

func (tts *TruncateTableStatement) statement() {}

// TableSpec defines the specification of a table
type TableSpec struct {
	TableName string
	Columns   []*ColumnSpec
}

// NewTableSpec creates a table spec with the given name and columns
func NewTableSpec(tableName string, columns []*ColumnSpec) *TableSpec {
	return &TableSpec{
		TableName: tableName,
		Columns:   columns,
	}
}

// Column returns the column spec with the given name, nil if it doesn't exist
func (ts *TableSpec) Column(name string) *ColumnSpec {
	for _, cs := range ts.Columns {
		if cs.Name == name {
			return cs
		}
	}

	return nil
}

// ColumnSpec defines a single column of a table
type ColumnSpec struct {
	Name       string
	Type       FieldType
	Nullable   bool
	PrimaryKey bool
	Unique     bool
	Index      bool
	References string // the foreign key reference
	Default    Expression
}
