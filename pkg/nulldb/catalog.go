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
	"sync"

	"github.com/nulldb/nulldb/pkg/common"
	"github.com/nulldb/nulldb/pkg/frontend"
)

// Catalog is the in-memory table store. It holds every table created in the
// session along with its rows and hands rows out as evaluation environments.
// Guarded by a RW lock so that a shared repl session behaves.
type Catalog struct {
	mu     sync.RWMutex
	tables map[string]*tableData
}

type tableData struct {
	spec *frontend.TableSpec
	rows []Row
}

// NewCatalog creates an empty catalog.
func NewCatalog() *Catalog {
	return &Catalog{
		tables: make(map[string]*tableData),
	}
}

// CreateTable registers a new table with the given spec.
func (c *Catalog) CreateTable(spec *frontend.TableSpec) error {
	c.mu.Lock()
	defer c.mu.Unlock()

	if _, ok := c.tables[spec.TableName]; ok {
		return common.NewDuplicateTableError(spec.TableName)
	}

	c.tables[spec.TableName] = &tableData{spec: spec}
	return nil
}

// DropTable removes the table and all of its rows.
func (c *Catalog) DropTable(name string) error {
	c.mu.Lock()
	defer c.mu.Unlock()

	if _, ok := c.tables[name]; !ok {
		return common.NewTableNotFoundError(name)
	}

	delete(c.tables, name)
	return nil
}

// TruncateTable removes all rows of the table but keeps the spec.
func (c *Catalog) TruncateTable(name string) error {
	c.mu.Lock()
	defer c.mu.Unlock()

	td, ok := c.tables[name]
	if !ok {
		return common.NewTableNotFoundError(name)
	}

	td.rows = nil
	return nil
}

// TableSpec returns the spec of the given table.
func (c *Catalog) TableSpec(name string) (*frontend.TableSpec, error) {
	c.mu.RLock()
	defer c.mu.RUnlock()

	td, ok := c.tables[name]
	if !ok {
		return nil, common.NewTableNotFoundError(name)
	}

	return td.spec, nil
}

// InsertRow appends a row after enforcing the column types and the
// NOT NULL constraints of the spec.
func (c *Catalog) InsertRow(name string, row Row) error {
	c.mu.Lock()
	defer c.mu.Unlock()

	td, ok := c.tables[name]
	if !ok {
		return common.NewTableNotFoundError(name)
	}

	for _, cs := range td.spec.Columns {
		v, ok := row[cs.Name]
		if !ok || v == nil {
			return fmt.Errorf("nulldb::catalog::InsertRow: missing value for column %q", cs.Name)
		}

		if v.IsNull() {
			if !cs.Nullable {
				return common.NewValidationError(fmt.Sprintf("cannot insert NULL into non nullable column %q", cs.Name))
			}
			continue
		}

		if v.Typ != cs.Type {
			return common.NewTypeMismatchError(fmt.Sprintf("type mismatch: column %q expects %s found %s", cs.Name, cs.Type, v.Typ))
		}
	}

	td.rows = append(td.rows, row)
	return nil
}

// Scan returns a snapshot of the rows of the table.
// The returned slice is a copy; the rows themselves are shared and must be
// treated as immutable by the caller.
func (c *Catalog) Scan(name string) ([]Row, error) {
	c.mu.RLock()
	defer c.mu.RUnlock()

	td, ok := c.tables[name]
	if !ok {
		return nil, common.NewTableNotFoundError(name)
	}

	rows := make([]Row, len(td.rows))
	copy(rows, td.rows)
	return rows, nil
}

// ReplaceRows swaps the full row set of the table. Used by update/delete
// executors which rebuild the row set they scanned.
func (c *Catalog) ReplaceRows(name string, rows []Row) error {
	c.mu.Lock()
	defer c.mu.Unlock()

	td, ok := c.tables[name]
	if !ok {
		return common.NewTableNotFoundError(name)
	}

	td.rows = rows
	return nil
}
