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
	"testing"

	"github.com/nulldb/nulldb/pkg/frontend"
	"github.com/stretchr/testify/assert"
)

func salaryRows() []Row {
	return []Row{
		{"salary": {Typ: frontend.FieldTypeInteger, Val: int64(50000)}},
		{"salary": frontend.NullValue},
		{"salary": {Typ: frontend.FieldTypeInteger, Val: int64(90000)}},
	}
}

// A row is selected only when the predicate is TRUE for it.
// FALSE and UNKNOWN rows are both left out, so the NULL salary
// doesn't show up here even though it wasn't compared FALSE.
func TestFilterRowsSelectsOnlyTrue(t *testing.T) {
	pred := binOp(frontend.OperatorGreaterThan, ident("salary"), intVal(60000))

	out, err := FilterRows(pred, salaryRows())
	assert.Nil(t, err, "Unexpected error in filtering rows")
	assert.Equal(t, 1, len(out), "Expected a single row to pass the filter")
	assert.Equal(t, int64(90000), out[0]["salary"].GetAsInt())
}

// The NULL row can be selected explicitly with IS NULL since the
// null test itself is never UNKNOWN.
func TestFilterRowsWithExplicitNullBranch(t *testing.T) {
	pred := binOp(frontend.OperatorOr,
		binOp(frontend.OperatorGreaterThan, ident("salary"), intVal(60000)),
		isNull(ident("salary")),
	)

	out, err := FilterRows(pred, salaryRows())
	assert.Nil(t, err, "Unexpected error in filtering rows")
	assert.Equal(t, 2, len(out), "Expected the null row and the 90000 row")
	assert.True(t, out[0]["salary"].IsNull())
	assert.Equal(t, int64(90000), out[1]["salary"].GetAsInt())
}

// The filtered set with predicate p and the one with NOT p don't
// cover all rows: the UNKNOWN row belongs to neither.
func TestFilterRowsComplementLeavesUnknownOut(t *testing.T) {
	rows := salaryRows()
	pred := binOp(frontend.OperatorGreaterThan, ident("salary"), intVal(60000))

	selected, err := FilterRows(pred, rows)
	assert.Nil(t, err)

	rejected, err := FilterRows(not(pred), rows)
	assert.Nil(t, err)

	assert.Equal(t, 1, len(selected))
	assert.Equal(t, 1, len(rejected))
	assert.Equal(t, int64(50000), rejected[0]["salary"].GetAsInt())
}

func TestFilterRowsNilPredicateKeepsEverything(t *testing.T) {
	out, err := FilterRows(nil, salaryRows())
	assert.Nil(t, err, "Unexpected error in filtering rows")
	assert.Equal(t, 3, len(out))
}

func TestFilterRowsPropagatesErrors(t *testing.T) {
	pred := binOp(frontend.OperatorGreaterThan, ident("no_such_column"), intVal(60000))

	_, err := FilterRows(pred, salaryRows())
	assert.NotNil(t, err, "Expected an error for the unbound column")
}
