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
	"github.com/nulldb/nulldb/pkg/frontend"
)

// Evaluate evaluates a boolean expression over the given environment to its
// tri-state result. This is the core public API of the engine.
func Evaluate(expr frontend.Expression, env Row) (TriState, error) {
	return newPredicateEvaluator(expr, env).evaluate()
}

// FilterRows applies a WHERE predicate to the rows and returns the rows that
// satisfy it. A row is kept iff the predicate evaluates to True; both False
// and Unknown exclude it. This single rule is what makes NULL handling in
// WHERE clauses subtle: a NULL salary fails `salary > 60000` and also fails
// `NOT (salary > 60000)`.
func FilterRows(pred frontend.Expression, rows []Row) ([]Row, error) {
	if pred == nil {
		return rows, nil
	}

	var out []Row
	for _, row := range rows {
		res, err := Evaluate(pred, row)
		if err != nil {
			return nil, err
		}

		if res == True {
			out = append(out, row)
		}
	}

	return out, nil
}
