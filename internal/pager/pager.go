/*
 * Pagination aggregator - drains a page-based listing into one collection.
 *
 * Copyright 2026 Marco Confalonieri.
 *
 * Licensed under the Apache License, Version 2.0 (the "License");
 * you may not use this file except in compliance with the License.
 * You may obtain a copy of the License at
 *
 *   http://www.apache.org/licenses/LICENSE-2.0
 *
 * Unless required by applicable law or agreed to in writing, software
 * distributed under the License is distributed on an "AS IS" BASIS,
 * WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
 * See the License for the specific language governing permissions and
 * limitations under the License.
 */

package pager

import "context"

// MaxPages is the hard ceiling on fetched pages. It guards against a backend
// that keeps returning full pages without ever reporting exhaustion. Hitting
// it truncates the result, it is not an error.
const MaxPages = 200

// Page is one page of a listing plus the server-reported total item count.
type Page[T any] struct {
	Items []T
	Total int
}

// FetchFunc fetches one page. Pages are numbered from 1.
type FetchFunc[T any] func(ctx context.Context, page, pageSize int) (Page[T], error)

// Result is the aggregated listing.
type Result[T any] struct {
	// Items holds every fetched item in page order.
	Items []T
	// Total is the server-reported total from the last fetched page.
	Total int
	// Pages is the number of pages actually fetched.
	Pages int
	// Truncated is set when the drain stopped at MaxPages.
	Truncated bool
}

// Drain fetches pages sequentially starting at page 1 until one of the stop
// conditions holds, whichever comes first: a page returns zero items, the
// accumulated count reaches the server-reported total, or MaxPages pages
// have been fetched. Draining is strictly sequential; each page decides
// whether another one is needed.
func Drain[T any](ctx context.Context, fetch FetchFunc[T], pageSize int) (Result[T], error) {
	result := Result[T]{Items: []T{}}

	for page := 1; ; page++ {
		fetched, err := fetch(ctx, page, pageSize)
		if err != nil {
			return result, err
		}
		result.Pages = page
		result.Total = fetched.Total
		result.Items = append(result.Items, fetched.Items...)

		if len(fetched.Items) == 0 {
			break
		}
		if fetched.Total > 0 && len(result.Items) >= fetched.Total {
			break
		}
		if page >= MaxPages {
			result.Truncated = true
			break
		}
	}

	return result, nil
}
