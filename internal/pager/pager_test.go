/*
 * Pagination aggregator - unit tests
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

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// pagesOf builds a fetch function serving fixed page sizes with a given
// reported total. It counts calls through the returned pointer.
func pagesOf(sizes []int, total int) (FetchFunc[int], *int) {
	calls := new(int)
	next := 0
	fetch := func(ctx context.Context, page, pageSize int) (Page[int], error) {
		*calls++
		if page-1 >= len(sizes) {
			return Page[int]{Total: total}, nil
		}
		items := make([]int, sizes[page-1])
		for i := range items {
			items[i] = next
			next++
		}
		return Page[int]{Items: items, Total: total}, nil
	}
	return fetch, calls
}

// Test_Drain_stopsOnTotal tests that pages of sizes [3,3,3,1] with total=10
// yield exactly 10 items across 4 calls and no 5th call is made.
func Test_Drain_stopsOnTotal(t *testing.T) {
	fetch, calls := pagesOf([]int{3, 3, 3, 1}, 10)

	result, err := Drain(context.Background(), fetch, 3)
	require.NoError(t, err)

	assert.Len(t, result.Items, 10)
	assert.Equal(t, 4, *calls)
	assert.Equal(t, 4, result.Pages)
	assert.Equal(t, 10, result.Total)
	assert.False(t, result.Truncated)
}

// Test_Drain_stopsOnEmptyPage tests that a backend reporting no total stops
// as soon as a page comes back empty.
func Test_Drain_stopsOnEmptyPage(t *testing.T) {
	fetch, calls := pagesOf([]int{5, 5, 0}, 0)

	result, err := Drain(context.Background(), fetch, 5)
	require.NoError(t, err)

	assert.Len(t, result.Items, 10)
	assert.Equal(t, 3, *calls)
	assert.False(t, result.Truncated)
}

// Test_Drain_ceiling tests that a backend that always returns a full page
// and never reports exhaustion is cut off at exactly MaxPages calls.
func Test_Drain_ceiling(t *testing.T) {
	calls := 0
	fetch := func(ctx context.Context, page, pageSize int) (Page[int], error) {
		calls++
		return Page[int]{Items: make([]int, pageSize)}, nil
	}

	result, err := Drain(context.Background(), fetch, 7)
	require.NoError(t, err)

	assert.Equal(t, MaxPages, calls)
	assert.Equal(t, MaxPages, result.Pages)
	assert.Len(t, result.Items, MaxPages*7)
	assert.True(t, result.Truncated)
}

// Test_Drain_firstPageShort tests the single-page case where the total is
// satisfied immediately.
func Test_Drain_firstPageShort(t *testing.T) {
	fetch, calls := pagesOf([]int{2}, 2)

	result, err := Drain(context.Background(), fetch, 100)
	require.NoError(t, err)

	assert.Len(t, result.Items, 2)
	assert.Equal(t, 1, *calls)
}

// Test_Drain_fetchError tests that the error of a failing page is returned
// along with what was gathered before it.
func Test_Drain_fetchError(t *testing.T) {
	boom := errors.New("backend gone")
	calls := 0
	fetch := func(ctx context.Context, page, pageSize int) (Page[int], error) {
		calls++
		if page == 2 {
			return Page[int]{}, boom
		}
		return Page[int]{Items: []int{1, 2}, Total: 10}, nil
	}

	result, err := Drain(context.Background(), fetch, 2)
	assert.ErrorIs(t, err, boom)
	assert.Equal(t, 2, calls)
	assert.Len(t, result.Items, 2)
}
