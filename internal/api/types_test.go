/*
 * Native wire types - unit tests
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

package api

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// Test_FlexBool tests decoding of the loose boolean shapes providers emit.
func Test_FlexBool(t *testing.T) {
	type testCase struct {
		name     string
		input    string
		expected bool
	}

	run := func(t *testing.T, tc testCase) {
		var b FlexBool
		require.NoError(t, json.Unmarshal([]byte(tc.input), &b))
		assert.Equal(t, tc.expected, bool(b))
	}

	testCases := []testCase{
		{name: "Native true", input: "true", expected: true},
		{name: "Native false", input: "false", expected: false},
		{name: "Numeric one", input: "1", expected: true},
		{name: "Numeric zero", input: "0", expected: false},
		{name: "Other number", input: "2", expected: true},
		{name: "String one", input: `"1"`, expected: true},
		{name: "String zero", input: `"0"`, expected: false},
		{name: "String true", input: `"true"`, expected: true},
		{name: "Null", input: "null", expected: false},
		{name: "Empty string", input: `""`, expected: false},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			run(t, tc)
		})
	}
}

// Test_FlexID tests that ids arriving as strings or numbers decode to the
// same representation.
func Test_FlexID(t *testing.T) {
	var fromString, fromNumber FlexID
	require.NoError(t, json.Unmarshal([]byte(`"1234"`), &fromString))
	require.NoError(t, json.Unmarshal([]byte(`1234`), &fromNumber))

	assert.Equal(t, fromString, fromNumber)

	id, ok := fromNumber.Int64()
	assert.True(t, ok)
	assert.Equal(t, int64(1234), id)
}

// Test_FlexID_nonNumeric tests that an opaque string id survives but does
// not coerce to a numeric id.
func Test_FlexID_nonNumeric(t *testing.T) {
	var f FlexID
	require.NoError(t, json.Unmarshal([]byte(`"0235abc"`), &f))

	assert.Equal(t, "0235abc", string(f))
	_, ok := f.Int64()
	assert.False(t, ok)
}

// Test_NativeRecord_decode tests decoding a record carrying loosely typed
// fields the way provider backends emit them.
func Test_NativeRecord_decode(t *testing.T) {
	payload := `{
		"id": 42,
		"type": "A",
		"name": "www",
		"value": "1.2.3.4",
		"ttl": 600,
		"proxied": 1,
		"status": "1",
		"weight": 10
	}`

	var r NativeRecord
	require.NoError(t, json.Unmarshal([]byte(payload), &r))

	assert.Equal(t, FlexID("42"), r.ID)
	assert.Equal(t, "1.2.3.4", r.Value)
	assert.True(t, bool(r.Proxied))
	assert.Equal(t, "1", r.Status)
	assert.Nil(t, r.Enabled)
	require.NotNil(t, r.Weight)
	assert.Equal(t, 10, *r.Weight)
}

// Test_NativeRecordDraft_omitsAbsentFields tests that nil optional fields
// are not serialized, so an update leaves them unchanged.
func Test_NativeRecordDraft_omitsAbsentFields(t *testing.T) {
	draft := NativeRecordDraft{Type: "A", Name: "www", Value: "1.2.3.4"}

	encoded, err := json.Marshal(draft)
	require.NoError(t, err)

	assert.JSONEq(t, `{"type":"A","name":"www","value":"1.2.3.4"}`, string(encoded))
}
