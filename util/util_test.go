// Copyright (c) 2015 Uber Technologies, Inc.
//
// Permission is hereby granted, free of charge, to any person obtaining a copy
// of this software and associated documentation files (the "Software"), to deal
// in the Software without restriction, including without limitation the rights
// to use, copy, modify, merge, publish, distribute, sublicense, and/or sell
// copies of the Software, and to permit persons to whom the Software is
// furnished to do so, subject to the following conditions:
//
// The above copyright notice and this permission notice shall be included in
// all copies or substantial portions of the Software.
//
// THE SOFTWARE IS PROVIDED "AS IS", WITHOUT WARRANTY OF ANY KIND, EXPRESS OR
// IMPLIED, INCLUDING BUT NOT LIMITED TO THE WARRANTIES OF MERCHANTABILITY,
// FITNESS FOR A PARTICULAR PURPOSE AND NONINFRINGEMENT. IN NO EVENT SHALL THE
// AUTHORS OR COPYRIGHT HOLDERS BE LIABLE FOR ANY CLAIM, DAMAGES OR OTHER
// LIABILITY, WHETHER IN AN ACTION OF CONTRACT, TORT OR OTHERWISE, ARISING FROM,
// OUT OF OR IN CONNECTION WITH THE SOFTWARE OR THE USE OR OTHER DEALINGS IN
// THE SOFTWARE.

package util

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestStringInSlice(t *testing.T) {
	slice := []string{"a", "b", "c"}

	assert.True(t, StringInSlice(slice, "a"))
	assert.True(t, StringInSlice(slice, "b"))
	assert.True(t, StringInSlice(slice, "c"))
	assert.False(t, StringInSlice(slice, "d"))
}

func TestUtilSelectOptInt(t *testing.T) {
	opt, zopt, def := 1, 0, 2

	assert.Equal(t, opt, SelectInt(opt, def), "expected to get option")
	assert.Equal(t, def, SelectInt(zopt, def), "expected to get default")
}

func TestUtilSelectOptFloat(t *testing.T) {
	opt, zopt, def := 1.0, 0.0, 2.0

	assert.Equal(t, opt, SelectFloat(opt, def), "expected to get option")
	assert.Equal(t, def, SelectFloat(zopt, def), "expected to get default")
}

func TestUtilsSelectOptDuration(t *testing.T) {
	opt, zopt, def := time.Duration(1), time.Duration(0), time.Duration(2)

	assert.Equal(t, opt, SelectDuration(opt, def), "expected to get option")
	assert.Equal(t, def, SelectDuration(zopt, def), "expected to get default")
}

func TestUtilsSelectBool(t *testing.T) {
	var tableTests = []struct {
		opt    bool
		def    bool
		result bool
	}{
		{false, false, false},
		{false, true, true},
		{true, false, true},
		{true, true, true},
	}

	for _, test := range tableTests {
		assert.Equal(t, test.result, SelectBool(test.opt, test.def), "inputs opt: %t def: %t", test.opt, test.def)
	}
}

func TestMin(t *testing.T) {
	var minTableTest = []struct {
		numbers []int
		min     int
	}{
		{[]int{1, 2}, 1},
		{[]int{10, 2}, 2},
		{[]int{3, 3}, 3},
		{[]int{1, 2, 3}, 1},
		{[]int{1, 3, 2}, 1},
		{[]int{2, 1, 3}, 1},
		{[]int{2, 3, 1}, 1},
		{[]int{3, 1, 2}, 1},
		{[]int{3, 2, 1}, 1},
	}

	for _, test := range minTableTest {
		assert.Equal(t, test.min, Min(test.numbers[0], test.numbers[1:]...), "expected %d to be the min of %v", test.min, test.numbers)
	}
}

func TestTimeZero(t *testing.T) {
	assert.True(t, TimeZero().IsZero())
}
