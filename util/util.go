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
	"time"
)

// TimeZero returns a time such that time.IsZero() is true
func TimeZero() time.Time {
	return time.Date(1, 1, 1, 0, 0, 0, 0, time.UTC)
}

// TimeNowMS returns Unix time in milliseconds for time.Now()
func TimeNowMS() int64 {
	return UnixMS(time.Now())
}

// MS returns the number of milliseconds given in a duration
func MS(d time.Duration) int64 {
	return d.Nanoseconds() / 1000000
}

// UnixMS returns Unix time in milliseconds for the given time
func UnixMS(t time.Time) int64 {
	return t.UnixNano() / 1000000
}

// StringInSlice returns whether the string is contained within the slice.
func StringInSlice(slice []string, str string) bool {
	for _, b := range slice {
		if str == b {
			return true
		}
	}
	return false
}

// SelectInt takes an option and a default value and returns the default value if
// the option is equal to zero, and the option otherwise.
func SelectInt(opt, def int) int {
	if opt == 0 {
		return def
	}
	return opt
}

// SelectFloat takes an option and a default value and returns the default value if
// the option is equal to zero, and the option otherwise.
func SelectFloat(opt, def float64) float64 {
	if opt == 0 {
		return def
	}
	return opt
}

// SelectDuration takes an option and a default value and returns the default value if
// the option is equal to zero, and the option otherwise.
func SelectDuration(opt, def time.Duration) time.Duration {
	if opt == time.Duration(0) {
		return def
	}
	return opt
}

// SelectBool takes an option and a default value and returns the default value if
// the option is equal to the zero value, and the option otherwise.
func SelectBool(opt, def bool) bool {
	if opt == false {
		return def
	}
	return opt
}

// Min returns the lowest integer and is defined because golang only has a min
// function for floats and not for ints.
func Min(first int, rest ...int) int {
	m := first
	for _, value := range rest {
		if value < m {
			m = value
		}
	}
	return m
}
