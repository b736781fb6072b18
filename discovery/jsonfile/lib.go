// Copyright (c) 2016 Uber Technologies, Inc.
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

package jsonfile

import (
	"encoding/json"
	"io/ioutil"
)

// Provider is a discovery provider that reads a flat JSON array of
// "id@host:port" strings from a file on disk.
type Provider struct {
	path string
}

// New creates a provider that reads hosts from the JSON file at path.
func New(path string) *Provider {
	return &Provider{path: path}
}

// Hosts reads and parses the JSON file, returning its contents.
func (p *Provider) Hosts() ([]string, error) {
	raw, err := ioutil.ReadFile(p.path)
	if err != nil {
		return nil, err
	}

	var hosts []string
	if err := json.Unmarshal(raw, &hosts); err != nil {
		return nil, err
	}

	return hosts, nil
}
