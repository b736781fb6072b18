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

// Package discovery provides pluggable sources of member seeds. Unlike a
// membership protocol, these providers are consulted only once, at startup,
// to learn which members to call AddMember with; the cluster core never
// re-polls them.
package discovery

import (
	"fmt"
	"strconv"
	"strings"
)

// Locator returns a flat list of "id@endpoint" strings naming members to
// seed the cluster with. It is satisfied by statichosts.HostList,
// jsonfile.Provider, and dns.Provider; dns.Provider's entries are plain
// "ip:port" strings without an id, which Seeds rejects.
type Locator interface {
	Hosts() ([]string, error)
}

// Seed is one parsed member seed: a member id paired with the physical
// endpoint the cluster core should first try reaching it on.
type Seed struct {
	ID       uint16
	Endpoint string
}

// Seeds consults loc and parses its returned "id@endpoint" strings into
// Seed values. A malformed entry fails the whole call; seeding is an
// all-or-nothing startup step, not a best-effort one.
func Seeds(loc Locator) ([]Seed, error) {
	hosts, err := loc.Hosts()
	if err != nil {
		return nil, err
	}

	seeds := make([]Seed, 0, len(hosts))
	for _, host := range hosts {
		seed, err := parseSeed(host)
		if err != nil {
			return nil, err
		}
		seeds = append(seeds, seed)
	}

	return seeds, nil
}

func parseSeed(entry string) (Seed, error) {
	at := strings.IndexByte(entry, '@')
	if at < 0 {
		return Seed{}, fmt.Errorf("discovery: seed %q missing \"id@endpoint\"", entry)
	}

	id, err := strconv.ParseUint(entry[:at], 10, 16)
	if err != nil {
		return Seed{}, fmt.Errorf("discovery: seed %q has invalid member id: %w", entry, err)
	}

	endpoint := entry[at+1:]
	if endpoint == "" {
		return Seed{}, fmt.Errorf("discovery: seed %q missing endpoint", entry)
	}

	return Seed{ID: uint16(id), Endpoint: endpoint}, nil
}
