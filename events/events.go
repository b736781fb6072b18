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

package events

import (
	"sync"
)

// Event is an empty interface that is type switched when handeled.
type Event interface{}

// An EventListener handles events given to it by the cluster core.
// HandleEvent should be thread safe.
type EventListener interface {
	HandleEvent(event Event)
}

// EventEmitter describes an interface that can be used to emit events
type EventEmitter interface {
	EmitEvent(Event)
}

// EventRegistrar is an object that you can register EventListeners on.
type EventRegistrar interface {
	RegisterListener(EventListener)
	DeregisterListener(EventListener)
}

type baseEventRegistrar struct {
	lock      sync.RWMutex
	listeners []EventListener
}

// RegisterListener adds a listener to the Event Registar. Events emitted on this
// registar will be invoked on the listener
func (a *baseEventRegistrar) RegisterListener(l EventListener) {
	if l == nil {
		// do not register nil listener, will cause nil pointer dereference during
		// event emitting
		return
	}

	a.lock.Lock()
	defer a.lock.Unlock()

	// Check if listener is already registered
	for _, listener := range a.listeners {
		if listener == l {
			return
		}
	}

	// by making a copy the backing array will never be changed after its creation.
	// this allowes to copy the slice while locked but iterate while not locked
	// preventing deadlocks when listeners are added/removed in the handler of a
	// listener
	listenersCopy := make([]EventListener, 0, len(a.listeners)+1)
	listenersCopy = append(listenersCopy, a.listeners...)
	listenersCopy = append(listenersCopy, l)

	a.listeners = listenersCopy
}

// DeregisterListener removes a listener from the Event Registar. Subsequent calls
// to EmitEvent will not cause HandleEvent to be called on this listener.
func (a *baseEventRegistrar) DeregisterListener(l EventListener) {
	a.lock.Lock()
	defer a.lock.Unlock()

	for i := range a.listeners {
		if a.listeners[i] == l {
			// copy the list and remove the listener form the copy
			cpy := append([]EventListener(nil), a.listeners...)
			a.listeners = append(cpy[:i], cpy[i+1:]...)
			break
		}
	}
}

// AsyncEventEmitter is an implementation of both an EventRegistar and EventEmitter
// that emits events in their own go routine.
type AsyncEventEmitter struct {
	baseEventRegistrar
}

// EmitEvent will send the event to all registered listeners
func (a *AsyncEventEmitter) EmitEvent(event Event) {
	a.lock.RLock()
	for _, listener := range a.listeners {
		go listener.HandleEvent(event)
	}
	a.lock.RUnlock()
}

// SyncEventEmitter is an implementation of both an EventRegistar and EventEmitter
// that emits events in the calling go routine.
type SyncEventEmitter struct {
	baseEventRegistrar
}

// EmitEvent will send the event to all registered listeners
func (a *SyncEventEmitter) EmitEvent(event Event) {
	a.lock.RLock()
	listeners := a.listeners
	a.lock.RUnlock()

	for _, listener := range listeners {
		listener.HandleEvent(event)
	}
}

// MemberAddedEvent is sent when a member id is added to the member id set.
type MemberAddedEvent struct {
	ID uint16
}

// MemberRemovedEvent is sent when a member id is removed from the member id set.
type MemberRemovedEvent struct {
	ID uint16
}

// FrameSealedEvent is sent each time the framer successfully seals and hands
// a frame to the send_cluster_frame callback.
type FrameSealedEvent struct {
	Recipient uint16
	Bytes     int
}

// FrameDroppedEvent is sent whenever a frame or sub-message is rejected,
// either at the frame level (bad MAC, wrong recipient, unknown sender) or
// at the sub-message level (malformed payload).
type FrameDroppedEvent struct {
	Reason string
}

// AffinityTakeoverEvent is sent when the peer affinity map assigns or
// reassigns ownership of a peer to a different member.
type AffinityTakeoverEvent struct {
	Peer     string
	OwnerID  uint16
	Previous uint16
}

// ProxyUniteSentEvent is sent when a PROXY_UNITE handshake successfully
// produces a pair of rendezvous packets.
type ProxyUniteSentEvent struct {
	LocalPeer  string
	RemotePeer string
}

// RedirectDecisionEvent is sent when find_better_endpoint actually returns
// an endpoint (never on "no better endpoint").
type RedirectDecisionEvent struct {
	Peer    string
	Member  uint16
	Offload bool
}

// HeartbeatSentEvent is sent when the periodic loop enqueues an ALIVE
// message to a member.
type HeartbeatSentEvent struct {
	Member uint16
}

// StatusSnapshotEvent carries a point-in-time cluster status snapshot,
// emitted once per periodic tick so stats consumers don't need to poll
// Status() themselves.
type StatusSnapshotEvent struct {
	ClusterSize int
	Members     []MemberStatus
}

// MemberStatus mirrors the per-member fields of a status snapshot, kept
// here (rather than imported from the root package) so that events has no
// dependency on the root package and can be imported freely by stats.
type MemberStatus struct {
	ID               uint16
	Alive            bool
	MsSinceHeartbeat int64
	X, Y, Z          int32
	Load             uint64
	PeerCount        int
}

// Ready is fired once the cluster core has finished seeding its initial
// members and is ready to serve incoming frames.
type Ready struct{}

// Destroyed is fired when the cluster core has been torn down and must not
// be used again.
type Destroyed struct{}
