package clustercore

import (
	"encoding/binary"

	"github.com/overlaymesh/clustercore/events"
	"github.com/overlaymesh/clustercore/framer"
)

// registerHandlers builds the sub-message dispatch table, grounded on the
// teacher's registerHandlers map-of-handlers pattern, minus RPC
// registration since sub-messages arrive already framed.
func (c *Cluster) registerHandlers() {
	c.handlers = map[byte]func(MemberID, []byte) error{
		MsgAlive:         c.handleAlive,
		MsgHavePeer:      c.handleHavePeer,
		MsgMulticastLike: c.handleMulticastLike,
		MsgCOM:           c.handleCOM,
		MsgProxyUnite:    c.handleProxyUnite,
		MsgProxySend:     c.handleProxySend,
	}
}

// HandleIncoming unseals an inbound frame and dispatches every sub-message
// it carries. Per §4.1's unsealing rules: the frame is rejected outright if
// it fails authentication, claims to be from us, isn't addressed to us, or
// claims a sender that isn't a current member. Within the sub-message
// loop, a sub-message whose handler fails is reported as a
// FrameDroppedEvent and skipped, and one of unknown type is skipped
// silently; a length prefix of zero, or one that runs past the end of the
// frame, stops parsing of the rest of the frame.
func (c *Cluster) HandleIncoming(frame []byte) error {
	sender, recipient, body, err := framer.Unseal(c.localKey, frame)
	if err != nil {
		c.events.EmitEvent(events.FrameDroppedEvent{Reason: err.Error()})
		return err
	}
	if sender == uint16(c.localID) {
		c.events.EmitEvent(events.FrameDroppedEvent{Reason: "sender claims local id"})
		return ErrInvalidMemberID
	}
	if recipient != uint16(c.localID) {
		c.events.EmitEvent(events.FrameDroppedEvent{Reason: "frame not addressed to us"})
		return ErrInvalidMemberID
	}
	senderID := MemberID(sender)
	if !c.registry.isMember(senderID) {
		c.events.EmitEvent(events.FrameDroppedEvent{Reason: "sender is not a member"})
		return ErrInvalidMemberID
	}

	rest := body
	for len(rest) >= 3 {
		length := int(binary.BigEndian.Uint16(rest[0:2]))
		if length == 0 || len(rest)-2 < length {
			break // truncated; parsing stops, nothing further is trustworthy
		}
		typ := rest[2]
		payload := rest[3 : 2+length]
		rest = rest[2+length:]

		handler, known := c.handlers[typ]
		if !known {
			continue // unknown types are ignored, per §4.2
		}
		if err := handler(senderID, payload); err != nil {
			c.events.EmitEvent(events.FrameDroppedEvent{Reason: "sub-message: " + err.Error()})
		}
	}
	return nil
}

func (c *Cluster) handleAlive(sender MemberID, payload []byte) error {
	msg, err := decodeAlive(payload)
	if err != nil {
		return err
	}
	m := c.registry.memberAt(sender)
	m.Lock()
	m.location = msg.Location
	m.load = msg.Load
	m.endpoints = msg.Endpoints
	m.lastReceivedAlive = c.clock.Now()
	m.Unlock()
	return nil
}

func (c *Cluster) handleHavePeer(sender MemberID, payload []byte) error {
	if c.opts.IdentityCodec == nil {
		return errSkipSubMessage
	}
	msg, err := decodeHavePeer(c.opts.IdentityCodec, payload)
	if err != nil {
		return err
	}
	addr := msg.Identity.Address()
	if c.opts.Topology != nil {
		c.opts.Topology.SaveIdentity(msg.Identity)
		if peer, ok := c.opts.Topology.GetPeerNoCache(addr, c.clock.Now()); ok {
			peer.RemovePathByAddress(msg.Address)
		}
	}
	c.affinity.set(addr, sender, c.clock.Now())
	return nil
}

func (c *Cluster) handleMulticastLike(sender MemberID, payload []byte) error {
	msg, err := decodeMulticastLike(payload)
	if err != nil {
		return err
	}
	if c.opts.Multicast != nil {
		c.opts.Multicast.Add(c.clock.Now(), msg.NetworkID, msg.Group, msg.Address)
	}
	return nil
}

// handleCOM only length-validates; the decision to not plumb COM into the
// multicast/membership layer is deliberate (§9 open-question resolution).
func (c *Cluster) handleCOM(sender MemberID, payload []byte) error {
	if len(payload) == 0 {
		return errSkipSubMessage
	}
	return nil
}

func (c *Cluster) handleProxyUnite(sender MemberID, payload []byte) error {
	msg, err := decodeProxyUnite(payload)
	if err != nil {
		return err
	}
	if c.opts.Topology == nil || c.opts.Switch == nil {
		return errSkipSubMessage
	}

	now := c.clock.Now()
	peer, ok := c.opts.Topology.GetPeerNoCache(msg.LocalPeer, now)
	if !ok {
		return errSkipSubMessage
	}
	localV4, localV6 := peer.GetBestActiveAddresses(now)

	var remoteV4, remoteV6 *InetAddress
	for i := range msg.RemotePaths {
		switch msg.RemotePaths[i].Family() {
		case "ip4":
			if remoteV4 == nil {
				remoteV4 = &msg.RemotePaths[i]
			}
		case "ip6":
			if remoteV6 == nil {
				remoteV6 = &msg.RemotePaths[i]
			}
		}
	}

	var chosenLocal, chosenRemote InetAddress
	switch {
	case localV6 != nil && remoteV6 != nil:
		chosenLocal, chosenRemote = *localV6, *remoteV6
	case localV4 != nil && remoteV4 != nil:
		chosenLocal, chosenRemote = *localV4, *remoteV4
	default:
		return errSkipSubMessage // no matching pair; best-effort abort
	}

	localRendezvous := OverlayPacket{
		Recipient: msg.LocalPeer,
		Verb:      VerbRendezvous,
		Payload:   rendezvousPayload(msg.RemotePeer, chosenRemote),
	}
	if err := c.opts.Switch.Send(localRendezvous, true, 0); err != nil {
		return err
	}

	proxySend := ProxySendMessage{
		Recipient: msg.RemotePeer,
		Verb:      VerbRendezvous,
		Payload:   rendezvousPayload(msg.LocalPeer, chosenLocal),
	}
	proxyPayload := encodeProxySend(proxySend)
	m := c.registry.memberAt(sender)
	m.Lock()
	if m.queue.WouldExceed(len(proxyPayload)) {
		c.sealAndResetLocked(m)
	}
	m.queue.Enqueue(MsgProxySend, proxyPayload)
	c.sealAndResetLocked(m) // immediate flush, not coalesced with the periodic one
	m.Unlock()

	c.events.EmitEvent(events.ProxyUniteSentEvent{
		LocalPeer:  msg.LocalPeer.String(),
		RemotePeer: msg.RemotePeer.String(),
	})
	return nil
}

func (c *Cluster) handleProxySend(sender MemberID, payload []byte) error {
	msg, err := decodeProxySend(payload)
	if err != nil {
		return err
	}
	if c.opts.Switch == nil {
		return errSkipSubMessage
	}
	packet := OverlayPacket{Recipient: msg.Recipient, Verb: msg.Verb, Payload: msg.Payload}
	return c.opts.Switch.Send(packet, true, 0)
}

// rendezvousPayload builds the RENDEZVOUS control-packet body: the peer
// address being introduced followed by the endpoint to try it at. The
// wider packet layout beyond this is the overlay's own, per §6.
func rendezvousPayload(addr PeerAddress, endpoint InetAddress) []byte {
	buf := make([]byte, 0, 5+7)
	buf = append(buf, addr[:]...)
	buf = append(buf, endpoint.Bytes()...)
	return buf
}
