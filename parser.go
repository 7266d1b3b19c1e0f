package sbus

// ParseRequest scans a window of 9-bit symbols for the first complete
// request frame. buf holds *len symbols; on return *len is updated to tell
// the caller how many leading symbols to drop from its stream before the
// next call:
//
//   - OK: *len is the offset just past the frame's trailing CRC byte, i.e.
//     any leading non-address symbols plus the frame itself (address symbol
//     through CRC, inclusive). The caller drops exactly that many symbols.
//   - IncompletePacket: *len is the offset of the address symbol at which
//     parsing stalled. The caller drops the prefix before it and waits for
//     more symbols.
//   - InvalidData: for "address symbol where a data symbol was required"
//     (an address symbol right after the frame's address symbol), *len is
//     set to just past the frame's own address symbol, so the second
//     address symbol becomes the next candidate frame start. For a
//     payload-range violation (bad count byte, bit-field limit, stray
//     address symbol inside a payload) *len is left unchanged — the caller
//     picks its own resync point. This mirrors the original C codec exactly;
//     a caller that needs a forward-progress guarantee should itself
//     advance past the last known address symbol on this result, since the
//     codec does not impose that policy.
//   - UnknownCommand: *len is left unchanged.
//   - NotFound: no address symbol exists anywhere in the window; *len is
//     left unchanged.
//   - WrongCRC: *len is set as for OK (just past the frame's trailing CRC
//     byte) so the caller advances past the bad frame.
//
// ParseRequest is pure and restartable: calling it twice on the same,
// unmutated window returns the same result both times.
func ParseRequest(buf []Symbol, length *int, req *Request) Result {
	n := *length

	start := -1
	for i := 0; i < n; i++ {
		if buf[i].IsAddress() {
			start = i
			break
		}
	}
	if start == -1 {
		return NotFound
	}

	destination := buf[start].Byte()

	if start+3 > n {
		*length = start
		return IncompletePacket
	}

	if buf[start+1].IsAddress() {
		*length = start + 1
		return InvalidData
	}

	command := Command(buf[start+1].Byte())
	payload := buf[start+2:]
	avail := n - (start + 2)

	res, need := decodePayload(command, payload, avail, req)
	switch res {
	case OK:
		// fall through to CRC check below
	case IncompletePacket:
		*length = start
		return IncompletePacket
	default: // InvalidData, UnknownCommand
		return res
	}

	if start+2+need+2 > n {
		*length = start
		return IncompletePacket
	}

	frameLen := start + 2 + need + 2
	crc := CRC16Symbols(buf[start : frameLen-2])
	foundCRC := uint16(buf[frameLen-2].Byte())<<8 | uint16(buf[frameLen-1].Byte())

	*length = frameLen
	req.Destination = destination

	if crc != foundCRC {
		return WrongCRC
	}
	return OK
}
