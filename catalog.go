package sbus

// This file is the command catalog: the closed set of valid command codes,
// each family's request payload shape, and the formula for its response
// length. It mirrors the `unpack_command` and `sbus_packet_response_length`
// switches of the original implementation one family at a time.

// decodePayload validates and extracts the command-specific payload that
// follows the command byte in a request frame. buf holds the symbols
// available after the command byte; avail is how many of them are present
// in the caller's window (buf may be longer than avail if more symbols
// happen to follow in the underlying stream — decodePayload never looks
// past avail).
//
// On OK it fills req.Command/Data/DataLen and returns the number of payload
// symbols consumed. On IncompletePacket/InvalidData/UnknownCommand the
// request is left untouched and the returned count is meaningless.
func decodePayload(cmd Command, buf []Symbol, avail int, req *Request) (Result, int) {
	var need int
	switch cmd {
	case CommandReadDisplayRegister, CommandReadRealTimeClock,
		CommandReadPCDStatusCPU0, CommandReadPCDStatusCPU1, CommandReadPCDStatusCPU2,
		CommandReadPCDStatusCPU3, CommandReadPCDStatusCPU4, CommandReadPCDStatusCPU5,
		CommandReadPCDStatusCPU6, CommandReadPCDStatusSelf, CommandReadStationNumber:
		need = 0

	case CommandReadCounter, CommandReadFlag, CommandReadInput, CommandReadOutput,
		CommandReadRegister, CommandReadTimer:
		if avail < 3 {
			return IncompletePacket, 0
		}
		need = 3

	case CommandWriteCounter, CommandWriteRegister, CommandWriteTimer:
		if avail < 1 {
			return IncompletePacket, 0
		}
		count := buf[0].Byte()
		if count < 5 || count > 129 || (count-1)%4 != 0 {
			return InvalidData, 0
		}
		need = 2 + int(count)
		if avail < need {
			return IncompletePacket, 0
		}

	case CommandWriteOutput, CommandWriteFlag:
		if avail < 3 {
			return IncompletePacket, 0
		}
		count := buf[0].Byte()
		if count < 2 || count > 17 || buf[2].Byte() > 127 {
			return InvalidData, 0
		}
		need = 2 + int(count)
		if avail < need {
			return IncompletePacket, 0
		}

	case CommandWriteRealTimeClock:
		if avail < 6 {
			return IncompletePacket, 0
		}
		need = 6

	default:
		return UnknownCommand, 0
	}

	for i := 0; i < need; i++ {
		if buf[i].IsAddress() {
			return InvalidData, 0
		}
	}

	req.Command = cmd
	req.DataLen = uint8(need)
	for i := 0; i < need; i++ {
		req.Data[i] = buf[i].Byte()
	}
	return OK, need
}

// ResponseLength returns the number of response bytes (including the
// trailing 2-byte CRC, or the 2-byte ACK/NAK for write commands) a well
// formed reply to req would have. It returns 0 for a broadcast request,
// which never gets a response.
//
// For READ_FLAG/READ_INPUT/READ_OUTPUT the formula is the integer-floor
// `count/8`, not `ceil(count/8)`. The original device firmware computes it
// this way; spec.md asks to preserve the floor behavior for bit-compatibility
// even though a ceiling division looks like the "intended" formula for a
// bitmap of `count` flags.
func ResponseLength(req *Request) int {
	if req.Destination == Broadcast {
		return 0
	}

	switch req.Command {
	case CommandReadCounter, CommandReadRegister, CommandReadTimer:
		return int(req.ReadCount())*4 + 2

	case CommandReadDisplayRegister:
		return 4 + 2

	case CommandReadFlag, CommandReadInput, CommandReadOutput:
		return int(req.ReadCount())/8 + 2

	case CommandReadRealTimeClock:
		return 6 + 2

	case CommandWriteCounter, CommandWriteFlag, CommandWriteRealTimeClock,
		CommandWriteOutput, CommandWriteRegister, CommandWriteTimer:
		return 2

	case CommandReadPCDStatusCPU0, CommandReadPCDStatusCPU1, CommandReadPCDStatusCPU2,
		CommandReadPCDStatusCPU3, CommandReadPCDStatusCPU4, CommandReadPCDStatusCPU5,
		CommandReadPCDStatusCPU6, CommandReadPCDStatusSelf, CommandReadStationNumber:
		return 1 + 2

	default:
		return 0
	}
}

// isWriteCommand reports whether cmd's reply is the 2-byte ACK/NAK shape
// rather than a CRC-checked payload.
func isWriteCommand(cmd Command) bool {
	switch cmd {
	case CommandWriteCounter, CommandWriteFlag, CommandWriteRealTimeClock,
		CommandWriteOutput, CommandWriteRegister, CommandWriteTimer:
		return true
	default:
		return false
	}
}
