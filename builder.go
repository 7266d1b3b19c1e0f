package sbus

import "fmt"

// This file provides one constructor per command family, validating
// arguments and filling a plain Request the way the original C header's
// SBUS_REQUEST/SBUS_READ_REGISTERS_REQUEST/SBUS_WRITE_REGISTER_REQUEST
// compound-literal macros did. Go has no variadic compound literals, so the
// macros become typed functions instead — same convenience, same
// validation, one call site instead of a hand-rolled byte array.

func newReadRequest(destination uint8, cmd Command, start uint16, count uint16, maxCount uint16) (*Request, error) {
	if count < 1 || count > maxCount {
		return nil, fmt.Errorf("sbus: count out of range (1-%d): %d", maxCount, count)
	}
	req := &Request{Destination: destination, Command: cmd, DataLen: 3}
	req.Data[0] = uint8(count - 1)
	req.Data[1] = uint8(start >> 8)
	req.Data[2] = uint8(start)
	return req, nil
}

// NewReadCounterRequest builds a READ_COUNTER request reading count
// counters starting at start. count must be in [1, 256].
func NewReadCounterRequest(destination uint8, start uint16, count uint16) (*Request, error) {
	return newReadRequest(destination, CommandReadCounter, start, count, 256)
}

// NewReadRegisterRequest builds a READ_REGISTER request reading count
// registers starting at start. count must be in [1, 256].
func NewReadRegisterRequest(destination uint8, start uint16, count uint16) (*Request, error) {
	return newReadRequest(destination, CommandReadRegister, start, count, 256)
}

// NewReadTimerRequest builds a READ_TIMER request reading count timers
// starting at start. count must be in [1, 256].
func NewReadTimerRequest(destination uint8, start uint16, count uint16) (*Request, error) {
	return newReadRequest(destination, CommandReadTimer, start, count, 256)
}

// NewReadFlagRequest builds a READ_FLAG request reading count flags
// starting at start. count must be in [1, 256].
func NewReadFlagRequest(destination uint8, start uint16, count uint16) (*Request, error) {
	return newReadRequest(destination, CommandReadFlag, start, count, 256)
}

// NewReadInputRequest builds a READ_INPUT request reading count inputs
// starting at start. count must be in [1, 256].
func NewReadInputRequest(destination uint8, start uint16, count uint16) (*Request, error) {
	return newReadRequest(destination, CommandReadInput, start, count, 256)
}

// NewReadOutputRequest builds a READ_OUTPUT request reading count outputs
// starting at start. count must be in [1, 256].
func NewReadOutputRequest(destination uint8, start uint16, count uint16) (*Request, error) {
	return newReadRequest(destination, CommandReadOutput, start, count, 256)
}

func newNoPayloadRequest(destination uint8, cmd Command) *Request {
	return &Request{Destination: destination, Command: cmd, DataLen: 0}
}

// NewReadDisplayRegisterRequest builds a READ_DISPLAY_REGISTER request.
func NewReadDisplayRegisterRequest(destination uint8) *Request {
	return newNoPayloadRequest(destination, CommandReadDisplayRegister)
}

// NewReadRealTimeClockRequest builds a READ_REAL_TIME_CLOCK request.
func NewReadRealTimeClockRequest(destination uint8) *Request {
	return newNoPayloadRequest(destination, CommandReadRealTimeClock)
}

// NewReadStationNumberRequest builds a READ_STATION_NUMBER request.
func NewReadStationNumberRequest(destination uint8) *Request {
	return newNoPayloadRequest(destination, CommandReadStationNumber)
}

// pcdStatusCommands indexes CPU status commands 0-6 by CPU number.
var pcdStatusCommands = [7]Command{
	CommandReadPCDStatusCPU0, CommandReadPCDStatusCPU1, CommandReadPCDStatusCPU2,
	CommandReadPCDStatusCPU3, CommandReadPCDStatusCPU4, CommandReadPCDStatusCPU5,
	CommandReadPCDStatusCPU6,
}

// NewReadPCDStatusRequest builds a READ_PCD_STATUS_CPU_<cpu> request for
// cpu in [0,6], or a READ_PCD_STATUS_SELF request when cpu is -1.
func NewReadPCDStatusRequest(destination uint8, cpu int) (*Request, error) {
	if cpu == -1 {
		return newNoPayloadRequest(destination, CommandReadPCDStatusSelf), nil
	}
	if cpu < 0 || cpu > 6 {
		return nil, fmt.Errorf("sbus: cpu out of range (-1, 0-6): %d", cpu)
	}
	return newNoPayloadRequest(destination, pcdStatusCommands[cpu]), nil
}

func newWriteWordRequest(destination uint8, cmd Command, start uint16, values []uint32) (*Request, error) {
	count := len(values) * 4
	if count < 4 || count > 128 || count%4 != 0 {
		return nil, fmt.Errorf("sbus: value count out of range (1-32): %d", len(values))
	}
	req := &Request{Destination: destination, Command: cmd}
	req.Data[0] = uint8(count + 1)
	req.Data[1] = uint8(start >> 8)
	req.Data[2] = uint8(start)
	for i, v := range values {
		req.Data[3+i*4+0] = uint8(v >> 24)
		req.Data[3+i*4+1] = uint8(v >> 16)
		req.Data[3+i*4+2] = uint8(v >> 8)
		req.Data[3+i*4+3] = uint8(v)
	}
	req.DataLen = uint8(2 + req.Data[0])
	return req, nil
}

// NewWriteCounterRequest builds a WRITE_COUNTER request writing values
// (1-32 counters) starting at start.
func NewWriteCounterRequest(destination uint8, start uint16, values []uint32) (*Request, error) {
	return newWriteWordRequest(destination, CommandWriteCounter, start, values)
}

// NewWriteRegisterRequest builds a WRITE_REGISTER request writing values
// (1-32 registers) starting at start.
func NewWriteRegisterRequest(destination uint8, start uint16, values []uint32) (*Request, error) {
	return newWriteWordRequest(destination, CommandWriteRegister, start, values)
}

// NewWriteTimerRequest builds a WRITE_TIMER request writing values (1-32
// timers) starting at start.
func NewWriteTimerRequest(destination uint8, start uint16, values []uint32) (*Request, error) {
	return newWriteWordRequest(destination, CommandWriteTimer, start, values)
}

func newWriteBitRequest(destination uint8, cmd Command, start uint16, bits []byte) (*Request, error) {
	count := len(bits)
	if count < 1 || count > 16 {
		return nil, fmt.Errorf("sbus: bit-byte count out of range (1-16): %d", count)
	}
	req := &Request{Destination: destination, Command: cmd}
	req.Data[0] = uint8(count + 1) // count_byte = bits_len + 1 (total payload is 2+count_byte, 3 fixed bytes + bits_len)
	req.Data[1] = uint8(start >> 8)
	req.Data[2] = uint8(start)
	copy(req.Data[3:], bits)
	req.DataLen = uint8(2 + req.Data[0])
	return req, nil
}

// NewWriteOutputRequest builds a WRITE_OUTPUT request writing bits (1-16
// packed bytes) starting at start.
func NewWriteOutputRequest(destination uint8, start uint16, bits []byte) (*Request, error) {
	return newWriteBitRequest(destination, CommandWriteOutput, start, bits)
}

// NewWriteFlagRequest builds a WRITE_FLAG request writing bits (1-16 packed
// bytes) starting at start.
func NewWriteFlagRequest(destination uint8, start uint16, bits []byte) (*Request, error) {
	return newWriteBitRequest(destination, CommandWriteFlag, start, bits)
}

// NewWriteRealTimeClockRequest builds a WRITE_REAL_TIME_CLOCK request from
// the 6 raw clock bytes (device-specific BCD/binary encoding, passed through
// unexamined).
func NewWriteRealTimeClockRequest(destination uint8, clock [6]byte) *Request {
	req := &Request{Destination: destination, Command: CommandWriteRealTimeClock, DataLen: 6}
	copy(req.Data[:6], clock[:])
	return req
}
