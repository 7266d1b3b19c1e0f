package sbus

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestNewReadRegisterRequest(t *testing.T) {
	var testCases = []struct {
		name        string
		start       uint16
		count       uint16
		expect      *Request
		expectError string
	}{
		{
			name:  "ok",
			start: 0x20,
			count: 3,
			expect: &Request{
				Destination: 1, Command: CommandReadRegister, DataLen: 3,
				Data: func() [256]byte { var d [256]byte; d[0], d[1], d[2] = 2, 0x00, 0x20; return d }(),
			},
		},
		{name: "nok, count zero", start: 0x20, count: 0, expectError: "sbus: count out of range (1-256): 0"},
		{name: "nok, count too big", start: 0x20, count: 257, expectError: "sbus: count out of range (1-256): 257"},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			req, err := NewReadRegisterRequest(1, tc.start, tc.count)

			if tc.expectError != "" {
				assert.EqualError(t, err, tc.expectError)
				assert.Nil(t, req)
				return
			}
			assert.NoError(t, err)
			assert.Equal(t, tc.expect, req)
		})
	}
}

func TestNewReadPCDStatusRequest(t *testing.T) {
	var testCases = []struct {
		name        string
		cpu         int
		expect      Command
		expectError string
	}{
		{name: "self", cpu: -1, expect: CommandReadPCDStatusSelf},
		{name: "cpu 0", cpu: 0, expect: CommandReadPCDStatusCPU0},
		{name: "cpu 6", cpu: 6, expect: CommandReadPCDStatusCPU6},
		{name: "nok, cpu out of range", cpu: 7, expectError: "sbus: cpu out of range (-1, 0-6): 7"},
		{name: "nok, cpu negative below -1", cpu: -2, expectError: "sbus: cpu out of range (-1, 0-6): -2"},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			req, err := NewReadPCDStatusRequest(1, tc.cpu)

			if tc.expectError != "" {
				assert.EqualError(t, err, tc.expectError)
				assert.Nil(t, req)
				return
			}
			assert.NoError(t, err)
			assert.Equal(t, tc.expect, req.Command)
		})
	}
}

func TestNewWriteRegisterRequest_roundTripsThroughParser(t *testing.T) {
	var testCases = []struct {
		name   string
		values []uint32
	}{
		{name: "1 register (minimum)", values: []uint32{0x11223344}},
		{name: "32 registers (maximum)", values: make([]uint32, 32)},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			req, err := NewWriteRegisterRequest(1, 0x20, tc.values)
			assert.NoError(t, err)

			buf := make([]Symbol, 4+int(req.DataLen))
			n := SerializeRequest(buf, req)

			length := n
			var parsed Request
			result := ParseRequest(buf, &length, &parsed)

			assert.Equal(t, OK, result)
			assert.Equal(t, n, length)
		})
	}
}

func TestNewWriteRegisterRequest_rejectsOutOfRangeCount(t *testing.T) {
	_, err := NewWriteRegisterRequest(1, 0x20, nil)
	assert.EqualError(t, err, "sbus: value count out of range (1-32): 0")

	_, err = NewWriteRegisterRequest(1, 0x20, make([]uint32, 33))
	assert.EqualError(t, err, "sbus: value count out of range (1-32): 33")
}

func TestNewWriteOutputRequest_roundTripsThroughParser(t *testing.T) {
	var testCases = []struct {
		name string
		bits []byte
	}{
		{name: "1 bit byte (minimum)", bits: []byte{0x7F}},
		{name: "16 bit bytes (maximum)", bits: make([]byte, 16)},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			req, err := NewWriteOutputRequest(1, 0x20, tc.bits)
			assert.NoError(t, err)

			buf := make([]Symbol, 4+int(req.DataLen))
			n := SerializeRequest(buf, req)

			length := n
			var parsed Request
			result := ParseRequest(buf, &length, &parsed)

			assert.Equal(t, OK, result)
			assert.Equal(t, n, length)
		})
	}
}

func TestNewWriteOutputRequest_rejectsOutOfRangeCount(t *testing.T) {
	_, err := NewWriteOutputRequest(1, 0x20, nil)
	assert.EqualError(t, err, "sbus: bit-byte count out of range (1-16): 0")

	_, err = NewWriteOutputRequest(1, 0x20, make([]byte, 17))
	assert.EqualError(t, err, "sbus: bit-byte count out of range (1-16): 17")
}

func TestNewWriteRealTimeClockRequest(t *testing.T) {
	clock := [6]byte{0x24, 0x01, 0x02, 0x03, 0x04, 0x05}
	req := NewWriteRealTimeClockRequest(9, clock)

	assert.Equal(t, uint8(9), req.Destination)
	assert.Equal(t, CommandWriteRealTimeClock, req.Command)
	assert.Equal(t, uint8(6), req.DataLen)
	assert.Equal(t, clock[:], req.Payload())
}

func TestNewReadDisplayRegisterRequest(t *testing.T) {
	req := NewReadDisplayRegisterRequest(3)

	assert.Equal(t, uint8(3), req.Destination)
	assert.Equal(t, CommandReadDisplayRegister, req.Command)
	assert.Equal(t, uint8(0), req.DataLen)
}
