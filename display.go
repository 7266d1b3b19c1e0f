package sbus

import "fmt"

// FormatRequest writes a textual summary of req into buf and returns the
// number of bytes the full, untruncated rendering would occupy (the
// snprintf convention the original C implementation relies on: the caller
// can compare the return value against len(buf) to detect truncation).
// Output has the shape:
//
//	Request for <destination>, command <command>
//		Data: 0x<b0> 0x<b1> …
//
// The data line is only emitted when req.DataLen > 0.
func FormatRequest(buf []byte, req *Request) int {
	var s string
	s = fmt.Sprintf("Request for %d, command %d\n", req.Destination, req.Command)
	if req.DataLen > 0 {
		s += "\tData:"
		for _, b := range req.Payload() {
			s += fmt.Sprintf(" 0x%02X", b)
		}
		s += "\n"
	}
	copy(buf, s)
	return len(s)
}
