// Command sbus-bridge is a small demonstration client for the sbus codec:
// it opens a serial link, builds one request with the codec's builder
// helpers, writes it over the wire, reads back the reply, and exposes
// Prometheus counters for the outcome. It is the "external collaborator"
// spec.md keeps out of the codec package itself — transport and
// master-side application logic live here, not in package sbus. It makes a
// single attempt per run and does not retry.
package main

import (
	"flag"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/tarm/serial"

	"github.com/mpetrov/go-sbus"
)

var (
	framesSent = promauto.NewCounter(prometheus.CounterOpts{
		Name: "sbus_requests_sent_total",
		Help: "Total sbus request frames written to the serial link.",
	})
	resultTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "sbus_result_total",
		Help: "Count of response outcomes by sbus.Result.",
	}, []string{"result"})
)

func main() {
	var (
		device      string
		baud        int
		destination int
		command     int
		start       int
		count       int
		timeout     time.Duration
		metricsAddr string
	)
	flag.StringVar(&device, "device", "/dev/ttyUSB0", "serial device path")
	flag.IntVar(&baud, "baud", 9600, "serial baud rate")
	flag.IntVar(&destination, "destination", 1, "station address (0-255)")
	flag.IntVar(&command, "command", int(sbus.CommandReadRegister), "sbus command code")
	flag.IntVar(&start, "start", 0, "starting register/flag/input/output address")
	flag.IntVar(&count, "count", 1, "read count (ignored for fixed-payload commands)")
	flag.DurationVar(&timeout, "timeout", time.Second, "serial read timeout")
	flag.StringVar(&metricsAddr, "metrics-addr", ":9273", "address to serve /metrics on")
	flag.Parse()

	logger := slog.New(slog.NewJSONHandler(os.Stderr, nil))

	go func() {
		mux := http.NewServeMux()
		mux.Handle("/metrics", promhttp.Handler())
		logger.Info("metrics listening", "addr", metricsAddr)
		if err := http.ListenAndServe(metricsAddr, mux); err != nil && err != http.ErrServerClosed {
			logger.Error("metrics server failed", "err", err)
		}
	}()

	req, err := buildRequest(uint8(destination), sbus.Command(command), uint16(start), uint16(count))
	if err != nil {
		logger.Error("building request failed", "err", err)
		os.Exit(1)
	}

	port, err := serial.OpenPort(&serial.Config{Name: device, Baud: baud, ReadTimeout: timeout})
	if err != nil {
		logger.Error("opening serial port failed", "device", device, "err", err)
		os.Exit(1)
	}
	defer port.Close()

	result, err := roundTrip(port, req)
	resultTotal.WithLabelValues(result.String()).Inc()
	if err != nil {
		logger.Error("round trip failed", "err", err, "result", result.String())
		os.Exit(1)
	}
	logger.Info("round trip ok", "destination", req.Destination, "command", req.Command, "result", result.String())
}

// buildRequest dispatches to the builder helper matching cmd, treating
// start/count as the read-address/read-count pair for the command families
// that need them and ignoring them otherwise.
func buildRequest(destination uint8, cmd sbus.Command, start, count uint16) (*sbus.Request, error) {
	switch cmd {
	case sbus.CommandReadCounter:
		return sbus.NewReadCounterRequest(destination, start, count)
	case sbus.CommandReadRegister:
		return sbus.NewReadRegisterRequest(destination, start, count)
	case sbus.CommandReadTimer:
		return sbus.NewReadTimerRequest(destination, start, count)
	case sbus.CommandReadFlag:
		return sbus.NewReadFlagRequest(destination, start, count)
	case sbus.CommandReadInput:
		return sbus.NewReadInputRequest(destination, start, count)
	case sbus.CommandReadOutput:
		return sbus.NewReadOutputRequest(destination, start, count)
	case sbus.CommandReadDisplayRegister:
		return sbus.NewReadDisplayRegisterRequest(destination), nil
	case sbus.CommandReadRealTimeClock:
		return sbus.NewReadRealTimeClockRequest(destination), nil
	case sbus.CommandReadStationNumber:
		return sbus.NewReadStationNumberRequest(destination), nil
	default:
		return nil, fmt.Errorf("sbus-bridge: command %d has no CLI builder wired up", cmd)
	}
}

// roundTrip serializes req, writes its low bytes to port (an 8-bit UART has
// no 9th address bit to transmit — exactly the transport concern spec.md
// keeps outside the codec), and validates the reply with the 8-bit
// validator.
func roundTrip(port *serial.Port, req *sbus.Request) (sbus.Result, error) {
	symbols := make([]sbus.Symbol, 4+int(req.DataLen))
	n := sbus.SerializeRequest(symbols, req)
	framesSent.Inc()

	wire := make([]byte, n)
	for i, s := range symbols[:n] {
		wire[i] = s.Byte()
	}
	if _, err := port.Write(wire); err != nil {
		return sbus.InvalidData, fmt.Errorf("writing request: %w", err)
	}

	required := sbus.ResponseLength(req)
	if required == 0 {
		return sbus.OK, nil
	}

	reply := make([]byte, required)
	read := 0
	for read < required {
		m, err := port.Read(reply[read:])
		if err != nil {
			return sbus.IncompletePacket, fmt.Errorf("reading reply: %w", err)
		}
		if m == 0 {
			break
		}
		read += m
	}

	length := read
	result := sbus.ValidateResponseBytes(req, reply, &length)
	if result != sbus.OK {
		return result, fmt.Errorf("%w", result)
	}
	return result, nil
}
