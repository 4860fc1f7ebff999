// internal/source/serial.go
package source

import (
	"errors"
	"fmt"
	"time"

	"github.com/goburrow/serial"
)

const defaultBaudRate = 115200

// Serial reads from a local serial port (8N1).
type Serial struct {
	port serial.Port
}

// OpenSerial opens the port named by cfg.Address.
// cfg.Timeout bounds each Read; a read that times out yields no data.
func OpenSerial(cfg Config) (*Serial, error) {
	if cfg.Address == "" {
		return nil, errors.New("source serial: address required")
	}
	if cfg.BaudRate <= 0 {
		cfg.BaudRate = defaultBaudRate
	}
	if cfg.Timeout <= 0 {
		cfg.Timeout = 50 * time.Millisecond
	}

	p, err := serial.Open(&serial.Config{
		Address:  cfg.Address,
		BaudRate: cfg.BaudRate,
		DataBits: 8,
		StopBits: 1,
		Parity:   "N",
		Timeout:  cfg.Timeout,
	})
	if err != nil {
		return nil, fmt.Errorf("source serial: open %s: %w", cfg.Address, err)
	}
	return &Serial{port: p}, nil
}

func (s *Serial) Read(b []byte) (int, error) {
	n, err := s.port.Read(b)
	if err != nil && (errors.Is(err, serial.ErrTimeout) || isTimeout(err)) {
		return n, nil
	}
	return n, err
}

func (s *Serial) Close() error {
	if s == nil || s.port == nil {
		return nil
	}
	return s.port.Close()
}
