// internal/source/source.go
package source

import (
	"errors"
	"fmt"
	"net"
	"time"
)

// Transports understood by Open.
const (
	TransportSerial = "serial"
	TransportTelnet = "telnet"
	TransportMQTT   = "mqtt"
	TransportStdin  = "stdin"
)

// Source is a non-blocking byte stream.
// Read returns (0, nil) when nothing is available right now.
type Source interface {
	Read(p []byte) (int, error)
	Close() error
}

// Config is the transport config of one source.
type Config struct {
	Transport string
	Address   string
	BaudRate  int
	Timeout   time.Duration

	// MQTT only
	Topic    string
	ClientID string
	QueueLen int
}

// Open dials the configured transport. ONE attempt per call.
func Open(cfg Config) (Source, error) {
	var (
		src Source
		err error
	)

	// concrete results are checked before they become interfaces,
	// so a failed open never yields a typed-nil Source
	switch cfg.Transport {
	case TransportSerial:
		s, e := OpenSerial(cfg)
		if e == nil {
			src = s
		}
		err = e
	case TransportTelnet:
		t, e := DialTelnet(cfg)
		if e == nil {
			src = t
		}
		err = e
	case TransportMQTT:
		m, e := SubscribeMQTT(cfg)
		if e == nil {
			src = m
		}
		err = e
	case TransportStdin:
		src = Stdin()
	default:
		err = fmt.Errorf("source: unknown transport %q", cfg.Transport)
	}

	if err != nil {
		return nil, err
	}
	return src, nil
}

// isTimeout reports whether err only means "no data within the deadline".
func isTimeout(err error) bool {
	var ne net.Error
	return errors.As(err, &ne) && ne.Timeout()
}
