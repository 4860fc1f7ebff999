// internal/source/telnet.go
package source

import (
	"errors"
	"fmt"
	"time"

	"github.com/ziutek/telnet"
)

// Telnet reads a serial port exported over the network by a ser2net-style
// bridge. Telnet negotiation is handled by the connection; only payload
// bytes reach Read.
type Telnet struct {
	conn    *telnet.Conn
	timeout time.Duration
}

// DialTelnet connects to cfg.Address (host:port).
func DialTelnet(cfg Config) (*Telnet, error) {
	if cfg.Address == "" {
		return nil, errors.New("source telnet: address required")
	}
	if cfg.Timeout <= 0 {
		cfg.Timeout = 50 * time.Millisecond
	}

	// dialing gets a generous budget; reads use the short poll timeout
	conn, err := telnet.DialTimeout("tcp", cfg.Address, 5*time.Second)
	if err != nil {
		return nil, fmt.Errorf("source telnet: dial %s: %w", cfg.Address, err)
	}
	return &Telnet{conn: conn, timeout: cfg.Timeout}, nil
}

func (t *Telnet) Read(b []byte) (int, error) {
	_ = t.conn.SetReadDeadline(time.Now().Add(t.timeout))
	n, err := t.conn.Read(b)
	if err != nil && isTimeout(err) {
		return n, nil
	}
	return n, err
}

func (t *Telnet) Close() error {
	if t == nil || t.conn == nil {
		return nil
	}
	return t.conn.Close()
}
