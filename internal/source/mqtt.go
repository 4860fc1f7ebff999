// internal/source/mqtt.go
package source

import (
	"errors"
	"fmt"
	"sync"
	"time"

	mqtt "github.com/eclipse/paho.mqtt.golang"
)

const defaultQueueLen = 8192

// MQTT reads line payloads published on one topic.
// The client callback only appends to a bounded queue; Read drains it.
type MQTT struct {
	client mqtt.Client
	topic  string
	q      *queue
}

// SubscribeMQTT connects to cfg.Address (a broker URL such as
// tcp://host:1883) and subscribes to cfg.Topic.
func SubscribeMQTT(cfg Config) (*MQTT, error) {
	if cfg.Address == "" {
		return nil, errors.New("source mqtt: broker address required")
	}
	if cfg.Topic == "" {
		return nil, errors.New("source mqtt: topic required")
	}
	if cfg.QueueLen <= 0 {
		cfg.QueueLen = defaultQueueLen
	}
	clientID := cfg.ClientID
	if clientID == "" {
		clientID = fmt.Sprintf("panelmon-%d", time.Now().UnixNano())
	}

	m := &MQTT{topic: cfg.Topic, q: newQueue(cfg.QueueLen)}

	opts := mqtt.NewClientOptions().
		AddBroker(cfg.Address).
		SetClientID(clientID).
		SetConnectTimeout(5 * time.Second).
		SetAutoReconnect(true).
		SetOnConnectHandler(func(c mqtt.Client) {
			// (re)subscribe on every connect; the session is not persistent
			c.Subscribe(m.topic, 0, m.onMessage)
		})

	m.client = mqtt.NewClient(opts)
	tok := m.client.Connect()
	if !tok.WaitTimeout(5 * time.Second) {
		return nil, fmt.Errorf("source mqtt: connect %s: timeout", cfg.Address)
	}
	if err := tok.Error(); err != nil {
		return nil, fmt.Errorf("source mqtt: connect %s: %w", cfg.Address, err)
	}
	return m, nil
}

func (m *MQTT) onMessage(_ mqtt.Client, msg mqtt.Message) {
	m.q.pushLine(msg.Payload())
}

func (m *MQTT) Read(b []byte) (int, error) {
	if !m.client.IsConnectionOpen() && m.q.len() == 0 {
		// auto-reconnect is in flight; report idle rather than failing
		return 0, nil
	}
	return m.q.read(b), nil
}

func (m *MQTT) Close() error {
	if m == nil || m.client == nil {
		return nil
	}
	m.client.Unsubscribe(m.topic)
	m.client.Disconnect(250)
	return nil
}

// Dropped returns the number of bytes lost to queue overflow.
func (m *MQTT) Dropped() uint64 { return m.q.droppedBytes() }

// ---- bounded byte queue ----

// queue holds bytes between a producer goroutine and the poll loop.
// pushLine drops on overflow, like an overrun serial FIFO; pushWait
// stalls the producer instead.
type queue struct {
	mu      sync.Mutex
	notFull *sync.Cond
	buf     []byte
	max     int
	dropped uint64
	closed  bool
}

func newQueue(max int) *queue {
	q := &queue{max: max, buf: make([]byte, 0, max)}
	q.notFull = sync.NewCond(&q.mu)
	return q
}

// pushLine appends a payload, adding a line feed if it lacks one.
func (q *queue) pushLine(p []byte) {
	q.mu.Lock()
	defer q.mu.Unlock()

	q.appendLocked(p)
	if len(p) == 0 || p[len(p)-1] != '\n' {
		q.appendLocked([]byte{'\n'})
	}
}

func (q *queue) appendLocked(p []byte) {
	room := q.max - len(q.buf)
	if room < len(p) {
		q.dropped += uint64(len(p) - room)
		p = p[:room]
	}
	q.buf = append(q.buf, p...)
}

// pushWait appends all of p, waiting for room as needed.
// It returns false if the queue was closed first.
func (q *queue) pushWait(p []byte) bool {
	q.mu.Lock()
	defer q.mu.Unlock()

	for len(p) > 0 {
		for !q.closed && len(q.buf) == q.max {
			q.notFull.Wait()
		}
		if q.closed {
			return false
		}
		room := q.max - len(q.buf)
		if room > len(p) {
			room = len(p)
		}
		q.buf = append(q.buf, p[:room]...)
		p = p[room:]
	}
	return true
}

func (q *queue) read(b []byte) int {
	q.mu.Lock()
	defer q.mu.Unlock()

	n := copy(b, q.buf)
	q.buf = append(q.buf[:0], q.buf[n:]...)
	if n > 0 {
		q.notFull.Broadcast()
	}
	return n
}

// close wakes a stalled producer; later pushWait calls fail.
func (q *queue) close() {
	q.mu.Lock()
	q.closed = true
	q.mu.Unlock()
	q.notFull.Broadcast()
}

func (q *queue) len() int {
	q.mu.Lock()
	defer q.mu.Unlock()
	return len(q.buf)
}

func (q *queue) droppedBytes() uint64 {
	q.mu.Lock()
	defer q.mu.Unlock()
	return q.dropped
}
