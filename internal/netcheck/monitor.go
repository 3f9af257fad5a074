package netcheck

import (
	"net"
	"net/url"
	"sync"
	"time"

	"lumen/pkg/logging"
)

// Status is the advisory reachability signal maintained by the Monitor.
type Status struct {
	// Reachable reports whether the backend host answered the last probe.
	Reachable bool

	// Interface is the name of the active non-loopback interface, or ""
	// when none is up.
	Interface string
}

const (
	// defaultInterval is how often the probe runs.
	defaultInterval = 15 * time.Second

	// probeTimeout bounds a single reachability probe.
	probeTimeout = 3 * time.Second
)

// Monitor maintains a best-effort "is the network reachable" signal by
// probing the backend host on an interval. The signal is advisory: the
// request executor consults it only to fast-fail when no connectivity is
// present, and an actual dispatch attempt remains the ground truth.
//
// Status changes are broadcast to subscribers (single producer, multiple
// consumers); slow subscribers miss intermediate updates rather than
// blocking the probe loop.
type Monitor struct {
	mu          sync.RWMutex
	status      Status
	subscribers map[chan Status]struct{}

	addr     string
	interval time.Duration
	probe    func() bool

	stop     chan struct{}
	stopOnce sync.Once
}

// NewMonitor creates a Monitor probing the host of the given base URL.
// An interval of zero selects the default.
func NewMonitor(baseURL string, interval time.Duration) (*Monitor, error) {
	u, err := url.Parse(baseURL)
	if err != nil {
		return nil, err
	}
	host := u.Host
	if u.Port() == "" {
		port := "443"
		if u.Scheme == "http" {
			port = "80"
		}
		host = net.JoinHostPort(u.Hostname(), port)
	}
	if interval <= 0 {
		interval = defaultInterval
	}

	m := &Monitor{
		addr:        host,
		interval:    interval,
		subscribers: make(map[chan Status]struct{}),
		stop:        make(chan struct{}),
	}
	m.probe = m.dialProbe
	// Seed the signal before the first tick so early requests do not
	// fast-fail on the zero value.
	m.status = Status{Reachable: m.probe(), Interface: activeInterface()}

	go m.loop()
	return m, nil
}

// Current returns the latest reachability snapshot.
func (m *Monitor) Current() Status {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return m.status
}

// Subscribe registers a consumer for status changes. The channel receives
// only transitions, not every probe result.
func (m *Monitor) Subscribe() <-chan Status {
	ch := make(chan Status, 1)
	m.mu.Lock()
	m.subscribers[ch] = struct{}{}
	m.mu.Unlock()
	return ch
}

// Unsubscribe removes a consumer registered with Subscribe.
func (m *Monitor) Unsubscribe(ch <-chan Status) {
	m.mu.Lock()
	defer m.mu.Unlock()
	for sub := range m.subscribers {
		if sub == ch {
			delete(m.subscribers, sub)
			close(sub)
			return
		}
	}
}

// Stop ends the probe loop and closes all subscriber channels.
func (m *Monitor) Stop() {
	m.stopOnce.Do(func() { close(m.stop) })
}

func (m *Monitor) loop() {
	ticker := time.NewTicker(m.interval)
	defer ticker.Stop()

	for {
		select {
		case <-ticker.C:
			m.update(Status{Reachable: m.probe(), Interface: activeInterface()})
		case <-m.stop:
			m.mu.Lock()
			for sub := range m.subscribers {
				close(sub)
				delete(m.subscribers, sub)
			}
			m.mu.Unlock()
			return
		}
	}
}

// update records a new probe result and broadcasts it if it differs from the
// previous one.
func (m *Monitor) update(next Status) {
	m.mu.Lock()
	changed := next != m.status
	m.status = next
	if changed {
		// The sends happen under the lock so a concurrent Unsubscribe or
		// Stop cannot close a channel mid-broadcast. They never block:
		// a full buffer drops the transition, and the latest state stays
		// available through Current.
		for sub := range m.subscribers {
			select {
			case sub <- next:
			default:
			}
		}
	}
	m.mu.Unlock()

	if !changed {
		return
	}
	logging.Info("Netcheck", "Connectivity changed: reachable=%t interface=%s",
		next.Reachable, next.Interface)
}

// dialProbe attempts a TCP connection to the backend host.
func (m *Monitor) dialProbe() bool {
	conn, err := net.DialTimeout("tcp", m.addr, probeTimeout)
	if err != nil {
		return false
	}
	_ = conn.Close()
	return true
}

// activeInterface returns the name of the first up, non-loopback interface
// carrying an address.
func activeInterface() string {
	ifaces, err := net.Interfaces()
	if err != nil {
		return ""
	}
	for _, iface := range ifaces {
		if iface.Flags&net.FlagUp == 0 || iface.Flags&net.FlagLoopback != 0 {
			continue
		}
		addrs, err := iface.Addrs()
		if err != nil || len(addrs) == 0 {
			continue
		}
		return iface.Name
	}
	return ""
}
