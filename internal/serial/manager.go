package serial

import (
	"errors"
	"sync"
	"sync/atomic"
	"time"

	"github.com/Shoaibashk/serialport/serialerr"
	"github.com/google/uuid"
	"go.bug.st/serial"
)

// Opener opens a serial device. serial.Open satisfies it.
type Opener func(portName string, mode *serial.Mode) (serial.Port, error)

// Session represents an active serial port session
type Session struct {
	ID         string
	PortName   string
	ClientID   string
	Exclusive  bool
	Config     PortConfig
	Statistics PortStatistics
	port       serial.Port
	mu         sync.Mutex
	closed     atomic.Bool
}

// IsClosed returns whether the session has been closed
func (s *Session) IsClosed() bool {
	return s.closed.Load()
}

// recordError counts a failed operation; callers hold s.mu.
func (s *Session) recordError(err *serialerr.Error) *serialerr.Error {
	atomic.AddUint64(&s.Statistics.Errors, 1)
	s.Statistics.LastErrorKind = err.Kind
	return err
}

// Manager handles serial port sessions and operations. Every error it
// returns is a *serialerr.Error.
type Manager struct {
	mu                sync.RWMutex
	sessions          map[string][]*Session // key: port name
	sessionsByID      map[string]*Session // key: session ID
	allowSharedAccess bool
	defaultConfig     PortConfig
	open              Opener
}

// NewManager creates a new serial port manager
func NewManager(allowSharedAccess bool, defaultConfig PortConfig) *Manager {
	return NewManagerWithOpener(allowSharedAccess, defaultConfig, serial.Open)
}

// NewManagerWithOpener creates a manager that opens devices through open.
func NewManagerWithOpener(allowSharedAccess bool, defaultConfig PortConfig, open Opener) *Manager {
	return &Manager{
		sessions:          make(map[string][]*Session),
		sessionsByID:      make(map[string]*Session),
		allowSharedAccess: allowSharedAccess,
		defaultConfig:     defaultConfig,
		open:              open,
	}
}

// OpenPort opens a serial port and creates a new session
func (m *Manager) OpenPort(portName string, config PortConfig, clientID string, exclusive bool) (*Session, error) {
	if portName == "" {
		return nil, serialerr.New(serialerr.InvalidInput, "port name is required", nil)
	}

	if err := config.Validate(); err != nil {
		return nil, err
	}

	m.mu.Lock()
	defer m.mu.Unlock()

	for _, existing := range m.sessions[portName] {
		if existing.Exclusive || exclusive || !m.allowSharedAccess {
			return nil, fail(serialerr.NoDevice, ErrPortLocked, "%s held by %s", portName, existing.ClientID)
		}
	}

	port, err := m.open(portName, config.ToSerialMode())
	if err != nil {
		return nil, normalize(err)
	}

	if config.ReadTimeoutMs > 0 {
		if err := port.SetReadTimeout(time.Duration(config.ReadTimeoutMs) * time.Millisecond); err != nil {
			port.Close()
			return nil, normalize(err)
		}
	}

	now := time.Now()
	session := &Session{
		ID:        uuid.New().String(),
		PortName:  portName,
		ClientID:  clientID,
		Exclusive: exclusive,
		Config:    config,
		Statistics: PortStatistics{
			OpenedAt:     now,
			LastActivity: now,
		},
		port: port,
	}

	m.sessions[portName] = append(m.sessions[portName], session)
	m.sessionsByID[session.ID] = session

	return session, nil
}

// ClosePort closes a serial port session
func (m *Manager) ClosePort(portName string, sessionID string) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	session, err := m.lookupLocked(portName, sessionID)
	if err != nil {
		return err
	}

	return m.closeSessionLocked(session)
}

// lookupLocked finds the session sessionID holds on portName (must be
// called with lock held)
func (m *Manager) lookupLocked(portName string, sessionID string) (*Session, error) {
	held := m.sessions[portName]
	if len(held) == 0 {
		return nil, fail(serialerr.IoClosed, ErrPortNotOpen, "%s", portName)
	}

	for _, session := range held {
		if session.ID == sessionID {
			return session, nil
		}
	}
	return nil, fail(serialerr.InvalidInput, ErrInvalidSession, "%s does not own %s", sessionID, portName)
}

// closeSessionLocked closes a session (must be called with lock held)
func (m *Manager) closeSessionLocked(session *Session) error {
	session.closed.Store(true)

	held := m.sessions[session.PortName]
	for i, s := range held {
		if s == session {
			held = append(held[:i:i], held[i+1:]...)
			break
		}
	}
	if len(held) == 0 {
		delete(m.sessions, session.PortName)
	} else {
		m.sessions[session.PortName] = held
	}
	delete(m.sessionsByID, session.ID)

	if session.port == nil {
		return nil
	}
	if err := session.port.Close(); err != nil {
		return normalize(err)
	}
	return nil
}

// GetSession returns the oldest session holding a port, or nil
func (m *Manager) GetSession(portName string) *Session {
	m.mu.RLock()
	defer m.mu.RUnlock()
	if held := m.sessions[portName]; len(held) > 0 {
		return held[0]
	}
	return nil
}

// Sessions returns every session holding a port
func (m *Manager) Sessions(portName string) []*Session {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return append([]*Session(nil), m.sessions[portName]...)
}

// GetSessionByID returns a session by its ID
func (m *Manager) GetSessionByID(sessionID string) *Session {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return m.sessionsByID[sessionID]
}

// ValidateSession checks if a session is valid
func (m *Manager) ValidateSession(portName string, sessionID string) (*Session, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	session, err := m.lookupLocked(portName, sessionID)
	if err != nil {
		return nil, err
	}
	if session.closed.Load() {
		return nil, fail(serialerr.IoClosed, ErrPortNotOpen, "%s", portName)
	}

	return session, nil
}

// Write writes data to a port
func (m *Manager) Write(portName string, sessionID string, data []byte) (int, error) {
	session, err := m.ValidateSession(portName, sessionID)
	if err != nil {
		return 0, err
	}

	session.mu.Lock()
	defer session.mu.Unlock()

	n, err := session.port.Write(data)
	if err != nil {
		return n, session.recordError(normalize(err))
	}

	atomic.AddUint64(&session.Statistics.BytesSent, uint64(n))
	session.Statistics.LastActivity = time.Now()

	return n, nil
}

// Read reads up to maxBytes from a port. A read that times out without
// data returns an empty slice and no error.
func (m *Manager) Read(portName string, sessionID string, maxBytes int) ([]byte, error) {
	if maxBytes <= 0 {
		return nil, serialerr.Newf(serialerr.InvalidInput, "max bytes must be positive, got %d", maxBytes)
	}

	session, err := m.ValidateSession(portName, sessionID)
	if err != nil {
		return nil, err
	}

	session.mu.Lock()
	defer session.mu.Unlock()

	buffer := make([]byte, maxBytes)
	n, err := session.port.Read(buffer)
	if err != nil {
		return nil, session.recordError(normalize(err))
	}

	atomic.AddUint64(&session.Statistics.BytesReceived, uint64(n))
	session.Statistics.LastActivity = time.Now()

	return buffer[:n], nil
}

// Configure updates port configuration
func (m *Manager) Configure(portName string, sessionID string, config PortConfig) error {
	session, err := m.ValidateSession(portName, sessionID)
	if err != nil {
		return err
	}

	if err := config.Validate(); err != nil {
		return err
	}

	session.mu.Lock()
	defer session.mu.Unlock()

	if err := session.port.SetMode(config.ToSerialMode()); err != nil {
		return session.recordError(normalize(err))
	}

	if config.ReadTimeoutMs > 0 {
		if err := session.port.SetReadTimeout(time.Duration(config.ReadTimeoutMs) * time.Millisecond); err != nil {
			return session.recordError(normalize(err))
		}
	}

	session.Config = config
	return nil
}

// Flush discards both input and output buffers
func (m *Manager) Flush(portName string, sessionID string) error {
	session, err := m.ValidateSession(portName, sessionID)
	if err != nil {
		return err
	}

	session.mu.Lock()
	defer session.mu.Unlock()

	if err := session.port.ResetInputBuffer(); err != nil {
		return session.recordError(normalize(err))
	}

	if err := session.port.ResetOutputBuffer(); err != nil {
		return session.recordError(normalize(err))
	}

	return nil
}

// Drain waits until all written data has been transmitted
func (m *Manager) Drain(portName string, sessionID string) error {
	session, err := m.ValidateSession(portName, sessionID)
	if err != nil {
		return err
	}

	session.mu.Lock()
	defer session.mu.Unlock()

	if err := session.port.Drain(); err != nil {
		return session.recordError(normalize(err))
	}
	return nil
}

// ListOpenPorts returns all open port names
func (m *Manager) ListOpenPorts() []string {
	m.mu.RLock()
	defer m.mu.RUnlock()

	ports := make([]string, 0, len(m.sessions))
	for portName := range m.sessions {
		ports = append(ports, portName)
	}
	return ports
}

// CloseAll closes every session, shared ones included, and returns the
// close failures joined.
func (m *Manager) CloseAll() error {
	m.mu.Lock()
	defer m.mu.Unlock()

	var errs []error
	for _, session := range m.sessionsByID {
		if err := m.closeSessionLocked(session); err != nil {
			errs = append(errs, err)
		}
	}
	return errors.Join(errs...)
}

// GetDefaultConfig returns the manager's default port configuration
func (m *Manager) GetDefaultConfig() PortConfig {
	return m.defaultConfig
}
