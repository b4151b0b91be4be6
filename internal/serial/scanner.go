// Package serial opens, enumerates and talks to serial ports on top of
// go.bug.st/serial. Failures leave the package as *serialerr.Error.
package serial

import (
	"regexp"
	"runtime"
	"sort"
	"sync"

	"github.com/Shoaibashk/serialport/serialerr"
	"go.bug.st/serial/enumerator"
)

// PortType represents the type of serial port
type PortType int

const (
	PortTypeUnknown PortType = iota
	PortTypeUSB
	PortTypeNative
	PortTypeBluetooth
	PortTypeVirtual
)

// MarshalText renders the port type by name.
func (p PortType) MarshalText() ([]byte, error) {
	return []byte(p.String()), nil
}

// String returns the string representation of PortType
func (p PortType) String() string {
	switch p {
	case PortTypeUSB:
		return "USB"
	case PortTypeNative:
		return "Native"
	case PortTypeBluetooth:
		return "Bluetooth"
	case PortTypeVirtual:
		return "Virtual"
	default:
		return "Unknown"
	}
}

// PortInfo contains information about a serial port
type PortInfo struct {
	Name         string   `json:"name"`
	Description  string   `json:"description"`
	HardwareID   string   `json:"hardware_id"`
	Manufacturer string   `json:"manufacturer"`
	Product      string   `json:"product"`
	SerialNumber string   `json:"serial_number"`
	VID          string   `json:"vid"`
	PID          string   `json:"pid"`
	PortType     PortType `json:"port_type"`
	IsOpen       bool     `json:"is_open"`
	LockedBy     string   `json:"locked_by"`
}

var (
	bluetoothWindows = regexp.MustCompile(`(?i)bluetooth|bth`)
	bluetoothLinux   = regexp.MustCompile(`/dev/rfcomm`)
	bluetoothDarwin  = regexp.MustCompile(`/dev/.*Bluetooth`)
	virtualLinux     = regexp.MustCompile(`/dev/pts/|/dev/pty`)
)

// Lister returns the detailed list of serial devices.
// enumerator.GetDetailedPortsList satisfies it.
type Lister func() ([]*enumerator.PortDetails, error)

// Scanner handles serial port discovery and enumeration
type Scanner struct {
	mu              sync.RWMutex
	excludePatterns []*regexp.Regexp
	cachedPorts     []PortInfo
	manager         *Manager
	list            Lister
}

// NewScanner creates a new port scanner
func NewScanner(excludePatterns []string, manager *Manager) (*Scanner, error) {
	return NewScannerWithLister(excludePatterns, manager, enumerator.GetDetailedPortsList)
}

// NewScannerWithLister creates a scanner that enumerates through list.
func NewScannerWithLister(excludePatterns []string, manager *Manager, list Lister) (*Scanner, error) {
	s := &Scanner{
		manager: manager,
		list:    list,
	}

	for _, pattern := range excludePatterns {
		re, err := regexp.Compile(pattern)
		if err != nil {
			return nil, serialerr.New(serialerr.InvalidInput, "invalid exclude pattern "+pattern+": "+err.Error(), err)
		}
		s.excludePatterns = append(s.excludePatterns, re)
	}

	return s, nil
}

// Scan discovers all available serial ports
func (s *Scanner) Scan() ([]PortInfo, error) {
	ports, err := s.list()
	if err != nil {
		return nil, enumerationError(err)
	}

	var result []PortInfo

	for _, port := range ports {
		// Check if port should be excluded
		if s.isExcluded(port.Name) {
			continue
		}

		info := PortInfo{
			Name:         port.Name,
			Product:      port.Product,
			SerialNumber: port.SerialNumber,
			VID:          port.VID,
			PID:          port.PID,
			PortType:     s.detectPortType(port),
		}

		// Build hardware ID
		if port.VID != "" && port.PID != "" {
			info.HardwareID = "USB\\VID_" + port.VID + "&PID_" + port.PID
		}

		// Set description based on available info
		info.Description = s.buildDescription(port)

		// Check if port is currently open/locked
		if s.manager != nil {
			if session := s.manager.GetSession(port.Name); session != nil {
				info.IsOpen = true
				info.LockedBy = session.ClientID
			}
		}

		result = append(result, info)
	}

	// Sort ports by name
	sort.Slice(result, func(i, j int) bool {
		return result[i].Name < result[j].Name
	})

	// Cache the results
	s.mu.Lock()
	s.cachedPorts = result
	s.mu.Unlock()

	return result, nil
}

// GetCached returns the last cached port list
func (s *Scanner) GetCached() []PortInfo {
	s.mu.RLock()
	defer s.mu.RUnlock()

	// Return a copy to prevent data races
	if s.cachedPorts == nil {
		return nil
	}
	result := make([]PortInfo, len(s.cachedPorts))
	copy(result, s.cachedPorts)
	return result
}

// GetPort returns information about a specific port
func (s *Scanner) GetPort(name string) (*PortInfo, error) {
	ports, err := s.Scan()
	if err != nil {
		return nil, err
	}

	for _, port := range ports {
		if port.Name == name {
			return &port, nil
		}
	}

	return nil, fail(serialerr.NoDevice, ErrPortNotFound, "%s", name)
}

// isExcluded checks if a port should be excluded based on patterns
func (s *Scanner) isExcluded(name string) bool {
	for _, pattern := range s.excludePatterns {
		if pattern.MatchString(name) {
			return true
		}
	}
	return false
}

// detectPortType determines the type of port
func (s *Scanner) detectPortType(port *enumerator.PortDetails) PortType {
	if port.IsUSB {
		return PortTypeUSB
	}

	// Check for Bluetooth ports
	switch runtime.GOOS {
	case "windows":
		// Windows Bluetooth COM ports often have specific names
		if bluetoothWindows.MatchString(port.Name) {
			return PortTypeBluetooth
		}
	case "linux":
		if bluetoothLinux.MatchString(port.Name) {
			return PortTypeBluetooth
		}
		if virtualLinux.MatchString(port.Name) {
			return PortTypeVirtual
		}
	case "darwin":
		if bluetoothDarwin.MatchString(port.Name) {
			return PortTypeBluetooth
		}
	}

	return PortTypeNative
}

// buildDescription creates a human-readable description for the port
func (s *Scanner) buildDescription(port *enumerator.PortDetails) string {
	if port.Product != "" {
		return port.Product
	}
	if port.IsUSB {
		return "USB Serial Device"
	}
	return "Serial Port"
}
