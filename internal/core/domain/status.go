package domain

import "strings"

// Status is the activation flag carried by every administrable record.
type Status string

const (
	StatusActive   Status = "ACTIVO"
	StatusInactive Status = "INACTIVO"
)

// ParseStatus normalises a status string. Empty input defaults to active.
func ParseStatus(s string) (Status, bool) {
	switch strings.ToUpper(strings.TrimSpace(s)) {
	case "", string(StatusActive):
		return StatusActive, true
	case string(StatusInactive):
		return StatusInactive, true
	}
	return "", false
}

func (s Status) Active() bool { return s == StatusActive }
