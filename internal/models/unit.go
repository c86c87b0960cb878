package models

import "strings"

// Unit is an operating unit (branch) of the fleet, managed on the backend.
type Unit struct {
	ID     int64  `json:"id"`
	Code   string `json:"code"`
	Name   string `json:"name"`
	Active bool   `json:"active"`
	Notes  string `json:"notes"`
}

// Trimmed returns u with whitespace stripped from its text fields.
func (u Unit) Trimmed() Unit {
	u.Code = strings.TrimSpace(u.Code)
	u.Name = strings.TrimSpace(u.Name)
	u.Notes = strings.TrimSpace(u.Notes)
	return u
}

// Valid reports whether code and name are set. Notes are optional.
func (u Unit) Valid() bool {
	return strings.TrimSpace(u.Code) != "" && strings.TrimSpace(u.Name) != ""
}
