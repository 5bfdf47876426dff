// Package repositories implements the persistence layer on top of gorm.
// Sentinel errors let the service layer distinguish storage outcomes
// without inspecting driver errors.
package repositories

import "errors"

// ErrNotFound is returned when a requested row does not exist.
var ErrNotFound = errors.New("not found")

// ErrEventFull is returned by ConfirmWithTicket when the event already
// holds as many CONFIRMED reservations as its capacity allows.
var ErrEventFull = errors.New("event is full")
