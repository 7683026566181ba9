package config

import "errors"

var (
	// ErrUnknownOption indicates an option name that no Config field carries.
	ErrUnknownOption = errors.New("unknown option")

	// ErrInvalidValue indicates an option value of the wrong type.
	ErrInvalidValue = errors.New("invalid option value")

	// ErrOutOfRange indicates an option value outside its permitted range.
	ErrOutOfRange = errors.New("option value out of range")
)
