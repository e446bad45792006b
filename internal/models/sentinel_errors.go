package models

import "errors"

var (
	ErrInvalidJSON     = errors.New("invalid json")
	ErrInvalidShowID   = errors.New("invalid show id")
	ErrInvalidPlayers  = errors.New("invalid player count")
	ErrInvalidStrategy = errors.New("invalid discard strategy")
)
