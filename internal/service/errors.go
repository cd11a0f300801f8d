package service

import "errors"

var (
	ErrNotFound     = errors.New("not found")
	ErrInvalid      = errors.New("invalid")
	ErrCannotDelete = errors.New("cannot delete built-in profile")
)
