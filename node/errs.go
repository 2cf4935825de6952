package node

import "errors"

var (
	ErrBadLocation   = errors.New("bad location")
	ErrNoConstructor = errors.New("no constructor")
)
