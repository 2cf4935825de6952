package policy

import "errors"

var ErrInvalid = errors.New("invalid policy")
