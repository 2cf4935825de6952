package xmlconv

import "time"

const (
	OpEncode = "encode"
	OpDecode = "decode"
)

// Observer is told about every finished conversion: the operation, the
// number of nodes written or read, the time taken and the resulting error.
type Observer interface {
	Observe(op string, nodes int, d time.Duration, err error)
}

// ObserverFunc adapts a function to Observer.
type ObserverFunc func(op string, nodes int, d time.Duration, err error)

func (f ObserverFunc) Observe(op string, nodes int, d time.Duration, err error) {
	f(op, nodes, d, err)
}
