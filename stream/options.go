package stream

// StreamOption configures Encoder/Decoder behavior.
type StreamOption func(*streamOpts)

type streamOpts struct {
	prefix string
	indent string
	header bool // write an xml declaration first
}

// WithIndent makes the encoder start each element on a new line beginning
// with prefix followed by one copy of indent per nesting level.
func WithIndent(prefix, indent string) StreamOption {
	return func(opts *streamOpts) {
		opts.prefix = prefix
		opts.indent = indent
	}
}

// WithHeader makes the encoder write an xml declaration before the root
// element.
func WithHeader() StreamOption {
	return func(opts *streamOpts) {
		opts.header = true
	}
}
