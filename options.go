package dictology

import "github.com/viant/tagly/format/text"

// TagName defines default struct tag used for field keys
const TagName = "dict"

type (
	options struct {
		tagName    string
		caseFormat text.CaseFormat
		omitEmpty  bool
	}

	//Option represents struct binding option
	Option func(o *options)

	//Options represents struct binding options
	Options []Option
)

// Apply applies options
func (o Options) Apply(opts *options) {
	for _, opt := range o {
		opt(opts)
	}
}

func newOptions(opts []Option) *options {
	ret := &options{tagName: TagName}
	Options(opts).Apply(ret)
	return ret
}

// WithTagName returns option overriding struct tag name
func WithTagName(name string) Option {
	return func(o *options) {
		o.tagName = name
	}
}

// WithCaseFormat returns option formatting untagged field names into keys
func WithCaseFormat(caseFormat text.CaseFormat) Option {
	return func(o *options) {
		o.caseFormat = caseFormat
	}
}

// WithOmitEmpty returns option skipping zero values on Load
func WithOmitEmpty() Option {
	return func(o *options) {
		o.omitEmpty = true
	}
}
