package parse

import "github.com/signadot/tomledit/format"

type parseOpts struct {
	format format.Format
}

type ParseOption func(*parseOpts)

func ParseTOML() ParseOption {
	return ParseFormat(format.TOMLFormat)
}
func ParseJSON() ParseOption {
	return ParseFormat(format.JSONFormat)
}
func ParseYAML() ParseOption {
	return ParseFormat(format.YAMLFormat)
}
func ParseFormat(f format.Format) ParseOption {
	return func(o *parseOpts) { o.format = f }
}
