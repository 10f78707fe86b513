package serialize

import (
	"fmt"
	"strings"

	"gopkg.in/ini.v1"
)

// Token prefixes of a serialized configuration.
const (
	GroupPrefix = 'g'
	ParamPrefix = 'p'
	ValuePrefix = 'v'
)

// ParseError annotates a failure of ParseConfig with the 1-based byte offset of the token which could not be
// decoded.
type ParseError struct {
	Offset int
	Err    error
}

func (e *ParseError) Error() string {
	return fmt.Sprintf("deserialize config at %d: %v", e.Offset, e.Err)
}

func (e *ParseError) Unwrap() error {
	return e.Err
}

// Config encodes every section of cfg as a group token followed by a param and a value token per key, all in
// insertion order. The implicit default section is only written if it carries keys.
func Config(cfg *ini.File) (string, error) {
	var sb strings.Builder
	for _, sec := range cfg.Sections() {
		keys := sec.Keys()
		if sec.Name() == ini.DefaultSection && len(keys) == 0 {
			continue
		}
		sb.WriteString(Str(GroupPrefix, sec.Name()))
		for _, key := range keys {
			sb.WriteString(Str(ParamPrefix, key.Name()))
			sb.WriteString(Str(ValuePrefix, key.Value()))
		}
	}
	return sb.String(), nil
}

type scanState int

const (
	waitGroup scanState = iota
	waitParam
	waitValue
)

// ParseConfig decodes a stream produced by Config. A param token where a group is expected continues the
// current group. Any malformed token fails the whole decode with a *ParseError.
func ParseConfig(data string) (*ini.File, error) {
	cfg := ini.Empty()

	var group, param string
	haveGroup := false
	state := waitGroup
	pos := 0
	rest := data

	for {
		if state == waitGroup && haveGroup && rest != "" && rest[0] == ParamPrefix {
			state = waitParam
		}

		var prefix byte
		switch state {
		case waitGroup:
			prefix = GroupPrefix
		case waitParam:
			prefix = ParamPrefix
		default:
			prefix = ValuePrefix
		}

		n, start, err := header(prefix, rest)
		if err != nil {
			return nil, &ParseError{Offset: pos + 1, Err: err}
		}
		token := rest[start : start+n]

		switch state {
		case waitGroup:
			group, haveGroup = token, true
			state = waitParam
		case waitParam:
			param = token
			state = waitValue
		case waitValue:
			sec := cfg.Section(group)
			if _, err := sec.NewKey(param, token); err != nil {
				return nil, &ParseError{Offset: pos + 1, Err: err}
			}
			state = waitGroup
		}

		advance := start + n
		if advance >= len(rest) {
			return cfg, nil
		}
		rest = rest[advance:]
		pos += advance
	}
}
