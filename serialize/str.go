// Package serialize implements the length-prefixed string encoding used to embed structured values
// (group/key/value configurations, composite paths) inside a single opaque string.
//
// A serialized string has the form <prefix><length>:<data>, e.g. "s16:some test string". The length is the
// byte length of data in decimal. Anything after the declared data is ignored by DeserializeStr, which is what
// allows tokens to be concatenated into a stream.
package serialize

import (
	"errors"
	"fmt"
	"math"
	"strconv"
	"strings"
)

// Delimiter separates the length field from the data.
const Delimiter = ':'

// MaxLengthField is the exclusive upper bound for the byte size of the length field.
const MaxLengthField = 64

var (
	// ErrEmpty is returned when there is nothing to decode.
	ErrEmpty = errors.New("input data is empty")

	// ErrNoDelimiter is returned when the length field is not terminated by Delimiter.
	ErrNoDelimiter = errors.New("length delimiter ':' doesn't exist")

	// ErrLengthTooLong is returned when the length field has MaxLengthField or more bytes.
	ErrLengthTooLong = errors.New("too big string length")
)

// PrefixError is returned when a token does not start with the expected prefix character.
type PrefixError struct {
	Want byte
}

func (e *PrefixError) Error() string {
	return fmt.Sprintf("string prefix doesn't equal to '%c'", e.Want)
}

// LengthError is returned when the declared data length exceeds the bytes which are actually available.
type LengthError struct {
	Declared uint64
	Actual   int
}

func (e *LengthError) Error() string {
	return fmt.Sprintf("Specified data length (%d) is greater than actual data length (%d)", e.Declared, e.Actual)
}

// Str encodes data as <prefix><len(data)>:<data>.
func Str(prefix byte, data string) string {
	var sb strings.Builder
	sb.Grow(len(data) + 8)
	sb.WriteByte(prefix)
	sb.WriteString(strconv.Itoa(len(data)))
	sb.WriteByte(Delimiter)
	sb.WriteString(data)
	return sb.String()
}

// DeserializeStr decodes the first token of data which must start with prefix. Bytes after the declared
// length are ignored.
func DeserializeStr(prefix byte, data string) (string, error) {
	n, start, err := header(prefix, data)
	if err != nil {
		return "", err
	}
	return data[start : start+n], nil
}

// header validates a token and returns the data length and the offset at which the data starts.
func header(prefix byte, data string) (int, int, error) {
	if data == "" {
		return 0, 0, ErrEmpty
	}
	if data[0] != prefix {
		return 0, 0, &PrefixError{Want: prefix}
	}

	semi := strings.IndexByte(data[1:], Delimiter)
	if semi < 0 {
		return 0, 0, ErrNoDelimiter
	}
	if semi >= MaxLengthField {
		return 0, 0, ErrLengthTooLong
	}

	declared := parseLength(data[1 : 1+semi])
	start := semi + 2
	actual := len(data) - start
	if declared > uint64(actual) {
		return 0, 0, &LengthError{Declared: declared, Actual: actual}
	}
	return int(declared), start, nil
}

// parseLength reads the leading decimal digits of field. Non numeric text counts as zero, negative or
// overflowing values saturate so that they are always rejected as too long.
func parseLength(field string) uint64 {
	field = strings.TrimLeft(field, " \t\n\v\f\r")
	negative := false
	if field != "" && (field[0] == '-' || field[0] == '+') {
		negative = field[0] == '-'
		field = field[1:]
	}
	end := 0
	for end < len(field) && field[end] >= '0' && field[end] <= '9' {
		end++
	}
	if end == 0 {
		return 0
	}
	v, err := strconv.ParseUint(field[:end], 10, 64)
	if err != nil || (negative && v != 0) {
		return math.MaxUint64
	}
	return v
}
