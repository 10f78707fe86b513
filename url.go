package vfs

import (
	"strconv"
	"strings"
)

const urlDelimiter = "://"

// parseCredentials fills the authority fields of el from text of the form [user[:password]@]host[:port] or
// [user[:password]@][ipv6]:port. It accepts any input, fields which cannot be recognized stay empty.
func parseCredentials(el *Element, text string) {
	el.Port = 0
	rest := text

	if at := strings.LastIndexByte(text, '@'); at >= 0 {
		userInfo := text[:at]
		if colon := strings.IndexByte(userInfo, ':'); colon >= 0 {
			el.Password = userInfo[colon+1:]
			userInfo = userInfo[:colon]
		}
		if userInfo != "" {
			el.User = userInfo
		}
		rest = text[at+1:]
	}

	portText, hasPort := "", false
	if strings.HasPrefix(rest, "[") {
		rest = rest[1:]
		if end := strings.IndexByte(rest, ']'); end >= 0 {
			// one byte after the bracket is the port separator
			if end+2 <= len(rest) {
				portText, hasPort = rest[end+2:], true
			}
			rest = rest[:end]
		}
	} else if colon := strings.IndexByte(rest, ':'); colon >= 0 {
		portText, hasPort = rest[colon+1:], true
		rest = rest[:colon]
	}

	if hasPort {
		el.Port = parsePort(portText)
	}
	el.Host = rest
}

// parsePort reads a decimal port in the range 1..65535. For non-numeric text the legacy single letter
// notation applies: the last 'C' or 'r' yields 1 or 2.
func parsePort(text string) int {
	if n, ok := leadingInt(text); ok {
		if n <= 0 || n >= 65536 {
			return 0
		}
		return n
	}
	port := 0
	for i := 0; i < len(text); i++ {
		switch text[i] {
		case 'C':
			port = 1
		case 'r':
			port = 2
		}
	}
	return port
}

// leadingInt parses an optionally signed integer at the start of text after leading white space.
func leadingInt(text string) (int, bool) {
	text = strings.TrimLeft(text, " \t\n\v\f\r")
	end := 0
	if end < len(text) && (text[end] == '-' || text[end] == '+') {
		end++
	}
	digits := end
	for end < len(text) && text[end] >= '0' && text[end] <= '9' {
		end++
	}
	if end == digits {
		return 0, false
	}
	n, err := strconv.Atoi(text[:end])
	if err != nil {
		// out of range is never a valid port
		return 0, true
	}
	return n, true
}
