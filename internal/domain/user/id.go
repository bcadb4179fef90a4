package user

import "strings"

// ParseID resolves an identifier token the way a lenient integer parse would:
// optional leading whitespace, an optional sign, then the leading run of decimal
// digits. Anything after the digits is ignored, so "12abc" resolves to 12.
// Tokens with no leading digits, or that overflow, resolve to 0, which never
// matches a stored user.
func ParseID(token string) int64 {
	s := strings.TrimLeft(token, " \t\n\r\v\f")

	negative := false
	if s != "" && (s[0] == '+' || s[0] == '-') {
		negative = s[0] == '-'
		s = s[1:]
	}

	var id int64
	digits := 0
	for _, c := range []byte(s) {
		if c < '0' || c > '9' {
			break
		}
		if id > (1<<63-1-int64(c-'0'))/10 {
			return 0
		}
		id = id*10 + int64(c-'0')
		digits++
	}

	if digits == 0 {
		return 0
	}
	if negative {
		return -id
	}
	return id
}
