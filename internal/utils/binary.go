package utils

import "unicode/utf8"

// IsBinary reports whether the provided byte slice appears to contain binary data.
// Content is binary when it is not valid UTF-8 or when it embeds NUL bytes.
func IsBinary(data []byte) bool {
	if len(data) == 0 {
		return false
	}
	if !utf8.Valid(data) {
		return true
	}
	for _, byteValue := range data {
		if byteValue == 0 {
			return true
		}
	}
	return false
}
