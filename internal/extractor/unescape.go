package extractor

import (
	"fmt"
	"strconv"
	"strings"
	"unicode/utf8"
)

const (
	errorTruncatedEscapeFormat = "truncated escape at end of text: %w"
	errorUnknownEscapeFormat   = "unknown escape '\\%c': %w"
	errorInvalidHexFormat      = "invalid \\%c escape '%s': %w"
	errorInvalidRuneFormat     = "escape '%s' is not a valid rune: %w"
)

// decodeEscapes interprets C-style backslash escapes in encoded text.
// Text containing no backslashes is returned byte-identical, which keeps the
// unconditional unescape step harmless for already-literal answers. Decoding
// is best effort: a truncated, unknown, or out-of-range sequence yields
// ErrMalformedEscape instead of silently corrupting the answer.
func decodeEscapes(encoded string) (string, error) {
	if !strings.ContainsRune(encoded, '\\') {
		return encoded, nil
	}

	var decoded strings.Builder
	decoded.Grow(len(encoded))
	index := 0
	for index < len(encoded) {
		currentByte := encoded[index]
		if currentByte != '\\' {
			decoded.WriteByte(currentByte)
			index++
			continue
		}
		if index+1 >= len(encoded) {
			return "", fmt.Errorf(errorTruncatedEscapeFormat, ErrMalformedEscape)
		}

		escapeByte := encoded[index+1]
		switch escapeByte {
		case 'n':
			decoded.WriteByte('\n')
			index += 2
		case 't':
			decoded.WriteByte('\t')
			index += 2
		case 'r':
			decoded.WriteByte('\r')
			index += 2
		case 'a':
			decoded.WriteByte('\a')
			index += 2
		case 'b':
			decoded.WriteByte('\b')
			index += 2
		case 'f':
			decoded.WriteByte('\f')
			index += 2
		case 'v':
			decoded.WriteByte('\v')
			index += 2
		case '\\':
			decoded.WriteByte('\\')
			index += 2
		case '\'':
			decoded.WriteByte('\'')
			index += 2
		case '"':
			decoded.WriteByte('"')
			index += 2
		case 'x':
			value, hexError := decodeHexDigits(encoded, index+2, 2, escapeByte)
			if hexError != nil {
				return "", hexError
			}
			decoded.WriteByte(byte(value))
			index += 4
		case 'u':
			value, hexError := decodeHexDigits(encoded, index+2, 4, escapeByte)
			if hexError != nil {
				return "", hexError
			}
			if !utf8.ValidRune(rune(value)) {
				return "", fmt.Errorf(errorInvalidRuneFormat, encoded[index:index+6], ErrMalformedEscape)
			}
			decoded.WriteRune(rune(value))
			index += 6
		case 'U':
			value, hexError := decodeHexDigits(encoded, index+2, 8, escapeByte)
			if hexError != nil {
				return "", hexError
			}
			if !utf8.ValidRune(rune(value)) {
				return "", fmt.Errorf(errorInvalidRuneFormat, encoded[index:index+10], ErrMalformedEscape)
			}
			decoded.WriteRune(rune(value))
			index += 10
		case '0', '1', '2', '3', '4', '5', '6', '7':
			value, digitCount := decodeOctalDigits(encoded, index+1)
			decoded.WriteByte(byte(value))
			index += 1 + digitCount
		default:
			return "", fmt.Errorf(errorUnknownEscapeFormat, escapeByte, ErrMalformedEscape)
		}
	}
	return decoded.String(), nil
}

// decodeHexDigits parses exactly digitCount hex digits starting at offset.
func decodeHexDigits(encoded string, offset int, digitCount int, escapeByte byte) (uint64, error) {
	if offset+digitCount > len(encoded) {
		return 0, fmt.Errorf(errorTruncatedEscapeFormat, ErrMalformedEscape)
	}
	digits := encoded[offset : offset+digitCount]
	value, parseError := strconv.ParseUint(digits, 16, 32)
	if parseError != nil {
		return 0, fmt.Errorf(errorInvalidHexFormat, escapeByte, digits, ErrMalformedEscape)
	}
	return value, nil
}

// decodeOctalDigits consumes up to three octal digits starting at offset,
// capped at one byte the way protobuf text serialization emits them.
func decodeOctalDigits(encoded string, offset int) (value int, digitCount int) {
	for digitCount < 3 && offset+digitCount < len(encoded) {
		digit := encoded[offset+digitCount]
		if digit < '0' || digit > '7' {
			break
		}
		candidate := value*8 + int(digit-'0')
		if candidate > 0xFF {
			break
		}
		value = candidate
		digitCount++
	}
	return value, digitCount
}
