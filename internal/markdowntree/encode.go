package markdowntree

import "strings"

const (
	upperHexDigits = "0123456789ABCDEF"
	// uriComponentMarks are the punctuation characters encodeURIComponent leaves untouched.
	uriComponentMarks = "-_.!~*'()"
	// uriReservedCharacters are additionally kept by encodeURI.
	uriReservedCharacters = ";,/?:@&=+$#"
)

// URIComponentEncode percent-encodes value with encodeURIComponent semantics:
// only ASCII letters, digits and -_.!~*'() are kept, every other byte of the
// UTF-8 encoding becomes %XX.
func URIComponentEncode(value string) string {
	return percentEncode(value, uriComponentMarks)
}

// URIEncode percent-encodes value with encodeURI semantics, which additionally
// keeps the URI reserved characters including the path separator.
func URIEncode(value string) string {
	return percentEncode(value, uriComponentMarks+uriReservedCharacters)
}

func percentEncode(value string, keptCharacters string) string {
	var builder strings.Builder
	builder.Grow(len(value))
	for index := 0; index < len(value); index++ {
		character := value[index]
		if isASCIIAlphanumeric(character) || strings.IndexByte(keptCharacters, character) >= 0 {
			builder.WriteByte(character)
			continue
		}
		builder.WriteByte('%')
		builder.WriteByte(upperHexDigits[character>>4])
		builder.WriteByte(upperHexDigits[character&0x0F])
	}
	return builder.String()
}

func isASCIIAlphanumeric(character byte) bool {
	return (character >= 'a' && character <= 'z') ||
		(character >= 'A' && character <= 'Z') ||
		(character >= '0' && character <= '9')
}
