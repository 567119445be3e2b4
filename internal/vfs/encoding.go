package vfs

import "bytes"

// LineEnding represents the line ending style.
type LineEnding string

const (
	// LineEndingLF is Unix-style line ending (\n).
	LineEndingLF LineEnding = "lf"

	// LineEndingCRLF is Windows-style line ending (\r\n).
	LineEndingCRLF LineEnding = "crlf"

	// LineEndingMixed indicates mixed line endings.
	LineEndingMixed LineEnding = "mixed"
)

var bomUTF8 = []byte{0xEF, 0xBB, 0xBF}

// StripBOM removes a UTF-8 byte order mark from content and reports
// whether one was present.
func StripBOM(content []byte) ([]byte, bool) {
	if bytes.HasPrefix(content, bomUTF8) {
		return content[len(bomUTF8):], true
	}
	return content, false
}

// DetectLineEnding reports the line ending style used by content. Content
// without line breaks is LF.
func DetectLineEnding(content []byte) LineEnding {
	crlf := bytes.Count(content, []byte("\r\n"))
	lf := bytes.Count(content, []byte("\n")) - crlf
	switch {
	case crlf > 0 && lf > 0:
		return LineEndingMixed
	case crlf > 0:
		return LineEndingCRLF
	}
	return LineEndingLF
}

// IsBinary reports whether content looks like binary data: it holds a NUL
// byte within the first 8000 bytes.
func IsBinary(content []byte) bool {
	return bytes.IndexByte(content[:min(len(content), 8000)], 0) >= 0
}
