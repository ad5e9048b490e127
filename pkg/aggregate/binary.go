package aggregate

import (
	"bytes"
	"path"
	"strings"
	"unicode/utf8"
)

// sniffLen is how much of a file is checked for NUL bytes.
const sniffLen = 8000

// binaryExtensions lists extensions skipped without reading the file.
var binaryExtensions = map[string]bool{
	".png": true, ".jpg": true, ".jpeg": true, ".gif": true, ".bmp": true, ".ico": true, ".webp": true,
	".pdf": true, ".zip": true, ".gz": true, ".tgz": true, ".bz2": true, ".xz": true, ".7z": true, ".rar": true, ".tar": true,
	".exe": true, ".dll": true, ".so": true, ".dylib": true, ".a": true, ".o": true, ".class": true, ".jar": true, ".wasm": true,
	".woff": true, ".woff2": true, ".ttf": true, ".otf": true, ".eot": true,
	".mp3": true, ".mp4": true, ".mov": true, ".avi": true, ".wav": true, ".flac": true, ".ogg": true,
	".db": true, ".sqlite": true, ".pyc": true,
}

// hasBinaryExtension checks the extension against binaryExtensions.
func hasBinaryExtension(rel string) bool {
	return binaryExtensions[strings.ToLower(path.Ext(rel))]
}

// isBinaryContent reports NUL bytes near the start or invalid UTF-8 anywhere.
func isBinaryContent(data []byte) bool {
	head := data
	if len(head) > sniffLen {
		head = head[:sniffLen]
	}
	if bytes.IndexByte(head, 0) >= 0 {
		return true
	}
	return !utf8.Valid(data)
}
