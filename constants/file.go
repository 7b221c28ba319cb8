package constants

import "strings"

// AllowedExtensions holds the default file extensions accepted by document ingestion.
// OCR formats stay outside this tool; only text-bearing sources are read directly.
var AllowedExtensions = map[string]struct{}{
	"txt": {},
	"csv": {},
	"pdf": {},
}

// NormalizeExt lowercases and trims the dot from a file extension.
func NormalizeExt(ext string) string {
	return strings.ToLower(strings.TrimPrefix(ext, "."))
}
