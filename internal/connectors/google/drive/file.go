package drive

import (
	"fmt"
	"io"
	"strings"

	"google.golang.org/api/drive/v3"

	"github.com/custodia-labs/gconnect/internal/core/domain"
)

// ExportMimeText is the export format for Google Docs.
const ExportMimeText = "text/plain"

// MaxExportSize is the maximum size for exported content (10MiB).
const MaxExportSize = 10 * 1024 * 1024

// fileFields are the metadata fields requested for every file.
const fileFields = "id, name, mimeType, modifiedTime"

// FileToRaw converts a Drive file.
func FileToRaw(file *drive.File) domain.RawFile {
	return domain.RawFile{
		ID:           file.Id,
		Name:         file.Name,
		MimeType:     file.MimeType,
		ModifiedTime: file.ModifiedTime,
	}
}

// isExportable reports whether the file can be exported as plain text.
func isExportable(mimeType string) bool {
	return mimeType == domain.MimeTypeGoogleDoc
}

// readText reads at most MaxExportSize bytes of r as UTF-8. Invalid
// sequences become U+FFFD.
func readText(r io.Reader) (string, error) {
	data, err := io.ReadAll(io.LimitReader(r, MaxExportSize))
	if err != nil {
		return "", fmt.Errorf("read export: %w", err)
	}
	return strings.ToValidUTF8(string(data), "\uFFFD"), nil
}
