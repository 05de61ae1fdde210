package api

import (
	"crypto/rand"
	"encoding/hex"
	"fmt"
	"io"
	"mime/multipart"
	"os"
	"path/filepath"
	"strings"
	"time"
)

// cleanupLater removes temp files after the response has streamed out.
func (s *server) cleanupLater(paths ...string) {
	go func() {
		time.Sleep(fileCleanupDelay)
		for _, p := range paths {
			os.Remove(p)
		}
	}()
}

func ensureTempDir(tempDir string) error {
	return os.MkdirAll(tempDir, tempDirPermissions)
}

// sanitizeFilename strips path traversal attempts and separators from a
// client-supplied file name.
func sanitizeFilename(filename string) string {
	filename = strings.ReplaceAll(filename, "..", "")
	filename = strings.ReplaceAll(filename, "/", "_")
	filename = strings.ReplaceAll(filename, "\\", "_")
	filename = strings.TrimSpace(filepath.Base(filename))
	if filename == "" || filename == "." {
		filename = "document.pdf"
	}
	return filename
}

// downloadName derives the attachment name for a processed file:
// "doc.pdf" + "stamped" -> "doc_stamped.pdf".
func downloadName(originalName, suffix string) string {
	if originalName == "" {
		return "document_" + suffix + ".pdf"
	}
	base := originalName
	if strings.HasSuffix(strings.ToLower(base), ".pdf") {
		base = base[:len(base)-4]
	}
	return sanitizeFilename(base + "_" + suffix + ".pdf")
}

// generateUniqueID returns a collision-resistant temp file identifier.
func generateUniqueID() string {
	b := make([]byte, 8)
	rand.Read(b)
	return fmt.Sprintf("%d_%s", time.Now().UnixNano(), hex.EncodeToString(b))
}

// validatePDFFile enforces the size cap and checks the %PDF magic. The
// reader is rewound afterwards.
func validatePDFFile(file multipart.File, size, maxSize int64) error {
	if size > maxSize {
		return fmt.Errorf("file size %d exceeds maximum allowed %d bytes", size, maxSize)
	}

	buffer := make([]byte, 4)
	n, err := file.Read(buffer)
	if err != nil && err != io.EOF {
		return fmt.Errorf("failed to read file header: %v", err)
	}
	if n < 4 || string(buffer[:4]) != "%PDF" {
		return fmt.Errorf("invalid PDF file: header does not match")
	}

	if _, err := file.Seek(0, io.SeekStart); err != nil {
		return fmt.Errorf("failed to reset file position: %v", err)
	}
	return nil
}

// truncateError keeps client-facing error strings short while preserving
// the leading detail.
func truncateError(err error) string {
	msg := err.Error()
	if msg == "" {
		return "PDF operation failed"
	}
	if len(msg) > 200 {
		return msg[:200] + "..."
	}
	return msg
}
