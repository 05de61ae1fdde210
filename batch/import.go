package batch

import (
	"errors"
	"io/fs"
	"log/slog"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"github.com/pagestamp/pagestamp/model"
	"github.com/pagestamp/pagestamp/reader"
)

// CollectPDFs flattens a mix of file and directory paths into a list of
// PDF file paths. Directories are walked recursively; hidden files are
// skipped. The result preserves the argument order and is sorted within
// each directory.
func CollectPDFs(paths []string) []string {
	var out []string
	for _, p := range paths {
		info, err := os.Stat(p)
		if err != nil {
			continue
		}
		if !info.IsDir() {
			if isPDF(p) {
				out = append(out, p)
			}
			continue
		}

		var found []string
		filepath.WalkDir(p, func(path string, d fs.DirEntry, err error) error {
			if err != nil || d.IsDir() {
				return nil
			}
			if strings.HasPrefix(d.Name(), ".") {
				return nil
			}
			if isPDF(path) {
				found = append(found, path)
			}
			return nil
		})
		sort.Strings(found)
		out = append(out, found...)
	}
	return out
}

func isPDF(path string) bool {
	return strings.EqualFold(filepath.Ext(path), ".pdf")
}

// ImportFiles builds batch items for the given file/directory paths:
// size, page count and encryption status are probed up front, and the
// header text defaults to the file name. Files that fail probing for any
// reason other than a password are dropped with a log entry.
func ImportFiles(paths []string, log *slog.Logger) []model.FileItem {
	if log == nil {
		log = slog.Default()
	}

	var items []model.FileItem
	for _, path := range CollectPDFs(paths) {
		item := model.FileItem{
			Path:       path,
			Name:       filepath.Base(path),
			HeaderText: filepath.Base(path),
		}

		if info, err := os.Stat(path); err == nil {
			item.SizeMB = float64(info.Size()) / (1024 * 1024)
		}

		doc, err := reader.Open(path)
		switch {
		case err == nil:
			item.Encryption = model.EncryptionNone
			item.PageCount = doc.PageCount()
		case errors.Is(err, reader.ErrPasswordProtected):
			item.Encryption = model.EncryptionLocked
		default:
			log.Error("error loading file", slog.String("path", path), slog.String("error", err.Error()))
			continue
		}
		items = append(items, item)
	}
	return items
}
