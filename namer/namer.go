// Package namer derives output file names for stamped, merged and
// unlocked documents: suffix-based suggestions, timestamped merge names,
// and collision-free resolution against an output directory.
package namer

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"
)

// DefaultSuffix is appended to stamped output names.
const DefaultSuffix = "_header"

// UniqueName returns base, or base with " (1)", " (2)"... inserted before
// the extension, so the result does not collide with an existing file in
// dir. taken holds names already claimed earlier in the same run and is
// updated with the result; a nil map skips in-run tracking.
func UniqueName(dir, base string, taken map[string]bool) string {
	ext := filepath.Ext(base)
	stem := strings.TrimSuffix(base, ext)

	candidate := base
	for i := 1; exists(dir, candidate) || taken[candidate]; i++ {
		candidate = fmt.Sprintf("%s (%d)%s", stem, i, ext)
	}
	if taken != nil {
		taken[candidate] = true
	}
	return candidate
}

func exists(dir, name string) bool {
	_, err := os.Stat(filepath.Join(dir, name))
	return err == nil
}

// SuggestOutputName derives an output name from an input path by
// inserting a suffix before the extension:
// "/path/doc.pdf" + "_header" -> "doc_header.pdf".
func SuggestOutputName(inputPath, suffix string) string {
	base := filepath.Base(inputPath)
	ext := filepath.Ext(base)
	return strings.TrimSuffix(base, ext) + suffix + ext
}

// MergedName returns a timestamped name such as
// "merged_20260831_153000.pdf".
func MergedName() string {
	return mergedNameAt(time.Now())
}

func mergedNameAt(t time.Time) string {
	return "merged_" + t.Format("20060102_150405") + ".pdf"
}

// ResolveOutputName picks the output name for one input: an explicit user
// name wins (gaining a ".pdf" extension when missing), otherwise the
// suffix-based suggestion, made unique within dir.
func ResolveOutputName(inputPath, dir, suffix, userName string, taken map[string]bool) string {
	var base string
	switch {
	case userName != "":
		base = userName
		if !strings.HasSuffix(strings.ToLower(base), ".pdf") {
			base += ".pdf"
		}
	default:
		base = SuggestOutputName(inputPath, suffix)
	}
	return UniqueName(dir, base, taken)
}

// BatchResolve maps every input path to a unique output name in dir.
// userNames optionally overrides individual inputs. Names claimed earlier
// in the batch are never reused, even before any file hits the disk.
func BatchResolve(inputPaths []string, dir, suffix string, userNames map[string]string) map[string]string {
	out := make(map[string]string, len(inputPaths))
	taken := make(map[string]bool)
	for _, p := range inputPaths {
		out[p] = ResolveOutputName(p, dir, suffix, userNames[p], taken)
	}
	return out
}
