// Package unlock removes encryption and usage restrictions from PDF
// files. The output is always a new, unencrypted file; the input is never
// touched.
package unlock

import (
	"errors"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/pdfcpu/pdfcpu/pkg/api"
	pdfmodel "github.com/pdfcpu/pdfcpu/pkg/pdfcpu/model"
)

// ErrWrongPassword is returned when the supplied password does not open
// the document. Files restricted with an owner password only typically
// unlock with an empty password.
var ErrWrongPassword = errors.New("unlock: wrong or missing password")

// Unlock writes an unencrypted copy of inPath to outPath. password may be
// empty for files that only restrict editing. An already-unencrypted
// input is copied through unchanged.
func Unlock(inPath, outPath, password string) error {
	if outPath == "" {
		return fmt.Errorf("unlock: no output path given")
	}

	conf := pdfmodel.NewDefaultConfiguration()
	conf.UserPW = password
	conf.OwnerPW = password

	err := api.DecryptFile(inPath, outPath, conf)
	if err == nil {
		return nil
	}

	if isNotEncrypted(err) {
		// Nothing to remove; the caller still gets an independent copy.
		if cerr := copyFile(inPath, outPath); cerr != nil {
			return fmt.Errorf("unlock: %w", cerr)
		}
		return nil
	}
	if isPasswordErr(err) {
		return fmt.Errorf("%w: %s", ErrWrongPassword, inPath)
	}
	return fmt.Errorf("unlock: %s: %w", inPath, err)
}

func isNotEncrypted(err error) bool {
	return strings.Contains(strings.ToLower(err.Error()), "not encrypted")
}

func isPasswordErr(err error) bool {
	msg := strings.ToLower(err.Error())
	return strings.Contains(msg, "password") || strings.Contains(msg, "authentication")
}

func copyFile(src, dst string) error {
	in, err := os.Open(src)
	if err != nil {
		return err
	}
	defer in.Close()

	out, err := os.Create(dst)
	if err != nil {
		return err
	}
	defer out.Close()

	if _, err := io.Copy(out, in); err != nil {
		return err
	}
	return out.Sync()
}
