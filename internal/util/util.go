package util

import (
	"crypto/sha256"
	"encoding/hex"
	"fmt"
	"io"

	"github.com/pkg/errors"
)

// Checksum returns the hex SHA256 of everything read from r.
func Checksum(r io.Reader) (string, error) {
	sha256Hash := sha256.New()

	if _, err := io.Copy(sha256Hash, r); err != nil {
		return "", errors.Wrap(err, "failed to calculate checksum")
	}

	return hex.EncodeToString(sha256Hash.Sum(nil)), nil
}

// FormatBytes formats bytes into human readable format.
func FormatBytes(bytes int64) string {
	const unit = 1024
	if bytes < unit {
		return fmt.Sprintf("%d B", bytes)
	}
	const units = "KMGTPEZY"
	div, exp := int64(unit), 0
	for n := bytes / unit; n >= unit && exp < len(units)-1; n /= unit {
		div *= unit
		exp++
	}

	return fmt.Sprintf("%.1f %cB", float64(bytes)/float64(div), units[exp])
}
