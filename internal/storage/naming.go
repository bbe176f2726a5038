package storage

import (
	"crypto/rand"
	"math/big"
	"net/url"
	"path/filepath"
	"strconv"
	"strings"
	"time"
)

const suffixAlphabet = "0123456789abcdefghijklmnopqrstuvwxyz"

// UniqueName derives a storage name from an upload's original filename:
// <unix-millis>_<6 random base36 chars><.ext>. Only the extension of the
// original survives, so user supplied names never reach the backend.
func UniqueName(original string, now time.Time) string {
	ext := strings.ToLower(filepath.Ext(original))
	if ext == "." {
		ext = ""
	}
	return strconv.FormatInt(now.UnixMilli(), 10) + "_" + randomSuffix(6) + ext
}

func randomSuffix(n int) string {
	max := big.NewInt(int64(len(suffixAlphabet)))
	b := make([]byte, n)
	for i := range b {
		v, err := rand.Int(rand.Reader, max)
		if err != nil {
			// crypto/rand never fails on supported platforms
			panic(err)
		}
		b[i] = suffixAlphabet[v.Int64()]
	}
	return string(b)
}

func joinURL(base, prefix, name string) string {
	return strings.TrimRight(base, "/") + prefix + url.PathEscape(name)
}
