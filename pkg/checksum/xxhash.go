package checksum

import (
	"fmt"

	"github.com/cespare/xxhash/v2"
)

// Sum returns the xxhash64 digest of the given content as a hex string.
// Used to recognize when the same file is uploaded twice.
func Sum(content string) string {
	return fmt.Sprintf("%016x", xxhash.Sum64String(content))
}
