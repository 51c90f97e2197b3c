package backend

import "fmt"

// MaxAllocationSize is the hard ceiling on any single buffer crossing the
// managed/native boundary. The largest key material shipped by liboqs to date
// is about 1.3 MB (Classic McEliece public keys), so 3 MiB leaves headroom
// without letting a corrupted length field drive an enormous allocation.
const MaxAllocationSize = 3 << 20

// CheckAllocationSize validates a requested native allocation size.
func CheckAllocationSize(size int) error {
	if size <= 0 {
		return fmt.Errorf("allocation size must be positive, got %d", size)
	}
	if size > MaxAllocationSize {
		return fmt.Errorf("allocation size %d exceeds maximum %d", size, MaxAllocationSize)
	}
	return nil
}

// CheckCopyLength validates a copy-out length from native memory. Unlike
// allocation, a zero or negative length is legal and yields an empty slice.
func CheckCopyLength(length int) error {
	if length > MaxAllocationSize {
		return fmt.Errorf("copy length %d exceeds maximum %d", length, MaxAllocationSize)
	}
	return nil
}
