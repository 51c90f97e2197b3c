//go:build cgo && !windows

package backend

/*
#cgo CFLAGS: -I/usr/local/include
#cgo LDFLAGS: -L/usr/local/lib -loqs
#cgo linux LDFLAGS: -lcrypto

#include <stdlib.h>
#include <string.h>
#include <oqs/oqs.h>
*/
import "C"

import (
	"fmt"
	"unsafe"
)

func init() {
	SetProvider(&liboqsProvider{})
}

// NativeAvailable reports whether the liboqs bindings were compiled in.
func NativeAvailable() bool { return true }

// liboqsProvider implements Provider on top of the linked liboqs library.
type liboqsProvider struct{}

func (p *liboqsProvider) Name() string { return "liboqs" }

func (p *liboqsProvider) Version() string {
	v := C.OQS_version()
	if v == nil {
		return ""
	}
	return C.GoString(v)
}

func (p *liboqsProvider) Init() error {
	C.OQS_init()
	return nil
}

func (p *liboqsProvider) ThreadStop() {
	C.OQS_thread_stop()
}

func (p *liboqsProvider) Destroy() {
	C.OQS_destroy()
}

func (p *liboqsProvider) KEMs() []string {
	count := int(C.OQS_KEM_alg_count())
	names := make([]string, 0, count)
	for i := 0; i < count; i++ {
		id := C.OQS_KEM_alg_identifier(C.size_t(i))
		if id == nil {
			continue
		}
		name := C.GoString(id)
		if C.OQS_KEM_alg_is_enabled(id) == 1 {
			names = append(names, name)
		}
	}
	return names
}

func (p *liboqsProvider) IsKEMEnabled(name string) bool {
	cName := C.CString(name)
	defer C.free(unsafe.Pointer(cName))
	return C.OQS_KEM_alg_is_enabled(cName) == 1
}

func (p *liboqsProvider) Sigs() []string {
	count := int(C.OQS_SIG_alg_count())
	names := make([]string, 0, count)
	for i := 0; i < count; i++ {
		id := C.OQS_SIG_alg_identifier(C.size_t(i))
		if id == nil {
			continue
		}
		name := C.GoString(id)
		if C.OQS_SIG_alg_is_enabled(id) == 1 {
			names = append(names, name)
		}
	}
	return names
}

func (p *liboqsProvider) IsSigEnabled(name string) bool {
	cName := C.CString(name)
	defer C.free(unsafe.Pointer(cName))
	return C.OQS_SIG_alg_is_enabled(cName) == 1
}

func (p *liboqsProvider) RandomBytes(buf []byte) error {
	if len(buf) == 0 {
		return nil
	}
	C.OQS_randombytes((*C.uint8_t)(unsafe.Pointer(&buf[0])), C.size_t(len(buf)))
	return nil
}

// Secure memory bridge.
//
// Every buffer that crosses into native code is allocated here, zero filled,
// and released on all exit paths via defer. Two release variants exist:
// release for public data and secureRelease for anything secret. They are the
// only ways memory obtained from toNative or allocate may be returned.

// toNative copies b into freshly allocated zeroed native memory.
func toNative(b []byte) (unsafe.Pointer, error) {
	if err := CheckAllocationSize(len(b)); err != nil {
		return nil, err
	}
	ptr := C.calloc(C.size_t(len(b)), 1)
	if ptr == nil {
		return nil, fmt.Errorf("native allocation of %d bytes failed", len(b))
	}
	C.memcpy(ptr, unsafe.Pointer(&b[0]), C.size_t(len(b)))
	return ptr, nil
}

// fromNative copies length bytes out of native memory. The source is neither
// retained nor mutated. A non-positive length yields an empty slice.
func fromNative(ptr unsafe.Pointer, length int) ([]byte, error) {
	if length <= 0 {
		return []byte{}, nil
	}
	if ptr == nil {
		return nil, fmt.Errorf("cannot copy %d bytes from nil native pointer", length)
	}
	if err := CheckCopyLength(length); err != nil {
		return nil, err
	}
	return C.GoBytes(ptr, C.int(length)), nil
}

// allocate returns size bytes of zero-filled native memory.
func allocate(size int) (unsafe.Pointer, error) {
	if err := CheckAllocationSize(size); err != nil {
		return nil, err
	}
	ptr := C.calloc(C.size_t(size), 1)
	if ptr == nil {
		return nil, fmt.Errorf("native allocation of %d bytes failed", size)
	}
	return ptr, nil
}

// release frees native memory that held public data. Safe on nil.
func release(ptr unsafe.Pointer) {
	if ptr == nil {
		return
	}
	C.free(ptr)
}

// secureRelease erases and frees native memory that held secret data. The
// erasure delegates to OQS_MEM_secure_free, which liboqs guarantees is not
// elided by the optimizer. Safe on nil and on non-positive lengths.
func secureRelease(ptr unsafe.Pointer, length int) {
	if ptr == nil {
		return
	}
	if length <= 0 {
		C.free(ptr)
		return
	}
	C.OQS_MEM_secure_free(ptr, C.size_t(length))
}
