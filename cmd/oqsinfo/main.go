// Command oqsinfo prints the wrapper and native library versions and
// enumerates the algorithms the linked liboqs build provides.
package main

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"os"

	"github.com/djx-y-z/liboqs-go/pkg/oqs"
	"github.com/djx-y-z/liboqs-go/pkg/oqs/kem"
	"github.com/djx-y-z/liboqs-go/pkg/oqs/logging"
	"github.com/djx-y-z/liboqs-go/pkg/oqs/sig"
)

func main() {
	ctx := context.Background()
	log := logging.New(slog.New(slog.NewTextHandler(os.Stderr, nil)))

	log.Info(ctx, "liboqs-go", "wrapper", oqs.WrapperVersion())

	if err := oqs.Init(); err != nil {
		if errors.Is(err, oqs.ErrNotBuilt) {
			fmt.Println("native liboqs bindings are not linked into this binary")
			return
		}
		log.Error(ctx, "initialization failed", "err", err)
		os.Exit(1)
	}
	defer oqs.Cleanup()

	log.Info(ctx, "native library", "version", oqs.NativeVersion())

	kems, err := oqs.SupportedKEMs()
	if err != nil {
		log.Error(ctx, "enumerating KEMs failed", "err", err)
		os.Exit(1)
	}
	fmt.Printf("KEMs (%d):\n", len(kems))
	for _, name := range kems {
		h, err := kem.New(name)
		if err != nil {
			fmt.Printf("  %-40s (unavailable: %v)\n", name, err)
			continue
		}
		d, err := h.Details()
		if err == nil {
			fmt.Printf("  %-40s NIST level %d  pk=%d sk=%d ct=%d ss=%d\n",
				name, d.ClaimedNISTLevel, d.PublicKeyLength, d.SecretKeyLength,
				d.CiphertextLength, d.SharedSecretLength)
		}
		if cerr := h.Close(); cerr != nil {
			log.Warn(ctx, "close failed", "algorithm", name, "err", cerr)
		}
	}

	sigs, err := oqs.SupportedSignatures()
	if err != nil {
		log.Error(ctx, "enumerating signatures failed", "err", err)
		os.Exit(1)
	}
	fmt.Printf("Signature schemes (%d):\n", len(sigs))
	for _, name := range sigs {
		h, err := sig.New(name)
		if err != nil {
			fmt.Printf("  %-40s (unavailable: %v)\n", name, err)
			continue
		}
		d, err := h.Details()
		if err == nil {
			fmt.Printf("  %-40s NIST level %d  pk=%d sk=%d sig<=%d\n",
				name, d.ClaimedNISTLevel, d.PublicKeyLength, d.SecretKeyLength,
				d.MaxSignatureLength)
		}
		if cerr := h.Close(); cerr != nil {
			log.Warn(ctx, "close failed", "algorithm", name, "err", cerr)
		}
	}
}
