package oqs_test

import (
	"testing"

	"github.com/djx-y-z/liboqs-go/pkg/oqs"
)

func TestZeroizeBytes(t *testing.T) {
	buf := []byte{0xDE, 0xAD, 0xBE, 0xEF}
	oqs.ZeroizeBytes(buf)
	for i, b := range buf {
		if b != 0 {
			t.Fatalf("buf[%d] = %#x after ZeroizeBytes", i, b)
		}
	}

	oqs.ZeroizeBytes(nil)
	oqs.ZeroizeBytes([]byte{})
}

func TestConstantTimeEquals(t *testing.T) {
	cases := []struct {
		name string
		a, b []byte
		want bool
	}{
		{"equal", []byte{1, 2, 3, 4, 5}, []byte{1, 2, 3, 4, 5}, true},
		{"last byte differs", []byte{1, 2, 3, 4, 5}, []byte{1, 2, 3, 4, 6}, false},
		{"first byte differs", []byte{9, 2, 3}, []byte{1, 2, 3}, false},
		{"both empty", []byte{}, []byte{}, true},
		{"both nil", nil, nil, true},
		{"nil vs empty", nil, []byte{}, true},
		{"nonempty vs empty", []byte{1, 2, 3}, []byte{}, false},
		{"prefix", []byte{1, 2, 3}, []byte{1, 2}, false},
		{"single equal", []byte{0xFF}, []byte{0xFF}, true},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			if got := oqs.ConstantTimeEquals(tc.a, tc.b); got != tc.want {
				t.Fatalf("ConstantTimeEquals(%v, %v) = %v, want %v", tc.a, tc.b, got, tc.want)
			}
			if got := oqs.ConstantTimeEquals(tc.b, tc.a); got != tc.want {
				t.Fatalf("ConstantTimeEquals(%v, %v) = %v, want %v", tc.b, tc.a, got, tc.want)
			}
		})
	}
}

func TestConstantTimeEqualsSelf(t *testing.T) {
	buf := []byte("the same backing array compared with itself")
	if !oqs.ConstantTimeEquals(buf, buf) {
		t.Fatal("slice is not equal to itself")
	}
}
