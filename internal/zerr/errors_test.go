package zerr

import (
	"errors"
	"strings"
	"testing"
)

func TestConstructorsMatchSentinels(t *testing.T) {
	cases := []struct {
		name   string
		err    error
		target error
	}{
		{"invalid format", InvalidFormat("bad magic"), ErrInvalidFormat},
		{"unsupported version", UnsupportedVersion(9), ErrUnsupportedVersion},
		{"invalid option", InvalidOption("block-size must be > 0"), ErrInvalidOption},
		{"corrupt", Corrupt("decoded size mismatch"), ErrCorrupt},
		{"io", Io(errors.New("disk full")), ErrIo},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			if !Is(tc.err, tc.target) {
				t.Fatalf("expected %v to match sentinel %v", tc.err, tc.target)
			}
		})
	}
}

func TestIoNilReturnsNil(t *testing.T) {
	if Io(nil) != nil {
		t.Fatalf("Io(nil) should return nil")
	}
}

func TestFormatIncludesReason(t *testing.T) {
	err := Corrupt("missing segment marker")
	out := Format(err)
	if out == "" {
		t.Fatalf("Format returned empty string")
	}
	if !strings.Contains(out, "missing segment marker") {
		t.Fatalf("Format output should include the reason, got %q", out)
	}
}

func TestWrapfPreservesMatch(t *testing.T) {
	err := Wrapf(ErrCorrupt, "block %d", 3)
	if !Is(err, ErrCorrupt) {
		t.Fatalf("Wrapf should preserve errors.Is match against the sentinel")
	}
}
