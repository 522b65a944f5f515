package util

import (
	"bytes"
	"log"
	"os"
	"strings"
	"testing"

	"github.com/google/go-cmp/cmp"
)

func TestConcatUnique(t *testing.T) {
	testCases := []struct {
		a, b, want []string
	}{
		{nil, nil, []string{}},
		{[]string{"a"}, nil, []string{"a"}},
		{[]string{"a", "b"}, []string{"b", "c"}, []string{"a", "b", "c"}},
		{nil, []string{"x", "x"}, []string{"x"}},
	}
	for _, tc := range testCases {
		got := ConcatUnique(tc.a, tc.b)
		if diff := cmp.Diff(tc.want, got); diff != "" {
			t.Errorf("ConcatUnique(%v, %v) mismatch (-want +got):\n%s", tc.a, tc.b, diff)
		}
	}
}

func TestTimer(t *testing.T) {
	var buf bytes.Buffer
	log.SetOutput(&buf)
	defer log.SetOutput(os.Stderr)
	Timer("step")()
	if got := buf.String(); !strings.Contains(got, "INFO: util_test.go:") || !strings.Contains(got, " step [") {
		t.Errorf("unexpected timer output %q", got)
	}
}
