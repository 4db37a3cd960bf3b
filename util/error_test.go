package util

import (
	"testing"

	"github.com/pkg/errors"
)

func TestCheckErrNop(t *testing.T) {
	if CheckErrNop(nil, "should stay silent") {
		t.Error("nil error reported as failure")
	}
	if !CheckErrNop(errors.New("render failed"), "expected") {
		t.Error("non-nil error not reported")
	}
}
