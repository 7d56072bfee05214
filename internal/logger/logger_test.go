package logger

import (
	"context"
	"testing"

	"go.uber.org/zap"
)

func TestContextRoundTrip(t *testing.T) {
	l := zap.NewNop().Named("painter")
	ctx := NewContext(context.Background(), l)

	if got := L(ctx); got != l {
		t.Errorf("L() = %p, want %p", got, l)
	}
}

func TestLFallsBackToGlobal(t *testing.T) {
	if got := L(context.Background()); got != zap.L() {
		t.Errorf("L() without logger should return zap.L()")
	}
}

func TestOrNop(t *testing.T) {
	if OrNop(nil) == nil {
		t.Fatal("OrNop(nil) returned nil")
	}
	l := zap.NewExample()
	if OrNop(l) != l {
		t.Error("OrNop should return the given logger")
	}
}
