package brush

import (
	"testing"
)

func newTestBrush() *State {
	return New(Config{
		Width:        1920,
		Height:       1080,
		MinSize:      5,
		BaseMaxSize:  40,
		MaxSizeSteps: 4,
		MoveSpeed:    7,
		Deadzone:     0.08,
	}, nil)
}

func TestNewCentresBrush(t *testing.T) {
	b := newTestBrush()
	if b.PosX != 960 || b.PosY != 540 {
		t.Errorf("position = (%v, %v), want (960, 540)", b.PosX, b.PosY)
	}
	if b.Size != 5 || b.MaxSize != 40 || b.MaxSizeMultiplier != 1 {
		t.Errorf("size = %v max = %v mult = %d, want 5 40 1", b.Size, b.MaxSize, b.MaxSizeMultiplier)
	}
	if b.Shape() != Circle {
		t.Errorf("Shape() = %v, want circle", b.Shape())
	}
}

func TestMoveAxisDeadzone(t *testing.T) {
	for _, v := range []float64{0, 0.05, -0.08, 0.08} {
		b := newTestBrush()
		if b.MoveAxis(AxisX, v, 60) {
			t.Errorf("MoveAxis(%v) moved inside the deadzone", v)
		}
		if b.PosX != 960 {
			t.Errorf("MoveAxis(%v) PosX = %v, want 960", v, b.PosX)
		}
	}
}

func TestMoveAxisVelocity(t *testing.T) {
	tests := []struct {
		name      string
		value     float64
		frameRate float64
		wantVel   float64
	}{
		{"full right at 60fps", 1, 60, 7},
		{"half left at 60fps", -0.5, 60, -3.5},
		{"full right at 30fps", 1, 30, 14},
		{"zero frame rate uses nominal", 1, 0, 7},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			b := newTestBrush()
			b.MoveAxis(AxisX, tt.value, tt.frameRate)
			if b.VelX != tt.wantVel {
				t.Errorf("VelX = %v, want %v", b.VelX, tt.wantVel)
			}
			if b.PosX != 960+tt.wantVel {
				t.Errorf("PosX = %v, want %v", b.PosX, 960+tt.wantVel)
			}
		})
	}
}

func TestMoveAxisBoundary(t *testing.T) {
	tests := []struct {
		name   string
		axis   Axis
		pos    float64
		value  float64
		moving bool
	}{
		{"left edge pushed out", AxisX, 0, -1, false},
		{"left edge pushed in", AxisX, 0, 1, true},
		{"past left edge pushed in", AxisX, -3, 0.5, true},
		{"right edge pushed out", AxisX, 1920, 1, false},
		{"right edge pushed in", AxisX, 1920, -1, true},
		{"top edge pushed out", AxisY, 0, -1, false},
		{"bottom edge pushed in", AxisY, 1080, -1, true},
		{"bottom edge pushed out", AxisY, 1085, 1, false},
		{"inside", AxisY, 10, -1, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			b := newTestBrush()
			if tt.axis == AxisX {
				b.PosX = tt.pos
			} else {
				b.PosY = tt.pos
			}

			moved := b.MoveAxis(tt.axis, tt.value, 60)

			got := b.PosX
			if tt.axis == AxisY {
				got = b.PosY
			}
			if moved != tt.moving {
				t.Errorf("MoveAxis() = %v, want %v", moved, tt.moving)
			}
			if tt.moving == (got == tt.pos) {
				t.Errorf("position %v -> %v, moving = %v", tt.pos, got, tt.moving)
			}
		})
	}
}

func TestUpdateSize(t *testing.T) {
	tests := []struct {
		name     string
		raw      float64
		isButton bool
		want     float64
	}{
		{"axis rest", -1, false, 5},
		{"axis half", 0, false, 25},
		{"axis full", 1, false, 45},
		{"button released", 0, true, 5},
		{"button half", 0.5, true, 25},
		{"button full", 1, true, 45},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			b := newTestBrush()
			b.UpdateSize(tt.raw, tt.isButton)
			if b.Size != tt.want {
				t.Errorf("Size = %v, want %v", b.Size, tt.want)
			}
		})
	}
}

func TestUpdateSizeMonotonic(t *testing.T) {
	b := newTestBrush()
	prev := -1.0
	for v := -1.0; v <= 1.0; v += 0.125 {
		b.UpdateSize(v, false)
		if b.Size < prev {
			t.Fatalf("size decreased at %v: %v < %v", v, b.Size, prev)
		}
		prev = b.Size
	}
}

func TestSizeLock(t *testing.T) {
	b := newTestBrush()
	b.UpdateSize(0, false)
	b.ToggleSizeLock()

	for _, v := range []float64{-1, 0.3, 1} {
		b.UpdateSize(v, false)
		if b.Size != 25 {
			t.Errorf("locked UpdateSize(%v) changed size to %v", v, b.Size)
		}
	}

	b.ToggleSizeLock()
	b.UpdateSize(1, false)
	if b.Size != 45 {
		t.Errorf("unlocked size = %v, want 45", b.Size)
	}
}

func TestCycleMaxSize(t *testing.T) {
	b := newTestBrush()
	want := []float64{80, 120, 160, 40, 80}
	for i, w := range want {
		b.CycleMaxSize()
		if b.MaxSize != w {
			t.Errorf("step %d: MaxSize = %v, want %v", i+1, b.MaxSize, w)
		}
	}
}

func TestCycleShape(t *testing.T) {
	b := newTestBrush()
	want := []Shape{Ellipse, Circle, Ellipse}
	for i, w := range want {
		b.CycleShape()
		if b.Shape() != w {
			t.Errorf("step %d: Shape() = %v, want %v", i+1, b.Shape(), w)
		}
	}
}

func TestCursorSize(t *testing.T) {
	b := newTestBrush()
	if b.CursorSize() != 5 {
		t.Errorf("CursorSize() = %v, want 5", b.CursorSize())
	}
	b.Size = 0
	if b.CursorSize() != 17.5 {
		t.Errorf("CursorSize() with zero size = %v, want 17.5", b.CursorSize())
	}
}

func TestReset(t *testing.T) {
	b := newTestBrush()
	b.MoveAxis(AxisX, 1, 60)
	b.CycleShape()
	b.CycleMaxSize()
	b.ToggleSizeLock()
	b.Reset()

	fresh := newTestBrush()
	fresh.log = b.log
	if *b != *fresh {
		t.Errorf("Reset() = %+v, want %+v", *b, *fresh)
	}
}
