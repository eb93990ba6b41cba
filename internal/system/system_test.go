package system

import (
	"image"
	"testing"
)

func TestWorkersHonorsRequest(t *testing.T) {
	if got := Workers(3, 1<<20); got != 3 {
		t.Errorf("Expected requested worker count 3, got %d", got)
	}
}

func TestWorkersFor(t *testing.T) {
	tests := []struct {
		name       string
		info       HostInfo
		frameBytes uint64
		want       int
	}{
		{"cores only", HostInfo{LogicalCores: 8}, 0, 8},
		{"plenty of memory", HostInfo{LogicalCores: 8, AvailableMemory: 64 << 30}, 4 << 20, 8},
		{"memory bound", HostInfo{LogicalCores: 16, AvailableMemory: 120 << 20}, 10 << 20, 2},
		{"starved", HostInfo{LogicalCores: 4, AvailableMemory: 1 << 20}, 10 << 20, 1},
		{"unknown cores", HostInfo{}, 0, 1},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := workersFor(tt.info, tt.frameBytes); got != tt.want {
				t.Errorf("Expected %d workers, got %d", tt.want, got)
			}
		})
	}
}

func TestDescribe(t *testing.T) {
	info := Describe()
	if info.LogicalCores < 1 {
		t.Errorf("Expected at least one core, got %d", info.LogicalCores)
	}
	t.Logf("Host: %+v", info)
}

func TestImagePool(t *testing.T) {
	pool := NewImagePool()
	rect := image.Rect(0, 0, 64, 36)

	img := pool.Get(rect)
	if img.Rect != rect {
		t.Fatalf("Expected bounds %v, got %v", rect, img.Rect)
	}
	img.Pix[0] = 255
	Clear(img)
	if img.Pix[0] != 0 {
		t.Errorf("Expected Clear to zero the buffer")
	}
	pool.Put(img)

	// A buffer from elsewhere is ignored rather than mixed into the pool.
	pool.Put(image.NewRGBA(image.Rect(0, 0, 2, 2)))
	pool.Put(nil)

	if other := pool.Get(image.Rect(0, 0, 2, 2)); other.Rect.Dx() != 2 {
		t.Errorf("Expected a 2x2 buffer, got %v", other.Rect)
	}
}
