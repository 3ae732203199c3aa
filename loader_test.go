package pointermask

import (
	"image"
	"image/png"
	"os"
	"path/filepath"
	"testing"
	"time"
)

func writeTestPNG(t *testing.T) string {
	t.Helper()
	img := alphaImage(4, 4, func(x, y int) uint8 { return 0xff })
	path := filepath.Join(t.TempDir(), "src.png")
	f, err := os.Create(path)
	if err != nil {
		t.Fatal(err)
	}
	defer f.Close()
	if err := png.Encode(f, img); err != nil {
		t.Fatal(err)
	}
	return path
}

func TestLoadSourceDecodesFile(t *testing.T) {
	path := writeTestPNG(t)

	img, err := loadSource(path)
	if err != nil {
		t.Fatalf("loadSource: %v", err)
	}
	if b := img.Bounds(); b.Dx() != 4 || b.Dy() != 4 {
		t.Errorf("decoded %dx%d, want 4x4", b.Dx(), b.Dy())
	}
}

func TestLoadSourceCachesByIdentifier(t *testing.T) {
	path := writeTestPNG(t)

	first, err := loadSource(path)
	if err != nil {
		t.Fatal(err)
	}
	// Remove the file: a second load can only succeed from the cache.
	if err := os.Remove(path); err != nil {
		t.Fatal(err)
	}
	second, err := loadSource(path)
	if err != nil {
		t.Fatalf("cached loadSource: %v", err)
	}
	if first != second {
		t.Error("second load decoded a new image instead of the cached one")
	}
}

func TestLoadSourceMissingFile(t *testing.T) {
	if _, err := loadSource(filepath.Join(t.TempDir(), "absent.png")); err == nil {
		t.Error("missing file did not error")
	}
}

func TestFileHTTPLoaderCompletesAsynchronously(t *testing.T) {
	path := writeTestPNG(t)

	type result struct {
		img image.Image
		err error
	}
	ch := make(chan result, 1)
	fileHTTPLoader{}.Load(path, func(img image.Image, err error) {
		ch <- result{img, err}
	})

	select {
	case r := <-ch:
		if r.err != nil {
			t.Fatalf("load: %v", r.err)
		}
		if r.img == nil {
			t.Fatal("load completed with nil image and nil error")
		}
	case <-time.After(5 * time.Second):
		t.Fatal("loader never completed")
	}
}

func TestFileHTTPLoaderReportsErrors(t *testing.T) {
	ch := make(chan error, 1)
	fileHTTPLoader{}.Load(filepath.Join(t.TempDir(), "absent.png"), func(_ image.Image, err error) {
		ch <- err
	})

	select {
	case err := <-ch:
		if err == nil {
			t.Error("missing file completed without error")
		}
	case <-time.After(5 * time.Second):
		t.Fatal("loader never completed")
	}
}
