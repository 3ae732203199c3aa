package pointermask

import (
	"fmt"
	"image"
	"io"
	"net/http"
	"os"
	"strings"
	"sync"

	"github.com/chai2010/webp"

	_ "image/gif"
	_ "image/jpeg"
	_ "image/png"
)

// Loader resolves a visual-source identifier to a decoded image,
// asynchronously. Implementations invoke done exactly once, from any
// goroutine; the engine defers the result to its own UI-thread drain queue.
type Loader interface {
	Load(source string, done func(image.Image, error))
}

// fileHTTPLoader is the built-in loader: http(s) URLs are fetched, anything
// else is treated as a file path. PNG, JPEG, and GIF decode via the standard
// image registry; WebP via chai2010/webp.
type fileHTTPLoader struct{}

func (fileHTTPLoader) Load(source string, done func(image.Image, error)) {
	go func() {
		done(loadSource(source))
	}()
}

// sourceCache de-duplicates decode work across entries referencing the same
// identifier. Keyed by source identifier, written once, shared read-only
// after population. Guarded because loads run on their own goroutines.
var (
	sourceCacheMu sync.Mutex
	sourceCache   = map[string]image.Image{}
)

func loadSource(source string) (image.Image, error) {
	sourceCacheMu.Lock()
	img, hit := sourceCache[source]
	sourceCacheMu.Unlock()
	if hit {
		return img, nil
	}

	r, err := openSource(source)
	if err != nil {
		return nil, err
	}
	defer r.Close()

	img, err = decodeSource(source, r)
	if err != nil {
		return nil, fmt.Errorf("pointermask: decode %q: %w", source, err)
	}

	sourceCacheMu.Lock()
	// Another load may have raced us here; keep the first decode.
	if cached, ok := sourceCache[source]; ok {
		img = cached
	} else {
		sourceCache[source] = img
	}
	sourceCacheMu.Unlock()
	return img, nil
}

func openSource(source string) (io.ReadCloser, error) {
	if strings.HasPrefix(source, "http://") || strings.HasPrefix(source, "https://") {
		resp, err := http.Get(source)
		if err != nil {
			return nil, fmt.Errorf("pointermask: fetch %q: %w", source, err)
		}
		if resp.StatusCode != http.StatusOK {
			resp.Body.Close()
			return nil, fmt.Errorf("pointermask: fetch %q: status %s", source, resp.Status)
		}
		return resp.Body, nil
	}
	f, err := os.Open(source)
	if err != nil {
		return nil, fmt.Errorf("pointermask: open %q: %w", source, err)
	}
	return f, nil
}

func decodeSource(source string, r io.Reader) (image.Image, error) {
	if Classify(source).Extension == "webp" {
		return webp.Decode(r)
	}
	img, _, err := image.Decode(r)
	return img, err
}
