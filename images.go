package folio

import (
	"context"
	"errors"
	"fmt"
	"image"
	_ "image/gif"
	"image/jpeg"
	_ "image/png"
	"os"
	"path/filepath"
	"runtime"
	"strings"
	"sync"

	"github.com/panjf2000/ants/v2"
	"golang.org/x/image/draw"
)

const jpegQuality = 80

// VariantWidths are the responsive widths generated for each source image.
var VariantWidths = []int{640, 768, 1024, 1280, 1536}

var imageExts = map[string]bool{".jpg": true, ".jpeg": true, ".png": true, ".gif": true}

// ImageReport summarises an OptimizeImages run.
type ImageReport struct {
	Sources  int
	Variants int
}

// OptimizeImages writes name-<w>.jpg into dst for every image in src and
// every width in widths that does not exceed the source width. Sources are
// processed concurrently on a pool of workers; failures are collected and
// returned together once all sources were attempted.
func OptimizeImages(ctx context.Context, src, dst string, widths []int, workers int) (ImageReport, error) {
	var report ImageReport
	if len(widths) == 0 {
		widths = VariantWidths
	}
	if workers < 1 {
		workers = runtime.NumCPU()
	}

	entries, err := os.ReadDir(src)
	if err != nil {
		return report, fmt.Errorf("read source dir: %w", err)
	}
	if err := os.MkdirAll(dst, 0o755); err != nil {
		return report, fmt.Errorf("create output dir: %w", err)
	}

	pool, err := ants.NewPool(workers)
	if err != nil {
		return report, err
	}
	defer pool.Release()

	var (
		mu   sync.Mutex
		errs []error
		wg   sync.WaitGroup
	)
	for _, entry := range entries {
		if entry.IsDir() || !imageExts[strings.ToLower(filepath.Ext(entry.Name()))] {
			continue
		}
		if ctx.Err() != nil {
			break
		}
		name := entry.Name()
		report.Sources++
		wg.Add(1)
		err := pool.Submit(func() {
			defer wg.Done()
			n, err := writeVariants(ctx, filepath.Join(src, name), dst, widths)
			mu.Lock()
			defer mu.Unlock()
			report.Variants += n
			if err != nil {
				errs = append(errs, fmt.Errorf("%s: %w", name, err))
			}
		})
		if err != nil {
			wg.Done()
			mu.Lock()
			errs = append(errs, fmt.Errorf("%s: %w", name, err))
			mu.Unlock()
		}
	}
	wg.Wait()

	if err := ctx.Err(); err != nil {
		errs = append(errs, err)
	}
	return report, errors.Join(errs...)
}

func writeVariants(ctx context.Context, path, dst string, widths []int) (int, error) {
	f, err := os.Open(path)
	if err != nil {
		return 0, err
	}
	img, _, err := image.Decode(f)
	f.Close()
	if err != nil {
		return 0, fmt.Errorf("decode image: %w", err)
	}

	base := strings.TrimSuffix(filepath.Base(path), filepath.Ext(path))
	bounds := img.Bounds()
	written := 0
	for _, w := range widths {
		if ctx.Err() != nil {
			return written, ctx.Err()
		}
		if w > bounds.Dx() {
			continue
		}
		out := resize(img, w)
		if err := writeJPEG(filepath.Join(dst, fmt.Sprintf("%s-%d.jpg", base, w)), out); err != nil {
			return written, err
		}
		written++
	}
	return written, nil
}

// resize scales img to width w, keeping its aspect ratio.
func resize(img image.Image, w int) image.Image {
	bounds := img.Bounds()
	h := bounds.Dy() * w / bounds.Dx()
	if h < 1 {
		h = 1
	}
	dst := image.NewRGBA(image.Rect(0, 0, w, h))
	draw.CatmullRom.Scale(dst, dst.Bounds(), img, bounds, draw.Over, nil)
	return dst
}

func writeJPEG(path string, img image.Image) error {
	f, err := os.Create(path)
	if err != nil {
		return err
	}
	if err := jpeg.Encode(f, img, &jpeg.Options{Quality: jpegQuality}); err != nil {
		f.Close()
		return fmt.Errorf("encode jpeg: %w", err)
	}
	return f.Close()
}
