package services

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"image"
	"image/jpeg"
	_ "image/png"
	"io"
	"log"
	"net/http"
	"path"
	"strconv"
	"strings"

	"cloud.google.com/go/storage"
	"golang.org/x/image/draw"
	"google.golang.org/api/iterator"

	"mars-gallery/pkg/models"
	"mars-gallery/pkg/rovers"
)

const (
	// colorDifferenceThreshold is the per-channel difference under which two
	// sampled pixels count as the same color
	colorDifferenceThreshold = 256

	// DefaultThumbnailWidth is the width of archived thumbnails in pixels
	DefaultThumbnailWidth = 320
)

// ErrBlankImage is returned for frames that are a single solid color
var ErrBlankImage = errors.New("image is a solid color")

// ProgressCallback is a function that receives progress updates
type ProgressCallback func(step string, progress int)

// ArchiveResult summarizes one archive run
type ArchiveResult struct {
	Archived int
	Skipped  int
	Failed   int
}

// ArchiveService copies rover photos and their thumbnails into a Cloud Storage bucket
type ArchiveService struct {
	bucket         *storage.BucketHandle
	client         *http.Client
	ThumbnailWidth int
	Force          bool
	SkipBlank      bool
}

// NewArchiveService creates an archive service writing to bucket
func NewArchiveService(bucket *storage.BucketHandle, client *http.Client) *ArchiveService {
	if client == nil {
		client = http.DefaultClient
	}
	return &ArchiveService{
		bucket:         bucket,
		client:         client,
		ThumbnailWidth: DefaultThumbnailWidth,
		SkipBlank:      true,
	}
}

// ObjectName returns the bucket path of an archived photo
func ObjectName(r rovers.Rover, p models.Photo) string {
	camera := p.Camera
	if camera == "" {
		camera = "UNKNOWN"
	}
	date := p.EarthDate
	if date == "" {
		date = "sol-" + strconv.Itoa(p.Sol)
	}
	return path.Join(r.Slug(), date, camera, strconv.Itoa(p.ID)+".jpg")
}

// ThumbnailName returns the bucket path of an archived photo's thumbnail
func ThumbnailName(objectName string) string {
	return strings.TrimSuffix(objectName, path.Ext(objectName)) + "_thumb.jpg"
}

// Archive uploads each photo and a thumbnail of it. Photos already present in
// the bucket are skipped unless Force is set. Individual failures are counted
// and logged; only listing the bucket aborts the run.
func (a *ArchiveService) Archive(ctx context.Context, r rovers.Rover, photos []models.Photo, progressCb ProgressCallback) (ArchiveResult, error) {
	sendProgress := func(step string, progress int) {
		if progressCb != nil {
			progressCb(step, progress)
		}
	}

	var result ArchiveResult

	sendProgress("Scanning bucket", 0)
	existing, err := a.existingObjects(ctx, r.Slug()+"/")
	if err != nil {
		return result, fmt.Errorf("failed to list bucket: %w", err)
	}

	for i, p := range photos {
		name := ObjectName(r, p)
		progress := (i + 1) * 100 / len(photos)

		if existing[name] && !a.Force {
			result.Skipped++
			sendProgress("Skipping "+name, progress)
			continue
		}

		sendProgress("Archiving "+name, progress)
		if err := a.archivePhoto(ctx, p, name); err != nil {
			if errors.Is(err, ErrBlankImage) {
				log.Printf("Skipping blank frame %d: %v", p.ID, err)
				result.Skipped++
				continue
			}
			log.Printf("Error archiving photo %d: %v", p.ID, err)
			result.Failed++
			continue
		}
		result.Archived++
	}

	return result, nil
}

func (a *ArchiveService) existingObjects(ctx context.Context, prefix string) (map[string]bool, error) {
	existing := make(map[string]bool)
	it := a.bucket.Objects(ctx, &storage.Query{Prefix: prefix})
	for {
		obj, err := it.Next()
		if errors.Is(err, iterator.Done) {
			break
		}
		if err != nil {
			return nil, err
		}
		existing[obj.Name] = true
	}
	return existing, nil
}

func (a *ArchiveService) archivePhoto(ctx context.Context, p models.Photo, name string) error {
	data, err := a.download(ctx, p.ImgSrc)
	if err != nil {
		return err
	}

	img, _, err := image.Decode(bytes.NewReader(data))
	if err != nil {
		return fmt.Errorf("failed to decode image: %w", err)
	}
	if a.SkipBlank {
		if err := ValidateImage(img); err != nil {
			return err
		}
	}

	thumb, err := EncodeThumbnail(img, a.ThumbnailWidth)
	if err != nil {
		return err
	}

	if err := a.upload(ctx, name, data); err != nil {
		return err
	}
	return a.upload(ctx, ThumbnailName(name), thumb)
}

func (a *ArchiveService) download(ctx context.Context, src string) ([]byte, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, src, nil)
	if err != nil {
		return nil, err
	}
	resp, err := a.client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("http.Get(%q): %w", src, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("bad status code: %d", resp.StatusCode)
	}
	return io.ReadAll(resp.Body)
}

func (a *ArchiveService) upload(ctx context.Context, dst string, data []byte) error {
	writer := a.bucket.Object(dst).NewWriter(ctx)
	writer.ContentType = "image/jpeg"

	if _, err := writer.Write(data); err != nil {
		return fmt.Errorf("Writer.Write: %w", err)
	}
	if err := writer.Close(); err != nil {
		return fmt.Errorf("Writer.Close: %w", err)
	}
	return nil
}

// EncodeThumbnail scales img to width, keeping its aspect ratio, and encodes it as JPEG.
// Images narrower than width are not enlarged.
func EncodeThumbnail(img image.Image, width int) ([]byte, error) {
	bounds := img.Bounds()
	w, h := bounds.Dx(), bounds.Dy()
	if w == 0 || h == 0 {
		return nil, fmt.Errorf("image has no pixels")
	}

	if width > 0 && w > width {
		h = h * width / w
		if h == 0 {
			h = 1
		}
		w = width
	}

	dst := image.NewRGBA(image.Rect(0, 0, w, h))
	draw.CatmullRom.Scale(dst, dst.Bounds(), img, bounds, draw.Over, nil)

	var buf bytes.Buffer
	if err := jpeg.Encode(&buf, dst, &jpeg.Options{Quality: 85}); err != nil {
		return nil, fmt.Errorf("failed to encode thumbnail: %w", err)
	}
	return buf.Bytes(), nil
}

// ValidateImage returns ErrBlankImage when fewer than 1% of sampled pixels
// differ from the top-left pixel. Rovers return many such calibration frames.
func ValidateImage(img image.Image) error {
	bounds := img.Bounds()
	width := bounds.Dx()
	height := bounds.Dy()

	sampleSize := 10
	stepX := width / sampleSize
	stepY := height / sampleSize
	if stepX == 0 {
		stepX = 1
	}
	if stepY == 0 {
		stepY = 1
	}

	r1, g1, b1, a1 := img.At(bounds.Min.X, bounds.Min.Y).RGBA()

	differentPixels := 0
	totalSamples := 0
	for y := bounds.Min.Y; y < bounds.Max.Y; y += stepY {
		for x := bounds.Min.X; x < bounds.Max.X; x += stepX {
			totalSamples++
			r2, g2, b2, a2 := img.At(x, y).RGBA()

			if abs(int(r1)-int(r2)) > colorDifferenceThreshold ||
				abs(int(g1)-int(g2)) > colorDifferenceThreshold ||
				abs(int(b1)-int(b2)) > colorDifferenceThreshold ||
				abs(int(a1)-int(a2)) > colorDifferenceThreshold {
				differentPixels++
			}
		}
	}

	if totalSamples > 0 && float64(differentPixels)/float64(totalSamples) < 0.01 {
		return fmt.Errorf("%w (only %d/%d sampled pixels differ)", ErrBlankImage, differentPixels, totalSamples)
	}
	return nil
}

func abs(x int) int {
	if x < 0 {
		return -x
	}
	return x
}
