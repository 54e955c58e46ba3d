package media

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"image"
	"io"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/chai2010/webp"
	"github.com/disintegration/imaging"
	"github.com/google/uuid"
	"gorm.io/gorm"

	entity "warehouse.GO/model/entity/warehouse"
)

const (
	ThumbWidth   = 320
	maxImageSize = 10 << 20
)

var (
	ErrNotImage = errors.New("upload is not a supported image")
	ErrTooLarge = errors.New("image exceeds 10MB")
	ErrNotFound = errors.New("image not found")
)

var allowedExt = map[string]bool{".jpg": true, ".jpeg": true, ".png": true, ".gif": true, ".webp": true}

// Service stores item images under dir with a WebP thumbnail per image.
type Service struct {
	db  *gorm.DB
	dir string
}

func NewService(db *gorm.DB, dir string) *Service {
	return &Service{db: db, dir: dir}
}

// Dir is the media root; stored paths are relative to it.
func (s *Service) Dir() string { return s.dir }

// SaveItemImage validates and stores an upload for itemID, writes a
// ThumbWidth-wide WebP thumbnail and records both paths.
func (s *Service) SaveItemImage(ctx context.Context, itemID uint, filename string, r io.Reader, alt string) (*entity.ItemImage, error) {
	var item entity.Item
	if err := s.db.WithContext(ctx).Select("id").First(&item, itemID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, fmt.Errorf("item %d: %w", itemID, gorm.ErrRecordNotFound)
		}
		return nil, err
	}

	ext := strings.ToLower(filepath.Ext(filename))
	if !allowedExt[ext] {
		return nil, fmt.Errorf("%w: %s", ErrNotImage, ext)
	}
	data, err := io.ReadAll(io.LimitReader(r, maxImageSize+1))
	if err != nil {
		return nil, err
	}
	if len(data) > maxImageSize {
		return nil, ErrTooLarge
	}
	img, err := decode(ext, data)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrNotImage, err)
	}

	name := uuid.NewString()
	rel := filepath.Join("items", strconv.FormatUint(uint64(itemID), 10))
	origRel := filepath.Join(rel, name+ext)
	thumbRel := filepath.Join(rel, "thumbs", name+".webp")

	if err := os.MkdirAll(filepath.Join(s.dir, rel, "thumbs"), 0o755); err != nil {
		return nil, err
	}
	if err := os.WriteFile(filepath.Join(s.dir, origRel), data, 0o644); err != nil {
		return nil, err
	}
	if err := writeThumb(filepath.Join(s.dir, thumbRel), img); err != nil {
		os.Remove(filepath.Join(s.dir, origRel))
		return nil, err
	}

	rec := &entity.ItemImage{ItemID: itemID, Path: filepath.ToSlash(origRel), ThumbPath: filepath.ToSlash(thumbRel), Alt: alt}
	if err := s.db.WithContext(ctx).Create(rec).Error; err != nil {
		os.Remove(filepath.Join(s.dir, origRel))
		os.Remove(filepath.Join(s.dir, thumbRel))
		return nil, err
	}
	return rec, nil
}

// Images lists an item's images in upload order.
func (s *Service) Images(ctx context.Context, itemID uint) ([]entity.ItemImage, error) {
	var out []entity.ItemImage
	err := s.db.WithContext(ctx).Where("item_id = ?", itemID).Order("id ASC").Find(&out).Error
	return out, err
}

// DeleteImage removes the record and both files.
func (s *Service) DeleteImage(ctx context.Context, id uint) error {
	var rec entity.ItemImage
	if err := s.db.WithContext(ctx).First(&rec, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return ErrNotFound
		}
		return err
	}
	if err := s.db.WithContext(ctx).Delete(&rec).Error; err != nil {
		return err
	}
	for _, p := range []string{rec.Path, rec.ThumbPath} {
		if p == "" {
			continue
		}
		if err := os.Remove(filepath.Join(s.dir, filepath.FromSlash(p))); err != nil && !os.IsNotExist(err) {
			return err
		}
	}
	return nil
}

func decode(ext string, data []byte) (image.Image, error) {
	if ext == ".webp" {
		return webp.Decode(bytes.NewReader(data))
	}
	return imaging.Decode(bytes.NewReader(data), imaging.AutoOrientation(true))
}

func writeThumb(path string, img image.Image) error {
	thumb := img
	if img.Bounds().Dx() > ThumbWidth {
		thumb = imaging.Resize(img, ThumbWidth, 0, imaging.Lanczos)
	}
	var buf bytes.Buffer
	if err := webp.Encode(&buf, thumb, &webp.Options{Quality: 80}); err != nil {
		return fmt.Errorf("encode thumbnail: %w", err)
	}
	return os.WriteFile(path, buf.Bytes(), 0o644)
}
