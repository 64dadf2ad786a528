package media

import (
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"

	"github.com/chai2010/webp"
	"github.com/disintegration/imaging"
	"gorm.io/gorm"

	"sportloan.GO/config"
	equipmentService "sportloan.GO/service/equipment"
)

var ErrBadImage = errors.New("uploaded file is not a decodable image")

const thumbWidth = 480
const webpQuality = 80

type MediaService struct {
	equipment *equipmentService.EquipmentService
	dir       string
}

func NewMediaService(db *gorm.DB) *MediaService {
	dir := "media/equipment"
	if config.AppConfig != nil && config.AppConfig.MediaDir != "" {
		dir = config.AppConfig.MediaDir
	}
	return &MediaService{
		equipment: equipmentService.NewEquipmentService(db),
		dir:       dir,
	}
}

// StorePhoto decodes the upload, scales it down to a thumbnail and writes it
// as webp under the media directory. The stored file name is recorded on the
// item as its photo ref.
func (s *MediaService) StorePhoto(itemID uint, r io.Reader) (string, error) {
	if _, err := s.equipment.Get(itemID); err != nil {
		return "", err
	}

	src, err := imaging.Decode(r, imaging.AutoOrientation(true))
	if err != nil {
		return "", ErrBadImage
	}
	thumb := src
	if src.Bounds().Dx() > thumbWidth {
		thumb = imaging.Resize(src, thumbWidth, 0, imaging.Lanczos)
	}

	if err := os.MkdirAll(s.dir, 0o755); err != nil {
		return "", err
	}
	name := fmt.Sprintf("item_%d.webp", itemID)
	path := filepath.Join(s.dir, name)
	f, err := os.Create(path)
	if err != nil {
		return "", err
	}
	defer f.Close()
	if err := webp.Encode(f, thumb, &webp.Options{Quality: webpQuality}); err != nil {
		return "", err
	}

	if err := s.equipment.SetPhotoRef(itemID, name); err != nil {
		return "", err
	}
	return name, nil
}

// PhotoPath resolves a stored photo ref to a file path.
func (s *MediaService) PhotoPath(ref string) string {
	return filepath.Join(s.dir, filepath.Base(ref))
}
