package database

import (
	"fmt"

	"mex/models"

	"gorm.io/gorm"
)

// GetDefaultMedias returns the cached media of a previous extraction,
// each with its default format preloaded. An empty list is a cache miss.
func GetDefaultMedias(
	extractorCodeName string,
	contentID string,
) ([]*models.Media, error) {
	var mediaList []*models.Media

	err := DB.
		Where(&models.Media{
			ExtractorCodeName: extractorCodeName,
			ContentID:         contentID,
		}).
		Preload("Format", "is_default = ?", true).
		Find(&mediaList).
		Error
	if err != nil {
		return nil, fmt.Errorf("failed to get stored media list: %w", err)
	}
	return mediaList, nil
}

func StoreMedias(mediaList []*models.Media) error {
	for _, media := range mediaList {
		if err := StoreMedia(media); err != nil {
			return err
		}
	}
	return nil
}

// StoreMedia persists one media row together with its default format.
// The remaining formats are not cached, a miss re-runs the extractor
// anyway.
func StoreMedia(media *models.Media) error {
	format := media.Format
	if format == nil {
		format = media.GetDefaultFormat()
	}
	return DB.Transaction(func(tx *gorm.DB) error {
		if err := tx.Omit("Format").Create(media).Error; err != nil {
			return fmt.Errorf("failed to create media: %w", err)
		}
		if format != nil {
			format.MediaID = media.ID
			if err := tx.Where(models.MediaFormat{
				MediaID:  format.MediaID,
				FormatID: format.FormatID,
				Type:     format.Type,
			}).FirstOrCreate(format).Error; err != nil {
				return fmt.Errorf("failed to get or create format: %w", err)
			}
			media.Format = format
		}
		return nil
	})
}
