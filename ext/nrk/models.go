package nrk

// mediaElement is the PSAPI payload for one media item.
type mediaElement struct {
	Title       string `json:"title"`
	Description string `json:"description"`
	MediaURL    string `json:"mediaUrl"`
	UsageRights struct {
		IsGeoBlocked bool `json:"isGeoBlocked"`
	} `json:"usageRights"`
	Images struct {
		WebImages []webImage `json:"webImages"`
	} `json:"images"`
}

type webImage struct {
	ImageURL   string `json:"imageUrl"`
	PixelWidth int64  `json:"pixelWidth"`
}

// widestImage picks the highest-resolution thumbnail variant.
func (element *mediaElement) widestImage() string {
	var best webImage
	for _, image := range element.Images.WebImages {
		if image.ImageURL == "" {
			continue
		}
		if image.PixelWidth >= best.PixelWidth {
			best = image
		}
	}
	return best.ImageURL
}
