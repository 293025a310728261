package enums

type ExtractorCategory string

const (
	ExtractorCategoryCatalog   ExtractorCategory = "catalog"
	ExtractorCategoryStreaming ExtractorCategory = "streaming"
	ExtractorCategoryBroadcast ExtractorCategory = "broadcast"
	ExtractorCategoryClips     ExtractorCategory = "clips"
	ExtractorCategoryRadio     ExtractorCategory = "radio"
)
