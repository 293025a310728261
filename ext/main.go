package ext

import (
	"mex/ext/appletrailers"
	"mex/ext/ertflix"
	"mex/ext/livestreamfails"
	"mex/ext/nrk"
	"mex/ext/rai"
	"mex/models"
)

var List = []*models.Extractor{
	appletrailers.Extractor,
	appletrailers.SectionExtractor,
	ertflix.Extractor,
	livestreamfails.Extractor,
	nrk.Extractor,
	nrk.TVExtractor,
	rai.PlayExtractor,
	rai.PlayLiveExtractor,
	rai.PlayPlaylistExtractor,
	rai.RadioExtractor,
	rai.RadioPlaylistExtractor,
	rai.Extractor,
}
