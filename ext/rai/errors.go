package rai

import "mex/util"

var (
	ErrTitleNotFound        = &util.Error{Message: "title not found"}
	ErrStreamURLNotFound    = &util.Error{Message: "no stream URL in media data"}
	ErrRelinkerURLNotFound  = &util.Error{Message: "relinker URL not found in page"}
	ErrAudioNotFound        = &util.Error{Message: "audio entry not found in list page"}
	ErrInvalidListItem      = &util.Error{Message: "list item missing required attributes"}
	ErrPlaylistDataNotFound = &util.Error{Message: "playlist metadata not found in page"}
)
