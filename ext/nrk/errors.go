package nrk

import "mex/util"

var (
	ErrVideoIDNotFound   = &util.Error{Message: "media element id not found in page"}
	ErrTitleNotFound     = &util.Error{Message: "title not found"}
	ErrStreamURLNotFound = &util.Error{Message: "media element has no stream URL"}
	ErrNoCaptionCues     = &util.Error{Message: "caption document has no cues"}
)
