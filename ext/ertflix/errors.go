package ertflix

import "mex/util"

var (
	ErrVideoURLNotFound = &util.Error{Message: "video URL not found in player config"}
	ErrTitleNotFound    = &util.Error{Message: "page has no og:title"}
)
