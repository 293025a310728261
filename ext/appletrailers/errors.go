package appletrailers

import "mex/util"

var (
	ErrTrailerInfoNotFound = &util.Error{Message: "trailer info not found in playlist markup"}
	ErrUnknownSection      = &util.Error{Message: "unknown trailers section"}
)
