package livestreamfails

import "mex/util"

var ErrClipVideoNotFound = &util.Error{Message: "clip has no video id"}
