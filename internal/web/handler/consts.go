package handler

const (
	// RootPath is the root path of a route group.
	RootPath = "/"

	// ParamID is the route parameter holding a record id.
	ParamID = "id"

	// MsgInvalidBody is returned when a request body cannot be decoded.
	MsgInvalidBody = "Invalid request body"

	// ErrNilDepsFatalLogMsg is used if a required handler dependency is nil.
	ErrNilDepsFatalLogMsg = "router or a handler dependency is nil"
)
