package protocol

const (
	// Protocol/transport validation.
	ErrProtoBadRequest = "E_PROTO_BAD_REQUEST"

	// Command/query layer.
	ErrBadCommand    = "E_BAD_COMMAND"
	ErrInvalidTarget = "E_INVALID_TARGET"
	ErrNoPermission  = "E_NO_PERMISSION"
	ErrInternal      = "E_INTERNAL"
)

var knownCodes = map[string]struct{}{
	ErrProtoBadRequest: {},
	ErrBadCommand:      {},
	ErrInvalidTarget:   {},
	ErrNoPermission:    {},
	ErrInternal:        {},
}

func IsKnownCode(code string) bool {
	if code == "" {
		return true
	}
	_, ok := knownCodes[code]
	return ok
}
