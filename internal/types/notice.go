package types

// NoticeKind styles a transient notification.
type NoticeKind string

const (
	NoticeSuccess NoticeKind = "success"
	NoticeError   NoticeKind = "error"
)

// Notice is a user-facing message shown after an operation.
type Notice struct {
	Kind    NoticeKind `json:"kind"`
	Message string     `json:"message"`
}

func Success(msg string) *Notice { return &Notice{Kind: NoticeSuccess, Message: msg} }

func Failure(msg string) *Notice { return &Notice{Kind: NoticeError, Message: msg} }
