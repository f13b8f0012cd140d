package errno

import "fmt"

// code=0 success
// code=4xx client errors
// code=5xx server errors
// code=2xxxx business errors

type Errno struct {
	Code    int
	Message string
}

// Error implements the error interface.
func (e *Errno) Error() string {
	return e.Message
}

var (
	OK = &Errno{Code: 200, Message: "Success"}

	ErrInvalidParam = &Errno{Code: 400, Message: "Invalid parameter"}
	ErrUnauthorized = &Errno{Code: 401, Message: "Unauthorized"}
	ErrNotFound     = &Errno{Code: 404, Message: "Not found"}

	ErrInternalServer = &Errno{Code: 500, Message: "Internal server error"}
	ErrStorage        = &Errno{Code: 502, Message: "Storage error"}
	ErrUnknown        = &Errno{Code: 510, Message: "Unknown error"}

	// business error codes
	ErrEncodeJobNotFound   = &Errno{Code: 20001, Message: "Encode job not found"}
	ErrUnsupportedFormat   = &Errno{Code: 20002, Message: "Unsupported target format"}
	ErrQueueFull           = &Errno{Code: 20003, Message: "Job queue is full"}
	ErrUserUUIDRequired    = &Errno{Code: 20004, Message: "User UUID is required"}
	ErrVideoUUIDRequired   = &Errno{Code: 20005, Message: "Video UUID is required"}
	ErrSourceKeyRequired   = &Errno{Code: 20006, Message: "Source object key is required"}
	ErrFormatRequired      = &Errno{Code: 20007, Message: "Target format is required"}
	ErrWatermarkPathNeeded = &Errno{Code: 20008, Message: "Watermark path is required"}
	ErrJobUUIDRequired     = &Errno{Code: 20009, Message: "Job UUID is required"}
)

// BizError attaches an underlying cause to a coded error.
type BizError struct {
	*Errno
	cause error
}

// NewBizError wraps cause under the given code.
func NewBizError(code *Errno, cause error) *BizError {
	return &BizError{Errno: code, cause: cause}
}

func (e *BizError) Error() string {
	if e.cause == nil {
		return e.Message
	}
	return fmt.Sprintf("%s: %v", e.Message, e.cause)
}

func (e *BizError) Unwrap() error { return e.cause }
