package errors

// ErrorCode identifies an application error category in API responses
type ErrorCode int32

const (
	ErrorCode_HTTP_OK ErrorCode = 200

	// General
	ErrorCode_INTERNAL         ErrorCode = 1000
	ErrorCode_INVALID_ARGUMENT ErrorCode = 1001
	ErrorCode_NOT_FOUND        ErrorCode = 1002
	ErrorCode_UNAUTHENTICATED  ErrorCode = 1003
	ErrorCode_INVALID_PAYLOAD  ErrorCode = 1004

	// Authentication
	ErrorCode_AUTH_INVALID_TOKEN ErrorCode = 2000
	ErrorCode_AUTH_TOKEN_EXPIRED ErrorCode = 2001

	// Records
	ErrorCode_RECORD_NOT_FOUND     ErrorCode = 3000
	ErrorCode_RECORD_PENDING       ErrorCode = 3001
	ErrorCode_RECORD_REFRESH_STALE ErrorCode = 3002

	// Reports
	ErrorCode_REPORT_DECODE_FAILED ErrorCode = 4000

	// Integrations
	ErrorCode_INTEGRATION_DOWNLOAD_FAILED ErrorCode = 5000
	ErrorCode_INTEGRATION_STORAGE_FAILED  ErrorCode = 5001
	ErrorCode_INTEGRATION_CACHE_FAILED    ErrorCode = 5002
)

var errorCodeNames = map[ErrorCode]string{
	ErrorCode_HTTP_OK:                     "HTTP_OK",
	ErrorCode_INTERNAL:                    "INTERNAL",
	ErrorCode_INVALID_ARGUMENT:            "INVALID_ARGUMENT",
	ErrorCode_NOT_FOUND:                   "NOT_FOUND",
	ErrorCode_UNAUTHENTICATED:             "UNAUTHENTICATED",
	ErrorCode_INVALID_PAYLOAD:             "INVALID_PAYLOAD",
	ErrorCode_AUTH_INVALID_TOKEN:          "AUTH_INVALID_TOKEN",
	ErrorCode_AUTH_TOKEN_EXPIRED:          "AUTH_TOKEN_EXPIRED",
	ErrorCode_RECORD_NOT_FOUND:            "RECORD_NOT_FOUND",
	ErrorCode_RECORD_PENDING:              "RECORD_PENDING",
	ErrorCode_RECORD_REFRESH_STALE:        "RECORD_REFRESH_STALE",
	ErrorCode_REPORT_DECODE_FAILED:        "REPORT_DECODE_FAILED",
	ErrorCode_INTEGRATION_DOWNLOAD_FAILED: "INTEGRATION_DOWNLOAD_FAILED",
	ErrorCode_INTEGRATION_STORAGE_FAILED:  "INTEGRATION_STORAGE_FAILED",
	ErrorCode_INTEGRATION_CACHE_FAILED:    "INTEGRATION_CACHE_FAILED",
}

// String returns the symbolic name of the code
func (c ErrorCode) String() string {
	if name, ok := errorCodeNames[c]; ok {
		return name
	}
	return "UNKNOWN"
}
