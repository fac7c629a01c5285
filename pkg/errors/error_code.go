package errors

// ErrorCode represents a unique error code for identifying different error types.
type ErrorCode int

const (
	// General errors (1-99)
	ErrCodeUnknown ErrorCode = 1

	// Validation errors (100-199)
	ErrCodeInvalidParameter     ErrorCode = 100
	ErrCodeInvalidConfiguration ErrorCode = 101
	ErrCodeInvalidType          ErrorCode = 102
	ErrCodeInvalidPeriod        ErrorCode = 103
	ErrCodeMissingParameter     ErrorCode = 104
	ErrCodeInvalidStdDev        ErrorCode = 105
	ErrCodeInvalidForwardWindow ErrorCode = 106
	ErrCodeInvalidVersion       ErrorCode = 107

	// Data errors (200-299)
	ErrCodeMissingColumn   ErrorCode = 200
	ErrCodeMalformedNumber ErrorCode = 201
	ErrCodeInvalidDate     ErrorCode = 202
	ErrCodeDuplicateDate   ErrorCode = 203
	ErrCodeQueryFailed     ErrorCode = 204
	ErrCodeNoDataFound     ErrorCode = 205
	ErrCodeLengthMismatch  ErrorCode = 206

	// Indicator errors (300-399)
	ErrCodeIndicatorCalculation ErrorCode = 300

	// Dataset I/O errors (400-499)
	ErrCodeSourceReadFailed    ErrorCode = 400
	ErrCodeExportFailed        ErrorCode = 401
	ErrCodeUnsupportedFormat   ErrorCode = 402
	ErrCodeSchemaVersionFailed ErrorCode = 403

	// Market data errors (700-799)
	ErrCodeMarketDataFetchFailed ErrorCode = 700
	ErrCodeMarketDataWriteFailed ErrorCode = 701
	ErrCodeMarketDataParseFailed ErrorCode = 702
	ErrCodeInvalidTimespan       ErrorCode = 703
	ErrCodeInvalidProvider       ErrorCode = 704
	ErrCodeInvalidMode           ErrorCode = 705
)
