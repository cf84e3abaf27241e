package constants

// Common error messages
const (
	ErrInvalidJSON        = "Invalid JSON"
	ErrNoFileProvided     = "No file provided; attach an Excel file in the \"file\" field"
	ErrNoFileSelected     = "No file selected"
	ErrInvalidFileType    = "Invalid file type; upload an Excel file (.xlsx or .xls)"
	ErrEmptyReport        = "The uploaded report does not contain any data rows"
	ErrUnreadableReport   = "We could not read this file as a valid Excel report. Please check the file format and try again."
	ErrMethodNotAllowed   = "Method Not Allowed"
	ErrProcessingFailed   = "Processing failed"
	ErrStorageUnavailable = "Object storage is not enabled for this deployment"
)

// Content Types
const (
	ContentTypeJSON   = "application/json"
	ContentTypeHeader = "Content-Type"
)

// Date formats
const (
	DateTimeFormat = "2006-01-02 15:04:05"
	DateFormat     = "2006-01-02"
)

// NBSP shows up in headers exported from some branch-office systems.
const NBSP = " "
