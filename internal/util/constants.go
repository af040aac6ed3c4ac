package util

const (
	SourceLocal = "local"
	SourceMinio = "minio"
)

const (
	MimeJSON = "application/json"
	MimePNG  = "image/png"
	MimeText = "text/"
	MimeCSV  = "text/csv"
)

const (
	DefaultPNGWidth  = 800
	DefaultPNGHeight = 500
	MaxPNGSide       = 4096
)

var AllowedDatasetMimeTypes = []string{MimeText, MimeCSV, "application/csv"}
