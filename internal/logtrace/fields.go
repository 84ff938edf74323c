package logtrace

// Fields is a type alias for structured log fields
type Fields map[string]interface{}

const (
	FieldCorrelationID = "correlation_id"
	FieldModule        = "module"
	FieldError         = "error"
	FieldPath          = "path"
	FieldSize          = "size"
	FieldIndex         = "index"
	FieldTotal         = "total"
	FieldState         = "state"
	FieldElapsedMs     = "elapsed_ms"

	ValueEnumerator = "enumerator"
	ValueController = "controller"
	ValueManifest   = "manifest"
	ValueDisplay    = "display"
)
