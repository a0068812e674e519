package tracing

// Span names.
const (
	SpanSubmit = "registration.submit"
)

// Attribute keys recorded on SpanSubmit.
const (
	AttrValid        = "registration.valid"
	AttrFailedFields = "registration.failed_fields"
	AttrID           = "registration.id"
)
