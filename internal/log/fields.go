package log

// Common field names for structured logging
const (
	FieldComponent  = "component"
	FieldClientIP   = "client_ip"
	FieldMethod     = "method"
	FieldPath       = "path"
	FieldStatusCode = "status_code"
	FieldDuration   = "duration_ms"
	FieldError      = "error"
	FieldOperation  = "operation"

	FieldOrderID     = "order_id"
	FieldCategoryID  = "category_id"
	FieldAmountCents = "amount_cents"
	FieldOrderType   = "order_type"
	FieldFilterFrom  = "filter_from"
	FieldFilterTo    = "filter_to"
)

// Components defines standard component names
const (
	ComponentApp     = "app"
	ComponentHTTP    = "http"
	ComponentStorage = "storage"
	ComponentAMQP    = "amqp"
	ComponentWorker  = "worker"
	ComponentReport  = "report"
)

// Operations defines standard operation names
const (
	OpCreate   = "create"
	OpRead     = "read"
	OpUpdate   = "update"
	OpDelete   = "delete"
	OpQuery    = "query"
	OpSnapshot = "snapshot"
	OpStartup  = "startup"
	OpShutdown = "shutdown"
)
