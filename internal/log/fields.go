package log

// Common field names for structured logging
const (
	FieldComponent   = "component"
	FieldError       = "error"
	FieldOperation   = "operation"
	FieldFile        = "file"
	FieldPage        = "page"
	FieldRunID       = "run_id"
	FieldMonth       = "month"
	FieldCategory    = "category"
	FieldVendor      = "vendor"
	FieldVendorCount = "vendor_count"
	FieldRecordCount = "record_count"
	FieldAmount      = "amount"
	FieldCachePath   = "cache_path"
	FieldMode        = "mode"
)

// Components defines standard component names
const (
	ComponentApp       = "app"
	ComponentExtract   = "extract"
	ComponentClassify  = "classify"
	ComponentAggregate = "aggregate"
	ComponentPipeline  = "pipeline"
	ComponentStorage   = "storage"
	ComponentAMQP      = "amqp"
	ComponentWorker    = "worker"
	ComponentSheets    = "sheets"
	ComponentCache     = "cache"
)

// Operations defines standard operation names
const (
	OpExtract   = "extract"
	OpClassify  = "classify"
	OpAggregate = "aggregate"
	OpTrend     = "trend"
	OpPersist   = "persist"
	OpPublish   = "publish"
	OpExport    = "export"
	OpStartup   = "startup"
	OpShutdown  = "shutdown"
)
