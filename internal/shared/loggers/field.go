package loggers

const (
	FieldApp        = "app"
	FieldComponent  = "component"
	FieldHttpMethod = "http_method"
	FieldHttpPath   = "http_path"
	FieldHttpStatus = "http_status"
	FieldHttpRoute  = "http_route"

	FieldDuration   = "duration"
	FieldRequestID  = "request_id"
	FieldErrorStack = "error_stack"
	FieldErrorCode  = "error_code"

	FieldPartitionId = "partition_id"

	FieldAccountID      = "account_id"
	FieldRecordKind     = "record_kind"
	FieldGranularity    = "granularity"
	FieldBucketStart    = "bucket_start"
	FieldWindow         = "window"
	FieldBatchID        = "batch_id"
	FieldSubscriptionID = "subscription_id"
	FieldDriver         = "driver"
)
