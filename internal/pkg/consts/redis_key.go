package consts

const (
	CategoryTreeKey        = "category:tree:"
	CategoryTreeVersionKey = "category:tree:version"
	OptimizerBucketKey     = "optimizer:bucket:"
)

const (
	UploadPartitionLock = "lock:upload:partition:"
)
