package shared

// Asynq task types
const (
	TypeReconcilePublishedCounts = "author:reconcile_published_counts"
)

// Queue names
const (
	QueueDefault = "default"
	QueueAuthor  = "author"
)
