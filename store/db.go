package store

import "github.com/Make-USA-LLC/floortrack/internal/models"

// DB is the local persistence interface the session engine depends on.
type DB interface {
	// SaveSnapshot overwrites the persisted session snapshot.
	SaveSnapshot(snap *models.Snapshot) error
	// LoadSnapshot returns the persisted session snapshot, or nil if none
	// has been saved yet.
	LoadSnapshot() (*models.Snapshot, error)
	// ClearSnapshot removes the persisted session snapshot.
	ClearSnapshot() error
	// InsertQueueItem persists a not-yet-started session and returns its ID.
	InsertQueueItem(item *models.QueueItem) (string, error)
	// DeleteQueueItem removes a queue item by ID.
	DeleteQueueItem(id string) error
	// QueueItems lists pending queue items oldest first.
	QueueItems() ([]models.QueueItem, error)
	// SubscribeQueue registers a callback invoked with the full queue list
	// after every queue mutation.
	SubscribeQueue(onList func([]models.QueueItem))
	// SaveReport archives a final session report.
	SaveReport(r *models.Report) error
	// Reports lists archived reports oldest first.
	Reports() ([]models.Report, error)
	// Close ends the database connection.
	Close() error
}
