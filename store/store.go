// Package store connects to the data store and manages session snapshots,
// the project queue, and archived reports
package store

import (
	"encoding/json"
	"errors"
	"io/fs"
	"sync"
	"time"

	bolt "go.etcd.io/bbolt"

	"github.com/Make-USA-LLC/floortrack/internal/models"
	"github.com/Make-USA-LLC/floortrack/internal/timeutil"
)

const (
	snapshotBucket = "session"
	queueBucket    = "queue"
	reportBucket   = "reports"
)

var snapshotKey = []byte("current")

var (
	errKioskRunning = errors.New(
		"is floortrack already running? Only one instance can be active at a time",
	)
	errQueueItemNotFound = errors.New(
		"queue item not found",
	)
)

// Client is a BoltDB database client.
type Client struct {
	*bolt.DB

	mu          sync.Mutex
	subscribers []func([]models.QueueItem)
}

// SaveSnapshot overwrites the persisted session snapshot.
func (c *Client) SaveSnapshot(snap *models.Snapshot) error {
	value, err := json.Marshal(snap)
	if err != nil {
		return err
	}

	return c.Update(func(tx *bolt.Tx) error {
		return tx.Bucket([]byte(snapshotBucket)).Put(snapshotKey, value)
	})
}

// LoadSnapshot returns the persisted session snapshot, or nil if none has
// been saved yet.
func (c *Client) LoadSnapshot() (*models.Snapshot, error) {
	var snap *models.Snapshot

	err := c.View(func(tx *bolt.Tx) error {
		b := tx.Bucket([]byte(snapshotBucket)).Get(snapshotKey)
		if len(b) == 0 {
			return nil
		}

		snap = &models.Snapshot{}

		return json.Unmarshal(b, snap)
	})

	return snap, err
}

// ClearSnapshot removes the persisted session snapshot.
func (c *Client) ClearSnapshot() error {
	return c.Update(func(tx *bolt.Tx) error {
		return tx.Bucket([]byte(snapshotBucket)).Delete(snapshotKey)
	})
}

// InsertQueueItem persists a queue item keyed by its creation time and
// returns the generated ID.
func (c *Client) InsertQueueItem(item *models.QueueItem) (string, error) {
	if item.CreatedAt.IsZero() {
		item.CreatedAt = time.Now()
	}

	key := timeutil.ToKey(item.CreatedAt)
	item.ID = string(key)

	value, err := json.Marshal(item)
	if err != nil {
		return "", err
	}

	err = c.Update(func(tx *bolt.Tx) error {
		return tx.Bucket([]byte(queueBucket)).Put(key, value)
	})
	if err != nil {
		return "", err
	}

	c.notifyQueue()

	return item.ID, nil
}

// DeleteQueueItem removes a queue item by ID.
func (c *Client) DeleteQueueItem(id string) error {
	err := c.Update(func(tx *bolt.Tx) error {
		b := tx.Bucket([]byte(queueBucket))

		if b.Get([]byte(id)) == nil {
			return errQueueItemNotFound
		}

		return b.Delete([]byte(id))
	})
	if err != nil {
		return err
	}

	c.notifyQueue()

	return nil
}

// QueueItems lists pending queue items oldest first.
func (c *Client) QueueItems() ([]models.QueueItem, error) {
	var items []models.QueueItem

	err := c.View(func(tx *bolt.Tx) error {
		cur := tx.Bucket([]byte(queueBucket)).Cursor()

		for k, v := cur.First(); k != nil; k, v = cur.Next() {
			var item models.QueueItem

			err := json.Unmarshal(v, &item)
			if err != nil {
				return err
			}

			items = append(items, item)
		}

		return nil
	})

	return items, err
}

// SubscribeQueue registers a callback invoked with the full queue list after
// every queue mutation.
func (c *Client) SubscribeQueue(onList func([]models.QueueItem)) {
	c.mu.Lock()
	c.subscribers = append(c.subscribers, onList)
	c.mu.Unlock()
}

func (c *Client) notifyQueue() {
	items, err := c.QueueItems()
	if err != nil {
		return
	}

	c.mu.Lock()
	subs := make([]func([]models.QueueItem), len(c.subscribers))
	copy(subs, c.subscribers)
	c.mu.Unlock()

	for _, onList := range subs {
		onList(items)
	}
}

// SaveReport archives a final session report keyed by completion time.
func (c *Client) SaveReport(r *models.Report) error {
	value, err := json.Marshal(r)
	if err != nil {
		return err
	}

	return c.Update(func(tx *bolt.Tx) error {
		return tx.Bucket([]byte(reportBucket)).
			Put(timeutil.ToKey(r.CompletedAt), value)
	})
}

// Reports lists archived reports oldest first.
func (c *Client) Reports() ([]models.Report, error) {
	var reports []models.Report

	err := c.View(func(tx *bolt.Tx) error {
		cur := tx.Bucket([]byte(reportBucket)).Cursor()

		for k, v := cur.First(); k != nil; k, v = cur.Next() {
			var r models.Report

			err := json.Unmarshal(v, &r)
			if err != nil {
				return err
			}

			reports = append(reports, r)
		}

		return nil
	})

	return reports, err
}

// openDB creates or opens a database and locks it.
func openDB(pathToDB string) (*bolt.DB, error) {
	var fileMode fs.FileMode = 0o600

	db, err := bolt.Open(
		pathToDB,
		fileMode,
		&bolt.Options{Timeout: 1 * time.Second},
	)
	if err != nil {
		if errors.Is(err, bolt.ErrDatabaseOpen) ||
			errors.Is(err, bolt.ErrTimeout) {
			return nil, errKioskRunning
		}

		return nil, err
	}

	return db, nil
}

// NewClient returns a wrapper to a BoltDB connection.
func NewClient(dbPath string) (*Client, error) {
	db, err := openDB(dbPath)
	if err != nil {
		return nil, err
	}
	// Create the necessary buckets for storing data if they do not exist already
	err = db.Update(func(tx *bolt.Tx) error {
		for _, name := range []string{snapshotBucket, queueBucket, reportBucket} {
			_, err = tx.CreateBucketIfNotExists([]byte(name))
			if err != nil {
				return err
			}
		}

		return nil
	})
	if err != nil {
		return nil, err
	}

	return &Client{DB: db}, nil
}
