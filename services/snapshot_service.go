// services/snapshot_service.go
package services

import (
	"log"
	"time"

	"restropos-backend/store"

	"github.com/robfig/cron/v3"
)

// SnapshotService copies the persisted aggregates to dated backup keys once
// a day, so a bad write never costs more than a day of data.
type SnapshotService struct {
	blobs store.BlobStore
	cron  *cron.Cron
}

func NewSnapshotService(blobs store.BlobStore) *SnapshotService {
	return &SnapshotService{blobs: blobs, cron: cron.New()}
}

// StartScheduler takes an immediate snapshot and then runs daily at 3 AM.
func (s *SnapshotService) StartScheduler() {
	s.Snapshot()

	if _, err := s.cron.AddFunc("0 3 * * *", s.Snapshot); err != nil {
		log.Printf("Failed to schedule snapshots: %v", err)
		return
	}
	s.cron.Start()
	log.Println("Snapshot scheduler started")
}

func (s *SnapshotService) Stop() {
	if s.cron != nil {
		s.cron.Stop()
	}
}

// Snapshot copies the current settings and order blobs under backup keys.
func (s *SnapshotService) Snapshot() {
	stamp := time.Now().Format("20060102")
	for _, key := range []string{store.SettingsKey, store.OrdersKey} {
		data, found, err := s.blobs.Load(key)
		if err != nil {
			log.Printf("Snapshot: load %s: %v", key, err)
			continue
		}
		if !found {
			continue
		}
		backupKey := key + ":backup:" + stamp
		if err := s.blobs.Save(backupKey, data); err != nil {
			log.Printf("Snapshot: save %s: %v", backupKey, err)
		}
	}
}
