package audit

import (
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/google/uuid"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	gormlogger "gorm.io/gorm/logger"
)

// Entry is one recorded store mutation.
type Entry struct {
	ID        string `gorm:"primaryKey;size:36"`
	Action    string `gorm:"size:32;not null"`
	Username  string `gorm:"size:191;index"`
	Actor     string `gorm:"size:191"`
	Detail    string `gorm:"size:255"`
	CreatedAt time.Time
}

// Recorder appends mutation entries to a local sqlite file.
type Recorder struct{ db *gorm.DB }

// Open creates or opens the audit database at path and migrates the schema.
func Open(path string) (*Recorder, error) {
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return nil, fmt.Errorf("mkdir audit dir: %w", err)
	}
	gdb, err := gorm.Open(sqlite.Open(path), &gorm.Config{
		Logger: gormlogger.Default.LogMode(gormlogger.Silent),
	})
	if err != nil {
		return nil, fmt.Errorf("open audit db: %w", err)
	}
	if err := gdb.AutoMigrate(&Entry{}); err != nil {
		return nil, fmt.Errorf("migrate audit db: %w", err)
	}
	return &Recorder{db: gdb}, nil
}

func (r *Recorder) Record(action, username, actor, detail string) error {
	return r.db.Create(&Entry{
		ID:       uuid.NewString(),
		Action:   action,
		Username: username,
		Actor:    actor,
		Detail:   detail,
	}).Error
}

// Recent returns up to limit entries, newest first.
func (r *Recorder) Recent(limit int) ([]Entry, error) {
	var out []Entry
	err := r.db.Order("created_at desc").Limit(limit).Find(&out).Error
	return out, err
}
