// Package history is the render-history store: an opt-in side channel
// that records one RenderRecord per render made by the CLI runner or the
// MCP server; Template.Render itself records nothing. The core
// engine stays stateless per render; this package only observes renders
// after the fact, it never feeds them.
package history

import (
	"crypto/sha256"
	"encoding/hex"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/glebarez/sqlite"
	"gorm.io/datatypes"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

// RenderConfig is the formatting configuration in effect for a render,
// persisted as a JSON column so historical rows remain self-describing
// even if the caller's default configuration changes later.
type RenderConfig struct {
	Indent     string `json:"indent"`
	LineEnding string `json:"line_ending"`
}

// RenderRecord is one completed render.
type RenderRecord struct {
	ID           uint           `gorm:"primaryKey"`
	TemplatePath string         `gorm:"type:varchar(255);index"`
	Language     string         `gorm:"type:varchar(50);index"`
	Output       string         `gorm:"type:text"`       // full rendered output, for --diff
	OutputDigest string         `gorm:"type:varchar(64)"` // SHA256 of rendered output
	ImportCount  int            `gorm:"default:0"`
	DurationMS   int64          `gorm:"default:0"`
	Config       datatypes.JSON `gorm:"type:jsonb"`
	CreatedAt    time.Time      `gorm:"autoCreateTime;index"`
}

func (RenderRecord) TableName() string { return "render_records" }

// Digest returns the hex SHA256 digest of rendered output, for callers
// building a RecordInput.
func Digest(output string) string {
	sum := sha256.Sum256([]byte(output))
	return hex.EncodeToString(sum[:])
}

// Store wraps a gorm connection to the render-history database.
type Store struct {
	db *gorm.DB
}

// Open connects to the sqlite database at dsn (a file path, or ":memory:"
// for a transient in-process store) and migrates the render_records table.
func Open(dsn string, debug bool) (*Store, error) {
	cfg := &gorm.Config{}
	if debug {
		cfg.Logger = logger.Default.LogMode(logger.Info)
	}

	db, err := gorm.Open(sqlite.Open(dsn), cfg)
	if err != nil {
		return nil, fmt.Errorf("history: connect: %w", err)
	}

	if err := db.AutoMigrate(&RenderRecord{}); err != nil {
		return nil, fmt.Errorf("history: migrate: %w", err)
	}

	return &Store{db: db}, nil
}

// RecordInput is the information one Render call contributes to history.
type RecordInput struct {
	TemplatePath string
	Language     string
	Output       string
	OutputDigest string
	ImportCount  int
	Duration     time.Duration
	Config       RenderConfig
}

// Record persists one render.
func (s *Store) Record(in RecordInput) error {
	cfgJSON, err := json.Marshal(in.Config)
	if err != nil {
		return fmt.Errorf("history: marshal config: %w", err)
	}

	rec := RenderRecord{
		TemplatePath: in.TemplatePath,
		Language:     in.Language,
		Output:       in.Output,
		OutputDigest: in.OutputDigest,
		ImportCount:  in.ImportCount,
		DurationMS:   in.Duration.Milliseconds(),
		Config:       datatypes.JSON(cfgJSON),
	}
	if err := s.db.Create(&rec).Error; err != nil {
		return fmt.Errorf("history: record: %w", err)
	}
	return nil
}

// Recent returns the most recent limit records, newest first.
func (s *Store) Recent(limit int) ([]RenderRecord, error) {
	var recs []RenderRecord
	if err := s.db.Order("created_at desc").Limit(limit).Find(&recs).Error; err != nil {
		return nil, fmt.Errorf("history: recent: %w", err)
	}
	return recs, nil
}

// LastForTemplate returns the most recent record for templatePath, or nil
// if none exists yet — used by the CLI's --diff flag to compare a fresh
// render against the last recorded one.
func (s *Store) LastForTemplate(templatePath string) (*RenderRecord, error) {
	var rec RenderRecord
	err := s.db.Where("template_path = ?", templatePath).Order("created_at desc").First(&rec).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("history: last for template: %w", err)
	}
	return &rec, nil
}

// Close releases the underlying database connection.
func (s *Store) Close() error {
	sqlDB, err := s.db.DB()
	if err != nil {
		return err
	}
	return sqlDB.Close()
}
