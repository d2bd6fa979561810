// Package backup copies a database to timestamped files, optionally
// gzip-compressed.
package backup

import (
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/dustin/go-humanize"

	"toolkit/pkg/logx"
	"toolkit/pkg/toolio"
)

var (
	// ErrUnsupported is returned for database types without a backend.
	ErrUnsupported = errors.New("unsupported database type")
	// ErrDatabaseMissing is returned when the source database does not exist.
	ErrDatabaseMissing = errors.New("database not found")
)

const stampFormat = "20060102_150405"

// Request is the decoded tool input.
type Request struct {
	DBType         string `json:"db_type"`
	DBName         string `json:"db_name"`
	BackupLocation string `json:"backup_location"`
	Compress       bool   `json:"compress"`
}

// Backend dumps one kind of database.
type Backend interface {
	// Backup writes the contents of database name into dir and returns the
	// files it created. stamp distinguishes this run's files.
	Backup(ctx context.Context, name, dir, stamp string) ([]string, error)
}

// Artifact is a file produced by a backup.
type Artifact struct {
	Path string
	Size int64
}

// Result describes a finished backup.
type Result struct {
	Artifacts []Artifact
	Duration  time.Duration
}

// Service routes requests to the backend for their database type.
type Service struct {
	backends map[string]Backend
	streams  toolio.IO
	now      func() time.Time
	logger   *logx.Logger
}

// NewService creates a service with the given backends keyed by lower-case
// database type.
func NewService(streams toolio.IO, backends map[string]Backend) *Service {
	return &Service{
		backends: backends,
		streams:  streams,
		now:      time.Now,
		logger:   logx.NewLogger("db_backup"),
	}
}

// Run backs up req.DBName into req.BackupLocation.
func (s *Service) Run(ctx context.Context, req Request) (Result, error) {
	dbType := strings.ToLower(strings.TrimSpace(req.DBType))
	compress := "No"
	if req.Compress {
		compress = "Yes"
	}
	s.streams.Printf("🗄️  Database Backup Started\n")
	s.streams.Printf("📦 Type: %s\n", dbType)
	s.streams.Printf("🏷️  Database: %s\n", req.DBName)
	s.streams.Printf("📁 Location: %s\n", req.BackupLocation)
	s.streams.Printf("🗜️  Compress: %s\n", compress)
	s.streams.Printf("%s\n", strings.Repeat("-", 50))

	backend, ok := s.backends[dbType]
	if !ok {
		return Result{}, fmt.Errorf("%w: %q", ErrUnsupported, req.DBType)
	}
	if strings.TrimSpace(req.DBName) == "" {
		return Result{}, fmt.Errorf("%w: empty database name", ErrDatabaseMissing)
	}
	if err := os.MkdirAll(req.BackupLocation, 0755); err != nil {
		return Result{}, fmt.Errorf("failed to create backup location: %w", err)
	}

	start := s.now()
	files, err := backend.Backup(ctx, req.DBName, req.BackupLocation, start.Format(stampFormat))
	if err != nil {
		return Result{}, err
	}

	var result Result
	for _, file := range files {
		path := file
		if req.Compress {
			if path, err = gzipInPlace(file); err != nil {
				return result, err
			}
		}
		info, err := os.Stat(path)
		if err != nil {
			return result, fmt.Errorf("failed to stat backup file: %w", err)
		}
		result.Artifacts = append(result.Artifacts, Artifact{Path: path, Size: info.Size()})
		s.streams.Printf("   ✅ %s (%s)\n", filepath.Base(path), humanize.Bytes(uint64(info.Size())))
	}
	result.Duration = s.now().Sub(start)
	s.logger.Debug("backup of %s wrote %d files", req.DBName, len(result.Artifacts))

	var total int64
	for _, a := range result.Artifacts {
		total += a.Size
	}
	s.streams.Printf("%s\n", strings.Repeat("-", 50))
	s.streams.Printf("📊 Backup Summary:\n")
	s.streams.Printf("   📄 Files: %d\n", len(result.Artifacts))
	s.streams.Printf("   💾 Total size: %s\n", humanize.Bytes(uint64(total)))
	s.streams.Printf("   ⏱️  Took %s\n", result.Duration.Round(time.Millisecond))
	return result, nil
}
