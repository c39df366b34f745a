package db

import (
	"errors"
	"os"
	"path/filepath"
	"strings"

	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

// DefaultDatabasePath keeps the sqlite database in process memory only.
const DefaultDatabasePath = "file::memory:?cache=shared"

// Open 은 sqlite 연결을 열고 구성원/심방 테이블을 자동 마이그레이션합니다.
// databasePath 가 비어 있으면 메모리 데이터베이스를 사용합니다.
func Open(databasePath string, debug bool) (*gorm.DB, error) {
	path := strings.TrimSpace(databasePath)
	if path == "" {
		path = DefaultDatabasePath
	}

	if err := ensureParentDir(path); err != nil {
		return nil, err
	}

	level := logger.Silent
	if debug {
		level = logger.Info
	}

	gdb, err := gorm.Open(sqlite.Open(path), &gorm.Config{Logger: logger.Default.LogMode(level)})
	if err != nil {
		return nil, err
	}

	sqlDB, err := gdb.DB()
	if err != nil {
		return nil, err
	}
	// a single connection keeps a memory database alive and serializes writers
	sqlDB.SetMaxOpenConns(1)

	if err := Migrate(gdb); err != nil {
		return nil, err
	}
	return gdb, nil
}

// Migrate creates the member and visitation tables.
func Migrate(gdb *gorm.DB) error {
	return gdb.AutoMigrate(&Member{}, &Visitation{})
}

func ensureParentDir(path string) error {
	if strings.HasPrefix(path, "file:") || path == ":memory:" {
		return nil
	}

	dir := filepath.Dir(path)
	if dir == "." || dir == "" {
		return nil
	}

	info, err := os.Stat(dir)
	if err == nil {
		if !info.IsDir() {
			return errors.New("database path parent is not a directory")
		}
		return nil
	}

	if os.IsNotExist(err) {
		return os.MkdirAll(dir, 0o755)
	}

	return err
}
