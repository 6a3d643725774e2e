package service

import (
	"encoding/hex"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"strings"
	"time"

	"postsapi/app/repositories"

	"github.com/dgraph-io/badger/v4"
	"golang.org/x/crypto/sha3"
)

// DigestSuffix is appended to a backup file name to name its digest file.
const DigestSuffix = ".sha3"

// ErrDigestMismatch is returned when a backup does not match its digest.
var ErrDigestMismatch = errors.New("backup digest mismatch")

// Backup streams a full badger backup of db into dir and writes a SHA3-256
// digest next to it. It returns the backup file path.
func Backup(db *badger.DB, dir string) (string, error) {
	if err := os.MkdirAll(dir, 0755); err != nil {
		return "", fmt.Errorf("failed to create backup directory: %w", err)
	}

	backupFile := filepath.Join(dir, fmt.Sprintf("backup_%d.db", time.Now().Unix()))
	f, err := os.Create(backupFile)
	if err != nil {
		return "", fmt.Errorf("failed to create backup file: %w", err)
	}
	defer f.Close()

	h := sha3.New256()
	if _, err := db.Backup(io.MultiWriter(f, h), 0); err != nil {
		return "", fmt.Errorf("failed to backup database: %w", err)
	}
	if err := f.Sync(); err != nil {
		return "", err
	}

	line := hex.EncodeToString(h.Sum(nil)) + "  " + filepath.Base(backupFile) + "\n"
	if err := os.WriteFile(backupFile+DigestSuffix, []byte(line), 0644); err != nil {
		return "", fmt.Errorf("failed to write digest: %w", err)
	}
	return backupFile, nil
}

// VerifyBackup checks backupFile against its digest file. A backup without
// a digest file is accepted; the boolean reports whether one was checked.
func VerifyBackup(backupFile string) (bool, error) {
	data, err := os.ReadFile(backupFile + DigestSuffix)
	if errors.Is(err, os.ErrNotExist) {
		return false, nil
	}
	if err != nil {
		return false, fmt.Errorf("failed to read digest: %w", err)
	}
	fields := strings.Fields(string(data))
	if len(fields) == 0 {
		return false, fmt.Errorf("empty digest file %s", backupFile+DigestSuffix)
	}
	want := fields[0]

	f, err := os.Open(backupFile)
	if err != nil {
		return false, err
	}
	defer f.Close()

	h := sha3.New256()
	if _, err := io.Copy(h, f); err != nil {
		return false, fmt.Errorf("failed to hash backup: %w", err)
	}
	if got := hex.EncodeToString(h.Sum(nil)); got != want {
		return true, fmt.Errorf("%w: expected %s, got %s", ErrDigestMismatch, want, got)
	}
	return true, nil
}

// Restore loads backupFile into a fresh badger database and moves it to
// dbPath. The load runs in a staging directory next to dbPath, and an
// existing database is only replaced once the backup has loaded cleanly.
func Restore(backupFile, dbPath string, logger *slog.Logger) error {
	fi, err := os.Stat(backupFile)
	if err != nil {
		return fmt.Errorf("backup file does not exist: %s", backupFile)
	}
	if fi.Size() == 0 {
		return fmt.Errorf("backup file is empty: %s", backupFile)
	}

	staging := dbPath + ".restore"
	if err := os.RemoveAll(staging); err != nil {
		return fmt.Errorf("failed to clear staging directory: %w", err)
	}
	if err := loadBackup(backupFile, staging, logger); err != nil {
		os.RemoveAll(staging)
		return err
	}
	return replaceDir(staging, dbPath)
}

func loadBackup(backupFile, dbPath string, logger *slog.Logger) (err error) {
	db, err := repositories.OpenBadger(dbPath, logger)
	if err != nil {
		return err
	}
	defer db.Close()

	f, err := os.Open(backupFile)
	if err != nil {
		return fmt.Errorf("failed to open backup file: %w", err)
	}
	defer f.Close()

	defer func() {
		if r := recover(); r != nil {
			err = fmt.Errorf("panic occurred during restore: %v", r)
		}
	}()
	if err := db.Load(f, 4); err != nil {
		return fmt.Errorf("failed to restore database: %w", err)
	}
	return nil
}

// replaceDir moves src to dst. A previous dst is kept aside until the move
// succeeds and put back if it fails.
func replaceDir(src, dst string) error {
	old := dst + ".old"
	if err := os.RemoveAll(old); err != nil {
		return err
	}
	if exists(dst) {
		if err := os.Rename(dst, old); err != nil {
			return fmt.Errorf("failed to move existing database aside: %w", err)
		}
	}
	if err := os.Rename(src, dst); err != nil {
		if exists(old) {
			os.Rename(old, dst)
		}
		return fmt.Errorf("failed to move restored database into place: %w", err)
	}
	return os.RemoveAll(old)
}
