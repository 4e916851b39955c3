package backup

import (
	"crypto/sha256"
	"encoding/hex"
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"github.com/gofrs/flock"
)

// ErrRepoBusy reports that another process already holds the run lock for
// this backup repository.
var ErrRepoBusy = errors.New("another savesync run is already in progress")

// defaultLockPath derives the lock file from the absolute repository root,
// so two processes working the same repo contend and unrelated repos do not.
// The file lives in the system temp directory, never inside the worktree,
// where it would trip the clean-status check.
func defaultLockPath(repoRoot string) string {
	abs, err := filepath.Abs(repoRoot)
	if err != nil {
		abs = repoRoot
	}
	sum := sha256.Sum256([]byte(abs))
	return filepath.Join(os.TempDir(), fmt.Sprintf("savesync-%s.lock", hex.EncodeToString(sum[:4])))
}

func acquireLock(path string) (func(), error) {
	fl := flock.New(path)
	ok, err := fl.TryLock()
	if err != nil {
		return nil, fmt.Errorf("locking %s: %w", path, err)
	}
	if !ok {
		return nil, fmt.Errorf("%w (lock %s)", ErrRepoBusy, path)
	}
	return func() { _ = fl.Unlock() }, nil
}
