package driver

import (
	"crypto/sha256"
	"encoding/hex"
	"errors"
	"os"
	"path/filepath"
	"sort"
	"sync"
	"time"

	"github.com/vmihailenco/msgpack/v5"

	"ndca/internal/ast"
	"ndca/internal/lang"
	"ndca/internal/source"
)

// Bump when the RulePayload format changes.
const diskCacheSchemaVersion uint16 = 1

// Digest is a SHA-256 content hash.
type Digest [sha256.Size]byte

// HashSource digests a rule's normalized content.
func HashSource(src *source.Source) Digest {
	return sha256.Sum256(src.Content)
}

// DiskCache stores build artifacts per source digest on disk, so `check`
// can skip rebuilding rules whose content has not changed. Thread-safe for
// concurrent access.
type DiskCache struct {
	mu  sync.RWMutex
	dir string
}

// RulePayload caches a rule's build outcome: its variable table and the
// flattened instruction count on success, or the failing diagnostic code.
// The typed tree itself is cheap to rebuild and is not cached.
type RulePayload struct {
	Schema uint16

	Path        string
	ContentHash Digest

	// Build outcome
	Broken    bool
	ErrorCode uint16 // lang.Code of the first diagnostic, when broken

	// Rule shape, for cache-served listings
	VarNames   []string
	VarTypes   []uint8 // lang.Type, parallel to VarNames
	InstrCount int
}

// OpenDiskCache initializes and returns a disk cache at the standard
// location.
func OpenDiskCache(app string) (*DiskCache, error) {
	base := os.Getenv("XDG_CACHE_HOME")
	if base == "" {
		home, err := os.UserHomeDir()
		if err != nil {
			return nil, err
		}
		base = filepath.Join(home, ".cache")
	}
	dir := filepath.Join(base, app)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, err
	}
	return &DiskCache{dir: dir}, nil
}

// OpenDiskCacheAt initializes a disk cache rooted at an explicit directory.
func OpenDiskCacheAt(dir string) (*DiskCache, error) {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, err
	}
	return &DiskCache{dir: dir}, nil
}

func (c *DiskCache) pathFor(key Digest) string {
	hexKey := hex.EncodeToString(key[:])
	// "rules" subdirectory keeps the cache root listable and easy to clear.
	return filepath.Join(c.dir, "rules", hexKey+".mp")
}

// Put serializes and writes a payload to the disk cache.
func (c *DiskCache) Put(key Digest, payload *RulePayload) error {
	if c == nil {
		return nil
	}
	c.mu.Lock()
	defer c.mu.Unlock()

	p := c.pathFor(key)
	if err := os.MkdirAll(filepath.Dir(p), 0o755); err != nil {
		return err
	}
	f, err := os.CreateTemp(filepath.Dir(p), "tmp-*")
	if err != nil {
		return err
	}
	defer func() {
		_ = os.Remove(f.Name())
	}()

	if err := msgpack.NewEncoder(f).Encode(payload); err != nil {
		_ = f.Close()
		return err
	}
	if err := f.Close(); err != nil {
		return err
	}
	// Atomic replace.
	return os.Rename(f.Name(), p)
}

// Get reads and deserializes a payload from the disk cache. A missing entry
// or a schema mismatch is a miss, not an error.
func (c *DiskCache) Get(key Digest, out *RulePayload) (bool, error) {
	if c == nil {
		return false, nil
	}
	c.mu.RLock()
	defer c.mu.RUnlock()

	f, err := os.Open(c.pathFor(key))
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return false, nil
		}
		return false, err
	}
	defer func() {
		_ = f.Close()
	}()
	if err := msgpack.NewDecoder(f).Decode(out); err != nil {
		return false, err
	}
	if out.Schema != diskCacheSchemaVersion {
		return false, nil
	}
	return true, nil
}

// DropAll invalidates the cache, useful after format changes.
func (c *DiskCache) DropAll() error {
	if c == nil {
		return nil
	}
	c.mu.Lock()
	defer c.mu.Unlock()

	old := c.dir + ".old-" + time.Now().Format("20060102150405")
	if err := os.Rename(c.dir, old); err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return nil
		}
		return err
	}
	return os.RemoveAll(old)
}

// PayloadFor summarizes a build outcome for caching.
func PayloadFor(src *source.Source, rule *ast.Rule, buildErr *lang.Error) *RulePayload {
	payload := &RulePayload{
		Schema:      diskCacheSchemaVersion,
		Path:        src.Path,
		ContentHash: HashSource(src),
	}
	if buildErr != nil {
		payload.Broken = true
		payload.ErrorCode = uint16(buildErr.Code)
		return payload
	}

	fn := rule.Transition
	names := make([]string, 0, len(fn.Vars))
	for name := range fn.Vars {
		names = append(names, name)
	}
	sort.Strings(names)
	payload.VarNames = names
	payload.VarTypes = make([]uint8, len(names))
	for i, name := range names {
		payload.VarTypes[i] = uint8(fn.Vars[name])
	}
	payload.InstrCount = len(fn.Statements)
	return payload
}
