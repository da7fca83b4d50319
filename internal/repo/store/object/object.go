package object

import (
	"context"
	"encoding/hex"
	"fmt"
	"log/slog"
	"path/filepath"
	"strings"

	"github.com/keshon/snap/internal/errs"
	"github.com/keshon/snap/internal/fs"
	"github.com/keshon/snap/internal/util"
	"github.com/multiformats/go-multihash"
)

// DigestLen is the length of a rendered digest (160 bits as hex).
const DigestLen = 40

// Status indicates the state of an object on disk.
type Status int

const (
	OK Status = iota
	Missing
	Damaged
)

func (s Status) String() string {
	switch s {
	case OK:
		return "ok"
	case Missing:
		return "missing"
	case Damaged:
		return "damaged"
	}
	return "unknown"
}

// Check is the verification result for one object.
type Check struct {
	Digest string
	Status Status
}

// ObjectContext handles all object-level storage operations (.snap/objects).
type ObjectContext struct {
	ObjectsDir string
	FS         fs.FS
}

// NewObjectContext creates a new ObjectContext.
func NewObjectContext(root string, fs fs.FS) *ObjectContext {
	return &ObjectContext{ObjectsDir: root, FS: fs}
}

// Hash computes the SHA-1 digest of data as lowercase hex.
func Hash(data []byte) (string, error) {
	mh, err := multihash.Sum(data, multihash.SHA1, -1)
	if err != nil {
		return "", fmt.Errorf("multihash: %w", err)
	}
	dec, err := multihash.Decode(mh)
	if err != nil {
		return "", fmt.Errorf("decode multihash: %w", err)
	}
	return hex.EncodeToString(dec.Digest), nil
}

// ValidDigest reports whether s has the shape of a rendered digest.
func ValidDigest(s string) bool {
	if len(s) != DigestLen || strings.ToLower(s) != s {
		return false
	}
	_, err := hex.DecodeString(s)
	return err == nil
}

func (oc *ObjectContext) path(digest string) string {
	return filepath.Join(oc.ObjectsDir, digest)
}

// Put stores data under its digest and returns the digest.
// The object is rewritten even when it already exists; the content is identical.
func (oc *ObjectContext) Put(data []byte) (string, error) {
	digest, err := Hash(data)
	if err != nil {
		return "", err
	}
	if err := util.WriteFileAtomic(oc.FS, oc.path(digest), data); err != nil {
		return "", fmt.Errorf("write object %s: %w", digest, err)
	}
	slog.Debug("object stored", slog.String("digest", digest), slog.Int("size", len(data)))
	return digest, nil
}

// Get reads an object by digest. The content is trusted as stored.
func (oc *ObjectContext) Get(digest string) ([]byte, error) {
	if !ValidDigest(digest) {
		return nil, fmt.Errorf("object %q: %w", digest, errs.ErrNotFound)
	}
	data, err := oc.FS.ReadFile(oc.path(digest))
	if err != nil {
		if oc.FS.IsNotExist(err) {
			return nil, fmt.Errorf("object %s: %w", digest, errs.ErrNotFound)
		}
		return nil, fmt.Errorf("read object %s: %w", digest, err)
	}
	return data, nil
}

// Has checks if an object exists.
func (oc *ObjectContext) Has(digest string) bool {
	return ValidDigest(digest) && oc.FS.Exists(oc.path(digest))
}

// Verify checks a set of digests concurrently and streams results.
// Every digest is reported; per-object failures become a Status, not an error.
// The channel is closed when all digests are checked or ctx is done, so a
// caller that stops reading early must cancel ctx.
func (oc *ObjectContext) Verify(ctx context.Context, digests []string, workers int) <-chan Check {
	out := make(chan Check, 128)
	if workers <= 0 {
		workers = util.WorkerCount()
	}

	go func() {
		defer close(out)
		_ = util.Parallel(digests, workers, func(d string) error {
			if err := ctx.Err(); err != nil {
				return err
			}
			status, _ := oc.VerifyObject(d)
			select {
			case out <- Check{Digest: d, Status: status}:
				return nil
			case <-ctx.Done():
				return ctx.Err()
			}
		})
	}()

	return out
}

// VerifyObject re-hashes a single object and compares it to its name.
func (oc *ObjectContext) VerifyObject(digest string) (Status, error) {
	data, err := oc.FS.ReadFile(oc.path(digest))
	if err != nil {
		if oc.FS.IsNotExist(err) {
			return Missing, nil
		}
		// Treat read errors as a damaged object.
		return Damaged, err
	}

	actual, err := Hash(data)
	if err != nil {
		return Damaged, err
	}
	if actual == digest {
		return OK, nil
	}
	return Damaged, nil
}

// CleanupTemp removes orphaned temp files left by interrupted writes.
func (oc *ObjectContext) CleanupTemp() error {
	entries, err := oc.FS.ReadDir(oc.ObjectsDir)
	if err != nil {
		return err
	}

	for _, e := range entries {
		if e.IsDir() {
			continue
		}
		if strings.HasPrefix(e.Name(), ".tmp-") {
			_ = oc.FS.Remove(filepath.Join(oc.ObjectsDir, e.Name()))
		}
	}
	return nil
}
