package snapshot

import (
	"context"
	"errors"
	"fmt"
	"path"
	"strings"
	"time"

	"github.com/RoaringBitmap/roaring/v2"
	"github.com/cespare/xxhash"
	"github.com/hupe1980/sievego/blobstore"
	"github.com/hupe1980/sievego/codec"
	"github.com/hupe1980/sievego/internal/conv"
	"github.com/hupe1980/sievego/internal/resource"
)

// FormatVersion is the manifest format written by Save.
const FormatVersion = 1

// PointerName is the blob holding the name of the latest snapshot.
const PointerName = "LATEST"

const (
	payloadSuffix  = ".bin"
	manifestSuffix = ".json"
)

var (
	// ErrInvalidName is returned for empty or reserved snapshot names.
	ErrInvalidName = errors.New("snapshot: invalid name")

	// ErrCorrupt is returned when a payload fails validation.
	ErrCorrupt = errors.New("snapshot: corrupt")

	// ErrUnknownCodec is returned when a manifest names an unregistered codec.
	ErrUnknownCodec = errors.New("snapshot: unknown codec")

	// ErrUnknownCompression is returned for an unsupported compression.
	ErrUnknownCompression = errors.New("snapshot: unknown compression")

	// ErrUnsupportedVersion is returned for manifests newer than FormatVersion.
	ErrUnsupportedVersion = errors.New("snapshot: unsupported format version")
)

// Manifest describes a stored snapshot.
type Manifest struct {
	Version     int       `json:"version"`
	Name        string    `json:"name"`
	N           int       `json:"n"`
	Count       uint64    `json:"count"`
	Compression string    `json:"compression"`
	Payload     string    `json:"payload"`
	PayloadSize int64     `json:"payload_size"`
	Checksum    uint64    `json:"checksum"` // xxhash64 of the payload blob
	CreatedAt   time.Time `json:"created_at"`
}

// Option configures Save.
type Option func(*options)

type options struct {
	compression Compression
	codec       codec.Codec
	resources   *resource.Controller
	setPointer  bool
}

// WithCompression selects the payload compression. Default: CompressionZSTD.
func WithCompression(c Compression) Option {
	return func(o *options) {
		o.compression = c
	}
}

// WithCodec selects the manifest codec. Default: codec.Default.
func WithCodec(c codec.Codec) Option {
	return func(o *options) {
		if c != nil {
			o.codec = c
		}
	}
}

// WithIOLimit caps upload throughput in bytes per second.
func WithIOLimit(bytesPerSec int64) Option {
	return func(o *options) {
		o.resources = resource.NewController(resource.Config{IOLimitBytesPerSec: bytesPerSec})
	}
}

// WithoutPointer leaves LATEST untouched.
func WithoutPointer() Option {
	return func(o *options) {
		o.setPointer = false
	}
}

func applyOptions(opts []Option) options {
	o := options{
		compression: CompressionZSTD,
		codec:       codec.Default,
		setPointer:  true,
	}
	for _, fn := range opts {
		fn(&o)
	}
	return o
}

// validateName accepts slash-separated relative names that stay inside the
// store root.
func validateName(name string) error {
	if name == "" || name == PointerName || strings.ContainsAny(name, "\n\\") {
		return fmt.Errorf("%w: %q", ErrInvalidName, name)
	}
	if path.IsAbs(name) || path.Clean(name) != name {
		return fmt.Errorf("%w: %q is not a clean relative name", ErrInvalidName, name)
	}
	for _, seg := range strings.Split(name, "/") {
		if seg == ".." || seg == "." {
			return fmt.Errorf("%w: %q escapes the store root", ErrInvalidName, name)
		}
	}
	return nil
}

// Save stores primes, the result of a run with bound n, under name.
func Save(ctx context.Context, store blobstore.Store, name string, n int, primes *roaring.Bitmap, opts ...Option) (*Manifest, error) {
	if err := validateName(name); err != nil {
		return nil, err
	}
	o := applyOptions(opts)

	raw, err := primes.MarshalBinary()
	if err != nil {
		return nil, fmt.Errorf("snapshot: encode bitmap: %w", err)
	}
	payload, err := compress(raw, o.compression)
	if err != nil {
		return nil, err
	}

	m := &Manifest{
		Version:     FormatVersion,
		Name:        name,
		N:           n,
		Count:       primes.GetCardinality(),
		Compression: o.compression.String(),
		Payload:     name + payloadSuffix,
		PayloadSize: int64(len(payload)),
		Checksum:    xxhash.Sum64(payload),
		CreatedAt:   time.Now().UTC(),
	}
	manifest, err := codec.Encode(o.codec, m)
	if err != nil {
		return nil, fmt.Errorf("snapshot: encode manifest: %w", err)
	}

	if err := o.resources.AcquireIO(ctx, len(payload)+len(manifest)); err != nil {
		return nil, err
	}
	if err := store.Put(ctx, m.Payload, payload); err != nil {
		return nil, fmt.Errorf("snapshot: write payload: %w", err)
	}
	if err := store.Put(ctx, name+manifestSuffix, manifest); err != nil {
		return nil, fmt.Errorf("snapshot: write manifest: %w", err)
	}
	if o.setPointer {
		if err := store.Put(ctx, PointerName, []byte(name)); err != nil {
			return nil, fmt.Errorf("snapshot: update %s: %w", PointerName, err)
		}
	}
	return m, nil
}

// ReadManifest reads and decodes the manifest of snapshot name.
func ReadManifest(ctx context.Context, store blobstore.Store, name string) (*Manifest, error) {
	if err := validateName(name); err != nil {
		return nil, err
	}
	data, err := store.Get(ctx, name+manifestSuffix)
	if err != nil {
		return nil, err
	}

	var m Manifest
	if _, err := codec.Decode(data, &m); err != nil {
		if errors.Is(err, codec.ErrUnknown) {
			return nil, fmt.Errorf("%w: %w", ErrUnknownCodec, err)
		}
		return nil, fmt.Errorf("%w: manifest: %w", ErrCorrupt, err)
	}
	if m.Version > FormatVersion {
		return nil, fmt.Errorf("%w: %d", ErrUnsupportedVersion, m.Version)
	}
	if _, err := conv.IntToUint32(m.N); err != nil {
		return nil, fmt.Errorf("%w: bound: %w", ErrCorrupt, err)
	}
	if _, err := conv.Uint64ToInt(m.Count); err != nil {
		return nil, fmt.Errorf("%w: count: %w", ErrCorrupt, err)
	}
	return &m, nil
}

// Load reads snapshot name and verifies it against its manifest.
func Load(ctx context.Context, store blobstore.Store, name string) (*Manifest, *roaring.Bitmap, error) {
	m, err := ReadManifest(ctx, store, name)
	if err != nil {
		return nil, nil, err
	}
	comp, err := ParseCompression(m.Compression)
	if err != nil {
		return nil, nil, err
	}

	if m.Payload != name+payloadSuffix {
		return nil, nil, fmt.Errorf("%w: payload %q does not belong to %q", ErrCorrupt, m.Payload, name)
	}
	payload, err := store.Get(ctx, m.Payload)
	if err != nil {
		return nil, nil, err
	}
	if int64(len(payload)) != m.PayloadSize {
		return nil, nil, fmt.Errorf("%w: payload is %d bytes, manifest says %d", ErrCorrupt, len(payload), m.PayloadSize)
	}
	if sum := xxhash.Sum64(payload); sum != m.Checksum {
		return nil, nil, fmt.Errorf("%w: checksum %016x, manifest says %016x", ErrCorrupt, sum, m.Checksum)
	}

	raw, err := decompress(payload, comp)
	if err != nil {
		return nil, nil, err
	}
	bm := roaring.New()
	if err := bm.UnmarshalBinary(raw); err != nil {
		return nil, nil, fmt.Errorf("%w: bitmap: %w", ErrCorrupt, err)
	}
	if bm.GetCardinality() != m.Count {
		return nil, nil, fmt.Errorf("%w: %d primes, manifest says %d", ErrCorrupt, bm.GetCardinality(), m.Count)
	}
	if !bm.IsEmpty() && int64(bm.Maximum()) > int64(m.N) {
		return nil, nil, fmt.Errorf("%w: prime %d exceeds bound %d", ErrCorrupt, bm.Maximum(), m.N)
	}
	return m, bm, nil
}

// Latest returns the name LATEST points to.
func Latest(ctx context.Context, store blobstore.Store) (string, error) {
	data, err := store.Get(ctx, PointerName)
	if err != nil {
		return "", err
	}
	name := strings.TrimSpace(string(data))
	if err := validateName(name); err != nil {
		return "", err
	}
	return name, nil
}

// LoadLatest loads the snapshot LATEST points to.
func LoadLatest(ctx context.Context, store blobstore.Store) (*Manifest, *roaring.Bitmap, error) {
	name, err := Latest(ctx, store)
	if err != nil {
		return nil, nil, err
	}
	return Load(ctx, store, name)
}

// List returns the names of all stored snapshots, sorted.
func List(ctx context.Context, store blobstore.Store) ([]string, error) {
	blobs, err := store.List(ctx, "")
	if err != nil {
		return nil, err
	}
	var names []string
	for _, b := range blobs {
		if name, ok := strings.CutSuffix(b, manifestSuffix); ok {
			names = append(names, name)
		}
	}
	return names, nil
}

// Delete removes snapshot name. LATEST is left alone even if it points here.
func Delete(ctx context.Context, store blobstore.Store, name string) error {
	if err := validateName(name); err != nil {
		return err
	}
	if err := store.Delete(ctx, name+manifestSuffix); err != nil {
		return err
	}
	return store.Delete(ctx, name+payloadSuffix)
}
