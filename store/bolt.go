package store

import (
	"cmp"
	"fmt"
	"log/slog"
	"os"

	"github.com/klauspost/compress/zstd"
	bolt "go.etcd.io/bbolt"

	"github.com/hupe1980/ordcache/codec"
)

const (
	defaultBucketName = "ordcache"
	metaSuffix        = ".meta"
)

// Meta keys stamped into the database so a store can refuse to open with an
// incompatible configuration instead of misdecoding.
const (
	metaCodec    = "codec"
	metaKeyEnc   = "keyenc"
	metaCompress = "compress"
)

type boltOptions struct {
	codec    codec.Codec
	bucket   string
	compress bool
	logger   *slog.Logger
}

// BoltOption configures a Bolt store at open time.
type BoltOption func(*boltOptions)

// WithBoltCodec sets the codec used to encode bucket contents.
// If nil is passed, codec.Default is used.
func WithBoltCodec(c codec.Codec) BoltOption {
	return func(o *boltOptions) {
		if c == nil {
			c = codec.Default
		}
		o.codec = c
	}
}

// WithBoltBucket sets the bbolt bucket name, allowing several stores to share
// one database file.
func WithBoltBucket(name string) BoltOption {
	return func(o *boltOptions) {
		o.bucket = name
	}
}

// WithBoltCompression enables transparent zstd compression of persisted
// bucket values. Like the codec, compression is a breaking-change boundary:
// a store created with compression must always be opened with it.
func WithBoltCompression() BoltOption {
	return func(o *boltOptions) {
		o.compress = true
	}
}

// WithBoltLogger sets the structured logger. If nil, logging is disabled.
func WithBoltLogger(l *slog.Logger) BoltOption {
	return func(o *boltOptions) {
		if l == nil {
			l = noopLogger()
		}
		o.logger = l
	}
}

func noopLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{
		Level: slog.Level(1000), // Unreachable level
	}))
}

// Bolt is the persistent Store backend: a bbolt database whose keys are the
// order-preserving byte encoding of the order value and whose values are
// codec-encoded (optionally zstd-compressed) buckets. Because the byte order
// of keys matches the order-value order, the database cursor's First/Last are
// the store's Min/Max.
//
// A Bolt store is self-describing: codec, key encoding and compression are
// recorded in a metadata bucket on creation and validated on every open.
type Bolt[O cmp.Ordered, K comparable] struct {
	db     *bolt.DB
	enc    KeyEncoding[O]
	codec  codec.Codec
	bucket []byte
	meta   []byte
	zenc   *zstd.Encoder
	zdec   *zstd.Decoder
	logger *slog.Logger
}

var _ Store[uint64, string] = (*Bolt[uint64, string])(nil)

// OpenBolt opens (creating if necessary) a persistent store at path.
// The key encoding is mandatory; codec, bucket name, compression and logging
// are configured through options.
func OpenBolt[O cmp.Ordered, K comparable](path string, enc KeyEncoding[O], optFns ...BoltOption) (*Bolt[O, K], error) {
	opts := boltOptions{
		codec:  codec.Default,
		bucket: defaultBucketName,
		logger: noopLogger(),
	}
	for _, fn := range optFns {
		fn(&opts)
	}

	db, err := bolt.Open(path, 0o600, nil)
	if err != nil {
		return nil, fmt.Errorf("bolt store: open %s: %w", path, err)
	}

	s := &Bolt[O, K]{
		db:     db,
		enc:    enc,
		codec:  opts.codec,
		bucket: []byte(opts.bucket),
		meta:   []byte(opts.bucket + metaSuffix),
		logger: opts.logger,
	}

	if opts.compress {
		zenc, err := zstd.NewWriter(nil, zstd.WithEncoderLevel(zstd.SpeedDefault))
		if err != nil {
			_ = db.Close()
			return nil, fmt.Errorf("bolt store: init zstd encoder: %w", err)
		}
		zdec, err := zstd.NewReader(nil)
		if err != nil {
			_ = db.Close()
			return nil, fmt.Errorf("bolt store: init zstd decoder: %w", err)
		}
		s.zenc, s.zdec = zenc, zdec
	}

	if err := s.init(); err != nil {
		_ = db.Close()
		return nil, err
	}

	s.logger.Debug("bolt store opened",
		"path", path,
		"bucket", opts.bucket,
		"codec", s.codec.Name(),
		"keyenc", enc.Name(),
		"compress", s.compressName(),
	)
	return s, nil
}

// init creates the data and metadata buckets and verifies that the store was
// created with the same codec, key encoding and compression setting.
func (s *Bolt[O, K]) init() error {
	return s.db.Update(func(tx *bolt.Tx) error {
		if _, err := tx.CreateBucketIfNotExists(s.bucket); err != nil {
			return fmt.Errorf("bolt store: create bucket %q: %w", s.bucket, err)
		}
		meta, err := tx.CreateBucketIfNotExists(s.meta)
		if err != nil {
			return fmt.Errorf("bolt store: create bucket %q: %w", s.meta, err)
		}

		want := [...][2]string{
			{metaCodec, s.codec.Name()},
			{metaKeyEnc, s.enc.Name()},
			{metaCompress, s.compressName()},
		}
		for _, kv := range want {
			got := meta.Get([]byte(kv[0]))
			if got == nil {
				if err := meta.Put([]byte(kv[0]), []byte(kv[1])); err != nil {
					return err
				}
				continue
			}
			if string(got) != kv[1] {
				return fmt.Errorf("bolt store: %s mismatch: store was created with %q, opened with %q", kv[0], got, kv[1])
			}
		}
		return nil
	})
}

func (s *Bolt[O, K]) compressName() string {
	if s.zenc != nil {
		return "zstd"
	}
	return "none"
}

// Len reports the number of distinct order values.
func (s *Bolt[O, K]) Len() (int, error) {
	var n int
	err := s.db.View(func(tx *bolt.Tx) error {
		n = tx.Bucket(s.bucket).Stats().KeyN
		return nil
	})
	if err != nil {
		return 0, fmt.Errorf("bolt store: len: %w", err)
	}
	return n, nil
}

// Min returns the smallest order value and its bucket.
func (s *Bolt[O, K]) Min() (O, []K, bool, error) {
	return s.edge((*bolt.Cursor).First)
}

// Max returns the largest order value and its bucket.
func (s *Bolt[O, K]) Max() (O, []K, bool, error) {
	return s.edge((*bolt.Cursor).Last)
}

func (s *Bolt[O, K]) edge(move func(*bolt.Cursor) ([]byte, []byte)) (O, []K, bool, error) {
	var (
		order O
		keys  []K
		found bool
	)
	err := s.db.View(func(tx *bolt.Tx) error {
		k, v := move(tx.Bucket(s.bucket).Cursor())
		if k == nil {
			return nil
		}
		o, err := s.enc.Decode(k)
		if err != nil {
			return fmt.Errorf("bolt store: decode order key: %w", err)
		}
		ks, err := s.decodeBucket(v)
		if err != nil {
			return err
		}
		order, keys, found = o, ks, true
		return nil
	})
	if err != nil {
		var zero O
		return zero, nil, false, err
	}
	return order, keys, found, nil
}

// Get returns the bucket stored under order.
func (s *Bolt[O, K]) Get(order O) ([]K, bool, error) {
	var (
		keys  []K
		found bool
	)
	err := s.db.View(func(tx *bolt.Tx) error {
		v := tx.Bucket(s.bucket).Get(s.enc.Encode(order))
		if v == nil {
			return nil
		}
		ks, err := s.decodeBucket(v)
		if err != nil {
			return err
		}
		keys, found = ks, true
		return nil
	})
	if err != nil {
		return nil, false, err
	}
	return keys, found, nil
}

// Insert replaces the bucket under order, returning the previous bucket.
// If the previous bucket exists but cannot be decoded, the write is aborted
// and the error returned.
func (s *Bolt[O, K]) Insert(order O, keys []K) ([]K, bool, error) {
	buf, err := s.encodeBucket(keys)
	if err != nil {
		return nil, false, err
	}
	var (
		prev []K
		had  bool
	)
	err = s.db.Update(func(tx *bolt.Tx) error {
		b := tx.Bucket(s.bucket)
		ek := s.enc.Encode(order)
		if v := b.Get(ek); v != nil {
			ks, err := s.decodeBucket(v)
			if err != nil {
				return err
			}
			prev, had = ks, true
		}
		return b.Put(ek, buf)
	})
	if err != nil {
		return nil, false, err
	}
	return prev, had, nil
}

// Remove deletes the bucket under order, returning it if present.
func (s *Bolt[O, K]) Remove(order O) ([]K, bool, error) {
	var (
		keys  []K
		found bool
	)
	err := s.db.Update(func(tx *bolt.Tx) error {
		b := tx.Bucket(s.bucket)
		ek := s.enc.Encode(order)
		v := b.Get(ek)
		if v == nil {
			return nil
		}
		ks, err := s.decodeBucket(v)
		if err != nil {
			return err
		}
		keys, found = ks, true
		return b.Delete(ek)
	})
	if err != nil {
		return nil, false, err
	}
	return keys, found, nil
}

// Clear drops every bucket. Store metadata is retained.
func (s *Bolt[O, K]) Clear() error {
	return s.db.Update(func(tx *bolt.Tx) error {
		if err := tx.DeleteBucket(s.bucket); err != nil {
			return fmt.Errorf("bolt store: clear: %w", err)
		}
		_, err := tx.CreateBucket(s.bucket)
		return err
	})
}

// Sync flushes the database to stable storage.
func (s *Bolt[O, K]) Sync() error {
	return s.db.Sync()
}

// Close releases the database and compression resources.
func (s *Bolt[O, K]) Close() error {
	if s.zenc != nil {
		_ = s.zenc.Close()
	}
	if s.zdec != nil {
		s.zdec.Close()
	}
	s.logger.Debug("bolt store closed", "path", s.db.Path())
	return s.db.Close()
}

// Path returns the database file path.
func (s *Bolt[O, K]) Path() string {
	return s.db.Path()
}

func (s *Bolt[O, K]) encodeBucket(keys []K) ([]byte, error) {
	raw, err := s.codec.Marshal(keys)
	if err != nil {
		return nil, fmt.Errorf("bolt store: encode bucket (%s): %w", s.codec.Name(), err)
	}
	if s.zenc != nil {
		raw = s.zenc.EncodeAll(raw, nil)
	}
	return raw, nil
}

func (s *Bolt[O, K]) decodeBucket(v []byte) ([]K, error) {
	raw := v
	if s.zdec != nil {
		var err error
		raw, err = s.zdec.DecodeAll(v, nil)
		if err != nil {
			s.logger.Warn("bucket decompression failed", "error", err)
			return nil, fmt.Errorf("bolt store: decompress bucket: %w", err)
		}
	}
	var keys []K
	if err := s.codec.Unmarshal(raw, &keys); err != nil {
		s.logger.Warn("bucket decode failed", "codec", s.codec.Name(), "error", err)
		return nil, fmt.Errorf("bolt store: decode bucket (%s): %w", s.codec.Name(), err)
	}
	return keys, nil
}
