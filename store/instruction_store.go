package store

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/arloliu/cindex/endian"
	"github.com/arloliu/cindex/errs"
	"github.com/arloliu/cindex/format"
	"github.com/arloliu/cindex/instruction"
	"github.com/arloliu/cindex/internal/options"
)

// InstructionStore saves and loads instructions as records in a Storage.
type InstructionStore struct {
	storage     Storage
	compression format.CompressionType
	engine      endian.EndianEngine
	logger      *slog.Logger
}

// Option configures an InstructionStore.
type Option = options.Option[*InstructionStore]

// WithCompression selects the payload compression for new records. Default is None.
func WithCompression(compression format.CompressionType) Option {
	return options.New(func(s *InstructionStore) error {
		switch compression {
		case format.CompressionNone, format.CompressionZstd, format.CompressionS2, format.CompressionLZ4:
			s.compression = compression
			return nil
		default:
			return fmt.Errorf("%w: unsupported record compression %s", errs.ErrInvalidInput, compression)
		}
	})
}

// WithByteOrder selects the header byte order for new records. Default is little-endian.
func WithByteOrder(engine endian.EndianEngine) Option {
	return options.NoError(func(s *InstructionStore) {
		s.engine = engine
	})
}

// WithLogger sets the logger for store operations.
func WithLogger(logger *slog.Logger) Option {
	return options.NoError(func(s *InstructionStore) {
		if logger != nil {
			s.logger = logger
		}
	})
}

// NewInstructionStore creates a store over storage. Closing the store closes storage.
func NewInstructionStore(storage Storage, opts ...Option) (*InstructionStore, error) {
	s := &InstructionStore{
		storage:     storage,
		compression: format.CompressionNone,
		engine:      endian.GetLittleEndianEngine(),
		logger:      slog.New(slog.DiscardHandler),
	}

	if err := options.Apply(s, opts...); err != nil {
		return nil, err
	}

	return s, nil
}

// Save writes in under key, replacing any previous record.
func (s *InstructionStore) Save(ctx context.Context, key string, in instruction.Instruction) error {
	if key == "" {
		return fmt.Errorf("%w: empty key", errs.ErrInvalidInput)
	}

	record, err := EncodeRecord(in, s.compression, s.engine)
	if err != nil {
		return err
	}

	if err := s.storage.Put(ctx, key, record); err != nil {
		return fmt.Errorf("save %q: %w", key, err)
	}
	s.logger.Debug("instruction saved", "key", key, "kind", in.Kind(), "bytes", len(record))

	return nil
}

// Load reads the instruction under key. It returns false when the key does not exist.
func (s *InstructionStore) Load(ctx context.Context, key string) (instruction.Instruction, bool, error) {
	record, ok, err := s.storage.Get(ctx, key)
	if err != nil {
		return nil, false, fmt.Errorf("load %q: %w", key, err)
	}
	if !ok {
		return nil, false, nil
	}

	in, err := DecodeRecord(record)
	if err != nil {
		return nil, false, fmt.Errorf("load %q: %w", key, err)
	}

	return in, true, nil
}

// Delete removes the record under key. Missing keys are not an error.
func (s *InstructionStore) Delete(ctx context.Context, key string) error {
	return s.storage.Delete(ctx, key)
}

// Keys lists stored keys beginning with prefix.
func (s *InstructionStore) Keys(ctx context.Context, prefix string) ([]string, error) {
	return s.storage.Keys(ctx, prefix)
}

// Close closes the underlying storage.
func (s *InstructionStore) Close() error {
	return s.storage.Close()
}
