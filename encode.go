package cgfx

import (
	"go.uber.org/zap"

	"github.com/wippyai/cgfx/errors"
	"github.com/wippyai/cgfx/internal/binary"
	"github.com/wippyai/cgfx/record"
)

// imagHeaderSize is the "IMAG" tag plus the blob pool size.
const imagHeaderSize = 8

// Encode serializes f. Options override the file's defaults for this call.
//
// When the result exceeds the maximum file size, Encode returns the complete
// bytes together with an oversize error.
func Encode(f *File, opts ...Option) ([]byte, error) {
	cfg := f.cfg
	for _, opt := range opts {
		opt(&cfg)
	}
	if err := f.reconfigure(cfg.profile); err != nil {
		return nil, err
	}

	strings, blobs := cfg.profile.pools()
	layout := record.NewLayout(strings, blobs,
		record.WithArena(f.arena),
		record.WithPointerBase(cfg.pointerBase),
		record.WithBlobBase(cfg.profile.BlobBase))

	f.Header.Blocks = 1
	dataEnd, err := layout.Place(f, 0)
	if err != nil {
		return nil, err
	}

	offset := strings.Finalize(dataEnd)
	f.Data.SectionSize = offset - HeaderSize
	if !blobs.Empty() {
		f.Header.Blocks = 2
		offset = blobs.Finalize(offset + imagHeaderSize)
	}
	f.Header.FileSize = offset

	Logger().Debug("layout complete",
		zap.String("profile", cfg.profile.Name),
		zap.Int("data_end", dataEnd),
		zap.Int("strings", strings.Len()),
		zap.Int("string_pool_size", strings.Size()),
		zap.Int("blobs", blobs.Len()),
		zap.Int("blob_pool_size", blobs.Size()),
		zap.Int("file_size", offset))

	w := binary.NewWriter()
	if err := layout.Write(w, f); err != nil {
		return nil, err
	}
	w.WriteBytes(strings.Bytes())
	if !blobs.Empty() {
		w.WriteBytes([]byte("IMAG"))
		w.WriteU32LE(uint32(blobs.Size()))
		w.WriteBytes(blobs.Bytes())
	}

	data := w.Bytes()
	if len(data) != f.Header.FileSize {
		return nil, errors.New(errors.PhaseValidate, errors.KindLayout).
			Value(len(data)).
			Detail("wrote %d bytes, header declares %d", len(data), f.Header.FileSize).
			Build()
	}
	if cfg.maxSize > 0 && len(data) > cfg.maxSize {
		Logger().Warn("file exceeds maximum size",
			zap.Int("size", len(data)),
			zap.Int("max", cfg.maxSize))
		return data, errors.Oversize(len(data), cfg.maxSize)
	}
	return data, nil
}
