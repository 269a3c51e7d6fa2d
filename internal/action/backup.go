package action

import (
	"bytes"
	"encoding/gob"
	"fmt"

	"github.com/klauspost/compress/zstd"

	"github.com/talgya/settleplan/internal/engine"
)

// Backup holds at most one compressed simulation snapshot in memory. A new
// save replaces the previous one.
type Backup struct {
	data []byte
	tick uint64
}

// NewBackup creates an empty backup slot.
func NewBackup() *Backup {
	return &Backup{}
}

// Save captures snap.
func (b *Backup) Save(snap engine.Snapshot) error {
	var buf bytes.Buffer
	enc, err := zstd.NewWriter(&buf, zstd.WithEncoderLevel(zstd.SpeedDefault))
	if err != nil {
		return err
	}
	if err := gob.NewEncoder(enc).Encode(&snap); err != nil {
		enc.Close()
		return fmt.Errorf("gob encode: %w", err)
	}
	if err := enc.Close(); err != nil {
		return fmt.Errorf("zstd close: %w", err)
	}
	b.data = buf.Bytes()
	b.tick = snap.Tick
	return nil
}

// Load decodes the saved snapshot.
func (b *Backup) Load() (engine.Snapshot, error) {
	var snap engine.Snapshot
	if b.data == nil {
		return snap, ErrNoBackup
	}
	dec, err := zstd.NewReader(bytes.NewReader(b.data))
	if err != nil {
		return snap, err
	}
	defer dec.Close()

	if err := gob.NewDecoder(dec).Decode(&snap); err != nil {
		return snap, fmt.Errorf("gob decode: %w", err)
	}
	return snap, nil
}

// Available reports whether a backup has been taken.
func (b *Backup) Available() bool { return b.data != nil }

// Tick returns the tick at which the backup was taken.
func (b *Backup) Tick() uint64 { return b.tick }

// Size returns the compressed size in bytes.
func (b *Backup) Size() int { return len(b.data) }
