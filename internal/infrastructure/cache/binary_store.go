// Package cache persists the warning throttle state in a versioned binary
// file. The format is deliberately unforgiving: anything that is not the
// current magic and version is discarded wholesale, never partially
// upgraded. Bumping formatVersion is the only supported migration path.
package cache

import (
	"bytes"
	"encoding/binary"
	"os"
	"path/filepath"
	"unicode/utf16"

	"github.com/afevis/modcheck/internal/domain"
	"github.com/afevis/modcheck/internal/ports"
)

var cacheMagic = [4]byte{'M', 'W', 'R', 'N'}

const formatVersion uint32 = 2

// BinaryStore reads and writes the warning cache file. The file is opened
// and closed per operation; nothing holds it across the run.
type BinaryStore struct {
	path string
	log  ports.Logger
}

// NewBinaryStore builds a store for the given cache file path.
func NewBinaryStore(path string, log ports.Logger) *BinaryStore {
	return &BinaryStore{path: path, log: log}
}

// Path returns the backing file path.
func (s *BinaryStore) Path() string {
	return s.path
}

// Load decodes the cache file. A missing, unreadable, foreign or truncated
// file yields an empty cache; stale history is never worth failing over.
func (s *BinaryStore) Load() domain.WarningCache {
	data, err := os.ReadFile(s.path)
	if err != nil {
		if !os.IsNotExist(err) {
			s.debug("warning cache unreadable", map[string]interface{}{"path": s.path, "error": err.Error()})
		}
		return domain.NewWarningCache()
	}
	cache, ok := Decode(data)
	if !ok {
		s.debug("discarding unrecognized warning cache", map[string]interface{}{"path": s.path})
		return domain.NewWarningCache()
	}
	return cache
}

// Save encodes and overwrites the cache file in full. Always writes the
// current magic and version, never an old one.
func (s *BinaryStore) Save(cache domain.WarningCache) error {
	if err := os.MkdirAll(filepath.Dir(s.path), 0o755); err != nil {
		return err
	}
	return os.WriteFile(s.path, Encode(cache), 0o644)
}

// Clear removes the cache file.
func (s *BinaryStore) Clear() error {
	if err := os.Remove(s.path); err != nil && !os.IsNotExist(err) {
		return err
	}
	return nil
}

func (s *BinaryStore) debug(msg string, fields map[string]interface{}) {
	if s.log != nil {
		s.log.Debug(msg, fields)
	}
}

// Encode serializes the cache to the on-disk layout: magic, version, the
// install fingerprint as length-prefixed UTF-16LE strings, then the entry
// records. All integers little-endian. Entry iteration order is irrelevant;
// Decode rebuilds the same mapping regardless.
func Encode(cache domain.WarningCache) []byte {
	var buf bytes.Buffer
	buf.Write(cacheMagic[:])
	writeU32(&buf, formatVersion)
	writeWideString(&buf, cache.InstallPath)
	writeWideString(&buf, cache.InstallDate)
	writeU32(&buf, uint32(len(cache.Entries)))
	for key, entry := range cache.Entries {
		writeU32(&buf, uint32(len(key)))
		buf.WriteString(key)
		writeU32(&buf, entry.ShownCount)
		writeU64(&buf, entry.LastShownUnix)
		if entry.InitialPhaseDone {
			buf.WriteByte(1)
		} else {
			buf.WriteByte(0)
		}
	}
	return buf.Bytes()
}

// Decode parses an encoded cache. ok is false when the bytes do not carry
// the current magic and version, or the payload is truncated; callers treat
// that as "no history".
func Decode(data []byte) (domain.WarningCache, bool) {
	r := &byteReader{buf: data}

	var magic [4]byte
	copy(magic[:], r.bytes(4))
	if r.failed || magic != cacheMagic {
		return domain.WarningCache{}, false
	}
	if r.u32() != formatVersion || r.failed {
		return domain.WarningCache{}, false
	}

	cache := domain.NewWarningCache()
	cache.InstallPath = r.wideString()
	cache.InstallDate = r.wideString()

	count := r.u32()
	for i := uint32(0); i < count && !r.failed; i++ {
		key := string(r.bytes(int(r.u32())))
		entry := domain.WarningEntry{
			ShownCount:       r.u32(),
			LastShownUnix:    r.u64(),
			InitialPhaseDone: r.u8() != 0,
		}
		if r.failed {
			break
		}
		cache.Entries[key] = entry
	}
	if r.failed {
		return domain.WarningCache{}, false
	}
	return cache, true
}

func writeU32(buf *bytes.Buffer, v uint32) {
	var b [4]byte
	binary.LittleEndian.PutUint32(b[:], v)
	buf.Write(b[:])
}

func writeU64(buf *bytes.Buffer, v uint64) {
	var b [8]byte
	binary.LittleEndian.PutUint64(b[:], v)
	buf.Write(b[:])
}

// writeWideString writes a 32-bit code-unit count followed by UTF-16LE
// code units, matching the native loader's wchar_t records.
func writeWideString(buf *bytes.Buffer, s string) {
	units := utf16.Encode([]rune(s))
	writeU32(buf, uint32(len(units)))
	for _, u := range units {
		var b [2]byte
		binary.LittleEndian.PutUint16(b[:], u)
		buf.Write(b[:])
	}
}

// byteReader is a failure-latching cursor over the encoded bytes. Once any
// read runs past the buffer, every subsequent read reports zero values and
// failed stays set.
type byteReader struct {
	buf    []byte
	off    int
	failed bool
}

func (r *byteReader) bytes(n int) []byte {
	if r.failed || n < 0 || r.off+n > len(r.buf) {
		r.failed = true
		return nil
	}
	b := r.buf[r.off : r.off+n]
	r.off += n
	return b
}

func (r *byteReader) u8() byte {
	b := r.bytes(1)
	if b == nil {
		return 0
	}
	return b[0]
}

func (r *byteReader) u32() uint32 {
	b := r.bytes(4)
	if b == nil {
		return 0
	}
	return binary.LittleEndian.Uint32(b)
}

func (r *byteReader) u64() uint64 {
	b := r.bytes(8)
	if b == nil {
		return 0
	}
	return binary.LittleEndian.Uint64(b)
}

func (r *byteReader) wideString() string {
	n := int(r.u32())
	b := r.bytes(n * 2)
	if b == nil {
		return ""
	}
	units := make([]uint16, n)
	for i := range units {
		units[i] = binary.LittleEndian.Uint16(b[i*2:])
	}
	return string(utf16.Decode(units))
}

var _ ports.WarningCacheStore = (*BinaryStore)(nil)
