package instance

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/klauspost/compress/zstd"
	"github.com/pierrec/lz4/v4"
)

// Compression suffixes recognized by Open and Create.
const (
	extZstd = ".zst"
	extLZ4  = ".lz4"
)

// Open reads an instance file. A .zst or .lz4 suffix selects a decompressor;
// the remaining extension (.yaml, .yml, anything else) selects the decoder.
// Name is the base file name without those extensions.
func Open(path string) (Instance, error) {
	f, err := os.Open(path)
	if err != nil {
		return Instance{}, err
	}
	defer f.Close()

	base, codec := splitCompression(path)
	var r io.Reader = f
	switch codec {
	case extZstd:
		dec, err := zstd.NewReader(f)
		if err != nil {
			return Instance{}, fmt.Errorf("instance: zstd: %w", err)
		}
		defer dec.Close()
		r = dec
	case extLZ4:
		r = lz4.NewReader(f)
	}

	var inst Instance
	ext := strings.ToLower(filepath.Ext(base))
	if ext == ".yaml" || ext == ".yml" {
		inst, err = ParseYAML(r)
	} else {
		inst, err = Parse(r)
	}
	if err != nil {
		return Instance{}, fmt.Errorf("%s: %w", path, err)
	}
	if inst.Name == "" {
		inst.Name = strings.TrimSuffix(filepath.Base(base), filepath.Ext(base))
	}

	return inst, nil
}

// Create writes inst to path, compressing and choosing the encoding by
// extension the same way Open decodes it.
func Create(path string, inst Instance) (err error) {
	f, err := os.Create(path)
	if err != nil {
		return err
	}
	defer func() {
		if cerr := f.Close(); err == nil {
			err = cerr
		}
	}()

	base, codec := splitCompression(path)
	var (
		w      io.Writer = f
		closer io.Closer
	)
	switch codec {
	case extZstd:
		enc, zerr := zstd.NewWriter(f, zstd.WithEncoderLevel(zstd.SpeedDefault))
		if zerr != nil {
			return fmt.Errorf("instance: zstd: %w", zerr)
		}
		w, closer = enc, enc
	case extLZ4:
		lw := lz4.NewWriter(f)
		w, closer = lw, lw
	}

	ext := strings.ToLower(filepath.Ext(base))
	if ext == ".yaml" || ext == ".yml" {
		err = WriteYAML(w, inst)
	} else {
		err = Write(w, inst)
	}
	if err != nil {
		return err
	}
	if closer != nil {
		return closer.Close()
	}

	return nil
}

// splitCompression strips a recognized compression suffix.
func splitCompression(path string) (string, string) {
	ext := strings.ToLower(filepath.Ext(path))
	if ext == extZstd || ext == extLZ4 {
		return path[:len(path)-len(ext)], ext
	}

	return path, ""
}
