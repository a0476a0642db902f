// SPDX-License-Identifier: MIT

package sketch

import (
	"bufio"
	"fmt"
	"io"
	"os"

	"github.com/sgostarter/i/l"
)

// Save resets the cursor to record 0 and writes the sequence to
// name+Extension() in the configured format.
func (s *Sketch) Save(name string) error {
	if !s.loaded {
		return ErrNotLoaded
	}
	path := name + s.opts.Format.Extension()
	logger := s.logger.WithFields(l.StringField("file", path))

	f, err := os.Create(path)
	if err != nil {
		logger.WithFields(l.ErrorField(err)).Error("create failed")

		return fmt.Errorf("sketch: save %q: %w", path, err)
	}
	if err = s.Encode(f, s.opts.Format); err != nil {
		_ = f.Close()
		logger.WithFields(l.ErrorField(err)).Error("encode failed")

		return fmt.Errorf("sketch: save %q: %w", path, err)
	}
	if err = f.Close(); err != nil {
		return fmt.Errorf("sketch: save %q: %w", path, err)
	}

	logger.WithFields(l.IntField("records", len(s.records))).Debug("saved")

	return nil
}

// Load replaces the sequence with the one stored in name+Extension().
// On any failure the sketch is left unloaded (see ErrNotLoaded).
func (s *Sketch) Load(name string) error {
	path := name + s.opts.Format.Extension()
	logger := s.logger.WithFields(l.StringField("file", path))

	s.clear()
	f, err := os.Open(path)
	if err != nil {
		logger.WithFields(l.ErrorField(err)).Error("open failed")

		return fmt.Errorf("sketch: load %q: %w", path, err)
	}
	defer f.Close()

	if err = s.Decode(f, s.opts.Format); err != nil {
		logger.WithFields(l.ErrorField(err)).Error("decode failed")

		return fmt.Errorf("sketch: load %q: %w", path, err)
	}

	logger.WithFields(l.IntField("records", len(s.records)), l.IntField("total", s.total)).Debug("loaded")

	return nil
}

// Load opens a stored sketch. See (*Sketch).Load.
func Load(name string, opts ...Option) (*Sketch, error) {
	o, err := newOptions(opts)
	if err != nil {
		return nil, err
	}
	s := newSketch(o)
	if err = s.Load(name); err != nil {
		return nil, err
	}

	return s, nil
}

// Encode resets the cursor to record 0 and writes the sequence to w.
func (s *Sketch) Encode(w io.Writer, format Format) error {
	if !s.loaded {
		return ErrNotLoaded
	}
	s.cur.reset(s.records)

	bw := bufio.NewWriter(w)
	var err error
	switch format {
	case FormatText:
		err = encodeText(bw, s.records)
	case FormatYAML:
		err = encodeYAML(bw, s.records)
	default:
		return ErrBadFormatKind
	}
	if err != nil {
		return err
	}

	return bw.Flush()
}

// Decode clears the sketch and reads a sequence from r. Nothing partial is
// kept: on error the sketch is unloaded.
func (s *Sketch) Decode(r io.Reader, format Format) error {
	s.clear()

	var (
		records []Record
		err     error
	)
	switch format {
	case FormatText:
		records, err = decodeText(r)
	case FormatYAML:
		records, err = decodeYAML(r)
	default:
		return ErrBadFormatKind
	}
	if err != nil {
		return err
	}
	if len(records) == 0 {
		return fmt.Errorf("sketch: no records: %w", ErrFormat)
	}

	s.install(records)

	return nil
}
