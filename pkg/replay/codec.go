package replay

import (
	"encoding/binary"
	"errors"
	"fmt"
	"io"

	"github.com/pierrec/lz4/v4"

	"github.com/leterax/flycam/pkg/camera"
)

var (
	ErrBadMagic           = errors.New("replay: not a flycam recording")
	ErrUnsupportedVersion = errors.New("replay: unsupported version")
)

// Magic identifies a recording
var Magic = [4]byte{'F', 'C', 'R', 'P'}

// Version1 is the only recording layout: header, start pose, frame records
const Version1 uint32 = 1

type header struct {
	Magic   [4]byte
	Version uint32
}

// start is the camera configuration a recording begins from
type start struct {
	Position         [3]float32
	WorldUp          [3]float32
	Yaw              float32
	Pitch            float32
	MovementSpeed    float32
	MouseSensitivity float32
	Zoom             float32
}

func encodeStart(cfg camera.Config) start {
	st := start{
		Yaw:              cfg.Yaw,
		Pitch:            cfg.Pitch,
		MovementSpeed:    cfg.MovementSpeed,
		MouseSensitivity: cfg.MouseSensitivity,
		Zoom:             cfg.Zoom,
	}
	copy(st.Position[:], cfg.Position)
	copy(st.WorldUp[:], cfg.WorldUp)
	return st
}

func decodeStart(st start) camera.Config {
	return camera.Config{
		Position:         st.Position[:],
		WorldUp:          st.WorldUp[:],
		Yaw:              st.Yaw,
		Pitch:            st.Pitch,
		MovementSpeed:    st.MovementSpeed,
		MouseSensitivity: st.MouseSensitivity,
		Zoom:             st.Zoom,
	}
}

const flagTuned uint8 = 1 << 0

// record is the on-disk layout of a Frame
type record struct {
	DeltaTime float32
	Moves     uint8 // bit i set when camera.Movement(i) was applied
	Look      Look
	Flags     uint8
	_         [1]byte
	XOffset   float32
	YOffset   float32
	Scroll    float32
	Target    [3]float32
	Tuning    [3]float32 // speed, sensitivity, zoom when flagTuned is set
}

// maxMovement bounds the movement bitmask
const maxMovement = 8

func encodeFrame(f Frame) record {
	rec := record{
		DeltaTime: f.DeltaTime,
		Look:      f.Look,
		XOffset:   f.XOffset,
		YOffset:   f.YOffset,
		Scroll:    f.Scroll,
		Target:    f.Target,
	}
	for _, m := range f.Moves {
		if m < maxMovement {
			rec.Moves |= 1 << m
		}
	}
	if f.Tuning != nil {
		rec.Flags |= flagTuned
		rec.Tuning = [3]float32{f.Tuning.MovementSpeed, f.Tuning.MouseSensitivity, f.Tuning.Zoom}
	}
	return rec
}

func decodeFrame(rec record) Frame {
	f := Frame{
		DeltaTime: rec.DeltaTime,
		Look:      rec.Look,
		XOffset:   rec.XOffset,
		YOffset:   rec.YOffset,
		Scroll:    rec.Scroll,
		Target:    rec.Target,
	}
	for m := camera.Movement(0); m < maxMovement; m++ {
		if rec.Moves&(1<<m) != 0 {
			f.Moves = append(f.Moves, m)
		}
	}
	if rec.Flags&flagTuned != 0 {
		f.Tuning = &Tuning{
			MovementSpeed:    rec.Tuning[0],
			MouseSensitivity: rec.Tuning[1],
			Zoom:             rec.Tuning[2],
		}
	}
	return f
}

// Writer encodes frames into a recording
type Writer struct {
	lzw    *lz4.Writer
	frames int
}

// NewWriter writes the recording header and the configuration the recorded
// camera starts from to w, and returns a Writer for the frame stream. Close
// must be called to flush the stream; it does not close w.
func NewWriter(w io.Writer, from camera.Config) (*Writer, error) {
	if err := from.Validate(); err != nil {
		return nil, fmt.Errorf("invalid replay start: %w", err)
	}
	if err := binary.Write(w, binary.LittleEndian, header{Magic: Magic, Version: Version1}); err != nil {
		return nil, fmt.Errorf("could not write replay header: %w", err)
	}
	if err := binary.Write(w, binary.LittleEndian, encodeStart(from)); err != nil {
		return nil, fmt.Errorf("could not write replay start: %w", err)
	}

	lzw := lz4.NewWriter(w)
	if err := lzw.Apply(lz4.CompressionLevelOption(lz4.Fast)); err != nil {
		return nil, fmt.Errorf("could not configure replay compression: %w", err)
	}

	return &Writer{lzw: lzw}, nil
}

// WriteFrame appends one frame to the recording
func (rw *Writer) WriteFrame(f Frame) error {
	if err := binary.Write(rw.lzw, binary.LittleEndian, encodeFrame(f)); err != nil {
		return fmt.Errorf("could not write replay frame %d: %w", rw.frames, err)
	}
	rw.frames++
	return nil
}

// Frames returns the number of frames written so far
func (rw *Writer) Frames() int {
	return rw.frames
}

// Close flushes the compressed stream
func (rw *Writer) Close() error {
	if err := rw.lzw.Close(); err != nil {
		return fmt.Errorf("could not finish replay stream: %w", err)
	}
	return nil
}

// Reader decodes frames from a recording
type Reader struct {
	lzr    *lz4.Reader
	start  camera.Config
	frames int
}

// NewReader validates the recording header read from r and reads the
// starting configuration
func NewReader(r io.Reader) (*Reader, error) {
	var h header
	if err := binary.Read(r, binary.LittleEndian, &h); err != nil {
		return nil, fmt.Errorf("could not read replay header: %w", err)
	}
	if h.Magic != Magic {
		return nil, fmt.Errorf("%w: magic %q", ErrBadMagic, h.Magic[:])
	}
	if h.Version != Version1 {
		return nil, fmt.Errorf("%w: %d", ErrUnsupportedVersion, h.Version)
	}

	var st start
	if err := binary.Read(r, binary.LittleEndian, &st); err != nil {
		return nil, fmt.Errorf("could not read replay start: %w", err)
	}
	from := decodeStart(st)
	if err := from.Validate(); err != nil {
		return nil, fmt.Errorf("invalid replay start: %w", err)
	}

	return &Reader{lzr: lz4.NewReader(r), start: from}, nil
}

// Start returns the configuration the recorded camera started from. A camera
// built with its NewCamera method replays the recording faithfully.
func (rr *Reader) Start() camera.Config {
	return rr.start
}

// ReadFrame returns the next frame, or io.EOF after the last one
func (rr *Reader) ReadFrame() (Frame, error) {
	var rec record
	err := binary.Read(rr.lzr, binary.LittleEndian, &rec)
	if err == io.EOF {
		return Frame{}, io.EOF
	}
	if err != nil {
		return Frame{}, fmt.Errorf("could not read replay frame %d: %w", rr.frames, err)
	}
	rr.frames++
	return decodeFrame(rec), nil
}
