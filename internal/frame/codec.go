// Package frame reads and writes one frame (traces + headers) at a given
// logical index: computes byte offsets, selects the backing extent,
// invokes the trace compressor, and updates the trace map. spec.md §4.5.
package frame

import (
	"fmt"
	"os"

	"github.com/deploymenttheory/go-javaseis/internal/interfaces"
	"github.com/deploymenttheory/go-javaseis/internal/types"
)

// Codec implements interfaces.FrameCodec over a trace extent layout, a
// header extent layout, a trace-map, and a sample compressor.
type Codec struct {
	TraceLayout     interfaces.ExtentLayout
	HeaderLayout    interfaces.ExtentLayout
	Mapper          interfaces.TraceMapper
	Compressor      interfaces.TraceCompressor
	TracesPerFrame  int
	SamplesPerTrace int
	HeaderLength    int
	ReadOnly        bool
}

func (c *Codec) traceOffset(frame int64) int64 {
	return (frame - 1) * int64(c.TracesPerFrame) * int64(c.Compressor.RecordSize(c.SamplesPerTrace))
}

func (c *Codec) headerOffset(frame int64) int64 {
	return (frame - 1) * int64(c.TracesPerFrame) * int64(c.HeaderLength)
}

// ReadFrame fills the first fold columns of traceBuf/headerBuf with
// frame's live traces, left-justified, and returns fold. A fold of 0
// means the frame is empty and the buffers are left untouched. spec.md
// §4.5 "Read-frame algorithm".
func (c *Codec) ReadFrame(frame int64, traceBuf [][]float32, headerBuf []byte) (int32, error) {
	fold, err := c.Mapper.Fold(frame)
	if err != nil {
		return 0, err
	}
	if fold == 0 {
		return 0, nil
	}

	recordSize := c.Compressor.RecordSize(c.SamplesPerTrace)
	tOff := c.traceOffset(frame)
	ext, path, err := c.TraceLayout.Resolve(tOff)
	if err != nil {
		return 0, err
	}
	raw := make([]byte, int(fold)*recordSize)
	if err := readAt(path, tOff-ext.Start, raw); err != nil {
		return 0, err
	}
	rows := make([][]float32, fold)
	for i := range rows {
		if i < len(traceBuf) && traceBuf[i] != nil {
			rows[i] = traceBuf[i]
		} else {
			rows[i] = make([]float32, c.SamplesPerTrace)
		}
	}
	if err := c.Compressor.Decode(rows, raw); err != nil {
		return 0, err
	}
	for i := 0; i < int(fold) && i < len(traceBuf); i++ {
		traceBuf[i] = rows[i]
	}

	hOff := c.headerOffset(frame)
	hExt, hPath, err := c.HeaderLayout.Resolve(hOff)
	if err != nil {
		return 0, err
	}
	need := int(fold) * c.HeaderLength
	if len(headerBuf) < need {
		return 0, types.Precondition("Codec.ReadFrame", fmt.Errorf(
			"header buffer too small: have %d, need %d", len(headerBuf), need))
	}
	if err := readAt(hPath, hOff-hExt.Start, headerBuf[:need]); err != nil {
		return 0, err
	}

	return fold, nil
}

// WriteFrame writes the first fold columns of traceBuf/headerBuf
// (assumed left-justified) as frame's live traces, then updates the
// trace map. spec.md §4.5 "Write-frame algorithm".
func (c *Codec) WriteFrame(frame int64, fold int32, traceBuf [][]float32, headerBuf []byte) error {
	if c.ReadOnly {
		return types.Precondition("Codec.WriteFrame", fmt.Errorf("dataset is read-only"))
	}
	if int(fold) > len(traceBuf) {
		return types.Precondition("Codec.WriteFrame", fmt.Errorf("fold %d exceeds supplied trace buffer of %d rows", fold, len(traceBuf)))
	}

	if fold > 0 {
		raw := c.Compressor.AllocFrameBuffer(int(fold), c.SamplesPerTrace)
		if err := c.Compressor.Encode(raw, traceBuf[:fold]); err != nil {
			return err
		}
		tOff := c.traceOffset(frame)
		ext, path, err := c.TraceLayout.Resolve(tOff)
		if err != nil {
			return err
		}
		if err := writeAt(path, tOff-ext.Start, raw); err != nil {
			return err
		}

		hOff := c.headerOffset(frame)
		hExt, hPath, err := c.HeaderLayout.Resolve(hOff)
		if err != nil {
			return err
		}
		need := int(fold) * c.HeaderLength
		if len(headerBuf) < need {
			return types.Precondition("Codec.WriteFrame", fmt.Errorf(
				"header buffer too small: have %d, need %d", len(headerBuf), need))
		}
		if err := writeAt(hPath, hOff-hExt.Start, headerBuf[:need]); err != nil {
			return err
		}
	}

	return c.Mapper.SetFold(frame, fold)
}

func readAt(path string, offset int64, dst []byte) error {
	f, err := os.Open(path)
	if err != nil {
		return types.IOFail("frame.readAt", err)
	}
	defer f.Close()
	if _, err := f.ReadAt(dst, offset); err != nil {
		return types.IOFail("frame.readAt", err)
	}
	return nil
}

func writeAt(path string, offset int64, src []byte) error {
	f, err := os.OpenFile(path, os.O_CREATE|os.O_RDWR, 0o644)
	if err != nil {
		return types.IOFail("frame.writeAt", err)
	}
	defer f.Close()
	if _, err := f.WriteAt(src, offset); err != nil {
		return types.IOFail("frame.writeAt", err)
	}
	return nil
}
