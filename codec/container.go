package codec

import (
	"io"

	"github.com/wangfeilong321/openctm/errs"
	"github.com/wangfeilong321/openctm/format"
	"github.com/wangfeilong321/openctm/section"
	"github.com/wangfeilong321/openctm/stream"
)

// Encode writes mesh to w using opts.Method, dispatching to the RAW, MG1,
// or MG2 pipeline.
func Encode(w io.Writer, mesh *Mesh, opts EncodeOptions) error {
	sw := stream.NewWriter(w)

	switch opts.Method {
	case format.MethodRaw:
		return EncodeRAW(sw, mesh, opts)
	case format.MethodMG1:
		return EncodeMG1(sw, mesh, opts)
	case format.MethodMG2:
		return EncodeMG2(sw, mesh, opts)
	default:
		return errs.InvalidArgument("unknown encode method %v", opts.Method)
	}
}

// Decode reads a complete CTM file from r, dispatching to the pipeline
// named by the file's method tag.
func Decode(r io.Reader) (*Mesh, error) {
	sr := stream.NewReader(r)

	h, err := section.ReadHeader(sr)
	if err != nil {
		return nil, err
	}

	switch h.Method {
	case format.MethodRaw:
		return DecodeRAW(sr, h)
	case format.MethodMG1:
		return DecodeMG1(sr, h)
	case format.MethodMG2:
		return DecodeMG2(sr, h)
	default:
		return nil, errs.FormatError("unsupported method %v", h.Method)
	}
}
