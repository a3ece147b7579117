package openctm

import (
	"github.com/wangfeilong321/openctm/codec"
	"github.com/wangfeilong321/openctm/errs"
	"github.com/wangfeilong321/openctm/format"
	"github.com/wangfeilong321/openctm/internal/options"
)

// Option configures an encode operation's codec.EncodeOptions via the
// functional-options pattern.
type Option = options.Option[*codec.EncodeOptions]

func applyOptions(cfg *codec.EncodeOptions, opts []Option) error {
	if err := options.Apply(cfg, opts...); err != nil {
		if e, ok := err.(*errs.Error); ok { //nolint:errorlint
			return e
		}

		return errs.InvalidArgument("%v", err)
	}

	return nil
}

// WithMethod selects which of RAW, MG1, or MG2 Encode uses.
func WithMethod(m format.Method) Option {
	return options.NoError(func(cfg *codec.EncodeOptions) {
		cfg.Method = m
	})
}

// WithVertexPrecision sets the absolute MG2 vertex quantization step,
// overriding the package default of 1/1024.
func WithVertexPrecision(p float32) Option {
	return options.New(func(cfg *codec.EncodeOptions) error {
		if p <= 0 {
			return errs.InvalidArgument("vertex precision must be positive, got %g", p)
		}
		cfg.VertexPrecision = p

		return nil
	})
}

// WithVertexRelativePrecision sets the MG2 vertex quantization step as a
// fraction of the mesh's mean triangle edge length, recomputed at encode
// time, rather than an absolute value.
func WithVertexRelativePrecision(p float32) Option {
	return options.New(func(cfg *codec.EncodeOptions) error {
		if p <= 0 {
			return errs.InvalidArgument("relative vertex precision must be positive, got %g", p)
		}
		cfg.VertexRelPrecision = p

		return nil
	})
}

// WithNormalPrecision sets the MG2 normal (spherical) quantization step.
func WithNormalPrecision(p float32) Option {
	return options.New(func(cfg *codec.EncodeOptions) error {
		if p <= 0 {
			return errs.InvalidArgument("normal precision must be positive, got %g", p)
		}
		cfg.NormalPrecision = p

		return nil
	})
}

// WithTexPrecision sets the MG2 quantization step for texture map i,
// overriding both the map's own Precision field and the package default.
func WithTexPrecision(i int, p float32) Option {
	return options.New(func(cfg *codec.EncodeOptions) error {
		if i < 0 || i >= format.MaxTexMaps {
			return errs.InvalidArgument("texture map index %d out of range", i)
		}
		if p <= 0 {
			return errs.InvalidArgument("texture map precision must be positive, got %g", p)
		}

		for len(cfg.TexPrecision) <= i {
			cfg.TexPrecision = append(cfg.TexPrecision, 0)
		}
		cfg.TexPrecision[i] = p

		return nil
	})
}

// WithAttribPrecision sets the MG2 quantization step for attribute map i.
func WithAttribPrecision(i int, p float32) Option {
	return options.New(func(cfg *codec.EncodeOptions) error {
		if i < 0 || i >= format.MaxAttribMaps {
			return errs.InvalidArgument("attribute map index %d out of range", i)
		}
		if p <= 0 {
			return errs.InvalidArgument("attribute map precision must be positive, got %g", p)
		}

		for len(cfg.AttribPrecision) <= i {
			cfg.AttribPrecision = append(cfg.AttribPrecision, 0)
		}
		cfg.AttribPrecision[i] = p

		return nil
	})
}

// WithLZMALevel sets the LZMA level (0-9) passed to the codec. The codec
// does not use it, so the encoded output is the same for every level. It
// has no effect on decoding.
func WithLZMALevel(level int) Option {
	return options.New(func(cfg *codec.EncodeOptions) error {
		if level < 0 || level > 9 {
			return errs.InvalidArgument("LZMA level must be 0-9, got %d", level)
		}
		cfg.LZMALevel = level

		return nil
	})
}

// WithComment sets the file's free-text comment.
func WithComment(comment string) Option {
	return options.NoError(func(cfg *codec.EncodeOptions) {
		cfg.Comment = comment
	})
}
