package export

import "errors"

// AudioFormat is the output container. FLAC is named by spec.md §6 but
// has no implementation: no library in the dependency pack provides a
// FLAC encoder, and fabricating one would violate the
// never-fabricate-dependencies rule, so it surfaces ErrUnsupportedFormat
// instead of a fake encoder.
type AudioFormat int

const (
	FormatWav AudioFormat = iota
	FormatFlac
)

// ErrUnsupportedFormat is returned by ToFile when AudioFormat is
// FormatFlac. Render returns float buffers and does not check the format.
var ErrUnsupportedFormat = errors.New("export: flac output is not implemented, no pack dependency provides a flac encoder")

// BitDepth is the PCM sample representation written to file.
type BitDepth int

const (
	BitDepthInt16 BitDepth = iota
	BitDepthInt24
	BitDepthFloat32
)

// Bits returns the storage width in bits.
func (b BitDepth) Bits() int {
	switch b {
	case BitDepthInt16:
		return 16
	case BitDepthInt24:
		return 24
	default:
		return 32
	}
}

// DitherType selects the noise shape added before bit-depth reduction.
type DitherType int

const (
	DitherNone DitherType = iota
	DitherRectangular
	DitherTriangular
	DitherNoiseShaped
)

// NormalizationMode is either off, a peak target, or an integrated-LUFS
// target with a true-peak ceiling.
type NormalizationMode struct {
	Kind         NormalizationKind
	PeakDB       float64
	TargetLUFS   float64
	TruePeakDBTP float64
}

type NormalizationKind int

const (
	NormalizeNone NormalizationKind = iota
	NormalizePeak
	NormalizeLoudness
)

// NormalizePeakTo builds a peak-normalization target.
func NormalizePeakTo(targetDB float64) NormalizationMode {
	return NormalizationMode{Kind: NormalizePeak, PeakDB: targetDB}
}

// NormalizeLUFS builds a loudness-normalization target with the
// conventional -1.0 dBTP true-peak ceiling.
func NormalizeLUFS(targetLUFS float64) NormalizationMode {
	return NormalizationMode{Kind: NormalizeLoudness, TargetLUFS: targetLUFS, TruePeakDBTP: -1.0}
}

// NormalizeLUFSWithCeiling builds a loudness-normalization target with
// an explicit true-peak ceiling.
func NormalizeLUFSWithCeiling(targetLUFS, truePeakDBTP float64) NormalizationMode {
	return NormalizationMode{Kind: NormalizeLoudness, TargetLUFS: targetLUFS, TruePeakDBTP: truePeakDBTP}
}
