package face

import (
	"fmt"
)

// Options is the single set of pipeline constants.
type Options struct {
	TargetSize            int
	FeatureMaps           []FeatureMap
	Schema                SchemaConfig
	DetectorInput         string
	DetectorScoreInput    string
	DetectorIoUInput      string
	DetectorNormalization Normalization
	Decode                DecodeOptions
	NMSThreshold          float64
	Select                SelectOptions
	Geometry              GeometryOptions
	RecognizerInput       string
	RecognizerOutput      string
	Normalization         Normalization
	ChannelOrder          ChannelOrder
	FlipTest              bool
	MatchThreshold        float64
}

// DefaultOptions returns the documented defaults.
func DefaultOptions() Options {
	return Options{
		TargetSize:            128,
		FeatureMaps:           DefaultFeatureMaps,
		Schema:                DefaultSchemaConfig(),
		DetectorScoreInput:    "conf_threshold",
		DetectorIoUInput:      "iou_threshold",
		DetectorNormalization: NormTorch,
		Decode: DecodeOptions{
			ConfidenceThreshold: 0.5,
			MinFaceSize:         0.03,
			MaxFaceSize:         1.0,
		},
		NMSThreshold: 0.3,
		Select: SelectOptions{
			MinPixelSize:     20,
			MinSideRatio:     0.08,
			MaxSideRatio:     0.65,
			EdgeMarginRatio:  0.05,
			AspectRatioMin:   0.6,
			AspectRatioMax:   1.8,
			ConfidenceWeight: 0.65,
			CenterWeight:     0.25,
			SizeWeight:       0.10,
		},
		Geometry: GeometryOptions{
			ExpandRatio:    0.10,
			MaxExpandRatio: 0.20,
			Square:         true,
			MinPixelSize:   20,
		},
		Normalization:  NormInsight,
		ChannelOrder:   OrderRGB,
		FlipTest:       true,
		MatchThreshold: DefaultMatchThreshold,
	}
}

// Validate returns an error if the options can not work.
func (o Options) Validate() error {
	switch {
	case o.TargetSize <= 0:
		return fmt.Errorf("faces: target size must be > 0")
	case o.Schema.Kind == SchemaAnchor && AnchorCount(o.FeatureMaps) == 0:
		return fmt.Errorf("faces: anchor layout needs feature maps")
	case !o.Normalization.Valid():
		return fmt.Errorf("faces: unknown normalization %q", o.Normalization)
	case !o.DetectorNormalization.Valid():
		return fmt.Errorf("faces: unknown detector normalization %q", o.DetectorNormalization)
	case o.ChannelOrder != OrderRGB && o.ChannelOrder != OrderBGR:
		return fmt.Errorf("faces: unknown channel order %q", o.ChannelOrder)
	case o.NMSThreshold < 0 || o.NMSThreshold > 1:
		return fmt.Errorf("faces: nms threshold must be in [0,1]")
	case o.Decode.ConfidenceThreshold < 0 || o.Decode.ConfidenceThreshold > 1:
		return fmt.Errorf("faces: confidence threshold must be in [0,1]")
	case o.Decode.MinFaceSize > o.Decode.MaxFaceSize:
		return fmt.Errorf("faces: min face size exceeds max face size")
	case o.Select.AspectRatioMin > o.Select.AspectRatioMax:
		return fmt.Errorf("faces: min aspect ratio exceeds max aspect ratio")
	case o.Geometry.ExpandRatio < 0:
		return fmt.Errorf("faces: expand ratio must be >= 0")
	case o.MatchThreshold < -1 || o.MatchThreshold > 1:
		return fmt.Errorf("faces: match threshold must be in [-1,1]")
	}

	return nil
}
