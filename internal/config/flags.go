package config

import (
	"github.com/urfave/cli"

	"github.com/photoprism/faceverify/internal/face"
	"github.com/photoprism/faceverify/internal/thumb"
)

// defaults is the canonical pipeline configuration the face flags start from.
var defaults = face.DefaultOptions()

// Flags lists the global command-line parameters.
var Flags = []cli.Flag{
	cli.StringFlag{
		Name:   "config-file, c",
		Usage:  "load options from a YAML `FILENAME`",
		EnvVar: "FACEVERIFY_CONFIG_FILE",
	},
	cli.StringFlag{
		Name:   "log-level, l",
		Usage:  "trace, debug, info, warning, error, fatal or panic",
		Value:  "info",
		EnvVar: "FACEVERIFY_LOG_LEVEL",
	},
	cli.StringFlag{
		Name:   "http-host",
		Usage:  "web server `IP` address",
		Value:  "0.0.0.0",
		EnvVar: "FACEVERIFY_HTTP_HOST",
	},
	cli.IntFlag{
		Name:   "http-port",
		Usage:  "web server port `NUMBER`",
		Value:  2343,
		EnvVar: "FACEVERIFY_HTTP_PORT",
	},
	cli.StringFlag{
		Name:   "http-mode",
		Usage:  "web server `MODE` (debug, release or test)",
		Value:  "release",
		EnvVar: "FACEVERIFY_HTTP_MODE",
	},
	cli.IntFlag{
		Name:   "http-cache-ttl",
		Usage:  "encode result cache lifetime in `SECONDS`, 0 to disable",
		Value:  600,
		EnvVar: "FACEVERIFY_HTTP_CACHE_TTL",
	},
	cli.StringFlag{
		Name:   "models-path",
		Usage:  "base `PATH` of relative model file names",
		EnvVar: "FACEVERIFY_MODELS_PATH",
	},
	cli.StringFlag{
		Name:   "detector-model",
		Usage:  "face detector `SOURCE`, a .tflite file or a model server url",
		Value:  "blazeface.tflite",
		EnvVar: "FACEVERIFY_DETECTOR_MODEL",
	},
	cli.StringFlag{
		Name:   "recognizer-model",
		Usage:  "face recognizer `SOURCE`, a .tflite file or a model server url",
		Value:  "arcface.tflite",
		EnvVar: "FACEVERIFY_RECOGNIZER_MODEL",
	},
	cli.IntFlag{
		Name:   "inference-timeout",
		Usage:  "max inference request duration in `SECONDS`",
		Value:  30,
		EnvVar: "FACEVERIFY_INFERENCE_TIMEOUT",
	},
	cli.IntFlag{
		Name:   "threads, t",
		Usage:  "inference thread `LIMIT`, 0 for the number of physical cores",
		EnvVar: "FACEVERIFY_THREADS",
	},
	cli.IntFlag{
		Name:   "max-image-size",
		Usage:  "max decoded image width and height in `PIXELS`",
		Value:  thumb.DefaultMaxSize,
		EnvVar: "FACEVERIFY_MAX_IMAGE_SIZE",
	},
	cli.IntFlag{
		Name:   "target-size",
		Usage:  "detector input size in `PIXELS`",
		Value:  defaults.TargetSize,
		EnvVar: "FACEVERIFY_TARGET_SIZE",
	},
	cli.StringFlag{
		Name:   "detector-schema",
		Usage:  "detector output `LAYOUT` (auto, direct or anchor)",
		Value:  string(defaults.Schema.Kind),
		EnvVar: "FACEVERIFY_DETECTOR_SCHEMA",
	},
	cli.StringFlag{
		Name:   "detector-input",
		Usage:  "detector image input `NAME`, defaults to the first declared input",
		EnvVar: "FACEVERIFY_DETECTOR_INPUT",
	},
	cli.StringFlag{
		Name:   "detector-score-input",
		Usage:  "optional detector confidence threshold input `NAME`",
		Value:  defaults.DetectorScoreInput,
		EnvVar: "FACEVERIFY_DETECTOR_SCORE_INPUT",
	},
	cli.StringFlag{
		Name:   "detector-iou-input",
		Usage:  "optional detector iou threshold input `NAME`",
		Value:  defaults.DetectorIoUInput,
		EnvVar: "FACEVERIFY_DETECTOR_IOU_INPUT",
	},
	cli.StringFlag{
		Name:   "detector-normalization",
		Usage:  "detector pixel `MODE` (insight, zero_one or torch)",
		Value:  string(defaults.DetectorNormalization),
		EnvVar: "FACEVERIFY_DETECTOR_NORMALIZATION",
	},
	cli.Float64Flag{
		Name:   "confidence-threshold",
		Usage:  "min detection `SCORE`",
		Value:  defaults.Decode.ConfidenceThreshold,
		EnvVar: "FACEVERIFY_CONFIDENCE_THRESHOLD",
	},
	cli.Float64Flag{
		Name:   "min-face-size",
		Usage:  "min face side as `FRACTION` of the detector input",
		Value:  defaults.Decode.MinFaceSize,
		EnvVar: "FACEVERIFY_MIN_FACE_SIZE",
	},
	cli.Float64Flag{
		Name:   "max-face-size",
		Usage:  "max face side as `FRACTION` of the detector input",
		Value:  defaults.Decode.MaxFaceSize,
		EnvVar: "FACEVERIFY_MAX_FACE_SIZE",
	},
	cli.Float64Flag{
		Name:   "nms-threshold",
		Usage:  "non-max suppression iou `THRESHOLD`",
		Value:  defaults.NMSThreshold,
		EnvVar: "FACEVERIFY_NMS_THRESHOLD",
	},
	cli.IntFlag{
		Name:   "min-pixel-size",
		Usage:  "min face side in `PIXELS`",
		Value:  defaults.Select.MinPixelSize,
		EnvVar: "FACEVERIFY_MIN_PIXEL_SIZE",
	},
	cli.Float64Flag{
		Name:   "min-side-ratio",
		Usage:  "min face side as `FRACTION` of the shorter image side",
		Value:  defaults.Select.MinSideRatio,
		EnvVar: "FACEVERIFY_MIN_SIDE_RATIO",
	},
	cli.Float64Flag{
		Name:   "max-side-ratio",
		Usage:  "max face side as `FRACTION` of the shorter image side",
		Value:  defaults.Select.MaxSideRatio,
		EnvVar: "FACEVERIFY_MAX_SIDE_RATIO",
	},
	cli.Float64Flag{
		Name:   "edge-margin",
		Usage:  "min distance from the image border as `FRACTION` of its size",
		Value:  defaults.Select.EdgeMarginRatio,
		EnvVar: "FACEVERIFY_EDGE_MARGIN",
	},
	cli.Float64Flag{
		Name:   "aspect-min",
		Usage:  "min face width to height `RATIO`",
		Value:  defaults.Select.AspectRatioMin,
		EnvVar: "FACEVERIFY_ASPECT_MIN",
	},
	cli.Float64Flag{
		Name:   "aspect-max",
		Usage:  "max face width to height `RATIO`",
		Value:  defaults.Select.AspectRatioMax,
		EnvVar: "FACEVERIFY_ASPECT_MAX",
	},
	cli.Float64Flag{
		Name:   "expand-ratio",
		Usage:  "face area growth `RATIO` before cropping",
		Value:  defaults.Geometry.ExpandRatio,
		EnvVar: "FACEVERIFY_EXPAND_RATIO",
	},
	cli.Float64Flag{
		Name:   "max-expand-ratio",
		Usage:  "upper `LIMIT` of the expand ratio",
		Value:  defaults.Geometry.MaxExpandRatio,
		EnvVar: "FACEVERIFY_MAX_EXPAND_RATIO",
	},
	cli.BoolFlag{
		Name:   "disable-square",
		Usage:  "crop the expanded face area without making it square",
		EnvVar: "FACEVERIFY_DISABLE_SQUARE",
	},
	cli.StringFlag{
		Name:   "recognizer-input",
		Usage:  "recognizer input `NAME`, defaults to the first declared input",
		EnvVar: "FACEVERIFY_RECOGNIZER_INPUT",
	},
	cli.StringFlag{
		Name:   "recognizer-output",
		Usage:  "recognizer embedding output `NAME`, defaults to the first declared output",
		EnvVar: "FACEVERIFY_RECOGNIZER_OUTPUT",
	},
	cli.StringFlag{
		Name:   "normalization",
		Usage:  "recognizer pixel `MODE` (insight, zero_one or torch)",
		Value:  string(defaults.Normalization),
		EnvVar: "FACEVERIFY_NORMALIZATION",
	},
	cli.StringFlag{
		Name:   "channel-order",
		Usage:  "recognizer channel `ORDER` (rgb or bgr)",
		Value:  string(defaults.ChannelOrder),
		EnvVar: "FACEVERIFY_CHANNEL_ORDER",
	},
	cli.BoolFlag{
		Name:   "disable-flip-test",
		Usage:  "embed the face only once without its mirror image",
		EnvVar: "FACEVERIFY_DISABLE_FLIP_TEST",
	},
	cli.Float64Flag{
		Name:   "match-threshold",
		Usage:  "min cosine `SIMILARITY` of a match",
		Value:  defaults.MatchThreshold,
		EnvVar: "FACEVERIFY_MATCH_THRESHOLD",
	},
	cli.StringFlag{
		Name:   "pid-filename",
		Usage:  "process id `FILENAME` when running in background",
		EnvVar: "FACEVERIFY_PID_FILENAME",
	},
	cli.StringFlag{
		Name:   "log-filename",
		Usage:  "server log `FILENAME` when running in background",
		EnvVar: "FACEVERIFY_LOG_FILENAME",
	},
}
