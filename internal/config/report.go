package config

import (
	"fmt"
	"strings"

	"github.com/dustin/go-humanize"
)

// Report returns the config values as name-value rows.
func (c *Config) Report() (rows [][]string) {
	opt := c.FaceOptions()

	maps := make([]string, len(opt.FeatureMaps))

	for i, m := range opt.FeatureMaps {
		maps[i] = fmt.Sprintf("%dx%d/%d*%d", m.GridSize, m.GridSize, m.Stride, m.AnchorsPerCell)
	}

	rows = [][]string{
		{"version", Version},
		{"config-file", c.options.ConfigFile},
		{"log-level", c.LogLevel().String()},
		{"http-addr", c.HttpAddr()},
		{"http-mode", c.HttpMode()},
		{"http-cache-ttl", c.HttpCacheTTL().String()},
		{"detector-model", c.DetectorModelPath()},
		{"recognizer-model", c.RecognizerModelPath()},
		{"engine", c.EngineVersion()},
		{"inference-timeout", c.InferenceTimeout().String()},
		{"threads", fmt.Sprintf("%d", c.Threads())},
		{"cores", fmt.Sprintf("%d", c.Cores())},
		{"memory", humanize.Bytes(c.TotalMem())},
		{"max-image-size", fmt.Sprintf("%d", c.MaxImageSize())},
		{"target-size", fmt.Sprintf("%d", opt.TargetSize)},
		{"feature-maps", strings.Join(maps, " ")},
		{"detector-schema", string(opt.Schema.Kind)},
		{"detector-normalization", string(opt.DetectorNormalization)},
		{"confidence-threshold", fmt.Sprintf("%.2f", opt.Decode.ConfidenceThreshold)},
		{"nms-threshold", fmt.Sprintf("%.2f", opt.NMSThreshold)},
		{"expand-ratio", fmt.Sprintf("%.2f", opt.Geometry.ExpandRatio)},
		{"square", fmt.Sprintf("%t", opt.Geometry.Square)},
		{"normalization", string(opt.Normalization)},
		{"channel-order", string(opt.ChannelOrder)},
		{"flip-test", fmt.Sprintf("%t", opt.FlipTest)},
		{"match-threshold", fmt.Sprintf("%.2f", opt.MatchThreshold)},
		{"pid-filename", c.PIDFilename()},
		{"log-filename", c.LogFilename()},
	}

	return rows
}
