/*
Package config provides the faceverify configuration built from flags,
environment variables and an optional YAML file.
*/
package config

import (
	"fmt"
	"net"
	"os"
	"path/filepath"
	"runtime"
	"strconv"
	"time"

	"github.com/dustin/go-humanize"
	"github.com/joho/godotenv"
	"github.com/klauspost/cpuid/v2"
	"github.com/pbnjay/memory"
	"github.com/sirupsen/logrus"
	"github.com/urfave/cli"

	"github.com/photoprism/faceverify/internal/event"
	"github.com/photoprism/faceverify/internal/face"
	"github.com/photoprism/faceverify/internal/thumb"
)

var log = event.Log

// Name and Version identify the application; Version is set at build time.
var (
	Name    = "faceverify"
	Version = "development"
)

// Config holds the configuration values and derived settings.
type Config struct {
	options *Options
}

// LoadEnv reads .env files into the environment before flags are parsed.
// Missing files are ignored.
func LoadEnv(fileNames ...string) {
	if len(fileNames) == 0 {
		fileNames = []string{".env"}
	}

	for _, fileName := range fileNames {
		if _, err := os.Stat(fileName); err != nil {
			continue
		}

		if err := godotenv.Load(fileName); err != nil {
			log.Warnf("config: %s in %s", err, filepath.Base(fileName))
		}
	}
}

// NewConfig initialises a new configuration from the cli context.
func NewConfig(ctx *cli.Context) *Config {
	return &Config{options: NewOptions(ctx)}
}

// NewTestConfig returns a configuration with the flag defaults.
func NewTestConfig() *Config {
	c := &Config{options: &Options{}}

	c.options.LogLevel = "info"
	c.options.HttpHost = "127.0.0.1"
	c.options.HttpPort = 2343
	c.options.HttpMode = "test"
	c.options.HttpCacheTTL = 600
	c.options.InferenceTimeout = 30
	c.options.MaxImageSize = thumb.DefaultMaxSize

	return c.withFaceDefaults()
}

// withFaceDefaults fills empty pipeline options with the package defaults.
func (c *Config) withFaceDefaults() *Config {
	d := face.DefaultOptions()
	o := c.options

	if o.TargetSize == 0 {
		o.TargetSize = d.TargetSize
	}

	if o.DetectorSchema == "" {
		o.DetectorSchema = string(d.Schema.Kind)
	}

	if o.DetectorScoreInput == "" {
		o.DetectorScoreInput = d.DetectorScoreInput
	}

	if o.DetectorIoUInput == "" {
		o.DetectorIoUInput = d.DetectorIoUInput
	}

	if o.DetectorNormalization == "" {
		o.DetectorNormalization = string(d.DetectorNormalization)
	}

	if o.ConfidenceThreshold == 0 {
		o.ConfidenceThreshold = d.Decode.ConfidenceThreshold
	}

	if o.MinFaceSize == 0 {
		o.MinFaceSize = d.Decode.MinFaceSize
	}

	if o.MaxFaceSize == 0 {
		o.MaxFaceSize = d.Decode.MaxFaceSize
	}

	if o.NMSThreshold == 0 {
		o.NMSThreshold = d.NMSThreshold
	}

	if o.MinPixelSize == 0 {
		o.MinPixelSize = d.Select.MinPixelSize
	}

	if o.MinSideRatio == 0 {
		o.MinSideRatio = d.Select.MinSideRatio
	}

	if o.MaxSideRatio == 0 {
		o.MaxSideRatio = d.Select.MaxSideRatio
	}

	if o.EdgeMargin == 0 {
		o.EdgeMargin = d.Select.EdgeMarginRatio
	}

	if o.AspectMin == 0 {
		o.AspectMin = d.Select.AspectRatioMin
	}

	if o.AspectMax == 0 {
		o.AspectMax = d.Select.AspectRatioMax
	}

	if o.ExpandRatio == 0 {
		o.ExpandRatio = d.Geometry.ExpandRatio
	}

	if o.MaxExpandRatio == 0 {
		o.MaxExpandRatio = d.Geometry.MaxExpandRatio
	}

	if o.Normalization == "" {
		o.Normalization = string(d.Normalization)
	}

	if o.ChannelOrder == "" {
		o.ChannelOrder = string(d.ChannelOrder)
	}

	if o.MatchThreshold == 0 {
		o.MatchThreshold = d.MatchThreshold
	}

	return c
}

// Init applies the log level and image limits and validates the options.
func (c *Config) Init() error {
	event.SetLevel(c.options.LogLevel)

	thumb.MaxSize = c.MaxImageSize()

	if err := c.FaceOptions().Validate(); err != nil {
		return err
	}

	log.Debugf("config: %d cpu cores, %s memory, %s", c.Cores(), humanize.Bytes(c.TotalMem()), cpuid.CPU.BrandName)

	return nil
}

// Options returns the raw config options.
func (c *Config) Options() *Options {
	return c.options
}

// LogLevel returns the logrus log level.
func (c *Config) LogLevel() logrus.Level {
	if level, err := logrus.ParseLevel(c.options.LogLevel); err != nil {
		return logrus.InfoLevel
	} else {
		return level
	}
}

// HttpHost returns the web server ip address.
func (c *Config) HttpHost() string {
	if c.options.HttpHost == "" {
		return "0.0.0.0"
	}

	return c.options.HttpHost
}

// HttpPort returns the web server port.
func (c *Config) HttpPort() int {
	if c.options.HttpPort == 0 {
		return 2343
	}

	return c.options.HttpPort
}

// HttpAddr returns the web server listen address.
func (c *Config) HttpAddr() string {
	return net.JoinHostPort(c.HttpHost(), strconv.Itoa(c.HttpPort()))
}

// HttpMode returns the gin server mode.
func (c *Config) HttpMode() string {
	switch c.options.HttpMode {
	case "debug", "test":
		return c.options.HttpMode
	default:
		return "release"
	}
}

// HttpCacheTTL returns the encode result cache lifetime, 0 if disabled.
func (c *Config) HttpCacheTTL() time.Duration {
	if c.options.HttpCacheTTL <= 0 {
		return 0
	}

	return time.Duration(c.options.HttpCacheTTL) * time.Second
}

// InferenceTimeout returns the max duration of one inference request.
func (c *Config) InferenceTimeout() time.Duration {
	if c.options.InferenceTimeout <= 0 {
		return 30 * time.Second
	}

	return time.Duration(c.options.InferenceTimeout) * time.Second
}

// Cores returns the number of physical cpu cores.
func (c *Config) Cores() int {
	if cores := cpuid.CPU.PhysicalCores; cores > 0 {
		return cores
	}

	return runtime.NumCPU()
}

// Threads returns the inference thread limit.
func (c *Config) Threads() int {
	if c.options.Threads <= 0 || c.options.Threads > runtime.NumCPU() {
		return c.Cores()
	}

	return c.options.Threads
}

// TotalMem returns the total system memory in bytes.
func (c *Config) TotalMem() uint64 {
	return memory.TotalMemory()
}

// MaxImageSize returns the max decoded image width and height in pixels.
func (c *Config) MaxImageSize() int {
	if c.options.MaxImageSize <= 0 {
		return 8192
	}

	return c.options.MaxImageSize
}

// PIDFilename returns the process id filename for daemon mode.
func (c *Config) PIDFilename() string {
	if c.options.PIDFilename == "" {
		return filepath.Join(os.TempDir(), Name+".pid")
	}

	return c.options.PIDFilename
}

// LogFilename returns the log filename for daemon mode.
func (c *Config) LogFilename() string {
	if c.options.LogFilename == "" {
		return filepath.Join(os.TempDir(), Name+".log")
	}

	return c.options.LogFilename
}

// FaceOptions returns the pipeline options.
func (c *Config) FaceOptions() face.Options {
	o := c.options
	opt := face.DefaultOptions()

	opt.TargetSize = o.TargetSize

	if len(o.FeatureMaps) > 0 {
		opt.FeatureMaps = o.FeatureMaps
	}

	opt.Schema.Kind = face.SchemaKind(o.DetectorSchema)
	opt.DetectorInput = o.DetectorInput
	opt.DetectorScoreInput = o.DetectorScoreInput
	opt.DetectorIoUInput = o.DetectorIoUInput
	opt.DetectorNormalization = face.Normalization(o.DetectorNormalization)
	opt.Decode = face.DecodeOptions{
		ConfidenceThreshold: o.ConfidenceThreshold,
		MinFaceSize:         o.MinFaceSize,
		MaxFaceSize:         o.MaxFaceSize,
	}
	opt.NMSThreshold = o.NMSThreshold
	opt.Select.MinPixelSize = o.MinPixelSize
	opt.Select.MinSideRatio = o.MinSideRatio
	opt.Select.MaxSideRatio = o.MaxSideRatio
	opt.Select.EdgeMarginRatio = o.EdgeMargin
	opt.Select.AspectRatioMin = o.AspectMin
	opt.Select.AspectRatioMax = o.AspectMax
	opt.Geometry = face.GeometryOptions{
		ExpandRatio:    o.ExpandRatio,
		MaxExpandRatio: o.MaxExpandRatio,
		Square:         !o.DisableSquare,
		MinPixelSize:   o.MinPixelSize,
	}
	opt.RecognizerInput = o.RecognizerInput
	opt.RecognizerOutput = o.RecognizerOutput
	opt.Normalization = face.Normalization(o.Normalization)
	opt.ChannelOrder = face.ChannelOrder(o.ChannelOrder)
	opt.FlipTest = !o.DisableFlipTest
	opt.MatchThreshold = o.MatchThreshold

	return opt
}

// String returns a short description for logs.
func (c *Config) String() string {
	return fmt.Sprintf("%s %s", Name, Version)
}
