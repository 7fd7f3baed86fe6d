package config

import (
	"flag"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/sirupsen/logrus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/urfave/cli"

	"github.com/photoprism/faceverify/internal/face"
)

// cliContext returns a cli context with the global flags parsed from args.
func cliContext(t *testing.T, args ...string) *cli.Context {
	app := cli.NewApp()
	app.Flags = Flags

	set := flag.NewFlagSet("test", flag.ContinueOnError)

	for _, f := range Flags {
		f.Apply(set)
	}

	require.NoError(t, set.Parse(args))

	return cli.NewContext(app, set, nil)
}

func TestNewConfig(t *testing.T) {
	t.Run("Defaults", func(t *testing.T) {
		c := NewConfig(cliContext(t))

		assert.Equal(t, logrus.InfoLevel, c.LogLevel())
		assert.Equal(t, "0.0.0.0:2343", c.HttpAddr())
		assert.Equal(t, "release", c.HttpMode())
		assert.Equal(t, 10*time.Minute, c.HttpCacheTTL())
		assert.Equal(t, 30*time.Second, c.InferenceTimeout())
		assert.Equal(t, face.DefaultOptions(), c.FaceOptions())
		assert.NoError(t, c.Init())
	})
	t.Run("Flags", func(t *testing.T) {
		c := NewConfig(cliContext(t, "--http-port", "8080", "--match-threshold", "0.6", "--disable-flip-test", "--normalization", "zero_one"))

		assert.Equal(t, "0.0.0.0:8080", c.HttpAddr())

		opt := c.FaceOptions()

		assert.Equal(t, 0.6, opt.MatchThreshold)
		assert.False(t, opt.FlipTest)
		assert.Equal(t, face.NormZeroOne, opt.Normalization)
	})
	t.Run("ConfigFile", func(t *testing.T) {
		fileName := filepath.Join(t.TempDir(), "options.yml")
		data := []byte("LogLevel: debug\nHttpPort: 9000\nNMSThreshold: 0.4\nFeatureMaps:\n  - GridSize: 4\n    Stride: 32\n    AnchorsPerCell: 1\n")
		require.NoError(t, os.WriteFile(fileName, data, 0o600))

		c := NewConfig(cliContext(t, "--config-file", fileName, "--http-port", "9100"))

		assert.Equal(t, logrus.DebugLevel, c.LogLevel())
		assert.Equal(t, 9100, c.HttpPort())

		opt := c.FaceOptions()

		assert.Equal(t, 0.4, opt.NMSThreshold)
		assert.Equal(t, []face.FeatureMap{{GridSize: 4, Stride: 32, AnchorsPerCell: 1}}, opt.FeatureMaps)
		assert.Equal(t, 0.5, opt.Decode.ConfidenceThreshold)
	})
	t.Run("ConfigFileZero", func(t *testing.T) {
		fileName := filepath.Join(t.TempDir(), "options.yml")
		data := []byte("EdgeMargin: 0\nExpandRatio: 0\nMinSideRatio: 0\n")
		require.NoError(t, os.WriteFile(fileName, data, 0o600))

		c := NewConfig(cliContext(t, "--config-file", fileName, "--min-side-ratio", "0.1"))
		opt := c.FaceOptions()

		assert.Equal(t, 0.0, opt.Select.EdgeMarginRatio)
		assert.Equal(t, 0.0, opt.Geometry.ExpandRatio)
		assert.Equal(t, 0.1, opt.Select.MinSideRatio)
		assert.Equal(t, face.DefaultOptions().Select.MaxSideRatio, opt.Select.MaxSideRatio)
		assert.NoError(t, c.Init())
	})
	t.Run("InvalidOptions", func(t *testing.T) {
		c := NewConfig(cliContext(t, "--channel-order", "gbr"))

		assert.Error(t, c.Init())
	})
}

func TestFlags_Defaults(t *testing.T) {
	d := face.DefaultOptions()
	ctx := cliContext(t)

	assert.Equal(t, d.TargetSize, ctx.Int("target-size"))
	assert.Equal(t, d.NMSThreshold, ctx.Float64("nms-threshold"))
	assert.Equal(t, d.Select.EdgeMarginRatio, ctx.Float64("edge-margin"))
	assert.Equal(t, d.Geometry.ExpandRatio, ctx.Float64("expand-ratio"))
	assert.Equal(t, d.Geometry.MaxExpandRatio, ctx.Float64("max-expand-ratio"))
	assert.Equal(t, d.MatchThreshold, ctx.Float64("match-threshold"))
	assert.Equal(t, string(d.Normalization), ctx.String("normalization"))
	assert.Equal(t, string(d.DetectorNormalization), ctx.String("detector-normalization"))
}

func TestNewTestConfig(t *testing.T) {
	c := NewTestConfig()

	assert.Equal(t, "test", c.HttpMode())
	assert.Equal(t, face.DefaultOptions(), c.FaceOptions())
	assert.NotEmpty(t, c.Report())
}

func TestConfig_ModelPath(t *testing.T) {
	c := NewConfig(cliContext(t, "--models-path", "/srv/models", "--recognizer-model", "http://localhost:8500/arcface"))

	assert.Equal(t, "/srv/models/blazeface.tflite", c.DetectorModelPath())
	assert.Equal(t, "http://localhost:8500/arcface", c.RecognizerModelPath())
}

func TestConfig_Threads(t *testing.T) {
	c := NewTestConfig()

	assert.GreaterOrEqual(t, c.Threads(), 1)
	assert.Greater(t, c.TotalMem(), uint64(0))

	c.options.Threads = 1
	assert.Equal(t, 1, c.Threads())
}

func TestLoadEnv(t *testing.T) {
	fileName := filepath.Join(t.TempDir(), "test.env")
	require.NoError(t, os.WriteFile(fileName, []byte("FACEVERIFY_TEST_VALUE=loaded\n"), 0o600))

	t.Cleanup(func() { _ = os.Unsetenv("FACEVERIFY_TEST_VALUE") })

	LoadEnv(fileName, fileName+".missing")

	assert.Equal(t, "loaded", os.Getenv("FACEVERIFY_TEST_VALUE"))
}

func TestOptions_Yaml(t *testing.T) {
	c := NewTestConfig()

	data, err := c.Options().Yaml()

	require.NoError(t, err)
	assert.Contains(t, string(data), "HttpMode: test")
}
