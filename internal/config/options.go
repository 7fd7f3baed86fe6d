package config

import (
	"fmt"
	"os"
	"reflect"

	"github.com/urfave/cli"
	"gopkg.in/yaml.v2"

	"github.com/photoprism/faceverify/internal/face"
)

// Options holds the configuration values. Values in a YAML file override the
// flag defaults, flags and environment variables that are set explicitly
// override the file. A zero value in the file is kept.
type Options struct {
	ConfigFile            string            `yaml:"-" flag:"config-file"`
	LogLevel              string            `yaml:"LogLevel" flag:"log-level"`
	HttpHost              string            `yaml:"HttpHost" flag:"http-host"`
	HttpPort              int               `yaml:"HttpPort" flag:"http-port"`
	HttpMode              string            `yaml:"HttpMode" flag:"http-mode"`
	HttpCacheTTL          int               `yaml:"HttpCacheTTL" flag:"http-cache-ttl"`
	ModelsPath            string            `yaml:"ModelsPath" flag:"models-path"`
	DetectorModel         string            `yaml:"DetectorModel" flag:"detector-model"`
	RecognizerModel       string            `yaml:"RecognizerModel" flag:"recognizer-model"`
	InferenceTimeout      int               `yaml:"InferenceTimeout" flag:"inference-timeout"`
	Threads               int               `yaml:"Threads" flag:"threads"`
	MaxImageSize          int               `yaml:"MaxImageSize" flag:"max-image-size"`
	TargetSize            int               `yaml:"TargetSize" flag:"target-size"`
	FeatureMaps           []face.FeatureMap `yaml:"FeatureMaps"`
	DetectorSchema        string            `yaml:"DetectorSchema" flag:"detector-schema"`
	DetectorInput         string            `yaml:"DetectorInput" flag:"detector-input"`
	DetectorScoreInput    string            `yaml:"DetectorScoreInput" flag:"detector-score-input"`
	DetectorIoUInput      string            `yaml:"DetectorIoUInput" flag:"detector-iou-input"`
	DetectorNormalization string            `yaml:"DetectorNormalization" flag:"detector-normalization"`
	ConfidenceThreshold   float64           `yaml:"ConfidenceThreshold" flag:"confidence-threshold"`
	MinFaceSize           float64           `yaml:"MinFaceSize" flag:"min-face-size"`
	MaxFaceSize           float64           `yaml:"MaxFaceSize" flag:"max-face-size"`
	NMSThreshold          float64           `yaml:"NMSThreshold" flag:"nms-threshold"`
	MinPixelSize          int               `yaml:"MinPixelSize" flag:"min-pixel-size"`
	MinSideRatio          float64           `yaml:"MinSideRatio" flag:"min-side-ratio"`
	MaxSideRatio          float64           `yaml:"MaxSideRatio" flag:"max-side-ratio"`
	EdgeMargin            float64           `yaml:"EdgeMargin" flag:"edge-margin"`
	AspectMin             float64           `yaml:"AspectMin" flag:"aspect-min"`
	AspectMax             float64           `yaml:"AspectMax" flag:"aspect-max"`
	ExpandRatio           float64           `yaml:"ExpandRatio" flag:"expand-ratio"`
	MaxExpandRatio        float64           `yaml:"MaxExpandRatio" flag:"max-expand-ratio"`
	DisableSquare         bool              `yaml:"DisableSquare" flag:"disable-square"`
	RecognizerInput       string            `yaml:"RecognizerInput" flag:"recognizer-input"`
	RecognizerOutput      string            `yaml:"RecognizerOutput" flag:"recognizer-output"`
	Normalization         string            `yaml:"Normalization" flag:"normalization"`
	ChannelOrder          string            `yaml:"ChannelOrder" flag:"channel-order"`
	DisableFlipTest       bool              `yaml:"DisableFlipTest" flag:"disable-flip-test"`
	MatchThreshold        float64           `yaml:"MatchThreshold" flag:"match-threshold"`
	PIDFilename           string            `yaml:"PIDFilename" flag:"pid-filename"`
	LogFilename           string            `yaml:"LogFilename" flag:"log-filename"`

	// fileKeys lists the keys present in the loaded YAML file.
	fileKeys map[string]bool
}

// NewOptions creates new configuration options based on the cli context.
func NewOptions(ctx *cli.Context) *Options {
	c := &Options{}

	if ctx == nil {
		return c
	}

	c.ConfigFile = ctx.String("config-file")

	if c.ConfigFile != "" {
		if err := c.Load(c.ConfigFile); err != nil {
			log.Errorf("config: %s", err)
		}
	}

	if err := c.SetContext(ctx); err != nil {
		log.Errorf("config: %s", err)
	}

	return c
}

// Load reads options from a YAML file.
func (c *Options) Load(fileName string) error {
	if fileName == "" {
		return nil
	}

	data, err := os.ReadFile(fileName)

	if err != nil {
		return fmt.Errorf("failed loading options from %s (%s)", fileName, err)
	}

	if err = yaml.Unmarshal(data, c); err != nil {
		return err
	}

	keys := make(map[string]interface{})

	if err = yaml.Unmarshal(data, &keys); err != nil {
		return err
	}

	c.fileKeys = make(map[string]bool, len(keys))

	for k := range keys {
		c.fileKeys[k] = true
	}

	return nil
}

// Yaml returns the options as YAML.
func (c *Options) Yaml() ([]byte, error) {
	return yaml.Marshal(c)
}

// SetContext applies values from the cli context. Flags that were not set
// explicitly only fill fields that are still empty and absent from the file.
func (c *Options) SetContext(ctx *cli.Context) error {
	v := reflect.ValueOf(c).Elem()

	for i := 0; i < v.NumField(); i++ {
		field := v.Field(i)
		tag := v.Type().Field(i).Tag
		name := tag.Get("flag")

		if name == "" {
			continue
		}

		isSet := ctx.IsSet(name) || ctx.GlobalIsSet(name)

		if !isSet && (!field.IsZero() || c.fileKeys[tag.Get("yaml")]) {
			continue
		}

		switch field.Interface().(type) {
		case string:
			field.SetString(ctx.String(name))
		case int:
			field.SetInt(int64(ctx.Int(name)))
		case float64:
			field.SetFloat(ctx.Float64(name))
		case bool:
			field.SetBool(ctx.Bool(name))
		default:
			return fmt.Errorf("unsupported type of option %s", name)
		}
	}

	return nil
}
