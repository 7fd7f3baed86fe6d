package commands

import (
	"fmt"
	"path/filepath"
	"time"

	"github.com/dustin/go-humanize/english"
	"github.com/montanaflynn/stats"
	"github.com/urfave/cli"

	"github.com/photoprism/faceverify/internal/face"
	"github.com/photoprism/faceverify/pkg/fs"
)

// EvaluateCommand registers the evaluate cli command.
var EvaluateCommand = cli.Command{
	Name:      "evaluate",
	Usage:     "Encodes all images in a directory and reports similarity statistics, subdirectories are identities",
	ArgsUsage: "[path]",
	Action:    evaluateAction,
}

// Sample is an encoded face with its identity label.
type Sample struct {
	File      string
	Identity  string
	Embedding face.Embedding
}

// Summary describes a list of similarity values.
type Summary struct {
	Count   int
	Matches int
	Mean    float64
	Median  float64
	P5      float64
	P95     float64
}

// Evaluation is the outcome of comparing all sample pairs.
type Evaluation struct {
	Threshold float64
	Genuine   Summary
	Impostor  Summary
}

// TrueAcceptRate returns the fraction of genuine pairs that match.
func (e Evaluation) TrueAcceptRate() float64 {
	if e.Genuine.Count == 0 {
		return 0
	}

	return float64(e.Genuine.Matches) / float64(e.Genuine.Count)
}

// FalseAcceptRate returns the fraction of impostor pairs that match.
func (e Evaluation) FalseAcceptRate() float64 {
	if e.Impostor.Count == 0 {
		return 0
	}

	return float64(e.Impostor.Matches) / float64(e.Impostor.Count)
}

// Evaluate compares all sample pairs. Pairs with the same identity are genuine.
func Evaluate(samples []Sample, threshold float64) (result Evaluation, err error) {
	var genuine, impostor []float64

	result.Threshold = threshold

	for i := 0; i < len(samples); i++ {
		for j := i + 1; j < len(samples); j++ {
			c, err := face.Compare(samples[i].Embedding, samples[j].Embedding, threshold)

			if err != nil {
				return result, err
			}

			if samples[i].Identity == samples[j].Identity {
				genuine = append(genuine, c.Similarity)

				if c.IsMatch {
					result.Genuine.Matches++
				}
			} else {
				impostor = append(impostor, c.Similarity)

				if c.IsMatch {
					result.Impostor.Matches++
				}
			}
		}
	}

	if err = summarize(genuine, &result.Genuine); err != nil {
		return result, err
	}

	if err = summarize(impostor, &result.Impostor); err != nil {
		return result, err
	}

	return result, nil
}

func summarize(values []float64, s *Summary) (err error) {
	s.Count = len(values)

	if s.Count == 0 {
		return nil
	}

	data := stats.Float64Data(values)

	if s.Mean, err = data.Mean(); err != nil {
		return err
	}

	if s.Median, err = data.Median(); err != nil {
		return err
	}

	if s.P5, err = data.PercentileNearestRank(5); err != nil {
		return err
	}

	if s.P95, err = data.PercentileNearestRank(95); err != nil {
		return err
	}

	s.Mean, s.Median = face.Round4(s.Mean), face.Round4(s.Median)
	s.P5, s.P95 = face.Round4(s.P5), face.Round4(s.P95)

	return nil
}

func evaluateAction(ctx *cli.Context) error {
	start := time.Now()
	dir := ctx.Args().First()

	if dir == "" {
		return cli.ShowSubcommandHelp(ctx)
	}

	if !fs.PathExists(dir) {
		return fmt.Errorf("evaluate: %s is not a directory", dir)
	}

	conf, err := initConfig(ctx)

	if err != nil {
		return err
	}

	files, err := fs.Images(dir)

	if err != nil {
		return err
	}

	log.Infof("evaluate: found %s in %s", english.Plural(len(files), "image", "images"), dir)

	net, err := loadNet(conf)

	if err != nil {
		return err
	}

	defer net.Close()

	var samples []Sample

	for _, fileName := range files {
		result, err := encodeFile(net, fileName, conf.InferenceTimeout())

		if err != nil {
			log.Warnf("evaluate: %s in %s", err, filepath.Base(fileName))
			continue
		}

		samples = append(samples, Sample{
			File:      fileName,
			Identity:  filepath.Dir(fileName),
			Embedding: result.Embedding,
		})
	}

	result, err := Evaluate(samples, conf.FaceOptions().MatchThreshold)

	if err != nil {
		return err
	}

	fmt.Printf("encoded %s with faces out of %d [%s]\n", english.Plural(len(samples), "image", "images"), len(files), time.Since(start))
	fmt.Printf("threshold  %.2f\n", result.Threshold)
	printSummary("genuine", result.Genuine)
	printSummary("impostor", result.Impostor)
	fmt.Printf("tar        %.4f\nfar        %.4f\n", result.TrueAcceptRate(), result.FalseAcceptRate())

	return nil
}

func printSummary(name string, s Summary) {
	fmt.Printf("%-10s %s, %d matches, mean %.4f, median %.4f, p5 %.4f, p95 %.4f\n",
		name, english.Plural(s.Count, "pair", "pairs"), s.Matches, s.Mean, s.Median, s.P5, s.P95)
}
