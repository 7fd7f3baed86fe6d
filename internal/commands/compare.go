package commands

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/urfave/cli"

	"github.com/photoprism/faceverify/internal/config"
	"github.com/photoprism/faceverify/internal/face"
)

// CompareCommand registers the compare cli command.
var CompareCommand = cli.Command{
	Name:      "compare",
	Usage:     "Compares the faces of two images or JSON embedding files",
	ArgsUsage: "[a] [b]",
	Action:    compareAction,
}

// isEmbeddingFile tests if fileName holds a JSON embedding instead of an image.
func isEmbeddingFile(fileName string) bool {
	return strings.EqualFold(filepath.Ext(fileName), ".json")
}

// readEmbedding reads a JSON array or an object with an embedding member.
func readEmbedding(fileName string) (face.Embedding, error) {
	data, err := os.ReadFile(fileName)

	if err != nil {
		return nil, err
	}

	if e, err := face.ParseEmbedding(data); err == nil {
		return e, nil
	}

	var out encodeOutput

	if err = json.Unmarshal(data, &out); err != nil {
		return nil, face.ErrInvalidEmbeddingFormat.Withf("%s", filepath.Base(fileName))
	}

	return face.ValidateEmbedding(out.Embedding)
}

func compareAction(ctx *cli.Context) error {
	args := ctx.Args()

	if len(args) != 2 {
		return cli.ShowSubcommandHelp(ctx)
	}

	conf, err := initConfig(ctx)

	if err != nil {
		return err
	}

	embeddings := make([]face.Embedding, 2)

	var net *face.Net

	for i, fileName := range args {
		if isEmbeddingFile(fileName) {
			if embeddings[i], err = readEmbedding(fileName); err != nil {
				return err
			}

			continue
		}

		if net == nil {
			if net, err = loadNet(conf); err != nil {
				return err
			}

			defer net.Close()
		}

		result, err := encodeFile(net, fileName, conf.InferenceTimeout())

		if err != nil {
			return fmt.Errorf("%s: %w", filepath.Base(fileName), err)
		}

		embeddings[i] = result.Embedding
	}

	return printComparison(conf, embeddings[0], embeddings[1])
}

func printComparison(conf *config.Config, a, b face.Embedding) error {
	result, err := face.Compare(a, b, conf.FaceOptions().MatchThreshold)

	if err != nil {
		return err
	}

	fmt.Printf("similarity: %.4f\ndistance:   %.4f\nthreshold:  %.2f\nmatch:      %t\n", result.Similarity, result.Distance, result.Threshold, result.IsMatch)

	return nil
}
