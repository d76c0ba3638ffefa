package main

import (
	"bufio"
	"bytes"
	"fmt"
	"os"
	"os/exec"
	"path/filepath"

	"github.com/urfave/cli/v2"
	"go.uber.org/zap"

	"github.com/zparsgo/zparsgo/codec"
	"github.com/zparsgo/zparsgo/internal/cpufeatures"
	"github.com/zparsgo/zparsgo/internal/zerr"
	"github.com/zparsgo/zparsgo/zpaq"
)

var compressionFlags = []cli.Flag{
	&cli.StringFlag{Name: "input", Aliases: []string{"i"}, Required: true},
	&cli.StringFlag{Name: "output", Aliases: []string{"o"}, Required: true},
	&cli.StringFlag{Name: "level", Usage: "named preset 0-5 (overrides the raw flags below)"},
	&cli.IntFlag{Name: "block-size", Value: 1 << 20},
	&cli.IntFlag{Name: "min-match", Value: 4},
	&cli.IntFlag{Name: "secondary-match", Value: 0},
	&cli.IntFlag{Name: "search-log", Value: 3},
	&cli.IntFlag{Name: "table-log", Value: 20},
}

func compressionOptionsFromFlags(c *cli.Context) (codec.CompressionOptions, error) {
	if lvl := c.String("level"); lvl != "" {
		return presetByName(lvl)
	}
	return codec.CompressionOptions{
		BlockSize:      c.Int("block-size"),
		MinMatch:       c.Int("min-match"),
		SecondaryMatch: c.Int("secondary-match"),
		SearchLog:      uint8(c.Int("search-log")),
		TableLog:       uint8(c.Int("table-log")),
	}, nil
}

func runCompress(c *cli.Context) error {
	opts, err := compressionOptionsFromFlags(c)
	if err != nil {
		return err
	}
	logger := loggerFromContext(c)
	logger.Info("compression started",
		zap.String("input", c.String("input")),
		zap.String("output", c.String("output")),
		zap.Any("cpu_features", cpufeatures.Detect()),
	)

	in, err := os.Open(c.String("input"))
	if err != nil {
		return zerr.Io(err)
	}
	defer in.Close()
	out, err := os.Create(c.String("output"))
	if err != nil {
		return zerr.Io(err)
	}
	defer out.Close()

	reader := bufio.NewReader(in)
	writer := bufio.NewWriter(out)
	if err := codec.Compress(reader, writer, opts, logger); err != nil {
		return err
	}
	if err := writer.Flush(); err != nil {
		return zerr.Io(err)
	}

	logger.Info("compression completed")
	return nil
}

func runDecompress(c *cli.Context) error {
	logger := loggerFromContext(c)
	logger.Info("decompression started",
		zap.String("input", c.String("input")),
		zap.String("output", c.String("output")),
	)

	in, err := os.Open(c.String("input"))
	if err != nil {
		return zerr.Io(err)
	}
	defer in.Close()
	out, err := os.Create(c.String("output"))
	if err != nil {
		return zerr.Io(err)
	}
	defer out.Close()

	reader := bufio.NewReader(in)
	writer := bufio.NewWriter(out)
	if err := codec.Decompress(reader, writer, logger); err != nil {
		return err
	}
	if err := writer.Flush(); err != nil {
		return zerr.Io(err)
	}

	logger.Info("decompression completed")
	return nil
}

func runRoundtrip(c *cli.Context) error {
	opts, err := compressionOptionsFromFlags(c)
	if err != nil {
		return err
	}
	logger := loggerFromContext(c)
	logger.Info("roundtrip started",
		zap.String("input", c.String("input")),
		zap.String("output", c.String("output")),
	)

	raw, err := os.ReadFile(c.String("input"))
	if err != nil {
		return zerr.Io(err)
	}

	var compressed bytes.Buffer
	if err := codec.Compress(bytes.NewReader(raw), &compressed, opts, logger); err != nil {
		return err
	}

	var restored bytes.Buffer
	if err := codec.Decompress(bytes.NewReader(compressed.Bytes()), &restored, logger); err != nil {
		return err
	}

	if !bytes.Equal(raw, restored.Bytes()) {
		return fmt.Errorf("roundtrip mismatch")
	}

	if err := os.WriteFile(c.String("output"), restored.Bytes(), 0o644); err != nil {
		return zerr.Io(err)
	}

	logger.Debug("roundtrip metrics",
		zap.Int("raw", len(raw)),
		zap.Int("compressed", compressed.Len()),
		zap.Int("restored", restored.Len()),
	)
	logger.Info("roundtrip completed")
	return nil
}

func runInspectZpaq(c *cli.Context) error {
	logger := loggerFromContext(c)
	blocks, err := zpaq.InspectFile(c.String("input"), logger)
	if err != nil {
		return err
	}
	logger.Info("zpaq blocks detected", zap.Int("count", len(blocks)), zap.String("input", c.String("input")))

	for idx, b := range blocks {
		fmt.Printf(
			"block=%d offset=%d level=%d type=%d hsize=%d hh=%d hm=%d ph=%d pm=%d comps=%d comp_bytes=%d hcomp_bytes=%d segment_offset=%d\n",
			idx, b.StartOffset, b.Level, b.ZpaqlType, b.Hsize, b.Hh, b.Hm, b.Ph, b.Pm,
			b.NComponents, b.CompBytes, b.HcompBytes, b.SegmentOffset,
		)
	}
	return nil
}

func runExtractZpaqM0(c *cli.Context) error {
	logger := loggerFromContext(c)
	segments, err := zpaq.ExtractUnmodeledFile(c.String("input"), logger)
	if err != nil {
		return err
	}
	if err := writeSegments(segments, c.String("output-dir"), logger); err != nil {
		return err
	}
	logger.Info("zpaq -m0 extraction completed", zap.Int("segments", len(segments)))
	return nil
}

func runExtractZpaq(c *cli.Context) error {
	logger := loggerFromContext(c)
	outputDir := c.String("output-dir")
	if err := os.MkdirAll(outputDir, 0o755); err != nil {
		return zerr.Io(err)
	}

	referenceBin := c.String("reference-bin")
	if c.Bool("allow-reference-fallback") {
		if _, err := os.Stat(referenceBin); err == nil {
			logger.Info("using reference extractor", zap.String("reference", referenceBin), zap.String("mode", "reference"))
			return runReferenceExtract(referenceBin, c.String("input"), outputDir)
		}
	}

	segments, err := zpaq.ExtractUnmodeledFile(c.String("input"), logger)
	if err != nil {
		return err
	}
	if err := writeSegments(segments, outputDir, logger); err != nil {
		return err
	}
	logger.Info("zpaq extraction completed", zap.Int("segments", len(segments)), zap.String("mode", "native-unmodeled"))
	return nil
}

func writeSegments(segments []zpaq.ExtractedSegment, outputDir string, logger *zap.Logger) error {
	if err := os.MkdirAll(outputDir, 0o755); err != nil {
		return zerr.Io(err)
	}

	for _, seg := range segments {
		name := seg.Filename
		if name == "" {
			name = fmt.Sprintf("block%d_segment.bin", seg.BlockIndex)
		}
		path := filepath.Join(outputDir, name)
		if parent := filepath.Dir(path); parent != "." {
			if err := os.MkdirAll(parent, 0o755); err != nil {
				return zerr.Io(err)
			}
		}
		if err := os.WriteFile(path, seg.Data, 0o644); err != nil {
			return zerr.Io(err)
		}
		logger.Info("extracted segment", zap.Int("block", seg.BlockIndex), zap.String("file", path), zap.Int("bytes", len(seg.Data)))
	}
	return nil
}

func runReferenceExtract(referenceBin, input, outputDir string) error {
	cmd := exec.Command(referenceBin, "x", input, "-force", "-t1")
	cmd.Dir = outputDir
	cmd.Stdout = os.Stdout
	cmd.Stderr = os.Stderr
	if err := cmd.Run(); err != nil {
		return fmt.Errorf("running reference extractor %s: %w", referenceBin, err)
	}
	return nil
}
