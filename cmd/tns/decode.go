package main

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"log/slog"

	"github.com/epithet-ssh/tnetstring/pkg/document"
	"github.com/epithet-ssh/tnetstring/pkg/tnetstring"
)

type DecodeCLI struct {
	File   string          `arg:"" optional:"" help:"File of concatenated tnetstrings (stdin when omitted or -)"`
	Format document.Format `help:"Output format" short:"f" enum:"json,yaml,cue" default:"json"`
}

func (d *DecodeCLI) Run(logger *slog.Logger, codec *tnetstring.Codec[tnetstring.Value], std *stdio) error {
	in, err := openInput(std, d.File)
	if err != nil {
		return err
	}
	defer in.Close()

	dec := codec.NewDecoder(bufio.NewReader(in))
	count := 0
	for {
		v, err := dec.Decode()
		if errors.Is(err, io.EOF) {
			break
		}
		if err != nil {
			return fmt.Errorf("value %d: %w", count+1, err)
		}

		out, err := document.Render(v, d.Format)
		if err != nil {
			return fmt.Errorf("value %d: %w", count+1, err)
		}
		if count > 0 && d.Format == document.YAML {
			out = append([]byte("---\n"), out...)
		}
		if _, err := std.out.Write(out); err != nil {
			return err
		}
		count++
		logger.Debug("decoded value", "index", count, "offset", dec.Offset())
	}

	logger.Info("decoded stream", "values", count, "bytes", dec.Offset())
	return nil
}
