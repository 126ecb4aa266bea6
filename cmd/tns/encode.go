package main

import (
	"fmt"
	"log/slog"
	"os"

	"github.com/epithet-ssh/tnetstring/pkg/document"
	"github.com/epithet-ssh/tnetstring/pkg/tnetstring"
)

type EncodeCLI struct {
	Files   []string `arg:"" optional:"" help:"Document files, unified into one value (stdin when omitted or -)"`
	Newline bool     `help:"Write a newline after the tnetstring" short:"n"`
}

func (e *EncodeCLI) Run(logger *slog.Logger, codec *tnetstring.Codec[tnetstring.Value], std *stdio) error {
	v, err := e.read(std)
	if err != nil {
		return fmt.Errorf("unable to read document: %w", err)
	}

	out, err := codec.Encode(v)
	if err != nil {
		return fmt.Errorf("unable to encode: %w", err)
	}
	logger.Info("encoded", "files", len(e.Files), "bytes", len(out))

	if e.Newline {
		out = append(out, '\n')
	}
	_, err = std.out.Write(out)
	return err
}

func (e *EncodeCLI) read(std *stdio) (tnetstring.Value, error) {
	switch {
	case len(e.Files) == 0, len(e.Files) == 1 && e.Files[0] == "-":
		return document.Read(std.in)
	case len(e.Files) == 1:
		return document.Load(e.Files[0])
	}

	// Merge skips missing files, which is wrong for named arguments.
	for _, f := range e.Files {
		if _, err := os.Stat(f); err != nil {
			return nil, err
		}
	}
	return document.Merge(e.Files...)
}
