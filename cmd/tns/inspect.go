package main

import (
	"bytes"
	"fmt"
	"io"
	"log/slog"
	"strings"

	"github.com/epithet-ssh/tnetstring/pkg/config"
	"github.com/epithet-ssh/tnetstring/pkg/tnetstring"
)

// InspectCLI prints one line per tnetstring: offset, tag, payload length
// and, for scalars, the decoded value. Nested items are indented.
type InspectCLI struct {
	File string `arg:"" optional:"" help:"File of concatenated tnetstrings (stdin when omitted or -)"`
}

const previewLimit = 40

func (i *InspectCLI) Run(logger *slog.Logger, codec *tnetstring.Codec[tnetstring.Value], settings config.Settings, std *stdio) error {
	in, err := openInput(std, i.File)
	if err != nil {
		return err
	}
	defer in.Close()

	data, err := io.ReadAll(in)
	if err != nil {
		return fmt.Errorf("unable to read input: %w", err)
	}

	w := &walker{
		out:       std.out,
		codec:     codec,
		maxLength: settings.MaxLength,
		maxDepth:  settings.MaxDepth,
		lenient:   settings.Lenient,
	}
	if w.maxDepth <= 0 {
		w.maxDepth = tnetstring.DefaultMaxDepth
	}

	if err := w.walk(data, 0, 0); err != nil {
		return err
	}
	logger.Info("inspected", "bytes", len(data), "frames", w.frames)
	return nil
}

type walker struct {
	out       io.Writer
	codec     *tnetstring.Codec[tnetstring.Value]
	maxLength int
	maxDepth  int
	lenient   bool
	frames    int
}

func (w *walker) walk(data []byte, offset, depth int) error {
	for len(data) > 0 {
		if depth == 0 && w.lenient {
			trimmed := bytes.TrimLeft(data, " \t\r\n")
			offset += len(data) - len(trimmed)
			data = trimmed
			if len(data) == 0 {
				return nil
			}
		}

		tag, payload, rest, err := tnetstring.SplitFrame(data, w.maxLength)
		if err != nil {
			return fmt.Errorf("frame at offset %d: %w", offset, err)
		}
		size := len(data) - len(rest)
		w.frames++

		fmt.Fprintf(w.out, "%8d  %s%-8s %d", offset, strings.Repeat("  ", depth), tag, len(payload))
		if tag.Container() {
			fmt.Fprintln(w.out)
			if depth >= w.maxDepth {
				return fmt.Errorf("frame at offset %d: %w", offset, tnetstring.ErrNestingTooDeep)
			}
			if err := w.walk(payload, offset+size-len(payload)-1, depth+1); err != nil {
				return err
			}
		} else {
			v, err := w.codec.DecodePayload(tag, payload)
			if err != nil {
				fmt.Fprintln(w.out)
				return fmt.Errorf("frame at offset %d: %w", offset, err)
			}
			fmt.Fprintf(w.out, "  %s\n", preview(v))
		}

		offset += size
		data = rest
	}
	return nil
}

func preview(v tnetstring.Value) string {
	switch x := v.(type) {
	case tnetstring.Null:
		return "null"
	case tnetstring.String:
		return quote(string(x))
	case tnetstring.Text:
		return quote(string(x))
	}
	return fmt.Sprint(v)
}

func quote(s string) string {
	if len(s) > previewLimit {
		return fmt.Sprintf("%q...", s[:previewLimit])
	}
	return fmt.Sprintf("%q", s)
}
