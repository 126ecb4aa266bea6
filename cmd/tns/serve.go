package main

import (
	"log/slog"
	"net/http"
	"time"

	"github.com/epithet-ssh/tnetstring/pkg/tnetstring"
	"github.com/epithet-ssh/tnetstring/pkg/tnserver"
)

type ServeCLI struct {
	Listen string `help:"Address to listen on" short:"l" env:"TNS_LISTEN" default:"${listen}"`
}

func (s *ServeCLI) Run(logger *slog.Logger, codec *tnetstring.Codec[tnetstring.Value]) error {
	logger.Info("listening", "address", s.Listen)
	return s.server(logger, codec).ListenAndServe()
}

func (s *ServeCLI) server(logger *slog.Logger, codec *tnetstring.Codec[tnetstring.Value]) *http.Server {
	return &http.Server{
		Addr:              s.Listen,
		Handler:           tnserver.New(codec, logger),
		ReadHeaderTimeout: 10 * time.Second,
	}
}
