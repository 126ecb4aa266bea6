// Package tnserver serves tnetstring conversion over HTTP.
//
//	POST /encode   YAML, JSON or CUE document in, one tnetstring out
//	POST /decode   concatenated tnetstrings in, JSON array out
//	GET  /healthz  liveness check
package tnserver

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"time"

	"github.com/epithet-ssh/tnetstring/pkg/document"
	"github.com/epithet-ssh/tnetstring/pkg/tnetstring"
	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
)

// ContentType is the media type of tnetstring bodies.
const ContentType = "application/x-tnetstring"

// RequestBodySizeLimit is the maximum request body size
const RequestBodySizeLimit = 1 << 20

type server struct {
	codec *tnetstring.Codec[tnetstring.Value]
	log   *slog.Logger
}

// New returns the conversion service's handler. Encoding and decoding
// use codec, so its limits apply to every request.
func New(codec *tnetstring.Codec[tnetstring.Value], log *slog.Logger) http.Handler {
	s := &server{codec: codec, log: log}

	r := chi.NewRouter()
	r.Use(middleware.RequestID)
	r.Use(middleware.RealIP)
	r.Use(middleware.Recoverer)
	r.Use(middleware.Timeout(60 * time.Second))

	r.Get("/healthz", s.healthz)
	r.Post("/encode", s.encode)
	r.Post("/decode", s.decode)
	return r
}

func (s *server) healthz(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "text/plain")
	w.Write([]byte("ok"))
}

func (s *server) encode(w http.ResponseWriter, r *http.Request) {
	body, err := readBody(r)
	if err != nil {
		s.fail(w, r, http.StatusRequestEntityTooLarge, err)
		return
	}

	v, err := document.Read(bytes.NewReader(body))
	if err != nil {
		s.fail(w, r, http.StatusBadRequest, err)
		return
	}

	out, err := s.codec.Encode(v)
	if err != nil {
		s.fail(w, r, http.StatusUnprocessableEntity, err)
		return
	}

	s.log.Info("encoded document",
		slog.String("request_id", middleware.GetReqID(r.Context())),
		slog.Int("in", len(body)),
		slog.Int("out", len(out)))

	w.Header().Set("Content-Type", ContentType)
	w.Write(out)
}

func (s *server) decode(w http.ResponseWriter, r *http.Request) {
	body, err := readBody(r)
	if err != nil {
		s.fail(w, r, http.StatusRequestEntityTooLarge, err)
		return
	}

	dec := s.codec.NewDecoder(bytes.NewReader(body))
	docs := []any{}
	for {
		v, err := dec.Decode()
		if errors.Is(err, io.EOF) {
			break
		}
		if err != nil {
			s.fail(w, r, http.StatusBadRequest, err)
			return
		}
		docs = append(docs, document.Export(v))
	}

	out, err := json.Marshal(docs)
	if err != nil {
		s.fail(w, r, http.StatusUnprocessableEntity, err)
		return
	}

	s.log.Info("decoded stream",
		slog.String("request_id", middleware.GetReqID(r.Context())),
		slog.Int("in", len(body)),
		slog.Int("values", len(docs)))

	w.Header().Set("Content-Type", "application/json")
	w.Write(out)
}

// readBody reads at most RequestBodySizeLimit bytes and fails if the
// body is longer.
func readBody(r *http.Request) ([]byte, error) {
	body, err := io.ReadAll(io.LimitReader(r.Body, RequestBodySizeLimit+1))
	if err != nil {
		return nil, err
	}
	if len(body) > RequestBodySizeLimit {
		return nil, fmt.Errorf("request body exceeds %d bytes", RequestBodySizeLimit)
	}
	return body, nil
}

func (s *server) fail(w http.ResponseWriter, r *http.Request, status int, err error) {
	s.log.Warn("request failed",
		slog.String("request_id", middleware.GetReqID(r.Context())),
		slog.String("path", r.URL.Path),
		slog.Int("status", status),
		slog.Any("error", err))

	w.Header().Set("Content-Type", "text/plain")
	w.WriteHeader(status)
	w.Write([]byte(err.Error()))
}
