package server

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"os"
	"time"

	"github.com/bastiangx/wordsim/internal/logger"
	"github.com/bastiangx/wordsim/internal/utils"
	"github.com/bastiangx/wordsim/pkg/config"
	"github.com/bastiangx/wordsim/pkg/corpus"
	"github.com/bastiangx/wordsim/pkg/similarity"
	"github.com/charmbracelet/log"
	"github.com/vmihailenco/msgpack/v5"
)

// Server handles the IPC for similarity queries
type Server struct {
	loader     *corpus.Loader
	engine     *similarity.Engine
	config     *config.Config
	configPath string
	decoder    *msgpack.Decoder
	writer     *bufio.Writer
	encoder    *msgpack.Encoder
	log        *log.Logger
}

// NewServer creates a server using stdin/stdout for IPC
func NewServer(loader *corpus.Loader, cfg *config.Config, configPath string) *Server {
	return NewServerWithIO(loader, cfg, configPath, os.Stdin, os.Stdout)
}

// NewServerWithIO creates a server reading requests from r and writing responses to w
func NewServerWithIO(loader *corpus.Loader, cfg *config.Config, configPath string, r io.Reader, w io.Writer) *Server {
	writer := bufio.NewWriter(w)
	return &Server{
		loader:     loader,
		engine:     newEngine(cfg),
		config:     cfg,
		configPath: configPath,
		decoder:    msgpack.NewDecoder(bufio.NewReader(r)),
		writer:     writer,
		encoder:    msgpack.NewEncoder(writer),
		log:        logger.New("ipc"),
	}
}

func newEngine(cfg *config.Config) *similarity.Engine {
	return similarity.NewEngine(similarity.Options{
		TopK:      cfg.Engine.TopK,
		CacheSize: cfg.Engine.CacheSize,
	})
}

// Start signals readiness and serves requests until the input is closed
func (s *Server) Start() error {
	s.log.Debug("Starting server")
	if err := s.send(StatusResponse{Status: "ready", TopK: s.engine.TopK(), Words: s.loader.Current().Len()}); err != nil {
		return err
	}

	for {
		var raw msgpack.RawMessage
		if err := s.decoder.Decode(&raw); err != nil {
			if errors.Is(err, io.EOF) {
				s.log.Debug("Input closed, stopping server")
				return nil
			}
			s.log.Errorf("Reading request: %v", err)
			return err
		}

		var req Request
		if err := msgpack.Unmarshal(raw, &req); err != nil {
			s.log.Errorf("Unmarshaling request: %v", err)
			if err := s.sendError("", "invalid request", 400); err != nil {
				return err
			}
			continue
		}
		if err := s.handleRequest(req); err != nil {
			return err
		}
	}
}

// handleRequest dispatches on the op. Only write failures are returned.
func (s *Server) handleRequest(req Request) error {
	s.log.Debug("Request", "id", req.ID, "op", req.Op, "word", req.Word)

	switch req.Op {
	case "total":
		return s.handleTotal(req)
	case "similar":
		return s.handleSimilar(req)
	case "pair":
		return s.handlePair(req)
	case "words":
		return s.handleWords(req)
	case "info":
		return s.handleInfo(req)
	case "config":
		return s.handleConfig(req)
	case "reload":
		return s.handleReload(req)
	case "health":
		return s.send(StatusResponse{ID: req.ID, Status: "ok"})
	default:
		return s.sendError(req.ID, fmt.Sprintf("unknown op: %q", req.Op), 400)
	}
}

// validateWord returns an error message for unusable words, "" otherwise
func (s *Server) validateWord(word string) string {
	if word == "" {
		return "missing 'w' parameter"
	}
	if len(word) > s.config.Server.MaxWordLen {
		return fmt.Sprintf("word exceeds maximum length of %d bytes", s.config.Server.MaxWordLen)
	}
	return ""
}

func (s *Server) handleTotal(req Request) error {
	if msg := s.validateWord(req.Word); msg != "" {
		return s.sendError(req.ID, msg, 400)
	}
	start := time.Now()
	total := corpus.TotalOccurrences(req.Word, s.loader.Current())
	return s.send(TotalResponse{
		ID:        req.ID,
		Word:      req.Word,
		Total:     total,
		TimeTaken: time.Since(start).Microseconds(),
	})
}

func (s *Server) handleSimilar(req Request) error {
	if msg := s.validateWord(req.Word); msg != "" {
		return s.sendError(req.ID, msg, 400)
	}
	limit := req.Limit
	if limit < 1 {
		limit = s.engine.TopK()
	}
	if limit > s.config.Server.MaxLimit {
		limit = s.config.Server.MaxLimit
	}

	start := time.Now()
	matches := s.engine.Rank(s.loader.Current(), req.Word, limit)
	elapsed := time.Since(start)

	words := make([]string, 0, len(matches)+1)
	words = append(words, req.Word)
	ranked := make([]SimilarMatch, len(matches))
	ranks := utils.CreateRankList(len(matches))
	for i, m := range matches {
		words = append(words, m.Word)
		ranked[i] = SimilarMatch{Word: m.Word, Score: m.Score, Rank: ranks[i]}
	}

	return s.send(SimilarResponse{
		ID:        req.ID,
		Words:     words,
		Matches:   ranked,
		Count:     len(ranked),
		TimeTaken: elapsed.Microseconds(),
	})
}

func (s *Server) handlePair(req Request) error {
	if msg := s.validateWord(req.Word); msg != "" {
		return s.sendError(req.ID, msg, 400)
	}
	if req.Other == "" {
		return s.sendError(req.ID, "missing 'o' parameter", 400)
	}
	start := time.Now()
	score := s.engine.Similarity(s.loader.Current(), req.Word, req.Other)
	return s.send(PairResponse{ID: req.ID, Score: score, TimeTaken: time.Since(start).Microseconds()})
}

func (s *Server) handleWords(req Request) error {
	limit := req.Limit
	if limit < 1 || limit > s.config.Server.MaxLimit {
		limit = s.config.Server.MaxLimit
	}
	words := s.loader.Current().WordsWithPrefix(req.Word, limit)
	return s.send(WordsResponse{ID: req.ID, Words: words, Count: len(words)})
}

func (s *Server) handleInfo(req Request) error {
	stats := s.loader.Stats()
	ds := s.loader.Current()
	return s.send(InfoResponse{
		ID:        req.ID,
		Status:    "ok",
		File:      stats.File,
		Words:     ds.Len(),
		Years:     len(ds.Years()),
		TopK:      s.engine.TopK(),
		CacheInfo: s.engine.Stats(),
	})
}

func (s *Server) handleConfig(req Request) error {
	if req.TopK == nil {
		return s.sendError(req.ID, "missing 'k' parameter", 400)
	}
	if *req.TopK < 1 || *req.TopK > s.config.Server.MaxLimit {
		return s.sendError(req.ID, fmt.Sprintf("'k' must be between 1 and %d", s.config.Server.MaxLimit), 400)
	}
	if err := s.config.Update(s.configPath, req.TopK, nil); err != nil {
		s.log.Errorf("Saving config: %v", err)
		return s.sendError(req.ID, fmt.Sprintf("failed to save config: %v", err), 500)
	}
	s.engine = newEngine(s.config)
	s.log.Debugf("top_k set to %d", s.engine.TopK())
	return s.send(StatusResponse{ID: req.ID, Status: "ok", TopK: s.engine.TopK()})
}

func (s *Server) handleReload(req Request) error {
	name := req.Word
	if name == "" {
		name = s.loader.Stats().File
	}
	if name == "" {
		return s.sendError(req.ID, "no word file to reload", 400)
	}
	ds, err := s.loader.Load(name)
	if err != nil {
		s.log.Errorf("Reloading %s: %v", name, err)
		return s.sendError(req.ID, err.Error(), 404)
	}
	s.engine.Reset()
	return s.send(StatusResponse{ID: req.ID, Status: "ok", Words: ds.Len()})
}

// send marshals a response and flushes it to the client
func (s *Server) send(response any) error {
	if err := s.encoder.Encode(response); err != nil {
		s.log.Errorf("Marshaling response: %v", err)
		return err
	}
	return s.writer.Flush()
}

// sendError sends an error response
func (s *Server) sendError(id, message string, code int) error {
	s.log.Debug("Request failed", "id", id, "error", message, "code", code)
	return s.send(ErrorResponse{ID: id, Error: message, Code: code})
}
