package lsp

import (
	"bufio"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"sync"

	intconfig "github.com/leapstack-labs/sharplint/internal/config"
	"github.com/leapstack-labs/sharplint/pkg/lint"
	_ "github.com/leapstack-labs/sharplint/pkg/lint/rules" // register rules and fixes
	"github.com/leapstack-labs/sharplint/pkg/workspace"
)

// ErrExitWithoutShutdown is returned by Run when the client sends exit
// before shutdown. Editors expect the process to exit with status 1.
var ErrExitWithoutShutdown = errors.New("exit received before shutdown")

// JSON-RPC error codes.
const (
	codeInvalidParams  = -32602
	codeMethodNotFound = -32601
	codeNotInitialized = -32002
)

// Server implements the Language Server Protocol for sharplint.
type Server struct {
	// Document management
	documents *DocumentStore
	snapshots map[string]*snapshot
	snapMu    sync.Mutex

	// Project context
	projectRoot string
	project     workspace.Project // documents on disk, loaded at initialize
	engine      *lint.Engine
	configErr   error
	version     string

	// I/O
	reader  *bufio.Reader
	writer  io.Writer
	writeMu sync.Mutex

	logger *slog.Logger

	// Lifecycle state
	stateMu  sync.RWMutex
	shutdown bool
	exited   bool
}

// NewServer creates a new LSP server instance.
func NewServer(reader io.Reader, writer io.Writer) *Server {
	return NewServerWithLogger(reader, writer, nil)
}

// NewServerWithLogger creates a new LSP server instance with a custom logger.
// The logger must not write to writer.
func NewServerWithLogger(reader io.Reader, writer io.Writer, logger *slog.Logger) *Server {
	if logger == nil {
		logger = slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: slog.LevelInfo}))
	}
	return &Server{
		documents: NewDocumentStore(),
		snapshots: make(map[string]*snapshot),
		reader:    bufio.NewReader(reader),
		writer:    writer,
		logger:    logger,
	}
}

// SetVersion sets the version reported in the initialize response.
func (s *Server) SetVersion(v string) {
	s.version = v
}

// Run processes JSON-RPC messages until the client sends exit, closes the
// input or ctx is done.
func (s *Server) Run(ctx context.Context) error {
	s.logger.Info("sharplint language server starting")

	for {
		if err := ctx.Err(); err != nil {
			return err
		}

		msg, err := s.readMessage()
		if err != nil {
			if errors.Is(err, io.EOF) {
				s.logger.Info("Client disconnected")
				return nil
			}
			s.logger.Error("Error reading message", "error", err)
			continue
		}

		if err := s.handleMessage(ctx, msg); err != nil {
			s.logger.Error("Error handling message", "method", msg.Method, "error", err)
		}

		s.stateMu.RLock()
		exited, shutdown := s.exited, s.shutdown
		s.stateMu.RUnlock()
		if exited {
			if !shutdown {
				return ErrExitWithoutShutdown
			}
			return nil
		}
	}
}

// JSONRPCMessage represents a JSON-RPC 2.0 message.
type JSONRPCMessage struct {
	JSONRPC string           `json:"jsonrpc"`
	ID      *json.RawMessage `json:"id,omitempty"`
	Method  string           `json:"method,omitempty"`
	Params  json.RawMessage  `json:"params,omitempty"`
	Result  json.RawMessage  `json:"result,omitempty"`
	Error   *JSONRPCError    `json:"error,omitempty"`
}

// JSONRPCError represents a JSON-RPC error.
type JSONRPCError struct {
	Code    int    `json:"code"`
	Message string `json:"message"`
	Data    any    `json:"data,omitempty"`
}

// readMessage reads a JSON-RPC message from the input stream.
func (s *Server) readMessage() (*JSONRPCMessage, error) {
	var contentLength int
	for {
		line, err := s.reader.ReadString('\n')
		if err != nil {
			return nil, err
		}

		line = strings.TrimSpace(line)
		if line == "" {
			break // End of headers
		}

		if value, ok := strings.CutPrefix(line, "Content-Length: "); ok {
			contentLength, err = strconv.Atoi(value)
			if err != nil {
				return nil, fmt.Errorf("invalid Content-Length: %w", err)
			}
		}
	}

	if contentLength == 0 {
		return nil, fmt.Errorf("missing Content-Length header")
	}

	body := make([]byte, contentLength)
	if _, err := io.ReadFull(s.reader, body); err != nil {
		return nil, fmt.Errorf("error reading body: %w", err)
	}

	var msg JSONRPCMessage
	if err := json.Unmarshal(body, &msg); err != nil {
		return nil, fmt.Errorf("error parsing message: %w", err)
	}

	return &msg, nil
}

// sendResponse sends a JSON-RPC response.
func (s *Server) sendResponse(id *json.RawMessage, result any, err *JSONRPCError) {
	msg := JSONRPCMessage{
		JSONRPC: "2.0",
		ID:      id,
	}

	if err != nil {
		msg.Error = err
	} else {
		resultBytes, _ := json.Marshal(result)
		msg.Result = resultBytes
	}

	s.writeMessage(&msg)
}

// sendNotification sends a JSON-RPC notification (no ID).
func (s *Server) sendNotification(method string, params any) {
	msg := JSONRPCMessage{
		JSONRPC: "2.0",
		Method:  method,
	}

	if params != nil {
		paramsBytes, _ := json.Marshal(params)
		msg.Params = paramsBytes
	}

	s.writeMessage(&msg)
}

// writeMessage writes a JSON-RPC message to the output stream.
func (s *Server) writeMessage(msg *JSONRPCMessage) {
	s.writeMu.Lock()
	defer s.writeMu.Unlock()

	body, err := json.Marshal(msg)
	if err != nil {
		s.logger.Error("Error marshaling message", "error", err)
		return
	}

	header := fmt.Sprintf("Content-Length: %d\r\n\r\n", len(body))
	_, _ = s.writer.Write([]byte(header))
	_, _ = s.writer.Write(body)
}

// handleMessage dispatches a message to the appropriate handler.
func (s *Server) handleMessage(ctx context.Context, msg *JSONRPCMessage) error {
	s.logger.Debug("Received", "method", msg.Method)

	switch msg.Method {
	case "initialize":
		return s.handleInitialize(ctx, msg)
	case "exit":
		return s.handleExit(msg)
	}

	s.stateMu.RLock()
	initialized := s.engine != nil
	s.stateMu.RUnlock()
	if !initialized {
		if msg.ID != nil {
			s.sendResponse(msg.ID, nil, &JSONRPCError{Code: codeNotInitialized, Message: "server not initialized"})
		}
		return nil
	}

	switch msg.Method {
	case "initialized":
		return s.handleInitialized(msg)
	case "shutdown":
		return s.handleShutdown(msg)
	case "textDocument/didOpen":
		return s.handleDidOpen(msg)
	case "textDocument/didClose":
		return s.handleDidClose(msg)
	case "textDocument/didChange":
		return s.handleDidChange(msg)
	case "textDocument/didSave":
		return s.handleDidSave(msg)
	case "textDocument/codeAction":
		return s.handleCodeAction(ctx, msg)
	default:
		if msg.ID != nil {
			// Unknown method with ID - respond with method not found
			s.sendResponse(msg.ID, nil, &JSONRPCError{
				Code:    codeMethodNotFound,
				Message: "Method not found: " + msg.Method,
			})
		}
		return nil
	}
}

// --- Lifecycle handlers ---

func (s *Server) handleInitialize(ctx context.Context, msg *JSONRPCMessage) error {
	var params InitializeParams
	if err := json.Unmarshal(msg.Params, &params); err != nil {
		s.sendResponse(msg.ID, nil, &JSONRPCError{Code: codeInvalidParams, Message: err.Error()})
		return err
	}

	root := params.RootPath
	if params.RootURI != "" {
		root = URIToPath(params.RootURI)
	}
	s.configure(ctx, root)

	result := InitializeResult{
		Capabilities: ServerCapabilities{
			TextDocumentSync: &TextDocumentSyncOptions{
				OpenClose: true,
				Change:    TextDocumentSyncKindFull,
				Save: &SaveOptions{
					IncludeText: true,
				},
			},
			CodeActionProvider: &CodeActionOptions{
				CodeActionKinds: []CodeActionKind{CodeActionKindQuickFix, CodeActionKindSourceFixAll},
			},
		},
		ServerInfo: &ServerInfo{Name: "sharplint", Version: s.version},
	}

	s.sendResponse(msg.ID, result, nil)
	return nil
}

// configure builds the engine from the project's sharplint.yaml and loads
// the project's documents so that open documents bind against them. An
// invalid config falls back to the default rules.
func (s *Server) configure(ctx context.Context, root string) {
	s.projectRoot = root
	s.logger.Info("Project root", "path", root)

	var cfg *intconfig.ProjectConfig
	if root != "" {
		var err error
		cfg, err = intconfig.LoadFromDir(root)
		if err != nil {
			s.logger.Warn("Ignoring project config", "error", err)
			s.configErr = err
			cfg = nil
		}
	}
	if cfg == nil {
		cfg = &intconfig.ProjectConfig{}
		intconfig.ApplyDefaults(cfg)
	}

	lintCfg, err := lint.FromLintConfig(cfg.Lint)
	if err != nil {
		s.logger.Warn("Ignoring lint settings", "error", err)
		s.configErr = err
		lintCfg = lint.NewConfig()
	}

	if root != "" {
		sol, err := workspace.Load(ctx, []string{root}, workspace.LoadOptions{
			Include: cfg.Include,
			Exclude: cfg.Exclude,
			Logger:  s.logger,
		})
		if err != nil {
			s.logger.Warn("Some project documents were not loaded", "error", err)
		}
		if len(sol.Projects) > 0 {
			s.project = sol.Projects[0]
		}
	}
	if s.project.Name == "" {
		s.project.Name = filepath.Base(root)
	}
	s.logger.Info("Loaded project", "documents", len(s.project.Documents))

	s.stateMu.Lock()
	s.engine = lint.NewEngine(lint.Analyzers(), lint.WithConfig(lintCfg), lint.WithLogger(s.logger))
	s.stateMu.Unlock()
}

func (s *Server) handleInitialized(_ *JSONRPCMessage) error {
	s.logger.Info("Server initialized")

	if s.configErr != nil {
		s.sendNotification("window/showMessage", &ShowMessageParams{
			Type:    MessageTypeWarning,
			Message: fmt.Sprintf("Invalid sharplint configuration, using the default rules: %v", s.configErr),
		})
	}
	return nil
}

func (s *Server) handleShutdown(msg *JSONRPCMessage) error {
	s.stateMu.Lock()
	s.shutdown = true
	s.stateMu.Unlock()

	s.sendResponse(msg.ID, nil, nil)
	s.logger.Info("Server shutdown")
	return nil
}

func (s *Server) handleExit(_ *JSONRPCMessage) error {
	s.stateMu.Lock()
	s.exited = true
	s.stateMu.Unlock()
	s.logger.Info("Server exit")
	return nil
}

// --- Document handlers ---

func (s *Server) handleDidOpen(msg *JSONRPCMessage) error {
	var params DidOpenTextDocumentParams
	if err := json.Unmarshal(msg.Params, &params); err != nil {
		return err
	}

	s.documents.Open(params.TextDocument.URI, params.TextDocument.Text, params.TextDocument.Version)
	s.logger.Debug("Opened", "uri", params.TextDocument.URI)

	s.publishDiagnostics(params.TextDocument.URI)
	return nil
}

func (s *Server) handleDidClose(msg *JSONRPCMessage) error {
	var params DidCloseTextDocumentParams
	if err := json.Unmarshal(msg.Params, &params); err != nil {
		return err
	}

	uri := params.TextDocument.URI
	s.documents.Close(uri)
	s.snapMu.Lock()
	delete(s.snapshots, uri)
	s.snapMu.Unlock()
	s.logger.Debug("Closed", "uri", uri)

	// Clear diagnostics
	s.sendNotification("textDocument/publishDiagnostics", &PublishDiagnosticsParams{
		URI:         uri,
		Diagnostics: []Diagnostic{},
	})
	return nil
}

func (s *Server) handleDidChange(msg *JSONRPCMessage) error {
	var params DidChangeTextDocumentParams
	if err := json.Unmarshal(msg.Params, &params); err != nil {
		return err
	}

	// We use full sync, so take the last change
	if len(params.ContentChanges) > 0 {
		lastChange := params.ContentChanges[len(params.ContentChanges)-1]
		s.documents.Update(params.TextDocument.URI, lastChange.Text, params.TextDocument.Version)
	}

	s.publishDiagnostics(params.TextDocument.URI)
	return nil
}

func (s *Server) handleDidSave(msg *JSONRPCMessage) error {
	var params DidSaveTextDocumentParams
	if err := json.Unmarshal(msg.Params, &params); err != nil {
		return err
	}

	uri := params.TextDocument.URI
	doc := s.documents.Get(uri)
	if doc == nil {
		return nil
	}
	if params.Text != "" && params.Text != doc.Content {
		s.documents.Update(uri, params.Text, doc.Version)
	}

	// Other open documents may bind against the saved one.
	for _, open := range s.documents.List() {
		s.publishDiagnostics(open)
	}
	return nil
}
