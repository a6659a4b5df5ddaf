package transport

import (
	"context"
	"encoding/json"
	"log/slog"
	"strconv"

	"plainchat/auth"
	"plainchat/errors"
	"plainchat/filestore"
	"plainchat/keycache"

	"github.com/gofiber/fiber/v2"
)

// HandlerFunc serves one GraphQL operation. The returned value becomes "data".
type HandlerFunc func(ctx context.Context, in Inbound) (any, error)

// SeenFunc is told about every sender that passed authentication.
type SeenFunc func(peerID string)

// FileAccessFunc reports whether fileID was shared with peerID, in channelID
// when it is set. Without one no file is served.
type FileAccessFunc func(peerID, channelID, fileID string) bool

type Server struct {
	app      *fiber.App
	verifier *Verifier
	keys     keycache.IKeyCache
	files    filestore.IFileStore
	handlers map[string]HandlerFunc
	onSeen   SeenFunc
	canFetch FileAccessFunc
	log      *slog.Logger
}

func NewServer(verifier *Verifier, keys keycache.IKeyCache, files filestore.IFileStore, bodyLimit int, log *slog.Logger) *Server {
	s := &Server{
		verifier: verifier,
		keys:     keys,
		files:    files,
		handlers: make(map[string]HandlerFunc),
		log:      log,
	}
	s.app = fiber.New(fiber.Config{
		BodyLimit:             bodyLimit,
		DisableStartupMessage: true,
	})
	s.app.Post(PathGraphQL, s.graphql)
	s.app.Get(PathFiles, s.serveFile)
	return s
}

func (s *Server) Handle(operation string, h HandlerFunc) { s.handlers[operation] = h }

func (s *Server) OnSeen(fn SeenFunc) { s.onSeen = fn }

func (s *Server) AuthorizeFiles(fn FileAccessFunc) { s.canFetch = fn }

func (s *Server) App() *fiber.App { return s.app }

func (s *Server) ListenTLS(addr, certFile, keyFile string) error {
	return s.app.ListenTLS(addr, certFile, keyFile)
}

func (s *Server) Shutdown() error { return s.app.Shutdown() }

func (s *Server) graphql(c *fiber.Ctx) error {
	senderID := c.Get(HeaderDeviceID)
	if senderID == "" {
		return c.Status(fiber.StatusBadRequest).SendString("missing " + HeaderDeviceID)
	}
	channelID := c.Get(HeaderChannelID)

	in, err := s.verifier.Open(senderID, channelID, c.Body())
	if err != nil {
		status := rejectionStatus(err)
		s.log.Warn("inbound request rejected", "sender_id", senderID, "channel_id", channelID, "status", status, "error", err)
		return c.Status(status).SendString(err.Error())
	}
	if s.onSeen != nil {
		s.onSeen(senderID)
	}

	resp := Response{}
	handler, ok := s.handlers[in.Request.OperationName]
	if !ok {
		resp.Errors = []GraphQLError{{Message: "unknown operation " + strconv.Quote(in.Request.OperationName)}}
	} else {
		data, err := handler(c.UserContext(), in)
		if err != nil {
			s.log.Info("operation failed", "operation", in.Request.OperationName, "sender_id", senderID, "error", err)
			resp.Errors = []GraphQLError{{Message: err.Error()}}
		}
		if data != nil {
			raw, err := json.Marshal(map[string]any{in.Request.OperationName: data})
			if err != nil {
				return c.SendStatus(fiber.StatusInternalServerError)
			}
			resp.Data = raw
		}
	}

	plain, err := json.Marshal(resp)
	if err != nil {
		return c.SendStatus(fiber.StatusInternalServerError)
	}
	sealed, err := auth.SealWithKey(in.Key.Key, plain)
	if err != nil {
		return c.SendStatus(fiber.StatusInternalServerError)
	}
	c.Set(fiber.HeaderContentType, fiber.MIMEOctetStream)
	return c.Send(sealed)
}

func (s *Server) serveFile(c *fiber.Ctx) error {
	senderID := c.Get(HeaderDeviceID)
	channelID := c.Get(HeaderChannelID)
	fileID := c.Query("id")
	token := c.Query("token")
	if senderID == "" || fileID == "" || token == "" {
		return c.SendStatus(fiber.StatusBadRequest)
	}

	key, err := InboundKey(s.keys, senderID, channelID)
	if err != nil {
		return c.SendStatus(fiber.StatusUnauthorized)
	}
	raw, err := auth.DecodeKey(key.Key)
	if err != nil {
		return c.SendStatus(fiber.StatusUnauthorized)
	}
	claims, err := auth.ValidateFileToken(raw, token, fileID)
	if err != nil || claims.PeerID != senderID {
		s.log.Warn("file token rejected", "sender_id", senderID, "file_id", fileID, "error", err)
		return c.SendStatus(fiber.StatusUnauthorized)
	}

	if s.canFetch == nil || !s.canFetch(senderID, channelID, fileID) {
		s.log.Warn("file not shared with requester", "sender_id", senderID, "channel_id", channelID, "file_id", fileID)
		return c.SendStatus(fiber.StatusForbidden)
	}

	f, stored, err := s.files.Open(fileID)
	if errors.Is(err, errors.ErrFileNotFound) {
		return c.SendStatus(fiber.StatusNotFound)
	}
	if err != nil {
		s.log.Error("unable to open stored file", "file_id", fileID, "error", err)
		return c.SendStatus(fiber.StatusInternalServerError)
	}
	if s.onSeen != nil {
		s.onSeen(senderID)
	}
	c.Set(fiber.HeaderContentType, stored.MimeType)
	// fiber closes the stream once it is fully sent
	return c.SendStream(f, int(stored.Size))
}

// rejectionStatus maps authentication failures to HTTP statuses.
func rejectionStatus(err error) int {
	switch {
	case errors.Is(err, errors.ErrPublicKeyMissing):
		return fiber.StatusInternalServerError
	case errors.Is(err, errors.ErrStaleTimestamp), errors.Is(err, errors.ErrMalformedEnvelope):
		return fiber.StatusBadRequest
	case errors.Is(err, errors.ErrKeyUnavailable), errors.Is(err, errors.ErrDecrypt), errors.Is(err, errors.ErrBadSignature):
		return fiber.StatusUnauthorized
	default:
		return fiber.StatusInternalServerError
	}
}
