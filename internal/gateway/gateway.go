package gateway

import (
	"context"
	stderrors "errors"
	"net/http"
	"time"

	"github.com/google/uuid"
	"github.com/gorilla/websocket"
	"github.com/novatech/interview-agent-go/internal/constants"
	"github.com/novatech/interview-agent-go/internal/script"
	"github.com/novatech/interview-agent-go/internal/session"
	"github.com/novatech/interview-agent-go/pkg/errors"
	"go.uber.org/zap"
)

// Gateway accepts websocket connections from the conversational driving
// layer. Each connection owns exactly one interview session; frames on the
// socket invoke the session tools strictly in arrival order, which gives
// the single-flight guarantee the session relies on.
type Gateway struct {
	catalog  *script.Catalog
	registry *session.Registry
	store    session.RecordStore
	trigger  session.ReportTrigger
	upgrader websocket.Upgrader
	server   *http.Server
	logger   *zap.Logger
}

func NewGateway(
	listenAddr string,
	catalog *script.Catalog,
	registry *session.Registry,
	store session.RecordStore,
	trigger session.ReportTrigger,
	logger *zap.Logger,
) *Gateway {
	g := &Gateway{
		catalog:  catalog,
		registry: registry,
		store:    store,
		trigger:  trigger,
		upgrader: websocket.Upgrader{
			HandshakeTimeout: constants.GatewayConfig.HandshakeTimeout,
			ReadBufferSize:   4096,
			WriteBufferSize:  4096,
		},
		logger: logger,
	}

	mux := http.NewServeMux()
	mux.HandleFunc("/ws", g.handleWS)
	g.server = &http.Server{
		Addr:    listenAddr,
		Handler: mux,
	}

	return g
}

// Start serves until the context is cancelled.
func (g *Gateway) Start(ctx context.Context) error {
	go func() {
		<-ctx.Done()
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		_ = g.server.Shutdown(shutdownCtx)
	}()

	g.logger.Info("Gateway listening", zap.String("addr", g.server.Addr))

	if err := g.server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
		return err
	}
	return nil
}

// Shutdown stops accepting connections and drains the server.
func (g *Gateway) Shutdown(ctx context.Context) error {
	return g.server.Shutdown(ctx)
}

func (g *Gateway) handleWS(w http.ResponseWriter, r *http.Request) {
	conn, err := g.upgrader.Upgrade(w, r, nil)
	if err != nil {
		g.logger.Error("Failed to upgrade connection", zap.Error(err))
		return
	}
	defer conn.Close()

	conn.SetReadLimit(constants.GatewayConfig.ReadLimit)

	logger := g.logger.With(zap.String("remote", conn.RemoteAddr().String()))
	logger.Info("Conversational layer connected")

	var sess *session.Session

	for {
		var frame InboundFrame
		if err := conn.ReadJSON(&frame); err != nil {
			if websocket.IsUnexpectedCloseError(err, websocket.CloseNormalClosure, websocket.CloseGoingAway) {
				logger.Warn("Connection closed unexpectedly", zap.Error(err))
			} else {
				logger.Info("Connection closed")
			}
			return
		}

		switch frame.Type {
		case FrameJoin:
			sess = g.joinSession(conn, frame, logger)

		case FrameTool:
			if sess == nil {
				g.write(conn, OutboundFrame{
					Type:      FrameError,
					ErrorCode: errors.CodeWrongState,
					Prompt:    "No active session. Send a join frame first.",
				}, logger)
				continue
			}
			g.invokeTool(r.Context(), conn, sess, frame, logger)

		default:
			g.write(conn, OutboundFrame{
				Type:      FrameError,
				ErrorCode: errors.CodeValidation,
				Prompt:    "Unsupported frame type.",
			}, logger)
		}
	}
}

func (g *Gateway) joinSession(conn *websocket.Conn, frame InboundFrame, logger *zap.Logger) *session.Session {
	questionSet := g.catalog.SelectByIdentity(frame.Identity)
	sess := session.NewSession(uuid.NewString(), questionSet, g.store, g.trigger, g.logger)

	logger.Info("Session joined",
		zap.String("session_id", sess.ID()),
		zap.String("identity", frame.Identity),
		zap.String("question_set", string(questionSet.ID)),
	)

	g.write(conn, OutboundFrame{
		Type:         FrameJoined,
		SessionID:    sess.ID(),
		QuestionSet:  string(questionSet.ID),
		Role:         questionSet.Role,
		Instructions: questionSet.Instructions,
		Questions:    questionSet.Questions,
	}, logger)

	return sess
}

func (g *Gateway) invokeTool(ctx context.Context, conn *websocket.Conn, sess *session.Session, frame InboundFrame, logger *zap.Logger) {
	prompt, err := g.registry.Invoke(ctx, sess, frame.Tool, frame.Params)
	if err != nil {
		g.write(conn, replyForError(frame.Tool, err), logger)
		return
	}

	g.write(conn, OutboundFrame{
		Type:   FrameReply,
		Tool:   frame.Tool,
		Prompt: prompt,
	}, logger)
}

// replyForError maps tool failures onto the wire. Validation and
// wrong-state rejections become corrective prompts the conversation can
// recover from; a persistence failure is surfaced with its own code since
// the interview result was not saved.
func replyForError(tool string, err error) OutboundFrame {
	var validationErr *errors.ValidationError
	if stderrors.As(err, &validationErr) {
		return OutboundFrame{
			Type:      FrameReply,
			Tool:      tool,
			ErrorCode: errors.CodeValidation,
			Prompt:    validationErr.Message,
		}
	}

	var stateErr *errors.StateError
	if stderrors.As(err, &stateErr) {
		return OutboundFrame{
			Type:      FrameReply,
			Tool:      tool,
			ErrorCode: errors.CodeWrongState,
			Prompt:    stateErr.Message,
		}
	}

	var persistenceErr *errors.PersistenceError
	if stderrors.As(err, &persistenceErr) {
		return OutboundFrame{
			Type:      FrameReply,
			Tool:      tool,
			ErrorCode: errors.CodePersistence,
			Prompt:    "We could not save your interview. Please try finalizing again.",
		}
	}

	return OutboundFrame{
		Type:      FrameError,
		Tool:      tool,
		ErrorCode: errors.CodeAgentError,
		Prompt:    err.Error(),
	}
}

func (g *Gateway) write(conn *websocket.Conn, frame OutboundFrame, logger *zap.Logger) {
	_ = conn.SetWriteDeadline(time.Now().Add(constants.GatewayConfig.WriteTimeout))
	if err := conn.WriteJSON(frame); err != nil {
		logger.Error("Failed to write frame", zap.Error(err))
	}
}
