// internal/api/websocket.go
package api

import (
	"net/http"
	"time"

	apperrors "github.com/crunchvision/boxstylemcp/internal/errors"
	"github.com/crunchvision/boxstylemcp/internal/models"
	"github.com/crunchvision/boxstylemcp/internal/utils"
	"github.com/gin-gonic/gin"
	"github.com/gorilla/websocket"
)

// WebSocket upgrader configuration
var upgrader = websocket.Upgrader{
	ReadBufferSize:  1024,
	WriteBufferSize: 1024,
	CheckOrigin: func(r *http.Request) bool {
		// Production deployments should restrict origins
		return true
	},
}

const wsWriteTimeout = 10 * time.Second

// variantStreamRequest is the single message a client sends after connecting
type variantStreamRequest struct {
	Text     string `json:"text"`
	Category string `json:"category"`
	Count    int    `json:"count"`
}

// variantStreamMessage is one frame of the variant stream
type variantStreamMessage struct {
	Type    string          `json:"type"` // variant, complete, error
	Index   int             `json:"index,omitempty"`
	Variant *models.Variant `json:"variant,omitempty"`
	Count   int             `json:"count,omitempty"`
	Code    string          `json:"code,omitempty"`
	Error   string          `json:"error,omitempty"`
}

// VariantStream upgrades the connection and streams one variant per message.
// The client sends a single request frame; the server answers with count
// variant frames followed by a complete frame, then closes.
func (h *Handler) VariantStream(c *gin.Context) {
	logger := utils.GetLogger()

	conn, err := upgrader.Upgrade(c.Writer, c.Request, nil)
	if err != nil {
		logger.Errorf("websocket upgrade failed: %v", err)
		return
	}
	defer conn.Close()

	var req variantStreamRequest
	conn.SetReadDeadline(time.Now().Add(30 * time.Second))
	if err := conn.ReadJSON(&req); err != nil {
		writeStreamError(conn, ErrorBadRequest, "invalid request frame")
		return
	}

	if req.Text == "" {
		writeStreamError(conn, ErrorEmptyText, "text is required")
		return
	}

	components := h.PromptService.Parse(req.Text)
	variants, err := h.PromptService.GenerateVariants(components, req.Category, req.Count)
	if err != nil {
		code := ErrorInternalError
		if appErr, ok := apperrors.AsAppError(err); ok {
			code = appErr.Code
		}
		writeStreamError(conn, code, err.Error())
		return
	}

	for i := range variants {
		msg := variantStreamMessage{
			Type:    "variant",
			Index:   i,
			Variant: &variants[i],
		}
		conn.SetWriteDeadline(time.Now().Add(wsWriteTimeout))
		if err := conn.WriteJSON(msg); err != nil {
			logger.Warnf("variant stream interrupted: %v", err)
			return
		}
	}

	conn.SetWriteDeadline(time.Now().Add(wsWriteTimeout))
	conn.WriteJSON(variantStreamMessage{Type: "complete", Count: len(variants)})

	conn.WriteControl(websocket.CloseMessage,
		websocket.FormatCloseMessage(websocket.CloseNormalClosure, ""),
		time.Now().Add(time.Second))
}

func writeStreamError(conn *websocket.Conn, code, message string) {
	conn.SetWriteDeadline(time.Now().Add(wsWriteTimeout))
	conn.WriteJSON(variantStreamMessage{Type: "error", Code: code, Error: message})
}
