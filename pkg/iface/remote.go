package iface

import (
	"fmt"
	"io"
	"strings"
	"sync"
	"time"

	"github.com/gorilla/websocket"
)

// RemoteInterface drives a debug session over an established websocket
// connection, for editor or tool frontends. Each command arrives as one text
// frame; output is streamed back as text frames. Prompts are sent as frames
// prefixed with "PROMPT " so the frontend can distinguish them from output.
type RemoteInterface struct {
	CommandQueue

	conn      *websocket.Conn
	writeMu   sync.Mutex
	closeOnce sync.Once
	closeErr  error
}

func NewRemoteInterface(conn *websocket.Conn) *RemoteInterface {
	return &RemoteInterface{conn: conn}
}

func (r *RemoteInterface) ReadCommand(prompt string) (string, error) {
	if err := r.write("PROMPT " + prompt); err != nil {
		return "", err
	}
	_, data, err := r.conn.ReadMessage()
	if err != nil {
		if websocket.IsCloseError(err, websocket.CloseNormalClosure, websocket.CloseGoingAway) {
			return "", io.EOF
		}
		return "", fmt.Errorf("%w: %v", ErrClosed, err)
	}
	return strings.TrimRight(string(data), "\r\n"), nil
}

func (r *RemoteInterface) Print(format string, args ...any) {
	r.write(fmt.Sprintf(format, args...))
}

func (r *RemoteInterface) ErrMsg(format string, args ...any) {
	r.write("*** " + fmt.Sprintf(format, args...))
}

func (r *RemoteInterface) Confirm(prompt string) bool {
	answer, err := r.ReadCommand(prompt)
	if err != nil {
		return false
	}
	answer = strings.ToLower(strings.TrimSpace(answer))
	return answer == "y" || answer == "yes"
}

func (r *RemoteInterface) Close() error {
	r.closeOnce.Do(func() {
		deadline := time.Now().Add(time.Second)
		r.writeMu.Lock()
		r.conn.WriteControl(websocket.CloseMessage,
			websocket.FormatCloseMessage(websocket.CloseNormalClosure, ""), deadline)
		r.writeMu.Unlock()
		r.closeErr = r.conn.Close()
	})
	return r.closeErr
}

func (r *RemoteInterface) write(text string) error {
	r.writeMu.Lock()
	defer r.writeMu.Unlock()
	if err := r.conn.WriteMessage(websocket.TextMessage, []byte(text)); err != nil {
		return fmt.Errorf("%w: %v", ErrClosed, err)
	}
	return nil
}
