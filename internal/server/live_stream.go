package server

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"sync"
	"time"

	"github.com/rs/zerolog"
	"nhooyr.io/websocket"
	"nhooyr.io/websocket/wsjson"

	"github.com/aristath/dividend-calculator/internal/modules/charts"
	"github.com/aristath/dividend-calculator/internal/modules/currency"
	"github.com/aristath/dividend-calculator/internal/modules/display"
	"github.com/aristath/dividend-calculator/internal/modules/valuation"
)

const (
	writeWait = 10 * time.Second

	// Client frame types
	FrameCalculate = "calculate"
	FrameNavigate  = "navigate"
	FramePointer   = "pointer"

	// Server frame types
	FrameView  = "view"
	FrameFocus = "focus"
	FrameError = "error"
)

var errNoChart = errors.New("no chart to navigate: send a calculate frame first")

// ClientFrame is a message sent by a live client
type ClientFrame struct {
	Type    string                      `json:"type"`
	Request *valuation.ValuationRequest `json:"request,omitempty"`
	Model   string                      `json:"model,omitempty"`
	Key     string                      `json:"key,omitempty"`
}

// ServerFrame is a message sent to a live client
type ServerFrame struct {
	Type         string            `json:"type"`
	View         *display.View     `json:"view,omitempty"`
	State        *charts.ViewState `json:"state,omitempty"`
	Handled      bool              `json:"handled,omitempty"`
	Announcement string            `json:"announcement,omitempty"`
	Error        string            `json:"error,omitempty"`
}

// liveSession is the view state owned by one connection
type liveSession struct {
	service    *valuation.Service
	formatter  currency.Formatter
	maxHorizon int

	chart   *charts.ChartData
	state   charts.ViewState
	model   string
	request valuation.ValuationRequest
}

// handle applies one client frame and returns the reply
func (s *liveSession) handle(frame ClientFrame) ServerFrame {
	switch frame.Type {
	case FrameCalculate:
		return s.calculate(frame)
	case FrameNavigate:
		return s.navigate(frame.Key)
	case FramePointer:
		s.state = s.state.Pointer()
		state := s.state
		return ServerFrame{Type: FrameFocus, State: &state, Handled: true}
	default:
		return errorFrame(fmt.Errorf("unknown frame type %q", frame.Type))
	}
}

func (s *liveSession) calculate(frame ClientFrame) ServerFrame {
	request := s.request
	if frame.Request != nil {
		request = *frame.Request
	} else if s.chart == nil {
		return errorFrame(errors.New("calculate frame needs a request"))
	}

	if err := request.Validate(s.maxHorizon); err != nil {
		return errorFrame(err)
	}

	selection := frame.Model
	if selection == "" {
		selection = s.model
	}

	report := s.service.Calculate(request.ToInput())
	if err := report.CheckFinite(); err != nil {
		return errorFrame(err)
	}

	view, err := display.BuildView(report, selection, s.formatter)
	if err != nil {
		return errorFrame(err)
	}

	s.request = request
	s.model = view.Selection
	s.chart = &view.Chart
	s.state = s.state.Reset()

	state := s.state
	return ServerFrame{
		Type:         FrameView,
		View:         &view,
		State:        &state,
		Announcement: charts.Announce(view.Chart, state.FocusIndex, s.formatter),
	}
}

func (s *liveSession) navigate(key string) ServerFrame {
	if s.chart == nil {
		return errorFrame(errNoChart)
	}

	next, handled := s.state.Navigate(key, s.chart.Points())
	s.state = next

	frame := ServerFrame{Type: FrameFocus, State: &next, Handled: handled}
	if handled {
		frame.Announcement = charts.Announce(*s.chart, next.FocusIndex, s.formatter)
	}
	return frame
}

func errorFrame(err error) ServerFrame {
	return ServerFrame{Type: FrameError, Error: err.Error()}
}

// LiveHandler serves GET /api/valuation/live, a websocket that recalculates
// and re-renders on every calculate frame and moves chart focus on navigate frames.
type LiveHandler struct {
	service    *valuation.Service
	formatter  currency.Formatter
	maxHorizon int
	log        zerolog.Logger

	ctx    context.Context
	cancel context.CancelFunc
	wg     sync.WaitGroup
}

// NewLiveHandler creates a new live valuation handler
func NewLiveHandler(service *valuation.Service, formatter currency.Formatter, maxHorizon int, log zerolog.Logger) *LiveHandler {
	ctx, cancel := context.WithCancel(context.Background())
	return &LiveHandler{
		service:    service,
		formatter:  formatter,
		maxHorizon: maxHorizon,
		log:        log.With().Str("component", "live_stream").Logger(),
		ctx:        ctx,
		cancel:     cancel,
	}
}

// ServeHTTP upgrades the request and runs the connection's read loop
func (h *LiveHandler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	// Server-wide read/write timeouts must not apply to the upgraded connection
	rc := http.NewResponseController(w)
	_ = rc.SetReadDeadline(time.Time{})
	_ = rc.SetWriteDeadline(time.Time{})

	conn, err := websocket.Accept(w, r, &websocket.AcceptOptions{
		OriginPatterns: []string{"*"},
	})
	if err != nil {
		h.log.Warn().Err(err).Msg("Failed to accept websocket")
		return
	}

	h.wg.Add(1)
	defer h.wg.Done()

	ctx, cancel := context.WithCancel(r.Context())
	defer cancel()
	stop := context.AfterFunc(h.ctx, cancel)
	defer stop()

	h.log.Info().Str("remote", r.RemoteAddr).Msg("Live client connected")

	session := &liveSession{
		service:    h.service,
		formatter:  h.formatter,
		maxHorizon: h.maxHorizon,
	}

	status, reason := h.readLoop(ctx, conn, session)
	if err := conn.Close(status, reason); err != nil {
		h.log.Debug().Err(err).Msg("Websocket close")
	}

	h.log.Info().Str("remote", r.RemoteAddr).Msg("Live client disconnected")
}

func (h *LiveHandler) readLoop(ctx context.Context, conn *websocket.Conn, session *liveSession) (websocket.StatusCode, string) {
	for {
		msgType, message, err := conn.Read(ctx)
		if err != nil {
			closeStatus := websocket.CloseStatus(err)
			switch {
			case closeStatus == websocket.StatusNormalClosure || closeStatus == websocket.StatusGoingAway:
				h.log.Debug().Int("status", int(closeStatus)).Msg("Websocket closed normally")
				return websocket.StatusNormalClosure, ""
			case h.ctx.Err() != nil:
				return websocket.StatusGoingAway, "server shutting down"
			case ctx.Err() != nil:
				h.log.Debug().Msg("Read cancelled by context")
				return websocket.StatusNormalClosure, ""
			default:
				h.log.Warn().Err(err).Msg("Unexpected websocket read error")
				return websocket.StatusInternalError, "read failed"
			}
		}

		var reply ServerFrame
		if msgType != websocket.MessageText {
			reply = errorFrame(errors.New("only text frames are supported"))
		} else {
			var frame ClientFrame
			if err := json.Unmarshal(message, &frame); err != nil {
				reply = errorFrame(fmt.Errorf("invalid frame: %w", err))
			} else {
				reply = session.handle(frame)
			}
		}

		if reply.Type == FrameError {
			h.log.Debug().Str("error", reply.Error).Msg("Live frame rejected")
		}

		writeCtx, cancel := context.WithTimeout(ctx, writeWait)
		err = wsjson.Write(writeCtx, conn, reply)
		cancel()
		if err != nil {
			h.log.Warn().Err(err).Msg("Failed to write live frame")
			return websocket.StatusInternalError, "write failed"
		}
	}
}

// Close ends every open live connection and waits for their read loops
func (h *LiveHandler) Close() {
	h.cancel()
	h.wg.Wait()
}
