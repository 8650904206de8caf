package httpapi

import (
	"encoding/json"
	"errors"
	"log"
	"net/http"
	"time"

	"github.com/gorilla/mux"

	"tododapp/internal/application"
	"tododapp/internal/application/commands"
	"tododapp/internal/application/controller"
)

// Handler serves the task API over the command layer
type Handler struct {
	sync     commands.TaskSync
	sessions commands.Connector
	logger   *log.Logger
}

// NewHandler creates a new Handler
func NewHandler(sync commands.TaskSync, sessions commands.Connector, logger *log.Logger) *Handler {
	if logger == nil {
		logger = log.Default()
	}
	return &Handler{
		sync:     sync,
		sessions: sessions,
		logger:   logger,
	}
}

type taskJSON struct {
	Index          uint64    `json:"index"`
	ContentAddress string    `json:"content_address"`
	Text           string    `json:"text"`
	ContentState   string    `json:"content_state"`
	Completed      bool      `json:"completed"`
	CreatedAt      time.Time `json:"created_at"`
}

type listJSON struct {
	Tasks       []taskJSON `json:"tasks"`
	RefreshedAt time.Time  `json:"refreshed_at"`
}

type mutationJSON struct {
	Operation      string `json:"operation"`
	Outcome        string `json:"outcome"`
	TxHandle       string `json:"tx,omitempty"`
	ContentAddress string `json:"content_address,omitempty"`
	Message        string `json:"message"`
}

type pendingJSON struct {
	ID       string `json:"id"`
	Kind     string `json:"kind"`
	Index    uint64 `json:"index"`
	TxHandle string `json:"tx,omitempty"`
}

type sessionJSON struct {
	Connected    bool         `json:"connected"`
	Account      string       `json:"account,omitempty"`
	Network      string       `json:"network,omitempty"`
	ChainID      uint64       `json:"chain_id,omitempty"`
	NetworkError string       `json:"network_error,omitempty"`
	State        string       `json:"state"`
	Pending      *pendingJSON `json:"pending,omitempty"`
	LastError    string       `json:"last_error,omitempty"`
	Tasks        int          `json:"tasks"`
}

type connectJSON struct {
	Outcome string `json:"outcome"`
	Account string `json:"account,omitempty"`
	Message string `json:"message"`
}

type errorJSON struct {
	Error    string `json:"error"`
	Category string `json:"category"`
}

// ListTasks handles GET /tasks. ?refresh=true re-reads the ledger, ?pending=true hides completed tasks.
func (h *Handler) ListTasks(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()
	cmd := commands.NewListTasksCommand(h.sync, q.Get("refresh") == "true")
	cmd.Pending = q.Get("pending") == "true"

	result, err := cmd.Execute(r.Context())
	if err != nil {
		h.writeError(w, err)
		return
	}

	out := listJSON{Tasks: make([]taskJSON, 0, len(result.Tasks)), RefreshedAt: result.RefreshedAt}
	for _, tv := range result.Tasks {
		out.Tasks = append(out.Tasks, toTaskJSON(tv))
	}
	writeJSON(w, http.StatusOK, out)
}

// CreateTask handles POST /tasks with body {"content": "..."}
func (h *Handler) CreateTask(w http.ResponseWriter, r *http.Request) {
	var body struct {
		Content string `json:"content"`
	}
	if err := json.NewDecoder(r.Body).Decode(&body); err != nil {
		writeJSON(w, http.StatusBadRequest, errorJSON{Error: "invalid request payload", Category: application.CategoryValidation.String()})
		return
	}

	result, err := commands.NewCreateTaskCommand(h.sync, body.Content).Execute(r.Context())
	h.writeMutation(w, result, err, http.StatusCreated)
}

// CompleteTask handles POST /tasks/{index}/complete
func (h *Handler) CompleteTask(w http.ResponseWriter, r *http.Request) {
	index := mux.Vars(r)["index"]
	result, err := commands.NewCompleteTaskCommand(h.sync, index).Execute(r.Context())
	h.writeMutation(w, result, err, http.StatusOK)
}

// DeleteTask handles DELETE /tasks/{index}
func (h *Handler) DeleteTask(w http.ResponseWriter, r *http.Request) {
	index := mux.Vars(r)["index"]
	result, err := commands.NewDeleteTaskCommand(h.sync, index).Execute(r.Context())
	h.writeMutation(w, result, err, http.StatusOK)
}

// Session handles GET /session
func (h *Handler) Session(w http.ResponseWriter, r *http.Request) {
	result, err := commands.NewStatusCommand(h.sessions, h.sync).Execute(r.Context())
	if err != nil {
		h.writeError(w, err)
		return
	}

	st, snap := result.Session, result.Snapshot
	out := sessionJSON{
		Connected:    st.Connected,
		NetworkError: errorText(st.NetworkError),
		State:        snap.State.String(),
		LastError:    errorText(snap.LastError),
		Tasks:        len(snap.Tasks),
	}
	if st.Connected {
		out.Account = st.Session.Account
		out.Network = st.Session.Network
		out.ChainID = st.Session.ChainID
	}
	if p := snap.Pending; p != nil {
		out.Pending = &pendingJSON{ID: p.ID, Kind: p.Kind.String(), Index: p.Index, TxHandle: p.TxHandle.String()}
	}
	writeJSON(w, http.StatusOK, out)
}

// Connect handles POST /session. A declined wallet prompt answers 202 with no error.
func (h *Handler) Connect(w http.ResponseWriter, r *http.Request) {
	result, err := commands.NewConnectCommand(h.sessions).Execute(r.Context())
	switch {
	case errors.Is(err, application.ErrUserRejected):
		writeJSON(w, http.StatusAccepted, connectJSON{Outcome: "rejected", Message: "Connection rejected in wallet"})
	case err != nil:
		h.writeError(w, err)
	default:
		writeJSON(w, http.StatusOK, connectJSON{Outcome: "connected", Account: result.Account, Message: result.Message})
	}
}

// DismissError handles DELETE /error
func (h *Handler) DismissError(w http.ResponseWriter, r *http.Request) {
	if err := commands.NewDismissErrorCommand(h.sessions, h.sync).Execute(r.Context()); err != nil {
		h.writeError(w, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

func (h *Handler) writeMutation(w http.ResponseWriter, result *commands.MutationResult, err error, okStatus int) {
	if err != nil {
		h.writeError(w, err)
		return
	}

	out := mutationJSON{
		Operation:      result.Result.Operation.Describe(),
		Outcome:        result.Result.Outcome.String(),
		TxHandle:       result.Result.TxHandle.String(),
		ContentAddress: result.Result.ContentAddress,
		Message:        result.Message,
	}
	if result.Rejected() {
		writeJSON(w, http.StatusAccepted, out)
		return
	}
	writeJSON(w, okStatus, out)
}

func (h *Handler) writeError(w http.ResponseWriter, err error) {
	status := statusFor(err)
	if status >= http.StatusInternalServerError {
		h.logger.Printf("api: %v", err)
	}
	writeJSON(w, status, errorJSON{Error: err.Error(), Category: application.Categorize(err).String()})
}

// statusFor maps an error to the HTTP status reported for it
func statusFor(err error) int {
	var valErr *application.ValidationError
	switch {
	case errors.As(err, &valErr):
		return http.StatusBadRequest
	case errors.Is(err, application.ErrBusy):
		return http.StatusConflict
	case errors.Is(err, application.ErrNoSession), application.IsSessionFatal(err):
		return http.StatusServiceUnavailable
	default:
		return http.StatusBadGateway
	}
}

func toTaskJSON(tv controller.TaskView) taskJSON {
	return taskJSON{
		Index:          tv.Index,
		ContentAddress: tv.ContentAddress,
		Text:           tv.Text,
		ContentState:   tv.ContentState.String(),
		Completed:      tv.IsCompleted,
		CreatedAt:      tv.CreatedTime().UTC(),
	}
}

func errorText(err error) string {
	if err == nil {
		return ""
	}
	return err.Error()
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(v)
}
