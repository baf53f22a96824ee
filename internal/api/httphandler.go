package api

import (
	"clientreg/internal/flow"
	"clientreg/internal/presenter"
	"clientreg/internal/types"
	"context"
	"errors"
	"io"
	"net/http"

	"github.com/goccy/go-json"
	"github.com/klauspost/compress/gzhttp"
	log "github.com/sirupsen/logrus"
)

const (
	MsgInvalidBody = "Invalid request body"

	maxBodyBytes = 1 << 20
)

type Handler struct {
	Dispatcher *flow.Dispatcher
	Notices    *presenter.Notices
}

func NewHandler(d *flow.Dispatcher, notices *presenter.Notices) *Handler {
	return &Handler{
		Dispatcher: d,
		Notices:    notices,
	}
}

func (h *Handler) Router() http.Handler {
	mux := http.NewServeMux()
	mux.HandleFunc("GET /{$}", h.handleHome)
	mux.HandleFunc("POST /clients", h.handleRegisterForm)
	mux.HandleFunc("POST /clients/update", h.handleUpdateForm)
	mux.HandleFunc("POST /clients/deactivate", h.handleDeactivateForm)

	mux.HandleFunc("GET /api/clients", h.handleAPIList)
	mux.HandleFunc("POST /api/clients", h.handleAPIRegister)
	mux.HandleFunc("GET /api/clients/{id}", h.handleAPIGet)
	mux.HandleFunc("PATCH /api/clients/{id}", h.handleAPIUpdate)
	mux.HandleFunc("POST /api/clients/{id}/deactivate", h.handleAPIDeactivate)
	mux.HandleFunc("POST /api/dispatch", h.handleAPIDispatch)

	mux.HandleFunc("/health", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
	})
	return gzhttp.GzipHandler(mux)
}

// run applies the form level checks, then dispatches. A non-nil Result with Status Rejected
// means the input never reached the store.
func (h *Handler) run(ctx context.Context, req flow.Request) (flow.Result, error) {
	if req.Action == types.ActionRegister {
		if err := req.Fields.Require(); err != nil {
			return rejected(req.Action, flow.MsgFieldsRequired), nil
		}
	}
	return h.Dispatcher.Dispatch(ctx, req)
}

func rejected(a types.Action, msg string) flow.Result {
	return flow.Result{Action: a, Status: flow.Rejected, Notice: types.Failure(msg)}
}

// ---- HTML pages ----

func (h *Handler) handleHome(w http.ResponseWriter, r *http.Request) {
	token := r.URL.Query().Get("action")
	if token == "" {
		h.renderPage(w, http.StatusOK, presenter.NewPageData(presenter.Home(), h.Notices))
		return
	}
	action := types.ParseAction(token)
	data := presenter.NewPageData(presenter.ScreenFor(action), h.Notices)
	if action == types.ActionList {
		res, err := h.run(r.Context(), flow.Request{Action: action, Filter: r.URL.Query().Get("filter")})
		if err != nil {
			h.serverError(w, err)
			return
		}
		h.post(res.Notice)
		data = presenter.NewPageData(presenter.ScreenAfter(res), h.Notices).WithResult(res, types.ClientFields{}, "")
	}
	h.renderPage(w, http.StatusOK, data)
}

func (h *Handler) handleRegisterForm(w http.ResponseWriter, r *http.Request) {
	if err := r.ParseForm(); err != nil {
		http.Error(w, MsgInvalidBody, http.StatusBadRequest)
		return
	}
	fields := formFields(r)
	h.submitForm(w, r, flow.Request{Action: types.ActionRegister, Fields: fields}, "")
}

func (h *Handler) handleUpdateForm(w http.ResponseWriter, r *http.Request) {
	h.submitIDForm(w, r, types.ActionUpdate)
}

func (h *Handler) handleDeactivateForm(w http.ResponseWriter, r *http.Request) {
	h.submitIDForm(w, r, types.ActionDeactivate)
}

func (h *Handler) submitIDForm(w http.ResponseWriter, r *http.Request, action types.Action) {
	if err := r.ParseForm(); err != nil {
		http.Error(w, MsgInvalidBody, http.StatusBadRequest)
		return
	}
	rawID := r.PostForm.Get("client-id")
	req := flow.Request{Action: action}
	if action == types.ActionUpdate {
		req.Fields = formFields(r)
	}
	id, err := types.ParseID(rawID)
	if err != nil {
		res := rejected(action, flow.MsgInvalidID)
		h.post(res.Notice)
		data := presenter.NewPageData(presenter.ScreenFor(action), h.Notices)
		data.Form, data.FormID = req.Fields, rawID
		h.renderPage(w, http.StatusBadRequest, data)
		return
	}
	req.ID = id
	h.submitForm(w, r, req, rawID)
}

// submitForm dispatches a modal form. On success the modal closes (redirect to the menu,
// where the notice is still on the board); otherwise the same form is shown again.
func (h *Handler) submitForm(w http.ResponseWriter, r *http.Request, req flow.Request, rawID string) {
	res, err := h.run(r.Context(), req)
	if err != nil {
		h.serverError(w, err)
		return
	}
	h.post(res.Notice)
	switch res.Status {
	case flow.Registered, flow.Updated, flow.Deactivated:
		http.Redirect(w, r, "/", http.StatusSeeOther)
	default:
		data := presenter.NewPageData(presenter.ScreenFor(req.Action), h.Notices)
		data.Form, data.FormID = req.Fields, rawID
		h.renderPage(w, statusCode(res.Status), data)
	}
}

func (h *Handler) renderPage(w http.ResponseWriter, code int, data presenter.PageData) {
	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	w.WriteHeader(code)
	if err := presenter.RenderPage(w, data); err != nil {
		log.WithError(err).Error("failed to render page")
	}
}

func (h *Handler) post(n *types.Notice) {
	if n != nil && h.Notices != nil {
		h.Notices.Post(*n)
	}
}

// ---- JSON API ----

type apiResponse struct {
	Status string `json:"status"`
	flow.Result
}

type dispatchBody struct {
	Action string `json:"action"`
	flow.Request
}

func (h *Handler) handleAPIList(w http.ResponseWriter, r *http.Request) {
	h.respond(w, r, flow.Request{Action: types.ActionList, Filter: r.URL.Query().Get("filter")})
}

func (h *Handler) handleAPIRegister(w http.ResponseWriter, r *http.Request) {
	var fields types.ClientFields
	if err := readJSON(r, &fields); err != nil {
		h.writeResult(w, rejected(types.ActionRegister, MsgInvalidBody))
		return
	}
	h.respond(w, r, flow.Request{Action: types.ActionRegister, Fields: fields})
}

func (h *Handler) handleAPIGet(w http.ResponseWriter, r *http.Request) {
	id, err := types.ParseID(r.PathValue("id"))
	if err != nil {
		h.writeResult(w, rejected(types.ActionList, flow.MsgInvalidID))
		return
	}
	rec, err := h.Dispatcher.Store.FindByID(r.Context(), id)
	if errors.Is(err, types.ErrNotFound) {
		h.writeResult(w, flow.Result{Action: types.ActionList, Status: flow.NotFound, Notice: types.Failure(flow.MsgNotFound)})
		return
	}
	if err != nil {
		h.serverError(w, err)
		return
	}
	h.writeResult(w, flow.Result{Action: types.ActionList, Status: flow.Found, Record: &rec})
}

func (h *Handler) handleAPIUpdate(w http.ResponseWriter, r *http.Request) {
	id, err := types.ParseID(r.PathValue("id"))
	if err != nil {
		h.writeResult(w, rejected(types.ActionUpdate, flow.MsgInvalidID))
		return
	}
	var fields types.ClientFields
	if err := readJSON(r, &fields); err != nil {
		h.writeResult(w, rejected(types.ActionUpdate, MsgInvalidBody))
		return
	}
	h.respond(w, r, flow.Request{Action: types.ActionUpdate, ID: id, Fields: fields})
}

func (h *Handler) handleAPIDeactivate(w http.ResponseWriter, r *http.Request) {
	id, err := types.ParseID(r.PathValue("id"))
	if err != nil {
		h.writeResult(w, rejected(types.ActionDeactivate, flow.MsgInvalidID))
		return
	}
	h.respond(w, r, flow.Request{Action: types.ActionDeactivate, ID: id})
}

// handleAPIDispatch accepts {"action": "<token>", "id": .., "fields": {..}, "filter": ".."}.
func (h *Handler) handleAPIDispatch(w http.ResponseWriter, r *http.Request) {
	var body dispatchBody
	if err := readJSON(r, &body); err != nil {
		h.writeResult(w, rejected(types.ActionInvalid, MsgInvalidBody))
		return
	}
	req := body.Request
	req.Action = types.ParseAction(body.Action)
	h.respond(w, r, req)
}

func (h *Handler) respond(w http.ResponseWriter, r *http.Request, req flow.Request) {
	res, err := h.run(r.Context(), req)
	if err != nil {
		h.serverError(w, err)
		return
	}
	h.writeResult(w, res)
}

func (h *Handler) writeResult(w http.ResponseWriter, res flow.Result) {
	if err := writeJSON(w, statusCode(res.Status), apiResponse{Status: res.Status.String(), Result: res}); err != nil {
		log.WithError(err).Error("failed to write response")
	}
}

func (h *Handler) serverError(w http.ResponseWriter, err error) {
	log.WithError(err).Error("store operation failed")
	http.Error(w, "internal error", http.StatusInternalServerError)
}

func statusCode(s flow.Status) int {
	switch s {
	case flow.Registered:
		return http.StatusCreated
	case flow.Listed, flow.ListedEmpty, flow.Updated, flow.Deactivated, flow.Found:
		return http.StatusOK
	case flow.NotFound:
		return http.StatusNotFound
	case flow.InvalidOption, flow.Rejected:
		fallthrough
	default:
		return http.StatusBadRequest
	}
}

func formFields(r *http.Request) types.ClientFields {
	return types.ClientFields{
		Name:  r.PostForm.Get(types.FieldName),
		Email: r.PostForm.Get(types.FieldEmail),
		Phone: r.PostForm.Get(types.FieldPhone),
	}
}

func readJSON(r *http.Request, v any) error {
	body, err := io.ReadAll(io.LimitReader(r.Body, maxBodyBytes))
	if err != nil {
		return err
	}
	defer func() {
		_ = r.Body.Close()
	}()
	if len(body) == 0 {
		return errors.New("empty body")
	}
	return json.Unmarshal(body, v)
}

// writeJSON writes a JSON response with the given status code.
func writeJSON(w http.ResponseWriter, code int, v any) error {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(code)
	return json.NewEncoder(w).Encode(v)
}
