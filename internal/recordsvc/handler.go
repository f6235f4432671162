package recordsvc

import (
	"context"
	"crypto/subtle"
	"encoding/json"
	"net/http"
	"strconv"
	"strings"
)

// NewHandler публикует любой Client по тому же JSON API, которым
// пользуется HTTPClient. Так процесс может служить сервисом записей
// для других экземпляров. Непустой publicKey требует "Authorization: Bearer <key>".
func NewHandler(c Client, projectID, publicKey string) http.Handler {
	h := &handler{c: c, projectID: projectID, publicKey: publicKey}
	mux := http.NewServeMux()
	mux.HandleFunc("GET /v1/ping", h.ping)
	mux.HandleFunc("POST /v1/records/{collection}/query", h.list)
	mux.HandleFunc("GET /v1/records/{collection}/{id}", h.get)
	mux.HandleFunc("POST /v1/records/{collection}", h.create)
	mux.HandleFunc("PATCH /v1/records/{collection}", h.update)
	mux.HandleFunc("DELETE /v1/records/{collection}", h.delete)
	return mux
}

type handler struct {
	c         Client
	projectID string
	publicKey string
}

func writeJSON(w http.ResponseWriter, code int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(code)
	_ = json.NewEncoder(w).Encode(v)
}

func writeErr(w http.ResponseWriter, code int, msg string) {
	writeJSON(w, code, map[string]any{"success": false, "message": msg})
}

func (h *handler) authorized(w http.ResponseWriter, r *http.Request) bool {
	if h.projectID != "" && r.Header.Get(HeaderProjectID) != h.projectID {
		writeErr(w, http.StatusUnauthorized, "unknown project")
		return false
	}
	if h.publicKey != "" {
		token := strings.TrimPrefix(r.Header.Get("Authorization"), "Bearer ")
		if subtle.ConstantTimeCompare([]byte(token), []byte(h.publicKey)) != 1 {
			writeErr(w, http.StatusUnauthorized, "invalid key")
			return false
		}
	}
	return true
}

func (h *handler) collection(w http.ResponseWriter, r *http.Request) (Collection, bool) {
	if !h.authorized(w, r) {
		return "", false
	}
	c := Collection(r.PathValue("collection"))
	if !c.Valid() {
		writeErr(w, http.StatusNotFound, ErrUnknownCollection.Error())
		return "", false
	}
	return c, true
}

func decodeBody(r *http.Request, v any) error {
	dec := json.NewDecoder(r.Body)
	dec.UseNumber()
	return dec.Decode(v)
}

func (h *handler) ping(w http.ResponseWriter, r *http.Request) {
	if p, ok := h.c.(Pinger); ok {
		if err := p.Ping(r.Context()); err != nil {
			writeErr(w, http.StatusServiceUnavailable, err.Error())
			return
		}
	}
	writeJSON(w, http.StatusOK, map[string]any{"success": true})
}

func (h *handler) list(w http.ResponseWriter, r *http.Request) {
	c, ok := h.collection(w, r)
	if !ok {
		return
	}
	var p ListParams
	if err := decodeBody(r, &p); err != nil {
		writeErr(w, http.StatusBadRequest, err.Error())
		return
	}
	res, err := h.c.List(r.Context(), c, p)
	if err != nil {
		writeErr(w, http.StatusBadGateway, err.Error())
		return
	}
	writeJSON(w, http.StatusOK, res)
}

func (h *handler) get(w http.ResponseWriter, r *http.Request) {
	c, ok := h.collection(w, r)
	if !ok {
		return
	}
	id, err := strconv.ParseInt(r.PathValue("id"), 10, 64)
	if err != nil {
		writeErr(w, http.StatusBadRequest, "bad id")
		return
	}
	var fields []string
	if f := r.URL.Query().Get("fields"); f != "" {
		fields = strings.Split(f, ",")
	}
	res, err := h.c.GetByID(r.Context(), c, id, fields)
	if err != nil {
		writeErr(w, http.StatusBadGateway, err.Error())
		return
	}
	writeJSON(w, http.StatusOK, res)
}

func (h *handler) create(w http.ResponseWriter, r *http.Request) {
	h.batch(w, r, h.c.Create)
}

func (h *handler) update(w http.ResponseWriter, r *http.Request) {
	h.batch(w, r, h.c.Update)
}

func (h *handler) batch(w http.ResponseWriter, r *http.Request, op func(ctx context.Context, c Collection, records []Record) (*BatchResponse, error)) {
	c, ok := h.collection(w, r)
	if !ok {
		return
	}
	var body recordsBody
	if err := decodeBody(r, &body); err != nil {
		writeErr(w, http.StatusBadRequest, err.Error())
		return
	}
	res, err := op(r.Context(), c, body.Records)
	if err != nil {
		writeErr(w, http.StatusBadGateway, err.Error())
		return
	}
	writeJSON(w, http.StatusOK, res)
}

func (h *handler) delete(w http.ResponseWriter, r *http.Request) {
	c, ok := h.collection(w, r)
	if !ok {
		return
	}
	var body idsBody
	if err := decodeBody(r, &body); err != nil {
		writeErr(w, http.StatusBadRequest, err.Error())
		return
	}
	res, err := h.c.Delete(r.Context(), c, body.IDs)
	if err != nil {
		writeErr(w, http.StatusBadGateway, err.Error())
		return
	}
	writeJSON(w, http.StatusOK, res)
}
