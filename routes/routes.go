// Package routes is the gateway's dispatch table: each HTTP route under /api
// maps to exactly one backend RPC method.
//
// A handler's whole job is shaping the payload — path params, normalized
// pagination, lenient field coercion — and forwarding to the invoker. On
// success it writes the backend payload verbatim (201 for resource creation,
// 200 otherwise); on failure it hands the classified error to apierr and
// never shapes an error body itself. Local validation is limited to presence
// checks on create operations.
package routes

import (
	"io"
	"net/http"

	"github.com/go-chi/chi/v5"
	jsoniter "github.com/json-iterator/go"

	"library-gateway/apierr"
	"library-gateway/client"
)

var fastjson = jsoniter.ConfigCompatibleWithStandardLibrary

type handler struct {
	inv client.Invoker
}

// New builds the /api router over the given invoker.
func New(inv client.Invoker) http.Handler {
	h := &handler{inv: inv}
	r := chi.NewRouter()

	r.Get("/authors", h.list(client.MethodListAuthors, nil))
	r.Post("/authors", h.createAuthor)
	r.Get("/genres", h.list(client.MethodListGenres, nil))
	r.Post("/genres", h.createGenre)
	r.Get("/books", h.list(client.MethodListBooks, nil))
	r.Post("/books", h.createBook)
	r.Put("/books/{id}", h.updateBook)
	r.Post("/books/{id}/copies", h.addBookCopy)
	r.Get("/books/{id}/copies", h.list(client.MethodListBookCopies, func(r *http.Request) map[string]any {
		return map[string]any{"book_id": chi.URLParam(r, "id")}
	}))
	r.Get("/members", h.list(client.MethodListMembers, nil))
	r.Post("/members", h.createMember)
	r.Put("/members/{id}", h.updateMember)
	r.Post("/borrow", h.borrowBook)
	r.Post("/return", h.returnBook)
	r.Get("/loans", h.list(client.MethodListAllLoans, nil))
	r.Get("/loans/{member_id}", h.list(client.MethodListMemberLoans, func(r *http.Request) map[string]any {
		return map[string]any{"member_id": chi.URLParam(r, "member_id")}
	}))

	return r
}

// call forwards one RPC and writes the outcome. This is the single success
// and failure funnel for every route.
func (h *handler) call(w http.ResponseWriter, r *http.Request, method string, payload map[string]any, status int) {
	resp, err := h.inv.Invoke(r.Context(), method, payload)
	if err != nil {
		apierr.Write(w, r, err)
		return
	}
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_, _ = w.Write(resp)
}

// list builds a handler for list-type RPCs: normalized pagination plus any
// path-derived fields.
func (h *handler) list(method string, extra func(*http.Request) map[string]any) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		page, limit := pagination(r)
		payload := map[string]any{"page": page, "limit": limit}
		if extra != nil {
			for k, v := range extra(r) {
				payload[k] = v
			}
		}
		h.call(w, r, method, payload, http.StatusOK)
	}
}

// decodeBody reads the JSON body into a flat map. An empty body decodes to an
// empty map; malformed JSON is an unclassified fault and therefore renders as
// internal/500, matching the observed gateway behavior.
func decodeBody(r *http.Request) (map[string]any, error) {
	data, err := io.ReadAll(r.Body)
	if err != nil {
		return nil, apierr.New(apierr.Internal, "")
	}
	if len(data) == 0 {
		return map[string]any{}, nil
	}
	body := map[string]any{}
	if err := fastjson.Unmarshal(data, &body); err != nil {
		return nil, apierr.New(apierr.Internal, "")
	}
	return body, nil
}

func (h *handler) createAuthor(w http.ResponseWriter, r *http.Request) {
	body, err := decodeBody(r)
	if err != nil {
		apierr.Write(w, r, err)
		return
	}
	h.call(w, r, client.MethodCreateAuthor, map[string]any{
		"name": str(body["name"]),
		"bio":  str(body["bio"]),
	}, http.StatusCreated)
}

func (h *handler) createGenre(w http.ResponseWriter, r *http.Request) {
	body, err := decodeBody(r)
	if err != nil {
		apierr.Write(w, r, err)
		return
	}
	h.call(w, r, client.MethodCreateGenre, map[string]any{
		"name": str(body["name"]),
	}, http.StatusCreated)
}

func (h *handler) createBook(w http.ResponseWriter, r *http.Request) {
	body, err := decodeBody(r)
	if err != nil {
		apierr.Write(w, r, err)
		return
	}
	title, isbn := str(body["title"]), str(body["isbn"])
	// The only local validation the gateway performs: presence of the
	// obviously required create fields, short-circuited without a backend call.
	if title == "" || isbn == "" {
		apierr.Write(w, r, apierr.Invalid("Missing required fields (title, isbn)"))
		return
	}
	h.call(w, r, client.MethodCreateBook, map[string]any{
		"title":          title,
		"author_id":      str(body["author_id"]),
		"isbn":           isbn,
		"genre_ids":      strList(body["genre_ids"]),
		"initial_copies": toInt(body["initial_copies"]),
	}, http.StatusCreated)
}

func (h *handler) updateBook(w http.ResponseWriter, r *http.Request) {
	body, err := decodeBody(r)
	if err != nil {
		apierr.Write(w, r, err)
		return
	}
	payload := map[string]any{
		"id":        chi.URLParam(r, "id"),
		"genre_ids": strList(body["genre_ids"]),
	}
	// Optional fields keep proto3 presence semantics: only fields the caller
	// sent reach the payload, so the backend can distinguish unset from empty.
	for _, field := range []string{"title", "author_id", "isbn"} {
		if v, ok := body[field]; ok {
			payload[field] = str(v)
		}
	}
	h.call(w, r, client.MethodUpdateBook, payload, http.StatusOK)
}

func (h *handler) addBookCopy(w http.ResponseWriter, r *http.Request) {
	h.call(w, r, client.MethodAddBookCopy, map[string]any{
		"book_id": chi.URLParam(r, "id"),
	}, http.StatusCreated)
}

func (h *handler) createMember(w http.ResponseWriter, r *http.Request) {
	body, err := decodeBody(r)
	if err != nil {
		apierr.Write(w, r, err)
		return
	}
	h.call(w, r, client.MethodCreateMember, map[string]any{
		"name":  str(body["name"]),
		"email": str(body["email"]),
	}, http.StatusCreated)
}

func (h *handler) updateMember(w http.ResponseWriter, r *http.Request) {
	body, err := decodeBody(r)
	if err != nil {
		apierr.Write(w, r, err)
		return
	}
	payload := map[string]any{"id": chi.URLParam(r, "id")}
	for _, field := range []string{"name", "email"} {
		if v, ok := body[field]; ok {
			payload[field] = str(v)
		}
	}
	h.call(w, r, client.MethodUpdateMember, payload, http.StatusOK)
}

func (h *handler) borrowBook(w http.ResponseWriter, r *http.Request) {
	body, err := decodeBody(r)
	if err != nil {
		apierr.Write(w, r, err)
		return
	}
	payload := map[string]any{
		"member_id": str(body["member_id"]),
		"book_id":   str(body["book_id"]),
	}
	if v, ok := body["copy_id"]; ok && str(v) != "" {
		payload["copy_id"] = str(v)
	}
	h.call(w, r, client.MethodBorrowBook, payload, http.StatusOK)
}

func (h *handler) returnBook(w http.ResponseWriter, r *http.Request) {
	body, err := decodeBody(r)
	if err != nil {
		apierr.Write(w, r, err)
		return
	}
	h.call(w, r, client.MethodReturnBook, map[string]any{
		"loan_id": str(body["loan_id"]),
	}, http.StatusOK)
}
