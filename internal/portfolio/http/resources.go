package http

import (
	"bytes"
	"encoding/json"
	"errors"
	"io"
	"mime"
	"net/http"
	"strings"

	"github.com/aussiebroadwan/folio/internal/portfolio/media"
	"github.com/aussiebroadwan/folio/internal/portfolio/service"
	"github.com/aussiebroadwan/folio/pkg/httpx"
)

const (
	maxUploadBody   = 20 << 20
	maxUploadMemory = 8 << 20
)

// ResourceHandler serves the five routes of one portfolio collection.
type ResourceHandler struct {
	Service *service.ResourceService
}

// HandleCreate adds a record to a user's portfolio.
//
//	@Summary		Create a portfolio record
//	@Description	Accepts JSON or multipart/form-data. Files are sent under their media field name. List fields take a JSON array, JSON array text or comma separated values.
//	@Tags			Resources
//	@Accept			json,mpfd
//	@Produce		json
//	@Param			collection	path		string				true	"Collection"	Enums(introductions, educations, experiences, skills, projects, certifications, social-links, testimonials)
//	@Param			userId		path		string				true	"Owner id"
//	@Success		201			{object}	httpx.Envelope		"Created record"
//	@Failure		400			{object}	httpx.ErrorEnvelope	"Missing required fields"
//	@Failure		403			{object}	httpx.ErrorEnvelope	"Not the owner"
//	@Failure		404			{object}	httpx.ErrorEnvelope	"Owner not found"
//	@Failure		409			{object}	httpx.ErrorEnvelope	"Uniqueness violated"
//	@Security		BearerAuth
//	@Router			/{collection}/{userId} [post].
func (h *ResourceHandler) HandleCreate(w http.ResponseWriter, r *http.Request) {
	in, cleanup, ok := h.decode(w, r)
	if !ok {
		return
	}
	defer cleanup()

	a, _ := actor(r)
	doc, err := h.Service.Create(r.Context(), a, r.PathValue("userId"), in)
	if err != nil {
		writeServiceError(w, r, err)
		return
	}
	httpx.WriteData(w, http.StatusCreated, doc, h.title()+" created successfully")
}

// HandleListByOwner lists a user's records in display order.
//
//	@Summary	List a user's records
//	@Tags		Resources
//	@Produce	json
//	@Param		collection	path		string				true	"Collection"
//	@Param		userId		path		string				true	"Owner id"
//	@Success	200			{object}	httpx.Envelope		"Records"
//	@Failure	404			{object}	httpx.ErrorEnvelope	"No records"
//	@Router		/{collection}/byuserid/{userId} [get].
func (h *ResourceHandler) HandleListByOwner(w http.ResponseWriter, r *http.Request) {
	docs, err := h.Service.ListByOwner(r.Context(), r.PathValue("userId"))
	if err != nil {
		writeServiceError(w, r, err)
		return
	}
	httpx.WriteData(w, http.StatusOK, docs, h.Service.Schema.Collection+" fetched successfully")
}

// HandleGet fetches one record. The route segment is by<singular>id, for
// example /projects/byprojectid/{id}.
//
//	@Summary	Get a record
//	@Tags		Resources
//	@Produce	json
//	@Param		collection	path		string				true	"Collection"
//	@Param		id			path		string				true	"Record id"
//	@Success	200			{object}	httpx.Envelope		"Record"
//	@Failure	404			{object}	httpx.ErrorEnvelope	"Not found"
//	@Router		/{collection}/by{singular}id/{id} [get].
func (h *ResourceHandler) HandleGet(w http.ResponseWriter, r *http.Request) {
	doc, err := h.Service.Get(r.Context(), r.PathValue("id"))
	if err != nil {
		writeServiceError(w, r, err)
		return
	}
	httpx.WriteData(w, http.StatusOK, doc, h.title()+" fetched successfully")
}

// HandleUpdate merges the request into the stored record.
//
//	@Summary	Update a record
//	@Tags		Resources
//	@Accept		json,mpfd
//	@Produce	json
//	@Param		collection	path		string				true	"Collection"
//	@Param		id			path		string				true	"Record id"
//	@Success	200			{object}	httpx.Envelope		"Updated record"
//	@Failure	400			{object}	httpx.ErrorEnvelope	"Required field cleared"
//	@Failure	403			{object}	httpx.ErrorEnvelope	"Not the owner"
//	@Failure	404			{object}	httpx.ErrorEnvelope	"Not found"
//	@Security	BearerAuth
//	@Router		/{collection}/{id} [put].
func (h *ResourceHandler) HandleUpdate(w http.ResponseWriter, r *http.Request) {
	in, cleanup, ok := h.decode(w, r)
	if !ok {
		return
	}
	defer cleanup()

	a, _ := actor(r)
	doc, err := h.Service.Update(r.Context(), a, r.PathValue("id"), in)
	if err != nil {
		writeServiceError(w, r, err)
		return
	}
	httpx.WriteData(w, http.StatusOK, doc, h.title()+" updated successfully")
}

// HandleDelete removes a record and its hosted media.
//
//	@Summary	Delete a record
//	@Tags		Resources
//	@Produce	json
//	@Param		collection	path		string				true	"Collection"
//	@Param		id			path		string				true	"Record id"
//	@Success	200			{object}	httpx.Envelope		"Deleted record"
//	@Failure	403			{object}	httpx.ErrorEnvelope	"Not the owner"
//	@Failure	404			{object}	httpx.ErrorEnvelope	"Not found"
//	@Security	BearerAuth
//	@Router		/{collection}/{id} [delete].
func (h *ResourceHandler) HandleDelete(w http.ResponseWriter, r *http.Request) {
	a, _ := actor(r)
	doc, err := h.Service.Delete(r.Context(), a, r.PathValue("id"))
	if err != nil {
		writeServiceError(w, r, err)
		return
	}
	httpx.WriteData(w, http.StatusOK, doc, h.title()+" deleted successfully")
}

func (h *ResourceHandler) title() string {
	s := h.Service.Schema.Singular
	if s == "" {
		return "Record"
	}
	return strings.ToUpper(s[:1]) + s[1:]
}

// decode reads a JSON or multipart body. cleanup closes any opened files.
func (h *ResourceHandler) decode(w http.ResponseWriter, r *http.Request) (service.ResourceInput, func(), bool) {
	noop := func() {}

	ct, _, _ := mime.ParseMediaType(r.Header.Get("Content-Type"))
	if ct != "multipart/form-data" {
		in, err := decodeResourceJSON(w, r)
		if err != nil {
			httpx.WriteError(w, http.StatusBadRequest, "Request body must be a JSON object")
			return service.ResourceInput{}, noop, false
		}
		return in, noop, true
	}

	r.Body = http.MaxBytesReader(w, r.Body, maxUploadBody)
	if err := r.ParseMultipartForm(maxUploadMemory); err != nil {
		var tooLarge *http.MaxBytesError
		if errors.As(err, &tooLarge) {
			httpx.WriteError(w, http.StatusRequestEntityTooLarge, "Upload too large")
		} else {
			httpx.WriteError(w, http.StatusBadRequest, "Malformed multipart body")
		}
		return service.ResourceInput{}, noop, false
	}

	in := service.ResourceInput{Values: make(map[string]any)}
	for k, v := range r.MultipartForm.Value {
		if len(v) > 0 {
			in.Values[k] = v[0]
		}
	}

	var closers []io.Closer
	cleanup := func() {
		for _, c := range closers {
			_ = c.Close()
		}
		_ = r.MultipartForm.RemoveAll()
	}

	for _, field := range h.Service.Schema.MediaFields() {
		headers := r.MultipartForm.File[field]
		if len(headers) == 0 {
			continue
		}
		fh := headers[0]
		f, err := fh.Open()
		if err != nil {
			cleanup()
			httpx.WriteError(w, http.StatusBadRequest, "Unreadable file: "+field)
			return service.ResourceInput{}, noop, false
		}
		closers = append(closers, f)
		in.Files = append(in.Files, media.File{
			Field:       field,
			Filename:    fh.Filename,
			ContentType: fh.Header.Get("Content-Type"),
			Size:        fh.Size,
			Body:        f,
		})
	}
	return in, cleanup, true
}

func decodeResourceJSON(w http.ResponseWriter, r *http.Request) (service.ResourceInput, error) {
	body, err := io.ReadAll(http.MaxBytesReader(w, r.Body, maxJSONBody))
	if err != nil {
		return service.ResourceInput{}, err
	}

	values := map[string]any{}
	if len(bytes.TrimSpace(body)) > 0 {
		dec := json.NewDecoder(bytes.NewReader(body))
		dec.UseNumber()
		if err := dec.Decode(&values); err != nil {
			return service.ResourceInput{}, err
		}
	}
	return service.ResourceInput{Values: values}, nil
}
