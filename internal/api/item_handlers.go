package api

import (
	"net/http"
	"strconv"

	"github.com/vytor/pharmaflash/internal/errors"
	"github.com/vytor/pharmaflash/internal/models"
)

// itemRequest accepts a study item body. A missing use_in_flashcards means true.
type itemRequest struct {
	models.StudyItem
	UseInFlashcards *bool `json:"use_in_flashcards"`
}

func (req itemRequest) item() models.StudyItem {
	it := req.StudyItem
	it.UseInFlashcards = req.UseInFlashcards == nil || *req.UseInFlashcards
	return it
}

type itemListResponse struct {
	Items []models.StudyItem `json:"items"`
	Total int                `json:"total"`
}

func (s *Server) handleCreateItem(w http.ResponseWriter, r *http.Request) {
	topicID, err := pathID(r)
	if err != nil {
		handleError(w, r, err)
		return
	}
	var req itemRequest
	if err := decodeJSON(w, r, &req, false); err != nil {
		handleError(w, r, err)
		return
	}

	it := req.item()
	it.ID = 0
	it.TopicID = topicID
	created, err := s.CatalogService.CreateItem(r.Context(), currentProfileID(r), it)
	if err != nil {
		handleError(w, r, err)
		return
	}
	writeJSON(w, r, http.StatusCreated, created)
}

func (s *Server) handleListItems(w http.ResponseWriter, r *http.Request) {
	filter, err := itemFilterFromQuery(r)
	if err != nil {
		handleError(w, r, err)
		return
	}
	items, total, err := s.CatalogService.ListItems(r.Context(), filter)
	if err != nil {
		handleError(w, r, err)
		return
	}
	writeJSON(w, r, http.StatusOK, itemListResponse{Items: items, Total: total})
}

func itemFilterFromQuery(r *http.Request) (models.ItemFilter, error) {
	q := r.URL.Query()
	f := models.ItemFilter{ProfileID: currentProfileID(r), Search: q.Get("q")}

	var err error
	if f.ChapterID, err = queryInt64(r, "chapter_id"); err != nil {
		return f, err
	}
	if f.TopicID, err = queryInt64(r, "topic_id"); err != nil {
		return f, err
	}
	limit, err := queryInt64(r, "limit")
	if err != nil {
		return f, err
	}
	offset, err := queryInt64(r, "offset")
	if err != nil {
		return f, err
	}
	f.Limit, f.Offset = int(limit), int(offset)

	if v := q.Get("has_image"); v != "" {
		b, err := strconv.ParseBool(v)
		if err != nil {
			return f, errors.NewBadRequestError("invalid has_image")
		}
		f.HasImage = b
	}
	return f, nil
}

func (s *Server) handleGetItem(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r)
	if err != nil {
		handleError(w, r, err)
		return
	}
	it, err := s.CatalogService.GetItem(r.Context(), currentProfileID(r), id)
	if err != nil {
		handleError(w, r, err)
		return
	}
	writeJSON(w, r, http.StatusOK, it)
}

// handleUpdateItem replaces every editable field. A zero topic_id keeps the
// item in its current topic.
func (s *Server) handleUpdateItem(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r)
	if err != nil {
		handleError(w, r, err)
		return
	}
	var req itemRequest
	if err := decodeJSON(w, r, &req, false); err != nil {
		handleError(w, r, err)
		return
	}

	it := req.item()
	it.ID = id
	updated, err := s.CatalogService.UpdateItem(r.Context(), currentProfileID(r), it)
	if err != nil {
		handleError(w, r, err)
		return
	}
	writeJSON(w, r, http.StatusOK, updated)
}

func (s *Server) handleDeleteItem(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r)
	if err != nil {
		handleError(w, r, err)
		return
	}
	if err := s.CatalogService.DeleteItem(r.Context(), currentProfileID(r), id); err != nil {
		handleError(w, r, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

func (s *Server) handleAutofillItem(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r)
	if err != nil {
		handleError(w, r, err)
		return
	}
	if err := s.CatalogService.EnqueueAutofill(r.Context(), currentProfileID(r), id); err != nil {
		handleError(w, r, err)
		return
	}
	writeJSON(w, r, http.StatusAccepted, map[string]string{"status": "queued"})
}

func (s *Server) handleLookupCompound(w http.ResponseWriter, r *http.Request) {
	compound, err := s.CatalogService.LookupCompound(r.Context(), r.URL.Query().Get("name"))
	if err != nil {
		handleError(w, r, err)
		return
	}
	writeJSON(w, r, http.StatusOK, compound)
}
