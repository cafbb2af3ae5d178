package book

import (
	"errors"
	"net/http"
	"net/url"
	"strconv"
	"time"

	"booksapi/internal/httpx"

	"github.com/go-chi/chi/v5"
)

// HTTPHandler serves the book and bookshelf endpoints.
type HTTPHandler struct {
	service *Service
}

// NewHTTPHandler creates a new book HTTP handler.
func NewHTTPHandler(service *Service) *HTTPHandler {
	return &HTTPHandler{service: service}
}

type idParam struct {
	ID int `param:"id" validate:"gt=0"`
}

type searchParams struct {
	Title string `param:"title" validate:"max=200,nocontrol"`
	Genre string `param:"genre" validate:"max=100,nocontrol"`
}

type genreParam struct {
	Genre string `param:"genre" validate:"required,max=100,nocontrol"`
}

var errInvalidParam = errors.New("invalid path parameter")

// pathParam returns the decoded chi URL parameter.
func pathParam(r *http.Request, name string) string {
	v := chi.URLParam(r, name)
	if r.URL.RawPath == "" {
		return v
	}
	if decoded, err := url.PathUnescape(v); err == nil {
		return decoded
	}
	return v
}

// parseID reads a positive 32-bit integer path parameter.
func parseID(r *http.Request, name string) (int, []httpx.ErrorDetail) {
	raw := pathParam(r, name)
	n, err := strconv.ParseInt(raw, 10, 32)
	if err != nil {
		return 0, []httpx.ErrorDetail{{Field: name, Message: name + " must be an integer"}}
	}
	p := idParam{ID: int(n)}
	if details := httpx.ValidateStruct(p); details != nil {
		for i := range details {
			details[i].Field = name
		}
		return 0, details
	}
	return p.ID, nil
}

var publishDateLayouts = []string{
	time.DateOnly,
	time.RFC3339,
	"2006-01-02T15:04:05",
	"2006-01-02 15:04:05",
}

// parsePublishDate accepts a date or a datetime and keeps only its day.
func parsePublishDate(raw string) (time.Time, error) {
	for _, layout := range publishDateLayouts {
		if t, err := time.Parse(layout, raw); err == nil {
			y, m, d := t.Date()
			return time.Date(y, m, d, 0, 0, 0, 0, time.UTC), nil
		}
	}
	return time.Time{}, errInvalidParam
}

// ListAll handles GET /api/books
// @Summary List all books
// @Description Legacy endpoint returning raw book rows without the response envelope
// @Tags books
// @Produce json
// @Success 200 {array} entity.Book
// @Failure 500 {object} httpx.Envelope[any]
// @Router /api/books [get]
func (h *HTTPHandler) ListAll(w http.ResponseWriter, r *http.Request) error {
	books, err := h.service.ListAll(r.Context())
	if err != nil {
		return err
	}
	httpx.JSON(w, http.StatusOK, books)
	return nil
}

// GetBook handles GET /api/books/{id}
// @Summary Get book info
// @Description Title, author and genre of a book
// @Tags books
// @Produce json
// @Param id path int true "Book ID"
// @Success 200 {object} httpx.Envelope[BookInfo]
// @Router /api/books/{id} [get]
func (h *HTTPHandler) GetBook(w http.ResponseWriter, r *http.Request) error {
	id, details := parseID(r, "id")
	if details != nil {
		httpx.WriteEnvelope(w, httpx.InvalidInput[BookInfo]())
		return nil
	}

	info, err := h.service.GetInfo(r.Context(), id)
	if err != nil {
		if errors.Is(err, ErrNotFound) {
			httpx.WriteEnvelope(w, httpx.NotFound[BookInfo]("id="+strconv.Itoa(id)))
			return nil
		}
		return err
	}
	httpx.WriteEnvelope(w, httpx.Found(info))
	return nil
}

// Search handles GET /api/books/search
// @Summary Search books by title
// @Description Case-sensitive title substring search. A missing title is reported as not found. The genre parameter is accepted but not applied.
// @Tags books
// @Produce json
// @Param title query string false "Title substring"
// @Param genre query string false "Genre (ignored)"
// @Success 200 {object} httpx.Envelope[[]BookInfo]
// @Router /api/books/search [get]
func (h *HTTPHandler) Search(w http.ResponseWriter, r *http.Request) error {
	query := r.URL.Query()
	p := searchParams{
		Title: query.Get("title"),
		Genre: query.Get("genre"),
	}
	if details := httpx.ValidateStruct(p); details != nil {
		httpx.WriteEnvelope(w, httpx.InvalidInput[[]BookInfo]())
		return nil
	}

	infos, err := h.service.Search(r.Context(), SearchQuery{Title: p.Title, Genre: p.Genre})
	if err != nil {
		if errors.Is(err, ErrNotFound) {
			var params []string
			if p.Title != "" {
				params = append(params, "title="+p.Title)
			}
			if p.Genre != "" {
				params = append(params, "genre="+p.Genre)
			}
			httpx.WriteEnvelope(w, httpx.NotFound[[]BookInfo](params...))
			return nil
		}
		return err
	}
	httpx.WriteEnvelope(w, httpx.Found(infos))
	return nil
}

// ListByGenre handles GET /api/books/genre/{genre}
// @Summary List books of a genre
// @Description Case-insensitive exact genre match, returned without the envelope
// @Tags books
// @Produce json
// @Param genre path string true "Genre"
// @Success 200 {array} BookInfo
// @Failure 400 {object} httpx.ErrorResponse
// @Router /api/books/genre/{genre} [get]
func (h *HTTPHandler) ListByGenre(w http.ResponseWriter, r *http.Request) error {
	p := genreParam{Genre: pathParam(r, "genre")}
	if details := httpx.ValidateStruct(p); details != nil {
		httpx.JSONOutcomeError(w, r, http.StatusBadRequest, httpx.OutcomeInvalidInput, details)
		return nil
	}

	infos, err := h.service.ListByGenre(r.Context(), p.Genre)
	if err != nil {
		return err
	}
	httpx.JSON(w, http.StatusOK, infos)
	return nil
}

// ListByAuthor handles GET /api/authors/{authorId}/books
// @Summary List books of an author
// @Tags books
// @Produce json
// @Param authorId path int true "Author ID"
// @Success 200 {array} BookInfo
// @Failure 400 {object} httpx.ErrorResponse
// @Router /api/authors/{authorId}/books [get]
func (h *HTTPHandler) ListByAuthor(w http.ResponseWriter, r *http.Request) error {
	authorID, details := parseID(r, "authorId")
	if details != nil {
		httpx.JSONOutcomeError(w, r, http.StatusBadRequest, httpx.OutcomeInvalidInput, details)
		return nil
	}

	infos, err := h.service.ListByAuthor(r.Context(), authorID)
	if err != nil {
		return err
	}
	httpx.JSON(w, http.StatusOK, infos)
	return nil
}

// ListByPublishDate handles GET /api/books/date/{pubdate}
// @Summary List books published on a day
// @Description The time of day of both the parameter and the stored date is ignored
// @Tags books
// @Produce json
// @Param pubdate path string true "Date (YYYY-MM-DD)"
// @Success 200 {array} BookInfo
// @Failure 400 {object} httpx.ErrorResponse
// @Router /api/books/date/{pubdate} [get]
func (h *HTTPHandler) ListByPublishDate(w http.ResponseWriter, r *http.Request) error {
	day, err := parsePublishDate(pathParam(r, "pubdate"))
	if err != nil {
		httpx.JSONOutcomeError(w, r, http.StatusBadRequest, httpx.OutcomeInvalidInput, []httpx.ErrorDetail{
			{Field: "pubdate", Message: "pubdate must be a date (YYYY-MM-DD)"},
		})
		return nil
	}

	infos, err := h.service.ListByPublishDate(r.Context(), day)
	if err != nil {
		return err
	}
	httpx.JSON(w, http.StatusOK, infos)
	return nil
}

// GetBookDetail handles GET /api/books/{id}/details
// @Summary Get book details
// @Tags books
// @Produce json
// @Param id path int true "Book ID"
// @Success 200 {object} httpx.Envelope[BookDetail]
// @Router /api/books/{id}/details [get]
func (h *HTTPHandler) GetBookDetail(w http.ResponseWriter, r *http.Request) error {
	id, details := parseID(r, "id")
	if details != nil {
		httpx.WriteEnvelope(w, httpx.InvalidInput[BookDetail]())
		return nil
	}

	detail, err := h.service.GetDetail(r.Context(), id)
	if err != nil {
		if errors.Is(err, ErrNotFound) {
			httpx.WriteEnvelope(w, httpx.NotFound[BookDetail]("id="+strconv.Itoa(id)))
			return nil
		}
		return err
	}
	httpx.WriteEnvelope(w, httpx.Found(detail))
	return nil
}

// GetBookshelf handles GET /api/books/{id}/bookshelf
// @Summary Get a bookshelf with its books
// @Description The id is the bookshelf id. Returned without the envelope.
// @Tags bookshelves
// @Produce json
// @Param id path int true "Bookshelf ID"
// @Success 200 {object} entity.Bookshelf
// @Failure 400 {object} httpx.ErrorResponse
// @Failure 404 {object} httpx.ErrorResponse
// @Router /api/books/{id}/bookshelf [get]
func (h *HTTPHandler) GetBookshelf(w http.ResponseWriter, r *http.Request) error {
	id, details := parseID(r, "id")
	if details != nil {
		httpx.JSONOutcomeError(w, r, http.StatusBadRequest, httpx.OutcomeInvalidInput, details)
		return nil
	}

	shelf, err := h.service.GetBookshelf(r.Context(), id)
	if err != nil {
		if errors.Is(err, ErrBookshelfNotFound) {
			httpx.JSONOutcomeError(w, r, http.StatusNotFound, httpx.OutcomeNotFound, nil)
			return nil
		}
		return err
	}
	httpx.JSON(w, http.StatusOK, shelf)
	return nil
}
