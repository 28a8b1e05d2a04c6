package web

import (
	"bytes"
	"context"
	"errors"
	"mime/multipart"
	"net/http"

	"github.com/a-h/templ"
	"github.com/google/uuid"

	"github.com/dmitrijs2005/reform/internal/logging"
	"github.com/dmitrijs2005/reform/internal/staging"
	"github.com/dmitrijs2005/reform/internal/upload"
)

// RequestIDHeader carries the id assigned to every request.
const RequestIDHeader = "X-Request-Id"

// Server serves the profile form.
type Server struct {
	uploads       *upload.Type
	logger        logging.Logger
	spoolDir      string
	maxUploadSize int64
	maxMemory     int64
}

// NewServer returns a server that spools request files into spoolDir on the
// filesystem of uploads. maxUploadSize bounds the request body and every
// single file; up to maxMemory bytes of it are kept in memory while parsing.
func NewServer(uploads *upload.Type, logger logging.Logger, spoolDir string, maxUploadSize, maxMemory int64) *Server {
	return &Server{
		uploads:       uploads,
		logger:        logger,
		spoolDir:      spoolDir,
		maxUploadSize: maxUploadSize,
		maxMemory:     maxMemory,
	}
}

func (s *Server) Handler() http.Handler {
	mux := http.NewServeMux()
	mux.HandleFunc("GET /{$}", s.handleShow)
	mux.HandleFunc("POST /{$}", s.handleSubmit)
	return s.withRequestID(mux)
}

type loggerKey struct{}

func (s *Server) withRequestID(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		id := uuid.NewString()
		w.Header().Set(RequestIDHeader, id)

		l := s.logger.With("request_id", id, "method", r.Method, "path", r.URL.Path)
		ctx := context.WithValue(r.Context(), loggerKey{}, l)
		next.ServeHTTP(w, r.WithContext(ctx))
	})
}

func (s *Server) log(ctx context.Context) logging.Logger {
	if l, ok := ctx.Value(loggerKey{}).(logging.Logger); ok {
		return l
	}
	return s.logger
}

func (s *Server) handleShow(w http.ResponseWriter, r *http.Request) {
	root, err := NewProfileForm(s.uploads, s.maxUploadSize)
	if err != nil {
		s.log(r.Context()).Error(r.Context(), "building form failed", "error", err)
		http.Error(w, http.StatusText(http.StatusInternalServerError), http.StatusInternalServerError)
		return
	}
	s.writePage(w, r, "Profile", http.StatusOK, profileForm(newFormView(root)))
}

func (s *Server) handleSubmit(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	log := s.log(ctx)

	if r.ContentLength > s.maxUploadSize {
		http.Error(w, http.StatusText(http.StatusRequestEntityTooLarge), http.StatusRequestEntityTooLarge)
		return
	}
	r.Body = http.MaxBytesReader(w, r.Body, s.maxUploadSize)
	if err := r.ParseMultipartForm(s.maxMemory); err != nil {
		var tooLarge *http.MaxBytesError
		if errors.As(err, &tooLarge) {
			http.Error(w, http.StatusText(http.StatusRequestEntityTooLarge), http.StatusRequestEntityTooLarge)
			return
		}
		log.Info(ctx, "bad multipart request", "error", err)
		http.Error(w, http.StatusText(http.StatusBadRequest), http.StatusBadRequest)
		return
	}
	defer func() { _ = r.MultipartForm.RemoveAll() }()

	payload, spooled, err := decodePayload(r.MultipartForm, func(fh *multipart.FileHeader) (*staging.File, error) {
		return staging.Spool(s.uploads.Filesystem(), s.spoolDir, fh)
	})
	defer func() {
		for _, f := range spooled {
			if err := f.Discard(); err != nil {
				log.Warn(ctx, "discarding spooled upload failed", "error", err)
			}
		}
	}()
	if err != nil {
		log.Error(ctx, "spooling upload failed", "error", err)
		http.Error(w, http.StatusText(http.StatusInternalServerError), http.StatusInternalServerError)
		return
	}

	root, err := NewProfileForm(s.uploads, s.maxUploadSize)
	if err != nil {
		log.Error(ctx, "building form failed", "error", err)
		http.Error(w, http.StatusText(http.StatusInternalServerError), http.StatusInternalServerError)
		return
	}

	if err := root.SubmitContext(ctx, payload[RootName]); err != nil {
		log.Error(ctx, "submitting form failed", "error", err)
		http.Error(w, http.StatusText(http.StatusInternalServerError), http.StatusInternalServerError)
		return
	}

	s.uploads.Commit(ctx, root)

	if !root.IsValid() {
		log.Info(ctx, "profile rejected")
		s.writePage(w, r, "Profile", http.StatusUnprocessableEntity, profileForm(newFormView(root)))
		return
	}

	p, _ := root.Data().(*Profile)
	log.Info(ctx, "profile saved", "title", p.Title)
	s.writePage(w, r, "Profile saved", http.StatusOK, savedProfile(newSavedView(p)))
}

// writePage renders body inside the page layout and writes it with status.
func (s *Server) writePage(w http.ResponseWriter, r *http.Request, title string, status int, body templ.Component) {
	ctx := templ.WithChildren(r.Context(), body)

	var rendered bytes.Buffer
	if err := layout(title).Render(ctx, &rendered); err != nil {
		s.log(r.Context()).Error(r.Context(), "rendering page failed", "error", err)
		http.Error(w, http.StatusText(http.StatusInternalServerError), http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	w.WriteHeader(status)
	_, _ = w.Write(rendered.Bytes())
}
