package httpapi

import (
	"context"
	"encoding/json"
	"errors"
	"image/png"
	"net/http"
	"time"

	"github.com/gorilla/mux"
	"go.uber.org/zap"

	"fotocamera/internal/device"
	"fotocamera/internal/domain"
	"fotocamera/internal/services/capture"
	"fotocamera/internal/services/picker"
	"fotocamera/internal/store"
)

// Session is the DisplayNumber owner the server reads and updates.
type Session interface {
	Number() (domain.DisplayNumber, error)
	Apply(n domain.DisplayNumber) error
	Picker() (*picker.Picker, error)
}

// Capturer takes photos.
type Capturer interface {
	TakePhoto(ctx context.Context) (capture.Result, error)
}

// Preview yields the latest preview frame as JPEG.
type Preview interface {
	JPEG(quality int) ([]byte, error)
}

// PreviewQuality is the JPEG quality of /preview.jpg.
const PreviewQuality = 80

// Server serves the control surface.
type Server struct {
	session Session
	capture Capturer
	index   domain.MediaIndex
	preview Preview
	log     *zap.Logger
}

// NewServer returns a server over its collaborators. preview may be nil.
func NewServer(sess Session, capt Capturer, index domain.MediaIndex, preview Preview, log *zap.Logger) *Server {
	if log == nil {
		log = zap.NewNop()
	}
	return &Server{session: sess, capture: capt, index: index, preview: preview, log: log}
}

// Router returns the route table.
func (s *Server) Router() *mux.Router {
	r := mux.NewRouter()
	r.Use(s.accessLog)
	r.HandleFunc("/health", s.health).Methods(http.MethodGet)
	r.HandleFunc("/number", s.getNumber).Methods(http.MethodGet)
	r.HandleFunc("/number", s.putNumber).Methods(http.MethodPut)
	r.HandleFunc("/picker.png", s.pickerPNG).Methods(http.MethodGet)
	r.HandleFunc("/capture", s.takePhoto).Methods(http.MethodPost)
	r.HandleFunc("/preview.jpg", s.previewJPEG).Methods(http.MethodGet)
	r.HandleFunc("/media", s.listMedia).Methods(http.MethodGet)
	r.HandleFunc("/media/{id}", s.getMedia).Methods(http.MethodGet)
	return r
}

func (s *Server) health(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "text/plain; charset=utf-8")
	_, _ = w.Write([]byte("OK\n"))
}

func (s *Server) getNumber(w http.ResponseWriter, r *http.Request) {
	n, err := s.session.Number()
	if err != nil {
		s.fail(w, http.StatusInternalServerError, err)
		return
	}
	writeJSON(w, http.StatusOK, numberBody(n))
}

func (s *Server) putNumber(w http.ResponseWriter, r *http.Request) {
	defer r.Body.Close()
	var in NumberBody
	if err := json.NewDecoder(r.Body).Decode(&in); err != nil {
		s.fail(w, http.StatusBadRequest, err)
		return
	}
	n, err := domain.ParseDisplayNumber(in.DisplayNumber)
	if err != nil {
		s.fail(w, http.StatusBadRequest, err)
		return
	}
	if err := s.session.Apply(n); err != nil {
		s.fail(w, http.StatusInternalServerError, err)
		return
	}
	writeJSON(w, http.StatusOK, numberBody(n))
}

func (s *Server) pickerPNG(w http.ResponseWriter, r *http.Request) {
	p, err := s.session.Picker()
	if err != nil {
		s.fail(w, http.StatusInternalServerError, err)
		return
	}
	defer p.Cancel()
	img, err := p.Render()
	if err != nil {
		s.fail(w, http.StatusInternalServerError, err)
		return
	}
	w.Header().Set("Content-Type", "image/png")
	if err := png.Encode(w, img); err != nil {
		s.log.Warn("write picker png", zap.Error(err))
	}
}

func (s *Server) takePhoto(w http.ResponseWriter, r *http.Request) {
	res, err := s.capture.TakePhoto(r.Context())
	switch {
	case errors.Is(err, capture.ErrCaptureInProgress):
		s.fail(w, http.StatusConflict, err)
	case err != nil:
		s.fail(w, http.StatusInternalServerError, err)
	default:
		writeJSON(w, http.StatusOK, captureBody(res))
	}
}

func (s *Server) previewJPEG(w http.ResponseWriter, r *http.Request) {
	if s.preview == nil {
		s.fail(w, http.StatusServiceUnavailable, device.ErrNoFrame)
		return
	}
	b, err := s.preview.JPEG(PreviewQuality)
	switch {
	case errors.Is(err, device.ErrNoFrame):
		s.fail(w, http.StatusServiceUnavailable, err)
	case err != nil:
		s.fail(w, http.StatusInternalServerError, err)
	default:
		w.Header().Set("Content-Type", "image/jpeg")
		w.Header().Set("Cache-Control", "no-store")
		_, _ = w.Write(b)
	}
}

func (s *Server) listMedia(w http.ResponseWriter, r *http.Request) {
	pending := r.URL.Query().Get("pending") == "1"
	recs, err := s.index.List(r.Context(), pending)
	if err != nil {
		s.fail(w, http.StatusInternalServerError, err)
		return
	}
	if recs == nil {
		recs = []domain.MediaRecord{}
	}
	writeJSON(w, http.StatusOK, recs)
}

func (s *Server) getMedia(w http.ResponseWriter, r *http.Request) {
	rec, err := s.index.Get(r.Context(), mux.Vars(r)["id"])
	switch {
	case errors.Is(err, store.ErrMediaNotFound):
		s.fail(w, http.StatusNotFound, err)
	case err != nil:
		s.fail(w, http.StatusInternalServerError, err)
	default:
		writeJSON(w, http.StatusOK, rec)
	}
}

func (s *Server) fail(w http.ResponseWriter, status int, err error) {
	if status >= 500 {
		s.log.Error("request failed", zap.Int("status", status), zap.Error(err))
	}
	writeJSON(w, status, errorBody{Error: err.Error()})
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

// statusRecorder captures the status and size of a response.
type statusRecorder struct {
	http.ResponseWriter
	status int
	bytes  int
}

func (r *statusRecorder) WriteHeader(code int) {
	r.status = code
	r.ResponseWriter.WriteHeader(code)
}

func (r *statusRecorder) Write(b []byte) (int, error) {
	n, err := r.ResponseWriter.Write(b)
	r.bytes += n
	return n, err
}

func (s *Server) accessLog(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()
		rec := &statusRecorder{ResponseWriter: w, status: http.StatusOK}
		next.ServeHTTP(rec, r)
		s.log.Info("http",
			zap.String("method", r.Method),
			zap.String("path", r.URL.Path),
			zap.String("remote", r.RemoteAddr),
			zap.Int("status", rec.status),
			zap.Int("bytes", rec.bytes),
			zap.Duration("duration", time.Since(start)))
	})
}
