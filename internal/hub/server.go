package hub

import (
	"net/http"
	"strconv"
	"time"

	"github.com/google/uuid"
	"github.com/gorilla/mux"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/rs/cors"
	"go.uber.org/zap"

	"qshield/internal/app"
)

// RequestIDHeader carries the per-request correlation ID.
const RequestIDHeader = "X-Request-ID"

// Options configures a Server.
type Options struct {
	AllowedOrigins []string
	Log            *zap.Logger
}

// Server serves the console over HTTP.
type Server struct {
	w       *app.Wire
	metrics *Metrics
	log     *zap.Logger
	handler http.Handler

	unsubscribe func()
}

// New builds the router over w. Metrics are gathered from g and fed from the
// state store. Call Close to detach from the store.
func New(w *app.Wire, m *Metrics, g prometheus.Gatherer, opts Options) *Server {
	log := opts.Log
	if log == nil {
		log = zap.NewNop()
	}
	s := &Server{w: w, metrics: m, log: log}

	r := mux.NewRouter()
	r.Use(s.accessLog)

	r.HandleFunc("/health", s.health).Methods("GET")
	r.Handle("/metrics", promhttp.HandlerFor(g, promhttp.HandlerOpts{})).Methods("GET")
	r.HandleFunc("/state", s.getState).Methods("GET")
	r.HandleFunc("/dashboard", s.getDashboard).Methods("GET")
	r.HandleFunc("/participants", s.getParticipants).Methods("GET")

	r.HandleFunc("/session", s.signIn).Methods("POST")
	r.HandleFunc("/session", s.signOut).Methods("DELETE")
	r.HandleFunc("/certificate", s.generateCertificate).Methods("POST")
	r.HandleFunc("/registration", s.registerIdentity).Methods("POST")

	r.HandleFunc("/training", s.getTraining).Methods("GET")
	r.HandleFunc("/training/start", s.startTraining).Methods("POST")
	r.HandleFunc("/training/pause", s.pauseTraining).Methods("POST")
	r.HandleFunc("/training/reset", s.resetTraining).Methods("POST")

	r.HandleFunc("/aggregation", s.triggerAggregation).Methods("POST")
	r.HandleFunc("/model", s.getModel).Methods("GET")
	r.HandleFunc("/model/download", s.downloadModel).Methods("POST")
	r.HandleFunc("/ledger", s.searchLedger).Methods("GET")

	r.HandleFunc("/modal", s.hideModal).Methods("DELETE")
	r.HandleFunc("/modal/system-flow", s.showSystemFlow).Methods("POST")

	r.HandleFunc("/actions", s.dispatchAction).Methods("POST")
	r.HandleFunc("/mock/{operation}", s.callMock).Methods("POST")

	s.handler = cors.New(cors.Options{
		AllowedOrigins:   opts.AllowedOrigins,
		AllowedMethods:   []string{http.MethodGet, http.MethodPost, http.MethodDelete},
		AllowCredentials: true,
	}).Handler(r)

	if m != nil {
		s.unsubscribe = w.Store.Subscribe(m.Observe)
	}
	return s
}

// Handler returns the root HTTP handler.
func (s *Server) Handler() http.Handler { return s.handler }

// Close detaches the server from the state store.
func (s *Server) Close() {
	if s.unsubscribe != nil {
		s.unsubscribe()
	}
}

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
	if r.status == 0 {
		r.status = http.StatusOK
	}
	n, err := r.ResponseWriter.Write(b)
	r.bytes += n
	return n, err
}

func (s *Server) accessLog(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		id := r.Header.Get(RequestIDHeader)
		if id == "" {
			id = uuid.NewString()
		}
		w.Header().Set(RequestIDHeader, id)

		start := time.Now()
		rec := &statusRecorder{ResponseWriter: w}
		next.ServeHTTP(rec, r)
		if rec.status == 0 {
			rec.status = http.StatusOK
		}

		if s.metrics != nil {
			s.metrics.requests.WithLabelValues(r.Method, strconv.Itoa(rec.status)).Inc()
		}
		s.log.Info("request",
			zap.String("id", id),
			zap.String("method", r.Method),
			zap.String("path", r.URL.Path),
			zap.String("remote", r.RemoteAddr),
			zap.Int("status", rec.status),
			zap.Int("bytes", rec.bytes),
			zap.Duration("duration", time.Since(start)),
		)
	})
}
