package hub

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"strconv"
	"time"

	"github.com/gorilla/mux"
	"go.uber.org/zap"

	"qshield/internal/domain"
	"qshield/internal/state"
)

type errorBody struct {
	Error string `json:"error"`
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

func (s *Server) writeError(w http.ResponseWriter, r *http.Request, err error) {
	status := statusFor(err)
	if status >= http.StatusInternalServerError {
		s.log.Error("request failed", zap.String("path", r.URL.Path), zap.Error(err))
	}
	writeJSON(w, status, errorBody{Error: err.Error()})
}

func statusFor(err error) int {
	switch {
	case errors.Is(err, domain.ErrInvalidCredentials), errors.Is(err, errBadRequest):
		return http.StatusBadRequest
	case errors.Is(err, domain.ErrNotSignedIn):
		return http.StatusUnauthorized
	case errors.Is(err, domain.ErrNoCertificate), errors.Is(err, domain.ErrCertificateExpired):
		return http.StatusPreconditionFailed
	case errors.Is(err, domain.ErrTrainingActive), errors.Is(err, domain.ErrAggregationConflict):
		return http.StatusConflict
	case errors.Is(err, domain.ErrStorageUnavailable):
		return http.StatusServiceUnavailable
	case errors.Is(err, context.DeadlineExceeded):
		return http.StatusGatewayTimeout
	default:
		return http.StatusInternalServerError
	}
}

var errBadRequest = errors.New("bad request")

func decodeBody(r *http.Request, v any) error {
	defer r.Body.Close()
	if err := json.NewDecoder(r.Body).Decode(v); err != nil {
		return fmt.Errorf("%w: %v", errBadRequest, err)
	}
	return nil
}

func (s *Server) health(w http.ResponseWriter, _ *http.Request) {
	writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}

func (s *Server) getState(w http.ResponseWriter, _ *http.Request) {
	writeJSON(w, http.StatusOK, s.w.Store.Snapshot())
}

func (s *Server) getDashboard(w http.ResponseWriter, _ *http.Request) {
	writeJSON(w, http.StatusOK, s.w.Dashboard.Summary())
}

func (s *Server) getParticipants(w http.ResponseWriter, _ *http.Request) {
	writeJSON(w, http.StatusOK, s.w.Dashboard.Participants())
}

type signInRequest struct {
	Email string `json:"email"`
	Org   string `json:"org"`
}

func (s *Server) signIn(w http.ResponseWriter, r *http.Request) {
	var req signInRequest
	if err := decodeBody(r, &req); err != nil {
		s.writeError(w, r, err)
		return
	}
	sess, err := s.w.Sessions.SignIn(req.Email, req.Org)
	if err != nil {
		s.writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusCreated, sess)
}

func (s *Server) signOut(w http.ResponseWriter, _ *http.Request) {
	s.w.Sessions.SignOut()
	w.WriteHeader(http.StatusNoContent)
}

func (s *Server) generateCertificate(w http.ResponseWriter, r *http.Request) {
	cert, err := s.w.Identity.GenerateCertificate(r.Context())
	if err != nil {
		s.writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusCreated, cert)
}

func (s *Server) registerIdentity(w http.ResponseWriter, r *http.Request) {
	reg, err := s.w.Identity.RegisterIdentity(r.Context())
	if err != nil {
		s.writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusCreated, reg)
}

type trainingStatus struct {
	domain.TrainingState
	JobID string `json:"jobId,omitempty"`
}

func (s *Server) trainingStatus() trainingStatus {
	st := trainingStatus{TrainingState: s.w.Store.Snapshot().Training}
	if run, ok := s.w.Training.Running(); ok {
		st.JobID = run.JobID
	}
	return st
}

func (s *Server) getTraining(w http.ResponseWriter, _ *http.Request) {
	writeJSON(w, http.StatusOK, s.trainingStatus())
}

func (s *Server) startTraining(w http.ResponseWriter, r *http.Request) {
	run, err := s.w.Training.Start(r.Context())
	if err != nil {
		s.writeError(w, r, err)
		return
	}
	st := s.trainingStatus()
	st.JobID = run.JobID
	writeJSON(w, http.StatusAccepted, st)
}

func (s *Server) pauseTraining(w http.ResponseWriter, _ *http.Request) {
	s.w.Training.Pause()
	writeJSON(w, http.StatusOK, s.trainingStatus())
}

func (s *Server) resetTraining(w http.ResponseWriter, _ *http.Request) {
	s.w.Training.Reset()
	writeJSON(w, http.StatusOK, s.trainingStatus())
}

func (s *Server) triggerAggregation(w http.ResponseWriter, r *http.Request) {
	model, err := s.w.Aggregation.Trigger(r.Context(), nil)
	if err != nil {
		s.writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, model)
}

func (s *Server) getModel(w http.ResponseWriter, _ *http.Request) {
	writeJSON(w, http.StatusOK, s.w.Catalog.Model())
}

func (s *Server) downloadModel(w http.ResponseWriter, r *http.Request) {
	pkg, err := s.w.Catalog.Download(r.Context())
	if err != nil {
		s.writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, pkg)
}

func (s *Server) searchLedger(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, s.w.Audit.Search(r.URL.Query().Get("q")))
}

func (s *Server) hideModal(w http.ResponseWriter, _ *http.Request) {
	s.w.Store.Dispatch(state.HideModal{})
	w.WriteHeader(http.StatusNoContent)
}

func (s *Server) showSystemFlow(w http.ResponseWriter, _ *http.Request) {
	s.w.Dashboard.ShowSystemFlow()
	writeJSON(w, http.StatusOK, s.w.Store.Snapshot().Modal)
}

type actionRequest struct {
	Type    string          `json:"type"`
	Payload json.RawMessage `json:"payload"`
}

// dispatchAction applies a raw action. Unknown types are accepted and change
// nothing.
func (s *Server) dispatchAction(w http.ResponseWriter, r *http.Request) {
	var req actionRequest
	if err := decodeBody(r, &req); err != nil {
		s.writeError(w, r, err)
		return
	}
	a, err := state.DecodeAction(req.Type, req.Payload)
	if err != nil {
		s.writeError(w, r, fmt.Errorf("%w: %v", errBadRequest, err))
		return
	}
	s.w.Store.Dispatch(a)
	writeJSON(w, http.StatusOK, s.w.Store.Snapshot())
}

// maxMockDelayMillis bounds the latency a caller may ask the simulator for.
const maxMockDelayMillis = 60_000

func (s *Server) callMock(w http.ResponseWriter, r *http.Request) {
	req := domain.Request{Operation: domain.Operation(mux.Vars(r)["operation"])}
	if v := r.URL.Query().Get("delay_ms"); v != "" {
		ms, err := strconv.Atoi(v)
		if err != nil || ms < 0 || ms > maxMockDelayMillis {
			s.writeError(w, r, fmt.Errorf("%w: delay_ms must be an integer in [0, %d]", errBadRequest, maxMockDelayMillis))
			return
		}
		req.Delay = time.Duration(ms) * time.Millisecond
	}
	if req.Operation == domain.OpTriggerAggregation {
		model := s.w.Store.Snapshot().Model
		req.Model = &model
	}

	resp, err := s.w.Sim.Call(r.Context(), req)
	if err != nil {
		s.writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, resp)
}
