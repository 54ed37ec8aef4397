package server

import (
	"encoding/json"
	"math"
	"net/http"
)

const apiVersion = 1

// ResponseModel is the envelope of every JSON response.
type ResponseModel struct {
	Code        int    `json:"code"`
	CurrentTime int64  `json:"currentTime"`
	Data        any    `json:"data"`
	Text        string `json:"text"`
	Version     int    `json:"version"`
}

func (s *Server) newResponse(code int, text string, data any) ResponseModel {
	return ResponseModel{
		Code:        code,
		CurrentTime: s.now().UnixMilli(),
		Data:        data,
		Text:        text,
		Version:     s.version,
	}
}

func (s *Server) sendResponse(w http.ResponseWriter, r *http.Request, data any) {
	s.writeJSON(w, r, http.StatusOK, s.newResponse(http.StatusOK, "OK", data))
}

func (s *Server) writeJSON(w http.ResponseWriter, r *http.Request, status int, response ResponseModel) {
	body, err := json.Marshal(response)
	if err != nil {
		s.serverErrorResponse(w, r, err)
		return
	}
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if _, err := w.Write(append(body, '\n')); err != nil {
		s.log.WithError(err).Debug("write response")
	}
}

// badRequestResponse sends a 400 whose text is the user-facing input error.
func (s *Server) badRequestResponse(w http.ResponseWriter, r *http.Request, err error) {
	s.writeJSON(w, r, http.StatusBadRequest, s.newResponse(http.StatusBadRequest, err.Error(), nil))
}

func (s *Server) notFoundResponse(w http.ResponseWriter, r *http.Request) {
	s.writeJSON(w, r, http.StatusNotFound, s.newResponse(http.StatusNotFound, "resource not found", nil))
}

func (s *Server) serverErrorResponse(w http.ResponseWriter, r *http.Request, err error) {
	s.log.WithError(err).WithField("path", r.URL.Path).Error("request failed")

	response := s.newResponse(http.StatusInternalServerError, "internal server error", nil)
	body, encodeErr := json.Marshal(response)
	if encodeErr != nil {
		http.Error(w, "internal server error", http.StatusInternalServerError)
		return
	}
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusInternalServerError)
	_, _ = w.Write(append(body, '\n'))
}

// finite maps NaN and the infinities to JSON null.
func finite(v float64) *float64 {
	if math.IsNaN(v) || math.IsInf(v, 0) {
		return nil
	}
	return &v
}
