package server

import (
	"errors"
	"net/http"
	"strconv"
	"strings"

	"github.com/julienschmidt/httprouter"

	"github.com/ensigniasec/riemann/internal/calc"
	"github.com/ensigniasec/riemann/internal/chart"
	"github.com/ensigniasec/riemann/internal/numtheory"
)

const maxZetaTerms = 1_000_000

var errInvalidTerms = errors.New("Invalid input. terms must be an integer between 1 and 1000000.") //nolint:revive,stylecheck // shown to users verbatim

type primeData struct {
	N        int   `json:"n"`
	Prime    bool  `json:"prime"`
	Divisors []int `json:"divisors"`
}

type primeCountData struct {
	N             int     `json:"n"`
	Count         int     `json:"count"`
	Approximation float64 `json:"approximation"`
	Error         float64 `json:"error"`
}

type zetaData struct {
	S         float64  `json:"s"`
	Terms     int      `json:"terms"`
	Value     *float64 `json:"value"`
	TailBound *float64 `json:"tailBound"`
	Exact     *float64 `json:"exact,omitempty"`
	Precise   bool     `json:"precise"`
}

type evalData struct {
	Expression string   `json:"expression"`
	Result     *float64 `json:"result"`
}

func (s *Server) primeHandler(w http.ResponseWriter, r *http.Request) {
	params := httprouter.ParamsFromContext(r.Context())
	n, err := strconv.Atoi(params.ByName("n"))
	if err != nil {
		s.badRequestResponse(w, r, calc.ErrInvalidInteger)
		return
	}
	if limit := s.calc.MaxPrimeN(); n > limit {
		s.badRequestResponse(w, r, calc.TooLargeError{Max: limit})
		return
	}
	divisors := []int{}
	if n >= 1 {
		divisors = numtheory.Divisors(n, 0)
	}
	s.sendResponse(w, r, primeData{N: n, Prime: numtheory.IsPrime(n), Divisors: divisors})
}

func (s *Server) primeCountHandler(w http.ResponseWriter, r *http.Request) {
	params := httprouter.ParamsFromContext(r.Context())
	res, err := s.calc.PrimeCount(params.ByName("n"))
	if err != nil {
		s.badRequestResponse(w, r, err)
		return
	}
	s.sendResponse(w, r, primeCountData{
		N:             res.N,
		Count:         res.Count,
		Approximation: res.Approximation,
		Error:         res.Error,
	})
}

func (s *Server) zetaHandler(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()
	sv, err := strconv.ParseFloat(strings.TrimSpace(q.Get("s")), 64)
	if err != nil {
		s.badRequestResponse(w, r, calc.ErrInvalidNumber)
		return
	}
	terms := s.calc.Terms()
	if raw := q.Get("terms"); raw != "" {
		terms, err = strconv.Atoi(raw)
		if err != nil || terms < 1 || terms > maxZetaTerms {
			s.badRequestResponse(w, r, errInvalidTerms)
			return
		}
	}
	res := s.calc.ZetaAt(sv, terms)
	s.sendResponse(w, r, zetaData{
		S:         res.S,
		Terms:     res.Terms,
		Value:     finite(res.Value),
		TailBound: finite(res.TailBound),
		Exact:     res.Exact,
		Precise:   res.Precise,
	})
}

func (s *Server) zerosHandler(w http.ResponseWriter, r *http.Request) {
	count := len(numtheory.KnownZeros())
	if raw := r.URL.Query().Get("count"); raw != "" {
		n, err := strconv.Atoi(raw)
		if err != nil {
			s.badRequestResponse(w, r, calc.ErrInvalidInteger)
			return
		}
		count = n
	}
	s.sendResponse(w, r, numtheory.CriticalZeros(count))
}

func (s *Server) evalHandler(w http.ResponseWriter, r *http.Request) {
	expr := r.URL.Query().Get("expr")
	v, err := s.calc.Expression(r.Context(), expr)
	if err != nil {
		s.badRequestResponse(w, r, err)
		return
	}
	s.sendResponse(w, r, evalData{Expression: expr, Result: finite(v)})
}

func (s *Server) chartHandler(w http.ResponseWriter, r *http.Request) {
	params := httprouter.ParamsFromContext(r.Context())
	view, err := chart.ParseView(params.ByName("view"))
	if err != nil {
		s.notFoundResponse(w, r)
		return
	}
	f, err := chart.Build(view)
	if err != nil {
		s.serverErrorResponse(w, r, err)
		return
	}
	w.Header().Set("Content-Type", "image/svg+xml")
	w.Header().Set("Cache-Control", "public, max-age=3600")
	if _, err := w.Write(chart.RenderSVG(f, chart.WithBackground())); err != nil {
		s.log.WithError(err).Debug("write chart")
	}
}

func (s *Server) healthHandler(w http.ResponseWriter, r *http.Request) {
	s.sendResponse(w, r, map[string]string{"status": "ok"})
}
