package server

import (
	"encoding/json"
	"net/http"
	"strconv"
	"time"

	"github.com/go-chi/chi/v5/middleware"

	"github.com/matzehuels/hypercuboid/pkg/buildinfo"
	"github.com/matzehuels/hypercuboid/pkg/core/geom"
	"github.com/matzehuels/hypercuboid/pkg/errors"
	hio "github.com/matzehuels/hypercuboid/pkg/io"
	"github.com/matzehuels/hypercuboid/pkg/pipeline"
)

type healthResponse struct {
	Status string         `json:"status"`
	Build  buildinfo.Info `json:"build"`
}

func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, healthResponse{Status: "ok", Build: buildinfo.Get()})
}

type integrateResponse struct {
	RunID       string        `json:"run_id"`
	ProblemHash string        `json:"problem_hash"`
	Cached      bool          `json:"cached"`
	Stats       statsResponse `json:"stats"`
	Solution    hio.Solution  `json:"solution"`
}

type statsResponse struct {
	Boxes     int     `json:"boxes"`
	Dim       int     `json:"dim"`
	Events    int     `json:"events"`
	Splits    int     `json:"splits"`
	PeakCells int     `json:"peak_cells"`
	Cells     int     `json:"cells"`
	SweepMS   float64 `json:"sweep_ms"`
}

func (s *Server) handleIntegrate(w http.ResponseWriter, r *http.Request) {
	problem, err := hio.ReadProblem(r.Body, hio.FormatJSON)
	if err != nil {
		s.writeError(w, r, err)
		return
	}

	opts := pipeline.Options{
		Axis:     problem.Axis,
		Mode:     s.cfg.Options.Mode,
		MaxCells: s.cfg.Options.MaxCells,
		Logger:   s.logger.With("request", middleware.GetReqID(r.Context())),
	}
	if problem.Mode != "" {
		opts.Mode = problem.Mode
	}
	if problem.MaxCells > 0 {
		opts.MaxCells = problem.MaxCells
	}
	if v := r.URL.Query().Get("refresh"); v != "" {
		refresh, err := strconv.ParseBool(v)
		if err != nil {
			s.writeError(w, r, errors.New(errors.ErrCodeInvalidInput, "refresh: not a boolean: %q", v))
			return
		}
		opts.Refresh = refresh
	}

	result, err := s.runner.Execute(r.Context(), problem.Boxes, opts)
	if err != nil {
		s.writeError(w, r, err)
		return
	}

	st := result.Stats
	writeJSON(w, http.StatusOK, integrateResponse{
		RunID:       result.RunID,
		ProblemHash: result.ProblemHash,
		Cached:      result.CacheInfo.SolutionHit,
		Stats: statsResponse{
			Boxes:     st.Boxes,
			Dim:       st.Dim,
			Events:    st.Events,
			Splits:    st.Splits,
			PeakCells: st.PeakCells,
			Cells:     st.Cells,
			SweepMS:   float64(st.SweepTime) / float64(time.Millisecond),
		},
		Solution: result.Solution,
	})
}

type intervalSplitRequest struct {
	A geom.Interval `json:"a"`
	B geom.Interval `json:"b"`
}

func (s *Server) handleSplitInterval(w http.ResponseWriter, r *http.Request) {
	var req intervalSplitRequest
	if err := decodeStrict(r, &req); err != nil {
		s.writeError(w, r, err)
		return
	}
	pieces, inside, err := geom.SplitInterval(req.A, req.B)
	if err != nil {
		s.writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, hio.IntervalSplit{Pieces: pieces, Inside: inside})
}

type boxSplitRequest struct {
	A geom.Box `json:"a"`
	B geom.Box `json:"b"`
}

func (s *Server) handleSplitBox(w http.ResponseWriter, r *http.Request) {
	var req boxSplitRequest
	if err := decodeStrict(r, &req); err != nil {
		s.writeError(w, r, err)
		return
	}
	pieces, inside, err := geom.SplitBox(req.A, req.B)
	if err != nil {
		s.writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, hio.BoxSplit{Pieces: pieces, Inside: inside})
}

func decodeStrict(r *http.Request, v any) error {
	dec := json.NewDecoder(r.Body)
	dec.DisallowUnknownFields()
	if err := dec.Decode(v); err != nil {
		return errors.Wrap(errors.ErrCodeInvalidFormat, err, "decode request")
	}
	return nil
}
