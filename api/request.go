package api

import (
	"duygu.io/sentiment/pipeline"
	"github.com/google/uuid"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"io/ioutil"
	"net/http"
	"strings"
)

const maxBodySize = 1 << 20

type Request struct {
	Pipeline pipeline.Pipeline
}

// Routes serves classification on "/" and Prometheus metrics on "/metrics".
func (req *Request) Routes() *http.ServeMux {
	mux := http.NewServeMux()
	mux.HandleFunc("/", req.ProcessData)
	mux.Handle("/metrics", promhttp.Handler())
	return mux
}

func (req *Request) ProcessData(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "application/json")

	tid := r.Header.Get("X-Request-ID")
	if tid == "" {
		tid = uuid.New().String()
	}
	w.Header().Set("X-Request-ID", tid)
	logger := makeRequestLogger(r, tid)

	if r.Method != http.MethodPost {
		logger.Err(nil).Int("status", http.StatusMethodNotAllowed).Msg("Only 'POST' method is allowed here")
		http.Error(w, "", http.StatusMethodNotAllowed)
		return
	}

	msg, err := ioutil.ReadAll(http.MaxBytesReader(w, r.Body, maxBodySize))
	if err != nil {
		logger.Err(err).Int("status", http.StatusBadRequest).Msg("Could not read request body")
		http.Error(w, "", http.StatusBadRequest)
		return
	}
	if strings.TrimSpace(string(msg)) == "" {
		logger.Err(nil).Int("status", http.StatusBadRequest).Msg("Empty sentence")
		http.Error(w, "", http.StatusBadRequest)
		return
	}

	request := pipeline.Request{
		Tid:  tid,
		Text: string(msg),
	}
	logger.Info().Msg("Starting pipeline for request from API")
	resp, ok := <-req.Pipeline(request)
	if !ok {
		logger.Error().Int("status", http.StatusInternalServerError).Msg("Pipeline returned no response")
		http.Error(w, "", http.StatusInternalServerError)
		return
	}
	_, _ = w.Write([]byte(resp))
	logger.Info().Int("status", http.StatusOK).Msg("Finished processing request")
}
