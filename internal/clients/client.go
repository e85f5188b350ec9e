package clients

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"strconv"
	"time"

	"github.com/sirupsen/logrus"

	"delivery_tracker/internal/apperr"
	"delivery_tracker/internal/config"
)

// DefaultTimeout bounds every sibling-service call. Overridable with
// the CLIENT_TIMEOUT env var (seconds).
const DefaultTimeout = 5 * time.Second

// base wraps an http.Client pointed at one sibling service. A 404 from
// the sibling maps to apperr.NotFound; any other non-success or a
// transport failure maps to apperr.Dependency so outages are never
// mistaken for missing data.
type base struct {
	name    string
	baseURL string
	http    *http.Client
}

func newBase(name, baseURL string) base {
	timeout := DefaultTimeout
	if raw := config.Env("CLIENT_TIMEOUT", ""); raw != "" {
		if secs, err := strconv.Atoi(raw); err == nil && secs > 0 {
			timeout = time.Duration(secs) * time.Second
		}
	}
	return base{
		name:    name,
		baseURL: baseURL,
		http:    &http.Client{Timeout: timeout},
	}
}

func (b base) getJSON(ctx context.Context, path string, out interface{}) error {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, b.baseURL+path, nil)
	if err != nil {
		return apperr.Internal("building "+b.name+" request", err)
	}
	return b.do(req, path, out)
}

func (b base) postJSON(ctx context.Context, path string, body, out interface{}) error {
	payload, err := json.Marshal(body)
	if err != nil {
		return apperr.Internal("encoding "+b.name+" request", err)
	}
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, b.baseURL+path, bytes.NewReader(payload))
	if err != nil {
		return apperr.Internal("building "+b.name+" request", err)
	}
	req.Header.Set("Content-Type", "application/json")
	return b.do(req, path, out)
}

func (b base) do(req *http.Request, path string, out interface{}) error {
	resp, err := b.http.Do(req)
	if err != nil {
		logrus.WithError(err).WithFields(logrus.Fields{
			"service": b.name,
			"path":    path,
		}).Error("Sibling service unreachable.")
		return apperr.Dependency(b.name+" service unreachable", err)
	}
	defer resp.Body.Close()

	switch {
	case resp.StatusCode == http.StatusNotFound:
		return apperr.NotFound("%s: %s not found", b.name, path)
	case resp.StatusCode < 200 || resp.StatusCode > 299:
		logrus.WithFields(logrus.Fields{
			"service": b.name,
			"path":    path,
			"status":  resp.StatusCode,
		}).Error("Sibling service returned non-success status.")
		return apperr.Dependency(
			b.name+" service returned an error",
			fmt.Errorf("%s %s: status %d", req.Method, path, resp.StatusCode),
		)
	}

	if out == nil {
		return nil
	}
	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		return apperr.Dependency(b.name+" service returned an invalid body", err)
	}
	return nil
}
