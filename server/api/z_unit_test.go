// Copyright 2025 Zintix Labs
//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
//     http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.

package api_test

import (
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/klauspost/compress/gzip"
	"github.com/klauspost/compress/zstd"
	"github.com/zintix-labs/rnglab"
	"github.com/zintix-labs/rnglab/dto"
	"github.com/zintix-labs/rnglab/server/api"
	"github.com/zintix-labs/rnglab/server/httperr"
	"github.com/zintix-labs/rnglab/server/netsvr"
	"github.com/zintix-labs/rnglab/server/svrcfg"
)

const hp31 = `{"ivs":{"min":{"hp":31},"max":{"hp":31,"atk":31,"def":31,"spa":31,"spd":31,"spe":31}}}`

func newServer(t *testing.T) (*netsvr.ChiAdapter, *rnglab.SearchRuntime) {
	t.Helper()
	lab, err := rnglab.NewDefault()
	if err != nil {
		t.Fatalf("new lab: %v", err)
	}
	cfg := &svrcfg.SvrCfg{Lab: lab, Slots: 2, Workers: 2}
	if err := cfg.Valid(); err != nil {
		t.Fatalf("valid: %v", err)
	}
	svr := netsvr.NewChiServerDefault()
	rt, err := api.RegisterRoutes(svr, cfg)
	if err != nil {
		t.Fatalf("register: %v", err)
	}
	return svr, rt
}

func do(t *testing.T, h http.Handler, method, target, body string) *httptest.ResponseRecorder {
	t.Helper()
	var rd io.Reader
	if body != "" {
		rd = strings.NewReader(body)
	}
	w := httptest.NewRecorder()
	h.ServeHTTP(w, httptest.NewRequest(method, target, rd))
	return w
}

func decode[T any](t *testing.T, w *httptest.ResponseRecorder) T {
	t.Helper()
	var v T
	if err := json.Unmarshal(w.Body.Bytes(), &v); err != nil {
		t.Fatalf("decode %q: %v", w.Body.String(), err)
	}
	return v
}

func TestIndexAndScenarios(t *testing.T) {
	svr, _ := newServer(t)
	w := do(t, svr, http.MethodGet, "/", "")
	if w.Code != http.StatusOK || !strings.Contains(w.Body.String(), "/v1/search") {
		t.Fatalf("index: %d %s", w.Code, w.Body.String())
	}
	if w.Header().Get("X-Request-Id") == "" {
		t.Fatalf("request id header missing")
	}

	w = do(t, svr, http.MethodGet, "/v1/scenarios?target=seedot", "")
	resp := decode[struct {
		Targets   []string `json:"targets"`
		Scenarios []struct {
			ID     string `json:"id"`
			Setups int    `json:"setups"`
		} `json:"scenarios"`
	}](t, w)
	if len(resp.Targets) != 2 || len(resp.Scenarios) != 3 {
		t.Fatalf("unexpected scenarios %+v", resp)
	}
	for _, s := range resp.Scenarios {
		if s.ID == "emerald-seedot" && s.Setups != 156 {
			t.Fatalf("emerald-seedot setups = %d", s.Setups)
		}
	}
}

func TestAdvanceAndCycles(t *testing.T) {
	svr, _ := newServer(t)
	adv := decode[dto.AdvanceResponse](t, do(t, svr, http.MethodGet, "/v1/advance?seed=0x5A0&n=1000", ""))
	if adv.Result != "0x4B650188" || adv.Schema != dto.Schema {
		t.Fatalf("unexpected advance %+v", adv)
	}
	cyc := decode[dto.CyclesResponse](t, do(t, svr, http.MethodGet, "/v1/cycles?dividend=1140479406&divisor=25", ""))
	if cyc.Cycles != 767 {
		t.Fatalf("unexpected cycles %+v", cyc)
	}
	if w := do(t, svr, http.MethodGet, "/v1/cycles?divisor=25", ""); w.Code != http.StatusBadRequest {
		t.Fatalf("missing dividend must be 400, got %d", w.Code)
	}
}

func TestSearchScenario(t *testing.T) {
	svr, rt := newServer(t)
	body := `{"scenario":"sapphire-lotad","objective":` + hp31 + `,"max_advances":2000}`
	w := do(t, svr, http.MethodPost, "/v1/search", body)
	if w.Code != http.StatusOK {
		t.Fatalf("search: %d %s", w.Code, w.Body.String())
	}
	resp := decode[dto.SearchResponse](t, w)
	if resp.Found != 6 || len(resp.Results) != 6 {
		t.Fatalf("unexpected response %+v", resp)
	}
	first := resp.Results[0]
	if first.Advance != 9 || first.Outcome.PID != "0xF0DAB82B" || first.Setup.Scenario != "sapphire-lotad" {
		t.Fatalf("unexpected first result %+v", first)
	}
	if last := resp.Results[5]; last.Advance != 1628 || len(last.Setup.Slots) != 2 || last.Setup.Slots[0] != 4 {
		t.Fatalf("unexpected last result %+v", last)
	}

	// 命中時的快照送回 generate 應重現同一 PID
	gen := `{"state_b64u":"` + first.State + `","setting":{"slots":[1,4],"methods":[1]}}`
	w = do(t, svr, http.MethodPost, "/v1/generate", gen)
	if w.Code != http.StatusOK {
		t.Fatalf("generate: %d %s", w.Code, w.Body.String())
	}
	g := decode[dto.GenerateResponse](t, w)
	hit := false
	for _, o := range g.Outcomes {
		hit = hit || (o.PID == first.Outcome.PID && o.IVs[0] == 31)
	}
	if !hit {
		t.Fatalf("generate did not reproduce the search hit: %+v", g.Outcomes)
	}

	m := decode[struct {
		Runtime rnglab.RuntimeMetrics `json:"runtime"`
	}](t, do(t, svr, http.MethodGet, "/v1/runtime", ""))
	if m.Runtime.Served != 2 || m.Runtime.Slots != 2 || m.Runtime.Closed {
		t.Fatalf("unexpected metrics %+v", m.Runtime)
	}

	rt.Close()
	w = do(t, svr, http.MethodPost, "/v1/search", body)
	if w.Code != http.StatusInternalServerError {
		t.Fatalf("closed runtime must be 500, got %d", w.Code)
	}
}

func TestSearchErrors(t *testing.T) {
	svr, _ := newServer(t)
	cases := []struct {
		method, path, body string
		status             int
	}{
		{http.MethodPost, "/v1/search", `{"scenario":"crystal-lotad"}`, http.StatusBadRequest},
		{http.MethodPost, "/v1/search", `{"scenario":"a","target":"b"}`, http.StatusBadRequest},
		{http.MethodPost, "/v1/search", `not json`, http.StatusBadRequest},
		{http.MethodPost, "/v1/search/target", `{"scenario":"sapphire-lotad"}`, http.StatusBadRequest},
		{http.MethodGet, "/v1/search/target?target=mudkip", "", http.StatusBadRequest},
		{http.MethodPost, "/v1/generate", `{}`, http.StatusBadRequest},
		{http.MethodDelete, "/v1/search", "", http.StatusMethodNotAllowed},
	}
	for _, c := range cases {
		w := do(t, svr, c.method, c.path, c.body)
		if w.Code != c.status {
			t.Fatalf("%s %s %s: got %d want %d (%s)", c.method, c.path, c.body, w.Code, c.status, w.Body.String())
		}
		if c.status == http.StatusBadRequest {
			b := decode[httperr.Body](t, w)
			if b.Level != "warn" || b.RequestID == "" {
				t.Fatalf("unexpected error body %+v", b)
			}
		}
	}
}

func TestCompression(t *testing.T) {
	svr, _ := newServer(t)
	for _, enc := range []string{"gzip", "zstd"} {
		r := httptest.NewRequest(http.MethodGet, "/v1/scenarios", nil)
		r.Header.Set("Accept-Encoding", enc)
		w := httptest.NewRecorder()
		svr.ServeHTTP(w, r)
		if w.Header().Get("Content-Encoding") != enc {
			t.Fatalf("expected %s encoding, got %q", enc, w.Header().Get("Content-Encoding"))
		}
		var rd io.Reader
		switch enc {
		case "gzip":
			gr, err := gzip.NewReader(w.Body)
			if err != nil {
				t.Fatalf("gzip reader: %v", err)
			}
			rd = gr
		case "zstd":
			zr, err := zstd.NewReader(w.Body)
			if err != nil {
				t.Fatalf("zstd reader: %v", err)
			}
			defer zr.Close()
			rd = zr
		}
		b, err := io.ReadAll(rd)
		if err != nil || !strings.Contains(string(b), "emerald-lotad") {
			t.Fatalf("%s body: %v %q", enc, err, b)
		}
	}
	r := httptest.NewRequest(http.MethodGet, "/v1/scenarios", nil)
	r.Header.Set("Accept-Encoding", "gzip;q=0")
	w := httptest.NewRecorder()
	svr.ServeHTTP(w, r)
	if w.Header().Get("Content-Encoding") != "" {
		t.Fatalf("q=0 must disable gzip")
	}
}
