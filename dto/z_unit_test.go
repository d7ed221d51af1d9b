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

package dto

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/zintix-labs/rnglab/corefmt"
	"github.com/zintix-labs/rnglab/errs"
	"github.com/zintix-labs/rnglab/sdk/codec"
	"github.com/zintix-labs/rnglab/sdk/core"
	"github.com/zintix-labs/rnglab/sdk/wild"
	"github.com/zintix-labs/rnglab/search"
)

func TestDecodeSearchRequestGET(t *testing.T) {
	r := httptest.NewRequest(http.MethodGet, "/v1/search?scenario=sapphire-lotad&start=0x10&max_advances=2000", nil)
	req, err := DecodeSearchRequest(r)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if req.Scenario != "sapphire-lotad" || req.Start != 16 || req.MaxAdvances != 2000 {
		t.Fatalf("unexpected request: %+v", req)
	}
	obj, opts, err := req.Parse()
	if err != nil || obj != nil || opts.StartAdvance != 16 || opts.MaxAdvances != 2000 {
		t.Fatalf("unexpected parse: %+v %v", opts, err)
	}
}

func TestDecodeSearchRequestPOST(t *testing.T) {
	body := `{"target":"lotad","objective":{"largest":false,"nature":"adamant","ivs":{"min":{"hp":31},"max":{"hp":31,"atk":31,"def":31,"spa":31,"spd":31,"spe":31}}},"max_advances":5000}`
	r := httptest.NewRequest(http.MethodPost, "/v1/search/target", strings.NewReader(body))
	req, err := DecodeSearchRequest(r)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	obj, _, err := req.Parse()
	if err != nil || obj == nil {
		t.Fatalf("parse failed: %v", err)
	}
	hit := wild.Outcome{Nature: 3, IVs: codec.IVs{HP: 31}}
	miss := wild.Outcome{Nature: 3, IVs: codec.IVs{HP: 30}}
	if !obj(hit) || obj(miss) {
		t.Fatalf("objective mismatch")
	}
}

func TestSearchRequestRejects(t *testing.T) {
	cases := []string{
		`{"unknown":true,"scenario":"x"}`,
		`{}`,
		`{"scenario":"a","target":"b"}`,
		`{"scenario":"a","max_advances":999999999999}`,
		`{"scenario":"a","start":10,"max_advances":10}`,
		`{"scenario":"a","objective":{"ivs":{"min":{"hp":31}}}}`,
	}
	for _, c := range cases {
		r := httptest.NewRequest(http.MethodPost, "/v1/search", strings.NewReader(c))
		req, err := DecodeSearchRequest(r)
		if err == nil {
			_, _, err = req.Parse()
		}
		if errs.Level(err) != errs.Warn {
			t.Fatalf("%s: expected warn, got %v", c, err)
		}
	}
	r := httptest.NewRequest(http.MethodDelete, "/v1/search", nil)
	if _, err := DecodeSearchRequest(r); err == nil {
		t.Fatalf("expected method error")
	}
}

func TestGenerateRequest(t *testing.T) {
	body := `{"seed":"0x5A0","advance":9,"setting":{"slots":[1,4],"methods":[1]}}`
	r := httptest.NewRequest(http.MethodPost, "/v1/generate", strings.NewReader(body))
	req, err := DecodeGenerateRequest(r)
	if err != nil {
		t.Fatalf("decode: %v", err)
	}
	seed, gs, err := req.Parse()
	if err != nil {
		t.Fatalf("parse: %v", err)
	}
	if seed != core.Jump(0x5A0, 9) {
		t.Fatalf("unexpected seed %#x", seed)
	}
	cfg := gs.Config()
	if !cfg.Methods.Has(wild.Method1) || cfg.Methods.Has(wild.Method2) || len(cfg.Slots) != 2 {
		t.Fatalf("unexpected config %+v", cfg)
	}

	// state token 與 seed 等價
	tok := corefmt.EncodeState(core.New(0x5A0))
	req = &GenerateRequest{State: tok}
	if s, _, err := req.Parse(); err != nil || s != 0x5A0 {
		t.Fatalf("state parse: %#x %v", s, err)
	}
	for _, bad := range []*GenerateRequest{
		{},
		{Seed: "1", State: tok},
		{Seed: "zz"},
		{Seed: "1", Setting: json.RawMessage(`{"methods":[9]}`)},
	} {
		if _, _, err := bad.Parse(); errs.Level(err) != errs.Warn {
			t.Fatalf("%+v: expected warn, got %v", bad, err)
		}
	}
}

func TestAdvanceAndCyclesRequest(t *testing.T) {
	r := httptest.NewRequest(http.MethodGet, "/v1/advance?seed=0&n=1000", nil)
	req, err := DecodeAdvanceRequest(r)
	if err != nil {
		t.Fatalf("decode: %v", err)
	}
	resp := NewAdvanceResponse(req.Seed, req.Advance)
	if resp.Result != "0xAC9937E8" || resp.Seed != "0x00000000" {
		t.Fatalf("unexpected response %+v", resp)
	}

	r = httptest.NewRequest(http.MethodGet, "/v1/cycles?dividend=25&divisor=25", nil)
	creq, err := DecodeCyclesRequest(r)
	if err != nil {
		t.Fatalf("decode: %v", err)
	}
	if got := NewCyclesResponse(creq).Cycles; got != 126 {
		t.Fatalf("ModU(25,25) = %d", got)
	}
	r = httptest.NewRequest(http.MethodGet, "/v1/cycles?dividend=-118428064&divisor=25&signed=true", nil)
	if creq, err = DecodeCyclesRequest(r); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if got := NewCyclesResponse(creq).Cycles; got != 781 {
		t.Fatalf("ModS = %d", got)
	}
	for _, q := range []string{"dividend=-1&divisor=3", "divisor=3", "dividend=1&divisor=x", "dividend=1&divisor=2&signed=maybe"} {
		r = httptest.NewRequest(http.MethodGet, "/v1/cycles?"+q, nil)
		if _, err := DecodeCyclesRequest(r); err == nil {
			t.Fatalf("%s: expected error", q)
		}
	}
}

func TestResultDTO(t *testing.T) {
	adamant := codec.Nature(3)
	r := search.Result{
		Setup: search.Setup{
			Scenario:    "sapphire-lotad",
			Seed:        0,
			Slots:       []codec.EncounterSlot{1, 4},
			Method:      wild.Method1,
			Synchronize: &adamant,
		},
		Found:   true,
		Advance: 3662,
		Outcome: wild.Outcome{Slot: 1, PID: 0x211B512A, Nature: adamant, Method: wild.Method1},
	}
	resp := NewSearchResponse([]search.Result{r, {Setup: search.Setup{Method: wild.Method2}}}, "1ms")
	if resp.Schema != Schema || resp.Found != 1 || len(resp.Results) != 2 {
		t.Fatalf("unexpected response %+v", resp)
	}
	got := resp.Results[0]
	if got.Outcome.PID != "0x211B512A" || got.Setup.Synchronize != "Adamant" || got.Outcome.Nature != "Adamant" {
		t.Fatalf("unexpected result %+v", got)
	}
	if got.State != corefmt.EncodeState(core.New(core.Jump(0, 3662))) {
		t.Fatalf("state token mismatch")
	}
	if resp.Results[1].Outcome != nil || resp.Results[1].Setup.Synchronize != "none" {
		t.Fatalf("missing result must not carry outcome")
	}

	var buf bytes.Buffer
	if err := json.NewEncoder(&buf).Encode(resp); err != nil {
		t.Fatalf("encode: %v", err)
	}
	if !strings.Contains(buf.String(), `"slots":[1,4]`) {
		t.Fatalf("slots must encode as array: %s", buf.String())
	}
}

func TestGenerateResponse(t *testing.T) {
	outs := wild.Generate(0x5A0, wild.NewConfig())
	resp := NewGenerateResponse(0x5A0, outs)
	if len(resp.Outcomes) != len(outs) || resp.Seed != "0x000005A0" {
		t.Fatalf("unexpected response %+v", resp)
	}
	next, err := corefmt.DecodeState(resp.Next)
	if err != nil || next.State() != core.Jump(0x5A0, 1) {
		t.Fatalf("next token mismatch")
	}
}
