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
	"io"
	"net/http"
	"net/url"
	"strconv"

	"github.com/zintix-labs/rnglab/corefmt"
	"github.com/zintix-labs/rnglab/errs"
	"github.com/zintix-labs/rnglab/sdk/core"
	"github.com/zintix-labs/rnglab/search"
	"github.com/zintix-labs/rnglab/spec"
)

const (
	// maxBody POST body 上限（1MiB）
	maxBody = 1 << 20
	// MaxSearchAdvances 單次 HTTP 搜尋允許的推進上限。
	MaxSearchAdvances uint64 = 1 << 26
)

// SearchRequest 對情境（scenario）或目標（target）搜尋，兩者擇一。
// objective 省略時使用情境設定內的目標。
type SearchRequest struct {
	Scenario    string                 `json:"scenario,omitempty"`
	Target      string                 `json:"target,omitempty"`
	Objective   *spec.ObjectiveSetting `json:"objective,omitempty"`
	Start       uint64                 `json:"start,omitempty"`
	MaxAdvances uint64                 `json:"max_advances,omitempty"`
	ChunkSize   uint64                 `json:"chunk_size,omitempty"`
}

// DecodeSearchRequest 會把 HTTP 請求解碼成 SearchRequest。
//
// 支援：
//   - GET：從 query string 讀取 scenario/target/start/max_advances/chunk_size，不支援 objective。
//   - POST：從 JSON body 反序列化，未知欄位一律拒絕。
func DecodeSearchRequest(r *http.Request) (*SearchRequest, error) {
	req := new(SearchRequest)
	switch method(r) {
	case http.MethodGet:
		q := r.URL.Query()
		req.Scenario = q.Get("scenario")
		req.Target = q.Get("target")
		var err error
		if req.Start, err = queryAdvance(q, "start"); err != nil {
			return nil, err
		}
		if req.MaxAdvances, err = queryAdvance(q, "max_advances"); err != nil {
			return nil, err
		}
		if req.ChunkSize, err = queryAdvance(q, "chunk_size"); err != nil {
			return nil, err
		}
		return req, nil
	case http.MethodPost:
		if err := decodeBody(r, req); err != nil {
			return nil, err
		}
		return req, nil
	}
	return nil, errs.NewWarn("method not allowed")
}

// Parse 檢查請求並轉為搜尋參數；objective 省略時回傳 nil。
func (sr *SearchRequest) Parse() (search.Objective, search.Options, error) {
	opts := search.Options{
		StartAdvance: sr.Start,
		MaxAdvances:  sr.MaxAdvances,
		ChunkSize:    sr.ChunkSize,
	}
	if (sr.Scenario == "") == (sr.Target == "") {
		return nil, opts, errs.NewWarn("exactly one of scenario or target is required")
	}
	if sr.MaxAdvances > MaxSearchAdvances {
		return nil, opts, errs.Warnf("max_advances must be <= %d", MaxSearchAdvances)
	}
	if sr.MaxAdvances != 0 && sr.Start >= sr.MaxAdvances {
		return nil, opts, errs.NewWarn("start must be less than max_advances")
	}
	if sr.Objective == nil {
		return nil, opts, nil
	}
	if err := sr.Objective.Validate(); err != nil {
		return nil, opts, err
	}
	return sr.Objective.Objective(), opts, nil
}

// GenerateRequest 列出單一 seed 的所有產生結果。
//
// seed 與 state_b64u 擇一：state_b64u 為搜尋或前一次產生回傳的快照。
// advance 會先把起點推進指定次數；setting 為 spec.GenerateSetting 的 JSON，省略時用預設。
type GenerateRequest struct {
	Seed    string          `json:"seed,omitempty"`
	State   string          `json:"state_b64u,omitempty"`
	Advance uint64          `json:"advance,omitempty"`
	Setting json.RawMessage `json:"setting,omitempty"`
}

func DecodeGenerateRequest(r *http.Request) (*GenerateRequest, error) {
	if method(r) != http.MethodPost {
		return nil, errs.NewWarn("method not allowed")
	}
	req := new(GenerateRequest)
	if err := decodeBody(r, req); err != nil {
		return nil, err
	}
	return req, nil
}

// Parse 回傳產生用的 seed 與設定。
func (gr *GenerateRequest) Parse() (uint32, *spec.GenerateSetting, error) {
	seed, err := startSeed(gr.Seed, gr.State)
	if err != nil {
		return 0, nil, err
	}
	seed = core.Jump(seed, gr.Advance)
	setting := bytes.TrimSpace(gr.Setting)
	if len(setting) == 0 || bytes.Equal(setting, []byte("null")) {
		setting = []byte("{}")
	}
	gs, err := spec.GetGenerateSettingByJSON(setting)
	if err != nil {
		return 0, nil, err
	}
	return seed, gs, nil
}

// AdvanceRequest 計算 seed 推進 n 次後的狀態。只支援 GET。
type AdvanceRequest struct {
	Seed    uint32
	Advance uint64
}

func DecodeAdvanceRequest(r *http.Request) (*AdvanceRequest, error) {
	if method(r) != http.MethodGet {
		return nil, errs.NewWarn("method not allowed")
	}
	q := r.URL.Query()
	seed, err := startSeed(q.Get("seed"), q.Get("state_b64u"))
	if err != nil {
		return nil, err
	}
	n, err := queryAdvance(q, "n")
	if err != nil {
		return nil, err
	}
	return &AdvanceRequest{Seed: seed, Advance: n}, nil
}

// CyclesRequest 查詢單次取餘例程的週期數。只支援 GET。
type CyclesRequest struct {
	Dividend int64
	Divisor  int64
	Signed   bool
}

func DecodeCyclesRequest(r *http.Request) (*CyclesRequest, error) {
	if method(r) != http.MethodGet {
		return nil, errs.NewWarn("method not allowed")
	}
	q := r.URL.Query()
	req := new(CyclesRequest)
	if s := q.Get("signed"); s != "" {
		v, err := strconv.ParseBool(s)
		if err != nil {
			return nil, errs.NewWarn("invalid signed value " + err.Error())
		}
		req.Signed = v
	}
	// unsigned 接受 0..2^32-1，signed 接受 int32 範圍
	lo, hi := int64(0), int64(1<<32-1)
	if req.Signed {
		lo, hi = -1<<31, 1<<31-1
	}
	for _, f := range []struct {
		name string
		dst  *int64
	}{{"dividend", &req.Dividend}, {"divisor", &req.Divisor}} {
		s := q.Get(f.name)
		if s == "" {
			return nil, errs.Warnf("%s is required", f.name)
		}
		v, err := strconv.ParseInt(s, 0, 64)
		if err != nil || v < lo || v > hi {
			return nil, errs.Warnf("invalid %s %q", f.name, s)
		}
		*f.dst = v
	}
	return req, nil
}

func method(r *http.Request) string {
	if r == nil {
		return ""
	}
	return r.Method
}

func decodeBody(r *http.Request, out any) error {
	if r.Body == nil {
		return errs.NewWarn("empty body")
	}
	dec := json.NewDecoder(io.LimitReader(r.Body, maxBody))
	dec.DisallowUnknownFields()
	if err := dec.Decode(out); err != nil {
		return errs.WrapWarn(err, "invalid json")
	}
	return nil
}

func queryAdvance(q url.Values, key string) (uint64, error) {
	s := q.Get(key)
	if s == "" {
		return 0, nil
	}
	return corefmt.ParseAdvance(s)
}

// startSeed 解析 seed 或 state_b64u，兩者必須擇一。
func startSeed(seed, state string) (uint32, error) {
	switch {
	case seed != "" && state != "":
		return 0, errs.NewWarn("seed and state_b64u are mutually exclusive")
	case state != "":
		rng, err := corefmt.DecodeState(state)
		if err != nil {
			return 0, err
		}
		return rng.State(), nil
	case seed != "":
		return corefmt.ParseSeed(seed)
	}
	return 0, errs.NewWarn("seed or state_b64u is required")
}
