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

// Package dto 定義 HTTP 介面的請求與回應結構（schema rnglab.v1）。
//
// 數值型別（seed、PID）以 "0x" 十六進位字串輸出；欄位與方法以 int 陣列輸出，
// 避免 []uint8 被 encoding/json 編成 base64。
package dto

import (
	"github.com/zintix-labs/rnglab/corefmt"
	"github.com/zintix-labs/rnglab/sdk/core"
	"github.com/zintix-labs/rnglab/sdk/cycle"
	"github.com/zintix-labs/rnglab/sdk/wild"
	"github.com/zintix-labs/rnglab/search"
)

// Schema 回應版本。
const Schema = "rnglab.v1"

type Outcome struct {
	Slot    int    `json:"slot"`
	PID     string `json:"pid"`
	Nature  string `json:"nature"`
	Gender  string `json:"gender"`
	Ability string `json:"ability"`
	Shiny   bool   `json:"shiny"`
	IVs     [6]int `json:"ivs"` // HP, Atk, Def, SpA, SpD, Spe
	Method  int    `json:"method"`
	Cycles  [2]int `json:"cycles"`
}

func NewOutcome(o wild.Outcome) Outcome {
	dto := Outcome{
		Slot:    int(o.Slot),
		PID:     corefmt.FormatPID(o.PID),
		Nature:  o.Nature.String(),
		Gender:  o.Gender.String(),
		Ability: o.Ability.String(),
		Shiny:   o.Shiny,
		Method:  int(o.Method),
		Cycles:  [2]int{o.Cycles.Start, o.Cycles.End},
	}
	for i, v := range o.IVs.Array() {
		dto.IVs[i] = int(v)
	}
	return dto
}

func NewOutcomes(outs []wild.Outcome) []Outcome {
	dto := make([]Outcome, len(outs))
	for i, o := range outs {
		dto[i] = NewOutcome(o)
	}
	return dto
}

type Setup struct {
	Scenario    string `json:"scenario,omitempty"`
	Seed        string `json:"seed"`
	Slots       []int  `json:"slots"`
	Method      int    `json:"method"`
	Synchronize string `json:"synchronize"` // none 或性格名稱
	Swarm       bool   `json:"swarm"`
}

func NewSetup(s search.Setup) Setup {
	dto := Setup{
		Scenario:    s.Scenario,
		Seed:        corefmt.FormatSeed(s.Seed),
		Slots:       make([]int, len(s.Slots)),
		Method:      int(s.Method),
		Synchronize: "none",
		Swarm:       s.Swarm,
	}
	for i, v := range s.Slots {
		dto.Slots[i] = int(v)
	}
	if s.Synchronize != nil {
		dto.Synchronize = s.Synchronize.String()
	}
	return dto
}

// Result 一個 Setup 的搜尋結果；found 為 false 時只有 setup。
type Result struct {
	Setup   Setup    `json:"setup"`
	Found   bool     `json:"found"`
	Advance uint64   `json:"advance,omitempty"`
	State   string   `json:"state_b64u,omitempty"` // 命中當下的 RNG 快照，可直接送回 /v1/generate
	Outcome *Outcome `json:"outcome,omitempty"`
}

func NewResult(r search.Result) Result {
	dto := Result{Setup: NewSetup(r.Setup), Found: r.Found}
	if r.Found {
		o := NewOutcome(r.Outcome)
		dto.Advance = r.Advance
		dto.State = corefmt.EncodeState(core.New(core.Jump(r.Setup.Seed, r.Advance)))
		dto.Outcome = &o
	}
	return dto
}

type SearchResponse struct {
	Schema  string   `json:"schema"`
	Results []Result `json:"results"`
	Found   int      `json:"found"`
	Used    string   `json:"used"`
}

func NewSearchResponse(rs []search.Result, used string) SearchResponse {
	resp := SearchResponse{Schema: Schema, Results: make([]Result, len(rs)), Used: used}
	for i, r := range rs {
		resp.Results[i] = NewResult(r)
		if r.Found {
			resp.Found++
		}
	}
	return resp
}

type GenerateResponse struct {
	Schema   string    `json:"schema"`
	Seed     string    `json:"seed"`
	State    string    `json:"state_b64u"`
	Next     string    `json:"next_b64u"` // 推進一次後的快照，用於逐格續查
	Outcomes []Outcome `json:"outcomes"`
}

func NewGenerateResponse(seed uint32, outs []wild.Outcome) GenerateResponse {
	rng := core.New(seed)
	state := corefmt.EncodeState(rng)
	rng.Next()
	return GenerateResponse{
		Schema:   Schema,
		Seed:     corefmt.FormatSeed(seed),
		State:    state,
		Next:     corefmt.EncodeState(rng),
		Outcomes: NewOutcomes(outs),
	}
}

type AdvanceResponse struct {
	Schema  string `json:"schema"`
	Seed    string `json:"seed"`
	Advance uint64 `json:"advance"`
	Result  string `json:"result"`
	State   string `json:"state_b64u"`
}

func NewAdvanceResponse(seed uint32, n uint64) AdvanceResponse {
	after := core.Jump(seed, n)
	return AdvanceResponse{
		Schema:  Schema,
		Seed:    corefmt.FormatSeed(seed),
		Advance: n,
		Result:  corefmt.FormatSeed(after),
		State:   corefmt.EncodeState(core.New(after)),
	}
}

type CyclesResponse struct {
	Schema   string `json:"schema"`
	Dividend int64  `json:"dividend"`
	Divisor  int64  `json:"divisor"`
	Signed   bool   `json:"signed"`
	Cycles   int    `json:"cycles"`
}

func NewCyclesResponse(req *CyclesRequest) CyclesResponse {
	resp := CyclesResponse{Schema: Schema, Dividend: req.Dividend, Divisor: req.Divisor, Signed: req.Signed}
	if req.Signed {
		resp.Cycles = cycle.ModS(int32(req.Dividend), int32(req.Divisor))
	} else {
		resp.Cycles = cycle.ModU(uint32(req.Dividend), uint32(req.Divisor))
	}
	return resp
}
