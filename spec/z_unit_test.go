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

package spec

import (
	"slices"
	"testing"

	"github.com/zintix-labs/rnglab/errs"
	"github.com/zintix-labs/rnglab/sdk/codec"
	"github.com/zintix-labs/rnglab/sdk/core"
	"github.com/zintix-labs/rnglab/sdk/wild"
	"github.com/zintix-labs/rnglab/search"
)

const emeraldSeedot = `
game: Emerald
target: seedot
seed: 0
combos:
  - slots: [11]
    swarm: true
synchronize: [all]
swarm_table: [10, 10, 5, 5, 5, 5, 3, 2, 2, 2, 1, 50]
objective:
  largest: true
search:
  max_advances: 5000000
`

func TestScenarioYAML(t *testing.T) {
	ss, err := GetScenarioByYAML([]byte(emeraldSeedot))
	if err != nil {
		t.Fatalf("parse failed: %v", err)
	}
	if ss.ID() != "emerald-seedot" {
		t.Fatalf("unexpected id %q", ss.ID())
	}
	sc := ss.Scenario()
	if sc.Name != "emerald-seedot" || sc.Seed != 0 || sc.SwarmTable == nil {
		t.Fatalf("unexpected scenario %+v", sc)
	}
	if len(sc.Synchronize) != 26 || sc.Synchronize[25] != nil || *sc.Synchronize[3] != codec.Adamant {
		t.Fatalf("sync all must expand to 25 natures then none")
	}
	if n := len(search.Enumerate(sc)); n != 156 {
		t.Fatalf("expected 156 setups, got %d", n)
	}
	if sc.SwarmTable.Slot(99) != 11 {
		t.Fatalf("swarm table not applied")
	}
	opts := ss.Options(search.Options{ChunkSize: 10})
	if opts.MaxAdvances != 5_000_000 || opts.ChunkSize != 10 {
		t.Fatalf("unexpected options %+v", opts)
	}
}

func TestScenarioJSONAndEmptyCombos(t *testing.T) {
	ss, err := GetScenarioByJSON([]byte(`{"game":"ruby","target":"lotad","seed":1440,"combos":[],"synchronize":["none"]}`))
	if err != nil {
		t.Fatalf("parse failed: %v", err)
	}
	if ss.Scenario().Seed != 0x5A0 || len(search.Enumerate(ss.Scenario())) != 0 {
		t.Fatalf("unexpected scenario %+v", ss.Scenario())
	}
}

func TestScenarioErrors(t *testing.T) {
	cases := map[string]string{
		"unknown field":   "game: ruby\ntarget: lotad\nseeds: 1\n",
		"missing target":  "game: ruby\n",
		"bad slot":        "game: ruby\ntarget: lotad\ncombos: [{slots: [12]}]\n",
		"swarm no table":  "game: ruby\ntarget: seedot\ncombos: [{slots: [11], swarm: true}]\n",
		"bad nature":      "game: ruby\ntarget: lotad\nsynchronize: [grumpy]\n",
		"bad method":      "game: ruby\ntarget: lotad\nmethods: [6]\n",
		"short table":     "game: ruby\ntarget: lotad\nswarm_table: [50, 50]\n",
		"table sum":       "game: ruby\ntarget: lotad\nswarm_table: [10, 10, 10, 10, 10, 10, 10, 10, 10, 10, 10, 10]\n",
		"bad iv range":    "game: ruby\ntarget: lotad\nobjective: {ivs: {min: {hp: 20}, max: {hp: 10}}}\n",
		"chunk too large": "game: ruby\ntarget: lotad\nsearch: {max_advances: 10, chunk_size: 20}\n",
	}
	for name, doc := range cases {
		_, err := GetScenarioByYAML([]byte(doc))
		if err == nil {
			t.Fatalf("%s: expected error", name)
		}
		if errs.Level(err) != errs.Warn {
			t.Fatalf("%s: expected warn level, got %v (%v)", name, errs.Level(err), err)
		}
	}
}

func TestParseSynchronize(t *testing.T) {
	got, err := ParseSynchronize([]string{"Adamant", "none", "jolly"})
	if err != nil || len(got) != 3 || *got[0] != codec.Adamant || got[1] != nil || *got[2] != codec.Jolly {
		t.Fatalf("unexpected %v err=%v", got, err)
	}
	got, _ = ParseSynchronize(nil)
	if len(got) != 1 || got[0] != nil {
		t.Fatalf("empty list means no synchronize")
	}
}

func TestGenerateSettingDefaults(t *testing.T) {
	gs, err := GetGenerateSettingByYAML([]byte("lead: {kind: synchronize, nature: Adamant}\nslots: [4, 5]\n"))
	if err != nil {
		t.Fatalf("parse failed: %v", err)
	}
	cfg := gs.Config()
	if cfg.GenderRatio != codec.OneToOne || cfg.Methods != wild.AllMethods || cfg.Filter.IVs != codec.FullIVRange() {
		t.Fatalf("defaults lost: %+v", cfg)
	}
	if cfg.Lead != wild.Synchronize(codec.Adamant) || len(cfg.Slots) != 2 {
		t.Fatalf("unexpected lead/slots %+v", cfg)
	}
	// 與直接組出的設定產生相同結果
	want := wild.NewConfig()
	want.Lead = wild.Synchronize(codec.Adamant)
	want.Slots = []codec.EncounterSlot{4, 5}
	got := wild.NewGenerator(gs.GeneratorOptions()...).Generate(core.New(0x5A0), cfg)
	if !slices.Equal(got, wild.Generate(0x5A0, want)) || len(got) == 0 {
		t.Fatalf("setting and hand-built config disagree")
	}
}

func TestGenerateSettingUndecoded(t *testing.T) {
	want := wild.Generate(0x5A0, wild.NewConfig())
	for name, gs := range map[string]*GenerateSetting{
		"constructor": NewGenerateSetting(),
		"zero":        {},
	} {
		cfg := gs.Config()
		if cfg == nil || cfg.Methods != wild.AllMethods {
			t.Fatalf("%s: unexpected cfg %+v", name, cfg)
		}
		got := wild.NewGenerator(gs.GeneratorOptions()...).Generate(core.New(0x5A0), cfg)
		if !slices.Equal(got, want) {
			t.Fatalf("%s: outcomes differ from default config", name)
		}
	}
}

func TestGenerateSettingJSON(t *testing.T) {
	doc := `{"gender_ratio":"7:1","methods":[1,2],"filter":{"shiny":"not_shiny","ivs":{"min":{"hp":31}}},"timing":{"lead_pid":305419896,"level_range":5,"fidelity":"coarse"}}`
	gs, err := GetGenerateSettingByJSON([]byte(doc))
	if err != nil {
		t.Fatalf("parse failed: %v", err)
	}
	cfg := gs.Config()
	if cfg.GenderRatio != codec.SevenToOne || cfg.Methods != wild.Methods(wild.Method1, wild.Method2) {
		t.Fatalf("unexpected cfg %+v", cfg)
	}
	if cfg.Filter.Shiny != wild.ShinyNever || cfg.Filter.IVs.Min.HP != 31 || cfg.Filter.IVs.Max != codec.PerfectIVs() {
		t.Fatalf("partial iv filter must keep max: %+v", cfg.Filter)
	}
	if _, ok := wild.NewGenerator(gs.GeneratorOptions()...).Timing().(wild.CoarseTiming); !ok {
		t.Fatalf("coarse fidelity not applied")
	}
	cfg.Slots = append(cfg.Slots, 3)
	if len(gs.Config().Slots) != 0 {
		t.Fatalf("Config must return a copy")
	}
}

func TestGenerateSettingErrors(t *testing.T) {
	cases := []string{
		`{"timing":{"fidelity":"exact"}}`,
		`{"timing":{"level_range":0}}`,
		`{"methods":[0]}`,
		`{"lead":{"kind":"cute_charm","gender":"genderless"}}`,
		`{"swarm":true}`,
		`{"gender_ratio":"2:1"}`,
		`{"tid":1,"oops":2}`,
	}
	for _, doc := range cases {
		if _, err := GetGenerateSettingByJSON([]byte(doc)); err == nil || errs.Level(err) != errs.Warn {
			t.Fatalf("%s: expected warn error, got %v", doc, err)
		}
	}
}

func TestObjective(t *testing.T) {
	adamant := codec.Adamant
	obj := ObjectiveSetting{Nature: &adamant, IVs: &codec.IVRange{Min: codec.IVs{HP: 31}, Max: codec.PerfectIVs()}}
	hit := wild.Outcome{Nature: codec.Adamant, IVs: codec.IVs{HP: 31}}
	if !obj.Objective()(hit) {
		t.Fatalf("expected match")
	}
	hit.IVs.HP = 30
	if obj.Objective()(hit) {
		t.Fatalf("hp 30 must not match")
	}
	if !(ObjectiveSetting{}).Objective()(wild.Outcome{}) {
		t.Fatalf("zero objective accepts everything")
	}
	largest := ObjectiveSetting{Largest: true, Shiny: wild.ShinyNever}.Objective()
	if largest(wild.Outcome{PID: 0xFF123432, IVs: codec.IVs{HP: 31, Atk: 1, Def: 6, SpA: 1, SpD: 5, Spe: 16}}) {
		t.Fatalf("scale 23348 is not largest")
	}
}

func TestParseFidelity(t *testing.T) {
	if f, err := ParseFidelity(""); err != nil || f != wild.FidelityFirmware {
		t.Fatalf("default fidelity")
	}
	if f, err := ParseFidelity("Coarse"); err != nil || f != wild.FidelityCoarse {
		t.Fatalf("coarse fidelity")
	}
}
