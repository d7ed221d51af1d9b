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

package rnglab

import (
	"context"
	"errors"
	"slices"
	"strings"
	"testing"
	"testing/fstest"

	"github.com/zintix-labs/rnglab/errs"
	"github.com/zintix-labs/rnglab/sdk/codec"
	"github.com/zintix-labs/rnglab/sdk/core"
	"github.com/zintix-labs/rnglab/sdk/wild"
	"github.com/zintix-labs/rnglab/search"
)

func hp31(o wild.Outcome) bool { return o.IVs.HP == 31 }

func newLab(t *testing.T) *Lab {
	t.Helper()
	lab, err := NewDefault()
	if err != nil {
		t.Fatalf("new lab: %v", err)
	}
	return lab
}

func TestNewDefault(t *testing.T) {
	lab := newLab(t)
	if len(lab.IDs()) != 6 || !slices.Equal(lab.Targets(), []string{"lotad", "seedot"}) {
		t.Fatalf("unexpected catalog %v", lab.IDs())
	}
	sum, err := lab.Summary()
	if err != nil || len(sum) != 6 {
		t.Fatalf("summary: %v", err)
	}
	if _, err := New(nil); err == nil {
		t.Fatalf("configs required")
	}
	empty, err := New(Configs(fstest.MapFS{}))
	if err != nil {
		t.Fatalf("new: %v", err)
	}
	if err := empty.RegisterAll(); err == nil {
		t.Fatalf("empty fs must fail to register")
	}
	if _, err := empty.Summary(); err == nil {
		t.Fatalf("summary before freeze must fail")
	}
}

func TestSearchScenario(t *testing.T) {
	lab := newLab(t)
	rs, err := lab.SearchScenario(context.Background(), "sapphire-lotad", hp31, search.Options{MaxAdvances: 2000})
	if err != nil {
		t.Fatalf("search: %v", err)
	}
	type row struct {
		slots   []codec.EncounterSlot
		method  wild.Method
		advance uint64
	}
	want := []row{
		{[]codec.EncounterSlot{1, 4}, wild.Method1, 9},
		{[]codec.EncounterSlot{1, 4}, wild.Method2, 9},
		{[]codec.EncounterSlot{1, 4}, wild.Method4, 9},
		{[]codec.EncounterSlot{4, 5}, wild.Method2, 182},
		{[]codec.EncounterSlot{4, 5}, wild.Method1, 1628},
		{[]codec.EncounterSlot{4, 5}, wild.Method4, 1628},
	}
	if len(rs) != len(want) {
		t.Fatalf("got %d results", len(rs))
	}
	for i, w := range want {
		r := rs[i]
		if !r.Found || !slices.Equal(r.Setup.Slots, w.slots) || r.Setup.Method != w.method || r.Advance != w.advance {
			t.Fatalf("result %d = %s adv=%d, want %+v", i, r.Setup, r.Advance, w)
		}
		if r.Setup.Scenario != "sapphire-lotad" {
			t.Fatalf("setup must carry the scenario name")
		}
	}
	if rs[0].Outcome.PID != 0xF0DAB82B {
		t.Fatalf("unexpected pid %#x", rs[0].Outcome.PID)
	}

	none, err := lab.SearchScenario(context.Background(), "ruby-lotad", hp31, search.Options{})
	if err != nil || len(none) != 0 {
		t.Fatalf("ruby has no lotad: %v %v", none, err)
	}
	if _, err := lab.SearchScenario(context.Background(), "crystal-lotad", hp31, search.Options{}); errs.Level(err) != errs.Warn {
		t.Fatalf("unknown scenario must be warn, got %v", err)
	}
}

func TestSearchTarget(t *testing.T) {
	lab := newLab(t)
	rs, err := lab.SearchTarget(context.Background(), "lotad", hp31, search.Options{MaxAdvances: 300})
	if err != nil {
		t.Fatalf("search target: %v", err)
	}
	if len(rs) != 6+156 {
		t.Fatalf("got %d results", len(rs))
	}
	scenarios := map[string]bool{}
	var last uint64
	seenMissing := false
	for _, r := range rs {
		scenarios[r.Setup.Scenario] = true
		if !r.Found {
			seenMissing = true
			continue
		}
		if seenMissing || r.Advance < last {
			t.Fatalf("results not sorted at %s", r.Setup)
		}
		last = r.Advance
	}
	if !scenarios["emerald-lotad"] || !scenarios["sapphire-lotad"] || scenarios["ruby-lotad"] {
		t.Fatalf("unexpected scenarios %v", scenarios)
	}
	if _, err := lab.SearchTarget(context.Background(), "mudkip", hp31, search.Options{}); err == nil {
		t.Fatalf("unknown target must error")
	}
}

func TestGenerateAndAdvance(t *testing.T) {
	lab := newLab(t)
	outs, err := lab.Generate(0, wild.NewConfig())
	if err != nil || len(outs) != 6 {
		t.Fatalf("generate: %d outcomes, err=%v", len(outs), err)
	}
	bad := wild.NewConfig()
	bad.Methods = 0
	if _, err := lab.Generate(0, bad); errs.Level(err) != errs.Warn {
		t.Fatalf("invalid config must be warn, got %v", err)
	}
	if lab.AdvanceSeed(0, 1000) != 0xAC9937E8 {
		t.Fatalf("advance seed mismatch")
	}
}

func TestScanMatchesSerial(t *testing.T) {
	lab := newLab(t)
	cfg := wild.NewConfig()
	cfg.Slots = []codec.EncounterSlot{4, 5}
	rows, _, err := lab.Scan(context.Background(), 0x5A0, cfg, 100, 10_000, 3, false)
	if err != nil {
		t.Fatalf("scan: %v", err)
	}
	rng := core.New(core.Jump(0x5A0, 100))
	i := 0
	for adv := uint64(100); adv < 10_100; adv++ {
		outs := wild.NewGenerator().Generate(rng, cfg)
		if len(outs) > 0 {
			if i >= len(rows) || rows[i].Advance != adv || rows[i].Seed != rng.State() || !slices.Equal(rows[i].Outcomes, outs) {
				t.Fatalf("row mismatch at advance %d", adv)
			}
			i++
		}
		rng.Next()
	}
	if i != len(rows) || i == 0 {
		t.Fatalf("row count %d vs %d", len(rows), i)
	}
	if _, _, err := lab.Scan(context.Background(), 0, cfg, 0, 0, 1, false); err == nil {
		t.Fatalf("zero count must error")
	}
	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	if _, _, err := lab.Scan(ctx, 0, cfg, 0, 100, 1, false); !errors.Is(err, context.Canceled) {
		t.Fatalf("expected cancel, got %v", err)
	}
}

func TestSearchRuntime(t *testing.T) {
	rt, err := newLab(t).BuildRuntime(1, 2)
	if err != nil {
		t.Fatalf("build runtime: %v", err)
	}
	rs, err := rt.Search(context.Background(), "sapphire-lotad", hp31, search.Options{MaxAdvances: 200})
	if err != nil || len(rs) != 6 {
		t.Fatalf("runtime search: %v", err)
	}
	boom := func(wild.Outcome) bool { panic("boom") }
	if _, err := rt.SearchSetup(context.Background(), search.Setup{Method: wild.Method1}, boom, search.Options{}); errs.Level(err) != errs.Fatal {
		t.Fatalf("panic must surface as fatal, got %v", err)
	}
	m := rt.Metrics()
	if m.Served != 1 || m.Panics != 1 || m.Available != 1 || m.Inflight != 0 || m.CloseInflight != -1 {
		t.Fatalf("unexpected metrics %+v", m)
	}

	rt.Close()
	rt.Close()
	if _, err := rt.SearchTarget(context.Background(), "lotad", hp31, search.Options{}); errs.Level(err) != errs.Fatal {
		t.Fatalf("closed runtime must reject, got %v", err)
	}
	if !rt.Metrics().Closed || rt.ClosedReason() != "closed" {
		t.Fatalf("unexpected close state")
	}
}

func TestClosedRuntimeNeverServes(t *testing.T) {
	lab := newLab(t)
	hit := func(wild.Outcome) bool { return true }
	setup := search.Setup{Method: wild.Method1}
	for i := 0; i < 200; i++ {
		rt, err := lab.BuildRuntime(4, 1)
		if err != nil {
			t.Fatalf("build runtime: %v", err)
		}
		rt.Close()
		if _, err := rt.SearchSetup(context.Background(), setup, hit, search.Options{MaxAdvances: 1}); errs.Level(err) != errs.Fatal {
			t.Fatalf("round %d: closed runtime served, err=%v", i, err)
		}
		if m := rt.Metrics(); m.Served != 0 {
			t.Fatalf("round %d: served=%d after close", i, m.Served)
		}
	}
}

func TestSwarmTablesMarkedPlaceholder(t *testing.T) {
	lab := newLab(t)
	for _, id := range lab.IDs() {
		ss, err := lab.Scenario(id)
		if err != nil {
			t.Fatalf("scenario %s: %v", id, err)
		}
		if len(ss.SwarmTable) > 0 && !strings.Contains(ss.Description, "placeholder") {
			t.Fatalf("scenario %s ships a swarm_table without a placeholder note", id)
		}
	}
}
