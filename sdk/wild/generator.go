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

// Package wild 重現野生遭遇的產生流程。
//
// 一次產生是固定順序的狀態機：
//
//	SlotSelect -> LevelRoll -> NatureGender -> PIDLoop -> IVDraw -> Done
//
// 每個狀態消耗固定數量的亂數；method 2 / 3 / 4 / 5 的候選結果都從 LCRNG 的
// 分叉 (fork) 計算，分叉多消耗一次亂數模擬 VBlank 中斷，不影響主序列。
// 週期成本全部委派給 Timing。
package wild

import (
	"github.com/zintix-labs/rnglab/sdk/codec"
	"github.com/zintix-labs/rnglab/sdk/core"
)

// Fidelity 選擇週期模型的精細程度。
type Fidelity uint8

const (
	FidelityFirmware Fidelity = iota // 逐週期對應韌體
	FidelityCoarse                   // 早期平坦模型
)

type options struct {
	leadPID    uint32
	levelRange int32
	fidelity   Fidelity
	timing     Timing
}

// Option 調整 Generator。
type Option func(*options)

// WithLeadPID 指定隊首個體 PID（影響多處除法成本）。
func WithLeadPID(pid uint32) Option {
	return func(o *options) { o.leadPID = pid }
}

// WithLevelRange 指定遭遇表的等級範圍（max-min+1）。
func WithLevelRange(n int32) Option {
	return func(o *options) { o.levelRange = n }
}

// WithFidelity 切換週期模型。
func WithFidelity(f Fidelity) Option {
	return func(o *options) { o.fidelity = f }
}

// WithTiming 使用自訂週期模型，優先於 WithFidelity。
func WithTiming(t Timing) Option {
	return func(o *options) { o.timing = t }
}

// Generator 無狀態，可在多個 goroutine 間共用。
type Generator struct {
	timing Timing
}

// NewGenerator 建立產生器，預設為韌體週期模型、隊首 PID 0、等級範圍 1。
func NewGenerator(opts ...Option) *Generator {
	o := options{leadPID: BaseLeadPID, levelRange: 1}
	for _, fn := range opts {
		fn(&o)
	}
	t := o.timing
	if t == nil {
		switch o.fidelity {
		case FidelityCoarse:
			t = CoarseTiming{}
		default:
			t = NewFirmwareTiming(o.leadPID, o.levelRange)
		}
	}
	return &Generator{timing: t}
}

func (g *Generator) Timing() Timing { return g.timing }

var defaultGenerator = NewGenerator()

// Generate 以預設產生器從 seed 產生所有結果。
func Generate(seed uint32, cfg *Config) []Outcome {
	return defaultGenerator.Generate(core.New(seed), cfg)
}

// AdvanceSeed 回傳推進 n 次後的 seed。
func AdvanceSeed(seed uint32, n uint64) uint32 {
	return core.Jump(seed, n)
}

// Generate 從 rng 的目前狀態產生所有結果；rng 以值傳入，呼叫端狀態不變。
// 結果依發生順序排列，區間遞增。
func (g *Generator) Generate(rng core.LCRNG, cfg *Config) []Outcome {
	return g.AppendGenerate(nil, rng, cfg)
}

// AppendGenerate 同 Generate，結果附加到 dst 後回傳，供搜尋迴圈重用記憶體。
//
// 同步性格超出範圍時 PID 迴圈永遠無法滿足，直接回傳 dst 不產生結果。
func (g *Generator) AppendGenerate(dst []Outcome, rng core.LCRNG, cfg *Config) []Outcome {
	if cfg.Lead.Kind == LeadSynchronize && !cfg.Lead.Nature.Valid() {
		return dst
	}
	r := run{cfg: cfg, t: g.timing, rng: rng, out: dst, base: len(dst)}
	for st := stageSlotSelect; st != stageDone; {
		st = r.step(st)
	}
	return r.out
}

type stage uint8

const (
	stageSlotSelect stage = iota
	stageLevelRoll
	stageNatureGender
	stagePIDLoop
	stageIVDraw
	stageDone
)

// run 為單次產生的可變狀態。
type run struct {
	cfg *Config
	t   Timing
	rng core.LCRNG

	cycle       int
	slot        codec.EncounterSlot
	multiGender bool
	nature      codec.Nature // 必須符合的性格
	gender      codec.Gender // 必須符合的性別，hasGender 為 false 時無意義
	hasGender   bool
	pid         uint32

	out  []Outcome
	base int
}

func (r *run) step(st stage) stage {
	switch st {
	case stageSlotSelect:
		return r.selectSlot()
	case stageLevelRoll:
		return r.rollLevel()
	case stageNatureGender:
		return r.resolveLead()
	case stagePIDLoop:
		return r.pidLoop()
	case stageIVDraw:
		return r.drawIVs()
	}
	return stageDone
}

func (r *run) selectSlot() stage {
	r.cycle += r.t.Prelude()
	raw := r.rng.Next16()
	r.slot = r.cfg.table().Slot(raw)
	r.cycle += r.t.Slot(raw)
	if !codec.SlotAllowed(r.cfg.Slots, r.slot) {
		return stageDone
	}
	return stageLevelRoll
}

func (r *run) rollLevel() stage {
	raw := r.rng.Next16()
	r.multiGender = r.cfg.GenderRatio.HasMultipleGenders()
	r.cycle += r.t.Level(raw, r.multiGender)
	return stageNatureGender
}

// pickNature 抽一次亂數決定性格，回傳更新後的 (性格, 週期, rng)。
func pickNature(cycles int, rng core.LCRNG, t Timing) (codec.Nature, int, core.LCRNG) {
	raw := rng.Next16()
	return codec.NatureFromValue(uint32(raw)), cycles + t.Nature(raw), rng
}

func (r *run) resolveLead() stage {
	lead := r.cfg.Lead
	switch {
	case lead.Kind == LeadSynchronize:
		if r.rng.Next16()&1 == 0 {
			r.nature = lead.Nature
			r.cycle += r.t.Lead(PathSyncHit, 0)
			break
		}
		r.cycle += r.t.Lead(PathSyncMiss, 0)
		r.nature, r.cycle, r.rng = pickNature(r.cycle, r.rng, r.t)
	case lead.Kind == LeadCuteCharm && r.multiGender:
		raw := r.rng.Next16()
		if raw%3 != 0 {
			r.gender, r.hasGender = charmTarget(lead.Gender), true
			r.cycle += r.t.Lead(PathCharmHit, raw)
		} else {
			r.cycle += r.t.Lead(PathCharmMiss, raw)
		}
		r.nature, r.cycle, r.rng = pickNature(r.cycle, r.rng, r.t)
	default:
		r.cycle += r.t.Lead(PathUnbiased, 0)
		r.nature, r.cycle, r.rng = pickNature(r.cycle, r.rng, r.t)
	}
	return stagePIDLoop
}

// charmTarget 回傳魅惑之軀命中時要求的性別：隊首為雌性時要求雄性，其餘一律要求雌性。
func charmTarget(lead codec.Gender) codec.Gender {
	if lead == codec.Female {
		return codec.Male
	}
	return codec.Female
}

// wanted 回傳 pid 是否滿足隊首分支要求的性格與性別。
func (r *run) wanted(pid uint32) bool {
	if codec.NatureFromPID(pid) != r.nature {
		return false
	}
	return !r.hasGender || codec.GenderFromPID(pid, r.cfg.GenderRatio) == r.gender
}

func (r *run) pidLoop() stage {
	methods := r.cfg.Methods
	for {
		low := r.rng.Next16()
		window, step := r.t.Method3()
		if methods.Has(Method3) {
			r.method3(low, window)
		}
		r.cycle += step

		high := r.rng.Next16()
		r.pid = uint32(high)<<16 | uint32(low)
		if r.wanted(r.pid) {
			break
		}

		window, step = r.t.Method5(r.pid, codec.NatureFromPID(r.pid) == r.nature)
		if methods.Has(Method5) {
			r.method5(window)
		}
		r.cycle += step
	}
	if !r.cfg.AcceptsPID(r.pid) {
		return stageDone
	}
	return stageIVDraw
}

// method3: VBlank 落在 PID 低位與高位之間。
func (r *run) method3(low uint16, window int) {
	fork := r.rng
	fork.Next16()
	pid := uint32(fork.Next16())<<16 | uint32(low)
	if !r.wanted(pid) || !r.cfg.AcceptsPID(pid) {
		return
	}
	ivs := codec.IVsFromWords(fork.Next16(), fork.Next16())
	r.emit(Method3, pid, ivs, window)
}

// method5: VBlank 落在重抽迴圈中，之後以新的低位 / 高位組合重抽直到符合。
func (r *run) method5(window int) {
	fork := r.rng
	fork.Next16()
	var pid uint32
	for {
		low := fork.Next16()
		pid = uint32(fork.Next16())<<16 | uint32(low)
		if r.wanted(pid) {
			break
		}
	}
	if !r.cfg.AcceptsPID(pid) {
		return
	}
	ivs := codec.IVsFromWords(fork.Next16(), fork.Next16())
	r.emit(Method5, pid, ivs, window)
}

// drawIVs 依 method 2、4、1 的順序計算；三者共用主序列的前綴。
func (r *run) drawIVs() stage {
	methods := r.cfg.Methods

	window, step := r.t.Method2(r.pid)
	if methods.Has(Method2) {
		fork := r.rng
		fork.Next16()
		ivs := codec.IVsFromWords(fork.Next16(), fork.Next16())
		r.emit(Method2, r.pid, ivs, window)
	}
	r.cycle += step

	iv1 := r.rng.Next16()
	window, step = r.t.Method4(r.pid)
	if methods.Has(Method4) {
		fork := r.rng
		fork.Next16()
		r.emit(Method4, r.pid, codec.IVsFromWords(iv1, fork.Next16()), window)
	}
	r.cycle += step

	if methods.Has(Method1) {
		ivs := codec.IVsFromWords(iv1, r.rng.Next16())
		if r.cfg.AcceptsIVs(ivs) {
			r.out = append(r.out, r.outcome(Method1, r.pid, ivs, Interval{r.cycle, r.t.Method1End(r.cycle)}))
		}
	}
	return stageDone
}

func (r *run) emit(m Method, pid uint32, ivs codec.IVs, window int) {
	if !r.cfg.AcceptsIVs(ivs) {
		return
	}
	o := r.outcome(m, pid, ivs, Interval{r.cycle, r.cycle + window})
	r.out = appendCoalesced(r.out, r.base, o)
}

func (r *run) outcome(m Method, pid uint32, ivs codec.IVs, span Interval) Outcome {
	return Outcome{
		Slot:    r.slot,
		PID:     pid,
		IVs:     ivs,
		Nature:  codec.NatureFromPID(pid),
		Gender:  codec.GenderFromPID(pid, r.cfg.GenderRatio),
		Ability: codec.AbilityFromPID(pid),
		Shiny:   codec.Shiny(pid, r.cfg.TID, r.cfg.SID),
		Method:  m,
		Cycles:  span,
	}
}
