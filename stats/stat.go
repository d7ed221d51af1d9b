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

// Package stats 把搜尋結果與週期分布整理成報告，並輸出為表格、JSON 或 YAML。
package stats

import (
	"fmt"
	"io"
	"slices"
	"strings"
	"time"

	"github.com/mattn/go-runewidth"
	"github.com/zintix-labs/rnglab/sdk/wild"
	"github.com/zintix-labs/rnglab/search"
	"golang.org/x/text/language"
	"golang.org/x/text/message"
	"gonum.org/v1/gonum/stat"
)

var lang language.Tag = language.English

// 信賴區間
type CI struct {
	Lo float64 `json:"Lo" yaml:"Lo"`
	Hi float64 `json:"Hi" yaml:"Hi"`
}

// SearchReport 一次情境搜尋的統計報告
type SearchReport struct {
	Summary *SummaryReport `json:"Summary" yaml:"Summary"`
	Methods []MethodReport `json:"Methods" yaml:"Methods"`
	Dist    *DistReport    `json:"Dist" yaml:"Dist"`

	advances []float64
	isDone   bool
}

type SummaryReport struct {
	Scenario      string  `json:"Scenario" yaml:"Scenario"`
	Setups        int     `json:"Setups" yaml:"Setups"`
	Found         int     `json:"Found" yaml:"Found"`
	FoundRate     float64 `json:"FoundRate" yaml:"FoundRate"`
	FoundCI       CI      `json:"FoundCI" yaml:"FoundCI"`
	Earliest      uint64  `json:"Earliest" yaml:"Earliest"`
	EarliestSetup string  `json:"EarliestSetup,omitempty" yaml:"EarliestSetup,omitempty"`
	Mean          float64 `json:"Mean" yaml:"Mean"`
	Median        float64 `json:"Median" yaml:"Median"`
	MedianCI      CI      `json:"MedianCI" yaml:"MedianCI"`
	P90           float64 `json:"P90" yaml:"P90"`
}

// MethodReport 各方法的命中情形。Found 為 0 時 Earliest 無意義。
type MethodReport struct {
	Method   string `json:"Method" yaml:"Method"`
	Setups   int    `json:"Setups" yaml:"Setups"`
	Found    int    `json:"Found" yaml:"Found"`
	Earliest uint64 `json:"Earliest" yaml:"Earliest"`
}

// DistReport 推進次數落點統計（只計找到的結果）
type DistReport struct {
	AdvBucket []string  `json:"AdvBucket" yaml:"AdvBucket"`
	Collect   []int     `json:"Collect" yaml:"Collect"`
	Dist      []float64 `json:"Dist" yaml:"Dist"`
}

// ============================================================
// ** 公開方法 **
// ============================================================

// NewSearchReport 建立空報告，之後以 Record 累積結果。
func NewSearchReport(scenario string) *SearchReport {
	methods := make([]MethodReport, 0, 5)
	for m := wild.Method1; m <= wild.Method5; m++ {
		methods = append(methods, MethodReport{Method: m.String()})
	}
	return &SearchReport{
		Summary: &SummaryReport{Scenario: scenario},
		Methods: methods,
		Dist: &DistReport{
			AdvBucket: Buckets.Labels(),
			Collect:   make([]int, Buckets.Len()),
			Dist:      make([]float64, Buckets.Len()),
		},
		advances: make([]float64, 0),
	}
}

// Summarize 一次性建立並完成報告。
func Summarize(scenario string, rs []search.Result) *SearchReport {
	s := NewSearchReport(scenario)
	for _, r := range rs {
		s.Record(r)
	}
	s.Done()
	return s
}

// Record 累積一筆結果。Done 之後呼叫無效。
func (s *SearchReport) Record(r search.Result) {
	if s.isDone {
		return
	}
	s.Summary.Setups++
	mr := s.methodReport(r.Setup.Method)
	if mr != nil {
		mr.Setups++
	}
	if !r.Found {
		return
	}
	if s.Summary.Found == 0 || r.Advance < s.Summary.Earliest {
		s.Summary.Earliest = r.Advance
		s.Summary.EarliestSetup = r.Setup.String()
	}
	s.Summary.Found++
	if mr != nil {
		if mr.Found == 0 || r.Advance < mr.Earliest {
			mr.Earliest = r.Advance
		}
		mr.Found++
	}
	s.Dist.Collect[Buckets.Index(r.Advance)]++
	s.advances = append(s.advances, float64(r.Advance))
}

// Done 把累積計數轉換為最終統計結果並鎖定 isDone 標記。
func (s *SearchReport) Done() {
	if s.isDone {
		return
	}
	sum := s.Summary
	sum.FoundRate, sum.FoundCI = proportionCICP(sum.Found, sum.Setups, 0.95)
	if n := len(s.advances); n > 0 {
		slices.Sort(s.advances)
		sum.Mean = stat.Mean(s.advances, nil)
		sum.Median = quantilePoint(s.advances, 0.5)
		sum.P90 = quantilePoint(s.advances, 0.9)
		lo, hi := quantileCI(s.advances, 0.5, 0.95)
		sum.MedianCI = CI{Lo: lo, Hi: hi}
		for i, c := range s.Dist.Collect {
			s.Dist.Dist[i] = float64(c) / float64(n)
		}
	}
	s.isDone = true
}

// WriteWith 以指定的渲染器輸出報告。
func (s *SearchReport) WriteWith(w io.Writer, rep Render) error {
	s.Done()
	return rep.Write(w, s)
}

// StdOut 輸出耗時與摘要表格。
func (s *SearchReport) StdOut(w io.Writer, ut time.Duration) {
	s.Done()
	fmt.Fprint(w, formatDuration(ut, s.Summary.Setups))
	fmt.Fprintln(w, s.Table())
}

// Table 回傳摘要表格。
func (s *SearchReport) Table() string {
	s.Done()
	sk, sm := s.fmtBasic()
	return fmtTable(s.Summary.Scenario, sk, sm)
}

// ResultTable 回傳逐筆結果的表格，依傳入順序。
func ResultTable(rs []search.Result) string {
	header := []string{"Advance", "Method", "Sync", "Swarm", "Slots", "Slot", "PID", "Nature", "IVs"}
	rows := make([][]string, 0, len(rs))
	p := message.NewPrinter(lang)
	for _, r := range rs {
		sync := "-"
		if r.Setup.Synchronize != nil {
			sync = r.Setup.Synchronize.String()
		}
		slots := "any"
		if len(r.Setup.Slots) > 0 {
			slots = fmt.Sprint(r.Setup.Slots)
		}
		row := []string{"not found", r.Setup.Method.String(), sync, fmt.Sprint(r.Setup.Swarm), slots, "", "", "", ""}
		if r.Found {
			o := r.Outcome
			row[0] = p.Sprintf("%d", r.Advance)
			row[5] = fmt.Sprint(o.Slot)
			row[6] = fmt.Sprintf("%08X", o.PID)
			row[7] = o.Nature.String()
			row[8] = o.IVs.String()
		}
		rows = append(rows, row)
	}
	return fmtGrid(header, rows)
}

// ============================================================
// ** 內部方法 **
// ============================================================

func (s *SearchReport) methodReport(m wild.Method) *MethodReport {
	i := int(m) - int(wild.Method1)
	if i < 0 || i >= len(s.Methods) {
		return nil
	}
	return &s.Methods[i]
}

func formatDuration(d time.Duration, setups int) string {
	p := message.NewPrinter(lang)
	if d < 0 {
		d = -d
	}
	sec := d.Seconds()
	if sec <= 0 {
		sec = 1e-9
	}
	if sec < 60.0 {
		return p.Sprintf("used: %.2f seconds\nsetups: %d\n", sec, setups)
	}
	s := int(d.Seconds()) % 60
	m := int(d.Minutes()) % 60
	h := int(d.Hours())
	if h == 0 {
		return p.Sprintf("used: %dm %ds\nsetups: %d\n", m, s, setups)
	}
	return p.Sprintf("used: %dh:%dm:%ds\nsetups: %d\n", h, m, s, setups)
}

func (s *SearchReport) fmtBasic() ([]string, map[string]string) {
	p := message.NewPrinter(lang)
	sum := s.Summary
	earliest, median, p90, mean := "-", "-", "-", "-"
	if sum.Found > 0 {
		earliest = p.Sprintf("%d", sum.Earliest)
		median = p.Sprintf("%.0f [%.0f, %.0f]", sum.Median, sum.MedianCI.Lo, sum.MedianCI.Hi)
		p90 = p.Sprintf("%.0f", sum.P90)
		mean = p.Sprintf("%.1f", sum.Mean)
	}
	basic := map[string]string{
		"Scenario":     sum.Scenario,
		"Setups":       p.Sprintf("%d", sum.Setups),
		"Found":        p.Sprintf("%d", sum.Found),
		"Found Rate":   p.Sprintf("%.2f %%", 100.0*sum.FoundRate),
		"Found 95% CI": p.Sprintf("[%.2f%%,%.2f%%]", 100.0*sum.FoundCI.Lo, 100.0*sum.FoundCI.Hi),
		"Earliest":     earliest,
		"Median":       median,
		"P90":          p90,
		"Mean":         mean,
	}
	keys := []string{"Scenario", "Setups", "Found", "Found Rate", "Found 95% CI", "Earliest", "Median", "P90", "Mean"}
	for _, m := range s.Methods {
		if m.Setups == 0 {
			continue
		}
		k := m.Method
		v := p.Sprintf("%d/%d", m.Found, m.Setups)
		if m.Found > 0 {
			v += p.Sprintf(" (earliest %d)", m.Earliest)
		}
		keys = append(keys, k)
		basic[k] = v
	}
	return keys, basic
}

func fmtTable(title string, keys []string, msg map[string]string) string {
	maxKeyLen := 0
	maxValLen := 0
	for k, m := range msg {
		if w := runewidth.StringWidth(k); w > maxKeyLen {
			maxKeyLen = w
		}
		if w := runewidth.StringWidth(m); w > maxValLen {
			maxValLen = w
		}
	}
	maxKeyLen += 2
	maxValLen += 2

	totalInner := maxKeyLen + maxValLen + 1
	titleW := runewidth.StringWidth(title)
	if titleW > totalInner {
		maxValLen += titleW - totalInner
		totalInner = titleW
	}

	divider := "+" + strings.Repeat("-", maxKeyLen) + "+" + strings.Repeat("-", maxValLen) + "+\n"
	top := "+" + strings.Repeat("-", totalInner) + "+\n"

	left := (totalInner - titleW) / 2
	right := totalInner - titleW - left

	var sb strings.Builder
	sb.WriteString(top)
	fmt.Fprintf(&sb, "|%s%s%s|\n", blank(left), title, blank(right))
	sb.WriteString(divider)
	for _, k := range keys {
		fmt.Fprintf(&sb, "| %s%s | %s%s |\n", k, blank(maxKeyLen-2-runewidth.StringWidth(k)), msg[k], blank(maxValLen-2-runewidth.StringWidth(msg[k])))
	}
	sb.WriteString(divider)
	return sb.String()
}

// fmtGrid 以最寬的儲存格對齊每一欄。
func fmtGrid(header []string, rows [][]string) string {
	widths := make([]int, len(header))
	for i, h := range header {
		widths[i] = runewidth.StringWidth(h)
	}
	for _, r := range rows {
		for i, c := range r {
			widths[i] = max(widths[i], runewidth.StringWidth(c))
		}
	}
	line := func(cells []string) string {
		var sb strings.Builder
		for i, c := range cells {
			if i > 0 {
				sb.WriteString("  ")
			}
			sb.WriteString(runewidth.FillRight(c, widths[i]))
		}
		return strings.TrimRight(sb.String(), " ") + "\n"
	}
	var sb strings.Builder
	sb.WriteString(line(header))
	for _, r := range rows {
		sb.WriteString(line(r))
	}
	return sb.String()
}

func blank(w int) string {
	if w < 1 {
		return ""
	}
	return strings.Repeat(" ", w)
}
