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

package corefmt

import (
	"testing"

	"github.com/zintix-labs/rnglab/errs"
	"github.com/zintix-labs/rnglab/sdk/core"
)

func TestParseSeed(t *testing.T) {
	cases := []struct {
		in   string
		want uint32
	}{
		{"0x5A0", 0x5A0},
		{"0X5a0", 0x5A0},
		{"5A0h", 0x5A0},
		{"1440", 0x5A0},
		{" 0 ", 0},
		{"0xFFFF_FFFF", 0xFFFFFFFF},
	}
	for _, c := range cases {
		got, err := ParseSeed(c.in)
		if err != nil || got != c.want {
			t.Fatalf("ParseSeed(%q) = %#x, %v", c.in, got, err)
		}
	}
	for _, bad := range []string{"", "0x", "0x100000000", "-1", "seed"} {
		if _, err := ParseSeed(bad); errs.Level(err) != errs.Warn {
			t.Fatalf("ParseSeed(%q) should warn, got %v", bad, err)
		}
	}
}

func TestParseAdvance(t *testing.T) {
	if v, err := ParseAdvance("1_000_000"); err != nil || v != 1_000_000 {
		t.Fatalf("unexpected advance %d %v", v, err)
	}
	if v, err := ParseAdvance("0x100000000"); err != nil || v != 1<<32 {
		t.Fatalf("unexpected advance %d %v", v, err)
	}
}

func TestFormatSeed(t *testing.T) {
	if got := FormatSeed(0x5A0); got != "0x000005A0" {
		t.Fatalf("FormatSeed = %s", got)
	}
	if got := FormatPID(0xF0DAB82B); got != "0xF0DAB82B" {
		t.Fatalf("FormatPID = %s", got)
	}
	back, err := ParseSeed(FormatSeed(0xDEADBEEF))
	if err != nil || back != 0xDEADBEEF {
		t.Fatalf("format/parse mismatch %#x", back)
	}
}

func TestStateToken(t *testing.T) {
	rng := core.New(0x5A0)
	rng.Advance(1000)
	tok := EncodeState(rng)
	if tok != "S2UBiA" {
		t.Fatalf("unexpected token %s", tok)
	}
	back, err := DecodeState(tok)
	if err != nil || back.State() != rng.State() {
		t.Fatalf("decode state: %#x %v", back.State(), err)
	}
	if _, err := DecodeState("AAA"); err == nil {
		t.Fatalf("short snapshot must fail")
	}
	if _, err := DecodeState("!!"); errs.Level(err) != errs.Warn {
		t.Fatalf("bad base64 must warn")
	}
}
