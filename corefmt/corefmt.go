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

// Package corefmt 處理 seed、PID 與 RNG 快照的文字格式。
//
// seed 與 PID 以 "0x" 前綴的十六進位為主要表示，也接受十進位輸入。
// RNG 快照（4 bytes）對外一律以 Base64URL 傳遞，可直接放進 query string。
package corefmt

import (
	"encoding/base64"
	"encoding/hex"
	"strconv"
	"strings"

	"github.com/zintix-labs/rnglab/errs"
	"github.com/zintix-labs/rnglab/sdk/core"
)

// ParseSeed 解析 32-bit seed："0x5A0"、"5a0h" 以外的格式一律視為十進位。
func ParseSeed(s string) (uint32, error) {
	v, err := parseUint(s, 32)
	if err != nil {
		return 0, errs.WrapWarn(err, "invalid seed "+strconv.Quote(s))
	}
	return uint32(v), nil
}

// ParseAdvance 解析推進次數，規則同 ParseSeed。
func ParseAdvance(s string) (uint64, error) {
	v, err := parseUint(s, 64)
	if err != nil {
		return 0, errs.WrapWarn(err, "invalid advance "+strconv.Quote(s))
	}
	return v, nil
}

func parseUint(s string, bitSize int) (uint64, error) {
	s = strings.ReplaceAll(strings.TrimSpace(s), "_", "")
	lower := strings.ToLower(s)
	switch {
	case strings.HasPrefix(lower, "0x"):
		return strconv.ParseUint(lower[2:], 16, bitSize)
	case strings.HasSuffix(lower, "h") && len(lower) > 1:
		return strconv.ParseUint(lower[:len(lower)-1], 16, bitSize)
	}
	return strconv.ParseUint(s, 10, bitSize)
}

// FormatSeed 固定 8 位大寫十六進位。
func FormatSeed(seed uint32) string {
	return "0x" + strings.ToUpper(hex.EncodeToString(core.AppendUint32(nil, seed)))
}

// FormatPID 同 FormatSeed。
func FormatPID(pid uint32) string {
	return FormatSeed(pid)
}

func EncodeBase64URL(b []byte) string {
	return base64.RawURLEncoding.EncodeToString(b)
}

func DecodeBase64URL(s string) ([]byte, error) {
	b, err := base64.RawURLEncoding.DecodeString(s)
	if err != nil {
		return nil, errs.WrapWarn(err, "decode base64url failed")
	}
	return b, nil
}

func EncodeHex(b []byte) string {
	return hex.EncodeToString(b)
}

func DecodeHex(s string) ([]byte, error) {
	b, err := hex.DecodeString(s)
	if err != nil {
		return nil, errs.WrapWarn(err, "decode hex failed")
	}
	return b, nil
}

// EncodeState 把 RNG 狀態編成 Base64URL 快照。
func EncodeState(rng core.LCRNG) string {
	b, _ := rng.Snapshot()
	return EncodeBase64URL(b)
}

// DecodeState 還原 EncodeState 的快照。
func DecodeState(s string) (core.LCRNG, error) {
	var rng core.LCRNG
	b, err := DecodeBase64URL(s)
	if err != nil {
		return rng, err
	}
	if err := rng.Restore(b); err != nil {
		return rng, errs.WrapWarn(err, "restore state failed")
	}
	return rng, nil
}
