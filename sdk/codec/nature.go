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

// Package codec 把原始亂數值解碼為個體屬性：性格、性別、特性、異色、個體值與遭遇欄位。
//
// 全部為純函數；列舉型別實作 encoding.TextMarshaler，
// 讓 YAML / JSON 設定以名稱表示（例如 "Adamant"、"1:1"）。
package codec

import (
	"fmt"
	"strings"
)

// Nature 為性格，值域 0..24。
type Nature uint8

const (
	Hardy Nature = iota
	Lonely
	Brave
	Adamant
	Naughty
	Bold
	Docile
	Relaxed
	Impish
	Lax
	Timid
	Hasty
	Serious
	Jolly
	Naive
	Modest
	Mild
	Quiet
	Bashful
	Rash
	Calm
	Gentle
	Sassy
	Careful
	Quirky
)

// NatureCount 為性格總數。
const NatureCount = 25

var natureNames = [NatureCount]string{
	"Hardy", "Lonely", "Brave", "Adamant", "Naughty",
	"Bold", "Docile", "Relaxed", "Impish", "Lax",
	"Timid", "Hasty", "Serious", "Jolly", "Naive",
	"Modest", "Mild", "Quiet", "Bashful", "Rash",
	"Calm", "Gentle", "Sassy", "Careful", "Quirky",
}

// NatureFromValue 回傳 v mod 25 對應的性格。
func NatureFromValue(v uint32) Nature {
	return Nature(v % NatureCount)
}

// NatureFromPID 同 NatureFromValue，語意上用於 PID。
func NatureFromPID(pid uint32) Nature {
	return Nature(pid % NatureCount)
}

// Natures 依標準順序回傳全部性格。
func Natures() []Nature {
	out := make([]Nature, NatureCount)
	for i := range out {
		out[i] = Nature(i)
	}
	return out
}

func (n Nature) Valid() bool { return n < NatureCount }

func (n Nature) String() string {
	if !n.Valid() {
		return fmt.Sprintf("Nature(%d)", uint8(n))
	}
	return natureNames[n]
}

// ParseNature 不分大小寫解析性格名稱。
func ParseNature(s string) (Nature, error) {
	for i, name := range natureNames {
		if strings.EqualFold(strings.TrimSpace(s), name) {
			return Nature(i), nil
		}
	}
	return 0, fmt.Errorf("codec: unknown nature %q", s)
}

func (n Nature) MarshalText() ([]byte, error) {
	if !n.Valid() {
		return nil, fmt.Errorf("codec: nature %d out of range", uint8(n))
	}
	return []byte(n.String()), nil
}

func (n *Nature) UnmarshalText(b []byte) error {
	v, err := ParseNature(string(b))
	if err != nil {
		return err
	}
	*n = v
	return nil
}
