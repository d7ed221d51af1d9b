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

package codec

import (
	"fmt"
	"strings"
)

// ShinyThreshold 為異色判定的上限（不含）。
const ShinyThreshold = 8

// Shiny 判定 tid ^ sid ^ pidHigh ^ pidLow < 8。
func Shiny(pid uint32, tid, sid uint16) bool {
	return ShinyValue(pid, tid, sid) < ShinyThreshold
}

// ShinyValue 回傳異色判定值本身。
func ShinyValue(pid uint32, tid, sid uint16) uint16 {
	return tid ^ sid ^ uint16(pid>>16) ^ uint16(pid)
}

// Ability 為特性欄位（PID 最低位）。
type Ability uint8

const (
	AbilityFirst Ability = iota
	AbilitySecond
)

// AbilityFromPID 回傳 pid & 1。
func AbilityFromPID(pid uint32) Ability {
	return Ability(pid & 1)
}

func (a Ability) String() string {
	switch a {
	case AbilityFirst:
		return "first"
	case AbilitySecond:
		return "second"
	}
	return fmt.Sprintf("Ability(%d)", uint8(a))
}

func ParseAbility(s string) (Ability, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "first", "0":
		return AbilityFirst, nil
	case "second", "1":
		return AbilitySecond, nil
	}
	return 0, fmt.Errorf("codec: unknown ability %q", s)
}

func (a Ability) MarshalText() ([]byte, error) { return []byte(a.String()), nil }

func (a *Ability) UnmarshalText(b []byte) error {
	v, err := ParseAbility(string(b))
	if err != nil {
		return err
	}
	*a = v
	return nil
}
