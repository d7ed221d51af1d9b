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

// Gender 為個體性別。
type Gender uint8

const (
	Male Gender = iota
	Female
	Genderless
)

func (g Gender) String() string {
	switch g {
	case Male:
		return "male"
	case Female:
		return "female"
	case Genderless:
		return "genderless"
	default:
		return fmt.Sprintf("Gender(%d)", uint8(g))
	}
}

// Opposite 回傳異性；無性別回傳自身。
func (g Gender) Opposite() Gender {
	switch g {
	case Male:
		return Female
	case Female:
		return Male
	default:
		return g
	}
}

func ParseGender(s string) (Gender, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "male", "m":
		return Male, nil
	case "female", "f":
		return Female, nil
	case "genderless", "none", "-":
		return Genderless, nil
	}
	return 0, fmt.Errorf("codec: unknown gender %q", s)
}

func (g Gender) MarshalText() ([]byte, error) { return []byte(g.String()), nil }

func (g *Gender) UnmarshalText(b []byte) error {
	v, err := ParseGender(string(b))
	if err != nil {
		return err
	}
	*g = v
	return nil
}

// GenderRatio 為物種的性別比例，值即為 PID 低 8 bits 的門檻。
//
// 五個門檻類別 (0, 31, 63, 127, 191) 依 pid&0xFF < 門檻 判定為母，
// 另有兩個固定類別：FemaleOnly (254) 與 NoGender (255)。
type GenderRatio uint8

const (
	MaleOnly   GenderRatio = 0
	SevenToOne GenderRatio = 31  // 7 公 : 1 母
	ThreeToOne GenderRatio = 63  // 3 : 1
	OneToOne   GenderRatio = 127 // 1 : 1
	OneToThree GenderRatio = 191 // 1 : 3
	FemaleOnly GenderRatio = 254
	NoGender   GenderRatio = 255 // 無性別物種
)

var ratioNames = map[GenderRatio]string{
	MaleOnly:   "male_only",
	SevenToOne: "7:1",
	ThreeToOne: "3:1",
	OneToOne:   "1:1",
	OneToThree: "1:3",
	FemaleOnly: "female_only",
	NoGender:   "genderless",
}

func (r GenderRatio) Valid() bool {
	_, ok := ratioNames[r]
	return ok
}

func (r GenderRatio) String() string {
	if s, ok := ratioNames[r]; ok {
		return s
	}
	return fmt.Sprintf("GenderRatio(%d)", uint8(r))
}

// HasMultipleGenders 只有四個混合比例為 true。
func (r GenderRatio) HasMultipleGenders() bool {
	switch r {
	case SevenToOne, ThreeToOne, OneToOne, OneToThree:
		return true
	}
	return false
}

// GenderFromPID 依比例類別判定性別。
func GenderFromPID(pid uint32, r GenderRatio) Gender {
	switch r {
	case NoGender:
		return Genderless
	case FemaleOnly:
		return Female
	case MaleOnly:
		return Male
	}
	if uint8(pid&0xFF) < uint8(r) {
		return Female
	}
	return Male
}

func ParseGenderRatio(s string) (GenderRatio, error) {
	k := strings.ToLower(strings.TrimSpace(s))
	for r, name := range ratioNames {
		if k == name {
			return r, nil
		}
	}
	return 0, fmt.Errorf("codec: unknown gender ratio %q", s)
}

func (r GenderRatio) MarshalText() ([]byte, error) {
	if !r.Valid() {
		return nil, fmt.Errorf("codec: gender ratio %d not supported", uint8(r))
	}
	return []byte(r.String()), nil
}

func (r *GenderRatio) UnmarshalText(b []byte) error {
	v, err := ParseGenderRatio(string(b))
	if err != nil {
		return err
	}
	*r = v
	return nil
}
