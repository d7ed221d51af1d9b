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

import "fmt"

// MaxIV 為個體值上限。
const MaxIV = 31

// IVs 為六項個體值，每項 0..31。
type IVs struct {
	HP  uint8 `json:"hp" yaml:"hp"`
	Atk uint8 `json:"atk" yaml:"atk"`
	Def uint8 `json:"def" yaml:"def"`
	SpA uint8 `json:"spa" yaml:"spa"`
	SpD uint8 `json:"spd" yaml:"spd"`
	Spe uint8 `json:"spe" yaml:"spe"`
}

// IVsFromWords 以韌體兩次亂數的 16-bit 字解碼：
//
//	iv1: bit 0-4 HP, 5-9 Atk, 10-14 Def
//	iv2: bit 0-4 Spe, 5-9 SpA, 10-14 SpD
//
// 兩個字的 bit 15 不使用。
func IVsFromWords(iv1, iv2 uint16) IVs {
	return IVs{
		HP:  uint8(iv1 & 0x1F),
		Atk: uint8(iv1 >> 5 & 0x1F),
		Def: uint8(iv1 >> 10 & 0x1F),
		Spe: uint8(iv2 & 0x1F),
		SpA: uint8(iv2 >> 5 & 0x1F),
		SpD: uint8(iv2 >> 10 & 0x1F),
	}
}

// IVsFromBox 以盒子資料中的 32-bit 個體值字解碼：
//
//	bit 0-4 HP, 5-9 Atk, 10-14 Def, 15-19 Spe, 20-24 SpA, 25-29 SpD
//
// 等同 (iv1 & 0x7FFF) | (iv2 & 0x7FFF) << 15；bit 30-31（蛋 / 特性旗標）忽略。
func IVsFromBox(word uint32) IVs {
	return IVsFromWords(uint16(word&0x7FFF), uint16(word>>15&0x7FFF))
}

// Words 為 IVsFromWords 的反函數（bit 15 為 0）。
func (v IVs) Words() (uint16, uint16) {
	iv1 := uint16(v.HP&0x1F) | uint16(v.Atk&0x1F)<<5 | uint16(v.Def&0x1F)<<10
	iv2 := uint16(v.Spe&0x1F) | uint16(v.SpA&0x1F)<<5 | uint16(v.SpD&0x1F)<<10
	return iv1, iv2
}

// Box 為 IVsFromBox 的反函數；同時作為相等比較用的 key。
func (v IVs) Box() uint32 {
	iv1, iv2 := v.Words()
	return uint32(iv1) | uint32(iv2)<<15
}

// Array 依 HP, Atk, Def, SpA, SpD, Spe 順序回傳。
func (v IVs) Array() [6]uint8 {
	return [6]uint8{v.HP, v.Atk, v.Def, v.SpA, v.SpD, v.Spe}
}

// IVsFromArray 為 Array 的反函數。
func IVsFromArray(a [6]uint8) IVs {
	return IVs{HP: a[0], Atk: a[1], Def: a[2], SpA: a[3], SpD: a[4], Spe: a[5]}
}

// Valid 檢查每項都在 0..31。
func (v IVs) Valid() bool {
	for _, x := range v.Array() {
		if x > MaxIV {
			return false
		}
	}
	return true
}

func (v IVs) String() string {
	return fmt.Sprintf("%d/%d/%d/%d/%d/%d", v.HP, v.Atk, v.Def, v.SpA, v.SpD, v.Spe)
}

// PerfectIVs 為六項皆 31。
func PerfectIVs() IVs {
	return IVs{MaxIV, MaxIV, MaxIV, MaxIV, MaxIV, MaxIV}
}

// IVRange 為包含上下界的範圍過濾。零值不可直接使用，請用 FullIVRange。
type IVRange struct {
	Min IVs `json:"min" yaml:"min"`
	Max IVs `json:"max" yaml:"max"`
}

// FullIVRange 接受任何個體值。
func FullIVRange() IVRange {
	return IVRange{Max: PerfectIVs()}
}

// Contains 回傳 v 是否落在範圍內（包含邊界）。
func (r IVRange) Contains(v IVs) bool {
	lo, hi, x := r.Min.Array(), r.Max.Array(), v.Array()
	for i := range x {
		if x[i] < lo[i] || x[i] > hi[i] {
			return false
		}
	}
	return true
}

// Validate 檢查上下界合法。
func (r IVRange) Validate() error {
	if !r.Min.Valid() || !r.Max.Valid() {
		return fmt.Errorf("codec: iv bound above %d", MaxIV)
	}
	lo, hi := r.Min.Array(), r.Max.Array()
	for i := range lo {
		if lo[i] > hi[i] {
			return fmt.Errorf("codec: iv min %s exceeds max %s", r.Min, r.Max)
		}
	}
	return nil
}
