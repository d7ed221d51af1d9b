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
	"slices"

	"github.com/zintix-labs/rnglab/sdk/sampler"
)

// EncounterSlot 為遭遇表的欄位 0..11。
type EncounterSlot uint8

// SlotCount 為陸地遭遇表的欄位數。
const SlotCount = 12

func (s EncounterSlot) Valid() bool { return s < SlotCount }

// LandWeights 為陸地遭遇表每個欄位在 100 格中的佔比。
var LandWeights = [SlotCount]uint8{20, 20, 10, 10, 10, 10, 5, 5, 4, 4, 1, 1}

// SlotTable 將 Random()%100 映射到欄位。
type SlotTable struct {
	weights [SlotCount]uint8
	lut     sampler.LUT
}

var landTable = mustSlotTable(LandWeights)

// LandTable 回傳預設陸地遭遇表。
func LandTable() *SlotTable { return landTable }

// NewSlotTable 以 12 個權重建立遭遇表，總和必須為 100。
func NewSlotTable(weights [SlotCount]uint8) (*SlotTable, error) {
	sum := 0
	for _, w := range weights {
		sum += int(w)
	}
	if sum != 100 {
		return nil, fmt.Errorf("codec: slot weights must sum to 100, got %d", sum)
	}
	lut, err := sampler.NewLUT(weights[:])
	if err != nil {
		return nil, err
	}
	return &SlotTable{weights: weights, lut: lut}, nil
}

func mustSlotTable(weights [SlotCount]uint8) *SlotTable {
	t, err := NewSlotTable(weights)
	if err != nil {
		panic(err)
	}
	return t
}

// Slot 回傳 rand % 100 所落的欄位。
func (t *SlotTable) Slot(rand uint16) EncounterSlot {
	return EncounterSlot(t.lut.At(uint32(rand % 100)))
}

// Weights 回傳建表時的權重。
func (t *SlotTable) Weights() [SlotCount]uint8 { return t.weights }

// Band 回傳欄位佔據的 rand%100 區間 [lo, hi)。
func (t *SlotTable) Band(s EncounterSlot) (lo, hi int, ok bool) {
	return t.lut.Bounds(int(s))
}

// SlotAllowed 回傳 s 是否在限制清單內；清單為空表示不限制。
func SlotAllowed(allowed []EncounterSlot, s EncounterSlot) bool {
	if len(allowed) == 0 {
		return true
	}
	return slices.Contains(allowed, s)
}
