// SPDX-License-Identifier: MIT

package sketch

import "github.com/katalvlaran/pdsketch/pd"

// cursor is the navigation state of a Sketch: an index and the cumulative
// mass Σ Delta(0..index). It moves one adjacent index at a time, so a scan
// in increasing order costs O(|Delta|) per step and a jump costs time
// proportional to the distance travelled.
type cursor struct {
	index int
	mass  pd.Plan
}

// reset places the cursor at record 0, or clears it when records is empty.
func (c *cursor) reset(records []Record) {
	c.index = 0
	if len(records) == 0 {
		c.mass = nil

		return
	}
	c.mass = records[0].Delta.Clone()
}

// moveTo walks the cursor to target, which the caller has range-checked.
func (c *cursor) moveTo(records []Record, target int, mode BackwardMode) {
	for c.index < target {
		c.forward(records)
	}
	for c.index > target {
		c.backward(records, mode)
	}
}

func (c *cursor) forward(records []Record) {
	c.index++
	c.mass.Merge(records[c.index].Delta, 1)
}

func (c *cursor) backward(records []Record, mode BackwardMode) {
	if mode == BackwardLegacy {
		c.index--
		c.mass.Merge(records[c.index].Delta, -1)

		return
	}
	c.mass.Merge(records[c.index].Delta, -1)
	c.index--
}
