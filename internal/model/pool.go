package model

import (
	"strconv"
	"strings"
)

// PoolEntry is one ranked number and its occurrence count.
type PoolEntry struct {
	Number int `json:"number"`
	Count  int `json:"count"`
}

// RankedPool is a list of numbers ordered by occurrence count
// descending, ties broken by ascending number.
type RankedPool []PoolEntry

// Numbers returns the pool's numbers in rank order.
func (p RankedPool) Numbers() []int {
	nums := make([]int, len(p))
	for i, e := range p {
		nums[i] = e.Number
	}
	return nums
}

// Contains reports whether n is a member of the pool.
func (p RankedPool) Contains(n int) bool {
	for _, e := range p {
		if e.Number == n {
			return true
		}
	}
	return false
}

// TotalCount sums the occurrence counts of every member.
func (p RankedPool) TotalCount() int {
	total := 0
	for _, e := range p {
		total += e.Count
	}
	return total
}

// PositionPools holds one ranked pool per ascending-sorted ticket
// position; index 0 is the smallest number's slot.
type PositionPools []RankedPool

// Combo is an ascending fixed-size subset of a draw's main numbers.
type Combo []int

// Key returns the canonical identity of the combo, e.g. "3-14-22".
func (c Combo) Key() string {
	parts := make([]string, len(c))
	for i, n := range c {
		parts[i] = strconv.Itoa(n)
	}
	return strings.Join(parts, "-")
}

// ComboCount pairs a combo with its training occurrence count.
type ComboCount struct {
	Combo Combo `json:"combo"`
	Count int   `json:"count"`
}

// ComboPool holds the proven combos retained from a training slice.
type ComboPool struct {
	members       map[string]int
	Combos        []ComboCount
	Size          int
	MinOccurrence int
}

// NewComboPool indexes ranked combos for O(1) membership checks.
func NewComboPool(size, minOccurrence int, combos []ComboCount) ComboPool {
	members := make(map[string]int, len(combos))
	for _, cc := range combos {
		members[cc.Combo.Key()] = cc.Count
	}
	return ComboPool{
		members:       members,
		Combos:        combos,
		Size:          size,
		MinOccurrence: minOccurrence,
	}
}

// Contains reports whether the combo was proven in training.
func (p ComboPool) Contains(c Combo) bool {
	_, ok := p.members[c.Key()]
	return ok
}

// Len returns the number of proven combos.
func (p ComboPool) Len() int { return len(p.Combos) }
