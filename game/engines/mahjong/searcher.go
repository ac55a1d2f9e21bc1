package mahjong

import (
	"sort"
	"strconv"
	"strings"
	"sync"
)

// Decomposition 一次成功分解的见证：雀头 + 各组根序数。
// 引擎只需要合法性的一个见证，不需要枚举所有分解
type Decomposition struct {
	Pair          int   // 雀头序数，0 表示无（纯分解调用）
	TripletRoots  []int // 刻子根序数
	SequenceRoots []int // 顺子根序数
}

func (d *Decomposition) clone() *Decomposition {
	if d == nil {
		return nil
	}
	return &Decomposition{
		Pair:          d.Pair,
		TripletRoots:  append([]int(nil), d.TripletRoots...),
		SequenceRoots: append([]int(nil), d.SequenceRoots...),
	}
}

type searchEntry struct {
	ok  bool
	dec *Decomposition
}

// Searcher 回溯分解器，带结果缓存。并发安全，可被多次分析调用共享
type Searcher struct {
	mu   sync.RWMutex
	memo map[string]searchEntry
}

func NewSearcher() *Searcher {
	return &Searcher{
		memo: make(map[string]searchEntry, 4096),
	}
}

// countsKey 计数集的规范键：升序 序数:张数 串接，末尾附需求组数
func countsKey(counts map[int]int, setsNeeded int) string {
	ords := make([]int, 0, len(counts))
	for ord, c := range counts {
		if c > 0 {
			ords = append(ords, ord)
		}
	}
	sort.Ints(ords)
	var b strings.Builder
	for _, ord := range ords {
		b.WriteString(strconv.Itoa(ord))
		b.WriteByte(':')
		b.WriteString(strconv.Itoa(counts[ord]))
		b.WriteByte(',')
	}
	b.WriteByte('#')
	b.WriteString(strconv.Itoa(setsNeeded))
	return b.String()
}

// Decompose 尝试把计数集恰好划分为 setsNeeded 组刻子/顺子，无剩余。
// 输入计数集不被修改，成功时返回新的分解记录
func (s *Searcher) Decompose(counts map[int]int, setsNeeded int) (*Decomposition, bool) {
	if setsNeeded < 0 || setsNeeded > 4 {
		return nil, false
	}
	key := countsKey(counts, setsNeeded)
	s.mu.RLock()
	if e, ok := s.memo[key]; ok {
		s.mu.RUnlock()
		return e.dec.clone(), e.ok
	}
	s.mu.RUnlock()

	work := make(map[int]int, len(counts))
	for ord, c := range counts {
		if c > 0 {
			work[ord] = c
		}
	}
	dec, ok := decompose(work, setsNeeded)

	s.mu.Lock()
	s.memo[key] = searchEntry{ok: ok, dec: dec.clone()}
	s.mu.Unlock()
	return dec, ok
}

// decompose 核心回溯。总是从最小序数着手：任何合法分解都可以重排为
// 先消解最小序数，因此无需在同层尝试其他起点。
// 刻子优先于顺子做平局裁决
func decompose(counts map[int]int, setsNeeded int) (*Decomposition, bool) {
	if setsNeeded == 0 {
		if len(counts) != 0 {
			return nil, false
		}
		return &Decomposition{}, true
	}
	if len(counts) == 0 {
		return nil, false
	}

	t := smallestOrdinal(counts)

	// 刻子
	if counts[t] >= 3 {
		removeN(counts, t, 3)
		if d, ok := decompose(counts, setsNeeded-1); ok {
			addN(counts, t, 3)
			d.TripletRoots = append([]int{t}, d.TripletRoots...)
			return d, true
		}
		addN(counts, t, 3)
	}

	// 顺子，仅数牌且点数 <=7
	if ordinalIsSuited(t) && t%100 <= 7 && counts[t+1] > 0 && counts[t+2] > 0 {
		removeN(counts, t, 1)
		removeN(counts, t+1, 1)
		removeN(counts, t+2, 1)
		if d, ok := decompose(counts, setsNeeded-1); ok {
			addN(counts, t, 1)
			addN(counts, t+1, 1)
			addN(counts, t+2, 1)
			d.SequenceRoots = append([]int{t}, d.SequenceRoots...)
			return d, true
		}
		addN(counts, t, 1)
		addN(counts, t+1, 1)
		addN(counts, t+2, 1)
	}

	return nil, false
}

// DecomposeWithPair 按升序逐一尝试每个张数 >=2 的序数作雀头，
// 余下的牌交给 Decompose；第一个成功的雀头即为结果
func (s *Searcher) DecomposeWithPair(counts map[int]int, setsNeeded int) (*Decomposition, bool) {
	ords := make([]int, 0, len(counts))
	for ord, c := range counts {
		if c >= 2 {
			ords = append(ords, ord)
		}
	}
	sort.Ints(ords)

	for _, pair := range ords {
		rest := make(map[int]int, len(counts))
		for ord, c := range counts {
			if c > 0 {
				rest[ord] = c
			}
		}
		removeN(rest, pair, 2)
		if d, ok := s.Decompose(rest, setsNeeded); ok {
			d.Pair = pair
			return d, true
		}
	}
	return nil, false
}

func smallestOrdinal(counts map[int]int) int {
	min := -1
	for ord := range counts {
		if min == -1 || ord < min {
			min = ord
		}
	}
	return min
}

func removeN(counts map[int]int, ord, n int) {
	counts[ord] -= n
	if counts[ord] <= 0 {
		delete(counts, ord)
	}
}

func addN(counts map[int]int, ord, n int) {
	counts[ord] += n
}
