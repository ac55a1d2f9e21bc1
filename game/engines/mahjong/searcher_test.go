package mahjong

import (
	"math/rand"
	"testing"
)

func TestDecomposeEmptyAtZeroSets(t *testing.T) {
	s := NewSearcher()
	if _, ok := s.Decompose(map[int]int{}, 0); !ok {
		t.Fatalf("empty counts with setsNeeded=0 expected success")
	}
	if _, ok := s.Decompose(countsOf(101), 0); ok {
		t.Fatalf("leftover tile with setsNeeded=0 expected failure")
	}
}

func TestDecomposeTripletFirstTieBreak(t *testing.T) {
	// 111 222 333 万既可拆三刻子也可拆三顺子，按裁决取刻子
	s := NewSearcher()
	d, ok := s.Decompose(countsOf(101, 101, 101, 102, 102, 102, 103, 103, 103), 3)
	if !ok {
		t.Fatalf("decompose expected success")
	}
	if len(d.TripletRoots) != 3 || len(d.SequenceRoots) != 0 {
		t.Fatalf("expected 3 triplets, got triplets=%v sequences=%v", d.TripletRoots, d.SequenceRoots)
	}
}

func TestDecomposeSequenceFallback(t *testing.T) {
	s := NewSearcher()
	d, ok := s.Decompose(countsOf(101, 102, 103, 201, 202, 203), 2)
	if !ok {
		t.Fatalf("decompose expected success")
	}
	if len(d.SequenceRoots) != 2 || d.SequenceRoots[0] != 101 || d.SequenceRoots[1] != 201 {
		t.Fatalf("sequence roots expected [101 201], got %v", d.SequenceRoots)
	}
}

func TestDecomposeHonorsNeverSequence(t *testing.T) {
	s := NewSearcher()
	if _, ok := s.Decompose(countsOf(401, 402, 403), 1); ok {
		t.Fatalf("winds must not form a sequence")
	}
}

func TestDecomposeInputNotMutated(t *testing.T) {
	s := NewSearcher()
	c := countsOf(101, 102, 103)
	if _, ok := s.Decompose(c, 1); !ok {
		t.Fatalf("decompose expected success")
	}
	if c[101] != 1 || c[102] != 1 || c[103] != 1 {
		t.Fatalf("input counts mutated: %v", c)
	}
}

func TestDecomposeWithPairPicksSmallestPair(t *testing.T) {
	// 101 与 401 都能当雀头，但只有 101 让余下的牌成立
	s := NewSearcher()
	c := countsOf(101, 101, 201, 201, 202, 202, 203, 203, 301, 302, 303, 401, 401, 401)
	d, ok := s.DecomposeWithPair(c, 4)
	if !ok {
		t.Fatalf("decompose with pair expected success")
	}
	if d.Pair != 101 {
		t.Fatalf("pair expected 101, got %d", d.Pair)
	}
	if len(d.TripletRoots)+len(d.SequenceRoots) != 4 {
		t.Fatalf("expected 4 groups, got triplets=%v sequences=%v", d.TripletRoots, d.SequenceRoots)
	}
}

func TestDecomposeMemoizedResultIsolated(t *testing.T) {
	s := NewSearcher()
	c := countsOf(101, 102, 103, 201, 202, 203)
	d1, _ := s.Decompose(c, 2)
	d1.SequenceRoots[0] = 999
	d2, _ := s.Decompose(c, 2)
	if d2.SequenceRoots[0] != 101 {
		t.Fatalf("cached decomposition leaked mutation: %v", d2.SequenceRoots)
	}
}

// 随机取 4 组（刻子或顺子）加一对构造 14 张手牌，分解必须成立
func TestDecomposeRandomValidHands(t *testing.T) {
	s := NewSearcher()
	rng := rand.New(rand.NewSource(7))

	suitedOrdinals := func() []int {
		var out []int
		for suit := 1; suit <= 3; suit++ {
			for rank := 1; rank <= 9; rank++ {
				out = append(out, suit*100+rank)
			}
		}
		return out
	}()
	groupable := append(append([]int(nil), suitedOrdinals...),
		401, 402, 403, 404, 501, 502, 503)

	for iter := 0; iter < 200; iter++ {
		used := make(map[int]int)
		take := func(ord, n int) bool {
			if used[ord]+n > 4 {
				return false
			}
			used[ord] += n
			return true
		}

		groups := 0
		for guard := 0; groups < 4 && guard < 1000; guard++ {
			if rng.Intn(2) == 0 {
				ord := groupable[rng.Intn(len(groupable))]
				if take(ord, 3) {
					groups++
				}
			} else {
				ord := suitedOrdinals[rng.Intn(len(suitedOrdinals))]
				if ord%100 <= 7 && used[ord] < 4 && used[ord+1] < 4 && used[ord+2] < 4 {
					take(ord, 1)
					take(ord+1, 1)
					take(ord+2, 1)
					groups++
				}
			}
		}
		if groups < 4 {
			t.Fatalf("iter %d: failed to build groups", iter)
		}
		for guard := 0; ; guard++ {
			ord := groupable[rng.Intn(len(groupable))]
			if take(ord, 2) {
				break
			}
			if guard > 1000 {
				t.Fatalf("iter %d: failed to place pair", iter)
			}
		}

		d, ok := s.DecomposeWithPair(used, 4)
		if !ok {
			t.Fatalf("iter %d: valid hand failed to decompose: %v", iter, used)
		}
		if got := len(d.TripletRoots) + len(d.SequenceRoots); got != 4 {
			t.Fatalf("iter %d: expected 4 groups, got %d", iter, got)
		}
		if d.Pair == 0 {
			t.Fatalf("iter %d: missing pair", iter)
		}
	}
}
