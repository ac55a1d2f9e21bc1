package mahjong

import (
	"errors"
	"reflect"
	"testing"

	"rules/dto"
)

func tileOf(t *testing.T, ord int) Tile {
	t.Helper()
	tile, err := TileFromOrdinal(ord)
	if err != nil {
		t.Fatalf("decode %d: %v", ord, err)
	}
	return tile
}

func bonusOf(t *testing.T, ords ...int) []Tile {
	t.Helper()
	out := make([]Tile, 0, len(ords))
	for _, ord := range ords {
		out = append(out, tileOf(t, ord))
	}
	return out
}

func TestScoreNotWinning(t *testing.T) {
	sc := NewScoreCalculator(OrdinalEastWind)
	points, lines, err := sc.Score(&AnalysisResult{}, 0, true, 0, 0, nil)
	if err != nil {
		t.Fatalf("score: %v", err)
	}
	if points != 0 || lines != nil {
		t.Fatalf("not winning expected 0 points, got %d %v", points, lines)
	}
}

func TestScoreThirteenOrphansFlat(t *testing.T) {
	sc := NewScoreCalculator(OrdinalEastWind)
	res := &AnalysisResult{IsWinning: true, IsThirteenOrphans: true}
	// 花牌与自摸都不影响十三幺的 8 分定额
	points, lines, err := sc.Score(res, 2, true, 0, 0, bonusOf(t, 601, 602, 701))
	if err != nil {
		t.Fatalf("score: %v", err)
	}
	if points != 8 {
		t.Fatalf("expected 8 points, got %d", points)
	}
	if len(lines) != 1 || lines[0] != "十三幺 +8" {
		t.Fatalf("unexpected breakdown: %v", lines)
	}
}

func TestScoreTraditionalWithWindTriplet(t *testing.T) {
	a := newTestAnalyzer()
	h := handOf(101, 101, 102, 103, 104, 201, 202, 203, 301, 302, 303, 401, 401, 401)
	res, err := a.Analyze(h)
	if err != nil {
		t.Fatalf("analyze: %v", err)
	}
	if !res.IsTraditional {
		t.Fatalf("expected traditional win, got %+v", res)
	}

	// 座位 0 的门风与东场场风落在同一组东风刻上，各计一次
	sc := NewScoreCalculator(OrdinalEastWind)
	points, lines, err := sc.Score(res, 0, true, 0, 0, nil)
	if err != nil {
		t.Fatalf("score: %v", err)
	}
	if points != 6 {
		t.Fatalf("expected 6 points, got %d (%v)", points, lines)
	}
	want := []string{"门清自摸 +3", "底分 +1", "门风刻 +1", "场风刻 +1"}
	if !reflect.DeepEqual(lines, want) {
		t.Fatalf("breakdown mismatch:\n got %v\nwant %v", lines, want)
	}
}

func TestScoreSevenPairsTier(t *testing.T) {
	sc := NewScoreCalculator(OrdinalEastWind)
	res := &AnalysisResult{IsWinning: true, IsSevenPairs: true, IsFullyConcealed: true}
	// 七对子档位不叠加自摸等标准型明细
	points, lines, err := sc.Score(res, 0, true, 0, 0, nil)
	if err != nil {
		t.Fatalf("score: %v", err)
	}
	if points != 4 {
		t.Fatalf("expected 4 points, got %d (%v)", points, lines)
	}
	want := []string{"底分 +1", "七对子 +3"}
	if !reflect.DeepEqual(lines, want) {
		t.Fatalf("breakdown mismatch:\n got %v\nwant %v", lines, want)
	}
}

func TestScorePureSuitFallbackTier(t *testing.T) {
	sc := NewScoreCalculator(OrdinalEastWind)
	res := &AnalysisResult{IsWinning: true, IsPureSuit: true}
	points, lines, err := sc.Score(res, 1, false, 0, 0, nil)
	if err != nil {
		t.Fatalf("score: %v", err)
	}
	if points != 4 {
		t.Fatalf("expected 4 points, got %d (%v)", points, lines)
	}
	if lines[len(lines)-1] != "清一色（非标准型） +3" {
		t.Fatalf("unexpected breakdown: %v", lines)
	}
}

func TestScoreFlowerAdjustments(t *testing.T) {
	sc := NewScoreCalculator(OrdinalEastWind)
	seven := &AnalysisResult{IsWinning: true, IsSevenPairs: true}

	cases := []struct {
		name   string
		seat   int
		bonus  []int
		points int
		line   string
	}{
		{"missing own flower", 0, []int{602}, 3, "无本位花 -1"},
		{"own flower pair", 0, []int{601, 701}, 5, "本位花成对 +1"},
		{"single color complete", 1, []int{601, 602, 603, 604}, 6, "红花齐四 +2"},
		{"mixed complete", 0, []int{601, 702, 603, 704}, 5, "花色混齐 +1"},
		{"all eight flowers", 0, []int{601, 602, 603, 604, 701, 702, 703, 704}, 12, "八花齐聚 +3"},
	}
	for _, c := range cases {
		points, lines, err := sc.Score(seven, c.seat, false, 0, 0, bonusOf(t, c.bonus...))
		if err != nil {
			t.Fatalf("%s: %v", c.name, err)
		}
		if points != c.points {
			t.Fatalf("%s: expected %d points, got %d (%v)", c.name, c.points, points, lines)
		}
		found := false
		for _, l := range lines {
			if l == c.line {
				found = true
			}
		}
		if !found {
			t.Fatalf("%s: breakdown %v missing %q", c.name, lines, c.line)
		}
	}
}

func TestScoreQuadAndMannerBonuses(t *testing.T) {
	sc := NewScoreCalculator(OrdinalEastWind)

	exposed := &AnalysisResult{
		IsWinning: true, IsTraditional: true, IsFullyExposed: true,
		Pair: 101, TripletRoots: []int{205}, SequenceRoots: []int{102, 201, 301},
	}
	points, lines, err := sc.Score(exposed, 2, false, 0, 0, nil)
	if err != nil {
		t.Fatalf("score exposed: %v", err)
	}
	if points != 3 {
		t.Fatalf("full-claim win expected 3 points, got %d (%v)", points, lines)
	}
	if lines[0] != "全求人 +2" {
		t.Fatalf("unexpected breakdown: %v", lines)
	}

	concealed := &AnalysisResult{
		IsWinning: true, IsTraditional: true, IsFullyConcealed: true,
		Pair: 101, TripletRoots: []int{205, 502}, SequenceRoots: []int{102, 201},
	}
	points, lines, err = sc.Score(concealed, 2, true, 1, 1, nil)
	if err != nil {
		t.Fatalf("score concealed: %v", err)
	}
	// 门清自摸 3 + 暗杠 2 + 明杠 1 + 箭刻 1 + 底分 1
	if points != 8 {
		t.Fatalf("expected 8 points, got %d (%v)", points, lines)
	}

	// 带暗杠就不再算全求人
	points, _, err = sc.Score(exposed, 2, false, 1, 0, nil)
	if err != nil {
		t.Fatalf("score exposed with quad: %v", err)
	}
	if points != 3 {
		t.Fatalf("self quad replacing full-claim expected 3 points, got %d", points)
	}
}

func TestScoreCompositionBonuses(t *testing.T) {
	sc := NewScoreCalculator(OrdinalNorthWind)

	allSeq := &AnalysisResult{
		IsWinning: true, IsTraditional: true, IsPureSuit: true, IsFullyConcealed: true,
		Pair: 109, SequenceRoots: []int{101, 102, 104, 107},
	}
	points, lines, err := sc.Score(allSeq, 0, false, 0, 0, nil)
	if err != nil {
		t.Fatalf("score all-sequence: %v", err)
	}
	// 底分 1 + 清一色 4 + 四顺子 1
	if points != 6 {
		t.Fatalf("expected 6 points, got %d (%v)", points, lines)
	}

	allTrip := &AnalysisResult{
		IsWinning: true, IsTraditional: true, IsHalfSuit: true,
		Pair: 305, TripletRoots: []int{301, 309, 404, 501},
	}
	points, lines, err = sc.Score(allTrip, 3, false, 0, 0, nil)
	if err != nil {
		t.Fatalf("score all-triplet: %v", err)
	}
	// 底分 1 + 混一色 2 + 对对和 2 + 箭刻 1 + 门风刻(北) 1 + 场风刻(北) 1
	if points != 8 {
		t.Fatalf("expected 8 points, got %d (%v)", points, lines)
	}
}

func TestScoreDeterministic(t *testing.T) {
	sc := NewScoreCalculator(OrdinalEastWind)
	res := &AnalysisResult{
		IsWinning: true, IsTraditional: true, IsFullyConcealed: true,
		Pair: 101, TripletRoots: []int{401, 502}, SequenceRoots: []int{201, 301},
	}
	bonus := bonusOf(t, 601, 701, 702)

	p1, l1, err := sc.Score(res, 0, true, 1, 0, bonus)
	if err != nil {
		t.Fatalf("score: %v", err)
	}
	p2, l2, err := sc.Score(res, 0, true, 1, 0, bonus)
	if err != nil {
		t.Fatalf("rescore: %v", err)
	}
	if p1 != p2 || !reflect.DeepEqual(l1, l2) {
		t.Fatalf("same inputs diverged: %d %v vs %d %v", p1, l1, p2, l2)
	}
}

func TestScoreValidation(t *testing.T) {
	sc := NewScoreCalculator(OrdinalEastWind)
	win := &AnalysisResult{IsWinning: true, IsSevenPairs: true}

	if _, _, err := sc.Score(nil, 0, false, 0, 0, nil); !errors.Is(err, dto.ErrInvalidArgument) {
		t.Fatalf("nil result: expected ErrInvalidArgument, got %v", err)
	}
	if _, _, err := sc.Score(win, 4, false, 0, 0, nil); !errors.Is(err, dto.ErrInvalidSeat) {
		t.Fatalf("seat 4: expected ErrInvalidSeat, got %v", err)
	}
	if _, _, err := sc.Score(win, 0, false, -1, 0, nil); !errors.Is(err, dto.ErrInvalidArgument) {
		t.Fatalf("negative quads: expected ErrInvalidArgument, got %v", err)
	}
	if _, _, err := sc.Score(win, 0, false, 0, 0, bonusOf(t, 101)); !errors.Is(err, dto.ErrInvalidTile) {
		t.Fatalf("non-bonus tile: expected ErrInvalidTile, got %v", err)
	}
}
