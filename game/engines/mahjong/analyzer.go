package mahjong

import (
	"fmt"
	"sort"
	"strconv"
	"strings"

	"rules/common/cache"
	"rules/dto"
)

// AnalysisResult 一次和牌分析的输出，每次调用新建，返回后不再变更
type AnalysisResult struct {
	IsWinning         bool
	IsTraditional     bool // 4 组 + 雀头的标准型
	IsSevenPairs      bool
	IsThirteenOrphans bool

	IsPureSuit       bool // 清一色
	IsHalfSuit       bool // 混一色
	IsFullyConcealed bool // 门清（无副露）
	IsFullyExposed   bool // 全副露（4 组都是鸣牌）

	BonusTileCount int

	// 标准型分解明细，副露与暗杠已并入
	Pair          int
	TripletRoots  []int // 含鸣得的刻子与所有杠
	SequenceRoots []int // 含鸣得的顺子，按根序数
}

func (r *AnalysisResult) clone() *AnalysisResult {
	if r == nil {
		return nil
	}
	out := *r
	out.TripletRoots = append([]int(nil), r.TripletRoots...)
	out.SequenceRoots = append([]int(nil), r.SequenceRoots...)
	return &out
}

// Analyzer 和牌分析器。无进程级状态，由组装方构造一次后按引用传入各处
type Analyzer struct {
	searcher *Searcher
	results  *cache.GeneralCache // 可为 nil，关闭缓存
}

func NewAnalyzer(searcher *Searcher, results *cache.GeneralCache) *Analyzer {
	if searcher == nil {
		searcher = NewSearcher()
	}
	return &Analyzer{searcher: searcher, results: results}
}

// Analyze 判定手牌快照是否构成和牌并给出结构分解。
// 没有和牌形不是错误；只有序数非法或组数对不上才报错
func (a *Analyzer) Analyze(hand *Hand) (*AnalysisResult, error) {
	if hand == nil {
		return nil, dto.ErrInvalidArgument
	}

	for _, ord := range hand.allOrdinals() {
		if _, err := TileFromOrdinal(ord); err != nil {
			return nil, err
		}
	}

	exposed := hand.ExposedGroups()
	setsNeeded := 4 - exposed
	if setsNeeded < 0 {
		return nil, fmt.Errorf("%w: %d exposed groups", dto.ErrMalformedHand, exposed)
	}

	key := analysisKey(hand)
	if a.results != nil {
		if v, ok := a.results.Get(key); ok {
			if cached, ok := v.(*AnalysisResult); ok {
				return cached.clone(), nil
			}
		}
	}

	res := a.analyze(hand, exposed, setsNeeded)

	if a.results != nil {
		a.results.Set(key, res.clone())
	}
	return res, nil
}

func (a *Analyzer) analyze(hand *Hand, exposed, setsNeeded int) *AnalysisResult {
	res := &AnalysisResult{
		BonusTileCount:   len(hand.Bonus),
		IsFullyConcealed: len(hand.Melds) == 0,
		IsFullyExposed:   len(hand.Melds) == 4,
	}

	counts, total := hand.concealedCounts()
	// 暗牌张数 = 雀头 2 + 剩余组 3n；对不上按未和牌处理，
	// 宽松路径：外围系统可能在非和牌时刻调用
	if total != 3*setsNeeded+2 {
		return res
	}

	// 特殊牌型只在全门清（无任何成形组）时才有定义
	if exposed == 0 {
		if IsSevenPairs(counts) {
			res.IsSevenPairs = true
		} else if IsThirteenOrphans(counts) {
			res.IsThirteenOrphans = true
		}
	}

	if !res.IsSevenPairs && !res.IsThirteenOrphans {
		if dec, ok := a.searcher.DecomposeWithPair(counts, setsNeeded); ok {
			res.IsTraditional = true
			res.Pair = dec.Pair
			res.TripletRoots = dec.TripletRoots
			res.SequenceRoots = dec.SequenceRoots
			a.foldExposed(hand, res)
		}
	}

	pure, half := suitPurity(hand.functionalOrdinals())
	res.IsPureSuit = pure
	res.IsHalfSuit = half

	res.IsWinning = res.IsTraditional || res.IsSevenPairs || res.IsThirteenOrphans ||
		(res.IsPureSuit && !res.IsTraditional && !res.IsSevenPairs && !res.IsThirteenOrphans)
	return res
}

// foldExposed 把暗杠与副露并入分解明细：
// 刻子/杠按序数去重并入刻子表，顺子按根序数并入顺子表
func (a *Analyzer) foldExposed(hand *Hand, res *AnalysisResult) {
	seen := make(map[int]struct{}, len(res.TripletRoots))
	for _, ord := range res.TripletRoots {
		seen[ord] = struct{}{}
	}
	addTriplet := func(ord int) {
		if _, ok := seen[ord]; ok {
			return
		}
		seen[ord] = struct{}{}
		res.TripletRoots = append(res.TripletRoots, ord)
	}

	for _, q := range hand.SelfQuads {
		addTriplet(q)
	}
	for _, m := range hand.Melds {
		switch m.Kind {
		case MeldTriplet, MeldQuad:
			addTriplet(m.Root())
		case MeldSequence:
			res.SequenceRoots = append(res.SequenceRoots, m.Root())
		}
	}
	sort.Ints(res.TripletRoots)
	sort.Ints(res.SequenceRoots)
}

// suitPurity 扫描全部功能牌判定清一色/混一色。
// 清一色：只出现一种花色且为数牌；
// 混一色：恰一种数牌花色加至少一门字牌，且功能牌不少于 14 张
func suitPurity(ordinals []int) (pure bool, half bool) {
	if len(ordinals) == 0 {
		return false, false
	}
	suits := make(map[Suit]struct{}, 4)
	for _, ord := range ordinals {
		suits[Suit(ord/100)] = struct{}{}
	}

	numbered := 0
	honors := 0
	for s := range suits {
		switch {
		case s >= SuitCharacters && s <= SuitBamboos:
			numbered++
		case s == SuitWinds || s == SuitDragons:
			honors++
		}
	}

	if len(suits) == 1 && numbered == 1 {
		return true, false
	}
	if numbered == 1 && honors >= 1 && numbered+honors == len(suits) && len(ordinals) >= 14 {
		return false, true
	}
	return false, false
}

// analysisKey 手牌快照的规范缓存键
func analysisKey(hand *Hand) string {
	var b strings.Builder
	b.WriteString("c:")
	ords := append([]int(nil), hand.Concealed...)
	if hand.Drawn != nil {
		ords = append(ords, *hand.Drawn)
	}
	sort.Ints(ords)
	for _, ord := range ords {
		b.WriteString(strconv.Itoa(ord))
		b.WriteByte(',')
	}
	b.WriteString("q:")
	quads := append([]int(nil), hand.SelfQuads...)
	sort.Ints(quads)
	for _, ord := range quads {
		b.WriteString(strconv.Itoa(ord))
		b.WriteByte(',')
	}
	b.WriteString("m:")
	for _, m := range hand.Melds {
		b.WriteString(strconv.Itoa(int(m.Kind)))
		b.WriteByte('@')
		b.WriteString(strconv.Itoa(m.Root()))
		b.WriteByte(',')
	}
	b.WriteString("b:")
	b.WriteString(strconv.Itoa(len(hand.Bonus)))
	return b.String()
}
