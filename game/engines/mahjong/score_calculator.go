package mahjong

import (
	"fmt"

	"rules/dto"
)

// ScoreCalculator 计分器。场风由组装方配置注入，调用方只传座位
type ScoreCalculator struct {
	roundWind int // 场风序数 401-404
}

func NewScoreCalculator(roundWind int) *ScoreCalculator {
	if roundWind < OrdinalEastWind || roundWind > OrdinalNorthWind {
		roundWind = OrdinalEastWind
	}
	return &ScoreCalculator{roundWind: roundWind}
}

// Score 由分析结果与辅助事实算出点数与人类可读的计分明细。
// 纯函数：相同输入恒得相同输出。
// 档位严格按序互斥：未和牌 → 十三幺 → 七对子 → 非标准清一色 → 标准型
func (sc *ScoreCalculator) Score(res *AnalysisResult, seat int, selfDrawn bool, selfQuads, claimedQuads int, bonus []Tile) (int, []string, error) {
	if res == nil {
		return 0, nil, dto.ErrInvalidArgument
	}
	if seat < 0 || seat > 3 {
		return 0, nil, fmt.Errorf("%w: %d", dto.ErrInvalidSeat, seat)
	}
	if selfQuads < 0 || claimedQuads < 0 {
		return 0, nil, fmt.Errorf("%w: negative quad count", dto.ErrInvalidArgument)
	}
	for _, t := range bonus {
		if !t.IsBonus() {
			return 0, nil, fmt.Errorf("%w: %v is not a bonus tile", dto.ErrInvalidTile, t)
		}
	}

	// 档位 1：未和牌
	if !res.IsWinning {
		return 0, nil, nil
	}

	// 档位 2：十三幺固定 8 分，花牌不参与计分
	if res.IsThirteenOrphans {
		return 8, []string{"十三幺 +8"}, nil
	}

	// 花牌调整并入 1 分底分
	adj, bonusLines := sc.flowerAdjustment(seat, bonus)
	afterBonus := 1 + adj
	baseLines := append([]string{"底分 +1"}, bonusLines...)

	// 档位 3：七对子
	if res.IsSevenPairs {
		lines := append(baseLines, "七对子 +3")
		return afterBonus + 3, lines, nil
	}

	// 档位 4：清一色但未构成标准型的兜底路径
	if !res.IsTraditional {
		lines := append(baseLines, "清一色（非标准型） +3")
		return afterBonus + 3, lines, nil
	}

	// 档位 5：标准型，明细按 和牌方式/杠 → 花牌 → 牌型/字牌 排列
	points := afterBonus
	var mannerLines, compLines []string

	if selfDrawn {
		if res.IsFullyConcealed {
			points += 3
			mannerLines = append(mannerLines, "门清自摸 +3")
		} else {
			points++
			mannerLines = append(mannerLines, "自摸 +1")
		}
	} else if res.IsFullyExposed && selfQuads == 0 {
		points += 2
		mannerLines = append(mannerLines, "全求人 +2")
	}
	if selfQuads > 0 {
		points += 2 * selfQuads
		mannerLines = append(mannerLines, fmt.Sprintf("暗杠×%d +%d", selfQuads, 2*selfQuads))
	}
	if claimedQuads > 0 {
		points += claimedQuads
		mannerLines = append(mannerLines, fmt.Sprintf("明杠×%d +%d", claimedQuads, claimedQuads))
	}

	switch {
	case res.IsPureSuit:
		points += 4
		compLines = append(compLines, "清一色 +4")
	case res.IsHalfSuit:
		points += 2
		compLines = append(compLines, "混一色 +2")
	}
	// 四组全顺与四组全刻按构造互斥
	if len(res.SequenceRoots) == 4 {
		points++
		compLines = append(compLines, "四顺子 +1")
	} else if len(res.TripletRoots) == 4 {
		points += 2
		compLines = append(compLines, "对对和 +2")
	}

	if hasDragonTriplet(res.TripletRoots) {
		points++
		compLines = append(compLines, "箭刻 +1")
	}
	seatWind := OrdinalEastWind + seat
	if containsOrdinal(res.TripletRoots, seatWind) {
		points++
		compLines = append(compLines, "门风刻 +1")
	}
	if containsOrdinal(res.TripletRoots, sc.roundWind) {
		points++
		compLines = append(compLines, "场风刻 +1")
	}

	lines := make([]string, 0, len(mannerLines)+len(baseLines)+len(compLines))
	lines = append(lines, mannerLines...)
	lines = append(lines, baseLines...)
	lines = append(lines, compLines...)
	return points, lines, nil
}

// flowerAdjustment 花牌调整。每色 1-4 为编号花，本位花 = 座位+1：
// 持花而无本位花罚 1 分，本位花成对加 1 分；
// 单色齐四加 2 分，跨色凑齐 1-4 加 1 分，八花齐聚再加 3 分
func (sc *ScoreCalculator) flowerAdjustment(seat int, bonus []Tile) (int, []string) {
	if len(bonus) == 0 {
		return 0, nil
	}

	ownRank := seat + 1
	ownCount := 0
	var red, blue [9]bool // 按点数标记，1-8
	for _, t := range bonus {
		if t.Rank == ownRank {
			ownCount++
		}
		if t.Rank >= 1 && t.Rank <= 8 {
			if t.Suit == SuitRedBonus {
				red[t.Rank] = true
			} else {
				blue[t.Rank] = true
			}
		}
	}

	adj := 0
	var lines []string

	if ownCount == 0 {
		adj--
		lines = append(lines, "无本位花 -1")
	} else if ownCount >= 2 {
		adj++
		lines = append(lines, "本位花成对 +1")
	}

	redFull, blueFull, mixedFull := true, true, true
	for r := 1; r <= 4; r++ {
		redFull = redFull && red[r]
		blueFull = blueFull && blue[r]
		mixedFull = mixedFull && (red[r] || blue[r])
	}
	if redFull {
		adj += 2
		lines = append(lines, "红花齐四 +2")
	}
	if blueFull {
		adj += 2
		lines = append(lines, "蓝花齐四 +2")
	}
	if mixedFull && !redFull && !blueFull {
		adj++
		lines = append(lines, "花色混齐 +1")
	}
	if redFull && blueFull {
		adj += 3
		lines = append(lines, "八花齐聚 +3")
	}

	return adj, lines
}

func hasDragonTriplet(roots []int) bool {
	for _, ord := range roots {
		if ord >= OrdinalFirstDragon && ord <= OrdinalLastDragon {
			return true
		}
	}
	return false
}

func containsOrdinal(roots []int, ord int) bool {
	for _, r := range roots {
		if r == ord {
			return true
		}
	}
	return false
}
