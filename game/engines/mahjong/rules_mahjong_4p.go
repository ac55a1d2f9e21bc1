package mahjong

import (
	"fmt"

	"rules/common/cache"
	"rules/dto"
)

// RulesMahjong4p 四人麻将规则引擎：聚合和牌分析、计分与弃牌仲裁。
// 由组装方构造一次，之后按引用传入各调用点，不持有进程级状态
type RulesMahjong4p struct {
	analyzer *Analyzer
	scorer   *ScoreCalculator
}

// NewRulesMahjong4p 创建引擎。results 可为 nil，关闭分析缓存
func NewRulesMahjong4p(roundWind int, results *cache.GeneralCache) *RulesMahjong4p {
	return &RulesMahjong4p{
		analyzer: NewAnalyzer(NewSearcher(), results),
		scorer:   NewScoreCalculator(roundWind),
	}
}

func (eg *RulesMahjong4p) Analyze(hand *Hand) (*AnalysisResult, error) {
	return eg.analyzer.Analyze(hand)
}

func (eg *RulesMahjong4p) Score(res *AnalysisResult, seat int, selfDrawn bool, selfQuads, claimedQuads int, bonus []Tile) (int, []string, error) {
	return eg.scorer.Score(res, seat, selfDrawn, selfQuads, claimedQuads, bonus)
}

func (eg *RulesMahjong4p) EnumerateChiOptions(hand *Hand, discarded int) ([]ChiOption, error) {
	return EnumerateChiOptions(hand, discarded)
}

// NewReactionCycle 开一个有状态的弃牌仲裁周期，供外围系统分步喂入反应
func (eg *RulesMahjong4p) NewReactionCycle() *InterruptArbiter {
	return NewInterruptArbiter()
}

// ResolveInterrupt 对一组已登记的反应做一次性裁决。
// 登记顺序即同级冲突的先后顺序
func (eg *RulesMahjong4p) ResolveInterrupt(candidates []ReactionCandidate) (*ReactionCandidate, error) {
	return ResolveCandidates(candidates)
}

// ResolveCandidates 一次性裁决：校验后直接在登记序列上执行优先级选择。
// 多种吃法必须已经选定，一次性路径没有补选机会
func ResolveCandidates(candidates []ReactionCandidate) (*ReactionCandidate, error) {
	seen := make(map[int]struct{}, len(candidates))
	order := make([]*ReactionCandidate, 0, len(candidates))
	for i := range candidates {
		c := &candidates[i]
		if c.Seat < 0 || c.Seat > 3 {
			return nil, fmt.Errorf("%w: seat %d", dto.ErrInvalidSeat, c.Seat)
		}
		if _, dup := seen[c.Seat]; dup {
			return nil, fmt.Errorf("%w: seat %d", dto.ErrDuplicateReaction, c.Seat)
		}
		seen[c.Seat] = struct{}{}
		if c.Type == ReactChi && c.Chosen == nil {
			if len(c.Options) == 1 {
				c.Chosen = &c.Options[0]
			} else {
				return nil, fmt.Errorf("%w: chi needs a chosen option", dto.ErrInvalidArgument)
			}
		}
		order = append(order, c)
	}
	return selectBestReaction(order), nil
}
