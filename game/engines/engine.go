package engines

import (
	"fmt"

	"rules/common/cache"
	"rules/game/engines/mahjong"
)

type engineKind int32

const (
	MAHJONG_RULES_ENGINE engineKind = iota // 四人麻将规则引擎
)

// CreateEngine 按类型创建规则引擎实例
func CreateEngine(kind engineKind, roundWind int, results *cache.GeneralCache) (RulesEngine, error) {
	switch kind {
	case MAHJONG_RULES_ENGINE:
		return mahjong.NewRulesMahjong4p(roundWind, results), nil
	default:
		return nil, fmt.Errorf("未知的引擎类型: %d", kind)
	}
}

// RulesEngine 规则引擎对外围系统暴露的全部操作。
// 实现必须是无副作用的快照计算；仲裁周期内部自行串行化
type RulesEngine interface {
	// Analyze 和牌分析
	Analyze(hand *mahjong.Hand) (*mahjong.AnalysisResult, error)

	// Score 由分析结果计分
	Score(res *mahjong.AnalysisResult, seat int, selfDrawn bool, selfQuads, claimedQuads int, bonus []mahjong.Tile) (int, []string, error)

	// EnumerateChiOptions 枚举吃法
	EnumerateChiOptions(hand *mahjong.Hand, discarded int) ([]mahjong.ChiOption, error)

	// ResolveInterrupt 对一组已登记的反应做一次性裁决
	ResolveInterrupt(candidates []mahjong.ReactionCandidate) (*mahjong.ReactionCandidate, error)
}
