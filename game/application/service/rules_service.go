package service

import (
	"context"

	"rules/game/engines/mahjong"
)

// RulesService 外围回合系统消费的服务门面。
// 牌一律以规范序数（花色*100+点数）跨越本边界
type RulesService interface {
	Analyze(ctx context.Context, req *AnalyzeReq) (*AnalyzeResp, error)
	Score(ctx context.Context, req *ScoreReq) (*ScoreResp, error)
	EnumerateChiOptions(ctx context.Context, req *ChiOptionsReq) (*ChiOptionsResp, error)
	ResolveInterrupt(ctx context.Context, req *ResolveReq) (*ResolveResp, error)
}

type AnalyzeReq struct {
	Hand *mahjong.Hand `json:"hand"`
}

type AnalyzeResp struct {
	Result *mahjong.AnalysisResult `json:"result"`
}

type ScoreReq struct {
	Result        *mahjong.AnalysisResult `json:"result"`
	Seat          int                     `json:"seat"`
	SelfDrawn     bool                    `json:"selfDrawn"`
	SelfQuads     int                     `json:"selfQuads"`
	ClaimedQuads  int                     `json:"claimedQuads"`
	BonusOrdinals []int                   `json:"bonusOrdinals"`
}

type ScoreResp struct {
	Points    int      `json:"points"`
	Breakdown []string `json:"breakdown"`
}

type ChiOptionsReq struct {
	Hand      *mahjong.Hand `json:"hand"`
	Discarded int           `json:"discarded"`
}

type ChiOptionsResp struct {
	Options []mahjong.ChiOption `json:"options"`
}

type ResolveReq struct {
	Candidates []mahjong.ReactionCandidate `json:"candidates"`
}

type ResolveResp struct {
	Winner *mahjong.ReactionCandidate `json:"winner"`
}
