package impl

import (
	"context"
	"time"

	"rules/common/cache"
	"rules/common/config"
	"rules/common/log"
	"rules/dto"
	"rules/game/application/service"
	"rules/game/engines"
	"rules/game/engines/mahjong"
)

type RulesServiceImpl struct {
	engine engines.RulesEngine
}

// NewRulesService 按配置装配规则引擎服务。
// 替代旧实现的全局单例：组装方构造一次，引用传递
func NewRulesService(conf *config.Config) (service.RulesService, error) {
	var results *cache.GeneralCache
	if conf.Cache.MaxCost > 0 {
		c, err := cache.NewGeneralCache(conf.Cache.MaxCost, time.Duration(conf.Cache.TTLSec)*time.Second)
		if err != nil {
			return nil, err
		}
		results = c
	}

	eg, err := engines.CreateEngine(engines.MAHJONG_RULES_ENGINE, conf.Rule.RoundWind, results)
	if err != nil {
		return nil, err
	}
	return &RulesServiceImpl{engine: eg}, nil
}

func (s *RulesServiceImpl) Analyze(ctx context.Context, req *service.AnalyzeReq) (*service.AnalyzeResp, error) {
	if req == nil || req.Hand == nil {
		return nil, dto.ErrInvalidArgument
	}
	res, err := s.engine.Analyze(req.Hand)
	if err != nil {
		log.Error("和牌分析失败: %v", err)
		return nil, err
	}
	return &service.AnalyzeResp{Result: res}, nil
}

func (s *RulesServiceImpl) Score(ctx context.Context, req *service.ScoreReq) (*service.ScoreResp, error) {
	if req == nil || req.Result == nil {
		return nil, dto.ErrInvalidArgument
	}
	bonus := make([]mahjong.Tile, 0, len(req.BonusOrdinals))
	for _, ord := range req.BonusOrdinals {
		t, err := mahjong.TileFromOrdinal(ord)
		if err != nil {
			return nil, err
		}
		bonus = append(bonus, t)
	}
	points, breakdown, err := s.engine.Score(req.Result, req.Seat, req.SelfDrawn, req.SelfQuads, req.ClaimedQuads, bonus)
	if err != nil {
		log.Error("计分失败: %v", err)
		return nil, err
	}
	return &service.ScoreResp{Points: points, Breakdown: breakdown}, nil
}

func (s *RulesServiceImpl) EnumerateChiOptions(ctx context.Context, req *service.ChiOptionsReq) (*service.ChiOptionsResp, error) {
	if req == nil || req.Hand == nil {
		return nil, dto.ErrInvalidArgument
	}
	opts, err := s.engine.EnumerateChiOptions(req.Hand, req.Discarded)
	if err != nil {
		return nil, err
	}
	return &service.ChiOptionsResp{Options: opts}, nil
}

func (s *RulesServiceImpl) ResolveInterrupt(ctx context.Context, req *service.ResolveReq) (*service.ResolveResp, error) {
	if req == nil {
		return nil, dto.ErrInvalidArgument
	}
	winner, err := s.engine.ResolveInterrupt(req.Candidates)
	if err != nil {
		log.Error("弃牌仲裁失败: %v", err)
		return nil, err
	}
	log.Info("弃牌仲裁: 座位=%d 反应=%s", winner.Seat, winner.Type)
	return &service.ResolveResp{Winner: winner}, nil
}
