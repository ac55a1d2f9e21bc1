package mahjong

import (
	"rules/dto"
)

// ChiOption 一种吃牌选择：弃牌 + 手中补齐顺子的两张
type ChiOption struct {
	Discarded int
	Using     [2]int
}

// EnumerateChiOptions 枚举对弃牌的全部吃法。
// 只扫描暗牌；窗口依次为 {d-2,d-1}、{d-1,d+1}、{d+1,d+2}。
// 弃牌不是数牌时没有吃法，返回空
func EnumerateChiOptions(hand *Hand, discarded int) ([]ChiOption, error) {
	if hand == nil {
		return nil, dto.ErrInvalidArgument
	}
	tile, err := TileFromOrdinal(discarded)
	if err != nil {
		return nil, err
	}
	if !tile.IsSuited() {
		return nil, nil
	}

	counts := make(map[int]int, len(hand.Concealed))
	for _, ord := range hand.Concealed {
		counts[ord]++
	}

	rank := tile.Rank
	var out []ChiOption
	// 窗口越界按点数裁剪：顺子点数必须落在 1-9 内
	if rank >= 3 && counts[discarded-2] > 0 && counts[discarded-1] > 0 {
		out = append(out, ChiOption{Discarded: discarded, Using: [2]int{discarded - 2, discarded - 1}})
	}
	if rank >= 2 && rank <= 8 && counts[discarded-1] > 0 && counts[discarded+1] > 0 {
		out = append(out, ChiOption{Discarded: discarded, Using: [2]int{discarded - 1, discarded + 1}})
	}
	if rank <= 7 && counts[discarded+1] > 0 && counts[discarded+2] > 0 {
		out = append(out, ChiOption{Discarded: discarded, Using: [2]int{discarded + 1, discarded + 2}})
	}
	return out, nil
}
