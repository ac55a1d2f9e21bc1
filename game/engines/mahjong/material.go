package mahjong

import (
	"fmt"
	"sort"

	"rules/dto"
)

type Suit int

const (
	SuitCharacters Suit = iota + 1 // 万子 (101-109)
	SuitCircles                    // 筒子 (201-209)
	SuitBamboos                    // 条子 (301-309)
	SuitWinds                      // 风牌 东南西北 (401-404)
	SuitDragons                    // 箭牌 中发白 (501-503)
	SuitRedBonus                   // 红花 (601-608)
	SuitBlueBonus                  // 蓝花 (701-708)
)

// 常用序数常量，计分规则直接按数值比较
const (
	OrdinalEastWind    = 401
	OrdinalNorthWind   = 404
	OrdinalFirstDragon = 501
	OrdinalLastDragon  = 503
)

// maxRank 每种花色的最大点数
func maxRank(s Suit) int {
	switch s {
	case SuitCharacters, SuitCircles, SuitBamboos:
		return 9
	case SuitWinds:
		return 4
	case SuitDragons:
		return 3
	case SuitRedBonus, SuitBlueBonus:
		return 8
	default:
		return 0
	}
}

// Tile 一张牌的值表示，不可变
type Tile struct {
	Suit Suit
	Rank int
}

// NewTile 构造并校验一张牌
func NewTile(suit Suit, rank int) (Tile, error) {
	if suit < SuitCharacters || suit > SuitBlueBonus {
		return Tile{}, fmt.Errorf("%w: suit %d", dto.ErrInvalidTile, suit)
	}
	if rank < 1 || rank > maxRank(suit) {
		return Tile{}, fmt.Errorf("%w: suit %d rank %d", dto.ErrInvalidTile, suit, rank)
	}
	return Tile{Suit: suit, Rank: rank}, nil
}

// Ordinal 牌的规范序数：花色*100+点数，跨边界传输的唯一表示
func (t Tile) Ordinal() int {
	return int(t.Suit)*100 + t.Rank
}

// TileFromOrdinal 解码序数
func TileFromOrdinal(ord int) (Tile, error) {
	suit := Suit(ord / 100)
	rank := ord % 100
	t, err := NewTile(suit, rank)
	if err != nil {
		return Tile{}, fmt.Errorf("%w: %d", dto.ErrInvalidOrdinal, ord)
	}
	return t, nil
}

// IsSuited 是否数牌（万筒条）
func (t Tile) IsSuited() bool {
	return t.Suit >= SuitCharacters && t.Suit <= SuitBamboos
}

// IsHonor 是否字牌（风、箭）
func (t Tile) IsHonor() bool {
	return t.Suit == SuitWinds || t.Suit == SuitDragons
}

// IsBonus 是否花牌，花牌不参与任何结构分解
func (t Tile) IsBonus() bool {
	return t.Suit == SuitRedBonus || t.Suit == SuitBlueBonus
}

// Less 按序数全序
func (t Tile) Less(o Tile) bool {
	return t.Ordinal() < o.Ordinal()
}

func (s Suit) String() string {
	switch s {
	case SuitCharacters:
		return "万"
	case SuitCircles:
		return "筒"
	case SuitBamboos:
		return "条"
	case SuitWinds:
		return "风"
	case SuitDragons:
		return "箭"
	case SuitRedBonus:
		return "红花"
	case SuitBlueBonus:
		return "蓝花"
	default:
		return "未知"
	}
}

func (t Tile) String() string {
	switch t.Suit {
	case SuitWinds:
		return [...]string{"东", "南", "西", "北"}[t.Rank-1]
	case SuitDragons:
		return [...]string{"中", "发", "白"}[t.Rank-1]
	default:
		return fmt.Sprintf("%d%s", t.Rank, t.Suit)
	}
}

// ordinalIsSuited 序数是否属于数牌，序数不合法时返回 false
func ordinalIsSuited(ord int) bool {
	t, err := TileFromOrdinal(ord)
	return err == nil && t.IsSuited()
}

// ordinalIsBonus 序数是否属于花牌
func ordinalIsBonus(ord int) bool {
	t, err := TileFromOrdinal(ord)
	return err == nil && t.IsBonus()
}

type MeldKind int

const (
	MeldSequence MeldKind = iota // 顺子
	MeldTriplet                  // 刻子
	MeldQuad                     // 杠子
)

// Meld 从他人弃牌鸣得的副露
type Meld struct {
	Kind     MeldKind
	Ordinals []int // 成员序数
	Claimed  int   // 被鸣的那张的序数
}

// Root 副露的根序数（最小成员）
func (m Meld) Root() int {
	if len(m.Ordinals) == 0 {
		return 0
	}
	root := m.Ordinals[0]
	for _, o := range m.Ordinals[1:] {
		if o < root {
			root = o
		}
	}
	return root
}

// Hand 玩家手牌快照。归属与变更在外围回合系统，引擎只读
type Hand struct {
	Concealed []int  // 暗牌序数
	Drawn     *int   // 刚摸的、尚未并入暗牌的一张
	SelfQuads []int  // 暗杠根序数，每个代表 4 张同序数牌
	Melds     []Meld // 副露
	Bonus     []int  // 花牌序数，单独计分
}

// ExposedGroups 已成形的外部组数（暗杠 + 副露）
func (h *Hand) ExposedGroups() int {
	return len(h.SelfQuads) + len(h.Melds)
}

// quadCount 手中所有杠的数量（暗杠 + 明杠副露）
func (h *Hand) quadCount() int {
	n := len(h.SelfQuads)
	for _, m := range h.Melds {
		if m.Kind == MeldQuad {
			n++
		}
	}
	return n
}

// tileTotal 功能牌总张数（含副露与暗杠，不含花牌）
func (h *Hand) tileTotal() int {
	total := len(h.Concealed) + 4*len(h.SelfQuads)
	if h.Drawn != nil {
		total++
	}
	for _, m := range h.Melds {
		total += len(m.Ordinals)
	}
	return total
}

// Validate 校验所有序数合法，且张数满足和牌时刻的恒等式：
// 基准 14 张，每个杠富余 1 张
func (h *Hand) Validate() error {
	if h == nil {
		return dto.ErrInvalidArgument
	}
	for _, ord := range h.allOrdinals() {
		if _, err := TileFromOrdinal(ord); err != nil {
			return err
		}
	}
	for _, m := range h.Melds {
		want := 3
		if m.Kind == MeldQuad {
			want = 4
		}
		if len(m.Ordinals) != want {
			return fmt.Errorf("%w: meld has %d tiles", dto.ErrMalformedHand, len(m.Ordinals))
		}
	}
	if got, want := h.tileTotal(), 14+h.quadCount(); got != want {
		return fmt.Errorf("%w: %d tiles, want %d", dto.ErrMalformedHand, got, want)
	}
	return nil
}

func (h *Hand) allOrdinals() []int {
	out := make([]int, 0, len(h.Concealed)+len(h.Bonus)+8)
	out = append(out, h.Concealed...)
	if h.Drawn != nil {
		out = append(out, *h.Drawn)
	}
	out = append(out, h.SelfQuads...)
	for _, m := range h.Melds {
		out = append(out, m.Ordinals...)
	}
	out = append(out, h.Bonus...)
	return out
}

// concealedCounts 暗牌（含摸牌）的序数计数，花牌剔除
func (h *Hand) concealedCounts() (map[int]int, int) {
	counts := make(map[int]int, len(h.Concealed)+1)
	total := 0
	add := func(ord int) {
		if ordinalIsBonus(ord) {
			return
		}
		counts[ord]++
		total++
	}
	for _, ord := range h.Concealed {
		add(ord)
	}
	if h.Drawn != nil {
		add(*h.Drawn)
	}
	return counts, total
}

// functionalOrdinals 清一色/混一色判定扫描的全部功能牌：
// 暗牌 + 摸牌 + 暗杠 + 副露，花牌剔除，升序
func (h *Hand) functionalOrdinals() []int {
	out := make([]int, 0, h.tileTotal())
	appendIf := func(ord int) {
		if !ordinalIsBonus(ord) {
			out = append(out, ord)
		}
	}
	for _, ord := range h.Concealed {
		appendIf(ord)
	}
	if h.Drawn != nil {
		appendIf(*h.Drawn)
	}
	for _, q := range h.SelfQuads {
		for i := 0; i < 4; i++ {
			appendIf(q)
		}
	}
	for _, m := range h.Melds {
		for _, ord := range m.Ordinals {
			appendIf(ord)
		}
	}
	sort.Ints(out)
	return out
}
