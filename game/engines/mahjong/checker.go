package mahjong

// 十三幺需要的 13 种序数：三门数牌的幺九、四风、三箭
var orphanOrdinals = [13]int{
	101, 109,
	201, 209,
	301, 309,
	401, 402, 403, 404,
	501, 502, 503,
}

var orphanSet = func() map[int]struct{} {
	s := make(map[int]struct{}, len(orphanOrdinals))
	for _, ord := range orphanOrdinals {
		s[ord] = struct{}{}
	}
	return s
}()

// IsSevenPairs 七对子：恰好 7 种序数、每种恰好 2 张。
// 同序数 4 张（两对叠在一起）按本规则判负，部分变体允许并计高分，这里不采纳
func IsSevenPairs(counts map[int]int) bool {
	if len(counts) != 7 {
		return false
	}
	for _, c := range counts {
		if c != 2 {
			return false
		}
	}
	return true
}

// IsThirteenOrphans 十三幺：13 种幺九字牌中 12 种各 1 张、1 种 2 张，
// 不允许缺门，也不允许混入其他序数
func IsThirteenOrphans(counts map[int]int) bool {
	singles, doubles := 0, 0
	for _, ord := range orphanOrdinals {
		switch counts[ord] {
		case 1:
			singles++
		case 2:
			doubles++
		default:
			return false
		}
	}
	for ord, c := range counts {
		if c == 0 {
			continue
		}
		if _, ok := orphanSet[ord]; !ok {
			return false
		}
	}
	return singles == 12 && doubles == 1
}
