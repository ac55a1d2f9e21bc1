package mahjong

import (
	"fmt"
	"sort"
	"sync"

	"github.com/google/uuid"

	"rules/dto"
)

type ReactionType int

const (
	ReactPass ReactionType = iota // 过
	ReactChi                      // 吃
	ReactPon                      // 碰
	ReactKong                     // 明杠
	ReactRon                      // 荣和
)

func (rt ReactionType) String() string {
	switch rt {
	case ReactPass:
		return "PASS"
	case ReactChi:
		return "CHI"
	case ReactPon:
		return "PON"
	case ReactKong:
		return "KONG"
	case ReactRon:
		return "RON"
	default:
		return "UNKNOWN"
	}
}

// ReactionCandidate 某一座位对弃牌的宣告。
// 吃时 Options 为该座位的全部吃法，Chosen 为已选定的一种
type ReactionCandidate struct {
	Seat    int
	Type    ReactionType
	Options []ChiOption
	Chosen  *ChiOption
}

type ArbiterState int

const (
	ArbiterIdle              ArbiterState = iota // 空闲
	ArbiterAwaitingReactions                     // 收集反应中
	ArbiterAwaitingChiChoice                     // 吃牌胜出但尚未指定吃法
	ArbiterResolved                              // 已裁决
)

// InterruptArbiter 弃牌反应仲裁器。
// 把多座位的反应串行收进一个收集窗口，再按规则优先级裁决：
// 荣和 > 杠/碰（先登记者胜） > 吃 > 过。
// 每个弃牌周期只产出一个反应，其余全部丢弃
type InterruptArbiter struct {
	mu        sync.Mutex
	state     ArbiterState
	cycleID   string
	discarder int
	discarded int
	expected  map[int]struct{}
	submitted map[int]*ReactionCandidate
	order     []*ReactionCandidate // 提交顺序
	winner    *ReactionCandidate
}

func NewInterruptArbiter() *InterruptArbiter {
	return &InterruptArbiter{state: ArbiterIdle}
}

func (a *InterruptArbiter) State() ArbiterState {
	a.mu.Lock()
	defer a.mu.Unlock()
	return a.state
}

func (a *InterruptArbiter) CycleID() string {
	a.mu.Lock()
	defer a.mu.Unlock()
	return a.cycleID
}

// OpenWindow 开启一个弃牌周期的收集窗口。
// 上个周期必须已裁决或从未开始；reactingSeats 为需要表态的座位
func (a *InterruptArbiter) OpenWindow(discarder, discarded int, reactingSeats []int) (string, error) {
	if _, err := TileFromOrdinal(discarded); err != nil {
		return "", err
	}
	if discarder < 0 || discarder > 3 {
		return "", fmt.Errorf("%w: discarder %d", dto.ErrInvalidSeat, discarder)
	}

	a.mu.Lock()
	defer a.mu.Unlock()
	if a.state == ArbiterAwaitingReactions || a.state == ArbiterAwaitingChiChoice {
		return "", fmt.Errorf("%w: previous cycle unresolved", dto.ErrArbiterState)
	}

	expected := make(map[int]struct{}, len(reactingSeats))
	for _, seat := range reactingSeats {
		if seat < 0 || seat > 3 || seat == discarder {
			return "", fmt.Errorf("%w: reacting seat %d", dto.ErrInvalidSeat, seat)
		}
		if _, dup := expected[seat]; dup {
			return "", fmt.Errorf("%w: duplicate seat %d", dto.ErrInvalidArgument, seat)
		}
		expected[seat] = struct{}{}
	}

	a.state = ArbiterAwaitingReactions
	a.cycleID = uuid.NewString()
	a.discarder = discarder
	a.discarded = discarded
	a.expected = expected
	a.submitted = make(map[int]*ReactionCandidate, len(expected))
	a.order = a.order[:0]
	a.winner = nil
	return a.cycleID, nil
}

// Submit 登记一个座位的反应，每座位至多一次。
// 全部座位表态后立即裁决
func (a *InterruptArbiter) Submit(c ReactionCandidate) error {
	a.mu.Lock()
	defer a.mu.Unlock()
	if a.state != ArbiterAwaitingReactions {
		return dto.ErrArbiterState
	}
	if _, ok := a.expected[c.Seat]; !ok {
		return fmt.Errorf("%w: seat %d", dto.ErrUnexpectedSeat, c.Seat)
	}
	if _, ok := a.submitted[c.Seat]; ok {
		return fmt.Errorf("%w: seat %d", dto.ErrDuplicateReaction, c.Seat)
	}
	if c.Type == ReactChi && c.Chosen == nil && len(c.Options) == 0 {
		return fmt.Errorf("%w: chi without options", dto.ErrInvalidArgument)
	}

	cand := c
	a.submitted[cand.Seat] = &cand
	a.order = append(a.order, &cand)

	if len(a.submitted) == len(a.expected) {
		a.resolve()
	}
	return nil
}

// CloseWindow 关闭收集窗口：未表态的座位一律按过处理，然后裁决。
// 窗口超时由外围系统掌握，这里只提供关闭入口
func (a *InterruptArbiter) CloseWindow() error {
	a.mu.Lock()
	defer a.mu.Unlock()
	if a.state != ArbiterAwaitingReactions {
		return dto.ErrArbiterState
	}
	for seat := range a.expected {
		if _, ok := a.submitted[seat]; !ok {
			cand := &ReactionCandidate{Seat: seat, Type: ReactPass}
			a.submitted[seat] = cand
			a.order = append(a.order, cand)
		}
	}
	a.resolve()
	return nil
}

// Pending 尚未表态的座位，升序
func (a *InterruptArbiter) Pending() []int {
	a.mu.Lock()
	defer a.mu.Unlock()
	var out []int
	for seat := range a.expected {
		if _, ok := a.submitted[seat]; !ok {
			out = append(out, seat)
		}
	}
	sort.Ints(out)
	return out
}

// ChooseChi 吃牌胜出且有多种吃法时，胜出座位必须指定一种才能完成裁决
func (a *InterruptArbiter) ChooseChi(seat int, opt ChiOption) error {
	a.mu.Lock()
	defer a.mu.Unlock()
	if a.state != ArbiterAwaitingChiChoice {
		return dto.ErrNotAwaitingChi
	}
	if a.winner == nil || a.winner.Seat != seat {
		return fmt.Errorf("%w: seat %d", dto.ErrUnexpectedSeat, seat)
	}
	for i := range a.winner.Options {
		if a.winner.Options[i] == opt {
			a.winner.Chosen = &a.winner.Options[i]
			a.state = ArbiterResolved
			return nil
		}
	}
	return dto.ErrUnknownChiOption
}

// Result 取裁决结果，仅在 Resolved 状态可用
func (a *InterruptArbiter) Result() (*ReactionCandidate, error) {
	a.mu.Lock()
	defer a.mu.Unlock()
	if a.state != ArbiterResolved {
		return nil, dto.ErrArbiterState
	}
	return a.winner, nil
}

// resolve 按优先级裁决，调用方持锁。
// 荣和优先；杠与碰同级，按登记先后；再到吃；全过产出合成的过反应
func (a *InterruptArbiter) resolve() {
	a.winner = selectBestReaction(a.order)
	if a.winner.Type == ReactChi && a.winner.Chosen == nil {
		if len(a.winner.Options) == 1 {
			a.winner.Chosen = &a.winner.Options[0]
		} else {
			a.state = ArbiterAwaitingChiChoice
			return
		}
	}
	a.state = ArbiterResolved
}

// selectBestReaction 在登记序列上执行优先级选择。
// 同级冲突（两家同时碰/杠）取先登记者，这是确定性的兜底裁决
func selectBestReaction(order []*ReactionCandidate) *ReactionCandidate {
	for _, c := range order {
		if c.Type == ReactRon {
			return c
		}
	}
	for _, c := range order {
		if c.Type == ReactKong || c.Type == ReactPon {
			return c
		}
	}
	for _, c := range order {
		if c.Type == ReactChi {
			return c
		}
	}
	return &ReactionCandidate{Seat: -1, Type: ReactPass}
}
