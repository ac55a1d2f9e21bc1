package dto

import "errors"

// 牌相关错误
var (
	ErrInvalidTile    = errors.New("invalid tile")
	ErrInvalidOrdinal = errors.New("invalid tile ordinal")
)

// 手牌相关错误
var (
	ErrMalformedHand   = errors.New("malformed hand")
	ErrInvalidArgument = errors.New("invalid argument")
	ErrInvalidSeat     = errors.New("invalid seat")
)

// 仲裁相关错误
var (
	ErrArbiterState      = errors.New("arbiter in wrong state")
	ErrUnexpectedSeat    = errors.New("seat not in reaction window")
	ErrDuplicateReaction = errors.New("seat already reacted")
	ErrNotAwaitingChi    = errors.New("no chi choice pending")
	ErrUnknownChiOption  = errors.New("chi option not available")
)
