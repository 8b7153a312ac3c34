package game

import "errors"

var (
	// ErrRuleViolation matches every rejection caused by the game rules. The
	// match state is unchanged when an action fails with one.
	ErrRuleViolation = errors.New("rule violation")
	// ErrContractViolation matches caller bugs such as negative indices.
	ErrContractViolation = errors.New("contract violation")
)

// RuleError is a rejected action. Compare against the sentinels below with
// errors.Is.
type RuleError struct {
	Reason string
}

func (e *RuleError) Error() string { return e.Reason }

// Is makes every RuleError match ErrRuleViolation.
func (e *RuleError) Is(target error) bool { return target == ErrRuleViolation }

// ContractError is a misuse of the engine API.
type ContractError struct {
	Reason string
}

func (e *ContractError) Error() string { return e.Reason }

// Is makes every ContractError match ErrContractViolation.
func (e *ContractError) Is(target error) bool { return target == ErrContractViolation }

var (
	ErrGameOver          = &RuleError{Reason: "game is over"}
	ErrNotYourTurn       = &RuleError{Reason: "not your turn"}
	ErrBotTurnInProgress = &RuleError{Reason: "bot turn in progress"}
	ErrNotBotTurn        = &RuleError{Reason: "not the bot's turn"}
	ErrInsufficientMana  = &RuleError{Reason: "not enough mana"}
	ErrBoardFull         = &RuleError{Reason: "board is full"}
	ErrHandIndex         = &RuleError{Reason: "no card at hand index"}
	ErrBoardIndex        = &RuleError{Reason: "no minion at board index"}
	ErrCannotAttack      = &RuleError{Reason: "minion cannot attack"}
	ErrInvalidTarget     = &RuleError{Reason: "invalid target"}
	ErrHeroPowerUsed     = &RuleError{Reason: "hero power already used this turn"}
	ErrNoHeroPower       = &RuleError{Reason: "hero has no hero power"}
)

var (
	ErrNegativeIndex   = &ContractError{Reason: "negative index"}
	ErrEmptyDeck       = &ContractError{Reason: "empty deck pool"}
	ErrNilHero         = &ContractError{Reason: "nil hero"}
	ErrUnknownSide     = &ContractError{Reason: "unknown side"}
	ErrDuplicateCardID = &ContractError{Reason: "duplicate card id"}
)

// IsRuleViolation reports whether err is a rule rejection.
func IsRuleViolation(err error) bool {
	return errors.Is(err, ErrRuleViolation)
}
