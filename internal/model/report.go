package model

import (
	"encoding/json"
	"fmt"
	"time"
)

// notApplicable is the literal emitted for validators that lacked the
// minimum sample size.
const notApplicable = "not applicable"

// MethodResult is the walk-forward outcome for a single validation
// method. Results below the minimum sample size carry Applicable=false
// and serialize as the string "not applicable".
type MethodResult struct {
	TrainSize   int     `json:"trainSize,omitempty"`
	TestSize    int     `json:"testSize"`
	Window      int     `json:"window,omitempty"`
	PoolSize    int     `json:"poolSize,omitempty"`
	Hits        int     `json:"hits"`
	Total       int     `json:"total"`
	Accuracy    float64 `json:"accuracy"`
	Baseline    float64 `json:"baseline"`
	Improvement float64 `json:"improvement"`
	Applicable  bool    `json:"-"`
}

// MarshalJSON emits "not applicable" for under-powered results.
func (r MethodResult) MarshalJSON() ([]byte, error) {
	if !r.Applicable {
		return json.Marshal(notApplicable)
	}
	type alias MethodResult
	return json.Marshal(alias(r))
}

// UnmarshalJSON accepts either the result object or "not applicable".
func (r *MethodResult) UnmarshalJSON(data []byte) error {
	var s string
	if err := json.Unmarshal(data, &s); err == nil {
		if s != notApplicable {
			return fmt.Errorf("unexpected method result string: %q", s)
		}
		*r = MethodResult{}
		return nil
	}
	type alias MethodResult
	var a alias
	if err := json.Unmarshal(data, &a); err != nil {
		return err
	}
	*r = MethodResult(a)
	r.Applicable = true
	return nil
}

// ComboResult is the walk-forward outcome for proven-combo validation.
type ComboResult struct {
	TrainSize           int     `json:"trainSize"`
	TestSize            int     `json:"testSize"`
	ProvenCount         int     `json:"provenCombos"`
	TotalHits           int     `json:"totalHits"`
	DrawsWithHit        int     `json:"drawsWithHit"`
	TotalPossibleCombos int     `json:"totalPossibleCombos"`
	HitsPerTicket       float64 `json:"hitsPerTicket"`
	ExpectedPerTicket   float64 `json:"expectedPerTicket"`
	Improvement         float64 `json:"improvement"`
	Applicable          bool    `json:"-"`
}

// MarshalJSON emits "not applicable" for under-powered results.
func (r ComboResult) MarshalJSON() ([]byte, error) {
	if !r.Applicable {
		return json.Marshal(notApplicable)
	}
	type alias ComboResult
	return json.Marshal(alias(r))
}

// UnmarshalJSON accepts either the result object or "not applicable".
func (r *ComboResult) UnmarshalJSON(data []byte) error {
	var s string
	if err := json.Unmarshal(data, &s); err == nil {
		if s != notApplicable {
			return fmt.Errorf("unexpected combo result string: %q", s)
		}
		*r = ComboResult{}
		return nil
	}
	type alias ComboResult
	var a alias
	if err := json.Unmarshal(data, &a); err != nil {
		return err
	}
	*r = ComboResult(a)
	r.Applicable = true
	return nil
}

// RepeatResult measures how often numbers carry over between
// consecutive draws.
type RepeatResult struct {
	DrawsChecked int     `json:"drawsChecked"`
	TotalNumbers int     `json:"totalNumbers"`
	Repeats      int     `json:"repeats"`
	RepeatRate   float64 `json:"repeatRate"`
	Applicable   bool    `json:"-"`
}

// MarshalJSON emits "not applicable" for under-powered results.
func (r RepeatResult) MarshalJSON() ([]byte, error) {
	if !r.Applicable {
		return json.Marshal(notApplicable)
	}
	type alias RepeatResult
	return json.Marshal(alias(r))
}

// UnmarshalJSON accepts either the result object or "not applicable".
func (r *RepeatResult) UnmarshalJSON(data []byte) error {
	var s string
	if err := json.Unmarshal(data, &s); err == nil {
		if s != notApplicable {
			return fmt.Errorf("unexpected repeat result string: %q", s)
		}
		*r = RepeatResult{}
		return nil
	}
	type alias RepeatResult
	var a alias
	if err := json.Unmarshal(data, &a); err != nil {
		return err
	}
	*r = RepeatResult(a)
	r.Applicable = true
	return nil
}

// ConstraintCheck is the rule-by-rule evaluation of one ticket.
type ConstraintCheck struct {
	Sum              int  `json:"sum"`
	DecadeCount      int  `json:"decades"`
	ConsecutivePairs int  `json:"consecutivePairs"`
	OddCount         int  `json:"oddCount"`
	HighCount        int  `json:"highCount"`
	SumOK            bool `json:"sumOk"`
	DecadesOK        bool `json:"decadesOk"`
	ConsecutiveOK    bool `json:"consecutiveOk"`
	OddOK            bool `json:"oddOk"`
	HighOK           bool `json:"highOk"`
	Passed           bool `json:"passed"`
}

// ConstraintSummary reports how much of a lottery's own history would
// pass its constraint spec.
type ConstraintSummary struct {
	Spec       ConstraintSpec `json:"spec"`
	Total      int            `json:"total"`
	Passed     int            `json:"passed"`
	PassRate   float64        `json:"passRate"`
	Applicable bool           `json:"-"`
}

// MarshalJSON emits "not applicable" for under-powered results.
func (r ConstraintSummary) MarshalJSON() ([]byte, error) {
	if !r.Applicable {
		return json.Marshal(notApplicable)
	}
	type alias ConstraintSummary
	return json.Marshal(alias(r))
}

// UnmarshalJSON accepts either the summary object or "not applicable".
func (r *ConstraintSummary) UnmarshalJSON(data []byte) error {
	var s string
	if err := json.Unmarshal(data, &s); err == nil {
		if s != notApplicable {
			return fmt.Errorf("unexpected constraint summary string: %q", s)
		}
		*r = ConstraintSummary{}
		return nil
	}
	type alias ConstraintSummary
	var a alias
	if err := json.Unmarshal(data, &a); err != nil {
		return err
	}
	*r = ConstraintSummary(a)
	r.Applicable = true
	return nil
}

// BacktestSummary groups every validator's out-of-sample result.
type BacktestSummary struct {
	PositionFrequency MethodResult `json:"positionFrequency"`
	HotNumbers        MethodResult `json:"hotNumbers"`
	RepeatPattern     RepeatResult `json:"repeatPattern"`
	ProvenCombos      ComboResult  `json:"provenCombos"`
}

// ValidationRun is one persisted analysis run for a lottery.
type ValidationRun struct {
	RunAt   time.Time     `json:"runAt"`
	Lottery string        `json:"lottery"`
	Report  LotteryReport `json:"report"`
	ID      int64         `json:"id"`
}

// LotteryReport is the complete per-lottery analysis output handed to
// rendering and publishing collaborators.
type LotteryReport struct {
	GeneratedAt         time.Time         `json:"generatedAt"`
	Lottery             string            `json:"lottery"`
	Name                string            `json:"name"`
	LastDraw            *Draw             `json:"lastDraw,omitempty"`
	PositionPools       PositionPools     `json:"positionPools"`
	BonusPool           RankedPool        `json:"bonusPool"`
	HotNumbers          RankedPool        `json:"hotNumbers"`
	ComboPool           []ComboCount      `json:"comboPool,omitempty"`
	PositionCoverage    []float64         `json:"positionCoverage"`
	PositionImprovement []float64         `json:"positionImprovement"`
	ConstraintSummary   ConstraintSummary `json:"constraintSummary"`
	Backtest            BacktestSummary   `json:"backtest"`
	BonusCoverage       float64           `json:"bonusCoverage"`
	BonusImprovement    float64           `json:"bonusImprovement"`
	Draws               int               `json:"draws"`
	Excluded            int               `json:"excludedDraws"`
}
