package pipeline

import (
	"fmt"
	"strings"
)

// Stage is the coarse position of an application inside a job's hiring
// pipeline. The set is closed; a job posting enables a subset of it.
type Stage string

const (
	StageApplied       Stage = "applied"
	StageShortlisted   Stage = "shortlisted"
	StageInterview     Stage = "interview"
	StageTechnicalTask Stage = "technical_task"
	StageOffer         Stage = "offer"
	StageHired         Stage = "hired"
	StageRejected      Stage = "rejected"
)

// SubStage is the fine-grained position nested inside particular stages.
// A sub-stage is only meaningful under its parent stage.
type SubStage string

const (
	SubStagePhoneScreen    SubStage = "phone_screen"
	SubStageTechnicalRound SubStage = "technical_round"
	SubStageHRRound        SubStage = "hr_round"
	SubStageFinalRound     SubStage = "final_round"

	SubStageTaskAssigned  SubStage = "task_assigned"
	SubStageTaskSubmitted SubStage = "task_submitted"
	SubStageTaskReviewed  SubStage = "task_reviewed"

	SubStageOfferSent        SubStage = "offer_sent"
	SubStageOfferNegotiation SubStage = "offer_negotiation"
)

var allStages = []Stage{
	StageApplied,
	StageShortlisted,
	StageInterview,
	StageTechnicalTask,
	StageOffer,
	StageHired,
	StageRejected,
}

var subStagesByStage = map[Stage][]SubStage{
	StageInterview: {
		SubStagePhoneScreen,
		SubStageTechnicalRound,
		SubStageHRRound,
		SubStageFinalRound,
	},
	StageTechnicalTask: {
		SubStageTaskAssigned,
		SubStageTaskSubmitted,
		SubStageTaskReviewed,
	},
	StageOffer: {
		SubStageOfferSent,
		SubStageOfferNegotiation,
	},
}

func AllStages() []Stage {
	out := make([]Stage, len(allStages))
	copy(out, allStages)
	return out
}

func (s Stage) Valid() bool {
	for _, st := range allStages {
		if s == st {
			return true
		}
	}
	return false
}

func (s Stage) String() string {
	return string(s)
}

// SubStages returns the sub-stages nested under s. Stages without nesting
// return nil.
func (s Stage) SubStages() []SubStage {
	subs, ok := subStagesByStage[s]
	if !ok {
		return nil
	}
	out := make([]SubStage, len(subs))
	copy(out, subs)
	return out
}

func (s SubStage) String() string {
	return string(s)
}

// SubStageValidFor reports whether sub is one of the sub-stages nested under
// stage.
func SubStageValidFor(stage Stage, sub SubStage) bool {
	for _, candidate := range subStagesByStage[stage] {
		if candidate == sub {
			return true
		}
	}
	return false
}

func ParseStage(raw string) (Stage, error) {
	s := Stage(strings.ToLower(strings.TrimSpace(raw)))
	if !s.Valid() {
		return "", fmt.Errorf("unknown stage %q", raw)
	}
	return s, nil
}

func ParseSubStage(raw string) (SubStage, error) {
	v := strings.ToLower(strings.TrimSpace(raw))
	if v == "" {
		return "", fmt.Errorf("empty sub-stage")
	}
	sub := SubStage(v)
	for _, subs := range subStagesByStage {
		for _, candidate := range subs {
			if candidate == sub {
				return sub, nil
			}
		}
	}
	return "", fmt.Errorf("unknown sub-stage %q", raw)
}

// StageEnabled reports whether stage appears in a job posting's enabled set.
func StageEnabled(enabled []Stage, stage Stage) bool {
	for _, st := range enabled {
		if st == stage {
			return true
		}
	}
	return false
}
